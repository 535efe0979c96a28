package main

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	fiberlogger "github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/gofiber/websocket/v2"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/valyala/fasthttp/fasthttpadaptor"
	"go.uber.org/zap"

	"github.com/JonathanBek0501/auragameclub/internal/adapter/http/fiber/handlers"
	"github.com/JonathanBek0501/auragameclub/internal/adapter/http/fiber/middleware"
	"github.com/JonathanBek0501/auragameclub/internal/adapter/queue"
	"github.com/JonathanBek0501/auragameclub/internal/adapter/storage/jsonfile"
	"github.com/JonathanBek0501/auragameclub/internal/adapter/storage/postgres"
	wsAdapter "github.com/JonathanBek0501/auragameclub/internal/adapter/websocket"
	"github.com/JonathanBek0501/auragameclub/internal/clock"
	"github.com/JonathanBek0501/auragameclub/internal/observability/telemetry"
	"github.com/JonathanBek0501/auragameclub/internal/ports"
	"github.com/JonathanBek0501/auragameclub/internal/service/billing"
	"github.com/JonathanBek0501/auragameclub/internal/service/catalog"
	"github.com/JonathanBek0501/auragameclub/internal/service/session"
	"github.com/JonathanBek0501/auragameclub/pkg/config"
)

const (
	serviceName    = "auragameclub"
	serviceVersion = "v1.0.0"
)

func main() {
	// 1. Initialize Logger
	logger, err := zap.NewProduction()
	if err != nil {
		log.Fatal("Failed to initialize logger:", err)
	}
	defer logger.Sync()

	logger.Info("Starting Aura Game Club cashier",
		zap.String("service", serviceName),
		zap.String("version", serviceVersion),
	)

	// 2. Load Configuration
	cfg, err := config.Load()
	if err != nil {
		logger.Fatal("Failed to load configuration", zap.Error(err))
	}

	// 3. Initialize State Store
	store, cleanup, err := newStateStore(cfg, logger)
	if err != nil {
		logger.Fatal("Failed to initialize state store", zap.Error(err))
	}
	defer cleanup()

	// 4. Load State. Rooms persisted mid-run resume ticking from their stored
	// segment start; downtime still counts because elapsed time is derived
	// from the wall clock.
	state, err := store.Load(context.Background())
	if err != nil {
		logger.Fatal("Failed to load state", zap.Error(err))
	}
	state.EnsureDefaults(cfg.Club.Rooms, cfg.Club.RoomNamePrefix)

	running := 0
	for _, room := range state.Rooms {
		if room.Running() {
			running++
			logger.Info("Resuming running room",
				zap.String("room_id", room.ID),
				zap.Timep("run_started_at", room.RunStartedAt),
			)
		}
	}
	telemetry.ActiveRooms.Set(float64(running))

	// 5. Initialize Message Queue
	var mq queue.MessageQueue = queue.Noop{}
	if cfg.NATS.Enabled {
		mq, err = queue.NewNATSQueue(cfg.NATS.URL, logger)
		if err != nil {
			logger.Fatal("Failed to connect to NATS", zap.Error(err))
		}
	}
	defer mq.Close()

	// 6. Initialize Services
	clk := clock.System{}
	calc := billing.NewCalculator(billing.Config{
		HourlyRate: cfg.Club.HourlyRate,
		Currency:   cfg.Club.Currency,
	})
	sessionService := session.NewService(state, calc, clk, mq, logger)
	catalogService := catalog.NewService(state, logger)

	saver := handlers.NewSaver(store, state, logger)
	if err := saver.Persist(context.Background()); err != nil {
		logger.Fatal("Failed initial state save", zap.Error(err))
	}

	// 7. Initialize WebSocket Hub and the display ticker feeding it
	wsHub := wsAdapter.NewHub()
	go wsHub.Run()

	tickerCtx, stopTicker := context.WithCancel(context.Background())
	defer stopTicker()
	go runDisplayTicker(tickerCtx, wsHub, sessionService, clk, cfg.Club.DisplayTick, logger)

	// 8. Initialize Fiber HTTP Server
	app := fiber.New(fiber.Config{
		AppName:               serviceName,
		DisableStartupMessage: true,
		ErrorHandler:          middleware.ErrorHandler(logger),
	})

	app.Use(recover.New())
	app.Use(fiberlogger.New())
	app.Use(cors.New(cors.Config{
		AllowOrigins: strings.Join(cfg.HTTP.AllowedOrigins, ","),
		AllowHeaders: "Origin, Content-Type, Accept",
		AllowMethods: "GET, POST, PUT, DELETE, OPTIONS",
	}))

	app.Get("/health/live", func(c *fiber.Ctx) error {
		return c.SendString("OK")
	})
	app.Get("/health/ready", func(c *fiber.Ctx) error {
		return c.SendString("Ready")
	})

	if cfg.Prometheus.Enabled {
		app.Get(cfg.Prometheus.Path, func(c *fiber.Ctx) error {
			handler := fasthttpadaptor.NewFastHTTPHandler(promhttp.Handler())
			handler(c.Context())
			return nil
		})
	}

	// API v1 Routes
	v1 := app.Group("/api/v1")

	roomHandler := handlers.NewRoomHandler(sessionService, saver, clk, logger)
	v1.Get("/rooms", roomHandler.List)
	v1.Post("/rooms/:id/start", roomHandler.Start)
	v1.Post("/rooms/:id/stop", roomHandler.Stop)
	v1.Post("/rooms/:id/items", roomHandler.AttachItem)
	v1.Delete("/rooms/:id/items/:itemId", roomHandler.RemoveItem)
	v1.Post("/rooms/:id/end", roomHandler.End)

	productHandler := handlers.NewProductHandler(catalogService, saver, logger)
	v1.Get("/products", productHandler.List)
	v1.Post("/products", productHandler.Create)
	v1.Put("/products/:id", productHandler.Update)
	v1.Delete("/products/:id", productHandler.Delete)

	archiveHandler := handlers.NewArchiveHandler(sessionService, logger)
	v1.Get("/archive", archiveHandler.List)
	v1.Get("/archive/export", archiveHandler.ExportCSV)

	// Live display WebSocket
	app.Use("/ws", func(c *fiber.Ctx) error {
		if websocket.IsWebSocketUpgrade(c) {
			return c.Next()
		}
		return fiber.ErrUpgradeRequired
	})
	app.Get("/ws/rooms", websocket.New(func(c *websocket.Conn) {
		wsHub.ServeClient(c)
	}))

	// 9. Start HTTP Server
	go func() {
		logger.Info("Starting HTTP server", zap.Int("port", cfg.HTTP.Port))
		if err := app.Listen(fmt.Sprintf(":%d", cfg.HTTP.Port)); err != nil {
			logger.Fatal("HTTP server failed", zap.Error(err))
		}
	}()

	// 10. Graceful Shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("Shutting down server...")
	stopTicker()

	ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()

	if err := app.ShutdownWithContext(ctx); err != nil {
		logger.Error("Server forced to shutdown", zap.Error(err))
	}

	// Final snapshot so running rooms resume after a restart.
	if err := saver.Persist(ctx); err != nil {
		logger.Error("Failed final state save", zap.Error(err))
	}

	logger.Info("Server exited gracefully")
}

func newStateStore(cfg *config.Config, logger *zap.Logger) (ports.StateStore, func(), error) {
	switch cfg.Storage.Driver {
	case "postgres":
		db, err := postgres.NewConnection(cfg.Database.URL, logger)
		if err != nil {
			return nil, nil, err
		}
		if cfg.Database.AutoMigrate {
			if err := postgres.RunMigrations(db); err != nil {
				return nil, nil, err
			}
		}
		cleanup := func() {
			if err := postgres.Close(db); err != nil {
				logger.Error("Failed to close database", zap.Error(err))
			}
		}
		return postgres.NewStore(db, logger), cleanup, nil
	case "jsonfile":
		return jsonfile.NewStore(cfg.Storage.FilePath, logger), func() {}, nil
	default:
		return nil, nil, fmt.Errorf("unknown storage driver %q", cfg.Storage.Driver)
	}
}

// runDisplayTicker broadcasts a full room snapshot on a fixed cadence. This is
// the only periodic job in the process; the engine exposes time-parameterized
// queries and leaves scheduling to drivers like this one.
func runDisplayTicker(ctx context.Context, hub *wsAdapter.Hub, svc ports.SessionService, clk clock.Clock, every time.Duration, logger *zap.Logger) {
	if every <= 0 {
		every = time.Second
	}
	ticker := time.NewTicker(every)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			views := svc.Snapshot(clk.Now())
			data, err := json.Marshal(views)
			if err != nil {
				logger.Error("Failed to encode room snapshot", zap.Error(err))
				continue
			}
			hub.Broadcast(data)
		}
	}
}
