package handlers

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	"github.com/JonathanBek0501/auragameclub/internal/ports"
)

type ArchiveHandler struct {
	service ports.SessionService
	log     *zap.Logger
}

func NewArchiveHandler(service ports.SessionService, log *zap.Logger) *ArchiveHandler {
	return &ArchiveHandler{
		service: service,
		log:     log,
	}
}

// List returns the archive in insertion order; reverse-chronological display
// is the client's choice.
func (h *ArchiveHandler) List(c *fiber.Ctx) error {
	return c.JSON(h.service.Archive())
}

// ExportCSV renders the archive as a CSV report: room, end, elapsed seconds,
// an item summary, and the archived total.
func (h *ArchiveHandler) ExportCSV(c *fiber.Ctx) error {
	var buf bytes.Buffer
	w := csv.NewWriter(&buf)

	if err := w.Write([]string{"room", "end", "elapsed_seconds", "items", "total"}); err != nil {
		return respondError(c, err)
	}
	for _, entry := range h.service.Archive() {
		var items []string
		for _, it := range entry.Items {
			items = append(items, fmt.Sprintf("%d×%s", it.Quantity, it.Name))
		}
		record := []string{
			entry.RoomName,
			entry.EndedAt.Format(time.RFC3339),
			strconv.FormatInt(int64(entry.Elapsed.Seconds()), 10),
			strings.Join(items, "; "),
			strconv.FormatInt(entry.Total, 10),
		}
		if err := w.Write(record); err != nil {
			return respondError(c, err)
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return respondError(c, err)
	}

	c.Set(fiber.HeaderContentType, "text/csv; charset=utf-8")
	c.Set(fiber.HeaderContentDisposition, `attachment; filename="archive.csv"`)
	return c.Send(buf.Bytes())
}
