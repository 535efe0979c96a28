package session

import (
	"testing"
	"time"

	"go.uber.org/zap"

	"github.com/JonathanBek0501/auragameclub/internal/domain"
	"github.com/JonathanBek0501/auragameclub/internal/mocks"
	"github.com/JonathanBek0501/auragameclub/internal/ports"
	"github.com/JonathanBek0501/auragameclub/internal/service/billing"
)

func newTestLogger() *zap.Logger {
	logger, _ := zap.NewDevelopment()
	return logger
}

func newTestState() *domain.State {
	st := &domain.State{}
	st.EnsureDefaults(2, "Room")
	st.Products = []domain.Product{
		{ID: "prod-cola", Name: "Coca-Cola 0.5L", UnitPrice: 7000},
		{ID: "prod-hotdog", Name: "Hot-Dog", UnitPrice: 12000},
	}
	return st
}

func newTestService(st *domain.State, clk *mocks.MockClock, mq *mocks.MockMessageQueue) ports.SessionService {
	calc := billing.NewCalculator(billing.Config{HourlyRate: 10000, Currency: "UZS"})
	return NewService(st, calc, clk, mq, newTestLogger())
}

var t0 = time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)

func TestStart_Success(t *testing.T) {
	// Arrange
	st := newTestState()
	clk := mocks.NewMockClock(t0)
	svc := newTestService(st, clk, mocks.NewMockMessageQueue())

	// Act
	room, err := svc.Start("room1")

	// Assert
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if room.Status != domain.RoomStatusRunning {
		t.Errorf("expected status Running, got %s", room.Status)
	}
	if room.RunStartedAt == nil || !room.RunStartedAt.Equal(t0) {
		t.Errorf("expected run started at %v, got %v", t0, room.RunStartedAt)
	}
}

func TestStart_UnknownRoom(t *testing.T) {
	st := newTestState()
	svc := newTestService(st, mocks.NewMockClock(t0), mocks.NewMockMessageQueue())

	if _, err := svc.Start("room99"); err != domain.ErrRoomNotFound {
		t.Fatalf("expected ErrRoomNotFound, got %v", err)
	}
}

func TestStart_AlreadyRunning(t *testing.T) {
	// Arrange: a second start must not open a second segment.
	st := newTestState()
	clk := mocks.NewMockClock(t0)
	svc := newTestService(st, clk, mocks.NewMockMessageQueue())

	if _, err := svc.Start("room1"); err != nil {
		t.Fatalf("first start failed: %v", err)
	}
	clk.Advance(10 * time.Minute)

	// Act
	_, err := svc.Start("room1")

	// Assert
	if err != domain.ErrRoomAlreadyRunning {
		t.Fatalf("expected ErrRoomAlreadyRunning, got %v", err)
	}

	// A subsequent stop banks exactly one segment from the first start.
	clk.Advance(5 * time.Minute)
	room, err := svc.Stop("room1")
	if err != nil {
		t.Fatalf("stop failed: %v", err)
	}
	if room.Accumulated != 15*time.Minute {
		t.Errorf("expected 15m banked, got %v", room.Accumulated)
	}
}

func TestStop_NotRunning(t *testing.T) {
	st := newTestState()
	svc := newTestService(st, mocks.NewMockClock(t0), mocks.NewMockMessageQueue())

	if _, err := svc.Stop("room1"); err != domain.ErrRoomNotRunning {
		t.Fatalf("expected ErrRoomNotRunning, got %v", err)
	}
}

func TestSegmentAccumulation(t *testing.T) {
	// Arrange: start/stop twice and expect the exact sum of both segments.
	st := newTestState()
	clk := mocks.NewMockClock(t0)
	svc := newTestService(st, clk, mocks.NewMockMessageQueue())

	// Act: segment one, 20 minutes; a 10 minute pause; segment two, 7 minutes.
	if _, err := svc.Start("room1"); err != nil {
		t.Fatal(err)
	}
	clk.Advance(20 * time.Minute)
	if _, err := svc.Stop("room1"); err != nil {
		t.Fatal(err)
	}
	clk.Advance(10 * time.Minute)
	if _, err := svc.Start("room1"); err != nil {
		t.Fatal(err)
	}
	clk.Advance(7 * time.Minute)
	room, err := svc.Stop("room1")
	if err != nil {
		t.Fatal(err)
	}

	// Assert: no double counting, no gap counting.
	if room.Accumulated != 27*time.Minute {
		t.Errorf("expected 27m accumulated, got %v", room.Accumulated)
	}
	if room.Status != domain.RoomStatusIdle {
		t.Errorf("expected Idle after stop, got %s", room.Status)
	}
	if room.RunStartedAt != nil {
		t.Errorf("expected cleared run start, got %v", room.RunStartedAt)
	}
}

func TestAttachItem_SnapshotsPrice(t *testing.T) {
	// Arrange
	st := newTestState()
	svc := newTestService(st, mocks.NewMockClock(t0), mocks.NewMockMessageQueue())

	// Act: attach while idle (allowed any time before end), then change the
	// catalog price.
	room, err := svc.AttachItem("room1", "prod-cola", 2)
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	st.Products[0].UnitPrice = 9999

	// Assert: the line item keeps its snapshot.
	if len(room.Items) != 1 {
		t.Fatalf("expected 1 item, got %d", len(room.Items))
	}
	item := room.Items[0]
	if item.UnitPrice != 7000 {
		t.Errorf("expected snapshot price 7000, got %d", item.UnitPrice)
	}
	if item.Quantity != 2 {
		t.Errorf("expected quantity 2, got %d", item.Quantity)
	}
	if item.Name != "Coca-Cola 0.5L" {
		t.Errorf("unexpected item name %q", item.Name)
	}
	if item.ID == "" {
		t.Error("expected item to get an id")
	}
}

func TestAttachItem_Rejections(t *testing.T) {
	st := newTestState()
	svc := newTestService(st, mocks.NewMockClock(t0), mocks.NewMockMessageQueue())

	if _, err := svc.AttachItem("room1", "prod-cola", 0); err != domain.ErrInvalidQuantity {
		t.Errorf("expected ErrInvalidQuantity for qty 0, got %v", err)
	}
	if _, err := svc.AttachItem("room1", "prod-cola", -3); err != domain.ErrInvalidQuantity {
		t.Errorf("expected ErrInvalidQuantity for negative qty, got %v", err)
	}
	if _, err := svc.AttachItem("room1", "prod-missing", 1); err != domain.ErrProductNotFound {
		t.Errorf("expected ErrProductNotFound, got %v", err)
	}
	if _, err := svc.AttachItem("room99", "prod-cola", 1); err != domain.ErrRoomNotFound {
		t.Errorf("expected ErrRoomNotFound, got %v", err)
	}
}

func TestRemoveItem(t *testing.T) {
	st := newTestState()
	svc := newTestService(st, mocks.NewMockClock(t0), mocks.NewMockMessageQueue())

	room, err := svc.AttachItem("room1", "prod-cola", 1)
	if err != nil {
		t.Fatal(err)
	}
	itemID := room.Items[0].ID

	room, err = svc.RemoveItem("room1", itemID)
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if len(room.Items) != 0 {
		t.Errorf("expected no items left, got %d", len(room.Items))
	}

	if _, err := svc.RemoveItem("room1", itemID); err != domain.ErrItemNotFound {
		t.Errorf("expected ErrItemNotFound, got %v", err)
	}
}

func TestCurrentElapsed_WhileRunning(t *testing.T) {
	st := newTestState()
	clk := mocks.NewMockClock(t0)
	svc := newTestService(st, clk, mocks.NewMockMessageQueue())

	if _, err := svc.Start("room1"); err != nil {
		t.Fatal(err)
	}

	at := t0.Add(42 * time.Minute)
	elapsed, err := svc.CurrentElapsed("room1", at)
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if elapsed != 42*time.Minute {
		t.Errorf("expected 42m, got %v", elapsed)
	}

	// Idempotent: same instant, same answer, no mutation.
	again, err := svc.CurrentElapsed("room1", at)
	if err != nil {
		t.Fatal(err)
	}
	if again != elapsed {
		t.Errorf("query mutated state: %v != %v", again, elapsed)
	}

	total, err := svc.CurrentTotal("room1", at)
	if err != nil {
		t.Fatal(err)
	}
	// ceil(0.7h × 10000) = 7000
	if total != 7000 {
		t.Errorf("expected total 7000, got %d", total)
	}
}

func TestCurrentElapsed_ResumesAfterReload(t *testing.T) {
	// Arrange: state as persisted mid-run and reloaded later. No Start call;
	// elapsed derives from the stored segment start.
	st := newTestState()
	startedAt := t0
	st.Rooms[0].Status = domain.RoomStatusRunning
	st.Rooms[0].RunStartedAt = &startedAt
	st.Rooms[0].Accumulated = 10 * time.Minute

	svc := newTestService(st, mocks.NewMockClock(t0.Add(time.Hour)), mocks.NewMockMessageQueue())

	// Act
	elapsed, err := svc.CurrentElapsed("room1", t0.Add(30*time.Minute))

	// Assert: banked 10m plus 30m of (possibly offline) wall-clock time.
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if elapsed != 40*time.Minute {
		t.Errorf("expected 40m, got %v", elapsed)
	}
}

func TestEnd_ArchivesAndResets(t *testing.T) {
	// Arrange: 90 minutes of running time plus two purchases.
	st := newTestState()
	clk := mocks.NewMockClock(t0)
	mq := mocks.NewMockMessageQueue()
	svc := newTestService(st, clk, mq)

	if _, err := svc.Start("room1"); err != nil {
		t.Fatal(err)
	}
	if _, err := svc.AttachItem("room1", "prod-cola", 2); err != nil {
		t.Fatal(err)
	}
	if _, err := svc.AttachItem("room1", "prod-hotdog", 1); err != nil {
		t.Fatal(err)
	}
	endAt := clk.Advance(90 * time.Minute)

	// Act: end while still running; the final segment banks implicitly.
	entry, err := svc.End("room1")

	// Assert
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if entry.Elapsed != 90*time.Minute {
		t.Errorf("expected 90m elapsed, got %v", entry.Elapsed)
	}
	// ceil(1.5h × 10000) + 2×7000 + 12000
	if entry.Total != 41000 {
		t.Errorf("expected total 41000, got %d", entry.Total)
	}
	if entry.RoomName != "Room 1" {
		t.Errorf("unexpected room name %q", entry.RoomName)
	}
	if !entry.EndedAt.Equal(endAt) {
		t.Errorf("expected ended at %v, got %v", endAt, entry.EndedAt)
	}
	if len(entry.Items) != 2 {
		t.Errorf("expected 2 archived items, got %d", len(entry.Items))
	}

	room := st.Room("room1")
	if room.Status != domain.RoomStatusIdle || room.Accumulated != 0 ||
		room.RunStartedAt != nil || len(room.Items) != 0 {
		t.Errorf("expected fully reset room, got %+v", room)
	}

	archive := svc.Archive()
	if len(archive) != 1 {
		t.Fatalf("expected exactly one archive entry, got %d", len(archive))
	}
	if archive[0].ID != entry.ID {
		t.Errorf("archive holds a different entry: %s != %s", archive[0].ID, entry.ID)
	}

	if got := len(mq.GetPublishedMessages("session.ended")); got != 1 {
		t.Errorf("expected 1 session.ended event, got %d", got)
	}
}

func TestEnd_WhileIdleWithBankedTime(t *testing.T) {
	st := newTestState()
	clk := mocks.NewMockClock(t0)
	svc := newTestService(st, clk, mocks.NewMockMessageQueue())

	if _, err := svc.Start("room1"); err != nil {
		t.Fatal(err)
	}
	clk.Advance(30 * time.Minute)
	if _, err := svc.Stop("room1"); err != nil {
		t.Fatal(err)
	}
	// Idle time before ending must not be charged.
	clk.Advance(2 * time.Hour)

	entry, err := svc.End("room1")
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if entry.Elapsed != 30*time.Minute {
		t.Errorf("expected 30m elapsed, got %v", entry.Elapsed)
	}
}

func TestEnd_NothingToEnd(t *testing.T) {
	st := newTestState()
	mq := mocks.NewMockMessageQueue()
	svc := newTestService(st, mocks.NewMockClock(t0), mq)

	_, err := svc.End("room1")
	if err != domain.ErrNothingToEnd {
		t.Fatalf("expected ErrNothingToEnd, got %v", err)
	}
	if len(svc.Archive()) != 0 {
		t.Error("expected no archive entry for an untouched room")
	}
	if len(mq.GetPublishedMessages("session.ended")) != 0 {
		t.Error("expected no event for a rejected end")
	}
}

func TestEnd_ItemsOnlySession(t *testing.T) {
	// A room that never ran but has purchases can still be ended.
	st := newTestState()
	svc := newTestService(st, mocks.NewMockClock(t0), mocks.NewMockMessageQueue())

	if _, err := svc.AttachItem("room1", "prod-hotdog", 3); err != nil {
		t.Fatal(err)
	}

	entry, err := svc.End("room1")
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if entry.Elapsed != 0 {
		t.Errorf("expected zero elapsed, got %v", entry.Elapsed)
	}
	if entry.Total != 36000 {
		t.Errorf("expected total 36000, got %d", entry.Total)
	}
}

func TestEnd_ArchiveIsImmuneToLaterSessions(t *testing.T) {
	st := newTestState()
	clk := mocks.NewMockClock(t0)
	svc := newTestService(st, clk, mocks.NewMockMessageQueue())

	if _, err := svc.AttachItem("room1", "prod-cola", 1); err != nil {
		t.Fatal(err)
	}
	if _, err := svc.End("room1"); err != nil {
		t.Fatal(err)
	}

	// The next session's items must not leak into history.
	if _, err := svc.AttachItem("room1", "prod-hotdog", 5); err != nil {
		t.Fatal(err)
	}

	archive := svc.Archive()
	if len(archive[0].Items) != 1 || archive[0].Items[0].Name != "Coca-Cola 0.5L" {
		t.Errorf("archived items changed after room reuse: %+v", archive[0].Items)
	}
}

func TestSnapshot(t *testing.T) {
	st := newTestState()
	clk := mocks.NewMockClock(t0)
	svc := newTestService(st, clk, mocks.NewMockMessageQueue())

	if _, err := svc.Start("room2"); err != nil {
		t.Fatal(err)
	}
	if _, err := svc.AttachItem("room2", "prod-cola", 1); err != nil {
		t.Fatal(err)
	}

	views := svc.Snapshot(t0.Add(30 * time.Minute))
	if len(views) != 2 {
		t.Fatalf("expected 2 rooms, got %d", len(views))
	}
	idle, running := views[0], views[1]
	if idle.Total != 0 || idle.Elapsed != "00:00:00" {
		t.Errorf("unexpected idle view: %+v", idle)
	}
	// ceil(0.5h × 10000) = 5000 time charge plus one cola
	if running.TimeCharge != 5000 || running.ItemsCharge != 7000 || running.Total != 12000 {
		t.Errorf("unexpected running view charges: %+v", running)
	}
	if running.Elapsed != "00:30:00" {
		t.Errorf("expected formatted elapsed 00:30:00, got %s", running.Elapsed)
	}
}
