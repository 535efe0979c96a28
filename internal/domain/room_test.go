package domain

import (
	"testing"
	"time"
)

func TestElapsedAt(t *testing.T) {
	t0 := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	room := &Room{
		ID:          "room1",
		Status:      RoomStatusRunning,
		Accumulated: 10 * time.Minute,
	}
	room.RunStartedAt = &t0

	if got := room.ElapsedAt(t0.Add(5 * time.Minute)); got != 15*time.Minute {
		t.Errorf("expected 15m, got %v", got)
	}
	// A query before the segment start counts the open segment as zero.
	if got := room.ElapsedAt(t0.Add(-time.Hour)); got != 10*time.Minute {
		t.Errorf("expected banked time only, got %v", got)
	}

	room.Status = RoomStatusIdle
	room.RunStartedAt = nil
	if got := room.ElapsedAt(t0.Add(time.Hour)); got != 10*time.Minute {
		t.Errorf("idle room must not tick, got %v", got)
	}
}

func TestHasOpenSession(t *testing.T) {
	t0 := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)

	room := &Room{ID: "room1", Status: RoomStatusIdle}
	if room.HasOpenSession(t0) {
		t.Error("fresh room must have nothing to end")
	}

	room.Items = []LineItem{{ID: "i1", Name: "Chips", UnitPrice: 5000, Quantity: 1}}
	if !room.HasOpenSession(t0) {
		t.Error("room with items has an open session")
	}

	room.Items = nil
	room.Accumulated = time.Second
	if !room.HasOpenSession(t0) {
		t.Error("room with banked time has an open session")
	}
}

func TestFormatElapsed(t *testing.T) {
	cases := []struct {
		in   time.Duration
		want string
	}{
		{0, "00:00:00"},
		{59 * time.Second, "00:00:59"},
		{90 * time.Minute, "01:30:00"},
		{25*time.Hour + 3*time.Minute + 7*time.Second, "25:03:07"},
	}
	for _, c := range cases {
		if got := FormatElapsed(c.in); got != c.want {
			t.Errorf("FormatElapsed(%v) = %q, want %q", c.in, got, c.want)
		}
	}
}

func TestEnsureDefaults(t *testing.T) {
	st := &State{}
	st.EnsureDefaults(5, "Xona")

	if len(st.Rooms) != 5 {
		t.Fatalf("expected 5 rooms, got %d", len(st.Rooms))
	}
	if st.Rooms[0].ID != "room1" || st.Rooms[0].Name != "Xona 1" {
		t.Errorf("unexpected first room: %+v", st.Rooms[0])
	}
	if len(st.Products) != 4 {
		t.Errorf("expected default products, got %d", len(st.Products))
	}

	// A loaded state keeps its rooms, including one persisted mid-run.
	t0 := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	st.Rooms[2].Status = RoomStatusRunning
	st.Rooms[2].RunStartedAt = &t0
	st.EnsureDefaults(5, "Xona")
	if st.Rooms[2].RunStartedAt == nil {
		t.Error("mid-run room was reset by EnsureDefaults")
	}
}
