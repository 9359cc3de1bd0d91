package store

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/verte-zerg/keyseq/internal/model"
)

func openTestStore(t *testing.T) *Store {
	t.Helper()
	st, err := Open(filepath.Join(t.TempDir(), "journal.db"))
	if err != nil {
		t.Fatalf("open failed: %v", err)
	}
	t.Cleanup(func() {
		if err := st.Close(); err != nil {
			t.Fatalf("close failed: %v", err)
		}
	})
	return st
}

func TestJournalSessionsAndEvents(t *testing.T) {
	ctx := context.Background()
	st := openTestStore(t)

	base := time.Date(2024, 3, 1, 10, 0, 0, 0, time.UTC)
	first, err := st.StartSession(ctx, model.SessionInfo{StartedAt: base, LayoutPath: "a.yml", RankingPath: "a.txt", Universe: 10})
	if err != nil {
		t.Fatalf("start failed: %v", err)
	}
	if _, err := uuid.Parse(first); err != nil {
		t.Fatalf("expected uuid session id, got %q", first)
	}
	second, err := st.StartSession(ctx, model.SessionInfo{StartedAt: base.Add(time.Hour), LayoutPath: "b.yml", RankingPath: "b.txt", Universe: 5})
	if err != nil {
		t.Fatalf("start failed: %v", err)
	}

	events := []model.PlacementEvent{
		{SessionID: first, At: base, Action: model.ActionPlace, Seq: model.NewKeySeq(0), Position: 0, Ordered: 1},
		{SessionID: first, At: base, Action: model.ActionPlace, Seq: model.NewKeySeq(1), Position: 0, Ordered: 2},
		{SessionID: first, At: base, Action: model.ActionPrevious, Seq: model.NewKeySeq(1), Position: -1, Ordered: 1},
		{SessionID: first, At: base, Action: model.ActionSave, Ordered: 1},
	}
	for _, ev := range events {
		if err := st.RecordEvent(ctx, ev); err != nil {
			t.Fatalf("record failed: %v", err)
		}
	}

	sessions, err := st.ListSessions(ctx, 0)
	if err != nil {
		t.Fatalf("list failed: %v", err)
	}
	if len(sessions) != 2 {
		t.Fatalf("expected 2 sessions, got %d", len(sessions))
	}
	if sessions[0].ID != second || sessions[1].ID != first {
		t.Fatalf("expected newest first, got %v", sessions)
	}
	got := sessions[1]
	if got.Placed != 2 || got.Saves != 1 || got.LastOrdered != 1 || got.Universe != 10 {
		t.Fatalf("unexpected summary: %+v", got)
	}
	if !got.StartedAt.Equal(base) {
		t.Fatalf("unexpected start time: %v", got.StartedAt)
	}
	if sessions[0].Placed != 0 || sessions[0].LastOrdered != 0 {
		t.Fatalf("expected empty second session, got %+v", sessions[0])
	}

	limited, err := st.ListSessions(ctx, 1)
	if err != nil {
		t.Fatalf("list failed: %v", err)
	}
	if len(limited) != 1 || limited[0].ID != second {
		t.Fatalf("unexpected limited list: %v", limited)
	}

	recorded, err := st.ListEvents(ctx, first)
	if err != nil {
		t.Fatalf("list events failed: %v", err)
	}
	if len(recorded) != len(events) {
		t.Fatalf("expected %d events, got %d", len(events), len(recorded))
	}
	if recorded[1].Seq != model.NewKeySeq(1) || recorded[2].Action != model.ActionPrevious {
		t.Fatalf("unexpected events: %+v", recorded)
	}
	if !recorded[3].Seq.IsEmpty() {
		t.Fatalf("expected empty sequence for save event, got %v", recorded[3].Seq)
	}
}

func TestRecordEventRequiresSession(t *testing.T) {
	st := openTestStore(t)
	if err := st.RecordEvent(context.Background(), model.PlacementEvent{Action: model.ActionPlace}); err == nil {
		t.Fatalf("expected error without session id")
	}
}
