//go:build !integration

package usecase

import (
	"context"
	"errors"
	"sync"
	"testing"

	"gradscout/internal/domain"
	"gradscout/internal/domain/model"
	"gradscout/internal/infra/worker"
)

func TestPromptHistoryLog_Append(t *testing.T) {
	ctx := context.Background()

	t.Run("newest entry first", func(t *testing.T) {
		repo := newMemHistoryRepo()
		l := NewPromptHistoryLog(repo, inlineSerializer{}, newTestLogger())

		for _, p := range []string{"A", "B", "C"} {
			if err := l.Append(ctx, "thandi", model.PromptJobSearch, p, model.HistoryPayload{}); err != nil {
				t.Fatalf("Append(%q): %v", p, err)
			}
		}

		items, err := l.List(ctx, "thandi")
		if err != nil {
			t.Fatalf("List: %v", err)
		}
		got := []string{items[0].Prompt, items[1].Prompt, items[2].Prompt}
		want := []string{"C", "B", "A"}
		for i := range want {
			if got[i] != want[i] {
				t.Errorf("position %d: got %q, want %q", i, got[i], want[i])
			}
		}
	})

	t.Run("entries carry id, timestamp and payload", func(t *testing.T) {
		repo := newMemHistoryRepo()
		l := NewPromptHistoryLog(repo, inlineSerializer{}, newTestLogger())

		payload := model.HistoryPayload{CareerField: "Nursing", Location: "Durban"}
		if err := l.Append(ctx, "thandi", model.PromptJobSearch, "prompt text", payload); err != nil {
			t.Fatalf("Append: %v", err)
		}
		items, _ := l.List(ctx, "thandi")
		if len(items) != 1 {
			t.Fatalf("expected 1 item, got %d", len(items))
		}
		e := items[0]
		if e.ID == "" || e.Timestamp.IsZero() {
			t.Errorf("entry missing identity: %+v", e)
		}
		if e.Query != payload {
			t.Errorf("payload: got %+v, want %+v", e.Query, payload)
		}
	})

	t.Run("anonymous append rejected", func(t *testing.T) {
		l := NewPromptHistoryLog(newMemHistoryRepo(), inlineSerializer{}, newTestLogger())
		err := l.Append(ctx, "", model.PromptJobSearch, "p", model.HistoryPayload{})
		if !errors.Is(err, domain.ErrInvalidArgument) {
			t.Fatalf("expected ErrInvalidArgument, got %v", err)
		}
	})

	t.Run("concurrent appends for one user lose nothing", func(t *testing.T) {
		repo := newMemHistoryRepo()
		l := NewPromptHistoryLog(repo, worker.NewKeyedSerial(), newTestLogger())

		const n = 32
		var wg sync.WaitGroup
		wg.Add(n)
		for i := 0; i < n; i++ {
			go func() {
				defer wg.Done()
				_ = l.Append(ctx, "thandi", model.PromptImageGeneration, "p", model.HistoryPayload{})
			}()
		}
		wg.Wait()

		items, err := l.List(ctx, "thandi")
		if err != nil {
			t.Fatalf("List: %v", err)
		}
		if len(items) != n {
			t.Fatalf("expected %d entries, got %d", n, len(items))
		}
	})
}

func TestPromptHistoryLog_List(t *testing.T) {
	ctx := context.Background()

	t.Run("no history yet reads as empty", func(t *testing.T) {
		l := NewPromptHistoryLog(newMemHistoryRepo(), inlineSerializer{}, newTestLogger())
		items, err := l.List(ctx, "nobody-yet")
		if err != nil {
			t.Fatalf("List: %v", err)
		}
		if len(items) != 0 {
			t.Fatalf("expected empty history, got %d entries", len(items))
		}
	})

	t.Run("anonymous list rejected", func(t *testing.T) {
		l := NewPromptHistoryLog(newMemHistoryRepo(), inlineSerializer{}, newTestLogger())
		if _, err := l.List(ctx, ""); !errors.Is(err, domain.ErrNotSignedIn) {
			t.Fatalf("expected ErrNotSignedIn, got %v", err)
		}
	})
}
