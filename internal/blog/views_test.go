package blog

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"

	"inkwell/internal/models"
)

func viewFixture(t *testing.T) (*memPostStore, *ViewRecorder, *models.Post) {
	t.Helper()
	store := newMemPostStore()
	created, err := store.Create(&models.Post{AuthorID: uuid.New(), Title: "Viewed", Slug: "viewed"})
	if err != nil {
		t.Fatalf("create fixture post: %v", err)
	}
	return store, NewViewRecorder(store), created
}

func TestViewRecorderCountsOncePerSession(t *testing.T) {
	ctx := context.Background()
	store, rec, post := viewFixture(t)
	flags := newMemFlags()
	reader := uuid.New()

	// N fetches in the same session increment exactly once.
	for i := 0; i < 5; i++ {
		views, err := rec.Record(ctx, post, reader, flags)
		if err != nil {
			t.Fatalf("Record #%d: %v", i+1, err)
		}
		if views != 1 {
			t.Fatalf("Record #%d: got %d views, want 1", i+1, views)
		}
	}

	persisted, _ := store.FindByID(post.ID)
	if persisted.Views != 1 {
		t.Errorf("persisted views: got %d, want 1", persisted.Views)
	}
}

func TestViewRecorderCountsEachDistinctSession(t *testing.T) {
	ctx := context.Background()
	store, rec, post := viewFixture(t)

	const sessions = 4
	for i := 0; i < sessions; i++ {
		if _, err := rec.Record(ctx, post, uuid.New(), newMemFlags()); err != nil {
			t.Fatalf("Record session %d: %v", i+1, err)
		}
		// Reload so the recorder sees the current count.
		post, _ = store.FindByID(post.ID)
	}

	if post.Views != sessions {
		t.Errorf("views: got %d, want %d", post.Views, sessions)
	}
}

func TestViewRecorderSkipsAuthorSelfViews(t *testing.T) {
	ctx := context.Background()
	store, rec, post := viewFixture(t)

	// Fresh session either time — the author still never counts.
	for i := 0; i < 2; i++ {
		views, err := rec.Record(ctx, post, post.AuthorID, newMemFlags())
		if err != nil {
			t.Fatalf("Record: %v", err)
		}
		if views != 0 {
			t.Errorf("self-view incremented counter to %d", views)
		}
	}

	persisted, _ := store.FindByID(post.ID)
	if persisted.Views != 0 {
		t.Errorf("persisted views after self-views: got %d, want 0", persisted.Views)
	}
}

func TestViewRecorderCountsAnonymousViewers(t *testing.T) {
	ctx := context.Background()
	_, rec, post := viewFixture(t)

	views, err := rec.Record(ctx, post, uuid.Nil, newMemFlags())
	if err != nil {
		t.Fatalf("Record: %v", err)
	}
	if views != 1 {
		t.Errorf("anonymous view: got %d views, want 1", views)
	}
}

func TestViewRecorderReportsLiveCountWithoutIncrement(t *testing.T) {
	ctx := context.Background()
	store, rec, post := viewFixture(t)

	// Two other sessions bring the counter to 2; the snapshot in hand
	// still says 0.
	for i := 0; i < 2; i++ {
		if _, err := rec.Record(ctx, post, uuid.New(), newMemFlags()); err != nil {
			t.Fatalf("Record other session: %v", err)
		}
	}
	if post.Views != 0 {
		t.Fatalf("fixture snapshot mutated: %d", post.Views)
	}

	// Repeat call in an already-counted session reports the live count,
	// not the stale snapshot.
	flags := newMemFlags()
	reader := uuid.New()
	if _, err := rec.Record(ctx, post, reader, flags); err != nil {
		t.Fatalf("Record first: %v", err)
	}
	views, err := rec.Record(ctx, post, reader, flags)
	if err != nil {
		t.Fatalf("Record repeat: %v", err)
	}
	if views != 3 {
		t.Errorf("repeat call: got %d views, want 3", views)
	}

	// The author's own read doesn't increment but still sees the live count.
	views, err = rec.Record(ctx, post, post.AuthorID, newMemFlags())
	if err != nil {
		t.Fatalf("Record self-view: %v", err)
	}
	if views != 3 {
		t.Errorf("self-view: got %d views, want 3", views)
	}

	persisted, _ := store.FindByID(post.ID)
	if persisted.Views != 3 {
		t.Errorf("persisted views: got %d, want 3", persisted.Views)
	}
}

// failingCounter simulates a persistence failure during increment.
type failingCounter struct{ err error }

func (f failingCounter) IncrementViews(uuid.UUID) (int64, error) { return 0, f.err }
func (f failingCounter) Views(uuid.UUID) (int64, error)          { return 0, nil }

func TestViewRecorderDoesNotMarkOnFailedIncrement(t *testing.T) {
	ctx := context.Background()
	boom := errors.New("db down")
	rec := NewViewRecorder(failingCounter{err: boom})
	flags := newMemFlags()
	post := &models.Post{ID: uuid.New(), AuthorID: uuid.New()}

	if _, err := rec.Record(ctx, post, uuid.New(), flags); !errors.Is(err, boom) {
		t.Fatalf("expected increment error, got %v", err)
	}

	// Flag must not be set, so a retry can still count the view.
	if set, _ := flags.Get(ctx, viewFlagKey(post.ID)); set {
		t.Error("flag set despite failed increment")
	}
}
