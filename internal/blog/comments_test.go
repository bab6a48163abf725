package blog

import (
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"

	"inkwell/internal/models"
)

func testPost(authorID uuid.UUID) *models.Post {
	return &models.Post{ID: uuid.New(), AuthorID: authorID, Slug: "test-post"}
}

func TestCommentServiceAddRootAndReply(t *testing.T) {
	store := newMemCommentStore()
	svc := NewCommentService(store)
	post := testPost(uuid.New())
	commenter := uuid.New()

	root, err := svc.Add(post, commenter, "First!", nil)
	if err != nil {
		t.Fatalf("Add root: %v", err)
	}
	if !root.IsRoot() {
		t.Error("expected root comment")
	}

	reply, err := svc.Add(post, uuid.New(), "Welcome", &root.ID)
	if err != nil {
		t.Fatalf("Add reply: %v", err)
	}
	if reply.ParentID == nil || *reply.ParentID != root.ID {
		t.Error("reply not linked to parent")
	}

	n, err := svc.Count(post)
	if err != nil {
		t.Fatalf("Count: %v", err)
	}
	if n != 2 {
		t.Errorf("count: got %d, want 2", n)
	}
}

func TestCommentServiceAddRejectsEmptyContent(t *testing.T) {
	svc := NewCommentService(newMemCommentStore())
	post := testPost(uuid.New())

	for _, content := range []string{"", "   ", "\n\t "} {
		if _, err := svc.Add(post, uuid.New(), content, nil); !IsValidation(err) {
			t.Errorf("Add(%q): expected ValidationError, got %v", content, err)
		}
	}
}

func TestCommentServiceAddRejectsForeignParent(t *testing.T) {
	store := newMemCommentStore()
	svc := NewCommentService(store)
	postA := testPost(uuid.New())
	postB := testPost(uuid.New())

	parent, _ := svc.Add(postA, uuid.New(), "on post A", nil)

	if _, err := svc.Add(postB, uuid.New(), "cross-post reply", &parent.ID); !IsValidation(err) {
		t.Fatalf("expected ValidationError for cross-post parent, got %v", err)
	}

	missing := uuid.New()
	if _, err := svc.Add(postA, uuid.New(), "orphan reply", &missing); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound for missing parent, got %v", err)
	}
}

func TestCommentServiceListRootsNewestFirst(t *testing.T) {
	store := newMemCommentStore()
	svc := NewCommentService(store)
	post := testPost(uuid.New())

	// Insert with staggered timestamps, oldest first.
	base := time.Now().Add(-time.Hour)
	for i := 0; i < 3; i++ {
		c, _ := svc.Add(post, uuid.New(), "comment", nil)
		store.comments[c.ID].CreatedAt = base.Add(time.Duration(i) * time.Minute)
	}
	// A reply must not appear among roots.
	roots0, _ := svc.ListRoots(post)
	if _, err := svc.Add(post, uuid.New(), "a reply", &roots0[0].ID); err != nil {
		t.Fatalf("Add reply: %v", err)
	}

	roots, err := svc.ListRoots(post)
	if err != nil {
		t.Fatalf("ListRoots: %v", err)
	}
	if len(roots) != 3 {
		t.Fatalf("roots: got %d, want 3", len(roots))
	}
	for i := 1; i < len(roots); i++ {
		if roots[i].CreatedAt.After(roots[i-1].CreatedAt) {
			t.Errorf("roots not ordered newest-first at index %d", i)
		}
	}
}

func TestCommentServiceDeleteAuthority(t *testing.T) {
	store := newMemCommentStore()
	svc := NewCommentService(store)
	postAuthor := uuid.New()
	commenter := uuid.New()
	post := testPost(postAuthor)

	tests := []struct {
		name      string
		requester uuid.UUID
		wantErr   error
	}{
		{"stranger denied", uuid.New(), ErrPermissionDenied},
		{"comment author allowed", commenter, nil},
		{"post author allowed", postAuthor, nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c, _ := svc.Add(post, commenter, "moderate me", nil)
			err := svc.Delete(post, c.ID, tt.requester)
			if tt.wantErr == nil {
				if err != nil {
					t.Fatalf("Delete: %v", err)
				}
				if got, _ := store.FindByID(c.ID); got != nil {
					t.Error("comment still present after delete")
				}
				return
			}
			if !errors.Is(err, tt.wantErr) {
				t.Fatalf("expected %v, got %v", tt.wantErr, err)
			}
			if got, _ := store.FindByID(c.ID); got == nil {
				t.Error("comment removed despite permission failure")
			}
		})
	}
}

func TestCommentServiceDeleteLeavesRepliesOrphaned(t *testing.T) {
	store := newMemCommentStore()
	svc := NewCommentService(store)
	post := testPost(uuid.New())
	commenter := uuid.New()

	parent, _ := svc.Add(post, commenter, "parent", nil)
	reply, _ := svc.Add(post, uuid.New(), "child", &parent.ID)

	if err := svc.Delete(post, parent.ID, commenter); err != nil {
		t.Fatalf("Delete parent: %v", err)
	}

	// The reply survives with a dangling parent reference.
	got, _ := store.FindByID(reply.ID)
	if got == nil {
		t.Fatal("reply cascade-deleted; expected it to survive")
	}
	if got.ParentID == nil || *got.ParentID != parent.ID {
		t.Error("orphaned reply lost its parent reference")
	}

	// And lookups through the thread tolerate the missing parent.
	replies, err := svc.Replies(parent.ID)
	if err != nil {
		t.Fatalf("Replies: %v", err)
	}
	if len(replies) != 1 {
		t.Errorf("replies under deleted parent: got %d, want 1", len(replies))
	}
}

func TestCommentServiceDeleteWrongPost(t *testing.T) {
	store := newMemCommentStore()
	svc := NewCommentService(store)
	postA := testPost(uuid.New())
	postB := testPost(uuid.New())
	commenter := uuid.New()

	c, _ := svc.Add(postA, commenter, "on A", nil)

	// Resolving a comment through the wrong post is a not-found, never a
	// cross-post delete.
	if err := svc.Delete(postB, c.ID, commenter); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}
