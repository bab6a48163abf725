// memory_test.go provides in-memory store fakes shared by the service
// unit tests, so the invariant core is exercised without a database.
package blog

import (
	"context"
	"sort"
	"time"

	"github.com/google/uuid"

	"inkwell/internal/models"
)

type memPostStore struct {
	posts map[uuid.UUID]*models.Post
	tags  map[uuid.UUID][]uuid.UUID
}

func newMemPostStore() *memPostStore {
	return &memPostStore{
		posts: make(map[uuid.UUID]*models.Post),
		tags:  make(map[uuid.UUID][]uuid.UUID),
	}
}

func (m *memPostStore) Create(p *models.Post) (*models.Post, error) {
	cp := *p
	cp.ID = uuid.New()
	cp.CreatedAt = time.Now()
	cp.UpdatedAt = cp.CreatedAt
	m.posts[cp.ID] = &cp
	out := cp
	return &out, nil
}

func (m *memPostStore) FindByID(id uuid.UUID) (*models.Post, error) {
	p, ok := m.posts[id]
	if !ok {
		return nil, nil
	}
	cp := *p
	return &cp, nil
}

func (m *memPostStore) FindBySlug(slug string) (*models.Post, error) {
	for _, p := range m.posts {
		if p.Slug == slug {
			cp := *p
			return &cp, nil
		}
	}
	return nil, nil
}

func (m *memPostStore) Update(p *models.Post) error {
	stored, ok := m.posts[p.ID]
	if !ok {
		return nil
	}
	// Mirrors the SQL UPDATE: slug, views, and is_archived are not columns
	// of the edit statement.
	cp := *p
	cp.Slug = stored.Slug
	cp.Views = stored.Views
	cp.IsArchived = stored.IsArchived
	cp.UpdatedAt = time.Now()
	m.posts[p.ID] = &cp
	return nil
}

func (m *memPostStore) SetArchived(id uuid.UUID, archived bool) error {
	if p, ok := m.posts[id]; ok {
		p.IsArchived = archived
	}
	return nil
}

func (m *memPostStore) Delete(id uuid.UUID) error {
	delete(m.posts, id)
	return nil
}

func (m *memPostStore) SlugExists(slug string, excludeID uuid.UUID) (bool, error) {
	for id, p := range m.posts {
		if p.Slug == slug && id != excludeID {
			return true, nil
		}
	}
	return false, nil
}

func (m *memPostStore) SetTags(postID uuid.UUID, tagIDs []uuid.UUID) error {
	m.tags[postID] = append([]uuid.UUID(nil), tagIDs...)
	return nil
}

func (m *memPostStore) IncrementViews(id uuid.UUID) (int64, error) {
	p, ok := m.posts[id]
	if !ok {
		return 0, nil
	}
	p.Views++
	return p.Views, nil
}

func (m *memPostStore) Views(id uuid.UUID) (int64, error) {
	p, ok := m.posts[id]
	if !ok {
		return 0, nil
	}
	return p.Views, nil
}

type memCommentStore struct {
	comments map[uuid.UUID]*models.Comment
}

func newMemCommentStore() *memCommentStore {
	return &memCommentStore{comments: make(map[uuid.UUID]*models.Comment)}
}

func (m *memCommentStore) Create(c *models.Comment) (*models.Comment, error) {
	cp := *c
	cp.ID = uuid.New()
	cp.CreatedAt = time.Now()
	m.comments[cp.ID] = &cp
	out := cp
	return &out, nil
}

func (m *memCommentStore) FindByID(id uuid.UUID) (*models.Comment, error) {
	c, ok := m.comments[id]
	if !ok {
		return nil, nil
	}
	cp := *c
	return &cp, nil
}

func (m *memCommentStore) ListRoots(postID uuid.UUID) ([]models.Comment, error) {
	var out []models.Comment
	for _, c := range m.comments {
		if c.PostID == postID && c.ParentID == nil {
			out = append(out, *c)
		}
	}
	sortNewestFirst(out)
	return out, nil
}

func (m *memCommentStore) ListReplies(parentID uuid.UUID) ([]models.Comment, error) {
	var out []models.Comment
	for _, c := range m.comments {
		if c.ParentID != nil && *c.ParentID == parentID {
			out = append(out, *c)
		}
	}
	sortNewestFirst(out)
	return out, nil
}

func (m *memCommentStore) CountByPost(postID uuid.UUID) (int, error) {
	n := 0
	for _, c := range m.comments {
		if c.PostID == postID {
			n++
		}
	}
	return n, nil
}

func (m *memCommentStore) Delete(id uuid.UUID) error {
	delete(m.comments, id)
	return nil
}

func sortNewestFirst(cs []models.Comment) {
	sort.Slice(cs, func(i, j int) bool {
		return cs[i].CreatedAt.After(cs[j].CreatedAt)
	})
}

// memFlags is an in-memory FlagStore for view accounting tests.
type memFlags struct {
	flags map[string]bool
}

func newMemFlags() *memFlags {
	return &memFlags{flags: make(map[string]bool)}
}

func (m *memFlags) Get(_ context.Context, key string) (bool, error) {
	return m.flags[key], nil
}

func (m *memFlags) Set(_ context.Context, key string) error {
	m.flags[key] = true
	return nil
}
