// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// handler_test.go provides shared test infrastructure for handler integration
// tests. Tests are skipped when PostgreSQL or Valkey are unavailable.
package handlers

import (
	"context"
	"database/sql"
	"net/http"
	"os"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/pressly/goose/v3"
	"github.com/redis/go-redis/v9"
	"golang.org/x/crypto/bcrypt"

	"inkwell/internal/blog"
	"inkwell/internal/database"
	"inkwell/internal/middleware"
	"inkwell/internal/models"
	"inkwell/internal/session"
	"inkwell/internal/store"
)

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

// testDB opens a connection to the test PostgreSQL and runs migrations.
func testDB(t *testing.T) *sql.DB {
	t.Helper()

	host := envOr("POSTGRES_HOST", "localhost")
	port := envOr("POSTGRES_PORT", "5432")
	user := envOr("POSTGRES_USER", "inkwell")
	pass := envOr("POSTGRES_PASSWORD", "changeme")
	name := envOr("POSTGRES_DB", "inkwell")
	dsn := "postgres://" + user + ":" + pass + "@" + host + ":" + port + "/" + name + "?sslmode=disable"

	db, err := sql.Open("pgx", dsn)
	if err != nil {
		t.Skipf("skipping: cannot open DB: %v", err)
	}
	if err := db.Ping(); err != nil {
		db.Close()
		t.Skipf("skipping: DB not reachable: %v", err)
	}

	if err := database.Migrate(db); err != nil {
		db.Close()
		t.Fatalf("migrate: %v", err)
	}
	goose.SetBaseFS(nil)

	t.Cleanup(func() { db.Close() })
	return db
}

// testValkeyClient returns a Redis client for handler tests on DB 15.
func testValkeyClient(t *testing.T) *redis.Client {
	t.Helper()

	host := envOr("VALKEY_HOST", "localhost")
	port := envOr("VALKEY_PORT", "6379")
	password := os.Getenv("VALKEY_PASSWORD")

	client := redis.NewClient(&redis.Options{
		Addr:     host + ":" + port,
		Password: password,
		DB:       15,
	})

	ctx := context.Background()
	if err := client.Ping(ctx).Err(); err != nil {
		client.Close()
		t.Skipf("skipping: Valkey not reachable: %v", err)
	}

	t.Cleanup(func() {
		// Clean up test session and flag keys.
		for _, pattern := range []string{"session:*", "flags:*"} {
			keys, _ := client.Keys(ctx, pattern).Result()
			if len(keys) > 0 {
				client.Del(ctx, keys...)
			}
		}
		client.Close()
	})

	return client
}

// testEnv holds all dependencies for handler integration tests.
type testEnv struct {
	DB           *sql.DB
	Valkey       *redis.Client
	Sessions     *session.Store
	UserStore    *store.UserStore
	ProfileStore *store.ProfileStore
	PostStore    *store.PostStore
	CommentStore *store.CommentStore
	CatStore     *store.CategoryStore
	TagStore     *store.TagStore
	StatsStore   *store.StatsStore
	Auth         *Auth
	Posts        *Posts
	Comments     *Comments
	Profiles     *Profiles
	Taxonomy     *Taxonomy
	Dashboard    *Dashboard
}

// newTestEnv creates a complete test environment with all handler dependencies.
func newTestEnv(t *testing.T) *testEnv {
	t.Helper()

	db := testDB(t)
	vk := testValkeyClient(t)

	sessions := session.NewStore(vk)
	userStore := store.NewUserStore(db)
	profileStore := store.NewProfileStore(db)
	postStore := store.NewPostStore(db)
	commentStore := store.NewCommentStore(db)
	catStore := store.NewCategoryStore(db)
	tagStore := store.NewTagStore(db)
	statsStore := store.NewStatsStore(db)

	postService := blog.NewPostService(postStore)
	commentService := blog.NewCommentService(commentStore)
	recorder := blog.NewViewRecorder(postStore)

	return &testEnv{
		DB:           db,
		Valkey:       vk,
		Sessions:     sessions,
		UserStore:    userStore,
		ProfileStore: profileStore,
		PostStore:    postStore,
		CommentStore: commentStore,
		CatStore:     catStore,
		TagStore:     tagStore,
		StatsStore:   statsStore,
		Auth:         NewAuth(sessions, userStore),
		Posts:        NewPosts(postService, recorder, commentService, sessions, postStore, catStore, tagStore),
		Comments:     NewComments(commentService, postService),
		Profiles:     NewProfiles(profileStore, userStore),
		Taxonomy:     NewTaxonomy(catStore, tagStore),
		Dashboard:    NewDashboard(statsStore, postStore),
	}
}

// ctxWithSession adds session data to a context using the middleware key.
func ctxWithSession(ctx context.Context, data *session.Data) context.Context {
	return context.WithValue(ctx, middleware.SessionKey, data)
}

// testSession creates a session.Data for testing.
func testSession(userID uuid.UUID, email string) *session.Data {
	return &session.Data{
		UserID:      userID,
		Email:       email,
		DisplayName: "Test User",
		TwoFADone:   true,
	}
}

// withChiURLParam adds a chi URL parameter to a request.
func withChiURLParam(r *http.Request, key, value string) *http.Request {
	rctx := chi.NewRouteContext()
	rctx.URLParams.Add(key, value)
	return r.WithContext(context.WithValue(r.Context(), chi.RouteCtxKey, rctx))
}

// withChiURLParams adds several chi URL parameters to a request.
func withChiURLParams(r *http.Request, params map[string]string) *http.Request {
	rctx := chi.NewRouteContext()
	for k, v := range params {
		rctx.URLParams.Add(k, v)
	}
	return r.WithContext(context.WithValue(r.Context(), chi.RouteCtxKey, rctx))
}

// testHandlerUser inserts a user with a known password and registers cleanup.
func testHandlerUser(t *testing.T, db *sql.DB, email string) *models.User {
	t.Helper()

	hash, err := bcrypt.GenerateFromPassword([]byte("correct horse battery"), bcrypt.DefaultCost)
	if err != nil {
		t.Fatalf("bcrypt: %v", err)
	}

	var u models.User
	err = db.QueryRow(
		`INSERT INTO users (email, password_hash, display_name) VALUES ($1, $2, $3)
		 RETURNING id, email, display_name`,
		email, string(hash), "Handler Fixture",
	).Scan(&u.ID, &u.Email, &u.DisplayName)
	if err != nil {
		t.Fatalf("insert test user: %v", err)
	}
	if _, err := db.Exec(`INSERT INTO profiles (user_id) VALUES ($1)`, u.ID); err != nil {
		t.Fatalf("insert test profile: %v", err)
	}

	t.Cleanup(func() {
		db.Exec("DELETE FROM users WHERE id = $1", u.ID)
	})
	return &u
}

// testHandlerPost inserts a post for the given author and registers cleanup.
func testHandlerPost(t *testing.T, db *sql.DB, authorID uuid.UUID, slug string) *models.Post {
	t.Helper()

	var p models.Post
	err := db.QueryRow(
		`INSERT INTO posts (author_id, title, excerpt, body, slug) VALUES ($1, $2, $3, $4, $5)
		 RETURNING id, author_id, title, slug, views, is_archived`,
		authorID, "Fixture Post", "An excerpt.", "Fixture body.", slug,
	).Scan(&p.ID, &p.AuthorID, &p.Title, &p.Slug, &p.Views, &p.IsArchived)
	if err != nil {
		t.Fatalf("insert test post: %v", err)
	}

	t.Cleanup(func() {
		db.Exec("DELETE FROM posts WHERE id = $1", p.ID)
	})
	return &p
}
