package persistence

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/inkwellhq/inkwell/domain"
)

func setupRepo(t *testing.T) *Repository {
	t.Helper()

	dbPath := filepath.Join(t.TempDir(), "inkwell_test.db")
	t.Cleanup(func() { os.Remove(dbPath) })

	repo, err := NewStorage("sqlite", dbPath, nil)
	if err != nil {
		t.Fatalf("failed to open storage: %v", err)
	}
	if err := repo.AutoMigrate(); err != nil {
		t.Fatalf("failed to migrate: %v", err)
	}
	return repo
}

func TestUserStorage(t *testing.T) {
	repo := setupRepo(t)
	ctx := context.Background()

	user := &domain.User{
		Username:     "alice",
		Email:        "alice@x.com",
		PasswordHash: "hashed",
		PhoneNumber:  "1234567890",
	}
	if err := repo.CreateUser(ctx, user); err != nil {
		t.Fatalf("create user failed: %v", err)
	}
	if user.ID == 0 {
		t.Error("expected assigned ID")
	}

	got, err := repo.FindUserByUsername(ctx, "alice")
	if err != nil {
		t.Fatalf("find user failed: %v", err)
	}
	if got.Email != "alice@x.com" || got.PasswordHash != "hashed" {
		t.Errorf("unexpected user: %+v", got)
	}

	if _, err := repo.FindUserByUsername(ctx, "nobody"); !errors.Is(err, domain.ErrNotFound) {
		t.Errorf("expected ErrNotFound, got %v", err)
	}
}

func TestUserStorageConflict(t *testing.T) {
	repo := setupRepo(t)
	ctx := context.Background()

	first := &domain.User{Username: "alice", Email: "alice@x.com", PasswordHash: "h1"}
	if err := repo.CreateUser(ctx, first); err != nil {
		t.Fatalf("create user failed: %v", err)
	}

	dupUsername := &domain.User{Username: "alice", Email: "other@x.com", PasswordHash: "h2"}
	if err := repo.CreateUser(ctx, dupUsername); !errors.Is(err, domain.ErrConflict) {
		t.Errorf("expected ErrConflict for duplicate username, got %v", err)
	}

	dupEmail := &domain.User{Username: "bob", Email: "alice@x.com", PasswordHash: "h3"}
	if err := repo.CreateUser(ctx, dupEmail); !errors.Is(err, domain.ErrConflict) {
		t.Errorf("expected ErrConflict for duplicate email, got %v", err)
	}

	// The first record survives unchanged.
	got, err := repo.FindUserByUsername(ctx, "alice")
	if err != nil {
		t.Fatalf("find user after conflict failed: %v", err)
	}
	if got.Email != "alice@x.com" || got.PasswordHash != "h1" {
		t.Errorf("first credential changed after conflict: %+v", got)
	}
}

func TestArticleStorage(t *testing.T) {
	repo := setupRepo(t)
	ctx := context.Background()

	author := &domain.User{Username: "alice", Email: "alice@x.com", PasswordHash: "h"}
	if err := repo.CreateUser(ctx, author); err != nil {
		t.Fatalf("create user failed: %v", err)
	}

	article := &domain.Article{
		Title:    "Go Concurrency Patterns",
		Category: "go",
		Summary1: "channels and goroutines",
		AuthorID: author.ID,
	}
	if err := repo.CreateArticle(ctx, article); err != nil {
		t.Fatalf("create article failed: %v", err)
	}

	got, err := repo.GetArticle(ctx, article.ID)
	if err != nil {
		t.Fatalf("get article failed: %v", err)
	}
	if got.Title != article.Title || got.AuthorID != author.ID {
		t.Errorf("unexpected article: %+v", got)
	}

	if _, err := repo.GetArticle(ctx, 9999); !errors.Is(err, domain.ErrNotFound) {
		t.Errorf("expected ErrNotFound, got %v", err)
	}
}

func TestSearchArticles(t *testing.T) {
	repo := setupRepo(t)
	ctx := context.Background()

	author := &domain.User{Username: "alice", Email: "alice@x.com", PasswordHash: "h"}
	if err := repo.CreateUser(ctx, author); err != nil {
		t.Fatalf("create user failed: %v", err)
	}

	seed := []domain.Article{
		{Title: "Go Concurrency Patterns", Category: "go", AuthorID: author.ID},
		{Title: "Cooking Pasta", Category: "food", Summary1: "boil water first", AuthorID: author.ID},
		{Title: "Databases", Category: "infra", Summary2: "why Go developers like sqlite", AuthorID: author.ID},
	}
	for i := range seed {
		if err := repo.CreateArticle(ctx, &seed[i]); err != nil {
			t.Fatalf("create article failed: %v", err)
		}
	}

	got, err := repo.SearchArticles(ctx, "go")
	if err != nil {
		t.Fatalf("search failed: %v", err)
	}
	if len(got) != 2 {
		t.Fatalf("expected 2 matches for %q, got %d", "go", len(got))
	}

	got, err = repo.SearchArticles(ctx, "PASTA")
	if err != nil {
		t.Fatalf("search failed: %v", err)
	}
	if len(got) != 1 || got[0].Title != "Cooking Pasta" {
		t.Errorf("case-insensitive search failed: %+v", got)
	}

	got, err = repo.SearchArticles(ctx, "nothing-matches-this")
	if err != nil {
		t.Fatalf("search failed: %v", err)
	}
	if len(got) != 0 {
		t.Errorf("expected no matches, got %d", len(got))
	}
}
