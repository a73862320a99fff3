// Package domain defines the core models and storage contracts for Inkwell.
//
// The interfaces here are the seams between the flows and their
// collaborators: the credential store, the article store, and the password
// hasher. Any backend can implement them; the persistence package provides
// the GORM implementation.
package domain

import "context"

// Storage defines the interface for all persistence operations.
type Storage interface {
	UserStorage
	ArticleStorage
}

// UserStorage persists credential records.
type UserStorage interface {
	// CreateUser inserts a new record. A username or email uniqueness
	// violation is reported as ErrConflict.
	CreateUser(ctx context.Context, user *User) error

	// FindUserByUsername returns ErrNotFound when no record matches.
	FindUserByUsername(ctx context.Context, username string) (*User, error)
}

// ArticleStorage persists blog articles.
type ArticleStorage interface {
	CreateArticle(ctx context.Context, article *Article) error

	// GetArticle returns ErrNotFound when no record matches.
	GetArticle(ctx context.Context, id uint) (*Article, error)

	// SearchArticles matches the query against title, category, and
	// summaries. Plain substring matching, no ranking.
	SearchArticles(ctx context.Context, query string) ([]Article, error)
}

// Hasher defines the interface for password hashing and verification.
type Hasher interface {
	Hash(password string) (string, error)
	Compare(password, hash string) bool
}
