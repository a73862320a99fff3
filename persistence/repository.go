// Package persistence implements the GORM-backed credential and article
// stores. Drivers are registered per DB_TYPE; sqlite, postgres, and mysql
// are built in.
package persistence

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/glebarez/sqlite"
	"gorm.io/driver/mysql"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"github.com/inkwellhq/inkwell/domain"
)

type Repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

func init() {
	Register("sqlite", sqlite.Open)
	Register("postgres", postgres.Open)
	Register("mysql", mysql.Open)
}

// DB exposes the underlying handle for wiring at startup.
func (r *Repository) DB() *gorm.DB {
	return r.db
}

func (r *Repository) AutoMigrate() error {
	return r.db.AutoMigrate(
		&domain.User{},
		&domain.Article{},
	)
}

func (r *Repository) CreateUser(ctx context.Context, user *domain.User) error {
	if err := r.db.WithContext(ctx).Create(user).Error; err != nil {
		if isDuplicate(err) {
			return domain.ErrConflict
		}
		return fmt.Errorf("persistence: create user: %w", err)
	}
	return nil
}

func (r *Repository) FindUserByUsername(ctx context.Context, username string) (*domain.User, error) {
	var user domain.User
	if err := r.db.WithContext(ctx).First(&user, "username = ?", username).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("persistence: find user: %w", err)
	}
	return &user, nil
}

func (r *Repository) CreateArticle(ctx context.Context, article *domain.Article) error {
	if err := r.db.WithContext(ctx).Create(article).Error; err != nil {
		return fmt.Errorf("persistence: create article: %w", err)
	}
	return nil
}

func (r *Repository) GetArticle(ctx context.Context, id uint) (*domain.Article, error) {
	var article domain.Article
	if err := r.db.WithContext(ctx).First(&article, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("persistence: get article: %w", err)
	}
	return &article, nil
}

// SearchArticles does case-insensitive substring matching over the text
// columns. No relevance ranking.
func (r *Repository) SearchArticles(ctx context.Context, query string) ([]domain.Article, error) {
	pattern := "%" + strings.ToLower(query) + "%"

	var articles []domain.Article
	err := r.db.WithContext(ctx).
		Where("lower(title) LIKE ? OR lower(category) LIKE ? OR lower(summary1) LIKE ? OR lower(summary2) LIKE ?",
			pattern, pattern, pattern, pattern).
		Order("id").
		Find(&articles).Error
	if err != nil {
		return nil, fmt.Errorf("persistence: search articles: %w", err)
	}
	return articles, nil
}

// isDuplicate catches uniqueness violations across dialects; TranslateError
// covers the common case, the string checks cover drivers without an error
// translator.
func isDuplicate(err error) bool {
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return true
	}
	msg := err.Error()
	return strings.Contains(msg, "UNIQUE constraint failed") ||
		strings.Contains(msg, "Duplicate entry") ||
		strings.Contains(msg, "duplicate key value")
}
