package models

// GORM models

import (
	"fmt"

	"gorm.io/gorm"
)

// Article represents a stored news article. The primary key is the article
// URL as delivered by the upstream feed; reingestion replaces the row.
type Article struct {
	ID          string `json:"id" gorm:"primaryKey"`
	Title       string `json:"title"`
	Content     string `json:"content"`
	PublishedAt string `json:"published_at" gorm:"index"`

	// SimilarityScore is attached per search and never persisted.
	SimilarityScore float64 `json:"similarity_score" gorm:"-"`
}

// User tracks how many requests a caller has made against the admission
// ceiling. Created on first request, never deleted.
type User struct {
	ID           string `json:"id" gorm:"primaryKey"`
	RequestCount int    `json:"request_count" gorm:"not null;default:0"`
}

// Database interfaces for repository pattern
type ArticleRepository interface {
	UpsertBatch(articles []Article) error
	GetAll() ([]Article, error)
	GetMostRecent(limit int) ([]Article, error)
	Count() (int64, error)
}

type UserRepository interface {
	GetRequestCount(userID string) (int, bool, error)
	Create(userID string) error
	IncrementRequestCount(userID string) error
}

// TableName methods for custom table names
func (Article) TableName() string { return "articles" }
func (User) TableName() string    { return "users" }

// Model validation methods
func (a *Article) Validate() error {
	if a.ID == "" {
		return fmt.Errorf("article id is required")
	}
	return nil
}

func (u *User) Validate() error {
	if u.ID == "" {
		return fmt.Errorf("user id is required")
	}
	if u.RequestCount < 0 {
		return fmt.Errorf("request count cannot be negative")
	}
	return nil
}

// GORM hooks
func (a *Article) BeforeCreate(tx *gorm.DB) error {
	return a.Validate()
}

func (u *User) BeforeCreate(tx *gorm.DB) error {
	return u.Validate()
}
