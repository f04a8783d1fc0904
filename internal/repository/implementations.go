package repository

import (
	"errors"

	"github.com/newspulse/backend/internal/models"
	"gorm.io/gorm"
)

// ArticleRepositoryImpl implements ArticleRepository
type ArticleRepositoryImpl struct {
	db *gorm.DB
}

func NewArticleRepository(db *gorm.DB) models.ArticleRepository {
	return &ArticleRepositoryImpl{db: db}
}

// UpsertBatch stores articles keyed by id, replacing any previous row for the
// same id. Reingestion of the same feed page is therefore idempotent.
func (r *ArticleRepositoryImpl) UpsertBatch(articles []models.Article) error {
	if len(articles) == 0 {
		return nil
	}
	return r.db.Transaction(func(tx *gorm.DB) error {
		for _, article := range articles {
			if err := tx.Exec(`
				INSERT INTO articles (id, title, content, published_at)
				VALUES (?, ?, ?, ?)
				ON CONFLICT (id)
				DO UPDATE SET
					title = EXCLUDED.title,
					content = EXCLUDED.content,
					published_at = EXCLUDED.published_at
			`, article.ID, article.Title, article.Content, article.PublishedAt).Error; err != nil {
				return err
			}
		}
		return nil
	})
}

func (r *ArticleRepositoryImpl) GetAll() ([]models.Article, error) {
	var articles []models.Article
	err := r.db.Order("published_at DESC").Find(&articles).Error
	return articles, err
}

func (r *ArticleRepositoryImpl) GetMostRecent(limit int) ([]models.Article, error) {
	var articles []models.Article
	err := r.db.Order("published_at DESC").
		Limit(limit).
		Find(&articles).Error
	return articles, err
}

func (r *ArticleRepositoryImpl) Count() (int64, error) {
	var count int64
	err := r.db.Model(&models.Article{}).Count(&count).Error
	return count, err
}

// UserRepositoryImpl implements UserRepository
type UserRepositoryImpl struct {
	db *gorm.DB
}

func NewUserRepository(db *gorm.DB) models.UserRepository {
	return &UserRepositoryImpl{db: db}
}

func (r *UserRepositoryImpl) GetRequestCount(userID string) (int, bool, error) {
	var user models.User
	err := r.db.First(&user, "id = ?", userID).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return 0, false, nil
	}
	if err != nil {
		return 0, false, err
	}
	return user.RequestCount, true, nil
}

// Create inserts a user with request_count 1, the first admitted request.
func (r *UserRepositoryImpl) Create(userID string) error {
	return r.db.Create(&models.User{ID: userID, RequestCount: 1}).Error
}

func (r *UserRepositoryImpl) IncrementRequestCount(userID string) error {
	return r.db.Exec(`
		UPDATE users
		SET request_count = request_count + 1
		WHERE id = ?
	`, userID).Error
}

// RepositoryManager bundles all repositories
type RepositoryManager struct {
	Article models.ArticleRepository
	User    models.UserRepository
}

func NewRepositoryManager(db *gorm.DB) *RepositoryManager {
	return &RepositoryManager{
		Article: NewArticleRepository(db),
		User:    NewUserRepository(db),
	}
}
