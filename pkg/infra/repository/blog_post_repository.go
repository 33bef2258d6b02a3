package repository

import (
	"context"
	"errors"

	"github.com/NeuralTrust/BotTracker/pkg/domain/blog"
	domainErrors "github.com/NeuralTrust/BotTracker/pkg/domain/errors"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

type blogPostRepository struct {
	db *gorm.DB
}

func NewBlogPostRepository(db *gorm.DB) blog.Repository {
	return &blogPostRepository{
		db: db,
	}
}

func (r *blogPostRepository) Create(ctx context.Context, post *blog.Post) error {
	if err := r.db.WithContext(ctx).Create(post).Error; err != nil {
		if isDuplicate(err) {
			return blog.ErrSlugTaken
		}
		return err
	}
	return nil
}

func (r *blogPostRepository) Update(ctx context.Context, post *blog.Post) error {
	if err := r.db.WithContext(ctx).Save(post).Error; err != nil {
		if isDuplicate(err) {
			return blog.ErrSlugTaken
		}
		return err
	}
	return nil
}

func (r *blogPostRepository) Delete(ctx context.Context, id uuid.UUID) error {
	res := r.db.WithContext(ctx).Where("id = ?", id).Delete(&blog.Post{})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return domainErrors.NewNotFoundError("blog post", id)
	}
	return nil
}

func (r *blogPostRepository) GetByID(ctx context.Context, id uuid.UUID) (*blog.Post, error) {
	var post blog.Post
	if err := r.db.WithContext(ctx).First(&post, "id = ?", id).Error; err != nil {
		return nil, notFound(err, "blog post", id)
	}
	return &post, nil
}

func (r *blogPostRepository) GetBySlug(ctx context.Context, slug string) (*blog.Post, error) {
	var post blog.Post
	err := r.db.WithContext(ctx).First(&post, "slug = ?", slug).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, domainErrors.ErrEntityNotFound
	}
	if err != nil {
		return nil, err
	}
	return &post, nil
}

func (r *blogPostRepository) List(ctx context.Context, publishedOnly bool) ([]blog.Post, error) {
	q := r.db.WithContext(ctx).Order("created_at DESC")
	if publishedOnly {
		q = q.Where("published = ?", true)
	}
	var posts []blog.Post
	if err := q.Find(&posts).Error; err != nil {
		return nil, err
	}
	return posts, nil
}
