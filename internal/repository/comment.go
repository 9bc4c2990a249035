package repository

import (
	"context"
	"video-paywall-demo/internal/model"

	"gorm.io/gorm"
)

type CommentRepository interface {
	Create(ctx context.Context, comment *model.Comment) error
	ListByVideo(ctx context.Context, videoID string) ([]*model.Comment, error)
}

type commentRepoImpl struct {
	db *gorm.DB
}

func NewCommentRepository(db *gorm.DB) CommentRepository {
	return &commentRepoImpl{
		db: db,
	}
}

func (r *commentRepoImpl) Create(ctx context.Context, comment *model.Comment) error {
	return r.db.WithContext(ctx).Create(comment).Error
}

// ListByVideo returns the newest comments first.
func (r *commentRepoImpl) ListByVideo(ctx context.Context, videoID string) ([]*model.Comment, error) {
	var comments []*model.Comment
	err := r.db.WithContext(ctx).
		Where("video_id = ?", videoID).
		Order("created_at DESC").
		Order("id DESC").
		Find(&comments).
		Error

	if err != nil {
		return nil, err
	}

	return comments, nil
}
