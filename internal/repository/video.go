package repository

import (
	"context"
	"errors"
	"strings"
	"video-paywall-demo/internal/model"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type VideoRepository interface {
	Seed(ctx context.Context) error
	FindByID(ctx context.Context, videoID string) (*model.Video, error)
	List(ctx context.Context) ([]*model.Video, error)
	Search(ctx context.Context, query string) ([]*model.Video, error)
}

// DemoVideos is the catalog every fresh database starts with.
var DemoVideos = []model.Video{
	{ID: "vid1", Title: "Sample Video 1", Filename: "sample1.mp4", Price: 50000, Currency: "NGN"},
	{ID: "vid2", Title: "Sample Video 2", Filename: "sample2.mp4", Price: 80000, Currency: "NGN"},
}

type videoRepoImpl struct {
	db *gorm.DB
}

func NewVideoRepository(db *gorm.DB) VideoRepository {
	return &videoRepoImpl{
		db: db,
	}
}

func (r *videoRepoImpl) Seed(ctx context.Context) error {
	videos := make([]model.Video, len(DemoVideos))
	copy(videos, DemoVideos)

	return r.db.WithContext(ctx).Clauses(clause.OnConflict{DoNothing: true}).Create(&videos).Error
}

func (r *videoRepoImpl) FindByID(ctx context.Context, videoID string) (*model.Video, error) {
	var video model.Video
	err := r.db.WithContext(ctx).
		Where("id = ?", videoID).
		First(&video).Error

	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, model.ErrNotFound
	}
	if err != nil {
		return nil, err
	}

	return &video, nil
}

func (r *videoRepoImpl) List(ctx context.Context) ([]*model.Video, error) {
	var videos []*model.Video
	err := r.db.WithContext(ctx).
		Order("id").
		Find(&videos).
		Error

	if err != nil {
		return nil, err
	}

	return videos, nil
}

// Search matches query as a case-insensitive substring of the title.
func (r *videoRepoImpl) Search(ctx context.Context, query string) ([]*model.Video, error) {
	query = strings.TrimSpace(query)
	if query == "" {
		return r.List(ctx)
	}

	var videos []*model.Video
	err := r.db.WithContext(ctx).
		Where("LOWER(title) LIKE ? ESCAPE '!'", "%"+escapeLike(strings.ToLower(query))+"%").
		Order("id").
		Find(&videos).
		Error

	if err != nil {
		return nil, err
	}

	return videos, nil
}

var likeEscaper = strings.NewReplacer(`!`, `!!`, `%`, `!%`, `_`, `!_`)

func escapeLike(s string) string {
	return likeEscaper.Replace(s)
}
