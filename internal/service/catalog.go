package service

import (
	"context"
	"video-paywall-demo/internal/model"
	"video-paywall-demo/internal/repository"
)

type CatalogService interface {
	List(ctx context.Context) ([]*model.Video, error)
	Search(ctx context.Context, query string) ([]*model.Video, error)
}

type catalogServiceImpl struct {
	videoRepo repository.VideoRepository
}

func NewCatalogService(videoRepo repository.VideoRepository) CatalogService {
	return &catalogServiceImpl{
		videoRepo: videoRepo,
	}
}

func (s *catalogServiceImpl) List(ctx context.Context) ([]*model.Video, error) {
	return s.videoRepo.List(ctx)
}

func (s *catalogServiceImpl) Search(ctx context.Context, query string) ([]*model.Video, error) {
	return s.videoRepo.Search(ctx, query)
}
