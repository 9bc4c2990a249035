package service

import (
	"context"
	"fmt"
	"strings"
	"video-paywall-demo/internal/model"
	"video-paywall-demo/internal/repository"
)

type CommentService interface {
	List(ctx context.Context, videoID string) ([]*model.Comment, error)
	Add(ctx context.Context, videoID, email, content string) (*model.Comment, error)
}

type commentServiceImpl struct {
	commentRepo   repository.CommentRepository
	allowedDomain string
}

// NewCommentService restricts commenters to allowedDomain; an empty domain
// lets anyone comment.
func NewCommentService(commentRepo repository.CommentRepository, allowedDomain string) CommentService {
	return &commentServiceImpl{
		commentRepo:   commentRepo,
		allowedDomain: strings.ToLower(strings.TrimPrefix(allowedDomain, "@")),
	}
}

func (s *commentServiceImpl) List(ctx context.Context, videoID string) ([]*model.Comment, error) {
	return s.commentRepo.ListByVideo(ctx, videoID)
}

func (s *commentServiceImpl) Add(ctx context.Context, videoID, email, content string) (*model.Comment, error) {
	if email == "" || content == "" {
		return nil, fmt.Errorf("%w: Email and content required", model.ErrInvalidInput)
	}
	if s.allowedDomain != "" && !strings.HasSuffix(strings.ToLower(email), "@"+s.allowedDomain) {
		return nil, fmt.Errorf("%w: only %s accounts allowed", model.ErrForbiddenDomain, s.allowedDomain)
	}

	comment := &model.Comment{
		VideoID: videoID,
		Email:   email,
		Content: content,
	}
	if err := s.commentRepo.Create(ctx, comment); err != nil {
		return nil, fmt.Errorf("store comment: %w", err)
	}

	return comment, nil
}
