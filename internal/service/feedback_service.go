package service

import (
	"cyberkids_backend/internal/model"
	"cyberkids_backend/internal/repository"
	"cyberkids_backend/pkg/logger"

	"go.uber.org/zap"
)

// FeedbackService stores user feedback. A failure here is transient for the
// caller and never affects the learning session.
type FeedbackService struct {
	FeedbackRepo *repository.FeedbackRepository
}

func NewFeedbackService(feedbackRepo *repository.FeedbackRepository) *FeedbackService {
	return &FeedbackService{FeedbackRepo: feedbackRepo}
}

type FeedbackRequest struct {
	Category string `json:"category"`
	Message  string `json:"message" binding:"required"`
}

func (s *FeedbackService) Submit(userID uint, req FeedbackRequest) (*model.Feedback, error) {
	f := &model.Feedback{
		UserID:   userID,
		Category: req.Category,
		Message:  req.Message,
	}
	if err := s.FeedbackRepo.Create(f); err != nil {
		logger.Log.Error("feedback save failed", zap.Uint("userId", userID), zap.Error(err))
		return nil, err
	}
	return f, nil
}

func (s *FeedbackService) Recent(limit int) ([]model.Feedback, error) {
	if limit <= 0 || limit > 100 {
		limit = 20
	}
	return s.FeedbackRepo.FindRecent(limit)
}
