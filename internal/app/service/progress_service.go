package service

import (
	"errors"

	"github.com/tablehost/sop-backend/internal/app/model"
	"github.com/tablehost/sop-backend/internal/app/repository"
	"github.com/tablehost/sop-backend/pkg/logger"
	"gorm.io/gorm"
)

// ProgressBroadcaster pushes live progress events to connected dashboards.
// Implemented by the websocket hub; a nil broadcaster disables pushes.
type ProgressBroadcaster interface {
	BroadcastProgress(restaurantID uint, event interface{})
}

// ProgressEvent is the payload pushed to dashboard clients when a staff
// member's progress changes.
type ProgressEvent struct {
	Type            string               `json:"type"`
	UserID          uint                 `json:"user_id"`
	DocumentID      uint                 `json:"document_id"`
	CategoryID      uint                 `json:"category_id"`
	Status          model.ProgressStatus `json:"status"`
	ProgressPercent int                  `json:"progress_percent"`
}

type RecordProgressInput struct {
	DocumentID      uint
	Status          string
	ProgressPercent int
}

type ProgressService interface {
	RecordProgress(actor Actor, input RecordProgressInput) (*model.UserProgress, error)
	Summary(restaurantID uint) ([]repository.CategoryProgressSummary, error)
}

type progressService struct {
	progressRepo repository.ProgressRepository
	documentRepo repository.DocumentRepository
	broadcaster  ProgressBroadcaster
}

func NewProgressService(
	progressRepo repository.ProgressRepository,
	documentRepo repository.DocumentRepository,
	broadcaster ProgressBroadcaster,
) ProgressService {
	return &progressService{
		progressRepo: progressRepo,
		documentRepo: documentRepo,
		broadcaster:  broadcaster,
	}
}

func (s *progressService) RecordProgress(actor Actor, input RecordProgressInput) (*model.UserProgress, error) {
	logger.Info("Recording training progress", map[string]interface{}{
		"user_id":     actor.UserID,
		"document_id": input.DocumentID,
		"status":      input.Status,
	})

	document, err := s.documentRepo.FindByID(input.DocumentID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrDocumentNotFound
		}
		return nil, err
	}
	if document.RestaurantID != actor.RestaurantID || !document.IsActive {
		return nil, ErrDocumentNotFound
	}

	progress := &model.UserProgress{
		RestaurantID:    actor.RestaurantID,
		UserID:          actor.UserID,
		DocumentID:      document.ID,
		CategoryID:      document.CategoryID,
		Status:          model.ProgressStatus(input.Status),
		ProgressPercent: input.ProgressPercent,
	}

	if err := s.progressRepo.Upsert(progress); err != nil {
		return nil, err
	}

	if s.broadcaster != nil {
		s.broadcaster.BroadcastProgress(actor.RestaurantID, ProgressEvent{
			Type:            "progress_update",
			UserID:          progress.UserID,
			DocumentID:      progress.DocumentID,
			CategoryID:      progress.CategoryID,
			Status:          progress.Status,
			ProgressPercent: progress.ProgressPercent,
		})
	}

	logger.Info("Training progress recorded", map[string]interface{}{
		"progress_id": progress.ID,
		"status":      progress.Status,
	})
	return progress, nil
}

func (s *progressService) Summary(restaurantID uint) ([]repository.CategoryProgressSummary, error) {
	return s.progressRepo.SummaryByCategory(restaurantID)
}
