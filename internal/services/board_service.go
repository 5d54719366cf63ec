package services

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/pranav-builds/jobtrackr/internal/models"
)

type BoardService struct {
	DB *gorm.DB
}

func NewBoardService(db *gorm.DB) *BoardService {
	return &BoardService{DB: db}
}

// List returns the owner's boards, provisioning the default board on first
// use so a fresh account always has somewhere to put jobs.
func (s *BoardService) List(ctx context.Context, ownerID string) ([]models.Board, error) {
	if ownerID == "" {
		return []models.Board{}, nil
	}
	if err := s.ensureDefault(ctx, ownerID); err != nil {
		return nil, err
	}

	var boards []models.Board
	err := s.DB.WithContext(ctx).
		Where("owner_id = ?", ownerID).
		Order("created_at ASC").
		Find(&boards).Error
	if err != nil {
		return nil, fmt.Errorf("list boards: %w", err)
	}
	return boards, nil
}

// Create adds a named board for the owner.
func (s *BoardService) Create(ctx context.Context, ownerID, name string) (models.Board, error) {
	board := models.Board{
		ID:      uuid.NewString(),
		OwnerID: ownerID,
		Name:    name,
	}
	if err := s.DB.WithContext(ctx).Create(&board).Error; err != nil {
		return models.Board{}, fmt.Errorf("create board: %w", err)
	}
	return board, nil
}

func (s *BoardService) ensureDefault(ctx context.Context, ownerID string) error {
	board := models.Board{
		ID:      uuid.NewString(),
		OwnerID: ownerID,
		Name:    DefaultBoard,
	}
	err := s.DB.WithContext(ctx).
		Where(models.Board{OwnerID: ownerID, Name: DefaultBoard}).
		FirstOrCreate(&board).Error
	if err != nil {
		return fmt.Errorf("ensure default board: %w", err)
	}
	return nil
}
