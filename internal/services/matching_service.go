package services

import (
	"context"
	"fmt"
	"strings"

	"gorm.io/gorm"

	"github.com/pranav-builds/jobtrackr/internal/models"
)

type MatcherService struct {
	DB *gorm.DB
}

func NewMatcherService(db *gorm.DB) *MatcherService {
	return &MatcherService{DB: db}
}

// FindDuplicate looks for a job on the same board with the same company and
// role, compared case-insensitively. Used to warn before someone tracks the
// same opening twice.
//
// The scan happens in memory rather than with a LOWER() query: boards are
// small (one person's applications) and this keeps the comparison identical
// across postgres and sqlite.
func (s *MatcherService) FindDuplicate(ctx context.Context, ownerID, boardID, company, role string) (*models.Job, error) {
	if ownerID == "" {
		return nil, nil
	}

	var rows []models.Job
	err := s.DB.WithContext(ctx).
		Where("owner_id = ? AND board = ?", ownerID, boardID).
		Find(&rows).Error
	if err != nil {
		return nil, fmt.Errorf("scan for duplicates: %w", err)
	}

	wantCompany := normalizeForMatch(company)
	wantRole := normalizeForMatch(role)
	for i := range rows {
		if normalizeForMatch(rows[i].Company) == wantCompany &&
			normalizeForMatch(rows[i].Role) == wantRole {
			return &rows[i], nil
		}
	}
	return nil, nil
}

func normalizeForMatch(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}
