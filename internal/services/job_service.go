package services

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"time"

	"gorm.io/gorm"

	"github.com/pranav-builds/jobtrackr/internal/domain"
	"github.com/pranav-builds/jobtrackr/internal/dtos"
	"github.com/pranav-builds/jobtrackr/internal/models"
)

// DefaultBoard is the board name every owner starts on.
const DefaultBoard = "default"

var (
	// ErrJobNotFound means no job with that id exists in the owner's scope.
	ErrJobNotFound = errors.New("job not found")
	// ErrDuplicateJob means the board already tracks this company+role pair.
	ErrDuplicateJob = errors.New("duplicate job for this company and role")
	// ErrInvalidDate means an applied_date that is not YYYY-MM-DD.
	ErrInvalidDate = errors.New("invalid applied_date (want YYYY-MM-DD)")
)

type JobService struct {
	DB      *gorm.DB
	Matcher *MatcherService
	Feed    *FeedService
}

func NewJobService(db *gorm.DB, matcher *MatcherService, feed *FeedService) *JobService {
	return &JobService{
		DB:      db,
		Matcher: matcher,
		Feed:    feed,
	}
}

// List returns the owner's full collection for one board as normalized
// domain records, in creation order. An empty ownerID yields an empty
// collection: without an identity there is nothing to show.
func (s *JobService) List(ctx context.Context, ownerID, boardID string) ([]domain.JobRecord, error) {
	if ownerID == "" {
		return []domain.JobRecord{}, nil
	}
	var rows []models.Job
	err := s.DB.WithContext(ctx).
		Where("owner_id = ? AND board = ?", ownerID, boardID).
		Order("created_at ASC").
		Find(&rows).Error
	if err != nil {
		return nil, fmt.Errorf("list jobs: %w", err)
	}

	records := make([]domain.JobRecord, 0, len(rows))
	for _, row := range rows {
		rec, err := rowToRecord(row)
		if err != nil {
			// A row that fails normalization is corrupt (empty company or
			// role); skip it rather than breaking the whole board.
			log.Printf("skipping corrupt job row %s: %v", row.ID, err)
			continue
		}
		records = append(records, rec)
	}
	return records, nil
}

// Get returns one job in the owner's scope.
func (s *JobService) Get(ctx context.Context, ownerID, jobID string) (domain.JobRecord, error) {
	row, err := s.findRow(ctx, ownerID, jobID)
	if err != nil {
		return domain.JobRecord{}, err
	}
	return rowToRecord(row)
}

// Create validates and stores a new job. Unless the request allows it, a
// case-insensitive company+role duplicate on the same board is rejected.
func (s *JobService) Create(ctx context.Context, ownerID, boardID string, req *dtos.JobCreationRequest) (domain.JobRecord, error) {
	applied, err := parseAppliedDate(req.AppliedDate)
	if err != nil {
		return domain.JobRecord{}, err
	}

	now := time.Now().UTC()
	rec, err := domain.Normalize(domain.RawJob{
		Company:     req.Company,
		Role:        req.Role,
		Location:    req.Location,
		AppliedDate: applied,
		Status:      req.Status,
		Notes:       req.Notes,
		Tags:        req.Tags,
		CreatedAt:   now,
		UpdatedAt:   now,
	})
	if err != nil {
		return domain.JobRecord{}, err
	}

	if !req.AllowDuplicate {
		dup, err := s.Matcher.FindDuplicate(ctx, ownerID, boardID, rec.Company, rec.Role)
		if err != nil {
			return domain.JobRecord{}, err
		}
		if dup != nil {
			return domain.JobRecord{}, ErrDuplicateJob
		}
	}

	row, err := recordToRow(ownerID, boardID, rec)
	if err != nil {
		return domain.JobRecord{}, err
	}
	if err := s.DB.WithContext(ctx).Create(&row).Error; err != nil {
		return domain.JobRecord{}, fmt.Errorf("create job: %w", err)
	}

	s.Feed.Publish(ownerID, FeedEvent{Type: "created", JobID: rec.ID, Job: &rec})
	return rec, nil
}

// Update applies field edits and re-validates the result. Nothing is written
// when validation fails.
func (s *JobService) Update(ctx context.Context, ownerID, jobID string, req *dtos.JobUpdateRequest) (domain.JobRecord, error) {
	row, err := s.findRow(ctx, ownerID, jobID)
	if err != nil {
		return domain.JobRecord{}, err
	}

	if req.Company != nil {
		row.Company = *req.Company
	}
	if req.Role != nil {
		row.Role = *req.Role
	}
	if req.Location != nil {
		row.Location = *req.Location
	}
	if req.AppliedDate != nil {
		applied, err := parseAppliedDate(*req.AppliedDate)
		if err != nil {
			return domain.JobRecord{}, err
		}
		row.AppliedDate = applied
	}
	if req.Notes != nil {
		row.Notes = *req.Notes
	}
	row.UpdatedAt = time.Now().UTC()

	rec, err := rowToRecord(row)
	if err != nil {
		return domain.JobRecord{}, err
	}
	if err := s.saveRecord(ctx, &row, rec); err != nil {
		return domain.JobRecord{}, err
	}

	s.Feed.Publish(ownerID, FeedEvent{Type: "updated", JobID: rec.ID, Job: &rec})
	return rec, nil
}

// ChangeStatus moves a job to another lifecycle stage and records the
// transition as a JobEvent for the timeline.
func (s *JobService) ChangeStatus(ctx context.Context, ownerID, jobID string, newStatus string) (domain.JobRecord, error) {
	row, err := s.findRow(ctx, ownerID, jobID)
	if err != nil {
		return domain.JobRecord{}, err
	}
	rec, err := rowToRecord(row)
	if err != nil {
		return domain.JobRecord{}, err
	}

	changed, err := domain.ApplyStatusChange(rec, domain.Status(newStatus))
	if err != nil {
		return domain.JobRecord{}, err
	}
	if err := s.saveRecord(ctx, &row, changed); err != nil {
		return domain.JobRecord{}, err
	}

	event := models.JobEvent{
		JobID:      rec.ID,
		FromStatus: string(rec.Status),
		ToStatus:   string(changed.Status),
	}
	if err := s.DB.WithContext(ctx).Create(&event).Error; err != nil {
		// The status change itself succeeded; a missing timeline entry is
		// not worth failing the request over.
		log.Printf("record job event for %s: %v", rec.ID, err)
	}

	s.Feed.Publish(ownerID, FeedEvent{Type: "status_changed", JobID: changed.ID, Job: &changed})
	return changed, nil
}

// AddTag attaches a tag; adding one that is already present is a no-op.
func (s *JobService) AddTag(ctx context.Context, ownerID, jobID, tag string) (domain.JobRecord, error) {
	return s.mutate(ctx, ownerID, jobID, func(rec domain.JobRecord) (domain.JobRecord, error) {
		return domain.AddTag(rec, tag), nil
	})
}

// RemoveTag detaches a tag; removing an absent one is a no-op.
func (s *JobService) RemoveTag(ctx context.Context, ownerID, jobID, tag string) (domain.JobRecord, error) {
	return s.mutate(ctx, ownerID, jobID, func(rec domain.JobRecord) (domain.JobRecord, error) {
		return domain.RemoveTag(rec, tag), nil
	})
}

// SetFeedback attaches (or replaces) the structured feedback note.
func (s *JobService) SetFeedback(ctx context.Context, ownerID, jobID string, req *dtos.FeedbackRequest) (domain.JobRecord, error) {
	return s.mutate(ctx, ownerID, jobID, func(rec domain.JobRecord) (domain.JobRecord, error) {
		rec.Feedback = &domain.Feedback{
			Text:         req.Text,
			Learnings:    req.Learnings,
			ThankYouNote: req.ThankYouNote,
			RecordedAt:   time.Now().UTC(),
		}
		rec.UpdatedAt = time.Now().UTC()
		return rec, nil
	})
}

// Delete removes a job permanently. There is no archive state.
func (s *JobService) Delete(ctx context.Context, ownerID, jobID string) error {
	if ownerID == "" {
		return ErrJobNotFound
	}
	res := s.DB.WithContext(ctx).
		Where("owner_id = ? AND id = ?", ownerID, jobID).
		Delete(&models.Job{})
	if res.Error != nil {
		return fmt.Errorf("delete job: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		return ErrJobNotFound
	}
	if err := s.DB.WithContext(ctx).Where("job_id = ?", jobID).Delete(&models.JobEvent{}).Error; err != nil {
		log.Printf("delete events for %s: %v", jobID, err)
	}

	s.Feed.Publish(ownerID, FeedEvent{Type: "deleted", JobID: jobID})
	return nil
}

// Events returns the status timeline of one job, oldest first.
func (s *JobService) Events(ctx context.Context, ownerID, jobID string) ([]models.JobEvent, error) {
	// Scope check first so one owner cannot read another's timeline.
	if _, err := s.findRow(ctx, ownerID, jobID); err != nil {
		return nil, err
	}
	var events []models.JobEvent
	err := s.DB.WithContext(ctx).
		Where("job_id = ?", jobID).
		Order("created_at ASC").
		Find(&events).Error
	if err != nil {
		return nil, fmt.Errorf("list job events: %w", err)
	}
	return events, nil
}

// mutate loads a job, applies fn to its domain record, and persists the
// result, publishing an update on the change feed.
func (s *JobService) mutate(ctx context.Context, ownerID, jobID string, fn func(domain.JobRecord) (domain.JobRecord, error)) (domain.JobRecord, error) {
	row, err := s.findRow(ctx, ownerID, jobID)
	if err != nil {
		return domain.JobRecord{}, err
	}
	rec, err := rowToRecord(row)
	if err != nil {
		return domain.JobRecord{}, err
	}
	out, err := fn(rec)
	if err != nil {
		return domain.JobRecord{}, err
	}
	if err := s.saveRecord(ctx, &row, out); err != nil {
		return domain.JobRecord{}, err
	}

	s.Feed.Publish(ownerID, FeedEvent{Type: "updated", JobID: out.ID, Job: &out})
	return out, nil
}

func (s *JobService) findRow(ctx context.Context, ownerID, jobID string) (models.Job, error) {
	var row models.Job
	if ownerID == "" {
		return row, ErrJobNotFound
	}
	err := s.DB.WithContext(ctx).
		Where("owner_id = ? AND id = ?", ownerID, jobID).
		First(&row).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return row, ErrJobNotFound
	}
	if err != nil {
		return row, fmt.Errorf("load job: %w", err)
	}
	return row, nil
}

// saveRecord writes a domain record back over its storage row.
func (s *JobService) saveRecord(ctx context.Context, row *models.Job, rec domain.JobRecord) error {
	tags, err := json.Marshal(rec.Tags)
	if err != nil {
		return fmt.Errorf("encode tags: %w", err)
	}
	row.Company = rec.Company
	row.Role = rec.Role
	row.Location = rec.Location
	row.AppliedDate = rec.AppliedDate
	row.Status = string(rec.Status)
	row.Notes = rec.Notes
	row.Tags = tags
	row.UpdatedAt = rec.UpdatedAt
	if rec.Feedback != nil {
		fb, err := json.Marshal(rec.Feedback)
		if err != nil {
			return fmt.Errorf("encode feedback: %w", err)
		}
		row.Feedback = fb
	} else {
		row.Feedback = nil
	}

	if err := s.DB.WithContext(ctx).Save(row).Error; err != nil {
		return fmt.Errorf("save job: %w", err)
	}
	return nil
}

// rowToRecord is the normalization boundary: every row read from storage
// passes through domain.Normalize before the rest of the app sees it.
func rowToRecord(row models.Job) (domain.JobRecord, error) {
	var tags []string
	if len(row.Tags) > 0 {
		if err := json.Unmarshal(row.Tags, &tags); err != nil {
			// Malformed tags are not fatal; they normalize to empty.
			tags = nil
		}
	}

	var feedback *domain.Feedback
	if len(row.Feedback) > 0 && string(row.Feedback) != "null" {
		var fb domain.Feedback
		if err := json.Unmarshal(row.Feedback, &fb); err == nil {
			feedback = &fb
		}
	}

	return domain.Normalize(domain.RawJob{
		ID:          row.ID,
		Company:     row.Company,
		Role:        row.Role,
		Location:    row.Location,
		AppliedDate: row.AppliedDate,
		Status:      row.Status,
		Notes:       row.Notes,
		Tags:        tags,
		Feedback:    feedback,
		CreatedAt:   row.CreatedAt,
		UpdatedAt:   row.UpdatedAt,
	})
}

func recordToRow(ownerID, boardID string, rec domain.JobRecord) (models.Job, error) {
	tags, err := json.Marshal(rec.Tags)
	if err != nil {
		return models.Job{}, fmt.Errorf("encode tags: %w", err)
	}
	row := models.Job{
		ID:          rec.ID,
		OwnerID:     ownerID,
		Board:       boardID,
		Company:     rec.Company,
		Role:        rec.Role,
		Location:    rec.Location,
		AppliedDate: rec.AppliedDate,
		Status:      string(rec.Status),
		Notes:       rec.Notes,
		Tags:        tags,
		CreatedAt:   rec.CreatedAt,
		UpdatedAt:   rec.UpdatedAt,
	}
	if rec.Feedback != nil {
		fb, err := json.Marshal(rec.Feedback)
		if err != nil {
			return models.Job{}, fmt.Errorf("encode feedback: %w", err)
		}
		row.Feedback = fb
	}
	return row, nil
}

func parseAppliedDate(raw string) (time.Time, error) {
	if raw == "" {
		return time.Now().UTC(), nil
	}
	t, err := time.Parse("2006-01-02", raw)
	if err != nil {
		return time.Time{}, fmt.Errorf("%w: %q", ErrInvalidDate, raw)
	}
	return t, nil
}
