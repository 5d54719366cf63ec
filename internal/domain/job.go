package domain

import (
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
)

// JobRecord is one tracked application. Records are value types: every
// operation in this package returns a new record and leaves its input alone,
// so the authoritative collection is only ever mutated by the storage layer.
type JobRecord struct {
	ID          string    `json:"id"`
	Company     string    `json:"company"`
	Role        string    `json:"role"`
	Location    string    `json:"location"`
	AppliedDate time.Time `json:"applied_date"`
	Status      Status    `json:"status"`
	Notes       string    `json:"notes"`
	Tags        []string  `json:"tags"`
	Feedback    *Feedback `json:"feedback,omitempty"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// Feedback is the structured note captured when an application is closed out,
// typically (but not only) on a move to Rejected.
type Feedback struct {
	Text         string    `json:"text"`
	Learnings    string    `json:"learnings"`
	ThankYouNote string    `json:"thank_you_note"`
	RecordedAt   time.Time `json:"recorded_at"`
}

// RawJob is the loosely-typed shape a record has before it crosses the
// normalization boundary: whatever the storage row or an inbound payload
// happens to contain. Normalize is the only way in.
type RawJob struct {
	ID          string
	Company     string
	Role        string
	Location    string
	AppliedDate time.Time
	Status      string
	Notes       string
	Tags        []string
	Feedback    *Feedback
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// ValidationError reports a required field that is missing or empty.
type ValidationError struct {
	Field string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("job validation failed: %s is required", e.Field)
}

// InvalidStatusError reports an attempted transition to a status outside the
// fixed set. The set is closed and enumerated by the UI, so hitting this is a
// caller bug, not a user-facing condition.
type InvalidStatusError struct {
	Status string
}

func (e *InvalidStatusError) Error() string {
	return fmt.Sprintf("invalid job status %q", e.Status)
}

// Normalize converts a loosely-typed raw record into a valid JobRecord.
// Missing optional fields are silently defaulted: an unrecognized status
// becomes Wishlist, absent tags become an empty set, notes and location
// become empty strings. It fails only when company or role is empty after
// trimming; in that case nothing is applied.
func Normalize(raw RawJob) (JobRecord, error) {
	company := strings.TrimSpace(raw.Company)
	if company == "" {
		return JobRecord{}, &ValidationError{Field: "company"}
	}
	role := strings.TrimSpace(raw.Role)
	if role == "" {
		return JobRecord{}, &ValidationError{Field: "role"}
	}

	status, _ := ParseStatus(strings.TrimSpace(raw.Status))

	id := raw.ID
	if id == "" {
		id = uuid.NewString()
	}

	return JobRecord{
		ID:          id,
		Company:     company,
		Role:        role,
		Location:    strings.TrimSpace(raw.Location),
		AppliedDate: dateOnly(raw.AppliedDate),
		Status:      status,
		Notes:       raw.Notes,
		Tags:        normalizeTags(raw.Tags),
		Feedback:    raw.Feedback,
		CreatedAt:   raw.CreatedAt,
		UpdatedAt:   raw.UpdatedAt,
	}, nil
}

// ApplyStatusChange returns a copy of rec with the new status and a refreshed
// UpdatedAt. Any status can follow any other; the lifecycle graph is
// deliberately permissive. Prompting for feedback on a move to Rejected is
// the caller's concern.
func ApplyStatusChange(rec JobRecord, newStatus Status) (JobRecord, error) {
	if !newStatus.Valid() {
		return JobRecord{}, &InvalidStatusError{Status: string(newStatus)}
	}
	out := rec
	out.Tags = cloneTags(rec.Tags)
	out.Status = newStatus
	out.UpdatedAt = time.Now().UTC()
	return out, nil
}

// AddTag returns a copy of rec with tag added to its tag set. Tags are
// trimmed before comparison; adding an empty or already present tag is a
// no-op that returns an equivalent record.
func AddTag(rec JobRecord, tag string) JobRecord {
	tag = strings.TrimSpace(tag)
	out := rec
	out.Tags = cloneTags(rec.Tags)
	if tag == "" {
		return out
	}
	for _, t := range out.Tags {
		if t == tag {
			return out
		}
	}
	out.Tags = append(out.Tags, tag)
	out.UpdatedAt = time.Now().UTC()
	return out
}

// RemoveTag returns a copy of rec without the given tag. Removing an absent
// tag is a no-op.
func RemoveTag(rec JobRecord, tag string) JobRecord {
	tag = strings.TrimSpace(tag)
	out := rec
	out.Tags = cloneTags(rec.Tags)
	for i, t := range out.Tags {
		if t == tag {
			out.Tags = append(out.Tags[:i], out.Tags[i+1:]...)
			out.UpdatedAt = time.Now().UTC()
			return out
		}
	}
	return out
}

// normalizeTags trims, drops empties, and deduplicates while keeping first
// occurrence order. A nil or all-garbage input yields an empty, non-nil set.
func normalizeTags(raw []string) []string {
	tags := make([]string, 0, len(raw))
	seen := make(map[string]struct{}, len(raw))
	for _, t := range raw {
		t = strings.TrimSpace(t)
		if t == "" {
			continue
		}
		if _, ok := seen[t]; ok {
			continue
		}
		seen[t] = struct{}{}
		tags = append(tags, t)
	}
	return tags
}

func cloneTags(tags []string) []string {
	out := make([]string, len(tags))
	copy(out, tags)
	return out
}

// dateOnly strips the time-of-day component; applied dates compare at
// calendar-day precision.
func dateOnly(t time.Time) time.Time {
	if t.IsZero() {
		return t
	}
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}
