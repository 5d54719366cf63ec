package models

import (
	"time"

	"gorm.io/datatypes"
)

// User is the local shadow of an identity verified by the external auth
// provider. The ID is the provider's opaque uid; we never mint these.
type User struct {
	ID        string    `gorm:"primaryKey" json:"id"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	Email string `gorm:"index" json:"email"`
}

// Board is a named collection of jobs for one owner. Every owner gets a
// "default" board provisioned on first use.
type Board struct {
	ID        string    `gorm:"primaryKey" json:"id"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	OwnerID string `gorm:"uniqueIndex:idx_owner_board" json:"owner_id"`
	Name    string `gorm:"uniqueIndex:idx_owner_board;not null" json:"name"`
}

// Job is the persistence row for one tracked application. Tags and Feedback
// live in JSON columns since both are schemaless blobs the domain layer
// normalizes on read. Deletion is a hard delete: the product has no archive
// state, so there is no DeletedAt here.
type Job struct {
	ID        string    `gorm:"primaryKey" json:"id"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	OwnerID string `gorm:"index:idx_jobs_scope" json:"owner_id"`
	// Board is the owning board's name, scoped by OwnerID ("default" unless
	// the user made more boards).
	Board string `gorm:"index:idx_jobs_scope" json:"board"`

	Company     string         `gorm:"not null" json:"company"`
	Role        string         `gorm:"not null" json:"role"`
	Location    string         `json:"location"`
	AppliedDate time.Time      `json:"applied_date"`
	Status      string         `gorm:"default:'Wishlist'" json:"status"`
	Notes       string         `gorm:"type:text" json:"notes"`
	Tags        datatypes.JSON `json:"tags"`
	Feedback    datatypes.JSON `json:"feedback"`
}

// JobEvent records a status transition, powering the timeline view.
type JobEvent struct {
	ID         uint      `gorm:"primaryKey" json:"id"`
	CreatedAt  time.Time `json:"created_at"`
	JobID      string    `gorm:"index" json:"job_id"`
	FromStatus string    `json:"from_status"`
	ToStatus   string    `json:"to_status"`
	Details    string    `gorm:"type:text" json:"details"`
}
