package domain

import (
	"time"

	"github.com/google/uuid"
)

// User represents a member of the chancellery staff.
type User struct {
	ID           uuid.UUID `db:"id" json:"id"`
	Email        string    `db:"email" json:"email"`
	PasswordHash string    `db:"password_hash" json:"-"`
	FullName     string    `db:"full_name" json:"full_name"`
	Role         UserRole  `db:"role" json:"role"`
	Department   string    `db:"department" json:"department"`
	IsActive     bool      `db:"is_active" json:"is_active"`
	CreatedAt    time.Time `db:"created_at" json:"created_at"`
	UpdatedAt    time.Time `db:"updated_at" json:"updated_at"`
}

// Department represents an organizational unit (tarmoq).
type Department struct {
	ID             uuid.UUID  `db:"id" json:"id"`
	Name           string     `db:"name" json:"name"`
	ParentID       *uuid.UUID `db:"parent_id" json:"parent_id"`
	ReviewRequired bool       `db:"review_required" json:"review_required"`
	CreatedAt      time.Time  `db:"created_at" json:"created_at"`
}

// Correspondence is the workflow document record. Stage is the single source
// of truth for workflow position; it is mutated exclusively through the
// transition executor.
type Correspondence struct {
	ID                 uuid.UUID            `db:"id" json:"id"`
	Type               CorrespondenceType   `db:"type" json:"type"`
	Title              string               `db:"title" json:"title"`
	Content            string               `db:"content" json:"content"`
	Source             string               `db:"source" json:"source"`
	Stage              Stage                `db:"stage" json:"stage"`
	Status             CorrespondenceStatus `db:"status" json:"status"`
	Kartoteka          Kartoteka            `db:"kartoteka" json:"kartoteka"`
	Department         string               `db:"department" json:"department"`
	AuthorID           uuid.UUID            `db:"author_id" json:"author_id"`
	MainExecutorID     *uuid.UUID           `db:"main_executor_id" json:"main_executor_id"`
	InternalAssigneeID *uuid.UUID           `db:"internal_assignee_id" json:"internal_assignee_id"`
	ReviewRound        int                  `db:"review_round" json:"review_round"`
	Deadline           *time.Time           `db:"deadline" json:"deadline"`
	CreatedAt          time.Time            `db:"created_at" json:"created_at"`
	UpdatedAt          time.Time            `db:"updated_at" json:"updated_at"`

	// Reviewers holds the current-round reviewer entries. Loaded alongside the
	// row; not a column.
	Reviewers []Reviewer `db:"-" json:"reviewers,omitempty"`
}

// Reviewer is one required-reviewer entry for a review round. Entries are
// mutable only while the correspondence is in FINAL_REVIEW and only for the
// current round; past rounds are historical.
type Reviewer struct {
	ID               uuid.UUID      `db:"id" json:"id"`
	CorrespondenceID uuid.UUID      `db:"correspondence_id" json:"correspondence_id"`
	UserID           uuid.UUID      `db:"user_id" json:"user_id"`
	UserName         string         `db:"user_name" json:"user_name"`
	Department       string         `db:"department" json:"department"`
	Status           ReviewerStatus `db:"status" json:"status"`
	Comment          string         `db:"comment" json:"comment,omitempty"`
	Round            int            `db:"round" json:"round"`
	CreatedAt        time.Time      `db:"created_at" json:"created_at"`
	UpdatedAt        time.Time      `db:"updated_at" json:"updated_at"`
}

// AuditLogEntry is one immutable record of a workflow transition.
// Entries are append-only and never reordered.
type AuditLogEntry struct {
	ID               uuid.UUID   `db:"id" json:"id"`
	CorrespondenceID uuid.UUID   `db:"correspondence_id" json:"correspondence_id"`
	UserID           *uuid.UUID  `db:"user_id" json:"user_id"`
	UserName         string      `db:"user_name" json:"user_name"`
	Action           AuditAction `db:"action" json:"action"`
	Details          string      `db:"details" json:"details,omitempty"`
	RejectionReason  string      `db:"rejection_reason" json:"rejection_reason,omitempty"`
	CreatedAt        time.Time   `db:"created_at" json:"created_at"`
}

// Attachment stores metadata about a scanned original or supporting file
// uploaded for a correspondence.
type Attachment struct {
	ID               uuid.UUID  `db:"id" json:"id"`
	CorrespondenceID uuid.UUID  `db:"correspondence_id" json:"correspondence_id"`
	UploadedBy       uuid.UUID  `db:"uploaded_by" json:"uploaded_by"`
	FileName         string     `db:"file_name" json:"file_name"`
	OriginalName     string     `db:"original_name" json:"original_name"`
	FileType         FileType   `db:"file_type" json:"file_type"`
	FileSize         int64      `db:"file_size" json:"file_size"`
	S3Bucket         string     `db:"s3_bucket" json:"s3_bucket"`
	S3Key            string     `db:"s3_key" json:"s3_key"`
	ContentType      string     `db:"content_type" json:"content_type"`
	Status           FileStatus `db:"status" json:"status"`
	CreatedAt        time.Time  `db:"created_at" json:"created_at"`
}
