package handler

import (
	"time"

	"github.com/google/uuid"

	"devonxona/internal/domain"
)

// Swagger type definitions for API documentation.
// These types are used by swag to generate OpenAPI documentation.

// --- Request Types ---

// LoginRequest represents the login request body.
type LoginRequest struct {
	Email    string `json:"email" binding:"required" example:"boshqaruv@bank.uz"`
	Password string `json:"password" binding:"required" example:"securepassword123"`
}

// RefreshRequest represents the token refresh request body.
type RefreshRequest struct {
	RefreshToken string `json:"refresh_token" binding:"required" example:"eyJhbGciOiJIUzI1NiIsInR5cCI6IkpXVCJ9..."`
}

// CreateCorrespondenceRequest represents the correspondence registration body.
type CreateCorrespondenceRequest struct {
	Type      domain.CorrespondenceType `json:"type" binding:"required" example:"Kiruvchi"`
	Title     string                    `json:"title" binding:"required" example:"Markaziy Bank ko'rsatmasi"`
	Content   string                    `json:"content" binding:"required" example:"Hujjat matni..."`
	Source    string                    `json:"source" example:"Markaziy Bank"`
	Kartoteka domain.Kartoteka          `json:"kartoteka" binding:"required" example:"Markaziy Bank"`
	Deadline  *time.Time                `json:"deadline"`
}

// AssignExecutorRequest represents the assign-executor request body.
type AssignExecutorRequest struct {
	ExecutorID uuid.UUID `json:"executor_id" binding:"required" example:"550e8400-e29b-41d4-a716-446655440000"`
}

// AssignInternalRequest represents the assign-internal request body.
type AssignInternalRequest struct {
	EmployeeID uuid.UUID `json:"employee_id" binding:"required" example:"660e8400-e29b-41d4-a716-446655440001"`
}

// RejectReviewRequest represents the reject-review request body.
type RejectReviewRequest struct {
	Comment string `json:"comment" binding:"required" example:"3-band qonun talabiga mos emas"`
}

// CreateUserRequest represents the create user request body.
type CreateUserRequest struct {
	Email      string          `json:"email" binding:"required" example:"tarmoq@bank.uz"`
	Password   string          `json:"password" binding:"required" example:"securepassword123"`
	FullName   string          `json:"full_name" binding:"required" example:"Aziz Karimov"`
	Role       domain.UserRole `json:"role" binding:"required" example:"Tarmoq"`
	Department string          `json:"department" example:"Yuridik boshqarma"`
}

// UpdateUserRequest represents the update user request body.
type UpdateUserRequest struct {
	Email      *string          `json:"email" example:"tarmoq@bank.uz"`
	FullName   *string          `json:"full_name" example:"Aziz Karimov"`
	Role       *domain.UserRole `json:"role" example:"Tarmoq"`
	Department *string          `json:"department" example:"Yuridik boshqarma"`
	IsActive   *bool            `json:"is_active" example:"true"`
}

// --- Response Types ---

// Response wraps a success response.
type Response struct {
	Success bool        `json:"success" example:"true"`
	Data    interface{} `json:"data,omitempty"`
	Meta    *PagMeta    `json:"meta,omitempty"`
}

// ErrorResponseBody wraps an error response.
type ErrorResponseBody struct {
	Success bool      `json:"success" example:"false"`
	Error   *APIError `json:"error"`
}

// DownloadURLResponse carries a presigned attachment download URL.
type DownloadURLResponse struct {
	URL string `json:"url" example:"https://s3.amazonaws.com/bucket/key?X-Amz-Signature=..."`
}
