package service

import (
	"context"
	"fmt"
	"io"
	"log"
	"mime/multipart"
	"net/http"
	"path/filepath"
	"strings"

	"github.com/google/uuid"

	"devonxona/internal/config"
	"devonxona/internal/domain"
	"devonxona/internal/port"
)

// AttachmentUploadInput is the DTO for attachment upload requests.
type AttachmentUploadInput struct {
	CorrespondenceID uuid.UUID
	UploadedBy       uuid.UUID
	File             multipart.File
	Header           *multipart.FileHeader
}

// AttachmentService defines the attachment management contract. Attachments
// hold scanned originals and supporting files for a correspondence; they do
// not participate in workflow transitions.
type AttachmentService interface {
	Upload(ctx context.Context, input AttachmentUploadInput) (*domain.Attachment, error)
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Attachment, error)
	ListByCorrespondence(ctx context.Context, correspondenceID uuid.UUID) ([]domain.Attachment, error)
	GetDownloadURL(ctx context.Context, id uuid.UUID) (string, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

type attachmentService struct {
	attRepo  port.AttachmentRepository
	corrRepo port.CorrespondenceRepository
	storage  port.ObjectStorage
	cfg      *config.S3Config
}

// NewAttachmentService creates a new AttachmentService implementation.
func NewAttachmentService(
	attRepo port.AttachmentRepository,
	corrRepo port.CorrespondenceRepository,
	storage port.ObjectStorage,
	cfg *config.S3Config,
) AttachmentService {
	return &attachmentService{
		attRepo:  attRepo,
		corrRepo: corrRepo,
		storage:  storage,
		cfg:      cfg,
	}
}

func (s *attachmentService) Upload(ctx context.Context, input AttachmentUploadInput) (*domain.Attachment, error) {
	if _, err := s.corrRepo.GetByID(ctx, input.CorrespondenceID); err != nil {
		return nil, err
	}

	// Validate file extension
	ext := strings.ToLower(strings.TrimPrefix(filepath.Ext(input.Header.Filename), "."))
	fileType, ok := domain.AllowedExtensions[ext]
	if !ok {
		return nil, domain.ErrUnsupportedFileType
	}

	// Validate file size
	maxBytes := s.cfg.MaxFileSizeMB * 1024 * 1024
	if input.Header.Size > maxBytes {
		return nil, domain.ErrFileTooLarge
	}

	// Read first 512 bytes for magic-byte content type detection
	buf := make([]byte, 512)
	n, err := input.File.Read(buf)
	if err != nil && err != io.EOF {
		return nil, fmt.Errorf("reading file header: %w", err)
	}
	detectedType := http.DetectContentType(buf[:n])

	if _, validContent := domain.AllowedContentTypes[detectedType]; !validContent {
		return nil, domain.ErrUnsupportedFileType
	}

	// Seek back to beginning for upload
	if _, err := input.File.Seek(0, io.SeekStart); err != nil {
		return nil, fmt.Errorf("seeking file: %w", err)
	}

	attID := uuid.New()
	s3Key := fmt.Sprintf("correspondences/%s/attachments/%s/%s", input.CorrespondenceID, attID, input.Header.Filename)
	contentType := domain.AllowedFileTypes[fileType]

	att := &domain.Attachment{
		ID:               attID,
		CorrespondenceID: input.CorrespondenceID,
		UploadedBy:       input.UploadedBy,
		FileName:         attID.String() + "." + ext,
		OriginalName:     input.Header.Filename,
		FileType:         fileType,
		FileSize:         input.Header.Size,
		S3Bucket:         s.cfg.Bucket,
		S3Key:            s3Key,
		ContentType:      contentType,
		Status:           domain.FileStatusPending,
	}

	log.Printf("attachmentService.Upload: uploading %s (%s, %d bytes) for correspondence %s by user %s",
		input.Header.Filename, contentType, input.Header.Size, input.CorrespondenceID, input.UploadedBy)

	// Persist metadata with pending status
	if err := s.attRepo.Create(ctx, att); err != nil {
		log.Printf("attachmentService.Upload: failed to create attachment metadata: %v", err)
		return nil, fmt.Errorf("creating attachment metadata: %w", err)
	}

	_, err = s.storage.Upload(ctx, port.UploadInput{
		Bucket:      s.cfg.Bucket,
		Key:         s3Key,
		Body:        input.File,
		ContentType: contentType,
		Size:        input.Header.Size,
	})
	if err != nil {
		log.Printf("attachmentService.Upload: S3 upload failed for attachment %s: %v", att.ID, err)
		_ = s.attRepo.UpdateStatus(ctx, att.ID, domain.FileStatusFailed)
		return nil, domain.ErrUploadFailed
	}

	if err := s.attRepo.UpdateStatus(ctx, att.ID, domain.FileStatusUploaded); err != nil {
		return nil, fmt.Errorf("updating attachment status: %w", err)
	}
	att.Status = domain.FileStatusUploaded

	return att, nil
}

func (s *attachmentService) GetByID(ctx context.Context, id uuid.UUID) (*domain.Attachment, error) {
	return s.attRepo.GetByID(ctx, id)
}

func (s *attachmentService) ListByCorrespondence(ctx context.Context, correspondenceID uuid.UUID) ([]domain.Attachment, error) {
	return s.attRepo.ListByCorrespondence(ctx, correspondenceID)
}

func (s *attachmentService) GetDownloadURL(ctx context.Context, id uuid.UUID) (string, error) {
	att, err := s.attRepo.GetByID(ctx, id)
	if err != nil {
		return "", err
	}
	return s.storage.GetPresignedURL(ctx, att.S3Bucket, att.S3Key, s.cfg.PresignExpiry)
}

func (s *attachmentService) Delete(ctx context.Context, id uuid.UUID) error {
	att, err := s.attRepo.GetByID(ctx, id)
	if err != nil {
		return err
	}

	if err := s.storage.Delete(ctx, att.S3Bucket, att.S3Key); err != nil {
		log.Printf("attachmentService.Delete: failed to delete from S3: %v", err)
		return fmt.Errorf("deleting from storage: %w", err)
	}

	return s.attRepo.Delete(ctx, id)
}
