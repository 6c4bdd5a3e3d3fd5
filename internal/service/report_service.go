package service

import (
	"context"
	"fmt"
	"io"

	"devonxona/internal/export"
	"devonxona/internal/port"
)

// exportPageSize bounds each repository page while streaming a register.
const exportPageSize = 500

// ReportService renders the correspondence register as downloadable files.
type ReportService interface {
	RegisterCSV(ctx context.Context, w io.Writer, filter port.CorrespondenceFilter) error
	RegisterXLSX(ctx context.Context, w io.Writer, filter port.CorrespondenceFilter) error
}

type reportService struct {
	corrRepo port.CorrespondenceRepository
}

// NewReportService creates a new ReportService implementation.
func NewReportService(corrRepo port.CorrespondenceRepository) ReportService {
	return &reportService{corrRepo: corrRepo}
}

func (s *reportService) RegisterCSV(ctx context.Context, w io.Writer, filter port.CorrespondenceFilter) error {
	if _, err := w.Write(export.BOM); err != nil {
		return fmt.Errorf("writing BOM: %w", err)
	}

	cw := export.NewWriter(w)
	if err := cw.WriteHeader(); err != nil {
		return fmt.Errorf("writing header: %w", err)
	}

	filter.Offset = 0
	filter.Limit = exportPageSize
	for {
		items, total, err := s.corrRepo.List(ctx, filter)
		if err != nil {
			return fmt.Errorf("listing correspondences: %w", err)
		}
		if err := cw.WriteCorrespondences(items); err != nil {
			return fmt.Errorf("writing rows: %w", err)
		}
		filter.Offset += len(items)
		if len(items) == 0 || filter.Offset >= total {
			break
		}
	}

	cw.Flush()
	return cw.Error()
}

func (s *reportService) RegisterXLSX(ctx context.Context, w io.Writer, filter port.CorrespondenceFilter) error {
	// The workbook is built in memory, so collect all pages first.
	filter.Offset = 0
	filter.Limit = exportPageSize
	items, total, err := s.corrRepo.List(ctx, filter)
	if err != nil {
		return fmt.Errorf("listing correspondences: %w", err)
	}
	for len(items) < total {
		filter.Offset = len(items)
		page, _, err := s.corrRepo.List(ctx, filter)
		if err != nil {
			return fmt.Errorf("listing correspondences: %w", err)
		}
		if len(page) == 0 {
			break
		}
		items = append(items, page...)
	}

	return export.WriteXLSX(w, items)
}
