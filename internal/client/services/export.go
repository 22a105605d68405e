package services

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"time"

	"github.com/dmitrijs2005/nexaboard/internal/client/models"
	"github.com/dmitrijs2005/nexaboard/internal/client/storage"
	"github.com/dmitrijs2005/nexaboard/internal/client/tasklist"
	"github.com/dmitrijs2005/nexaboard/internal/filex"
	"github.com/dmitrijs2005/nexaboard/internal/netx"
)

// ObjectUploader stores a blob under bucket/key.
type ObjectUploader interface {
	Upload(ctx context.Context, bucket, key string, body []byte, contentType string) error
}

// UploaderFactory builds the uploader on first use so that local exports
// never touch cloud configuration.
type UploaderFactory func(ctx context.Context) (ObjectUploader, error)

// Export is the document written by ExportService.
type Export struct {
	ExportedAt time.Time     `json:"exportedAt"`
	Count      int           `json:"count"`
	Tasks      []models.Task `json:"tasks"`
}

type ExportService interface {
	// Export writes the tasks matching c to dest: "-" or "" for w, a
	// pre-signed http(s) URL, an s3://bucket/key URL, or a local file path.
	// It returns the task count.
	Export(ctx context.Context, dest string, c tasklist.Criteria, w io.Writer) (int, error)
}

type exportService struct {
	tasks    TaskService
	uploader UploaderFactory
	now      func() time.Time
}

func NewExportService(tasks TaskService, uploader UploaderFactory) ExportService {
	return &exportService{tasks: tasks, uploader: uploader, now: time.Now}
}

func (s *exportService) Export(ctx context.Context, dest string, c tasklist.Criteria, w io.Writer) (int, error) {
	list := tasklist.NewList()
	if err := s.tasks.Fetch(ctx, list); err != nil {
		return 0, err
	}
	list.SetCriteria(c)
	visible := list.Visible()

	doc, err := json.MarshalIndent(Export{ExportedAt: s.now().UTC(), Count: len(visible), Tasks: visible}, "", "  ")
	if err != nil {
		return 0, fmt.Errorf("encode export: %w", err)
	}
	doc = append(doc, '\n')

	if dest == "" || dest == "-" {
		if _, err := w.Write(doc); err != nil {
			return 0, fmt.Errorf("write export: %w", err)
		}
		return len(visible), nil
	}

	if netx.IsPresignedURL(dest) {
		if err := netx.PutPresigned(ctx, nil, dest, doc, "application/json"); err != nil {
			return 0, fmt.Errorf("upload export: %w", err)
		}
		return len(visible), nil
	}

	bucket, key, err := storage.ParseS3URL(dest)
	switch {
	case err == nil:
		if s.uploader == nil {
			return 0, errors.New("s3 export is not configured")
		}
		up, err := s.uploader(ctx)
		if err != nil {
			return 0, fmt.Errorf("s3 uploader: %w", err)
		}
		if err := up.Upload(ctx, bucket, key, doc, "application/json"); err != nil {
			return 0, err
		}
	case errors.Is(err, storage.ErrNotS3URL):
		if err := filex.WriteFile(dest, doc, 0o600); err != nil {
			return 0, fmt.Errorf("write export: %w", err)
		}
	default:
		return 0, err
	}
	return len(visible), nil
}
