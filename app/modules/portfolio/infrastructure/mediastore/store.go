package mediastore

import (
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"log/slog"
	"net/http"
	"net/url"
	"os"
	"path"
	"path/filepath"
	"strings"
	"time"

	portfoliotypes "github.com/Black-And-White-Club/portfolio-bot/app/modules/portfolio/domain/types"
	portfoliometrics "github.com/Black-And-White-Club/portfolio-bot/internal/observability/metrics/portfolio"
	"github.com/google/uuid"
)

var (
	// ErrUnexpectedStatus is returned when the remote server does not answer 200.
	ErrUnexpectedStatus = errors.New("unexpected download status")

	// ErrTooLarge is returned when the body exceeds the configured limit.
	ErrTooLarge = errors.New("media exceeds size limit")

	// ErrOutsideMediaDir is returned by Remove for paths outside the store.
	ErrOutsideMediaDir = errors.New("path is outside the media directory")
)

const maxCreateAttempts = 3

// Store downloads attachments into a local directory.
type Store struct {
	dir      string
	client   *http.Client
	maxBytes int64
	logger   *slog.Logger
	metrics  portfoliometrics.PortfolioMetrics
	now      func() time.Time
}

// NewStore creates dir if needed and returns a Store writing into it.
func NewStore(dir string, client *http.Client, maxBytes int64, logger *slog.Logger) (*Store, error) {
	if dir == "" {
		return nil, fmt.Errorf("media directory is empty")
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create media directory: %w", err)
	}
	if client == nil {
		client = NewDownloadClient()
	}
	if maxBytes <= 0 {
		maxBytes = DefaultMaxBytes
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &Store{
		dir:      dir,
		client:   client,
		maxBytes: maxBytes,
		logger:   logger,
		metrics:  portfoliometrics.NewNoop(),
		now:      time.Now,
	}, nil
}

// WithMetrics sets the collector used for download counters.
func (s *Store) WithMetrics(m portfoliometrics.PortfolioMetrics) *Store {
	if m != nil {
		s.metrics = m
	}
	return s
}

// Dir returns the media directory.
func (s *Store) Dir() string { return s.dir }

// Download fetches rawURL and stores it as {projectID}_{timestamp}{ext}.
// On any failure after the file is created the partial file is removed.
func (s *Store) Download(ctx context.Context, rawURL string, projectID int64) (string, error) {
	p, n, err := s.download(ctx, rawURL, projectID)
	if err != nil {
		s.metrics.RecordMediaDownload(ctx, portfoliometrics.OutcomeError, 0)
		return "", err
	}
	s.metrics.RecordMediaDownload(ctx, portfoliometrics.OutcomeOK, n)
	return p, nil
}

func (s *Store) download(ctx context.Context, rawURL string, projectID int64) (string, int64, error) {
	req, err := newDownloadRequest(ctx, rawURL)
	if err != nil {
		return "", 0, fmt.Errorf("failed to build download request: %w", err)
	}

	resp, err := s.client.Do(req)
	if err != nil {
		return "", 0, fmt.Errorf("failed to download media: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", 0, fmt.Errorf("%w: %d", ErrUnexpectedStatus, resp.StatusCode)
	}
	if resp.ContentLength > s.maxBytes {
		return "", 0, fmt.Errorf("%w: %d bytes", ErrTooLarge, resp.ContentLength)
	}

	ext := extensionFor(rawURL, resp.Header.Get("Content-Type"))
	f, filePath, err := s.create(projectID, ext)
	if err != nil {
		return "", 0, err
	}

	n, copyErr := io.Copy(f, io.LimitReader(resp.Body, s.maxBytes+1))
	if copyErr == nil && n > s.maxBytes {
		copyErr = fmt.Errorf("%w: more than %d bytes", ErrTooLarge, s.maxBytes)
	}
	closeErr := f.Close()
	if copyErr == nil {
		copyErr = closeErr
	}
	if copyErr != nil {
		if rmErr := os.Remove(filePath); rmErr != nil && !errors.Is(rmErr, fs.ErrNotExist) {
			s.logger.WarnContext(ctx, "Failed to remove partial media file",
				slog.String("path", filePath),
				slog.Any("error", rmErr),
			)
		}
		return "", 0, fmt.Errorf("failed to write media: %w", copyErr)
	}

	s.logger.DebugContext(ctx, "Media downloaded",
		slog.String("path", filePath),
		slog.Int64("bytes", n),
		slog.Int64("project_id", projectID),
	)
	return filePath, n, nil
}

// create opens a new file exclusively, adding a short suffix when the
// timestamped name is already taken.
func (s *Store) create(projectID int64, ext string) (*os.File, string, error) {
	base := fmt.Sprintf("%d_%s", projectID, s.now().UTC().Format("20060102_150405"))
	name := base + ext

	for attempt := 0; attempt < maxCreateAttempts; attempt++ {
		filePath := filepath.Join(s.dir, name)
		f, err := os.OpenFile(filePath, os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0o644)
		if err == nil {
			return f, filePath, nil
		}
		if !errors.Is(err, fs.ErrExist) {
			return nil, "", fmt.Errorf("failed to create media file: %w", err)
		}
		name = base + "_" + uuid.NewString()[:8] + ext
	}
	return nil, "", fmt.Errorf("failed to create media file: too many name collisions for %s", base)
}

// Remove deletes a stored file. A file that is already gone is not an error.
func (s *Store) Remove(filePath string) error {
	if filePath == "" {
		return nil
	}
	within, err := s.contains(filePath)
	if err != nil {
		return err
	}
	if !within {
		return fmt.Errorf("%w: %s", ErrOutsideMediaDir, filePath)
	}
	if err := os.Remove(filePath); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("failed to remove media file: %w", err)
	}
	return nil
}

func (s *Store) contains(filePath string) (bool, error) {
	root, err := filepath.Abs(s.dir)
	if err != nil {
		return false, err
	}
	target, err := filepath.Abs(filePath)
	if err != nil {
		return false, err
	}
	rel, err := filepath.Rel(root, target)
	if err != nil {
		return false, nil
	}
	return rel != "." && rel != ".." && !strings.HasPrefix(rel, ".."+string(filepath.Separator)), nil
}

// Classify maps a content type to a supported media type.
func Classify(contentType string) (portfoliotypes.MediaType, bool) {
	ct := strings.ToLower(contentType)
	switch {
	case strings.Contains(ct, "image"):
		return portfoliotypes.MediaTypeImage, true
	case strings.Contains(ct, "video"):
		return portfoliotypes.MediaTypeVideo, true
	default:
		return "", false
	}
}

// extensionFor prefers the extension in the URL path and falls back to the
// content type.
func extensionFor(rawURL, contentType string) string {
	if u, err := url.Parse(rawURL); err == nil {
		if ext := path.Ext(u.Path); ext != "" && len(ext) <= 6 {
			return strings.ToLower(ext)
		}
	}
	switch t, _ := Classify(contentType); t {
	case portfoliotypes.MediaTypeImage:
		return ".png"
	case portfoliotypes.MediaTypeVideo:
		return ".mp4"
	default:
		return ".bin"
	}
}
