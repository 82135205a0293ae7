package download

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log"
	"net/http"
	"net/url"
	"os"
	"path"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"lookout/internal/eventbus"
)

// Status is the lifecycle state of a download task
type Status string

const (
	StatusRunning Status = "running"
	StatusDone    Status = "done"
	StatusFailed  Status = "failed"
)

// Task describes one image download
type Task struct {
	ID       string
	URL      string
	TempPath string // temporary copy, removed after the release delay
	Path     string // final location
	Bytes    int64
	Status   Status
	Err      error
}

// Options configure a Service
type Options struct {
	Dir          string        // destination directory
	TempDir      string        // where temporary copies live; os.TempDir() when empty
	ReleaseDelay time.Duration // how long the temporary copy outlives the save
	Client       *http.Client
	Bus          eventbus.EventBus
}

// Service downloads images. Each download holds exactly one temporary file,
// which is removed ReleaseDelay after the save attempt whatever its result.
type Service struct {
	opts Options

	mu    sync.Mutex
	tasks map[string]*Task

	releases sync.WaitGroup
}

// NewService creates a download service
func NewService(opts Options) *Service {
	if opts.Client == nil {
		opts.Client = &http.Client{Timeout: 60 * time.Second}
	}
	if opts.TempDir == "" {
		opts.TempDir = os.TempDir()
	}
	return &Service{
		opts:  opts,
		tasks: make(map[string]*Task),
	}
}

// Download fetches rawURL and saves it in the destination directory as
// <name>-<n><ext>. It blocks until the file is saved or the attempt failed.
func (s *Service) Download(ctx context.Context, rawURL, name string) (*Task, error) {
	task := &Task{
		ID:     uuid.NewString(),
		URL:    rawURL,
		Status: StatusRunning,
	}
	s.mu.Lock()
	s.tasks[task.ID] = task
	s.mu.Unlock()

	s.publish(eventbus.DownloadStartedEvent{ID: task.ID, URL: rawURL})

	res, err := s.run(ctx, task.ID, rawURL, name)

	s.mu.Lock()
	task.TempPath = res.tempPath
	task.Bytes = res.bytes
	task.Path = res.path
	if err != nil {
		task.Status = StatusFailed
		task.Err = err
	} else {
		task.Status = StatusDone
	}
	done := *task
	s.mu.Unlock()

	if err != nil {
		log.Printf("download: %s failed: %v", rawURL, err)
		s.publish(eventbus.DownloadFailedEvent{ID: done.ID, URL: rawURL, Err: err})
		return &done, err
	}

	log.Printf("download: saved %s (%d bytes)", done.Path, done.Bytes)
	s.publish(eventbus.DownloadCompletedEvent{ID: done.ID, URL: rawURL, Path: done.Path, Bytes: done.Bytes})
	return &done, nil
}

// result is what run produced, committed to the task under s.mu
type result struct {
	tempPath string
	bytes    int64
	path     string
}

func (s *Service) run(ctx context.Context, id, rawURL, name string) (result, error) {
	var res result

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return res, fmt.Errorf("failed to create request: %w", err)
	}

	resp, err := s.opts.Client.Do(req)
	if err != nil {
		return res, fmt.Errorf("download request failed: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		return res, fmt.Errorf("download returned status %d", resp.StatusCode)
	}

	ext := extension(rawURL)
	tmp, err := os.CreateTemp(s.opts.TempDir, "lookout-*"+ext)
	if err != nil {
		return res, fmt.Errorf("failed to create temporary file: %w", err)
	}
	res.tempPath = tmp.Name()
	defer s.scheduleRelease(id, tmp.Name())

	n, err := io.Copy(tmp, resp.Body)
	if closeErr := tmp.Close(); err == nil {
		err = closeErr
	}
	if err != nil {
		return res, fmt.Errorf("failed to read image: %w", err)
	}
	res.bytes = n

	dest, err := s.save(tmp.Name(), name, ext)
	if err != nil {
		return res, err
	}
	res.path = dest
	return res, nil
}

// save copies the temporary file to a free name in the destination directory
func (s *Service) save(tempPath, name, ext string) (string, error) {
	if err := os.MkdirAll(s.opts.Dir, 0755); err != nil {
		return "", fmt.Errorf("failed to create download directory: %w", err)
	}

	src, err := os.Open(tempPath)
	if err != nil {
		return "", fmt.Errorf("failed to open temporary file: %w", err)
	}
	defer src.Close()

	base := SanitizeName(name)
	for i := 1; ; i++ {
		dest := filepath.Join(s.opts.Dir, fmt.Sprintf("%s-%d%s", base, i, ext))
		out, err := os.OpenFile(dest, os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0644)
		if errors.Is(err, os.ErrExist) {
			continue
		}
		if err != nil {
			return "", fmt.Errorf("failed to create %s: %w", dest, err)
		}

		_, err = io.Copy(out, src)
		if closeErr := out.Close(); err == nil {
			err = closeErr
		}
		if err != nil {
			_ = os.Remove(dest)
			return "", fmt.Errorf("failed to write %s: %w", dest, err)
		}
		return dest, nil
	}
}

func (s *Service) scheduleRelease(id, tempPath string) {
	s.releases.Add(1)
	time.AfterFunc(s.opts.ReleaseDelay, func() {
		defer s.releases.Done()
		if err := os.Remove(tempPath); err != nil && !errors.Is(err, os.ErrNotExist) {
			log.Printf("download: failed to release %s: %v", tempPath, err)
		}
		s.publish(eventbus.TempReleasedEvent{ID: id, Path: tempPath})
	})
}

// Wait blocks until every scheduled temporary file has been released
func (s *Service) Wait() {
	s.releases.Wait()
}

// Task returns a snapshot of the task with id
func (s *Service) Task(id string) (Task, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	t, ok := s.tasks[id]
	if !ok {
		return Task{}, false
	}
	return *t, true
}

func (s *Service) publish(e eventbus.DomainEvent) {
	if s.opts.Bus != nil {
		s.opts.Bus.Publish(e)
	}
}

// SanitizeName turns a search query into a safe file name stem
func SanitizeName(name string) string {
	var b strings.Builder
	for _, r := range strings.TrimSpace(name) {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9', r == '-', r == '_':
			b.WriteRune(r)
		default:
			b.WriteRune('-')
		}
	}
	out := strings.Trim(b.String(), "-")
	if out == "" {
		return "image"
	}
	return out
}

func extension(rawURL string) string {
	u, err := url.Parse(rawURL)
	if err != nil {
		return ".jpg"
	}
	ext := strings.ToLower(path.Ext(u.Path))
	switch ext {
	case ".jpg", ".jpeg", ".png", ".gif", ".webp":
		return ext
	default:
		return ".jpg"
	}
}
