package service

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"regexp"
	"strings"
	"video-paywall-demo/internal/model"
)

var allowedVideoExt = map[string]bool{
	"mp4":  true,
	"webm": true,
	"ogg":  true,
}

// MediaService stores public uploads and resolves them for serving.
type MediaService interface {
	Save(ctx context.Context, filename string, src io.Reader) (string, error)
	Path(filename string) (string, error)
}

type mediaServiceImpl struct {
	uploadDir string
}

func NewMediaService(uploadDir string) MediaService {
	return &mediaServiceImpl{uploadDir: uploadDir}
}

// Save writes src under a sanitized name and returns that name. An existing
// file with the same name is replaced.
func (s *mediaServiceImpl) Save(ctx context.Context, filename string, src io.Reader) (string, error) {
	if filename == "" {
		return "", fmt.Errorf("%w: No file", model.ErrInvalidInput)
	}
	if !AllowedVideo(filename) {
		return "", fmt.Errorf("%w: Invalid type", model.ErrInvalidInput)
	}

	name := SecureFilename(filename)
	if name == "" {
		return "", fmt.Errorf("%w: Invalid filename", model.ErrInvalidInput)
	}
	if !AllowedVideo(name) {
		return "", fmt.Errorf("%w: Invalid type", model.ErrInvalidInput)
	}

	if err := os.MkdirAll(s.uploadDir, 0o755); err != nil {
		return "", fmt.Errorf("create upload dir: %w", err)
	}

	// written under a dot name that Path never resolves, renamed when complete
	tmp, err := os.CreateTemp(s.uploadDir, ".upload-*")
	if err != nil {
		return "", fmt.Errorf("create temp file for %s: %w", name, err)
	}

	if _, err := io.Copy(tmp, readerWithContext(ctx, src)); err != nil {
		_ = tmp.Close()
		_ = os.Remove(tmp.Name())
		return "", fmt.Errorf("write %s: %w", name, err)
	}
	if err := tmp.Close(); err != nil {
		_ = os.Remove(tmp.Name())
		return "", fmt.Errorf("close %s: %w", name, err)
	}
	if err := os.Chmod(tmp.Name(), 0o644); err != nil {
		_ = os.Remove(tmp.Name())
		return "", fmt.Errorf("chmod %s: %w", name, err)
	}
	if err := os.Rename(tmp.Name(), filepath.Join(s.uploadDir, name)); err != nil {
		_ = os.Remove(tmp.Name())
		return "", fmt.Errorf("store %s: %w", name, err)
	}

	return name, nil
}

func (s *mediaServiceImpl) Path(filename string) (string, error) {
	name := SecureFilename(filename)
	if name == "" || name != filename {
		return "", model.ErrNotFound
	}

	path := filepath.Join(s.uploadDir, name)
	info, err := os.Stat(path)
	if errors.Is(err, os.ErrNotExist) || (err == nil && info.IsDir()) {
		return "", model.ErrNotFound
	}
	if err != nil {
		return "", fmt.Errorf("stat %s: %w", name, err)
	}

	return path, nil
}

func AllowedVideo(filename string) bool {
	i := strings.LastIndex(filename, ".")
	if i < 0 {
		return false
	}
	return allowedVideoExt[strings.ToLower(filename[i+1:])]
}

var unsafeFilenameChars = regexp.MustCompile(`[^A-Za-z0-9_.-]`)

// SecureFilename reduces a client supplied name to a flat ASCII file name:
// directories are dropped, whitespace becomes "_", anything else outside
// [A-Za-z0-9_.-] is removed, and leading dots or underscores are trimmed.
func SecureFilename(filename string) string {
	filename = strings.ReplaceAll(filename, `\`, "/")
	filename = filepath.Base(filename)
	filename = strings.Join(strings.Fields(filename), "_")
	filename = unsafeFilenameChars.ReplaceAllString(filename, "")
	filename = strings.TrimLeft(filename, "._")
	return filename
}

type ctxReader struct {
	ctx context.Context
	r   io.Reader
}

func readerWithContext(ctx context.Context, r io.Reader) io.Reader {
	return &ctxReader{ctx: ctx, r: r}
}

func (c *ctxReader) Read(p []byte) (int, error) {
	if err := c.ctx.Err(); err != nil {
		return 0, err
	}
	return c.r.Read(p)
}
