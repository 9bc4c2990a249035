package service

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"video-paywall-demo/internal/model"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSecureFilename(t *testing.T) {
	cases := map[string]string{
		"clip.mp4":            "clip.mp4",
		"my clip.mp4":         "my_clip.mp4",
		"../../etc/passwd":    "passwd",
		`..\..\win\clip.webm`: "clip.webm",
		".hidden.mp4":         "hidden.mp4",
		"vidéo*?.ogg":         "vido.ogg",
		"":                    "",
	}

	for in, want := range cases {
		assert.Equal(t, want, SecureFilename(in), "input %q", in)
	}
}

func TestAllowedVideo(t *testing.T) {
	assert.True(t, AllowedVideo("a.mp4"))
	assert.True(t, AllowedVideo("a.WEBM"))
	assert.True(t, AllowedVideo("a.tar.ogg"))
	assert.False(t, AllowedVideo("a.exe"))
	assert.False(t, AllowedVideo("mp4"))
}

func TestMediaService_SaveAndPath(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "videos")
	svc := NewMediaService(dir)
	ctx := context.Background()

	_, err := svc.Save(ctx, "", strings.NewReader("x"))
	assert.ErrorContains(t, err, "No file")
	assert.ErrorIs(t, err, model.ErrInvalidInput)

	_, err = svc.Save(ctx, "notes.txt", strings.NewReader("x"))
	assert.ErrorContains(t, err, "Invalid type")

	name, err := svc.Save(ctx, "../my clip.mp4", strings.NewReader("frames"))
	require.NoError(t, err)
	assert.Equal(t, "my_clip.mp4", name)

	data, err := os.ReadFile(filepath.Join(dir, name))
	require.NoError(t, err)
	assert.Equal(t, "frames", string(data))

	path, err := svc.Path(name)
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, name), path)

	_, err = svc.Path("missing.mp4")
	assert.ErrorIs(t, err, model.ErrNotFound)

	_, err = svc.Path("../videos/my_clip.mp4")
	assert.ErrorIs(t, err, model.ErrNotFound)
}

func TestMediaService_SaveCancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	dir := t.TempDir()
	svc := NewMediaService(dir)

	_, err := svc.Save(ctx, "clip.mp4", strings.NewReader("frames"))
	assert.ErrorIs(t, err, context.Canceled)

	_, err = svc.Path("clip.mp4")
	assert.ErrorIs(t, err, model.ErrNotFound)

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	assert.Empty(t, entries, "no partial upload left behind")
}

func TestMediaService_SaveKeepsExtension(t *testing.T) {
	dir := t.TempDir()
	svc := NewMediaService(dir)

	_, err := svc.Save(context.Background(), "..mp4", strings.NewReader("frames"))
	assert.ErrorIs(t, err, model.ErrInvalidInput)
	assert.ErrorContains(t, err, "Invalid type")

	_, err = svc.Path("mp4")
	assert.ErrorIs(t, err, model.ErrNotFound)
}

func TestMediaService_SaveReplaces(t *testing.T) {
	dir := t.TempDir()
	svc := NewMediaService(dir)
	ctx := context.Background()

	_, err := svc.Save(ctx, "clip.mp4", strings.NewReader("old"))
	require.NoError(t, err)
	_, err = svc.Save(ctx, "clip.mp4", strings.NewReader("new"))
	require.NoError(t, err)

	data, err := os.ReadFile(filepath.Join(dir, "clip.mp4"))
	require.NoError(t, err)
	assert.Equal(t, "new", string(data))

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	assert.Len(t, entries, 1)
}
