package service

import (
	"context"
	"io"
	"os"
	"path/filepath"
	"testing"

	"notez-be/internal/dto"
	"notez-be/internal/pkg/logger"
	"notez-be/pkg/storage"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestMediaService(t *testing.T) IMediaService {
	t.Helper()
	root := t.TempDir()
	dir := filepath.Join(root, "public", "u1", "imgs")
	require.NoError(t, os.MkdirAll(dir, 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "note.txt"), []byte("hello media"), 0o644))

	store, err := storage.NewLocalStore(root)
	require.NoError(t, err)
	return NewMediaService(store, logger.NewNopLogger())
}

func TestMediaService_Open(t *testing.T) {
	svc := newTestMediaService(t)

	obj, err := svc.Open(context.Background(), &dto.MediaRequest{UserId: "u1", MediaType: "imgs", Filename: "note.txt"})
	require.NoError(t, err)
	defer obj.Body.Close()

	body, err := io.ReadAll(obj.Body)
	require.NoError(t, err)
	assert.Equal(t, "hello media", string(body))
	assert.Equal(t, "public/u1/imgs/note.txt", obj.Key)
	assert.Contains(t, obj.ContentType, "text/plain")
}

func TestMediaService_NotFound(t *testing.T) {
	svc := newTestMediaService(t)

	tests := []struct {
		name string
		req  dto.MediaRequest
	}{
		{"missing file", dto.MediaRequest{UserId: "u1", MediaType: "imgs", Filename: "gone.png"}},
		{"missing user", dto.MediaRequest{UserId: "u2", MediaType: "imgs", Filename: "note.txt"}},
		{"traversal", dto.MediaRequest{UserId: "..", MediaType: "imgs", Filename: "note.txt"}},
		{"empty segment", dto.MediaRequest{UserId: "u1", MediaType: "", Filename: "note.txt"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := svc.Open(context.Background(), &tt.req)
			assert.ErrorIs(t, err, ErrMediaNotFound)
		})
	}
}
