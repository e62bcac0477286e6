package storage

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path"
	"path/filepath"
	"strings"

	"github.com/gabriel-vasile/mimetype"
)

var (
	ErrObjectNotFound = errors.New("object not found")
	ErrInvalidKey     = errors.New("invalid object key")
)

// Object is an open blob. Callers must close Body.
type Object struct {
	Key         string
	Name        string
	Size        int64
	ContentType string
	Body        io.ReadCloser
}

type BlobStore interface {
	Get(ctx context.Context, key string) (*Object, error)
}

// LocalStore serves blobs from a directory tree. Keys are slash separated
// and may not escape the root.
type LocalStore struct {
	root string
}

func NewLocalStore(root string) (*LocalStore, error) {
	abs, err := filepath.Abs(root)
	if err != nil {
		return nil, fmt.Errorf("resolve media root: %w", err)
	}
	return &LocalStore{root: abs}, nil
}

// ValidSegment reports whether s can be used as one path segment of a key.
func ValidSegment(s string) bool {
	return s != "" && s != "." && s != ".." && !strings.ContainsAny(s, "/\\\x00")
}

// JoinKey builds a key from segments, rejecting anything that is not a plain name.
func JoinKey(segments ...string) (string, error) {
	for _, s := range segments {
		if !ValidSegment(s) {
			return "", ErrInvalidKey
		}
	}
	return path.Join(segments...), nil
}

func (s *LocalStore) resolve(key string) (string, error) {
	full := filepath.Join(s.root, filepath.FromSlash(key))
	rel, err := filepath.Rel(s.root, full)
	if err != nil || rel == "." || strings.HasPrefix(rel, "..") {
		return "", ErrInvalidKey
	}
	return full, nil
}

func (s *LocalStore) Get(ctx context.Context, key string) (*Object, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	full, err := s.resolve(key)
	if err != nil {
		return nil, err
	}

	info, err := os.Stat(full)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, ErrObjectNotFound
		}
		return nil, err
	}
	if info.IsDir() {
		return nil, ErrObjectNotFound
	}

	mtype, err := mimetype.DetectFile(full)
	if err != nil {
		return nil, err
	}

	f, err := os.Open(full)
	if err != nil {
		return nil, err
	}

	return &Object{
		Key:         key,
		Name:        info.Name(),
		Size:        info.Size(),
		ContentType: mtype.String(),
		Body:        f,
	}, nil
}
