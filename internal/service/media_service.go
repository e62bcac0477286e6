package service

import (
	"context"
	"errors"
	"fmt"

	"notez-be/internal/dto"
	"notez-be/internal/pkg/logger"
	"notez-be/pkg/storage"
)

const mediaPrefix = "public"

type IMediaService interface {
	// Open returns the stored object. The caller closes its Body.
	Open(ctx context.Context, req *dto.MediaRequest) (*storage.Object, error)
	// Key returns the object key for req without touching the store.
	Key(req *dto.MediaRequest) (string, error)
}

type mediaService struct {
	store  storage.BlobStore
	logger logger.ILogger
}

func NewMediaService(store storage.BlobStore, log logger.ILogger) IMediaService {
	return &mediaService{store: store, logger: log}
}

func (s *mediaService) Key(req *dto.MediaRequest) (string, error) {
	key, err := storage.JoinKey(mediaPrefix, req.UserId, req.MediaType, req.Filename)
	if err != nil {
		return "", ErrMediaNotFound
	}
	return key, nil
}

func (s *mediaService) Open(ctx context.Context, req *dto.MediaRequest) (*storage.Object, error) {
	key, err := s.Key(req)
	if err != nil {
		return nil, err
	}

	obj, err := s.store.Get(ctx, key)
	switch {
	case err == nil:
		return obj, nil
	case errors.Is(err, storage.ErrObjectNotFound), errors.Is(err, storage.ErrInvalidKey):
		return nil, ErrMediaNotFound
	default:
		s.logger.Error("MediaService", "failed to open media", map[string]interface{}{
			"key":   key,
			"error": err,
		})
		return nil, fmt.Errorf("open media %s: %w", key, err)
	}
}
