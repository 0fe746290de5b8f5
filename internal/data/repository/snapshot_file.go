package repository

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"go.uber.org/zap"
)

type fileSnapshotStore struct {
	path string
	log  *zap.Logger
}

// NewFileSnapshotStore keeps the snapshot in <dir>/<key>.json.
func NewFileSnapshotStore(dir, key string, log *zap.Logger) (SnapshotStore, error) {
	if dir != "" {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return nil, fmt.Errorf("create snapshot dir: %w", err)
		}
	}

	return &fileSnapshotStore{
		path: filepath.Join(dir, key+".json"),
		log:  log.With(zap.String("repository", "snapshot_file")),
	}, nil
}

func (s *fileSnapshotStore) Load(ctx context.Context) ([]byte, error) {
	data, err := os.ReadFile(s.path)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, nil
	}
	if err != nil {
		s.log.Error("Failed to read snapshot", zap.Error(err), zap.String("path", s.path))
		return nil, fmt.Errorf("failed to read snapshot: %w", err)
	}

	return data, nil
}

func (s *fileSnapshotStore) Save(ctx context.Context, data []byte) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	// Write next to the target and rename so readers never see a partial file
	tmp, err := os.CreateTemp(filepath.Dir(s.path), filepath.Base(s.path)+".*.tmp")
	if err != nil {
		return fmt.Errorf("failed to create temp snapshot: %w", err)
	}
	tmpName := tmp.Name()

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return fmt.Errorf("failed to write snapshot: %w", err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("failed to close snapshot: %w", err)
	}

	if err := os.Rename(tmpName, s.path); err != nil {
		os.Remove(tmpName)
		s.log.Error("Failed to replace snapshot", zap.Error(err), zap.String("path", s.path))
		return fmt.Errorf("failed to replace snapshot: %w", err)
	}

	s.log.Debug("Snapshot saved", zap.String("path", s.path), zap.Int("bytes", len(data)))
	return nil
}
