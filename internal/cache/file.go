package cache

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/rs/zerolog/log"
)

// FileStore keeps the baseline as a JSON file. Writes go to a temporary file
// in the same directory that is renamed over the target, so readers never see
// a partial document.
type FileStore struct {
	Path string
}

func NewFileStore(datasetResultsDir string) *FileStore {
	return &FileStore{Path: filepath.Join(datasetResultsDir, BaselineFile)}
}

func (s *FileStore) Load(_ context.Context) (Baseline, bool, error) {
	data, err := os.ReadFile(s.Path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			log.Debug().Str("path", s.Path).Msg("baseline cache not found")
			return nil, false, nil
		}
		return nil, false, fmt.Errorf("read baseline cache: %w", err)
	}

	baseline, err := decode(data)
	if err != nil {
		return nil, false, fmt.Errorf("%s: %w", s.Path, err)
	}

	log.Info().Str("path", s.Path).Int("images", len(baseline)).Msg("loaded baseline cache")
	return baseline, true, nil
}

func (s *FileStore) Save(_ context.Context, baseline Baseline) (err error) {
	data, err := encode(baseline)
	if err != nil {
		return err
	}

	dir := filepath.Dir(s.Path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("create cache dir: %w", err)
	}

	tmp, err := os.CreateTemp(dir, ".baseline-*.tmp")
	if err != nil {
		return fmt.Errorf("create temp cache: %w", err)
	}
	defer func() {
		if err != nil {
			tmp.Close()
			os.Remove(tmp.Name())
		}
	}()

	if _, err = tmp.Write(data); err != nil {
		return fmt.Errorf("write temp cache: %w", err)
	}
	if err = tmp.Sync(); err != nil {
		return fmt.Errorf("sync temp cache: %w", err)
	}
	if err = tmp.Close(); err != nil {
		return fmt.Errorf("close temp cache: %w", err)
	}
	if err = os.Rename(tmp.Name(), s.Path); err != nil {
		return fmt.Errorf("rename temp cache: %w", err)
	}

	log.Info().Str("path", s.Path).Int("images", len(baseline)).Msg("saved baseline cache")
	return nil
}
