package kb

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/gofrs/flock"
)

const (
	cacheFileName = ".kb-index.json"
	lockTimeout   = 2 * time.Second
)

// readCache loads the extraction cache for dir, if present.
func readCache(dir string) (*Index, error) {
	data, err := os.ReadFile(filepath.Join(dir, cacheFileName))
	if err != nil {
		return nil, err
	}
	var ix Index
	if err := json.Unmarshal(data, &ix); err != nil {
		return nil, fmt.Errorf("parse cache: %w", err)
	}
	return &ix, nil
}

// writeCache persists the extraction cache next to the documents. The
// write is flock-guarded so concurrent processes sharing a knowledge base
// don't interleave.
func writeCache(ix *Index) error {
	path := filepath.Join(ix.Dir, cacheFileName)

	fl := flock.New(path + ".lock")
	ctx, cancel := context.WithTimeout(context.Background(), lockTimeout)
	defer cancel()

	locked, err := fl.TryLockContext(ctx, 50*time.Millisecond)
	if err != nil || !locked {
		return fmt.Errorf("cache lock timeout")
	}
	defer fl.Unlock()

	data, err := json.MarshalIndent(ix, "", "  ")
	if err != nil {
		return err
	}

	tmp := path + ".tmp"
	if err := os.WriteFile(tmp, data, 0644); err != nil {
		return err
	}
	return os.Rename(tmp, path)
}
