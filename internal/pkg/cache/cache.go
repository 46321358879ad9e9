package cache

import (
	"encoding/json"
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"time"

	"go.uber.org/zap"
)

// Cache persists the login credentials between runs so the integration does
// not have to re-authenticate on every start.
type Cache struct {
	Email        string    `json:"email"`
	Token        string    `json:"token"`
	TokenExpires time.Time `json:"token_expires"`
	RefreshToken string    `json:"refresh_token"`

	path string
}

// Load reads the cache file at path. A missing file yields a fresh cache.
func Load(path string) (*Cache, error) {
	c := &Cache{path: path}
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			zap.L().Info("could not load cache, starting fresh", zap.String("path", path))
			return c, nil
		}
		return nil, err
	}
	if err := json.Unmarshal(data, c); err != nil {
		return nil, err
	}
	return c, nil
}

// Save writes the cache back to disk via a rename so a crash mid-write
// cannot leave a truncated file behind.
func (c *Cache) Save() error {
	if c.path == "" {
		return nil
	}
	data, err := json.MarshalIndent(c, "", "  ")
	if err != nil {
		return err
	}
	tmp := c.path + ".tmp"
	if err := os.MkdirAll(filepath.Dir(c.path), 0o755); err != nil {
		return err
	}
	if err := os.WriteFile(tmp, data, 0o600); err != nil {
		return err
	}
	return os.Rename(tmp, c.path)
}
