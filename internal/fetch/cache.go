package fetch

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/docker/go-units"
	"github.com/opencontainers/go-digest"

	"github.com/schmitthub/fcgen/internal/logger"
)

const (
	// CachedSourceName is the file name for the cached download,
	// matching the build-output path the old script used.
	CachedSourceName = "metrics.rs"

	digestSuffix = ".digest"
)

// Cache stores the downloaded source with a content digest so later
// --skip-fetch runs can verify the bytes haven't rotted or been
// hand-edited.
type Cache struct {
	dir string
}

// NewCache creates a cache rooted at dir.
func NewCache(dir string) *Cache {
	return &Cache{dir: dir}
}

// SourcePath returns the path the cached source is stored at.
func (c *Cache) SourcePath() string {
	return filepath.Join(c.dir, CachedSourceName)
}

// Store writes data to the cache along with its sha256 digest.
// Returns the computed digest.
func (c *Cache) Store(data []byte) (digest.Digest, error) {
	if err := os.MkdirAll(c.dir, 0755); err != nil {
		return "", fmt.Errorf("failed to create cache directory: %w", err)
	}

	dgst := digest.FromBytes(data)

	if err := os.WriteFile(c.SourcePath(), data, 0644); err != nil {
		return "", fmt.Errorf("failed to write cached source: %w", err)
	}
	if err := os.WriteFile(c.SourcePath()+digestSuffix, []byte(dgst.String()+"\n"), 0644); err != nil {
		return "", fmt.Errorf("failed to write source digest: %w", err)
	}

	logger.Debug().
		Str("path", c.SourcePath()).
		Str("digest", dgst.String()).
		Str("size", units.HumanSize(float64(len(data)))).
		Msg("cached source")

	return dgst, nil
}

// Load reads the cached source back, re-verifying its digest.
func (c *Cache) Load() ([]byte, digest.Digest, error) {
	data, err := os.ReadFile(c.SourcePath())
	if err != nil {
		if os.IsNotExist(err) {
			return nil, "", &CacheMissError{Path: c.SourcePath(), Reason: "file does not exist"}
		}
		return nil, "", fmt.Errorf("failed to read cached source: %w", err)
	}

	recorded, err := os.ReadFile(c.SourcePath() + digestSuffix)
	if err != nil {
		return nil, "", &CacheMissError{Path: c.SourcePath(), Reason: "digest file missing"}
	}

	want, err := digest.Parse(trimNewline(string(recorded)))
	if err != nil {
		return nil, "", &CacheMissError{Path: c.SourcePath(), Reason: "recorded digest is malformed"}
	}

	if got := digest.FromBytes(data); got != want {
		return nil, "", &CacheMissError{
			Path:   c.SourcePath(),
			Reason: fmt.Sprintf("digest mismatch: recorded %s, computed %s", want, got),
		}
	}

	return data, want, nil
}

func trimNewline(s string) string {
	for len(s) > 0 && (s[len(s)-1] == '\n' || s[len(s)-1] == '\r') {
		s = s[:len(s)-1]
	}
	return s
}
