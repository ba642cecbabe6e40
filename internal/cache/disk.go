package cache

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/aiko-cli/aiko/filesystem"
	"github.com/spf13/afero"
)

// DiskTTL is how long a persisted response stays usable.
const DiskTTL = 24 * time.Hour

// Disk stores JSON-encoded responses as files named by key.
type Disk struct {
	fs  afero.Fs
	dir string
	ttl time.Duration
	now func() time.Time
}

// NewDisk returns a disk cache rooted at dir on the active filesystem backend.
func NewDisk(dir string, ttl time.Duration) *Disk {
	return &Disk{
		fs:  filesystem.API(),
		dir: dir,
		ttl: ttl,
		now: time.Now,
	}
}

// Key derives a stable file name from request parts.
func Key(parts ...string) string {
	sanitized := strings.ToLower(strings.Join(parts, "|"))
	hash := sha256.Sum256([]byte(sanitized))
	return hex.EncodeToString(hash[:])
}

// Read decodes the entry for key into target. It reports false when the
// entry is missing, expired or unreadable.
func (d *Disk) Read(key string, target any) bool {
	path := filepath.Join(d.dir, key)

	info, err := d.fs.Stat(path)
	if err != nil || d.now().Sub(info.ModTime()) > d.ttl {
		return false
	}

	data, err := afero.ReadFile(d.fs, path)
	if err != nil {
		return false
	}
	return json.Unmarshal(data, target) == nil
}

// Write stores data under key with an atomic swap.
func (d *Disk) Write(key string, data any) error {
	encoded, err := json.Marshal(data)
	if err != nil {
		return err
	}
	return filesystem.WriteAtomic(d.fs, filepath.Join(d.dir, key), encoded, 0o644)
}

// Prune removes expired entries.
func (d *Disk) Prune() error {
	return afero.Walk(d.fs, d.dir, func(path string, info os.FileInfo, err error) error {
		if err != nil || info.IsDir() {
			return nil
		}
		if d.now().Sub(info.ModTime()) > d.ttl {
			_ = d.fs.Remove(path)
		}
		return nil
	})
}
