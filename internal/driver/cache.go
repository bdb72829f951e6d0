package driver

import (
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/vmihailenco/msgpack/v5"
)

// Current schema version - increment when ScanEntry format changes
const scanCacheSchemaVersion uint16 = 1

// ScanCache remembers scan outcomes per (content, options) on disk, so batch
// runs can skip files already known to need no insertions.
// Thread-safe for concurrent access.
type ScanCache struct {
	mu  sync.RWMutex
	dir string
}

// ScanEntry is the cached outcome of scanning one file.
type ScanEntry struct {
	// Schema version for safe invalidation when format changes
	Schema uint16

	Path        string
	Fingerprint string
	Decls       int // declarations found
	Pending     int // insertions the plan would make
	Skipped     int // inline bodies that cannot receive a block
	Broken      bool
}

// Clean reports whether the file needs no rewrite.
func (e *ScanEntry) Clean() bool {
	return e != nil && !e.Broken && e.Pending == 0
}

// CacheKey combines the content hash with the option fingerprint.
func CacheKey(content [32]byte, fingerprint string) [32]byte {
	h := sha256.New()
	h.Write(content[:])
	h.Write([]byte{0})
	h.Write([]byte(fingerprint))
	var key [32]byte
	copy(key[:], h.Sum(nil))
	return key
}

// OpenScanCache opens the cache under $XDG_CACHE_HOME/<app> (or ~/.cache/<app>).
func OpenScanCache(app string) (*ScanCache, error) {
	base := os.Getenv("XDG_CACHE_HOME")
	if base == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, err
		}
		base = filepath.Join(home, ".cache")
	}
	return OpenScanCacheAt(filepath.Join(base, app))
}

// OpenScanCacheAt opens the cache in dir, creating it when missing.
func OpenScanCacheAt(dir string) (*ScanCache, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, err
	}
	return &ScanCache{dir: dir}, nil
}

// Dir returns the cache directory.
func (c *ScanCache) Dir() string {
	if c == nil {
		return ""
	}
	return c.dir
}

func (c *ScanCache) pathFor(key [32]byte) string {
	hexKey := hex.EncodeToString(key[:])
	// подкаталог "scan" - чтобы было видно, что чистить
	return filepath.Join(c.dir, "scan", hexKey+".mp")
}

// Put serializes and writes an entry to the disk cache.
func (c *ScanCache) Put(key [32]byte, entry *ScanEntry) error {
	if c == nil || entry == nil {
		return nil
	}
	c.mu.Lock()
	defer c.mu.Unlock()

	entry.Schema = scanCacheSchemaVersion
	p := c.pathFor(key)
	if err := os.MkdirAll(filepath.Dir(p), 0o755); err != nil {
		return err
	}
	f, err := os.CreateTemp(filepath.Dir(p), "tmp-*")
	if err != nil {
		return err
	}
	tmp := f.Name()

	if err := msgpack.NewEncoder(f).Encode(entry); err != nil {
		_ = f.Close()
		_ = os.Remove(tmp)
		return err
	}
	if err := f.Close(); err != nil {
		_ = os.Remove(tmp)
		return err
	}
	// Атомарная замена
	if err := os.Rename(tmp, p); err != nil {
		_ = os.Remove(tmp)
		return err
	}
	return nil
}

// Get reads an entry. A missing entry or one from another schema is a miss.
func (c *ScanCache) Get(key [32]byte) (*ScanEntry, bool, error) {
	if c == nil {
		return nil, false, nil
	}
	c.mu.RLock()
	defer c.mu.RUnlock()

	f, err := os.Open(c.pathFor(key))
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, false, nil
		}
		return nil, false, err
	}
	defer f.Close()

	var entry ScanEntry
	if err := msgpack.NewDecoder(f).Decode(&entry); err != nil {
		return nil, false, err
	}
	if entry.Schema != scanCacheSchemaVersion {
		return nil, false, nil
	}
	return &entry, true, nil
}

// DropAll invalidates the cache, useful after format changes.
func (c *ScanCache) DropAll() error {
	if c == nil {
		return nil
	}
	c.mu.Lock()
	defer c.mu.Unlock()

	// переименуем каталог целиком, потом удалим
	old := c.dir + ".old-" + time.Now().Format("20060102150405")
	if err := os.Rename(c.dir, old); err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil
		}
		return err
	}
	if err := os.RemoveAll(old); err != nil {
		return err
	}
	return os.MkdirAll(c.dir, 0o755)
}
