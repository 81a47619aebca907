package store

import (
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/mmcdole/rankbar/internal/domain"
	bolt "go.etcd.io/bbolt"
)

// Bucket names
var (
	bucketPrefs = []byte("prefs")
)

// DBFileName is the database file created inside the store directory
const DBFileName = "rankbar.db"

// PrefsStore implements domain.Prefs using BoltDB.
type PrefsStore struct {
	db *bolt.DB
	mu sync.RWMutex // Protects memory cache and closed

	// In-memory cache for hot-path reads (promoted on access)
	cache  map[string]string
	closed bool
}

var _ domain.Prefs = (*PrefsStore)(nil)

// NewPrefsStore opens (or creates) the preference database in dir.
// An empty dir yields a memory-only store with no persistence.
func NewPrefsStore(dir string) (*PrefsStore, error) {
	if dir == "" {
		return NewMemoryStore(), nil
	}

	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create store directory: %w", err)
	}

	dbPath := filepath.Join(dir, DBFileName)
	db, err := bolt.Open(dbPath, 0600, &bolt.Options{Timeout: 1 * time.Second})
	if err != nil {
		return nil, fmt.Errorf("failed to open bolt db: %w", err)
	}

	err = db.Update(func(tx *bolt.Tx) error {
		_, err := tx.CreateBucketIfNotExists(bucketPrefs)
		return err
	})
	if err != nil {
		db.Close()
		return nil, err
	}

	return &PrefsStore{db: db, cache: make(map[string]string)}, nil
}

// NewMemoryStore returns a store that keeps everything in memory
func NewMemoryStore() *PrefsStore {
	return &PrefsStore{cache: make(map[string]string)}
}

func (s *PrefsStore) Close() error {
	s.mu.Lock()
	s.closed = true
	s.mu.Unlock()

	if s.db != nil {
		return s.db.Close()
	}
	return nil
}

// Get returns the value stored under key, or def when absent.
func (s *PrefsStore) Get(key, def string) string {
	s.mu.RLock()
	if v, ok := s.cache[key]; ok {
		s.mu.RUnlock()
		return v
	}
	closed := s.closed
	s.mu.RUnlock()

	if s.db == nil || closed {
		return def
	}

	var (
		value string
		found bool
	)
	s.db.View(func(tx *bolt.Tx) error {
		b := tx.Bucket(bucketPrefs)
		if b == nil {
			return nil
		}
		if v := b.Get([]byte(key)); v != nil {
			// string() copies, the slice is only valid inside the tx
			value = string(v)
			found = true
		}
		return nil
	})

	if !found {
		return def
	}

	// Promote to memory cache
	s.mu.Lock()
	s.cache[key] = value
	s.mu.Unlock()

	return value
}

// Put stores a single value.
func (s *PrefsStore) Put(key, value string) error {
	return s.PutAll(map[string]string{key: value})
}

// PutAll writes every pair in a single transaction.
func (s *PrefsStore) PutAll(values map[string]string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return domain.ErrStoreClosed
	}

	if s.db != nil {
		err := s.db.Update(func(tx *bolt.Tx) error {
			b := tx.Bucket(bucketPrefs)
			for k, v := range values {
				if err := b.Put([]byte(k), []byte(v)); err != nil {
					return err
				}
			}
			return nil
		})
		if err != nil {
			return fmt.Errorf("failed to write prefs: %w", err)
		}
	}

	// Only update memory once the disk write committed
	for k, v := range values {
		s.cache[k] = v
	}
	return nil
}

// Delete removes the given keys. Missing keys are not an error.
func (s *PrefsStore) Delete(keys ...string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return domain.ErrStoreClosed
	}

	for _, k := range keys {
		delete(s.cache, k)
	}

	if s.db == nil {
		return nil
	}

	return s.db.Update(func(tx *bolt.Tx) error {
		b := tx.Bucket(bucketPrefs)
		if b == nil {
			return nil
		}
		for _, k := range keys {
			if err := b.Delete([]byte(k)); err != nil {
				return err
			}
		}
		return nil
	})
}

// Keys returns every stored key, mostly useful for diagnostics
func (s *PrefsStore) Keys() []string {
	s.mu.RLock()
	defer s.mu.RUnlock()

	seen := make(map[string]struct{}, len(s.cache))
	keys := make([]string, 0, len(s.cache))
	for k := range s.cache {
		seen[k] = struct{}{}
		keys = append(keys, k)
	}

	if s.db == nil || s.closed {
		return keys
	}

	s.db.View(func(tx *bolt.Tx) error {
		b := tx.Bucket(bucketPrefs)
		if b == nil {
			return nil
		}
		return b.ForEach(func(k, _ []byte) error {
			if _, ok := seen[string(k)]; !ok {
				keys = append(keys, string(k))
			}
			return nil
		})
	})
	return keys
}
