package store

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
	"gorm.io/gorm/logger"
)

// KV is the shared access point to the persisted collections. Each
// entity type occupies one namespaced key holding a JSON-serialized
// collection; repositories receive a KV instead of importing a global.
type KV interface {
	Get(key string) (value string, ok bool, err error)
	Set(key, value string) error
	Delete(key string) error
	Revision() (uint64, error)
}

// Record is one namespaced key and its serialized collection.
type Record struct {
	Key       string `gorm:"primaryKey"`
	Value     string
	UpdatedAt time.Time
}

func (Record) TableName() string { return "kv_records" }

// revisionKey holds a counter bumped on every write. Other processes
// sharing the database file watch it to learn that something changed.
const revisionKey = "fitlearned_revision"

// Store persists records in a single sqlite file.
type Store struct {
	db   *gorm.DB
	path string
}

func Open(path string) (*Store, error) {
	if path == "" {
		return nil, fmt.Errorf("open store: empty path")
	}
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("open store: create parent dir: %w", err)
		}
	}

	db, err := gorm.Open(sqlite.Open(path), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		return nil, fmt.Errorf("open store: %w", err)
	}

	for _, pragma := range []string{"PRAGMA journal_mode=WAL", "PRAGMA busy_timeout=5000"} {
		if err := db.Exec(pragma).Error; err != nil {
			return nil, fmt.Errorf("configure sqlite %q: %w", pragma, err)
		}
	}

	if err := db.AutoMigrate(&Record{}); err != nil {
		return nil, fmt.Errorf("open store: migrate: %w", err)
	}

	return &Store{db: db, path: path}, nil
}

func (s *Store) Close() error {
	sqlDB, err := s.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}

func (s *Store) Path() string { return s.path }

func (s *Store) Get(key string) (string, bool, error) {
	var rec Record
	err := s.db.First(&rec, "key = ?", key).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return "", false, nil
	}
	if err != nil {
		return "", false, fmt.Errorf("get %s: %w", key, err)
	}
	return rec.Value, true, nil
}

func (s *Store) Set(key, value string) error {
	err := s.db.Transaction(func(tx *gorm.DB) error {
		rec := Record{Key: key, Value: value}
		if err := tx.Clauses(clause.OnConflict{UpdateAll: true}).Create(&rec).Error; err != nil {
			return err
		}
		return bumpRevision(tx)
	})
	if err != nil {
		return fmt.Errorf("set %s: %w", key, err)
	}
	return nil
}

func (s *Store) Delete(key string) error {
	err := s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Delete(&Record{}, "key = ?", key).Error; err != nil {
			return err
		}
		return bumpRevision(tx)
	})
	if err != nil {
		return fmt.Errorf("delete %s: %w", key, err)
	}
	return nil
}

// Revision returns the store's write counter. It increases on every
// committed Set or Delete, including those made by other processes.
func (s *Store) Revision() (uint64, error) {
	return readRevision(s.db)
}

func bumpRevision(tx *gorm.DB) error {
	rev, err := readRevision(tx)
	if err != nil {
		return err
	}
	rec := Record{Key: revisionKey, Value: strconv.FormatUint(rev+1, 10)}
	return tx.Clauses(clause.OnConflict{UpdateAll: true}).Create(&rec).Error
}

func readRevision(tx *gorm.DB) (uint64, error) {
	var rec Record
	err := tx.First(&rec, "key = ?", revisionKey).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return 0, nil
	}
	if err != nil {
		return 0, fmt.Errorf("read revision: %w", err)
	}
	rev, err := strconv.ParseUint(rec.Value, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("parse revision %q: %w", rec.Value, err)
	}
	return rev, nil
}
