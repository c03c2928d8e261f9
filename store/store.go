// Package store persists plant sessions as relational rows and rebuilds the
// nested client snapshot from them.
package store

import (
	"context"
	"errors"
	"fmt"

	"github.com/snowcodeer/perplexitree/config"
	"github.com/snowcodeer/perplexitree/logger"
	"gorm.io/gorm"
)

var (
	ErrNotFound         = errors.New("not found")
	ErrInvalidInput     = errors.New("invalid input")
	ErrStoreUnavailable = errors.New("store unavailable")
)

type Store struct {
	db      *gorm.DB
	initErr error
	log     *logger.Logger
}

func New(db *gorm.DB, baseLog *logger.Logger) *Store {
	return &Store{db: db, log: baseLog.With("component", "store")}
}

// Unavailable returns a Store whose every operation fails with
// ErrStoreUnavailable, for when the database could not be opened at startup.
func Unavailable(cause error, baseLog *logger.Logger) *Store {
	if cause == nil {
		cause = errors.New("database not initialized")
	}
	return &Store{initErr: cause, log: baseLog.With("component", "store")}
}

// Open connects to the configured database. A failed connection is logged and
// yields an unavailable Store rather than an error, so the HTTP surface can
// still start and report 503s.
func Open(driver, dsn string, baseLog *logger.Logger) *Store {
	db, err := config.Connect(driver, dsn)
	if err != nil {
		baseLog.Error("store: database unavailable", "driver", driver, "error", err)
		return Unavailable(err, baseLog)
	}
	baseLog.Info("store: connected", "driver", driver)
	return New(db, baseLog)
}

func (s *Store) Ready() bool {
	return s != nil && s.db != nil
}

func (s *Store) conn(ctx context.Context) (*gorm.DB, error) {
	if !s.Ready() {
		var cause error = errors.New("database not initialized")
		if s != nil && s.initErr != nil {
			cause = s.initErr
		}
		return nil, fmt.Errorf("%w: %v", ErrStoreUnavailable, cause)
	}
	return s.db.WithContext(ctx), nil
}

func notFound(err error, what string, id uint) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return fmt.Errorf("%s %d: %w", what, id, ErrNotFound)
	}
	return fmt.Errorf("fetch %s %d: %w", what, id, err)
}
