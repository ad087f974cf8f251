package store

import (
	"context"
	"sync"
	"time"

	"github.com/oliverisaac/notes/types"
	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

const createNotesTable = `CREATE TABLE IF NOT EXISTS notes (
	id INTEGER PRIMARY KEY AUTOINCREMENT,
	content TEXT NOT NULL,
	created_at DATETIME DEFAULT CURRENT_TIMESTAMP
)`

// Store persists notes in a single SQLite file. The database is opened on the
// first call to EnsureSchema; a failed open is retried on the next call.
type Store struct {
	path string
	now  func() time.Time

	mu sync.Mutex
	db *gorm.DB
}

type Option func(*Store)

// WithClock replaces the clock used to stamp new notes.
func WithClock(now func() time.Time) Option {
	return func(s *Store) {
		s.now = now
	}
}

func New(path string, opts ...Option) *Store {
	s := &Store{
		path: path,
		now: func() time.Time {
			return time.Now().UTC()
		},
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

func (s *Store) conn() (*gorm.DB, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.db != nil {
		return s.db, nil
	}

	db, err := gorm.Open(sqlite.Open(s.path), &gorm.Config{
		NowFunc: s.now,
		Logger:  logger.Discard,
	})
	if err != nil {
		if db != nil {
			if sqlDB, dbErr := db.DB(); dbErr == nil {
				sqlDB.Close()
			}
		}
		return nil, errors.Wrapf(err, "opening database %q", s.path)
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, errors.Wrap(err, "getting database handle")
	}
	sqlDB.SetMaxOpenConns(1)

	logrus.Debugf("Opened database %s", s.path)
	s.db = db
	return s.db, nil
}

// EnsureSchema opens the database if needed and creates the notes table when
// it does not exist yet. An existing table is left untouched.
func (s *Store) EnsureSchema(ctx context.Context) error {
	db, err := s.conn()
	if err != nil {
		return &Error{Kind: StorageUnavailable, Err: err}
	}

	if err := db.WithContext(ctx).Exec(createNotesTable).Error; err != nil {
		return &Error{Kind: StorageUnavailable, Err: errors.Wrap(err, "creating notes table")}
	}
	return nil
}

// InsertNote stores content as-is and returns the new note's id. Callers are
// expected to trim and validate content first.
func (s *Store) InsertNote(ctx context.Context, content string) (uint, error) {
	db, err := s.conn()
	if err != nil {
		return 0, &Error{Kind: WriteFailed, Err: err}
	}

	note := types.Note{Content: content, CreatedAt: s.now()}
	if err := db.WithContext(ctx).Create(&note).Error; err != nil {
		return 0, &Error{Kind: WriteFailed, Err: errors.Wrap(err, "saving note to db")}
	}
	return note.ID, nil
}

// ListNotes returns every note, newest first. Notes sharing a timestamp are
// ordered by id, highest first.
func (s *Store) ListNotes(ctx context.Context) ([]types.Note, error) {
	db, err := s.conn()
	if err != nil {
		return nil, &Error{Kind: ReadFailed, Err: err}
	}

	ret := []types.Note{}
	result := db.WithContext(ctx).Order("created_at DESC").Order("id DESC").Find(&ret)
	if result.Error != nil {
		return nil, &Error{Kind: ReadFailed, Err: errors.Wrap(result.Error, "looking for notes")}
	}
	return ret, nil
}

func (s *Store) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.db == nil {
		return nil
	}
	sqlDB, err := s.db.DB()
	if err != nil {
		return errors.Wrap(err, "getting database handle")
	}
	s.db = nil
	return sqlDB.Close()
}
