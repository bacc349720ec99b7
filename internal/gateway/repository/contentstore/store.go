package contentstore

import (
	"database/sql"
	"strings"
	"sync"

	lru "github.com/hashicorp/golang-lru/v2"
	_ "github.com/jackc/pgx/v5/stdlib"
)

// Store persists generated content. With a Postgres DSN it is backed by the
// database with an LRU read cache; without one it falls back to a JSON file,
// which keeps local development dependency-free.
type Store struct {
	path string
	db   *sql.DB

	loadOnce sync.Once
	mu       sync.RWMutex
	byID     map[string]Record

	schemaOnce sync.Once
	schemaErr  error

	cache *lru.Cache[string, Record]
}

func New(path string) *Store {
	return &Store{
		path: path,
		byID: make(map[string]Record),
	}
}

func NewPostgres(dsn string) (*Store, error) {
	db, err := sql.Open("pgx", strings.TrimSpace(dsn))
	if err != nil {
		return nil, err
	}
	if err := db.Ping(); err != nil {
		_ = db.Close()
		return nil, err
	}
	cache, err := lru.New[string, Record](1024)
	if err != nil {
		_ = db.Close()
		return nil, err
	}
	return &Store{
		db:    db,
		cache: cache,
	}, nil
}

// NewFromEnv prefers Postgres when a DSN is given and falls back to the file
// backend when the DSN is empty or the database is unreachable.
func NewFromEnv(dsn, path string) *Store {
	dsn = strings.TrimSpace(dsn)
	if dsn == "" {
		return New(path)
	}
	s, err := NewPostgres(dsn)
	if err != nil {
		return New(path)
	}
	return s
}

func (s *Store) Close() error {
	if s == nil || s.db == nil {
		return nil
	}
	return s.db.Close()
}

func (s *Store) Get(pipelineID string) (Record, bool) {
	if s == nil {
		return Record{}, false
	}
	pipelineID = strings.TrimSpace(pipelineID)
	if pipelineID == "" {
		return Record{}, false
	}
	if s.db != nil {
		if s.cache != nil {
			if rec, ok := s.cache.Get(pipelineID); ok {
				return rec, true
			}
		}
		rec, ok := s.getDB(pipelineID)
		if ok && s.cache != nil {
			s.cache.Add(pipelineID, rec)
		}
		return rec, ok
	}
	return s.getFile(pipelineID)
}

func (s *Store) Put(rec Record) {
	if s == nil || strings.TrimSpace(rec.PipelineID) == "" {
		return
	}
	if s.db != nil {
		s.putDB(rec)
		if s.cache != nil {
			s.cache.Add(rec.PipelineID, rec)
		}
		return
	}
	s.putFile(rec)
}

// List returns the most recent records, newest first.
func (s *Store) List(limit int) []Record {
	if s == nil {
		return nil
	}
	if limit <= 0 {
		limit = 50
	}
	if s.db != nil {
		return s.listDB(limit)
	}
	return s.listFile(limit)
}
