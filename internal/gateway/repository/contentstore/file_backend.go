package contentstore

import (
	"encoding/json"
	"log"
	"os"
	"path/filepath"
	"sort"
	"time"
)

func (s *Store) ensureLoadedFile() {
	s.loadOnce.Do(func() {
		if s.path == "" {
			return
		}
		b, err := os.ReadFile(s.path)
		if err != nil {
			return
		}
		var recs []Record
		if err := json.Unmarshal(b, &recs); err != nil {
			log.Printf("contentstore: ignoring unreadable state file %s: %v", s.path, err)
			return
		}
		s.mu.Lock()
		for _, r := range recs {
			s.byID[r.PipelineID] = r
		}
		s.mu.Unlock()
	})
}

func (s *Store) saveFile() {
	if s.path == "" {
		return
	}
	s.mu.RLock()
	recs := make([]Record, 0, len(s.byID))
	for _, r := range s.byID {
		recs = append(recs, r)
	}
	s.mu.RUnlock()
	sort.Slice(recs, func(i, j int) bool { return recs[i].CreatedAt.Before(recs[j].CreatedAt) })

	b, err := json.MarshalIndent(recs, "", "  ")
	if err != nil {
		return
	}
	if err := os.MkdirAll(filepath.Dir(s.path), 0o755); err != nil {
		return
	}
	if err := os.WriteFile(s.path, b, 0o644); err != nil {
		log.Printf("contentstore: save %s failed: %v", s.path, err)
	}
}

func (s *Store) getFile(pipelineID string) (Record, bool) {
	s.ensureLoadedFile()
	s.mu.RLock()
	defer s.mu.RUnlock()
	rec, ok := s.byID[pipelineID]
	return rec, ok
}

func (s *Store) putFile(rec Record) {
	s.ensureLoadedFile()
	if rec.CreatedAt.IsZero() {
		rec.CreatedAt = time.Now().UTC()
	}
	s.mu.Lock()
	s.byID[rec.PipelineID] = rec
	s.mu.Unlock()
	s.saveFile()
}

func (s *Store) listFile(limit int) []Record {
	s.ensureLoadedFile()
	s.mu.RLock()
	recs := make([]Record, 0, len(s.byID))
	for _, r := range s.byID {
		recs = append(recs, r)
	}
	s.mu.RUnlock()
	sort.Slice(recs, func(i, j int) bool { return recs[i].CreatedAt.After(recs[j].CreatedAt) })
	if len(recs) > limit {
		recs = recs[:limit]
	}
	return recs
}
