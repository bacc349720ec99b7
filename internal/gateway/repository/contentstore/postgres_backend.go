package contentstore

import (
	"log"
)

func (s *Store) ensureSchema() error {
	if s == nil || s.db == nil {
		return nil
	}
	s.schemaOnce.Do(func() {
		_, s.schemaErr = s.db.Exec(`
CREATE TABLE IF NOT EXISTS generated_content (
  pipeline_id TEXT PRIMARY KEY,
  topic TEXT NOT NULL DEFAULT '',
  target_keyword TEXT NOT NULL DEFAULT '',
  title TEXT NOT NULL DEFAULT '',
  markdown TEXT NOT NULL DEFAULT '',
  html TEXT NOT NULL DEFAULT '',
  normalized_json TEXT NOT NULL DEFAULT '',
  word_count INTEGER NOT NULL DEFAULT 0,
  readability_score INTEGER NOT NULL DEFAULT 0,
  seo_score INTEGER NOT NULL DEFAULT 0,
  created_at TIMESTAMP WITH TIME ZONE DEFAULT NOW()
);
CREATE INDEX IF NOT EXISTS idx_generated_content_created_at ON generated_content (created_at DESC);
`)
	})
	return s.schemaErr
}

func (s *Store) getDB(pipelineID string) (Record, bool) {
	if err := s.ensureSchema(); err != nil {
		return Record{}, false
	}
	row := s.db.QueryRow(`SELECT pipeline_id, topic, target_keyword, title, markdown, html,
normalized_json, word_count, readability_score, seo_score, created_at
FROM generated_content WHERE pipeline_id = $1`, pipelineID)
	var rec Record
	err := row.Scan(&rec.PipelineID, &rec.Topic, &rec.TargetKeyword, &rec.Title,
		&rec.Markdown, &rec.HTML, &rec.NormalizedJSON,
		&rec.WordCount, &rec.ReadabilityScore, &rec.SEOScore, &rec.CreatedAt)
	if err != nil {
		return Record{}, false
	}
	return rec, true
}

func (s *Store) putDB(rec Record) {
	if err := s.ensureSchema(); err != nil {
		return
	}
	_, err := s.db.Exec(`INSERT INTO generated_content
(pipeline_id, topic, target_keyword, title, markdown, html, normalized_json,
 word_count, readability_score, seo_score)
VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10)
ON CONFLICT (pipeline_id) DO UPDATE SET
 topic = EXCLUDED.topic,
 target_keyword = EXCLUDED.target_keyword,
 title = EXCLUDED.title,
 markdown = EXCLUDED.markdown,
 html = EXCLUDED.html,
 normalized_json = EXCLUDED.normalized_json,
 word_count = EXCLUDED.word_count,
 readability_score = EXCLUDED.readability_score,
 seo_score = EXCLUDED.seo_score`,
		rec.PipelineID, rec.Topic, rec.TargetKeyword, rec.Title, rec.Markdown,
		rec.HTML, rec.NormalizedJSON, rec.WordCount, rec.ReadabilityScore, rec.SEOScore)
	if err != nil {
		log.Printf("contentstore: put %s failed: %v", rec.PipelineID, err)
	}
}

func (s *Store) listDB(limit int) []Record {
	if err := s.ensureSchema(); err != nil {
		return nil
	}
	rows, err := s.db.Query(`SELECT pipeline_id, topic, target_keyword, title, markdown, html,
normalized_json, word_count, readability_score, seo_score, created_at
FROM generated_content ORDER BY created_at DESC LIMIT $1`, limit)
	if err != nil {
		return nil
	}
	defer rows.Close()
	var out []Record
	for rows.Next() {
		var rec Record
		if err := rows.Scan(&rec.PipelineID, &rec.Topic, &rec.TargetKeyword, &rec.Title,
			&rec.Markdown, &rec.HTML, &rec.NormalizedJSON,
			&rec.WordCount, &rec.ReadabilityScore, &rec.SEOScore, &rec.CreatedAt); err != nil {
			continue
		}
		out = append(out, rec)
	}
	return out
}
