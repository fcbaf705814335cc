package db

import (
	"database/sql"
	"fmt"
	"time"
)

// Run is one stored aggregation run.
type Run struct {
	RunID            int64
	CreatedAt        time.Time
	Folder           string
	TopFraction      float64
	TotalUniqueTerms int
	TotalTerms       int
	MaxFrequency     int
	TopPercentage    float64
	DocumentCount    int
	FailedCount      int
	Duration         time.Duration
}

// RankedTerm is one row of a run's top terms.
type RankedTerm struct {
	Rank       int
	Term       string
	IsCompound bool
	Count      int
	Weight     float64
}

// Document is one source document of a run.
type Document struct {
	Path               string
	Name               string
	TermCount          int
	Language           string
	LanguageConfidence float64
	Success            bool
	ErrorType          string
	Error              string
}

// InsertRun stores a run with its ranked terms and documents in one
// transaction, returning the new run_id.
func (db *DB) InsertRun(run Run, terms []RankedTerm, docs []Document) (int64, error) {
	tx, err := db.Begin()
	if err != nil {
		return 0, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback() }() // No-op after commit

	res, err := tx.Exec(`
		INSERT INTO runs (folder, top_fraction, total_unique_terms, total_terms, max_frequency,
		                  top_percentage, document_count, failed_count, duration_ms)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)
	`, run.Folder, run.TopFraction, run.TotalUniqueTerms, run.TotalTerms, run.MaxFrequency,
		run.TopPercentage, run.DocumentCount, run.FailedCount, run.Duration.Milliseconds())
	if err != nil {
		return 0, fmt.Errorf("failed to insert run: %w", err)
	}

	runID, err := res.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("failed to get run ID: %w", err)
	}

	termStmt, err := tx.Prepare(`
		INSERT INTO ranked_terms (run_id, rank, term, is_compound, count, weight)
		VALUES (?, ?, ?, ?, ?, ?)
	`)
	if err != nil {
		return 0, fmt.Errorf("failed to prepare ranked term insert: %w", err)
	}
	defer termStmt.Close()

	for _, t := range terms {
		if _, err := termStmt.Exec(runID, t.Rank, t.Term, t.IsCompound, t.Count, t.Weight); err != nil {
			return 0, fmt.Errorf("failed to insert ranked term %q: %w", t.Term, err)
		}
	}

	for _, d := range docs {
		_, err := tx.Exec(`
			INSERT INTO documents (run_id, path, name, term_count, language, language_confidence,
			                       success, error_type, error)
			VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)
		`, runID, d.Path, d.Name, d.TermCount, d.Language, d.LanguageConfidence,
			d.Success, nullString(d.ErrorType), nullString(d.Error))
		if err != nil {
			return 0, fmt.Errorf("failed to insert document %s: %w", d.Path, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return 0, fmt.Errorf("failed to commit run: %w", err)
	}
	return runID, nil
}

// ListRuns returns the most recent runs, newest first.
// A limit of 0 returns every run.
func (db *DB) ListRuns(limit int) ([]Run, error) {
	query := `
		SELECT run_id, created_at, folder, top_fraction, total_unique_terms, total_terms,
		       max_frequency, top_percentage, document_count, failed_count, COALESCE(duration_ms, 0)
		FROM runs
		ORDER BY run_id DESC
	`
	var args []any
	if limit > 0 {
		query += " LIMIT ?"
		args = append(args, limit)
	}

	rows, err := db.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query runs: %w", err)
	}
	defer rows.Close()

	var runs []Run
	for rows.Next() {
		run, err := scanRun(rows)
		if err != nil {
			return nil, err
		}
		runs = append(runs, run)
	}
	return runs, rows.Err()
}

// GetRun returns a single run by ID.
func (db *DB) GetRun(runID int64) (Run, error) {
	row := db.QueryRow(`
		SELECT run_id, created_at, folder, top_fraction, total_unique_terms, total_terms,
		       max_frequency, top_percentage, document_count, failed_count, COALESCE(duration_ms, 0)
		FROM runs
		WHERE run_id = ?
	`, runID)

	run, err := scanRun(row)
	if err == sql.ErrNoRows {
		return Run{}, fmt.Errorf("run %d not found", runID)
	}
	return run, err
}

type scanner interface {
	Scan(dest ...any) error
}

func scanRun(s scanner) (Run, error) {
	var run Run
	var durationMS int64
	err := s.Scan(&run.RunID, &run.CreatedAt, &run.Folder, &run.TopFraction, &run.TotalUniqueTerms,
		&run.TotalTerms, &run.MaxFrequency, &run.TopPercentage, &run.DocumentCount, &run.FailedCount, &durationMS)
	if err == sql.ErrNoRows {
		return Run{}, err
	}
	if err != nil {
		return Run{}, fmt.Errorf("failed to scan run: %w", err)
	}
	run.Duration = time.Duration(durationMS) * time.Millisecond
	return run, nil
}

// GetRankedTerms returns a run's top terms in rank order.
func (db *DB) GetRankedTerms(runID int64) ([]RankedTerm, error) {
	rows, err := db.Query(`
		SELECT rank, term, is_compound, count, weight
		FROM ranked_terms
		WHERE run_id = ?
		ORDER BY rank
	`, runID)
	if err != nil {
		return nil, fmt.Errorf("failed to query ranked terms: %w", err)
	}
	defer rows.Close()

	var terms []RankedTerm
	for rows.Next() {
		var t RankedTerm
		if err := rows.Scan(&t.Rank, &t.Term, &t.IsCompound, &t.Count, &t.Weight); err != nil {
			return nil, fmt.Errorf("failed to scan ranked term: %w", err)
		}
		terms = append(terms, t)
	}
	return terms, rows.Err()
}

// GetRunDocuments returns a run's documents in insertion order.
func (db *DB) GetRunDocuments(runID int64) ([]Document, error) {
	rows, err := db.Query(`
		SELECT path, name, term_count, COALESCE(language, ''), COALESCE(language_confidence, 0),
		       success, COALESCE(error_type, ''), COALESCE(error, '')
		FROM documents
		WHERE run_id = ?
		ORDER BY document_id
	`, runID)
	if err != nil {
		return nil, fmt.Errorf("failed to query documents: %w", err)
	}
	defer rows.Close()

	var docs []Document
	for rows.Next() {
		var d Document
		if err := rows.Scan(&d.Path, &d.Name, &d.TermCount, &d.Language, &d.LanguageConfidence,
			&d.Success, &d.ErrorType, &d.Error); err != nil {
			return nil, fmt.Errorf("failed to scan document: %w", err)
		}
		docs = append(docs, d)
	}
	return docs, rows.Err()
}

func nullString(s string) sql.NullString {
	return sql.NullString{String: s, Valid: s != ""}
}
