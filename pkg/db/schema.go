package db

const schema = `
PRAGMA journal_mode = WAL;
PRAGMA synchronous = NORMAL;
PRAGMA foreign_keys = ON;

-- One row per aggregation run
CREATE TABLE IF NOT EXISTS runs (
    run_id INTEGER PRIMARY KEY AUTOINCREMENT,
    created_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP,
    folder TEXT NOT NULL,
    top_fraction REAL NOT NULL,
    total_unique_terms INTEGER NOT NULL,
    total_terms INTEGER NOT NULL,
    max_frequency INTEGER NOT NULL,
    top_percentage REAL NOT NULL,
    document_count INTEGER NOT NULL,
    failed_count INTEGER NOT NULL,
    duration_ms INTEGER
);

CREATE INDEX IF NOT EXISTS idx_runs_created ON runs(created_at);

-- Ranked top terms of a run, rank starting at 1
CREATE TABLE IF NOT EXISTS ranked_terms (
    run_id INTEGER NOT NULL,
    rank INTEGER NOT NULL,
    term TEXT NOT NULL,
    is_compound BOOLEAN NOT NULL DEFAULT 0,
    count INTEGER NOT NULL,
    weight REAL NOT NULL,
    PRIMARY KEY (run_id, rank),
    FOREIGN KEY (run_id) REFERENCES runs(run_id) ON DELETE CASCADE
);

CREATE INDEX IF NOT EXISTS idx_ranked_terms_term ON ranked_terms(term);

-- Source documents of a run, failed ones included
CREATE TABLE IF NOT EXISTS documents (
    document_id INTEGER PRIMARY KEY AUTOINCREMENT,
    run_id INTEGER NOT NULL,
    path TEXT NOT NULL,
    name TEXT NOT NULL,
    term_count INTEGER NOT NULL DEFAULT 0,
    language TEXT,
    language_confidence REAL,
    success BOOLEAN NOT NULL,
    error_type TEXT,
    error TEXT,
    FOREIGN KEY (run_id) REFERENCES runs(run_id) ON DELETE CASCADE
);

CREATE INDEX IF NOT EXISTS idx_documents_run ON documents(run_id);
`
