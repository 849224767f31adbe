package store

const schemaSQL = `
CREATE TABLE IF NOT EXISTS solver_results (
    cache_key            TEXT PRIMARY KEY,
    monthly_saving       INTEGER NOT NULL,
    reached              INTEGER NOT NULL DEFAULT 0,
    payload              TEXT NOT NULL,
    created_at           TEXT NOT NULL
);

CREATE INDEX IF NOT EXISTS idx_solver_results_created ON solver_results(created_at);
`
