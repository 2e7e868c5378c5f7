package store

const schema = `
-- Layouts table: one row per named split-pane layout
CREATE TABLE IF NOT EXISTS layouts (
    id TEXT PRIMARY KEY,
    orientation TEXT NOT NULL DEFAULT 'vertical',
    first_size TEXT DEFAULT '',
    first_min_size TEXT DEFAULT '',
    second_size TEXT DEFAULT '',
    second_min_size TEXT DEFAULT '',
    created_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP,
    updated_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP
);

-- Meta table: single-row bookkeeping (change token for event push)
CREATE TABLE IF NOT EXISTS meta (
    key TEXT PRIMARY KEY,
    value TEXT NOT NULL
);
`
