package storage

const schema = `
-- The 'kv' table holds whole JSON documents keyed by name.
CREATE TABLE IF NOT EXISTS kv (
    key TEXT PRIMARY KEY,
    value TEXT NOT NULL,
    updated_at DATETIME NOT NULL
);
`
