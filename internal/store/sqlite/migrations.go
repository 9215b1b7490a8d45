package sqlite

const schema = `
CREATE TABLE IF NOT EXISTS session_entries (
    key         TEXT PRIMARY KEY,
    value       TEXT NOT NULL,
    expires_at  INTEGER NOT NULL,
    updated_at  INTEGER NOT NULL
);

CREATE INDEX IF NOT EXISTS idx_session_entries_expires ON session_entries(expires_at);
`
