package store

const schema = `
CREATE TABLE IF NOT EXISTS formulae (
    name TEXT PRIMARY KEY,
    stable_version TEXT,
    dependencies TEXT,
    fetched_at INTEGER NOT NULL
);

CREATE INDEX IF NOT EXISTS idx_formulae_fetched_at ON formulae(fetched_at);
`
