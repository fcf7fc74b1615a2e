package store

const schemaSQL = `
CREATE TABLE IF NOT EXISTS records (
    position     INTEGER PRIMARY KEY,
    date         TEXT NOT NULL,
    category     TEXT NOT NULL,
    amount_cents INTEGER NOT NULL,
    note         TEXT NOT NULL DEFAULT ''
);

CREATE INDEX IF NOT EXISTS idx_records_date ON records(date);
`
