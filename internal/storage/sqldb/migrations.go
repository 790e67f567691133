package sqldb

import "database/sql"

// schema sets up the database. It runs on startup and is valid for both
// SQLite and PostgreSQL. Money is stored as decimal text and times as
// fixed-width UTC text (see timeLayout) so ordering by them is lexical.
const schema = `
CREATE TABLE IF NOT EXISTS participants (
    id TEXT PRIMARY KEY,
    owner_id TEXT NOT NULL,
    name TEXT NOT NULL,
    email TEXT NOT NULL DEFAULT '',
    phone TEXT NOT NULL DEFAULT '',
    created_at TEXT NOT NULL
);

CREATE TABLE IF NOT EXISTS debts (
    id TEXT PRIMARY KEY,
    owner_id TEXT NOT NULL,
    kind TEXT NOT NULL,
    title TEXT NOT NULL,
    description TEXT NOT NULL DEFAULT '',
    total_amount TEXT NOT NULL,
    paid_amount TEXT NOT NULL,
    status TEXT NOT NULL,
    counterparty_id TEXT NOT NULL DEFAULT '',
    split_mode TEXT NOT NULL DEFAULT '',
    created_date TEXT NOT NULL,
    due_date TEXT,
    notes TEXT NOT NULL DEFAULT '',
    updated_at TEXT NOT NULL
);

CREATE TABLE IF NOT EXISTS debt_splits (
    debt_id TEXT NOT NULL,
    participant_id TEXT NOT NULL,
    ordinal INTEGER NOT NULL,
    amount TEXT NOT NULL,
    is_paid INTEGER NOT NULL DEFAULT 0,
    paid_date TEXT,
    PRIMARY KEY (debt_id, participant_id),
    FOREIGN KEY (debt_id) REFERENCES debts(id) ON DELETE CASCADE
);

CREATE TABLE IF NOT EXISTS payments (
    id TEXT PRIMARY KEY,
    owner_id TEXT NOT NULL,
    debt_id TEXT NOT NULL,
    seq INTEGER NOT NULL,
    amount TEXT NOT NULL,
    paid_on TEXT NOT NULL,
    participant_id TEXT NOT NULL DEFAULT '',
    notes TEXT NOT NULL DEFAULT '',
    created_at TEXT NOT NULL,
    UNIQUE (debt_id, seq),
    FOREIGN KEY (debt_id) REFERENCES debts(id) ON DELETE CASCADE
);

CREATE INDEX IF NOT EXISTS idx_participants_owner_id ON participants(owner_id);
CREATE INDEX IF NOT EXISTS idx_debts_owner_id ON debts(owner_id);
CREATE INDEX IF NOT EXISTS idx_debt_splits_debt_id ON debt_splits(debt_id);
CREATE INDEX IF NOT EXISTS idx_payments_debt_id ON payments(debt_id);
CREATE INDEX IF NOT EXISTS idx_payments_owner_id ON payments(owner_id);
`

// runMigrations executes the schema setup.
func runMigrations(db *sql.DB) error {
	_, err := db.Exec(schema)
	return err
}
