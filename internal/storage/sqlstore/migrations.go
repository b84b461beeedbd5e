package sqlstore

import "database/sql"

// schema sets up the database. It runs on startup to ensure tables exist and
// must stay valid for both SQLite and PostgreSQL.
// Amounts are decimal strings; timestamps are Unix seconds.
// IMPORTANT: referenced tables must be created before the tables referencing them.
const schema = `
CREATE TABLE IF NOT EXISTS accounts (
    id TEXT PRIMARY KEY,
    user_id TEXT NOT NULL,
    name TEXT NOT NULL,
    starting_balance TEXT NOT NULL,
    credit_limit TEXT,
    created_at BIGINT NOT NULL
);

CREATE TABLE IF NOT EXISTS friends (
    id TEXT PRIMARY KEY,
    user_id TEXT NOT NULL,
    name TEXT NOT NULL,
    created_at BIGINT NOT NULL
);

CREATE TABLE IF NOT EXISTS statements (
    id TEXT PRIMARY KEY,
    user_id TEXT NOT NULL,
    kind TEXT NOT NULL,
    direction TEXT NOT NULL,
    amount TEXT NOT NULL,
    category TEXT NOT NULL,
    note TEXT NOT NULL,
    account_id TEXT,
    friend_id TEXT,
    occurred_at BIGINT NOT NULL,
    created_at BIGINT NOT NULL,
    FOREIGN KEY (account_id) REFERENCES accounts(id) ON DELETE CASCADE,
    FOREIGN KEY (friend_id) REFERENCES friends(id)
);

CREATE TABLE IF NOT EXISTS statement_tags (
    statement_id TEXT NOT NULL,
    tag TEXT NOT NULL,
    PRIMARY KEY (statement_id, tag),
    FOREIGN KEY (statement_id) REFERENCES statements(id) ON DELETE CASCADE
);

CREATE TABLE IF NOT EXISTS splits (
    id TEXT PRIMARY KEY,
    statement_id TEXT NOT NULL,
    friend_id TEXT NOT NULL,
    amount TEXT NOT NULL,
    FOREIGN KEY (statement_id) REFERENCES statements(id) ON DELETE CASCADE,
    FOREIGN KEY (friend_id) REFERENCES friends(id)
);

CREATE TABLE IF NOT EXISTS self_transfers (
    id TEXT PRIMARY KEY,
    user_id TEXT NOT NULL,
    from_account_id TEXT NOT NULL,
    to_account_id TEXT NOT NULL,
    amount TEXT NOT NULL,
    note TEXT NOT NULL,
    occurred_at BIGINT NOT NULL,
    created_at BIGINT NOT NULL,
    FOREIGN KEY (from_account_id) REFERENCES accounts(id) ON DELETE CASCADE,
    FOREIGN KEY (to_account_id) REFERENCES accounts(id) ON DELETE CASCADE
);

CREATE TABLE IF NOT EXISTS loans (
    id TEXT PRIMARY KEY,
    user_id TEXT NOT NULL,
    name TEXT NOT NULL,
    credit_instrument_id TEXT NOT NULL,
    calculation_mode TEXT NOT NULL,
    principal TEXT,
    installment TEXT,
    total_payable TEXT,
    annual_rate TEXT NOT NULL,
    tenure_months INTEGER NOT NULL,
    gst_rate_on_interest TEXT NOT NULL,
    processing_fee TEXT NOT NULL,
    gst_rate_on_fee TEXT NOT NULL,
    first_due BIGINT,
    paid_installments INTEGER NOT NULL DEFAULT 0,
    created_at BIGINT NOT NULL,
    FOREIGN KEY (credit_instrument_id) REFERENCES accounts(id) ON DELETE CASCADE
);

CREATE TABLE IF NOT EXISTS loan_splits (
    id TEXT PRIMARY KEY,
    loan_id TEXT NOT NULL,
    friend_id TEXT NOT NULL,
    percentage TEXT NOT NULL,
    FOREIGN KEY (loan_id) REFERENCES loans(id) ON DELETE CASCADE,
    FOREIGN KEY (friend_id) REFERENCES friends(id)
);

CREATE TABLE IF NOT EXISTS recurring_payments (
    id TEXT PRIMARY KEY,
    user_id TEXT NOT NULL,
    name TEXT NOT NULL,
    category TEXT NOT NULL,
    amount TEXT NOT NULL,
    frequency TEXT NOT NULL,
    multiplier INTEGER NOT NULL,
    start_date BIGINT NOT NULL,
    end_date BIGINT,
    created_at BIGINT NOT NULL
);

CREATE TABLE IF NOT EXISTS linked_payments (
    id TEXT PRIMARY KEY,
    user_id TEXT NOT NULL,
    obligation_kind TEXT NOT NULL,
    obligation_id TEXT NOT NULL,
    statement_id TEXT NOT NULL,
    FOREIGN KEY (statement_id) REFERENCES statements(id) ON DELETE CASCADE
);

CREATE UNIQUE INDEX IF NOT EXISTS idx_linked_payments_statement_id ON linked_payments(statement_id);
CREATE INDEX IF NOT EXISTS idx_accounts_user_id ON accounts(user_id);
CREATE INDEX IF NOT EXISTS idx_friends_user_id ON friends(user_id);
CREATE INDEX IF NOT EXISTS idx_statements_user_occurred ON statements(user_id, occurred_at);
CREATE INDEX IF NOT EXISTS idx_splits_statement_id ON splits(statement_id);
CREATE INDEX IF NOT EXISTS idx_self_transfers_user_occurred ON self_transfers(user_id, occurred_at);
CREATE INDEX IF NOT EXISTS idx_loans_user_id ON loans(user_id);
CREATE INDEX IF NOT EXISTS idx_loan_splits_loan_id ON loan_splits(loan_id);
CREATE INDEX IF NOT EXISTS idx_recurring_payments_user_id ON recurring_payments(user_id);
CREATE INDEX IF NOT EXISTS idx_linked_payments_obligation ON linked_payments(user_id, obligation_kind, obligation_id);
`

// runMigrations executes the schema setup.
func runMigrations(db *sql.DB) error {
	_, err := db.Exec(schema)
	return err
}
