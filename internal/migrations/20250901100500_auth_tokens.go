package migrations

import "github.com/jmoiron/sqlx"

func init() {
	m.addMigration(&migration{
		version: "20250901100500",
		up:      mig_20250901100500_auth_tokens_up,
		down:    mig_20250901100500_auth_tokens_down,
	})
}

func mig_20250901100500_auth_tokens_up(tx *sqlx.Tx) error {
	// One opaque token per user, reused across logins.
	_, err := tx.Exec(`
        CREATE TABLE IF NOT EXISTS auth_tokens (
            token VARCHAR(40) PRIMARY KEY,
            user_id BIGINT NOT NULL UNIQUE REFERENCES users(id) ON DELETE CASCADE,
            created_at TIMESTAMP WITH TIME ZONE NOT NULL DEFAULT NOW()
        );
    `)
	return err
}

func mig_20250901100500_auth_tokens_down(tx *sqlx.Tx) error {
	_, err := tx.Exec(`DROP TABLE IF EXISTS auth_tokens;`)
	return err
}
