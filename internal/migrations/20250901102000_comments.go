package migrations

import "github.com/jmoiron/sqlx"

func init() {
	m.addMigration(&migration{
		version: "20250901102000",
		up:      mig_20250901102000_comments_up,
		down:    mig_20250901102000_comments_down,
	})
}

func mig_20250901102000_comments_up(tx *sqlx.Tx) error {
	_, err := tx.Exec(`
        CREATE TABLE IF NOT EXISTS comments (
            id BIGSERIAL PRIMARY KEY,
            task_id BIGINT NOT NULL REFERENCES tasks(id) ON DELETE CASCADE,
            author_id BIGINT REFERENCES users(id) ON DELETE SET NULL,
            content TEXT NOT NULL,
            created_at TIMESTAMP WITH TIME ZONE NOT NULL DEFAULT NOW()
        );
    `)
	if err != nil {
		return err
	}

	// Comments are always listed chronologically per task.
	_, err = tx.Exec(`
        CREATE INDEX IF NOT EXISTS idx_comments_task_created ON comments(task_id, created_at, id);
    `)
	return err
}

func mig_20250901102000_comments_down(tx *sqlx.Tx) error {
	_, err := tx.Exec(`DROP TABLE IF EXISTS comments;`)
	return err
}
