package migrations

import "github.com/jmoiron/sqlx"

func init() {
	m.addMigration(&migration{
		version: "20250901101500",
		up:      mig_20250901101500_tasks_up,
		down:    mig_20250901101500_tasks_down,
	})
}

func mig_20250901101500_tasks_up(tx *sqlx.Tx) error {
	// Board deletion cascades to tasks; user deletion only nulls references.
	_, err := tx.Exec(`
        CREATE TABLE IF NOT EXISTS tasks (
            id BIGSERIAL PRIMARY KEY,
            board_id BIGINT NOT NULL REFERENCES boards(id) ON DELETE CASCADE,
            title VARCHAR(255) NOT NULL,
            description TEXT NOT NULL DEFAULT '',
            status VARCHAR(20) NOT NULL CHECK (status IN ('to-do', 'in-progress', 'review', 'done')),
            priority VARCHAR(10) NOT NULL CHECK (priority IN ('low', 'medium', 'high')),
            assignee_id BIGINT REFERENCES users(id) ON DELETE SET NULL,
            reviewer_id BIGINT REFERENCES users(id) ON DELETE SET NULL,
            due_date DATE,
            created_by BIGINT REFERENCES users(id) ON DELETE SET NULL
        );
    `)
	if err != nil {
		return err
	}

	_, err = tx.Exec(`
        CREATE INDEX IF NOT EXISTS idx_tasks_board ON tasks(board_id);
    `)
	if err != nil {
		return err
	}

	_, err = tx.Exec(`
        CREATE INDEX IF NOT EXISTS idx_tasks_assignee ON tasks(assignee_id);
    `)
	if err != nil {
		return err
	}

	_, err = tx.Exec(`
        CREATE INDEX IF NOT EXISTS idx_tasks_reviewer ON tasks(reviewer_id);
    `)
	return err
}

func mig_20250901101500_tasks_down(tx *sqlx.Tx) error {
	_, err := tx.Exec(`DROP TABLE IF EXISTS tasks;`)
	return err
}
