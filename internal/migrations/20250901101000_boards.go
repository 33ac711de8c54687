package migrations

import "github.com/jmoiron/sqlx"

func init() {
	m.addMigration(&migration{
		version: "20250901101000",
		up:      mig_20250901101000_boards_up,
		down:    mig_20250901101000_boards_down,
	})
}

func mig_20250901101000_boards_up(tx *sqlx.Tx) error {
	// Deleting the owner deletes the board.
	_, err := tx.Exec(`
        CREATE TABLE IF NOT EXISTS boards (
            id BIGSERIAL PRIMARY KEY,
            title VARCHAR(255) NOT NULL,
            owner_id BIGINT NOT NULL REFERENCES users(id) ON DELETE CASCADE
        );
    `)
	if err != nil {
		return err
	}

	_, err = tx.Exec(`
        CREATE TABLE IF NOT EXISTS board_members (
            board_id BIGINT NOT NULL REFERENCES boards(id) ON DELETE CASCADE,
            user_id BIGINT NOT NULL REFERENCES users(id) ON DELETE CASCADE,
            PRIMARY KEY (board_id, user_id)
        );
    `)
	if err != nil {
		return err
	}

	_, err = tx.Exec(`
        CREATE INDEX IF NOT EXISTS idx_board_members_user ON board_members(user_id);
    `)
	return err
}

func mig_20250901101000_boards_down(tx *sqlx.Tx) error {
	_, err := tx.Exec(`DROP TABLE IF EXISTS board_members;`)
	if err != nil {
		return err
	}

	_, err = tx.Exec(`DROP TABLE IF EXISTS boards;`)
	return err
}
