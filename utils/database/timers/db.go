package timers

import (
	"fmt"

	"github.com/jmoiron/sqlx"
)

const schema = `CREATE TABLE IF NOT EXISTS timers (
          timer_id INTEGER PRIMARY KEY AUTOINCREMENT,
          guild_id TEXT NOT NULL,
          subject_id TEXT NOT NULL,
          kind TEXT NOT NULL,
          expires_at INTEGER,
          reason TEXT NOT NULL DEFAULT '',
          created_by TEXT NOT NULL DEFAULT '',
          notify_subject INTEGER NOT NULL DEFAULT 1,
          is_update INTEGER NOT NULL DEFAULT 0,
          attempts INTEGER NOT NULL DEFAULT 0,
          UNIQUE(guild_id, subject_id, kind)
      );`

func ensureSchema(db *sqlx.DB) error {
	if _, err := db.Exec(schema); err != nil {
		return fmt.Errorf("failed to create timers table: %w", err)
	}
	return nil
}
