package cases

import (
	"fmt"

	"github.com/jmoiron/sqlx"
)

const schema = `CREATE TABLE IF NOT EXISTS cases (
          id INTEGER PRIMARY KEY AUTOINCREMENT,
          guild_id TEXT NOT NULL,
          case_id_on_guild INTEGER NOT NULL,
          action_type TEXT NOT NULL,
          offender_id TEXT NOT NULL DEFAULT '',
          offender_name TEXT NOT NULL DEFAULT '',
          responsible_id TEXT NOT NULL,
          reason TEXT NOT NULL DEFAULT '',
          no_dm INTEGER NOT NULL DEFAULT 0,
          created_at INTEGER NOT NULL,
          logged_at INTEGER,
          logged_channel_id TEXT NOT NULL DEFAULT '',
          UNIQUE(guild_id, case_id_on_guild)
      );
      CREATE INDEX IF NOT EXISTS idx_cases_guild_offender ON cases(guild_id, offender_id);`

func ensureSchema(db *sqlx.DB) error {
	if _, err := db.Exec(schema); err != nil {
		return fmt.Errorf("failed to create cases table: %w", err)
	}
	return nil
}
