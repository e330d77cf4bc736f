package blacklist

import (
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"
)

// Store is the insert-only guild blacklist.
type Store struct {
	db *sqlx.DB
}

// New creates the blacklist store and ensures its tables exist.
func New(db *sqlx.DB) (*Store, error) {
	if err := ensureSchema(db); err != nil {
		return nil, err
	}
	return &Store{db: db}, nil
}

// InsertMany adds user ids to a guild's blacklist. Ids already present
// are skipped.
func (s *Store) InsertMany(guildID string, userIDs []string) error {
	tx, err := s.db.Beginx()
	if err != nil {
		return fmt.Errorf("failed to begin blacklist transaction: %w", err)
	}
	defer tx.Rollback()

	now := time.Now().Unix()
	for _, uid := range userIDs {
		_, err := tx.Exec("INSERT OR IGNORE INTO blacklist (guild_id, user_id, created_at) VALUES (?, ?, ?)",
			guildID, uid, now)
		if err != nil {
			return fmt.Errorf("failed to blacklist user %s in guild %s: %w", uid, guildID, err)
		}
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit blacklist insert for guild %s: %w", guildID, err)
	}
	return nil
}

// Contains reports whether a user is blacklisted in a guild.
func (s *Store) Contains(guildID, userID string) (bool, error) {
	var count int
	err := s.db.Get(&count, "SELECT COUNT(*) FROM blacklist WHERE guild_id = ? AND user_id = ?", guildID, userID)
	if err != nil {
		return false, fmt.Errorf("failed to check blacklist for user %s in guild %s: %w", userID, guildID, err)
	}
	return count > 0, nil
}
