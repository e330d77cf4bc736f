package timers

import (
	"database/sql"
	"fmt"
	"time"

	"moderation-bot/model"

	"github.com/jmoiron/sqlx"
)

// Store persists pending timed reversals. The unique index on
// (guild_id, subject_id, kind) enforces the "at most one active timer
// per key" invariant; Upsert supersedes in place.
type Store struct {
	db *sqlx.DB
}

// New creates the timer store and ensures its tables exist.
func New(db *sqlx.DB) (*Store, error) {
	if err := ensureSchema(db); err != nil {
		return nil, err
	}
	return &Store{db: db}, nil
}

// Upsert creates a timer for (guild, subject, kind) or replaces the
// existing one. A replaced timer is marked is_update and its attempt
// counter starts over.
func (s *Store) Upsert(t model.Timer) error {
	query := `INSERT INTO timers (guild_id, subject_id, kind, expires_at, reason, created_by, notify_subject, is_update, attempts)
	          VALUES (:guild_id, :subject_id, :kind, :expires_at, :reason, :created_by, :notify_subject, 0, 0)
	          ON CONFLICT(guild_id, subject_id, kind) DO UPDATE SET
	              expires_at = excluded.expires_at,
	              reason = excluded.reason,
	              created_by = excluded.created_by,
	              notify_subject = excluded.notify_subject,
	              is_update = 1,
	              attempts = 0`
	if _, err := s.db.NamedExec(query, t); err != nil {
		return fmt.Errorf("failed to upsert timer for %s/%s/%s: %w", t.GuildID, t.SubjectID, t.Kind, err)
	}
	return nil
}

// Get retrieves the active timer for a key, if any.
func (s *Store) Get(guildID, subjectID, kind string) (*model.Timer, error) {
	var t model.Timer
	err := s.db.Get(&t, "SELECT * FROM timers WHERE guild_id = ? AND subject_id = ? AND kind = ?",
		guildID, subjectID, kind)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get timer for %s/%s/%s: %w", guildID, subjectID, kind, err)
	}
	return &t, nil
}

// Delete removes the timer for a key. Deleting a missing timer is not an
// error; manual reversal and timer firing may race benignly.
func (s *Store) Delete(guildID, subjectID, kind string) error {
	_, err := s.db.Exec("DELETE FROM timers WHERE guild_id = ? AND subject_id = ? AND kind = ?",
		guildID, subjectID, kind)
	if err != nil {
		return fmt.Errorf("failed to delete timer for %s/%s/%s: %w", guildID, subjectID, kind, err)
	}
	return nil
}

// DeleteByID removes a timer by primary key.
func (s *Store) DeleteByID(id int64) error {
	if _, err := s.db.Exec("DELETE FROM timers WHERE timer_id = ?", id); err != nil {
		return fmt.Errorf("failed to delete timer %d: %w", id, err)
	}
	return nil
}

// Bump increments a timer's failed dispatch counter.
func (s *Store) Bump(id int64) error {
	if _, err := s.db.Exec("UPDATE timers SET attempts = attempts + 1 WHERE timer_id = ?", id); err != nil {
		return fmt.Errorf("failed to bump timer %d: %w", id, err)
	}
	return nil
}

// Due returns all timers expired at the given instant, oldest first.
// Indefinite timers (NULL expires_at) never come back from here.
func (s *Store) Due(now time.Time) ([]model.Timer, error) {
	var records []model.Timer
	err := s.db.Select(&records,
		"SELECT * FROM timers WHERE expires_at IS NOT NULL AND expires_at <= ? ORDER BY expires_at ASC",
		now.Unix())
	if err != nil {
		return nil, fmt.Errorf("failed to get due timers: %w", err)
	}
	return records, nil
}
