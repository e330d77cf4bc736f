package cases

import (
	"database/sql"
	"fmt"
	"strings"
	"sync"
	"time"

	"moderation-bot/model"

	"github.com/jmoiron/sqlx"
)

// Store is the case ledger. Case numbers are assigned per guild as
// count+1 inside a transaction; all writes for the same guild are
// funneled through a per-guild mutex so concurrent callers can never
// observe the same count.
type Store struct {
	db *sqlx.DB

	mu     sync.Mutex
	guilds map[string]*sync.Mutex
}

// New creates the ledger store and ensures its tables exist.
func New(db *sqlx.DB) (*Store, error) {
	if err := ensureSchema(db); err != nil {
		return nil, err
	}
	return &Store{db: db, guilds: make(map[string]*sync.Mutex)}, nil
}

func (s *Store) guildLock(guildID string) *sync.Mutex {
	s.mu.Lock()
	defer s.mu.Unlock()
	l, ok := s.guilds[guildID]
	if !ok {
		l = &sync.Mutex{}
		s.guilds[guildID] = l
	}
	return l
}

// Record inserts a new case and returns its guild-scoped case number.
func (s *Store) Record(c model.Case) (int64, error) {
	l := s.guildLock(c.GuildID)
	l.Lock()
	defer l.Unlock()

	tx, err := s.db.Beginx()
	if err != nil {
		return 0, fmt.Errorf("failed to begin ledger transaction: %w", err)
	}
	defer tx.Rollback()

	var count int64
	if err := tx.Get(&count, "SELECT COUNT(*) FROM cases WHERE guild_id = ?", c.GuildID); err != nil {
		return 0, fmt.Errorf("failed to count cases for guild %s: %w", c.GuildID, err)
	}
	c.CaseIDOnGuild = count + 1
	if c.CreatedAt == 0 {
		c.CreatedAt = time.Now().Unix()
	}

	query := `INSERT INTO cases (guild_id, case_id_on_guild, action_type, offender_id, offender_name, responsible_id, reason, no_dm, created_at, logged_at, logged_channel_id)
	          VALUES (:guild_id, :case_id_on_guild, :action_type, :offender_id, :offender_name, :responsible_id, :reason, :no_dm, :created_at, :logged_at, :logged_channel_id)`
	if _, err := tx.NamedExec(query, c); err != nil {
		return 0, fmt.Errorf("failed to insert case for guild %s: %w", c.GuildID, err)
	}
	if err := tx.Commit(); err != nil {
		return 0, fmt.Errorf("failed to commit case for guild %s: %w", c.GuildID, err)
	}
	return c.CaseIDOnGuild, nil
}

// AttachReason amends the reason of an existing case. Numbering and
// timestamps stay untouched.
func (s *Store) AttachReason(guildID string, caseID int64, reason string) error {
	result, err := s.db.Exec("UPDATE cases SET reason = ? WHERE guild_id = ? AND case_id_on_guild = ?",
		reason, guildID, caseID)
	if err != nil {
		return fmt.Errorf("failed to update reason for case %d in guild %s: %w", caseID, guildID, err)
	}
	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to check rows affected for case %d: %w", caseID, err)
	}
	if rowsAffected == 0 {
		return fmt.Errorf("no case %d in guild %s: %w", caseID, guildID, sql.ErrNoRows)
	}
	return nil
}

// MarkLogged records where and when the case's audit message was posted.
func (s *Store) MarkLogged(guildID string, caseID int64, channelID string) error {
	_, err := s.db.Exec("UPDATE cases SET logged_at = ?, logged_channel_id = ? WHERE guild_id = ? AND case_id_on_guild = ?",
		time.Now().Unix(), channelID, guildID, caseID)
	if err != nil {
		return fmt.Errorf("failed to mark case %d logged in guild %s: %w", caseID, guildID, err)
	}
	return nil
}

// Get retrieves a single case by its guild-scoped number.
func (s *Store) Get(guildID string, caseID int64) (*model.Case, error) {
	var c model.Case
	err := s.db.Get(&c, "SELECT * FROM cases WHERE guild_id = ? AND case_id_on_guild = ?", guildID, caseID)
	if err != nil {
		return nil, fmt.Errorf("failed to get case %d in guild %s: %w", caseID, guildID, err)
	}
	return &c, nil
}

// Filter narrows a Query call. Zero values mean "no restriction".
type Filter struct {
	OffenderID string
	ActionType string
	After      time.Time
	Before     time.Time
}

// Query returns cases for a guild, most recent first unless oldestFirst
// is set.
func (s *Store) Query(guildID string, f Filter, limit, offset int, oldestFirst bool) ([]model.Case, error) {
	where := []string{"guild_id = ?"}
	args := []interface{}{guildID}
	if f.OffenderID != "" {
		where = append(where, "offender_id = ?")
		args = append(args, f.OffenderID)
	}
	if f.ActionType != "" {
		where = append(where, "action_type = ?")
		args = append(args, f.ActionType)
	}
	if !f.After.IsZero() {
		where = append(where, "created_at >= ?")
		args = append(args, f.After.Unix())
	}
	if !f.Before.IsZero() {
		where = append(where, "created_at <= ?")
		args = append(args, f.Before.Unix())
	}

	order := "DESC"
	if oldestFirst {
		order = "ASC"
	}
	query := fmt.Sprintf("SELECT * FROM cases WHERE %s ORDER BY case_id_on_guild %s LIMIT ? OFFSET ?",
		strings.Join(where, " AND "), order)
	args = append(args, limit, offset)

	var records []model.Case
	if err := s.db.Select(&records, query, args...); err != nil {
		return nil, fmt.Errorf("failed to query cases for guild %s: %w", guildID, err)
	}
	return records, nil
}

// CountWarnings returns the number of warn cases recorded against an
// offender in a guild.
func (s *Store) CountWarnings(guildID, offenderID string) (int, error) {
	var count int
	err := s.db.Get(&count, "SELECT COUNT(*) FROM cases WHERE guild_id = ? AND offender_id = ? AND action_type = 'warn'",
		guildID, offenderID)
	if err != nil {
		return 0, fmt.Errorf("failed to count warnings for user %s in guild %s: %w", offenderID, guildID, err)
	}
	return count, nil
}

// CountAll returns the total number of cases across all guilds, used by
// the status handler.
func (s *Store) CountAll() (int, error) {
	var count int
	if err := s.db.Get(&count, "SELECT COUNT(*) FROM cases"); err != nil {
		return 0, fmt.Errorf("failed to count cases: %w", err)
	}
	return count, nil
}
