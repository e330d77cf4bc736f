package moderation

import (
	"fmt"
	"sync"
	"time"

	"moderation-bot/model"

	"github.com/bwmarrin/discordgo"
)

type fakeDirectory struct {
	mu      sync.Mutex
	members map[string]*Member // "guild:user"
	calls   []string

	grantErr  error
	revokeErr error
	banErr    map[string]error // per subject id
	kickErr   map[string]error
	unbanErr  error
	notifyErr error
}

func newFakeDirectory() *fakeDirectory {
	return &fakeDirectory{
		members: make(map[string]*Member),
		banErr:  make(map[string]error),
		kickErr: make(map[string]error),
	}
}

func (d *fakeDirectory) put(guildID string, m *Member) {
	d.members[guildID+":"+m.ID] = m
}

func (d *fakeDirectory) record(call string) {
	d.mu.Lock()
	d.calls = append(d.calls, call)
	d.mu.Unlock()
}

func (d *fakeDirectory) callCount(prefix string) int {
	d.mu.Lock()
	defer d.mu.Unlock()
	n := 0
	for _, c := range d.calls {
		if len(c) >= len(prefix) && c[:len(prefix)] == prefix {
			n++
		}
	}
	return n
}

func (d *fakeDirectory) Member(guildID, userID string) (*Member, error) {
	m, ok := d.members[guildID+":"+userID]
	if !ok {
		return nil, fmt.Errorf("no member %s: %w", userID, ErrNotFound)
	}
	cp := *m
	return &cp, nil
}

func (d *fakeDirectory) GrantRole(guildID, userID, roleID, reason string) error {
	if d.grantErr != nil {
		return d.grantErr
	}
	d.record("grant:" + userID + ":" + roleID)
	if m, ok := d.members[guildID+":"+userID]; ok {
		m.Roles = append(m.Roles, roleID)
	}
	return nil
}

func (d *fakeDirectory) RevokeRole(guildID, userID, roleID, reason string) error {
	if d.revokeErr != nil {
		return d.revokeErr
	}
	d.record("revoke:" + userID + ":" + roleID)
	if m, ok := d.members[guildID+":"+userID]; ok {
		kept := m.Roles[:0]
		for _, r := range m.Roles {
			if r != roleID {
				kept = append(kept, r)
			}
		}
		m.Roles = kept
	}
	return nil
}

func (d *fakeDirectory) Ban(guildID, userID string, purgeDays int, reason string) error {
	if err := d.banErr[userID]; err != nil {
		return err
	}
	d.record(fmt.Sprintf("ban:%s:%d", userID, purgeDays))
	return nil
}

func (d *fakeDirectory) Unban(guildID, userID, reason string) error {
	if d.unbanErr != nil {
		return d.unbanErr
	}
	d.record("unban:" + userID)
	return nil
}

func (d *fakeDirectory) Kick(guildID, userID, reason string) error {
	if err := d.kickErr[userID]; err != nil {
		return err
	}
	d.record("kick:" + userID)
	return nil
}

func (d *fakeDirectory) Notify(userID, text string) error {
	if d.notifyErr != nil {
		return d.notifyErr
	}
	d.record("notify:" + userID)
	return nil
}

type fakeGuilds struct {
	muteRole  string
	dest      *LogDestination
	raidLevel int
}

func (g *fakeGuilds) MuteRole(guildID string) (string, error) {
	if g.muteRole == "" {
		return "", ErrNotConfigured
	}
	return g.muteRole, nil
}

func (g *fakeGuilds) LogDestination(guildID string) (*LogDestination, error) {
	if g.dest == nil {
		return nil, ErrNotConfigured
	}
	return g.dest, nil
}

func (g *fakeGuilds) RaidLevel(guildID string) int {
	if g.raidLevel == 0 {
		return 2
	}
	return g.raidLevel
}

type fakeLedger struct {
	mu        sync.Mutex
	records   []model.Case
	failures  int // fail this many Record calls before succeeding
	attachErr error
	markErr   error
	marked    []int64
}

func (l *fakeLedger) Record(c model.Case) (int64, error) {
	l.mu.Lock()
	defer l.mu.Unlock()
	if l.failures > 0 {
		l.failures--
		return 0, fmt.Errorf("ledger down")
	}
	c.CaseIDOnGuild = int64(len(l.records) + 1)
	l.records = append(l.records, c)
	return c.CaseIDOnGuild, nil
}

func (l *fakeLedger) AttachReason(guildID string, caseID int64, reason string) error {
	return l.attachErr
}

func (l *fakeLedger) MarkLogged(guildID string, caseID int64, channelID string) error {
	if l.markErr != nil {
		return l.markErr
	}
	l.mu.Lock()
	l.marked = append(l.marked, caseID)
	l.mu.Unlock()
	return nil
}

func (l *fakeLedger) CountWarnings(guildID, offenderID string) (int, error) {
	l.mu.Lock()
	defer l.mu.Unlock()
	n := 0
	for _, c := range l.records {
		if c.GuildID == guildID && c.OffenderID == offenderID && c.ActionType == "warn" {
			n++
		}
	}
	return n, nil
}

func (l *fakeLedger) byType(actionType string) []model.Case {
	l.mu.Lock()
	defer l.mu.Unlock()
	var out []model.Case
	for _, c := range l.records {
		if c.ActionType == actionType {
			out = append(out, c)
		}
	}
	return out
}

type fakeTimers struct {
	mu        sync.Mutex
	timers    map[string]model.Timer // "guild:subject:kind"
	upsertErr error
}

func newFakeTimers() *fakeTimers {
	return &fakeTimers{timers: make(map[string]model.Timer)}
}

func (t *fakeTimers) Upsert(timer model.Timer) error {
	if t.upsertErr != nil {
		return t.upsertErr
	}
	t.mu.Lock()
	defer t.mu.Unlock()
	key := timer.GuildID + ":" + timer.SubjectID + ":" + timer.Kind
	if _, ok := t.timers[key]; ok {
		timer.IsUpdate = true
	}
	t.timers[key] = timer
	return nil
}

func (t *fakeTimers) Delete(guildID, subjectID, kind string) error {
	t.mu.Lock()
	defer t.mu.Unlock()
	delete(t.timers, guildID+":"+subjectID+":"+kind)
	return nil
}

func (t *fakeTimers) DeleteByID(id int64) error { return nil }
func (t *fakeTimers) Bump(id int64) error       { return nil }

func (t *fakeTimers) Due(now time.Time) ([]model.Timer, error) { return nil, nil }

func (t *fakeTimers) get(guildID, subjectID, kind string) (model.Timer, bool) {
	t.mu.Lock()
	defer t.mu.Unlock()
	timer, ok := t.timers[guildID+":"+subjectID+":"+kind]
	return timer, ok
}

type fakeBlacklist struct {
	mu       sync.Mutex
	ids      map[string][]string
	failures int
}

func newFakeBlacklist() *fakeBlacklist {
	return &fakeBlacklist{ids: make(map[string][]string)}
}

func (b *fakeBlacklist) InsertMany(guildID string, userIDs []string) error {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.failures > 0 {
		b.failures--
		return fmt.Errorf("store down")
	}
	b.ids[guildID] = append(b.ids[guildID], userIDs...)
	return nil
}

type sentMessage struct {
	viaWebhook bool
	channelID  string
	content    string
	embed      *discordgo.MessageEmbed
}

type fakeSink struct {
	mu          sync.Mutex
	sent        []sentMessage
	hookChannel string
	hookLookErr error
	hookExecErr error
	sendErr     error
}

func (s *fakeSink) ExecuteWebhook(webhookID, token, content string, embed *discordgo.MessageEmbed) error {
	if s.hookExecErr != nil {
		return s.hookExecErr
	}
	s.mu.Lock()
	s.sent = append(s.sent, sentMessage{viaWebhook: true, content: content, embed: embed})
	s.mu.Unlock()
	return nil
}

func (s *fakeSink) WebhookChannel(webhookID string) (string, error) {
	if s.hookLookErr != nil {
		return "", s.hookLookErr
	}
	return s.hookChannel, nil
}

func (s *fakeSink) SendChannel(channelID, content string, embed *discordgo.MessageEmbed) error {
	if s.sendErr != nil {
		return s.sendErr
	}
	s.mu.Lock()
	s.sent = append(s.sent, sentMessage{channelID: channelID, content: content, embed: embed})
	s.mu.Unlock()
	return nil
}

// newTestEngine builds an engine over fresh fakes with a configured mute
// role and log destination.
func newTestEngine() (*Engine, *fakeDirectory, *fakeGuilds, *fakeLedger, *fakeTimers, *fakeBlacklist, *fakeSink) {
	dir := newFakeDirectory()
	guilds := &fakeGuilds{
		muteRole: "muted-role",
		dest:     &LogDestination{ChannelID: "log-channel"},
	}
	ledger := &fakeLedger{}
	timers := newFakeTimers()
	bl := newFakeBlacklist()
	sink := &fakeSink{}
	audit := NewAudit(guilds, sink, ledger)
	engine := NewEngine(dir, guilds, ledger, timers, bl, audit)
	return engine, dir, guilds, ledger, timers, bl, sink
}
