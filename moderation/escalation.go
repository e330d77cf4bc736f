package moderation

import (
	"fmt"
	"sync"
	"time"

	"moderation-bot/model"
)

// TriggerKind is an abuse signal reported by a detector.
type TriggerKind string

const (
	TriggerSpam        TriggerKind = "spam"
	TriggerMassMention TriggerKind = "mass mention"
)

// Outcome is what the policy decided for one trigger occurrence.
type Outcome int

const (
	// OutcomeNone: fresh occurrence, nothing to do yet.
	OutcomeNone Outcome = iota
	// OutcomeWarned: soft inline warning, no sanction. The caller renders it.
	OutcomeWarned
	// OutcomeEscalated: a sanction was applied automatically.
	OutcomeEscalated
)

type counterKey struct {
	guildID   string
	subjectID string
	trigger   TriggerKind
}

type counter struct {
	hits        int
	windowStart time.Time
}

// Policy promotes repeated abuse triggers into automatic sanctions.
// Counters are in-memory only: they are a best-effort detector, not an
// audit source of truth, and die with the process.
type Policy struct {
	engine *Engine

	mu       sync.Mutex
	counters map[counterKey]*counter

	window     time.Duration
	muteLength time.Duration
	now        func() time.Time
}

// NewPolicy creates the escalation policy around the executor.
func NewPolicy(engine *Engine, window, muteLength time.Duration) *Policy {
	if window <= 0 {
		window = 15 * time.Second
	}
	if muteLength <= 0 {
		muteLength = 30 * time.Minute
	}
	return &Policy{
		engine:     engine,
		counters:   make(map[counterKey]*counter),
		window:     window,
		muteLength: muteLength,
		now:        time.Now,
	}
}

// Trigger records one abuse occurrence. The count step is atomic per
// key: two near-simultaneous triggers for the same subject cannot both
// read the same count. The counter is cleared once escalation fires so a
// single burst cannot sanction twice. botID is used as the responsible
// actor for automatic sanctions.
func (p *Policy) Trigger(guildID, subjectID, botID string, kind TriggerKind) (Outcome, error) {
	hits := p.bump(guildID, subjectID, kind)
	if hits < 2 {
		return OutcomeWarned, nil
	}

	arl := p.engine.guilds.RaidLevel(guildID)
	reason := fmt.Sprintf("Level %d raid protection: %s", arl, kind)
	switch arl {
	case 2:
		_, err := p.engine.Apply(model.SanctionMute, guildID, subjectID, botID, reason, Options{
			Duration: p.muteLength,
			Force:    true,
			NoDM:     true,
		})
		return OutcomeEscalated, err
	case 3:
		subject, err := p.engine.dir.Member(guildID, subjectID)
		if err != nil {
			return OutcomeEscalated, err
		}
		if len(subject.Roles) == 0 {
			_, err = p.engine.removeFromGuild(model.SanctionKick, guildID, subjectID, botID, reason,
				Options{NoDM: true})
		} else {
			_, err = p.engine.removeFromGuild(model.SanctionBan, guildID, subjectID, botID, reason,
				Options{PurgeDays: 1, NoDM: true})
		}
		return OutcomeEscalated, err
	}
	return OutcomeNone, nil
}

// bump advances the counter for a key and returns the hit count to act
// on. A window that elapsed with no further hits resets the counter; a
// count reaching 2 clears it (the escalation consumes the burst).
func (p *Policy) bump(guildID, subjectID string, kind TriggerKind) int {
	p.mu.Lock()
	defer p.mu.Unlock()

	key := counterKey{guildID: guildID, subjectID: subjectID, trigger: kind}
	now := p.now()
	c, ok := p.counters[key]
	if !ok || now.Sub(c.windowStart) > p.window {
		p.counters[key] = &counter{hits: 1, windowStart: now}
		return 1
	}
	c.hits++
	if c.hits >= 2 {
		delete(p.counters, key)
	}
	return c.hits
}

// Reset drops the counter for a subject, e.g. after a manual sanction.
func (p *Policy) Reset(guildID, subjectID string, kind TriggerKind) {
	p.mu.Lock()
	defer p.mu.Unlock()
	delete(p.counters, counterKey{guildID: guildID, subjectID: subjectID, trigger: kind})
}
