package scanner

import (
	"log"
	"time"

	"moderation-bot/model"
	"moderation-bot/moderation"
)

// Reverser undoes an expired sanction. Firing must be idempotent: if the
// subject was already manually unmuted the reversal is a no-op that still
// consumes the timer.
type Reverser interface {
	AutoUnmute(t model.Timer) error
}

// WarnFunc surfaces a dropped timer as a standalone warning event.
type WarnFunc func(guildID, operation, info string)

// TimerDispatcher is the single process-wide background task that fires
// persisted timers. On startup all past-due timers fire immediately,
// oldest first, so expirations survive restarts.
type TimerDispatcher struct {
	timers      moderation.TimerStore
	engine      Reverser
	interval    time.Duration
	maxAttempts int
	warn        WarnFunc
	done        chan struct{}
}

// NewTimerDispatcher creates the dispatcher. It does not start it.
func NewTimerDispatcher(timers moderation.TimerStore, engine Reverser, interval time.Duration, maxAttempts int, warn WarnFunc) *TimerDispatcher {
	if interval <= 0 {
		interval = time.Minute
	}
	if maxAttempts <= 0 {
		maxAttempts = 3
	}
	if warn == nil {
		warn = func(string, string, string) {}
	}
	return &TimerDispatcher{
		timers:      timers,
		engine:      engine,
		interval:    interval,
		maxAttempts: maxAttempts,
		warn:        warn,
		done:        make(chan struct{}),
	}
}

// Start runs the dispatch loop in a background goroutine. The first pass
// runs immediately to replay timers that expired while the process was
// down.
func (d *TimerDispatcher) Start() {
	go func() {
		d.RunOnce(time.Now())
		ticker := time.NewTicker(d.interval)
		defer ticker.Stop()
		for {
			select {
			case <-ticker.C:
				d.RunOnce(time.Now())
			case <-d.done:
				return
			}
		}
	}()
}

// Stop terminates the dispatch loop.
func (d *TimerDispatcher) Stop() {
	close(d.done)
}

// RunOnce fires every timer due at the given instant, oldest first. A
// store outage is logged and retried on the next cycle rather than
// crashing the loop.
func (d *TimerDispatcher) RunOnce(now time.Time) {
	due, err := d.timers.Due(now)
	if err != nil {
		log.Printf("Timer store unavailable, will retry next cycle: %v", err)
		return
	}

	for _, t := range due {
		if t.Kind != model.TimerKindMute {
			log.Printf("Dropping timer %d with unknown kind %q", t.ID, t.Kind)
			d.deleteTimer(t)
			continue
		}
		if err := d.engine.AutoUnmute(t); err != nil {
			d.handleFailure(t, err)
			continue
		}
		d.deleteTimer(t)
	}
}

// handleFailure retries a failed reversal on later poll cycles, up to the
// attempt ceiling, then drops the timer and warns the operator.
func (d *TimerDispatcher) handleFailure(t model.Timer, cause error) {
	if t.Attempts+1 >= d.maxAttempts {
		log.Printf("Giving up on timer %d for %s in guild %s after %d attempts: %v",
			t.ID, t.SubjectID, t.GuildID, t.Attempts+1, cause)
		d.deleteTimer(t)
		d.warn(t.GuildID, "timer dispatch",
			"dropped "+t.Kind+" reversal for user "+t.SubjectID+" in guild "+t.GuildID+": "+cause.Error())
		return
	}
	log.Printf("Timer %d for %s in guild %s failed (attempt %d), retrying next cycle: %v",
		t.ID, t.SubjectID, t.GuildID, t.Attempts+1, cause)
	if err := d.timers.Bump(t.ID); err != nil {
		log.Printf("Failed to bump timer %d: %v", t.ID, err)
	}
}

func (d *TimerDispatcher) deleteTimer(t model.Timer) {
	if err := d.timers.DeleteByID(t.ID); err != nil {
		log.Printf("Failed to delete timer %d: %v", t.ID, err)
	}
}
