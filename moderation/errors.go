package moderation

import "errors"

// Error taxonomy of the engine. Authority and validation errors block the
// operation; infrastructure errors downgrade side effects (ledger, audit,
// notification) but never the primary sanction.
var (
	// ErrNotConfigured means a prerequisite guild setting (mute role, log
	// destination) is missing. Never retried automatically.
	ErrNotConfigured = errors.New("required guild setting is not configured")

	// ErrAlreadySanctioned and ErrNotSanctioned are state-consistency
	// checks, not store failures.
	ErrAlreadySanctioned = errors.New("subject is already sanctioned")
	ErrNotSanctioned     = errors.New("subject is not sanctioned")

	// ErrForbidden is a platform-level authority failure. Terminal.
	ErrForbidden = errors.New("not enough permissions")

	// ErrNotFound means the subject left or never existed.
	ErrNotFound = errors.New("subject not found")

	// ErrInvalidRange is a caller parameter out of allowed bounds,
	// rejected before any side effect.
	ErrInvalidRange = errors.New("parameter out of allowed range")

	// ErrBusy means another batch operation holds the guild lock.
	ErrBusy = errors.New("another batch operation is in progress for this guild")

	// ErrLedgerUnavailable and ErrStoreUnavailable are transient infra
	// failures. The sanction is still applied; the degraded side effect is
	// logged for later reconciliation.
	ErrLedgerUnavailable = errors.New("case ledger is unavailable")
	ErrStoreUnavailable  = errors.New("persistent store is unavailable")
)

// UserMessage maps a terminal engine error to its fixed human-readable
// category. Raw internal error strings never surface past the engine.
func UserMessage(err error) string {
	switch {
	case errors.Is(err, ErrNotConfigured):
		return "This guild is missing the required moderation setup."
	case errors.Is(err, ErrAlreadySanctioned):
		return "This user is already sanctioned."
	case errors.Is(err, ErrNotSanctioned):
		return "This user is not sanctioned."
	case errors.Is(err, ErrForbidden):
		return "Not enough permissions to do this."
	case errors.Is(err, ErrNotFound):
		return "Could not find this user."
	case errors.Is(err, ErrInvalidRange):
		return "A supplied value is out of the allowed range."
	case errors.Is(err, ErrBusy):
		return "Another mass operation is already running here, try again later."
	case errors.Is(err, ErrLedgerUnavailable), errors.Is(err, ErrStoreUnavailable):
		return "The action was applied but could not be fully recorded."
	}
	return "Something went wrong."
}

func errorsIsNotFound(err error) bool {
	return err != nil && errors.Is(err, ErrNotFound)
}

// FailureCode classifies per-target batch failures the way callers report
// them.
type FailureCode string

const (
	// FailureNotFound (F1): the target could not be found.
	FailureNotFound FailureCode = "F1"
	// FailureForbidden (F2): not enough permissions for the target.
	FailureForbidden FailureCode = "F2"
)
