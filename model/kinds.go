package model

// SanctionKind enumerates every moderation action the engine can take.
// It is a closed set: the ledger type, audit title and embed color for
// each kind are resolved here so that adding a kind is a compile-time
// checked extension instead of scattered string comparisons.
type SanctionKind int

const (
	SanctionMute SanctionKind = iota
	SanctionUnmute
	SanctionBan
	SanctionBanish
	SanctionSoftban
	SanctionSoftbanish
	SanctionKick
	SanctionWarn
	SanctionBlacklist
	SanctionMassban
)

// LedgerType returns the action_type string stored in the cases table.
func (k SanctionKind) LedgerType() string {
	switch k {
	case SanctionMute:
		return "mute"
	case SanctionUnmute:
		return "unmute"
	case SanctionBan:
		return "ban"
	case SanctionBanish:
		return "banish"
	case SanctionSoftban:
		return "softban"
	case SanctionSoftbanish:
		return "softbanish"
	case SanctionKick:
		return "kick"
	case SanctionWarn:
		return "warn"
	case SanctionBlacklist:
		return "blacklist"
	case SanctionMassban:
		return "massban"
	}
	return "unknown"
}

// AuditTitle returns the audit log title for the kind.
func (k SanctionKind) AuditTitle() string {
	switch k {
	case SanctionMute:
		return "User muted"
	case SanctionUnmute:
		return "User unmuted"
	case SanctionBan:
		return "Ban"
	case SanctionBanish:
		return "Banish"
	case SanctionSoftban:
		return "Softban"
	case SanctionSoftbanish:
		return "Softbanish"
	case SanctionKick:
		return "User kicked"
	case SanctionWarn:
		return "User warned"
	case SanctionBlacklist:
		return "Blacklist"
	case SanctionMassban:
		return "Massban"
	}
	return "Moderation action"
}

// AuditColor returns the embed color for the kind.
func (k SanctionKind) AuditColor() int {
	switch k {
	case SanctionMute:
		return 0xbf5b30
	case SanctionUnmute:
		return 0x62f07f
	case SanctionBan, SanctionBanish, SanctionSoftban, SanctionSoftbanish, SanctionMassban:
		return 0xe62d10
	case SanctionKick:
		return 0xe1717d
	case SanctionWarn:
		return 0xfa8507
	case SanctionBlacklist:
		return 0x050100
	}
	return 0x222222
}

// RemovesFromGuild reports whether the kind removes the subject from the
// guild (the ban family and kick).
func (k SanctionKind) RemovesFromGuild() bool {
	switch k {
	case SanctionBan, SanctionBanish, SanctionSoftban, SanctionSoftbanish, SanctionKick:
		return true
	}
	return false
}

// IsSoft reports whether the kind re-admits the subject right after the
// removal (softban family).
func (k SanctionKind) IsSoft() bool {
	return k == SanctionSoftban || k == SanctionSoftbanish
}
