package models

// Provider identifies an external metadata provider.
type Provider string

const (
	ProviderIGDB Provider = "igdb"
)

// MatchType is the state of a mapping between a local entity and a provider record.
type MatchType string

const (
	MatchTypeNone      MatchType = "none"
	MatchTypeAutomatic MatchType = "automatic"
	MatchTypeManual    MatchType = "manual"
	MatchTypeFailed    MatchType = "failed"
)

// IsMatched reports whether the mapping carries a usable provider id.
func (m MatchType) IsMatched() bool {
	return m == MatchTypeAutomatic || m == MatchTypeManual
}

// AutomaticReason explains why an automatic match was made.
type AutomaticReason string

const (
	AutomaticReasonDirectName      AutomaticReason = "direct_name"
	AutomaticReasonAlternativeName AutomaticReason = "alternative_name"
	AutomaticReasonViaParent       AutomaticReason = "via_parent"
	AutomaticReasonViaChild        AutomaticReason = "via_child"
)

// FailedReason explains why matching failed.
type FailedReason string

const (
	FailedReasonNoDirectMatch  FailedReason = "no_direct_match"
	FailedReasonTooManyMatches FailedReason = "too_many_matches"
)

// ManualMatchMode records who made a manual match.
type ManualMatchMode string

const (
	ManualMatchModeAdmin     ManualMatchMode = "admin"
	ManualMatchModeTrusted   ManualMatchMode = "trusted"
	ManualMatchModeCommunity ManualMatchMode = "community"
)

// RomStatus is the dump status of a ROM entry as reported by the catalog.
type RomStatus string

const (
	RomStatusVerified RomStatus = "verified"
	RomStatusBadDump  RomStatus = "baddump"
	RomStatusNoDump   RomStatus = "nodump"
)
