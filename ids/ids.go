// Package ids defines the typed identifiers and closed enums shared across
// the simulation core. Keeping them here, rather than as bare int64/string
// aliases scattered through engine, is what lets the reducer and the state
// schema agree on a single vocabulary without an import cycle.
package ids

import "fmt"

// DraftID identifies a contract draft sitting in the inbox. Unique across all
// generations for the lifetime of a save.
type DraftID int64

// ContractID identifies a contract once it has been posted to the board.
type ContractID int64

// ActiveID identifies a contract that has been taken by a hero.
type ActiveID int64

// HeroID identifies a hero, from arrival onward.
type HeroID int64

// CommandID tags a single reducer invocation; every event produced by that
// invocation carries the same CommandID.
type CommandID int64

func (id DraftID) String() string    { return fmt.Sprintf("draft#%d", int64(id)) }
func (id ContractID) String() string { return fmt.Sprintf("contract#%d", int64(id)) }
func (id ActiveID) String() string   { return fmt.Sprintf("active#%d", int64(id)) }
func (id HeroID) String() string     { return fmt.Sprintf("hero#%d", int64(id)) }

// Outcome is the resolution result of an active contract, chosen by the
// outcome resolver with a fixed RNG draw order (see engine/outcome.go).
type Outcome string

const (
	OutcomeSuccess Outcome = "SUCCESS"
	OutcomePartial Outcome = "PARTIAL"
	OutcomeFail    Outcome = "FAIL"
	OutcomeDeath   Outcome = "DEATH"
	OutcomeMissing Outcome = "MISSING"
)

// RequiresPlayerClose reports whether this outcome leaves a ReturnPacket open
// for a manual CloseReturn command, per spec.md §4.2.
func (o Outcome) RequiresPlayerClose() bool {
	return o != OutcomeSuccess
}

// IsDeathLike reports whether the outcome removed or flagged the hero.
func (o Outcome) IsDeathLike() bool {
	return o == OutcomeDeath || o == OutcomeMissing
}

// SalvagePolicy controls how trophies/money are split on settlement. It never
// influences which Outcome is chosen (spec.md §4.2).
type SalvagePolicy string

const (
	// SalvagePolicyHero lets the hero keep half the recovered trophies
	// off the books; the guild's own ledger only banks the remaining half
	// but collects a doubled fee in exchange for forgoing the full stock.
	SalvagePolicyHero SalvagePolicy = "HERO"
	// SalvagePolicyGuild banks all recovered trophies for the guild and pays
	// the plain posted fee with no premium.
	SalvagePolicyGuild SalvagePolicy = "GUILD"
)

// Valid reports whether the policy is one of the known closed variants.
func (p SalvagePolicy) Valid() bool {
	switch p {
	case SalvagePolicyHero, SalvagePolicyGuild:
		return true
	default:
		return false
	}
}

// RejectReason enumerates why the reducer refused a command, per spec.md §4.4.
type RejectReason string

const (
	RejectNotFound           RejectReason = "NOT_FOUND"
	RejectInvalidState       RejectReason = "INVALID_STATE"
	RejectPreconditionFailed RejectReason = "PRECONDITION_FAILED"
	RejectConflict           RejectReason = "CONFLICT"
)

// ActiveState is the lifecycle stage of an Active contract.
type ActiveState string

const (
	ActiveStateTaken    ActiveState = "TAKEN"
	ActiveStateWIP      ActiveState = "WIP"
	ActiveStateResolved ActiveState = "RESOLVED"
)

// HeroStatus is the lifecycle stage of a Hero.
type HeroStatus string

const (
	HeroStatusIdle    HeroStatus = "IDLE"
	HeroStatusBusy    HeroStatus = "BUSY"
	HeroStatusDead    HeroStatus = "DEAD"
	HeroStatusMissing HeroStatus = "MISSING"
)
