// Package engine implements the deterministic command-processing core: the
// state schema, the invariant verifier, the canonical hash, the outcome
// resolver, the day-advancement pipeline, and the reducer that ties them
// together. Every exported function here is pure — given the same
// (State, Command, *rng.Rng) it always produces the same (State, []Event),
// including the RNG draw count and order (spec.md §5).
package engine

import "github.com/asketmc/guilds-of-bash/ids"

// SaveVersion is frozen at 1; schema migration is out of scope (spec.md §1).
const SaveVersion int32 = 1

// IDCounters tracks the monotonic, strictly-positive id generators that back
// every identifier domain in the state (spec.md §3, invariant 1).
type IDCounters struct {
	NextContractID       ids.ContractID
	NextHeroID           ids.HeroID
	NextActiveContractID ids.ActiveID
}

// Meta carries the save header and the global identifier counters.
type Meta struct {
	SaveVersion int32
	Seed        uint32
	DayIndex    int32
	Revision    int64
	IDs         IDCounters
}

// Economy holds the guild's liquid assets.
type Economy struct {
	MoneyCopper   int64
	TrophiesStock int32
}

// Guild holds the guild's standing.
type Guild struct {
	GuildRank  int32
	Reputation int32
}

// Region holds the surrounding region's condition.
type Region struct {
	Stability int32
}

// Draft is an unposted contract sitting in the inbox.
type Draft struct {
	ID         ids.DraftID
	Difficulty int32
	Flavor     string
}

// Lock is the exclusive association between a Posted entry and exactly one
// Active entry that is TAKEN, WIP, or RESOLVED with its return still open.
// Present is false when the board entry carries
// no lock — a plain ids.ActiveID can't express "absent" on its own since 0
// is a valid zero value we never want confused with "no lock".
type Lock struct {
	Active  ids.ActiveID
	Present bool
}

// Posted is a contract placed on the public board.
//
// BoardContractID and DraftID share the same numeric identity: a draft
// becomes its posted contract rather than spawning a second identifier, so
// meta.IDs needs no separate draft counter: drafts draw their ids from
// NextContractID. DraftID is kept as its own field purely for provenance — it is
// never looked up against a live inbox entry once posted.
type Posted struct {
	BoardContractID ids.ContractID
	DraftID         ids.DraftID
	Difficulty      int32
	Fee             int64
	Salvage         ids.SalvagePolicy
	PostedDay       int32
	LockedByActive  Lock
}

// Active is a contract taken by a hero, in progress.
type Active struct {
	ActiveContractID ids.ActiveID
	BoardContractID  ids.ContractID
	HeroID           ids.HeroID
	TakenDay         int32
	State            ids.ActiveState
}

// ReturnPacket is a resolved-but-not-yet-settled contract awaiting close.
type ReturnPacket struct {
	ActiveContractID    ids.ActiveID
	Outcome             ids.Outcome
	TrophiesCount       int32
	RequiresPlayerClose bool
	Closed              bool
}

// Hero is a member of the roster, available or otherwise.
type Hero struct {
	ID     ids.HeroID
	Skill  int32
	Status ids.HeroStatus
}

// Contracts collects every contract collection by lifecycle stage.
type Contracts struct {
	Inbox   []Draft
	Board   []Posted
	Active  []Active
	Returns []ReturnPacket
	Archive []Posted
}

// Heroes collects the roster and today's arrivals.
type Heroes struct {
	Roster        []Hero
	ArrivalsToday []ids.HeroID
}

// State is the full, immutable world snapshot. Consumers must treat every
// value returned from this package as read-only; the reducer never mutates
// its input State in place, only ever returning a new value built from fresh
// slices (spec.md §5).
type State struct {
	Meta      Meta
	Economy   Economy
	Guild     Guild
	Region    Region
	Contracts Contracts
	Heroes    Heroes
}

// InitialState builds the deterministic starting snapshot for seed. The same
// seed always yields an identical state, including nested records
// (spec.md §6, scenario S1).
func InitialState(seed uint32) State {
	return InitialStateWithEconomy(seed, 100)
}

// InitialStateWithEconomy builds the starting snapshot for seed with a
// caller-supplied starting balance; every other field matches InitialState.
// cmd/guildsim uses this to honour its configured starting economy without
// the pure core taking any configuration dependency of its own.
func InitialStateWithEconomy(seed uint32, startingMoneyCopper int64) State {
	return State{
		Meta: Meta{
			SaveVersion: SaveVersion,
			Seed:        seed,
			DayIndex:    0,
			Revision:    0,
			IDs: IDCounters{
				NextContractID:       1,
				NextHeroID:           1,
				NextActiveContractID: 1,
			},
		},
		Economy: Economy{
			MoneyCopper:   startingMoneyCopper,
			TrophiesStock: 0,
		},
		Guild: Guild{
			GuildRank:  1,
			Reputation: 50,
		},
		Region: Region{
			Stability: 50,
		},
		Contracts: Contracts{},
		Heroes:    Heroes{},
	}
}
