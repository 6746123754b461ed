package engine

import (
	"fmt"

	"github.com/asketmc/guilds-of-bash/ids"
)

// Violation describes one broken invariant, surfaced to callers as text and
// to the reducer as an InvariantViolated event (spec.md §4.5).
type Violation struct {
	Description string
}

// VerifyInvariants is a pure predicate over state, returning every broken
// state invariant (1-5) from spec.md §3. An empty result means all of them
// hold. Invariant 6 (per-step event numbering) concerns a step's events, not
// a state, and is not checked here. It never mutates state.
func VerifyInvariants(state State) []Violation {
	var violations []Violation

	violations = append(violations, checkIDMonotonicity(state)...)
	violations = append(violations, checkLockedBoard(state)...)
	violations = append(violations, checkAutoCloseArchived(state)...)
	violations = append(violations, checkNoActiveReferencesInbox(state)...)
	violations = append(violations, checkDeclaredRanges(state)...)

	return violations
}

func violate(format string, args ...any) Violation {
	return Violation{Description: fmt.Sprintf(format, args...)}
}

// checkIDMonotonicity verifies invariant 1: every id domain is unique and
// below its counter.
func checkIDMonotonicity(state State) []Violation {
	var out []Violation

	seenContracts := make(map[int64]bool)
	for _, p := range state.Contracts.Board {
		id := int64(p.BoardContractID)
		if seenContracts[id] {
			out = append(out, violate("duplicate board contract id %d", id))
		}
		seenContracts[id] = true
		if id >= int64(state.Meta.IDs.NextContractID) {
			out = append(out, violate("board contract id %d is not below nextContractId %d", id, state.Meta.IDs.NextContractID))
		}
	}
	for _, p := range state.Contracts.Archive {
		id := int64(p.BoardContractID)
		if seenContracts[id] {
			out = append(out, violate("duplicate contract id %d across board/archive", id))
		}
		seenContracts[id] = true
		if id >= int64(state.Meta.IDs.NextContractID) {
			out = append(out, violate("archived contract id %d is not below nextContractId %d", id, state.Meta.IDs.NextContractID))
		}
	}

	seenActive := make(map[int64]bool)
	for _, a := range state.Contracts.Active {
		id := int64(a.ActiveContractID)
		if seenActive[id] {
			out = append(out, violate("duplicate active contract id %d", id))
		}
		seenActive[id] = true
		if id >= int64(state.Meta.IDs.NextActiveContractID) {
			out = append(out, violate("active contract id %d is not below nextActiveContractId %d", id, state.Meta.IDs.NextActiveContractID))
		}
	}

	seenHero := make(map[int64]bool)
	for _, h := range state.Heroes.Roster {
		id := int64(h.ID)
		if seenHero[id] {
			out = append(out, violate("duplicate hero id %d", id))
		}
		seenHero[id] = true
		if id >= int64(state.Meta.IDs.NextHeroID) {
			out = append(out, violate("hero id %d is not below nextHeroId %d", id, state.Meta.IDs.NextHeroID))
		}
	}

	return out
}

// checkLockedBoard verifies invariant 2: locked<->active correspondence. A
// Resolved active still holds its board lock while its return remains open
// (spec.md §3: a Posted awaiting manual close stays locked until
// CloseReturn); only a closed return releases it.
func checkLockedBoard(state State) []Violation {
	var out []Violation

	returnByActiveID := make(map[int64]ReturnPacket)
	for _, ret := range state.Contracts.Returns {
		returnByActiveID[int64(ret.ActiveContractID)] = ret
	}

	openByBoardID := make(map[int64]*Active)
	isOpen := func(a *Active) bool {
		switch a.State {
		case ids.ActiveStateTaken, ids.ActiveStateWIP:
			return true
		case ids.ActiveStateResolved:
			ret, ok := returnByActiveID[int64(a.ActiveContractID)]
			return ok && !ret.Closed
		default:
			return false
		}
	}
	for i := range state.Contracts.Active {
		a := &state.Contracts.Active[i]
		if isOpen(a) {
			openByBoardID[int64(a.BoardContractID)] = a
		}
	}

	for _, p := range state.Contracts.Board {
		if !p.LockedByActive.Present {
			continue
		}
		a, ok := openByBoardID[int64(p.BoardContractID)]
		if !ok {
			out = append(out, violate("posted contract %d is locked but has no open active holding it", p.BoardContractID))
			continue
		}
		if a.ActiveContractID != p.LockedByActive.Active {
			out = append(out, violate("posted contract %d lock points to active %d, found active %d instead", p.BoardContractID, p.LockedByActive.Active, a.ActiveContractID))
		}
	}

	boardByID := make(map[int64]Posted)
	for _, p := range state.Contracts.Board {
		boardByID[int64(p.BoardContractID)] = p
	}
	archiveByID := make(map[int64]bool)
	for _, p := range state.Contracts.Archive {
		archiveByID[int64(p.BoardContractID)] = true
	}
	for i := range state.Contracts.Active {
		a := &state.Contracts.Active[i]
		if !isOpen(a) {
			continue
		}
		if posted, ok := boardByID[int64(a.BoardContractID)]; ok {
			if !posted.LockedByActive.Present || posted.LockedByActive.Active != a.ActiveContractID {
				out = append(out, violate("active %d references board contract %d whose lock does not match", a.ActiveContractID, a.BoardContractID))
			}
			continue
		}
		if archiveByID[int64(a.BoardContractID)] {
			continue
		}
		out = append(out, violate("active %d references board contract %d which is neither on the board nor archived", a.ActiveContractID, a.BoardContractID))
	}

	return out
}

// checkAutoCloseArchived verifies invariant 3: auto-closed returns left an
// archived, not boarded, posted entry.
func checkAutoCloseArchived(state State) []Violation {
	var out []Violation

	boardByID := make(map[int64]bool)
	for _, p := range state.Contracts.Board {
		boardByID[int64(p.BoardContractID)] = true
	}
	archiveByID := make(map[int64]bool)
	for _, p := range state.Contracts.Archive {
		archiveByID[int64(p.BoardContractID)] = true
	}

	activeByID := make(map[int64]Active)
	for _, a := range state.Contracts.Active {
		activeByID[int64(a.ActiveContractID)] = a
	}

	for _, ret := range state.Contracts.Returns {
		if ret.RequiresPlayerClose {
			continue
		}
		if !ret.Closed {
			continue
		}
		a, ok := activeByID[int64(ret.ActiveContractID)]
		if !ok {
			continue
		}
		if boardByID[int64(a.BoardContractID)] {
			out = append(out, violate("auto-closed return %d still has its contract %d on the board", ret.ActiveContractID, a.BoardContractID))
		}
		if !archiveByID[int64(a.BoardContractID)] {
			out = append(out, violate("auto-closed return %d's contract %d is missing from the archive", ret.ActiveContractID, a.BoardContractID))
		}
	}

	return out
}

// checkNoActiveReferencesInbox verifies invariant 4.
func checkNoActiveReferencesInbox(state State) []Violation {
	var out []Violation
	inboxByID := make(map[int64]bool)
	for _, d := range state.Contracts.Inbox {
		inboxByID[int64(d.ID)] = true
	}
	for _, a := range state.Contracts.Active {
		if inboxByID[int64(a.BoardContractID)] {
			out = append(out, violate("active %d references draft %d still sitting in the inbox", a.ActiveContractID, a.BoardContractID))
		}
	}
	return out
}

// checkDeclaredRanges verifies invariant 5.
func checkDeclaredRanges(state State) []Violation {
	var out []Violation
	if state.Economy.MoneyCopper < 0 {
		out = append(out, violate("moneyCopper is negative: %d", state.Economy.MoneyCopper))
	}
	if state.Economy.TrophiesStock < 0 {
		out = append(out, violate("trophiesStock is negative: %d", state.Economy.TrophiesStock))
	}
	if state.Region.Stability < 0 || state.Region.Stability > 100 {
		out = append(out, violate("stability out of [0,100]: %d", state.Region.Stability))
	}
	if state.Guild.Reputation < 0 || state.Guild.Reputation > 100 {
		out = append(out, violate("reputation out of [0,100]: %d", state.Guild.Reputation))
	}
	if state.Guild.GuildRank < 1 {
		out = append(out, violate("guildRank below 1: %d", state.Guild.GuildRank))
	}
	if state.Meta.DayIndex < 0 {
		out = append(out, violate("dayIndex is negative: %d", state.Meta.DayIndex))
	}
	if state.Meta.Revision < 0 {
		out = append(out, violate("revision is negative: %d", state.Meta.Revision))
	}
	return out
}
