package engine

import (
	"fmt"
	"sort"

	"github.com/asketmc/guilds-of-bash/ids"
	"github.com/asketmc/guilds-of-bash/rng"
)

// stageInboxGen appends deterministically-generated drafts to the inbox and
// reports how many were created (spec.md §4.3).
func stageInboxGen(state State, r *rng.Rng) (State, []Event) {
	count := int(1 + r.NextInt(3))

	inbox := append([]Draft(nil), state.Contracts.Inbox...)
	for i := 0; i < count; i++ {
		difficulty := 1 + r.NextInt(10)
		id := state.Meta.IDs.NextContractID
		state.Meta.IDs.NextContractID++
		inbox = append(inbox, Draft{
			ID:         ids.DraftID(id),
			Difficulty: difficulty,
			Flavor:     fmt.Sprintf("contract-d%d", difficulty),
		})
	}
	state.Contracts.Inbox = inbox

	return state, []Event{{Kind: KindInboxGenerated, DraftsGenerated: count}}
}

// stageHeroArrivals appends newly arrived heroes to the roster and resets
// ArrivalsToday to today's batch (spec.md §4.3).
func stageHeroArrivals(state State, r *rng.Rng) (State, []Event) {
	count := int(r.NextInt(3))

	roster := append([]Hero(nil), state.Heroes.Roster...)
	arrivals := make([]ids.HeroID, 0, count)
	for i := 0; i < count; i++ {
		skill := 20 + r.NextInt(60)
		id := state.Meta.IDs.NextHeroID
		state.Meta.IDs.NextHeroID++
		heroID := ids.HeroID(id)
		roster = append(roster, Hero{ID: heroID, Skill: skill, Status: ids.HeroStatusIdle})
		arrivals = append(arrivals, heroID)
	}
	state.Heroes.Roster = roster
	state.Heroes.ArrivalsToday = arrivals

	return state, []Event{{Kind: KindHeroesArrived, ArrivedHeroIDs: arrivals}}
}

// stageTake pairs unlocked board contracts with idle heroes, at most once
// each, breaking ties by ascending boardContractId then ascending heroId
// (spec.md §4.3). It draws nothing from the rng: the pairing is a
// deterministic sort, not a random choice.
func stageTake(state State) (State, []Event) {
	var available []int
	for i, p := range state.Contracts.Board {
		if !p.LockedByActive.Present {
			available = append(available, i)
		}
	}
	sort.Slice(available, func(i, j int) bool {
		return state.Contracts.Board[available[i]].BoardContractID < state.Contracts.Board[available[j]].BoardContractID
	})

	var idleHeroes []int
	for i, h := range state.Heroes.Roster {
		if h.Status == ids.HeroStatusIdle {
			idleHeroes = append(idleHeroes, i)
		}
	}
	sort.Slice(idleHeroes, func(i, j int) bool {
		return state.Heroes.Roster[idleHeroes[i]].ID < state.Heroes.Roster[idleHeroes[j]].ID
	})

	pairCount := len(available)
	if len(idleHeroes) < pairCount {
		pairCount = len(idleHeroes)
	}
	if pairCount == 0 {
		return state, nil
	}

	board := append([]Posted(nil), state.Contracts.Board...)
	roster := append([]Hero(nil), state.Heroes.Roster...)
	active := append([]Active(nil), state.Contracts.Active...)
	var events []Event

	for i := 0; i < pairCount; i++ {
		boardIdx := available[i]
		heroIdx := idleHeroes[i]

		activeID := state.Meta.IDs.NextActiveContractID
		state.Meta.IDs.NextActiveContractID++

		board[boardIdx].LockedByActive = Lock{Active: ids.ActiveID(activeID), Present: true}
		roster[heroIdx].Status = ids.HeroStatusBusy

		active = append(active, Active{
			ActiveContractID: ids.ActiveID(activeID),
			BoardContractID:  board[boardIdx].BoardContractID,
			HeroID:           roster[heroIdx].ID,
			TakenDay:         state.Meta.DayIndex,
			State:            ids.ActiveStateTaken,
		})

		events = append(events, Event{
			Kind:             KindContractTaken,
			ActiveContractID: ids.ActiveID(activeID),
			BoardContractID:  board[boardIdx].BoardContractID,
			HeroID:           roster[heroIdx].ID,
		})
	}

	state.Contracts.Board = board
	state.Heroes.Roster = roster
	state.Contracts.Active = active
	return state, events
}

// stageWIPAdvance promotes TAKEN actives from a prior day to WIP
// (spec.md §4.3). No events are emitted — this is a silent bookkeeping step
// the caller cannot observe directly, only through the resolve it unlocks.
func stageWIPAdvance(state State) State {
	active := append([]Active(nil), state.Contracts.Active...)
	for i := range active {
		if active[i].State == ids.ActiveStateTaken && active[i].TakenDay < state.Meta.DayIndex {
			active[i].State = ids.ActiveStateWIP
		}
	}
	state.Contracts.Active = active
	return state
}

// stageResolve resolves every WIP active contract, in ascending
// ActiveContractID order, settling immediately whenever the outcome does not
// require a player close (spec.md §4.3, §9 Open Question 1: auto-close also
// emits ReturnClosed right after ContractResolved).
func stageResolve(state State, r *rng.Rng) (State, []Event) {
	var wipIdx []int
	for i, a := range state.Contracts.Active {
		if a.State == ids.ActiveStateWIP {
			wipIdx = append(wipIdx, i)
		}
	}
	if len(wipIdx) == 0 {
		return state, nil
	}
	sort.Slice(wipIdx, func(i, j int) bool {
		return state.Contracts.Active[wipIdx[i]].ActiveContractID < state.Contracts.Active[wipIdx[j]].ActiveContractID
	})

	active := append([]Active(nil), state.Contracts.Active...)
	board := append([]Posted(nil), state.Contracts.Board...)
	archive := append([]Posted(nil), state.Contracts.Archive...)
	roster := append([]Hero(nil), state.Heroes.Roster...)
	returns := append([]ReturnPacket(nil), state.Contracts.Returns...)
	var events []Event

	for _, idx := range wipIdx {
		a := active[idx]

		boardIdx := findPostedIndex(board, a.BoardContractID)
		if boardIdx < 0 {
			continue // invariant-violating state; resolved by the invariant check, not here
		}
		heroIdx := findHeroIndex(roster, a.HeroID)

		var heroPtr *Hero
		if heroIdx >= 0 {
			heroPtr = &roster[heroIdx]
		}
		decision := Resolve(heroPtr, board[boardIdx].Difficulty, r)

		active[idx].State = ids.ActiveStateResolved
		// A Posted awaiting a manual close stays locked on the board until
		// CloseReturn moves it to the archive (spec.md §3); only the
		// auto-close branch below drops it off the board outright, so the
		// lock is cleared there, never here.

		returns = append(returns, ReturnPacket{
			ActiveContractID:    a.ActiveContractID,
			Outcome:             decision.Outcome,
			TrophiesCount:       decision.TrophiesCount,
			RequiresPlayerClose: decision.RequiresPlayerClose,
			Closed:              !decision.RequiresPlayerClose,
		})

		events = append(events, Event{
			Kind:             KindContractResolved,
			ActiveContractID: a.ActiveContractID,
			BoardContractID:  a.BoardContractID,
			HeroID:           a.HeroID,
			Outcome:          decision.Outcome,
			TrophiesCount:    decision.TrophiesCount,
		})

		if heroIdx >= 0 {
			roster[heroIdx].Status = heroStatusFor(decision.Outcome)
		}

		if !decision.RequiresPlayerClose {
			posted := board[boardIdx]
			applySettlement(&state.Economy, posted, decision)
			archive = append(archive, posted)
			board = removePostedAt(board, boardIdx)

			events = append(events, Event{
				Kind:             KindReturnClosed,
				ActiveContractID: a.ActiveContractID,
			})
		}
	}

	state.Contracts.Active = active
	state.Contracts.Board = board
	state.Contracts.Archive = archive
	state.Heroes.Roster = roster
	state.Contracts.Returns = returns
	return state, events
}

func heroStatusFor(outcome ids.Outcome) ids.HeroStatus {
	switch outcome {
	case ids.OutcomeDeath:
		return ids.HeroStatusDead
	case ids.OutcomeMissing:
		return ids.HeroStatusMissing
	default:
		return ids.HeroStatusIdle
	}
}

// applySettlement credits the guild's economy per the posted contract's
// salvage policy. Settlement only ever adds — it never has to defend a
// negative balance against invariant 5 (spec.md §9 Open Question: settlement
// math). Whether the fee is paid depends only on the outcome category, never
// on the trophy draw, so two PARTIAL returns on the same posted contract
// settle identically regardless of how many trophies either one happened to
// roll.
func applySettlement(economy *Economy, posted Posted, decision Decision) {
	if decision.Outcome == ids.OutcomeFail || decision.Outcome.IsDeathLike() {
		return
	}
	switch posted.Salvage {
	case ids.SalvagePolicyHero:
		economy.TrophiesStock += decision.TrophiesCount / 2
		economy.MoneyCopper += posted.Fee * 2
	default: // ids.SalvagePolicyGuild and any unset value
		economy.TrophiesStock += decision.TrophiesCount
		economy.MoneyCopper += posted.Fee
	}
}

func findPostedIndex(board []Posted, id ids.ContractID) int {
	for i, p := range board {
		if p.BoardContractID == id {
			return i
		}
	}
	return -1
}

func findHeroIndex(roster []Hero, id ids.HeroID) int {
	for i, h := range roster {
		if h.ID == id {
			return i
		}
	}
	return -1
}

func removePostedAt(board []Posted, idx int) []Posted {
	out := make([]Posted, 0, len(board)-1)
	out = append(out, board[:idx]...)
	out = append(out, board[idx+1:]...)
	return out
}
