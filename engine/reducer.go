package engine

import (
	"github.com/pkg/errors"

	"github.com/asketmc/guilds-of-bash/ids"
	"github.com/asketmc/guilds-of-bash/rng"
)

// copperPerTrophy is the flat conversion rate SellTrophies uses to turn
// banked trophies into money.
const copperPerTrophy = 5

// Step is the single entry point of the simulation core: it takes the
// current state, one command, and an rng positioned wherever the caller left
// it, and returns the next state plus the ordered events the command
// produced (spec.md §4.1). Given the same three inputs it always returns the
// same outputs, including the rng's draw count — Step never draws when a
// command is rejected outright.
//
// Rejected commands return the input state unchanged alongside a single
// CommandRejected event; they never reach the invariant verifier, since
// state never moved.
func Step(state State, cmd Command, r *rng.Rng) (State, []Event) {
	next, events, reason := dispatch(state, cmd, r)
	if reason != "" {
		return state, []Event{{Seq: 1, CmdID: cmd.ID, Kind: KindCommandRejected, Reason: reason}}
	}

	next.Meta.Revision++
	events = assignSequence(events, cmd.ID)

	if violations := VerifyInvariants(next); len(violations) > 0 {
		for _, v := range violations {
			// Wrap with a stack trace so whoever reads the description can
			// see where in the reducer the violating step originated; the
			// stack never escapes into control flow, only into the text.
			wrapped := errors.Wrap(errors.New(v.Description), "invariant violated")
			events = append(events, Event{
				Seq:         len(events) + 1,
				CmdID:       cmd.ID,
				Kind:        KindInvariantViolated,
				Description: wrapped.Error(),
			})
		}
	}

	return next, events
}

// dispatch routes cmd to its handler. An empty reason means the command was
// accepted; next and events are only meaningful in that case.
func dispatch(state State, cmd Command, r *rng.Rng) (State, []Event, ids.RejectReason) {
	switch cmd.Kind {
	case CommandAdvanceDay:
		return handleAdvanceDay(state, r)
	case CommandPostContract:
		return handlePostContract(state, cmd)
	case CommandCloseReturn:
		return handleCloseReturn(state, cmd)
	case CommandSellTrophies:
		return handleSellTrophies(state, cmd)
	default:
		return state, nil, ids.RejectInvalidState
	}
}

// handleAdvanceDay runs the full day pipeline in the fixed order spec.md §4.3
// pins: DayStarted, then day-index increment, then inbox-gen, hero-arrivals,
// take, WIP-advance, resolve (with any auto-close folded in).
func handleAdvanceDay(state State, r *rng.Rng) (State, []Event, ids.RejectReason) {
	events := []Event{{Kind: KindDayStarted}}

	state.Meta.DayIndex++

	var stageEvents []Event
	state, stageEvents = stageInboxGen(state, r)
	events = append(events, stageEvents...)

	state, stageEvents = stageHeroArrivals(state, r)
	events = append(events, stageEvents...)

	state, stageEvents = stageTake(state)
	events = append(events, stageEvents...)

	state = stageWIPAdvance(state)

	state, stageEvents = stageResolve(state, r)
	events = append(events, stageEvents...)

	events = append(events, Event{Kind: KindDayEnded})

	return state, events, ""
}

// handlePostContract moves one inbox draft onto the board at the given fee
// and salvage policy (spec.md §4.4).
func handlePostContract(state State, cmd Command) (State, []Event, ids.RejectReason) {
	if !cmd.Salvage.Valid() {
		return state, nil, ids.RejectPreconditionFailed
	}
	if cmd.Fee < 0 {
		return state, nil, ids.RejectInvalidState
	}

	idx := -1
	for i, d := range state.Contracts.Inbox {
		if d.ID == cmd.InboxID {
			idx = i
			break
		}
	}
	if idx < 0 {
		return state, nil, ids.RejectNotFound
	}

	draft := state.Contracts.Inbox[idx]
	inbox := make([]Draft, 0, len(state.Contracts.Inbox)-1)
	inbox = append(inbox, state.Contracts.Inbox[:idx]...)
	inbox = append(inbox, state.Contracts.Inbox[idx+1:]...)
	state.Contracts.Inbox = inbox

	boardID := ids.ContractID(draft.ID)
	posted := Posted{
		BoardContractID: boardID,
		DraftID:         draft.ID,
		Difficulty:      draft.Difficulty,
		Fee:             cmd.Fee,
		Salvage:         cmd.Salvage,
		PostedDay:       state.Meta.DayIndex,
	}
	state.Contracts.Board = append(append([]Posted(nil), state.Contracts.Board...), posted)

	return state, []Event{{Kind: KindContractPosted, BoardContractID: boardID, DraftID: draft.ID}}, ""
}

// handleCloseReturn settles a return that required a manual close
// (spec.md §4.4). Auto-closed returns are never valid targets here: by the
// time a return doesn't require a player close, stageResolve has already
// closed it in the same AdvanceDay.
func handleCloseReturn(state State, cmd Command) (State, []Event, ids.RejectReason) {
	retIdx := -1
	for i, ret := range state.Contracts.Returns {
		if ret.ActiveContractID == cmd.ActiveContractID {
			retIdx = i
			break
		}
	}
	if retIdx < 0 {
		return state, nil, ids.RejectNotFound
	}
	ret := state.Contracts.Returns[retIdx]
	if ret.Closed {
		return state, nil, ids.RejectNotFound
	}
	if !ret.RequiresPlayerClose {
		return state, nil, ids.RejectInvalidState
	}

	activeIdx := -1
	for i, a := range state.Contracts.Active {
		if a.ActiveContractID == cmd.ActiveContractID {
			activeIdx = i
			break
		}
	}
	if activeIdx < 0 {
		return state, nil, ids.RejectNotFound
	}
	boardIdx := findPostedIndex(state.Contracts.Board, state.Contracts.Active[activeIdx].BoardContractID)
	if boardIdx < 0 {
		return state, nil, ids.RejectInvalidState
	}

	posted := state.Contracts.Board[boardIdx]
	applySettlement(&state.Economy, posted, Decision{
		Outcome:       ret.Outcome,
		TrophiesCount: ret.TrophiesCount,
	})

	state.Contracts.Board = removePostedAt(state.Contracts.Board, boardIdx)
	state.Contracts.Archive = append(append([]Posted(nil), state.Contracts.Archive...), posted)

	returns := append([]ReturnPacket(nil), state.Contracts.Returns...)
	returns[retIdx].Closed = true
	state.Contracts.Returns = returns

	return state, []Event{{Kind: KindReturnClosed, ActiveContractID: cmd.ActiveContractID}}, ""
}

// handleSellTrophies converts banked trophies into money (spec.md §4.4,
// Open Question 2: an amount of 0 always emits TrophiesSold{amount:0} rather
// than being silently dropped, matching SPEC_FULL.md's resolution).
func handleSellTrophies(state State, cmd Command) (State, []Event, ids.RejectReason) {
	if cmd.Amount < 0 {
		return state, nil, ids.RejectInvalidState
	}

	amount := cmd.Amount
	if amount == 0 {
		amount = int64(state.Economy.TrophiesStock)
	} else if amount > int64(state.Economy.TrophiesStock) {
		return state, nil, ids.RejectInvalidState
	}

	state.Economy.TrophiesStock -= int32(amount)
	state.Economy.MoneyCopper += amount * copperPerTrophy

	return state, []Event{{Kind: KindTrophiesSold, Amount: cmd.Amount}}, ""
}
