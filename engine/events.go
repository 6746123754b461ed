package engine

import "github.com/asketmc/guilds-of-bash/ids"

// Kind is a closed tag identifying which payload fields on an Event are
// meaningful. The core favours this single-struct-plus-tag shape over an
// open interface hierarchy (spec.md §9 "Deep polymorphism on events/
// commands") so adding a variant is a one-site change: add the const, add
// the fields it needs, extend the switch in any consumer.
type Kind string

const (
	KindDayStarted        Kind = "DAY_STARTED"
	KindInboxGenerated    Kind = "INBOX_GENERATED"
	KindHeroesArrived     Kind = "HEROES_ARRIVED"
	KindContractPosted    Kind = "CONTRACT_POSTED"
	KindContractTaken     Kind = "CONTRACT_TAKEN"
	KindContractResolved  Kind = "CONTRACT_RESOLVED"
	KindReturnClosed      Kind = "RETURN_CLOSED"
	KindTrophiesSold      Kind = "TROPHIES_SOLD"
	KindDayEnded          Kind = "DAY_ENDED"
	KindCommandRejected   Kind = "COMMAND_REJECTED"
	KindInvariantViolated Kind = "INVARIANT_VIOLATED"
)

// Event is one entry in the ordered list a Step call returns. Seq and CmdID
// are assigned by the reducer as a final pass over every stage's output
// (spec.md §9 "Pipeline control flow"), never by the stage that produced it.
type Event struct {
	Seq   int
	CmdID ids.CommandID
	Kind  Kind

	// CommandRejected
	Reason ids.RejectReason

	// InvariantViolated
	Description string

	// InboxGenerated
	DraftsGenerated int

	// HeroesArrived
	ArrivedHeroIDs []ids.HeroID

	// ContractPosted
	BoardContractID ids.ContractID
	DraftID         ids.DraftID

	// ContractTaken / ContractResolved / ReturnClosed
	ActiveContractID ids.ActiveID
	HeroID           ids.HeroID

	// ContractResolved
	Outcome       ids.Outcome
	TrophiesCount int32

	// TrophiesSold
	Amount int64
}

// assignSequence numbers events 1..N in production order and stamps every
// one with cmdID, per spec.md §4.4 step 3.
func assignSequence(events []Event, cmdID ids.CommandID) []Event {
	for i := range events {
		events[i].Seq = i + 1
		events[i].CmdID = cmdID
	}
	return events
}
