package engine

import "github.com/asketmc/guilds-of-bash/ids"

// CommandKind is the closed tag selecting which fields on a Command apply.
type CommandKind string

const (
	CommandAdvanceDay   CommandKind = "ADVANCE_DAY"
	CommandPostContract CommandKind = "POST_CONTRACT"
	CommandCloseReturn  CommandKind = "CLOSE_RETURN"
	CommandSellTrophies CommandKind = "SELL_TROPHIES"
)

// Command is the single input type accepted by Step. Exactly one of the
// per-kind constructors below should be used to build one.
type Command struct {
	ID   ids.CommandID
	Kind CommandKind

	// PostContract
	InboxID ids.DraftID
	Fee     int64
	Salvage ids.SalvagePolicy

	// CloseReturn
	ActiveContractID ids.ActiveID

	// SellTrophies
	Amount int64
}

// NewAdvanceDay builds an AdvanceDay command.
func NewAdvanceDay(id ids.CommandID) Command {
	return Command{ID: id, Kind: CommandAdvanceDay}
}

// NewPostContract builds a PostContract command.
func NewPostContract(id ids.CommandID, inboxID ids.DraftID, fee int64, salvage ids.SalvagePolicy) Command {
	return Command{ID: id, Kind: CommandPostContract, InboxID: inboxID, Fee: fee, Salvage: salvage}
}

// NewCloseReturn builds a CloseReturn command.
func NewCloseReturn(id ids.CommandID, activeContractID ids.ActiveID) Command {
	return Command{ID: id, Kind: CommandCloseReturn, ActiveContractID: activeContractID}
}

// NewSellTrophies builds a SellTrophies command. amount=0 means sell the
// entire stock (spec.md §4.4).
func NewSellTrophies(id ids.CommandID, amount int64) Command {
	return Command{ID: id, Kind: CommandSellTrophies, Amount: amount}
}
