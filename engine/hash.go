package engine

import (
	"bytes"
	"encoding/binary"
	"encoding/hex"

	"golang.org/x/crypto/sha3"
)

// HashState returns the canonical 64-lowercase-hex-character digest of
// state. Two states compare equal by value iff their hashes match
// (spec.md §4.6). The encoding walks every field in the fixed order declared
// in §3, length-prefixing every variable-size collection so no ambiguity
// survives between, say, an empty trailing string and a missing one.
func HashState(state State) string {
	var buf bytes.Buffer
	encodeState(&buf, state)
	sum := sha3.Sum256(buf.Bytes())
	return hex.EncodeToString(sum[:])
}

func encodeState(buf *bytes.Buffer, s State) {
	encodeMeta(buf, s.Meta)
	encodeEconomy(buf, s.Economy)
	encodeGuild(buf, s.Guild)
	encodeRegion(buf, s.Region)
	encodeContracts(buf, s.Contracts)
	encodeHeroes(buf, s.Heroes)
}

func encodeMeta(buf *bytes.Buffer, m Meta) {
	putInt32(buf, m.SaveVersion)
	putUint32(buf, m.Seed)
	putInt32(buf, m.DayIndex)
	putInt64(buf, m.Revision)
	putInt64(buf, int64(m.IDs.NextContractID))
	putInt64(buf, int64(m.IDs.NextHeroID))
	putInt64(buf, int64(m.IDs.NextActiveContractID))
}

func encodeEconomy(buf *bytes.Buffer, e Economy) {
	putInt64(buf, e.MoneyCopper)
	putInt32(buf, e.TrophiesStock)
}

func encodeGuild(buf *bytes.Buffer, g Guild) {
	putInt32(buf, g.GuildRank)
	putInt32(buf, g.Reputation)
}

func encodeRegion(buf *bytes.Buffer, r Region) {
	putInt32(buf, r.Stability)
}

func encodeContracts(buf *bytes.Buffer, c Contracts) {
	putInt32(buf, int32(len(c.Inbox)))
	for _, d := range c.Inbox {
		encodeDraft(buf, d)
	}
	putInt32(buf, int32(len(c.Board)))
	for _, p := range c.Board {
		encodePosted(buf, p)
	}
	putInt32(buf, int32(len(c.Active)))
	for _, a := range c.Active {
		encodeActive(buf, a)
	}
	putInt32(buf, int32(len(c.Returns)))
	for _, ret := range c.Returns {
		encodeReturn(buf, ret)
	}
	putInt32(buf, int32(len(c.Archive)))
	for _, p := range c.Archive {
		encodePosted(buf, p)
	}
}

func encodeDraft(buf *bytes.Buffer, d Draft) {
	putInt64(buf, int64(d.ID))
	putInt32(buf, d.Difficulty)
	putString(buf, d.Flavor)
}

func encodePosted(buf *bytes.Buffer, p Posted) {
	putInt64(buf, int64(p.BoardContractID))
	putInt64(buf, int64(p.DraftID))
	putInt32(buf, p.Difficulty)
	putInt64(buf, p.Fee)
	putString(buf, string(p.Salvage))
	putInt32(buf, p.PostedDay)
	putBool(buf, p.LockedByActive.Present)
	putInt64(buf, int64(p.LockedByActive.Active))
}

func encodeActive(buf *bytes.Buffer, a Active) {
	putInt64(buf, int64(a.ActiveContractID))
	putInt64(buf, int64(a.BoardContractID))
	putInt64(buf, int64(a.HeroID))
	putInt32(buf, a.TakenDay)
	putString(buf, string(a.State))
}

func encodeReturn(buf *bytes.Buffer, r ReturnPacket) {
	putInt64(buf, int64(r.ActiveContractID))
	putString(buf, string(r.Outcome))
	putInt32(buf, r.TrophiesCount)
	putBool(buf, r.RequiresPlayerClose)
	putBool(buf, r.Closed)
}

func encodeHeroes(buf *bytes.Buffer, h Heroes) {
	putInt32(buf, int32(len(h.Roster)))
	for _, hero := range h.Roster {
		encodeHero(buf, hero)
	}
	putInt32(buf, int32(len(h.ArrivalsToday)))
	for _, id := range h.ArrivalsToday {
		putInt64(buf, int64(id))
	}
}

func encodeHero(buf *bytes.Buffer, h Hero) {
	putInt64(buf, int64(h.ID))
	putInt32(buf, h.Skill)
	putString(buf, string(h.Status))
}

func putInt32(buf *bytes.Buffer, v int32)   { _ = binary.Write(buf, binary.BigEndian, v) }
func putUint32(buf *bytes.Buffer, v uint32) { _ = binary.Write(buf, binary.BigEndian, v) }
func putInt64(buf *bytes.Buffer, v int64)   { _ = binary.Write(buf, binary.BigEndian, v) }

func putBool(buf *bytes.Buffer, v bool) {
	if v {
		buf.WriteByte(1)
	} else {
		buf.WriteByte(0)
	}
}

func putString(buf *bytes.Buffer, s string) {
	putInt32(buf, int32(len(s)))
	buf.WriteString(s)
}
