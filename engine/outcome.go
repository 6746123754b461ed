package engine

import (
	lru "github.com/hashicorp/golang-lru/v2"

	"github.com/asketmc/guilds-of-bash/ids"
	"github.com/asketmc/guilds-of-bash/rng"
)

// Decision is the result of resolving one active contract, per spec.md §4.2.
type Decision struct {
	Outcome             ids.Outcome
	TrophiesCount       int32
	RequiresPlayerClose bool
}

// weights are the categorical bucket weights the resolver draws against, in
// the fixed order [SUCCESS, PARTIAL, FAIL, DEATH_LIKE]. All four are always
// strictly positive so that, swept across enough seeds, every branch is
// reachable (spec.md §8 coverage property).
type weights struct {
	success, partial, fail, deathLike int32
	total                             int32
}

// weightCache memoizes the pure skillDiff -> weights mapping. This never
// touches the RNG — caching is invisible to the draw sequence the resolver
// produces, only to how fast the weights are computed (spec.md §4.2's draw
// order contract is unaffected by memoization).
var weightCache, _ = lru.New[int32, weights](256)

func clampInt32(v, min, max int32) int32 {
	if v < min {
		return min
	}
	if v > max {
		return max
	}
	return v
}

func weightsFor(skillDiff int32) weights {
	advantage := clampInt32(skillDiff, -50, 50)
	if cached, ok := weightCache.Get(advantage); ok {
		return cached
	}

	success := clampInt32(50+advantage, 5, 90)
	deathLike := clampInt32(10-advantage/2, 2, 40)
	remaining := 100 - success - deathLike
	if remaining < 10 {
		remaining = 10
	}
	partial := remaining * 2 / 3
	fail := remaining - partial
	if fail < 1 {
		fail = 1
	}

	w := weights{
		success:   success,
		partial:   partial,
		fail:      fail,
		deathLike: deathLike,
		total:     success + partial + fail + deathLike,
	}
	weightCache.Add(advantage, w)
	return w
}

// maxTrophiesFor bounds the trophy roll by difficulty: harder contracts pay
// out more on success.
func maxTrophiesFor(difficulty int32) int32 {
	return clampInt32(3+difficulty/5, 3, 10)
}

// bonusThreshold gates the end-of-branch bonus trophy draw: only a
// comfortably favourable matchup earns it.
const bonusThreshold = 20

// Resolve maps (hero, difficulty, rng) to a Decision following the fixed
// draw order pinned by spec.md §4.2:
//
//  1. one categorical draw picks the outcome bucket
//  2. on SUCCESS/PARTIAL, one draw picks the trophy count
//  3. on a death-like bucket, one more draw picks DEATH vs MISSING
//  4. a gated bonus trophy draw, only on a lopsided SUCCESS, always last
//
// The decision never reads SalvagePolicy — salvage only affects settlement,
// never branch selection (spec.md §4.2).
func Resolve(hero *Hero, difficulty int32, r *rng.Rng) Decision {
	skill := int32(0)
	if hero != nil {
		skill = hero.Skill
	}
	w := weightsFor(skill - difficulty)

	roll := r.NextInt(w.total)
	var outcome ids.Outcome
	switch {
	case roll < w.success:
		outcome = ids.OutcomeSuccess
	case roll < w.success+w.partial:
		outcome = ids.OutcomePartial
	case roll < w.success+w.partial+w.fail:
		outcome = ids.OutcomeFail
	default:
		outcome = "" // resolved below to DEATH or MISSING
	}

	var trophies int32
	switch outcome {
	case ids.OutcomeSuccess:
		trophies = 1 + r.NextInt(maxTrophiesFor(difficulty))
		if skill-difficulty >= bonusThreshold {
			trophies += r.NextInt(3)
		}
	case ids.OutcomePartial:
		trophies = r.NextInt(maxTrophiesFor(difficulty))
	case ids.OutcomeFail:
		trophies = 0
	default:
		if r.NextBoolean() {
			outcome = ids.OutcomeDeath
		} else {
			outcome = ids.OutcomeMissing
		}
		trophies = 0
	}

	return Decision{
		Outcome:             outcome,
		TrophiesCount:       trophies,
		RequiresPlayerClose: outcome.RequiresPlayerClose(),
	}
}
