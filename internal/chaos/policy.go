// Package chaos is the runtime's seeded decision engine. Every probabilistic
// misbehavior in the language funnels through one Policy so that a fixed seed
// replays the exact same sequence of decisions.
package chaos

import (
	crand "crypto/rand"
	"encoding/binary"
	"math/rand"

	"github.com/uselesslang/useless/internal/ast"
	"github.com/uselesslang/useless/internal/config"
)

// BooleanDisguise is the outcome of the weighted post-scramble draw applied
// to Boolean-valued results.
type BooleanDisguise int

const (
	BooleanAsIs BooleanDisguise = iota
	BooleanFlipped
	BooleanAsText
	BooleanAsNumber
)

// Settlement is the per-tick draw outcome for a pending chaos promise.
type Settlement int

const (
	SettleStay Settlement = iota
	SettleResolve
	SettleReject
	SettleAbandon
)

// Policy owns the RNG state. It is not safe for concurrent use; the runtime's
// single-threaded cooperative scheduling is the locking discipline.
type Policy struct {
	rng       *rand.Rand
	seed      int64
	suspended int  // statement-scoped directive nesting depth
	disabled  bool // disable_all directive or calm mode
}

// NewPolicy builds a policy with an explicit seed for reproducible runs.
func NewPolicy(seed int64) *Policy {
	return &Policy{rng: rand.New(rand.NewSource(seed)), seed: seed}
}

// NewEntropyPolicy seeds from the OS entropy source.
func NewEntropyPolicy() *Policy {
	return NewPolicy(EntropySeed())
}

// EntropySeed draws a seed from crypto/rand.
func EntropySeed() int64 {
	var buf [8]byte
	if _, err := crand.Read(buf[:]); err != nil {
		// crypto/rand failing is a platform defect; fail loudly.
		panic("chaos: entropy source unavailable: " + err.Error())
	}
	return int64(binary.LittleEndian.Uint64(buf[:]))
}

// Seed returns the seed this policy was built with.
func (p *Policy) Seed() int64 { return p.seed }

// Suspend pauses chaos for a directive-annotated statement. Calls nest.
func (p *Policy) Suspend() { p.suspended++ }

// Resume undoes one Suspend.
func (p *Policy) Resume() {
	if p.suspended > 0 {
		p.suspended--
	}
}

// DisableAll switches chaos off for the rest of the run.
func (p *Policy) DisableAll() { p.disabled = true }

// Enabled reports whether chaos decisions currently apply.
func (p *Policy) Enabled() bool { return !p.disabled && p.suspended == 0 }

// roll draws once and reports whether an event with probability prob fired.
// A suspended policy never fires and never advances the RNG, so calm
// stretches don't perturb the decision sequence of the chaotic ones.
func (p *Policy) roll(prob float64) bool {
	if !p.Enabled() {
		return false
	}
	return p.rng.Float64() < prob
}

// RandomBool is an independent fair coin.
func (p *Policy) RandomBool() bool { return p.rng.Intn(2) == 1 }

// TeapotOnStart fires once per program, at the engine's discretion point.
func (p *Policy) TeapotOnStart() bool { return p.roll(config.TeapotOnStart) }

// ScrambleResult decides whether an expression result is replaced wholesale
// with a random Boolean.
func (p *Policy) ScrambleResult() bool { return p.roll(config.ExpressionScramble) }

// DisguiseBoolean draws the final representation of a Boolean-valued result.
// Independent from ScrambleResult: the two rules compose as sequential draws.
func (p *Policy) DisguiseBoolean() BooleanDisguise {
	if !p.Enabled() {
		return BooleanAsIs
	}
	x := p.rng.Float64()
	switch {
	case x < config.BooleanFlip:
		return BooleanFlipped
	case x < config.BooleanFlip+config.BooleanStringify:
		return BooleanAsText
	case x < config.BooleanFlip+config.BooleanStringify+config.BooleanNumify:
		return BooleanAsNumber
	default:
		return BooleanAsIs
	}
}

// NumberConfetti decides whether a number literal turns into party emoji.
func (p *Policy) NumberConfetti() bool { return p.roll(config.NumberConfetti) }

// AlternateOp returns the operation actually performed in place of the
// requested arithmetic op. With chaos enabled the honest op is never
// returned: add subtracts (residually multiplies), multiply divides
// (residually adds).
func (p *Policy) AlternateOp(op ast.BinaryOp) ast.BinaryOp {
	if !p.Enabled() {
		return op
	}
	switch op {
	case ast.OpAdd:
		if p.rng.Float64() < config.AddBecomesMultiply {
			return ast.OpMultiply
		}
		return ast.OpSubtract
	case ast.OpMultiply:
		if p.rng.Float64() < config.MultiplyBecomesAdd {
			return ast.OpAdd
		}
		return ast.OpDivide
	default:
		return op
	}
}

// VariableOnVacation decides whether a resolvable identifier errors anyway.
func (p *Policy) VariableOnVacation() bool { return p.roll(config.IdentifierVacation) }

// LoseBinding decides whether a let drops its fresh binding.
func (p *Policy) LoseBinding() bool { return p.roll(config.LetLosesBinding) }

// BrowserMishap decides whether a print diverts to the error channel.
func (p *Policy) BrowserMishap() bool { return p.roll(config.PrintBrowserMishap) }

// RescueTypeMismatch decides whether an incompatible comparison yields a
// random Boolean instead of surfacing TypeMismatch.
func (p *Policy) RescueTypeMismatch() bool { return p.roll(config.TypeMismatchRescue) }

// PickIndex maps an in-range requested index onto the index actually read.
// Callers must have bounds-checked requested already: out-of-range is a
// deterministic error that chaos never overrides.
func (p *Policy) PickIndex(requested, length int) int {
	if length <= 0 {
		return requested
	}
	if p.roll(config.IndexWanderlust) {
		return p.rng.Intn(length)
	}
	return requested
}

// PickField maps the requested key onto the key actually read. keys must be
// the record's keys in insertion order and non-empty.
func (p *Policy) PickField(requested string, keys []string) string {
	if len(keys) == 0 {
		return requested
	}
	if p.roll(config.FieldWanderlust) {
		return keys[p.rng.Intn(len(keys))]
	}
	return requested
}

// SettlePending is the per-tick draw for a pending chaos promise. With chaos
// disabled promises settle immediately, so calm programs never wait.
func (p *Policy) SettlePending() Settlement {
	if !p.Enabled() {
		return SettleResolve
	}
	x := p.rng.Float64()
	switch {
	case x < config.PromiseResolve:
		return SettleResolve
	case x < config.PromiseResolve+config.PromiseReject:
		return SettleReject
	case x < config.PromiseResolve+config.PromiseReject+config.PromiseAbandon:
		return SettleAbandon
	default:
		return SettleStay
	}
}

// MindChangeEligible is drawn once at promise creation.
func (p *Policy) MindChangeEligible() bool { return p.roll(config.MindChangeEligible) }

// MindChangeFlip is drawn each tick after an eligible promise first settles.
func (p *Policy) MindChangeFlip() bool { return p.roll(config.MindChangeFlip) }
