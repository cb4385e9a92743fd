package config

const SourceFileExt = ".upl"

// SourceFileExtensions are all recognized source file extensions
var SourceFileExtensions = []string{".upl", ".useless"}

// ExitFuncName is the one builtin dispatched by call name; the other
// operations lex as dedicated keyword tokens.
const ExitFuncName = "exit"

// Directive names with behavioral effect. Any other directive name is
// recorded by the evaluator and otherwise inert.
const (
	DirectiveDisableUseless = "disable_useless"
	DirectiveDisableAll     = "disable_all_useless_shit"
)

// Chaos probability table. These values are the language contract: they are
// fixed at compile time and tunable only through the RNG seed.
const (
	// TeapotOnStart is drawn once when a program begins.
	TeapotOnStart = 0.10

	// ExpressionScramble replaces any freshly evaluated expression result
	// with an independently random Boolean.
	ExpressionScramble = 0.25

	// Boolean disguise: one weighted draw over four outcomes, applied to any
	// Boolean-valued result after the scramble step. Sums to 1.
	BooleanFlip      = 0.30
	BooleanStringify = 0.20
	BooleanNumify    = 0.20
	BooleanKeep      = 0.30

	// NumberConfetti turns a number literal into party emoji.
	NumberConfetti = 0.10

	// NumberConfettiMaxRepeat caps the emoji repetition so a large literal
	// cannot overflow the int conversion or allocate unbounded text.
	NumberConfettiMaxRepeat = 1000

	// Arithmetic substitution. add's primary misbehavior is subtraction with
	// a residual chance of multiplication; multiply divides with a residual
	// chance of addition.
	AddBecomesMultiply = 0.20
	MultiplyBecomesAdd = 0.20

	// IdentifierVacation sends a perfectly resolvable variable on vacation.
	IdentifierVacation = 0.15

	// LetLosesBinding drops a let-binding right after its initializer ran.
	LetLosesBinding = 0.20

	// PrintBrowserMishap diverts a print into the presenter's error channel.
	PrintBrowserMishap = 0.30

	// Container chaos: probability of substituting a random in-range index /
	// random existing field for the requested one.
	IndexWanderlust = 0.80
	FieldWanderlust = 0.80

	// TypeMismatchRescue turns an incompatible comparison into a random
	// Boolean instead of surfacing the error.
	TypeMismatchRescue = 0.25
)

// Promise scheduler contract values.
const (
	// Per-tick settlement draw for a pending chaos promise. The remainder
	// (PromiseStayPending) leaves it pending for another tick.
	PromiseResolve     = 0.50
	PromiseReject      = 0.10
	PromiseAbandon     = 0.10
	PromiseStayPending = 0.30

	// MindChangeEligible is drawn once at creation; MindChangeFlip is drawn
	// on every tick after an eligible promise first settles, until it flips.
	MindChangeEligible = 0.25
	MindChangeFlip     = 0.30

	// TickMillis is the virtual time one scheduler tick represents.
	TickMillis = 100

	// DefaultPromiseTimeoutMillis applies when promise(v) omits the timeout,
	// so the end-of-program drain always terminates.
	DefaultPromiseTimeoutMillis = 30000
)

// Exit codes for the process contract.
const (
	ExitOK      = 0
	ExitChaos   = 1 // uncaught non-fatal error: crashed by chaos
	ExitFatal   = 2 // uncaught fatal error: crashed by design
	ExitUsage   = 64
	ExitParse   = 65
	ExitNoInput = 66
)
