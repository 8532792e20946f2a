// Package results holds the benchmark records extracted from the native
// program's output and the derived metrics computed over them.
package results

// Strategy is a synchronization strategy name exactly as the native
// benchmark prints it.
type Strategy string

const (
	Sequential      Strategy = "SECUENCIAL"
	BusyWaitInside  Strategy = "BUSY-WAITING_DENTRO"
	BusyWaitOutside Strategy = "BUSY-WAITING_FUERA"
	Mutex           Strategy = "MUTEX"
)

const (
	// ReferencePi is the value the approximation error is measured against.
	ReferencePi = 3.141592653589793

	// DefaultThreads is the worker count the native benchmark is built with.
	DefaultThreads = 4

	// DefaultTermCount is the series length of the busy-waiting probe.
	DefaultTermCount = 10000
)

// Verdict is the static recommendation attached to a known strategy.
type Verdict int

const (
	VerdictUnknown Verdict = iota
	VerdictBaseline
	VerdictRecommended
	VerdictCaution
	VerdictAvoid
)

func (v Verdict) String() string {
	switch v {
	case VerdictBaseline:
		return "baseline"
	case VerdictRecommended:
		return "recommended"
	case VerdictCaution:
		return "caution"
	case VerdictAvoid:
		return "avoid"
	default:
		return "unknown"
	}
}

// KnownStrategies lists the strategies in the order the benchmark runs them.
var KnownStrategies = []Strategy{Sequential, BusyWaitInside, BusyWaitOutside, Mutex}

// Label returns a readable name for the strategy. Unknown names are
// returned as-is.
func (s Strategy) Label() string {
	switch s {
	case Sequential:
		return "Sequential"
	case BusyWaitInside:
		return "Busy-Waiting Inside"
	case BusyWaitOutside:
		return "Busy-Waiting Outside"
	case Mutex:
		return "Mutex"
	default:
		return string(s)
	}
}

// Verdict returns the recommendation level for the strategy.
func (s Strategy) Verdict() Verdict {
	switch s {
	case Sequential:
		return VerdictBaseline
	case Mutex:
		return VerdictRecommended
	case BusyWaitOutside:
		return VerdictCaution
	case BusyWaitInside:
		return VerdictAvoid
	default:
		return VerdictUnknown
	}
}
