package qsim

import (
	"fmt"
	"math/rand/v2"

	"github.com/theapemachine/errnie"
)

// normStale marks the running norm as unknown; it is recomputed before
// it is next trusted.
const normStale = -1.0

/*
CPUEngine is the dense state-vector register simulator. It owns exactly
one amplitude vector of length 2^qubitCount, addressed by basis-state
index, and mutates it in place under every gate, arithmetic and
measurement operation. Two engines never share amplitude storage;
composition transfers ownership explicitly.

An engine is not safe for concurrent use: each public operation is a
self-contained blocking transaction over the whole vector, and callers
must not issue overlapping operations against the same instance.
*/
type CPUEngine struct {
	qubitCount  int
	maxQPower   uint64
	stateVec    []Complex
	runningNorm float64
	doNormalize bool
	rng         *rand.Rand
	disp        *dispatcher
	config      *Config
	metrics     *Metrics
}

type engineOptions struct {
	rng         *rand.Rand
	phaseFac    Complex
	partialInit bool
	doNormalize bool
	config      *Config
	inputState  []Complex
}

// EngineOption configures an engine at construction.
type EngineOption func(*engineOptions)

// WithRandomSource supplies the uniform source used for measurement
// collapse. The source may be shared across engine instances; its
// lifetime is managed by the caller.
func WithRandomSource(rng *rand.Rand) EngineOption {
	return func(o *engineOptions) { o.rng = rng }
}

// WithPhaseFactor seeds the initial permutation with the given global
// phase instead of amplitude 1.
func WithPhaseFactor(phase Complex) EngineOption {
	return func(o *engineOptions) { o.phaseFac = phase }
}

// WithPartialInit leaves the amplitude vector all-zero for a
// caller-driven fill via SetQuantumState or direct writes.
func WithPartialInit() EngineOption {
	return func(o *engineOptions) { o.partialInit = true }
}

// WithNormalization toggles automatic renormalization on drift.
func WithNormalization(enabled bool) EngineOption {
	return func(o *engineOptions) { o.doNormalize = enabled }
}

// WithConfig overrides the default engine configuration.
func WithConfig(cfg *Config) EngineOption {
	return func(o *engineOptions) { o.config = cfg }
}

// WithInitialState seeds the engine with a caller-supplied amplitude
// vector, which must have length 2^qubitCount. The vector is copied.
func WithInitialState(state []Complex) EngineOption {
	return func(o *engineOptions) { o.inputState = state }
}

/*
New constructs a dense engine of qubitCount qubits holding the basis
permutation initState. The amplitude vector is the only allocation that
can fail for an externally-triggerable reason (register too large), so
that case surfaces as an error; every other misuse is a caller contract
violation and panics.
*/
func New(qubitCount int, initState uint64, opts ...EngineOption) (*CPUEngine, error) {
	if qubitCount < 1 {
		panic(fmt.Sprintf("qsim: qubit count %d must be positive", qubitCount))
	}

	o := &engineOptions{
		phaseFac:    complex(1, 0),
		doNormalize: true,
	}
	for _, opt := range opts {
		opt(o)
	}
	if o.config == nil {
		o.config = NewConfig()
	}
	if o.rng == nil {
		o.rng = rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64()))
	}

	if qubitCount > o.config.MaxQubits {
		return nil, fmt.Errorf("qsim: %d-qubit register exceeds the %d-qubit capacity limit", qubitCount, o.config.MaxQubits)
	}

	e := &CPUEngine{
		qubitCount:  qubitCount,
		maxQPower:   uint64(1) << uint(qubitCount),
		runningNorm: 1,
		doNormalize: o.doNormalize,
		rng:         o.rng,
		disp:        newDispatcher(o.config.Workers, o.config.ParallelThreshold),
		config:      o.config,
		metrics:     NewMetrics(),
	}

	if initState >= e.maxQPower {
		panic(fmt.Sprintf("qsim: initial permutation %d out of range for %d qubits", initState, qubitCount))
	}

	e.stateVec = make([]Complex, e.maxQPower)
	switch {
	case o.inputState != nil:
		if uint64(len(o.inputState)) != e.maxQPower {
			panic(fmt.Sprintf("qsim: input state length %d does not match 2^%d", len(o.inputState), qubitCount))
		}
		copy(e.stateVec, o.inputState)
		e.runningNorm = normStale
	case o.partialInit:
		e.runningNorm = 0
	default:
		e.stateVec[initState] = o.phaseFac
	}

	errnie.Info("qsim engine - %d qubits, permutation %d", qubitCount, initState)
	return e, nil
}

// QubitCount returns the register width in qubits.
func (e *CPUEngine) QubitCount() int { return e.qubitCount }

// MaxQPower returns the amplitude vector length, 2^QubitCount.
func (e *CPUEngine) MaxQPower() uint64 { return e.maxQPower }

// GetState exposes the live amplitude vector for direct inspection.
// The slice is owned by the engine; callers must not mutate it while
// issuing operations.
func (e *CPUEngine) GetState() []Complex { return e.stateVec }

// Metrics returns the engine's pass counters.
func (e *CPUEngine) Metrics() *Metrics { return e.metrics }

// EnableNormalize toggles automatic renormalization on drift.
func (e *CPUEngine) EnableNormalize(doN bool) { e.doNormalize = doN }

// GetNorm returns the running squared-norm estimate, recomputing it
// first when update is set.
func (e *CPUEngine) GetNorm(update bool) float64 {
	if update || e.runningNorm == normStale {
		e.UpdateRunningNorm()
	}
	return e.runningNorm
}

// SetNorm overrides the running norm, for callers that already know it.
func (e *CPUEngine) SetNorm(n float64) { e.runningNorm = n }

// SetQuantumState replaces the amplitude vector with a copy of
// inputState, which must have the engine's full length.
func (e *CPUEngine) SetQuantumState(inputState []Complex) {
	if uint64(len(inputState)) != e.maxQPower {
		panic(fmt.Sprintf("qsim: input state length %d does not match 2^%d", len(inputState), e.qubitCount))
	}
	copy(e.stateVec, inputState)
	e.runningNorm = normStale
}

// SetPermutation collapses the register to a single basis state with
// amplitude 1.
func (e *CPUEngine) SetPermutation(perm uint64) {
	if perm >= e.maxQPower {
		panic(fmt.Sprintf("qsim: permutation %d out of range for %d qubits", perm, e.qubitCount))
	}
	clear(e.stateVec)
	e.stateVec[perm] = complex(1, 0)
	e.runningNorm = 1
}

// CopyState makes this engine an exact copy of orig's register,
// reallocating if the widths differ. Both engines remain independently
// usable afterwards; this is the nonphysical register clone the dense
// representation makes possible.
func (e *CPUEngine) CopyState(orig Register) {
	src, ok := orig.(*CPUEngine)
	if !ok {
		panic("qsim: CopyState requires a dense CPU engine source")
	}
	if e.qubitCount != src.qubitCount {
		e.qubitCount = src.qubitCount
		e.maxQPower = src.maxQPower
		e.stateVec = make([]Complex, src.maxQPower)
	}
	copy(e.stateVec, src.stateVec)
	e.runningNorm = src.runningNorm
}

// Clone returns an independent engine holding a copy of this register.
func (e *CPUEngine) Clone() *CPUEngine {
	n := &CPUEngine{
		qubitCount:  e.qubitCount,
		maxQPower:   e.maxQPower,
		stateVec:    make([]Complex, e.maxQPower),
		runningNorm: e.runningNorm,
		doNormalize: e.doNormalize,
		rng:         e.rng,
		disp:        e.disp,
		config:      e.config,
		metrics:     NewMetrics(),
	}
	copy(n.stateVec, e.stateVec)
	return n
}

// resetStateVec installs a freshly permuted vector produced by a
// re-index pass, discarding the old storage.
func (e *CPUEngine) resetStateVec(nStateVec []Complex) {
	e.stateVec = nStateVec
}

func (e *CPUEngine) checkQubit(q int) {
	if q < 0 || q >= e.qubitCount {
		panic(fmt.Sprintf("qsim: qubit index %d out of range for %d-qubit register", q, e.qubitCount))
	}
}

func (e *CPUEngine) checkRange(start, length int) {
	if length < 1 || start < 0 || start+length > e.qubitCount {
		panic(fmt.Sprintf("qsim: qubit range [%d, %d) out of range for %d-qubit register", start, start+length, e.qubitCount))
	}
}

func checkDistinct(qubits ...int) {
	for i := 0; i < len(qubits); i++ {
		for j := i + 1; j < len(qubits); j++ {
			if qubits[i] == qubits[j] {
				panic(fmt.Sprintf("qsim: qubit %d used twice in one operation", qubits[i]))
			}
		}
	}
}
