package qsim

import (
	"fmt"
	"math"

	"github.com/theapemachine/errnie"
)

/*
Cohere absorbs toCopy's register into this engine as a tensor product.
The receiving engine keeps the low-order bit positions; the incoming
register is placed above them, and the returned index is the first
qubit position assigned to it (the receiver's previous width).

toCopy's amplitude vector is consumed: the operand is left empty and is
not independently usable afterwards. A failed capacity check leaves both
engines untouched; there is no other partial-failure mode.
*/
func (e *CPUEngine) Cohere(toCopy Register) (int, error) {
	src, ok := toCopy.(*CPUEngine)
	if !ok {
		panic("qsim: Cohere requires a dense CPU engine operand")
	}
	return e.cohere(src)
}

func (e *CPUEngine) cohere(src *CPUEngine) (int, error) {
	nQubits := e.qubitCount + src.qubitCount
	if nQubits > e.config.MaxQubits {
		return 0, fmt.Errorf("qsim: cohering to %d qubits exceeds the %d-qubit capacity limit", nQubits, e.config.MaxQubits)
	}

	e.prepareCompose()
	src.prepareCompose()

	start := e.qubitCount
	shift := uint(e.qubitCount)
	lowMask := e.maxQPower - 1
	nMaxQPower := uint64(1) << uint(nQubits)
	nStateVec := make([]Complex, nMaxQPower)
	ev, sv := e.stateVec, src.stateVec
	e.disp.run(nMaxQPower, func(i uint64) {
		nStateVec[i] = ev[i&lowMask] * sv[i>>shift]
	})

	e.qubitCount = nQubits
	e.maxQPower = nMaxQPower
	e.resetStateVec(nStateVec)
	e.runningNorm = 1
	src.release()

	e.metrics.add(&e.metrics.Compositions)
	errnie.Info("qsim cohere - %d qubits total, incoming register at %d", nQubits, start)
	return start, nil
}

/*
CohereAll absorbs every operand in one allocation pass and returns the
starting qubit index assigned to each, so a caller composing several
registers pays one full-vector rebuild instead of one per operand.
Operands are placed above the receiver in slice order.
*/
func (e *CPUEngine) CohereAll(toCopy []*CPUEngine) (map[*CPUEngine]int, error) {
	nQubits := e.qubitCount
	for _, src := range toCopy {
		nQubits += src.qubitCount
	}
	if nQubits > e.config.MaxQubits {
		return nil, fmt.Errorf("qsim: cohering to %d qubits exceeds the %d-qubit capacity limit", nQubits, e.config.MaxQubits)
	}

	e.prepareCompose()
	starts := make(map[*CPUEngine]int, len(toCopy))
	offset := e.qubitCount
	for _, src := range toCopy {
		src.prepareCompose()
		starts[src] = offset
		offset += src.qubitCount
	}

	lowMask := e.maxQPower - 1
	nMaxQPower := uint64(1) << uint(nQubits)
	nStateVec := make([]Complex, nMaxQPower)
	ev := e.stateVec
	baseShift := uint(e.qubitCount)
	e.disp.run(nMaxQPower, func(i uint64) {
		amp := ev[i&lowMask]
		shift := baseShift
		for _, src := range toCopy {
			amp *= src.stateVec[(i>>shift)&(src.maxQPower-1)]
			shift += uint(src.qubitCount)
		}
		nStateVec[i] = amp
	})

	e.qubitCount = nQubits
	e.maxQPower = nMaxQPower
	e.resetStateVec(nStateVec)
	e.runningNorm = 1
	for _, src := range toCopy {
		src.release()
	}

	e.metrics.add(&e.metrics.Compositions)
	errnie.Info("qsim cohere - %d registers merged into %d qubits", len(toCopy)+1, nQubits)
	return starts, nil
}

/*
Decohere splits the sub-register occupying [start, start+length) out
into dest, leaving this engine with the remaining qubits. The split is
exact only when the sub-register is unentangled with the remainder, so
the full vector factors as a tensor product along that bit partition;
for entangled partitions the result is undefined (the marginal
magnitudes are right, the phases are not), by design, since exact
partial-trace tracking is out of scope.

dest is reallocated to the split width; its previous state is discarded.
*/
func (e *CPUEngine) Decohere(start, length int, dest Register) {
	d, ok := dest.(*CPUEngine)
	if !ok {
		panic("qsim: Decohere requires a dense CPU engine destination")
	}
	e.decohereDispose(start, length, d)
}

// Dispose is Decohere without a destination: the sub-register's qubits
// are dropped entirely. Valid under the same unentangled precondition.
func (e *CPUEngine) Dispose(start, length int) {
	e.decohereDispose(start, length, nil)
}

func (e *CPUEngine) decohereDispose(start, length int, dest *CPUEngine) {
	e.checkRange(start, length)
	if length == e.qubitCount {
		panic("qsim: cannot split out the entire register")
	}
	e.prepareCompose()

	partPower := uint64(1) << uint(length)
	remPower := e.maxQPower >> uint(length)
	mask := (partPower - 1) << uint(start)
	lowMask := (uint64(1) << uint(start)) - 1
	startSh := uint(start)

	var partProb, partAngle []float64
	if dest != nil {
		partProb = make([]float64, partPower)
		partAngle = make([]float64, partPower)
	}
	remProb := make([]float64, remPower)
	remAngle := make([]float64, remPower)

	// Serial pass: the marginal accumulators are indexed by extracted
	// sub-values, so parallel partitions would collide on them.
	v := e.stateVec
	for i := uint64(0); i < e.maxQPower; i++ {
		p := normSqrd(v[i])
		if p <= 0 {
			continue
		}
		remIdx := (i & lowMask) | ((i >> (startSh + uint(length))) << startSh)
		remProb[remIdx] += p
		remAngle[remIdx] = angleOf(v[i])
		if dest != nil {
			partIdx := (i & mask) >> startSh
			partProb[partIdx] += p
			partAngle[partIdx] = angleOf(v[i])
		}
	}

	if dest != nil {
		dest.qubitCount = length
		dest.maxQPower = partPower
		dest.stateVec = make([]Complex, partPower)
		for j := uint64(0); j < partPower; j++ {
			dest.stateVec[j] = fromPolar(math.Sqrt(partProb[j]), partAngle[j])
		}
		dest.runningNorm = normStale
	}

	nStateVec := make([]Complex, remPower)
	for j := uint64(0); j < remPower; j++ {
		nStateVec[j] = fromPolar(math.Sqrt(remProb[j]), remAngle[j])
	}
	e.qubitCount -= length
	e.maxQPower = remPower
	e.resetStateVec(nStateVec)
	e.runningNorm = normStale

	e.metrics.add(&e.metrics.Compositions)
	errnie.Info("qsim decohere - split %d qubits at %d, %d remain", length, start, e.qubitCount)
}

// prepareCompose settles the running norm before a re-indexing pass so
// the composed vectors keep their probabilistic meaning.
func (e *CPUEngine) prepareCompose() {
	if e.runningNorm == normStale || math.Abs(e.runningNorm-1) > e.config.NormTolerance {
		e.NormalizeState()
	}
}

// release empties a consumed engine. Any further operation on it is a
// caller error and will fault.
func (e *CPUEngine) release() {
	e.stateVec = nil
	e.qubitCount = 0
	e.maxQPower = 0
	e.runningNorm = 0
}
