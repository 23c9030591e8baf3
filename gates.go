package qsim

import "math"

// Fixed 2x2 matrices, row-major: [m00 m01 m10 m11].
var (
	pauliX   = [4]Complex{0, 1, 1, 0}
	pauliY   = [4]Complex{0, complex(0, -1), complex(0, 1), 0}
	pauliZ   = [4]Complex{1, 0, 0, -1}
	hadamard = [4]Complex{
		complex(math.Sqrt2/2, 0), complex(math.Sqrt2/2, 0),
		complex(math.Sqrt2/2, 0), complex(-math.Sqrt2/2, 0),
	}
)

/*
apply2x2 is the primitive every gate reduces to. The masked enumeration
visits each basis index whose bits at the positions in qPowersSorted are
all zero; offset1 and offset2 then select the target qubit's 0- and
1-branch amplitudes (with any positive-polarity control bits set), which
are treated as a 2-vector and left-multiplied by mtrx.

Anti-controls need no extra logic: the enumeration already holds every
involved bit at zero, so leaving a control power out of both offsets
conditions the gate on that qubit being 0.

When doCalcNorm is set and the pass touches every amplitude (a single
involved bit), the squared-magnitude sum is accumulated in the same
pass, amortizing the normalization scan.
*/
func (e *CPUEngine) apply2x2(offset1, offset2 uint64, mtrx *[4]Complex, qPowersSorted []uint64, doCalcNorm bool) {
	if e.doNormalize && e.runningNorm != normStale && e.runningNorm > 0 &&
		math.Abs(e.runningNorm-1) > e.config.NormTolerance {
		e.NormalizeState()
	}

	e.metrics.add(&e.metrics.GatePasses)

	m00, m01, m10, m11 := mtrx[0], mtrx[1], mtrx[2], mtrx[3]
	v := e.stateVec

	if doCalcNorm && len(qPowersSorted) == 1 {
		e.runningNorm = e.disp.reduceSumMasked(e.maxQPower, qPowersSorted, func(i uint64) float64 {
			y0 := v[i|offset1]
			y1 := v[i|offset2]
			n0 := m00*y0 + m01*y1
			n1 := m10*y0 + m11*y1
			v[i|offset1] = n0
			v[i|offset2] = n1
			return normSqrd(n0) + normSqrd(n1)
		})
		return
	}

	e.disp.runMasked(e.maxQPower, qPowersSorted, func(i uint64) {
		y0 := v[i|offset1]
		y1 := v[i|offset2]
		v[i|offset1] = m00*y0 + m01*y1
		v[i|offset2] = m10*y0 + m11*y1
	})
	if doCalcNorm {
		// Only a control-selected subspace was touched; the cached
		// norm can no longer be trusted.
		e.runningNorm = normStale
	}
}

// ApplySingleBit multiplies the target qubit's amplitude pairs by an
// arbitrary 2x2 matrix.
func (e *CPUEngine) ApplySingleBit(mtrx *[4]Complex, doCalcNorm bool, qubit int) {
	e.checkQubit(qubit)
	qPower := uint64(1) << uint(qubit)
	e.apply2x2(0, qPower, mtrx, []uint64{qPower}, doCalcNorm)
}

func (e *CPUEngine) applyControlled2x2(control, target int, mtrx *[4]Complex, doCalcNorm bool) {
	e.checkQubit(control)
	e.checkQubit(target)
	checkDistinct(control, target)
	cPower := uint64(1) << uint(control)
	tPower := uint64(1) << uint(target)
	e.apply2x2(cPower, cPower|tPower, mtrx, sortedPowers(cPower, tPower), doCalcNorm)
}

func (e *CPUEngine) applyAntiControlled2x2(control, target int, mtrx *[4]Complex, doCalcNorm bool) {
	e.checkQubit(control)
	e.checkQubit(target)
	checkDistinct(control, target)
	cPower := uint64(1) << uint(control)
	tPower := uint64(1) << uint(target)
	e.apply2x2(0, tPower, mtrx, sortedPowers(cPower, tPower), doCalcNorm)
}

func (e *CPUEngine) applyDoublyControlled2x2(control1, control2, target int, mtrx *[4]Complex, doCalcNorm bool) {
	e.checkQubit(control1)
	e.checkQubit(control2)
	e.checkQubit(target)
	checkDistinct(control1, control2, target)
	c1Power := uint64(1) << uint(control1)
	c2Power := uint64(1) << uint(control2)
	tPower := uint64(1) << uint(target)
	e.apply2x2(c1Power|c2Power, c1Power|c2Power|tPower, mtrx, sortedPowers(c1Power, c2Power, tPower), doCalcNorm)
}

func (e *CPUEngine) applyDoublyAntiControlled2x2(control1, control2, target int, mtrx *[4]Complex, doCalcNorm bool) {
	e.checkQubit(control1)
	e.checkQubit(control2)
	e.checkQubit(target)
	checkDistinct(control1, control2, target)
	c1Power := uint64(1) << uint(control1)
	c2Power := uint64(1) << uint(control2)
	tPower := uint64(1) << uint(target)
	e.apply2x2(0, tPower, mtrx, sortedPowers(c1Power, c2Power, tPower), doCalcNorm)
}

// sortedPowers returns the involved bit powers in ascending order, as
// the masked enumeration requires.
func sortedPowers(powers ...uint64) []uint64 {
	for i := 1; i < len(powers); i++ {
		for j := i; j > 0 && powers[j-1] > powers[j]; j-- {
			powers[j-1], powers[j] = powers[j], powers[j-1]
		}
	}
	return powers
}

// X applies the Pauli X (NOT) gate: swaps the |0> and |1> amplitudes of
// the target qubit.
func (e *CPUEngine) X(qubit int) {
	e.ApplySingleBit(&pauliX, false, qubit)
}

// Y applies the Pauli Y gate.
func (e *CPUEngine) Y(qubit int) {
	e.ApplySingleBit(&pauliY, false, qubit)
}

// Z applies the Pauli Z gate: flips the phase of the |1> branch.
func (e *CPUEngine) Z(qubit int) {
	e.ApplySingleBit(&pauliZ, false, qubit)
}

// H applies the Hadamard gate, rotating the target into an equal
// superposition basis.
func (e *CPUEngine) H(qubit int) {
	e.ApplySingleBit(&hadamard, true, qubit)
}

// CNOT flips target where control is 1.
func (e *CPUEngine) CNOT(control, target int) {
	e.applyControlled2x2(control, target, &pauliX, false)
}

// AntiCNOT flips target where control is 0.
func (e *CPUEngine) AntiCNOT(control, target int) {
	e.applyAntiControlled2x2(control, target, &pauliX, false)
}

// CCNOT is the Toffoli gate: flips target where both controls are 1.
func (e *CPUEngine) CCNOT(control1, control2, target int) {
	e.applyDoublyControlled2x2(control1, control2, target, &pauliX, false)
}

// AntiCCNOT flips target where both controls are 0.
func (e *CPUEngine) AntiCCNOT(control1, control2, target int) {
	e.applyDoublyAntiControlled2x2(control1, control2, target, &pauliX, false)
}

// CY applies Pauli Y to target where control is 1.
func (e *CPUEngine) CY(control, target int) {
	e.applyControlled2x2(control, target, &pauliY, false)
}

// CZ flips the phase where both control and target are 1.
func (e *CPUEngine) CZ(control, target int) {
	e.applyControlled2x2(control, target, &pauliZ, false)
}
