package qsim

// Register-spanning forms are loops over the single-bit primitives, on
// purpose: one source of truth for gate correctness, no bulk-path
// special cases.

// XReg applies X to each qubit in [start, start+length).
func (e *CPUEngine) XReg(start, length int) {
	e.checkRange(start, length)
	for i := 0; i < length; i++ {
		e.X(start + i)
	}
}

// HReg applies H to each qubit in [start, start+length).
func (e *CPUEngine) HReg(start, length int) {
	e.checkRange(start, length)
	for i := 0; i < length; i++ {
		e.H(start + i)
	}
}

// CNOTReg applies CNOT(control+i, target+i) across two equal-width
// registers, which must not overlap.
func (e *CPUEngine) CNOTReg(control, target, length int) {
	e.checkRange(control, length)
	e.checkRange(target, length)
	for i := 0; i < length; i++ {
		e.CNOT(control+i, target+i)
	}
}

// AntiCNOTReg is CNOTReg with control-on-0 polarity.
func (e *CPUEngine) AntiCNOTReg(control, target, length int) {
	e.checkRange(control, length)
	e.checkRange(target, length)
	for i := 0; i < length; i++ {
		e.AntiCNOT(control+i, target+i)
	}
}

// CCNOTReg applies CCNOT across three equal-width registers.
func (e *CPUEngine) CCNOTReg(control1, control2, target, length int) {
	e.checkRange(control1, length)
	e.checkRange(control2, length)
	e.checkRange(target, length)
	for i := 0; i < length; i++ {
		e.CCNOT(control1+i, control2+i, target+i)
	}
}

// AntiCCNOTReg is CCNOTReg with control-on-0 polarity.
func (e *CPUEngine) AntiCCNOTReg(control1, control2, target, length int) {
	e.checkRange(control1, length)
	e.checkRange(control2, length)
	e.checkRange(target, length)
	for i := 0; i < length; i++ {
		e.AntiCCNOT(control1+i, control2+i, target+i)
	}
}

// AND writes inputBit1 AND inputBit2 into outputBit, which must be a
// distinct qubit. The output is forced to |0> first, so the result is a
// plain (anti-)Toffoli application.
func (e *CPUEngine) AND(inputBit1, inputBit2, outputBit int) {
	if inputBit1 == outputBit || inputBit2 == outputBit {
		panic("qsim: AND output qubit overlaps an input qubit")
	}
	e.SetBit(outputBit, false)
	if inputBit1 == inputBit2 {
		e.CNOT(inputBit1, outputBit)
		return
	}
	e.CCNOT(inputBit1, inputBit2, outputBit)
}

// OR writes inputBit1 OR inputBit2 into outputBit.
func (e *CPUEngine) OR(inputBit1, inputBit2, outputBit int) {
	if inputBit1 == outputBit || inputBit2 == outputBit {
		panic("qsim: OR output qubit overlaps an input qubit")
	}
	e.SetBit(outputBit, true)
	if inputBit1 == inputBit2 {
		e.AntiCNOT(inputBit1, outputBit)
		return
	}
	e.AntiCCNOT(inputBit1, inputBit2, outputBit)
}

// XOR writes inputBit1 XOR inputBit2 into outputBit.
func (e *CPUEngine) XOR(inputBit1, inputBit2, outputBit int) {
	if inputBit1 == outputBit || inputBit2 == outputBit {
		panic("qsim: XOR output qubit overlaps an input qubit")
	}
	e.SetBit(outputBit, false)
	if inputBit1 == inputBit2 {
		return
	}
	e.CNOT(inputBit1, outputBit)
	e.CNOT(inputBit2, outputBit)
}

// ANDReg applies AND bitwise across three equal-width registers.
func (e *CPUEngine) ANDReg(inputStart1, inputStart2, outputStart, length int) {
	e.checkRange(outputStart, length)
	for i := 0; i < length; i++ {
		e.AND(inputStart1+i, inputStart2+i, outputStart+i)
	}
}

// ORReg applies OR bitwise across three equal-width registers.
func (e *CPUEngine) ORReg(inputStart1, inputStart2, outputStart, length int) {
	e.checkRange(outputStart, length)
	for i := 0; i < length; i++ {
		e.OR(inputStart1+i, inputStart2+i, outputStart+i)
	}
}

// XORReg applies XOR bitwise across three equal-width registers.
func (e *CPUEngine) XORReg(inputStart1, inputStart2, outputStart, length int) {
	e.checkRange(outputStart, length)
	for i := 0; i < length; i++ {
		e.XOR(inputStart1+i, inputStart2+i, outputStart+i)
	}
}

// Swap exchanges the states of two qubits by swapping every amplitude
// pair that differs only in those two bit positions.
func (e *CPUEngine) Swap(qubit1, qubit2 int) {
	e.checkQubit(qubit1)
	e.checkQubit(qubit2)
	if qubit1 == qubit2 {
		return
	}
	p1 := uint64(1) << uint(qubit1)
	p2 := uint64(1) << uint(qubit2)
	v := e.stateVec
	e.disp.runMasked(e.maxQPower, sortedPowers(p1, p2), func(i uint64) {
		v[i|p1], v[i|p2] = v[i|p2], v[i|p1]
	})
}

// SwapReg swaps two equal-width registers qubit by qubit.
func (e *CPUEngine) SwapReg(start1, start2, length int) {
	e.checkRange(start1, length)
	e.checkRange(start2, length)
	for i := 0; i < length; i++ {
		e.Swap(start1+i, start2+i)
	}
}

// SetBit measures the qubit and flips it if the outcome differs from
// the requested classical value.
func (e *CPUEngine) SetBit(qubit int, value bool) {
	if e.M(qubit) != value {
		e.X(qubit)
	}
}

// SetReg writes a classical value into a sub-register. A full-width set
// is a plain permutation reset; a partial set measures the bits first
// and flips the ones that differ.
func (e *CPUEngine) SetReg(start, length int, value uint64) {
	e.checkRange(start, length)
	if start == 0 && length == e.qubitCount {
		e.SetPermutation(value)
		return
	}
	for i := 0; i < length; i++ {
		e.SetBit(start+i, (value>>uint(i))&1 == 1)
	}
}

// MReg measures each qubit of a sub-register and returns the collapsed
// classical value.
func (e *CPUEngine) MReg(start, length int) uint64 {
	e.checkRange(start, length)
	result := uint64(0)
	for i := 0; i < length; i++ {
		if e.M(start + i) {
			result |= uint64(1) << uint(i)
		}
	}
	return result
}

// PhaseFlip multiplies the whole vector by -1. Unobservable on its own,
// load-bearing inside controlled constructions.
func (e *CPUEngine) PhaseFlip() {
	v := e.stateVec
	e.disp.run(e.maxQPower, func(i uint64) {
		v[i] = -v[i]
	})
}

// ZeroPhaseFlip negates every basis state whose sub-register holds 0.
func (e *CPUEngine) ZeroPhaseFlip(start, length int) {
	e.checkRange(start, length)
	powers := make([]uint64, length)
	for i := 0; i < length; i++ {
		powers[i] = uint64(1) << uint(start+i)
	}
	v := e.stateVec
	e.disp.runMasked(e.maxQPower, powers, func(i uint64) {
		v[i] = -v[i]
	})
}

// CPhaseFlipIfLess negates every basis state where the flag qubit is set
// and the sub-register's value is less than greaterPerm.
func (e *CPUEngine) CPhaseFlipIfLess(greaterPerm uint64, start, length, flagIndex int) {
	e.checkRange(start, length)
	e.checkQubit(flagIndex)
	regMask := ((uint64(1) << uint(length)) - 1) << uint(start)
	flagPower := uint64(1) << uint(flagIndex)
	v := e.stateVec
	e.disp.runSkip(e.maxQPower, flagPower, func(i uint64) {
		i |= flagPower
		if (i&regMask)>>uint(start) < greaterPerm {
			v[i] = -v[i]
		}
	})
}
