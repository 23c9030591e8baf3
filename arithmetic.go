package qsim

import "fmt"

/*
Classical arithmetic, applied coherently: every operation here is a
bijection of the basis-index space, realized as a full re-indexing pass
into a fresh vector. Amplitudes move location but never change
magnitude, so normalization is preserved exactly by construction.

Carry variants first measure the carry qubit (collapsing it), fold a set
carry into the operand, and then run the permutation over the
carry-cleared subspace, where the mapping is a bijection.
*/

// permute re-indexes the whole vector through fn, which must be a
// bijection. The stride is a chunk-alignment hint: arithmetic on a bit
// window [start, start+length) only moves amplitudes within blocks of
// 2^(start+length), so aligned chunks keep each worker's writes local.
func (e *CPUEngine) permute(stride uint64, fn func(i uint64) uint64) {
	e.metrics.add(&e.metrics.PermutationPasses)
	nStateVec := make([]Complex, e.maxQPower)
	v := e.stateVec
	e.disp.runStrided(e.maxQPower, stride, func(i uint64) {
		nStateVec[fn(i)] = v[i]
	})
	e.resetStateVec(nStateVec)
}

// permuteSkip is permute over the subspace where the skipped bit is 0.
// The complementary subspace must hold no amplitude (the carry qubit is
// collapsed before this runs), so it is left zero in the new vector.
func (e *CPUEngine) permuteSkip(skipPower uint64, fn func(i uint64) uint64) {
	e.metrics.add(&e.metrics.PermutationPasses)
	nStateVec := make([]Complex, e.maxQPower)
	v := e.stateVec
	e.disp.runSkip(e.maxQPower, skipPower, func(i uint64) {
		nStateVec[fn(i)] = v[i]
	})
	e.resetStateVec(nStateVec)
}

func (e *CPUEngine) checkCarry(start, length, carryIndex int) {
	e.checkQubit(carryIndex)
	if carryIndex >= start && carryIndex < start+length {
		panic(fmt.Sprintf("qsim: carry qubit %d overlaps register [%d, %d)", carryIndex, start, start+length))
	}
}

// ROL rotates the sub-register's bits toward higher positions by shift,
// e.g. ROL(1, 0, 3) maps 0b011 to 0b110.
func (e *CPUEngine) ROL(shift, start, length int) {
	e.checkRange(start, length)
	if shift < 0 {
		panic(fmt.Sprintf("qsim: negative rotation %d", shift))
	}
	shift %= length
	if shift == 0 {
		return
	}
	lenMask := (uint64(1) << uint(length)) - 1
	regMask := lenMask << uint(start)
	window := uint64(1) << uint(start+length)
	e.permute(window, func(i uint64) uint64 {
		regInt := (i & regMask) >> uint(start)
		out := ((regInt << uint(shift)) | (regInt >> uint(length-shift))) & lenMask
		return (i &^ regMask) | (out << uint(start))
	})
}

// ROR rotates the sub-register's bits toward lower positions by shift.
func (e *CPUEngine) ROR(shift, start, length int) {
	e.checkRange(start, length)
	if shift < 0 {
		panic(fmt.Sprintf("qsim: negative rotation %d", shift))
	}
	e.ROL(length-(shift%length), start, length)
}

// INC adds toAdd to the sub-register, mod 2^length.
func (e *CPUEngine) INC(toAdd uint64, start, length int) {
	e.checkRange(start, length)
	lenMask := (uint64(1) << uint(length)) - 1
	toAdd &= lenMask
	if toAdd == 0 {
		return
	}
	regMask := lenMask << uint(start)
	window := uint64(1) << uint(start+length)
	e.permute(window, func(i uint64) uint64 {
		regInt := (i & regMask) >> uint(start)
		out := (regInt + toAdd) & lenMask
		return (i &^ regMask) | (out << uint(start))
	})
}

// DEC subtracts toSub from the sub-register, mod 2^length.
func (e *CPUEngine) DEC(toSub uint64, start, length int) {
	e.checkRange(start, length)
	lengthPower := uint64(1) << uint(length)
	e.INC(lengthPower-(toSub&(lengthPower-1)), start, length)
}

// INCC adds with carry: a set carry qubit adds one extra, and the carry
// is written back set on wraparound. The carry is collapsed first.
func (e *CPUEngine) INCC(toAdd uint64, start, length, carryIndex int) {
	e.checkRange(start, length)
	e.checkCarry(start, length, carryIndex)
	if e.M(carryIndex) {
		e.X(carryIndex)
		toAdd++
	}

	lengthPower := uint64(1) << uint(length)
	lenMask := lengthPower - 1
	regMask := lenMask << uint(start)
	carryPower := uint64(1) << uint(carryIndex)
	if toAdd > lengthPower {
		// A full wrap plus the folded carry is the most one pass can add.
		toAdd %= lengthPower
	}
	e.permuteSkip(carryPower, func(i uint64) uint64 {
		regInt := (i & regMask) >> uint(start)
		total := regInt + toAdd
		res := (i &^ regMask) | ((total & lenMask) << uint(start))
		if total >= lengthPower {
			res |= carryPower
		}
		return res
	})
}

// DECC subtracts with carry: a set carry qubit subtracts one extra, and
// the carry is written back set on borrow.
func (e *CPUEngine) DECC(toSub uint64, start, length, carryIndex int) {
	e.checkRange(start, length)
	e.checkCarry(start, length, carryIndex)
	if e.M(carryIndex) {
		e.X(carryIndex)
		toSub++
	}

	lengthPower := uint64(1) << uint(length)
	lenMask := lengthPower - 1
	regMask := lenMask << uint(start)
	carryPower := uint64(1) << uint(carryIndex)
	if toSub > lengthPower {
		toSub %= lengthPower
	}
	e.permuteSkip(carryPower, func(i uint64) uint64 {
		regInt := (i & regMask) >> uint(start)
		total := regInt + lengthPower - toSub
		res := (i &^ regMask) | ((total & lenMask) << uint(start))
		if regInt < toSub {
			res |= carryPower
		}
		return res
	})
}

// addOverflows reports signed (two's complement) overflow for in+add=out
// over a register whose sign bit is signMask.
func addOverflows(in, add, out, signMask uint64) bool {
	return (^(in^add))&(in^out)&signMask != 0
}

// subOverflows reports signed overflow for in-sub=out.
func subOverflows(in, sub, out, signMask uint64) bool {
	return (in^sub)&(in^out)&signMask != 0
}

// INCS adds toAdd treating the sub-register as two's complement,
// toggling the overflow qubit on signed overflow. No carry is tracked.
func (e *CPUEngine) INCS(toAdd uint64, start, length, overflowIndex int) {
	e.checkRange(start, length)
	e.checkCarry(start, length, overflowIndex)
	lenMask := (uint64(1) << uint(length)) - 1
	toAdd &= lenMask
	regMask := lenMask << uint(start)
	signMask := uint64(1) << uint(length-1)
	overflowPower := uint64(1) << uint(overflowIndex)
	window := uint64(1) << uint(start+length)
	e.permute(window, func(i uint64) uint64 {
		regInt := (i & regMask) >> uint(start)
		out := (regInt + toAdd) & lenMask
		res := (i &^ regMask) | (out << uint(start))
		if addOverflows(regInt, toAdd, out, signMask) {
			res ^= overflowPower
		}
		return res
	})
}

// DECS subtracts toSub treating the sub-register as two's complement,
// toggling the overflow qubit on signed overflow.
func (e *CPUEngine) DECS(toSub uint64, start, length, overflowIndex int) {
	e.checkRange(start, length)
	e.checkCarry(start, length, overflowIndex)
	lengthPower := uint64(1) << uint(length)
	lenMask := lengthPower - 1
	toSub &= lenMask
	regMask := lenMask << uint(start)
	signMask := uint64(1) << uint(length-1)
	overflowPower := uint64(1) << uint(overflowIndex)
	window := uint64(1) << uint(start+length)
	e.permute(window, func(i uint64) uint64 {
		regInt := (i & regMask) >> uint(start)
		out := (regInt + lengthPower - toSub) & lenMask
		res := (i &^ regMask) | (out << uint(start))
		if subOverflows(regInt, toSub, out, signMask) {
			res ^= overflowPower
		}
		return res
	})
}

// INCSC is INCC with signed-overflow tracking: pass an overflowIndex to
// toggle an overflow qubit alongside the carry.
func (e *CPUEngine) INCSC(toAdd uint64, start, length, carryIndex int, overflowIndex ...int) {
	e.checkRange(start, length)
	e.checkCarry(start, length, carryIndex)
	hasOverflow := len(overflowIndex) > 0
	var overflowPower uint64
	if hasOverflow {
		e.checkCarry(start, length, overflowIndex[0])
		overflowPower = uint64(1) << uint(overflowIndex[0])
	}
	if e.M(carryIndex) {
		e.X(carryIndex)
		toAdd++
	}

	lengthPower := uint64(1) << uint(length)
	lenMask := lengthPower - 1
	regMask := lenMask << uint(start)
	signMask := uint64(1) << uint(length-1)
	carryPower := uint64(1) << uint(carryIndex)
	if toAdd > lengthPower {
		toAdd %= lengthPower
	}
	e.permuteSkip(carryPower, func(i uint64) uint64 {
		regInt := (i & regMask) >> uint(start)
		total := regInt + toAdd
		out := total & lenMask
		res := (i &^ regMask) | (out << uint(start))
		if total >= lengthPower {
			res |= carryPower
		}
		if hasOverflow && addOverflows(regInt, toAdd&lenMask, out, signMask) {
			res ^= overflowPower
		}
		return res
	})
}

// DECSC is DECC with signed-overflow tracking.
func (e *CPUEngine) DECSC(toSub uint64, start, length, carryIndex int, overflowIndex ...int) {
	e.checkRange(start, length)
	e.checkCarry(start, length, carryIndex)
	hasOverflow := len(overflowIndex) > 0
	var overflowPower uint64
	if hasOverflow {
		e.checkCarry(start, length, overflowIndex[0])
		overflowPower = uint64(1) << uint(overflowIndex[0])
	}
	if e.M(carryIndex) {
		e.X(carryIndex)
		toSub++
	}

	lengthPower := uint64(1) << uint(length)
	lenMask := lengthPower - 1
	regMask := lenMask << uint(start)
	signMask := uint64(1) << uint(length-1)
	carryPower := uint64(1) << uint(carryIndex)
	if toSub > lengthPower {
		toSub %= lengthPower
	}
	e.permuteSkip(carryPower, func(i uint64) uint64 {
		regInt := (i & regMask) >> uint(start)
		out := (regInt + lengthPower - toSub) & lenMask
		res := (i &^ regMask) | (out << uint(start))
		if regInt < toSub {
			res |= carryPower
		}
		if hasOverflow && subOverflows(regInt, toSub&lenMask, out, signMask) {
			res ^= overflowPower
		}
		return res
	})
}

// bcdAdd adds the decimal digits of toAdd to the packed-BCD value
// regInt, nibble by nibble. The second result reports a carry out of
// the top digit; the third is false when regInt is not valid BCD, in
// which case the basis state is left in place untouched.
func bcdAdd(regInt, toAdd uint64, nibbleCount int) (uint64, bool, bool) {
	var nibbles [16]int
	partToAdd := toAdd
	for j := 0; j < nibbleCount; j++ {
		digit := int((regInt >> uint(j*4)) & 15)
		if digit > 9 {
			return 0, false, false
		}
		nibbles[j] = digit + int(partToAdd%10)
		partToAdd /= 10
	}

	carryOut := false
	out := uint64(0)
	for j := 0; j < nibbleCount; j++ {
		if nibbles[j] > 9 {
			nibbles[j] -= 10
			if j+1 < nibbleCount {
				nibbles[j+1]++
			} else {
				carryOut = true
			}
		}
		out |= uint64(nibbles[j]) << uint(j*4)
	}
	return out, carryOut, true
}

func (e *CPUEngine) checkBCD(start, length int) int {
	e.checkRange(start, length)
	if length%4 != 0 {
		panic(fmt.Sprintf("qsim: BCD register length %d is not a whole number of nibbles", length))
	}
	nibbleCount := length / 4
	if nibbleCount > 16 {
		panic("qsim: BCD register wider than 16 digits")
	}
	return nibbleCount
}

// INCBCD adds toAdd to the sub-register in packed binary-coded decimal,
// mod 10^(length/4). Basis states holding non-decimal nibbles are left
// untouched.
func (e *CPUEngine) INCBCD(toAdd uint64, start, length int) {
	nibbleCount := e.checkBCD(start, length)
	lenMask := (uint64(1) << uint(length)) - 1
	regMask := lenMask << uint(start)
	window := uint64(1) << uint(start+length)
	e.permute(window, func(i uint64) uint64 {
		regInt := (i & regMask) >> uint(start)
		out, _, ok := bcdAdd(regInt, toAdd, nibbleCount)
		if !ok {
			return i
		}
		return (i &^ regMask) | (out << uint(start))
	})
}

// DECBCD subtracts toSub from the sub-register in packed BCD.
func (e *CPUEngine) DECBCD(toSub uint64, start, length int) {
	nibbleCount := e.checkBCD(start, length)
	// Subtract as addition of the ten's complement.
	tensPower := uint64(1)
	for j := 0; j < nibbleCount; j++ {
		tensPower *= 10
	}
	e.INCBCD(tensPower-(toSub%tensPower), start, length)
}

// INCBCDC is INCBCD with carry: a set carry adds one, and a carry out
// of the top digit sets the carry qubit.
func (e *CPUEngine) INCBCDC(toAdd uint64, start, length, carryIndex int) {
	nibbleCount := e.checkBCD(start, length)
	e.checkCarry(start, length, carryIndex)
	if e.M(carryIndex) {
		e.X(carryIndex)
		toAdd++
	}

	tensPower := uint64(1)
	for j := 0; j < nibbleCount; j++ {
		tensPower *= 10
	}
	// A folded carry can push the operand to the full modulus (9...9 + 1);
	// the digit loop never sees that top decade, so record it here.
	carryForced := false
	if toAdd >= tensPower {
		toAdd %= tensPower
		carryForced = true
	}

	lenMask := (uint64(1) << uint(length)) - 1
	regMask := lenMask << uint(start)
	carryPower := uint64(1) << uint(carryIndex)
	e.permuteSkip(carryPower, func(i uint64) uint64 {
		regInt := (i & regMask) >> uint(start)
		out, carryOut, ok := bcdAdd(regInt, toAdd, nibbleCount)
		if !ok {
			return i
		}
		res := (i &^ regMask) | (out << uint(start))
		if carryOut || carryForced {
			res |= carryPower
		}
		return res
	})
}

// DECBCDC is DECBCD with carry: a set carry subtracts one extra, and a
// borrow out of the top digit sets the carry qubit.
func (e *CPUEngine) DECBCDC(toSub uint64, start, length, carryIndex int) {
	nibbleCount := e.checkBCD(start, length)
	e.checkCarry(start, length, carryIndex)
	if e.M(carryIndex) {
		e.X(carryIndex)
		toSub++
	}

	tensPower := uint64(1)
	for j := 0; j < nibbleCount; j++ {
		tensPower *= 10
	}
	// A folded carry can push the operand to the full modulus (9...9 + 1),
	// which borrows unconditionally and reduces to a zero subtraction.
	borrowForced := false
	if toSub >= tensPower {
		toSub %= tensPower
		borrowForced = true
	}
	complement := (tensPower - toSub) % tensPower

	lenMask := (uint64(1) << uint(length)) - 1
	regMask := lenMask << uint(start)
	carryPower := uint64(1) << uint(carryIndex)
	e.permuteSkip(carryPower, func(i uint64) uint64 {
		regInt := (i & regMask) >> uint(start)
		out, carryOut, ok := bcdAdd(regInt, complement, nibbleCount)
		if !ok {
			return i
		}
		res := (i &^ regMask) | (out << uint(start))
		// Ten's-complement addition carries out exactly when the
		// subtraction does not borrow; the carry qubit records borrow.
		if borrowForced || (!carryOut && toSub != 0) {
			res |= carryPower
		}
		return res
	})
}
