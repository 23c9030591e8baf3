package qsim

import "fmt"

/*
Indexed memory operations couple an index sub-register to a caller-owned
byte table: for every basis state, the value at table[indexValue] is
loaded, added or subtracted into the value sub-register, coherently
across the superposition. Like the rest of the arithmetic engine these
are pure index permutations; the table is borrowed read-only and must
outlive the call.

Table layout is little-endian, (valueLength+7)/8 bytes per entry, one
entry per possible index value.
*/

func rangesOverlap(start1, length1, start2, length2 int) bool {
	return start1 < start2+length2 && start2 < start1+length1
}

func (e *CPUEngine) checkIndexed(indexStart, indexLength, valueStart, valueLength int, values []byte) int {
	e.checkRange(indexStart, indexLength)
	e.checkRange(valueStart, valueLength)
	if rangesOverlap(indexStart, indexLength, valueStart, valueLength) {
		panic(fmt.Sprintf("qsim: index register [%d, %d) overlaps value register [%d, %d)",
			indexStart, indexStart+indexLength, valueStart, valueStart+valueLength))
	}
	valueBytes := (valueLength + 7) / 8
	required := (uint64(1) << uint(indexLength)) * uint64(valueBytes)
	if uint64(len(values)) < required {
		panic(fmt.Sprintf("qsim: lookup table holds %d bytes, %d required", len(values), required))
	}
	return valueBytes
}

func lookupValue(values []byte, inputInt uint64, valueBytes int) uint64 {
	out := uint64(0)
	base := inputInt * uint64(valueBytes)
	for j := 0; j < valueBytes; j++ {
		out |= uint64(values[base+uint64(j)]) << uint(8*j)
	}
	return out
}

// valueExpectation returns the probability-weighted mean of the value
// sub-register, rounded to the nearest integer. It is what the indexed
// operations report back, since no single classical value exists before
// measurement.
func (e *CPUEngine) valueExpectation(valueStart, valueLength int) uint64 {
	mask := ((uint64(1) << uint(valueLength)) - 1) << uint(valueStart)
	v := e.stateVec
	avg := e.disp.reduceSum(e.maxQPower, func(i uint64) float64 {
		return float64((i&mask)>>uint(valueStart)) * normSqrd(v[i])
	})
	return uint64(avg + 0.5)
}

/*
IndexedLDA loads table values into the value sub-register, indexed by
the index sub-register. The value register is reset to zero first, so
the load is the bijection |index, 0> -> |index, table[index]>. Returns
the expectation value of the loaded register.
*/
func (e *CPUEngine) IndexedLDA(indexStart, indexLength, valueStart, valueLength int, values []byte) uint64 {
	valueBytes := e.checkIndexed(indexStart, indexLength, valueStart, valueLength, values)
	e.SetReg(valueStart, valueLength, 0)

	indexMask := ((uint64(1) << uint(indexLength)) - 1) << uint(indexStart)
	lenMask := (uint64(1) << uint(valueLength)) - 1
	powers := make([]uint64, valueLength)
	for j := 0; j < valueLength; j++ {
		powers[j] = uint64(1) << uint(valueStart+j)
	}

	e.metrics.add(&e.metrics.PermutationPasses)
	nStateVec := make([]Complex, e.maxQPower)
	v := e.stateVec
	e.disp.runMasked(e.maxQPower, powers, func(i uint64) {
		inputInt := (i & indexMask) >> uint(indexStart)
		outputInt := lookupValue(values, inputInt, valueBytes) & lenMask
		nStateVec[i|(outputInt<<uint(valueStart))] = v[i]
	})
	e.resetStateVec(nStateVec)

	return e.valueExpectation(valueStart, valueLength)
}

/*
IndexedADC adds table values into the value sub-register with carry.
A set carry adds one extra; wraparound writes the carry back set. The
carry qubit is collapsed first. Returns the expectation value of the
value register after the add.
*/
func (e *CPUEngine) IndexedADC(indexStart, indexLength, valueStart, valueLength, carryIndex int, values []byte) uint64 {
	valueBytes := e.checkIndexed(indexStart, indexLength, valueStart, valueLength, values)
	e.checkCarry(indexStart, indexLength, carryIndex)
	e.checkCarry(valueStart, valueLength, carryIndex)

	carryIn := uint64(0)
	if e.M(carryIndex) {
		e.X(carryIndex)
		carryIn = 1
	}

	indexMask := ((uint64(1) << uint(indexLength)) - 1) << uint(indexStart)
	lengthPower := uint64(1) << uint(valueLength)
	lenMask := lengthPower - 1
	valueMask := lenMask << uint(valueStart)
	carryPower := uint64(1) << uint(carryIndex)

	e.permuteSkip(carryPower, func(i uint64) uint64 {
		inputInt := (i & indexMask) >> uint(indexStart)
		total := (i&valueMask)>>uint(valueStart) +
			(lookupValue(values, inputInt, valueBytes) & lenMask) + carryIn
		res := (i &^ valueMask) | ((total & lenMask) << uint(valueStart))
		if total >= lengthPower {
			res |= carryPower
		}
		return res
	})

	return e.valueExpectation(valueStart, valueLength)
}

/*
IndexedSBC subtracts table values from the value sub-register with
carry acting as not-borrow: a set carry subtracts the table value
exactly, a clear carry subtracts one extra, and the carry is written
back set when no borrow occurred. Returns the expectation value of the
value register after the subtract.
*/
func (e *CPUEngine) IndexedSBC(indexStart, indexLength, valueStart, valueLength, carryIndex int, values []byte) uint64 {
	valueBytes := e.checkIndexed(indexStart, indexLength, valueStart, valueLength, values)
	e.checkCarry(indexStart, indexLength, carryIndex)
	e.checkCarry(valueStart, valueLength, carryIndex)

	carryIn := uint64(0)
	if e.M(carryIndex) {
		e.X(carryIndex)
		carryIn = 1
	}

	indexMask := ((uint64(1) << uint(indexLength)) - 1) << uint(indexStart)
	lengthPower := uint64(1) << uint(valueLength)
	lenMask := lengthPower - 1
	valueMask := lenMask << uint(valueStart)
	carryPower := uint64(1) << uint(carryIndex)

	e.permuteSkip(carryPower, func(i uint64) uint64 {
		inputInt := (i & indexMask) >> uint(indexStart)
		toSub := (lookupValue(values, inputInt, valueBytes) & lenMask) + 1 - carryIn
		total := (i&valueMask)>>uint(valueStart) + lengthPower - toSub
		res := (i &^ valueMask) | ((total & lenMask) << uint(valueStart))
		if total >= lengthPower {
			res |= carryPower
		}
		return res
	})

	return e.valueExpectation(valueStart, valueLength)
}
