package qsim

import "math"

// Rotation and exponential gates. Each builds its 2x2 matrix from the
// angle and feeds the same apply2x2 primitive as the fixed gates; the
// controlled forms only add a control bit to the mask set.

func rtMatrix(radians float64) [4]Complex {
	return [4]Complex{
		1, 0,
		0, complex(math.Cos(radians), math.Sin(radians)),
	}
}

func rxMatrix(radians float64) [4]Complex {
	cosine := complex(math.Cos(radians/2), 0)
	sine := complex(0, -math.Sin(radians/2))
	return [4]Complex{cosine, sine, sine, cosine}
}

func ryMatrix(radians float64) [4]Complex {
	cosine := complex(math.Cos(radians/2), 0)
	sine := complex(math.Sin(radians/2), 0)
	return [4]Complex{cosine, -sine, sine, cosine}
}

func rzMatrix(radians float64) [4]Complex {
	return [4]Complex{
		complex(math.Cos(radians/2), -math.Sin(radians/2)), 0,
		0, complex(math.Cos(radians/2), math.Sin(radians/2)),
	}
}

// RT rotates the phase of the |1> branch by the given angle.
func (e *CPUEngine) RT(radians float64, qubit int) {
	mtrx := rtMatrix(radians)
	e.ApplySingleBit(&mtrx, true, qubit)
}

// RX rotates the qubit around the Pauli X axis.
func (e *CPUEngine) RX(radians float64, qubit int) {
	mtrx := rxMatrix(radians)
	e.ApplySingleBit(&mtrx, true, qubit)
}

// RY rotates the qubit around the Pauli Y axis.
func (e *CPUEngine) RY(radians float64, qubit int) {
	mtrx := ryMatrix(radians)
	e.ApplySingleBit(&mtrx, true, qubit)
}

// RZ rotates the qubit around the Pauli Z axis.
func (e *CPUEngine) RZ(radians float64, qubit int) {
	mtrx := rzMatrix(radians)
	e.ApplySingleBit(&mtrx, true, qubit)
}

// Exp applies e^(i*radians) as a gate on the target qubit's subspace.
func (e *CPUEngine) Exp(radians float64, qubit int) {
	phase := complex(math.Cos(radians), math.Sin(radians))
	mtrx := [4]Complex{phase, 0, 0, phase}
	e.ApplySingleBit(&mtrx, true, qubit)
}

// ExpX applies e^(i*radians*X).
func (e *CPUEngine) ExpX(radians float64, qubit int) {
	cosine := complex(math.Cos(radians), 0)
	sine := complex(0, math.Sin(radians))
	mtrx := [4]Complex{cosine, sine, sine, cosine}
	e.ApplySingleBit(&mtrx, true, qubit)
}

// ExpY applies e^(i*radians*Y).
func (e *CPUEngine) ExpY(radians float64, qubit int) {
	cosine := complex(math.Cos(radians), 0)
	sine := complex(math.Sin(radians), 0)
	mtrx := [4]Complex{cosine, sine, -sine, cosine}
	e.ApplySingleBit(&mtrx, true, qubit)
}

// ExpZ applies e^(i*radians*Z).
func (e *CPUEngine) ExpZ(radians float64, qubit int) {
	mtrx := [4]Complex{
		complex(math.Cos(radians), math.Sin(radians)), 0,
		0, complex(math.Cos(radians), -math.Sin(radians)),
	}
	e.ApplySingleBit(&mtrx, true, qubit)
}

// CRT rotates the phase of target's |1> branch where control is 1.
func (e *CPUEngine) CRT(radians float64, control, target int) {
	mtrx := rtMatrix(radians)
	e.applyControlled2x2(control, target, &mtrx, true)
}

// CRX rotates target around X where control is 1.
func (e *CPUEngine) CRX(radians float64, control, target int) {
	mtrx := rxMatrix(radians)
	e.applyControlled2x2(control, target, &mtrx, true)
}

// CRY rotates target around Y where control is 1.
func (e *CPUEngine) CRY(radians float64, control, target int) {
	mtrx := ryMatrix(radians)
	e.applyControlled2x2(control, target, &mtrx, true)
}

// CRZ rotates target around Z where control is 1.
func (e *CPUEngine) CRZ(radians float64, control, target int) {
	mtrx := rzMatrix(radians)
	e.applyControlled2x2(control, target, &mtrx, true)
}
