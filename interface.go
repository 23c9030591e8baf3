package qsim

/*
Register is the engine-agnostic operation set. The dense CPU engine here
is one implementation; an accelerated or distributed engine backing the
same interface must be substitutable without caller changes, with
identical observable semantics for every operation. Engines are selected
at construction, never by runtime type inspection.
*/
type Register interface {
	// Construction-time state access.
	QubitCount() int
	MaxQPower() uint64
	GetState() []Complex
	SetQuantumState(inputState []Complex)
	SetPermutation(perm uint64)
	CopyState(orig Register)

	// Norm upkeep.
	EnableNormalize(doN bool)
	GetNorm(update bool) float64
	SetNorm(n float64)
	UpdateRunningNorm()
	NormalizeState(nrm ...float64)

	// Basic gates.
	ApplySingleBit(mtrx *[4]Complex, doCalcNorm bool, qubit int)
	X(qubit int)
	Y(qubit int)
	Z(qubit int)
	H(qubit int)
	CNOT(control, target int)
	AntiCNOT(control, target int)
	CCNOT(control1, control2, target int)
	AntiCCNOT(control1, control2, target int)
	CY(control, target int)
	CZ(control, target int)

	// Rotational and exponential gates.
	RT(radians float64, qubit int)
	RX(radians float64, qubit int)
	RY(radians float64, qubit int)
	RZ(radians float64, qubit int)
	Exp(radians float64, qubit int)
	ExpX(radians float64, qubit int)
	ExpY(radians float64, qubit int)
	ExpZ(radians float64, qubit int)
	CRT(radians float64, control, target int)
	CRX(radians float64, control, target int)
	CRY(radians float64, control, target int)
	CRZ(radians float64, control, target int)

	// Register-spanning gates and logic.
	XReg(start, length int)
	HReg(start, length int)
	CNOTReg(control, target, length int)
	AntiCNOTReg(control, target, length int)
	CCNOTReg(control1, control2, target, length int)
	AntiCCNOTReg(control1, control2, target, length int)
	AND(inputBit1, inputBit2, outputBit int)
	OR(inputBit1, inputBit2, outputBit int)
	XOR(inputBit1, inputBit2, outputBit int)
	ANDReg(inputStart1, inputStart2, outputStart, length int)
	ORReg(inputStart1, inputStart2, outputStart, length int)
	XORReg(inputStart1, inputStart2, outputStart, length int)
	Swap(qubit1, qubit2 int)
	SwapReg(start1, start2, length int)

	// Classical register access.
	SetBit(qubit int, value bool)
	SetReg(start, length int, value uint64)
	MReg(start, length int) uint64

	// Phase flips.
	PhaseFlip()
	ZeroPhaseFlip(start, length int)
	CPhaseFlipIfLess(greaterPerm uint64, start, length, flagIndex int)

	// Coherent arithmetic.
	ROL(shift, start, length int)
	ROR(shift, start, length int)
	INC(toAdd uint64, start, length int)
	DEC(toSub uint64, start, length int)
	INCC(toAdd uint64, start, length, carryIndex int)
	DECC(toSub uint64, start, length, carryIndex int)
	INCS(toAdd uint64, start, length, overflowIndex int)
	DECS(toSub uint64, start, length, overflowIndex int)
	INCSC(toAdd uint64, start, length, carryIndex int, overflowIndex ...int)
	DECSC(toSub uint64, start, length, carryIndex int, overflowIndex ...int)
	INCBCD(toAdd uint64, start, length int)
	DECBCD(toSub uint64, start, length int)
	INCBCDC(toAdd uint64, start, length, carryIndex int)
	DECBCDC(toSub uint64, start, length, carryIndex int)

	// Indexed memory.
	IndexedLDA(indexStart, indexLength, valueStart, valueLength int, values []byte) uint64
	IndexedADC(indexStart, indexLength, valueStart, valueLength, carryIndex int, values []byte) uint64
	IndexedSBC(indexStart, indexLength, valueStart, valueLength, carryIndex int, values []byte) uint64

	// Measurement.
	Prob(qubit int) float64
	ProbAll(fullRegister uint64) float64
	M(qubit int) bool
	ForceM(qubit int, result bool, doForce bool, nrmlzr float64) bool

	// Composition.
	Cohere(toCopy Register) (int, error)
	Decohere(start, length int, dest Register)
	Dispose(start, length int)
}

var _ Register = (*CPUEngine)(nil)
