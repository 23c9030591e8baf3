package qsim

import (
	"testing"

	. "github.com/smartystreets/goconvey/convey"
)

func TestRotateShift(t *testing.T) {
	Convey("Given a 3-qubit register holding 0b011", t, func() {
		Convey("ROL(1) should rotate toward higher bits", func() {
			e := testEngine(3, 0b011)
			e.ROL(1, 0, 3)

			So(e.MReg(0, 3), ShouldEqual, uint64(0b110))
		})

		Convey("ROR should invert ROL exactly", func() {
			e := testEngine(3, 0b011)
			e.H(0) // keep a superposition in play
			before := snapshot(e)
			e.ROL(2, 0, 3)
			e.ROR(2, 0, 3)

			So(statesClose(e.GetState(), before, testTolerance), ShouldBeTrue)
		})

		Convey("A negative shift should panic", func() {
			e := testEngine(3, 0)
			So(func() { e.ROL(-1, 0, 3) }, ShouldPanic)
			So(func() { e.ROR(-2, 0, 3) }, ShouldPanic)
		})

		Convey("Rotation should only permute, never change magnitudes", func() {
			e := testEngine(3, 0)
			e.H(0)
			e.H(1)
			e.ROL(1, 0, 3)

			So(e.GetNorm(true), ShouldAlmostEqual, 1.0, testTolerance)
		})
	})
}

func TestIncDec(t *testing.T) {
	Convey("Given a 3-qubit register holding 5", t, func() {
		Convey("INC(3) should wrap to 0", func() {
			e := testEngine(3, 5)
			e.INC(3, 0, 3)

			So(e.MReg(0, 3), ShouldEqual, uint64(0))
		})

		Convey("INC then DEC should restore the state exactly", func() {
			e := testEngine(3, 5)
			e.H(0)
			e.H(2)
			before := snapshot(e)
			e.INC(3, 0, 3)
			e.DEC(3, 0, 3)

			So(statesClose(e.GetState(), before, 0), ShouldBeTrue)
		})
	})

	Convey("Given a register with a carry qubit", t, func() {
		Convey("INCC should record the wraparound in the carry", func() {
			e := testEngine(4, 5) // value 5 in bits [0,3), carry at 3
			e.INCC(3, 0, 3, 3)

			So(e.MReg(0, 3), ShouldEqual, uint64(0))
			So(e.M(3), ShouldBeTrue)
		})

		Convey("INCC without wraparound should leave the carry clear", func() {
			e := testEngine(4, 2)
			e.INCC(3, 0, 3, 3)

			So(e.MReg(0, 3), ShouldEqual, uint64(5))
			So(e.M(3), ShouldBeFalse)
		})

		Convey("A set carry should add one extra and clear itself", func() {
			e := testEngine(4, 2|8)
			e.INCC(3, 0, 3, 3)

			So(e.MReg(0, 3), ShouldEqual, uint64(6))
			So(e.M(3), ShouldBeFalse)
		})

		Convey("DECC should record a borrow in the carry", func() {
			e := testEngine(4, 2)
			e.DECC(3, 0, 3, 3)

			So(e.MReg(0, 3), ShouldEqual, uint64(7))
			So(e.M(3), ShouldBeTrue)
		})

		Convey("A carry inside the register window should panic", func() {
			e := testEngine(4, 0)
			So(func() { e.INCC(1, 0, 3, 1) }, ShouldPanic)
		})
	})
}

func TestSignedOverflow(t *testing.T) {
	Convey("Given a 3-qubit two's complement register", t, func() {
		Convey("INCS should flag 3 + 1 overflowing to -4", func() {
			e := testEngine(4, 3) // +3, overflow qubit at 3
			e.INCS(1, 0, 3, 3)

			So(e.MReg(0, 3), ShouldEqual, uint64(4))
			So(e.M(3), ShouldBeTrue)
		})

		Convey("INCS should not flag an in-range add", func() {
			e := testEngine(4, 1)
			e.INCS(1, 0, 3, 3)

			So(e.MReg(0, 3), ShouldEqual, uint64(2))
			So(e.M(3), ShouldBeFalse)
		})

		Convey("DECS should flag -4 - 1 overflowing to +3", func() {
			e := testEngine(4, 4) // -4
			e.DECS(1, 0, 3, 3)

			So(e.MReg(0, 3), ShouldEqual, uint64(3))
			So(e.M(3), ShouldBeTrue)
		})
	})

	Convey("Given a register with carry and overflow qubits", t, func() {
		Convey("INCSC should track both", func() {
			e := testEngine(5, 5) // 5 in bits [0,3), carry at 3, overflow at 4
			e.INCSC(4, 0, 3, 3, 4)

			// 5 + 4 wraps the register and, read as signed, crosses
			// from -3 to +1 through the negative bound.
			So(e.MReg(0, 3), ShouldEqual, uint64(1))
			So(e.M(3), ShouldBeTrue)
			So(e.M(4), ShouldBeTrue)
		})
	})
}

func TestBCDArithmetic(t *testing.T) {
	Convey("Given a 4-bit BCD digit register", t, func() {
		Convey("INCBCD should carry between decimal digits", func() {
			e := testEngine(8, 0x09) // decimal 09 in two nibbles
			e.INCBCD(1, 0, 8)

			So(e.MReg(0, 8), ShouldEqual, uint64(0x10))
		})

		Convey("INCBCD should wrap mod 10^digits", func() {
			e := testEngine(8, 0x99)
			e.INCBCD(1, 0, 8)

			So(e.MReg(0, 8), ShouldEqual, uint64(0x00))
		})

		Convey("INCBCD then DECBCD should restore the value", func() {
			e := testEngine(8, 0x42)
			e.INCBCD(17, 0, 8)
			e.DECBCD(17, 0, 8)

			So(e.MReg(0, 8), ShouldEqual, uint64(0x42))
		})

		Convey("A non-decimal nibble should be left untouched", func() {
			e := testEngine(8, 0x0F)
			e.INCBCD(1, 0, 8)

			So(e.MReg(0, 8), ShouldEqual, uint64(0x0F))
		})

		Convey("A non-nibble-aligned length should panic", func() {
			e := testEngine(8, 0)
			So(func() { e.INCBCD(1, 0, 6) }, ShouldPanic)
		})
	})

	Convey("Given a BCD register with a carry qubit", t, func() {
		Convey("INCBCDC should set the carry on decimal overflow", func() {
			e := testEngine(5, 9) // one decimal digit, carry at 4
			e.INCBCDC(3, 0, 4, 4)

			So(e.MReg(0, 4), ShouldEqual, uint64(2))
			So(e.M(4), ShouldBeTrue)
		})

		Convey("A folded carry reaching the full decade should still carry out", func() {
			e := testEngine(5, 0|(1<<4)) // value 0, carry set: 0 + 9 + 1 = 10
			e.INCBCDC(9, 0, 4, 4)

			So(e.MReg(0, 4), ShouldEqual, uint64(0))
			So(e.M(4), ShouldBeTrue)
		})

		Convey("DECBCDC should set the carry on borrow", func() {
			e := testEngine(5, 2)
			e.DECBCDC(3, 0, 4, 4)

			So(e.MReg(0, 4), ShouldEqual, uint64(9))
			So(e.M(4), ShouldBeTrue)
		})

		Convey("A folded carry reaching the full decade should still borrow", func() {
			e := testEngine(5, 5|(1<<4)) // value 5, carry set: 5 - 9 - 1 = -5
			e.DECBCDC(9, 0, 4, 4)

			So(e.MReg(0, 4), ShouldEqual, uint64(5))
			So(e.M(4), ShouldBeTrue)
		})

		Convey("DECBCDC without borrow should leave the carry clear", func() {
			e := testEngine(5, 7)
			e.DECBCDC(3, 0, 4, 4)

			So(e.MReg(0, 4), ShouldEqual, uint64(4))
			So(e.M(4), ShouldBeFalse)
		})
	})
}
