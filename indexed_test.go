package qsim

import (
	"testing"

	. "github.com/smartystreets/goconvey/convey"
)

// 5-qubit layout shared by these tests: index in bits [0,2), value in
// bits [2,2), carry at 4.
var lookupTable = []byte{1, 2, 3, 0}

func TestIndexedLDA(t *testing.T) {
	Convey("Given an engine with a classical index", t, func() {
		Convey("IndexedLDA should load the table entry for the index", func() {
			e := testEngine(5, 2)
			got := e.IndexedLDA(0, 2, 2, 2, lookupTable)

			So(got, ShouldEqual, uint64(3))
			So(e.MReg(2, 2), ShouldEqual, uint64(3))
			So(e.MReg(0, 2), ShouldEqual, uint64(2))
		})

		Convey("A stale value register should be cleared before the load", func() {
			e := testEngine(5, 2|(3<<2))
			e.IndexedLDA(0, 2, 2, 2, lookupTable)

			So(e.MReg(2, 2), ShouldEqual, uint64(3))
		})

		Convey("A superposed index should load coherently", func() {
			e := testEngine(5, 0)
			e.H(0) // index is (|0> + |1>)/sqrt(2)
			got := e.IndexedLDA(0, 2, 2, 2, lookupTable)

			// table[0] = 1 and table[1] = 2, each with weight 1/2.
			So(got, ShouldEqual, uint64(2))
			m := e.MReg(0, 4)
			So(m == 0b0100 || m == 0b1001, ShouldBeTrue)
		})

		Convey("An undersized table should panic", func() {
			e := testEngine(5, 0)
			So(func() { e.IndexedLDA(0, 2, 2, 2, lookupTable[:3]) }, ShouldPanic)
		})

		Convey("Overlapping index and value registers should panic", func() {
			e := testEngine(5, 0)
			So(func() { e.IndexedLDA(0, 2, 1, 2, lookupTable) }, ShouldPanic)
		})
	})
}

func TestIndexedADC(t *testing.T) {
	Convey("Given an engine with index, value and carry", t, func() {
		Convey("It should add the table entry into the value register", func() {
			e := testEngine(5, 1|(1<<2)) // index 1, value 1, carry clear
			e.IndexedADC(0, 2, 2, 2, 4, lookupTable)

			So(e.MReg(2, 2), ShouldEqual, uint64(3)) // 1 + table[1]
			So(e.M(4), ShouldBeFalse)
		})

		Convey("Wraparound should set the carry", func() {
			e := testEngine(5, 1|(3<<2)) // 3 + 2 wraps mod 4
			e.IndexedADC(0, 2, 2, 2, 4, lookupTable)

			So(e.MReg(2, 2), ShouldEqual, uint64(1))
			So(e.M(4), ShouldBeTrue)
		})

		Convey("A set carry should add one extra", func() {
			e := testEngine(5, 1|(1<<2)|(1<<4))
			e.IndexedADC(0, 2, 2, 2, 4, lookupTable)

			So(e.MReg(2, 2), ShouldEqual, uint64(0)) // 1 + 2 + 1 wraps
			So(e.M(4), ShouldBeTrue)
		})
	})
}

func TestIndexedSBC(t *testing.T) {
	Convey("Given an engine with index, value and carry", t, func() {
		Convey("A set carry should subtract the table entry exactly", func() {
			e := testEngine(5, 1|(3<<2)|(1<<4)) // 3 - table[1]
			e.IndexedSBC(0, 2, 2, 2, 4, lookupTable)

			So(e.MReg(2, 2), ShouldEqual, uint64(1))
			So(e.M(4), ShouldBeTrue) // no borrow
		})

		Convey("A borrow should clear the carry", func() {
			e := testEngine(5, 1|(1<<2)|(1<<4)) // 1 - 2 borrows
			e.IndexedSBC(0, 2, 2, 2, 4, lookupTable)

			So(e.MReg(2, 2), ShouldEqual, uint64(3))
			So(e.M(4), ShouldBeFalse)
		})

		Convey("ADC then SBC with the same table should round-trip", func() {
			e := testEngine(5, 2|(2<<2))
			e.IndexedADC(0, 2, 2, 2, 4, lookupTable)
			e.IndexedSBC(0, 2, 2, 2, 4, lookupTable)

			So(e.MReg(2, 2), ShouldEqual, uint64(2))
			So(e.M(4), ShouldBeFalse)
		})
	})
}
