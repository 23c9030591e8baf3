package qsim

import (
	"testing"

	. "github.com/smartystreets/goconvey/convey"
)

func TestCohere(t *testing.T) {
	Convey("Given two independent registers", t, func() {
		Convey("Cohere should place the operand above the receiver", func() {
			e := testEngine(2, 2)
			src := testEngine(1, 1)
			start, err := e.Cohere(src)

			So(err, ShouldBeNil)
			So(start, ShouldEqual, 2)
			So(e.QubitCount(), ShouldEqual, 3)
			So(e.ProbAll(2|(1<<2)), ShouldAlmostEqual, 1.0, testTolerance)
		})

		Convey("Cohere should consume the operand", func() {
			e := testEngine(1, 0)
			src := testEngine(1, 1)
			_, err := e.Cohere(src)

			So(err, ShouldBeNil)
			So(src.QubitCount(), ShouldEqual, 0)
			So(src.GetState(), ShouldBeNil)
		})

		Convey("Cohere should compose superpositions as a tensor product", func() {
			e := testEngine(1, 0)
			e.H(0)
			src := testEngine(1, 1)
			_, err := e.Cohere(src)

			So(err, ShouldBeNil)
			So(e.Prob(0), ShouldAlmostEqual, 0.5, testTolerance)
			So(e.Prob(1), ShouldAlmostEqual, 1.0, testTolerance)
			So(e.GetNorm(true), ShouldAlmostEqual, 1.0, testTolerance)
		})

		Convey("A cohere past the capacity limit should fail cleanly", func() {
			cfg := NewConfig()
			cfg.MaxQubits = 3
			e := testEngine(2, 0, WithConfig(cfg))
			src := testEngine(2, 0, WithConfig(cfg))
			before := snapshot(e)
			_, err := e.Cohere(src)

			So(err, ShouldNotBeNil)
			So(e.QubitCount(), ShouldEqual, 2)
			So(statesClose(e.GetState(), before, testTolerance), ShouldBeTrue)
			So(src.QubitCount(), ShouldEqual, 2)
		})
	})
}

func TestCohereAll(t *testing.T) {
	Convey("Given several operand registers", t, func() {
		Convey("CohereAll should merge them in slice order", func() {
			e := testEngine(1, 1)
			a := testEngine(2, 2)
			b := testEngine(1, 1)
			starts, err := e.CohereAll([]*CPUEngine{a, b})

			So(err, ShouldBeNil)
			So(starts[a], ShouldEqual, 1)
			So(starts[b], ShouldEqual, 3)
			So(e.QubitCount(), ShouldEqual, 4)
			So(e.ProbAll(1|(2<<1)|(1<<3)), ShouldAlmostEqual, 1.0, testTolerance)
		})

		Convey("CohereAll should refuse to exceed capacity untouched", func() {
			cfg := NewConfig()
			cfg.MaxQubits = 3
			e := testEngine(2, 0, WithConfig(cfg))
			a := testEngine(2, 0, WithConfig(cfg))
			_, err := e.CohereAll([]*CPUEngine{a})

			So(err, ShouldNotBeNil)
			So(a.QubitCount(), ShouldEqual, 2)
		})
	})
}

func TestDecohereDispose(t *testing.T) {
	Convey("Given an unentangled composite register", t, func() {
		Convey("Decohere should split out a classical sub-register", func() {
			e := testEngine(3, 0b101)
			dest := testEngine(1, 0)
			e.Decohere(1, 1, dest)

			So(e.QubitCount(), ShouldEqual, 2)
			So(e.MReg(0, 2), ShouldEqual, uint64(0b11))
			So(dest.M(0), ShouldBeFalse)
		})

		Convey("Decohere should carry a superposition into the destination", func() {
			e := testEngine(2, 1)
			e.H(1)
			dest := testEngine(1, 0)
			e.Decohere(1, 1, dest)

			So(dest.Prob(0), ShouldAlmostEqual, 0.5, testTolerance)
			So(e.M(0), ShouldBeTrue)
		})

		Convey("Cohere then Decohere should round-trip the operand", func() {
			e := testEngine(2, 3)
			src := testEngine(2, 0)
			src.H(0)
			want := snapshot(src)
			start, err := e.Cohere(src)
			So(err, ShouldBeNil)

			dest := testEngine(2, 0)
			e.Decohere(start, 2, dest)

			So(e.MReg(0, 2), ShouldEqual, uint64(3))
			So(statesClose(dest.GetState(), want, 1e-8), ShouldBeTrue)
		})

		Convey("Dispose should drop the sub-register outright", func() {
			e := testEngine(3, 0b101)
			e.Dispose(1, 1)

			So(e.QubitCount(), ShouldEqual, 2)
			So(e.MReg(0, 2), ShouldEqual, uint64(0b11))
		})

		Convey("Splitting out the whole register should panic", func() {
			e := testEngine(2, 0)
			dest := testEngine(1, 0)
			So(func() { e.Decohere(0, 2, dest) }, ShouldPanic)
		})
	})
}
