package qsim

import (
	"math/rand/v2"
	"testing"

	. "github.com/smartystreets/goconvey/convey"
)

func TestMeasurement(t *testing.T) {
	Convey("Given a qubit in superposition", t, func() {
		Convey("Measurement should collapse and stay collapsed", func() {
			e := testEngine(1, 0)
			e.H(0)
			first := e.M(0)

			So(e.M(0), ShouldEqual, first)
			want := 0.0
			if first {
				want = 1.0
			}
			So(e.Prob(0), ShouldAlmostEqual, want, testTolerance)
			So(e.GetNorm(true), ShouldAlmostEqual, 1.0, testTolerance)
		})

		Convey("Measuring one half of a Bell pair should fix the other", func() {
			e := testEngine(2, 0)
			e.H(0)
			e.CNOT(0, 1)

			So(e.M(0), ShouldEqual, e.M(1))
		})

		Convey("ForceM should impose the requested outcome", func() {
			e := testEngine(1, 0)
			e.H(0)

			So(e.ForceM(0, true, true, -1), ShouldBeTrue)
			So(e.Prob(0), ShouldAlmostEqual, 1.0, testTolerance)
		})

		Convey("Forcing a zero-probability outcome should empty the register", func() {
			e := testEngine(1, 0)

			So(e.ForceM(0, true, true, -1), ShouldBeTrue)
			So(e.GetNorm(true), ShouldAlmostEqual, 0.0, testTolerance)
			So(e.Prob(0), ShouldAlmostEqual, 0.0, testTolerance)
		})

		Convey("A caller-supplied normalizer should be honored", func() {
			e := testEngine(1, 0)
			e.H(0)
			e.ForceM(0, false, true, 0.5)

			So(e.Prob(0), ShouldAlmostEqual, 0.0, testTolerance)
			So(e.GetNorm(true), ShouldAlmostEqual, 1.0, testTolerance)
		})
	})
}

func TestMeasurementStatistics(t *testing.T) {
	Convey("Given many measurements of an equal superposition", t, func() {
		rng := rand.New(rand.NewPCG(2026, 1))
		const trials = 10000

		ones := 0
		for n := 0; n < trials; n++ {
			e := testEngine(1, 0, WithRandomSource(rng))
			e.H(0)
			if e.M(0) {
				ones++
			}
		}

		Convey("The outcome frequency should match the probability", func() {
			So(float64(ones)/trials, ShouldAlmostEqual, 0.5, 0.02)
		})
	})
}

func TestNormMaintenance(t *testing.T) {
	Convey("Given an unnormalized amplitude vector", t, func() {
		Convey("NormalizeState should rescale it to unit norm", func() {
			e := testEngine(1, 0)
			e.SetQuantumState([]Complex{2, 0})
			e.UpdateRunningNorm()

			So(e.GetNorm(false), ShouldAlmostEqual, 4.0, testTolerance)

			e.NormalizeState()
			So(e.GetNorm(true), ShouldAlmostEqual, 1.0, testTolerance)
			So(e.ProbAll(0), ShouldAlmostEqual, 1.0, testTolerance)
		})

		Convey("Probabilities should be reported against the running norm", func() {
			e := testEngine(1, 0, WithNormalization(false))
			e.SetQuantumState([]Complex{complex(1, 0), complex(1, 0)})
			e.UpdateRunningNorm()

			So(e.Prob(0), ShouldAlmostEqual, 0.5, testTolerance)
		})

		Convey("Disabled normalization should leave drift in place", func() {
			e := testEngine(1, 0, WithNormalization(false))
			e.SetQuantumState([]Complex{complex(0.5, 0), 0})
			e.UpdateRunningNorm()

			So(e.GetNorm(false), ShouldAlmostEqual, 0.25, testTolerance)
		})
	})
}
