package qsim

import (
	"math"

	"github.com/theapemachine/errnie"
)

// UpdateRunningNorm recomputes the cached squared-norm with a full
// reduction pass.
func (e *CPUEngine) UpdateRunningNorm() {
	e.metrics.add(&e.metrics.NormUpdates)
	v := e.stateVec
	e.runningNorm = e.disp.reduceSum(e.maxQPower, func(i uint64) float64 {
		return normSqrd(v[i])
	})
}

/*
NormalizeState rescales every amplitude so the squared-norm equals the
target (1 by default), recomputing the running norm first if it is
stale. A running norm of (approximately) zero means there is no
probability mass to rescale; the pass is skipped rather than dividing
by zero.
*/
func (e *CPUEngine) NormalizeState(nrm ...float64) {
	target := 1.0
	if len(nrm) > 0 {
		target = nrm[0]
	}
	if e.runningNorm == normStale {
		e.UpdateRunningNorm()
	}
	if e.runningNorm <= e.config.NormTolerance {
		return
	}
	if math.Abs(e.runningNorm-target) <= e.config.NormTolerance {
		e.runningNorm = target
		return
	}

	e.metrics.add(&e.metrics.Renormalizations)
	scale := complex(1/math.Sqrt(e.runningNorm/target), 0)
	v := e.stateVec
	e.disp.run(e.maxQPower, func(i uint64) {
		v[i] *= scale
	})
	e.runningNorm = target
}

// Prob returns the probability of measuring the qubit as 1: the sum of
// squared magnitudes over every basis index with that bit set.
func (e *CPUEngine) Prob(qubit int) float64 {
	e.checkQubit(qubit)
	if e.runningNorm == normStale {
		e.UpdateRunningNorm()
	}
	if e.doNormalize && math.Abs(e.runningNorm-1) > e.config.NormTolerance {
		e.NormalizeState()
	}

	qPower := uint64(1) << uint(qubit)
	v := e.stateVec
	oneChance := e.disp.reduceSum(e.maxQPower>>1, func(lcv uint64) float64 {
		iLow := lcv & (qPower - 1)
		i := iLow | ((lcv ^ iLow) << 1) | qPower
		return normSqrd(v[i])
	})

	if e.runningNorm > e.config.NormTolerance {
		oneChance /= e.runningNorm
	}
	return clampProb(oneChance)
}

// ProbAll returns the probability of one specific basis state.
func (e *CPUEngine) ProbAll(fullRegister uint64) float64 {
	if fullRegister >= e.maxQPower {
		panic("qsim: basis index out of range")
	}
	if e.runningNorm == normStale {
		e.UpdateRunningNorm()
	}
	p := normSqrd(e.stateVec[fullRegister])
	if e.runningNorm > e.config.NormTolerance {
		p /= e.runningNorm
	}
	return clampProb(p)
}

// M performs a projective measurement of one qubit, drawing the outcome
// from the shared random source.
func (e *CPUEngine) M(qubit int) bool {
	return e.ForceM(qubit, false, false, -1)
}

/*
ForceM collapses a qubit to a definite value. When doForce is set the
caller picks the outcome; otherwise it is drawn with probability
Prob(qubit). Amplitudes inconsistent with the outcome are zeroed and the
survivors rescaled by the surviving probability mass, or by nrmlzr when
the caller already knows it (pass a non-positive nrmlzr to compute).

Forcing an outcome whose probability is (approximately) zero projects
without rescaling: the residual amplitude is treated as zero and the
running norm drops to 0, so the next normalization is a no-op instead of
a division by zero.
*/
func (e *CPUEngine) ForceM(qubit int, result bool, doForce bool, nrmlzr float64) bool {
	e.checkQubit(qubit)
	oneChance := e.Prob(qubit)
	if !doForce {
		result = e.rng.Float64() < oneChance
	}
	e.metrics.add(&e.metrics.Measurements)

	nrm := nrmlzr
	if nrm <= 0 {
		if result {
			nrm = oneChance
		} else {
			nrm = 1 - oneChance
		}
	}

	qPower := uint64(1) << uint(qubit)
	v := e.stateVec

	if nrm <= e.config.NormTolerance {
		errnie.Info("qsim collapse - qubit %d forced to zero-probability outcome %t", qubit, result)
		e.disp.run(e.maxQPower, func(i uint64) {
			if (i&qPower != 0) != result {
				v[i] = 0
			}
		})
		e.runningNorm = 0
		return result
	}

	scale := complex(1/math.Sqrt(nrm), 0)
	e.disp.run(e.maxQPower, func(i uint64) {
		if (i&qPower != 0) == result {
			v[i] *= scale
		} else {
			v[i] = 0
		}
	})
	e.runningNorm = 1
	return result
}

func clampProb(p float64) float64 {
	if p < 0 {
		return 0
	}
	if p > 1 {
		return 1
	}
	return p
}
