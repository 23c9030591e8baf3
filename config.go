package qsim

import "runtime"

// Config carries the engine knobs that are fixed at construction.
type Config struct {
	// Workers is the size of the fixed pool used for parallel passes.
	Workers int
	// ParallelThreshold is the vector length below which passes run
	// sequentially on the calling goroutine.
	ParallelThreshold uint64
	// NormTolerance is the allowed drift of the running norm from 1
	// before a renormalization pass is forced.
	NormTolerance float64
	// MaxQubits caps the register size; one more qubit doubles the
	// amplitude vector, so this is the memory guard.
	MaxQubits int
}

func NewConfig() *Config {
	return &Config{
		Workers:           runtime.NumCPU(),
		ParallelThreshold: 1 << 12,
		NormTolerance:     1e-9,
		MaxQubits:         30,
	}
}
