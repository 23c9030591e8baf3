package qsim

import "sync"

// Metrics counts the full-vector passes an engine has performed. The
// counters are cheap bookkeeping for callers profiling a circuit; they
// never influence simulation behavior.
type Metrics struct {
	mu sync.RWMutex

	GatePasses        int64 // 2x2 matrix applications
	PermutationPasses int64 // arithmetic / rotate / indexed re-index passes
	NormUpdates       int64 // full-vector norm recomputations
	Renormalizations  int64 // rescale passes
	Measurements      int64 // projective collapses
	Compositions      int64 // cohere / decohere / dispose passes
}

func NewMetrics() *Metrics {
	return &Metrics{}
}

func (m *Metrics) add(counter *int64) {
	if m == nil {
		return
	}
	m.mu.Lock()
	*counter++
	m.mu.Unlock()
}

// ExportMetrics snapshots the counters into a flat map.
func (m *Metrics) ExportMetrics() map[string]any {
	m.mu.RLock()
	defer m.mu.RUnlock()

	return map[string]any{
		"gate_passes":        m.GatePasses,
		"permutation_passes": m.PermutationPasses,
		"norm_updates":       m.NormUpdates,
		"renormalizations":   m.Renormalizations,
		"measurements":       m.Measurements,
		"compositions":       m.Compositions,
	}
}
