package metrics

// Nop is a no-op metrics recorder for tests and metric-less deployments.
type Nop struct{}

func (Nop) RecordCycle(float64)              {}
func (Nop) RecordFinalScore(string, float64) {}
func (Nop) RecordIndicatorError(string)      {}
func (Nop) RecordCacheHit()                  {}
func (Nop) RecordCacheMiss()                 {}
func (Nop) RecordSymbolSkipped(string)       {}
