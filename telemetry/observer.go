// Package telemetry gives the engine an injectable progress/logging
// capability instead of a global mutable singleton.
package telemetry

// Observer is the minimal capability set the engine needs from a caller
// wanting visibility into a run: stage transitions, per-candidate
// progress, and warnings for recoverable situations (e.g. "no hotspots
// found", "close tracks = 0").
type Observer interface {
	OnStageStart(stage string)
	OnCandidateDone(done, total int)
	OnWarn(msg string, fields map[string]any)
}

// NoopObserver discards everything. It is the zero-configuration default
// and what tests use to keep output quiet.
type NoopObserver struct{}

func (NoopObserver) OnStageStart(string)           {}
func (NoopObserver) OnCandidateDone(int, int)      {}
func (NoopObserver) OnWarn(string, map[string]any) {}

// OrNoop returns o if non-nil, otherwise NoopObserver{}. Every package
// that accepts an Observer parameter should route it through this so
// callers can pass nil.
func OrNoop(o Observer) Observer {
	if o == nil {
		return NoopObserver{}
	}
	return o
}
