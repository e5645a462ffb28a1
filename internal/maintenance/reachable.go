package maintenance

import (
	"context"
	"sync"
)

// ReachableHook wraps a Prober and runs fn after a probe shows the backend
// is reachable, meaning the outcome is anything but a connectivity
// failure. fn is retried on later probes until it succeeds once. When fn
// succeeds the probe is repeated so the result reflects fn's work.
type ReachableHook struct {
	prober     Prober
	classifier *Classifier
	fn         func(ctx context.Context) error
	onError    func(error)

	mu   sync.Mutex
	done bool
}

// NewReachableHook builds a ReachableHook. A nil classifier uses
// DefaultRules. onError, if set, receives fn's failures.
func NewReachableHook(p Prober, classifier *Classifier, fn func(ctx context.Context) error, onError func(error)) *ReachableHook {
	if classifier == nil {
		classifier = NewClassifier(nil)
	}
	return &ReachableHook{
		prober:     p,
		classifier: classifier,
		fn:         fn,
		onError:    onError,
	}
}

func (h *ReachableHook) Probe(ctx context.Context) error {
	err := h.prober.Probe(ctx)
	if h.classifier.Classify(err) == OutcomeConnectivityFailure {
		return err
	}

	h.mu.Lock()
	defer h.mu.Unlock()
	if h.done {
		return err
	}
	if hookErr := h.fn(ctx); hookErr != nil {
		if h.onError != nil {
			h.onError(hookErr)
		}
		return err
	}
	h.done = true
	return h.prober.Probe(ctx)
}

// Done reports whether fn has succeeded.
func (h *ReachableHook) Done() bool {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.done
}
