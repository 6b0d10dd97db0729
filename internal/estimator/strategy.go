// Package estimator implements the Monte-Carlo path-tracing light-transport
// estimator: direct lighting via BVH-sampled area lights, indirect lighting
// via the configured termination strategy.
package estimator

// Kind distinguishes the two equivalent indirect-bounce termination
// policies; exactly one is configured per render.
type Kind int

const (
	RussianRoulette Kind = iota
	MaximumBounces
)

// Strategy configures how the estimator terminates its recursive indirect
// bounce. P is meaningful only for RussianRoulette (continuation
// probability in (0,1]); N is meaningful only for MaximumBounces (bounce
// cap, >= 1).
type Strategy struct {
	Kind Kind
	P    float64
	N    int
}

func NewRussianRoulette(p float64) Strategy {
	return Strategy{Kind: RussianRoulette, P: p}
}

func NewMaximumBounces(n int) Strategy {
	return Strategy{Kind: MaximumBounces, N: n}
}

// continueResult carries whether the estimator keeps bouncing at this depth
// and, if so, the importance weight to apply to the recursive contribution.
type continueResult struct {
	Continue bool
	Weight   float64
}

func (s Strategy) decide(depth int, u float64) continueResult {
	switch s.Kind {
	case MaximumBounces:
		return continueResult{Continue: depth < s.N, Weight: 1}
	default: // RussianRoulette
		if u < s.P {
			return continueResult{Continue: true, Weight: 1 / s.P}
		}
		return continueResult{Continue: false}
	}
}
