package kmeans

import (
	"log/slog"
	"math/rand/v2"
)

// DefaultRounds is the number of update/assignment rounds Fit runs unless
// WithRounds says otherwise.
const DefaultRounds = 100

type options struct {
	rounds int
	rnd    *rand.Rand
	logger *slog.Logger
}

// Option configures Fit.
type Option func(*options)

// WithRounds sets the fixed number of refinement rounds.
func WithRounds(n int) Option {
	return func(o *options) {
		o.rounds = n
	}
}

// WithRand sets the random source used to reseed empty clusters. The model
// takes exclusive use of r for the duration of Fit.
func WithRand(r *rand.Rand) Option {
	return func(o *options) {
		o.rnd = r
	}
}

// WithSeed seeds a PCG source, making Fit reproducible for a given input.
func WithSeed(seed uint64) Option {
	return WithRand(rand.New(rand.NewPCG(seed, seed)))
}

// WithLogger sets the logger Fit reports to. slog.Default is used otherwise.
func WithLogger(logger *slog.Logger) Option {
	return func(o *options) {
		o.logger = logger
	}
}

func buildOptions(opts []Option) options {
	o := options{
		rounds: DefaultRounds,
	}
	for _, opt := range opts {
		opt(&o)
	}
	if o.rnd == nil {
		o.rnd = rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64()))
	}
	if o.logger == nil {
		o.logger = slog.Default()
	}
	return o
}
