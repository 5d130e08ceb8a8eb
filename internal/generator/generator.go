// Package generator assembles writing prompts from phrase pools.
//
// A Generator holds no session state: every call samples fresh values from
// its pools using the injected random source. It is not safe for concurrent
// use because *rand.Rand is not.
package generator

import (
	"fmt"
	"math/rand/v2"
	"time"

	"github.com/google/uuid"

	"github.com/manav03panchal/muse/internal/model"
)

// Generator produces prompts, twists and explanations.
type Generator struct {
	pools Pools
	rng   *rand.Rand
	now   func() time.Time
	newID func() string
}

// Option configures a Generator.
type Option func(*Generator)

// WithRand sets the random source.
func WithRand(r *rand.Rand) Option {
	return func(g *Generator) {
		if r != nil {
			g.rng = r
		}
	}
}

// WithSeed seeds a deterministic random source.
func WithSeed(seed uint64) Option {
	return WithRand(rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15)))
}

// WithClock sets the clock used for CreatedAt.
func WithClock(now func() time.Time) Option {
	return func(g *Generator) {
		if now != nil {
			g.now = now
		}
	}
}

// WithIDFunc sets the function that assigns prompt ids.
func WithIDFunc(fn func() string) Option {
	return func(g *Generator) {
		if fn != nil {
			g.newID = fn
		}
	}
}

// New creates a Generator. It fails with a configuration error if any pool
// is empty, since sampling from an empty pool is undefined.
func New(pools Pools, opts ...Option) (*Generator, error) {
	if err := pools.Validate(); err != nil {
		return nil, err
	}

	g := &Generator{
		pools: pools,
		rng:   rand.New(rand.NewPCG(uint64(time.Now().UnixNano()), rand.Uint64())),
		now:   time.Now,
		newID: NewID,
	}
	for _, opt := range opts {
		opt(g)
	}
	return g, nil
}

// NewID returns a time-ordered unique prompt id.
func NewID() string {
	id, err := uuid.NewV7()
	if err != nil {
		return uuid.NewString()
	}
	return id.String()
}

// Pools returns the pools the generator samples from.
func (g *Generator) Pools() Pools {
	return g.pools
}

// Generate builds a new prompt for the requested genre. Unrecognized genre
// text is treated as any, and such prompts are stored as mixed.
func (g *Generator) Generate(genre string) *model.Prompt {
	requested := model.ParseGenre(genre)

	character := g.pick(g.pools.Characters)
	setting := g.pick(g.pools.Settings)
	conflict := g.pick(g.pools.Conflicts)

	return &model.Prompt{
		ID:        g.newID(),
		Text:      Compose(character, setting, conflict, requested),
		Character: character,
		Setting:   setting,
		Conflict:  conflict,
		Genre:     requested.Stored(),
		CreatedAt: model.NewTimestamp(g.now()),
	}
}

// AddTwist returns a random plot twist.
func (g *Generator) AddTwist() string {
	return g.pick(g.pools.Twists)
}

// Explain returns an interpretation of p. A nil prompt yields
// NoPromptMessage.
func (g *Generator) Explain(p *model.Prompt) string {
	if p == nil {
		return NoPromptMessage
	}
	tmpl := g.pick(explanationTemplates)
	return fmt.Sprintf(tmpl, capitalize(p.Character), p.Setting, Topic(p.Conflict), p.Character)
}

// Intn returns a uniform int in [0, n). Collaborators use it so that all
// randomness in a session comes from one seedable source.
func (g *Generator) Intn(n int) int {
	if n <= 0 {
		return 0
	}
	return g.rng.IntN(n)
}

func (g *Generator) pick(items []string) string {
	return items[g.rng.IntN(len(items))]
}
