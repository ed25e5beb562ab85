package generator

import (
	"math/rand"
	"sync"
	"time"

	"github.com/moamenhredeen/oasprobe/internal/models"
)

const (
	stringLength = 10
	intMin       = 1
	intMax       = 100
	arrayLength  = 5
	arrayItemMax = 10
)

const letters = "abcdefghijklmnopqrstuvwxyzABCDEFGHIJKLMNOPQRSTUVWXYZ"

// GenFunc produces a raw value for one parameter type
type GenFunc func(rng *rand.Rand) interface{}

// Generator synthesizes parameter values from declared types
type Generator struct {
	mu         sync.Mutex
	rng        *rand.Rand
	generators map[models.ParameterType]GenFunc
}

// NewGenerator creates a generator seeded from the clock
func NewGenerator() *Generator {
	return NewWithSource(rand.NewSource(time.Now().UnixNano()))
}

// NewSeeded creates a generator whose output is reproducible for a given seed
func NewSeeded(seed int64) *Generator {
	return NewWithSource(rand.NewSource(seed))
}

// NewWithSource creates a generator drawing from src with the default table registered
func NewWithSource(src rand.Source) *Generator {
	g := &Generator{
		rng:        rand.New(src),
		generators: make(map[models.ParameterType]GenFunc),
	}
	g.Register(models.TypeString, generateString)
	g.Register(models.TypeInteger, generateInteger)
	g.Register(models.TypeBoolean, generateBoolean)
	g.Register(models.TypeNumber, generateNumber)
	g.Register(models.TypeArray, generateArray)
	return g
}

// Register installs fn for type t, replacing any previous generator
func (g *Generator) Register(t models.ParameterType, fn GenFunc) {
	g.mu.Lock()
	defer g.mu.Unlock()
	if fn == nil {
		delete(g.generators, t)
		return
	}
	g.generators[t] = fn
}

// Synthesize generates a value for t. It returns false when no generator
// is registered, meaning the parameter is omitted from the request.
func (g *Generator) Synthesize(t models.ParameterType) (models.Value, bool) {
	g.mu.Lock()
	defer g.mu.Unlock()

	fn, ok := g.generators[t]
	if !ok {
		return models.Value{Type: t}, false
	}
	return models.Value{Type: t, Raw: fn(g.rng)}, true
}

// generateString returns 10 random ASCII letters
func generateString(rng *rand.Rand) interface{} {
	b := make([]byte, stringLength)
	for i := range b {
		b[i] = letters[rng.Intn(len(letters))]
	}
	return string(b)
}

// generateInteger returns an integer in [1,100]
func generateInteger(rng *rand.Rand) interface{} {
	return intMin + rng.Intn(intMax-intMin+1)
}

func generateBoolean(rng *rand.Rand) interface{} {
	return rng.Intn(2) == 1
}

// generateNumber returns a float in [1,100)
func generateNumber(rng *rand.Rand) interface{} {
	return float64(intMin) + rng.Float64()*float64(intMax-intMin)
}

// generateArray returns 5 integers in [1,10]
func generateArray(rng *rand.Rand) interface{} {
	items := make([]int, arrayLength)
	for i := range items {
		items[i] = 1 + rng.Intn(arrayItemMax)
	}
	return items
}
