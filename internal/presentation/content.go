package presentation

import (
	"math/rand/v2"
	"sync"
)

// IndexProvider produces an index in [0, n) for n > 0
type IndexProvider interface {
	Intn(n int) int
}

// RandomIndex draws indexes from the process-wide random source
type RandomIndex struct{}

// Intn implements IndexProvider
func (RandomIndex) Intn(n int) int {
	return rand.IntN(n)
}

// SeededIndex is a reproducible IndexProvider, safe for concurrent use
type SeededIndex struct {
	mu  sync.Mutex
	rng *rand.Rand
}

// NewSeededIndex creates a provider whose sequence is fixed by seed
func NewSeededIndex(seed uint64) *SeededIndex {
	return &SeededIndex{rng: rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15))}
}

// Intn implements IndexProvider
func (s *SeededIndex) Intn(n int) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.rng.IntN(n)
}

// FixedIndex always returns the same index, wrapped into range
type FixedIndex int

// Intn implements IndexProvider
func (f FixedIndex) Intn(n int) int {
	return wrapIndex(int(f), n)
}

// ContentBundle is the auxiliary content shown next to a reading
type ContentBundle struct {
	Icon       string               `json:"icon"`
	Activities []ActivitySuggestion `json:"activities"`
	FunFact    string               `json:"fun_fact"`
	Joke       string               `json:"joke"`
}

// Selector picks activities, a fun fact and a joke
type Selector struct {
	rng IndexProvider
}

// NewSelector creates a selector. A nil provider falls back to RandomIndex.
func NewSelector(rng IndexProvider) *Selector {
	if rng == nil {
		rng = RandomIndex{}
	}
	return &Selector{rng: rng}
}

// Select builds the content bundle for a category. The icon is left for the caller.
func (s *Selector) Select(category Category) ContentBundle {
	return ContentBundle{
		Activities: Activities(category),
		FunFact:    funFacts[wrapIndex(s.rng.Intn(len(funFacts)), len(funFacts))],
		Joke:       jokes[wrapIndex(s.rng.Intn(len(jokes)), len(jokes))],
	}
}

// Activities returns a copy of the catalog entries for a category in catalog order.
// Unknown categories get the sunny set.
func Activities(category Category) []ActivitySuggestion {
	set, ok := activities[category]
	if !ok {
		set = activities[Sunny]
	}
	out := make([]ActivitySuggestion, len(set))
	copy(out, set[:])
	return out
}

// FunFacts returns a copy of the fun fact list
func FunFacts() []string {
	return append([]string(nil), funFacts...)
}

// Jokes returns a copy of the joke list
func Jokes() []string {
	return append([]string(nil), jokes...)
}

func wrapIndex(i, n int) int {
	return ((i % n) + n) % n
}
