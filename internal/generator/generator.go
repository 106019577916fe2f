// Package generator builds template remedies from a free-text query. Nothing is
// inferred: names, categories and images come from fixed keyword tables, the
// rest is drawn from per-difficulty pools.
package generator

import (
	"math/rand/v2"
	"strconv"
	"strings"
	"sync"
	"time"
	"unicode"
	"unicode/utf8"

	"github.com/MrSnakeDoc/healthvibe/internal/domain"
)

// Variants is the number of remedies returned per query, one per approach.
const Variants = len(approaches)

const base36 = "0123456789abcdefghijklmnopqrstuvwxyz"

type Generator struct {
	mu  sync.Mutex
	rng *rand.Rand
	now func() time.Time
}

type Option func(*Generator)

// WithClock overrides the clock used for IDs.
func WithClock(now func() time.Time) Option {
	return func(g *Generator) { g.now = now }
}

// New returns a generator drawing from a PCG source. A zero seed seeds from
// runtime entropy; any other seed makes the sampled content reproducible. IDs
// also carry the clock, see WithClock.
func New(seed uint64, opts ...Option) *Generator {
	if seed == 0 {
		seed = rand.Uint64()
	}
	g := &Generator{
		rng: rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15)),
		now: time.Now,
	}
	for _, opt := range opts {
		opt(g)
	}
	return g
}

// Generate returns exactly three remedies for query, in approach order
// Traditional Herbal, Modern Natural, Advanced Blend.
func (g *Generator) Generate(query string) []domain.GeneratedRemedy {
	g.mu.Lock()
	defer g.mu.Unlock()

	lower := strings.ToLower(query)
	base := baseName(query, lower)
	category := firstMatch(categories, lower, defaultCategory)
	millis := g.now().UnixMilli()

	out := make([]domain.GeneratedRemedy, 0, Variants)
	for i, a := range approaches {
		out = append(out, domain.GeneratedRemedy{
			Remedy: domain.Remedy{
				ID:              g.id(millis, i),
				Name:            a.name + " " + base,
				Description:     "A carefully crafted natural remedy designed to address " + query + ". " + a.sentence,
				Category:        category,
				Ingredients:     g.sample(ingredients[a.difficulty]),
				Instructions:    clone(instructions[a.difficulty]),
				PreparationTime: g.pick(prepTimes[a.difficulty]),
				ReliefTime:      g.pick(reliefTimes),
				Precautions:     clone(precautions),
				Difficulty:      a.difficulty,
				Effectiveness:   a.effectiveness,
			},
			Benefits:    clone(benefits),
			SearchQuery: query,
			Generated:   true,
			Image:       g.image(lower),
		})
	}
	return out
}

// CategoryFor reports the category a query maps to.
func CategoryFor(query string) string {
	return firstMatch(categories, strings.ToLower(query), defaultCategory)
}

func baseName(query, lower string) string {
	if v := firstMatch(baseNames, lower, ""); v != "" {
		return v
	}
	return capitalize(query) + " Remedy"
}

func firstMatch(table []keywordEntry, lower, def string) string {
	for _, e := range table {
		if strings.Contains(lower, e.keyword) {
			return e.value
		}
	}
	return def
}

func capitalize(s string) string {
	r, size := utf8.DecodeRuneInString(s)
	if r == utf8.RuneError {
		return s
	}
	return string(unicode.ToUpper(r)) + s[size:]
}

// callers hold g.mu for the helpers below

func (g *Generator) id(millis int64, index int) string {
	var b strings.Builder
	b.WriteString("ai-")
	b.WriteString(strconv.FormatInt(millis, 10))
	b.WriteByte('-')
	b.WriteString(strconv.Itoa(index))
	b.WriteByte('-')
	for range 9 {
		b.WriteByte(base36[g.rng.IntN(len(base36))])
	}
	return b.String()
}

func (g *Generator) pick(pool []string) string {
	return pool[g.rng.IntN(len(pool))]
}

// sample draws tier.pick distinct ingredients.
func (g *Generator) sample(tier ingredientTier) []string {
	pool := clone(tier.pool)
	g.rng.Shuffle(len(pool), func(i, j int) { pool[i], pool[j] = pool[j], pool[i] })
	return pool[:tier.pick]
}

func (g *Generator) image(lower string) string {
	if photo := firstMatch(images, lower, ""); photo != "" {
		return imageURL(photo)
	}
	return imageURL(g.pick(defaultImages))
}

func clone(s []string) []string {
	return append([]string(nil), s...)
}
