// Package sample synthesises report values for a template so the test-run
// preview and payload validation can be exercised without real data.
package sample

import (
	"math"
	"math/rand"
	"strconv"
	"sync"
	"time"

	"github.com/goliatone/go-reportschema/pkg/model"
)

const (
	defaultNumberMin = 1
	defaultNumberMax = 100
	dateLayout       = "2006-01-02"
)

// Option customises a Generator.
type Option func(*Generator)

// WithSeed seeds the generator's pseudo-random source.
func WithSeed(seed int64) Option {
	return func(g *Generator) {
		g.rnd = rand.New(rand.NewSource(seed))
	}
}

// WithRand injects a pseudo-random source. The Generator takes ownership of
// it.
func WithRand(rnd *rand.Rand) Option {
	return func(g *Generator) {
		if rnd != nil {
			g.rnd = rnd
		}
	}
}

// WithClock overrides the clock used for date values and the default seed.
func WithClock(now func() time.Time) Option {
	return func(g *Generator) {
		if now != nil {
			g.now = now
		}
	}
}

// Generator produces sample values. It guards its random source with a mutex
// so a single Generator may serve concurrent callers.
type Generator struct {
	mu  sync.Mutex
	rnd *rand.Rand
	now func() time.Time
}

// New constructs a Generator. Without WithSeed or WithRand the source is
// seeded from the clock, so successive runs differ.
func New(options ...Option) *Generator {
	g := &Generator{now: time.Now}
	for _, opt := range options {
		if opt == nil {
			continue
		}
		opt(g)
	}
	if g.rnd == nil {
		g.rnd = rand.New(rand.NewSource(g.now().UnixNano()))
	}
	return g
}

// Generate returns one value per field keyed by model.ValueKeys. Select and
// multiselect fields without options are omitted.
func (g *Generator) Generate(t model.Template) map[string]any {
	g.mu.Lock()
	defer g.mu.Unlock()

	values := make(map[string]any, t.FieldCount())
	keys := model.ValueKeys(t)
	fileIndex := 0
	t.Walk(func(ref model.FieldRef, _ model.Section, field model.Field) {
		if value, ok := g.value(field, &fileIndex); ok {
			values[keys[ref]] = value
		}
	})
	return values
}

func (g *Generator) value(field model.Field, fileIndex *int) (any, bool) {
	label := field.Label
	if label == "" {
		label = model.DefaultLabeler(field.Name)
	}

	switch field.Type {
	case model.FieldTypeText:
		return "Sample " + label, true
	case model.FieldTypeTextarea:
		return "Sample " + label + ". Additional observations recorded during the test run.", true
	case model.FieldTypeNumber:
		min, max := numberRange(field.Validation)
		return min + g.rnd.Intn(max-min+1), true
	case model.FieldTypeDate:
		return g.now().Format(dateLayout), true
	case model.FieldTypeSelect:
		if len(field.Options) == 0 {
			return nil, false
		}
		return field.Options[g.rnd.Intn(len(field.Options))], true
	case model.FieldTypeMultiselect:
		if len(field.Options) == 0 {
			return nil, false
		}
		count := 1 + g.rnd.Intn(len(field.Options))
		return append([]string(nil), field.Options[:count]...), true
	case model.FieldTypeCheckbox:
		return g.rnd.Intn(2) == 1, true
	case model.FieldTypeFile:
		*fileIndex++
		return field.Name + "_" + strconv.Itoa(*fileIndex) + ".pdf", true
	case model.FieldTypeImage:
		*fileIndex++
		return field.Name + "_" + strconv.Itoa(*fileIndex) + ".jpg", true
	}
	return nil, false
}

// numberRange returns [1,100] unless the constraints describe a non-empty
// integer range that the default would violate, in which case the range is
// clamped to the constraints.
func numberRange(c *model.Constraints) (int, int) {
	min, max := defaultNumberMin, defaultNumberMax
	if c.Empty() {
		return min, max
	}
	lo, hi := float64(min), float64(max)
	if c.Min != nil {
		lo = math.Max(lo, math.Ceil(*c.Min))
	}
	if c.Max != nil {
		hi = math.Min(hi, math.Floor(*c.Max))
	}
	if lo <= hi {
		return int(lo), int(hi)
	}

	span := defaultNumberMax - defaultNumberMin
	switch {
	case c.Min != nil && c.Max != nil:
		if math.Ceil(*c.Min) <= math.Floor(*c.Max) {
			return int(math.Ceil(*c.Min)), int(math.Floor(*c.Max))
		}
	case c.Min != nil:
		lower := int(math.Ceil(*c.Min))
		return lower, lower + span
	case c.Max != nil:
		upper := int(math.Floor(*c.Max))
		return upper - span, upper
	}
	return min, max
}

var defaultGenerator = New()

// Generate produces sample values using a shared clock-seeded generator.
func Generate(t model.Template) map[string]any {
	return defaultGenerator.Generate(t)
}
