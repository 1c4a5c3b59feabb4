package usecase

import (
	"errors"
	"fmt"
	"log"
	"math"
	"math/rand/v2"
	"time"

	"github.com/google/uuid"

	"github.com/atvirokodosprendimai/dataforge/internal/core/domain"
	"github.com/atvirokodosprendimai/dataforge/internal/core/ports"
)

const (
	// defaultRate is the chance an optional field with a default yields the
	// default instead of a fresh value. A tunable heuristic modeling sparsity
	// in optional data, not a contract.
	defaultRate = 0.3

	maxStringLength     = 100
	fallbackStringMax   = 50
	fallbackIntegerMax  = 1000
	fallbackFloatMax    = 1000.0
	generatedDateWindow = 365 * 30 // days
)

const letters = "abcdefghijklmnopqrstuvwxyz"

var emailDomains = []string{"example.com", "example.org", "example.net", "test.dev"}

var urlTLDs = []string{"com", "org", "net", "io", "dev"}

// ValueGenerator synthesizes one value per field spec, honoring the field's
// constraints so that generated data always validates against its own schema.
type ValueGenerator struct {
	rng      *rand.Rand
	provider ports.FakeDataProvider
	locale   string
	rate     float64
}

type GeneratorOption func(*ValueGenerator)

// WithSeed makes generation reproducible.
func WithSeed(seed uint64) GeneratorOption {
	return func(g *ValueGenerator) {
		g.rng = rand.New(rand.NewPCG(seed, seed))
	}
}

func WithLocale(locale string) GeneratorOption {
	return func(g *ValueGenerator) { g.locale = locale }
}

// WithDefaultRate tunes the optional-default probability. Rate 0 disables
// defaults entirely, 1 makes optional fields with defaults deterministic.
func WithDefaultRate(rate float64) GeneratorOption {
	return func(g *ValueGenerator) { g.rate = rate }
}

// NewValueGenerator builds a generator backed by the given realistic-data
// provider. A nil provider disables faker hints; generation then always uses
// generic per-type synthesis.
func NewValueGenerator(provider ports.FakeDataProvider, opts ...GeneratorOption) *ValueGenerator {
	g := &ValueGenerator{
		rng:      rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64())),
		provider: provider,
		locale:   "en_US",
		rate:     defaultRate,
	}
	for _, opt := range opts {
		opt(g)
	}
	return g
}

// Value produces one synthetic value for the field. Selection precedence:
// declared choices, then the optional-field default, then the faker hint, then
// generic per-type synthesis. The only failure mode is a field spec whose type
// is outside the closed DataType set.
func (g *ValueGenerator) Value(field domain.FieldSpec) (any, error) {
	if len(field.Choices) > 0 {
		return field.Choices[g.rng.IntN(len(field.Choices))], nil
	}

	if !field.Required && field.DefaultValue != nil && g.rng.Float64() < g.rate {
		return field.DefaultValue, nil
	}

	if field.FakerProvider != "" && g.provider != nil {
		v, err := g.provider.Value(field.FakerProvider, g.locale)
		if err == nil {
			return v, nil
		}
		if !errors.Is(err, domain.ErrUnknownCategory) {
			return nil, fmt.Errorf("faker provider %q: %w", field.FakerProvider, err)
		}
		log.Printf("unknown faker category %q for field %q, using generic value", field.FakerProvider, field.Name)
	}

	switch field.Type {
	case domain.TypeString:
		return g.genString(field), nil
	case domain.TypeInteger:
		return g.genInteger(field), nil
	case domain.TypeFloat:
		return g.genFloat(field), nil
	case domain.TypeBoolean:
		return g.rng.IntN(2) == 0, nil
	case domain.TypeDate:
		days := g.rng.IntN(generatedDateWindow)
		return time.Now().UTC().AddDate(0, 0, -days).Format("2006-01-02"), nil
	case domain.TypeDateTime:
		hours := g.rng.Int64N(365 * 24)
		return time.Now().UTC().Add(-time.Duration(hours) * time.Hour).Format(time.RFC3339), nil
	case domain.TypeEmail:
		return g.randWord(8) + "@" + emailDomains[g.rng.IntN(len(emailDomains))], nil
	case domain.TypePhone:
		return g.genPhone(), nil
	case domain.TypeURL:
		return "https://" + g.randWord(8) + "." + urlTLDs[g.rng.IntN(len(urlTLDs))], nil
	case domain.TypeUUID:
		return uuid.NewString(), nil
	case domain.TypeJSON:
		return map[string]any{"key": g.randWord(6), "value": g.randWord(10)}, nil
	}
	return nil, fmt.Errorf("%w: field %q: %q", domain.ErrUnknownDataType, field.Name, field.Type)
}

func (g *ValueGenerator) genString(field domain.FieldSpec) string {
	lo := 1
	if field.MinLength != nil {
		lo = *field.MinLength
	}
	hi := fallbackStringMax
	if field.MaxLength != nil {
		hi = *field.MaxLength
	}
	if hi > maxStringLength {
		hi = maxStringLength
	}
	if hi < lo {
		hi = lo
	}
	return g.randWord(lo + g.rng.IntN(hi-lo+1))
}

func (g *ValueGenerator) genInteger(field domain.FieldSpec) int {
	lo := int64(0)
	if field.MinValue != nil {
		lo = int64(math.Ceil(*field.MinValue))
	}
	hi := int64(fallbackIntegerMax)
	if field.MaxValue != nil {
		hi = int64(math.Floor(*field.MaxValue))
	}
	if hi < lo {
		hi = lo
	}
	return int(lo + g.rng.Int64N(hi-lo+1))
}

func (g *ValueGenerator) genFloat(field domain.FieldSpec) float64 {
	lo := 0.0
	if field.MinValue != nil {
		lo = *field.MinValue
	}
	hi := fallbackFloatMax
	if field.MaxValue != nil {
		hi = *field.MaxValue
	}
	if hi < lo {
		hi = lo
	}
	v := math.Round((lo+g.rng.Float64()*(hi-lo))*100) / 100
	// Rounding to 2 decimals can nudge the value past a tight bound.
	return math.Min(math.Max(v, lo), hi)
}

func (g *ValueGenerator) genPhone() string {
	digits := make([]byte, 10)
	for i := range digits {
		digits[i] = byte('0' + g.rng.IntN(10))
	}
	// Avoid a leading zero in the subscriber number.
	if digits[0] == '0' {
		digits[0] = '5'
	}
	return "+1" + string(digits)
}

func (g *ValueGenerator) randWord(n int) string {
	if n <= 0 {
		n = 1
	}
	b := make([]byte, n)
	for i := range b {
		b[i] = letters[g.rng.IntN(len(letters))]
	}
	return string(b)
}

// RecordGenerator composes field specs into complete records.
type RecordGenerator struct {
	values *ValueGenerator
}

func NewRecordGenerator(values *ValueGenerator) *RecordGenerator {
	return &RecordGenerator{values: values}
}

// Generate produces count independent records conforming to the schema.
// Fields within a record are generated independently; no cross-field
// consistency is enforced.
func (g *RecordGenerator) Generate(schema domain.Schema, count int) ([]domain.Record, error) {
	if count < 0 {
		return nil, fmt.Errorf("record count must not be negative, got %d", count)
	}

	records := make([]domain.Record, 0, count)
	for i := 0; i < count; i++ {
		rec := make(domain.Record, len(schema.Fields))
		for _, field := range schema.Fields {
			v, err := g.values.Value(field)
			if err != nil {
				return nil, fmt.Errorf("generate record %d: %w", i, err)
			}
			rec[field.Name] = v
		}
		records = append(records, rec)
	}
	return records, nil
}
