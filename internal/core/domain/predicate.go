package domain

import (
	"regexp"
	"strings"

	"github.com/google/uuid"
)

// Predicate is a custom validation rule applied to one field value.
type Predicate func(value any) bool

// Predicates is a named predicate set. Schemas reference predicates by key
// (FieldSpec.Validator) so persisted schema documents stay declarative; the
// behavior itself is registered by the process that runs validation.
type Predicates map[string]Predicate

// Register adds or replaces a predicate and returns the set for chaining.
func (p Predicates) Register(name string, pred Predicate) Predicates {
	p[name] = pred
	return p
}

var (
	emailPattern = regexp.MustCompile(`^[a-zA-Z0-9._%+-]+@[a-zA-Z0-9.-]+\.[a-zA-Z]{2,}$`)
	phonePattern = regexp.MustCompile(`^\+?[0-9][0-9 ()-]{5,18}[0-9]$`)
	urlPattern   = regexp.MustCompile(`^https?://[\w.-]+\.[a-zA-Z]{2,}`)
)

// BuiltinPredicates returns the predicate set every validator starts from.
func BuiltinPredicates() Predicates {
	return Predicates{
		"email": stringPredicate(emailPattern.MatchString),
		"phone": stringPredicate(func(s string) bool {
			return phonePattern.MatchString(strings.NewReplacer("-", "", " ", "").Replace(s))
		}),
		"url": stringPredicate(urlPattern.MatchString),
		"uuid": stringPredicate(func(s string) bool {
			_, err := uuid.Parse(s)
			return err == nil
		}),
		"non_empty": stringPredicate(func(s string) bool {
			return strings.TrimSpace(s) != ""
		}),
	}
}

func stringPredicate(fn func(string) bool) Predicate {
	return func(value any) bool {
		s, ok := value.(string)
		return ok && fn(s)
	}
}
