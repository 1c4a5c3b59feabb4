package ports

// FakeDataProvider produces realistic values for a named category ("email",
// "first_name", ...). Implementations return an error wrapping
// domain.ErrUnknownCategory for categories they do not know; the generator
// treats that as a cue to fall back to generic synthesis.
type FakeDataProvider interface {
	Value(category, locale string) (any, error)
}
