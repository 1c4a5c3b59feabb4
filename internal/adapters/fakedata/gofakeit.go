// Package fakedata adapts gofakeit to the engine's realistic-data port.
package fakedata

import (
	"fmt"
	"strings"
	"time"

	"github.com/brianvoe/gofakeit/v7"

	"github.com/atvirokodosprendimai/dataforge/internal/core/domain"
)

// Provider produces realistic values by category name. The locale argument is
// accepted for interface compatibility but ignored: gofakeit generates
// en-flavored data only.
type Provider struct {
	f *gofakeit.Faker
}

func New(seed uint64) *Provider {
	return &Provider{f: gofakeit.New(seed)}
}

func (p *Provider) Value(category, locale string) (any, error) {
	_ = locale

	switch normalize(category) {
	case "first_name":
		return p.f.FirstName(), nil
	case "last_name":
		return p.f.LastName(), nil
	case "name", "full_name":
		return p.f.Name(), nil
	case "username", "user_name":
		return p.f.Username(), nil
	case "email":
		return p.f.Email(), nil
	case "phone", "phone_number":
		return p.f.Phone(), nil
	case "url":
		return p.f.URL(), nil
	case "uuid", "uuid4":
		return p.f.UUID(), nil
	case "company":
		return p.f.Company(), nil
	case "job", "job_title":
		return p.f.JobTitle(), nil
	case "word":
		return p.f.Word(), nil
	case "sentence":
		return p.f.Sentence(6), nil
	case "city":
		return p.f.City(), nil
	case "country":
		return p.f.Country(), nil
	case "address":
		return p.f.Address().Address, nil
	case "password":
		return p.f.Password(true, true, true, false, false, 12), nil
	case "date":
		return p.f.PastDate().Format("2006-01-02"), nil
	case "datetime", "date_time", "date_time_this_year":
		start := time.Date(time.Now().UTC().Year(), 1, 1, 0, 0, 0, 0, time.UTC)
		return p.f.DateRange(start, time.Now().UTC()).Format(time.RFC3339), nil
	}

	return nil, fmt.Errorf("%w: %q", domain.ErrUnknownCategory, category)
}

func normalize(category string) string {
	return strings.ToLower(strings.TrimSpace(category))
}
