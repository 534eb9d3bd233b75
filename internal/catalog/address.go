package catalog

import "label-batch-service/internal/domain"

// Address is a recipient record. It resolves to the To* fields; empty
// parts are left out.
type Address struct {
	Name       string
	Title      string
	Company    string
	Lines      []string
	City       string
	State      string
	PostalCode string
	Country    string
	Phone      string
	Email      string
}

// Register installs the catalog's record types on r. DefaultResolver gets
// them at init.
func Register(r *domain.Resolver) {
	domain.RegisterFunc(r, expandAddress)
	domain.RegisterFunc(r, func(a *Address) ([]any, error) {
		return expandAddress(*a)
	})
}

func expandAddress(a Address) ([]any, error) {
	lines, err := ToAddress(a.Lines...)
	if err != nil {
		return nil, err
	}

	out := make([]any, 0, len(lines)+9)
	add := func(v string, build func(string) domain.Option) {
		if v != "" {
			out = append(out, build(v))
		}
	}
	add(a.Name, ToName)
	add(a.Title, ToTitle)
	add(a.Company, ToCompany)
	out = append(out, lines)
	add(a.City, ToCity)
	add(a.State, ToState)
	add(a.PostalCode, ToPostalCode)
	add(a.Country, ToCountry)
	add(a.Phone, ToPhone)
	add(a.Email, ToEmail)
	return out, nil
}
