package labels

import (
	"errors"
	"fmt"
	"label-batch-service/internal/catalog"
	"label-batch-service/internal/domain"
	"sort"
	"strings"

	"github.com/shopspring/decimal"
)

// Recipient address as written in label files.
type Address struct {
	Name       string   `yaml:"name,omitempty" json:"name,omitempty"`
	Title      string   `yaml:"title,omitempty" json:"title,omitempty"`
	Company    string   `yaml:"company,omitempty" json:"company,omitempty"`
	Lines      []string `yaml:"lines,omitempty" json:"lines,omitempty"`
	City       string   `yaml:"city,omitempty" json:"city,omitempty"`
	State      string   `yaml:"state,omitempty" json:"state,omitempty"`
	PostalCode string   `yaml:"postal_code,omitempty" json:"postal_code,omitempty"`
	Country    string   `yaml:"country,omitempty" json:"country,omitempty"`
	Phone      string   `yaml:"phone,omitempty" json:"phone,omitempty"`
	Email      string   `yaml:"email,omitempty" json:"email,omitempty"`
}

// isZero ignores contact details; a phone number alone is no address.
func (a *Address) isZero() bool {
	return a == nil || (a.Name == "" && a.Company == "" && len(a.Lines) == 0 &&
		a.City == "" && a.State == "" && a.PostalCode == "" && a.Country == "")
}

// One line of a customs declaration. Weights and values are decimal text
// so they are never rounded through float64.
type CustomsLine struct {
	Description string `yaml:"description" json:"description"`
	Quantity    int    `yaml:"quantity" json:"quantity"`
	WeightOz    string `yaml:"weight_oz" json:"weight_oz"`
	Value       string `yaml:"value" json:"value"`
	Country     string `yaml:"country,omitempty" json:"country,omitempty"`
}

type Customs struct {
	FormType     string        `yaml:"form_type,omitempty" json:"form_type,omitempty"`
	ContentsType string        `yaml:"contents_type,omitempty" json:"contents_type,omitempty"`
	Items        []CustomsLine `yaml:"items,omitempty" json:"items,omitempty"`
}

// Request describes one label. The same shape is used for batch defaults,
// where every field is optional.
type Request struct {
	Reference string `yaml:"reference,omitempty" json:"reference,omitempty"`

	// Batch-wide settings.
	OutputFile string `yaml:"output_file,omitempty" json:"output_file,omitempty"`
	Layout     string `yaml:"layout,omitempty" json:"layout,omitempty"`
	Test       *bool  `yaml:"test,omitempty" json:"test,omitempty"`
	Prompt     *bool  `yaml:"prompt,omitempty" json:"prompt,omitempty"`
	// Label position on the first sheet, 1 to 30.
	Start        *int  `yaml:"start,omitempty" json:"start,omitempty"`
	AbortOnError *bool `yaml:"abort_on_error,omitempty" json:"abort_on_error,omitempty"`

	To            *Address `yaml:"to,omitempty" json:"to,omitempty"`
	ReturnAddress []string `yaml:"return_address,omitempty" json:"return_address,omitempty"`

	MailClass    string          `yaml:"mail_class,omitempty" json:"mail_class,omitempty"`
	PackageType  string          `yaml:"package_type,omitempty" json:"package_type,omitempty"`
	WeightOz     string          `yaml:"weight_oz,omitempty" json:"weight_oz,omitempty"`
	Value        string          `yaml:"value,omitempty" json:"value,omitempty"`
	Description  string          `yaml:"description,omitempty" json:"description,omitempty"`
	DateAdvance  *int            `yaml:"date_advance,omitempty" json:"date_advance,omitempty"`
	Services     map[string]bool `yaml:"services,omitempty" json:"services,omitempty"`
	Flags        []string        `yaml:"flags,omitempty" json:"flags,omitempty"`
	ReferenceIDs []string        `yaml:"reference_ids,omitempty" json:"reference_ids,omitempty"`
	RubberStamps []string        `yaml:"rubber_stamps,omitempty" json:"rubber_stamps,omitempty"`
	Customs      *Customs        `yaml:"customs,omitempty" json:"customs,omitempty"`

	// Raw fields, keyed "Node" or "Node.Attr", for anything the named
	// fields above do not cover.
	Fields map[string]string `yaml:"fields,omitempty" json:"fields,omitempty"`
}

// Validate checks what a printable label needs beyond its options.
func (r *Request) Validate() error {
	if r == nil {
		return errors.New("label request is nil")
	}
	if r.To.isZero() {
		return fmt.Errorf("label %s: recipient address is required", r.name())
	}
	return nil
}

func (r *Request) name() string {
	if r.Reference != "" {
		return fmt.Sprintf("%q", r.Reference)
	}
	return "<unnamed>"
}

// Options converts the request into option inputs for a batch. Bad values
// are reported here, before anything touches a document.
func (r *Request) Options() ([]any, error) {
	if r == nil {
		return nil, nil
	}
	var out []any

	if r.OutputFile != "" {
		out = append(out, catalog.OutputFile(r.OutputFile))
	}
	if r.Layout != "" {
		out = append(out, catalog.Layout(r.Layout))
	}
	if r.Test != nil {
		o, err := flag(*r.Test, catalog.TestMode)
		if err != nil {
			return nil, err
		}
		out = append(out, o)
	}
	if r.Prompt != nil {
		o, err := flag(*r.Prompt, catalog.Prompt)
		if err != nil {
			return nil, err
		}
		out = append(out, o)
	}
	if r.Start != nil {
		o, err := catalog.Start(*r.Start)
		if err != nil {
			return nil, err
		}
		out = append(out, o)
	}
	if r.AbortOnError != nil {
		o, err := flag(*r.AbortOnError, catalog.AbortOnError)
		if err != nil {
			return nil, err
		}
		out = append(out, o)
	}

	if !r.To.isZero() {
		out = append(out, catalog.Address{
			Name:       r.To.Name,
			Title:      r.To.Title,
			Company:    r.To.Company,
			Lines:      r.To.Lines,
			City:       r.To.City,
			State:      r.To.State,
			PostalCode: r.To.PostalCode,
			Country:    r.To.Country,
			Phone:      r.To.Phone,
			Email:      r.To.Email,
		})
	}
	if len(r.ReturnAddress) > 0 {
		lines, err := catalog.ReturnAddress(r.ReturnAddress...)
		if err != nil {
			return nil, err
		}
		out = append(out, lines)
	}

	if r.MailClass != "" {
		out = append(out, catalog.MailClass(r.MailClass))
	}
	if r.PackageType != "" {
		out = append(out, catalog.PackageType(r.PackageType))
	}
	if r.WeightOz != "" {
		d, err := parseDecimal("weight", r.WeightOz)
		if err != nil {
			return nil, err
		}
		o, err := catalog.WeightOz(d)
		if err != nil {
			return nil, err
		}
		out = append(out, o)
	}
	if r.Value != "" {
		d, err := parseDecimal("value", r.Value)
		if err != nil {
			return nil, err
		}
		o, err := catalog.Value(d)
		if err != nil {
			return nil, err
		}
		out = append(out, o)
	}
	if r.Description != "" {
		out = append(out, catalog.Description(r.Description))
	}
	if r.DateAdvance != nil {
		o, err := catalog.DateAdvance(*r.DateAdvance)
		if err != nil {
			return nil, err
		}
		out = append(out, o)
	}

	for _, name := range sortedKeys(r.Services) {
		o, err := catalog.Lookup(name)
		if err != nil {
			return nil, err
		}
		if o.Path.Node != "Services" {
			return nil, &domain.ValidationError{Field: "services", Reason: fmt.Sprintf("%q is not a service flag", name)}
		}
		o, err = flag(r.Services[name], o)
		if err != nil {
			return nil, err
		}
		out = append(out, o)
	}
	for _, name := range r.Flags {
		o, err := catalog.Lookup(name)
		if err != nil {
			return nil, err
		}
		out = append(out, o)
	}

	for i, v := range r.ReferenceIDs {
		o, err := catalog.ReferenceID(i+1, v)
		if err != nil {
			return nil, err
		}
		out = append(out, o)
	}
	for i, v := range r.RubberStamps {
		o, err := catalog.RubberStamp(i+1, v)
		if err != nil {
			return nil, err
		}
		out = append(out, o)
	}

	if r.Customs != nil {
		opts, err := r.Customs.options()
		if err != nil {
			return nil, err
		}
		out = append(out, opts...)
	}

	for _, key := range sortedKeys(r.Fields) {
		path, err := domain.ParsePath(key)
		if err != nil {
			return nil, err
		}
		out = append(out, domain.Text(path, r.Fields[key]))
	}

	return out, nil
}

func (c *Customs) options() ([]any, error) {
	var out []any
	if c.FormType != "" {
		out = append(out, catalog.CustomsFormType(c.FormType))
	}
	if c.ContentsType != "" {
		out = append(out, catalog.ContentsType(c.ContentsType))
	}
	for _, line := range c.Items {
		item, err := domain.ParseCustomsItem(line.Description, line.Quantity, line.WeightOz, line.Value, line.Country)
		if err != nil {
			return nil, err
		}
		out = append(out, item)
	}
	return out, nil
}

// flag returns on, or its inverse when enabled is false.
func flag(enabled bool, on domain.Option) (domain.Option, error) {
	if enabled {
		return on, nil
	}
	return on.Invert()
}

func parseDecimal(field, s string) (decimal.Decimal, error) {
	d, err := decimal.NewFromString(strings.TrimSpace(s))
	if err != nil {
		return decimal.Decimal{}, &domain.ValidationError{Field: field, Reason: fmt.Sprintf("%q is not a decimal number", s)}
	}
	return d, nil
}

func sortedKeys[V any](m map[string]V) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
