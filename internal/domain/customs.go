package domain

import (
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
)

// MaxCustomsItems is the number of item lines on a customs form.
const MaxCustomsItems = 5

// Package fields read by the customs checks.
var (
	WeightField          = Field("WeightOz")
	ValueField           = Field("Value")
	CustomsFormTypeField = Field("CustomsFormType")
	ContentsTypeField    = Field("ContentsType")
)

// CustomsItem is one line of a customs declaration. Weight is in ounces and
// Value in dollars, both per unit.
type CustomsItem struct {
	Description string
	Weight      decimal.Decimal
	Value       decimal.Decimal
	Quantity    int
	Country     string
}

// NewCustomsItem validates and builds a customs line.
func NewCustomsItem(description string, qty int, weight, value decimal.Decimal, country string) (CustomsItem, error) {
	description = strings.TrimSpace(description)
	if description == "" {
		return CustomsItem{}, &ValidationError{Field: "customs description", Reason: "must not be empty"}
	}
	if qty <= 0 {
		return CustomsItem{}, &ValidationError{Field: "customs quantity", Reason: fmt.Sprintf("must be a positive integer, got %d", qty)}
	}
	if weight.IsNegative() {
		return CustomsItem{}, &ValidationError{Field: "customs weight", Reason: fmt.Sprintf("must not be negative, got %s", weight)}
	}
	if value.IsNegative() {
		return CustomsItem{}, &ValidationError{Field: "customs value", Reason: fmt.Sprintf("must not be negative, got %s", value)}
	}
	return CustomsItem{
		Description: description,
		Weight:      weight,
		Value:       value,
		Quantity:    qty,
		Country:     strings.TrimSpace(country),
	}, nil
}

// ParseCustomsItem is NewCustomsItem with weight and value given as decimal
// text, so no binary floating point is involved.
func ParseCustomsItem(description string, qty int, weight, value, country string) (CustomsItem, error) {
	w, err := decimal.NewFromString(strings.TrimSpace(weight))
	if err != nil {
		return CustomsItem{}, &ValidationError{Field: "customs weight", Reason: fmt.Sprintf("%q is not a decimal number", weight)}
	}
	v, err := decimal.NewFromString(strings.TrimSpace(value))
	if err != nil {
		return CustomsItem{}, &ValidationError{Field: "customs value", Reason: fmt.Sprintf("%q is not a decimal number", value)}
	}
	return NewCustomsItem(description, qty, w, v, country)
}

// ApplyTo queues the item until the package is finished, then writes its
// numbered fields and adds it to the package totals.
func (c CustomsItem) ApplyTo(p *Package, isDefault bool) error {
	if p.Enqueue(c, isDefault) {
		return nil
	}

	n := p.totalItems + 1
	if n > MaxCustomsItems {
		return &OptionConflict{Reason: fmt.Sprintf("at most %d customs items fit on a form", MaxCustomsItems)}
	}
	p.totalItems = n

	qty := decimal.NewFromInt(int64(c.Quantity))
	p.totalWeight = p.totalWeight.Add(c.Weight.Mul(qty))
	p.totalValue = p.totalValue.Add(c.Value.Mul(qty))

	opts := []Option{
		Text(Field(fmt.Sprintf("CustomsDescription%d", n)), c.Description),
		Int(Field(fmt.Sprintf("CustomsQuantity%d", n)), c.Quantity),
		Dec(Field(fmt.Sprintf("CustomsWeight%d", n)), c.Weight),
		Dec(Field(fmt.Sprintf("CustomsValue%d", n)), c.Value),
	}
	if c.Country != "" {
		opts = append(opts, Text(Field(fmt.Sprintf("CustomsCountry%d", n)), c.Country))
	}
	for _, o := range opts {
		if err := o.Apply(p, isDefault); err != nil {
			return err
		}
	}
	return nil
}

func (p *Package) checkCustoms() error {
	if err := Dec(ValueField, p.totalValue).Apply(p, true); err != nil {
		return err
	}

	declared, ok := p.Get(WeightField)
	if !ok {
		return &OptionConflict{Path: WeightField, Reason: "total package weight must be specified"}
	}
	weight, err := decimal.NewFromString(declared)
	if err != nil {
		return &OptionConflict{Path: WeightField, Reason: fmt.Sprintf("package weight %q is not a number", declared)}
	}
	if weight.LessThan(p.totalWeight) {
		return &OptionConflict{
			Path: WeightField,
			Reason: fmt.Sprintf(
				"total package weight (%s oz) is less than total customs item weight (%s oz)",
				weight, p.totalWeight,
			),
		}
	}

	if v, ok := p.Get(CustomsFormTypeField); !ok || v == "" {
		return &OptionConflict{Path: CustomsFormTypeField, Reason: "customs form type must be specified"}
	}
	if v, ok := p.Get(ContentsTypeField); !ok || v == "" {
		return &OptionConflict{Path: ContentsTypeField, Reason: "customs contents type must be specified"}
	}
	return nil
}
