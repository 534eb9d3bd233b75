package domain

import (
	"fmt"
	"strconv"
	"strings"
	"unicode"

	"github.com/shopspring/decimal"
)

// RootName is the name of a label document's root element. An option whose
// path names it is written to the root (batch-wide settings such as the
// output file) instead of the current package.
const RootName = "DAZzle"

// Path locates a value in a label document: the text of a named element, or
// one of its attributes when Attr is set.
type Path struct {
	Node string
	Attr string
}

// Field returns the path of a package element's text.
func Field(node string) Path {
	return Path{Node: node}
}

// AttrOf returns the path of an attribute on a package element.
func AttrOf(node, attr string) Path {
	return Path{Node: node, Attr: attr}
}

// ParsePath accepts "Node" or "Node.Attr". Both parts must be XML names.
func ParsePath(s string) (Path, error) {
	node, attr, hasAttr := strings.Cut(strings.TrimSpace(s), ".")
	p := Path{Node: node, Attr: attr}
	if hasAttr && attr == "" {
		return Path{}, &ValidationError{Field: "field path", Reason: fmt.Sprintf("%q has an empty attribute name", s)}
	}
	if err := p.Validate(); err != nil {
		return Path{}, err
	}
	return p, nil
}

// Validate checks that the node and attribute names can be written as XML.
func (p Path) Validate() error {
	if !isXMLName(p.Node) {
		return &ValidationError{Field: "field path", Reason: fmt.Sprintf("%q is not a valid element name", p.Node)}
	}
	if p.Attr != "" && !isXMLName(p.Attr) {
		return &ValidationError{Field: "field path", Reason: fmt.Sprintf("%q is not a valid attribute name", p.Attr)}
	}
	return nil
}

// isXMLName accepts names without namespace prefixes.
func isXMLName(s string) bool {
	if s == "" {
		return false
	}
	for i, r := range s {
		switch {
		case unicode.IsLetter(r) || r == '_':
		case i > 0 && (unicode.IsDigit(r) || r == '-' || r == '.'):
		default:
			return false
		}
	}
	return true
}

// IsRoot reports whether the path addresses the document root.
func (p Path) IsRoot() bool {
	return p.Node == RootName
}

func (p Path) String() string {
	if p.Attr == "" {
		return p.Node
	}
	return p.Node + "." + p.Attr
}

// Fields is the read/write surface an Option is applied to.
type Fields interface {
	Get(path Path) (string, bool)
	Set(path Path, value string)
}

// Option is an immutable assertion that the document holds Value at Path.
// An option built with None asserts nothing and applies as a no-op.
type Option struct {
	Path  Path
	Value string
	none  bool
}

// Text builds an option with a literal text value.
func Text(path Path, value string) Option {
	return Option{Path: path, Value: value}
}

// Int builds an option whose value is the decimal text of n.
func Int(path Path, n int) Option {
	return Option{Path: path, Value: strconv.Itoa(n)}
}

// Dec builds an option from an exact decimal, normalised so that equal
// quantities compare equal ("1.50" and "1.5" both become "1.5").
func Dec(path Path, d decimal.Decimal) Option {
	return Option{Path: path, Value: d.String()}
}

// None builds a no-op option for path.
func None(path Path) Option {
	return Option{Path: path, none: true}
}

// IsNone reports whether the option carries no value.
func (o Option) IsNone() bool {
	return o.none
}

// WithValue returns a copy of o holding value.
func (o Option) WithValue(value string) Option {
	return Option{Path: o.Path, Value: value}
}

var opposites = map[string]string{
	"TRUE":  "FALSE",
	"FALSE": "TRUE",
	"YES":   "NO",
	"NO":    "YES",
	"ON":    "OFF",
	"OFF":   "ON",
}

// Invert returns the option with its value replaced by the opposite flag.
func (o Option) Invert() (Option, error) {
	if o.none {
		return o, &InversionError{Path: o.Path}
	}
	v, ok := opposites[o.Value]
	if !ok {
		return o, &InversionError{Path: o.Path, Value: o.Value}
	}
	return o.WithValue(v), nil
}

// Apply writes the option into f. An existing, different value is left in
// place: as a default the option is dropped, otherwise it is a conflict.
// A path that is not a valid XML name is rejected before f is touched.
func (o Option) Apply(f Fields, isDefault bool) error {
	if o.none {
		return nil
	}
	if err := o.Path.Validate(); err != nil {
		return err
	}
	old, ok := f.Get(o.Path)
	if ok && old != o.Value {
		if isDefault {
			return nil
		}
		return &OptionConflict{Path: o.Path, Value: o.Value, Existing: old}
	}
	f.Set(o.Path, o.Value)
	return nil
}

// ApplyTo implements Applier.
func (o Option) ApplyTo(p *Package, isDefault bool) error {
	return o.Apply(p, isDefault)
}

func (o Option) String() string {
	if o.none {
		return o.Path.String() + "=<none>"
	}
	return o.Path.String() + "=" + o.Value
}
