// Package catalog holds the named DAZzle options: batch settings, mail
// classes, package types, service flags and the numbered address and
// reference fields.
//
// Every named value is built once at package initialisation and listed in a
// single table, so options can be looked up by name from label files.
package catalog

import (
	"fmt"
	"label-batch-service/internal/domain"
	"sort"
	"strings"

	"github.com/shopspring/decimal"
)

var (
	outputFilePath = domain.AttrOf(domain.RootName, "OutputFile")
	promptPath     = domain.AttrOf(domain.RootName, "Prompt")
	testPath       = domain.AttrOf(domain.RootName, "Test")
	layoutPath     = domain.AttrOf(domain.RootName, "Layout")
	startPath      = domain.AttrOf(domain.RootName, "Start")
	abortPath      = domain.AttrOf(domain.RootName, "AbortOnError")

	mailClassPath   = domain.Field("MailClass")
	packageTypePath = domain.Field("PackageType")
	descriptionPath = domain.Field("Description")
	dateAdvancePath = domain.Field("DateAdvance")
	stealthPath     = domain.Field("Stealth")
)

// Batch-wide settings, written on the document root.
var (
	Prompt   = domain.Text(promptPath, "YES")
	NoPrompt = domain.Text(promptPath, "NO")
	TestMode = domain.Text(testPath, "YES")
	LiveMode = domain.Text(testPath, "NO")

	// AbortOnError stops the printer at the first label it cannot print.
	AbortOnError = domain.Text(abortPath, "YES")
)

// Mail classes.
var (
	FirstClass            = MailClass("FIRST")
	Priority              = MailClass("PRIORITY")
	Express               = MailClass("EXPRESS")
	ParcelPost            = MailClass("PARCELPOST")
	MediaMail             = MailClass("MEDIAMAIL")
	LibraryMail           = MailClass("LIBRARYMAIL")
	BoundPrintedMatter    = MailClass("BPM")
	InternationalFirst    = MailClass("INTLFIRST")
	InternationalPriority = MailClass("INTLPRIORITY")
	InternationalExpress  = MailClass("INTLEXPRESS")
)

// Package types.
var (
	Postcard         = PackageType("POSTCARD")
	Envelope         = PackageType("ENVELOPE")
	Flat             = PackageType("FLAT")
	RectParcel       = PackageType("RECTPARCEL")
	NonRectParcel    = PackageType("NONRECTPARCEL")
	FlatRateEnvelope = PackageType("FLATRATEENVELOPE")
	FlatRateBox      = PackageType("FLATRATEBOX")
)

// Service flags, attributes of the Services element. Use Invert for the
// OFF form.
var (
	CertifiedMail         = service("CertifiedMail")
	DeliveryConfirmation  = service("DeliveryConfirmation")
	SignatureConfirmation = service("SignatureConfirmation")
	ReturnReceipt         = service("ReturnReceipt")
	RegisteredMail        = service("RegisteredMail")
	InsuredMail           = service("InsuredMail")
	RestrictedDelivery    = service("RestrictedDelivery")
)

// Stealth hides the postage amount on the printed label.
var Stealth = domain.Text(stealthPath, "TRUE")

// Customs form and contents types.
var (
	FormGeneric = CustomsFormType("GENERIC")
	Form2976    = CustomsFormType("FORM2976")
	Form2976A   = CustomsFormType("FORM2976A")

	Merchandise   = ContentsType("MERCHANDISE")
	Gift          = ContentsType("GIFT")
	Documents     = ContentsType("DOCUMENTS")
	Sample        = ContentsType("SAMPLE")
	ReturnedGoods = ContentsType("RETURNEDGOODS")
	OtherContents = ContentsType("OTHER")
)

func service(name string) domain.Option {
	return domain.Text(domain.AttrOf("Services", name), "ON")
}

// named is the lookup table for Lookup. It is filled once in init.
var named map[string]domain.Option

func init() {
	named = map[string]domain.Option{
		"Prompt":   Prompt,
		"NoPrompt": NoPrompt,
		"TestMode": TestMode,
		"LiveMode": LiveMode,

		"AbortOnError": AbortOnError,
		"Stealth":      Stealth,

		"FirstClass":            FirstClass,
		"Priority":              Priority,
		"Express":               Express,
		"ParcelPost":            ParcelPost,
		"MediaMail":             MediaMail,
		"LibraryMail":           LibraryMail,
		"BoundPrintedMatter":    BoundPrintedMatter,
		"InternationalFirst":    InternationalFirst,
		"InternationalPriority": InternationalPriority,
		"InternationalExpress":  InternationalExpress,

		"Postcard":         Postcard,
		"Envelope":         Envelope,
		"Flat":             Flat,
		"RectParcel":       RectParcel,
		"NonRectParcel":    NonRectParcel,
		"FlatRateEnvelope": FlatRateEnvelope,
		"FlatRateBox":      FlatRateBox,

		"CertifiedMail":         CertifiedMail,
		"DeliveryConfirmation":  DeliveryConfirmation,
		"SignatureConfirmation": SignatureConfirmation,
		"ReturnReceipt":         ReturnReceipt,
		"RegisteredMail":        RegisteredMail,
		"InsuredMail":           InsuredMail,
		"RestrictedDelivery":    RestrictedDelivery,

		"FormGeneric":   FormGeneric,
		"Form2976":      Form2976,
		"Form2976A":     Form2976A,
		"Merchandise":   Merchandise,
		"Gift":          Gift,
		"Documents":     Documents,
		"Sample":        Sample,
		"ReturnedGoods": ReturnedGoods,
		"OtherContents": OtherContents,
	}

	Register(domain.DefaultResolver)
}

// Lookup returns the named option. A leading "!" returns the inverted flag,
// so "!CertifiedMail" is CertifiedMail OFF.
func Lookup(name string) (domain.Option, error) {
	name = strings.TrimSpace(name)
	if o, ok := named[name]; ok {
		return o, nil
	}
	if base, ok := strings.CutPrefix(name, "!"); ok {
		o, found := named[base]
		if !found {
			return domain.Option{}, fmt.Errorf("catalog: unknown option %q", base)
		}
		return o.Invert()
	}
	return domain.Option{}, fmt.Errorf("catalog: unknown option %q", name)
}

// Names lists every named option, sorted.
func Names() []string {
	out := make([]string, 0, len(named))
	for k := range named {
		out = append(out, k)
	}
	sort.Strings(out)
	return out
}

// OutputFile sets where the printer writes its results. The path is passed
// through unchanged; callers resolve it to an absolute path first.
func OutputFile(path string) domain.Option {
	return domain.Text(outputFilePath, path)
}

// Layout names the label layout file used for the whole batch.
func Layout(name string) domain.Option {
	return domain.Text(layoutPath, name)
}

// Start is the label position on the first sheet, 1 to 30.
func Start(n int) (domain.Option, error) {
	if n < 1 || n > 30 {
		return domain.Option{}, outOfRange("start position", n, 1, 30)
	}
	return domain.Int(startPath, n), nil
}

func MailClass(v string) domain.Option {
	return domain.Text(mailClassPath, strings.ToUpper(strings.TrimSpace(v)))
}

func PackageType(v string) domain.Option {
	return domain.Text(packageTypePath, strings.ToUpper(strings.TrimSpace(v)))
}

func CustomsFormType(v string) domain.Option {
	return domain.Text(domain.CustomsFormTypeField, strings.ToUpper(strings.TrimSpace(v)))
}

func ContentsType(v string) domain.Option {
	return domain.Text(domain.ContentsTypeField, strings.ToUpper(strings.TrimSpace(v)))
}

func Description(v string) domain.Option {
	return domain.Text(descriptionPath, v)
}

// WeightOz is the total package weight in ounces; it must be positive.
func WeightOz(oz decimal.Decimal) (domain.Option, error) {
	if !oz.IsPositive() {
		return domain.Option{}, &domain.ValidationError{Field: "weight", Reason: fmt.Sprintf("must be positive, got %s oz", oz)}
	}
	return domain.Dec(domain.WeightField, oz), nil
}

// Value is the declared package value in dollars.
func Value(v decimal.Decimal) (domain.Option, error) {
	if v.IsNegative() {
		return domain.Option{}, &domain.ValidationError{Field: "value", Reason: fmt.Sprintf("must not be negative, got %s", v)}
	}
	return domain.Dec(domain.ValueField, v), nil
}

// DateAdvance postdates the label by 0 to 30 days.
func DateAdvance(days int) (domain.Option, error) {
	if days < 0 || days > 30 {
		return domain.Option{}, outOfRange("date advance", days, 0, 30)
	}
	return domain.Int(dateAdvancePath, days), nil
}

func outOfRange(field string, n, lo, hi int) error {
	return &domain.ValidationError{Field: field, Reason: fmt.Sprintf("%d is outside %d..%d", n, lo, hi)}
}
