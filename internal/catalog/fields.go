package catalog

import (
	"fmt"
	"label-batch-service/internal/domain"
	"strings"
)

const (
	MaxAddressLines = 6
	MaxReferenceIDs = 4
	MaxRubberStamps = 50
)

func ToName(v string) domain.Option       { return domain.Text(domain.Field("ToName"), v) }
func ToTitle(v string) domain.Option      { return domain.Text(domain.Field("ToTitle"), v) }
func ToCompany(v string) domain.Option    { return domain.Text(domain.Field("ToCompany"), v) }
func ToCity(v string) domain.Option       { return domain.Text(domain.Field("ToCity"), v) }
func ToState(v string) domain.Option      { return domain.Text(domain.Field("ToState"), v) }
func ToPostalCode(v string) domain.Option { return domain.Text(domain.Field("ToPostalCode"), v) }
func ToCountry(v string) domain.Option    { return domain.Text(domain.Field("ToCountry"), v) }
func ToPhone(v string) domain.Option      { return domain.Text(domain.Field("ToPhone"), v) }
func ToEmail(v string) domain.Option      { return domain.Text(domain.Field("ToEMail"), v) }

// ToAddress writes up to six street lines as ToAddress1..ToAddress6.
func ToAddress(lines ...string) ([]domain.Option, error) {
	return numberedLines("ToAddress", lines)
}

// ReturnAddress writes up to six lines as ReturnAddress1..ReturnAddress6.
func ReturnAddress(lines ...string) ([]domain.Option, error) {
	return numberedLines("ReturnAddress", lines)
}

func numberedLines(prefix string, lines []string) ([]domain.Option, error) {
	if len(lines) > MaxAddressLines {
		return nil, &domain.ValidationError{
			Field:  strings.ToLower(prefix),
			Reason: fmt.Sprintf("%d lines given, at most %d allowed", len(lines), MaxAddressLines),
		}
	}
	out := make([]domain.Option, 0, len(lines))
	for i, line := range lines {
		out = append(out, domain.Text(domain.Field(fmt.Sprintf("%s%d", prefix, i+1)), line))
	}
	return out, nil
}

// ReferenceID sets reference field n (1..4). Field 1 is plain ReferenceID.
func ReferenceID(n int, v string) (domain.Option, error) {
	if n < 1 || n > MaxReferenceIDs {
		return domain.Option{}, outOfRange("reference id index", n, 1, MaxReferenceIDs)
	}
	name := "ReferenceID"
	if n > 1 {
		name = fmt.Sprintf("ReferenceID%d", n)
	}
	return domain.Text(domain.Field(name), v), nil
}

// RubberStamp sets printed text line n (1..50).
func RubberStamp(n int, v string) (domain.Option, error) {
	if n < 1 || n > MaxRubberStamps {
		return domain.Option{}, outOfRange("rubber stamp index", n, 1, MaxRubberStamps)
	}
	return domain.Text(domain.Field(fmt.Sprintf("RubberStamp%d", n)), v), nil
}
