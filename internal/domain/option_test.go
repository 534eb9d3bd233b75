package domain_test

import (
	"errors"
	"label-batch-service/internal/domain"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fields is a flat in-memory Fields implementation.
type fields map[domain.Path]string

func (f fields) Get(p domain.Path) (string, bool) {
	v, ok := f[p]
	return v, ok
}

func (f fields) Set(p domain.Path, v string) {
	f[p] = v
}

func mailClass(v string) domain.Option {
	return domain.Text(domain.Field("MailClass"), v)
}

func TestOptionApplyEqualValuesNeverConflict(t *testing.T) {
	a := mailClass("FIRST")
	b := mailClass("FIRST")

	for _, tc := range []struct {
		name       string
		aDef, bDef bool
	}{
		{"both explicit", false, false},
		{"first default", true, false},
		{"second default", false, true},
		{"both default", true, true},
	} {
		t.Run(tc.name, func(t *testing.T) {
			forward := fields{}
			require.NoError(t, a.Apply(forward, tc.aDef))
			require.NoError(t, b.Apply(forward, tc.bDef))

			backward := fields{}
			require.NoError(t, b.Apply(backward, tc.bDef))
			require.NoError(t, a.Apply(backward, tc.aDef))

			assert.Equal(t, forward, backward)
			assert.Equal(t, "FIRST", forward[domain.Field("MailClass")])
		})
	}
}

func TestOptionApplyExplicitConflictKeepsFirstValue(t *testing.T) {
	first := mailClass("FIRST")
	priority := mailClass("PRIORITY")

	for _, order := range [][2]domain.Option{{first, priority}, {priority, first}} {
		f := fields{}
		require.NoError(t, order[0].Apply(f, false))

		err := order[1].Apply(f, false)
		var conflict *domain.OptionConflict
		require.ErrorAs(t, err, &conflict)
		assert.Equal(t, "MailClass", conflict.Path.String())
		assert.Equal(t, order[1].Value, conflict.Value)
		assert.Equal(t, order[0].Value, conflict.Existing)

		assert.Equal(t, order[0].Value, f[domain.Field("MailClass")])
	}
}

func TestOptionConflictMessage(t *testing.T) {
	f := fields{}
	require.NoError(t, mailClass("FIRST").Apply(f, false))

	err := mailClass("PRIORITY").Apply(f, false)
	require.Error(t, err)
	assert.Equal(t, "dazzle: conflict: can't set 'MailClass=PRIORITY' when 'MailClass=FIRST' already set", err.Error())
}

func TestOptionApplyDefaultYieldsToExisting(t *testing.T) {
	f := fields{}
	require.NoError(t, mailClass("PRIORITY").Apply(f, false))
	require.NoError(t, mailClass("FIRST").Apply(f, true))
	assert.Equal(t, "PRIORITY", f[domain.Field("MailClass")])
}

func TestOptionApplyDefaultThenExplicitConflicts(t *testing.T) {
	// A default that landed first is an ordinary value afterwards; batches
	// avoid this by applying user options before rules.
	f := fields{}
	require.NoError(t, mailClass("FIRST").Apply(f, true))
	err := mailClass("PRIORITY").Apply(f, false)

	var conflict *domain.OptionConflict
	assert.ErrorAs(t, err, &conflict)
}

func TestOptionNoneIsNoOp(t *testing.T) {
	f := fields{}
	none := domain.None(domain.Field("MailClass"))
	require.NoError(t, none.Apply(f, false))
	assert.Empty(t, f)

	require.NoError(t, mailClass("FIRST").Apply(f, false))
	require.NoError(t, none.Apply(f, false))
	assert.Equal(t, "FIRST", f[domain.Field("MailClass")])
}

func TestOptionInvert(t *testing.T) {
	path := domain.AttrOf("Services", "CertifiedMail")
	for _, v := range []string{"TRUE", "FALSE", "YES", "NO", "ON", "OFF"} {
		o := domain.Text(path, v)
		inv, err := o.Invert()
		require.NoError(t, err)
		assert.NotEqual(t, v, inv.Value)
		assert.Equal(t, path, inv.Path)

		back, err := inv.Invert()
		require.NoError(t, err)
		assert.Equal(t, o, back)
	}

	_, err := domain.Text(path, "MAYBE").Invert()
	var invErr *domain.InversionError
	require.ErrorAs(t, err, &invErr)
	assert.Equal(t, "MAYBE", invErr.Value)

	_, err = domain.None(path).Invert()
	assert.True(t, errors.As(err, &invErr))
}

func TestOptionWithValue(t *testing.T) {
	o := mailClass("FIRST")
	p := o.WithValue("PRIORITY")
	assert.Equal(t, "FIRST", o.Value)
	assert.Equal(t, "PRIORITY", p.Value)
	assert.Equal(t, o.Path, p.Path)

	none := domain.None(domain.Field("Value")).WithValue("3")
	assert.False(t, none.IsNone())
}

func TestDecNormalizesEqualQuantities(t *testing.T) {
	f := fields{}
	require.NoError(t, domain.Dec(domain.WeightField, decimal.RequireFromString("1.50")).Apply(f, false))
	require.NoError(t, domain.Dec(domain.WeightField, decimal.RequireFromString("1.5")).Apply(f, false))
	assert.Equal(t, "1.5", f[domain.WeightField])
}

func TestParsePath(t *testing.T) {
	mustParse := func(s string) domain.Path {
		p, err := domain.ParsePath(s)
		require.NoError(t, err, s)
		return p
	}
	assert.Equal(t, domain.Path{Node: "MailClass"}, mustParse("MailClass"))
	assert.Equal(t, domain.Path{Node: "Services", Attr: "CertifiedMail"}, mustParse("Services.CertifiedMail"))
	assert.Equal(t, domain.Path{Node: "RubberStamp1"}, mustParse(" RubberStamp1 "))
	assert.True(t, mustParse("DAZzle.OutputFile").IsRoot())
	assert.Equal(t, "Services.CertifiedMail", domain.AttrOf("Services", "CertifiedMail").String())
}

func TestParsePathRejectsBadNames(t *testing.T) {
	for _, s := range []string{"", " ", ".Attr", "Services.", "1Line", "To Name", "<x>", "ns:Tag", "Services.Bad Attr"} {
		_, err := domain.ParsePath(s)
		var invalid *domain.ValidationError
		assert.ErrorAs(t, err, &invalid, "%q", s)
	}
}

func TestApplyRejectsInvalidPath(t *testing.T) {
	f := fields{}
	var invalid *domain.ValidationError

	err := domain.Text(domain.Path{}, "x").Apply(f, false)
	assert.ErrorAs(t, err, &invalid)

	err = domain.Text(domain.AttrOf("Services", "a b"), "ON").Apply(f, true)
	assert.ErrorAs(t, err, &invalid)
	assert.Empty(t, f)
}
