package domain_test

import (
	"label-batch-service/internal/adapters/document"
	"label-batch-service/internal/domain"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newShipment(rules ...any) *domain.Shipment {
	return domain.NewShipment(document.Factory, rules)
}

func TestShipmentOpensBatchOnlyOnConflict(t *testing.T) {
	s := newShipment()

	b1, err := s.AddPackage(domain.Text(outputFile, "a.txt"))
	require.NoError(t, err)
	b2, err := s.AddPackage(domain.Text(outputFile, "a.txt"))
	require.NoError(t, err)
	assert.Same(t, b1, b2)

	b3, err := s.AddPackage(domain.Text(outputFile, "b.txt"))
	require.NoError(t, err)
	assert.NotSame(t, b1, b3)

	require.Equal(t, 2, s.Len())
	assert.Equal(t, 2, s.Batches()[0].Len())
	assert.Equal(t, 1, s.Batches()[1].Len())
}

func TestShipmentFirstFitIsDeterministic(t *testing.T) {
	s := newShipment()

	b1, err := s.AddPackage(domain.Text(testFlag, "YES"))
	require.NoError(t, err)
	b2, err := s.AddPackage(domain.Text(testFlag, "NO"))
	require.NoError(t, err)
	require.NotSame(t, b1, b2)

	b1Before := serialize(t, b1)

	// Every package below is rejected by b1 and accepted by b2.
	for i := 0; i < 5; i++ {
		got, err := s.AddPackage([]any{domain.Text(testFlag, "NO"), mailClass("FIRST")})
		require.NoError(t, err)
		assert.Same(t, b2, got)
	}

	assert.Equal(t, 2, s.Len())
	assert.Equal(t, 1, b1.Len())
	assert.Equal(t, 6, b2.Len())
	assert.Equal(t, b1Before, serialize(t, b1))
}

func TestShipmentPrefersEarliestCompatibleBatch(t *testing.T) {
	s := newShipment()

	b1, _ := s.AddPackage(domain.Text(testFlag, "YES"))
	b2, _ := s.AddPackage(domain.Text(testFlag, "NO"))

	// No root settings: both batches accept it, the first one wins.
	got, err := s.AddPackage(mailClass("FIRST"))
	require.NoError(t, err)
	assert.Same(t, b1, got)
	assert.Equal(t, 1, b2.Len())
}

func TestShipmentSelfConflictingPackageIsFatal(t *testing.T) {
	s := newShipment()

	_, err := s.AddPackage([]any{mailClass("FIRST"), mailClass("PRIORITY")})

	var conflict *domain.OptionConflict
	require.ErrorAs(t, err, &conflict)
	assert.Equal(t, "MailClass", conflict.Path.Node)
	assert.Equal(t, "PRIORITY", conflict.Value)
	assert.Equal(t, "FIRST", conflict.Existing)

	var unplaceable *domain.UnplaceableError
	assert.ErrorAs(t, err, &unplaceable)

	assert.Equal(t, 0, s.Len(), "a rejected package must not leave an empty batch")
}

func TestShipmentDefaultThenExplicitMailClass(t *testing.T) {
	s := newShipment(mailClass("FIRST"))

	b, err := s.AddPackage(mailClass("PRIORITY"))
	require.NoError(t, err)

	v, ok := field(t, b, 1, domain.Field("MailClass"))
	assert.True(t, ok)
	assert.Equal(t, "PRIORITY", v)
}

func TestShipmentNonConflictErrorsAreNotRetried(t *testing.T) {
	s := newShipment()
	_, err := s.AddPackage(domain.Text(testFlag, "YES"))
	require.NoError(t, err)

	_, err = s.AddPackage(3.5)
	var unsupported *domain.UnsupportedOptionTypeError
	require.ErrorAs(t, err, &unsupported)
	assert.Equal(t, 1, s.Len())
}

func TestShipmentAddPackages(t *testing.T) {
	s := newShipment()
	err := s.AddPackages(
		domain.Text(testFlag, "YES"),
		domain.Text(testFlag, "NO"),
		domain.Text(testFlag, "YES"),
	)
	require.NoError(t, err)
	require.Equal(t, 2, s.Len())
	assert.Equal(t, 2, s.Batches()[0].Len())
}
