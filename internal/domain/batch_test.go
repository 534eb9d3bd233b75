package domain_test

import (
	"label-batch-service/internal/adapters/document"
	"label-batch-service/internal/domain"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBatchAddPackageNumbersPackages(t *testing.T) {
	b := newBatch()

	require.NoError(t, b.AddPackage(mailClass("FIRST")))
	require.NoError(t, b.AddPackage(mailClass("PRIORITY")))

	assert.Equal(t, 2, b.Len())
	assert.Equal(t, 2, b.Document().Root().ChildCount())
	pkgs := b.Packages()
	assert.Equal(t, 1, pkgs[0].ID)
	assert.Equal(t, 2, pkgs[1].ID)

	xml := serialize(t, b)
	assert.Contains(t, xml, `<Package ID="1">`)
	assert.Contains(t, xml, `<Package ID="2">`)
	assert.Contains(t, xml, `<MailClass>PRIORITY</MailClass>`)
}

func TestBatchRootOptionsAreShared(t *testing.T) {
	b := newBatch()

	require.NoError(t, b.AddPackage(domain.Text(outputFile, "/tmp/a.txt")))
	require.NoError(t, b.AddPackage(domain.Text(outputFile, "/tmp/a.txt")))

	err := b.AddPackage(domain.Text(outputFile, "/tmp/b.txt"))
	var conflict *domain.OptionConflict
	require.ErrorAs(t, err, &conflict)
	assert.Equal(t, "DAZzle.OutputFile", conflict.Path.String())

	v, ok := b.Document().Root().Attr("OutputFile")
	assert.True(t, ok)
	assert.Equal(t, "/tmp/a.txt", v)
}

func TestBatchRollbackRestoresEverything(t *testing.T) {
	b := newBatch()
	require.NoError(t, b.AddPackage([]any{mailClass("FIRST"), domain.Text(testFlag, "YES")}))

	before := serialize(t, b)
	beforeRoot := b.Document().Root().Snapshot()

	// Sets a new root attribute and a package field, then conflicts on the
	// shared test flag.
	err := b.AddPackage([]any{
		domain.Text(outputFile, "/tmp/labels.txt"),
		mailClass("PRIORITY"),
		domain.Text(testFlag, "NO"),
	})
	var conflict *domain.OptionConflict
	require.ErrorAs(t, err, &conflict)

	assert.Equal(t, 1, b.Len())
	assert.Len(t, b.Sources(), 1)
	assert.Equal(t, 1, b.Document().Root().ChildCount())
	assert.Equal(t, beforeRoot, b.Document().Root().Snapshot())
	assert.Equal(t, before, serialize(t, b))

	// Rolling back repeatedly changes nothing either.
	for i := 0; i < 3; i++ {
		require.Error(t, b.AddPackage(domain.Text(testFlag, "NO")))
	}
	assert.Equal(t, before, serialize(t, b))

	// And the batch is still usable.
	require.NoError(t, b.AddPackage(mailClass("PRIORITY")))
	assert.Equal(t, 2, b.Len())
	assert.Equal(t, 2, b.Packages()[1].ID)
}

func TestBatchUserOptionsBeatRules(t *testing.T) {
	b := newBatch(mailClass("FIRST"), domain.Text(testFlag, "YES"))

	require.NoError(t, b.AddPackage(mailClass("PRIORITY")))
	require.NoError(t, b.AddPackage(nil))

	v, _ := field(t, b, 1, domain.Field("MailClass"))
	assert.Equal(t, "PRIORITY", v)
	v, _ = field(t, b, 2, domain.Field("MailClass"))
	assert.Equal(t, "FIRST", v)

	v, ok := b.Document().Root().Attr("Test")
	assert.True(t, ok)
	assert.Equal(t, "YES", v)
}

func TestBatchRuleOnSharedRootYieldsToEarlierPackage(t *testing.T) {
	b := newBatch(domain.Text(testFlag, "YES"))
	require.NoError(t, b.AddPackage(domain.Text(testFlag, "NO")))
	// The rule is skipped where the root already says otherwise.
	require.NoError(t, b.AddPackage(nil))

	v, _ := b.Document().Root().Attr("Test")
	assert.Equal(t, "NO", v)
}

func TestBatchUnsupportedInputLeavesDocumentUntouched(t *testing.T) {
	b := newBatch()
	before := serialize(t, b)

	err := b.AddPackage([]any{mailClass("FIRST"), struct{}{}})
	var unsupported *domain.UnsupportedOptionTypeError
	require.ErrorAs(t, err, &unsupported)

	assert.Equal(t, 0, b.Len())
	assert.Equal(t, before, serialize(t, b))
}

func TestBatchRejectsInvalidFieldPath(t *testing.T) {
	b := newBatch()
	require.NoError(t, b.AddPackage(mailClass("FIRST")))
	before := serialize(t, b)

	for _, p := range []domain.Path{{}, {Node: "Bad Name"}, {Node: "Services", Attr: "1x"}} {
		err := b.AddPackage([]any{domain.Text(domain.Field("Description"), "Books"), domain.Text(p, "x")})
		var invalid *domain.ValidationError
		require.ErrorAs(t, err, &invalid, "%+v", p)
	}

	assert.Equal(t, 1, b.Len())
	after := serialize(t, b)
	assert.Equal(t, before, after)
	_, err := document.Parse(after)
	require.NoError(t, err)
}

func TestBatchEmptyValueCountsAsSet(t *testing.T) {
	description := domain.Field("Description")
	certified := domain.AttrOf("Services", "CertifiedMail")

	for _, path := range []domain.Path{description, certified} {
		b := newBatch()
		err := b.AddPackage([]any{domain.Text(path, ""), domain.Text(path, "ON")})

		var conflict *domain.OptionConflict
		require.ErrorAs(t, err, &conflict, path.String())
		assert.Equal(t, "", conflict.Existing)
		assert.Equal(t, 0, b.Len())

		require.NoError(t, b.AddPackage([]any{domain.Text(path, ""), domain.Text(path, "")}))
		v, ok := field(t, b, 1, path)
		assert.True(t, ok, path.String())
		assert.Equal(t, "", v)
	}
}
