package domain_test

import (
	"label-batch-service/internal/adapters/document"
	"label-batch-service/internal/domain"
	"testing"

	"github.com/stretchr/testify/require"
)

var (
	testFlag   = domain.AttrOf(domain.RootName, "Test")
	outputFile = domain.AttrOf(domain.RootName, "OutputFile")
)

func newBatch(rules ...any) *domain.Batch {
	return domain.NewBatch(document.NewEtreeDocument(domain.RootName), rules...)
}

func serialize(t *testing.T, b *domain.Batch) string {
	t.Helper()
	s, err := b.Document().String()
	require.NoError(t, err)
	return s
}

// field reads a value from the package element with the given 1-based ID.
func field(t *testing.T, b *domain.Batch, id int, path domain.Path) (string, bool) {
	t.Helper()
	pkgs := b.Packages()
	require.GreaterOrEqual(t, len(pkgs), id)
	return pkgs[id-1].Get(path)
}
