package domain

import (
	"strconv"

	"github.com/google/uuid"
)

// PackageElement is the name of the child element created per label.
const PackageElement = "Package"

// Batch is a group of labels that share one document and one set of
// default rules.
//
// AddPackage is all-or-nothing: when it fails the document and the package
// list are exactly as they were before the call. A Batch is not safe for
// concurrent use.
type Batch struct {
	id       string
	doc      Document
	rules    []any
	resolver *Resolver
	entries  []batchEntry
}

type batchEntry struct {
	source any
	pkg    *Package
}

// NewBatch returns an empty batch writing into doc. rules are applied as
// defaults to every package added.
func NewBatch(doc Document, rules ...any) *Batch {
	return newBatch(doc, DefaultResolver, rules)
}

func newBatch(doc Document, resolver *Resolver, rules []any) *Batch {
	return &Batch{
		id:       uuid.NewString(),
		doc:      doc,
		rules:    rules,
		resolver: resolver,
	}
}

func (b *Batch) ID() string         { return b.id }
func (b *Batch) Document() Document { return b.doc }
func (b *Batch) Len() int           { return len(b.entries) }

// Packages returns the accepted packages in insertion order.
func (b *Batch) Packages() []*Package {
	out := make([]*Package, 0, len(b.entries))
	for _, e := range b.entries {
		out = append(out, e.pkg)
	}
	return out
}

// Sources returns the option inputs of the accepted packages.
func (b *Batch) Sources() []any {
	out := make([]any, 0, len(b.entries))
	for _, e := range b.entries {
		out = append(out, e.source)
	}
	return out
}

// AddPackage adds one label built from src. The user's options are applied
// first, then the batch rules as defaults, then the package is finished.
// Any error undoes the whole addition.
func (b *Batch) AddPackage(src any) (err error) {
	user, err := b.resolver.Resolve(src)
	if err != nil {
		return err
	}
	rules, err := b.resolver.Resolve(b.rules)
	if err != nil {
		return err
	}

	root := b.doc.Root()
	saved := root.Snapshot()
	b.entries = append(b.entries, batchEntry{source: src})
	node := root.AddChild(PackageElement)

	defer func() {
		if err != nil {
			root.RemoveLastChild()
			b.entries = b.entries[:len(b.entries)-1]
			root.Restore(saved)
		}
	}()

	id := root.ChildCount()
	node.SetAttr("ID", strconv.Itoa(id))
	pkg := newPackage(id, root, node)

	for _, item := range user {
		if err = item.ApplyTo(pkg, false); err != nil {
			return err
		}
	}
	for _, item := range rules {
		if err = item.ApplyTo(pkg, true); err != nil {
			return err
		}
	}
	if err = pkg.Finish(); err != nil {
		return err
	}

	b.entries[len(b.entries)-1].pkg = pkg
	return nil
}
