package domain

import "github.com/shopspring/decimal"

// Package accumulates the options for one label inside a batch document.
//
// Most options are written immediately. Items that must see the package's
// final state (customs lines) are queued with Enqueue and applied by Finish.
type Package struct {
	ID int

	node     Node
	root     Node
	queue    []queued
	finished bool

	totalItems  int
	totalWeight decimal.Decimal
	totalValue  decimal.Decimal
}

type queued struct {
	item      Applier
	isDefault bool
}

// newPackage binds a package to node, a child of root.
func newPackage(id int, root, node Node) *Package {
	return &Package{
		ID:          id,
		node:        node,
		root:        root,
		totalWeight: decimal.Zero,
		totalValue:  decimal.Zero,
	}
}

func (p *Package) element(path Path, create bool) Node {
	if path.IsRoot() {
		return p.root
	}
	el := p.node.Child(path.Node)
	if el == nil && create {
		el = p.node.AddChild(path.Node)
	}
	return el
}

// Get returns the value at path and whether it is set.
func (p *Package) Get(path Path) (string, bool) {
	el := p.element(path, false)
	if el == nil {
		return "", false
	}
	if path.Attr != "" {
		return el.Attr(path.Attr)
	}
	return el.Text()
}

// Set writes value at path, creating the element if needed.
func (p *Package) Set(path Path, value string) {
	el := p.element(path, true)
	if path.Attr != "" {
		el.SetAttr(path.Attr, value)
		return
	}
	el.SetText(value)
}

// Enqueue defers item until Finish. It returns false once the package is
// finished, in which case the caller must apply the item itself.
func (p *Package) Enqueue(item Applier, isDefault bool) bool {
	if p.finished {
		return false
	}
	p.queue = append(p.queue, queued{item: item, isDefault: isDefault})
	return true
}

// Finished reports whether Finish has been called.
func (p *Package) Finished() bool {
	return p.finished
}

// Finish applies the queued items in order and then checks the customs
// totals if any customs lines were added.
func (p *Package) Finish() error {
	p.finished = true
	queue := p.queue
	p.queue = nil
	for _, q := range queue {
		if err := q.item.ApplyTo(p, q.isDefault); err != nil {
			return err
		}
	}
	if p.totalItems > 0 {
		return p.checkCustoms()
	}
	return nil
}

// CustomsItems returns the number of customs lines on the package.
func (p *Package) CustomsItems() int {
	return p.totalItems
}

// CustomsTotals returns the summed customs weight and value.
func (p *Package) CustomsTotals() (weight, value decimal.Decimal) {
	return p.totalWeight, p.totalValue
}
