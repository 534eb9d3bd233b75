package domain

import "io"

// Attr is a single name/value attribute pair on a document node.
type Attr struct {
	Name  string
	Value string
}

// NodeState is a copy of a node's own attributes and text, used to put a
// node back the way it was after a failed mutation. Children are not part
// of the state.
type NodeState struct {
	Attrs   []Attr
	Text    string
	HasText bool
}

// Node is a handle to one element of a label document tree.
type Node interface {
	Name() string

	// Attr returns the named attribute and whether it is present.
	Attr(name string) (string, bool)
	SetAttr(name, value string)

	// Text returns the node's character data and whether any has been set.
	Text() (string, bool)
	SetText(value string)

	// Child returns the first child element with the given name, or nil.
	Child(name string) Node
	AddChild(name string) Node
	ChildCount() int
	// Remove the most recently added child element.
	RemoveLastChild()

	Snapshot() NodeState
	Restore(state NodeState)
}

// Document is a label document: one root node plus serialization.
type Document interface {
	Root() Node
	WriteTo(w io.Writer) (int64, error)
	String() (string, error)
}

// DocumentFactory creates an empty document whose root element has the
// given name.
type DocumentFactory func(rootName string) Document
