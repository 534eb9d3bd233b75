package document

import (
	"io"
	"label-batch-service/internal/domain"

	"github.com/beevik/etree"
)

// Label document backed by an etree element tree.
type EtreeDocument struct {
	doc *etree.Document
}

func NewEtreeDocument(rootName string) *EtreeDocument {
	doc := etree.NewDocument()
	doc.CreateProcInst("xml", `version="1.0" encoding="UTF-8"`)
	doc.CreateElement(rootName)
	return &EtreeDocument{doc: doc}
}

// Factory satisfies domain.DocumentFactory.
func Factory(rootName string) domain.Document {
	return NewEtreeDocument(rootName)
}

// Parse reads a serialized label document back into a tree.
func Parse(s string) (*EtreeDocument, error) {
	doc := etree.NewDocument()
	if err := doc.ReadFromString(s); err != nil {
		return nil, err
	}
	return &EtreeDocument{doc: doc}, nil
}

func (d *EtreeDocument) Root() domain.Node {
	return &etreeNode{el: d.doc.Root()}
}

// Serialization works on an indented copy so the live tree keeps no
// whitespace tokens between elements.
func (d *EtreeDocument) indented() *etree.Document {
	c := d.doc.Copy()
	c.Indent(2)
	return c
}

func (d *EtreeDocument) WriteTo(w io.Writer) (int64, error) {
	return d.indented().WriteTo(w)
}

func (d *EtreeDocument) String() (string, error) {
	return d.indented().WriteToString()
}

type etreeNode struct {
	el *etree.Element
}

func (n *etreeNode) Name() string {
	return n.el.Tag
}

func (n *etreeNode) Attr(name string) (string, bool) {
	a := n.el.SelectAttr(name)
	if a == nil {
		return "", false
	}
	return a.Value, true
}

func (n *etreeNode) SetAttr(name, value string) {
	n.el.CreateAttr(name, value)
}

// Text reports set for any character data the node carries, including an
// empty token written by SetText(""). Indentation whitespace is ignored.
func (n *etreeNode) Text() (string, bool) {
	for _, tok := range n.el.Child {
		if cd, ok := tok.(*etree.CharData); ok && !cd.IsWhitespace() {
			return n.el.Text(), true
		}
	}
	return "", false
}

// SetText replaces the node's character data. etree's own SetText stores
// nothing for "", so an empty token marks the value as set.
func (n *etreeNode) SetText(value string) {
	n.clearText()
	if value == "" {
		n.el.InsertChildAt(0, etree.NewText(""))
		return
	}
	n.el.SetText(value)
}

func (n *etreeNode) clearText() {
	var text []etree.Token
	for _, tok := range n.el.Child {
		if _, ok := tok.(*etree.CharData); ok {
			text = append(text, tok)
		}
	}
	for _, tok := range text {
		n.el.RemoveChild(tok)
	}
}

func (n *etreeNode) Child(name string) domain.Node {
	el := n.el.SelectElement(name)
	if el == nil {
		return nil
	}
	return &etreeNode{el: el}
}

func (n *etreeNode) AddChild(name string) domain.Node {
	return &etreeNode{el: n.el.CreateElement(name)}
}

func (n *etreeNode) ChildCount() int {
	return len(n.el.ChildElements())
}

func (n *etreeNode) RemoveLastChild() {
	children := n.el.ChildElements()
	if len(children) == 0 {
		return
	}
	n.el.RemoveChild(children[len(children)-1])
}

func (n *etreeNode) Snapshot() domain.NodeState {
	state := domain.NodeState{Attrs: make([]domain.Attr, 0, len(n.el.Attr))}
	for _, a := range n.el.Attr {
		state.Attrs = append(state.Attrs, domain.Attr{Name: a.FullKey(), Value: a.Value})
	}
	state.Text, state.HasText = n.Text()
	return state
}

func (n *etreeNode) Restore(state domain.NodeState) {
	n.el.Attr = n.el.Attr[:0]
	for _, a := range state.Attrs {
		n.el.CreateAttr(a.Name, a.Value)
	}
	if state.HasText {
		n.SetText(state.Text)
		return
	}
	n.clearText()
}
