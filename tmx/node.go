package tmx

import (
	"encoding/xml"
	"fmt"
	"strconv"
)

// node is a generic XML element that keeps attributes and children in
// document order.
type node struct {
	XMLName xml.Name
	Attrs   []xml.Attr `xml:",any,attr"`
	Nodes   []node     `xml:",any"`
	Text    string     `xml:",chardata"`
}

func (n *node) name() string {
	return n.XMLName.Local
}

func (n *node) attr(name string) (string, bool) {
	for _, a := range n.Attrs {
		if a.Name.Local == name {
			return a.Value, true
		}
	}
	return "", false
}

// attrOr returns the attribute value or def when the attribute is absent.
func (n *node) attrOr(name, def string) string {
	if v, ok := n.attr(name); ok {
		return v
	}
	return def
}

func (n *node) intAttr(name string) (int, error) {
	v, ok := n.attr(name)
	if !ok {
		return 0, missingAttr(n.name(), name)
	}
	i, err := strconv.Atoi(v)
	if err != nil {
		return 0, n.badAttr(name, v, err)
	}
	return i, nil
}

// floatAttrOr parses an optional floating point attribute.
func (n *node) floatAttrOr(name string, def float64) (float64, error) {
	v, ok := n.attr(name)
	if !ok {
		return def, nil
	}
	f, err := strconv.ParseFloat(v, 64)
	if err != nil {
		return 0, n.badAttr(name, v, err)
	}
	return f, nil
}

func (n *node) badAttr(name, value string, cause error) error {
	return &ParseError{
		Element: n.name(),
		Attr:    name,
		Value:   value,
		Err:     fmt.Errorf("%w: %v", ErrMalformedDocument, cause),
	}
}

// child returns the first direct child with the given tag, or nil.
func (n *node) child(name string) *node {
	for i := range n.Nodes {
		if n.Nodes[i].name() == name {
			return &n.Nodes[i]
		}
	}
	return nil
}

// children returns the direct children with the given tag in document order.
func (n *node) children(name string) []*node {
	var out []*node
	for i := range n.Nodes {
		if n.Nodes[i].name() == name {
			out = append(out, &n.Nodes[i])
		}
	}
	return out
}

// find returns every element with the given tag in the subtree rooted at n,
// including n itself, in document (pre-)order.
func (n *node) find(name string) []*node {
	var out []*node
	var walk func(*node)
	walk = func(cur *node) {
		if cur.name() == name {
			out = append(out, cur)
		}
		for i := range cur.Nodes {
			walk(&cur.Nodes[i])
		}
	}
	walk(n)
	return out
}
