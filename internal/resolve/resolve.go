// Package resolve implements ordered-fallback field lookups over XML elements.
//
// Hand-authored world documents represent the same logical field in several
// shapes: an attribute, a leaf child element, or the element's own text. A
// Lookup extracts one shape; First and Chain compose lookups into fallback
// chains evaluated in order with short-circuit on the first present result.
// Lookups never error and never mutate the element they inspect.
package resolve

import (
	"strconv"
	"strings"

	"github.com/beevik/etree"
)

// Lookup extracts a single field value from an element. It returns the value
// and true when the field is present and non-empty, or ("", false) otherwise.
type Lookup func(el *etree.Element) (string, bool)

// Factory builds a Lookup bound to a candidate field name.
type Factory func(name string) Lookup

// Attr returns a Lookup reading the named attribute.
func Attr(name string) Lookup {
	return func(el *etree.Element) (string, bool) {
		a := el.SelectAttr(name)
		if a == nil {
			return "", false
		}
		return present(a.Value)
	}
}

// ChildText returns a Lookup reading the text of the first child element with
// the given tag. A child that has element children of its own carries no
// usable text value and resolves as absent.
func ChildText(name string) Lookup {
	return func(el *etree.Element) (string, bool) {
		child := el.SelectElement(name)
		if child == nil || len(child.ChildElements()) > 0 {
			return "", false
		}
		return present(child.Text())
	}
}

// OwnText returns a Lookup resolving to the element's own text, present only
// when the element is a leaf (no child elements).
func OwnText() Lookup {
	return func(el *etree.Element) (string, bool) {
		if len(el.ChildElements()) > 0 {
			return "", false
		}
		return present(el.Text())
	}
}

// JoinChildren returns a Lookup joining the text of every child element named
// name with sep, no trailing separator. Zero matching children resolve as
// absent rather than an empty string.
func JoinChildren(name, sep string) Lookup {
	return func(el *etree.Element) (string, bool) {
		children := el.SelectElements(name)
		if len(children) == 0 {
			return "", false
		}
		parts := make([]string, 0, len(children))
		for _, child := range children {
			parts = append(parts, child.Text())
		}
		return strings.Join(parts, sep), true
	}
}

// First applies each lookup in order and returns the first present result.
//
// Postcondition: returns ("", false) when no lookup resolves.
func First(el *etree.Element, lookups ...Lookup) (string, bool) {
	for _, lookup := range lookups {
		if v, ok := lookup(el); ok {
			return v, true
		}
	}
	return "", false
}

// Chain instantiates each factory with each candidate name and returns the
// flattened lookup list: all factory forms of the first name (in factory
// order) precede any form of the second name, and so on. With the factories
// (Attr, ChildText) this tries each candidate as an attribute, then as an
// element, before moving to the next candidate.
func Chain(names []string, factories ...Factory) []Lookup {
	lookups := make([]Lookup, 0, len(names)*len(factories))
	for _, name := range names {
		for _, factory := range factories {
			lookups = append(lookups, factory(name))
		}
	}
	return lookups
}

// Int applies each lookup in order and returns the first result that parses
// as an integer. A present but non-numeric value is a soft failure: it is
// skipped and resolution continues with the next lookup.
func Int(el *etree.Element, lookups ...Lookup) (int, bool) {
	for _, lookup := range lookups {
		v, ok := lookup(el)
		if !ok {
			continue
		}
		n, err := strconv.Atoi(strings.TrimSpace(v))
		if err != nil {
			continue
		}
		return n, true
	}
	return 0, false
}

func present(v string) (string, bool) {
	if v == "" {
		return "", false
	}
	return v, true
}
