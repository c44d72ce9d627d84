package semantria

import (
	"bytes"
	"encoding/xml"
	"errors"
	"fmt"
	"io"
	"reflect"
	"sort"
	"strconv"
	"strings"
)

// The XML flavour of the API has no schema the client could bind to, so
// bodies are converted between generic values and element trees:
//
//	map          <-> element with one child per key (keys sorted on encode)
//	slice        <-> element with repeated item children; an empty list
//	                 element decodes as an empty slice
//	scalar       <-> element text (decoded as string)
//
// Values that know how to marshal themselves (xml.Marshaler or structs)
// go through encoding/xml unchanged.

// marshalXML encodes v as an element named root. Slices use item as the
// element name of their entries.
func marshalXML(v any, root, item string) ([]byte, error) {
	if root == "" {
		root = "request"
	}
	if item == "" {
		item = singular(root)
	}

	var buf bytes.Buffer
	enc := xml.NewEncoder(&buf)

	rv := reflect.ValueOf(v)
	if err := encodeXMLValue(enc, rv, root, item); err != nil {
		return nil, err
	}
	if err := enc.Flush(); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func encodeXMLValue(enc *xml.Encoder, rv reflect.Value, name, item string) error {
	start := xml.StartElement{Name: xml.Name{Local: name}}

	if !rv.IsValid() {
		return enc.EncodeElement("", start)
	}

	if _, ok := rv.Interface().(xml.Marshaler); ok {
		return enc.EncodeElement(rv.Interface(), start)
	}

	switch rv.Kind() {
	case reflect.Pointer, reflect.Interface:
		if rv.IsNil() {
			return enc.EncodeElement("", start)
		}
		return encodeXMLValue(enc, rv.Elem(), name, item)

	case reflect.Struct:
		return enc.EncodeElement(rv.Interface(), start)

	case reflect.Map:
		if rv.Type().Key().Kind() != reflect.String {
			return fmt.Errorf("xml: unsupported map key type %s", rv.Type().Key())
		}
		if err := enc.EncodeToken(start); err != nil {
			return err
		}
		keys := make([]string, 0, rv.Len())
		for _, k := range rv.MapKeys() {
			keys = append(keys, k.String())
		}
		sort.Strings(keys)
		for _, k := range keys {
			child := rv.MapIndex(reflect.ValueOf(k).Convert(rv.Type().Key()))
			if err := encodeXMLValue(enc, child, k, singular(k)); err != nil {
				return err
			}
		}
		return enc.EncodeToken(start.End())

	case reflect.Slice, reflect.Array:
		if rv.Kind() == reflect.Slice && rv.Type().Elem().Kind() == reflect.Uint8 {
			return enc.EncodeElement(string(rv.Bytes()), start)
		}
		if err := enc.EncodeToken(start); err != nil {
			return err
		}
		for i := 0; i < rv.Len(); i++ {
			if err := encodeXMLValue(enc, rv.Index(i), item, singular(item)); err != nil {
				return err
			}
		}
		return enc.EncodeToken(start.End())

	case reflect.Bool:
		return enc.EncodeElement(strconv.FormatBool(rv.Bool()), start)

	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64,
		reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64,
		reflect.Float32, reflect.Float64, reflect.String:
		return enc.EncodeElement(fmt.Sprint(rv.Interface()), start)

	default:
		return fmt.Errorf("xml: unsupported type %s", rv.Type())
	}
}

// xmlNode is an element of a parsed document.
type xmlNode struct {
	name     string
	attrs    []xml.Attr
	text     strings.Builder
	children []*xmlNode
}

// unmarshalXML parses data and converts the root element's content.
// The root element name itself is dropped.
func unmarshalXML(data []byte) (any, error) {
	dec := xml.NewDecoder(bytes.NewReader(data))

	var stack []*xmlNode
	var root *xmlNode

	for {
		tok, err := dec.Token()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, err
		}

		switch t := tok.(type) {
		case xml.StartElement:
			n := &xmlNode{name: t.Name.Local, attrs: t.Attr}
			if len(stack) > 0 {
				parent := stack[len(stack)-1]
				parent.children = append(parent.children, n)
			} else if root != nil {
				return nil, errors.New("xml: multiple root elements")
			} else {
				root = n
			}
			stack = append(stack, n)
		case xml.EndElement:
			stack = stack[:len(stack)-1]
		case xml.CharData:
			if len(stack) > 0 {
				stack[len(stack)-1].text.Write(t)
			}
		}
	}

	if root == nil {
		return nil, errors.New("xml: no root element")
	}
	return root.value(), nil
}

// value converts a node into a generic value.
func (n *xmlNode) value() any {
	if len(n.children) == 0 {
		text := strings.TrimSpace(n.text.String())
		if text == "" && len(n.attrs) == 0 && isListName(n.name) {
			return []any{}
		}
		if text != "" || len(n.attrs) == 0 {
			return text
		}
		m := make(map[string]any, len(n.attrs))
		for _, a := range n.attrs {
			m["@"+a.Name.Local] = a.Value
		}
		return m
	}

	if n.isList() {
		list := make([]any, 0, len(n.children))
		for _, c := range n.children {
			list = append(list, c.value())
		}
		return list
	}

	counts := make(map[string]int, len(n.children))
	for _, c := range n.children {
		counts[c.name]++
	}

	m := make(map[string]any, len(counts))
	for _, c := range n.children {
		if counts[c.name] > 1 {
			list, _ := m[c.name].([]any)
			m[c.name] = append(list, c.value())
			continue
		}
		m[c.name] = c.value()
	}
	for _, a := range n.attrs {
		m["@"+a.Name.Local] = a.Value
	}
	return m
}

// isList reports whether all children are items of one list: they share a
// name that is either "item", the singular of this element's name, or
// appears more than once.
func (n *xmlNode) isList() bool {
	first := n.children[0].name
	for _, c := range n.children[1:] {
		if c.name != first {
			return false
		}
	}
	return len(n.children) > 1 || first == "item" || first == singular(n.name)
}

// listNames are list elements whose names are not plurals.
var listNames = map[string]bool{"blacklist": true}

// isListName reports whether an element with this name holds a list, so
// that an empty one decodes as an empty list rather than "".
func isListName(name string) bool {
	if listNames[name] {
		return true
	}
	if strings.HasSuffix(name, "us") || strings.HasSuffix(name, "is") {
		return false
	}
	return singular(name) != "item"
}

// singular derives a list item element name from a list element name.
func singular(name string) string {
	switch {
	case strings.HasSuffix(name, "ies") && len(name) > 3:
		return strings.TrimSuffix(name, "ies") + "y"
	case strings.HasSuffix(name, "s") && !strings.HasSuffix(name, "ss") && len(name) > 1:
		return strings.TrimSuffix(name, "s")
	default:
		return "item"
	}
}
