package semantria

import (
	"bytes"
	"fmt"
	"strings"

	json "github.com/goccy/go-json"
)

// Format is the wire format of a session. It selects both the URL prefix
// and the encoding of request and response bodies.
type Format string

const (
	FormatJSON Format = "json"
	FormatXML  Format = "xml"
)

// ParseFormat parses "json" or "xml", case-insensitively. An empty string
// yields FormatJSON.
func ParseFormat(s string) (Format, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", string(FormatJSON):
		return FormatJSON, nil
	case string(FormatXML):
		return FormatXML, nil
	default:
		return "", fmt.Errorf("unknown format %q", s)
	}
}

func (f Format) String() string { return string(f) }

// ContentType returns the MIME type for request bodies in this format.
func (f Format) ContentType() string {
	if f == FormatXML {
		return "application/xml"
	}
	return "application/json"
}

// encodeBody serializes a request body. root and item name the XML
// wrapper element and list item elements; JSON ignores them.
func (f Format) encodeBody(v any, root, item string) ([]byte, error) {
	if f == FormatXML {
		return marshalXML(v, root, item)
	}
	return json.Marshal(v)
}

// decodeBody parses a response body into maps, slices and scalars.
// An empty or whitespace-only body decodes to nil.
func (f Format) decodeBody(data []byte) (any, error) {
	if len(bytes.TrimSpace(data)) == 0 {
		return nil, nil
	}
	if f == FormatXML {
		return unmarshalXML(data)
	}
	var v any
	if err := json.Unmarshal(data, &v); err != nil {
		return nil, err
	}
	return v, nil
}
