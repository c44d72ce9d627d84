package semantria

import (
	"net/http"
)

// Configuration is a named set of analysis settings. Settings the client
// does not model can be passed as map[string]any instead.
type Configuration struct {
	ID       string `json:"config_id,omitempty" xml:"config_id,omitempty"`
	Name     string `json:"name"                xml:"name"`
	Language string `json:"language,omitempty"  xml:"language,omitempty"`
	// Flags are pointers so that an update can switch one off; nil leaves
	// the stored value alone. See Bool.
	IsPrimary         *bool  `json:"is_primary,omitempty"          xml:"is_primary,omitempty"`
	AutoResponse      *bool  `json:"auto_response,omitempty"       xml:"auto_response,omitempty"`
	OneSentence       *bool  `json:"one_sentence,omitempty"        xml:"one_sentence,omitempty"`
	ProcessHTML       *bool  `json:"process_html,omitempty"        xml:"process_html,omitempty"`
	CharsThreshold    int    `json:"chars_threshold,omitempty"     xml:"chars_threshold,omitempty"`
	Callback          string `json:"callback,omitempty"            xml:"callback,omitempty"`
	CollectionsLimit  int    `json:"collections_limit,omitempty"   xml:"collections_limit,omitempty"`
	DocumentsPerBatch int    `json:"documents_per_batch,omitempty" xml:"documents_per_batch,omitempty"`
}

// Bool returns a pointer to v, for the flag fields of Configuration.
func Bool(v bool) *bool { return &v }

// GetConfigurations lists the account's configurations.
func (s *Session) GetConfigurations() *Call {
	return s.newCall(Descriptor{
		Operation: "GetConfigurations",
		Method:    http.MethodGet,
		Path:      "configurations",
	})
}

// AddConfigurations creates configurations. items is a slice of
// Configuration or of maps.
func (s *Session) AddConfigurations(items any) *Call {
	return s.configurationsCall("AddConfigurations", http.MethodPost, items, "configuration")
}

// UpdateConfigurations modifies existing configurations, matched by
// config_id.
func (s *Session) UpdateConfigurations(items any) *Call {
	return s.configurationsCall("UpdateConfigurations", http.MethodPost, items, "configuration")
}

// RemoveConfigurations deletes configurations by ID.
func (s *Session) RemoveConfigurations(ids []string) *Call {
	if len(ids) == 0 {
		return s.invalidCall("RemoveConfigurations", "ids", "must not be empty")
	}
	return s.configurationsCall("RemoveConfigurations", http.MethodDelete, ids, "item")
}

func (s *Session) configurationsCall(op, method string, body any, item string) *Call {
	if isNilBody(body) {
		return s.invalidCall(op, "items", "is required")
	}
	return s.newCall(Descriptor{
		Operation: op,
		Method:    method,
		Path:      "configurations",
		Body:      body,
		XMLRoot:   "configurations",
		XMLItem:   item,
	})
}
