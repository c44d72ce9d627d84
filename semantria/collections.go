package semantria

import (
	"net/http"
	"net/url"
	"strings"
)

// Collection is a set of texts analysed together.
type Collection struct {
	ID        string   `json:"id"               xml:"id"                  validate:"required"`
	Documents []string `json:"documents"        xml:"documents>document"  validate:"required,min=1"`
	Tag       string   `json:"tag,omitempty"    xml:"tag,omitempty"`
	JobID     string   `json:"job_id,omitempty" xml:"job_id,omitempty"`
}

// QueueCollection submits a collection for analysis.
func (s *Session) QueueCollection(c Collection, configID string) *Call {
	const op = "QueueCollection"
	if err := validate.Struct(c); err != nil {
		field, reason := describeInvalid(err)
		return s.invalidCall(op, "collection."+field, reason)
	}
	return s.newCall(Descriptor{
		Operation:         op,
		Method:            http.MethodPost,
		Path:              "collection",
		Query:             configQuery(configID),
		Body:              c,
		XMLRoot:           "collection",
		AfterResponseHook: true,
	})
}

// GetCollection fetches the analysis of a queued collection.
//
// Unlike GetDocument it does not fire Hooks.OnAfterResponse.
func (s *Session) GetCollection(id, configID string) *Call {
	const op = "GetCollection"
	if strings.TrimSpace(id) == "" {
		return s.invalidCall(op, "id", "is empty")
	}
	return s.newCall(Descriptor{
		Operation: op,
		Method:    http.MethodGet,
		Path:      "collection/" + url.PathEscape(id),
		Query:     configQuery(configID),
	})
}

// CancelCollection removes a queued collection that has not been
// processed.
func (s *Session) CancelCollection(id, configID string) *Call {
	const op = "CancelCollection"
	if strings.TrimSpace(id) == "" {
		return s.invalidCall(op, "id", "is empty")
	}
	return s.newCall(Descriptor{
		Operation: op,
		Method:    http.MethodDelete,
		Path:      "collection/" + url.PathEscape(id),
		Query:     configQuery(configID),
	})
}

// GetProcessedCollections drains processed collection results for a
// configuration.
func (s *Session) GetProcessedCollections(configID string) *Call {
	return s.newCall(Descriptor{
		Operation: "GetProcessedCollections",
		Method:    http.MethodGet,
		Path:      "collection/processed",
		Query:     configQuery(configID),
	})
}

// GetProcessedCollectionsByJobID drains processed collection results
// submitted with the given job ID.
func (s *Session) GetProcessedCollectionsByJobID(jobID string) *Call {
	const op = "GetProcessedCollectionsByJobID"
	if strings.TrimSpace(jobID) == "" {
		return s.invalidCall(op, "job_id", "is empty")
	}
	return s.newCall(Descriptor{
		Operation: op,
		Method:    http.MethodGet,
		Path:      "collection/processed",
		Query:     map[string]string{"job_id": jobID},
	})
}
