package semantria

import (
	"fmt"
	"net/http"
	"net/url"
	"strings"
)

// Document is a text submitted for analysis.
type Document struct {
	ID    string `json:"id"               xml:"id"               validate:"required"`
	Text  string `json:"text"             xml:"text"             validate:"required"`
	Tag   string `json:"tag,omitempty"    xml:"tag,omitempty"`
	JobID string `json:"job_id,omitempty" xml:"job_id,omitempty"`
}

// QueueDocument submits one document. The service usually answers 202
// with an empty body; results are fetched with GetDocument or
// GetProcessedDocuments.
func (s *Session) QueueDocument(doc Document, configID string) *Call {
	const op = "QueueDocument"
	if err := validate.Struct(doc); err != nil {
		field, reason := describeInvalid(err)
		return s.invalidCall(op, "document."+field, reason)
	}
	return s.newCall(Descriptor{
		Operation:         op,
		Method:            http.MethodPost,
		Path:              "document",
		Query:             configQuery(configID),
		Body:              doc,
		XMLRoot:           "document",
		AfterResponseHook: true,
	})
}

// QueueBatchOfDocuments submits several documents in one request.
func (s *Session) QueueBatchOfDocuments(docs []Document, configID string) *Call {
	const op = "QueueBatchOfDocuments"
	if len(docs) == 0 {
		return s.invalidCall(op, "documents", "must not be empty")
	}
	for i, doc := range docs {
		if err := validate.Struct(doc); err != nil {
			field, reason := describeInvalid(err)
			return s.invalidCall(op, fmt.Sprintf("documents[%d].%s", i, field), reason)
		}
	}
	return s.newCall(Descriptor{
		Operation:         op,
		Method:            http.MethodPost,
		Path:              "document/batch",
		Query:             configQuery(configID),
		Body:              docs,
		XMLRoot:           "documents",
		XMLItem:           "document",
		AfterResponseHook: true,
	})
}

// GetDocument fetches the analysis of a queued document.
func (s *Session) GetDocument(id, configID string) *Call {
	const op = "GetDocument"
	if strings.TrimSpace(id) == "" {
		return s.invalidCall(op, "id", "is empty")
	}
	return s.newCall(Descriptor{
		Operation:         op,
		Method:            http.MethodGet,
		Path:              "document/" + url.PathEscape(id),
		Query:             configQuery(configID),
		AfterResponseHook: true,
	})
}

// CancelDocument removes a queued document that has not been processed.
func (s *Session) CancelDocument(id, configID string) *Call {
	const op = "CancelDocument"
	if strings.TrimSpace(id) == "" {
		return s.invalidCall(op, "id", "is empty")
	}
	return s.newCall(Descriptor{
		Operation: op,
		Method:    http.MethodDelete,
		Path:      "document/" + url.PathEscape(id),
		Query:     configQuery(configID),
	})
}

// GetProcessedDocuments drains processed document results for a
// configuration.
func (s *Session) GetProcessedDocuments(configID string) *Call {
	return s.newCall(Descriptor{
		Operation: "GetProcessedDocuments",
		Method:    http.MethodGet,
		Path:      "document/processed",
		Query:     configQuery(configID),
	})
}

// GetProcessedDocumentsByJobID drains processed document results
// submitted with the given job ID.
func (s *Session) GetProcessedDocumentsByJobID(jobID string) *Call {
	const op = "GetProcessedDocumentsByJobID"
	if strings.TrimSpace(jobID) == "" {
		return s.invalidCall(op, "job_id", "is empty")
	}
	return s.newCall(Descriptor{
		Operation: op,
		Method:    http.MethodGet,
		Path:      "document/processed",
		Query:     map[string]string{"job_id": jobID},
	})
}
