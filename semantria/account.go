package semantria

import (
	"net/http"
)

// GetStatus reports service availability and the versions it runs.
func (s *Session) GetStatus() *Call {
	return s.newCall(Descriptor{
		Operation: "GetStatus",
		Method:    http.MethodGet,
		Path:      "status",
	})
}

// GetSupportedFeatures lists the analysis features per language. An empty
// language lists all of them.
func (s *Session) GetSupportedFeatures(language string) *Call {
	return s.newCall(Descriptor{
		Operation: "GetSupportedFeatures",
		Method:    http.MethodGet,
		Path:      "features",
		Query:     map[string]string{"language": language},
	})
}

// GetSubscription returns the account's plan, limits and billing
// settings.
func (s *Session) GetSubscription() *Call {
	return s.newCall(Descriptor{
		Operation: "GetSubscription",
		Method:    http.MethodGet,
		Path:      "subscription",
	})
}

// GetStatistics returns usage counters for the account.
func (s *Session) GetStatistics() *Call {
	return s.newCall(Descriptor{
		Operation: "GetStatistics",
		Method:    http.MethodGet,
		Path:      "statistics",
	})
}
