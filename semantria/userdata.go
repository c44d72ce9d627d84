package semantria

import (
	"net/http"
)

// Per-configuration user data lists. Each list supports the same four
// operations; bodies are slices of strings (blacklist) or of structs and
// maps (everything else). Removal always sends a list of names.
type userList struct {
	name string
	path string
	// item is the XML element name of one entry on add and update.
	item string
}

var (
	blacklist  = userList{name: "Blacklist", path: "blacklist", item: "item"}
	categories = userList{name: "Categories", path: "categories", item: "category"}
	queries    = userList{name: "Queries", path: "queries", item: "query"}
	entities   = userList{name: "Entities", path: "entities", item: "entity"}
	phrases    = userList{name: "Phrases", path: "phrases", item: "phrase"}
)

// Category is a user category with the samples that define it.
type Category struct {
	Name     string   `json:"name"               xml:"name"`
	Weight   float64  `json:"weight,omitempty"   xml:"weight,omitempty"`
	Samples  []string `json:"samples,omitempty"  xml:"samples>sample,omitempty"`
	Strength float64  `json:"strength,omitempty" xml:"strength,omitempty"`
}

// Query is a named query in the service's query language.
type Query struct {
	Name  string `json:"name"  xml:"name"`
	Query string `json:"query" xml:"query"`
}

// Entity is a user-defined named entity.
type Entity struct {
	Name  string `json:"name"            xml:"name"`
	Type  string `json:"type,omitempty"  xml:"type,omitempty"`
	Label string `json:"label,omitempty" xml:"label,omitempty"`
}

// Phrase is a sentiment phrase with its score.
type Phrase struct {
	Name   string  `json:"name"   xml:"name"`
	Weight float64 `json:"weight" xml:"weight"`
}

func (s *Session) getList(l userList, configID string) *Call {
	return s.newCall(Descriptor{
		Operation: "Get" + l.name,
		Method:    http.MethodGet,
		Path:      l.path,
		Query:     configQuery(configID),
	})
}

func (s *Session) postList(op string, l userList, items any, configID string) *Call {
	if isNilBody(items) {
		return s.invalidCall(op, "items", "is required")
	}
	return s.newCall(Descriptor{
		Operation: op,
		Method:    http.MethodPost,
		Path:      l.path,
		Query:     configQuery(configID),
		Body:      items,
		XMLRoot:   l.path,
		XMLItem:   l.item,
	})
}

func (s *Session) removeList(l userList, names []string, configID string) *Call {
	op := "Remove" + l.name
	if len(names) == 0 {
		return s.invalidCall(op, "items", "must not be empty")
	}
	return s.newCall(Descriptor{
		Operation: op,
		Method:    http.MethodDelete,
		Path:      l.path,
		Query:     configQuery(configID),
		Body:      names,
		XMLRoot:   l.path,
		XMLItem:   "item",
	})
}

// GetBlacklist lists blacklisted terms. An empty configID selects the
// primary configuration, as it does for every method taking one.
func (s *Session) GetBlacklist(configID string) *Call {
	return s.getList(blacklist, configID)
}

// AddBlacklist adds terms to the blacklist.
func (s *Session) AddBlacklist(items []string, configID string) *Call {
	return s.postList("AddBlacklist", blacklist, items, configID)
}

// UpdateBlacklist replaces blacklisted terms.
func (s *Session) UpdateBlacklist(items []string, configID string) *Call {
	return s.postList("UpdateBlacklist", blacklist, items, configID)
}

// RemoveBlacklist removes terms from the blacklist.
func (s *Session) RemoveBlacklist(items []string, configID string) *Call {
	return s.removeList(blacklist, items, configID)
}

// GetCategories lists user categories.
func (s *Session) GetCategories(configID string) *Call {
	return s.getList(categories, configID)
}

// AddCategories creates categories. items is a slice of Category or of
// maps.
func (s *Session) AddCategories(items any, configID string) *Call {
	return s.postList("AddCategories", categories, items, configID)
}

// UpdateCategories modifies categories, matched by name.
func (s *Session) UpdateCategories(items any, configID string) *Call {
	return s.postList("UpdateCategories", categories, items, configID)
}

// RemoveCategories deletes categories by name.
func (s *Session) RemoveCategories(names []string, configID string) *Call {
	return s.removeList(categories, names, configID)
}

// GetQueries lists user queries.
func (s *Session) GetQueries(configID string) *Call {
	return s.getList(queries, configID)
}

// AddQueries creates queries. items is a slice of Query or of maps.
func (s *Session) AddQueries(items any, configID string) *Call {
	return s.postList("AddQueries", queries, items, configID)
}

// UpdateQueries modifies queries, matched by name.
func (s *Session) UpdateQueries(items any, configID string) *Call {
	return s.postList("UpdateQueries", queries, items, configID)
}

// RemoveQueries deletes queries by name.
func (s *Session) RemoveQueries(names []string, configID string) *Call {
	return s.removeList(queries, names, configID)
}

// GetEntities lists user entities.
func (s *Session) GetEntities(configID string) *Call {
	return s.getList(entities, configID)
}

// AddEntities creates entities. items is a slice of Entity or of maps.
func (s *Session) AddEntities(items any, configID string) *Call {
	return s.postList("AddEntities", entities, items, configID)
}

// UpdateEntities modifies entities, matched by name.
func (s *Session) UpdateEntities(items any, configID string) *Call {
	return s.postList("UpdateEntities", entities, items, configID)
}

// RemoveEntities deletes entities by name.
func (s *Session) RemoveEntities(names []string, configID string) *Call {
	return s.removeList(entities, names, configID)
}

// GetPhrases lists sentiment phrases.
func (s *Session) GetPhrases(configID string) *Call {
	return s.getList(phrases, configID)
}

// AddPhrases creates sentiment phrases. items is a slice of Phrase or of
// maps.
func (s *Session) AddPhrases(items any, configID string) *Call {
	return s.postList("AddPhrases", phrases, items, configID)
}

// UpdatePhrases modifies sentiment phrases, matched by name.
func (s *Session) UpdatePhrases(items any, configID string) *Call {
	return s.postList("UpdatePhrases", phrases, items, configID)
}

// RemovePhrases deletes sentiment phrases by name.
func (s *Session) RemovePhrases(names []string, configID string) *Call {
	return s.removeList(phrases, names, configID)
}

// configQuery returns the config_id query parameter. An empty id is
// dropped from the URL by Descriptor.query.
func configQuery(configID string) map[string]string {
	return map[string]string{"config_id": configID}
}
