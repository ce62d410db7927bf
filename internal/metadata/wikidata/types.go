package wikidata

// wbsearchentities response shape.
type rawEntitySearchResponse struct {
	Search []rawEntityHit `json:"search"`
}

type rawEntityHit struct {
	ID          string `json:"id"`
	Label       string `json:"label"`
	Description string `json:"description"`
}

// SPARQL query service response shape. Every selected variable arrives
// as a {type, value} pair under its name.
type rawSPARQLResponse struct {
	Results rawSPARQLResults `json:"results"`
}

type rawSPARQLResults struct {
	Bindings []map[string]rawSPARQLValue `json:"bindings"`
}

type rawSPARQLValue struct {
	Type  string `json:"type"`
	Value string `json:"value"`
}

// str returns the value bound to name, or "" when the variable is unbound
// in this row.
func binding(row map[string]rawSPARQLValue, name string) string {
	if v, ok := row[name]; ok {
		return v.Value
	}
	return ""
}
