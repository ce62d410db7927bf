package wikidata

import (
	"context"
	"encoding/json/v2"
	"fmt"
	"strings"
	"time"

	"github.com/JulianiusM/InventoryManagement-sub002/internal/metadata"
	"github.com/JulianiusM/InventoryManagement-sub002/internal/textnorm"
)

// sparqlGameQuery pulls one entity's fields with labels resolved in a
// single round trip. Multi-valued properties are pipe-joined per group.
const sparqlGameQuery = `SELECT ?itemLabel ?itemDescription ?image ?pubDate
  (GROUP_CONCAT(DISTINCT ?genreLabel; separator="|") AS ?genres)
  (GROUP_CONCAT(DISTINCT ?developerLabel; separator="|") AS ?developers)
  (GROUP_CONCAT(DISTINCT ?publisherLabel; separator="|") AS ?publishers)
  (GROUP_CONCAT(DISTINCT ?platformLabel; separator="|") AS ?platforms)
WHERE {
  BIND(wd:%s AS ?item)
  OPTIONAL { ?item wdt:P18 ?image. }
  OPTIONAL { ?item wdt:P577 ?pubDate. }
  OPTIONAL { ?item wdt:P136 ?genre. ?genre rdfs:label ?genreLabel. FILTER(LANG(?genreLabel) = "en") }
  OPTIONAL { ?item wdt:P178 ?developer. ?developer rdfs:label ?developerLabel. FILTER(LANG(?developerLabel) = "en") }
  OPTIONAL { ?item wdt:P123 ?publisher. ?publisher rdfs:label ?publisherLabel. FILTER(LANG(?publisherLabel) = "en") }
  OPTIONAL { ?item wdt:P400 ?platform. ?platform rdfs:label ?platformLabel. FILTER(LANG(?platformLabel) = "en") }
  SERVICE wikibase:label { bd:serviceParam wikibase:language "en". }
}
GROUP BY ?itemLabel ?itemDescription ?image ?pubDate`

// GetGame resolves one entity id via the query service.
func (c *Client) GetGame(ctx context.Context, externalID string) (*metadata.GameMetadata, error) {
	if !entityIDRegex.MatchString(externalID) {
		return nil, nil
	}

	sparql := fmt.Sprintf(sparqlGameQuery, externalID)

	body, err := c.doGet(ctx, "getGame", c.sparqlURL(sparql))
	if err != nil {
		return nil, metadata.WrapError(providerID, "getGame", externalID, err)
	}

	var resp rawSPARQLResponse
	if err := json.Unmarshal(body, &resp); err != nil {
		return nil, metadata.WrapError(providerID, "getGame", externalID, fmt.Errorf("parse response: %w", err))
	}

	if len(resp.Results.Bindings) == 0 {
		return nil, nil
	}
	row := resp.Results.Bindings[0]

	name := textnorm.DecodeEntities(binding(row, "itemLabel"))
	// Unknown entities echo the id back as their label.
	if name == "" || name == externalID {
		return nil, nil
	}

	md := &metadata.GameMetadata{
		ExternalID:  externalID,
		Name:        name,
		Description: textnorm.CleanDescription(binding(row, "itemDescription")),
		CoverURL:    binding(row, "image"),
		Genres:      splitConcat(binding(row, "genres")),
		Developers:  splitConcat(binding(row, "developers")),
		Publishers:  splitConcat(binding(row, "publishers")),
		Platforms:   splitConcat(binding(row, "platforms")),
		RawPayload:  body,
	}

	if pub := binding(row, "pubDate"); pub != "" {
		if ts, err := time.Parse(time.RFC3339, pub); err == nil {
			md.ReleaseDate = &ts
		}
	}

	return md, nil
}

// splitConcat breaks a GROUP_CONCAT pipe-joined value into its parts,
// decoding entities per part.
func splitConcat(joined string) []string {
	if joined == "" {
		return nil
	}
	parts := strings.Split(joined, "|")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(textnorm.DecodeEntities(p)); p != "" {
			out = append(out, p)
		}
	}
	if len(out) == 0 {
		return nil
	}
	return out
}
