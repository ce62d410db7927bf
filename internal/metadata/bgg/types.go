package bgg

import "encoding/xml"

// XMLAPI2 wraps most scalar values in a value attribute rather than
// element text.
type rawItems struct {
	XMLName xml.Name  `xml:"items"`
	Items   []rawItem `xml:"item"`
}

type rawItem struct {
	Type          string    `xml:"type,attr"`
	ID            string    `xml:"id,attr"`
	Names         []rawName `xml:"name"`
	YearPublished rawValue  `xml:"yearpublished"`
	Description   string    `xml:"description"`
	Image         string    `xml:"image"`
	Thumbnail     string    `xml:"thumbnail"`
	MinPlayers    rawValue  `xml:"minplayers"`
	MaxPlayers    rawValue  `xml:"maxplayers"`
	PlayingTime   rawValue  `xml:"playingtime"`
	MinAge        rawValue  `xml:"minage"`
	Links         []rawLink `xml:"link"`
	Statistics    *rawStats `xml:"statistics"`
}

type rawName struct {
	Type  string `xml:"type,attr"`
	Value string `xml:"value,attr"`
}

type rawValue struct {
	Value string `xml:"value,attr"`
}

type rawLink struct {
	Type  string `xml:"type,attr"`
	Value string `xml:"value,attr"`
}

type rawStats struct {
	Ratings rawRatings `xml:"ratings"`
}

type rawRatings struct {
	Average rawValue `xml:"average"`
}

// primaryName returns the item's primary name, falling back to the first
// listed name for items that only carry alternates.
func (i rawItem) primaryName() string {
	for _, n := range i.Names {
		if n.Type == "primary" {
			return n.Value
		}
	}
	if len(i.Names) > 0 {
		return i.Names[0].Value
	}
	return ""
}

func (i rawItem) linkValues(linkType string) []string {
	var out []string
	for _, l := range i.Links {
		if l.Type == linkType {
			out = append(out, l.Value)
		}
	}
	return out
}
