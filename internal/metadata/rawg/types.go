package rawg

import "errors"

var errNotFound = errors.New("game not found")

type rawSearchResponse struct {
	Count   int       `json:"count"`
	Results []rawGame `json:"results"`
}

type rawGame struct {
	ID              int           `json:"id"`
	Slug            string        `json:"slug"`
	Name            string        `json:"name"`
	Released        string        `json:"released"`
	BackgroundImage string        `json:"background_image"`
	Description     string        `json:"description"`
	DescriptionRaw  string        `json:"description_raw"`
	Metacritic      int           `json:"metacritic"`
	Genres          []rawNamed    `json:"genres"`
	Developers      []rawNamed    `json:"developers"`
	Publishers      []rawNamed    `json:"publishers"`
	Platforms       []rawPlatform `json:"platforms"`
	ESRBRating      *rawNamed     `json:"esrb_rating"`
}

type rawNamed struct {
	ID   int    `json:"id"`
	Name string `json:"name"`
}

type rawPlatform struct {
	Platform rawNamed `json:"platform"`
}
