package gamesdb

import "fmt"

type rawResponse struct {
	Code    int        `json:"code"`
	Data    rawData    `json:"data"`
	Include rawInclude `json:"include"`
}

type rawData struct {
	Count int       `json:"count"`
	Games []rawGame `json:"games"`
}

type rawGame struct {
	ID          int    `json:"id"`
	GameTitle   string `json:"game_title"`
	ReleaseDate string `json:"release_date"`
	Platform    int    `json:"platform"`
	Players     int    `json:"players"`
	Overview    string `json:"overview"`
	Rating      string `json:"rating"`
}

type rawInclude struct {
	Boxart   rawBoxart      `json:"boxart"`
	Platform rawPlatformMap `json:"platform"`
}

type rawBoxart struct {
	BaseURL rawBaseURL                `json:"base_url"`
	Data    map[string][]rawBoxartRef `json:"data"`
}

type rawBaseURL struct {
	Original string `json:"original"`
}

type rawBoxartRef struct {
	Type     string `json:"type"`
	Side     string `json:"side"`
	Filename string `json:"filename"`
}

type rawPlatformMap struct {
	Data map[string]rawPlatform `json:"data"`
}

type rawPlatform struct {
	ID   int    `json:"id"`
	Name string `json:"name"`
}

// coverURL resolves a game's front boxart against the include block's
// base URL, preferring the front side when several images exist.
func (r rawResponse) coverURL(gameID int) string {
	refs, ok := r.Include.Boxart.Data[fmt.Sprint(gameID)]
	if !ok || r.Include.Boxart.BaseURL.Original == "" {
		return ""
	}
	for _, ref := range refs {
		if ref.Type == "boxart" && ref.Side == "front" {
			return r.Include.Boxart.BaseURL.Original + ref.Filename
		}
	}
	for _, ref := range refs {
		if ref.Type == "boxart" {
			return r.Include.Boxart.BaseURL.Original + ref.Filename
		}
	}
	return ""
}
