package steam

import "errors"

// errNotFound marks a store "no such app" response internally; the
// adapter converts it to an absent result before returning.
var errNotFound = errors.New("steam: app not found")

// Multiplayer category ids from the store taxonomy.
const (
	categoryMultiplayer      = 1
	categoryOnlinePvP        = 36
	categoryLocalMultiplayer = 37
	categoryOnlineCoop       = 38
	categoryLocalCoop        = 39
	categorySinglePlayer     = 2
)

// rawSearchResponse is the storesearch payload.
type rawSearchResponse struct {
	Total int             `json:"total"`
	Items []rawSearchItem `json:"items"`
}

type rawSearchItem struct {
	ID       int64  `json:"id"`
	Name     string `json:"name"`
	TinyImage string `json:"tiny_image"`
}

// rawAppDetails is one entry of the appdetails payload, keyed by app id.
type rawAppDetails struct {
	Success bool       `json:"success"`
	Data    rawAppData `json:"data"`
}

type rawAppData struct {
	Name             string         `json:"name"`
	SteamAppID       int64          `json:"steam_appid"`
	ShortDescription string         `json:"short_description"`
	DetailedDesc     string         `json:"detailed_description"`
	AboutTheGame     string         `json:"about_the_game"`
	HeaderImage      string         `json:"header_image"`
	Screenshots      []rawScreenshot `json:"screenshots"`
	Developers       []string       `json:"developers"`
	Publishers       []string       `json:"publishers"`
	Genres           []rawGenre     `json:"genres"`
	Categories       []rawCategory  `json:"categories"`
	ReleaseDate      rawReleaseDate `json:"release_date"`
	Platforms        rawPlatforms   `json:"platforms"`
	Metacritic       *rawMetacritic `json:"metacritic"`
	PriceOverview    *rawPrice      `json:"price_overview"`
	IsFree           bool           `json:"is_free"`
	RequiredAge      int            `json:"required_age"`
}

type rawScreenshot struct {
	PathFull string `json:"path_full"`
}

type rawGenre struct {
	Description string `json:"description"`
}

type rawCategory struct {
	ID          int    `json:"id"`
	Description string `json:"description"`
}

type rawReleaseDate struct {
	ComingSoon bool   `json:"coming_soon"`
	Date       string `json:"date"`
}

type rawPlatforms struct {
	Windows bool `json:"windows"`
	Mac     bool `json:"mac"`
	Linux   bool `json:"linux"`
}

type rawMetacritic struct {
	Score int `json:"score"`
}

type rawPrice struct {
	Currency        string `json:"currency"`
	Initial         int    `json:"initial"`
	Final           int    `json:"final"`
	DiscountPercent int    `json:"discount_percent"`
}
