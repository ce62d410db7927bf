package boardgameatlas

type rawSearchResponse struct {
	Games []rawGame `json:"games"`
	Count int       `json:"count"`
}

type rawGame struct {
	ID                string     `json:"id"`
	Name              string     `json:"name"`
	Description       string     `json:"description"`
	YearPublished     int        `json:"year_published"`
	MinPlayers        int        `json:"min_players"`
	MaxPlayers        int        `json:"max_players"`
	MinAge            int        `json:"min_age"`
	ImageURL          string     `json:"image_url"`
	MSRP              float64    `json:"msrp"`
	AverageUserRating float64    `json:"average_user_rating"`
	Publishers        []rawNamed `json:"publishers"`
	Designers         []rawNamed `json:"designers"`
	Categories        []rawNamed `json:"categories"`
}

type rawNamed struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}
