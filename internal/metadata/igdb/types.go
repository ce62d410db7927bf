package igdb

type rawTokenResponse struct {
	AccessToken string `json:"access_token"`
	ExpiresIn   int    `json:"expires_in"`
	TokenType   string `json:"token_type"`
}

type rawGame struct {
	ID                int                  `json:"id"`
	Name              string               `json:"name"`
	Slug              string               `json:"slug"`
	Summary           string               `json:"summary"`
	FirstReleaseDate  int64                `json:"first_release_date"`
	AggregatedRating  float64              `json:"aggregated_rating"`
	Cover             *rawCover            `json:"cover"`
	Genres            []rawNamed           `json:"genres"`
	Platforms         []rawNamed           `json:"platforms"`
	InvolvedCompanies []rawInvolvedCompany `json:"involved_companies"`
	GameModes         []rawNamed           `json:"game_modes"`
	MultiplayerModes  []rawMultiplayerMode `json:"multiplayer_modes"`
}

type rawNamed struct {
	ID   int    `json:"id"`
	Name string `json:"name"`
}

type rawCover struct {
	ID  int    `json:"id"`
	URL string `json:"url"`
}

type rawInvolvedCompany struct {
	Company   rawNamed `json:"company"`
	Developer bool     `json:"developer"`
	Publisher bool     `json:"publisher"`
}

// rawMultiplayerMode carries IGDB's per-platform player count record.
// Zero means the field was not filled in, never "zero players".
type rawMultiplayerMode struct {
	OnlineMax     int  `json:"onlinemax"`
	OnlineCoopMax int  `json:"onlinecoopmax"`
	OfflineMax    int  `json:"offlinemax"`
	OfflineCoop   bool `json:"offlinecoop"`
	LANCoop       bool `json:"lancoop"`
	SplitScreen   bool `json:"splitscreen"`
	CampaignCoop  bool `json:"campaigncoop"`
}
