package galaxy

import "time"

// Raw upstream payload shapes. Field names follow the API's camelCase wire
// convention; entity constructors map them onto the semantic model.

type BiomePayload struct {
	Name        string `json:"name"`
	Description string `json:"description"`
}

type HazardPayload struct {
	Name        string `json:"name"`
	Description string `json:"description"`
}

type PositionPayload struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// PlanetPayload is the shape of the planet listing and single-planet lookup.
type PlanetPayload struct {
	Index        int             `json:"index"`
	Name         string          `json:"name"`
	Sector       string          `json:"sector"`
	Biome        BiomePayload    `json:"biome"`
	Hazards      []HazardPayload `json:"hazards"`
	Position     PositionPayload `json:"position"`
	Waypoints    []int           `json:"waypoints"`
	MaxHealth    int64           `json:"maxHealth"`
	Disabled     bool            `json:"disabled"`
	InitialOwner int             `json:"initialOwner"`
}

type PlanetStatusPayload struct {
	Index          int     `json:"index"`
	Owner          int     `json:"owner"`
	Health         int64   `json:"health"`
	RegenPerSecond float64 `json:"regenPerSecond"`
	Players        int     `json:"players"`
}

type CampaignPayload struct {
	ID          int `json:"id"`
	PlanetIndex int `json:"planetIndex"`
	Type        int `json:"type"`
	Count       int `json:"count"`
}

// StatusPayload is the war status snapshot. Time is the authoritative game
// clock every relative timestamp is reconciled against.
type StatusPayload struct {
	WarID            int                   `json:"warId"`
	Time             int64                 `json:"time"`
	ImpactMultiplier float64               `json:"impactMultiplier"`
	PlanetStatus     []PlanetStatusPayload `json:"planetStatus"`
	Campaigns        []CampaignPayload     `json:"campaigns"`
}

type PlanetInfoPayload struct {
	Index        int             `json:"index"`
	SettingsHash int64           `json:"settingsHash"`
	Position     PositionPayload `json:"position"`
	Waypoints    []int           `json:"waypoints"`
	Sector       int             `json:"sector"`
	MaxHealth    int64           `json:"maxHealth"`
	Disabled     bool            `json:"disabled"`
	InitialOwner int             `json:"initialOwner"`
}

type HomeWorldPayload struct {
	Race          int   `json:"race"`
	PlanetIndices []int `json:"planetIndices"`
}

type WarInfoPayload struct {
	WarID                int                 `json:"warId"`
	StartDate            int64               `json:"startDate"`
	EndDate              int64               `json:"endDate"`
	LayoutVersion        int                 `json:"layoutVersion"`
	MinimumClientVersion string              `json:"minimumClientVersion"`
	PlanetInfos          []PlanetInfoPayload `json:"planetInfos"`
	HomeWorlds           []HomeWorldPayload  `json:"homeWorlds"`
}

type RewardPayload struct {
	ID32   int64 `json:"id32"`
	Type   int   `json:"type"`
	Amount int   `json:"amount"`
}

type TaskPayload struct {
	Type       int   `json:"type"`
	Values     []int `json:"values"`
	ValueTypes []int `json:"valueTypes"`
}

type AssignmentSettingPayload struct {
	Type            int           `json:"type"`
	OverrideTitle   string        `json:"overrideTitle"`
	OverrideBrief   string        `json:"overrideBrief"`
	TaskDescription string        `json:"taskDescription"`
	Tasks           []TaskPayload `json:"tasks"`
	Reward          RewardPayload `json:"reward"`
}

// AssignmentPayload is the major-order shape. ExpiresIn is server-relative
// seconds remaining; Progress is index-aligned with Setting.Tasks.
type AssignmentPayload struct {
	ID32      int64                    `json:"id32"`
	Progress  []int                    `json:"progress"`
	ExpiresIn int64                    `json:"expiresIn"`
	Setting   AssignmentSettingPayload `json:"setting"`
}

// DispatchPayload is an in-game news item. Published is an offset in seconds
// relative to the current game clock.
type DispatchPayload struct {
	ID        int    `json:"id"`
	Published int64  `json:"published"`
	Type      int    `json:"type"`
	TagIDs    []int  `json:"tagIds"`
	Message   string `json:"message"`
}

type SteamNewsPayload struct {
	ID          string    `json:"id"`
	Title       string    `json:"title"`
	URL         string    `json:"url"`
	Author      string    `json:"author"`
	Content     string    `json:"content"`
	PublishedAt time.Time `json:"publishedAt"`
}

type StatisticsEntryPayload struct {
	MissionsWon        int64 `json:"missionsWon"`
	MissionsLost       int64 `json:"missionsLost"`
	MissionTime        int64 `json:"missionTime"`
	TerminidKills      int64 `json:"terminidKills"`
	AutomatonKills     int64 `json:"automatonKills"`
	IlluminateKills    int64 `json:"illuminateKills"`
	BulletsFired       int64 `json:"bulletsFired"`
	BulletsHit         int64 `json:"bulletsHit"`
	TimePlayed         int64 `json:"timePlayed"`
	Deaths             int64 `json:"deaths"`
	Revives            int64 `json:"revives"`
	Friendlies         int64 `json:"friendlies"`
	MissionSuccessRate int   `json:"missionSuccessRate"`
	Accuracy           int   `json:"accuracy"`
	PlayerCount        int64 `json:"playerCount"`
	PlanetIndex        int   `json:"planetIndex"`
}

type StatisticsPayload struct {
	GalaxyStats  StatisticsEntryPayload   `json:"galaxyStats"`
	PlanetsStats []StatisticsEntryPayload `json:"planetsStats"`
}
