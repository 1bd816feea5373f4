package fiber

import "time"

type TimeframeResponse struct {
	Key   string `json:"key" example:"30d"`
	Label string `json:"label" example:"Last 30 days"`
	Days  int    `json:"days" example:"30"`
}

type TimeframesResponse struct {
	Default    string              `json:"default" example:"30d"`
	Timeframes []TimeframeResponse `json:"timeframes"`
}

type SectionResponse struct {
	Section  string    `json:"section" example:"user_activity"`
	Title    string    `json:"title" example:"User Activity"`
	LoadedAt time.Time `json:"loaded_at"`
	Data     any       `json:"data"`
}

type ErrorResponse struct {
	Error   string `json:"error" example:"invalid_query"`
	Message string `json:"message" example:"invalid time range"`
}
