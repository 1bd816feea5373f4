package fiber

import "conveymed-analytics/internal/events/core/usecase"

// CreateEventRequest represents a tracked app action
// @Description Tracked event DTO
type CreateEventRequest struct {
	Type       string            `json:"type" example:"asset_download"`
	UserID     string            `json:"user_id" example:"u_123"`
	ResourceID string            `json:"resource_id" example:"asset_42"`
	Timestamp  int64             `json:"timestamp" example:"1714564800"`
	Attributes map[string]string `json:"attributes,omitempty"`
}

type CreateEventResponse struct {
	Status  string `json:"status"`
	Message string `json:"message,omitempty"`
}

type BulkCreateEventsRequest struct {
	Events []CreateEventRequest `json:"events"`
}

type BulkCreateEventsResponse struct {
	Created    int `json:"created"`
	Duplicates int `json:"duplicates"`
}

type ErrorResponse struct {
	Error   string `json:"error" example:"invalid_event"`
	Message string `json:"message" example:"Event payload is invalid"`
}

func (r CreateEventRequest) input() usecase.StoreEventInput {
	return usecase.StoreEventInput{
		Type:       r.Type,
		UserID:     r.UserID,
		ResourceID: r.ResourceID,
		Timestamp:  r.Timestamp,
		Attributes: r.Attributes,
	}
}
