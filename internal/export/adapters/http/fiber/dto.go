package fiber

type StatusResponse struct {
	Viewer string `json:"viewer" example:"u-1"`
	Status string `json:"status" example:"idle"`
}

type ErrorResponse struct {
	Error   string `json:"error" example:"export_in_progress"`
	Message string `json:"message" example:"an export is already running for this viewer"`
}
