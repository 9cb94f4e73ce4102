package booking

type SelectServiceRequest struct {
	ServiceID string `json:"service_id"`
}

type SelectDateRequest struct {
	Date string `json:"date"`
}

type SelectTimeRequest struct {
	Time string `json:"time"`
}

type SessionResponse struct {
	SessionID string `json:"session_id"`
	View
}
