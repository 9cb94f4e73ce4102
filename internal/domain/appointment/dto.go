package appointment

type ListFilter struct {
	// Status is "all", empty, or one of Statuses.
	Status string
	// Query matches first name, last name, email or service name, case-insensitively.
	Query string
}

type ListResponse struct {
	Appointments []Appointment  `json:"appointments"`
	Total        int            `json:"total"`
	Counts       map[Status]int `json:"counts"`
}

type UpdateStatusRequest struct {
	Status string `json:"status" validate:"required,oneof=pending confirmed cancelled completed"`
}

// Event is published to live dashboards when an appointment changes.
type Event struct {
	Appointment *Appointment `json:"appointment"`
	Previous    Status       `json:"previous_status,omitempty"`
}

const (
	EventCreated       = "appointment.created"
	EventStatusChanged = "appointment.status_changed"
)
