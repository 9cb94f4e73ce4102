package inquiry

// SubmitRequest is the public contact form.
type SubmitRequest struct {
	FirstName       string `json:"first_name" validate:"required,max=100"`
	LastName        string `json:"last_name" validate:"required,max=100"`
	Email           string `json:"email" validate:"required,email"`
	Phone           string `json:"phone" validate:"omitempty,max=40"`
	ServiceInterest string `json:"service" validate:"omitempty,max=100"`
	Message         string `json:"message" validate:"required,max=5000"`
}

type UpdateStatusRequest struct {
	Status string `json:"status" validate:"required,oneof=new contacted closed"`
}

type ListResponse struct {
	Inquiries []Inquiry `json:"inquiries"`
	Total     int       `json:"total"`
}

const EventReceived = "inquiry.received"
