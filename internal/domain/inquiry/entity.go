package inquiry

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type Status string

const (
	StatusNew       Status = "new"
	StatusContacted Status = "contacted"
	StatusClosed    Status = "closed"
)

func (s Status) Valid() bool {
	switch s {
	case StatusNew, StatusContacted, StatusClosed:
		return true
	}
	return false
}

const TableInquiries = "inquiries"

// Inquiry is a message left through the contact form.
type Inquiry struct {
	ID              string  `gorm:"column:id;primaryKey;size:36" json:"id"`
	FirstName       string  `gorm:"column:first_name;not null" json:"first_name"`
	LastName        string  `gorm:"column:last_name;not null" json:"last_name"`
	Email           string  `gorm:"column:email;not null;index" json:"email"`
	Phone           *string `gorm:"column:phone" json:"phone"`
	ServiceInterest *string `gorm:"column:service_interest" json:"service_interest"`
	Message         string  `gorm:"column:message;type:text;not null" json:"message"`
	Status          Status  `gorm:"column:status;size:16;not null;default:new;index" json:"status"`
	Source          string  `gorm:"column:source;size:32" json:"source"`

	IPAddress   *string    `gorm:"column:ip_address" json:"-"`
	UserAgent   *string    `gorm:"column:user_agent" json:"-"`
	ContactedAt *time.Time `gorm:"column:contacted_at" json:"contacted_at"`
	CreatedAt   time.Time  `gorm:"column:created_at" json:"created_at"`
	UpdatedAt   time.Time  `gorm:"column:updated_at" json:"updated_at"`
}

func (Inquiry) TableName() string { return TableInquiries }

func (i *Inquiry) BeforeCreate(_ *gorm.DB) error {
	if i.ID == "" {
		i.ID = uuid.NewString()
	}
	if i.Status == "" {
		i.Status = StatusNew
	}
	return nil
}
