package appointment

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type Status string

const (
	StatusPending   Status = "pending"
	StatusConfirmed Status = "confirmed"
	StatusCancelled Status = "cancelled"
	StatusCompleted Status = "completed"
)

func (s Status) Valid() bool {
	switch s {
	case StatusPending, StatusConfirmed, StatusCancelled, StatusCompleted:
		return true
	}
	return false
}

var Statuses = []Status{StatusPending, StatusConfirmed, StatusCancelled, StatusCompleted}

// DateLayout is the calendar-date format stored in AppointmentDate.
const DateLayout = "2006-01-02"

// Appointment is a persisted booking request. ID, Status and CreatedAt are
// assigned when it is inserted.
type Appointment struct {
	ID              string    `gorm:"column:id;primaryKey;size:36" json:"id"`
	FirstName       string    `gorm:"column:first_name;not null" json:"first_name"`
	LastName        string    `gorm:"column:last_name;not null" json:"last_name"`
	Email           string    `gorm:"column:email;not null;index" json:"email"`
	Phone           *string   `gorm:"column:phone" json:"phone"`
	Company         *string   `gorm:"column:company" json:"company"`
	ServiceID       string    `gorm:"column:service_id;not null" json:"service_id"`
	ServiceName     string    `gorm:"column:service_name;not null" json:"service_name"`
	AppointmentDate string    `gorm:"column:appointment_date;size:10;not null;index" json:"appointment_date"`
	AppointmentTime *string   `gorm:"column:appointment_time" json:"appointment_time"`
	Notes           *string   `gorm:"column:notes;type:text" json:"notes"`
	Status          Status    `gorm:"column:status;size:16;not null;default:pending;index" json:"status"`
	CreatedAt       time.Time `gorm:"column:created_at" json:"created_at"`
}

func (Appointment) TableName() string { return TableAppointments }

const TableAppointments = "appointments"

func (a *Appointment) BeforeCreate(_ *gorm.DB) error {
	if a.ID == "" {
		a.ID = uuid.NewString()
	}
	if a.Status == "" {
		a.Status = StatusPending
	}
	return nil
}

func (a *Appointment) FullName() string {
	return a.FirstName + " " + a.LastName
}
