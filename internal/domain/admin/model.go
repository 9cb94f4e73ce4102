package admin

import "time"

// Grant marks an account as an administrator. A grant matches an identity by
// user id or by email, so an operator may provision an email before the
// account exists.
type Grant struct {
	ID        string    `gorm:"column:id;primaryKey;size:36" json:"id"`
	Email     string    `gorm:"column:email;size:255;uniqueIndex;not null" json:"email"`
	CreatedAt time.Time `gorm:"column:created_at" json:"created_at"`
}

func (Grant) TableName() string { return TableAdminUsers }

const TableAdminUsers = "admin_users"
