package localauth

import "time"

type User struct {
	ID           string `gorm:"primaryKey;size:36"`
	Email        string `gorm:"size:255;uniqueIndex;not null"`
	PasswordHash string `gorm:"not null"`
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

func (User) TableName() string { return "auth_users" }

// Session backs one issued token. The token's jti is the session ID.
type Session struct {
	ID        string `gorm:"primaryKey;size:36"`
	UserID    string `gorm:"size:36;index;not null"`
	CreatedAt time.Time
	ExpiresAt time.Time  `gorm:"index;not null"`
	RevokedAt *time.Time `gorm:"index"`
}

func (Session) TableName() string { return "auth_sessions" }

func (s *Session) Active(now time.Time) bool {
	return s.RevokedAt == nil && now.Before(s.ExpiresAt)
}

// PasswordReset stores only the SHA-256 hash of the emailed token.
type PasswordReset struct {
	ID        string `gorm:"primaryKey;size:36"`
	UserID    string `gorm:"size:36;index;not null"`
	TokenHash string `gorm:"size:64;uniqueIndex;not null"`
	CreatedAt time.Time
	ExpiresAt time.Time `gorm:"index;not null"`
	UsedAt    *time.Time
}

func (PasswordReset) TableName() string { return "auth_password_resets" }

// Models lists the tables owned by this package, for migrations.
func Models() []any {
	return []any{&User{}, &Session{}, &PasswordReset{}}
}
