package domain

import "time"

type UserRole string

const (
	UserRoleUser  UserRole = "USER"
	UserRoleAdmin UserRole = "ADMIN"
)

type User struct {
	ID        int64     `gorm:"primaryKey" json:"id"`
	Name      string    `gorm:"size:100;not null" json:"name"`
	Username  string    `gorm:"size:100;uniqueIndex;not null" json:"username"`
	Password  string    `gorm:"size:100;not null" json:"-"`
	Email     string    `gorm:"size:150" json:"email"`
	DOB       time.Time `gorm:"column:dob;type:date;not null" json:"dob"`
	Gender    string    `gorm:"size:10" json:"gender"`
	Avatar    string    `json:"avatar"`
	Role      UserRole  `gorm:"size:10;not null;default:'USER'" json:"role"`
	CreatedAt time.Time `json:"created_at"`
}

func (User) TableName() string { return "users" }

func (u *User) IsAdmin() bool {
	return u != nil && u.Role == UserRoleAdmin
}
