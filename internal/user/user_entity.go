package user

import (
	"time"

	"leavetrack/internal/department"

	"github.com/google/uuid"
)

const (
	RoleUser  = "ROLE_USER"
	RoleAdmin = "ROLE_ADMIN"
)

type User struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey"`
	FirstName string    `gorm:"size:255;not null"`
	LastName  string    `gorm:"size:255;not null"`
	PhoneNo   string    `gorm:"size:30;not null"`
	Email     string    `gorm:"size:255;uniqueIndex;not null"`
	Password  string    `gorm:"size:255;not null"`
	Role      string    `gorm:"size:50;not null;default:'ROLE_USER'"`

	DepartmentID *uuid.UUID             `gorm:"type:uuid"`
	Department   *department.Department `gorm:"foreignKey:DepartmentID"`

	LastLoginAt *time.Time
	CreatedAt   time.Time `gorm:"autoCreateTime"`
	UpdatedAt   time.Time `gorm:"autoUpdateTime"`
}

func (u User) FullName() string {
	return u.FirstName + " " + u.LastName
}
