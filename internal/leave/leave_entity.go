package leave

import (
	"time"

	"leavetrack/internal/department"
	"leavetrack/internal/user"

	"github.com/google/uuid"
)

const (
	StatusPending  = "PENDING"
	StatusApproved = "APPROVED"
	StatusRejected = "REJECTED"
)

const (
	TypeAnnual = "ANNUAL"
	TypeSick   = "SICK"
	TypeUnpaid = "UNPAID"
)

type Leave struct {
	ID     uuid.UUID `gorm:"type:uuid;primaryKey"`
	UserID uuid.UUID `gorm:"type:uuid;not null;index"`
	User   *user.User `gorm:"foreignKey:UserID"`

	DepartmentID *uuid.UUID             `gorm:"type:uuid;index"`
	Department   *department.Department `gorm:"foreignKey:DepartmentID"`

	StartDate time.Time `gorm:"type:date;not null"`
	EndDate   time.Time `gorm:"type:date;not null"`
	Reason    string    `gorm:"size:500"`
	LeaveType string    `gorm:"size:30;not null;default:'ANNUAL'"`
	Status    string    `gorm:"size:20;not null;default:'PENDING';index"`

	// WorkDays is computed from the dates at creation; an explicit override
	// on update is stored as-is.
	WorkDays int `gorm:"not null"`

	// Year is fixed from StartDate at creation and never recomputed.
	Year int `gorm:"not null;index"`

	CreatedAt time.Time `gorm:"autoCreateTime"`
	UpdatedAt time.Time `gorm:"autoUpdateTime"`
}

func ValidStatus(s string) bool {
	switch s {
	case StatusPending, StatusApproved, StatusRejected:
		return true
	}
	return false
}

func ValidType(t string) bool {
	switch t {
	case TypeAnnual, TypeSick, TypeUnpaid:
		return true
	}
	return false
}
