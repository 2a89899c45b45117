package leave

import (
	"time"

	"leavetrack/internal/shared/apperror"
)

const dateLayout = "2006-01-02"

type CreateLeaveRequest struct {
	UserEmail    string `json:"userEmail" binding:"required,email"`
	StartDate    string `json:"startDate" binding:"required"`
	EndDate      string `json:"endDate" binding:"required"`
	Reason       string `json:"reason" binding:"max=500"`
	LeaveType    string `json:"leaveType" binding:"omitempty,oneof=ANNUAL SICK UNPAID"`
	DepartmentID string `json:"departmentId" binding:"omitempty,uuid"`
}

// UpdateLeaveRequest carries a partial update; nil fields are left untouched.
type UpdateLeaveRequest struct {
	StartDate    *string `json:"startDate"`
	EndDate      *string `json:"endDate"`
	Reason       *string `json:"reason" binding:"omitempty,max=500"`
	LeaveType    *string `json:"leaveType" binding:"omitempty,oneof=ANNUAL SICK UNPAID"`
	Status       *string `json:"status" binding:"omitempty,oneof=PENDING APPROVED REJECTED"`
	WorkDays     *int    `json:"workDays" binding:"omitempty,min=0"`
	DepartmentID *string `json:"departmentId" binding:"omitempty,uuid"`
}

type FilterLeavesRequest struct {
	Search       string `form:"search"`
	Status       string `form:"status"`
	LeaveType    string `form:"leaveType"`
	DepartmentID string `form:"departmentId"`
	UserID       string `form:"userId"`
	StartDate    string `form:"startDate"`
	EndDate      string `form:"endDate"`
	Page         int    `form:"page,default=0" binding:"omitempty,min=0"`
	Size         int    `form:"size,default=10" binding:"omitempty,min=1,max=100"`
}

type LeaveResponse struct {
	ID             string  `json:"id"`
	UserID         string  `json:"userId"`
	UserName       string  `json:"userName,omitempty"`
	UserEmail      string  `json:"userEmail,omitempty"`
	DepartmentID   *string `json:"departmentId,omitempty"`
	DepartmentName *string `json:"departmentName,omitempty"`
	StartDate      string  `json:"startDate"`
	EndDate        string  `json:"endDate"`
	Reason         string  `json:"reason"`
	LeaveType      string  `json:"leaveType"`
	Status         string  `json:"status"`
	WorkDays       int     `json:"workDays"`
	Year           int     `json:"year"`
	CreatedAt      string  `json:"createdAt"`
	UpdatedAt      string  `json:"updatedAt"`
}

type LeaveSummaryResponse struct {
	UserID         string `json:"userId"`
	UserName       string `json:"userName"`
	DepartmentName string `json:"departmentName,omitempty"`
	Year           int    `json:"year"`
	MaxDays        int    `json:"maxDays"`
	UsedDays       int    `json:"usedDays"`
	RemainingDays  int    `json:"remainingDays"`
	LimitExceeded  bool   `json:"limitExceeded"`
}

type CheckLimitResponse struct {
	Allowed       bool `json:"allowed"`
	MaxDays       int  `json:"maxDays"`
	UsedDays      int  `json:"usedDays"`
	RequestedDays int  `json:"requestedDays"`
}

type WorkDaysResponse struct {
	StartDate string `json:"startDate"`
	EndDate   string `json:"endDate"`
	WorkDays  int    `json:"workDays"`
}

type LeavePolicyResponse struct {
	MaxYearlyLeaveDays       int  `json:"maxYearlyLeaveDays"`
	EnableWorkDayCalculation bool `json:"enableWorkDayCalculation"`
	EnableLeaveLimitCheck    bool `json:"enableLeaveLimitCheck"`
}

type UpdateLeavePolicyRequest struct {
	MaxYearlyLeaveDays       *int  `json:"maxYearlyLeaveDays" binding:"omitempty,min=1"`
	EnableWorkDayCalculation *bool `json:"enableWorkDayCalculation"`
	EnableLeaveLimitCheck    *bool `json:"enableLeaveLimitCheck"`
}

func parseDate(field, value string) (time.Time, error) {
	t, err := time.Parse(dateLayout, value)
	if err != nil {
		return time.Time{}, apperror.InvalidField(field)
	}
	return t, nil
}

func MapToResponse(l Leave) LeaveResponse {
	resp := LeaveResponse{
		ID:        l.ID.String(),
		UserID:    l.UserID.String(),
		StartDate: l.StartDate.Format(dateLayout),
		EndDate:   l.EndDate.Format(dateLayout),
		Reason:    l.Reason,
		LeaveType: l.LeaveType,
		Status:    l.Status,
		WorkDays:  l.WorkDays,
		Year:      l.Year,
		CreatedAt: l.CreatedAt.Format(time.RFC3339),
		UpdatedAt: l.UpdatedAt.Format(time.RFC3339),
	}
	if l.User != nil {
		resp.UserName = l.User.FullName()
		resp.UserEmail = l.User.Email
	}
	if l.DepartmentID != nil {
		v := l.DepartmentID.String()
		resp.DepartmentID = &v
	}
	if l.Department != nil {
		resp.DepartmentName = &l.Department.Name
	}
	return resp
}

func MapToListResponse(leaves []Leave) []LeaveResponse {
	resp := make([]LeaveResponse, len(leaves))
	for i, l := range leaves {
		resp[i] = MapToResponse(l)
	}
	return resp
}
