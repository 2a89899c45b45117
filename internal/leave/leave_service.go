package leave

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"leavetrack/internal/config"
	departmenterrors "leavetrack/internal/department/errors"
	"leavetrack/internal/events"
	leaveerrors "leavetrack/internal/leave/errors"
	"leavetrack/internal/messaging/kafka"
	"leavetrack/internal/shared/contextutil"
	usererrors "leavetrack/internal/user/errors"

	"leavetrack/internal/department"
	"leavetrack/internal/user"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

//go:generate mockgen -source=leave_service.go -destination=mock/leave_service_mock.go -package=mock
type Service interface {
	Create(ctx context.Context, req CreateLeaveRequest) (LeaveResponse, error)
	Update(ctx context.Context, id string, req UpdateLeaveRequest) (LeaveResponse, error)
	Approve(ctx context.Context, id string) (LeaveResponse, error)
	Reject(ctx context.Context, id string) (LeaveResponse, error)
	Delete(ctx context.Context, id string) error

	GetByID(ctx context.Context, id string) (LeaveResponse, error)
	GetAll(ctx context.Context) ([]LeaveResponse, error)
	GetByUser(ctx context.Context, userID string) ([]LeaveResponse, error)
	GetByDepartment(ctx context.Context, departmentID string) ([]LeaveResponse, error)
	GetByStatus(ctx context.Context, status string) ([]LeaveResponse, error)
	GetByType(ctx context.Context, leaveType string) ([]LeaveResponse, error)
	GetByDateRange(ctx context.Context, start, end string) ([]LeaveResponse, error)
	Filter(ctx context.Context, req FilterLeavesRequest) ([]LeaveResponse, int, error)

	Summary(ctx context.Context, userID string, year int) (LeaveSummaryResponse, error)
	SummaryByEmail(ctx context.Context, email string, year int) (LeaveSummaryResponse, error)
	CheckLimit(ctx context.Context, userID string, year, requested int) (CheckLimitResponse, error)
	ComputeWorkDays(start, end string) (WorkDaysResponse, error)
}

type service struct {
	repo        Repository
	users       user.Repository
	departments department.Repository
	policy      *config.LeavePolicy
	db          *gorm.DB
	outbox      kafka.OutboxRepository
	logger      *zap.Logger
}

// NewService wires the lifecycle. db and outbox may be nil; decisions then
// skip the event write and save directly.
func NewService(
	repo Repository,
	users user.Repository,
	departments department.Repository,
	policy *config.LeavePolicy,
	db *gorm.DB,
	outbox kafka.OutboxRepository,
	logger ...*zap.Logger,
) Service {
	l := zap.L().Named("leave.service")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("leave.service")
	}
	return &service{
		repo:        repo,
		users:       users,
		departments: departments,
		policy:      policy,
		db:          db,
		outbox:      outbox,
		logger:      l,
	}
}

func today() time.Time {
	return truncateToDay(time.Now())
}

func (s *service) Create(ctx context.Context, req CreateLeaveRequest) (LeaveResponse, error) {
	s.logger.Debug("create leave requested", zap.String("email", req.UserEmail))

	u, err := s.users.FindByEmail(ctx, req.UserEmail)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return LeaveResponse{}, usererrors.ErrUserNotFound
		}
		return LeaveResponse{}, err
	}

	start, err := parseDate("startDate", req.StartDate)
	if err != nil {
		return LeaveResponse{}, err
	}
	end, err := parseDate("endDate", req.EndDate)
	if err != nil {
		return LeaveResponse{}, err
	}

	if start.After(end) {
		return LeaveResponse{}, leaveerrors.InvalidDateRange(start, end)
	}
	if start.Before(today()) {
		return LeaveResponse{}, leaveerrors.ErrStartDateInPast
	}

	workDays := CalculateWorkDays(start, end, s.policy.WorkDayCalculationEnabled())

	// Soft admission check: quota is evaluated here, at request time, and
	// never re-checked at approval.
	if s.policy.LimitCheckEnabled() {
		maxDays := s.policy.MaxYearlyLeaveDays()
		used, err := s.repo.SumApprovedWorkDays(ctx, u.ID.String(), start.Year())
		if err != nil {
			return LeaveResponse{}, err
		}
		if used+workDays > maxDays {
			s.logger.Warn("leave limit exceeded",
				zap.String("user_id", u.ID.String()),
				zap.Int("max", maxDays),
				zap.Int("used", used),
				zap.Int("requested", workDays),
			)
			return LeaveResponse{}, leaveerrors.LeaveLimitExceeded(maxDays, used, workDays)
		}
	}

	deptID, dept, err := s.resolveDepartment(ctx, req.DepartmentID, u)
	if err != nil {
		return LeaveResponse{}, err
	}

	leaveType := req.LeaveType
	if leaveType == "" {
		leaveType = TypeAnnual
	}

	l := &Leave{
		ID:           uuid.New(),
		UserID:       u.ID,
		User:         u,
		DepartmentID: deptID,
		Department:   dept,
		StartDate:    start,
		EndDate:      end,
		Reason:       req.Reason,
		LeaveType:    leaveType,
		Status:       StatusPending,
		WorkDays:     workDays,
		Year:         start.Year(),
	}

	if err := s.repo.Create(ctx, l); err != nil {
		s.logger.Error("create leave persist failed", zap.Error(err))
		return LeaveResponse{}, err
	}
	s.logger.Info("create leave success",
		zap.String("leave_id", l.ID.String()),
		zap.String("user_id", u.ID.String()),
		zap.Int("work_days", workDays),
	)

	return MapToResponse(*l), nil
}

// resolveDepartment prefers the explicit department and falls back to the
// user's home department, which may be absent.
func (s *service) resolveDepartment(ctx context.Context, explicit string, u *user.User) (*uuid.UUID, *department.Department, error) {
	if explicit != "" {
		dept, err := s.departments.FindByID(ctx, explicit)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, nil, departmenterrors.ErrDepartmentNotFound
			}
			return nil, nil, err
		}
		return &dept.ID, dept, nil
	}
	return u.DepartmentID, u.Department, nil
}

func (s *service) Update(ctx context.Context, id string, req UpdateLeaveRequest) (LeaveResponse, error) {
	l, err := s.findByID(ctx, id)
	if err != nil {
		return LeaveResponse{}, err
	}

	var start, end *time.Time
	if req.StartDate != nil {
		t, err := parseDate("startDate", *req.StartDate)
		if err != nil {
			return LeaveResponse{}, err
		}
		start = &t
	}
	if req.EndDate != nil {
		t, err := parseDate("endDate", *req.EndDate)
		if err != nil {
			return LeaveResponse{}, err
		}
		end = &t
	}

	if start != nil && end != nil {
		if start.After(*end) {
			return LeaveResponse{}, leaveerrors.InvalidDateRange(*start, *end)
		}
		if l.Status == StatusPending && start.Before(today()) {
			return LeaveResponse{}, leaveerrors.ErrStartDateInPast
		}
	}

	if start != nil {
		l.StartDate = *start
	}
	if end != nil {
		l.EndDate = *end
	}
	if req.Reason != nil {
		l.Reason = *req.Reason
	}
	if req.LeaveType != nil {
		l.LeaveType = *req.LeaveType
	}
	if req.Status != nil {
		l.Status = *req.Status
	}

	// An explicit work-day override always wins; dates alone trigger a
	// recompute only when both were supplied.
	switch {
	case req.WorkDays != nil:
		l.WorkDays = *req.WorkDays
	case start != nil && end != nil:
		l.WorkDays = CalculateWorkDays(*start, *end, s.policy.WorkDayCalculationEnabled())
	}

	if req.DepartmentID != nil {
		dept, err := s.departments.FindByID(ctx, *req.DepartmentID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return LeaveResponse{}, departmenterrors.ErrDepartmentNotFound
			}
			return LeaveResponse{}, err
		}
		l.DepartmentID = &dept.ID
		l.Department = dept
	}

	if err := s.repo.Update(ctx, l); err != nil {
		s.logger.Error("update leave persist failed", zap.String("leave_id", id), zap.Error(err))
		return LeaveResponse{}, err
	}
	s.logger.Info("update leave success", zap.String("leave_id", id))

	return MapToResponse(*l), nil
}

func (s *service) Approve(ctx context.Context, id string) (LeaveResponse, error) {
	return s.decide(ctx, id, StatusApproved, events.LeaveApprovedTopic)
}

func (s *service) Reject(ctx context.Context, id string) (LeaveResponse, error) {
	return s.decide(ctx, id, StatusRejected, events.LeaveRejectedTopic)
}

// decide sets the status and stages the decision event in the same
// transaction as the save. There is no transition guard and no quota
// re-check.
func (s *service) decide(ctx context.Context, id, status, topic string) (LeaveResponse, error) {
	l, err := s.findByID(ctx, id)
	if err != nil {
		return LeaveResponse{}, err
	}

	l.Status = status

	if s.db == nil || s.outbox == nil {
		if err := s.repo.Update(ctx, l); err != nil {
			return LeaveResponse{}, err
		}
		s.logger.Info("leave decision saved", zap.String("leave_id", id), zap.String("status", status))
		return MapToResponse(*l), nil
	}

	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := s.repo.WithTx(tx).Update(ctx, l); err != nil {
			return err
		}
		return s.stageDecisionEvent(ctx, tx, l, topic)
	})
	if err != nil {
		s.logger.Error("leave decision failed", zap.String("leave_id", id), zap.Error(err))
		return LeaveResponse{}, err
	}

	s.logger.Info("leave decision saved", zap.String("leave_id", id), zap.String("status", status))
	return MapToResponse(*l), nil
}

func (s *service) stageDecisionEvent(ctx context.Context, tx *gorm.DB, l *Leave, topic string) error {
	event := events.LeaveDecidedEvent{
		EventType:  topic,
		RequestID:  contextutil.GetRequestID(ctx),
		LeaveID:    l.ID.String(),
		UserID:     l.UserID.String(),
		Status:     l.Status,
		StartDate:  l.StartDate.Format(dateLayout),
		EndDate:    l.EndDate.Format(dateLayout),
		WorkDays:   l.WorkDays,
		OccurredAt: time.Now().UTC(),
	}
	if l.DepartmentID != nil {
		event.DepartmentID = l.DepartmentID.String()
	}

	payload, err := json.Marshal(event)
	if err != nil {
		return err
	}

	return s.outbox.WithTx(tx).Create(ctx, kafka.OutboxEvent{
		ID:            uuid.New().String(),
		RequestID:     event.RequestID,
		AggregateType: "leave",
		AggregateID:   l.ID.String(),
		EventType:     topic,
		Topic:         topic,
		Payload:       payload,
		Status:        kafka.OutboxStatusPending,
	})
}

func (s *service) Delete(ctx context.Context, id string) error {
	if _, err := s.findByID(ctx, id); err != nil {
		return err
	}
	if err := s.repo.Delete(ctx, id); err != nil {
		s.logger.Error("delete leave failed", zap.String("leave_id", id), zap.Error(err))
		return err
	}
	s.logger.Info("delete leave success", zap.String("leave_id", id))
	return nil
}

func (s *service) findByID(ctx context.Context, id string) (*Leave, error) {
	l, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, leaveerrors.ErrLeaveNotFound
		}
		return nil, err
	}
	return l, nil
}

func (s *service) GetByID(ctx context.Context, id string) (LeaveResponse, error) {
	l, err := s.findByID(ctx, id)
	if err != nil {
		return LeaveResponse{}, err
	}
	return MapToResponse(*l), nil
}

func (s *service) GetAll(ctx context.Context) ([]LeaveResponse, error) {
	leaves, err := s.repo.FindAll(ctx)
	if err != nil {
		return nil, err
	}
	return MapToListResponse(leaves), nil
}

func (s *service) GetByUser(ctx context.Context, userID string) ([]LeaveResponse, error) {
	leaves, err := s.repo.FindByUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	return MapToListResponse(leaves), nil
}

func (s *service) GetByDepartment(ctx context.Context, departmentID string) ([]LeaveResponse, error) {
	leaves, err := s.repo.FindByDepartment(ctx, departmentID)
	if err != nil {
		return nil, err
	}
	return MapToListResponse(leaves), nil
}

func (s *service) GetByStatus(ctx context.Context, status string) ([]LeaveResponse, error) {
	leaves, err := s.repo.FindByStatus(ctx, status)
	if err != nil {
		return nil, err
	}
	return MapToListResponse(leaves), nil
}

func (s *service) GetByType(ctx context.Context, leaveType string) ([]LeaveResponse, error) {
	leaves, err := s.repo.FindByType(ctx, leaveType)
	if err != nil {
		return nil, err
	}
	return MapToListResponse(leaves), nil
}

func (s *service) GetByDateRange(ctx context.Context, start, end string) ([]LeaveResponse, error) {
	startAt, err := parseDate("start", start)
	if err != nil {
		return nil, err
	}
	endAt, err := parseDate("end", end)
	if err != nil {
		return nil, err
	}
	if startAt.After(endAt) {
		return nil, leaveerrors.InvalidDateRange(startAt, endAt)
	}

	leaves, err := s.repo.FindByDateRange(ctx, startAt, endAt)
	if err != nil {
		return nil, err
	}
	return MapToListResponse(leaves), nil
}

func (s *service) Filter(ctx context.Context, req FilterLeavesRequest) ([]LeaveResponse, int, error) {
	criteria := FilterCriteria{
		Search:       req.Search,
		Status:       req.Status,
		LeaveType:    req.LeaveType,
		DepartmentID: req.DepartmentID,
		UserID:       req.UserID,
	}
	if req.StartDate != "" {
		t, err := parseDate("startDate", req.StartDate)
		if err != nil {
			return nil, 0, err
		}
		criteria.StartDate = &t
	}
	if req.EndDate != "" {
		t, err := parseDate("endDate", req.EndDate)
		if err != nil {
			return nil, 0, err
		}
		criteria.EndDate = &t
	}

	all, err := s.repo.FindAll(ctx)
	if err != nil {
		return nil, 0, err
	}

	total := MatchCount(all, criteria)
	page := FilterLeaves(all, criteria, req.Page, req.Size)
	return MapToListResponse(page), total, nil
}

func (s *service) Summary(ctx context.Context, userID string, year int) (LeaveSummaryResponse, error) {
	u, err := s.users.FindByID(ctx, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return LeaveSummaryResponse{}, usererrors.ErrUserNotFound
		}
		return LeaveSummaryResponse{}, err
	}
	return s.summarize(ctx, u, year)
}

func (s *service) SummaryByEmail(ctx context.Context, email string, year int) (LeaveSummaryResponse, error) {
	u, err := s.users.FindByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return LeaveSummaryResponse{}, usererrors.ErrUserNotFound
		}
		return LeaveSummaryResponse{}, err
	}
	return s.summarize(ctx, u, year)
}

func (s *service) summarize(ctx context.Context, u *user.User, year int) (LeaveSummaryResponse, error) {
	used, err := s.repo.SumApprovedWorkDays(ctx, u.ID.String(), year)
	if err != nil {
		return LeaveSummaryResponse{}, err
	}

	maxDays := s.policy.MaxYearlyLeaveDays()
	remaining := maxDays - used
	if remaining < 0 {
		remaining = 0
	}

	resp := LeaveSummaryResponse{
		UserID:        u.ID.String(),
		UserName:      u.FullName(),
		Year:          year,
		MaxDays:       maxDays,
		UsedDays:      used,
		RemainingDays: remaining,
		LimitExceeded: used > maxDays,
	}
	if u.Department != nil {
		resp.DepartmentName = u.Department.Name
	}
	return resp, nil
}

func (s *service) CheckLimit(ctx context.Context, userID string, year, requested int) (CheckLimitResponse, error) {
	used, err := s.repo.SumApprovedWorkDays(ctx, userID, year)
	if err != nil {
		return CheckLimitResponse{}, err
	}

	maxDays := s.policy.MaxYearlyLeaveDays()
	return CheckLimitResponse{
		Allowed:       used+requested <= maxDays,
		MaxDays:       maxDays,
		UsedDays:      used,
		RequestedDays: requested,
	}, nil
}

func (s *service) ComputeWorkDays(start, end string) (WorkDaysResponse, error) {
	startAt, err := parseDate("start", start)
	if err != nil {
		return WorkDaysResponse{}, err
	}
	endAt, err := parseDate("end", end)
	if err != nil {
		return WorkDaysResponse{}, err
	}
	if startAt.After(endAt) {
		return WorkDaysResponse{}, leaveerrors.InvalidDateRange(startAt, endAt)
	}

	return WorkDaysResponse{
		StartDate: start,
		EndDate:   end,
		WorkDays:  CalculateWorkDays(startAt, endAt, s.policy.WorkDayCalculationEnabled()),
	}, nil
}
