package leave

import (
	"net/http"

	"leavetrack/internal/config"
	"leavetrack/internal/shared/apperror"
	"leavetrack/internal/shared/response"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// PolicyHandler exposes the hot-mutable leave rules to administrators.
// Changes apply to subsequent requests only.
type PolicyHandler struct {
	policy *config.LeavePolicy
	logger *zap.Logger
}

func NewPolicyHandler(policy *config.LeavePolicy, logger ...*zap.Logger) *PolicyHandler {
	l := zap.L().Named("leave.policy.handler")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("leave.policy.handler")
	}
	return &PolicyHandler{policy: policy, logger: l}
}

func (h *PolicyHandler) snapshot() LeavePolicyResponse {
	return LeavePolicyResponse{
		MaxYearlyLeaveDays:       h.policy.MaxYearlyLeaveDays(),
		EnableWorkDayCalculation: h.policy.WorkDayCalculationEnabled(),
		EnableLeaveLimitCheck:    h.policy.LimitCheckEnabled(),
	}
}

func (h *PolicyHandler) Get(c *gin.Context) {
	response.Success(c, http.StatusOK, h.snapshot(), nil)
}

func (h *PolicyHandler) Update(c *gin.Context) {
	var req UpdateLeavePolicyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httpErr := apperror.ToHTTP(apperror.MapValidationError(err))
		response.Error(c, httpErr.Status, httpErr.Code, httpErr.Message, nil)
		return
	}

	if req.MaxYearlyLeaveDays != nil {
		h.policy.SetMaxYearlyLeaveDays(*req.MaxYearlyLeaveDays)
	}
	if req.EnableWorkDayCalculation != nil {
		h.policy.SetWorkDayCalculationEnabled(*req.EnableWorkDayCalculation)
	}
	if req.EnableLeaveLimitCheck != nil {
		h.policy.SetLimitCheckEnabled(*req.EnableLeaveLimitCheck)
	}

	h.logger.Info("leave policy updated",
		zap.Int("max_yearly_leave_days", h.policy.MaxYearlyLeaveDays()),
		zap.Bool("work_day_calculation", h.policy.WorkDayCalculationEnabled()),
		zap.Bool("limit_check", h.policy.LimitCheckEnabled()),
	)

	response.Success(c, http.StatusOK, h.snapshot(), nil)
}
