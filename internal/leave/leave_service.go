package leave

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"go-leave/internal/events"
	leaveerrors "go-leave/internal/leave/errors"
	"go-leave/internal/manager"
	"go-leave/internal/notification"
	"go-leave/internal/shared/apperror"
	"go-leave/internal/shared/contextutil"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
	"golang.org/x/sync/singleflight"
	"gorm.io/gorm"
)

const (
	ListCacheKey        = "leave_requests:all"
	ListCacheVersionKey = "leave_requests:version"
	listCacheTTL        = 5 * time.Minute
)

// listCacheKey names the cached list for one cache version. Invalidation bumps
// the version, so a load that started before a write can only fill a key
// nobody reads any more.
func listCacheKey(version int64) string {
	return fmt.Sprintf("%s:v%d", ListCacheKey, version)
}

//go:generate mockgen -source=leave_service.go -destination=mock/leave_service_mock.go -package=mock
type Service interface {
	Create(ctx context.Context, req CreateLeaveRequest) (LeaveResponse, error)
	GetAll(ctx context.Context) ([]LeaveResponse, error)
	GetByID(ctx context.Context, id uint) (*LeaveResponse, error)
	UpdateStatus(ctx context.Context, req UpdateLeaveStatusRequest) (LeaveResponse, error)
	Export(ctx context.Context) ([]byte, error)
}

// Broadcaster pushes a serialized event to live dashboards.
type Broadcaster interface {
	Broadcast(payload []byte)
}

type service struct {
	db            *gorm.DB
	repo          Repository
	managers      manager.Repository
	notifier      notification.Dispatcher
	broadcaster   Broadcaster
	rdb           *redis.Client
	sf            *singleflight.Group
	managerPhones []string
	now           func() time.Time
	logger        *zap.Logger
}

type ServiceOption func(*service)

// WithManagerPhoneNumbers fixes the NEW_REQUEST recipients. Without it every
// manager's stored phone number is used.
func WithManagerPhoneNumbers(phones []string) ServiceOption {
	return func(s *service) { s.managerPhones = phones }
}

func WithBroadcaster(b Broadcaster) ServiceOption {
	return func(s *service) { s.broadcaster = b }
}

func WithRedis(rdb *redis.Client) ServiceOption {
	return func(s *service) { s.rdb = rdb }
}

func WithClock(now func() time.Time) ServiceOption {
	return func(s *service) { s.now = now }
}

func WithLogger(l *zap.Logger) ServiceOption {
	return func(s *service) {
		if l != nil {
			s.logger = l.Named("leave.service")
		}
	}
}

func NewService(
	db *gorm.DB,
	repo Repository,
	managers manager.Repository,
	notifier notification.Dispatcher,
	opts ...ServiceOption,
) Service {
	if notifier == nil {
		notifier = notification.NewNoopDispatcher()
	}
	s := &service{
		db:       db,
		repo:     repo,
		managers: managers,
		notifier: notifier,
		sf:       &singleflight.Group{},
		now:      time.Now,
		logger:   zap.L().Named("leave.service"),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

func (s *service) Create(ctx context.Context, req CreateLeaveRequest) (LeaveResponse, error) {
	log := contextutil.GetLogger(ctx, s.logger)
	log.Debug("create leave request requested",
		zap.String("employee_id", req.EmployeeID),
		zap.String("department", req.Department),
		zap.String("leave_date", req.LeaveDate),
	)

	l, err := validateCreateRequest(req)
	if err != nil {
		log.Warn("create leave request validation failed", zap.Error(err))
		return LeaveResponse{}, err
	}
	l.Status = StatusPending
	l.CreatedAt = s.now().UTC()

	if err := s.repo.Create(ctx, l); err != nil {
		log.Error("create leave request persist failed", zap.Error(err))
		return LeaveResponse{}, mapRepositoryError(err)
	}

	log.Info("create leave request success",
		zap.Uint("leave_id", l.ID),
		zap.String("employee_id", l.EmployeeID),
	)

	s.invalidateListCache(ctx)
	s.notifyManagers(ctx, l)
	s.broadcast(events.LeaveCreatedType, l)

	return mapToResponse(*l), nil
}

func (s *service) GetAll(ctx context.Context) ([]LeaveResponse, error) {
	key, cached := s.listCacheKey(ctx)
	if cached {
		if raw, err := s.rdb.Get(ctx, key).Result(); err == nil {
			var resp []LeaveResponse
			if json.Unmarshal([]byte(raw), &resp) == nil {
				return resp, nil
			}
		}
	}

	v, err, _ := s.sf.Do(key, func() (interface{}, error) {
		// shared by every waiter, so one caller cancelling must not fail the rest
		loadCtx := context.WithoutCancel(ctx)

		leaves, err := s.repo.FindAll(loadCtx)
		if err != nil {
			return nil, mapRepositoryError(err)
		}

		resp := mapToListResponse(leaves)
		if cached {
			if data, err := json.Marshal(resp); err == nil {
				if err := s.rdb.Set(loadCtx, key, data, listCacheTTL).Err(); err != nil {
					s.logger.Warn("cache leave list failed", zap.String("key", key), zap.Error(err))
				}
			}
		}
		return resp, nil
	})
	if err != nil {
		s.logger.Error("get leave requests failed", zap.Error(err))
		return nil, err
	}

	return v.([]LeaveResponse), nil
}

// listCacheKey resolves the current list key. It reports false when there is
// no cache or its version cannot be read.
func (s *service) listCacheKey(ctx context.Context) (string, bool) {
	if s.rdb == nil {
		return ListCacheKey, false
	}
	version, err := s.rdb.Get(ctx, ListCacheVersionKey).Int64()
	if err != nil && !errors.Is(err, redis.Nil) {
		s.logger.Warn("read leave list cache version failed", zap.Error(err))
		return ListCacheKey, false
	}
	return listCacheKey(version), true
}

// GetByID returns (nil, nil) when no request has the given id.
func (s *service) GetByID(ctx context.Context, id uint) (*LeaveResponse, error) {
	l, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		s.logger.Error("get leave request by id failed", zap.Uint("leave_id", id), zap.Error(err))
		return nil, mapRepositoryError(err)
	}
	resp := mapToResponse(*l)
	return &resp, nil
}

func (s *service) UpdateStatus(ctx context.Context, req UpdateLeaveStatusRequest) (LeaveResponse, error) {
	log := contextutil.GetLogger(ctx, s.logger)
	log.Debug("update leave status requested",
		zap.Uint("leave_id", req.ID),
		zap.Uint("manager_id", req.ManagerID),
		zap.String("target_status", req.Status),
	)

	target := Status(req.Status)
	if !target.Decision() {
		return LeaveResponse{}, leaveerrors.ErrInvalidDecision
	}
	if req.ID == 0 {
		return LeaveResponse{}, leaveerrors.ErrInvalidLeaveRequestID
	}
	if req.ManagerID == 0 {
		return LeaveResponse{}, leaveerrors.ErrManagerRequired
	}

	var updated *LeaveRequest
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if _, err := s.managers.WithTx(tx).FindByID(ctx, req.ManagerID); err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return leaveerrors.ErrManagerNotFound
			}
			return err
		}

		qtx := s.repo.WithTx(tx)
		current, err := qtx.FindByID(ctx, req.ID)
		if err != nil {
			return mapRepositoryError(err)
		}
		if current.Status != StatusPending {
			return leaveerrors.ErrAlreadyProcessed
		}

		t := Transition{
			Status:     target,
			ApprovedBy: req.ManagerID,
			ApprovedAt: s.now().UTC(),
		}
		if target == StatusRejected && req.RejectionReason != nil {
			reason := strings.TrimSpace(*req.RejectionReason)
			if reason != "" {
				t.RejectionReason = &reason
			}
		}

		applied, err := qtx.TransitionStatus(ctx, req.ID, t)
		if err != nil {
			return mapRepositoryError(err)
		}
		if !applied {
			return leaveerrors.ErrAlreadyProcessed
		}

		updated, err = qtx.FindByID(ctx, req.ID)
		return mapRepositoryError(err)
	})
	if err != nil {
		var appErr *apperror.AppError
		if errors.As(err, &appErr) {
			log.Warn("update leave status rejected",
				zap.Uint("leave_id", req.ID),
				zap.String("code", appErr.Code),
				zap.String("reason", appErr.Message),
			)
		} else {
			log.Error("update leave status failed", zap.Uint("leave_id", req.ID), zap.Error(err))
		}
		return LeaveResponse{}, err
	}

	log.Info("update leave status success",
		zap.Uint("leave_id", updated.ID),
		zap.String("status", string(updated.Status)),
		zap.Uint("manager_id", req.ManagerID),
	)

	s.invalidateListCache(ctx)
	s.notifyEmployee(ctx, updated)
	s.broadcast(events.LeaveStatusUpdatedType, updated)

	return mapToResponse(*updated), nil
}

func (s *service) Export(ctx context.Context) ([]byte, error) {
	leaves, err := s.repo.FindAll(ctx)
	if err != nil {
		s.logger.Error("export leave requests failed", zap.Error(err))
		return nil, mapRepositoryError(err)
	}

	data, err := BuildCSV(leaves)
	if err != nil {
		s.logger.Error("build leave requests csv failed", zap.Error(err))
		return nil, err
	}

	s.logger.Info("export leave requests success", zap.Int("rows", len(leaves)))
	return data, nil
}

func (s *service) invalidateListCache(ctx context.Context) {
	if s.rdb == nil {
		return
	}
	if err := s.rdb.Incr(ctx, ListCacheVersionKey).Err(); err != nil {
		s.logger.Error("failed to invalidate leave list cache",
			zap.String("key", ListCacheVersionKey),
			zap.Error(err),
		)
	}
}

func (s *service) notifyManagers(ctx context.Context, l *LeaveRequest) {
	phones := s.managerPhones
	if len(phones) == 0 {
		stored, err := s.managers.ListPhoneNumbers(ctx)
		if err != nil {
			s.logger.Error("load manager phone numbers failed", zap.Uint("leave_id", l.ID), zap.Error(err))
			return
		}
		phones = stored
	}
	if len(phones) == 0 {
		s.logger.Warn("no manager phone numbers configured", zap.Uint("leave_id", l.ID))
		return
	}

	msg := newRequestMessage(l)
	for _, phone := range phones {
		s.notifier.Dispatch(ctx, notification.Notification{
			PhoneNumber: phone,
			Message:     msg,
			Type:        notification.TypeNewRequest,
		})
	}
}

func (s *service) notifyEmployee(ctx context.Context, l *LeaveRequest) {
	if l.ContactPhone == nil || strings.TrimSpace(*l.ContactPhone) == "" {
		s.logger.Debug("status update not sent: no contact phone", zap.Uint("leave_id", l.ID))
		return
	}
	s.notifier.Dispatch(ctx, notification.Notification{
		PhoneNumber: *l.ContactPhone,
		Message:     statusUpdateMessage(l),
		Type:        notification.TypeStatusUpdate,
	})
}

func (s *service) broadcast(eventType string, l *LeaveRequest) {
	if s.broadcaster == nil {
		return
	}
	payload, err := json.Marshal(events.LeaveChangedEvent{
		EventType:      eventType,
		LeaveRequestID: l.ID,
		Status:         string(l.Status),
		Department:     string(l.Department),
		OccurredAt:     s.now().UTC(),
	})
	if err != nil {
		s.logger.Error("marshal leave changed event failed", zap.Error(err))
		return
	}
	s.broadcaster.Broadcast(payload)
}

func newRequestMessage(l *LeaveRequest) string {
	return fmt.Sprintf(
		"New leave request #%d from employee %s (%s) for %s at %s. Reason: %s",
		l.ID, l.EmployeeID, l.Department, l.LeaveDate.Format(dateLayout), l.Location, l.Reason,
	)
}

func statusUpdateMessage(l *LeaveRequest) string {
	msg := fmt.Sprintf(
		"Your leave request #%d for %s has been %s",
		l.ID, l.LeaveDate.Format(dateLayout), strings.ToLower(string(l.Status)),
	)
	if name := l.ApproverName(); name != "" {
		msg += " by " + name
	}
	if l.Status == StatusRejected && l.RejectionReason != nil {
		msg += ". Reason: " + *l.RejectionReason
	}
	return msg
}

func validateCreateRequest(req CreateLeaveRequest) (*LeaveRequest, error) {
	employeeID := strings.TrimSpace(req.EmployeeID)
	if employeeID == "" {
		return nil, apperror.RequiredField("Employee Id")
	}
	department := Department(strings.TrimSpace(req.Department))
	if department == "" {
		return nil, apperror.RequiredField("Department")
	}
	if !department.Valid() {
		return nil, leaveerrors.ErrInvalidDepartment
	}
	reason := strings.TrimSpace(req.Reason)
	if reason == "" {
		return nil, apperror.RequiredField("Reason")
	}
	if strings.TrimSpace(req.LeaveDate) == "" {
		return nil, apperror.RequiredField("Leave Date")
	}
	leaveDate, err := parseLeaveDate(req.LeaveDate)
	if err != nil {
		return nil, err
	}
	location := strings.TrimSpace(req.Location)
	if location == "" {
		return nil, apperror.RequiredField("Location")
	}

	l := &LeaveRequest{
		EmployeeID: employeeID,
		Department: department,
		Reason:     reason,
		LeaveDate:  leaveDate,
		Location:   location,
	}
	if req.ContactPhone != nil {
		if phone := strings.TrimSpace(*req.ContactPhone); phone != "" {
			l.ContactPhone = &phone
		}
	}
	return l, nil
}

// parseLeaveDate accepts a plain date or a full RFC 3339 timestamp and keeps
// only the calendar date.
func parseLeaveDate(v string) (time.Time, error) {
	v = strings.TrimSpace(v)
	if t, err := time.Parse(dateLayout, v); err == nil {
		return t, nil
	}
	t, err := time.Parse(time.RFC3339, v)
	if err != nil {
		return time.Time{}, leaveerrors.ErrInvalidLeaveDate
	}
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC), nil
}

func mapToResponse(l LeaveRequest) LeaveResponse {
	resp := LeaveResponse{
		ID:              l.ID,
		EmployeeID:      l.EmployeeID,
		Department:      string(l.Department),
		Reason:          l.Reason,
		LeaveDate:       l.LeaveDate.Format(dateLayout),
		Location:        l.Location,
		ContactPhone:    l.ContactPhone,
		Status:          string(l.Status),
		ApprovedBy:      l.ApprovedBy,
		RejectionReason: l.RejectionReason,
		CreatedAt:       l.CreatedAt.Format(time.RFC3339),
	}
	if name := l.ApproverName(); name != "" {
		resp.ApprovedByName = &name
	}
	if l.ApprovedAt != nil {
		v := l.ApprovedAt.Format(time.RFC3339)
		resp.ApprovedAt = &v
	}
	return resp
}

func mapToListResponse(leaves []LeaveRequest) []LeaveResponse {
	resp := make([]LeaveResponse, len(leaves))
	for i, l := range leaves {
		resp[i] = mapToResponse(l)
	}
	return resp
}
