package leave

import (
	"fmt"
	"net/http"
	"strconv"
	"time"

	leaveerrors "go-leave/internal/leave/errors"
	"go-leave/internal/middleware"
	"go-leave/internal/shared/apperror"
	"go-leave/internal/shared/response"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type Handler struct {
	service Service
	logger  *zap.Logger
}

func NewHandler(service Service, logger ...*zap.Logger) *Handler {
	l := zap.L().Named("leave.handler")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("leave.handler")
	}
	return &Handler{service: service, logger: l}
}

func (h *Handler) writeServiceError(c *gin.Context, err error) {
	httpErr := apperror.ToHTTP(err)
	h.logger.Warn("leave request failed",
		zap.String("method", c.Request.Method),
		zap.String("path", c.FullPath()),
		zap.Int("status", httpErr.Status),
		zap.String("code", httpErr.Code),
		zap.String("message", httpErr.Message),
	)
	response.Error(c, httpErr.Status, httpErr.Code, httpErr.Message, httpErr.Details)
}

const maxPageSize = 100

// pageBounds returns the slice bounds of a page over n items. Pages past the
// end are empty; page is checked before multiplying so it cannot overflow.
func pageBounds(n, page, pageSize int) (int, int) {
	if page > n/pageSize+1 {
		return n, n
	}
	start := (page - 1) * pageSize
	if start > n {
		start = n
	}
	end := start + pageSize
	if end > n {
		end = n
	}
	return start, end
}

func parseID(c *gin.Context) (uint, bool) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil || id == 0 {
		return 0, false
	}
	return uint(id), true
}

func (h *Handler) Create(c *gin.Context) {
	var req CreateLeaveRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Warn("http create leave request validation failed", zap.Error(err))
		h.writeServiceError(c, apperror.MapValidationError(err))
		return
	}

	resp, err := h.service.Create(c.Request.Context(), req)
	if err != nil {
		h.writeServiceError(c, err)
		return
	}

	response.Success(c, http.StatusCreated, resp, nil)
}

// GetAll returns the full list unless page or page_size is given.
func (h *Handler) GetAll(c *gin.Context) {
	resp, err := h.service.GetAll(c.Request.Context())
	if err != nil {
		h.writeServiceError(c, err)
		return
	}

	if c.Query("page") == "" && c.Query("page_size") == "" {
		response.Success(c, http.StatusOK, resp, nil)
		return
	}

	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	if page < 1 {
		page = 1
	}
	pageSize, _ := strconv.Atoi(c.DefaultQuery("page_size", "10"))
	if pageSize < 1 {
		pageSize = 10
	}
	if pageSize > maxPageSize {
		pageSize = maxPageSize
	}

	total := int64(len(resp))
	start, end := pageBounds(len(resp), page, pageSize)

	meta := response.NewPaginationMeta(total, page, pageSize)
	response.Success(c, http.StatusOK, resp[start:end], &meta)
}

func (h *Handler) GetByID(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		h.writeServiceError(c, leaveerrors.ErrInvalidLeaveRequestID)
		return
	}

	resp, err := h.service.GetByID(c.Request.Context(), id)
	if err != nil {
		h.writeServiceError(c, err)
		return
	}
	if resp == nil {
		h.writeServiceError(c, leaveerrors.ErrLeaveRequestNotFound)
		return
	}

	response.Success(c, http.StatusOK, resp, nil)
}

// UpdateStatus takes the deciding manager from the access token. A manager_id
// in the body is accepted only if it names the same manager.
func (h *Handler) UpdateStatus(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		h.writeServiceError(c, leaveerrors.ErrInvalidLeaveRequestID)
		return
	}

	var req UpdateLeaveStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Warn("http update leave status validation failed", zap.Error(err))
		h.writeServiceError(c, apperror.MapValidationError(err))
		return
	}
	req.ID = id

	if tokenManagerID, ok := middleware.ManagerID(c); ok {
		if req.ManagerID != 0 && req.ManagerID != tokenManagerID {
			h.writeServiceError(c, leaveerrors.ErrManagerMismatch)
			return
		}
		req.ManagerID = tokenManagerID
	}

	resp, err := h.service.UpdateStatus(c.Request.Context(), req)
	if err != nil {
		h.writeServiceError(c, err)
		return
	}

	response.Success(c, http.StatusOK, resp, nil)
}

func (h *Handler) Export(c *gin.Context) {
	data, err := h.service.Export(c.Request.Context())
	if err != nil {
		h.writeServiceError(c, err)
		return
	}

	filename := fmt.Sprintf("leave-requests-%s.csv", time.Now().UTC().Format(dateLayout))
	response.Attachment(c, filename, "text/csv; charset=utf-8", data)
}
