package payslip

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/sahithdaddla/latish13-Payslip-Module/internal/middleware"
	"github.com/sahithdaddla/latish13-Payslip-Module/internal/shared/apperror"
	"github.com/sahithdaddla/latish13-Payslip-Module/internal/shared/response"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
)

const idempotencyTTL = 24 * time.Hour

type Handler struct {
	service Service
	rdb     *redis.Client
}

func NewHandler(service Service) *Handler {
	return &Handler{service: service}
}

func NewHandlerWithRedis(service Service, rdb *redis.Client) *Handler {
	return &Handler{service: service, rdb: rdb}
}

func (h *Handler) writeServiceError(c *gin.Context, err error) {
	httpErr := apperror.ToHTTP(err)
	response.Error(c, httpErr.Status, httpErr.Code, httpErr.Message, httpErr.Details)
}

func (h *Handler) Create(c *gin.Context) {
	ctx := c.Request.Context()
	lockKey := c.GetString(middleware.IdempotencyLockKey)
	cacheKey := c.GetString(middleware.IdempotencyCacheKey)

	if h.rdb != nil && lockKey != "" {
		defer h.rdb.Del(ctx, lockKey)
	}

	var req CreatePayslipRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.writeServiceError(c, apperror.MapValidationError(err))
		return
	}

	resp, err := h.service.Create(ctx, req)
	if err != nil {
		h.writeServiceError(c, err)
		return
	}

	if h.rdb != nil && cacheKey != "" {
		if payload, marshalErr := json.Marshal(resp); marshalErr == nil {
			_ = h.rdb.Set(ctx, cacheKey, payload, idempotencyTTL).Err()
		}
	}

	response.Success(c, http.StatusCreated, resp, nil)
}

func (h *Handler) GetByIdentity(c *gin.Context) {
	var query GetPayslipQuery
	if err := c.ShouldBindQuery(&query); err != nil {
		h.writeServiceError(c, apperror.MapValidationError(err))
		return
	}

	resp, err := h.service.GetByIdentity(c.Request.Context(), query.EmployeeID, query.Month, query.Year)
	if err != nil {
		h.writeServiceError(c, err)
		return
	}

	response.Success(c, http.StatusOK, resp, nil)
}

// GetAll returns every summary unless page or page_size is given.
func (h *Handler) GetAll(c *gin.Context) {
	resp, err := h.service.List(c.Request.Context())
	if err != nil {
		h.writeServiceError(c, err)
		return
	}

	pageParam, hasPage := c.GetQuery("page")
	sizeParam, hasSize := c.GetQuery("page_size")
	if !hasPage && !hasSize {
		response.Success(c, http.StatusOK, resp, nil)
		return
	}

	page, err := parsePageParam(pageParam, hasPage)
	if err != nil {
		h.writeServiceError(c, apperror.InvalidField("page"))
		return
	}
	pageSize, err := parsePageParam(sizeParam, hasSize)
	if err != nil {
		h.writeServiceError(c, apperror.InvalidField("page_size"))
		return
	}
	items, meta := response.Paginate(resp, page, pageSize)
	response.Success(c, http.StatusOK, items, &meta)
}

// parsePageParam leaves an absent value at zero so Paginate applies its default.
func parsePageParam(raw string, present bool) (int, error) {
	if !present {
		return 0, nil
	}
	return strconv.Atoi(raw)
}

func (h *Handler) GetByID(c *gin.Context) {
	resp, err := h.service.GetByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		h.writeServiceError(c, err)
		return
	}

	response.Success(c, http.StatusOK, resp, nil)
}

func (h *Handler) Delete(c *gin.Context) {
	if err := h.service.Delete(c.Request.Context(), c.Param("id")); err != nil {
		h.writeServiceError(c, err)
		return
	}

	response.Success(c, http.StatusOK, gin.H{"deleted": true, "message": "Payslip deleted successfully"}, nil)
}

func (h *Handler) DownloadPDF(c *gin.Context) {
	doc, filename, err := h.service.RenderPDF(c.Request.Context(), c.Param("id"))
	if err != nil {
		h.writeServiceError(c, err)
		return
	}

	c.Header("Content-Disposition", fmt.Sprintf(`attachment; filename="%s"`, filename))
	c.Data(http.StatusOK, "application/pdf", doc)
}

func (h *Handler) Health(c *gin.Context) {
	if err := h.service.Health(c.Request.Context()); err != nil {
		unavailable := apperror.ErrServiceUnavailable
		response.Error(c, unavailable.HTTPStatus, unavailable.Code, unavailable.Message, nil)
		return
	}

	response.Success(c, http.StatusOK, gin.H{"status": "ok"}, nil)
}
