package renter

import (
	"encoding/json"
	"net/http"
	"sort"
	"strconv"
	"strings"
	"time"

	"proryx/internal/middleware"
	"proryx/internal/shared/apperror"
	"proryx/internal/shared/response"
	"proryx/internal/tenancy"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

type Handler struct {
	service Service
	rdb     *redis.Client
	logger  *zap.Logger
}

func NewHandler(service Service, logger ...*zap.Logger) *Handler {
	l := zap.L().Named("renter.handler")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("renter.handler")
	}
	return &Handler{service: service, logger: l}
}

func NewHandlerWithRedis(service Service, rdb *redis.Client, logger ...*zap.Logger) *Handler {
	h := NewHandler(service, logger...)
	h.rdb = rdb
	return h
}

func (h *Handler) writeServiceError(c *gin.Context, err error) {
	httpErr := apperror.ToHTTP(err)
	h.logger.Warn("renter request failed",
		zap.String("method", c.Request.Method),
		zap.String("path", c.FullPath()),
		zap.Int("status", httpErr.Status),
		zap.String("code", httpErr.Code),
	)
	response.Error(c, httpErr.Status, httpErr.Code, httpErr.Message, httpErr.Details)
}

func (h *Handler) tenant(c *gin.Context) (tenancy.Context, bool) {
	tc, ok := middleware.TenantFromGin(c)
	if !ok {
		response.Error(c, http.StatusUnauthorized, "UNAUTHORIZED", "Tenant context missing", nil)
		c.Abort()
	}
	return tc, ok
}

func (h *Handler) actor(c *gin.Context) int64 {
	return c.GetInt64(middleware.KeyUserID)
}

func (h *Handler) Create(c *gin.Context) {
	lockKey, _ := c.Get("idempotency_lock_key")
	cacheKey, _ := c.Get("idempotency_cache_key")

	if h.rdb != nil {
		if lk, ok := lockKey.(string); ok && lk != "" {
			defer h.rdb.Del(c.Request.Context(), lk)
		}
	}

	tc, ok := h.tenant(c)
	if !ok {
		return
	}

	var req CreateRenterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		mapped := apperror.ToHTTP(apperror.MapValidationError(err))
		response.Error(c, mapped.Status, mapped.Code, mapped.Message, nil)
		return
	}

	resp, err := h.service.Create(c.Request.Context(), tc, req)
	if err != nil {
		h.writeServiceError(c, err)
		return
	}

	if h.rdb != nil {
		if ck, ok := cacheKey.(string); ok && ck != "" {
			if payload, marshalErr := json.Marshal(resp); marshalErr == nil {
				_ = h.rdb.Set(c.Request.Context(), ck, payload, 24*time.Hour).Err()
			}
		}
	}

	response.Success(c, http.StatusCreated, resp, nil)
}

func (h *Handler) GetAll(c *gin.Context) {
	tc, ok := h.tenant(c)
	if !ok {
		return
	}

	resp, err := h.service.GetAll(c.Request.Context(), tc)
	if err != nil {
		h.writeServiceError(c, err)
		return
	}

	q := strings.TrimSpace(strings.ToLower(c.Query("q")))
	if q != "" {
		filtered := make([]RenterResponse, 0, len(resp))
		for _, r := range resp {
			if strings.Contains(strings.ToLower(r.DisplayName), q) ||
				strings.Contains(strings.ToLower(r.RenterCode), q) ||
				strings.Contains(strings.ToLower(r.Email), q) {
				filtered = append(filtered, r)
			}
		}
		resp = filtered
	}

	if status := c.Query("status"); status != "" {
		filtered := make([]RenterResponse, 0, len(resp))
		for _, r := range resp {
			if r.Status == status {
				filtered = append(filtered, r)
			}
		}
		resp = filtered
	}

	if kyc := c.Query("kyc_status"); kyc != "" {
		filtered := make([]RenterResponse, 0, len(resp))
		for _, r := range resp {
			if r.KYCStatus == kyc {
				filtered = append(filtered, r)
			}
		}
		resp = filtered
	}

	sortBy := strings.ToLower(strings.TrimSpace(c.DefaultQuery("sort_by", "code")))
	sortDir := strings.ToLower(strings.TrimSpace(c.DefaultQuery("sort_dir", "asc")))
	if sortDir != "desc" {
		sortDir = "asc"
	}
	sort.Slice(resp, func(i, j int) bool {
		var less bool
		switch sortBy {
		case "name":
			less = strings.ToLower(resp[i].DisplayName) < strings.ToLower(resp[j].DisplayName)
		case "kyc_status":
			less = resp[i].KYCStatus < resp[j].KYCStatus
		default:
			less = resp[i].RenterCode < resp[j].RenterCode
		}
		if sortDir == "desc" {
			return !less
		}
		return less
	})

	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	if page < 1 {
		page = 1
	}
	pageSize, _ := strconv.Atoi(c.DefaultQuery("page_size", "10"))
	if pageSize < 1 {
		pageSize = 10
	}

	total := int64(len(resp))
	start := (page - 1) * pageSize
	if start > len(resp) {
		start = len(resp)
	}
	end := start + pageSize
	if end > len(resp) {
		end = len(resp)
	}

	meta := response.NewPaginationMeta(total, page, pageSize)
	response.Success(c, http.StatusOK, resp[start:end], &meta)
}

func (h *Handler) GetByID(c *gin.Context) {
	tc, ok := h.tenant(c)
	if !ok {
		return
	}

	resp, err := h.service.GetByUUID(c.Request.Context(), tc, c.Param("id"))
	if err != nil {
		h.writeServiceError(c, err)
		return
	}

	response.Success(c, http.StatusOK, resp, nil)
}

func (h *Handler) Update(c *gin.Context) {
	tc, ok := h.tenant(c)
	if !ok {
		return
	}

	var req UpdateRenterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		mapped := apperror.ToHTTP(apperror.MapValidationError(err))
		response.Error(c, mapped.Status, mapped.Code, mapped.Message, nil)
		return
	}

	resp, err := h.service.Update(c.Request.Context(), tc, c.Param("id"), req)
	if err != nil {
		h.writeServiceError(c, err)
		return
	}

	response.Success(c, http.StatusOK, resp, nil)
}

func (h *Handler) Delete(c *gin.Context) {
	tc, ok := h.tenant(c)
	if !ok {
		return
	}

	if err := h.service.Delete(c.Request.Context(), tc, c.Param("id")); err != nil {
		h.writeServiceError(c, err)
		return
	}

	response.Success(c, http.StatusOK, gin.H{"deleted": true}, nil)
}

func (h *Handler) Blacklist(c *gin.Context) {
	tc, ok := h.tenant(c)
	if !ok {
		return
	}

	var req BlacklistRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		mapped := apperror.ToHTTP(apperror.MapValidationError(err))
		response.Error(c, mapped.Status, mapped.Code, mapped.Message, nil)
		return
	}

	resp, err := h.service.Blacklist(c.Request.Context(), tc, c.Param("id"), h.actor(c), req.Reason)
	if err != nil {
		h.writeServiceError(c, err)
		return
	}

	response.Success(c, http.StatusOK, resp, nil)
}

func (h *Handler) Unblacklist(c *gin.Context) {
	tc, ok := h.tenant(c)
	if !ok {
		return
	}

	resp, err := h.service.Unblacklist(c.Request.Context(), tc, c.Param("id"))
	if err != nil {
		h.writeServiceError(c, err)
		return
	}

	response.Success(c, http.StatusOK, resp, nil)
}

func (h *Handler) RequestKYCReview(c *gin.Context) {
	tc, ok := h.tenant(c)
	if !ok {
		return
	}

	if err := h.service.RequestKYCReview(c.Request.Context(), tc, c.Param("id"), h.actor(c)); err != nil {
		h.writeServiceError(c, err)
		return
	}

	response.Success(c, http.StatusAccepted, gin.H{"queued": true}, nil)
}

func (h *Handler) AddContact(c *gin.Context) {
	tc, ok := h.tenant(c)
	if !ok {
		return
	}

	var req AddContactRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		mapped := apperror.ToHTTP(apperror.MapValidationError(err))
		response.Error(c, mapped.Status, mapped.Code, mapped.Message, nil)
		return
	}

	resp, err := h.service.AddContact(c.Request.Context(), tc, c.Param("id"), req)
	if err != nil {
		h.writeServiceError(c, err)
		return
	}

	response.Success(c, http.StatusCreated, resp, nil)
}

func (h *Handler) ListContacts(c *gin.Context) {
	tc, ok := h.tenant(c)
	if !ok {
		return
	}

	resp, err := h.service.ListContacts(c.Request.Context(), tc, c.Param("id"))
	if err != nil {
		h.writeServiceError(c, err)
		return
	}

	response.Success(c, http.StatusOK, resp, nil)
}

func (h *Handler) UpdateContact(c *gin.Context) {
	tc, ok := h.tenant(c)
	if !ok {
		return
	}

	var req UpdateContactRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		mapped := apperror.ToHTTP(apperror.MapValidationError(err))
		response.Error(c, mapped.Status, mapped.Code, mapped.Message, nil)
		return
	}

	resp, err := h.service.UpdateContact(c.Request.Context(), tc, c.Param("id"), c.Param("contactId"), req)
	if err != nil {
		h.writeServiceError(c, err)
		return
	}

	response.Success(c, http.StatusOK, resp, nil)
}

func (h *Handler) RemoveContact(c *gin.Context) {
	tc, ok := h.tenant(c)
	if !ok {
		return
	}

	if err := h.service.RemoveContact(c.Request.Context(), tc, c.Param("id"), c.Param("contactId")); err != nil {
		h.writeServiceError(c, err)
		return
	}

	response.Success(c, http.StatusOK, gin.H{"deleted": true}, nil)
}

func (h *Handler) AddDocument(c *gin.Context) {
	tc, ok := h.tenant(c)
	if !ok {
		return
	}

	var req AddDocumentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		mapped := apperror.ToHTTP(apperror.MapValidationError(err))
		response.Error(c, mapped.Status, mapped.Code, mapped.Message, nil)
		return
	}

	resp, err := h.service.AddDocument(c.Request.Context(), tc, c.Param("id"), req)
	if err != nil {
		h.writeServiceError(c, err)
		return
	}

	response.Success(c, http.StatusCreated, resp, nil)
}

func (h *Handler) ListDocuments(c *gin.Context) {
	tc, ok := h.tenant(c)
	if !ok {
		return
	}

	resp, err := h.service.ListDocuments(c.Request.Context(), tc, c.Param("id"))
	if err != nil {
		h.writeServiceError(c, err)
		return
	}

	response.Success(c, http.StatusOK, resp, nil)
}

func (h *Handler) VerifyDocument(c *gin.Context) {
	tc, ok := h.tenant(c)
	if !ok {
		return
	}

	resp, err := h.service.VerifyDocument(c.Request.Context(), tc, c.Param("id"), c.Param("docId"), h.actor(c))
	if err != nil {
		h.writeServiceError(c, err)
		return
	}

	response.Success(c, http.StatusOK, resp, nil)
}

func (h *Handler) RejectDocument(c *gin.Context) {
	tc, ok := h.tenant(c)
	if !ok {
		return
	}

	var req RejectDocumentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		mapped := apperror.ToHTTP(apperror.MapValidationError(err))
		response.Error(c, mapped.Status, mapped.Code, mapped.Message, nil)
		return
	}

	resp, err := h.service.RejectDocument(c.Request.Context(), tc, c.Param("id"), c.Param("docId"), h.actor(c), req.Reason)
	if err != nil {
		h.writeServiceError(c, err)
		return
	}

	response.Success(c, http.StatusOK, resp, nil)
}

func (h *Handler) RemoveDocument(c *gin.Context) {
	tc, ok := h.tenant(c)
	if !ok {
		return
	}

	if err := h.service.RemoveDocument(c.Request.Context(), tc, c.Param("id"), c.Param("docId")); err != nil {
		h.writeServiceError(c, err)
		return
	}

	response.Success(c, http.StatusOK, gin.H{"deleted": true}, nil)
}
