package attendance

import (
	"encoding/json"
	"net/http"
	"strconv"
	"time"

	"go-attend/internal/domain"
	"go-attend/internal/shared/apperror"
	"go-attend/internal/shared/response"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
)

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

// releaseIdempotencyLock melepas lock milik middleware Idempotency dan
// meng-cache response sukses untuk replay request ganda.
func (h *Handler) releaseIdempotencyLock(c *gin.Context) (cacheKey string) {
	if h.rdb == nil {
		return ""
	}
	if lk, ok := c.Get("idempotency_lock_key"); ok {
		if lockKey, ok := lk.(string); ok && lockKey != "" {
			defer h.rdb.Del(c.Request.Context(), lockKey)
		}
	}
	if ck, ok := c.Get("idempotency_cache_key"); ok {
		if key, ok := ck.(string); ok {
			return key
		}
	}
	return ""
}

func (h *Handler) cacheIdempotentResponse(c *gin.Context, cacheKey string, resp any) {
	if h.rdb == nil || cacheKey == "" {
		return
	}
	if payload, err := json.Marshal(resp); err == nil {
		_ = h.rdb.Set(c.Request.Context(), cacheKey, payload, 24*time.Hour).Err()
	}
}

func (h *Handler) CheckIn(c *gin.Context) {
	cacheKey := h.releaseIdempotencyLock(c)
	userID := c.GetString("user_id_validated")

	var req CheckInRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Input tidak valid", err.Error())
		return
	}

	resp, err := h.service.CheckIn(c.Request.Context(), userID, req)
	if err != nil {
		h.writeServiceError(c, err)
		return
	}

	h.cacheIdempotentResponse(c, cacheKey, resp)
	response.Success(c, http.StatusCreated, resp, nil)
}

func (h *Handler) CheckOut(c *gin.Context) {
	cacheKey := h.releaseIdempotencyLock(c)
	userID := c.GetString("user_id_validated")

	var req CheckOutRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Input tidak valid", err.Error())
		return
	}

	resp, err := h.service.CheckOut(c.Request.Context(), userID, req)
	if err != nil {
		h.writeServiceError(c, err)
		return
	}

	h.cacheIdempotentResponse(c, cacheKey, resp)
	response.Success(c, http.StatusOK, resp, nil)
}

func (h *Handler) StartBreak(c *gin.Context) {
	userID := c.GetString("user_id_validated")

	var req StartBreakRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Input tidak valid", err.Error())
		return
	}

	resp, err := h.service.StartBreak(c.Request.Context(), userID, req)
	if err != nil {
		h.writeServiceError(c, err)
		return
	}
	response.Success(c, http.StatusCreated, resp, nil)
}

func (h *Handler) EndBreak(c *gin.Context) {
	userID := c.GetString("user_id_validated")

	resp, err := h.service.EndBreak(c.Request.Context(), userID)
	if err != nil {
		h.writeServiceError(c, err)
		return
	}
	response.Success(c, http.StatusOK, resp, nil)
}

func (h *Handler) GetToday(c *gin.Context) {
	userID := c.GetString("user_id_validated")

	resp, err := h.service.GetToday(c.Request.Context(), userID)
	if err != nil {
		h.writeServiceError(c, err)
		return
	}
	response.Success(c, http.StatusOK, resp, nil)
}

func (h *Handler) GetAll(c *gin.Context) {
	userID := c.GetString("user_id_validated")
	role := domain.Role(c.GetString("role"))
	canReadAll := role.IsPrivileged()

	resp, err := h.service.GetAll(c.Request.Context(), userID, canReadAll)
	if err != nil {
		h.writeServiceError(c, err)
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

	total := int64(len(resp))
	start := (page - 1) * pageSize
	end := start + pageSize
	if start > len(resp) {
		start = len(resp)
	}
	if end > len(resp) {
		end = len(resp)
	}

	meta := response.NewPaginationMeta(total, page, pageSize)
	response.Success(c, http.StatusOK, resp[start:end], &meta)
}
