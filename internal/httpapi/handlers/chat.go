package handlers

import (
	"errors"
	"log"
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/edenzconsultants/portal-api/internal/chat"
	"github.com/edenzconsultants/portal-api/internal/common"
)

type sendMessageReq struct {
	Message   string `json:"message" binding:"required"`
	SessionID string `json:"session_id"`
}

// Session ids are uuid4 strings; anything longer cannot be one and would
// overflow the varchar(36) columns on the MySQL path.
const maxSessionIDLen = 36

// chatRateKey scopes the limiter. Anonymous turns (no session id yet)
// count against the client address so a fresh session per request cannot
// dodge the limit.
func chatRateKey(sessionID, clientIP string) string {
	if sessionID != "" {
		return sessionID
	}
	return "ip:" + clientIP
}

// SendChatMessage handles one synchronous chat turn for the public widget.
func (h *Handler) SendChatMessage(c *gin.Context) {
	var req sendMessageReq
	if err := c.ShouldBindJSON(&req); err != nil {
		common.Fail(c, http.StatusBadRequest, 10001, "invalid json")
		return
	}
	if len(req.SessionID) > maxSessionIDLen {
		common.Fail(c, http.StatusBadRequest, 10005, "invalid session_id")
		return
	}

	// redis being down never blocks the chat
	if h.Redis != nil {
		key := chatRateKey(req.SessionID, c.ClientIP())
		allowed, err := h.Redis.AllowChat(c.Request.Context(), key, h.Cfg.ChatRateLimit)
		if err != nil {
			log.Printf("chat rate limiter unavailable key=%s err=%v", key, err)
		}
		if !allowed {
			common.Fail(c, http.StatusTooManyRequests, 42901, "too many messages, slow down")
			return
		}
	}

	env, err := h.ChatSvc.SendMessage(c.Request.Context(), req.SessionID, req.Message)
	if err != nil {
		if errors.Is(err, chat.ErrEmptyMessage) {
			common.Fail(c, http.StatusBadRequest, 10002, "message cannot be empty")
			return
		}
		log.Printf("SendChatMessage failed session_id=%s err=%v", req.SessionID, err)
		common.Fail(c, http.StatusInternalServerError, 50001, "failed to process message")
		return
	}

	common.OK(c, env)
}

func (h *Handler) ListChatMessages(c *gin.Context) {
	sessionID := c.Param("session_id")

	limit, _ := strconv.Atoi(c.Query("limit"))
	var beforeID uint64
	if v := c.Query("before_id"); v != "" {
		if n, err := strconv.ParseUint(v, 10, 64); err == nil {
			beforeID = n
		}
	}

	msgs, err := h.ChatSvc.ListMessages(c.Request.Context(), sessionID, limit, beforeID)
	if err != nil {
		common.Fail(c, http.StatusInternalServerError, 50002, "failed to list messages")
		return
	}

	var nextBeforeID uint64
	if len(msgs) > 0 {
		nextBeforeID = msgs[len(msgs)-1].ID
	}

	common.OK(c, gin.H{
		"messages":       msgs,
		"next_before_id": nextBeforeID,
	})
}

// SendChatMessageAsync stores the user turn immediately and queues reply
// generation for the worker.
func (h *Handler) SendChatMessageAsync(c *gin.Context) {
	var req sendMessageReq
	if err := c.ShouldBindJSON(&req); err != nil {
		common.Fail(c, http.StatusBadRequest, 10001, "invalid json")
		return
	}
	if len(req.SessionID) > maxSessionIDLen {
		common.Fail(c, http.StatusBadRequest, 10005, "invalid session_id")
		return
	}
	if h.Rabbit == nil {
		common.Fail(c, http.StatusServiceUnavailable, 50301, "async chat unavailable")
		return
	}

	idempoKey := strings.TrimSpace(c.GetHeader("Idempotency-Key"))
	if len(idempoKey) > 128 {
		common.Fail(c, http.StatusBadRequest, 10003, "idempotency key too long")
		return
	}
	var idempoKeyPtr *string
	if idempoKey != "" {
		idempoKeyPtr = &idempoKey
	}

	sessionID := req.SessionID
	if sessionID == "" {
		sessionID = chat.NewSessionID()
	}

	if err := h.ChatSvc.InsertUserMessage(c.Request.Context(), sessionID, req.Message); err != nil {
		if errors.Is(err, chat.ErrEmptyMessage) {
			common.Fail(c, http.StatusBadRequest, 10002, "message cannot be empty")
			return
		}
		log.Printf("SendChatMessageAsync insert failed session_id=%s err=%v", sessionID, err)
		common.Fail(c, http.StatusInternalServerError, 50001, "internal error")
		return
	}

	jobID, err := common.NewULID()
	if err != nil {
		log.Printf("SendChatMessageAsync ulid failed session_id=%s err=%v", sessionID, err)
		common.Fail(c, http.StatusInternalServerError, 50001, "internal error")
		return
	}

	j := &chat.Job{
		ID:             jobID,
		SessionID:      sessionID,
		Prompt:         req.Message,
		IdempotencyKey: idempoKeyPtr,
		Status:         chat.JobQueued,
	}
	job, created, err := h.ChatSvc.CreateJobOrGetExisting(c.Request.Context(), j)
	if err != nil {
		log.Printf("SendChatMessageAsync create job failed session_id=%s job_id=%s err=%v", sessionID, jobID, err)
		common.Fail(c, http.StatusInternalServerError, 50001, "internal error")
		return
	}

	// Enqueue only when a new job row was created.
	if created {
		if err := h.Rabbit.PublishJob(c.Request.Context(), job.ID); err != nil {
			log.Printf("SendChatMessageAsync publish failed session_id=%s job_id=%s err=%v", sessionID, job.ID, err)
			common.Fail(c, http.StatusInternalServerError, 50002, "enqueue failed")
			return
		}
	}

	common.OK(c, gin.H{
		"job_id":     job.ID,
		"session_id": sessionID,
	})
}

func (h *Handler) GetChatJob(c *gin.Context) {
	jobID := c.Param("job_id")
	if jobID == "" {
		common.Fail(c, http.StatusBadRequest, 10004, "job_id required")
		return
	}

	j, err := h.ChatSvc.GetJob(c.Request.Context(), jobID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			common.Fail(c, http.StatusNotFound, 40402, "job not found")
			return
		}
		common.Fail(c, http.StatusInternalServerError, 50001, "internal error")
		return
	}

	common.OK(c, gin.H{
		"job": gin.H{
			"id":                j.ID,
			"session_id":        j.SessionID,
			"status":            j.Status,
			"result_message_id": j.ResultMessageID,
			"error":             j.Error,
			"created_at":        j.CreatedAt,
			"updated_at":        j.UpdatedAt,
		},
	})
}
