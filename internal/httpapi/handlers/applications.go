package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/edenzconsultants/portal-api/internal/application"
	"github.com/edenzconsultants/portal-api/internal/common"
	"github.com/edenzconsultants/portal-api/internal/models"
)

type createApplicationReq struct {
	StudentID           uint64   `json:"student_id" binding:"required"`
	UniversityName      string   `json:"university_name" binding:"required"`
	ProgramName         string   `json:"program_name" binding:"required"`
	Intake              string   `json:"intake" binding:"required"`
	ApplicationFee      *float64 `json:"application_fee"`
	TuitionFee          *float64 `json:"tuition_fee"`
	EstimatedLivingCost *float64 `json:"estimated_living_cost"`
	Notes               string   `json:"notes"`
}

// CreateApplication opens a university application for a student. Staff
// only; the student follows it read-only.
func (h *Handler) CreateApplication(c *gin.Context) {
	uid, ok := currentUserID(c)
	if !ok {
		common.Fail(c, http.StatusUnauthorized, 40101, "unauthorized")
		return
	}

	var req createApplicationReq
	if err := c.ShouldBindJSON(&req); err != nil {
		common.Fail(c, http.StatusBadRequest, 10001, "invalid json")
		return
	}

	var cnt int64
	err := h.DB.Model(&models.User{}).
		Where("id = ? AND role = ?", req.StudentID, models.RoleStudent).
		Count(&cnt).Error
	if err != nil {
		common.Fail(c, http.StatusInternalServerError, 20001, "db error")
		return
	}
	if cnt == 0 {
		common.Fail(c, http.StatusNotFound, 40404, "student not found")
		return
	}

	app := &application.Application{
		StudentID:           req.StudentID,
		UniversityName:      req.UniversityName,
		ProgramName:         req.ProgramName,
		Intake:              req.Intake,
		ApplicationFee:      req.ApplicationFee,
		TuitionFee:          req.TuitionFee,
		EstimatedLivingCost: req.EstimatedLivingCost,
		Notes:               req.Notes,
		CreatedBy:           uid,
	}
	if err := h.Apps.Create(c.Request.Context(), app); err != nil {
		common.Fail(c, http.StatusInternalServerError, 20001, "db error")
		return
	}

	common.OK(c, gin.H{
		"id":       app.ID,
		"status":   app.Status,
		"progress": app.Progress,
	})
}

type updateApplicationReq struct {
	Status        *string `json:"status"`
	Progress      *int    `json:"progress"`
	Notes         *string `json:"notes"`
	UpdateMessage string  `json:"update_message"`
}

// UpdateApplication moves an application along the pipeline and appends
// the history line students see in their timeline.
func (h *Handler) UpdateApplication(c *gin.Context) {
	uid, ok := currentUserID(c)
	if !ok {
		common.Fail(c, http.StatusUnauthorized, 40101, "unauthorized")
		return
	}

	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		common.Fail(c, http.StatusBadRequest, 10014, "invalid application id")
		return
	}

	var req updateApplicationReq
	if err := c.ShouldBindJSON(&req); err != nil {
		common.Fail(c, http.StatusBadRequest, 10001, "invalid json")
		return
	}
	if req.Status != nil && !application.ValidStatus(*req.Status) {
		common.Fail(c, http.StatusBadRequest, 10015, "invalid status")
		return
	}
	if req.Progress != nil && (*req.Progress < 0 || *req.Progress > 100) {
		common.Fail(c, http.StatusBadRequest, 10016, "progress must be 0-100")
		return
	}

	upd := application.Update{
		Status:    req.Status,
		Progress:  req.Progress,
		Notes:     req.Notes,
		Message:   req.UpdateMessage,
		UpdatedBy: uid,
	}
	if err := h.Apps.Update(c.Request.Context(), id, upd); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			common.Fail(c, http.StatusNotFound, 40405, "application not found")
			return
		}
		common.Fail(c, http.StatusInternalServerError, 20001, "db error")
		return
	}

	common.OK(c, gin.H{"id": id})
}

// ListMyApplications is the student's application-tracking view.
func (h *Handler) ListMyApplications(c *gin.Context) {
	uid, ok := currentUserID(c)
	if !ok {
		common.Fail(c, http.StatusUnauthorized, 40101, "unauthorized")
		return
	}

	apps, err := h.Apps.ListByStudent(c.Request.Context(), uid)
	if err != nil {
		common.Fail(c, http.StatusInternalServerError, 20001, "db error")
		return
	}
	common.OK(c, gin.H{"applications": apps})
}

// GetApplicationHistory returns the timeline. Students see only their own
// applications; staff see any.
func (h *Handler) GetApplicationHistory(c *gin.Context) {
	uid, ok := currentUserID(c)
	if !ok {
		common.Fail(c, http.StatusUnauthorized, 40101, "unauthorized")
		return
	}

	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		common.Fail(c, http.StatusBadRequest, 10014, "invalid application id")
		return
	}

	app, err := h.Apps.GetByID(c.Request.Context(), id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			common.Fail(c, http.StatusNotFound, 40405, "application not found")
			return
		}
		common.Fail(c, http.StatusInternalServerError, 20001, "db error")
		return
	}

	switch currentRole(c) {
	case models.RoleAdmin, models.RoleProcessing:
	default:
		if app.StudentID != uid {
			common.Fail(c, http.StatusForbidden, 40302, "not your application")
			return
		}
	}

	history, err := h.Apps.History(c.Request.Context(), id)
	if err != nil {
		common.Fail(c, http.StatusInternalServerError, 20001, "db error")
		return
	}
	common.OK(c, gin.H{"history": history})
}
