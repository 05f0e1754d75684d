package handlers

import (
	"errors"
	"fmt"
	"log"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/edenzconsultants/portal-api/internal/common"
	"github.com/edenzconsultants/portal-api/internal/consult"
	"github.com/edenzconsultants/portal-api/internal/email"
)

type createConsultationReq struct {
	Name      string `json:"name" binding:"required"`
	Email     string `json:"email" binding:"required,email"`
	Phone     string `json:"phone" binding:"required"`
	Date      string `json:"date" binding:"required"`
	Time      string `json:"time" binding:"required"`
	Service   string `json:"service"`
	Message   string `json:"message"`
	SessionID string `json:"session_id"`
}

// CreateConsultation books a consultation slot from the public form or the
// chat widget.
func (h *Handler) CreateConsultation(c *gin.Context) {
	var req createConsultationReq
	if err := c.ShouldBindJSON(&req); err != nil {
		common.Fail(c, http.StatusBadRequest, 10001, "invalid json")
		return
	}

	booking := &consult.Consultation{
		Name:      req.Name,
		Email:     req.Email,
		Phone:     req.Phone,
		Date:      req.Date,
		Time:      req.Time,
		Service:   req.Service,
		Message:   req.Message,
		SessionID: req.SessionID,
	}
	if err := h.Consults.Create(c.Request.Context(), booking); err != nil {
		log.Printf("CreateConsultation failed email=%s err=%v", req.Email, err)
		common.Fail(c, http.StatusInternalServerError, 50001, "failed to create booking")
		return
	}

	// notify the booker and the office; delivery problems never fail the booking
	go func(b consult.Consultation) {
		body := fmt.Sprintf(
			"Dear %s,\n\n"+
				"Thank you for booking a consultation with Edenz Consultants.\n\n"+
				"Requested slot: %s at %s\n"+
				"Consultation fee: 5000 PKR\n\n"+
				"Our team will contact you shortly to confirm your slot.\n\n"+
				"Best regards,\nEdenz Consultants\n",
			b.Name, b.Date, b.Time,
		)
		if err := email.SendText(h.SMTPSetting, b.Email, "Your consultation request", body); err != nil {
			log.Printf("booking ack mail failed id=%d err=%v", b.ID, err)
		}
		if h.Cfg.BookingNotifyTo != "" {
			notify := fmt.Sprintf(
				"New consultation request #%d\n\nName: %s\nEmail: %s\nPhone: %s\nSlot: %s %s\nService: %s\n\n%s\n",
				b.ID, b.Name, b.Email, b.Phone, b.Date, b.Time, b.Service, b.Message,
			)
			if err := email.SendText(h.SMTPSetting, h.Cfg.BookingNotifyTo, "New consultation request", notify); err != nil {
				log.Printf("booking notify mail failed id=%d err=%v", b.ID, err)
			}
		}
	}(*booking)

	common.OK(c, gin.H{
		"id":     booking.ID,
		"status": booking.Status,
	})
}

func (h *Handler) ListConsultations(c *gin.Context) {
	status := c.Query("status")
	if status != "" && !consult.ValidStatus(status) {
		common.Fail(c, http.StatusBadRequest, 10005, "invalid status filter")
		return
	}
	limit, _ := strconv.Atoi(c.Query("limit"))

	out, err := h.Consults.List(c.Request.Context(), status, limit)
	if err != nil {
		common.Fail(c, http.StatusInternalServerError, 50001, "failed to list bookings")
		return
	}
	common.OK(c, gin.H{"consultations": out})
}

type updateConsultationStatusReq struct {
	Status string `json:"status" binding:"required"`
	Notes  string `json:"notes"`
}

func (h *Handler) UpdateConsultationStatus(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		common.Fail(c, http.StatusBadRequest, 10006, "invalid consultation id")
		return
	}

	var req updateConsultationStatusReq
	if err := c.ShouldBindJSON(&req); err != nil {
		common.Fail(c, http.StatusBadRequest, 10001, "invalid json")
		return
	}
	if !consult.ValidStatus(req.Status) {
		common.Fail(c, http.StatusBadRequest, 10005, "invalid status")
		return
	}

	if _, err := h.Consults.GetByID(c.Request.Context(), id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			common.Fail(c, http.StatusNotFound, 40403, "consultation not found")
			return
		}
		common.Fail(c, http.StatusInternalServerError, 50001, "internal error")
		return
	}

	if err := h.Consults.UpdateStatus(c.Request.Context(), id, req.Status, req.Notes); err != nil {
		common.Fail(c, http.StatusInternalServerError, 50001, "failed to update booking")
		return
	}
	common.OK(c, gin.H{"id": id, "status": req.Status})
}
