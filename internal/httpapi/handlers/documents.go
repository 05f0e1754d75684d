package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/edenzconsultants/portal-api/internal/common"
	"github.com/edenzconsultants/portal-api/internal/document"
)

type uploadDocumentReq struct {
	Name       string `json:"name" binding:"required"`
	Type       string `json:"type" binding:"required"`
	FileURL    string `json:"file_url" binding:"required,url"`
	CustomName string `json:"custom_name"`
}

// UploadDocument records a document against the caller's own file.
func (h *Handler) UploadDocument(c *gin.Context) {
	uid, ok := currentUserID(c)
	if !ok {
		common.Fail(c, http.StatusUnauthorized, 40101, "unauthorized")
		return
	}

	var req uploadDocumentReq
	if err := c.ShouldBindJSON(&req); err != nil {
		common.Fail(c, http.StatusBadRequest, 10001, "invalid json")
		return
	}
	if !document.ValidType(req.Type) {
		common.Fail(c, http.StatusBadRequest, 10010, "invalid document type")
		return
	}

	d := &document.Document{
		UserID:     uid,
		Name:       req.Name,
		Type:       req.Type,
		FileURL:    req.FileURL,
		CustomName: req.CustomName,
	}
	if err := h.Docs.Create(c.Request.Context(), d); err != nil {
		common.Fail(c, http.StatusInternalServerError, 20001, "db error")
		return
	}

	common.OK(c, gin.H{
		"id":     d.ID,
		"status": d.Status,
	})
}

// ListMyDocuments returns the caller's documents with review status.
func (h *Handler) ListMyDocuments(c *gin.Context) {
	uid, ok := currentUserID(c)
	if !ok {
		common.Fail(c, http.StatusUnauthorized, 40101, "unauthorized")
		return
	}

	docs, err := h.Docs.ListByUser(c.Request.Context(), uid)
	if err != nil {
		common.Fail(c, http.StatusInternalServerError, 20001, "db error")
		return
	}
	common.OK(c, gin.H{"documents": docs})
}

// ListStudentDocuments lets staff pull a student's document file.
func (h *Handler) ListStudentDocuments(c *gin.Context) {
	studentID, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		common.Fail(c, http.StatusBadRequest, 10011, "invalid student id")
		return
	}

	docs, err := h.Docs.ListByUser(c.Request.Context(), studentID)
	if err != nil {
		common.Fail(c, http.StatusInternalServerError, 20001, "db error")
		return
	}
	common.OK(c, gin.H{"documents": docs})
}

type reviewDocumentReq struct {
	Status   string `json:"status" binding:"required"`
	Feedback string `json:"feedback"`
}

// ReviewDocument records the staff verdict on an uploaded document.
func (h *Handler) ReviewDocument(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		common.Fail(c, http.StatusBadRequest, 10012, "invalid document id")
		return
	}

	var req reviewDocumentReq
	if err := c.ShouldBindJSON(&req); err != nil {
		common.Fail(c, http.StatusBadRequest, 10001, "invalid json")
		return
	}
	if !document.ValidStatus(req.Status) {
		common.Fail(c, http.StatusBadRequest, 10013, "invalid status")
		return
	}

	if err := h.Docs.Review(c.Request.Context(), id, req.Status, req.Feedback); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			common.Fail(c, http.StatusNotFound, 40403, "document not found")
			return
		}
		common.Fail(c, http.StatusInternalServerError, 20001, "db error")
		return
	}

	common.OK(c, gin.H{"id": id, "status": req.Status})
}
