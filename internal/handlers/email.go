package handlers

import (
	"bytes"
	"net/http"
	"strconv"

	"github.com/alimgiray/inbox/internal/models"
	"github.com/alimgiray/inbox/internal/services"
	"github.com/alimgiray/inbox/pkg/logger"
	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
)

type EmailHandler struct {
	emailService *services.EmailService
}

func NewEmailHandler(emailService *services.EmailService) *EmailHandler {
	return &EmailHandler{
		emailService: emailService,
	}
}

// parseEmailID reads the :id path parameter, writing a 422 when it is not an integer
func parseEmailID(c *gin.Context) (int64, bool) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		respondError(c, &models.ValidationError{Field: "id", Message: "must be an integer"})
		return 0, false
	}
	return id, true
}

func emailFilter(c *gin.Context) models.EmailFilter {
	return models.EmailFilter{
		Tab:   models.ParseTab(c.DefaultQuery("tab", string(models.TabAll))),
		Query: c.Query("q"),
	}
}

// ListEmails handles GET /emails?tab=&q=
func (h *EmailHandler) ListEmails(c *gin.Context) {
	emails, err := h.emailService.ListEmails(c.Request.Context(), emailFilter(c))
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"emails": emails})
}

// GetEmail handles GET /emails/:id
func (h *EmailHandler) GetEmail(c *gin.Context) {
	id, ok := parseEmailID(c)
	if !ok {
		return
	}

	email, err := h.emailService.GetEmail(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, email)
}

// CreateEmail handles POST /emails. Nothing is sent; the email is only stored.
func (h *EmailHandler) CreateEmail(c *gin.Context) {
	var request models.EmailCreateRequest
	if err := c.ShouldBindJSON(&request); err != nil {
		respondError(c, bindingErrors(err))
		return
	}

	email, err := h.emailService.CreateEmail(c.Request.Context(), &request)
	if err != nil {
		respondError(c, err)
		return
	}

	logger.WithField("email_id", email.ID).Info("Email created")
	c.JSON(http.StatusCreated, email)
}

// UpdateEmail handles PUT /emails/:id with a partial payload
func (h *EmailHandler) UpdateEmail(c *gin.Context) {
	id, ok := parseEmailID(c)
	if !ok {
		return
	}

	var body []byte
	if c.Request.Body != nil {
		var err error
		if body, err = c.GetRawData(); err != nil {
			respondError(c, bindingErrors(err))
			return
		}
	}

	var request models.EmailUpdateRequest
	if len(bytes.TrimSpace(body)) > 0 {
		if err := binding.JSON.BindBody(body, &request); err != nil {
			respondError(c, bindingErrors(err))
			return
		}
	}

	email, err := h.emailService.UpdateEmail(c.Request.Context(), id, &request)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, email)
}

// DeleteEmail handles DELETE /emails/:id
func (h *EmailHandler) DeleteEmail(c *gin.Context) {
	id, ok := parseEmailID(c)
	if !ok {
		return
	}

	if err := h.emailService.DeleteEmail(c.Request.Context(), id); err != nil {
		respondError(c, err)
		return
	}

	logger.WithField("email_id", id).Info("Email deleted")
	c.Status(http.StatusNoContent)
}
