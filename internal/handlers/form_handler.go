package handlers

import (
	"net/http"

	"github.com/SAP-F-2025/reportcard-service/internal/models"
	"github.com/SAP-F-2025/reportcard-service/internal/report"
	"github.com/SAP-F-2025/reportcard-service/internal/services"
	"github.com/SAP-F-2025/reportcard-service/internal/utils"
	"github.com/gin-gonic/gin"
)

// FormHandler exposes interactive entry sessions. Each form is addressed by
// the ID returned from Open and expires after a period of inactivity.
type FormHandler struct {
	BaseHandler
	formService services.FormService
}

func NewFormHandler(formService services.FormService, logger utils.Logger) *FormHandler {
	return &FormHandler{
		BaseHandler: NewBaseHandler(logger),
		formService: formService,
	}
}

// SaveFormResponse is the refilled form together with the stored submission.
type SaveFormResponse struct {
	Form   *models.FormState          `json:"form"`
	Record *services.SubmissionRecord `json:"record"`
}

// Open starts a form for a (student, term, session) selection
// @Summary Open form
// @Tags forms
// @Accept json
// @Produce json
// @Param request body models.FormSelection true "Selection"
// @Success 201 {object} models.FormState
// @Failure 400 {object} ErrorResponse
// @Router /forms [post]
func (h *FormHandler) Open(c *gin.Context) {
	var req models.FormSelection
	if err := c.ShouldBindJSON(&req); err != nil {
		h.RespondBadPayload(c, err)
		return
	}

	state, err := h.formService.Open(c.Request.Context(), req)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}
	c.JSON(http.StatusCreated, state)
}

func (h *FormHandler) Get(c *gin.Context) {
	id := ParseStringIDParam(c, "id")
	if id == "" {
		return
	}

	state, err := h.formService.Get(c.Request.Context(), id)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, state)
}

// Select switches the form to another selection. Entered data is discarded
// when the (student, term, session) key changes.
func (h *FormHandler) Select(c *gin.Context) {
	id := ParseStringIDParam(c, "id")
	if id == "" {
		return
	}
	var req models.FormSelection
	if err := c.ShouldBindJSON(&req); err != nil {
		h.RespondBadPayload(c, err)
		return
	}

	state, err := h.formService.Select(c.Request.Context(), id, req)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, state)
}

func (h *FormHandler) Update(c *gin.Context) {
	id := ParseStringIDParam(c, "id")
	if id == "" {
		return
	}
	var req models.FormUpdate
	if err := c.ShouldBindJSON(&req); err != nil {
		h.RespondBadPayload(c, err)
		return
	}

	state, err := h.formService.Update(c.Request.Context(), id, &req)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, state)
}

func (h *FormHandler) Preview(c *gin.Context) {
	id := ParseStringIDParam(c, "id")
	if id == "" {
		return
	}

	card, err := h.formService.Preview(c.Request.Context(), id)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, card)
}

// Save stores the form as a submission and returns the refilled form
// @Summary Save form
// @Tags forms
// @Produce json
// @Param id path string true "Form ID"
// @Success 200 {object} SuccessResponse{data=SaveFormResponse}
// @Failure 400 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Router /forms/{id}/save [post]
func (h *FormHandler) Save(c *gin.Context) {
	id := ParseStringIDParam(c, "id")
	if id == "" {
		return
	}

	h.LogRequest(c, "Saving form", "form_id", id)

	state, record, err := h.formService.Save(c.Request.Context(), id)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}
	h.RespondWithSuccess(c, http.StatusOK, "Submission saved", SaveFormResponse{Form: state, Record: record})
}

// Report renders the form's current content without saving it.
func (h *FormHandler) Report(c *gin.Context) {
	id := ParseStringIDParam(c, "id")
	if id == "" {
		return
	}
	format := parseFormat(c, report.FormatHTML)

	doc, err := h.formService.Report(c.Request.Context(), id, format)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}
	h.sendDocument(c, doc, wantsInline(c, format))
}

func (h *FormHandler) Close(c *gin.Context) {
	id := ParseStringIDParam(c, "id")
	if id == "" {
		return
	}

	if err := h.formService.Close(c.Request.Context(), id); err != nil {
		h.handleServiceError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}
