package handlers

import (
	"net/http"
	"strings"

	"github.com/SAP-F-2025/reportcard-service/internal/models"
	"github.com/SAP-F-2025/reportcard-service/internal/services"
	"github.com/SAP-F-2025/reportcard-service/internal/utils"
	"github.com/gin-gonic/gin"
)

type RecordHandler struct {
	BaseHandler
	recordService services.RecordService
}

func NewRecordHandler(recordService services.RecordService, logger utils.Logger) *RecordHandler {
	return &RecordHandler{
		BaseHandler:   NewBaseHandler(logger),
		recordService: recordService,
	}
}

// GetOptions lists terms, sessions, known students and form defaults
// @Summary Get form options
// @Tags records
// @Produce json
// @Success 200 {object} services.FormOptions
// @Failure 500 {object} ErrorResponse
// @Router /options [get]
func (h *RecordHandler) GetOptions(c *gin.Context) {
	options, err := h.recordService.Options(c.Request.Context())
	if err != nil {
		h.handleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, options)
}

func (h *RecordHandler) ListStudents(c *gin.Context) {
	students, err := h.recordService.ListStudents(c.Request.Context())
	if err != nil {
		h.handleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"students": students})
}

// SaveSubmission stores one student's scores for a term and session,
// replacing any earlier submission for the same key
// @Summary Save submission
// @Tags records
// @Accept json
// @Produce json
// @Param request body models.StudentSubmission true "Submission"
// @Success 201 {object} SuccessResponse{data=services.SubmissionRecord}
// @Failure 400 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Router /records [post]
func (h *RecordHandler) SaveSubmission(c *gin.Context) {
	var req models.StudentSubmission
	if err := c.ShouldBindJSON(&req); err != nil {
		h.RespondBadPayload(c, err)
		return
	}

	h.LogRequest(c, "Saving submission", "student", req.StudentName, "term", req.Term, "session", req.Session)

	record, err := h.recordService.SaveSubmission(c.Request.Context(), &req)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	h.RespondWithSuccess(c, http.StatusCreated, "Submission saved", record)
}

// GetSubmission returns the stored submission of a student. Without term and
// session the latest submission is returned.
// @Summary Get submission
// @Tags records
// @Produce json
// @Param student path string true "Student name"
// @Param term query string false "Term"
// @Param session query string false "Session"
// @Success 200 {object} services.SubmissionRecord
// @Failure 400 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Router /records/{student} [get]
func (h *RecordHandler) GetSubmission(c *gin.Context) {
	student := ParseStringIDParam(c, "student")
	if student == "" {
		return
	}

	var term *models.Term
	if value := strings.TrimSpace(c.Query("term")); value != "" {
		t := models.Term(value)
		term = &t
	}
	var session *string
	if value := strings.TrimSpace(c.Query("session")); value != "" {
		session = &value
	}

	record, err := h.recordService.GetSubmission(c.Request.Context(), student, term, session)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, record)
}

func (h *RecordHandler) GetSchoolProfile(c *gin.Context) {
	profile, err := h.recordService.GetSchoolProfile(c.Request.Context())
	if err != nil {
		h.handleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, profile)
}

func (h *RecordHandler) UpdateSchoolProfile(c *gin.Context) {
	var req models.SchoolProfile
	if err := c.ShouldBindJSON(&req); err != nil {
		h.RespondBadPayload(c, err)
		return
	}

	profile, err := h.recordService.UpdateSchoolProfile(c.Request.Context(), &req)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}
	h.RespondWithSuccess(c, http.StatusOK, "School profile updated", profile)
}
