package handlers

import (
	"net/http"
	"strings"

	"github.com/SAP-F-2025/reportcard-service/internal/services"
	"github.com/SAP-F-2025/reportcard-service/internal/utils"
	"github.com/gin-gonic/gin"
)

type RankingHandler struct {
	BaseHandler
	rankingService services.RankingService
}

func NewRankingHandler(rankingService services.RankingService, logger utils.Logger) *RankingHandler {
	return &RankingHandler{
		BaseHandler:    NewBaseHandler(logger),
		rankingService: rankingService,
	}
}

// OverallRanking ranks every student of a term and session by total percentage
// @Summary Overall leaderboard
// @Tags rankings
// @Produce json
// @Param term query string true "Term"
// @Param session query string true "Session"
// @Success 200 {array} models.OverallStanding
// @Failure 400 {object} ErrorResponse
// @Router /rankings/overall [get]
func (h *RankingHandler) OverallRanking(c *gin.Context) {
	var query PeriodQuery
	if err := c.ShouldBindQuery(&query); err != nil {
		h.RespondBadPayload(c, err)
		return
	}

	standings, err := h.rankingService.OverallRanking(c.Request.Context(), query.Term, query.Session)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, standings)
}

// Subjects lists the subjects that have scores in a term and session.
func (h *RankingHandler) Subjects(c *gin.Context) {
	var query PeriodQuery
	if err := c.ShouldBindQuery(&query); err != nil {
		h.RespondBadPayload(c, err)
		return
	}

	subjects, err := h.rankingService.Subjects(c.Request.Context(), query.Term, query.Session)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"subjects": subjects})
}

func (h *RankingHandler) SubjectRanking(c *gin.Context) {
	var query PeriodQuery
	if err := c.ShouldBindQuery(&query); err != nil {
		h.RespondBadPayload(c, err)
		return
	}
	subject := strings.TrimSpace(c.Param("subject"))

	standings, err := h.rankingService.SubjectRanking(c.Request.Context(), query.Term, query.Session, subject)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, standings)
}
