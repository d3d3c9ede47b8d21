package handlers

import (
	"net/http"

	"github.com/SAP-F-2025/reportcard-service/internal/services"
	"github.com/SAP-F-2025/reportcard-service/internal/utils"
	"github.com/gin-gonic/gin"
)

type HandlerManager struct {
	recordHandler  *RecordHandler
	rankingHandler *RankingHandler
	exportHandler  *ExportHandler
	reportHandler  *ReportHandler
	formHandler    *FormHandler
}

func NewHandlerManager(serviceManager services.ServiceManager, logger utils.Logger) *HandlerManager {
	return &HandlerManager{
		recordHandler:  NewRecordHandler(serviceManager.Record(), logger),
		rankingHandler: NewRankingHandler(serviceManager.Ranking(), logger),
		exportHandler:  NewExportHandler(serviceManager.Export(), logger),
		reportHandler:  NewReportHandler(serviceManager.Report(), logger),
		formHandler:    NewFormHandler(serviceManager.Form(), logger),
	}
}

// SetupRoutes sets up all API routes
func (hm *HandlerManager) SetupRoutes(router *gin.Engine) {
	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"status":  "healthy",
			"service": "reportcard-service",
		})
	})

	v1 := router.Group("/api/v1")
	{
		v1.GET("/options", hm.recordHandler.GetOptions)
		v1.GET("/students", hm.recordHandler.ListStudents)
		v1.GET("/school", hm.recordHandler.GetSchoolProfile)
		v1.PUT("/school", hm.recordHandler.UpdateSchoolProfile)

		records := v1.Group("/records")
		{
			records.POST("", hm.recordHandler.SaveSubmission)
			records.GET("/:student", hm.recordHandler.GetSubmission)
		}

		rankings := v1.Group("/rankings")
		{
			rankings.GET("/overall", hm.rankingHandler.OverallRanking)
			rankings.GET("/subjects", hm.rankingHandler.Subjects)
			rankings.GET("/subjects/:subject", hm.rankingHandler.SubjectRanking)
		}

		exports := v1.Group("/exports")
		{
			exports.GET("/progress", hm.exportHandler.ExportProgress)
			exports.GET("/rankings", hm.exportHandler.ExportOverallRanking)
		}

		v1.GET("/reports/:student", hm.reportHandler.GenerateReport)

		// Form sessions
		forms := v1.Group("/forms")
		{
			forms.POST("", hm.formHandler.Open)
			forms.GET("/:id", hm.formHandler.Get)
			forms.PATCH("/:id", hm.formHandler.Update)
			forms.DELETE("/:id", hm.formHandler.Close)
			forms.PUT("/:id/selection", hm.formHandler.Select)
			forms.GET("/:id/preview", hm.formHandler.Preview)
			forms.POST("/:id/save", hm.formHandler.Save)
			forms.GET("/:id/report", hm.formHandler.Report)
		}
	}
}
