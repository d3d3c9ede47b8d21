package services

import (
	"log/slog"
	"time"

	"github.com/SAP-F-2025/reportcard-service/internal/cache"
	"github.com/SAP-F-2025/reportcard-service/internal/events"
	"github.com/SAP-F-2025/reportcard-service/internal/repositories"
	"github.com/SAP-F-2025/reportcard-service/internal/validator"
)

// ServiceManager hands the handler layer every service it routes to.
type ServiceManager interface {
	Record() RecordService
	Ranking() RankingService
	Export() ExportService
	Report() ReportService
	Form() FormService
}

type Dependencies struct {
	Repo      repositories.Repository
	Cache     cache.CacheService
	Publisher events.EventPublisher
	Validator *validator.Validator
	Logger    *slog.Logger

	FormTTL         time.Duration
	RankingCacheTTL time.Duration
}

type serviceManager struct {
	record  RecordService
	ranking RankingService
	export  ExportService
	report  ReportService
	form    FormService
}

func NewServiceManager(deps Dependencies) ServiceManager {
	if deps.Logger == nil {
		deps.Logger = slog.Default()
	}
	if deps.Validator == nil {
		deps.Validator = validator.New()
	}
	if deps.Cache == nil {
		deps.Cache = cache.NewMemoryCache()
	}

	record := NewRecordService(deps.Repo, deps.Cache, deps.Publisher, deps.Validator, deps.Logger)
	ranking := NewRankingService(deps.Repo, deps.Cache, deps.RankingCacheTTL, deps.Logger)
	report := NewReportService(deps.Repo, deps.Publisher, deps.Logger)

	return &serviceManager{
		record:  record,
		ranking: ranking,
		export:  NewExportService(deps.Repo, ranking, deps.Logger),
		report:  report,
		form:    NewFormService(deps.Repo, record, report, deps.Cache, deps.FormTTL, deps.Validator, deps.Logger),
	}
}

func (m *serviceManager) Record() RecordService   { return m.record }
func (m *serviceManager) Ranking() RankingService { return m.ranking }
func (m *serviceManager) Export() ExportService   { return m.export }
func (m *serviceManager) Report() ReportService   { return m.report }
func (m *serviceManager) Form() FormService       { return m.form }
