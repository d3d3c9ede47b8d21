package events

import (
	"time"

	"github.com/SAP-F-2025/reportcard-service/internal/models"
	"github.com/google/uuid"
)

// EventType represents the domain events emitted by the service
type EventType string

const (
	EventSubmissionSaved      EventType = "submission.saved"
	EventReportGenerated      EventType = "report.generated"
	EventSchoolProfileUpdated EventType = "school_profile.updated"
)

const (
	EventSource  = "reportcard-service"
	EventVersion = "1.0"
)

// Event is the envelope of every published event
type Event struct {
	ID        string                 `json:"id"`
	Type      EventType              `json:"type"`
	Timestamp time.Time              `json:"timestamp"`
	Source    string                 `json:"source"`
	Version   string                 `json:"version"`
	Data      interface{}            `json:"data"`
	Metadata  map[string]interface{} `json:"metadata,omitempty"`
}

// NewEvent wraps data in an envelope with a fresh ID.
func NewEvent(eventType EventType, data interface{}) *Event {
	return &Event{
		ID:        uuid.NewString(),
		Type:      eventType,
		Timestamp: time.Now().UTC(),
		Source:    EventSource,
		Version:   EventVersion,
		Data:      data,
	}
}

// PartitionKey groups events of the same student; other events share a key
// per type.
func (e *Event) PartitionKey() string {
	switch data := e.Data.(type) {
	case SubmissionSavedEvent:
		return data.StudentName
	case ReportGeneratedEvent:
		return data.StudentName
	}
	return string(e.Type)
}

// Event payloads

type SubmissionSavedEvent struct {
	StudentName   string      `json:"student_name"`
	Class         string      `json:"class"`
	Term          models.Term `json:"term"`
	Session       string      `json:"session"`
	Subjects      []string    `json:"subjects"`
	TotalObtained int         `json:"total_obtained"`
	TotalMax      int         `json:"total_max"`
	Percentage    float64     `json:"percentage"`
}

type ReportGeneratedEvent struct {
	StudentName string      `json:"student_name"`
	Term        models.Term `json:"term"`
	Session     string      `json:"session"`
	FileName    string      `json:"file_name"`
	Format      string      `json:"format"`
	Size        int         `json:"size"`
}

type SchoolProfileUpdatedEvent struct {
	Name    string `json:"name"`
	Address string `json:"address"`
}

// NewSubmissionSavedEvent summarizes a saved submission.
func NewSubmissionSavedEvent(sub *models.StudentSubmission, rows []models.ScoreRow) *Event {
	summary := models.Summarize(rows)
	subjects := make([]string, 0, len(rows))
	for _, row := range rows {
		subjects = append(subjects, row.Subject)
	}
	return NewEvent(EventSubmissionSaved, SubmissionSavedEvent{
		StudentName:   sub.StudentName,
		Class:         sub.Class,
		Term:          sub.Term,
		Session:       sub.Session,
		Subjects:      subjects,
		TotalObtained: summary.TotalObtained,
		TotalMax:      summary.TotalMax,
		Percentage:    summary.Percentage,
	})
}
