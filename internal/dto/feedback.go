package dto

import (
	"time"

	"github.com/yukikurage/feedback-management-api/internal/models"
)

// FeedbackDTO represents manager feedback. ManagerID and ManagerName are null
// when the feedback is anonymous.
type FeedbackDTO struct {
	ID             uint64           `json:"id"`
	EmployeeID     uint64           `json:"employee_id"`
	EmployeeName   string           `json:"employee_name"`
	ManagerID      *uint64          `json:"manager_id"`
	ManagerName    *string          `json:"manager_name"`
	Strengths      string           `json:"strengths"`
	AreasToImprove string           `json:"areas_to_improve"`
	Sentiment      models.Sentiment `json:"sentiment"`
	Acknowledged   bool             `json:"acknowledged"`
	IsAnonymous    bool             `json:"is_anonymous"`
	CreatedAt      time.Time        `json:"created_at"`
	UpdatedAt      time.Time        `json:"updated_at"`
}

func ToFeedbackDTO(fb models.Feedback) FeedbackDTO {
	out := FeedbackDTO{
		ID:             fb.ID,
		EmployeeID:     fb.EmployeeID,
		EmployeeName:   nameOf(fb.Employee),
		Strengths:      fb.Strengths,
		AreasToImprove: fb.AreasToImprove,
		Sentiment:      fb.Sentiment,
		Acknowledged:   fb.Acknowledged,
		IsAnonymous:    fb.IsAnonymous,
		CreatedAt:      fb.CreatedAt,
		UpdatedAt:      fb.UpdatedAt,
	}
	if !fb.IsAnonymous {
		managerID := fb.ManagerID
		managerName := nameOf(fb.Manager)
		out.ManagerID = &managerID
		out.ManagerName = &managerName
	}
	return out
}

func ToFeedbackDTOs(items []models.Feedback) []FeedbackDTO {
	out := make([]FeedbackDTO, 0, len(items))
	for _, fb := range items {
		out = append(out, ToFeedbackDTO(fb))
	}
	return out
}

// PeerFeedbackDTO represents peer feedback. The sender fields are null when
// the feedback is anonymous.
type PeerFeedbackDTO struct {
	ID               uint64           `json:"id"`
	FromEmployeeID   *uint64          `json:"from_employee_id"`
	FromEmployeeName *string          `json:"from_employee_name"`
	ToEmployeeID     uint64           `json:"to_employee_id"`
	ToEmployeeName   string           `json:"to_employee_name"`
	Strengths        string           `json:"strengths"`
	AreasToImprove   string           `json:"areas_to_improve"`
	Sentiment        models.Sentiment `json:"sentiment"`
	Acknowledged     bool             `json:"acknowledged"`
	IsAnonymous      bool             `json:"is_anonymous"`
	CreatedAt        time.Time        `json:"created_at"`
	UpdatedAt        time.Time        `json:"updated_at"`
}

func ToPeerFeedbackDTO(fb models.PeerFeedback) PeerFeedbackDTO {
	out := PeerFeedbackDTO{
		ID:             fb.ID,
		ToEmployeeID:   fb.ToEmployeeID,
		ToEmployeeName: nameOf(fb.ToEmployee),
		Strengths:      fb.Strengths,
		AreasToImprove: fb.AreasToImprove,
		Sentiment:      fb.Sentiment,
		Acknowledged:   fb.Acknowledged,
		IsAnonymous:    fb.IsAnonymous,
		CreatedAt:      fb.CreatedAt,
		UpdatedAt:      fb.UpdatedAt,
	}
	if !fb.IsAnonymous {
		fromID := fb.FromEmployeeID
		fromName := nameOf(fb.FromEmployee)
		out.FromEmployeeID = &fromID
		out.FromEmployeeName = &fromName
	}
	return out
}

func ToPeerFeedbackDTOs(items []models.PeerFeedback) []PeerFeedbackDTO {
	out := make([]PeerFeedbackDTO, 0, len(items))
	for _, fb := range items {
		out = append(out, ToPeerFeedbackDTO(fb))
	}
	return out
}

// CommentDTO represents a comment on feedback
type CommentDTO struct {
	ID           uint64    `json:"id"`
	FeedbackID   uint64    `json:"feedback_id"`
	EmployeeID   uint64    `json:"employee_id"`
	EmployeeName string    `json:"employee_name"`
	Content      string    `json:"content"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

func ToCommentDTO(c models.Comment) CommentDTO {
	return CommentDTO{
		ID:           c.ID,
		FeedbackID:   c.FeedbackID,
		EmployeeID:   c.EmployeeID,
		EmployeeName: nameOf(c.Employee),
		Content:      c.Content,
		CreatedAt:    c.CreatedAt,
		UpdatedAt:    c.UpdatedAt,
	}
}

func ToCommentDTOs(items []models.Comment) []CommentDTO {
	out := make([]CommentDTO, 0, len(items))
	for _, c := range items {
		out = append(out, ToCommentDTO(c))
	}
	return out
}

// ManagerDashboardDTO summarises a manager's team
type ManagerDashboardDTO struct {
	TeamSize        int64                      `json:"team_size"`
	FeedbackCount   int64                      `json:"feedback_count"`
	SentimentTrends map[models.Sentiment]int64 `json:"sentiment_trends"`
}

// TimelineEntryDTO is one feedback entry on the employee dashboard
type TimelineEntryDTO struct {
	ID             uint64           `json:"id"`
	Sentiment      models.Sentiment `json:"sentiment"`
	CreatedAt      time.Time        `json:"created_at"`
	Acknowledged   bool             `json:"acknowledged"`
	Strengths      string           `json:"strengths"`
	AreasToImprove string           `json:"areas_to_improve"`
}

// EmployeeDashboardDTO lists the feedback an employee received, newest first
type EmployeeDashboardDTO struct {
	FeedbackTimeline []TimelineEntryDTO `json:"feedback_timeline"`
}

func ToEmployeeDashboardDTO(items []models.Feedback) EmployeeDashboardDTO {
	timeline := make([]TimelineEntryDTO, 0, len(items))
	for _, fb := range items {
		timeline = append(timeline, TimelineEntryDTO{
			ID:             fb.ID,
			Sentiment:      fb.Sentiment,
			CreatedAt:      fb.CreatedAt,
			Acknowledged:   fb.Acknowledged,
			Strengths:      fb.Strengths,
			AreasToImprove: fb.AreasToImprove,
		})
	}
	return EmployeeDashboardDTO{FeedbackTimeline: timeline}
}

// FeedbackSummaryDTO is the AI generated digest of an employee's feedback
type FeedbackSummaryDTO struct {
	EmployeeID    uint64 `json:"employee_id"`
	FeedbackCount int    `json:"feedback_count"`
	Summary       string `json:"summary"`
}
