package models

import (
	"time"
)

type Sentiment string

const (
	SentimentPositive Sentiment = "positive"
	SentimentNeutral  Sentiment = "neutral"
	SentimentNegative Sentiment = "negative"
)

// Sentiments lists every sentiment in display order.
var Sentiments = []Sentiment{SentimentPositive, SentimentNeutral, SentimentNegative}

func (s Sentiment) Valid() bool {
	switch s {
	case SentimentPositive, SentimentNeutral, SentimentNegative:
		return true
	}
	return false
}

type Feedback struct {
	ID             uint64    `gorm:"primarykey" json:"id"`
	EmployeeID     uint64    `gorm:"not null;index" json:"employee_id"`
	ManagerID      uint64    `gorm:"not null;index" json:"manager_id"`
	Strengths      string    `gorm:"type:text;not null" json:"strengths"`
	AreasToImprove string    `gorm:"type:text;not null" json:"areas_to_improve"`
	Sentiment      Sentiment `gorm:"type:varchar(20);not null" json:"sentiment"`
	Acknowledged   bool      `gorm:"not null;default:false" json:"acknowledged"`
	IsAnonymous    bool      `gorm:"not null;default:false" json:"is_anonymous"`
	CreatedAt      time.Time `json:"created_at"`
	UpdatedAt      time.Time `json:"updated_at"`

	// Relations
	Employee User `gorm:"foreignKey:EmployeeID" json:"-"`
	// Manager is filled by the repository from ManagerID, see Store.
	Manager User `gorm:"-" json:"-"`
}

// TableName keeps the singular/plural ambiguity of "feedback" out of the schema.
func (Feedback) TableName() string {
	return "feedback"
}

type PeerFeedback struct {
	ID             uint64    `gorm:"primarykey" json:"id"`
	FromEmployeeID uint64    `gorm:"not null;index" json:"from_employee_id"`
	ToEmployeeID   uint64    `gorm:"not null;index" json:"to_employee_id"`
	Strengths      string    `gorm:"type:text;not null" json:"strengths"`
	AreasToImprove string    `gorm:"type:text;not null" json:"areas_to_improve"`
	Sentiment      Sentiment `gorm:"type:varchar(20);not null" json:"sentiment"`
	Acknowledged   bool      `gorm:"not null;default:false" json:"acknowledged"`
	IsAnonymous    bool      `gorm:"not null;default:false" json:"is_anonymous"`
	CreatedAt      time.Time `json:"created_at"`
	UpdatedAt      time.Time `json:"updated_at"`

	// Relations
	FromEmployee User `gorm:"foreignKey:FromEmployeeID" json:"-"`
	ToEmployee   User `gorm:"foreignKey:ToEmployeeID" json:"-"`
}

func (PeerFeedback) TableName() string {
	return "peer_feedback"
}
