package notification

import (
	"context"
	"time"

	"github.com/google/uuid"
)

const KindCrisisAlert = "crisis_alert"

type Notification struct {
	ID        uuid.UUID `json:"id" gorm:"type:uuid;primaryKey"`
	UserID    uuid.UUID `json:"user_id" gorm:"type:uuid"`
	Kind      string    `json:"kind"`
	Title     string    `json:"title"`
	Body      string    `json:"body"`
	Read      bool      `json:"read"`
	CreatedAt time.Time `json:"created_at"`
}

func (Notification) TableName() string {
	return "notifications"
}

type Repository interface {
	SaveAll(ctx context.Context, notifications []*Notification) error
	// ListByUser returns the newest notifications of one operator first.
	ListByUser(ctx context.Context, userID uuid.UUID, limit int) ([]Notification, error)
}

func NewCrisisAlert(userID uuid.UUID, title, body string) *Notification {
	return &Notification{
		ID:        uuid.New(),
		UserID:    userID,
		Kind:      KindCrisisAlert,
		Title:     title,
		Body:      body,
		CreatedAt: time.Now(),
	}
}

// OperatorNotifier alerts the operator accounts. Both operations are best-effort and fail independently.
type OperatorNotifier interface {
	NotifyAdmins(ctx context.Context, title, body string) error
	EmailAdmins(ctx context.Context, title, body string) error
}
