package notification

import (
	"context"

	domain "github.com/NeuralTrust/SafeChat/pkg/domain/notification"
	"github.com/google/uuid"
)

const (
	defaultInboxLimit = 50
	maxInboxLimit     = 200
)

//go:generate mockery --name=Inbox --dir=. --output=./mocks --filename=inbox_mock.go --case=underscore --with-expecter
type Inbox interface {
	List(ctx context.Context, userID uuid.UUID, limit int) ([]domain.Notification, error)
}

type inbox struct {
	repo domain.Repository
}

func NewInbox(repo domain.Repository) Inbox {
	return &inbox{repo: repo}
}

func (i *inbox) List(ctx context.Context, userID uuid.UUID, limit int) ([]domain.Notification, error) {
	if limit <= 0 {
		limit = defaultInboxLimit
	}
	if limit > maxInboxLimit {
		limit = maxInboxLimit
	}
	return i.repo.ListByUser(ctx, userID, limit)
}
