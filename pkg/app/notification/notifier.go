package notification

import (
	"context"
	"errors"
	"fmt"
	"time"

	domain "github.com/NeuralTrust/SafeChat/pkg/domain/notification"
	"github.com/NeuralTrust/SafeChat/pkg/domain/user"
	"github.com/NeuralTrust/SafeChat/pkg/infra/cache"
	"github.com/NeuralTrust/SafeChat/pkg/infra/cache/channel"
	"github.com/NeuralTrust/SafeChat/pkg/infra/cache/event"
	"github.com/NeuralTrust/SafeChat/pkg/infra/mailer"
	"github.com/sirupsen/logrus"
)

var ErrNoAdmins = errors.New("no operator accounts")

type notifier struct {
	logger    *logrus.Logger
	users     user.Repository
	inbox     domain.Repository
	publisher cache.EventPublisher
	mailer    mailer.Mailer
}

func NewNotifier(
	logger *logrus.Logger,
	users user.Repository,
	inbox domain.Repository,
	publisher cache.EventPublisher,
	m mailer.Mailer,
) domain.OperatorNotifier {
	return &notifier{
		logger:    logger,
		users:     users,
		inbox:     inbox,
		publisher: publisher,
		mailer:    m,
	}
}

// NotifyAdmins stores one in-app notification per operator and announces them to connected dashboards.
func (n *notifier) NotifyAdmins(ctx context.Context, title, body string) error {
	admins, err := n.admins(ctx)
	if err != nil {
		return err
	}

	items := make([]*domain.Notification, 0, len(admins))
	for _, admin := range admins {
		items = append(items, domain.NewCrisisAlert(admin.ID, title, body))
	}
	if err := n.inbox.SaveAll(ctx, items); err != nil {
		return fmt.Errorf("failed to save operator notifications: %w", err)
	}

	alert := event.OperatorAlertEvent{
		Kind:       domain.KindCrisisAlert,
		Title:      title,
		Body:       body,
		Recipients: len(items),
		CreatedAt:  time.Now(),
	}
	if err := n.publisher.Publish(ctx, channel.OperatorAlertsChannel, alert); err != nil {
		n.logger.WithError(err).Warn("failed to publish operator alert")
	}
	return nil
}

func (n *notifier) EmailAdmins(ctx context.Context, title, body string) error {
	admins, err := n.admins(ctx)
	if err != nil {
		return err
	}
	to := make([]string, 0, len(admins))
	for _, admin := range admins {
		if admin.Email != "" {
			to = append(to, admin.Email)
		}
	}
	if len(to) == 0 {
		return ErrNoAdmins
	}
	return n.mailer.Send(ctx, to, title, body)
}

func (n *notifier) admins(ctx context.Context) ([]user.User, error) {
	admins, err := n.users.ListAdmins(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list operators: %w", err)
	}
	if len(admins) == 0 {
		return nil, ErrNoAdmins
	}
	return admins, nil
}
