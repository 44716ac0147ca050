package conversation

import "context"

//go:generate mockery --name=Repository --dir=. --output=./mocks --filename=conversation_repository_mock.go --case=underscore --with-expecter
type Repository interface {
	// RecentUserMessages returns up to limit user messages of the conversation, oldest first.
	RecentUserMessages(ctx context.Context, conversationID string, limit int) ([]Message, error)
	History(ctx context.Context, conversationID string, limit int) ([]Message, error)
	Save(ctx context.Context, messages ...*Message) error
}
