//go:generate go run go.uber.org/mock/mockgen -source=chat_service.go -destination=../mocks/mock_chat_service.go -package=mocks
package services

import (
	"context"
	"time"

	"chatroom/contract"
	"chatroom/domain"
	"chatroom/repositories"
	"chatroom/runtime"
)

type IChatService interface {
	Join(ctx context.Context, identifier string, sink contract.EventSink) (*runtime.Session, error)
	Chat(ctx context.Context, s *runtime.Session, intent domain.Intent) error
	Leave(ctx context.Context, s *runtime.Session)
	History(from, to time.Time) ([]domain.ChatEvent, error)
}

type ChatService struct {
	broker  *runtime.Broker
	history repositories.IHistory
}

func NewChatService(broker *runtime.Broker, history repositories.IHistory) *ChatService {
	return &ChatService{broker: broker, history: history}
}

func (s *ChatService) Join(ctx context.Context, identifier string, sink contract.EventSink) (*runtime.Session, error) {
	return s.broker.Join(ctx, identifier, sink)
}

func (s *ChatService) Chat(ctx context.Context, sess *runtime.Session, intent domain.Intent) error {
	return s.broker.Chat(ctx, sess, intent)
}

func (s *ChatService) Leave(ctx context.Context, sess *runtime.Session) {
	s.broker.Leave(ctx, sess)
}

func (s *ChatService) History(from, to time.Time) ([]domain.ChatEvent, error) {
	return s.history.Query(from, to)
}
