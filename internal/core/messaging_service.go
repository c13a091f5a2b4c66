package core

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"gwi.com/message-service/internal/store"
)

type MessagingService struct {
	dbStore store.Store
	newID   func() string
}

func NewMessagingService(db store.Store) *MessagingService {
	return &MessagingService{
		dbStore: db,
		newID:   uuid.NewString, // random (v4); collisions are not checked
	}
}

func (s *MessagingService) ListUsers(ctx context.Context) ([]store.User, error) {
	users, err := s.dbStore.ListUsers(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list users: %w", err)
	}
	return users, nil
}

// CreateUser registers a user under a freshly generated identifier and
// returns it. The username is stored as given, nil included.
func (s *MessagingService) CreateUser(ctx context.Context, username any) (string, error) {
	userID := s.newID()
	if err := s.dbStore.CreateUser(ctx, userID, username); err != nil {
		return "", fmt.Errorf("failed to create user: %w", err)
	}
	return userID, nil
}

// SendMessage stores a message without checking that sender or receiver exist.
func (s *MessagingService) SendMessage(ctx context.Context, msg store.NewMessage) (int64, error) {
	id, err := s.dbStore.CreateMessage(ctx, msg)
	if err != nil {
		return 0, fmt.Errorf("failed to send message: %w", err)
	}
	return id, nil
}

func (s *MessagingService) GetMessagesForUser(ctx context.Context, userID string) ([]store.Message, error) {
	messages, err := s.dbStore.ListMessagesByReceiver(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to get messages for %s: %w", userID, err)
	}
	return messages, nil
}

// GetAllMessages returns every stored message. Callers are not authorized.
func (s *MessagingService) GetAllMessages(ctx context.Context) ([]store.Message, error) {
	messages, err := s.dbStore.ListMessages(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to get all messages: %w", err)
	}
	return messages, nil
}

func (s *MessagingService) CheckHealth(ctx context.Context) error {
	return s.dbStore.Ping(ctx)
}
