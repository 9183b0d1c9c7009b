package service

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"renthub/internal/domain"
	"renthub/internal/repository"
	apperrors "renthub/pkg/errors"
	"renthub/pkg/logger"
)

// RealtimePublisher is the slice of the realtime hub the message pipeline
// needs: presence answers and room/point-to-point delivery.
type RealtimePublisher interface {
	IsOnline(userID uuid.UUID) bool
	BroadcastNewMessage(conversationID string, message *domain.Message, excludeConnID string)
	NotifyNewMessage(userID uuid.UUID, message *domain.Message)
}

type MessageService interface {
	SendMessage(ctx context.Context, senderID, receiverID, propertyID uuid.UUID, content, originConnID string) (*domain.Message, error)
	MarkAsRead(ctx context.Context, userID uuid.UUID, messageIDs []uuid.UUID) (int64, error)
	GetConversation(ctx context.Context, userID uuid.UUID, conversationID string, limit, offset int) ([]*domain.Message, error)
	IsParticipant(ctx context.Context, userID uuid.UUID, conversationID string) (bool, error)
	CountUnread(ctx context.Context, userID uuid.UUID) (int64, error)
}

type messageService struct {
	messageRepo  repository.MessageRepository
	userRepo     repository.UserRepository
	propertyRepo repository.PropertyRepository
	notifier     NotificationService
	realtime     RealtimePublisher
	log          logger.Logger
}

func NewMessageService(
	messageRepo repository.MessageRepository,
	userRepo repository.UserRepository,
	propertyRepo repository.PropertyRepository,
	notifier NotificationService,
	realtime RealtimePublisher,
	log logger.Logger,
) MessageService {
	return &messageService{
		messageRepo:  messageRepo,
		userRepo:     userRepo,
		propertyRepo: propertyRepo,
		notifier:     notifier,
		realtime:     realtime,
		log:          log,
	}
}

// SendMessage validates, filters, persists and fans out one message.
// originConnID excludes the sender's own connection from the room broadcast;
// it is empty when the message arrives over plain HTTP.
func (s *messageService) SendMessage(ctx context.Context, senderID, receiverID, propertyID uuid.UUID, content, originConnID string) (*domain.Message, error) {
	if senderID == receiverID {
		return nil, apperrors.ErrCannotMessageSelf
	}

	sender, err := s.userRepo.GetByID(ctx, senderID)
	if err != nil || !sender.IsActive {
		return nil, apperrors.ErrUserNotFoundOrInactive
	}

	receiver, err := s.userRepo.GetByID(ctx, receiverID)
	if err != nil || !receiver.IsActive {
		return nil, apperrors.ErrReceiverNotFound
	}

	property, err := s.propertyRepo.GetByID(ctx, propertyID)
	if err != nil || !property.IsActive {
		return nil, apperrors.ErrPropertyNotFound
	}

	filtered, err := FilterContent(content)
	if err != nil {
		return nil, err
	}

	senderProfile := sender.Profile()
	message := &domain.Message{
		ID:             uuid.New(),
		ConversationID: ConversationID(senderID, receiverID, propertyID),
		SenderID:       senderID,
		ReceiverID:     receiverID,
		PropertyID:     propertyID,
		Content:        filtered,
		IsRead:         false,
		CreatedAt:      time.Now(),
		Sender:         &senderProfile,
	}

	if err := s.messageRepo.Create(ctx, message); err != nil {
		return nil, fmt.Errorf("failed to persist message: %w", err)
	}

	s.realtime.BroadcastNewMessage(message.ConversationID, message, originConnID)

	if s.realtime.IsOnline(receiverID) {
		s.realtime.NotifyNewMessage(receiverID, message)
	} else {
		// Receiver has no live connection; fall back to durable channels in
		// the background. The send never waits on SMTP or push HTTP, and the
		// dispatch outlives the request context.
		go s.notifier.NotifyNewMessage(context.Background(), receiver.ID, senderProfile, property, message)
	}

	return message, nil
}

// MarkAsRead flips is_read on messages the caller received. Already-read
// messages and messages addressed to someone else are skipped, so repeating
// the call changes nothing.
func (s *messageService) MarkAsRead(ctx context.Context, userID uuid.UUID, messageIDs []uuid.UUID) (int64, error) {
	if len(messageIDs) == 0 {
		return 0, nil
	}
	return s.messageRepo.MarkRead(ctx, userID, messageIDs)
}

func (s *messageService) GetConversation(ctx context.Context, userID uuid.UUID, conversationID string, limit, offset int) ([]*domain.Message, error) {
	member, err := s.messageRepo.ExistsParticipant(ctx, conversationID, userID)
	if err != nil {
		return nil, err
	}
	if !member {
		return nil, apperrors.ErrAccessDenied
	}

	if limit <= 0 || limit > 100 {
		limit = 50
	}
	return s.messageRepo.ListByConversation(ctx, conversationID, limit, offset)
}

func (s *messageService) IsParticipant(ctx context.Context, userID uuid.UUID, conversationID string) (bool, error) {
	return s.messageRepo.ExistsParticipant(ctx, conversationID, userID)
}

func (s *messageService) CountUnread(ctx context.Context, userID uuid.UUID) (int64, error) {
	return s.messageRepo.CountUnread(ctx, userID)
}
