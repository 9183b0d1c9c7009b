package service

import (
	"context"
	"encoding/json"
	"sync"
	"time"

	"github.com/google/uuid"
	"renthub/internal/domain"
	apperrors "renthub/pkg/errors"
)

type nopLogger struct{}

func (nopLogger) Debug(msg string, args ...any) {}
func (nopLogger) Info(msg string, args ...any)  {}
func (nopLogger) Warn(msg string, args ...any)  {}
func (nopLogger) Error(msg string, args ...any) {}
func (nopLogger) Fatal(msg string, args ...any) {}

type userRepoMock struct {
	CreateFunc                 func(ctx context.Context, user *domain.User) error
	GetByIDFunc                func(ctx context.Context, id uuid.UUID) (*domain.User, error)
	GetByEmailFunc             func(ctx context.Context, email string) (*domain.User, error)
	UpdatePushSubscriptionFunc func(ctx context.Context, id uuid.UUID, subscription json.RawMessage) error
}

func (m *userRepoMock) Create(ctx context.Context, user *domain.User) error {
	if m.CreateFunc != nil {
		return m.CreateFunc(ctx, user)
	}
	return nil
}

func (m *userRepoMock) GetByID(ctx context.Context, id uuid.UUID) (*domain.User, error) {
	if m.GetByIDFunc != nil {
		return m.GetByIDFunc(ctx, id)
	}
	return nil, apperrors.ErrNotFound
}

func (m *userRepoMock) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	if m.GetByEmailFunc != nil {
		return m.GetByEmailFunc(ctx, email)
	}
	return nil, apperrors.ErrNotFound
}

func (m *userRepoMock) UpdatePushSubscription(ctx context.Context, id uuid.UUID, subscription json.RawMessage) error {
	if m.UpdatePushSubscriptionFunc != nil {
		return m.UpdatePushSubscriptionFunc(ctx, id, subscription)
	}
	return nil
}

type propertyRepoMock struct {
	GetByIDFunc func(ctx context.Context, id uuid.UUID) (*domain.Property, error)
}

func (m *propertyRepoMock) GetByID(ctx context.Context, id uuid.UUID) (*domain.Property, error) {
	if m.GetByIDFunc != nil {
		return m.GetByIDFunc(ctx, id)
	}
	return nil, apperrors.ErrNotFound
}

type messageRepoMock struct {
	CreateFunc             func(ctx context.Context, message *domain.Message) error
	ListByConversationFunc func(ctx context.Context, conversationID string, limit, offset int) ([]*domain.Message, error)
	ExistsParticipantFunc  func(ctx context.Context, conversationID string, userID uuid.UUID) (bool, error)
	MarkReadFunc           func(ctx context.Context, receiverID uuid.UUID, messageIDs []uuid.UUID) (int64, error)
	CountUnreadFunc        func(ctx context.Context, userID uuid.UUID) (int64, error)
}

func (m *messageRepoMock) Create(ctx context.Context, message *domain.Message) error {
	if m.CreateFunc != nil {
		return m.CreateFunc(ctx, message)
	}
	return nil
}

func (m *messageRepoMock) ListByConversation(ctx context.Context, conversationID string, limit, offset int) ([]*domain.Message, error) {
	if m.ListByConversationFunc != nil {
		return m.ListByConversationFunc(ctx, conversationID, limit, offset)
	}
	return nil, nil
}

func (m *messageRepoMock) ExistsParticipant(ctx context.Context, conversationID string, userID uuid.UUID) (bool, error) {
	if m.ExistsParticipantFunc != nil {
		return m.ExistsParticipantFunc(ctx, conversationID, userID)
	}
	return false, nil
}

func (m *messageRepoMock) MarkRead(ctx context.Context, receiverID uuid.UUID, messageIDs []uuid.UUID) (int64, error) {
	if m.MarkReadFunc != nil {
		return m.MarkReadFunc(ctx, receiverID, messageIDs)
	}
	return 0, nil
}

func (m *messageRepoMock) CountUnread(ctx context.Context, userID uuid.UUID) (int64, error) {
	if m.CountUnreadFunc != nil {
		return m.CountUnreadFunc(ctx, userID)
	}
	return 0, nil
}

// notificationRepoMock records created notifications and status transitions
// under a lock because the dispatcher fans out on goroutines.
type notificationRepoMock struct {
	mu       sync.Mutex
	created  []*domain.Notification
	statuses map[uuid.UUID]domain.NotificationStatus

	CreateFunc           func(ctx context.Context, notification *domain.Notification) error
	GetPreferenceFunc    func(ctx context.Context, userID uuid.UUID, notificationType domain.NotificationType) (*domain.NotificationPreference, error)
	ListByUserFunc       func(ctx context.Context, userID uuid.UUID, limit, offset int) ([]*domain.Notification, error)
	MarkReadFunc         func(ctx context.Context, userID uuid.UUID, ids []uuid.UUID) (int64, error)
	UpsertPreferenceFunc func(ctx context.Context, pref *domain.NotificationPreference) error
	ListPreferencesFunc  func(ctx context.Context, userID uuid.UUID) ([]*domain.NotificationPreference, error)
}

func newNotificationRepoMock() *notificationRepoMock {
	return &notificationRepoMock{statuses: make(map[uuid.UUID]domain.NotificationStatus)}
}

func (m *notificationRepoMock) Create(ctx context.Context, notification *domain.Notification) error {
	if m.CreateFunc != nil {
		if err := m.CreateFunc(ctx, notification); err != nil {
			return err
		}
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.created = append(m.created, notification)
	m.statuses[notification.ID] = notification.Status
	return nil
}

func (m *notificationRepoMock) UpdateStatus(ctx context.Context, id uuid.UUID, status domain.NotificationStatus, sentAt *time.Time) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.statuses[id] = status
	return nil
}

func (m *notificationRepoMock) ListByUser(ctx context.Context, userID uuid.UUID, limit, offset int) ([]*domain.Notification, error) {
	if m.ListByUserFunc != nil {
		return m.ListByUserFunc(ctx, userID, limit, offset)
	}
	return nil, nil
}

func (m *notificationRepoMock) MarkRead(ctx context.Context, userID uuid.UUID, ids []uuid.UUID) (int64, error) {
	if m.MarkReadFunc != nil {
		return m.MarkReadFunc(ctx, userID, ids)
	}
	return 0, nil
}

func (m *notificationRepoMock) GetPreference(ctx context.Context, userID uuid.UUID, notificationType domain.NotificationType) (*domain.NotificationPreference, error) {
	if m.GetPreferenceFunc != nil {
		return m.GetPreferenceFunc(ctx, userID, notificationType)
	}
	return nil, apperrors.ErrNotFound
}

func (m *notificationRepoMock) UpsertPreference(ctx context.Context, pref *domain.NotificationPreference) error {
	if m.UpsertPreferenceFunc != nil {
		return m.UpsertPreferenceFunc(ctx, pref)
	}
	return nil
}

func (m *notificationRepoMock) ListPreferences(ctx context.Context, userID uuid.UUID) ([]*domain.NotificationPreference, error) {
	if m.ListPreferencesFunc != nil {
		return m.ListPreferencesFunc(ctx, userID)
	}
	return nil, nil
}

func (m *notificationRepoMock) byChannel() map[domain.NotificationChannel]*domain.Notification {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make(map[domain.NotificationChannel]*domain.Notification, len(m.created))
	for _, n := range m.created {
		out[n.Channel] = n
	}
	return out
}

func (m *notificationRepoMock) statusOf(id uuid.UUID) domain.NotificationStatus {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.statuses[id]
}

type emailAdapterMock struct {
	mu       sync.Mutex
	calls    int
	SendFunc func(to, subject, htmlBody, textBody string) bool
}

func (m *emailAdapterMock) Send(to, subject, htmlBody, textBody string) bool {
	m.mu.Lock()
	m.calls++
	m.mu.Unlock()
	if m.SendFunc != nil {
		return m.SendFunc(to, subject, htmlBody, textBody)
	}
	return true
}

func (m *emailAdapterMock) callCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.calls
}

type webPushAdapterMock struct {
	mu       sync.Mutex
	calls    int
	SendFunc func(subscription json.RawMessage, payload []byte, ttl int, urgency string) bool
}

func (m *webPushAdapterMock) Send(subscription json.RawMessage, payload []byte, ttl int, urgency string) bool {
	m.mu.Lock()
	m.calls++
	m.mu.Unlock()
	if m.SendFunc != nil {
		return m.SendFunc(subscription, payload, ttl, urgency)
	}
	return true
}

func (m *webPushAdapterMock) callCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.calls
}

type realtimePublisherMock struct {
	IsOnlineFunc            func(userID uuid.UUID) bool
	BroadcastNewMessageFunc func(conversationID string, message *domain.Message, excludeConnID string)
	NotifyNewMessageFunc    func(userID uuid.UUID, message *domain.Message)
}

func (m *realtimePublisherMock) IsOnline(userID uuid.UUID) bool {
	if m.IsOnlineFunc != nil {
		return m.IsOnlineFunc(userID)
	}
	return false
}

func (m *realtimePublisherMock) BroadcastNewMessage(conversationID string, message *domain.Message, excludeConnID string) {
	if m.BroadcastNewMessageFunc != nil {
		m.BroadcastNewMessageFunc(conversationID, message, excludeConnID)
	}
}

func (m *realtimePublisherMock) NotifyNewMessage(userID uuid.UUID, message *domain.Message) {
	if m.NotifyNewMessageFunc != nil {
		m.NotifyNewMessageFunc(userID, message)
	}
}

// notifierMock satisfies NotificationService for message pipeline tests; only
// the new-message hook is observed.
type notifierMock struct {
	NotifyNewMessageFunc func(ctx context.Context, receiverID uuid.UUID, sender domain.UserProfile, property *domain.Property, message *domain.Message)
}

func (m *notifierMock) Send(ctx context.Context, event NotificationEvent, channels ...domain.NotificationChannel) {
}

func (m *notifierMock) NotifyNewMessage(ctx context.Context, receiverID uuid.UUID, sender domain.UserProfile, property *domain.Property, message *domain.Message) {
	if m.NotifyNewMessageFunc != nil {
		m.NotifyNewMessageFunc(ctx, receiverID, sender, property, message)
	}
}

func (m *notifierMock) NotifyFavoriteUnavailable(ctx context.Context, userID uuid.UUID, propertyTitle string) {
}

func (m *notifierMock) NotifyFavoritesUnavailable(ctx context.Context, userID uuid.UUID, propertyTitles []string) {
}

func (m *notifierMock) NotifyPropertyStatus(ctx context.Context, property *domain.Property, status string) {
}

func (m *notifierMock) NotifyNewListingMatch(ctx context.Context, userID uuid.UUID, property *domain.Property) {
}

func (m *notifierMock) NotifyInactivityReminder(ctx context.Context, userID uuid.UUID, firstName string) {
}

func (m *notifierMock) ListForUser(ctx context.Context, userID uuid.UUID, limit, offset int) ([]*domain.Notification, error) {
	return nil, nil
}

func (m *notifierMock) MarkRead(ctx context.Context, userID uuid.UUID, ids []uuid.UUID) (int64, error) {
	return 0, nil
}

func (m *notifierMock) Preferences(ctx context.Context, userID uuid.UUID) ([]*domain.NotificationPreference, error) {
	return nil, nil
}

func (m *notifierMock) UpdatePreference(ctx context.Context, pref *domain.NotificationPreference) error {
	return nil
}

func (m *notifierMock) RegisterPushSubscription(ctx context.Context, userID uuid.UUID, subscription json.RawMessage) error {
	return nil
}

func activeUser(id uuid.UUID, email string) *domain.User {
	return &domain.User{
		ID:        id,
		Email:     email,
		FirstName: "Test",
		LastName:  "User",
		IsActive:  true,
	}
}

func activeProperty(id uuid.UUID, title string) *domain.Property {
	return &domain.Property{
		ID:       id,
		OwnerID:  uuid.New(),
		Title:    title,
		City:     "Berlin",
		Status:   domain.PropertyStatusApproved,
		IsActive: true,
	}
}
