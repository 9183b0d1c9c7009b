package service

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"renthub/internal/adapter"
	"renthub/internal/config"
	"renthub/internal/domain"
	"renthub/internal/repository"
	"renthub/pkg/logger"
)

// NotificationEvent is one logical event to fan out. Each enabled channel
// gets its own delivery record.
type NotificationEvent struct {
	UserID  uuid.UUID
	Type    domain.NotificationType
	Title   string
	Message string
	Data    map[string]any
}

type NotificationService interface {
	// Send fans the event out to the given channels, or to the channels
	// resolved from the user's preferences when none are given. Delivery is
	// best-effort: failures are recorded per channel and never surfaced.
	Send(ctx context.Context, event NotificationEvent, channels ...domain.NotificationChannel)

	NotifyNewMessage(ctx context.Context, receiverID uuid.UUID, sender domain.UserProfile, property *domain.Property, message *domain.Message)
	NotifyFavoriteUnavailable(ctx context.Context, userID uuid.UUID, propertyTitle string)
	NotifyFavoritesUnavailable(ctx context.Context, userID uuid.UUID, propertyTitles []string)
	NotifyPropertyStatus(ctx context.Context, property *domain.Property, status string)
	NotifyNewListingMatch(ctx context.Context, userID uuid.UUID, property *domain.Property)
	NotifyInactivityReminder(ctx context.Context, userID uuid.UUID, firstName string)

	ListForUser(ctx context.Context, userID uuid.UUID, limit, offset int) ([]*domain.Notification, error)
	MarkRead(ctx context.Context, userID uuid.UUID, ids []uuid.UUID) (int64, error)
	Preferences(ctx context.Context, userID uuid.UUID) ([]*domain.NotificationPreference, error)
	UpdatePreference(ctx context.Context, pref *domain.NotificationPreference) error
	RegisterPushSubscription(ctx context.Context, userID uuid.UUID, subscription json.RawMessage) error
}

type notificationService struct {
	notificationRepo repository.NotificationRepository
	userRepo         repository.UserRepository
	email            adapter.EmailAdapter
	webPush          adapter.WebPushAdapter
	baseURL          string
	pushTTL          int
	log              logger.Logger
}

func NewNotificationService(
	notificationRepo repository.NotificationRepository,
	userRepo repository.UserRepository,
	email adapter.EmailAdapter,
	webPush adapter.WebPushAdapter,
	cfg *config.Config,
	log logger.Logger,
) NotificationService {
	return &notificationService{
		notificationRepo: notificationRepo,
		userRepo:         userRepo,
		email:            email,
		webPush:          webPush,
		baseURL:          cfg.App.BaseURL,
		pushTTL:          cfg.WebPush.DefaultTTL,
		log:              log,
	}
}

func (s *notificationService) Send(ctx context.Context, event NotificationEvent, channels ...domain.NotificationChannel) {
	user, err := s.userRepo.GetByID(ctx, event.UserID)
	if err != nil {
		// A notification for a vanished user is not an error to the caller
		// and leaves no record behind.
		s.log.Debug("Notification target not found, dropping event", "user_id", event.UserID, "type", event.Type)
		return
	}

	targets := channels
	if len(targets) == 0 {
		targets = s.resolveChannels(ctx, user.ID, event.Type)
	}

	var data json.RawMessage
	if len(event.Data) > 0 {
		if data, err = json.Marshal(event.Data); err != nil {
			s.log.Warn("Failed to marshal notification data", "error", err, "type", event.Type)
			data = nil
		}
	}

	// Channels deliver independently; one failing or panicking adapter must
	// not affect the others.
	var wg sync.WaitGroup
	for _, channel := range targets {
		wg.Add(1)
		go func(channel domain.NotificationChannel) {
			defer wg.Done()
			s.dispatch(ctx, user, event, channel, data)
		}(channel)
	}
	wg.Wait()
}

func (s *notificationService) resolveChannels(ctx context.Context, userID uuid.UUID, notificationType domain.NotificationType) []domain.NotificationChannel {
	channels := []domain.NotificationChannel{domain.ChannelInApp}

	pref, err := s.notificationRepo.GetPreference(ctx, userID, notificationType)
	if err != nil {
		// No preference row (or lookup failure): all channels enabled.
		return append(channels, domain.ChannelEmail, domain.ChannelWebPush)
	}

	if pref.EmailEnabled {
		channels = append(channels, domain.ChannelEmail)
	}
	if pref.WebPushEnabled {
		channels = append(channels, domain.ChannelWebPush)
	}
	return channels
}

func (s *notificationService) dispatch(ctx context.Context, user *domain.User, event NotificationEvent, channel domain.NotificationChannel, data json.RawMessage) {
	notification := &domain.Notification{
		ID:        uuid.New(),
		UserID:    user.ID,
		Type:      event.Type,
		Title:     event.Title,
		Message:   event.Message,
		Data:      data,
		Channel:   channel,
		Status:    domain.StatusPending,
		CreatedAt: time.Now(),
	}

	if err := s.notificationRepo.Create(ctx, notification); err != nil {
		s.log.Error("Failed to create notification record", "error", err, "channel", channel)
		return
	}

	if s.deliver(user, notification, channel) {
		now := time.Now()
		if err := s.notificationRepo.UpdateStatus(ctx, notification.ID, domain.StatusSent, &now); err != nil {
			s.log.Error("Failed to mark notification sent", "error", err, "notification_id", notification.ID)
		}
		return
	}

	if err := s.notificationRepo.UpdateStatus(ctx, notification.ID, domain.StatusFailed, nil); err != nil {
		s.log.Error("Failed to mark notification failed", "error", err, "notification_id", notification.ID)
	}
}

// deliver runs one channel adapter. A panicking adapter counts as a failed
// delivery, so the record still moves from PENDING to FAILED.
func (s *notificationService) deliver(user *domain.User, notification *domain.Notification, channel domain.NotificationChannel) (delivered bool) {
	defer func() {
		if r := recover(); r != nil {
			s.log.Error("Notification delivery panicked", "channel", channel, "type", notification.Type, "panic", r)
			delivered = false
		}
	}()

	switch channel {
	case domain.ChannelInApp:
		// The row itself is the delivery.
		return true
	case domain.ChannelEmail:
		return s.deliverEmail(user, notification)
	case domain.ChannelWebPush:
		return s.deliverWebPush(user, notification)
	default:
		s.log.Warn("Unknown notification channel", "channel", channel)
		return false
	}
}

func (s *notificationService) deliverEmail(user *domain.User, notification *domain.Notification) bool {
	if user.Email == "" {
		return false
	}

	htmlBody, textBody := RenderEmail(notification, user.FirstName, s.baseURL)
	return s.email.Send(user.Email, notification.Title, htmlBody, textBody)
}

func (s *notificationService) deliverWebPush(user *domain.User, notification *domain.Notification) bool {
	if len(user.PushSubscription) == 0 {
		return false
	}

	payload := BuildPushPayload(notification, s.baseURL)
	body, err := json.Marshal(payload)
	if err != nil {
		s.log.Error("Failed to marshal push payload", "error", err)
		return false
	}

	return s.webPush.Send(user.PushSubscription, body, s.pushTTL, payload.Urgency)
}

func (s *notificationService) NotifyNewMessage(ctx context.Context, receiverID uuid.UUID, sender domain.UserProfile, property *domain.Property, message *domain.Message) {
	preview := message.Content
	if runes := []rune(preview); len(runes) > 120 {
		preview = string(runes[:120]) + TruncationMarker
	}

	senderName := strings.TrimSpace(sender.FirstName + " " + sender.LastName)
	s.Send(ctx, NotificationEvent{
		UserID:  receiverID,
		Type:    domain.NotificationNewMessage,
		Title:   fmt.Sprintf("New message from %s", senderName),
		Message: fmt.Sprintf("%s about %q: %s", senderName, property.Title, preview),
		Data: map[string]any{
			"conversationId": message.ConversationID,
			"messageId":      message.ID.String(),
			"propertyId":     property.ID.String(),
			"senderId":       sender.ID.String(),
		},
	})
}

func (s *notificationService) NotifyFavoriteUnavailable(ctx context.Context, userID uuid.UUID, propertyTitle string) {
	s.Send(ctx, NotificationEvent{
		UserID:  userID,
		Type:    domain.NotificationFavoriteUnavailable,
		Title:   "A favorite is no longer available",
		Message: fmt.Sprintf("%q has been removed or rented out.", propertyTitle),
		Data: map[string]any{
			"propertyTitle": propertyTitle,
		},
	})
}

// NotifyFavoritesUnavailable collapses a batch into a single aggregate
// notification so a purge of many listings does not flood the user. A
// one-item batch behaves exactly like the single-property call.
func (s *notificationService) NotifyFavoritesUnavailable(ctx context.Context, userID uuid.UUID, propertyTitles []string) {
	switch len(propertyTitles) {
	case 0:
		return
	case 1:
		s.NotifyFavoriteUnavailable(ctx, userID, propertyTitles[0])
	default:
		s.Send(ctx, NotificationEvent{
			UserID:  userID,
			Type:    domain.NotificationFavoriteUnavailable,
			Title:   "Some favorites are no longer available",
			Message: fmt.Sprintf("%d of your favorite properties are no longer available: %s", len(propertyTitles), strings.Join(propertyTitles, ", ")),
			Data: map[string]any{
				"count":      len(propertyTitles),
				"properties": propertyTitles,
			},
		})
	}
}

func (s *notificationService) NotifyPropertyStatus(ctx context.Context, property *domain.Property, status string) {
	var notificationType domain.NotificationType
	var title, message string

	switch status {
	case domain.PropertyStatusVerified:
		notificationType = domain.NotificationPropertyVerified
		title = "Your listing has been verified"
		message = fmt.Sprintf("%q passed verification and now carries a verified badge.", property.Title)
	case domain.PropertyStatusApproved:
		notificationType = domain.NotificationPropertyApproved
		title = "Your listing has been approved"
		message = fmt.Sprintf("%q is now visible to renters.", property.Title)
	case domain.PropertyStatusRejected:
		notificationType = domain.NotificationPropertyRejected
		title = "Your listing was rejected"
		message = fmt.Sprintf("%q did not pass review. Please check the details and resubmit.", property.Title)
	default:
		s.log.Warn("Unknown property status for notification", "status", status)
		return
	}

	s.Send(ctx, NotificationEvent{
		UserID:  property.OwnerID,
		Type:    notificationType,
		Title:   title,
		Message: message,
		Data: map[string]any{
			"propertyId": property.ID.String(),
			"status":     status,
		},
	})
}

func (s *notificationService) NotifyNewListingMatch(ctx context.Context, userID uuid.UUID, property *domain.Property) {
	s.Send(ctx, NotificationEvent{
		UserID:  userID,
		Type:    domain.NotificationNewListingMatch,
		Title:   "New listing matches your search",
		Message: fmt.Sprintf("%q in %s just went live.", property.Title, property.City),
		Data: map[string]any{
			"propertyId": property.ID.String(),
		},
	})
}

func (s *notificationService) NotifyInactivityReminder(ctx context.Context, userID uuid.UUID, firstName string) {
	s.Send(ctx, NotificationEvent{
		UserID:  userID,
		Type:    domain.NotificationInactivityReminder,
		Title:   "We miss you",
		Message: fmt.Sprintf("%s, new places have been listed since your last visit.", firstName),
	})
}

func (s *notificationService) ListForUser(ctx context.Context, userID uuid.UUID, limit, offset int) ([]*domain.Notification, error) {
	if limit <= 0 || limit > 100 {
		limit = 50
	}
	return s.notificationRepo.ListByUser(ctx, userID, limit, offset)
}

func (s *notificationService) MarkRead(ctx context.Context, userID uuid.UUID, ids []uuid.UUID) (int64, error) {
	if len(ids) == 0 {
		return 0, nil
	}
	return s.notificationRepo.MarkRead(ctx, userID, ids)
}

func (s *notificationService) Preferences(ctx context.Context, userID uuid.UUID) ([]*domain.NotificationPreference, error) {
	return s.notificationRepo.ListPreferences(ctx, userID)
}

func (s *notificationService) UpdatePreference(ctx context.Context, pref *domain.NotificationPreference) error {
	return s.notificationRepo.UpsertPreference(ctx, pref)
}

func (s *notificationService) RegisterPushSubscription(ctx context.Context, userID uuid.UUID, subscription json.RawMessage) error {
	return s.userRepo.UpdatePushSubscription(ctx, userID, subscription)
}
