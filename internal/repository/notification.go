package repository

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"renthub/internal/domain"
	apperrors "renthub/pkg/errors"
	"renthub/pkg/logger"
)

type NotificationRepository interface {
	Create(ctx context.Context, notification *domain.Notification) error
	UpdateStatus(ctx context.Context, id uuid.UUID, status domain.NotificationStatus, sentAt *time.Time) error
	ListByUser(ctx context.Context, userID uuid.UUID, limit, offset int) ([]*domain.Notification, error)
	MarkRead(ctx context.Context, userID uuid.UUID, ids []uuid.UUID) (int64, error)
	GetPreference(ctx context.Context, userID uuid.UUID, notificationType domain.NotificationType) (*domain.NotificationPreference, error)
	UpsertPreference(ctx context.Context, pref *domain.NotificationPreference) error
	ListPreferences(ctx context.Context, userID uuid.UUID) ([]*domain.NotificationPreference, error)
}

type notificationRepository struct {
	db  *pgxpool.Pool
	log logger.Logger
}

func NewNotificationRepository(db *pgxpool.Pool, log logger.Logger) NotificationRepository {
	return &notificationRepository{db: db, log: log}
}

func (r *notificationRepository) Create(ctx context.Context, notification *domain.Notification) error {
	query := `
		INSERT INTO notifications (id, user_id, type, title, message, data, channel, status, is_read, sent_at, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
	`

	_, err := r.db.Exec(ctx, query,
		notification.ID, notification.UserID, notification.Type, notification.Title,
		notification.Message, notification.Data, notification.Channel, notification.Status,
		notification.IsRead, notification.SentAt, notification.CreatedAt,
	)
	if err != nil {
		r.log.Error("Failed to create notification", "error", err)
		return err
	}

	return nil
}

func (r *notificationRepository) UpdateStatus(ctx context.Context, id uuid.UUID, status domain.NotificationStatus, sentAt *time.Time) error {
	query := `
		UPDATE notifications
		SET status = $2, sent_at = $3
		WHERE id = $1
	`

	_, err := r.db.Exec(ctx, query, id, status, sentAt)
	if err != nil {
		r.log.Error("Failed to update notification status", "error", err, "notification_id", id)
		return err
	}

	return nil
}

func (r *notificationRepository) ListByUser(ctx context.Context, userID uuid.UUID, limit, offset int) ([]*domain.Notification, error) {
	query := `
		SELECT id, user_id, type, title, message, data, channel, status, is_read, sent_at, created_at
		FROM notifications
		WHERE user_id = $1
		ORDER BY created_at DESC
		LIMIT $2 OFFSET $3
	`

	rows, err := r.db.Query(ctx, query, userID, limit, offset)
	if err != nil {
		r.log.Error("Failed to list notifications", "error", err)
		return nil, err
	}
	defer rows.Close()

	var notifications []*domain.Notification
	for rows.Next() {
		n := &domain.Notification{}
		err := rows.Scan(
			&n.ID, &n.UserID, &n.Type, &n.Title, &n.Message, &n.Data,
			&n.Channel, &n.Status, &n.IsRead, &n.SentAt, &n.CreatedAt,
		)
		if err != nil {
			r.log.Error("Failed to scan notification", "error", err)
			return nil, err
		}
		notifications = append(notifications, n)
	}

	return notifications, rows.Err()
}

func (r *notificationRepository) MarkRead(ctx context.Context, userID uuid.UUID, ids []uuid.UUID) (int64, error) {
	query := `
		UPDATE notifications
		SET is_read = TRUE
		WHERE user_id = $1 AND id = ANY($2) AND is_read = FALSE
	`

	tag, err := r.db.Exec(ctx, query, userID, ids)
	if err != nil {
		r.log.Error("Failed to mark notifications read", "error", err)
		return 0, err
	}

	return tag.RowsAffected(), nil
}

func (r *notificationRepository) GetPreference(ctx context.Context, userID uuid.UUID, notificationType domain.NotificationType) (*domain.NotificationPreference, error) {
	query := `
		SELECT user_id, type, email_enabled, web_push_enabled, updated_at
		FROM notification_preferences
		WHERE user_id = $1 AND type = $2
	`

	pref := &domain.NotificationPreference{}
	err := r.db.QueryRow(ctx, query, userID, notificationType).Scan(
		&pref.UserID, &pref.Type, &pref.EmailEnabled, &pref.WebPushEnabled, &pref.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		r.log.Error("Failed to get notification preference", "error", err)
		return nil, err
	}

	return pref, nil
}

func (r *notificationRepository) UpsertPreference(ctx context.Context, pref *domain.NotificationPreference) error {
	query := `
		INSERT INTO notification_preferences (user_id, type, email_enabled, web_push_enabled, updated_at)
		VALUES ($1, $2, $3, $4, NOW())
		ON CONFLICT (user_id, type) DO UPDATE
		SET email_enabled = EXCLUDED.email_enabled,
		    web_push_enabled = EXCLUDED.web_push_enabled,
		    updated_at = NOW()
	`

	_, err := r.db.Exec(ctx, query, pref.UserID, pref.Type, pref.EmailEnabled, pref.WebPushEnabled)
	if err != nil {
		r.log.Error("Failed to upsert notification preference", "error", err)
		return err
	}

	return nil
}

func (r *notificationRepository) ListPreferences(ctx context.Context, userID uuid.UUID) ([]*domain.NotificationPreference, error) {
	query := `
		SELECT user_id, type, email_enabled, web_push_enabled, updated_at
		FROM notification_preferences
		WHERE user_id = $1
		ORDER BY type
	`

	rows, err := r.db.Query(ctx, query, userID)
	if err != nil {
		r.log.Error("Failed to list notification preferences", "error", err)
		return nil, err
	}
	defer rows.Close()

	var prefs []*domain.NotificationPreference
	for rows.Next() {
		pref := &domain.NotificationPreference{}
		err := rows.Scan(&pref.UserID, &pref.Type, &pref.EmailEnabled, &pref.WebPushEnabled, &pref.UpdatedAt)
		if err != nil {
			r.log.Error("Failed to scan notification preference", "error", err)
			return nil, err
		}
		prefs = append(prefs, pref)
	}

	return prefs, rows.Err()
}
