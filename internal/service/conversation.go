package service

import (
	"regexp"
	"sort"
	"strings"

	"github.com/google/uuid"
	apperrors "renthub/pkg/errors"
)

const (
	// MaxMessageLength bounds persisted content; longer input is truncated
	// and marked with TruncationMarker.
	MaxMessageLength = 1000

	TruncationMarker = "..."

	conversationIDSeparator = "_"

	// ContactNotice is appended when content looks like an attempt to move
	// the conversation off-platform. Content is annotated, never blocked.
	ContactNotice = " [Notice: please keep all communication on the platform. Conversations that move to phone, email or third-party apps are not covered by our protection policies.]"
)

var (
	whitespaceRe = regexp.MustCompile(`\s+`)
	phoneRe      = regexp.MustCompile(`[0-9]{10,}`)
	emailRe      = regexp.MustCompile(`[A-Za-z0-9._%+\-]+@[A-Za-z0-9.\-]+\.[A-Za-z]{2,}`)
	platformRe   = regexp.MustCompile(`(?i)\b(whatsapp|telegram|viber|signal|wechat|instagram|facebook|messenger|snapchat|skype)\b`)
)

// ConversationID derives the stable identity of a two-party conversation
// about one property. Both participant orderings produce the same id.
func ConversationID(a, b uuid.UUID, propertyID uuid.UUID) string {
	participants := []string{a.String(), b.String()}
	sort.Strings(participants)
	return strings.Join(append(participants, propertyID.String()), conversationIDSeparator)
}

// ParseConversationID splits a conversation id back into its two participants
// and the property anchor.
func ParseConversationID(conversationID string) (uuid.UUID, uuid.UUID, uuid.UUID, error) {
	parts := strings.Split(conversationID, conversationIDSeparator)
	if len(parts) != 3 {
		return uuid.Nil, uuid.Nil, uuid.Nil, apperrors.ErrInvalidConversationID
	}

	a, err := uuid.Parse(parts[0])
	if err != nil {
		return uuid.Nil, uuid.Nil, uuid.Nil, apperrors.ErrInvalidConversationID
	}
	b, err := uuid.Parse(parts[1])
	if err != nil {
		return uuid.Nil, uuid.Nil, uuid.Nil, apperrors.ErrInvalidConversationID
	}
	propertyID, err := uuid.Parse(parts[2])
	if err != nil {
		return uuid.Nil, uuid.Nil, uuid.Nil, apperrors.ErrInvalidConversationID
	}

	return a, b, propertyID, nil
}

// CollapseWhitespace folds any run of whitespace into a single space and
// trims the ends. Applying it twice is the same as applying it once.
func CollapseWhitespace(s string) string {
	return strings.TrimSpace(whitespaceRe.ReplaceAllString(s, " "))
}

// ContainsContactInfo reports whether content carries a phone-number-like
// digit run, an email address shape, or a third-party messenger mention.
func ContainsContactInfo(s string) bool {
	return phoneRe.MatchString(s) || emailRe.MatchString(s) || platformRe.MatchString(s)
}

// FilterContent runs the full content pipeline: collapse whitespace, annotate
// contact-info attempts, truncate to MaxMessageLength. An empty result after
// trimming is rejected.
func FilterContent(raw string) (string, error) {
	content := CollapseWhitespace(raw)
	if content == "" {
		return "", apperrors.ErrEmptyMessage
	}

	if ContainsContactInfo(content) {
		content += ContactNotice
	}

	if runes := []rune(content); len(runes) > MaxMessageLength {
		content = string(runes[:MaxMessageLength]) + TruncationMarker
	}

	return content, nil
}
