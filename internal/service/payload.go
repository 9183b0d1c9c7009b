package service

import (
	"encoding/json"
	"fmt"

	"renthub/internal/domain"
)

const (
	UrgencyHigh   = "high"
	UrgencyNormal = "normal"
	UrgencyLow    = "low"
)

type PushAction struct {
	Action string `json:"action"`
	Title  string `json:"title"`
}

// PushPayload is the browser-facing push message body. Urgency doubles as the
// Web Push transport header value.
type PushPayload struct {
	Title              string          `json:"title"`
	Body               string          `json:"body"`
	URL                string          `json:"url"`
	Urgency            string          `json:"urgency"`
	RequireInteraction bool            `json:"requireInteraction"`
	Actions            []PushAction    `json:"actions"`
	Data               json.RawMessage `json:"data,omitempty"`
}

// BuildPushPayload maps a notification onto its deep link, action set,
// urgency tier and interaction flag. It is total over the known types and
// falls back to a generic shape for anything else.
func BuildPushPayload(n *domain.Notification, baseURL string) PushPayload {
	payload := PushPayload{
		Title:   n.Title,
		Body:    n.Message,
		Urgency: UrgencyNormal,
		Data:    n.Data,
	}

	propertyID := propertyIDFromData(n.Data)

	switch n.Type {
	case domain.NotificationNewMessage:
		payload.URL = baseURL + "/messages"
		if conversationID := conversationIDFromData(n.Data); conversationID != "" {
			payload.URL = fmt.Sprintf("%s/messages?conversation=%s", baseURL, conversationID)
		}
		payload.Urgency = UrgencyHigh
		payload.RequireInteraction = true
		payload.Actions = []PushAction{
			{Action: "view", Title: "View Message"},
			{Action: "dismiss", Title: "Dismiss"},
		}
	case domain.NotificationPropertyVerified, domain.NotificationPropertyApproved:
		payload.URL = propertyURL(baseURL, propertyID)
		payload.Actions = []PushAction{
			{Action: "view", Title: "View Property"},
			{Action: "dismiss", Title: "Dismiss"},
		}
	case domain.NotificationPropertyRejected:
		payload.URL = propertyURL(baseURL, propertyID)
		payload.RequireInteraction = true
		payload.Actions = []PushAction{
			{Action: "view", Title: "View Property"},
			{Action: "dismiss", Title: "Dismiss"},
		}
	case domain.NotificationFavoriteUnavailable:
		payload.URL = baseURL + "/favorites"
		payload.Actions = []PushAction{
			{Action: "view", Title: "View Favorites"},
			{Action: "dismiss", Title: "Dismiss"},
		}
	case domain.NotificationNewListingMatch:
		payload.URL = propertyURL(baseURL, propertyID)
		if propertyID == "" {
			payload.URL = baseURL + "/search"
		}
		payload.Actions = []PushAction{
			{Action: "view", Title: "View Listing"},
			{Action: "dismiss", Title: "Dismiss"},
		}
	case domain.NotificationInactivityReminder:
		payload.URL = baseURL + "/"
		payload.Urgency = UrgencyLow
		payload.Actions = []PushAction{
			{Action: "view", Title: "Browse Listings"},
			{Action: "dismiss", Title: "Dismiss"},
		}
	default:
		payload.URL = baseURL + "/notifications"
		payload.Actions = []PushAction{
			{Action: "view", Title: "View"},
			{Action: "dismiss", Title: "Dismiss"},
		}
	}

	return payload
}

func propertyURL(baseURL, propertyID string) string {
	if propertyID == "" {
		return baseURL + "/properties"
	}
	return fmt.Sprintf("%s/properties/%s", baseURL, propertyID)
}

func propertyIDFromData(data json.RawMessage) string {
	if len(data) == 0 {
		return ""
	}
	var fields struct {
		PropertyID string `json:"propertyId"`
	}
	if err := json.Unmarshal(data, &fields); err != nil {
		return ""
	}
	return fields.PropertyID
}

func conversationIDFromData(data json.RawMessage) string {
	if len(data) == 0 {
		return ""
	}
	var fields struct {
		ConversationID string `json:"conversationId"`
	}
	if err := json.Unmarshal(data, &fields); err != nil {
		return ""
	}
	return fields.ConversationID
}
