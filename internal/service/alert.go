package service

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/harborview/fleetwatch"
	"github.com/harborview/fleetwatch/internal/domain"
	"github.com/harborview/fleetwatch/internal/usecase"
)

// Alert is an operator notification about a tracked vessel, fanned out to
// realtime subscribers on the alerts channel.
type Alert struct {
	ID         string   `json:"id"`
	IMO        int64    `json:"imo,omitempty"`
	Subject    string   `json:"subject"`
	Message    string   `json:"message"`
	Recipients []string `json:"recipients"`
	Sender     string   `json:"sender"`
}

type AlertService struct {
	signal usecase.EventPublisher
}

func NewAlertService(signal usecase.EventPublisher) *AlertService {
	return &AlertService{signal: signal}
}

func (s *AlertService) Send(ctx context.Context, identity domain.Identity, alert Alert) (Alert, error) {
	if alert.Subject == "" {
		return Alert{}, domain.ValidationError{Field: "subject", Reason: "required"}
	}
	if len(alert.Recipients) == 0 {
		return Alert{}, domain.ValidationError{Field: "recipients", Reason: "at least one recipient"}
	}
	for _, r := range alert.Recipients {
		if r == "" {
			return Alert{}, domain.ValidationError{Field: "recipients", Reason: "empty recipient"}
		}
	}

	alert.ID = uuid.NewString()
	alert.Sender = identity.UserID

	event := fleetwatch.Event{
		ID:        alert.ID,
		Type:      "alert.sent",
		Timestamp: time.Now().UTC(),
		Body:      alert,
	}
	if err := s.signal.Publish(ctx, domain.ChannelAlerts, event); err != nil {
		return Alert{}, err
	}

	return alert, nil
}
