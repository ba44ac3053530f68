package mailer

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/campushub/records-portal/internal/core/events"
)

// Sender is what the event handler needs from the SMTP layer.
type Sender interface {
	Send(to, subject, body string) error
}

// EventHandler delivers credential and OTP mail off the event bus. Handlers
// run on bus goroutines after the triggering transaction has committed, so a
// failed delivery can only ever be logged, never rolled back into.
type EventHandler struct {
	mailer Sender
	logger *slog.Logger
}

func NewEventHandler(mailer Sender, logger *slog.Logger) *EventHandler {
	return &EventHandler{
		mailer: mailer,
		logger: logger,
	}
}

func (h *EventHandler) HandleAccountProvisioned(ctx context.Context, event events.Event) error {
	provisioned, ok := event.(*events.AccountProvisionedEvent)
	if !ok {
		h.logger.Error("invalid event type for account provisioned handler", "event_type", event.EventType())
		return fmt.Errorf("expected AccountProvisionedEvent, got %T", event)
	}

	body := fmt.Sprintf(
		"Welcome to the records portal.\n\n"+
			"Username: %s\n"+
			"Temporary password: %s\n\n"+
			"You will be asked to change this password on first login.\n",
		provisioned.Username, provisioned.TempPassword)

	if err := h.mailer.Send(provisioned.Email, "Your portal account", body); err != nil {
		h.logger.Error("failed to send credentials email",
			"email", provisioned.Email,
			"account_id", provisioned.AccountID,
			"event_id", provisioned.EventID(),
			"error", err)
		return err
	}

	h.logger.Info("credentials email sent", "email", provisioned.Email, "account_id", provisioned.AccountID)
	return nil
}

func (h *EventHandler) HandleOtpIssued(ctx context.Context, event events.Event) error {
	issued, ok := event.(*events.OtpIssuedEvent)
	if !ok {
		h.logger.Error("invalid event type for otp issued handler", "event_type", event.EventType())
		return fmt.Errorf("expected OtpIssuedEvent, got %T", event)
	}

	body := fmt.Sprintf(
		"Your one-time login code is %s.\n\nIt expires in 5 minutes.\n",
		issued.Code)

	if err := h.mailer.Send(issued.Email, "Your login code", body); err != nil {
		h.logger.Error("failed to send otp email",
			"email", issued.Email,
			"event_id", issued.EventID(),
			"error", err)
		return err
	}

	h.logger.Info("otp email sent", "email", issued.Email)
	return nil
}

func (h *EventHandler) RegisterEventHandlers(eventBus *events.EventBus) {
	eventBus.Subscribe(events.EventTypeAccountProvisioned, h.HandleAccountProvisioned)
	eventBus.Subscribe(events.EventTypeOtpIssued, h.HandleOtpIssued)

	h.logger.Info("mailer event handlers registered",
		"handlers", []string{events.EventTypeAccountProvisioned, events.EventTypeOtpIssued})
}
