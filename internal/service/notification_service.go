package service

import (
	"context"
	"strings"

	"go.uber.org/zap"

	"github.com/sabajiqurashvili/loan-api/internal/config"
	"github.com/sabajiqurashvili/loan-api/internal/events"
)

// NotificationService emits notifications for domain events.
type NotificationService struct {
	dispatcher events.Dispatcher
	logger     *zap.Logger
	cfg        config.NotificationConfig
}

// NewNotificationService creates the service.
func NewNotificationService(dispatcher events.Dispatcher, logger *zap.Logger, cfg config.NotificationConfig) *NotificationService {
	return &NotificationService{
		dispatcher: dispatcher,
		logger:     logger,
		cfg:        cfg,
	}
}

// RegisterHandlers subscribes to events.
func (n *NotificationService) RegisterHandlers() {
	if n.dispatcher == nil {
		return
	}
	n.dispatcher.Subscribe(events.EventLoanRequested, n.handleLoanRequested)
	n.dispatcher.Subscribe(events.EventLoanStatusChanged, n.handleLoanStatusChanged)
	n.dispatcher.Subscribe(events.EventLoanDeleted, n.handleLoanDeleted)
	n.dispatcher.Subscribe(events.EventUserBlocked, n.handleUserBlocked)
	n.dispatcher.Subscribe(events.EventUserPromoted, n.handleUserPromoted)
}

func (n *NotificationService) handleLoanRequested(ctx context.Context, event events.Event) error {
	n.logger.Info("LoanRequested", zap.Any("payload", event.Payload))
	n.sendEmailNotificationStub(ctx, event)
	return nil
}

func (n *NotificationService) handleLoanStatusChanged(ctx context.Context, event events.Event) error {
	n.logger.Info("LoanStatusChanged", zap.Any("payload", event.Payload))
	n.sendEmailNotificationStub(ctx, event)
	n.sendWebhookNotificationStub(ctx, event)
	return nil
}

func (n *NotificationService) handleLoanDeleted(ctx context.Context, event events.Event) error {
	n.logger.Info("LoanDeleted", zap.Any("payload", event.Payload))
	n.sendWebhookNotificationStub(ctx, event)
	return nil
}

func (n *NotificationService) handleUserBlocked(ctx context.Context, event events.Event) error {
	n.logger.Info("UserBlocked", zap.Any("payload", event.Payload))
	n.sendWebhookNotificationStub(ctx, event)
	return nil
}

func (n *NotificationService) handleUserPromoted(ctx context.Context, event events.Event) error {
	n.logger.Info("UserPromoted", zap.Any("payload", event.Payload))
	n.sendEmailNotificationStub(ctx, event)
	return nil
}

func (n *NotificationService) sendEmailNotificationStub(_ context.Context, event events.Event) {
	if strings.TrimSpace(n.cfg.EmailFrom) == "" {
		return
	}
	n.logger.Debug("sendEmailNotificationStub",
		zap.String("from", n.cfg.EmailFrom),
		zap.String("event_type", string(event.Type)))
}

func (n *NotificationService) sendWebhookNotificationStub(_ context.Context, event events.Event) {
	if strings.TrimSpace(n.cfg.WebhookURL) == "" {
		return
	}
	n.logger.Debug("sendWebhookNotificationStub",
		zap.String("url", n.cfg.WebhookURL),
		zap.String("event_type", string(event.Type)))
}
