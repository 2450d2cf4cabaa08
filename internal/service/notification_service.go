package service

import (
	"context"
	"errors"
	"strings"

	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"

	"github.com/iludo/profile-service/internal/config"
	"github.com/iludo/profile-service/internal/domain"
	"github.com/iludo/profile-service/internal/events"
	"github.com/iludo/profile-service/internal/repository"
)

// NotificationService registers push devices and dispatches notifications
// for domain events. Delivery itself is a gateway concern; dispatch here
// is logged per device.
type NotificationService struct {
	devices    repository.DeviceRepository
	dispatcher events.Dispatcher
	logger     *zap.Logger
	cfg        config.NotificationConfig
}

// NewNotificationService creates the service.
func NewNotificationService(devices repository.DeviceRepository, dispatcher events.Dispatcher, logger *zap.Logger, cfg config.NotificationConfig) *NotificationService {
	return &NotificationService{
		devices:    devices,
		dispatcher: dispatcher,
		logger:     logger,
		cfg:        cfg,
	}
}

// RegisterDevice stores a push token for the user, deduplicated on token.
func (n *NotificationService) RegisterDevice(ctx context.Context, userID, token, client string, platform domain.DevicePlatform) error {
	if strings.TrimSpace(token) == "" {
		return domain.ErrInvalidInput
	}
	if platform == "" {
		platform = domain.DevicePlatformIOS
	}

	if _, err := n.devices.GetByToken(ctx, token); err == nil {
		return nil
	} else if !errors.Is(err, pgx.ErrNoRows) {
		return err
	}

	device := &domain.Device{
		UserID:   userID,
		Token:    token,
		Client:   client,
		Platform: platform,
	}
	return n.devices.Create(ctx, device)
}

// SendToUser dispatches a payload to every device the user registered.
// Fails with domain.ErrNoDevices when there is nothing to send to.
func (n *NotificationService) SendToUser(ctx context.Context, userID string, payload map[string]any) (int, error) {
	devices, err := n.devices.ListByUser(ctx, userID)
	if err != nil {
		return 0, err
	}
	if len(devices) == 0 {
		return 0, domain.ErrNoDevices
	}
	for _, device := range devices {
		n.sendPushStub(device, payload)
	}
	return len(devices), nil
}

// RegisterHandlers subscribes to events.
func (n *NotificationService) RegisterHandlers() {
	if n.dispatcher == nil {
		return
	}
	n.dispatcher.Subscribe(events.EventInviteRedeemed, n.handleInviteRedeemed)
	n.dispatcher.Subscribe(events.EventProfileCompleted, n.handleProfileCompleted)
	n.dispatcher.Subscribe(events.EventPlateRegistered, n.handlePlateRegistered)
}

// handleInviteRedeemed tells the code owner their invite was accepted.
func (n *NotificationService) handleInviteRedeemed(ctx context.Context, event events.Event) error {
	payload, ok := event.Payload.(events.InviteRedeemedPayload)
	if !ok {
		return nil
	}
	n.logger.Info("InviteRedeemed", zap.String("user_id", event.UserID), zap.Any("payload", payload))
	if _, err := n.SendToUser(ctx, payload.InviterID, map[string]any{
		"title": "Your invite was accepted",
		"body":  "Someone joined with your invite code. Coins are on your account!",
	}); err != nil && !errors.Is(err, domain.ErrNoDevices) {
		return err
	}
	return nil
}

func (n *NotificationService) handleProfileCompleted(ctx context.Context, event events.Event) error {
	n.logger.Info("ProfileCompleted", zap.String("user_id", event.UserID), zap.Any("payload", event.Payload))
	return nil
}

func (n *NotificationService) handlePlateRegistered(ctx context.Context, event events.Event) error {
	n.logger.Info("PlateRegistered", zap.String("user_id", event.UserID), zap.Any("payload", event.Payload))
	return nil
}

func (n *NotificationService) sendPushStub(device domain.Device, payload map[string]any) {
	if strings.TrimSpace(n.cfg.PushGatewayURL) == "" {
		n.logger.Debug("push gateway not configured; dropping notification",
			zap.String("token", device.Token))
		return
	}
	n.logger.Debug("sendPushStub",
		zap.String("gateway", n.cfg.PushGatewayURL),
		zap.String("token", device.Token),
		zap.String("platform", string(device.Platform)),
		zap.Any("payload", payload))
}
