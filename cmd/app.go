package cmd

import (
	"database/sql"
	"fmt"
	"log/slog"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/shaharia-lab/fanout/internal/config"
	"github.com/shaharia-lab/fanout/internal/eventbus"
	"github.com/shaharia-lab/fanout/internal/notification"
	"github.com/shaharia-lab/fanout/internal/service"
	"github.com/shaharia-lab/fanout/internal/storage"
)

// app bundles the wired services shared by every subcommand.
type app struct {
	db     *sql.DB
	bus    eventbus.EventBus
	logger *slog.Logger

	messages      service.MessageService
	notifications service.NotificationLogService
	users         service.UserService
}

// newApp opens the database and wires stores, transports, senders, the
// dispatcher and the services. reg receives the dispatch metrics; nil skips
// registration.
func newApp(cfg *config.AppConfig, logger *slog.Logger, reg prometheus.Registerer) (*app, error) {
	db, fresh, err := storage.NewSQLiteDB(cfg.DBPath())
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}
	if fresh {
		logger.Info("created new database", "path", cfg.DBPath())
	}

	messageStore := storage.NewSQLiteMessageStore(db)
	userStore := storage.NewSQLiteUserStore(db)
	notificationStore := storage.NewSQLiteNotificationStore(db)

	emailTransport, smsTransport, pushTransport := buildTransports(cfg, logger)

	senders, err := buildSenders(logger, emailTransport, smsTransport, pushTransport)
	if err != nil {
		_ = db.Close()
		return nil, err
	}

	dispatcher, err := notification.NewDispatcher(notificationStore, logger, senders,
		notification.WithConcurrency(cfg.DispatchConcurrency),
		notification.WithMetrics(notification.NewMetrics(reg)),
	)
	if err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("building dispatcher: %w", err)
	}

	bus := eventbus.New(0, logger)
	bus.Subscribe(eventbus.Only(eventbus.EventMessageDispatched, func(e eventbus.Event) {
		logger.Info("dispatch finished",
			"message_id", e.Payload["message_id"],
			"category", e.Payload["category"],
			"recipients", e.Payload["recipients"],
			"delivered", e.Payload["delivered"],
		)
	}))
	if cfg.OperatorEmail != "" {
		report := notification.NewReportHandler(emailTransport, cfg.OperatorEmail, logger)
		bus.Subscribe(report.Handle)
	}

	return &app{
		db:            db,
		bus:           bus,
		logger:        logger,
		messages:      service.NewMessageService(messageStore, userStore, notificationStore, dispatcher, bus, logger),
		notifications: service.NewNotificationLogService(notificationStore),
		users:         service.NewUserService(userStore, bus, logger),
	}, nil
}

// Close drains pending events and closes the database.
func (a *app) Close() {
	a.bus.Close()
	if err := a.db.Close(); err != nil {
		a.logger.Warn("closing database", "error", err)
	}
}

// buildTransports picks a real backend for each channel that is configured
// and falls back to simulated delivery otherwise.
func buildTransports(cfg *config.AppConfig, logger *slog.Logger) (email, sms, push notification.Transport) {
	simulated := notification.NewLogTransport(logger)
	email, sms, push = simulated, simulated, simulated

	smtpCfg := notification.SMTPConfig{
		Host:       cfg.SMTPHost,
		Port:       cfg.SMTPPort,
		Username:   cfg.SMTPUsername,
		Password:   cfg.SMTPPassword,
		FromAddr:   cfg.SMTPFrom,
		Encryption: cfg.SMTPEncryption,
	}
	if smtpCfg.Configured() {
		email = notification.NewSMTPTransport(smtpCfg)
	}

	smsCfg := notification.GatewayConfig{URL: cfg.SMSGatewayURL, Token: cfg.SMSGatewayToken}
	if smsCfg.Configured() {
		sms = notification.NewSMSGatewayTransport(smsCfg)
	}

	pushCfg := notification.GatewayConfig{URL: cfg.PushGatewayURL, Token: cfg.PushGatewayKey}
	if pushCfg.Configured() {
		push = notification.NewPushGatewayTransport(pushCfg)
	}

	logger.Info("delivery transports",
		"email", email.Name(),
		"sms", sms.Name(),
		"push", push.Name(),
	)
	return email, sms, push
}

func buildSenders(logger *slog.Logger, email, sms, push notification.Transport) ([]notification.ChannelSender, error) {
	emailSender, err := notification.NewEmailSender(email, logger)
	if err != nil {
		return nil, fmt.Errorf("building email sender: %w", err)
	}
	smsSender, err := notification.NewSMSSender(sms, logger)
	if err != nil {
		return nil, fmt.Errorf("building sms sender: %w", err)
	}
	pushSender, err := notification.NewPushSender(push, logger)
	if err != nil {
		return nil, fmt.Errorf("building push sender: %w", err)
	}
	return []notification.ChannelSender{emailSender, smsSender, pushSender}, nil
}
