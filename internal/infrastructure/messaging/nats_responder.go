package messaging

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"

	app_service "wallet-checkpoint-monitor/internal/application/service"
	"wallet-checkpoint-monitor/internal/infrastructure/config"
	"wallet-checkpoint-monitor/internal/infrastructure/logger"

	"github.com/nats-io/nats.go"
	"go.uber.org/zap"
)

// NATSResponder answers report requests over NATS request/reply and
// publishes scheduled reports
type NATSResponder struct {
	conn     *nats.Conn
	sub      *nats.Subscription
	config   *config.NATSConfig
	commands *app_service.CommandHandler
	logger   *logger.Logger

	ctx    context.Context
	cancel context.CancelFunc
	wg     sync.WaitGroup
}

// NewNATSResponder creates a new NATS responder
func NewNATSResponder(cfg *config.NATSConfig, commands *app_service.CommandHandler, logger *logger.Logger) *NATSResponder {
	return &NATSResponder{
		config:   cfg,
		commands: commands,
		logger:   logger.WithComponent("nats-responder"),
	}
}

// Connect connects to NATS server and subscribes to command subjects
func (n *NATSResponder) Connect() error {
	if !n.config.Enabled {
		n.logger.Info("NATS is disabled, skipping connection")
		return nil
	}

	n.logger.Info("Connecting to NATS server", zap.String("url", n.config.URL))

	opts := []nats.Option{
		nats.Name("wallet-checkpoint-monitor"),
		nats.Timeout(n.config.ConnectTimeout),
		nats.ReconnectWait(n.config.ReconnectDelay),
		nats.MaxReconnects(n.config.ReconnectAttempts),
		nats.DisconnectErrHandler(func(nc *nats.Conn, err error) {
			n.logger.Warn("NATS disconnected", zap.Error(err))
		}),
		nats.ReconnectHandler(func(nc *nats.Conn) {
			n.logger.Info("NATS reconnected", zap.String("url", nc.ConnectedUrl()))
		}),
		nats.ClosedHandler(func(nc *nats.Conn) {
			n.logger.Info("NATS connection closed")
		}),
	}

	conn, err := nats.Connect(n.config.URL, opts...)
	if err != nil {
		n.logger.Error("Failed to connect to NATS", zap.Error(err))
		return fmt.Errorf("failed to connect to NATS: %w", err)
	}
	n.conn = conn
	n.ctx, n.cancel = context.WithCancel(context.Background())

	subject := n.CommandSubject("*")
	sub, err := conn.QueueSubscribe(subject, n.config.QueueGroup, func(msg *nats.Msg) {
		// callbacks are serialized per subscription; reports may be slow
		n.wg.Add(1)
		go func() {
			defer n.wg.Done()
			n.handleMessage(msg)
		}()
	})
	if err != nil {
		n.logger.Error("Failed to subscribe to subject", zap.Error(err))
		return fmt.Errorf("failed to subscribe: %w", err)
	}
	n.sub = sub

	n.logger.Info("Listening for report requests",
		zap.String("subject", subject),
		zap.String("queue_group", n.config.QueueGroup))

	return nil
}

// CommandSubject returns the subject a command is requested on
func (n *NATSResponder) CommandSubject(command string) string {
	return fmt.Sprintf("%s.%s", n.config.SubjectPrefix, command)
}

// ScheduledSubject returns the subject scheduled reports for recipient go to
func (n *NATSResponder) ScheduledSubject(recipient string) string {
	return fmt.Sprintf("%s.scheduled.%s", n.config.SubjectPrefix, recipient)
}

// handleMessage answers one request; the last subject token is the command
// and the payload, if any, is the sender's display name
func (n *NATSResponder) handleMessage(msg *nats.Msg) {
	command := msg.Subject[strings.LastIndex(msg.Subject, ".")+1:]

	reply, err := n.commands.Handle(n.ctx, command, strings.TrimSpace(string(msg.Data)))
	if err != nil {
		n.logger.Error("Failed to handle report request",
			zap.String("subject", msg.Subject),
			zap.Error(err))
		if errors.Is(err, app_service.ErrUnknownCommand) {
			reply = "Unknown command"
		} else {
			reply = "Report could not be generated"
		}
	}

	if msg.Reply == "" {
		n.logger.Debug("Report request without reply subject", zap.String("subject", msg.Subject))
		return
	}
	if err := msg.Respond([]byte(reply)); err != nil {
		n.logger.Error("Failed to respond", zap.String("subject", msg.Subject), zap.Error(err))
	}
}

// Notify implements Notifier by publishing to the recipient's subject
func (n *NATSResponder) Notify(ctx context.Context, recipient string, message string) error {
	if n.conn == nil {
		return errors.New("NATS is not connected")
	}
	if err := n.conn.Publish(n.ScheduledSubject(recipient), []byte(message)); err != nil {
		return fmt.Errorf("failed to publish report: %w", err)
	}
	return n.conn.Flush()
}

// Disconnect disconnects from NATS server
func (n *NATSResponder) Disconnect() error {
	if n.sub != nil {
		n.sub.Unsubscribe()
		n.sub = nil
	}
	if n.cancel != nil {
		n.cancel()
	}
	n.wg.Wait()
	if n.conn != nil {
		n.conn.Close()
		n.conn = nil
	}
	n.logger.Info("Disconnected from NATS")
	return nil
}

// IsConnected checks if connected to NATS
func (n *NATSResponder) IsConnected() bool {
	return n.conn != nil && n.conn.IsConnected()
}
