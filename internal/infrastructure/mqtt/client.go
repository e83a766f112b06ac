package mqtt

import (
	"context"
	"fmt"
	"sync"

	pahomqtt "github.com/eclipse/paho.mqtt.golang"

	"github.com/nerrad567/knx-ga-studio/internal/infrastructure/config"
)

// Client wraps paho.mqtt.golang for publishing studio events.
//
// Thread Safety:
//   - All methods are safe for concurrent use from multiple goroutines.
type Client struct {
	client pahomqtt.Client
	cfg    config.MQTTConfig

	// connected tracks current connection state.
	connected bool
	connMu    sync.RWMutex

	// logger is optional, set via SetLogger.
	logger   Logger
	loggerMu sync.RWMutex
}

// Logger interface for optional logging support.
// Compatible with logging.Logger and slog.Logger.
type Logger interface {
	Info(msg string, args ...any)
	Warn(msg string, args ...any)
}

// Connect establishes a connection to the MQTT broker.
//
// It performs the following setup:
//  1. Builds connection options from config (broker URL, auth, TLS)
//  2. Configures Last Will and Testament (LWT) for offline detection
//  3. Attempts the initial connection, bounded by ctx and a fixed timeout
//  4. Publishes online status to gastudio/system/status on every connect
//
// Parameters:
//   - ctx: Context bounding the initial connection
//   - cfg: MQTT configuration from config.yaml
//
// Returns:
//   - *Client: Connected client ready for use
//   - error: If the initial connection fails
func Connect(ctx context.Context, cfg config.MQTTConfig) (*Client, error) {
	opts := buildClientOptions(cfg)
	configureLWT(opts, cfg.Broker.ClientID)

	c := &Client{cfg: cfg}

	opts.SetOnConnectHandler(func(_ pahomqtt.Client) {
		c.setConnected(true)
		c.publishStatus(StatusOnline, "")
	})
	opts.SetConnectionLostHandler(func(_ pahomqtt.Client, err error) {
		c.setConnected(false)
		if logger := c.getLogger(); logger != nil {
			logger.Warn("mqtt connection lost", "error", err)
		}
	})
	opts.SetReconnectingHandler(func(_ pahomqtt.Client, _ *pahomqtt.ClientOptions) {
		if logger := c.getLogger(); logger != nil {
			logger.Info("mqtt reconnecting")
		}
	})

	c.client = pahomqtt.NewClient(opts)
	token := c.client.Connect()

	select {
	case <-token.Done():
	case <-ctx.Done():
		return nil, fmt.Errorf("%w: %w", ErrConnectionFailed, ctx.Err())
	}
	if err := token.Error(); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrConnectionFailed, err)
	}

	// The OnConnect handler runs asynchronously; mark the state now so
	// IsConnected is true as soon as Connect returns.
	c.setConnected(true)

	return c, nil
}

func (c *Client) setConnected(v bool) {
	c.connMu.Lock()
	c.connected = v
	c.connMu.Unlock()
}

// publishStatus publishes a retained status message without waiting.
func (c *Client) publishStatus(status, reason string) pahomqtt.Token {
	return c.client.Publish(Topics{}.SystemStatus(), byte(c.cfg.QoS), true,
		statusPayload(status, c.cfg.Broker.ClientID, reason))
}

// Close publishes a graceful offline status and disconnects.
// Closing a nil or never-connected client is a no-op.
func (c *Client) Close() error {
	if c == nil || c.client == nil {
		return nil
	}

	if c.IsConnected() {
		c.publishStatus(StatusOffline, "graceful_shutdown").WaitTimeout(defaultPublishTimeout)
	}

	c.client.Disconnect(defaultDisconnectQuiesce)
	c.setConnected(false)

	return nil
}

// HealthCheck reports whether the client is connected.
//
// Parameters:
//   - ctx: Context for timeout/cancellation
//
// Returns:
//   - error: nil if healthy, error describing the issue otherwise
func (c *Client) HealthCheck(ctx context.Context) error {
	select {
	case <-ctx.Done():
		return fmt.Errorf("mqtt health check: %w", ctx.Err())
	default:
	}

	if !c.IsConnected() {
		return ErrNotConnected
	}
	return nil
}

// IsConnected returns the last known connection state.
func (c *Client) IsConnected() bool {
	c.connMu.RLock()
	defer c.connMu.RUnlock()
	return c.connected && c.client != nil && c.client.IsConnected()
}

// SetLogger sets a logger for connection events.
func (c *Client) SetLogger(logger Logger) {
	c.loggerMu.Lock()
	c.logger = logger
	c.loggerMu.Unlock()
}

func (c *Client) getLogger() Logger {
	c.loggerMu.RLock()
	defer c.loggerMu.RUnlock()
	return c.logger
}
