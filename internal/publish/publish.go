// Package publish pushes articulation records to a socket.io endpoint, one
// event per robot, so a running simulator or dashboard can pick up new
// configurations without reading files.
package publish

import (
	"context"
	"crypto/tls"
	"fmt"
	"log/slog"
	"net/url"
	"time"

	jsoniter "github.com/json-iterator/go"
	"github.com/zishang520/engine.io-client-go/transports"
	"github.com/zishang520/engine.io/v2/types"
	"github.com/zishang520/socket.io-client-go/socket"

	"github.com/vk/legcfg/internal/config"
	"github.com/vk/legcfg/internal/ctxlog"
)

// DefaultEvent is the event name records are emitted under.
const DefaultEvent = "articulation_config"

// DefaultTimeout bounds the connection and each acknowledgement wait.
const DefaultTimeout = 10 * time.Second

// Options configures a Publisher.
type Options struct {
	// URL of the socket.io server, e.g. "http://localhost:3000/socket.io/".
	// The path selects the socket.io endpoint path.
	URL       string
	Namespace string
	Event     string
	// AckEvent, when set, is the event the server answers each record with.
	// Publish waits for it before returning.
	AckEvent           string
	Timeout            time.Duration
	InsecureSkipVerify bool
}

func (o Options) withDefaults() Options {
	if o.Namespace == "" {
		o.Namespace = "/"
	}
	if o.Event == "" {
		o.Event = DefaultEvent
	}
	if o.Timeout <= 0 {
		o.Timeout = DefaultTimeout
	}
	return o
}

// emitter is the part of a socket.io client a Publisher uses.
type emitter interface {
	emit(event string, payload any)
	once(event string, fn func(args ...any))
	close()
}

type socketEmitter struct {
	io *socket.Socket
}

func (s socketEmitter) emit(event string, payload any) { s.io.Emit(event, payload) }

func (s socketEmitter) once(event string, fn func(args ...any)) {
	s.io.Once(types.EventName(event), fn)
}

func (s socketEmitter) close() { s.io.Disconnect() }

// Publisher emits robot records over one socket.io connection.
type Publisher struct {
	client emitter
	opts   Options
	logger *slog.Logger
}

// Dial connects to the server and returns a Publisher once the connection is
// established. It fails on connect_error, timeout or context cancellation.
func Dial(ctx context.Context, opts Options) (*Publisher, error) {
	opts = opts.withDefaults()
	logger := ctxlog.FromContext(ctx).With("publisher", "socketio", "url", opts.URL)
	logger.Info("Connecting to socket.io server...")

	parsedURL, err := url.Parse(opts.URL)
	if err != nil {
		return nil, fmt.Errorf("failed to parse URL: %w", err)
	}
	switch parsedURL.Scheme {
	case "http", "https", "ws", "wss":
	default:
		return nil, fmt.Errorf("unsupported URL scheme %q: must be http, https, ws or wss", parsedURL.Scheme)
	}

	sopts := socket.DefaultOptions()
	if parsedURL.Path != "" {
		sopts.SetPath(parsedURL.Path)
	}
	if opts.InsecureSkipVerify {
		logger.Warn("Skipping TLS certificate verification")
		sopts.SetTLSClientConfig(&tls.Config{InsecureSkipVerify: true})
	}
	sopts.SetTransports(types.NewSet(transports.WebSocket))

	connectChan := make(chan error, 1)

	baseURL := fmt.Sprintf("%s://%s", parsedURL.Scheme, parsedURL.Host)
	manager := socket.NewManager(baseURL, sopts)
	io := manager.Socket(opts.Namespace, sopts)

	io.Once(types.EventName("connect"), func(...any) {
		logger.Info("Successfully connected", "sid", io.Id())
		connectChan <- nil
	})
	io.Once(types.EventName("connect_error"), func(errs ...any) {
		err, _ := errs[0].(error)
		if err == nil {
			err = fmt.Errorf("%v", errs[0])
		}
		connectChan <- err
	})

	io.Connect()

	select {
	case err := <-connectChan:
		if err != nil {
			io.Disconnect()
			return nil, fmt.Errorf("socket.io connection failed: %w", err)
		}
	case <-ctx.Done():
		io.Disconnect()
		return nil, fmt.Errorf("context cancelled while waiting for socket.io connection: %w", ctx.Err())
	case <-time.After(opts.Timeout):
		io.Disconnect()
		return nil, fmt.Errorf("timed out after %v waiting for socket.io connection", opts.Timeout)
	}

	return newPublisher(socketEmitter{io: io}, opts, logger), nil
}

func newPublisher(client emitter, opts Options, logger *slog.Logger) *Publisher {
	return &Publisher{client: client, opts: opts.withDefaults(), logger: logger}
}

// Publish emits each record as a JSON object under the configured event,
// in order. With an AckEvent it waits for one acknowledgement per record.
func (p *Publisher) Publish(ctx context.Context, cfgs ...*config.Articulation) error {
	for _, cfg := range cfgs {
		if err := p.publishOne(ctx, cfg); err != nil {
			return fmt.Errorf("robot %q: %w", cfg.Name, err)
		}
	}
	return nil
}

func (p *Publisher) publishOne(ctx context.Context, cfg *config.Articulation) error {
	logger := ctxlog.FromContext(ctxlog.WithRobot(ctxlog.WithLogger(ctx, p.logger), cfg.Name))
	payload, err := toPayload(cfg)
	if err != nil {
		return err
	}

	var acked chan []any
	if p.opts.AckEvent != "" {
		acked = make(chan []any, 1)
		p.client.once(p.opts.AckEvent, func(args ...any) {
			acked <- args
		})
	}

	logger.Debug("Emitting robot record.", "event", p.opts.Event)
	p.client.emit(p.opts.Event, payload)

	if acked == nil {
		return nil
	}

	timer := time.NewTimer(p.opts.Timeout)
	defer timer.Stop()
	select {
	case args := <-acked:
		logger.Info("Robot record acknowledged.", "event", p.opts.AckEvent, "args", len(args))
		return nil
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return fmt.Errorf("timed out after %v waiting for event '%s'", p.opts.Timeout, p.opts.AckEvent)
	}
}

// toPayload converts the record into plain JSON values so every socket.io
// server sees the same field names as the json output format.
func toPayload(cfg *config.Articulation) (map[string]any, error) {
	data, err := jsoniter.Marshal(cfg)
	if err != nil {
		return nil, fmt.Errorf("failed to encode record: %w", err)
	}
	var payload map[string]any
	if err := jsoniter.Unmarshal(data, &payload); err != nil {
		return nil, fmt.Errorf("failed to encode record: %w", err)
	}
	return payload, nil
}

// Close disconnects from the server.
func (p *Publisher) Close() {
	p.logger.Debug("Closing socket.io connection.")
	p.client.close()
}
