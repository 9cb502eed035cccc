package streamerbot

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"

	"github.com/osse101/ChatDispatch_Go/internal/domain"
	"github.com/osse101/ChatDispatch_Go/internal/logger"
)

// ChatHandler receives chat messages pushed by Streamer.bot
type ChatHandler func(ctx context.Context, msg domain.ChatMessage)

// Client manages the WebSocket connection to Streamer.bot
type Client struct {
	url      string
	password string
	onChat   ChatHandler
	now      func() time.Time

	conn     *websocket.Conn
	mu       sync.RWMutex
	writeMu  sync.Mutex
	shutdown chan struct{}
	stopOnce sync.Once
	wg       sync.WaitGroup

	connected bool
	dormant   bool

	// wakeup pulls the connect loop out of dormant mode
	wakeup chan struct{}
}

// NewClient creates a new Streamer.bot WebSocket client. A nil onChat
// disables the chat event subscription.
func NewClient(url, password string, onChat ChatHandler) *Client {
	if url == "" {
		url = DefaultURL
	}
	return &Client{
		url:      url,
		password: password,
		onChat:   onChat,
		now:      time.Now,
		shutdown: make(chan struct{}),
		wakeup:   make(chan struct{}, 1),
	}
}

// Start begins the WebSocket connection with auto-reconnect
func (c *Client) Start(ctx context.Context) {
	c.wg.Add(1)
	go c.connectLoop(ctx)
}

// Stop closes the connection and waits for the connect loop to exit
func (c *Client) Stop() {
	c.stopOnce.Do(func() {
		close(c.shutdown)
		c.mu.Lock()
		if c.conn != nil {
			_ = c.conn.Close()
		}
		c.mu.Unlock()
	})
	c.wg.Wait()
}

// IsConnected returns whether the client is currently connected
func (c *Client) IsConnected() bool {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.connected
}

// DoAction asks Streamer.bot to run the named action with args
func (c *Client) DoAction(ctx context.Context, name string, args map[string]string) error {
	c.mu.RLock()
	isDormant := c.dormant
	c.mu.RUnlock()

	if isDormant {
		logger.FromContext(ctx).Debug(LogMsgDormantRetry)
		select {
		case c.wakeup <- struct{}{}:
		default:
		}
		return ErrDormant
	}

	if !c.IsConnected() {
		return ErrNotConnected
	}

	req := request{
		Request: RequestDoAction,
		ID:      uuid.NewString(),
		Action:  &action{Name: name},
		Args:    args,
	}

	logger.FromContext(ctx).Debug(LogMsgSendingAction, "action", name, "request_id", req.ID)

	if err := c.write(req); err != nil {
		logger.FromContext(ctx).Warn(LogMsgActionFailed, "action", name, "error", err)
		return err
	}
	return nil
}

func (c *Client) connectLoop(ctx context.Context) {
	defer c.wg.Done()

	backoff := DefaultReconnectDelay
	failures := 0

	for {
		select {
		case <-c.shutdown:
			slog.Info(LogMsgClientStopped)
			return
		case <-ctx.Done():
			slog.Info(LogMsgClientStopped)
			return
		default:
		}

		connected, err := c.connect(ctx)
		c.setConnected(false)
		if connected {
			if failures > 0 {
				slog.Info(LogMsgRestored, "after_failures", failures)
			}
			backoff = DefaultReconnectDelay
			failures = 0
		}
		if err == nil {
			continue
		}

		if !connected {
			failures++
		}
		if failures >= MaxConsecutiveFailures {
			if stop := c.sleepUntilWoken(ctx, failures); stop {
				return
			}
			backoff = DefaultReconnectDelay
			failures = 0
			continue
		}

		if failures <= 3 || failures%100 == 0 {
			slog.Warn(LogMsgReconnecting, "error", err, "backoff", backoff, "consecutive_failures", failures)
		}

		select {
		case <-time.After(backoff):
			backoff = time.Duration(float64(backoff) * ReconnectMultiplier)
			if backoff > MaxReconnectDelay {
				backoff = MaxReconnectDelay
			}
		case <-c.shutdown:
			return
		case <-ctx.Done():
			return
		}
	}
}

// sleepUntilWoken parks the loop until an outbound action asks for a retry.
// It reports true when the client is shutting down instead.
func (c *Client) sleepUntilWoken(ctx context.Context, failures int) bool {
	c.mu.Lock()
	c.dormant = true
	c.mu.Unlock()

	slog.Warn(LogMsgGivingUp, "consecutive_failures", failures, "max_allowed", MaxConsecutiveFailures)

	select {
	case <-c.wakeup:
		slog.Info(LogMsgWaking)
		c.mu.Lock()
		c.dormant = false
		c.mu.Unlock()
		return false
	case <-c.shutdown:
		return true
	case <-ctx.Done():
		return true
	}
}

// connect dials, completes the handshake, then blocks in the read loop.
// connected reports whether the handshake succeeded before err ended it.
func (c *Client) connect(ctx context.Context) (connected bool, err error) {
	slog.Info(LogMsgConnecting, "url", c.url)

	dialer := websocket.Dialer{
		ReadBufferSize:  ReadBufferSize,
		WriteBufferSize: WriteBufferSize,
	}

	conn, resp, err := dialer.DialContext(ctx, c.url, nil)
	if resp != nil && resp.Body != nil {
		_ = resp.Body.Close()
	}
	if err != nil {
		if resp != nil {
			return false, fmt.Errorf(ErrMsgDialFailedStatus, err, resp.Status)
		}
		return false, fmt.Errorf(ErrMsgDialFailed, err)
	}

	c.mu.Lock()
	select {
	case <-c.shutdown:
		c.mu.Unlock()
		_ = conn.Close()
		return false, nil
	default:
	}
	c.conn = conn
	c.mu.Unlock()

	if err := c.handshake(conn); err != nil {
		_ = conn.Close()
		return false, err
	}

	c.setConnected(true)
	slog.Info(LogMsgConnected, "url", c.url)

	return true, c.readLoop(ctx, conn)
}

func (c *Client) handshake(conn *websocket.Conn) error {
	_ = conn.SetReadDeadline(time.Now().Add(HelloTimeout))
	_, raw, err := conn.ReadMessage()
	_ = conn.SetReadDeadline(time.Time{})

	if err != nil {
		slog.Debug(LogMsgNoHello, "error", err)
	} else {
		var hello frame
		if json.Unmarshal(raw, &hello) == nil && hello.Info != nil && hello.Info.Authentication.Challenge != "" {
			slog.Info(LogMsgAuthRequired)
			if err := c.authenticate(conn, *hello.Info); err != nil {
				return fmt.Errorf(ErrMsgAuthFailed, err)
			}
			slog.Info(LogMsgAuthSuccess)
		}
	}

	if c.onChat == nil {
		return nil
	}
	if _, err := c.roundTrip(conn, request{
		Request: RequestSubscribe,
		ID:      uuid.NewString(),
		Events:  chatSubscriptions(),
	}); err != nil {
		return fmt.Errorf(ErrMsgSubscribeFailed, err)
	}
	return nil
}

func (c *Client) authenticate(conn *websocket.Conn, hello helloInfo) error {
	if c.password == "" {
		return ErrNoPassword
	}

	_, err := c.roundTrip(conn, request{
		Request:        RequestAuthenticate,
		ID:             uuid.NewString(),
		Authentication: AuthHash(c.password, hello.Authentication.Salt, hello.Authentication.Challenge),
	})
	return err
}

// roundTrip writes req and reads the next frame as its answer. Only used
// during the handshake, before the read loop owns the connection.
func (c *Client) roundTrip(conn *websocket.Conn, req request) (frame, error) {
	c.writeMu.Lock()
	_ = conn.SetWriteDeadline(time.Now().Add(WriteTimeout))
	err := conn.WriteJSON(req)
	c.writeMu.Unlock()
	if err != nil {
		return frame{}, fmt.Errorf(ErrMsgWriteFailed, req.Request, err)
	}

	var resp frame
	if err := conn.ReadJSON(&resp); err != nil {
		return frame{}, fmt.Errorf(ErrMsgReadFailed, req.Request, err)
	}
	if resp.Status != StatusOK {
		return resp, fmt.Errorf(ErrMsgRequestRejected, req.Request, resp.Error)
	}
	return resp, nil
}

func (c *Client) readLoop(ctx context.Context, conn *websocket.Conn) error {
	for {
		_, raw, err := conn.ReadMessage()
		if err != nil {
			select {
			case <-c.shutdown:
				return nil
			default:
			}
			if websocket.IsCloseError(err, websocket.CloseNormalClosure, websocket.CloseGoingAway) {
				return nil
			}
			slog.Warn(LogMsgReadError, "error", err)
			return err
		}

		var f frame
		if err := json.Unmarshal(raw, &f); err != nil {
			continue
		}

		if f.Status == StatusError {
			slog.Warn(LogMsgRequestRejected, "request_id", f.ID, "error", f.Error)
			continue
		}

		if c.onChat == nil {
			continue
		}
		msg, ok, err := decodeChat(f, c.now())
		if err != nil {
			slog.Debug(LogMsgChatIgnored, "error", err)
			continue
		}
		if ok {
			c.onChat(ctx, msg)
		}
	}
}

func (c *Client) write(req request) error {
	c.mu.RLock()
	conn := c.conn
	c.mu.RUnlock()

	if conn == nil {
		return ErrNotConnected
	}

	c.writeMu.Lock()
	defer c.writeMu.Unlock()
	_ = conn.SetWriteDeadline(time.Now().Add(WriteTimeout))
	if err := conn.WriteJSON(req); err != nil {
		return fmt.Errorf(ErrMsgWriteFailed, req.Request, err)
	}
	return nil
}

func (c *Client) setConnected(connected bool) {
	c.mu.Lock()
	c.connected = connected
	c.mu.Unlock()
}
