package wire

import (
	"context"
	"net"
	"sync"
	"time"

	uuid "github.com/google/uuid"

	"github.com/aptpod/viewmeasure-go/errors"
	"github.com/aptpod/viewmeasure-go/log"
	"github.com/aptpod/viewmeasure-go/message"
	"github.com/aptpod/viewmeasure-go/transport"
)

var (
	defaultPingInterval = 10 * time.Second
	defaultPingTimeout  = time.Second
)

// ClientConnは、呼び出し側のコネクションです。
//
// 計測要求ごとに一度だけ呼び出されるハンドラーを保持し、応答を受信した時点でハンドラーを呼び出します。
// ハンドラーは要求ごとに受信処理とは別のゴルーチンで呼び出されます。
// ハンドラーの処理時間は、Pingの応答や他の要求の応答に影響しません。
type ClientConn struct {
	transport EncodingTransport

	idGenerator IDGenerator

	ctx    context.Context
	cancel context.CancelFunc

	msgRequestCh    chan message.Request
	msgPingCh       chan *message.Ping
	msgDisconnectCh chan *message.Disconnect

	mu        sync.Mutex
	closed    bool
	pending   map[uint32]*pendingReply
	callbacks sync.WaitGroup

	logger log.Logger

	protocolVersion string
	sessionID       uuid.UUID
	capability      string
	pingInterval    time.Duration
	pingTimeout     time.Duration
}

// pendingReplyは、応答待ちの要求に対する一度きりのハンドラーです。
type pendingReply struct {
	onReply   func(message.Request)
	onAbandon func(message.AbandonReason)

	// inlineがtrueの場合、ハンドラーを受信ループ上で直接呼び出します。
	// ブロックしないハンドラーにのみ使用します。
	inline bool
}

func (c *ClientConn) deliver(reply *pendingReply, f func()) {
	if reply.inline {
		f()
		return
	}
	c.callbacks.Add(1)
	go func() {
		defer c.callbacks.Done()
		f()
	}()
}

// ClientConnConfigは、クライアントコネクションの設定です。
type ClientConnConfig struct {
	// Transportはトランスポートです。
	Transport EncodingTransport

	// Loggerはロガーです。
	Logger log.Logger

	// ProtocolVersionはサポートするプロトコルのバージョンです。
	// 空の場合は ProtocolVersion を使用します。
	ProtocolVersion string

	// SessionIDは、呼び出し側のセッションIDです。
	// uuid.Nil の場合は新たに生成します。
	SessionID uuid.UUID

	// Capabilityは、利用したい機能の名称です。
	Capability string

	// AccessTokenは、接続時に使用するアクセストークンです。
	AccessToken string

	// PingIntervalは、Pingメッセージを送信する間隔です。
	PingInterval time.Duration

	// PingTimeoutは、Ping送信後Pongが返却されるまでのタイムアウトです。
	//
	// タイムアウトした場合、コネクションを切断します。
	PingTimeout time.Duration
}

// Connectは、接続を行いClientConnを返却します。
func Connect(c *ClientConnConfig) (*ClientConn, error) {
	if c.Logger == nil {
		c.Logger = log.NewNop()
	}
	if c.ProtocolVersion == "" {
		c.ProtocolVersion = ProtocolVersion
	}
	if c.SessionID == uuid.Nil {
		c.SessionID = uuid.New()
	}
	pingInterval := c.PingInterval
	if pingInterval == 0 {
		pingInterval = defaultPingInterval
	}
	pingTimeout := c.PingTimeout
	if pingTimeout == 0 {
		pingTimeout = defaultPingTimeout
	}

	ctx, cancel := context.WithCancel(context.Background())
	conn := &ClientConn{
		transport:       c.Transport,
		idGenerator:     newRequestIDGeneratorForClient(),
		ctx:             ctx,
		cancel:          cancel,
		msgRequestCh:    make(chan message.Request, 8),
		msgPingCh:       make(chan *message.Ping, 8),
		msgDisconnectCh: make(chan *message.Disconnect, 8),
		pending:         make(map[uint32]*pendingReply),
		logger:          c.Logger,
		protocolVersion: c.ProtocolVersion,
		sessionID:       c.SessionID,
		capability:      c.Capability,
		pingInterval:    pingInterval,
		pingTimeout:     pingTimeout,
	}

	msg, err := conn.waitForConnected(c.AccessToken)
	if err != nil {
		cancel()
		if !errors.Is(err, transport.ErrAlreadyClosed) {
			conn.logger.Errorf(ctx, "occurred in waitForConnected: %+v", err)
		}
		return nil, err
	}
	switch msg.ResultCode {
	case message.ResultCodeSucceeded:
		if !isAcceptableProtocolVersion(msg.ProtocolVersion) {
			cancel()
			return nil, errors.Errorf("%w: provider returned %s", ErrUnsupportedProtocolVersion, msg.ProtocolVersion)
		}
		conn.protocolVersion = msg.ProtocolVersion
		go conn.run()
		return conn, nil
	case message.ResultCodeAuthFailed:
		cancel()
		return nil, ErrUnauthorized
	case message.ResultCodeCapabilityNotFound:
		cancel()
		return nil, errors.Errorf("%s: %w", msg.ResultString, ErrCapabilityNotFound)
	default:
		cancel()
		return nil, errors.FailedMessageError{
			ResultCode:      msg.ResultCode,
			ResultString:    msg.ResultString,
			ReceivedMessage: msg,
		}
	}
}

// Closedは、ClientConnがクローズしているかどうか確認するためのチャンネルを返却します。
//
// ClientConnがクローズしている場合、チャンネルは閉じられています。
func (c *ClientConn) Closed() <-chan struct{} {
	return c.ctx.Done()
}

// ProtocolVersion は、プロバイダーが返したプロトコルバージョンを返却します。
func (c *ClientConn) ProtocolVersion() string {
	return c.protocolVersion
}

// SessionIDは、このコネクションのセッションIDを返却します。
func (c *ClientConn) SessionID() uuid.UUID {
	return c.sessionID
}

// Capabilityは、接続時に要求した機能の名称を返却します。
func (c *ClientConn) Capability() string {
	return c.capability
}

// PendingCountは、応答を待っている要求の数を返却します。
func (c *ClientConn) PendingCount() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.pending)
}

func (c *ClientConn) run() {
	var wg sync.WaitGroup

	wg.Add(1)
	go func() {
		defer wg.Done()
		c.readLoop()
	}()

	wg.Add(1)
	go func() {
		defer wg.Done()
		c.keepAliveLoop()
	}()

	wg.Wait()
}

func isClosedErr(err error) bool {
	return errors.Is(err, transport.ErrAlreadyClosed) ||
		errors.Is(err, transport.EOF) ||
		errors.Is(err, errors.ErrConnectionClosed) ||
		errors.Is(err, net.ErrClosed)
}

func (c *ClientConn) readLoop() {
	var wg sync.WaitGroup
	defer wg.Wait()
	defer close(c.msgDisconnectCh)
	defer close(c.msgPingCh)
	defer close(c.msgRequestCh)
	// 相手側からの切断を検知した場合もコネクションを閉じます。
	defer c.close()

	wg.Add(3)
	go func() {
		defer wg.Done()
		c.readRequestLoop()
	}()
	go func() {
		defer wg.Done()
		c.readPingLoop()
	}()
	go func() {
		defer wg.Done()
		c.readDisconnectLoop()
	}()

	for {
		msg, err := c.transport.Read()
		if err != nil {
			if !isClosedErr(err) && c.ctx.Err() == nil {
				c.logger.Errorf(c.ctx, "occurred in transport.Read: %+v", err)
			}
			return
		}
		switch m := msg.(type) {
		case *message.Ping:
			c.msgPingCh <- m
		case *message.Disconnect:
			c.msgDisconnectCh <- m
		case message.Request:
			c.msgRequestCh <- m
		default:
			c.logger.Warnf(c.ctx, "unexpected message %T", msg)
		}
	}
}

func (c *ClientConn) readPingLoop() {
	for msg := range c.msgPingCh {
		if err := c.transport.Write(&message.Pong{
			RequestID: msg.RequestID,
		}); err != nil {
			if isClosedErr(err) {
				continue
			}
			c.logger.Errorf(c.ctx, "%+v", err)
		}
	}
}

func (c *ClientConn) readDisconnectLoop() {
	for msg := range c.msgDisconnectCh {
		c.logger.Infof(c.ctx, "received disconnect result_code:%d result_string:%s", msg.ResultCode, msg.ResultString)
		if err := c.transport.Close(); err != nil {
			if isClosedErr(err) {
				continue
			}
			c.logger.Errorf(c.ctx, "%+v", err)
		}
	}
}

func (c *ClientConn) readRequestLoop() {
	for msg := range c.msgRequestCh {
		msg := msg
		c.mu.Lock()
		reply, ok := c.pending[msg.GetRequestID()]
		if !ok {
			c.mu.Unlock()
			c.logger.Debugf(c.ctx, "no pending request for request_id:%d", msg.GetRequestID())
			continue
		}
		delete(c.pending, msg.GetRequestID())

		if abandoned, ok := msg.(*message.MeasureAbandoned); ok {
			c.logger.Debugf(c.ctx, "request_id:%d abandoned: %s", abandoned.RequestID, abandoned.Reason)
			if reply.onAbandon != nil {
				c.deliver(reply, func() { reply.onAbandon(abandoned.Reason) })
			}
			c.mu.Unlock()
			continue
		}
		c.deliver(reply, func() { reply.onReply(msg) })
		c.mu.Unlock()
	}
}

func (c *ClientConn) keepAliveLoop() {
	ticker := time.NewTicker(c.pingInterval)
	defer ticker.Stop()
	for {
		if _, err := c.sendPing(); err != nil {
			select {
			case <-c.ctx.Done():
				// already called close method
				return
			default:
			}
			c.logger.Warnf(c.ctx, "Ping timeout, disconnect :%v", err)
			c.close()
			return
		}
		select {
		case <-ticker.C:
		case <-c.ctx.Done():
			return
		}
	}
}

func (c *ClientConn) sendPing() (*message.Pong, error) {
	ctx, cancel := context.WithTimeout(c.ctx, c.pingTimeout)
	defer cancel()
	resp, err := c.sendRequest(ctx, &message.Ping{
		RequestID: message.RequestID(c.idGenerator.Next()),
	})
	if err != nil {
		return nil, err
	}
	pong, ok := resp.(*message.Pong)
	if !ok {
		return nil, errors.Errorf("unexpected reply %T: %w", resp, errors.ErrMalformedMessage)
	}
	return pong, nil
}

// Closeは、クライアント接続を閉じます。
//
// 応答待ちの要求はすべて破棄され、 onReply は呼び出されません。
// 受信済みの応答のハンドラーは、Close後に呼び出されることがあります。
func (c *ClientConn) Close() error {
	return c.close()
}

func (c *ClientConn) close() error {
	c.cancel()
	err := c.transport.Close()
	c.dropPending()
	if err != nil && isClosedErr(err) {
		return nil
	}
	return err
}

func (c *ClientConn) dropPending() {
	c.mu.Lock()
	defer c.mu.Unlock()
	for _, reply := range c.pending {
		reply := reply
		if reply.onAbandon != nil {
			c.deliver(reply, func() { reply.onAbandon(message.AbandonReasonProviderShutdown) })
		}
	}
	c.pending = make(map[uint32]*pendingReply)
	c.closed = true
}

// WaitCallbacksは、Close後に呼び出し中のハンドラーがすべて終了するまで待機します。
//
// ハンドラーの中から呼び出すと終了しません。
func (c *ClientConn) WaitCallbacks() {
	c.callbacks.Wait()
}

// SendDisconnectは、Disconnectメッセージを送信します。
func (c *ClientConn) SendDisconnect(ctx context.Context, msg *message.Disconnect) error {
	return c.transport.Write(msg)
}

// SendMeasureRequestは、ローカル座標系の計測要求を送信します。
//
// onResponse は応答を受信した場合に一度だけ呼び出されます。
// 要求が破棄された場合やコネクションが閉じられた場合は onResponse は呼び出されず、 onAbandon が nil でなければ onAbandon が呼び出されます。
func (c *ClientConn) SendMeasureRequest(ctx context.Context, handle message.ViewHandle, onResponse func(*message.MeasureResponse), onAbandon func(message.AbandonReason)) error {
	req := &message.MeasureRequest{
		RequestID: message.RequestID(c.idGenerator.Next()),
		Handle:    handle,
	}
	return c.sendRequestAsync(req, &pendingReply{
		onReply: func(msg message.Request) {
			res, ok := msg.(*message.MeasureResponse)
			if !ok {
				c.logger.Warnf(c.ctx, "unexpected reply %T for %s", msg, handle)
				if onAbandon != nil {
					onAbandon(message.AbandonReasonInvalidGeometry)
				}
				return
			}
			onResponse(res)
		},
		onAbandon: onAbandon,
	})
}

// SendMeasureInWindowRequestは、ウィンドウ座標系の計測要求を送信します。
//
// ハンドラーの呼び出し規則は SendMeasureRequest と同様です。
func (c *ClientConn) SendMeasureInWindowRequest(ctx context.Context, handle message.ViewHandle, onResponse func(*message.MeasureInWindowResponse), onAbandon func(message.AbandonReason)) error {
	req := &message.MeasureInWindowRequest{
		RequestID: message.RequestID(c.idGenerator.Next()),
		Handle:    handle,
	}
	return c.sendRequestAsync(req, &pendingReply{
		onReply: func(msg message.Request) {
			res, ok := msg.(*message.MeasureInWindowResponse)
			if !ok {
				c.logger.Warnf(c.ctx, "unexpected reply %T for %s", msg, handle)
				if onAbandon != nil {
					onAbandon(message.AbandonReasonInvalidGeometry)
				}
				return
			}
			onResponse(res)
		},
		onAbandon: onAbandon,
	})
}

func (c *ClientConn) register(id uint32, reply *pendingReply) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.closed {
		return errors.ErrConnectionClosed
	}
	c.pending[id] = reply
	return nil
}

func (c *ClientConn) unregister(id uint32) {
	c.mu.Lock()
	defer c.mu.Unlock()
	delete(c.pending, id)
}

func (c *ClientConn) sendRequestAsync(req message.Request, reply *pendingReply) error {
	id := req.GetRequestID()
	if err := c.register(id, reply); err != nil {
		return err
	}
	if err := c.transport.Write(req); err != nil {
		c.unregister(id)
		return err
	}
	return nil
}

func (c *ClientConn) sendRequest(ctx context.Context, req message.Request) (message.Request, error) {
	replyCh := make(chan message.Request, 1)
	abandonCh := make(chan message.AbandonReason, 1)
	err := c.sendRequestAsync(req, &pendingReply{
		onReply:   func(msg message.Request) { replyCh <- msg },
		onAbandon: func(r message.AbandonReason) { abandonCh <- r },
		inline:    true,
	})
	if err != nil {
		return nil, err
	}
	select {
	case <-ctx.Done():
		c.unregister(req.GetRequestID())
		return nil, ctx.Err()
	case <-c.ctx.Done():
		return nil, errors.ErrConnectionClosed
	case r := <-abandonCh:
		return nil, errors.Errorf("request abandoned %s: %w", r, errors.ErrConnectionClosed)
	case reply := <-replyCh:
		return reply, nil
	}
}

func (c *ClientConn) waitForConnected(accessToken string) (*message.ConnectResponse, error) {
	if err := c.transport.Write(&message.ConnectRequest{
		RequestID:       message.RequestID(c.idGenerator.Next()),
		ProtocolVersion: c.protocolVersion,
		SessionID:       c.sessionID,
		Capability:      c.capability,
		PingInterval:    c.pingInterval,
		PingTimeout:     c.pingTimeout,
		AccessToken:     accessToken,
	}); err != nil {
		return nil, err
	}
	msg, err := c.transport.Read()
	if err != nil {
		return nil, err
	}
	switch m := msg.(type) {
	case *message.ConnectResponse:
		return m, nil
	case *message.Disconnect:
		return nil, errors.Errorf("disconnected %s: %w", m.ResultString, errors.ErrConnectionClosed)
	default:
		return nil, errors.Errorf("invalid message %T: %w", msg, errors.ErrMalformedMessage)
	}
}
