package wire

import (
	"context"
	"sync"
	"time"

	uuid "github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"github.com/aptpod/viewmeasure-go/errors"
	"github.com/aptpod/viewmeasure-go/internal/ch"
	"github.com/aptpod/viewmeasure-go/log"
	"github.com/aptpod/viewmeasure-go/message"
)

// ServerConnは、プロバイダー側のコネクションです。
type ServerConn struct {
	transport EncodingTransport

	ctx    context.Context
	cancel context.CancelFunc
	eg     *errgroup.Group

	requestCh chan message.Request
	lastRead  chan struct{}

	logger log.Logger

	closeOnce sync.Once

	protocolVersion string
	sessionID       uuid.UUID
	capability      string
	accessToken     string
	readTimeout     time.Duration
}

// ServerConnConfigは、プロバイダー側コネクションの設定です。
type ServerConnConfig struct {
	// Transportはトランスポートです。
	Transport EncodingTransport

	// Loggerはロガーです。
	Logger log.Logger

	// ProtocolVersionはサポートするプロトコルのバージョンです。
	// 空の場合は ProtocolVersion を使用します。
	ProtocolVersion string

	// Capabilitiesは、提供する機能の名称の一覧です。
	// 接続要求の機能名がこの一覧に含まれない場合、接続を拒否します。
	Capabilities []string

	// Authenticateは、アクセストークンを検証します。
	// nilの場合は検証しません。
	Authenticate func(ctx context.Context, accessToken string) error

	// ReadTimeoutは、メッセージを受信しないまま経過した場合に切断するまでの時間です。
	//
	// 0の場合は、接続要求のPing間隔とPingタイムアウトの合計を使用します。
	ReadTimeout time.Duration
}

// Acceptは、接続要求を受け付けServerConnを返却します。
//
// 接続要求が不正な場合は、失敗を表すConnectResponseを送信してからエラーを返却します。
func Accept(ctx context.Context, c *ServerConnConfig) (*ServerConn, error) {
	if c.Logger == nil {
		c.Logger = log.NewNop()
	}
	if c.ProtocolVersion == "" {
		c.ProtocolVersion = ProtocolVersion
	}

	req, err := readConnectRequest(ctx, c.Transport)
	if err != nil {
		return nil, err
	}

	reject := func(code message.ResultCode, resultString string, cause error) error {
		if err := c.Transport.Write(&message.ConnectResponse{
			RequestID:       req.RequestID,
			ProtocolVersion: c.ProtocolVersion,
			ResultCode:      code,
			ResultString:    resultString,
		}); err != nil {
			c.Logger.Warnf(ctx, "failed to write connect response: %v", err)
		}
		return errors.Errorf("%s: %w", resultString, cause)
	}

	if !isAcceptableProtocolVersion(req.ProtocolVersion) {
		return nil, reject(message.ResultCodeIncompatibleVersion, "incompatible protocol version "+req.ProtocolVersion, ErrUnsupportedProtocolVersion)
	}
	if !containsCapability(c.Capabilities, req.Capability) {
		return nil, reject(message.ResultCodeCapabilityNotFound, "capability not found: "+req.Capability, ErrCapabilityNotFound)
	}
	if c.Authenticate != nil {
		if err := c.Authenticate(ctx, req.AccessToken); err != nil {
			c.Logger.Infof(ctx, "authentication failed session_id:%s: %v", req.SessionID, err)
			return nil, reject(message.ResultCodeAuthFailed, "authentication failed", ErrUnauthorized)
		}
	}

	if err := c.Transport.Write(&message.ConnectResponse{
		RequestID:       req.RequestID,
		ProtocolVersion: c.ProtocolVersion,
		ResultCode:      message.ResultCodeSucceeded,
		ResultString:    "OK",
	}); err != nil {
		return nil, err
	}

	readTimeout := c.ReadTimeout
	if readTimeout == 0 && req.PingInterval > 0 {
		readTimeout = req.PingInterval + req.PingTimeout
	}

	cctx, cancel := context.WithCancel(context.Background())
	eg, cctx := errgroup.WithContext(cctx)
	conn := &ServerConn{
		transport:       c.Transport,
		ctx:             cctx,
		cancel:          cancel,
		eg:              eg,
		requestCh:       make(chan message.Request, 64),
		lastRead:        make(chan struct{}, 1),
		logger:          c.Logger,
		protocolVersion: c.ProtocolVersion,
		sessionID:       req.SessionID,
		capability:      req.Capability,
		accessToken:     req.AccessToken,
		readTimeout:     readTimeout,
	}
	eg.Go(conn.readLoop)
	if conn.readTimeout > 0 {
		eg.Go(conn.readTimeoutLoop)
	}
	go func() {
		if err := eg.Wait(); err != nil && !isClosedErr(err) {
			conn.logger.Warnf(conn.ctx, "server connection stopped: %v", err)
		}
		conn.Close()
	}()
	return conn, nil
}

func readConnectRequest(ctx context.Context, tr EncodingTransport) (*message.ConnectRequest, error) {
	type result struct {
		msg message.Message
		err error
	}
	resCh := make(chan result, 1)
	go func() {
		msg, err := tr.Read()
		resCh <- result{msg: msg, err: err}
	}()

	var res result
	select {
	case <-ctx.Done():
		// 読み込み中のゴルーチンを終了させるためにトランスポートを閉じます。
		tr.Close()
		return nil, ctx.Err()
	case res = <-resCh:
	}
	if res.err != nil {
		return nil, res.err
	}
	req, ok := res.msg.(*message.ConnectRequest)
	if !ok {
		return nil, errors.Errorf("unexpected message %T: %w", res.msg, ErrInvalidConnectRequest)
	}
	return req, nil
}

func containsCapability(capabilities []string, name string) bool {
	if len(capabilities) == 0 {
		return true
	}
	for _, v := range capabilities {
		if v == name {
			return true
		}
	}
	return false
}

func (c *ServerConn) readLoop() error {
	defer close(c.requestCh)
	defer c.Close()
	for {
		msg, err := c.transport.Read()
		if err != nil {
			if c.ctx.Err() != nil || isClosedErr(err) {
				return nil
			}
			return err
		}
		select {
		case c.lastRead <- struct{}{}:
		default:
		}

		switch m := msg.(type) {
		case *message.Ping:
			if err := c.transport.Write(&message.Pong{RequestID: m.RequestID}); err != nil {
				if isClosedErr(err) {
					return nil
				}
				return err
			}
		case *message.Disconnect:
			c.logger.Infof(c.ctx, "received disconnect session_id:%s result_code:%d", c.sessionID, m.ResultCode)
			return nil
		case *message.MeasureRequest, *message.MeasureInWindowRequest:
			select {
			case c.requestCh <- m.(message.Request):
			case <-c.ctx.Done():
				return nil
			}
		default:
			c.logger.Warnf(c.ctx, "unexpected message %T", msg)
		}
	}
}

func (c *ServerConn) readTimeoutLoop() error {
	timer := time.NewTimer(c.readTimeout)
	defer timer.Stop()
	for {
		select {
		case <-c.ctx.Done():
			return nil
		case <-c.lastRead:
			if !timer.Stop() {
				<-timer.C
			}
			timer.Reset(c.readTimeout)
		case <-timer.C:
			if err := c.transport.Write(&message.Disconnect{
				ResultCode:   message.ResultCodePingTimeout,
				ResultString: "read timeout",
			}); err != nil && !isClosedErr(err) {
				c.logger.Warnf(c.ctx, "failed to write disconnect: %v", err)
			}
			c.Close()
			return errors.Errorf("no message for %v: %w", c.readTimeout, ErrConnTimeout)
		}
	}
}

// ReceiveRequestは、計測要求を受信します。
//
// 返却される要求は *message.MeasureRequest または *message.MeasureInWindowRequest です。
func (c *ServerConn) ReceiveRequest(ctx context.Context) (message.Request, error) {
	msg, ok := ch.ReadOrDoneOne(ctx, c.requestCh)
	if !ok {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		return nil, errors.ErrConnectionClosed
	}
	return msg, nil
}

// SendMeasureResponseは、MeasureResponseを送信します。
func (c *ServerConn) SendMeasureResponse(ctx context.Context, msg *message.MeasureResponse) error {
	return c.transport.Write(msg)
}

// SendMeasureInWindowResponseは、MeasureInWindowResponseを送信します。
func (c *ServerConn) SendMeasureInWindowResponse(ctx context.Context, msg *message.MeasureInWindowResponse) error {
	return c.transport.Write(msg)
}

// SendMeasureAbandonedは、MeasureAbandonedを送信します。
func (c *ServerConn) SendMeasureAbandoned(ctx context.Context, msg *message.MeasureAbandoned) error {
	return c.transport.Write(msg)
}

// SendDisconnectは、Disconnectを送信します。
func (c *ServerConn) SendDisconnect(ctx context.Context, msg *message.Disconnect) error {
	return c.transport.Write(msg)
}

// Closedは、ServerConnがクローズしているかどうか確認するためのチャンネルを返却します。
func (c *ServerConn) Closed() <-chan struct{} {
	return c.ctx.Done()
}

// SessionIDは、呼び出し側のセッションIDを返却します。
func (c *ServerConn) SessionID() uuid.UUID {
	return c.sessionID
}

// Capabilityは、呼び出し側が要求した機能の名称を返却します。
func (c *ServerConn) Capability() string {
	return c.capability
}

// AccessTokenは、呼び出し側が送信したアクセストークンを返却します。
func (c *ServerConn) AccessToken() string {
	return c.accessToken
}

// ReadTimeoutは、適用されている読み込みタイムアウトを返却します。
func (c *ServerConn) ReadTimeout() time.Duration {
	return c.readTimeout
}

// Closeは、コネクションを閉じます。
func (c *ServerConn) Close() error {
	var err error
	c.closeOnce.Do(func() {
		c.cancel()
		if cerr := c.transport.Close(); cerr != nil && !isClosedErr(cerr) {
			err = cerr
		}
	})
	return err
}

// Waitは、コネクションの内部ループがすべて終了するまで待機します。
//
// 読み込みタイムアウトにより切断した場合は ErrConnTimeout を返却します。
func (c *ServerConn) Wait() error {
	return c.eg.Wait()
}
