package measure

import (
	"context"
	"sync"
	"time"

	uuid "github.com/google/uuid"

	"github.com/aptpod/viewmeasure-go/encoding"
	"github.com/aptpod/viewmeasure-go/errors"
	"github.com/aptpod/viewmeasure-go/internal/dispatch"
	"github.com/aptpod/viewmeasure-go/internal/retry"
	"github.com/aptpod/viewmeasure-go/log"
	"github.com/aptpod/viewmeasure-go/message"
	"github.com/aptpod/viewmeasure-go/transport"
	"github.com/aptpod/viewmeasure-go/wire"
)

var (
	defaultPingTimeout  = time.Second
	defaultPingInterval = 10 * time.Second

	// ErrUnsupportedTransportは、サポートしていないトランスポートが指定された場合のエラーです。
	ErrUnsupportedTransport = errors.New("unsupported transport")
)

func errUnsupportedTransport(name TransportName) error {
	return errors.Errorf("%q: %w", name, ErrUnsupportedTransport)
}

// Token は 認証トークンです。
type Token string

// TokenSource は認証トークン取得するためのインターフェースです。
type TokenSource interface {
	// Tokenはトークンを取得します。
	//
	// 接続する度に、このメソッドをコールしトークンを取得します。
	Token() (Token, error)
}

// TokenSourceFunc は認証トークン取得するための関数です。
type TokenSourceFunc func() (Token, error)

// Tokenはトークンを取得します。
func (f TokenSourceFunc) Token() (Token, error) {
	return f()
}

// StaticTokenSource は静的に認証トークンを指定するTokenSourceです。
type StaticTokenSource struct {
	token string
}

// NewStaticTokenSource は StaticTokenSource を生成します。
func NewStaticTokenSource(static string) *StaticTokenSource {
	return &StaticTokenSource{
		token: static,
	}
}

// Tokenはトークンを取得します。
//
// 常に同じトークンを返却します。
func (n *StaticTokenSource) Token() (Token, error) {
	return Token(n.token), nil
}

var _ AbandonableProvider = (*Conn)(nil)

// Connは、リモートのProviderへのコネクションです。
//
// Connは AbandonableProvider を実装しているため、 Registry に登録して Service から利用できます。
type Conn struct {
	wireConn   *wire.ClientConn
	dispatcher *dispatch.Dispatcher
	logger     log.Logger
	closeOnce  sync.Once
}

// Connectは、リモートのProviderへ接続しコネクションを返却します。
//
// addressはサーバーがリスンするホスト:ポート（例 127.0.0.1:8080）を指定します。
func Connect(address string, transportName TransportName, opts ...ConnOption) (*Conn, error) {
	conf := defaultConnConfig
	for _, o := range opts {
		o(&conf)
	}
	conf.Address = address
	conf.Transport = transportName

	return ConnectWithConfig(context.Background(), &conf)
}

// ConnectWithConfigは、ConnConfigを指定してリモートのProviderへ接続します。
//
// トランスポートの接続に失敗した場合は MaxDialAttempt 回まで再試行します。
func ConnectWithConfig(ctx context.Context, c *ConnConfig) (*Conn, error) {
	if c.Logger == nil {
		c.Logger = log.NewNop()
	}
	if c.Capability == "" {
		c.Capability = ServiceName
	}
	if c.PingInterval == 0 {
		c.PingInterval = defaultPingInterval
	}
	if c.PingTimeout == 0 {
		c.PingTimeout = defaultPingTimeout
	}

	wireConn, err := connectWire(ctx, c)
	if err != nil {
		return nil, err
	}
	conn := &Conn{
		wireConn:   wireConn,
		dispatcher: dispatch.New(),
		logger:     c.Logger,
	}
	go conn.dispatcher.Run()
	c.Logger.Infof(ctx, "connected to %s session_id:%s", c.Address, wireConn.SessionID())
	return conn, nil
}

func connectWire(ctx context.Context, c *ConnConfig) (*wire.ClientConn, error) {
	d, err := c.dialer()
	if err != nil {
		return nil, err
	}

	var tr transport.Transport
	err = retry.Retry{MaxAttempt: c.MaxDialAttempt}.Do(ctx, func(attempt int) error {
		var err error
		tr, err = d.Dial(c.dialConfig())
		if err != nil {
			c.Logger.Warnf(ctx, "failed to dial %s attempt:%d: %v", c.Address, attempt+1, err)
		}
		return err
	})
	if err != nil {
		return nil, errors.Errorf("dial %s: %w", c.Address, err)
	}

	var token Token
	if c.TokenSource != nil {
		token, err = c.TokenSource.Token()
		if err != nil {
			tr.Close()
			return nil, errors.Errorf("failed retrieving token: %w", err)
		}
	}

	etr := encoding.NewTransport(&encoding.TransportConfig{
		Transport:      tr,
		Encoding:       resolveEncoding(tr.NegotiationParams().Encoding),
		MaxMessageSize: c.MaxMessageSize,
	})
	wireConn, err := wire.Connect(&wire.ClientConnConfig{
		Transport:    etr,
		Logger:       c.Logger,
		SessionID:    c.SessionID,
		Capability:   c.Capability,
		AccessToken:  string(token),
		PingInterval: c.PingInterval,
		PingTimeout:  c.PingTimeout,
	})
	if err != nil {
		etr.Close()
		return nil, err
	}
	return wireConn, nil
}

// Measureは、要素をローカル座標系で計測します。
func (c *Conn) Measure(handle ViewHandle, onResult func(LocalGeometry)) {
	c.MeasureWithAbandon(handle, onResult, nil)
}

// MeasureInWindowは、要素をウィンドウ座標系で計測します。
func (c *Conn) MeasureInWindow(handle ViewHandle, onResult func(WindowGeometry)) {
	c.MeasureInWindowWithAbandon(handle, onResult, nil)
}

// MeasureWithAbandonは、破棄通知付きで要素をローカル座標系で計測します。
//
// 要求の送信は内部のゴルーチンで行われるため、呼び出しはすぐに返却されます。
func (c *Conn) MeasureWithAbandon(handle ViewHandle, onResult func(LocalGeometry), onAbandon func(AbandonReason)) {
	onAbandon = abandonOnce(onAbandon)
	c.send(onAbandon, func() error {
		return c.wireConn.SendMeasureRequest(context.Background(), handle, func(res *message.MeasureResponse) {
			if onResult == nil {
				return
			}
			onResult(LocalGeometry{
				X:      res.X,
				Y:      res.Y,
				Width:  res.Width,
				Height: res.Height,
				PageX:  res.PageX,
				PageY:  res.PageY,
			})
		}, onAbandon)
	})
}

// MeasureInWindowWithAbandonは、破棄通知付きで要素をウィンドウ座標系で計測します。
func (c *Conn) MeasureInWindowWithAbandon(handle ViewHandle, onResult func(WindowGeometry), onAbandon func(AbandonReason)) {
	onAbandon = abandonOnce(onAbandon)
	c.send(onAbandon, func() error {
		return c.wireConn.SendMeasureInWindowRequest(context.Background(), handle, func(res *message.MeasureInWindowResponse) {
			if onResult == nil {
				return
			}
			onResult(WindowGeometry{
				X:      res.X,
				Y:      res.Y,
				Width:  res.Width,
				Height: res.Height,
			})
		}, onAbandon)
	})
}

func (c *Conn) send(onAbandon func(AbandonReason), f func() error) {
	ok := c.dispatcher.Add(func() {
		if err := f(); err != nil {
			c.logger.Warnf(context.Background(), "failed to send measure request: %v", err)
			onAbandon(AbandonReasonProviderShutdown)
		}
	})
	if !ok {
		onAbandon(AbandonReasonProviderShutdown)
	}
}

func abandonOnce(f func(AbandonReason)) func(AbandonReason) {
	var once sync.Once
	return func(r AbandonReason) {
		once.Do(func() {
			if f != nil {
				f(r)
			}
		})
	}
}

// SessionIDは、セッションIDを返却します。
func (c *Conn) SessionID() uuid.UUID {
	return c.wireConn.SessionID()
}

// Closedは、コネクションが閉じられた時に閉じられるチャンネルを返却します。
func (c *Conn) Closed() <-chan struct{} {
	return c.wireConn.Closed()
}

// Closeは、コネクションを閉じます。
//
// 送信待ちの要求を送信してから切断します。応答待ちの要求はすべて破棄されます。
func (c *Conn) Close(ctx context.Context) error {
	var err error
	c.closeOnce.Do(func() {
		c.dispatcher.Close()
		select {
		case <-c.dispatcher.Done():
		case <-ctx.Done():
			c.logger.Warnf(ctx, "closing with unsent requests: %v", ctx.Err())
		}
		if serr := c.wireConn.SendDisconnect(ctx, &message.Disconnect{
			ResultCode:   message.ResultCodeNormalClosure,
			ResultString: "NormalClosure",
		}); serr != nil && !errors.Is(serr, transport.ErrAlreadyClosed) {
			c.logger.Warnf(ctx, "failed to send disconnect: %v", serr)
		}
		err = c.wireConn.Close()
		<-c.dispatcher.Done()
	})
	return err
}
