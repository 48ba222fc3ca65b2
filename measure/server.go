package measure

import (
	"context"
	"net/http"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/aptpod/viewmeasure-go/encoding"
	"github.com/aptpod/viewmeasure-go/errors"
	"github.com/aptpod/viewmeasure-go/log"
	"github.com/aptpod/viewmeasure-go/message"
	"github.com/aptpod/viewmeasure-go/transport"
	"github.com/aptpod/viewmeasure-go/transport/websocket"
	"github.com/aptpod/viewmeasure-go/transport/websocket/gorilla"
	"github.com/aptpod/viewmeasure-go/wire"
)

var defaultServerConfig = ServerConfig{
	MaxMessageSize: encoding.DefaultMaxMessageSize,
	ReadTimeout:    0,
	Authenticate:   nil,
	AcceptFunc:     gorilla.Accept,
	Logger:         log.NewNop(),
}

// AcceptFuncは、HTTPリクエストをWebSocketへアップグレードする関数です。
type AcceptFunc func(w http.ResponseWriter, r *http.Request) (websocket.Conn, error)

// ServerConfigは、サーバーの設定です。
type ServerConfig struct {
	// MaxMessageSizeは、送受信するメッセージの最大サイズです。
	MaxMessageSize encoding.Size

	// ReadTimeoutは、受信が途絶えた場合に切断するまでの時間です。
	//
	// 0の場合、接続要求のPing間隔とPingタイムアウトから決定します。
	// トランスポートの事前ネゴシエーションで指定された場合はそちらを優先します。
	ReadTimeout time.Duration

	// Authenticateは、アクセストークンを検証します。nilの場合は検証しません。
	Authenticate func(ctx context.Context, accessToken string) error

	// AcceptFuncは、WebSocketのアップグレードに使用する関数です。
	AcceptFunc AcceptFunc

	// Loggerはロガーです。
	Logger log.Logger
}

// ServerOptionは、サーバーのオプションです。
type ServerOption func(*ServerConfig)

// WithServerMaxMessageSizeは、メッセージの最大サイズを設定します。
func WithServerMaxMessageSize(s encoding.Size) ServerOption {
	return func(o *ServerConfig) {
		o.MaxMessageSize = s
	}
}

// WithServerReadTimeoutは、読み込みタイムアウトを設定します。
func WithServerReadTimeout(d time.Duration) ServerOption {
	return func(o *ServerConfig) {
		o.ReadTimeout = d
	}
}

// WithServerAuthenticateは、アクセストークンの検証関数を設定します。
func WithServerAuthenticate(f func(ctx context.Context, accessToken string) error) ServerOption {
	return func(o *ServerConfig) {
		o.Authenticate = f
	}
}

// WithServerAcceptFuncは、WebSocketのアップグレードに使用する関数を設定します。
func WithServerAcceptFunc(f AcceptFunc) ServerOption {
	return func(o *ServerConfig) {
		o.AcceptFunc = f
	}
}

// WithServerLoggerは、ロガーを設定します。
func WithServerLogger(l log.Logger) ServerOption {
	return func(o *ServerConfig) {
		o.Logger = l
	}
}

// Serverは、Registryに登録されたProviderをリモートへ公開します。
//
// 接続要求の機能名称で Registry を解決し、以降の計測要求をそのProviderへ転送します。
// Providerが要求を破棄した場合は MeasureAbandoned を送信します。
type Server struct {
	registry *Registry
	config   ServerConfig
}

// NewServerは、Serverを生成します。
func NewServer(r *Registry, opts ...ServerOption) *Server {
	conf := defaultServerConfig
	for _, o := range opts {
		o(&conf)
	}
	if conf.Logger == nil {
		conf.Logger = log.NewNop()
	}
	if conf.AcceptFunc == nil {
		conf.AcceptFunc = gorilla.Accept
	}
	return &Server{
		registry: r,
		config:   conf,
	}
}

// ServeTransportは、トランスポート上で接続を受け付け、切断されるまで計測要求を処理します。
//
// ctxが終了した場合は接続を閉じます。正常に切断された場合はnilを返却します。
func (s *Server) ServeTransport(ctx context.Context, tr transport.Transport) error {
	ctx = log.WithTrackTransportID(ctx)
	params := tr.NegotiationParams()
	etr := encoding.NewTransport(&encoding.TransportConfig{
		Transport:      tr,
		Encoding:       resolveEncoding(params.Encoding),
		MaxMessageSize: s.config.MaxMessageSize,
	})

	readTimeout := s.config.ReadTimeout
	if params.ReadTimeout != nil {
		readTimeout = params.ReadTimeoutDuration()
	}
	conn, err := wire.Accept(ctx, &wire.ServerConnConfig{
		Transport:    etr,
		Logger:       s.config.Logger,
		Capabilities: s.registry.Names(),
		Authenticate: s.config.Authenticate,
		ReadTimeout:  readTimeout,
	})
	if err != nil {
		etr.Close()
		return errors.Errorf("accept: %w", err)
	}
	defer conn.Close()

	svc, ok := Resolve(s.registry, conn.Capability(), WithServiceLogger(s.config.Logger))
	if !ok {
		conn.SendDisconnect(ctx, &message.Disconnect{
			ResultCode:   message.ResultCodeCapabilityNotFound,
			ResultString: "capability not found: " + conn.Capability(),
		})
		return errors.Errorf("%q: %w", conn.Capability(), wire.ErrCapabilityNotFound)
	}
	s.config.Logger.Infof(ctx, "accepted session_id:%s capability:%s encoding:%s", conn.SessionID(), conn.Capability(), etr.Encoding().Name())

	eg, ctx := errgroup.WithContext(ctx)
	eg.Go(func() error {
		select {
		case <-ctx.Done():
		case <-conn.Closed():
		}
		return conn.Close()
	})
	eg.Go(func() error {
		for {
			req, err := conn.ReceiveRequest(ctx)
			if err != nil {
				if errors.Is(err, errors.ErrConnectionClosed) || ctx.Err() != nil {
					return nil
				}
				return err
			}
			s.handle(log.WithTrackRequestID(ctx), svc, conn, req)
		}
	})
	if err := eg.Wait(); err != nil {
		return err
	}
	err = conn.Wait()
	if errors.Is(err, errors.ErrConnectionClosed) && !errors.Is(err, wire.ErrConnTimeout) {
		return nil
	}
	return err
}

func (s *Server) handle(ctx context.Context, svc *Service, conn *wire.ServerConn, req message.Request) {
	logger := s.config.Logger
	abandon := func(reason AbandonReason) {
		logger.Debugf(ctx, "abandon request_id:%d reason:%s", req.GetRequestID(), reason)
		if err := conn.SendMeasureAbandoned(ctx, &message.MeasureAbandoned{
			RequestID: message.RequestID(req.GetRequestID()),
			Reason:    reason,
		}); err != nil {
			logger.Debugf(ctx, "failed to send measure abandoned: %v", err)
		}
	}

	switch m := req.(type) {
	case *message.MeasureRequest:
		svc.measure(m.Handle, func(g LocalGeometry) {
			if err := conn.SendMeasureResponse(ctx, &message.MeasureResponse{
				RequestID: m.RequestID,
				X:         g.X,
				Y:         g.Y,
				Width:     g.Width,
				Height:    g.Height,
				PageX:     g.PageX,
				PageY:     g.PageY,
			}); err != nil {
				logger.Debugf(ctx, "failed to send measure response: %v", err)
			}
		}, abandon)
	case *message.MeasureInWindowRequest:
		svc.measureInWindow(m.Handle, func(g WindowGeometry) {
			if err := conn.SendMeasureInWindowResponse(ctx, &message.MeasureInWindowResponse{
				RequestID: m.RequestID,
				X:         g.X,
				Y:         g.Y,
				Width:     g.Width,
				Height:    g.Height,
			}); err != nil {
				logger.Debugf(ctx, "failed to send measure in window response: %v", err)
			}
		}, abandon)
	default:
		logger.Warnf(ctx, "unexpected request %T", req)
	}
}

// ServeHTTPは、WebSocketのアップグレード要求を受け付け、ServeTransport を実行します。
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	params, err := websocket.ParseNegotiationParams(r)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	wsconn, err := s.config.AcceptFunc(w, r)
	if err != nil {
		s.config.Logger.Warnf(r.Context(), "failed to accept websocket: %v", err)
		return
	}
	tr := websocket.New(websocket.Config{
		Conn:              wsconn,
		NegotiationParams: params,
	})
	defer tr.Close()
	if err := s.ServeTransport(r.Context(), tr); err != nil {
		s.config.Logger.Warnf(r.Context(), "serve %s: %v", r.RemoteAddr, err)
	}
}

// Handlerは、WebSocketで計測要求を受け付けるhttp.Handlerを返却します。
func (s *Server) Handler() http.Handler {
	return s
}
