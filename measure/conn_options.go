package measure

import (
	"time"

	uuid "github.com/google/uuid"

	"github.com/aptpod/viewmeasure-go/encoding"
	"github.com/aptpod/viewmeasure-go/encoding/json"
	"github.com/aptpod/viewmeasure-go/encoding/protobuf"
	"github.com/aptpod/viewmeasure-go/log"
	"github.com/aptpod/viewmeasure-go/transport"
	"github.com/aptpod/viewmeasure-go/transport/compress"
	"github.com/aptpod/viewmeasure-go/transport/websocket"
	"github.com/aptpod/viewmeasure-go/transport/websocket/gorilla"
)

// TransportNameは、トランスポート名です。
type TransportName = transport.Name

// EncodingNameは、エンコーディング名です。
type EncodingName = transport.EncodingName

// サポートしているトランスポートとエンコーディングです。
const (
	TransportWebSocket = transport.NameWebSocket

	EncodingProtobuf = transport.EncodingNameProtobuf
	EncodingJSON     = transport.EncodingNameJSON
)

var defaultConnConfig = ConnConfig{
	Address:         "",
	Transport:       TransportWebSocket,
	Encoding:        EncodingProtobuf,
	Capability:      ServiceName,
	MaxMessageSize:  encoding.DefaultMaxMessageSize,
	MaxDialAttempt:  3,
	CompressConfig:  compress.Config{},
	WebSocketConfig: nil,
	TokenSource:     nil,
	Dialer:          nil,
	PingInterval:    defaultPingInterval,
	PingTimeout:     defaultPingTimeout,
	Logger:          log.NewNop(),
}

// DefaultConnConfigは、デフォルトのコネクション設定を返却します。
func DefaultConnConfig() ConnConfig {
	return defaultConnConfig
}

// ConnConfigは、コネクションの設定です。
type ConnConfig struct {
	// Addressは、接続先のホスト:ポートです。
	Address string

	// Transportは、トランスポート名です。
	Transport TransportName

	// Encodingは、エンコーディング名です。
	Encoding EncodingName

	// Capabilityは、接続先で利用する機能の名称です。
	Capability string

	// SessionIDは、セッションIDです。uuid.Nil の場合は接続ごとに生成します。
	SessionID uuid.UUID

	// MaxMessageSizeは、送受信するメッセージの最大サイズです。
	MaxMessageSize encoding.Size

	// MaxDialAttemptは、トランスポート接続の最大試行回数です。0の場合は成功するまで繰り返します。
	MaxDialAttempt int

	// CompressConfigは、トランスポート層の圧縮設定です。
	CompressConfig compress.Config

	// WebSocketConfigは、WebSocketトランスポートの設定です。
	//
	// DialFuncが未指定の場合は gorilla.Dial を使用します。
	WebSocketConfig *websocket.DialerConfig

	// Dialerは、トランスポートのDialerです。
	//
	// 指定された場合、TransportとWebSocketConfigは使用しません。
	Dialer transport.Dialer

	// TokenSourceは、接続要求に含めるアクセストークンを取得します。
	TokenSource TokenSource

	// PingIntervalは、Pingを送信する間隔です。
	PingInterval time.Duration

	// PingTimeoutは、Pingのタイムアウトです。
	PingTimeout time.Duration

	// ReadTimeoutは、接続先に要求する読み込みタイムアウトです。0の場合は要求しません。
	ReadTimeout time.Duration

	// Loggerはロガーです。
	Logger log.Logger
}

// ConnOptionは、コネクションのオプションです。
type ConnOption func(*ConnConfig)

// WithConnEncodingは、エンコーディングを設定します。
func WithConnEncoding(e EncodingName) ConnOption {
	return func(o *ConnConfig) {
		o.Encoding = e
	}
}

// WithConnCapabilityは、利用する機能の名称を設定します。
func WithConnCapability(c string) ConnOption {
	return func(o *ConnConfig) {
		o.Capability = c
	}
}

// WithConnSessionIDは、セッションIDを設定します。
func WithConnSessionID(id uuid.UUID) ConnOption {
	return func(o *ConnConfig) {
		o.SessionID = id
	}
}

// WithConnMaxMessageSizeは、メッセージの最大サイズを設定します。
func WithConnMaxMessageSize(s encoding.Size) ConnOption {
	return func(o *ConnConfig) {
		o.MaxMessageSize = s
	}
}

// WithConnMaxDialAttemptは、トランスポート接続の最大試行回数を設定します。
func WithConnMaxDialAttempt(n int) ConnOption {
	return func(o *ConnConfig) {
		o.MaxDialAttempt = n
	}
}

// WithConnCompressは、トランスポートの圧縮設定を設定します。
func WithConnCompress(c compress.Config) ConnOption {
	return func(o *ConnConfig) {
		o.CompressConfig = c
	}
}

// WithConnWebSocketは、WebSocketトランスポートの設定をします。
func WithConnWebSocket(c websocket.DialerConfig) ConnOption {
	return func(o *ConnConfig) {
		o.WebSocketConfig = &c
	}
}

// WithConnDialerは、トランスポートのDialerを設定します。
func WithConnDialer(d transport.Dialer) ConnOption {
	return func(o *ConnConfig) {
		o.Dialer = d
	}
}

// WithConnTokenSourceは、トークンソースを設定します。
func WithConnTokenSource(ts TokenSource) ConnOption {
	return func(o *ConnConfig) {
		o.TokenSource = ts
	}
}

// WithConnPingIntervalは、Pingを送信する間隔を設定します。
func WithConnPingInterval(d time.Duration) ConnOption {
	return func(o *ConnConfig) {
		o.PingInterval = d
	}
}

// WithConnPingTimeoutは、Pingタイムアウトを設定します。
//
// タイムアウトするとコネクションは閉じられ、保留中の要求はすべて破棄されます。
func WithConnPingTimeout(d time.Duration) ConnOption {
	return func(o *ConnConfig) {
		o.PingTimeout = d
	}
}

// WithConnReadTimeoutは、接続先に要求する読み込みタイムアウトを設定します。
func WithConnReadTimeout(d time.Duration) ConnOption {
	return func(o *ConnConfig) {
		o.ReadTimeout = d
	}
}

// WithConnLoggerは、ロガーを設定します。
func WithConnLogger(l log.Logger) ConnOption {
	return func(o *ConnConfig) {
		o.Logger = l
	}
}

func (c *ConnConfig) dialer() (transport.Dialer, error) {
	if c.Dialer != nil {
		return c.Dialer, nil
	}
	switch c.Transport {
	case TransportWebSocket:
		var wsConf websocket.DialerConfig
		if c.WebSocketConfig != nil {
			wsConf = *c.WebSocketConfig
		}
		if wsConf.DialFunc == nil {
			wsConf.DialFunc = gorilla.Dial
		}
		if wsConf.Logger == nil {
			wsConf.Logger = c.Logger
		}
		return websocket.NewDialer(wsConf), nil
	default:
		return nil, errUnsupportedTransport(c.Transport)
	}
}

func (c *ConnConfig) dialConfig() transport.DialConfig {
	res := transport.DialConfig{
		Address:        c.Address,
		EncodingName:   c.Encoding,
		CompressConfig: c.CompressConfig,
	}
	if c.ReadTimeout > 0 {
		sec := int((c.ReadTimeout + time.Second - 1) / time.Second)
		res.ReadTimeout = &sec
	}
	return res
}

func resolveEncoding(enc EncodingName) encoding.Encoding {
	switch enc {
	case EncodingJSON:
		return json.NewEncoding()
	case EncodingProtobuf:
		return protobuf.NewEncoding()
	default:
		return protobuf.NewEncoding()
	}
}
