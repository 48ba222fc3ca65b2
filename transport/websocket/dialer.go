package websocket

import (
	"context"
	"crypto/tls"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/aptpod/viewmeasure-go/errors"
	"github.com/aptpod/viewmeasure-go/log"
	"github.com/aptpod/viewmeasure-go/transport"
)

// DialConfigは、DialFuncへ渡される設定です。
type DialConfig struct {
	// URLは、接続先URLです。
	URL string
	// Tokenは、接続時に認証ヘッダーへ設定するトークンです。nilの場合は設定しません。
	Token *Token
	// TLSConfigは、TLS設定です。
	TLSConfig *tls.Config
	// Proxyは、HTTPプロキシを設定します。
	//
	// http.Transport.Proxyを参照してください。
	Proxy func(*http.Request) (*url.URL, error)
	// DialTimeoutは、WebSocket接続のタイムアウトです。
	// 0に設定された場合、タイムアウトは設定されません。
	DialTimeout time.Duration
}

// DialFunc はConnを返却する関数です。
type DialFunc func(c DialConfig) (Conn, error)

var defaultDialerConfig = DialerConfig{
	DialTimeout: 10 * time.Second,
}

// DialerConfigはDialerの設定です。
type DialerConfig struct {
	// Pathはパスを指定します
	Path string

	// EnableTLSは TLSアクセスするかどうかを設定します。
	EnableTLS bool

	// TokenSourceは、接続時に認証ヘッダーへ設定するトークンを取得します。
	// Dialerは取得されたトークンを認証ヘッダーとして利用します。
	TokenSource TokenSource

	// TLSConfigは、TLS設定です。
	TLSConfig *tls.Config

	// Proxyは、HTTPプロキシを設定します。
	Proxy func(*http.Request) (*url.URL, error)

	// DialTimeoutは、WebSocket接続のタイムアウトです。
	// 0に設定された場合は、デフォルト値(10秒)が使用されます。
	DialTimeout time.Duration

	// DialFuncは、WebSocketライブラリを使用してConnを開く関数です。
	// このフィールドをnilにすることはできません。
	DialFunc DialFunc

	// Loggerはロガーです。
	Logger log.Logger
}

// Tokenはトークンを表します。
type Token struct {
	// Tokenはトークン文字列です。
	Token string

	// Headerはヘッダ名を指定します。デフォルトは `Authorization` です。
	Header string
}

// StaticTokenSourceは、静的に設定されたトークンを常に返却するTokenSource実装です。
type StaticTokenSource struct {
	StaticToken *Token
}

// TokenはTokenを返却します。
func (ts *StaticTokenSource) Token() (*Token, error) {
	return ts.StaticToken, nil
}

// TokenSourceは、認証トークンの取得用インターフェースです。
//
// ライブラリはこのインターフェースをWebSocket認証時に呼び出します。
type TokenSource interface {
	Token() (*Token, error)
}

// Dialerは、トランスポート接続を開始します。
type Dialer struct {
	DialerConfig
}

// NewDialerは、Dialerを返却します。
//
// 未指定の項目にはデフォルト値を使用します。
func NewDialer(c DialerConfig) *Dialer {
	if c.DialTimeout == 0 {
		c.DialTimeout = defaultDialerConfig.DialTimeout
	}
	if c.Logger == nil {
		c.Logger = log.NewNop()
	}
	return &Dialer{DialerConfig: c}
}

// Dialは、トランスポート接続を開始します。
func (d *Dialer) Dial(cc transport.DialConfig) (transport.Transport, error) {
	ctx := context.Background()
	if d.DialFunc == nil {
		return nil, errors.New("websocket: DialFunc is not configured")
	}
	logger := d.Logger
	if logger == nil {
		logger = log.NewNop()
	}

	params := cc.NegotiationParams()
	if err := params.Validate(); err != nil {
		return nil, errors.Errorf("invalid negotiation params: %w", err)
	}
	wsURL, err := d.buildURL(cc.Address, params)
	if err != nil {
		return nil, err
	}
	logger.Debugf(ctx, "dialing %s", wsURL)

	var tk *Token
	if d.TokenSource != nil {
		tk, err = d.TokenSource.Token()
		if err != nil {
			return nil, errors.Errorf("failed retrieving token: %w", err)
		}
		if tk != nil && tk.Header == "" {
			tk.Header = "Authorization"
		}
	}

	wsconn, err := d.DialFunc(DialConfig{
		URL:         wsURL,
		Token:       tk,
		TLSConfig:   d.TLSConfig,
		Proxy:       d.Proxy,
		DialTimeout: d.DialTimeout,
	})
	if err != nil {
		return nil, err
	}
	logger.Debugf(ctx, "dialed %s", wsURL)

	return New(Config{
		Conn:              wsconn,
		NegotiationParams: params,
	}), nil
}

func (d *Dialer) buildURL(address string, params transport.NegotiationParams) (string, error) {
	var schema string
	if d.EnableTLS {
		schema = "wss"
	} else {
		schema = "ws"
	}

	values, err := params.MarshalURLValues()
	if err != nil {
		return "", errors.Errorf("MarshalURLValues failed for negotiation: %w", err)
	}

	path := strings.TrimSuffix(d.Path, "/")
	if path != "" && !strings.HasPrefix(path, "/") {
		path = "/" + path
	}
	u := fmt.Sprintf("%s://%s%s", schema, address, path)
	if q := values.Encode(); q != "" {
		u += "?" + q
	}
	wsURL, err := url.Parse(u)
	if err != nil {
		return "", errors.Errorf("invalid url: %w", err)
	}
	return wsURL.String(), nil
}

// ParseNegotiationParamsは、WebSocketのアップグレード要求から事前ネゴシエーションのパラメーターを取得します。
func ParseNegotiationParams(r *http.Request) (transport.NegotiationParams, error) {
	var params transport.NegotiationParams
	if err := params.UnmarshalURLValues(r.URL.Query()); err != nil {
		return transport.NegotiationParams{}, err
	}
	return params, nil
}
