package gorilla

import (
	"net/http"
	"net/http/httputil"

	gwebsocket "github.com/gorilla/websocket"

	"github.com/aptpod/viewmeasure-go/errors"
	"github.com/aptpod/viewmeasure-go/transport/websocket"
)

// Dialは、WebSocketのコネクションを開きます。
//
// websocket.DialerConfig の DialFunc として使用できます。
func Dial(c websocket.DialConfig) (websocket.Conn, error) {
	var header http.Header
	if c.Token != nil {
		header = http.Header{}
		header.Add(c.Token.Header, c.Token.Token)
	}
	proxy := c.Proxy
	if proxy == nil {
		proxy = http.ProxyFromEnvironment
	}
	d := gwebsocket.Dialer{
		Proxy:            proxy,
		TLSClientConfig:  c.TLSConfig,
		HandshakeTimeout: c.DialTimeout,
	}

	//nolint
	wsconn, resp, err := d.Dial(c.URL, header)
	if err != nil {
		if resp == nil {
			return nil, err
		}

		dump, _ := httputil.DumpResponse(resp, true)
		return nil, errors.Errorf("dial failed with error response[%s]: %w", dump, err)
	}
	return New(wsconn), nil
}

var upgrader = gwebsocket.Upgrader{
	ReadBufferSize:  4096,
	WriteBufferSize: 4096,
	CheckOrigin:     func(*http.Request) bool { return true },
}

// Acceptは、HTTPリクエストをWebSocketへアップグレードし、Connを返却します。
//
// 失敗した場合、レスポンスはアップグレード処理内で書き込まれています。
func Accept(w http.ResponseWriter, r *http.Request) (websocket.Conn, error) {
	wsconn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		return nil, errors.Errorf("upgrade websocket: %w", err)
	}
	return New(wsconn), nil
}
