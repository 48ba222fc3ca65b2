package nhooyr

import (
	"context"
	"net/http"

	nwebsocket "nhooyr.io/websocket"

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

	// http.DefaultTransportを変更しないよう複製して使用します。
	tr := http.DefaultTransport.(*http.Transport).Clone()
	if c.TLSConfig != nil {
		tr.TLSClientConfig = c.TLSConfig
	}
	if c.Proxy != nil {
		tr.Proxy = c.Proxy
	}

	ctx := context.Background()
	if c.DialTimeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, c.DialTimeout)
		defer cancel()
	}

	//nolint
	wsconn, _, err := nwebsocket.Dial(ctx, c.URL, &nwebsocket.DialOptions{
		HTTPClient:      &http.Client{Transport: tr},
		HTTPHeader:      header,
		CompressionMode: nwebsocket.CompressionDisabled,
	})
	if err != nil {
		return nil, errors.Errorf("dial websocket: %w", err)
	}
	return New(wsconn), nil
}

// Acceptは、HTTPリクエストをWebSocketへアップグレードし、Connを返却します。
func Accept(w http.ResponseWriter, r *http.Request) (websocket.Conn, error) {
	wsconn, err := nwebsocket.Accept(w, r, &nwebsocket.AcceptOptions{
		InsecureSkipVerify: true,
		CompressionMode:    nwebsocket.CompressionDisabled,
	})
	if err != nil {
		return nil, errors.Errorf("accept websocket: %w", err)
	}
	return New(wsconn), nil
}
