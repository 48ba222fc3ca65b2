package gorilla

import (
	"context"
	"io"
	"time"

	gwebsocket "github.com/gorilla/websocket"

	"github.com/aptpod/viewmeasure-go/transport"
	"github.com/aptpod/viewmeasure-go/transport/websocket"
)

var _ websocket.Conn = (*Conn)(nil)

// Connは、 gorilla/websocketのConnのラッパーです。
type Conn struct {
	wsconn *gwebsocket.Conn
}

// Newは、Connを返却します。
func New(wsconn *gwebsocket.Conn) *Conn {
	return &Conn{
		wsconn: wsconn,
	}
}

// Pingは、WebSocketのPingを送信します。
func (c *Conn) Ping(ctx context.Context) error {
	deadline, ok := ctx.Deadline()
	if !ok {
		deadline = time.Now().Add(time.Second)
	}
	return handlerError(c.wsconn.WriteControl(gwebsocket.PingMessage, []byte{}, deadline))
}

// Readerは、WebSocketのReaderを取得します。
func (c *Conn) Reader(ctx context.Context) (websocket.MessageType, io.Reader, error) {
	tp, rd, err := c.wsconn.NextReader()
	if err != nil {
		return 0, nil, handlerError(err)
	}
	switch tp {
	case gwebsocket.BinaryMessage:
		return websocket.MessageBinary, rd, nil
	case gwebsocket.TextMessage:
		return websocket.MessageText, rd, nil
	}
	panic("unreachable")
}

// Writerは、WebSocketのWriterを取得します。
func (c *Conn) Writer(ctx context.Context, tp websocket.MessageType) (io.WriteCloser, error) {
	switch tp {
	case websocket.MessageBinary:
		res, err := c.wsconn.NextWriter(gwebsocket.BinaryMessage)
		if err != nil {
			return nil, handlerError(err)
		}
		return res, nil
	case websocket.MessageText:
		res, err := c.wsconn.NextWriter(gwebsocket.TextMessage)
		if err != nil {
			return nil, handlerError(err)
		}
		return res, nil
	}
	panic("unreachable")
}

// Closeは、WebSocketをクローズします。
func (c *Conn) Close() error {
	return c.CloseWithStatus(transport.CloseStatusNormal)
}

// CloseWithStatusは、WebSocketを指定したステータスでクローズします。
func (c *Conn) CloseWithStatus(status transport.CloseStatus) error {
	code := closeCode(status)

	// 相手側がすでに切断している場合、Closeメッセージの送信は失敗するため無視します。
	_ = c.wsconn.WriteControl(gwebsocket.CloseMessage, gwebsocket.FormatCloseMessage(code, ""), time.Now().Add(time.Second))
	return handlerError(c.wsconn.Close())
}

func closeCode(status transport.CloseStatus) int {
	switch status {
	case transport.CloseStatusNormal:
		return gwebsocket.CloseNormalClosure
	case transport.CloseStatusGoingAway:
		return gwebsocket.CloseGoingAway
	case transport.CloseStatusAbnormal:
		return gwebsocket.CloseAbnormalClosure
	case transport.CloseStatusInternalError:
		return gwebsocket.CloseInternalServerErr
	default:
		return gwebsocket.CloseInternalServerErr
	}
}
