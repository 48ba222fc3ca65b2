package nhooyr

import (
	"context"
	"fmt"
	"io"

	nwebsocket "nhooyr.io/websocket"

	"github.com/aptpod/viewmeasure-go/transport"
	"github.com/aptpod/viewmeasure-go/transport/websocket"
)

var _ websocket.Conn = (*Conn)(nil)

// Connは、 nhooyr.io/websocketのConnのラッパーです。
type Conn struct {
	wsconn *nwebsocket.Conn
}

// Newは、Connを返却します。
func New(wsconn *nwebsocket.Conn) *Conn {
	return &Conn{
		wsconn: wsconn,
	}
}

// Pingは、WebSocketのPingを送信します。
func (c *Conn) Ping(ctx context.Context) error {
	return wrapError(c.wsconn.Ping(ctx))
}

// Readerは、WebSocketのReaderを取得します。
func (c *Conn) Reader(ctx context.Context) (websocket.MessageType, io.Reader, error) {
	tp, rd, err := c.wsconn.Reader(ctx)
	if err != nil {
		return 0, nil, wrapError(err)
	}
	switch tp {
	case nwebsocket.MessageBinary:
		return websocket.MessageBinary, rd, nil
	case nwebsocket.MessageText:
		return websocket.MessageText, rd, nil
	}
	panic("unreachable")
}

// Writerは、WebSocketのWriterを取得します。
func (c *Conn) Writer(ctx context.Context, tp websocket.MessageType) (io.WriteCloser, error) {
	switch tp {
	case websocket.MessageBinary:
		wr, err := c.wsconn.Writer(ctx, nwebsocket.MessageBinary)
		return wr, wrapError(err)
	case websocket.MessageText:
		wr, err := c.wsconn.Writer(ctx, nwebsocket.MessageText)
		return wr, wrapError(err)
	}
	panic("unreachable")
}

// Closeは、WebSocketをクローズします。
func (c *Conn) Close() error {
	return c.CloseWithStatus(transport.CloseStatusNormal)
}

// CloseWithStatusは、WebSocketを指定したステータスでクローズします。
func (c *Conn) CloseWithStatus(status transport.CloseStatus) error {
	var code nwebsocket.StatusCode
	switch status {
	case transport.CloseStatusNormal:
		code = nwebsocket.StatusNormalClosure
	case transport.CloseStatusGoingAway:
		code = nwebsocket.StatusGoingAway
	case transport.CloseStatusInternalError:
		code = nwebsocket.StatusInternalError
	default:
		// StatusAbnormalClosureは送信できないため、内部エラーとして扱います。
		code = nwebsocket.StatusInternalError
	}
	return wrapError(c.wsconn.Close(code, ""))
}

func wrapError(err error) error {
	if err == nil {
		return nil
	}
	switch nwebsocket.CloseStatus(err) {
	case -1:
		return fmt.Errorf("websocket: %w", err)
	case nwebsocket.StatusNormalClosure:
		return fmt.Errorf("websocket closed cause[%v]: %w", err, transport.GetCloseStatusError(transport.CloseStatusNormal))
	case nwebsocket.StatusGoingAway:
		return fmt.Errorf("websocket closed cause[%v]: %w", err, transport.GetCloseStatusError(transport.CloseStatusGoingAway))
	case nwebsocket.StatusAbnormalClosure:
		return fmt.Errorf("websocket closed cause[%v]: %w", err, transport.GetCloseStatusError(transport.CloseStatusAbnormal))
	default:
		return fmt.Errorf("websocket closed cause[%v]: %w", err, transport.GetCloseStatusError(transport.CloseStatusInternalError))
	}
}
