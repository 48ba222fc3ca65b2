package websocket

import (
	"io"
	"net"
	"os"
	"syscall"

	gwebsocket "github.com/gorilla/websocket"
	"nhooyr.io/websocket"

	"github.com/aptpod/viewmeasure-go/errors"
	"github.com/aptpod/viewmeasure-go/transport"
)

func isErrTransportClosed(err error) bool {
	if errors.Is(err, transport.ErrAlreadyClosed) || errors.Is(err, net.ErrClosed) {
		return true
	}
	var opErr *net.OpError
	if errors.As(err, &opErr) {
		if errors.Is(opErr, syscall.EPIPE) || errors.Is(opErr, syscall.ECONNRESET) {
			return true
		}
		if serr, ok := opErr.Unwrap().(*os.SyscallError); ok {
			return serr.Unwrap().Error() == "connection reset by peer"
		}
		return opErr.Unwrap().Error() == "use of closed network connection"
	}

	if websocket.CloseStatus(err) == websocket.StatusNormalClosure {
		return true
	}
	if websocket.CloseStatus(err) == websocket.StatusGoingAway {
		return true
	}
	if gwebsocket.IsCloseError(
		err,
		gwebsocket.CloseNormalClosure,
		gwebsocket.CloseGoingAway,
		gwebsocket.CloseAbnormalClosure,
		gwebsocket.CloseNoStatusReceived,
	) {
		return true
	}

	if errors.Is(err, io.EOF) || errors.Is(err, gwebsocket.ErrCloseSent) {
		return true
	}
	return false
}
