/*
Package transport は、計測プロトコルで使用するトランスポートをまとめたパッケージです。
*/
package transport

import (
	"io"

	"github.com/aptpod/viewmeasure-go/errors"
)

// Nameは、トランスポート名です。
type Name string

const (
	// WebSocketトランスポート
	NameWebSocket Name = "websocket"
	// プロセス内のパイプトランスポート
	NamePipe Name = "pipe"
)

/*
Conn は以下のエラーを返します。
*/
var (
	// ErrAlreadyClosed は、トランスポート層のコネクションが切れている場合に返されます。
	ErrAlreadyClosed = errors.ErrConnectionClosed

	// ErrInvalidMessage は、 メッセージが不正だった時に返されます。
	ErrInvalidMessage = errors.ErrMalformedMessage

	EOF = io.EOF
)
