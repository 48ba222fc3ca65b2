/*
Package websocket は、 WebSocket を使用したトランスポートを提供するパッケージです。

WebSocketライブラリ固有の処理は Conn インターフェースの背後に隠蔽されており、
gorilla サブパッケージ（github.com/gorilla/websocket）と nhooyr サブパッケージ（nhooyr.io/websocket）が実装を提供します。
*/
package websocket

import (
	"bytes"
	"sync"
)

/*
Name は、本トランスポートの名称です。
*/
const Name = "websocket"

const (
	bufferSize = 4096
)

var bufferPool = sync.Pool{New: func() interface{} {
	return bytes.NewBuffer(make([]byte, 0, bufferSize))
}}
