package websocket

import (
	"github.com/aptpod/viewmeasure-go/transport"
)

/*
Config は、トランスポートに関する設定です。
*/
type Config struct {
	// Conn は、WebSocketのコネクションです。
	// このフィールドを nil にすることはできません。
	Conn Conn

	// NegotiationParams は、このトランスポートで事前ネゴシエーションされたパラメーターです。
	NegotiationParams transport.NegotiationParams
}

func (c Config) webSocketConnOrPanic() Conn {
	if c.Conn == nil {
		panic("WebSocketConn should not be nil")
	}
	return c.Conn
}
