/*
Package message は、計測プロトコルで使用するメッセージを定義するパッケージです。
*/
package message

/*
Message は、計測プロトコルで使用されるメッセージを表すインターフェースです。
*/
type Message interface {
	isMessage()
}

/*
Request は、リクエストIDを持つメッセージを表すインターフェースです。

リクエストとそれに対する応答は、同じリクエストIDを持ちます。
*/
type Request interface {
	Message
	GetRequestID() uint32
}

// RequestIDは、リクエストIDです。
//
// リクエストメッセージを識別するために使用します。
type RequestID uint32

// GetRequestIDは、リクエストIDを返却します。
func (i RequestID) GetRequestID() uint32 {
	return uint32(i)
}
