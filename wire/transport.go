package wire

import (
	"github.com/aptpod/viewmeasure-go/message"
)

// EncodingTransportは、メッセージ単位で読み書きするトランスポートです。
//
// encoding.Transport がこのインターフェースを実装します。
type EncodingTransport interface {
	Read() (message.Message, error)
	RxMessageCounterValue() uint64
	Write(message message.Message) error
	TxMessageCounterValue() uint64
	Close() error
}
