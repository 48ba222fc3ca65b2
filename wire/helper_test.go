package wire_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/aptpod/viewmeasure-go/encoding"
	"github.com/aptpod/viewmeasure-go/encoding/protobuf"
	"github.com/aptpod/viewmeasure-go/message"
	"github.com/aptpod/viewmeasure-go/transport"
	"github.com/aptpod/viewmeasure-go/wire"
)

func Pipe() (srv wire.EncodingTransport, cli wire.EncodingTransport) {
	return PipeWithSize(0, 0)
}

func PipeWithSize(srvMaxMessageSize, cliMaxMessageSize encoding.Size) (srv wire.EncodingTransport, cli wire.EncodingTransport) {
	srvtr, clitr := transport.Pipe()
	srv = encoding.NewTransport(&encoding.TransportConfig{
		Transport:      srvtr,
		Encoding:       protobuf.NewEncoding(),
		MaxMessageSize: srvMaxMessageSize,
	})
	cli = encoding.NewTransport(&encoding.TransportConfig{
		Transport:      clitr,
		Encoding:       protobuf.NewEncoding(),
		MaxMessageSize: cliMaxMessageSize,
	})
	return
}

// serveは、Pingに応答しつつ、それ以外の受信メッセージをチャンネルへ転送します。
func serve(t *testing.T, tr wire.EncodingTransport) <-chan message.Message {
	t.Helper()
	msgCh := make(chan message.Message, 16)
	go func() {
		defer close(msgCh)
		for {
			msg, err := tr.Read()
			if err != nil {
				return
			}
			if ping, ok := msg.(*message.Ping); ok {
				if err := tr.Write(&message.Pong{RequestID: ping.RequestID}); err != nil {
					return
				}
				continue
			}
			msgCh <- msg
		}
	}()
	return msgCh
}

func receive(t *testing.T, msgCh <-chan message.Message) message.Message {
	t.Helper()
	select {
	case msg, ok := <-msgCh:
		require.True(t, ok, "transport closed")
		return msg
	case <-time.After(time.Second):
		require.FailNow(t, "no message")
	}
	return nil
}
