package websocket

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"sync"
	"sync/atomic"

	"github.com/aptpod/viewmeasure-go/transport"
	"github.com/aptpod/viewmeasure-go/transport/compress"
)

var (
	_ transport.Transport = (*Transport)(nil)
	_ transport.Closer    = (*Transport)(nil)
)

// Transportは、WebSocketトランスポートです。
type Transport struct {
	wsconn Conn

	writeMu sync.Mutex

	compressConfig compress.Config

	rxBytesCounter *uint64
	txBytesCounter *uint64

	negotiationParams transport.NegotiationParams
	ctx               context.Context
	cancel            context.CancelFunc
	closeOnce         sync.Once
}

// Newは、WebSocketトランスポートを返却します。
func New(config Config) *Transport {
	ctx, cancel := context.WithCancel(context.Background())
	return &Transport{
		wsconn:            config.webSocketConnOrPanic(),
		compressConfig:    config.NegotiationParams.CompressConfig(),
		rxBytesCounter:    func(u uint64) *uint64 { return &u }(0),
		txBytesCounter:    func(u uint64) *uint64 { return &u }(0),
		negotiationParams: config.NegotiationParams,
		ctx:               ctx,
		cancel:            cancel,
	}
}

// Readは、１メッセージ分のデータを読み込みます。
func (t *Transport) Read() ([]byte, error) {
	_, rd, err := t.wsconn.Reader(t.ctx)
	if err != nil {
		if t.ctx.Err() != nil || isErrTransportClosed(err) {
			return nil, fmt.Errorf("get reader %v: %w", err, transport.EOF)
		}
		return nil, fmt.Errorf("get reader: %w", err)
	}

	buf := bufferPool.Get().(*bytes.Buffer)
	defer func() {
		buf.Reset()
		bufferPool.Put(buf)
	}()
	n, err := io.Copy(buf, rd)
	if err != nil {
		return nil, fmt.Errorf("read message: %w", err)
	}
	atomic.AddUint64(t.rxBytesCounter, uint64(n))

	if t.compressConfig.Enable {
		res, err := compress.Decode(buf)
		if err != nil {
			return nil, fmt.Errorf("decompress message %v: %w", err, transport.ErrInvalidMessage)
		}
		return res, nil
	}
	res := make([]byte, buf.Len())
	copy(res, buf.Bytes())
	return res, nil
}

// Writeは、１メッセージ分のデータを書き込みます。
//
// 複数のゴルーチンから同時に呼び出すことができます。
func (t *Transport) Write(bs []byte) error {
	t.writeMu.Lock()
	defer t.writeMu.Unlock()

	wr, err := t.wsconn.Writer(t.ctx, MessageBinary)
	if err != nil {
		if t.ctx.Err() != nil || isErrTransportClosed(err) {
			return fmt.Errorf("get writer %v: %w", err, transport.ErrAlreadyClosed)
		}
		return fmt.Errorf("get writer: %w", err)
	}

	var n int
	if t.compressConfig.Enable {
		n, err = t.compressConfig.Encode(wr, bs)
	} else {
		n, err = wr.Write(bs)
	}
	if err != nil {
		wr.Close()
		return fmt.Errorf("write message: %w", err)
	}
	if err := wr.Close(); err != nil {
		return fmt.Errorf("flush message: %w", err)
	}
	atomic.AddUint64(t.txBytesCounter, uint64(n))

	return nil
}

// TxBytesCounterValueは、書き込んだ総バイト数を返却します。
func (t *Transport) TxBytesCounterValue() uint64 {
	return atomic.LoadUint64(t.txBytesCounter)
}

// RxBytesCounterValueは、読み込んだ総バイト数を返却します。
func (t *Transport) RxBytesCounterValue() uint64 {
	return atomic.LoadUint64(t.rxBytesCounter)
}

// Closeはトランスポートを閉じます。
func (t *Transport) Close() error {
	return t.CloseWithStatus(transport.CloseStatusNormal)
}

// CloseWithStatusは、指定したステータスでトランスポートを閉じます。
//
// 2回目以降の呼び出しは何もしません。
func (t *Transport) CloseWithStatus(status transport.CloseStatus) error {
	var err error
	t.closeOnce.Do(func() {
		t.cancel()
		if cerr := t.wsconn.CloseWithStatus(status); cerr != nil && !isErrTransportClosed(cerr) {
			err = fmt.Errorf("close transport: %w", cerr)
		}
	})
	return err
}

// NegotiationParamsは、ネゴシエーションパラメータを返却します。
func (t *Transport) NegotiationParams() transport.NegotiationParams {
	return t.negotiationParams
}

// Nameはトランスポート名を返却します。
func (t *Transport) Name() transport.Name {
	return transport.NameWebSocket
}
