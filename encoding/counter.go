package encoding

import (
	"reflect"
	"sync"

	"github.com/aptpod/viewmeasure-go/message"
)

type counter struct {
	sync.RWMutex
	byteCount    map[reflect.Type]uint64
	messageCount map[reflect.Type]uint64
}

func newCounter() *counter {
	return &counter{
		byteCount:    map[reflect.Type]uint64{},
		messageCount: map[reflect.Type]uint64{},
	}
}

func (c *counter) Add(msg message.Message, bytes int) {
	c.Lock()
	defer c.Unlock()
	typ := reflect.TypeOf(msg)
	c.messageCount[typ]++
	c.byteCount[typ] += uint64(bytes)
}

func (c *counter) Count() *Count {
	c.RLock()
	defer c.RUnlock()
	res := &Count{
		ByteCount:    make(map[reflect.Type]uint64, len(c.byteCount)),
		MessageCount: make(map[reflect.Type]uint64, len(c.messageCount)),
	}
	for k, v := range c.byteCount {
		res.ByteCount[k] = v
	}
	for k, v := range c.messageCount {
		res.MessageCount[k] = v
	}
	return res
}

// Countは、メッセージ型ごとの送受信バイト数とメッセージ数を表します。
type Count struct {
	ByteCount    map[reflect.Type]uint64
	MessageCount map[reflect.Type]uint64
}

// Messagesは、メッセージ型にかかわらず合計したメッセージ数を返却します。
func (c *Count) Messages() uint64 {
	var res uint64
	for _, v := range c.MessageCount {
		res += v
	}
	return res
}
