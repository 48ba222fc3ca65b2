/*
Package protobuf は、 Protocol Buffers を使用したエンコーディングを提供するパッケージです。
*/
package protobuf

import (
	"bytes"
	"io"
	"sync"

	"github.com/gogo/protobuf/proto"

	"github.com/aptpod/viewmeasure-go/encoding"
	"github.com/aptpod/viewmeasure-go/encoding/convert"
	"github.com/aptpod/viewmeasure-go/encoding/pb"
	"github.com/aptpod/viewmeasure-go/errors"
	"github.com/aptpod/viewmeasure-go/message"
)

type encoder struct{}

/*
NewEncoding は、 Protocol Buffers 用エンコーディングを生成します。
*/
func NewEncoding() encoding.Encoding {
	return &encoder{}
}

func (e *encoder) Name() encoding.Name {
	return encoding.NameProtobuf
}

func (e *encoder) ContentType() encoding.ContentType {
	return encoding.ContentTypeBinary
}

const bufferSize = 256

var globalEncodeBufferPool = sync.Pool{
	New: func() interface{} {
		return proto.NewBuffer(make([]byte, 0, bufferSize))
	},
}

func (e *encoder) EncodeTo(wr io.Writer, m message.Message) (n int, er error) {
	defer func() {
		if recovered := recover(); recovered != nil {
			er = errors.Errorf("%v", recovered)
		}
	}()

	buf := globalEncodeBufferPool.Get().(*proto.Buffer)
	defer func() {
		buf.Reset()
		globalEncodeBufferPool.Put(buf)
	}()

	p, err := convert.WireToProto(m)
	if err != nil {
		return 0, err
	}
	if err := buf.Marshal(p); err != nil {
		return 0, err
	}
	return wr.Write(buf.Bytes())
}

var bufferPool = sync.Pool{New: func() interface{} {
	return bytes.NewBuffer(nil)
}}

func (e *encoder) DecodeFrom(rd io.Reader) (n int, m message.Message, er error) {
	defer func() {
		if recovered := recover(); recovered != nil {
			er = errors.Errorf("%v", recovered)
		}
	}()

	buffer := bufferPool.Get().(*bytes.Buffer)
	defer func() {
		buffer.Reset()
		bufferPool.Put(buffer)
	}()
	if _, err := io.Copy(buffer, rd); err != nil {
		return 0, nil, err
	}

	var p pb.Message
	if err := proto.Unmarshal(buffer.Bytes(), &p); err != nil {
		return 0, nil, errors.Errorf("unmarshal protobuf: %v: %w", err, errors.ErrMalformedMessage)
	}
	res, err := convert.ProtoToWire(&p)
	if err != nil {
		return 0, nil, err
	}
	return buffer.Len(), res, nil
}
