/*
Package json は、 JSON フォーマットを使用したエンコーディングを提供するパッケージです。
*/
package json

import (
	"bytes"
	"io"

	"github.com/gogo/protobuf/jsonpb"

	"github.com/aptpod/viewmeasure-go/encoding"
	"github.com/aptpod/viewmeasure-go/encoding/convert"
	"github.com/aptpod/viewmeasure-go/encoding/pb"
	"github.com/aptpod/viewmeasure-go/errors"
	"github.com/aptpod/viewmeasure-go/internal/xio"
	"github.com/aptpod/viewmeasure-go/message"
)

type encoder struct{}

func (e *encoder) ContentType() encoding.ContentType {
	return encoding.ContentTypeText
}

func (e *encoder) Name() encoding.Name {
	return encoding.NameJSON
}

/*
NewEncoding は、 JSON フォーマット用エンコーディングを生成します。
*/
func NewEncoding() encoding.Encoding {
	return &encoder{}
}

var marshaler = jsonpb.Marshaler{
	OrigName: true,
}

var unmarshaler = jsonpb.Unmarshaler{
	AllowUnknownFields: true,
}

func (e *encoder) EncodeTo(wr io.Writer, m message.Message) (n int, er error) {
	defer func() {
		if recovered := recover(); recovered != nil {
			er = errors.Errorf("%v", recovered)
		}
	}()

	p, err := convert.WireToProto(m)
	if err != nil {
		return 0, err
	}

	var buf bytes.Buffer
	if err := marshaler.Marshal(&buf, p); err != nil {
		return 0, err
	}
	writtenBytes := buf.Len()

	if _, err := io.Copy(wr, &buf); err != nil {
		return 0, err
	}
	return writtenBytes, nil
}

func (e *encoder) DecodeFrom(rd io.Reader) (n int, m message.Message, er error) {
	defer func() {
		if recovered := recover(); recovered != nil {
			er = errors.Errorf("%v", recovered)
		}
	}()

	ird := xio.NewCaptureReader(rd)
	var p pb.Message
	if err := unmarshaler.Unmarshal(ird, &p); err != nil {
		return 0, nil, errors.Errorf("unmarshal json: %v: %w", err, errors.ErrMalformedMessage)
	}
	res, err := convert.ProtoToWire(&p)
	if err != nil {
		return 0, nil, err
	}
	return ird.ReadBytes, res, nil
}
