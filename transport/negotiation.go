package transport

import (
	"encoding/json"
	"fmt"
	"net/url"
	"time"

	"github.com/aptpod/viewmeasure-go/errors"
	"github.com/aptpod/viewmeasure-go/transport/compress"
)

// EncodingName は、エンコーディングの識別名を表します。
type EncodingName string

const (
	// EncodingNameJSON は、 JSON 形式のエンコーディングを表す名称です。
	EncodingNameJSON EncodingName = "json"

	// EncodingNameProtobuf は、 Protocol Buffers 形式のエンコーディングを表す名称です。
	EncodingNameProtobuf EncodingName = "proto"
)

// NegotiationParamsは、トランスポート接続時に事前ネゴシエーションされるパラメーターです。
//
// WebSocketの場合、接続URLのクエリパラメーターとして送信されます。
type NegotiationParams struct {
	Encoding      EncodingName `json:"enc,omitempty"`
	ReadTimeout   *int         `json:"rtimeout,string,omitempty"`
	CompressLevel *int         `json:"clevel,string,omitempty"`
}

// Validateは、パラメーターの妥当性を検証します。
func (p *NegotiationParams) Validate() error {
	switch p.Encoding {
	case "", EncodingNameJSON, EncodingNameProtobuf: // ok
	default:
		return errors.Errorf("unknown encoding type %q", p.Encoding)
	}
	if p.ReadTimeout != nil && *p.ReadTimeout < 0 {
		return errors.Errorf("invalid read timeout %d", *p.ReadTimeout)
	}
	if p.CompressLevel != nil {
		if err := (compress.Config{Level: *p.CompressLevel}).Validate(); err != nil {
			return err
		}
	}
	return nil
}

// CompressConfigは、事前ネゴシエーションされた圧縮設定を返却します。
//
// 圧縮レベルが未指定の場合、圧縮は無効です。
func (p *NegotiationParams) CompressConfig() compress.Config {
	if p.CompressLevel == nil {
		return compress.Config{}
	}
	return compress.Config{
		Enable: true,
		Level:  *p.CompressLevel,
	}
}

// ReadTimeoutDurationは、読み込みタイムアウトを返却します。未指定の場合は0を返却します。
func (p *NegotiationParams) ReadTimeoutDuration() time.Duration {
	if p.ReadTimeout == nil {
		return 0
	}
	return time.Duration(*p.ReadTimeout) * time.Second
}

func (p *NegotiationParams) UnmarshalKeyValues(keyvals map[string]string) error {
	b, err := json.Marshal(keyvals)
	if err != nil {
		return err
	}
	if err := json.Unmarshal(b, p); err != nil {
		return err
	}
	return nil
}

func (p *NegotiationParams) MarshalKeyValues() (map[string]string, error) {
	b, err := json.Marshal(p)
	if err != nil {
		return nil, err
	}

	keyvals := make(map[string]any)
	if err := json.Unmarshal(b, &keyvals); err != nil {
		return nil, err
	}
	res := make(map[string]string, len(keyvals))
	for k, v := range keyvals {
		res[k] = fmt.Sprintf("%v", v)
	}
	return res, nil
}

// MarshalURLValuesは、パラメーターをURLのクエリ値へ変換します。
func (p *NegotiationParams) MarshalURLValues() (url.Values, error) {
	keyvals, err := p.MarshalKeyValues()
	if err != nil {
		return nil, err
	}
	res := make(url.Values, len(keyvals))
	for k, v := range keyvals {
		res.Set(k, v)
	}
	return res, nil
}

// UnmarshalURLValuesは、URLのクエリ値からパラメーターを読み込み、妥当性を検証します。
func (p *NegotiationParams) UnmarshalURLValues(values url.Values) error {
	keyvals := make(map[string]string, len(values))
	for k := range values {
		keyvals[k] = values.Get(k)
	}
	if err := p.UnmarshalKeyValues(keyvals); err != nil {
		return errors.Errorf("unmarshal negotiation params: %w", err)
	}
	return p.Validate()
}
