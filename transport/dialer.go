package transport

import "github.com/aptpod/viewmeasure-go/transport/compress"

// DialConfigは、トランスポート接続時の設定です。
type DialConfig struct {
	// Addressは、接続先のホスト:ポートです。
	Address string
	// EncodingNameは、希望するエンコーディングです。
	EncodingName EncodingName
	// ReadTimeoutは、プロバイダー側の読み込みタイムアウト秒数です。nilの場合はタイムアウトしません。
	ReadTimeout *int
	// CompressConfigは、メッセージの圧縮設定です。
	CompressConfig compress.Config
}

// NegotiationParamsは、DialConfigから事前ネゴシエーションのパラメーターを生成します。
func (c DialConfig) NegotiationParams() NegotiationParams {
	res := NegotiationParams{
		Encoding:    c.EncodingName,
		ReadTimeout: c.ReadTimeout,
	}
	if c.CompressConfig.Enable {
		level := c.CompressConfig.Level
		if level == 0 {
			level = compress.DefaultLevel
		}
		res.CompressLevel = &level
	}
	return res
}

type Dialer interface {
	Dial(DialConfig) (Transport, error)
}

type DialerFunc func(DialConfig) (Transport, error)

func (f DialerFunc) Dial(c DialConfig) (Transport, error) {
	return f(c)
}
