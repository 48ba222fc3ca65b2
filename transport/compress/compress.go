/*
Package compress は、トランスポート層でのメッセージ圧縮を提供するパッケージです。

メッセージは1つずつ独立して DEFLATE 圧縮されます。
*/
package compress

import (
	"bytes"
	"compress/flate"
	"io"

	"github.com/aptpod/viewmeasure-go/errors"
)

// DefaultLevelは、圧縮レベルを指定しなかった場合に使用する圧縮レベルです。
const DefaultLevel = 6

/*
Config は、トランスポート層での圧縮に関する設定です。
*/
type Config struct {
	// Enableは圧縮の有効化です。
	//
	// Enableが `false` の場合、Levelは無視されます。
	Enable bool

	// Level は、 DEFLATE 圧縮の圧縮レベルです。
	// 1から9の値を指定します。0の場合は DefaultLevel を使用します。
	Level int
}

// Validateは、設定の妥当性を検証します。
func (c Config) Validate() error {
	if c.Level < 0 || c.Level > flate.BestCompression {
		return errors.Errorf("invalid compress level %d", c.Level)
	}
	return nil
}

func (c Config) level() int {
	if c.Level == 0 {
		return DefaultLevel
	}
	return c.Level
}

// Encodeは、bsを圧縮してwrへ書き込み、書き込んだバイト数を返却します。
func (c Config) Encode(wr io.Writer, bs []byte) (int, error) {
	var buf bytes.Buffer
	fwr, err := flate.NewWriter(&buf, c.level())
	if err != nil {
		return 0, err
	}
	if _, err := fwr.Write(bs); err != nil {
		return 0, err
	}
	if err := fwr.Close(); err != nil {
		return 0, err
	}
	n, err := io.Copy(wr, &buf)
	return int(n), err
}

// Decodeは、rdから圧縮されたメッセージを読み込み、展開したバイト列を返却します。
func Decode(rd io.Reader) ([]byte, error) {
	frd := flate.NewReader(rd)
	defer frd.Close()
	res, err := io.ReadAll(frd)
	if err != nil {
		return nil, errors.Errorf("decompress: %w", err)
	}
	return res, nil
}
