package encoding

import (
	"fmt"
)

// Sizeは、バイトサイズの単位です。
type Size int64

const (
	B  Size = 1
	KB      = B * 1000
	MB      = KB * 1000
	GB      = MB * 1000
)

// DefaultMaxMessageSizeは、計測プロトコルのメッセージとして十分な最大メッセージサイズです。
const DefaultMaxMessageSize = 1 * MB

func (s Size) String() string {
	if s == 0 {
		return "0[b]"
	}
	format := func(val Size, unit Size, unitString string) string {
		return fmt.Sprintf("%.2f[%s]", float64(val)/float64(unit), unitString)
	}
	switch {
	case s >= GB:
		return format(s, GB, "gb")
	case s >= MB:
		return format(s, MB, "mb")
	case s >= KB:
		return format(s, KB, "kb")
	}
	return format(s, B, "b")
}
