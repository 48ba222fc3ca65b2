package measure

import (
	"math"

	"github.com/aptpod/viewmeasure-go/message"
)

// ViewHandleは、計測対象の要素を識別する不透明なハンドルです。
type ViewHandle = message.ViewHandle

// AbandonReasonは、計測要求が破棄された理由です。
type AbandonReason = message.AbandonReason

// 計測要求の破棄理由です。
const (
	AbandonReasonViewUnmounted    = message.AbandonReasonViewUnmounted
	AbandonReasonViewNotFound     = message.AbandonReasonViewNotFound
	AbandonReasonProviderShutdown = message.AbandonReasonProviderShutdown
	AbandonReasonInvalidGeometry  = message.AbandonReasonInvalidGeometry
)

// LocalGeometryは、ローカル座標系での計測結果です。
type LocalGeometry struct {
	X      float64 // 親要素からの相対X座標
	Y      float64 // 親要素からの相対Y座標
	Width  float64 // 幅
	Height float64 // 高さ
	PageX  float64 // ルートコンテンツからの相対X座標
	PageY  float64 // ルートコンテンツからの相対Y座標
}

// Validは、すべての値が有限であり、幅と高さが0以上であるかどうかを返却します。
func (g LocalGeometry) Valid() bool {
	return finite(g.X, g.Y, g.Width, g.Height, g.PageX, g.PageY) && g.Width >= 0 && g.Height >= 0
}

// WindowGeometryは、ウィンドウ座標系での計測結果です。
type WindowGeometry struct {
	X      float64 // ウィンドウからの相対X座標
	Y      float64 // ウィンドウからの相対Y座標
	Width  float64 // 幅
	Height float64 // 高さ
}

// Validは、すべての値が有限であり、幅と高さが0以上であるかどうかを返却します。
func (g WindowGeometry) Valid() bool {
	return finite(g.X, g.Y, g.Width, g.Height) && g.Width >= 0 && g.Height >= 0
}

func finite(vs ...float64) bool {
	for _, v := range vs {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return false
		}
	}
	return true
}
