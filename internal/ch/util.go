package ch

import "context"

// ReadOrDoneOneは、cから1つ値を読み出します。
//
// ctxが終了した場合、またはcが閉じられた場合はfalseを返却します。
func ReadOrDoneOne[T any](ctx context.Context, c <-chan T) (T, bool) {
	var t T
	select {
	case <-ctx.Done():
		return t, false
	case v, ok := <-c:
		if !ok {
			return t, false
		}
		return v, true
	}
}
