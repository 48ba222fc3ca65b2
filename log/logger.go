package log

import (
	"context"
	"fmt"
	"math/rand"
	"time"
)

func init() {
	rand.Seed(time.Now().UnixNano())
}

// Loggerは、viewmeasure-go内で使用するロガーインターフェースです。
type Logger interface {
	Infof(context.Context, string, ...interface{})
	Warnf(context.Context, string, ...interface{})
	Errorf(context.Context, string, ...interface{})
	Debugf(context.Context, string, ...interface{})
}

var (
	trackTransportIDKey = "trackTransportIDKey"
	trackRequestIDKey   = "trackRequestIDKey"
)

// WithTrackTransportIDは、新たにトランスポートIDを採番しコンテキストにセットします。
//
// トランスポートIDはトランスポートが開通されたタイミングでセットします。
// ここで設定されたトランスポートIDは常にログ出力します。
func WithTrackTransportID(ctx context.Context) context.Context {
	return context.WithValue(ctx, &trackTransportIDKey, genTrackID())
}

// TrackTransportIDは、コンテキストにセットされたトランスポートIDを取得します。
func TrackTransportID(ctx context.Context) string {
	v, ok := ctx.Value(&trackTransportIDKey).(string)
	if !ok {
		return ""
	}
	return v
}

// WithTrackRequestIDは、新たに計測リクエストの追跡IDを採番しコンテキストにセットします。
//
// 追跡IDは計測リクエストを受け付けたタイミングでセットします。
func WithTrackRequestID(ctx context.Context) context.Context {
	return context.WithValue(ctx, &trackRequestIDKey, genTrackID())
}

// TrackRequestIDは、コンテキストにセットされた計測リクエストの追跡IDを取得します。
func TrackRequestID(ctx context.Context) string {
	v, ok := ctx.Value(&trackRequestIDKey).(string)
	if !ok {
		return ""
	}
	return v
}

func genTrackID() string {
	return fmt.Sprintf("%04d-%04d-%04d", rand.Int31n(10000), rand.Int31n(10000), rand.Int31n(10000))
}
