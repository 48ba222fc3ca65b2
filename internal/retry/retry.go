package retry

import (
	"context"
	"math"
	"math/rand"
	"time"
)

var (
	randFloat64         = rand.Float64
	defaultBaseInterval = 100 * time.Millisecond
	defaultMaxInterval  = 5 * time.Second
)

// RetryはExponential Backoff and Jitter方式のリトライを行います。
//
// Jitterは 0.5 ~ 1.5のランダム値です。
type Retry struct {
	// 最大試行回数。0はリトライをし続けます。デフォルトは0です。
	MaxAttempt int

	// 基準リトライ間隔。デフォルトは100ミリ秒です。
	BaseInterval time.Duration

	// 最大基準リトライ間隔。デフォルトは5秒です。
	MaxBaseInterval time.Duration
}

// Funcは、リトライ対象の関数です。attemptは0から始まる試行回数です。
//
// nilを返却した場合、またはPermanentでラップしたエラーを返却した場合はリトライを終了します。
type Func func(attempt int) error

type permanentError struct {
	err error
}

func (e *permanentError) Error() string { return e.err.Error() }
func (e *permanentError) Unwrap() error { return e.err }

// Permanentは、リトライしても成功しないエラーであることを表すためにerrをラップします。
func Permanent(err error) error {
	if err == nil {
		return nil
	}
	return &permanentError{err: err}
}

// Doは、fが成功するか、最大試行回数に達するか、ctxが終了するまでfを繰り返し呼び出します。
//
// 最後にfが返却したエラーを返却します。ctxが先に終了した場合はctx.Err()を返却します。
func (r Retry) Do(ctx context.Context, f Func) error {
	baseInterval := r.BaseInterval
	if baseInterval == 0 {
		baseInterval = defaultBaseInterval
	}
	maxBaseInterval := r.MaxBaseInterval
	if maxBaseInterval == 0 {
		maxBaseInterval = defaultMaxInterval
	}
	for attempt := 0; ; attempt++ {
		err := f(attempt)
		if err == nil {
			return nil
		}
		if perr, ok := err.(*permanentError); ok {
			return perr.err
		}
		if r.MaxAttempt != 0 && attempt+1 >= r.MaxAttempt {
			return err
		}

		timer := time.NewTimer(nextSleep(attempt, baseInterval, maxBaseInterval))
		select {
		case <-ctx.Done():
			timer.Stop()
			return ctx.Err()
		case <-timer.C:
		}
	}
}

func nextSleep(count int, base, max time.Duration) time.Duration {
	baseInterval := float64(base) * math.Pow(2, float64(count))
	if baseInterval > float64(max) {
		baseInterval = float64(max)
	}

	jitter := 0.5 + randFloat64()
	return time.Duration(baseInterval * jitter)
}

// Doは、デフォルト設定のRetryでfを実行します。
func Do(ctx context.Context, f Func) error {
	return Retry{}.Do(ctx, f)
}
