package measure

import (
	"context"
	"sync"
)

// Futureは、非同期な計測結果です。
//
// 計測結果が確定すると Done が閉じられ、要求の破棄が判明した場合は Abandoned が閉じられます。
// どちらも閉じられないまま終わることがあります。
type Future[T any] struct {
	once      sync.Once
	done      chan struct{}
	abandoned chan struct{}
	result    T
	reason    AbandonReason
}

func newFuture[T any]() *Future[T] {
	return &Future[T]{
		done:      make(chan struct{}),
		abandoned: make(chan struct{}),
	}
}

func (f *Future[T]) complete(v T) {
	f.once.Do(func() {
		f.result = v
		close(f.done)
	})
}

func (f *Future[T]) abandon(reason AbandonReason) {
	f.once.Do(func() {
		f.reason = reason
		close(f.abandoned)
	})
}

// Doneは、計測結果が確定した時に閉じられるチャンネルを返却します。
func (f *Future[T]) Done() <-chan struct{} {
	return f.done
}

// Abandonedは、計測要求が破棄された時に閉じられるチャンネルを返却します。
func (f *Future[T]) Abandoned() <-chan struct{} {
	return f.abandoned
}

// Resultは、確定した計測結果を返却します。未確定の場合はokがfalseになります。
func (f *Future[T]) Result() (res T, ok bool) {
	select {
	case <-f.done:
		return f.result, true
	default:
		return res, false
	}
}

// AbandonReasonは、計測要求が破棄された理由を返却します。破棄されていない場合はokがfalseになります。
func (f *Future[T]) AbandonReason() (reason AbandonReason, ok bool) {
	select {
	case <-f.abandoned:
		return f.reason, true
	default:
		return 0, false
	}
}

// Waitは、計測結果が確定するまで待機します。
//
// ctxが終了した場合、または要求が破棄された場合はokがfalseになります。
func (f *Future[T]) Wait(ctx context.Context) (res T, ok bool) {
	select {
	case <-f.done:
		return f.result, true
	case <-f.abandoned:
		return res, false
	case <-ctx.Done():
		return res, false
	}
}
