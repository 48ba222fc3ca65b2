package measure_test

import (
	"context"
	"math"
	"sync/atomic"
	"testing"
	"time"

	"github.com/golang/mock/gomock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"

	. "github.com/aptpod/viewmeasure-go/measure"
	"github.com/aptpod/viewmeasure-go/measure/measuremock"
)

func TestService_Measure(t *testing.T) {
	defer goleak.VerifyNone(t)
	svc := NewService(newFakeProvider())

	ch := make(chan LocalGeometry, 1)
	svc.Measure(42, func(g LocalGeometry) { ch <- g })
	got := receiveLocal(t, ch)
	assert.Equal(t, LocalGeometry{X: 10, Y: 20, Width: 100, Height: 50, PageX: 110, PageY: 220}, got)
	assert.True(t, got.Valid())
}

func TestService_MeasureInWindow(t *testing.T) {
	defer goleak.VerifyNone(t)
	svc := NewService(newFakeProvider())

	ch := make(chan WindowGeometry, 1)
	svc.MeasureInWindow(42, func(g WindowGeometry) { ch <- g })
	got := receiveWindow(t, ch)
	assert.Equal(t, WindowGeometry{X: 15, Y: 25, Width: 100, Height: 50}, got)
	assert.True(t, got.Valid())
}

func TestService_Measure_Idempotent(t *testing.T) {
	defer goleak.VerifyNone(t)
	svc := NewService(newFakeProvider())

	ch := make(chan LocalGeometry, 2)
	svc.Measure(42, func(g LocalGeometry) { ch <- g })
	svc.Measure(42, func(g LocalGeometry) { ch <- g })
	assert.Equal(t, receiveLocal(t, ch), receiveLocal(t, ch))
}

func TestService_Measure_NotMounted(t *testing.T) {
	tests := []struct {
		name     string
		provider Provider
	}{
		{name: "abandonable", provider: newFakeProvider()},
		{name: "silent", provider: silentProvider{p: newFakeProvider()}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			defer goleak.VerifyNone(t)
			svc := NewService(tt.provider)

			var called int32
			svc.Measure(999, func(LocalGeometry) { atomic.AddInt32(&called, 1) })
			svc.MeasureInWindow(999, func(WindowGeometry) { atomic.AddInt32(&called, 1) })
			time.Sleep(50 * time.Millisecond)
			assert.Equal(t, int32(0), atomic.LoadInt32(&called))
		})
	}
}

func TestService_Measure_AtMostOnce(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	p := measuremock.NewMockProvider(ctrl)
	p.EXPECT().Measure(ViewHandle(42), gomock.Any()).Do(func(_ ViewHandle, onResult func(LocalGeometry)) {
		onResult(geometry42)
		onResult(LocalGeometry{X: 1})
	})
	p.EXPECT().MeasureInWindow(ViewHandle(42), gomock.Any()).Do(func(_ ViewHandle, onResult func(WindowGeometry)) {
		onResult(window42)
		onResult(window42)
	})

	svc := NewService(p)
	var local []LocalGeometry
	svc.Measure(42, func(g LocalGeometry) { local = append(local, g) })
	assert.Equal(t, []LocalGeometry{geometry42}, local)

	var window []WindowGeometry
	svc.MeasureInWindow(42, func(g WindowGeometry) { window = append(window, g) })
	assert.Equal(t, []WindowGeometry{window42}, window)
}

func TestService_Measure_InvalidGeometry(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	p := measuremock.NewMockAbandonableProvider(ctrl)
	p.EXPECT().MeasureWithAbandon(ViewHandle(42), gomock.Any(), gomock.Any()).Do(func(_ ViewHandle, onResult func(LocalGeometry), _ func(AbandonReason)) {
		onResult(LocalGeometry{Width: math.NaN()})
		onResult(geometry42)
	})
	p.EXPECT().MeasureInWindowWithAbandon(ViewHandle(42), gomock.Any(), gomock.Any()).Do(func(_ ViewHandle, onResult func(WindowGeometry), _ func(AbandonReason)) {
		onResult(WindowGeometry{Height: -1})
	})

	svc := NewService(p)
	f := svc.MeasureFuture(42)
	<-f.Abandoned()
	reason, ok := f.AbandonReason()
	assert.True(t, ok)
	assert.Equal(t, AbandonReasonInvalidGeometry, reason)
	_, ok = f.Result()
	assert.False(t, ok)

	wf := svc.MeasureInWindowFuture(42)
	<-wf.Abandoned()
	reason, _ = wf.AbandonReason()
	assert.Equal(t, AbandonReasonInvalidGeometry, reason)
}

func TestService_Measure_AbandonThenResult(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	p := measuremock.NewMockAbandonableProvider(ctrl)
	p.EXPECT().MeasureWithAbandon(ViewHandle(42), gomock.Any(), gomock.Any()).Do(func(_ ViewHandle, onResult func(LocalGeometry), onAbandon func(AbandonReason)) {
		onAbandon(AbandonReasonViewUnmounted)
		onResult(geometry42)
	})

	var called bool
	NewService(p).Measure(42, func(LocalGeometry) { called = true })
	assert.False(t, called)
}

func TestService_MeasureFuture(t *testing.T) {
	defer goleak.VerifyNone(t)
	svc := NewService(newFakeProvider())
	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()

	got, ok := svc.MeasureFuture(42).Wait(ctx)
	require.True(t, ok)
	assert.Equal(t, geometry42, got)

	wgot, ok := svc.MeasureInWindowFuture(42).Wait(ctx)
	require.True(t, ok)
	assert.Equal(t, window42, wgot)

	f := svc.MeasureFuture(999)
	_, ok = f.Wait(ctx)
	assert.False(t, ok)
	reason, ok := f.AbandonReason()
	assert.True(t, ok)
	assert.Equal(t, AbandonReasonViewNotFound, reason)
}

func TestService_MeasureFuture_NeverCompletes(t *testing.T) {
	defer goleak.VerifyNone(t)
	p := newFakeProvider()
	p.hang[42] = true
	svc := NewService(p)

	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()
	_, ok := svc.MeasureFuture(42).Wait(ctx)
	assert.False(t, ok)
}
