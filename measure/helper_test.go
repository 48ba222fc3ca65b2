package measure_test

import (
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	. "github.com/aptpod/viewmeasure-go/measure"
)

var (
	geometry42 = LocalGeometry{X: 10, Y: 20, Width: 100, Height: 50, PageX: 110, PageY: 220}
	window42   = WindowGeometry{X: 15, Y: 25, Width: 100, Height: 50}
)

// fakeProviderは、登録された計測結果を別のゴルーチンから返却するProviderです。
//
// hangに含まれるハンドルへの要求には応答しません。
// gateに含まれるハンドルへの要求は、チャンネルが閉じられるまで応答を遅らせます。
type fakeProvider struct {
	mu     sync.Mutex
	local  map[ViewHandle]LocalGeometry
	window map[ViewHandle]WindowGeometry
	hang   map[ViewHandle]bool
	gate   map[ViewHandle]chan struct{}
	calls  int
}

func newFakeProvider() *fakeProvider {
	return &fakeProvider{
		local:  map[ViewHandle]LocalGeometry{42: geometry42},
		window: map[ViewHandle]WindowGeometry{42: window42},
		hang:   map[ViewHandle]bool{},
		gate:   map[ViewHandle]chan struct{}{},
	}
}

func (p *fakeProvider) Measure(handle ViewHandle, onResult func(LocalGeometry)) {
	p.MeasureWithAbandon(handle, onResult, nil)
}

func (p *fakeProvider) MeasureInWindow(handle ViewHandle, onResult func(WindowGeometry)) {
	p.MeasureInWindowWithAbandon(handle, onResult, nil)
}

func (p *fakeProvider) MeasureWithAbandon(handle ViewHandle, onResult func(LocalGeometry), onAbandon func(AbandonReason)) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.calls++
	if p.hang[handle] {
		return
	}
	g, ok := p.local[handle]
	gate := p.gate[handle]
	go func() {
		if gate != nil {
			<-gate
		}
		if !ok {
			if onAbandon != nil {
				onAbandon(AbandonReasonViewNotFound)
			}
			return
		}
		onResult(g)
	}()
}

func (p *fakeProvider) MeasureInWindowWithAbandon(handle ViewHandle, onResult func(WindowGeometry), onAbandon func(AbandonReason)) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.calls++
	if p.hang[handle] {
		return
	}
	g, ok := p.window[handle]
	gate := p.gate[handle]
	go func() {
		if gate != nil {
			<-gate
		}
		if !ok {
			if onAbandon != nil {
				onAbandon(AbandonReasonViewNotFound)
			}
			return
		}
		onResult(g)
	}()
}

func (p *fakeProvider) callCount() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.calls
}

// silentProviderは、破棄通知を行わないProviderです。
type silentProvider struct {
	p *fakeProvider
}

func (p silentProvider) Measure(handle ViewHandle, onResult func(LocalGeometry)) {
	p.p.Measure(handle, onResult)
}

func (p silentProvider) MeasureInWindow(handle ViewHandle, onResult func(WindowGeometry)) {
	p.p.MeasureInWindow(handle, onResult)
}

func receiveLocal(t *testing.T, ch <-chan LocalGeometry) LocalGeometry {
	t.Helper()
	select {
	case g := <-ch:
		return g
	case <-time.After(time.Second):
		require.FailNow(t, "no result")
	}
	return LocalGeometry{}
}

func receiveWindow(t *testing.T, ch <-chan WindowGeometry) WindowGeometry {
	t.Helper()
	select {
	case g := <-ch:
		return g
	case <-time.After(time.Second):
		require.FailNow(t, "no result")
	}
	return WindowGeometry{}
}
