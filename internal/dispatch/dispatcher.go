package dispatch

import (
	"sync"
)

// Dispatcherは、登録された関数を単一のゴルーチンで登録順に実行します。
type Dispatcher struct {
	handler []func()
	cond    *sync.Cond
	closed  bool
	done    chan struct{}
}

// Newは、Dispatcherを生成します。
//
// 関数を実行するには Run を別のゴルーチンで呼び出します。
func New() *Dispatcher {
	return &Dispatcher{
		handler: []func(){},
		cond:    sync.NewCond(&sync.Mutex{}),
		done:    make(chan struct{}),
	}
}

// Runは、登録された関数を実行し続けます。
//
// Closeが呼び出された後、登録済みの関数をすべて実行してから終了します。
func (d *Dispatcher) Run() {
	defer close(d.done)
	for {
		d.cond.L.Lock()
		for len(d.handler) == 0 && !d.closed {
			d.cond.Wait()
		}
		if len(d.handler) == 0 {
			d.cond.L.Unlock()
			return
		}
		handlers := make([]func(), 0, len(d.handler))
		handlers = append(handlers, d.handler...)
		d.handler = d.handler[:0]
		d.cond.L.Unlock()
		for _, h := range handlers {
			h()
		}
	}
}

// Addは、関数を登録します。
//
// Close済みの場合は登録せずにfalseを返却します。
func (d *Dispatcher) Add(f func()) bool {
	d.cond.L.Lock()
	defer d.cond.L.Unlock()
	if d.closed {
		return false
	}
	d.handler = append(d.handler, f)
	d.cond.Signal()
	return true
}

// Lenは、未実行の関数の数を返却します。
func (d *Dispatcher) Len() int {
	d.cond.L.Lock()
	defer d.cond.L.Unlock()
	return len(d.handler)
}

// Closeは、新たな登録を締め切ります。
func (d *Dispatcher) Close() {
	d.cond.L.Lock()
	d.closed = true
	d.cond.Broadcast()
	d.cond.L.Unlock()
}

// Doneは、Runが終了した時に閉じられるチャンネルを返却します。
func (d *Dispatcher) Done() <-chan struct{} {
	return d.done
}
