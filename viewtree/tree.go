/*
Package viewtree は、メモリ上の描画ツリーを使用する計測Providerを提供するパッケージです。

要素はハンドルで識別され、親要素からの相対位置と大きさ（Frame）、スクロール量を持ちます。
ルート要素はウィンドウ内での位置と、ウィンドウの表示領域のインセットを持ちます。

Treeの座標は物理ピクセルです。計測結果は WithTreePixelRatio で指定した比率で割った、密度に依存しない単位で返却されます。

計測要求はキューに積まれ、ディスパッチ用のゴルーチンで順に処理されます。
処理される前に要素がアンマウントされた要求は破棄され、結果は通知されません。
*/
package viewtree

import (
	"context"
	"math"
	"sort"
	"sync"

	"github.com/aptpod/viewmeasure-go/errors"
	"github.com/aptpod/viewmeasure-go/internal/dispatch"
	"github.com/aptpod/viewmeasure-go/log"
	"github.com/aptpod/viewmeasure-go/measure"
)

var (
	// ErrAlreadyMountedは、同じハンドルの要素が既にマウントされている場合のエラーです。
	ErrAlreadyMounted = errors.New("already mounted")
	// ErrNotMountedは、ハンドルに対応する要素がマウントされていない場合のエラーです。
	ErrNotMounted = errors.New("not mounted")
	// ErrNotRootは、ルート要素ではない要素にルート要素の操作をした場合のエラーです。
	ErrNotRoot = errors.New("not a root view")
	// ErrInvalidFrameは、大きさが負、または有限でないFrameを指定した場合のエラーです。
	ErrInvalidFrame = errors.New("invalid frame")
	// ErrInvalidPointは、有限でない座標を指定した場合のエラーです。
	ErrInvalidPoint = errors.New("invalid point")
	// ErrTreeClosedは、閉じられたTreeを操作した場合のエラーです。
	ErrTreeClosed = errors.New("tree closed")
)

var _ measure.AbandonableProvider = (*Tree)(nil)

// Frameは、親要素からの相対位置と大きさです。
type Frame struct {
	X      float64 `yaml:"x"`
	Y      float64 `yaml:"y"`
	Width  float64 `yaml:"width"`
	Height float64 `yaml:"height"`
}

func (f Frame) valid() bool {
	return measure.WindowGeometry(f).Valid()
}

// Pointは、座標です。
type Point struct {
	X float64 `yaml:"x"`
	Y float64 `yaml:"y"`
}

func (p Point) valid() bool {
	return finite(p.X) && finite(p.Y)
}

func finite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}

type node struct {
	handle       measure.ViewHandle
	parent       *node
	children     map[measure.ViewHandle]*node
	frame        Frame
	scroll       Point
	windowOrigin Point
	windowInset  Point
}

var defaultTreeConfig = TreeConfig{
	Logger:     log.NewNop(),
	PixelRatio: 1,
}

// TreeConfigは、Treeの設定です。
type TreeConfig struct {
	// Loggerはロガーです。
	Logger log.Logger

	// PixelRatioは、物理ピクセルと計測結果の単位の比率です。
	//
	// 0以下、または有限でない場合は1を使用します。
	PixelRatio float64

	// RoundToPixelがtrueの場合、計測結果を比率で割る前に整数の物理ピクセルへ丸めます。
	RoundToPixel bool
}

// TreeOptionは、Treeのオプションです。
type TreeOption func(*TreeConfig)

// WithTreeLoggerは、ロガーを設定します。
func WithTreeLogger(l log.Logger) TreeOption {
	return func(c *TreeConfig) {
		c.Logger = l
	}
}

// WithTreePixelRatioは、物理ピクセルと計測結果の単位の比率を設定します。
func WithTreePixelRatio(r float64) TreeOption {
	return func(c *TreeConfig) {
		c.PixelRatio = r
	}
}

// WithTreeRoundToPixelは、計測結果を整数の物理ピクセルへ丸めるかどうかを設定します。
func WithTreeRoundToPixel(round bool) TreeOption {
	return func(c *TreeConfig) {
		c.RoundToPixel = round
	}
}

// Treeは、メモリ上の描画ツリーです。
//
// Treeは measure.AbandonableProvider を実装しています。
// 複数のゴルーチンから同時に操作できます。
type Tree struct {
	mu     sync.RWMutex
	nodes  map[measure.ViewHandle]*node
	closed bool

	dispatcher   *dispatch.Dispatcher
	logger       log.Logger
	pixelRatio   float64
	roundToPixel bool
}

// Newは、空のTreeを生成します。
//
// 使用後は Close を呼び出してください。
func New(opts ...TreeOption) *Tree {
	conf := defaultTreeConfig
	for _, o := range opts {
		o(&conf)
	}
	if conf.Logger == nil {
		conf.Logger = log.NewNop()
	}
	if !finite(conf.PixelRatio) || conf.PixelRatio <= 0 {
		conf.Logger.Warnf(context.Background(), "invalid pixel ratio %v, use 1", conf.PixelRatio)
		conf.PixelRatio = 1
	}
	t := &Tree{
		nodes:        map[measure.ViewHandle]*node{},
		dispatcher:   dispatch.New(),
		logger:       conf.Logger,
		pixelRatio:   conf.PixelRatio,
		roundToPixel: conf.RoundToPixel,
	}
	go t.dispatcher.Run()
	return t
}

// MountRootは、ルート要素をマウントします。
func (t *Tree) MountRoot(handle measure.ViewHandle, frame Frame, windowOrigin Point) error {
	return t.mount(handle, nil, frame, windowOrigin)
}

// Mountは、parentの子要素としてマウントします。
func (t *Tree) Mount(handle, parent measure.ViewHandle, frame Frame) error {
	return t.mount(handle, &parent, frame, Point{})
}

func (t *Tree) mount(handle measure.ViewHandle, parent *measure.ViewHandle, frame Frame, windowOrigin Point) error {
	if !frame.valid() {
		return errors.Errorf("%s %+v: %w", handle, frame, ErrInvalidFrame)
	}
	if !windowOrigin.valid() {
		return errors.Errorf("%s window origin %+v: %w", handle, windowOrigin, ErrInvalidPoint)
	}
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.closed {
		return ErrTreeClosed
	}
	if _, ok := t.nodes[handle]; ok {
		return errors.Errorf("%s: %w", handle, ErrAlreadyMounted)
	}
	n := &node{
		handle:       handle,
		children:     map[measure.ViewHandle]*node{},
		frame:        frame,
		windowOrigin: windowOrigin,
	}
	if parent != nil {
		p, ok := t.nodes[*parent]
		if !ok {
			return errors.Errorf("parent %s: %w", *parent, ErrNotMounted)
		}
		n.parent = p
		p.children[handle] = n
	}
	t.nodes[handle] = n
	return nil
}

// Unmountは、要素とその子孫をすべてアンマウントします。
func (t *Tree) Unmount(handle measure.ViewHandle) error {
	t.mu.Lock()
	defer t.mu.Unlock()
	n, ok := t.nodes[handle]
	if !ok {
		return errors.Errorf("%s: %w", handle, ErrNotMounted)
	}
	if n.parent != nil {
		delete(n.parent.children, handle)
	}
	t.unmountLocked(n)
	return nil
}

func (t *Tree) unmountLocked(n *node) {
	for _, c := range n.children {
		t.unmountLocked(c)
	}
	delete(t.nodes, n.handle)
}

// SetFrameは、要素のFrameを更新します。
func (t *Tree) SetFrame(handle measure.ViewHandle, frame Frame) error {
	if !frame.valid() {
		return errors.Errorf("%s %+v: %w", handle, frame, ErrInvalidFrame)
	}
	return t.update(handle, func(n *node) error {
		n.frame = frame
		return nil
	})
}

// SetScrollは、要素のスクロール量を更新します。
//
// スクロール量は子孫要素のウィンドウ座標系での位置にのみ影響します。
func (t *Tree) SetScroll(handle measure.ViewHandle, scroll Point) error {
	if !scroll.valid() {
		return errors.Errorf("%s scroll %+v: %w", handle, scroll, ErrInvalidPoint)
	}
	return t.update(handle, func(n *node) error {
		n.scroll = scroll
		return nil
	})
}

// SetWindowOriginは、ルート要素のウィンドウ内での位置を更新します。
func (t *Tree) SetWindowOrigin(handle measure.ViewHandle, origin Point) error {
	if !origin.valid() {
		return errors.Errorf("%s window origin %+v: %w", handle, origin, ErrInvalidPoint)
	}
	return t.updateRoot(handle, func(n *node) {
		n.windowOrigin = origin
	})
}

// SetWindowInsetは、ルート要素のウィンドウの表示領域の左上の位置を更新します。
//
// ウィンドウ座標系の計測結果からインセットを差し引きます。
func (t *Tree) SetWindowInset(handle measure.ViewHandle, inset Point) error {
	if !inset.valid() {
		return errors.Errorf("%s window inset %+v: %w", handle, inset, ErrInvalidPoint)
	}
	return t.updateRoot(handle, func(n *node) {
		n.windowInset = inset
	})
}

func (t *Tree) updateRoot(handle measure.ViewHandle, f func(n *node)) error {
	return t.update(handle, func(n *node) error {
		if n.parent != nil {
			return errors.Errorf("%s: %w", handle, ErrNotRoot)
		}
		f(n)
		return nil
	})
}

func (t *Tree) update(handle measure.ViewHandle, f func(n *node) error) error {
	t.mu.Lock()
	defer t.mu.Unlock()
	n, ok := t.nodes[handle]
	if !ok {
		return errors.Errorf("%s: %w", handle, ErrNotMounted)
	}
	return f(n)
}

// Mountedは、要素がマウントされているかどうかを返却します。
func (t *Tree) Mounted(handle measure.ViewHandle) bool {
	t.mu.RLock()
	defer t.mu.RUnlock()
	_, ok := t.nodes[handle]
	return ok
}

// Handlesは、マウントされている要素のハンドルを昇順で返却します。
func (t *Tree) Handles() []measure.ViewHandle {
	t.mu.RLock()
	defer t.mu.RUnlock()
	res := make([]measure.ViewHandle, 0, len(t.nodes))
	for h := range t.nodes {
		res = append(res, h)
	}
	sort.Slice(res, func(i, j int) bool { return res[i] < res[j] })
	return res
}

// Measureは、要素をローカル座標系で計測します。
func (t *Tree) Measure(handle measure.ViewHandle, onResult func(measure.LocalGeometry)) {
	t.MeasureWithAbandon(handle, onResult, nil)
}

// MeasureInWindowは、要素をウィンドウ座標系で計測します。
func (t *Tree) MeasureInWindow(handle measure.ViewHandle, onResult func(measure.WindowGeometry)) {
	t.MeasureInWindowWithAbandon(handle, onResult, nil)
}

// MeasureWithAbandonは、破棄通知付きで要素をローカル座標系で計測します。
func (t *Tree) MeasureWithAbandon(handle measure.ViewHandle, onResult func(measure.LocalGeometry), onAbandon func(measure.AbandonReason)) {
	t.enqueue(handle, onAbandon, func(n *node) {
		page := n.pagePosition()
		g := measure.LocalGeometry{
			X:      t.toDIP(n.frame.X),
			Y:      t.toDIP(n.frame.Y),
			Width:  t.toDIP(n.frame.Width),
			Height: t.toDIP(n.frame.Height),
			PageX:  t.toDIP(page.X),
			PageY:  t.toDIP(page.Y),
		}
		if onResult != nil {
			onResult(g)
		}
	})
}

// MeasureInWindowWithAbandonは、破棄通知付きで要素をウィンドウ座標系で計測します。
func (t *Tree) MeasureInWindowWithAbandon(handle measure.ViewHandle, onResult func(measure.WindowGeometry), onAbandon func(measure.AbandonReason)) {
	t.enqueue(handle, onAbandon, func(n *node) {
		win := n.windowPosition()
		g := measure.WindowGeometry{
			X:      t.toDIP(win.X),
			Y:      t.toDIP(win.Y),
			Width:  t.toDIP(n.frame.Width),
			Height: t.toDIP(n.frame.Height),
		}
		if onResult != nil {
			onResult(g)
		}
	})
}

func (t *Tree) toDIP(v float64) float64 {
	if t.roundToPixel {
		v = math.Floor(v + 0.5)
	}
	return v / t.pixelRatio
}

func (t *Tree) enqueue(handle measure.ViewHandle, onAbandon func(measure.AbandonReason), measureFunc func(n *node)) {
	abandon := func(reason measure.AbandonReason) {
		t.logger.Debugf(context.Background(), "abandon %s: %s", handle, reason)
		if onAbandon != nil {
			onAbandon(reason)
		}
	}
	mountedAtRequest := t.Mounted(handle)
	ok := t.dispatcher.Add(func() {
		t.mu.RLock()
		if t.closed {
			t.mu.RUnlock()
			abandon(measure.AbandonReasonProviderShutdown)
			return
		}
		n, ok := t.nodes[handle]
		if !ok {
			t.mu.RUnlock()
			if mountedAtRequest {
				abandon(measure.AbandonReasonViewUnmounted)
			} else {
				abandon(measure.AbandonReasonViewNotFound)
			}
			return
		}
		snapshot := n.snapshot()
		t.mu.RUnlock()
		measureFunc(snapshot)
	})
	if !ok {
		abandon(measure.AbandonReasonProviderShutdown)
	}
}

// snapshotは、祖先を含めた要素の複製を返却します。
func (n *node) snapshot() *node {
	res := &node{
		handle:       n.handle,
		frame:        n.frame,
		scroll:       n.scroll,
		windowOrigin: n.windowOrigin,
		windowInset:  n.windowInset,
	}
	if n.parent != nil {
		res.parent = n.parent.snapshot()
	}
	return res
}

func (n *node) root() *node {
	for n.parent != nil {
		n = n.parent
	}
	return n
}

// pagePositionは、ルートコンテンツからの相対位置です。スクロール量は考慮しません。
func (n *node) pagePosition() Point {
	var p Point
	for cur := n; cur != nil; cur = cur.parent {
		p.X += cur.frame.X
		p.Y += cur.frame.Y
	}
	return p
}

// windowPositionは、ウィンドウの表示領域からの相対位置です。祖先要素のスクロール量を差し引きます。
func (n *node) windowPosition() Point {
	p := n.pagePosition()
	root := n.root()
	p.X += root.windowOrigin.X - root.windowInset.X
	p.Y += root.windowOrigin.Y - root.windowInset.Y
	for cur := n.parent; cur != nil; cur = cur.parent {
		p.X -= cur.scroll.X
		p.Y -= cur.scroll.Y
	}
	return p
}

// Closeは、Treeを閉じます。
//
// 処理されていない計測要求はすべて AbandonReasonProviderShutdown で破棄されます。
// Closeは破棄の完了を待たないため、計測結果のコールバックの中からも呼び出せます。
// 完了を待つ場合は Done を使用します。
func (t *Tree) Close() error {
	t.mu.Lock()
	if t.closed {
		t.mu.Unlock()
		return nil
	}
	t.closed = true
	t.mu.Unlock()

	t.dispatcher.Close()
	return nil
}

// Doneは、Close後に処理されていない計測要求の破棄がすべて完了した時に閉じられるチャンネルを返却します。
func (t *Tree) Done() <-chan struct{} {
	return t.dispatcher.Done()
}
