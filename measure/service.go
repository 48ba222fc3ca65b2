package measure

//go:generate mockgen -destination ./${GOPACKAGE}mock/${GOFILE} -package ${GOPACKAGE}mock -source ./${GOFILE}

import (
	"context"
	"sync"

	"github.com/aptpod/viewmeasure-go/log"
)

// Providerは、描画ツリーを管理し、要素の計測を行うインターフェースです。
//
// 計測結果は onResult へ非同期に通知します。要素が計測前に破棄された場合は onResult を呼び出しません。
type Provider interface {
	// Measureは、要素をローカル座標系で計測します。
	Measure(handle ViewHandle, onResult func(LocalGeometry))

	// MeasureInWindowは、要素をウィンドウ座標系で計測します。
	MeasureInWindow(handle ViewHandle, onResult func(WindowGeometry))
}

// AbandonableProviderは、計測要求を破棄した場合に通知を行うProviderです。
//
// onAbandon は onResult の代わりに高々一度呼び出されます。
type AbandonableProvider interface {
	Provider

	// MeasureWithAbandonは、破棄通知付きで要素をローカル座標系で計測します。
	MeasureWithAbandon(handle ViewHandle, onResult func(LocalGeometry), onAbandon func(AbandonReason))

	// MeasureInWindowWithAbandonは、破棄通知付きで要素をウィンドウ座標系で計測します。
	MeasureInWindowWithAbandon(handle ViewHandle, onResult func(WindowGeometry), onAbandon func(AbandonReason))
}

// Serviceは、計測サービスです。
//
// Providerへ要求を転送し、結果の通知が高々一度であることと計測結果の妥当性を保証します。
type Service struct {
	provider Provider
	logger   log.Logger
}

// ServiceOptionは、Serviceのオプションです。
type ServiceOption func(*Service)

// WithServiceLoggerは、ロガーを設定します。
func WithServiceLogger(l log.Logger) ServiceOption {
	return func(s *Service) {
		s.logger = l
	}
}

// NewServiceは、Providerを使用するServiceを生成します。
func NewService(p Provider, opts ...ServiceOption) *Service {
	s := &Service{
		provider: p,
		logger:   log.NewNop(),
	}
	for _, o := range opts {
		o(s)
	}
	return s
}

// Measureは、要素をローカル座標系で計測します。
//
// 呼び出しはすぐに返却されます。onResultは別のゴルーチンから高々一度呼び出されます。
// 計測が完了する前に要素が破棄された場合、onResultは呼び出されません。
func (s *Service) Measure(handle ViewHandle, onResult func(LocalGeometry)) {
	s.measure(handle, onResult, nil)
}

// MeasureInWindowは、要素をウィンドウ座標系で計測します。
//
// 呼び出し規則は Measure と同様です。
func (s *Service) MeasureInWindow(handle ViewHandle, onResult func(WindowGeometry)) {
	s.measureInWindow(handle, onResult, nil)
}

// MeasureFutureは、ローカル座標系での計測結果を Future として返却します。
func (s *Service) MeasureFuture(handle ViewHandle) *Future[LocalGeometry] {
	f := newFuture[LocalGeometry]()
	s.measure(handle, f.complete, f.abandon)
	return f
}

// MeasureInWindowFutureは、ウィンドウ座標系での計測結果を Future として返却します。
func (s *Service) MeasureInWindowFuture(handle ViewHandle) *Future[WindowGeometry] {
	f := newFuture[WindowGeometry]()
	s.measureInWindow(handle, f.complete, f.abandon)
	return f
}

func (s *Service) measure(handle ViewHandle, onResult func(LocalGeometry), onAbandon func(AbandonReason)) {
	st := newSettle(s.logger, handle, onAbandon)
	deliver := func(g LocalGeometry) {
		if !g.Valid() {
			st.invalid(g)
			return
		}
		st.do(func() {
			if onResult != nil {
				onResult(g)
			}
		})
	}
	if ap, ok := s.provider.(AbandonableProvider); ok {
		ap.MeasureWithAbandon(handle, deliver, st.abandon)
		return
	}
	s.provider.Measure(handle, deliver)
}

func (s *Service) measureInWindow(handle ViewHandle, onResult func(WindowGeometry), onAbandon func(AbandonReason)) {
	st := newSettle(s.logger, handle, onAbandon)
	deliver := func(g WindowGeometry) {
		if !g.Valid() {
			st.invalid(g)
			return
		}
		st.do(func() {
			if onResult != nil {
				onResult(g)
			}
		})
	}
	if ap, ok := s.provider.(AbandonableProvider); ok {
		ap.MeasureInWindowWithAbandon(handle, deliver, st.abandon)
		return
	}
	s.provider.MeasureInWindow(handle, deliver)
}

// settleは、1つの計測要求の結果を高々一度だけ確定させます。
type settle struct {
	once      sync.Once
	logger    log.Logger
	handle    ViewHandle
	onAbandon func(AbandonReason)
}

func newSettle(logger log.Logger, handle ViewHandle, onAbandon func(AbandonReason)) *settle {
	return &settle{
		logger:    logger,
		handle:    handle,
		onAbandon: onAbandon,
	}
}

func (s *settle) do(f func()) {
	s.once.Do(f)
}

func (s *settle) abandon(reason AbandonReason) {
	s.once.Do(func() {
		s.logger.Debugf(context.Background(), "measurement abandoned %s: %s", s.handle, reason)
		if s.onAbandon != nil {
			s.onAbandon(reason)
		}
	})
}

func (s *settle) invalid(g any) {
	s.logger.Warnf(context.Background(), "provider returned invalid geometry for %s: %+v", s.handle, g)
	s.abandon(AbandonReasonInvalidGeometry)
}
