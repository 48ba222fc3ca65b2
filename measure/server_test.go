package measure_test

import (
	"context"
	"net/http/httptest"
	"strings"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"

	"github.com/aptpod/viewmeasure-go/errors"
	. "github.com/aptpod/viewmeasure-go/measure"
	"github.com/aptpod/viewmeasure-go/transport"
	"github.com/aptpod/viewmeasure-go/transport/compress"
	"github.com/aptpod/viewmeasure-go/transport/websocket"
	"github.com/aptpod/viewmeasure-go/transport/websocket/nhooyr"
	"github.com/aptpod/viewmeasure-go/wire"
)

type served struct {
	conn   *Conn
	cancel context.CancelFunc
	errCh  chan error
}

// serveOnPipeは、Pipe上でServerを起動し、そこへ接続したConnを返却します。
func serveOnPipe(t *testing.T, srv *Server, opts ...ConnOption) *served {
	t.Helper()
	srvtr, clitr := transport.Pipe()
	ctx, cancel := context.WithCancel(context.Background())
	errCh := make(chan error, 1)
	go func() {
		errCh <- srv.ServeTransport(ctx, srvtr)
	}()

	opts = append([]ConnOption{WithConnDialer(transport.DialerFunc(func(transport.DialConfig) (transport.Transport, error) {
		return clitr, nil
	}))}, opts...)
	conn, err := Connect("pipe", transport.NamePipe, opts...)
	if err != nil {
		cancel()
		srvtr.Close()
		<-errCh
		require.NoError(t, err)
	}
	return &served{conn: conn, cancel: cancel, errCh: errCh}
}

func (s *served) close(t *testing.T) {
	t.Helper()
	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()
	assert.NoError(t, s.conn.Close(ctx))
	select {
	case err := <-s.errCh:
		assert.NoError(t, err)
	case <-time.After(time.Second):
		t.Fatal("server not finished")
	}
	s.cancel()
}

func newTestServer(t *testing.T, p Provider, opts ...ServerOption) *Server {
	t.Helper()
	r := NewRegistry()
	require.NoError(t, r.Register(ServiceName, p))
	return NewServer(r, opts...)
}

func TestServer_Measure(t *testing.T) {
	defer goleak.VerifyNone(t)
	s := serveOnPipe(t, newTestServer(t, newFakeProvider()))
	defer s.close(t)

	r := NewRegistry()
	require.NoError(t, r.Register(ServiceName, s.conn))
	svc, ok := ResolveDefault(r)
	require.True(t, ok)

	ch := make(chan LocalGeometry, 1)
	svc.Measure(42, func(g LocalGeometry) { ch <- g })
	assert.Equal(t, LocalGeometry{X: 10, Y: 20, Width: 100, Height: 50, PageX: 110, PageY: 220}, receiveLocal(t, ch))

	wch := make(chan WindowGeometry, 1)
	svc.MeasureInWindow(42, func(g WindowGeometry) { wch <- g })
	assert.Equal(t, WindowGeometry{X: 15, Y: 25, Width: 100, Height: 50}, receiveWindow(t, wch))
}

func TestServer_Measure_NotMounted(t *testing.T) {
	defer goleak.VerifyNone(t)
	s := serveOnPipe(t, newTestServer(t, newFakeProvider()))
	defer s.close(t)

	svc := NewService(s.conn)
	var called int32
	svc.Measure(999, func(LocalGeometry) { atomic.AddInt32(&called, 1) })

	f := svc.MeasureInWindowFuture(999)
	select {
	case <-f.Abandoned():
	case <-time.After(time.Second):
		t.Fatal("not abandoned")
	}
	reason, _ := f.AbandonReason()
	assert.Equal(t, AbandonReasonViewNotFound, reason)
	assert.Equal(t, int32(0), atomic.LoadInt32(&called))
}

func TestServer_SlowCallback(t *testing.T) {
	defer goleak.VerifyNone(t)
	s := serveOnPipe(t, newTestServer(t, newFakeProvider()),
		WithConnPingInterval(20*time.Millisecond),
		WithConnPingTimeout(50*time.Millisecond),
	)
	defer s.close(t)

	svc := NewService(s.conn)
	entered := make(chan struct{})
	release := make(chan struct{})
	defer close(release)
	svc.Measure(42, func(LocalGeometry) {
		close(entered)
		<-release
	})
	select {
	case <-entered:
	case <-time.After(time.Second):
		t.Fatal("callback not called")
	}

	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()
	f := svc.MeasureInWindowFuture(42)
	got, ok := f.Wait(ctx)
	require.True(t, ok)
	assert.Equal(t, WindowGeometry{X: 15, Y: 25, Width: 100, Height: 50}, got)

	select {
	case <-s.conn.Closed():
		t.Fatal("connection closed while a callback was running")
	case <-time.After(200 * time.Millisecond):
	}
}

func TestServer_Measure_OutOfOrder(t *testing.T) {
	defer goleak.VerifyNone(t)
	p := newFakeProvider()
	geometry7 := LocalGeometry{X: 1, Y: 2, Width: 3, Height: 4, PageX: 5, PageY: 6}
	p.local[7] = geometry7
	gate := make(chan struct{})
	p.gate[7] = gate
	s := serveOnPipe(t, newTestServer(t, p))
	defer s.close(t)

	svc := NewService(s.conn)
	ch7 := make(chan LocalGeometry, 1)
	ch42 := make(chan LocalGeometry, 1)
	svc.Measure(7, func(g LocalGeometry) { ch7 <- g })
	svc.Measure(42, func(g LocalGeometry) { ch42 <- g })

	// 後から要求した42が先に完了する
	assert.Equal(t, geometry42, receiveLocal(t, ch42))
	select {
	case <-ch7:
		t.Fatal("gated request completed")
	default:
	}
	close(gate)
	assert.Equal(t, geometry7, receiveLocal(t, ch7))
}

func TestServer_Measure_ConcurrentSameHandle(t *testing.T) {
	defer goleak.VerifyNone(t)
	s := serveOnPipe(t, newTestServer(t, newFakeProvider()))
	defer s.close(t)

	svc := NewService(s.conn)
	const n = 32
	ch := make(chan LocalGeometry, n)
	wch := make(chan WindowGeometry, n)
	var wg sync.WaitGroup
	for i := 0; i < n; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			svc.Measure(42, func(g LocalGeometry) { ch <- g })
			svc.MeasureInWindow(42, func(g WindowGeometry) { wch <- g })
		}()
	}
	wg.Wait()
	for i := 0; i < n; i++ {
		assert.Equal(t, geometry42, receiveLocal(t, ch))
		assert.Equal(t, window42, receiveWindow(t, wch))
	}
}

func TestServer_InvalidGeometry(t *testing.T) {
	defer goleak.VerifyNone(t)
	p := newFakeProvider()
	p.local[7] = LocalGeometry{Width: -5}
	s := serveOnPipe(t, newTestServer(t, p))
	defer s.close(t)

	f := NewService(s.conn).MeasureFuture(7)
	select {
	case <-f.Abandoned():
	case <-time.After(time.Second):
		t.Fatal("not abandoned")
	}
	reason, _ := f.AbandonReason()
	assert.Equal(t, AbandonReasonInvalidGeometry, reason)
}

func TestServer_Shutdown(t *testing.T) {
	defer goleak.VerifyNone(t)
	p := newFakeProvider()
	p.hang[42] = true
	s := serveOnPipe(t, newTestServer(t, p))

	svc := NewService(s.conn)
	f := svc.MeasureFuture(42)
	assert.Eventually(t, func() bool { return p.callCount() == 1 }, time.Second, time.Millisecond)

	s.cancel()
	select {
	case err := <-s.errCh:
		assert.NoError(t, err)
	case <-time.After(time.Second):
		t.Fatal("server not finished")
	}
	select {
	case <-f.Abandoned():
	case <-time.After(2 * time.Second):
		t.Fatal("not abandoned")
	}
	reason, _ := f.AbandonReason()
	assert.Equal(t, AbandonReasonProviderShutdown, reason)

	// 切断後の要求はすぐに破棄されます。
	<-s.conn.Closed()
	f = svc.MeasureFuture(42)
	select {
	case <-f.Abandoned():
	case <-time.After(time.Second):
		t.Fatal("not abandoned")
	}
	assert.NoError(t, s.conn.Close(context.Background()))
}

func TestServer_Unauthorized(t *testing.T) {
	defer goleak.VerifyNone(t)
	srv := newTestServer(t, newFakeProvider(), WithServerAuthenticate(func(ctx context.Context, token string) error {
		if token != "secret" {
			return errors.New("invalid token")
		}
		return nil
	}))

	srvtr, clitr := transport.Pipe()
	errCh := make(chan error, 1)
	go func() {
		errCh <- srv.ServeTransport(context.Background(), srvtr)
	}()
	_, err := Connect("pipe", transport.NamePipe,
		WithConnDialer(transport.DialerFunc(func(transport.DialConfig) (transport.Transport, error) {
			return clitr, nil
		})),
		WithConnTokenSource(NewStaticTokenSource("wrong")),
	)
	assert.ErrorIs(t, err, wire.ErrUnauthorized)
	assert.ErrorIs(t, <-errCh, wire.ErrUnauthorized)

	s := serveOnPipe(t, srv, WithConnTokenSource(TokenSourceFunc(func() (Token, error) {
		return "secret", nil
	})))
	s.close(t)
}

func TestServer_CapabilityNotFound(t *testing.T) {
	defer goleak.VerifyNone(t)
	srv := newTestServer(t, newFakeProvider())

	srvtr, clitr := transport.Pipe()
	errCh := make(chan error, 1)
	go func() {
		errCh <- srv.ServeTransport(context.Background(), srvtr)
	}()
	_, err := Connect("pipe", transport.NamePipe,
		WithConnDialer(transport.DialerFunc(func(transport.DialConfig) (transport.Transport, error) {
			return clitr, nil
		})),
		WithConnCapability("Unknown"),
	)
	assert.ErrorIs(t, err, wire.ErrCapabilityNotFound)
	assert.ErrorIs(t, <-errCh, wire.ErrCapabilityNotFound)
}

func TestConnect_DialRetry(t *testing.T) {
	defer goleak.VerifyNone(t)
	var count int32
	_, err := Connect("pipe", transport.NamePipe,
		WithConnDialer(transport.DialerFunc(func(transport.DialConfig) (transport.Transport, error) {
			atomic.AddInt32(&count, 1)
			return nil, errors.New("refused")
		})),
		WithConnMaxDialAttempt(2),
	)
	assert.Error(t, err)
	assert.Equal(t, int32(2), atomic.LoadInt32(&count))
}

func TestConnect_UnsupportedTransport(t *testing.T) {
	_, err := Connect("127.0.0.1:1", "carrier-pigeon")
	assert.ErrorIs(t, err, ErrUnsupportedTransport)
}

func TestServer_WebSocket(t *testing.T) {
	tests := []struct {
		name     string
		encoding EncodingName
		dialFunc websocket.DialFunc
		accept   AcceptFunc
		compress compress.Config
	}{
		{name: "gorilla proto", encoding: EncodingProtobuf},
		{name: "nhooyr json", encoding: EncodingJSON, dialFunc: nhooyr.Dial, accept: nhooyr.Accept},
		{name: "gorilla json compressed", encoding: EncodingJSON, compress: compress.Config{Enable: true}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var opts []ServerOption
			if tt.accept != nil {
				opts = append(opts, WithServerAcceptFunc(tt.accept))
			}
			ts := httptest.NewServer(newTestServer(t, newFakeProvider(), opts...).Handler())
			defer ts.Close()

			conn, err := Connect(strings.TrimPrefix(ts.URL, "http://"), TransportWebSocket,
				WithConnEncoding(tt.encoding),
				WithConnWebSocket(websocket.DialerConfig{DialFunc: tt.dialFunc}),
				WithConnReadTimeout(5*time.Second),
				WithConnCompress(tt.compress),
			)
			require.NoError(t, err)
			defer conn.Close(context.Background())

			ctx, cancel := context.WithTimeout(context.Background(), time.Second)
			defer cancel()
			svc := NewService(conn)
			got, ok := svc.MeasureFuture(42).Wait(ctx)
			require.True(t, ok)
			assert.Equal(t, geometry42, got)
			wgot, ok := svc.MeasureInWindowFuture(42).Wait(ctx)
			require.True(t, ok)
			assert.Equal(t, window42, wgot)
		})
	}
}
