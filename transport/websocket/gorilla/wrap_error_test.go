package gorilla

import (
	"io"
	"net"
	"testing"

	gwebsocket "github.com/gorilla/websocket"
	"github.com/stretchr/testify/assert"

	"github.com/aptpod/viewmeasure-go/errors"
	"github.com/aptpod/viewmeasure-go/transport"
)

func Test_handlerError(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want error
	}{
		{
			name: "normal closure",
			err:  &gwebsocket.CloseError{Code: gwebsocket.CloseNormalClosure},
			want: errors.ErrConnectionNormalClose,
		},
		{
			name: "going away",
			err:  &gwebsocket.CloseError{Code: gwebsocket.CloseGoingAway},
			want: errors.ErrConnectionGoingAwayClose,
		},
		{
			name: "abnormal",
			err:  &gwebsocket.CloseError{Code: gwebsocket.CloseAbnormalClosure},
			want: errors.ErrConnectionAbnormalClose,
		},
		{
			name: "internal",
			err:  &gwebsocket.CloseError{Code: gwebsocket.CloseInternalServerErr},
			want: errors.ErrConnectionInternalErrorClose,
		},
		{
			name: "closed network connection",
			err:  net.ErrClosed,
			want: transport.ErrAlreadyClosed,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.ErrorIs(t, handlerError(tt.err), tt.want)
		})
	}

	assert.NoError(t, handlerError(nil))
	got := handlerError(io.ErrUnexpectedEOF)
	assert.ErrorIs(t, got, io.ErrUnexpectedEOF)
	assert.NotErrorIs(t, got, transport.ErrAlreadyClosed)
}

func Test_closeCode(t *testing.T) {
	tests := []struct {
		status transport.CloseStatus
		want   int
	}{
		{status: transport.CloseStatusNormal, want: gwebsocket.CloseNormalClosure},
		{status: transport.CloseStatusGoingAway, want: gwebsocket.CloseGoingAway},
		{status: transport.CloseStatusAbnormal, want: gwebsocket.CloseAbnormalClosure},
		{status: transport.CloseStatusInternalError, want: gwebsocket.CloseInternalServerErr},
		{status: transport.CloseStatus("unknown"), want: gwebsocket.CloseInternalServerErr},
	}
	for _, tt := range tests {
		t.Run(string(tt.status), func(t *testing.T) {
			assert.Equal(t, tt.want, closeCode(tt.status))
		})
	}
}
