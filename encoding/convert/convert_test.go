package convert_test

import (
	"testing"

	uuid "github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	. "github.com/aptpod/viewmeasure-go/encoding/convert"
	"github.com/aptpod/viewmeasure-go/encoding/pb"
	"github.com/aptpod/viewmeasure-go/errors"
	"github.com/aptpod/viewmeasure-go/message"
)

var cases = []struct {
	name string
	wire message.Message
	pb   *pb.Message
}{
	{name: "connectRequest", wire: connectRequest, pb: connectRequestPB},
	{name: "connectResponse", wire: connectResponse, pb: connectResponsePB},
	{name: "disconnect", wire: disconnect, pb: disconnectPB},
	{name: "ping", wire: ping, pb: pingPB},
	{name: "pong", wire: pong, pb: pongPB},
	{name: "measureRequest", wire: measureRequest, pb: measureRequestPB},
	{name: "measureResponse", wire: measureResponse, pb: measureResponsePB},
	{name: "measureInWindowRequest", wire: measureInWindowRequest, pb: measureInWindowRequestPB},
	{name: "measureInWindowResponse", wire: measureInWindowResponse, pb: measureInWindowResponsePB},
	{name: "measureAbandoned", wire: measureAbandoned, pb: measureAbandonedPB},
}

func TestWireToProto(t *testing.T) {
	for _, tt := range cases {
		t.Run(tt.name, func(t *testing.T) {
			got, err := WireToProto(tt.wire)
			require.NoError(t, err)
			assert.Equal(t, tt.pb, got)
		})
	}
}

func TestProtoToWire(t *testing.T) {
	for _, tt := range cases {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ProtoToWire(tt.pb)
			require.NoError(t, err)
			assert.Equal(t, tt.wire, got)
		})
	}
}

func TestWireToProto_Invalid(t *testing.T) {
	tests := []struct {
		name string
		in   message.Message
	}{
		{name: "nil", in: nil},
		{name: "unknown result code", in: &message.Disconnect{ResultCode: 0}},
		{name: "unknown abandon reason", in: &message.MeasureAbandoned{RequestID: 1, Reason: 99}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := WireToProto(tt.in)
			assert.ErrorIs(t, err, errors.ErrMalformedMessage)
		})
	}
}

func TestProtoToWire_Invalid(t *testing.T) {
	tests := []struct {
		name string
		in   *pb.Message
	}{
		{name: "nil", in: nil},
		{name: "empty", in: &pb.Message{}},
		{name: "bad session id", in: &pb.Message{ConnectRequest: &pb.ConnectRequest{SessionId: "not-a-uuid"}}},
		{name: "bad result code", in: &pb.Message{ConnectResponse: &pb.ConnectResponse{ResultCode: 100}}},
		{name: "bad reason", in: &pb.Message{MeasureAbandoned: &pb.MeasureAbandoned{Reason: -1}}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ProtoToWire(tt.in)
			assert.ErrorIs(t, err, errors.ErrMalformedMessage)
		})
	}
}

func TestToUUID(t *testing.T) {
	got, err := ToUUID("")
	require.NoError(t, err)
	assert.Equal(t, uuid.Nil, got)

	got, err = ToUUID("11111111-1111-1111-1111-111111111111")
	require.NoError(t, err)
	assert.Equal(t, sessionID, got)
}

func TestToResultCode(t *testing.T) {
	for rc := message.ResultCodeSucceeded; rc <= message.ResultCodeTooLargeMessageSize; rc++ {
		p, err := ToResultCodeProto(rc)
		require.NoError(t, err)
		got, err := ToResultCode(p)
		require.NoError(t, err)
		assert.Equal(t, rc, got)
	}
}

func TestToAbandonReason(t *testing.T) {
	for r := message.AbandonReasonViewUnmounted; r <= message.AbandonReasonInvalidGeometry; r++ {
		p, err := ToAbandonReasonProto(r)
		require.NoError(t, err)
		got, err := ToAbandonReason(p)
		require.NoError(t, err)
		assert.Equal(t, r, got)
	}
}
