/*
Package convert は、メッセージと Protocol Buffers 表現との相互変換を提供するパッケージです。
*/
package convert

import (
	"math"

	"github.com/aptpod/viewmeasure-go/encoding/pb"
	"github.com/aptpod/viewmeasure-go/errors"
	"github.com/aptpod/viewmeasure-go/message"
)

//nolint:gocyclo
func WireToProto(in message.Message) (*pb.Message, error) {
	switch msg := in.(type) {
	case *message.ConnectRequest:
		interval, err := toSecondsProto(msg.PingInterval.Seconds())
		if err != nil {
			return nil, errorConvertToProto(msg, err)
		}
		timeout, err := toSecondsProto(msg.PingTimeout.Seconds())
		if err != nil {
			return nil, errorConvertToProto(msg, err)
		}
		return &pb.Message{ConnectRequest: &pb.ConnectRequest{
			RequestId:       uint32(msg.RequestID),
			ProtocolVersion: msg.ProtocolVersion,
			SessionId:       msg.SessionID.String(),
			Capability:      msg.Capability,
			PingInterval:    interval,
			PingTimeout:     timeout,
			AccessToken:     msg.AccessToken,
		}}, nil
	case *message.ConnectResponse:
		rc, err := toResultCodeProto(msg.ResultCode)
		if err != nil {
			return nil, errorConvertToProto(msg, err)
		}
		return &pb.Message{ConnectResponse: &pb.ConnectResponse{
			RequestId:       uint32(msg.RequestID),
			ProtocolVersion: msg.ProtocolVersion,
			ResultCode:      rc,
			ResultString:    msg.ResultString,
		}}, nil
	case *message.Disconnect:
		rc, err := toResultCodeProto(msg.ResultCode)
		if err != nil {
			return nil, errorConvertToProto(msg, err)
		}
		return &pb.Message{Disconnect: &pb.Disconnect{
			ResultCode:   rc,
			ResultString: msg.ResultString,
		}}, nil
	case *message.Ping:
		return &pb.Message{Ping: &pb.Ping{
			RequestId: uint32(msg.RequestID),
		}}, nil
	case *message.Pong:
		return &pb.Message{Pong: &pb.Pong{
			RequestId: uint32(msg.RequestID),
		}}, nil
	case *message.MeasureRequest:
		return &pb.Message{MeasureRequest: &pb.MeasureRequest{
			RequestId: uint32(msg.RequestID),
			Handle:    int64(msg.Handle),
		}}, nil
	case *message.MeasureResponse:
		return &pb.Message{MeasureResponse: &pb.MeasureResponse{
			RequestId: uint32(msg.RequestID),
			X:         msg.X,
			Y:         msg.Y,
			Width:     msg.Width,
			Height:    msg.Height,
			PageX:     msg.PageX,
			PageY:     msg.PageY,
		}}, nil
	case *message.MeasureInWindowRequest:
		return &pb.Message{MeasureInWindowRequest: &pb.MeasureInWindowRequest{
			RequestId: uint32(msg.RequestID),
			Handle:    int64(msg.Handle),
		}}, nil
	case *message.MeasureInWindowResponse:
		return &pb.Message{MeasureInWindowResponse: &pb.MeasureInWindowResponse{
			RequestId: uint32(msg.RequestID),
			X:         msg.X,
			Y:         msg.Y,
			Width:     msg.Width,
			Height:    msg.Height,
		}}, nil
	case *message.MeasureAbandoned:
		reason, err := toAbandonReasonProto(msg.Reason)
		if err != nil {
			return nil, errorConvertToProto(msg, err)
		}
		return &pb.Message{MeasureAbandoned: &pb.MeasureAbandoned{
			RequestId: uint32(msg.RequestID),
			Reason:    reason,
		}}, nil
	case nil:
		return nil, errors.Errorf("nil message: %w", errors.ErrMalformedMessage)
	}
	return nil, errors.Errorf("unknown message type %T: %w", in, errors.ErrMalformedMessage)
}

func toResultCodeProto(in message.ResultCode) (int32, error) {
	if in < message.ResultCodeSucceeded || in > message.ResultCodeTooLargeMessageSize {
		return 0, errors.Errorf("invalid result code %d: %w", in, errors.ErrMalformedMessage)
	}
	return int32(in), nil
}

func toAbandonReasonProto(in message.AbandonReason) (int32, error) {
	if in < message.AbandonReasonViewUnmounted || in > message.AbandonReasonInvalidGeometry {
		return 0, errors.Errorf("invalid abandon reason %d: %w", in, errors.ErrMalformedMessage)
	}
	return int32(in), nil
}

func toSecondsProto(sec float64) (uint32, error) {
	if sec < 0 || sec > math.MaxUint32 {
		return 0, errors.Errorf("duration %vs out of range: %w", sec, errors.ErrMalformedMessage)
	}
	return uint32(sec), nil
}

func errorConvertToProto(m message.Message, err error) error {
	return errors.Errorf("failed to wire message %T: %w", m, err)
}
