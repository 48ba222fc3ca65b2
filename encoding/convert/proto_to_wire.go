package convert

import (
	"time"

	uuid "github.com/google/uuid"

	"github.com/aptpod/viewmeasure-go/encoding/pb"
	"github.com/aptpod/viewmeasure-go/errors"
	"github.com/aptpod/viewmeasure-go/message"
)

//nolint:gocyclo
func ProtoToWire(in *pb.Message) (message.Message, error) {
	if in == nil {
		return nil, errors.Errorf("nil message: %w", errors.ErrMalformedMessage)
	}
	switch {
	case in.ConnectRequest != nil:
		msg := in.ConnectRequest
		sessionID, err := toUUID(msg.SessionId)
		if err != nil {
			return nil, errorConvertToWire(msg, err)
		}
		return &message.ConnectRequest{
			RequestID:       message.RequestID(msg.RequestId),
			ProtocolVersion: msg.ProtocolVersion,
			SessionID:       sessionID,
			Capability:      msg.Capability,
			PingInterval:    time.Duration(msg.PingInterval) * time.Second,
			PingTimeout:     time.Duration(msg.PingTimeout) * time.Second,
			AccessToken:     msg.AccessToken,
		}, nil
	case in.ConnectResponse != nil:
		msg := in.ConnectResponse
		rc, err := toResultCode(msg.ResultCode)
		if err != nil {
			return nil, errorConvertToWire(msg, err)
		}
		return &message.ConnectResponse{
			RequestID:       message.RequestID(msg.RequestId),
			ProtocolVersion: msg.ProtocolVersion,
			ResultCode:      rc,
			ResultString:    msg.ResultString,
		}, nil
	case in.Disconnect != nil:
		msg := in.Disconnect
		rc, err := toResultCode(msg.ResultCode)
		if err != nil {
			return nil, errorConvertToWire(msg, err)
		}
		return &message.Disconnect{
			ResultCode:   rc,
			ResultString: msg.ResultString,
		}, nil
	case in.Ping != nil:
		return &message.Ping{
			RequestID: message.RequestID(in.Ping.RequestId),
		}, nil
	case in.Pong != nil:
		return &message.Pong{
			RequestID: message.RequestID(in.Pong.RequestId),
		}, nil
	case in.MeasureRequest != nil:
		return &message.MeasureRequest{
			RequestID: message.RequestID(in.MeasureRequest.RequestId),
			Handle:    message.ViewHandle(in.MeasureRequest.Handle),
		}, nil
	case in.MeasureResponse != nil:
		msg := in.MeasureResponse
		return &message.MeasureResponse{
			RequestID: message.RequestID(msg.RequestId),
			X:         msg.X,
			Y:         msg.Y,
			Width:     msg.Width,
			Height:    msg.Height,
			PageX:     msg.PageX,
			PageY:     msg.PageY,
		}, nil
	case in.MeasureInWindowRequest != nil:
		return &message.MeasureInWindowRequest{
			RequestID: message.RequestID(in.MeasureInWindowRequest.RequestId),
			Handle:    message.ViewHandle(in.MeasureInWindowRequest.Handle),
		}, nil
	case in.MeasureInWindowResponse != nil:
		msg := in.MeasureInWindowResponse
		return &message.MeasureInWindowResponse{
			RequestID: message.RequestID(msg.RequestId),
			X:         msg.X,
			Y:         msg.Y,
			Width:     msg.Width,
			Height:    msg.Height,
		}, nil
	case in.MeasureAbandoned != nil:
		msg := in.MeasureAbandoned
		reason, err := toAbandonReason(msg.Reason)
		if err != nil {
			return nil, errorConvertToWire(msg, err)
		}
		return &message.MeasureAbandoned{
			RequestID: message.RequestID(msg.RequestId),
			Reason:    reason,
		}, nil
	}
	return nil, errors.Errorf("empty message: %w", errors.ErrMalformedMessage)
}

func toResultCode(in int32) (message.ResultCode, error) {
	res := message.ResultCode(in)
	if res < message.ResultCodeSucceeded || res > message.ResultCodeTooLargeMessageSize {
		return 0, errors.Errorf("result_code:%d : %w", in, errors.ErrMalformedMessage)
	}
	return res, nil
}

func toAbandonReason(in int32) (message.AbandonReason, error) {
	res := message.AbandonReason(in)
	if res < message.AbandonReasonViewUnmounted || res > message.AbandonReasonInvalidGeometry {
		return 0, errors.Errorf("reason:%d : %w", in, errors.ErrMalformedMessage)
	}
	return res, nil
}

func toUUID(in string) (uuid.UUID, error) {
	if in == "" {
		return uuid.Nil, nil
	}
	res, err := uuid.Parse(in)
	if err != nil {
		return uuid.UUID{}, errors.Errorf("session_id:%s : %w", in, errors.ErrMalformedMessage)
	}
	return res, nil
}

func errorConvertToWire(m any, err error) error {
	return errors.Errorf("failed to protobuf %T: %w", m, err)
}
