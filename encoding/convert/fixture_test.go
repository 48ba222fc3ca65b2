package convert_test

import (
	"time"

	uuid "github.com/google/uuid"

	"github.com/aptpod/viewmeasure-go/encoding/pb"
	"github.com/aptpod/viewmeasure-go/message"
)

var (
	sessionID = uuid.MustParse("11111111-1111-1111-1111-111111111111")

	connectRequest = &message.ConnectRequest{
		RequestID:       1,
		ProtocolVersion: "v1.0.0",
		SessionID:       sessionID,
		Capability:      "ViewMeasurement",
		PingInterval:    10 * time.Second,
		PingTimeout:     2 * time.Second,
		AccessToken:     "token",
	}
	connectRequestPB = &pb.Message{ConnectRequest: &pb.ConnectRequest{
		RequestId:       1,
		ProtocolVersion: "v1.0.0",
		SessionId:       "11111111-1111-1111-1111-111111111111",
		Capability:      "ViewMeasurement",
		PingInterval:    10,
		PingTimeout:     2,
		AccessToken:     "token",
	}}

	connectResponse = &message.ConnectResponse{
		RequestID:       1,
		ProtocolVersion: "v1.0.0",
		ResultCode:      message.ResultCodeSucceeded,
		ResultString:    "ok",
	}
	connectResponsePB = &pb.Message{ConnectResponse: &pb.ConnectResponse{
		RequestId:       1,
		ProtocolVersion: "v1.0.0",
		ResultCode:      1,
		ResultString:    "ok",
	}}

	disconnect = &message.Disconnect{
		ResultCode:   message.ResultCodeNormalClosure,
		ResultString: "bye",
	}
	disconnectPB = &pb.Message{Disconnect: &pb.Disconnect{
		ResultCode:   2,
		ResultString: "bye",
	}}

	ping   = &message.Ping{RequestID: 3}
	pingPB = &pb.Message{Ping: &pb.Ping{RequestId: 3}}
	pong   = &message.Pong{RequestID: 3}
	pongPB = &pb.Message{Pong: &pb.Pong{RequestId: 3}}

	measureRequest   = &message.MeasureRequest{RequestID: 5, Handle: 42}
	measureRequestPB = &pb.Message{MeasureRequest: &pb.MeasureRequest{RequestId: 5, Handle: 42}}

	measureResponse = &message.MeasureResponse{
		RequestID: 5,
		X:         10, Y: 20, Width: 100, Height: 50, PageX: 110, PageY: 220,
	}
	measureResponsePB = &pb.Message{MeasureResponse: &pb.MeasureResponse{
		RequestId: 5,
		X:         10, Y: 20, Width: 100, Height: 50, PageX: 110, PageY: 220,
	}}

	measureInWindowRequest   = &message.MeasureInWindowRequest{RequestID: 7, Handle: -1}
	measureInWindowRequestPB = &pb.Message{MeasureInWindowRequest: &pb.MeasureInWindowRequest{RequestId: 7, Handle: -1}}

	measureInWindowResponse = &message.MeasureInWindowResponse{
		RequestID: 7,
		X:         15.5, Y: -25, Width: 100, Height: 50,
	}
	measureInWindowResponsePB = &pb.Message{MeasureInWindowResponse: &pb.MeasureInWindowResponse{
		RequestId: 7,
		X:         15.5, Y: -25, Width: 100, Height: 50,
	}}

	measureAbandoned = &message.MeasureAbandoned{
		RequestID: 9,
		Reason:    message.AbandonReasonViewUnmounted,
	}
	measureAbandonedPB = &pb.Message{MeasureAbandoned: &pb.MeasureAbandoned{
		RequestId: 9,
		Reason:    1,
	}}
)
