/*
Package pb は、計測プロトコルの Protocol Buffers 表現を定義するパッケージです。

各メッセージは protobuf タグを持つ構造体として定義され、 github.com/gogo/protobuf/proto および
github.com/gogo/protobuf/jsonpb によってリフレクションでエンコードされます。

フィールド番号は後方互換性を保つため変更しないでください。
*/
package pb

import (
	proto "github.com/gogo/protobuf/proto"
)

// Messageは、すべてのメッセージを格納するエンベロープです。
//
// いずれか1つのフィールドのみが設定されます。
type Message struct {
	ConnectRequest          *ConnectRequest          `protobuf:"bytes,1,opt,name=connect_request,json=connectRequest,proto3" json:"connect_request,omitempty"`
	ConnectResponse         *ConnectResponse         `protobuf:"bytes,2,opt,name=connect_response,json=connectResponse,proto3" json:"connect_response,omitempty"`
	Disconnect              *Disconnect              `protobuf:"bytes,3,opt,name=disconnect,proto3" json:"disconnect,omitempty"`
	Ping                    *Ping                    `protobuf:"bytes,4,opt,name=ping,proto3" json:"ping,omitempty"`
	Pong                    *Pong                    `protobuf:"bytes,5,opt,name=pong,proto3" json:"pong,omitempty"`
	MeasureRequest          *MeasureRequest          `protobuf:"bytes,6,opt,name=measure_request,json=measureRequest,proto3" json:"measure_request,omitempty"`
	MeasureResponse         *MeasureResponse         `protobuf:"bytes,7,opt,name=measure_response,json=measureResponse,proto3" json:"measure_response,omitempty"`
	MeasureInWindowRequest  *MeasureInWindowRequest  `protobuf:"bytes,8,opt,name=measure_in_window_request,json=measureInWindowRequest,proto3" json:"measure_in_window_request,omitempty"`
	MeasureInWindowResponse *MeasureInWindowResponse `protobuf:"bytes,9,opt,name=measure_in_window_response,json=measureInWindowResponse,proto3" json:"measure_in_window_response,omitempty"`
	MeasureAbandoned        *MeasureAbandoned        `protobuf:"bytes,10,opt,name=measure_abandoned,json=measureAbandoned,proto3" json:"measure_abandoned,omitempty"`
}

func (m *Message) Reset()         { *m = Message{} }
func (m *Message) String() string { return proto.CompactTextString(m) }
func (*Message) ProtoMessage()    {}

type ConnectRequest struct {
	RequestId       uint32 `protobuf:"varint,1,opt,name=request_id,json=requestId,proto3" json:"request_id,omitempty"`
	ProtocolVersion string `protobuf:"bytes,2,opt,name=protocol_version,json=protocolVersion,proto3" json:"protocol_version,omitempty"`
	SessionId       string `protobuf:"bytes,3,opt,name=session_id,json=sessionId,proto3" json:"session_id,omitempty"`
	Capability      string `protobuf:"bytes,4,opt,name=capability,proto3" json:"capability,omitempty"`
	// 秒
	PingInterval uint32 `protobuf:"varint,5,opt,name=ping_interval,json=pingInterval,proto3" json:"ping_interval,omitempty"`
	// 秒
	PingTimeout uint32 `protobuf:"varint,6,opt,name=ping_timeout,json=pingTimeout,proto3" json:"ping_timeout,omitempty"`
	AccessToken string `protobuf:"bytes,7,opt,name=access_token,json=accessToken,proto3" json:"access_token,omitempty"`
}

func (m *ConnectRequest) Reset()         { *m = ConnectRequest{} }
func (m *ConnectRequest) String() string { return proto.CompactTextString(m) }
func (*ConnectRequest) ProtoMessage()    {}

type ConnectResponse struct {
	RequestId       uint32 `protobuf:"varint,1,opt,name=request_id,json=requestId,proto3" json:"request_id,omitempty"`
	ProtocolVersion string `protobuf:"bytes,2,opt,name=protocol_version,json=protocolVersion,proto3" json:"protocol_version,omitempty"`
	ResultCode      int32  `protobuf:"varint,3,opt,name=result_code,json=resultCode,proto3" json:"result_code,omitempty"`
	ResultString    string `protobuf:"bytes,4,opt,name=result_string,json=resultString,proto3" json:"result_string,omitempty"`
}

func (m *ConnectResponse) Reset()         { *m = ConnectResponse{} }
func (m *ConnectResponse) String() string { return proto.CompactTextString(m) }
func (*ConnectResponse) ProtoMessage()    {}

type Disconnect struct {
	ResultCode   int32  `protobuf:"varint,1,opt,name=result_code,json=resultCode,proto3" json:"result_code,omitempty"`
	ResultString string `protobuf:"bytes,2,opt,name=result_string,json=resultString,proto3" json:"result_string,omitempty"`
}

func (m *Disconnect) Reset()         { *m = Disconnect{} }
func (m *Disconnect) String() string { return proto.CompactTextString(m) }
func (*Disconnect) ProtoMessage()    {}

type Ping struct {
	RequestId uint32 `protobuf:"varint,1,opt,name=request_id,json=requestId,proto3" json:"request_id,omitempty"`
}

func (m *Ping) Reset()         { *m = Ping{} }
func (m *Ping) String() string { return proto.CompactTextString(m) }
func (*Ping) ProtoMessage()    {}

type Pong struct {
	RequestId uint32 `protobuf:"varint,1,opt,name=request_id,json=requestId,proto3" json:"request_id,omitempty"`
}

func (m *Pong) Reset()         { *m = Pong{} }
func (m *Pong) String() string { return proto.CompactTextString(m) }
func (*Pong) ProtoMessage()    {}
