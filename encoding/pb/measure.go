package pb

import (
	proto "github.com/gogo/protobuf/proto"
)

type MeasureRequest struct {
	RequestId uint32 `protobuf:"varint,1,opt,name=request_id,json=requestId,proto3" json:"request_id,omitempty"`
	Handle    int64  `protobuf:"varint,2,opt,name=handle,proto3" json:"handle,omitempty"`
}

func (m *MeasureRequest) Reset()         { *m = MeasureRequest{} }
func (m *MeasureRequest) String() string { return proto.CompactTextString(m) }
func (*MeasureRequest) ProtoMessage()    {}

type MeasureResponse struct {
	RequestId uint32  `protobuf:"varint,1,opt,name=request_id,json=requestId,proto3" json:"request_id,omitempty"`
	X         float64 `protobuf:"fixed64,2,opt,name=x,proto3" json:"x,omitempty"`
	Y         float64 `protobuf:"fixed64,3,opt,name=y,proto3" json:"y,omitempty"`
	Width     float64 `protobuf:"fixed64,4,opt,name=width,proto3" json:"width,omitempty"`
	Height    float64 `protobuf:"fixed64,5,opt,name=height,proto3" json:"height,omitempty"`
	PageX     float64 `protobuf:"fixed64,6,opt,name=page_x,json=pageX,proto3" json:"page_x,omitempty"`
	PageY     float64 `protobuf:"fixed64,7,opt,name=page_y,json=pageY,proto3" json:"page_y,omitempty"`
}

func (m *MeasureResponse) Reset()         { *m = MeasureResponse{} }
func (m *MeasureResponse) String() string { return proto.CompactTextString(m) }
func (*MeasureResponse) ProtoMessage()    {}

type MeasureInWindowRequest struct {
	RequestId uint32 `protobuf:"varint,1,opt,name=request_id,json=requestId,proto3" json:"request_id,omitempty"`
	Handle    int64  `protobuf:"varint,2,opt,name=handle,proto3" json:"handle,omitempty"`
}

func (m *MeasureInWindowRequest) Reset()         { *m = MeasureInWindowRequest{} }
func (m *MeasureInWindowRequest) String() string { return proto.CompactTextString(m) }
func (*MeasureInWindowRequest) ProtoMessage()    {}

type MeasureInWindowResponse struct {
	RequestId uint32  `protobuf:"varint,1,opt,name=request_id,json=requestId,proto3" json:"request_id,omitempty"`
	X         float64 `protobuf:"fixed64,2,opt,name=x,proto3" json:"x,omitempty"`
	Y         float64 `protobuf:"fixed64,3,opt,name=y,proto3" json:"y,omitempty"`
	Width     float64 `protobuf:"fixed64,4,opt,name=width,proto3" json:"width,omitempty"`
	Height    float64 `protobuf:"fixed64,5,opt,name=height,proto3" json:"height,omitempty"`
}

func (m *MeasureInWindowResponse) Reset()         { *m = MeasureInWindowResponse{} }
func (m *MeasureInWindowResponse) String() string { return proto.CompactTextString(m) }
func (*MeasureInWindowResponse) ProtoMessage()    {}

type MeasureAbandoned struct {
	RequestId uint32 `protobuf:"varint,1,opt,name=request_id,json=requestId,proto3" json:"request_id,omitempty"`
	Reason    int32  `protobuf:"varint,2,opt,name=reason,proto3" json:"reason,omitempty"`
}

func (m *MeasureAbandoned) Reset()         { *m = MeasureAbandoned{} }
func (m *MeasureAbandoned) String() string { return proto.CompactTextString(m) }
func (*MeasureAbandoned) ProtoMessage()    {}
