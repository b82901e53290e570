// Code generated by protoc-gen-go. DO NOT EDIT.
// versions:
// 	protoc-gen-go v1.36.10
// 	protoc        (unknown)
// source: proto/backend/v1/backend.proto

package backendpb

import (
	protoreflect "google.golang.org/protobuf/reflect/protoreflect"
	protoimpl "google.golang.org/protobuf/runtime/protoimpl"
	reflect "reflect"
	sync "sync"
	unsafe "unsafe"
)

const (
	// Verify that this generated code is sufficiently up-to-date.
	_ = protoimpl.EnforceVersion(20 - protoimpl.MinVersion)
	// Verify that runtime/protoimpl is sufficiently up-to-date.
	_ = protoimpl.EnforceVersion(protoimpl.MaxVersion - 20)
)

type PingRequest struct {
	state         protoimpl.MessageState `protogen:"open.v1"`
	unknownFields protoimpl.UnknownFields
	sizeCache     protoimpl.SizeCache
}

func (x *PingRequest) Reset() {
	*x = PingRequest{}
	mi := &file_proto_backend_v1_backend_proto_msgTypes[0]
	ms := protoimpl.X.MessageStateOf(protoimpl.Pointer(x))
	ms.StoreMessageInfo(mi)
}

func (x *PingRequest) String() string {
	return protoimpl.X.MessageStringOf(x)
}

func (*PingRequest) ProtoMessage() {}

func (x *PingRequest) ProtoReflect() protoreflect.Message {
	mi := &file_proto_backend_v1_backend_proto_msgTypes[0]
	if x != nil {
		ms := protoimpl.X.MessageStateOf(protoimpl.Pointer(x))
		if ms.LoadMessageInfo() == nil {
			ms.StoreMessageInfo(mi)
		}
		return ms
	}
	return mi.MessageOf(x)
}

// Deprecated: Use PingRequest.ProtoReflect.Descriptor instead.
func (*PingRequest) Descriptor() ([]byte, []int) {
	return file_proto_backend_v1_backend_proto_rawDescGZIP(), []int{0}
}

type PingResponse struct {
	state         protoimpl.MessageState `protogen:"open.v1"`
	Ok            bool                   `protobuf:"varint,1,opt,name=ok,proto3" json:"ok,omitempty"`
	unknownFields protoimpl.UnknownFields
	sizeCache     protoimpl.SizeCache
}

func (x *PingResponse) Reset() {
	*x = PingResponse{}
	mi := &file_proto_backend_v1_backend_proto_msgTypes[1]
	ms := protoimpl.X.MessageStateOf(protoimpl.Pointer(x))
	ms.StoreMessageInfo(mi)
}

func (x *PingResponse) String() string {
	return protoimpl.X.MessageStringOf(x)
}

func (*PingResponse) ProtoMessage() {}

func (x *PingResponse) ProtoReflect() protoreflect.Message {
	mi := &file_proto_backend_v1_backend_proto_msgTypes[1]
	if x != nil {
		ms := protoimpl.X.MessageStateOf(protoimpl.Pointer(x))
		if ms.LoadMessageInfo() == nil {
			ms.StoreMessageInfo(mi)
		}
		return ms
	}
	return mi.MessageOf(x)
}

// Deprecated: Use PingResponse.ProtoReflect.Descriptor instead.
func (*PingResponse) Descriptor() ([]byte, []int) {
	return file_proto_backend_v1_backend_proto_rawDescGZIP(), []int{1}
}

func (x *PingResponse) GetOk() bool {
	if x != nil {
		return x.Ok
	}
	return false
}

type DetachRequest struct {
	state         protoimpl.MessageState `protogen:"open.v1"`
	Owner         string                 `protobuf:"bytes,1,opt,name=owner,proto3" json:"owner,omitempty"`
	SessionId     int64                  `protobuf:"varint,2,opt,name=session_id,json=sessionId,proto3" json:"session_id,omitempty"`
	unknownFields protoimpl.UnknownFields
	sizeCache     protoimpl.SizeCache
}

func (x *DetachRequest) Reset() {
	*x = DetachRequest{}
	mi := &file_proto_backend_v1_backend_proto_msgTypes[2]
	ms := protoimpl.X.MessageStateOf(protoimpl.Pointer(x))
	ms.StoreMessageInfo(mi)
}

func (x *DetachRequest) String() string {
	return protoimpl.X.MessageStringOf(x)
}

func (*DetachRequest) ProtoMessage() {}

func (x *DetachRequest) ProtoReflect() protoreflect.Message {
	mi := &file_proto_backend_v1_backend_proto_msgTypes[2]
	if x != nil {
		ms := protoimpl.X.MessageStateOf(protoimpl.Pointer(x))
		if ms.LoadMessageInfo() == nil {
			ms.StoreMessageInfo(mi)
		}
		return ms
	}
	return mi.MessageOf(x)
}

// Deprecated: Use DetachRequest.ProtoReflect.Descriptor instead.
func (*DetachRequest) Descriptor() ([]byte, []int) {
	return file_proto_backend_v1_backend_proto_rawDescGZIP(), []int{2}
}

func (x *DetachRequest) GetOwner() string {
	if x != nil {
		return x.Owner
	}
	return ""
}

func (x *DetachRequest) GetSessionId() int64 {
	if x != nil {
		return x.SessionId
	}
	return 0
}

type DetachResponse struct {
	state         protoimpl.MessageState `protogen:"open.v1"`
	Launch        *LaunchConfig          `protobuf:"bytes,1,opt,name=launch,proto3" json:"launch,omitempty"`
	unknownFields protoimpl.UnknownFields
	sizeCache     protoimpl.SizeCache
}

func (x *DetachResponse) Reset() {
	*x = DetachResponse{}
	mi := &file_proto_backend_v1_backend_proto_msgTypes[3]
	ms := protoimpl.X.MessageStateOf(protoimpl.Pointer(x))
	ms.StoreMessageInfo(mi)
}

func (x *DetachResponse) String() string {
	return protoimpl.X.MessageStringOf(x)
}

func (*DetachResponse) ProtoMessage() {}

func (x *DetachResponse) ProtoReflect() protoreflect.Message {
	mi := &file_proto_backend_v1_backend_proto_msgTypes[3]
	if x != nil {
		ms := protoimpl.X.MessageStateOf(protoimpl.Pointer(x))
		if ms.LoadMessageInfo() == nil {
			ms.StoreMessageInfo(mi)
		}
		return ms
	}
	return mi.MessageOf(x)
}

// Deprecated: Use DetachResponse.ProtoReflect.Descriptor instead.
func (*DetachResponse) Descriptor() ([]byte, []int) {
	return file_proto_backend_v1_backend_proto_rawDescGZIP(), []int{3}
}

func (x *DetachResponse) GetLaunch() *LaunchConfig {
	if x != nil {
		return x.Launch
	}
	return nil
}

type LaunchConfig struct {
	state         protoimpl.MessageState `protogen:"open.v1"`
	Shell         string                 `protobuf:"bytes,1,opt,name=shell,proto3" json:"shell,omitempty"`
	Args          []string               `protobuf:"bytes,2,rep,name=args,proto3" json:"args,omitempty"`
	Env           map[string]string      `protobuf:"bytes,3,rep,name=env,proto3" json:"env,omitempty" protobuf_key:"bytes,1,opt,name=key" protobuf_val:"bytes,2,opt,name=value"`
	WorkingDir    string                 `protobuf:"bytes,4,opt,name=working_dir,json=workingDir,proto3" json:"working_dir,omitempty"`
	Title         string                 `protobuf:"bytes,5,opt,name=title,proto3" json:"title,omitempty"`
	Kind          string                 `protobuf:"bytes,6,opt,name=kind,proto3" json:"kind,omitempty"`
	Attach        *BackendDescriptor     `protobuf:"bytes,7,opt,name=attach,proto3" json:"attach,omitempty"`
	unknownFields protoimpl.UnknownFields
	sizeCache     protoimpl.SizeCache
}

func (x *LaunchConfig) Reset() {
	*x = LaunchConfig{}
	mi := &file_proto_backend_v1_backend_proto_msgTypes[4]
	ms := protoimpl.X.MessageStateOf(protoimpl.Pointer(x))
	ms.StoreMessageInfo(mi)
}

func (x *LaunchConfig) String() string {
	return protoimpl.X.MessageStringOf(x)
}

func (*LaunchConfig) ProtoMessage() {}

func (x *LaunchConfig) ProtoReflect() protoreflect.Message {
	mi := &file_proto_backend_v1_backend_proto_msgTypes[4]
	if x != nil {
		ms := protoimpl.X.MessageStateOf(protoimpl.Pointer(x))
		if ms.LoadMessageInfo() == nil {
			ms.StoreMessageInfo(mi)
		}
		return ms
	}
	return mi.MessageOf(x)
}

// Deprecated: Use LaunchConfig.ProtoReflect.Descriptor instead.
func (*LaunchConfig) Descriptor() ([]byte, []int) {
	return file_proto_backend_v1_backend_proto_rawDescGZIP(), []int{4}
}

func (x *LaunchConfig) GetShell() string {
	if x != nil {
		return x.Shell
	}
	return ""
}

func (x *LaunchConfig) GetArgs() []string {
	if x != nil {
		return x.Args
	}
	return nil
}

func (x *LaunchConfig) GetEnv() map[string]string {
	if x != nil {
		return x.Env
	}
	return nil
}

func (x *LaunchConfig) GetWorkingDir() string {
	if x != nil {
		return x.WorkingDir
	}
	return ""
}

func (x *LaunchConfig) GetTitle() string {
	if x != nil {
		return x.Title
	}
	return ""
}

func (x *LaunchConfig) GetKind() string {
	if x != nil {
		return x.Kind
	}
	return ""
}

func (x *LaunchConfig) GetAttach() *BackendDescriptor {
	if x != nil {
		return x.Attach
	}
	return nil
}

type BackendDescriptor struct {
	state         protoimpl.MessageState `protogen:"open.v1"`
	Owner         string                 `protobuf:"bytes,1,opt,name=owner,proto3" json:"owner,omitempty"`
	SessionId     int64                  `protobuf:"varint,2,opt,name=session_id,json=sessionId,proto3" json:"session_id,omitempty"`
	SocketPath    string                 `protobuf:"bytes,3,opt,name=socket_path,json=socketPath,proto3" json:"socket_path,omitempty"`
	Title         string                 `protobuf:"bytes,4,opt,name=title,proto3" json:"title,omitempty"`
	unknownFields protoimpl.UnknownFields
	sizeCache     protoimpl.SizeCache
}

func (x *BackendDescriptor) Reset() {
	*x = BackendDescriptor{}
	mi := &file_proto_backend_v1_backend_proto_msgTypes[5]
	ms := protoimpl.X.MessageStateOf(protoimpl.Pointer(x))
	ms.StoreMessageInfo(mi)
}

func (x *BackendDescriptor) String() string {
	return protoimpl.X.MessageStringOf(x)
}

func (*BackendDescriptor) ProtoMessage() {}

func (x *BackendDescriptor) ProtoReflect() protoreflect.Message {
	mi := &file_proto_backend_v1_backend_proto_msgTypes[5]
	if x != nil {
		ms := protoimpl.X.MessageStateOf(protoimpl.Pointer(x))
		if ms.LoadMessageInfo() == nil {
			ms.StoreMessageInfo(mi)
		}
		return ms
	}
	return mi.MessageOf(x)
}

// Deprecated: Use BackendDescriptor.ProtoReflect.Descriptor instead.
func (*BackendDescriptor) Descriptor() ([]byte, []int) {
	return file_proto_backend_v1_backend_proto_rawDescGZIP(), []int{5}
}

func (x *BackendDescriptor) GetOwner() string {
	if x != nil {
		return x.Owner
	}
	return ""
}

func (x *BackendDescriptor) GetSessionId() int64 {
	if x != nil {
		return x.SessionId
	}
	return 0
}

func (x *BackendDescriptor) GetSocketPath() string {
	if x != nil {
		return x.SocketPath
	}
	return ""
}

func (x *BackendDescriptor) GetTitle() string {
	if x != nil {
		return x.Title
	}
	return ""
}

type SessionInfo struct {
	state         protoimpl.MessageState `protogen:"open.v1"`
	Id            int64                  `protobuf:"varint,1,opt,name=id,proto3" json:"id,omitempty"`
	Identity      string                 `protobuf:"bytes,2,opt,name=identity,proto3" json:"identity,omitempty"`
	Title         string                 `protobuf:"bytes,3,opt,name=title,proto3" json:"title,omitempty"`
	unknownFields protoimpl.UnknownFields
	sizeCache     protoimpl.SizeCache
}

func (x *SessionInfo) Reset() {
	*x = SessionInfo{}
	mi := &file_proto_backend_v1_backend_proto_msgTypes[6]
	ms := protoimpl.X.MessageStateOf(protoimpl.Pointer(x))
	ms.StoreMessageInfo(mi)
}

func (x *SessionInfo) String() string {
	return protoimpl.X.MessageStringOf(x)
}

func (*SessionInfo) ProtoMessage() {}

func (x *SessionInfo) ProtoReflect() protoreflect.Message {
	mi := &file_proto_backend_v1_backend_proto_msgTypes[6]
	if x != nil {
		ms := protoimpl.X.MessageStateOf(protoimpl.Pointer(x))
		if ms.LoadMessageInfo() == nil {
			ms.StoreMessageInfo(mi)
		}
		return ms
	}
	return mi.MessageOf(x)
}

// Deprecated: Use SessionInfo.ProtoReflect.Descriptor instead.
func (*SessionInfo) Descriptor() ([]byte, []int) {
	return file_proto_backend_v1_backend_proto_rawDescGZIP(), []int{6}
}

func (x *SessionInfo) GetId() int64 {
	if x != nil {
		return x.Id
	}
	return 0
}

func (x *SessionInfo) GetIdentity() string {
	if x != nil {
		return x.Identity
	}
	return ""
}

func (x *SessionInfo) GetTitle() string {
	if x != nil {
		return x.Title
	}
	return ""
}

type ListSessionsRequest struct {
	state         protoimpl.MessageState `protogen:"open.v1"`
	unknownFields protoimpl.UnknownFields
	sizeCache     protoimpl.SizeCache
}

func (x *ListSessionsRequest) Reset() {
	*x = ListSessionsRequest{}
	mi := &file_proto_backend_v1_backend_proto_msgTypes[7]
	ms := protoimpl.X.MessageStateOf(protoimpl.Pointer(x))
	ms.StoreMessageInfo(mi)
}

func (x *ListSessionsRequest) String() string {
	return protoimpl.X.MessageStringOf(x)
}

func (*ListSessionsRequest) ProtoMessage() {}

func (x *ListSessionsRequest) ProtoReflect() protoreflect.Message {
	mi := &file_proto_backend_v1_backend_proto_msgTypes[7]
	if x != nil {
		ms := protoimpl.X.MessageStateOf(protoimpl.Pointer(x))
		if ms.LoadMessageInfo() == nil {
			ms.StoreMessageInfo(mi)
		}
		return ms
	}
	return mi.MessageOf(x)
}

// Deprecated: Use ListSessionsRequest.ProtoReflect.Descriptor instead.
func (*ListSessionsRequest) Descriptor() ([]byte, []int) {
	return file_proto_backend_v1_backend_proto_rawDescGZIP(), []int{7}
}

type ListSessionsResponse struct {
	state         protoimpl.MessageState `protogen:"open.v1"`
	Sessions      []*SessionInfo         `protobuf:"bytes,1,rep,name=sessions,proto3" json:"sessions,omitempty"`
	unknownFields protoimpl.UnknownFields
	sizeCache     protoimpl.SizeCache
}

func (x *ListSessionsResponse) Reset() {
	*x = ListSessionsResponse{}
	mi := &file_proto_backend_v1_backend_proto_msgTypes[8]
	ms := protoimpl.X.MessageStateOf(protoimpl.Pointer(x))
	ms.StoreMessageInfo(mi)
}

func (x *ListSessionsResponse) String() string {
	return protoimpl.X.MessageStringOf(x)
}

func (*ListSessionsResponse) ProtoMessage() {}

func (x *ListSessionsResponse) ProtoReflect() protoreflect.Message {
	mi := &file_proto_backend_v1_backend_proto_msgTypes[8]
	if x != nil {
		ms := protoimpl.X.MessageStateOf(protoimpl.Pointer(x))
		if ms.LoadMessageInfo() == nil {
			ms.StoreMessageInfo(mi)
		}
		return ms
	}
	return mi.MessageOf(x)
}

// Deprecated: Use ListSessionsResponse.ProtoReflect.Descriptor instead.
func (*ListSessionsResponse) Descriptor() ([]byte, []int) {
	return file_proto_backend_v1_backend_proto_rawDescGZIP(), []int{8}
}

func (x *ListSessionsResponse) GetSessions() []*SessionInfo {
	if x != nil {
		return x.Sessions
	}
	return nil
}

var File_proto_backend_v1_backend_proto protoreflect.FileDescriptor

const file_proto_backend_v1_backend_proto_rawDesc = "" +
	"\n" +
	"\x1eproto/backend/v1/backend.proto\x12\x12termtab.backend.v1\"\r\n" +
	"\vPingRequest\"\x1e\n" +
	"\fPingResponse\x12\x0e\n" +
	"\x02ok\x18\x01 \x01(\bR\x02ok\"D\n" +
	"\rDetachRequest\x12\x14\n" +
	"\x05owner\x18\x01 \x01(\tR\x05owner\x12\x1d\n" +
	"\n" +
	"session_id\x18\x02 \x01(\x03R\tsessionId\"J\n" +
	"\x0eDetachResponse\x128\n" +
	"\x06launch\x18\x01 \x01(\v2 .termtab.backend.v1.LaunchConfigR\x06launch\"\xb7\x02\n" +
	"\fLaunchConfig\x12\x14\n" +
	"\x05shell\x18\x01 \x01(\tR\x05shell\x12\x12\n" +
	"\x04args\x18\x02 \x03(\tR\x04args\x12;\n" +
	"\x03env\x18\x03 \x03(\v2).termtab.backend.v1.LaunchConfig.EnvEntryR\x03env\x12\x1f\n" +
	"\vworking_dir\x18\x04 \x01(\tR\n" +
	"workingDir\x12\x14\n" +
	"\x05title\x18\x05 \x01(\tR\x05title\x12\x12\n" +
	"\x04kind\x18\x06 \x01(\tR\x04kind\x12=\n" +
	"\x06attach\x18\a \x01(\v2%.termtab.backend.v1.BackendDescriptorR\x06attach\x1a6\n" +
	"\bEnvEntry\x12\x10\n" +
	"\x03key\x18\x01 \x01(\tR\x03key\x12\x14\n" +
	"\x05value\x18\x02 \x01(\tR\x05value:\x028\x01\"\x7f\n" +
	"\x11BackendDescriptor\x12\x14\n" +
	"\x05owner\x18\x01 \x01(\tR\x05owner\x12\x1d\n" +
	"\n" +
	"session_id\x18\x02 \x01(\x03R\tsessionId\x12\x1f\n" +
	"\vsocket_path\x18\x03 \x01(\tR\n" +
	"socketPath\x12\x14\n" +
	"\x05title\x18\x04 \x01(\tR\x05title\"O\n" +
	"\vSessionInfo\x12\x0e\n" +
	"\x02id\x18\x01 \x01(\x03R\x02id\x12\x1a\n" +
	"\bidentity\x18\x02 \x01(\tR\bidentity\x12\x14\n" +
	"\x05title\x18\x03 \x01(\tR\x05title\"\x15\n" +
	"\x13ListSessionsRequest\"S\n" +
	"\x14ListSessionsResponse\x12;\n" +
	"\bsessions\x18\x01 \x03(\v2\x1f.termtab.backend.v1.SessionInfoR\bsessions2\x8f\x02\n" +
	"\aBackend\x12I\n" +
	"\x04Ping\x12\x1f.termtab.backend.v1.PingRequest\x1a .termtab.backend.v1.PingResponse\x12V\n" +
	"\rRequestDetach\x12!.termtab.backend.v1.DetachRequest\x1a\".termtab.backend.v1.DetachResponse\x12a\n" +
	"\fListSessions\x12'.termtab.backend.v1.ListSessionsRequest\x1a(.termtab.backend.v1.ListSessionsResponseB(Z&pkt.systems/termtab/internal/backendpbb\x06proto3"

var (
	file_proto_backend_v1_backend_proto_rawDescOnce sync.Once
	file_proto_backend_v1_backend_proto_rawDescData []byte
)

func file_proto_backend_v1_backend_proto_rawDescGZIP() []byte {
	file_proto_backend_v1_backend_proto_rawDescOnce.Do(func() {
		file_proto_backend_v1_backend_proto_rawDescData = protoimpl.X.CompressGZIP(unsafe.Slice(unsafe.StringData(file_proto_backend_v1_backend_proto_rawDesc), len(file_proto_backend_v1_backend_proto_rawDesc)))
	})
	return file_proto_backend_v1_backend_proto_rawDescData
}

var file_proto_backend_v1_backend_proto_msgTypes = make([]protoimpl.MessageInfo, 10)
var file_proto_backend_v1_backend_proto_goTypes = []any{
	(*PingRequest)(nil),          // 0: termtab.backend.v1.PingRequest
	(*PingResponse)(nil),         // 1: termtab.backend.v1.PingResponse
	(*DetachRequest)(nil),        // 2: termtab.backend.v1.DetachRequest
	(*DetachResponse)(nil),       // 3: termtab.backend.v1.DetachResponse
	(*LaunchConfig)(nil),         // 4: termtab.backend.v1.LaunchConfig
	(*BackendDescriptor)(nil),    // 5: termtab.backend.v1.BackendDescriptor
	(*SessionInfo)(nil),          // 6: termtab.backend.v1.SessionInfo
	(*ListSessionsRequest)(nil),  // 7: termtab.backend.v1.ListSessionsRequest
	(*ListSessionsResponse)(nil), // 8: termtab.backend.v1.ListSessionsResponse
	nil,                          // 9: termtab.backend.v1.LaunchConfig.EnvEntry
}
var file_proto_backend_v1_backend_proto_depIdxs = []int32{
	4, // 0: termtab.backend.v1.DetachResponse.launch:type_name -> termtab.backend.v1.LaunchConfig
	9, // 1: termtab.backend.v1.LaunchConfig.env:type_name -> termtab.backend.v1.LaunchConfig.EnvEntry
	5, // 2: termtab.backend.v1.LaunchConfig.attach:type_name -> termtab.backend.v1.BackendDescriptor
	6, // 3: termtab.backend.v1.ListSessionsResponse.sessions:type_name -> termtab.backend.v1.SessionInfo
	0, // 4: termtab.backend.v1.Backend.Ping:input_type -> termtab.backend.v1.PingRequest
	2, // 5: termtab.backend.v1.Backend.RequestDetach:input_type -> termtab.backend.v1.DetachRequest
	7, // 6: termtab.backend.v1.Backend.ListSessions:input_type -> termtab.backend.v1.ListSessionsRequest
	1, // 7: termtab.backend.v1.Backend.Ping:output_type -> termtab.backend.v1.PingResponse
	3, // 8: termtab.backend.v1.Backend.RequestDetach:output_type -> termtab.backend.v1.DetachResponse
	8, // 9: termtab.backend.v1.Backend.ListSessions:output_type -> termtab.backend.v1.ListSessionsResponse
	7, // [7:10] is the sub-list for method output_type
	4, // [4:7] is the sub-list for method input_type
	4, // [4:4] is the sub-list for extension type_name
	4, // [4:4] is the sub-list for extension extendee
	0, // [0:4] is the sub-list for field type_name
}

func init() { file_proto_backend_v1_backend_proto_init() }
func file_proto_backend_v1_backend_proto_init() {
	if File_proto_backend_v1_backend_proto != nil {
		return
	}
	type x struct{}
	out := protoimpl.TypeBuilder{
		File: protoimpl.DescBuilder{
			GoPackagePath: reflect.TypeOf(x{}).PkgPath(),
			RawDescriptor: unsafe.Slice(unsafe.StringData(file_proto_backend_v1_backend_proto_rawDesc), len(file_proto_backend_v1_backend_proto_rawDesc)),
			NumEnums:      0,
			NumMessages:   10,
			NumExtensions: 0,
			NumServices:   1,
		},
		GoTypes:           file_proto_backend_v1_backend_proto_goTypes,
		DependencyIndexes: file_proto_backend_v1_backend_proto_depIdxs,
		MessageInfos:      file_proto_backend_v1_backend_proto_msgTypes,
	}.Build()
	File_proto_backend_v1_backend_proto = out.File
	file_proto_backend_v1_backend_proto_goTypes = nil
	file_proto_backend_v1_backend_proto_depIdxs = nil
}
