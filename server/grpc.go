package server

import (
	"context"
	"fmt"
	"net"

	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/reflection"
	"google.golang.org/grpc/status"
	"google.golang.org/protobuf/proto"
	"google.golang.org/protobuf/reflect/protodesc"
	"google.golang.org/protobuf/reflect/protoreflect"
	"google.golang.org/protobuf/reflect/protoregistry"
	"google.golang.org/protobuf/types/descriptorpb"
	"google.golang.org/protobuf/types/dynamicpb"

	"github.com/zerustech/string/inspect"
)

// ---------------------------------------------------------------------------
// gRPC bridge
// ---------------------------------------------------------------------------
//
// The bridge serves Transcode over plain gRPC with server reflection, so
// stock gRPC tooling can discover and call it. The service descriptor is
// built at runtime and messages are handled through dynamicpb; no generated
// stubs are involved.

const (
	transcodingProtoPath   = "zerus/v1/transcoding.proto"
	transcodingServiceName = "zerus.v1.TranscodingService"
	transcodeFullMethod    = "/zerus.v1.TranscodingService/Transcode"
)

var (
	transcodingFile       protoreflect.FileDescriptor
	transcodeRequestDesc  protoreflect.MessageDescriptor
	transcodeResponseDesc protoreflect.MessageDescriptor
)

func init() {
	fd, err := protodesc.NewFile(transcodingFileDescriptor(), protoregistry.GlobalFiles)
	if err != nil {
		panic(fmt.Sprintf("server: failed to build transcoding descriptor: %v", err))
	}
	transcodingFile = fd
	transcodeRequestDesc = fd.Messages().ByName("TranscodeRequest")
	transcodeResponseDesc = fd.Messages().ByName("TranscodeResponse")
}

func transcodingFileDescriptor() *descriptorpb.FileDescriptorProto {
	opt := descriptorpb.FieldDescriptorProto_LABEL_OPTIONAL.Enum()
	str := descriptorpb.FieldDescriptorProto_TYPE_STRING.Enum()
	return &descriptorpb.FileDescriptorProto{
		Name:    proto.String(transcodingProtoPath),
		Package: proto.String("zerus.v1"),
		Syntax:  proto.String("proto3"),
		MessageType: []*descriptorpb.DescriptorProto{
			{
				Name: proto.String("TranscodeRequest"),
				Field: []*descriptorpb.FieldDescriptorProto{
					{Name: proto.String("code_point"), Number: proto.Int32(1), Label: opt, Type: descriptorpb.FieldDescriptorProto_TYPE_UINT32.Enum()},
				},
			},
			{
				Name: proto.String("TranscodeResponse"),
				Field: []*descriptorpb.FieldDescriptorProto{
					{Name: proto.String("utf8"), Number: proto.Int32(1), Label: opt, Type: str},
					{Name: proto.String("utf16"), Number: proto.Int32(2), Label: opt, Type: str},
					{Name: proto.String("plane"), Number: proto.Int32(3), Label: opt, Type: descriptorpb.FieldDescriptorProto_TYPE_INT32.Enum()},
					{Name: proto.String("category"), Number: proto.Int32(4), Label: opt, Type: str},
					{Name: proto.String("notation"), Number: proto.Int32(5), Label: opt, Type: str},
				},
			},
		},
		Service: []*descriptorpb.ServiceDescriptorProto{
			{
				Name: proto.String("TranscodingService"),
				Method: []*descriptorpb.MethodDescriptorProto{
					{
						Name:       proto.String("Transcode"),
						InputType:  proto.String(".zerus.v1.TranscodeRequest"),
						OutputType: proto.String(".zerus.v1.TranscodeResponse"),
					},
				},
			},
		},
	}
}

var transcodingServiceDesc = grpc.ServiceDesc{
	ServiceName: transcodingServiceName,
	HandlerType: (*any)(nil),
	Methods: []grpc.MethodDesc{
		{
			MethodName: "Transcode",
			Handler:    transcodeHandler,
		},
	},
	Streams:  []grpc.StreamDesc{},
	Metadata: transcodingProtoPath,
}

func transcodeHandler(srv any, ctx context.Context, dec func(any) error, interceptor grpc.UnaryServerInterceptor) (any, error) {
	in := dynamicpb.NewMessage(transcodeRequestDesc)
	if err := dec(in); err != nil {
		return nil, err
	}
	bridge := srv.(*GRPCBridge)
	if interceptor == nil {
		return bridge.transcode(ctx, in)
	}
	info := &grpc.UnaryServerInfo{
		Server:     srv,
		FullMethod: transcodeFullMethod,
	}
	handler := func(ctx context.Context, req any) (any, error) {
		return bridge.transcode(ctx, req.(*dynamicpb.Message))
	}
	return interceptor(ctx, in, info, handler)
}

// GRPCBridge is a standalone gRPC server for the transcoding service.
type GRPCBridge struct {
	grpc *grpc.Server
}

// NewGRPCBridge creates the bridge and registers its descriptor so the
// reflection service can describe it.
func NewGRPCBridge() (*GRPCBridge, error) {
	if _, err := protoregistry.GlobalFiles.FindFileByPath(transcodingProtoPath); err != nil {
		if err := protoregistry.GlobalFiles.RegisterFile(transcodingFile); err != nil {
			return nil, fmt.Errorf("server: register transcoding descriptor: %w", err)
		}
	}

	b := &GRPCBridge{grpc: grpc.NewServer()}
	b.grpc.RegisterService(&transcodingServiceDesc, b)
	reflection.Register(b.grpc)
	return b, nil
}

// Serve accepts connections on lis until Stop is called.
func (b *GRPCBridge) Serve(lis net.Listener) error {
	return b.grpc.Serve(lis)
}

// ListenAndServe starts the bridge on the given address.
func (b *GRPCBridge) ListenAndServe(addr string) error {
	lis, err := net.Listen("tcp", addr)
	if err != nil {
		return fmt.Errorf("server: listen %s: %w", addr, err)
	}
	fmt.Printf("Zerus gRPC bridge listening on %s\n", addr)
	return b.grpc.Serve(lis)
}

// Stop drains in-flight calls and shuts the bridge down.
func (b *GRPCBridge) Stop() {
	b.grpc.GracefulStop()
}

func (b *GRPCBridge) transcode(ctx context.Context, in *dynamicpb.Message) (*dynamicpb.Message, error) {
	cp := rune(in.Get(transcodeRequestDesc.Fields().ByName("code_point")).Uint())

	report, err := inspect.Inspect(cp)
	if err != nil {
		return nil, status.Error(codes.OutOfRange, err.Error())
	}

	out := dynamicpb.NewMessage(transcodeResponseDesc)
	fields := transcodeResponseDesc.Fields()
	out.Set(fields.ByName("utf8"), protoreflect.ValueOfString(report.UTF8))
	if report.UTF16 != "" {
		out.Set(fields.ByName("utf16"), protoreflect.ValueOfString(report.UTF16))
	}
	out.Set(fields.ByName("plane"), protoreflect.ValueOfInt32(int32(report.Plane)))
	out.Set(fields.ByName("category"), protoreflect.ValueOfString(report.Category))
	out.Set(fields.ByName("notation"), protoreflect.ValueOfString(report.Notation))
	return out, nil
}
