package server

import (
	"context"
	"net"
	"testing"

	"github.com/jhump/protoreflect/dynamic"
	"github.com/jhump/protoreflect/grpcreflect"
	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/credentials/insecure"
	rpb "google.golang.org/grpc/reflection/grpc_reflection_v1alpha"
	"google.golang.org/grpc/status"
	"google.golang.org/grpc/test/bufconn"
)

// startBridge serves the gRPC bridge on an in-memory listener and returns
// a client connection to it.
func startBridge(t *testing.T) *grpc.ClientConn {
	t.Helper()

	lis := bufconn.Listen(1 << 20)
	bridge, err := NewGRPCBridge()
	if err != nil {
		t.Fatalf("NewGRPCBridge: %v", err)
	}
	go func() { _ = bridge.Serve(lis) }()
	t.Cleanup(bridge.Stop)

	conn, err := grpc.Dial("bufnet",
		grpc.WithContextDialer(func(ctx context.Context, addr string) (net.Conn, error) {
			return lis.DialContext(ctx)
		}),
		grpc.WithTransportCredentials(insecure.NewCredentials()),
	)
	if err != nil {
		t.Fatalf("dial: %v", err)
	}
	t.Cleanup(func() { conn.Close() })

	return conn
}

func TestGRPCBridge_Transcode(t *testing.T) {
	conn := startBridge(t)
	ctx := bg()

	refClient := grpcreflect.NewClientV1Alpha(ctx, rpb.NewServerReflectionClient(conn))
	defer refClient.Reset()

	svcDesc, err := refClient.ResolveService(transcodingServiceName)
	if err != nil {
		t.Fatalf("ResolveService: %v", err)
	}
	methodDesc := svcDesc.FindMethodByName("Transcode")
	if methodDesc == nil {
		t.Fatal("Transcode not found via reflection")
	}

	reqMsg := dynamic.NewMessage(methodDesc.GetInputType())
	if err := reqMsg.TrySetFieldByName("code_point", uint32(0x10437)); err != nil {
		t.Fatalf("TrySetFieldByName: %v", err)
	}
	respMsg := dynamic.NewMessage(methodDesc.GetOutputType())

	if err := conn.Invoke(ctx, transcodeFullMethod, reqMsg, respMsg); err != nil {
		t.Fatalf("Invoke: %v", err)
	}

	if got := respMsg.GetFieldByName("utf8"); got != "f09090b7" {
		t.Errorf("utf8 = %v, want f09090b7", got)
	}
	if got := respMsg.GetFieldByName("utf16"); got != "d801dc37" {
		t.Errorf("utf16 = %v, want d801dc37", got)
	}
	if got := respMsg.GetFieldByName("plane"); got != int32(1) {
		t.Errorf("plane = %v, want 1", got)
	}
	if got := respMsg.GetFieldByName("notation"); got != "U+10437" {
		t.Errorf("notation = %v, want U+10437", got)
	}

	// Out-of-range input maps to the OutOfRange status code.
	badReq := dynamic.NewMessage(methodDesc.GetInputType())
	if err := badReq.TrySetFieldByName("code_point", uint32(0x110000)); err != nil {
		t.Fatalf("TrySetFieldByName: %v", err)
	}
	err = conn.Invoke(ctx, transcodeFullMethod, badReq, dynamic.NewMessage(methodDesc.GetOutputType()))
	if err == nil {
		t.Fatal("Invoke(0x110000) should fail")
	}
	if status.Code(err) != codes.OutOfRange {
		t.Errorf("status code = %v, want OutOfRange", status.Code(err))
	}
}

func TestGRPCBridge_ListServices(t *testing.T) {
	conn := startBridge(t)

	refClient := grpcreflect.NewClientV1Alpha(bg(), rpb.NewServerReflectionClient(conn))
	defer refClient.Reset()

	services, err := refClient.ListServices()
	if err != nil {
		t.Fatalf("ListServices: %v", err)
	}
	found := false
	for _, svc := range services {
		if svc == transcodingServiceName {
			found = true
			break
		}
	}
	if !found {
		t.Errorf("reflection did not list %s: %v", transcodingServiceName, services)
	}
}
