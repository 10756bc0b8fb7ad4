// Package proto holds the gRPC contract of the high score service described in
// highscore.proto. Its messages are protobuf well known types, so only the
// service plumbing lives here.
package proto

import (
	"context"

	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
	"google.golang.org/protobuf/types/known/emptypb"
	"google.golang.org/protobuf/types/known/wrapperspb"
)

const (
	HighScoreService_ServiceName = "tetris.HighScoreService"

	HighScoreService_GetHighScore_FullMethodName = "/tetris.HighScoreService/GetHighScore"
	HighScoreService_SubmitScore_FullMethodName  = "/tetris.HighScoreService/SubmitScore"
)

type HighScoreServiceClient interface {
	GetHighScore(ctx context.Context, in *emptypb.Empty, opts ...grpc.CallOption) (*wrapperspb.Int64Value, error)
	SubmitScore(ctx context.Context, in *wrapperspb.Int64Value, opts ...grpc.CallOption) (*wrapperspb.Int64Value, error)
}

type highScoreServiceClient struct {
	cc grpc.ClientConnInterface
}

func NewHighScoreServiceClient(cc grpc.ClientConnInterface) HighScoreServiceClient {
	return &highScoreServiceClient{cc}
}

func (c *highScoreServiceClient) GetHighScore(ctx context.Context, in *emptypb.Empty, opts ...grpc.CallOption) (*wrapperspb.Int64Value, error) {
	cOpts := append([]grpc.CallOption{grpc.StaticMethod()}, opts...)
	out := new(wrapperspb.Int64Value)
	if err := c.cc.Invoke(ctx, HighScoreService_GetHighScore_FullMethodName, in, out, cOpts...); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *highScoreServiceClient) SubmitScore(ctx context.Context, in *wrapperspb.Int64Value, opts ...grpc.CallOption) (*wrapperspb.Int64Value, error) {
	cOpts := append([]grpc.CallOption{grpc.StaticMethod()}, opts...)
	out := new(wrapperspb.Int64Value)
	if err := c.cc.Invoke(ctx, HighScoreService_SubmitScore_FullMethodName, in, out, cOpts...); err != nil {
		return nil, err
	}
	return out, nil
}

// HighScoreServiceServer must embed UnimplementedHighScoreServiceServer.
type HighScoreServiceServer interface {
	GetHighScore(context.Context, *emptypb.Empty) (*wrapperspb.Int64Value, error)
	SubmitScore(context.Context, *wrapperspb.Int64Value) (*wrapperspb.Int64Value, error)
	mustEmbedUnimplementedHighScoreServiceServer()
}

type UnimplementedHighScoreServiceServer struct{}

func (UnimplementedHighScoreServiceServer) GetHighScore(context.Context, *emptypb.Empty) (*wrapperspb.Int64Value, error) {
	return nil, status.Errorf(codes.Unimplemented, "method GetHighScore not implemented")
}

func (UnimplementedHighScoreServiceServer) SubmitScore(context.Context, *wrapperspb.Int64Value) (*wrapperspb.Int64Value, error) {
	return nil, status.Errorf(codes.Unimplemented, "method SubmitScore not implemented")
}

func (UnimplementedHighScoreServiceServer) mustEmbedUnimplementedHighScoreServiceServer() {}

func RegisterHighScoreServiceServer(s grpc.ServiceRegistrar, srv HighScoreServiceServer) {
	s.RegisterService(&HighScoreService_ServiceDesc, srv)
}

func _HighScoreService_GetHighScore_Handler(srv any, ctx context.Context, dec func(any) error, interceptor grpc.UnaryServerInterceptor) (any, error) {
	in := new(emptypb.Empty)
	if err := dec(in); err != nil {
		return nil, err
	}
	if interceptor == nil {
		return srv.(HighScoreServiceServer).GetHighScore(ctx, in)
	}
	info := &grpc.UnaryServerInfo{
		Server:     srv,
		FullMethod: HighScoreService_GetHighScore_FullMethodName,
	}
	handler := func(ctx context.Context, req any) (any, error) {
		return srv.(HighScoreServiceServer).GetHighScore(ctx, req.(*emptypb.Empty))
	}
	return interceptor(ctx, in, info, handler)
}

func _HighScoreService_SubmitScore_Handler(srv any, ctx context.Context, dec func(any) error, interceptor grpc.UnaryServerInterceptor) (any, error) {
	in := new(wrapperspb.Int64Value)
	if err := dec(in); err != nil {
		return nil, err
	}
	if interceptor == nil {
		return srv.(HighScoreServiceServer).SubmitScore(ctx, in)
	}
	info := &grpc.UnaryServerInfo{
		Server:     srv,
		FullMethod: HighScoreService_SubmitScore_FullMethodName,
	}
	handler := func(ctx context.Context, req any) (any, error) {
		return srv.(HighScoreServiceServer).SubmitScore(ctx, req.(*wrapperspb.Int64Value))
	}
	return interceptor(ctx, in, info, handler)
}

var HighScoreService_ServiceDesc = grpc.ServiceDesc{
	ServiceName: HighScoreService_ServiceName,
	HandlerType: (*HighScoreServiceServer)(nil),
	Methods: []grpc.MethodDesc{
		{
			MethodName: "GetHighScore",
			Handler:    _HighScoreService_GetHighScore_Handler,
		},
		{
			MethodName: "SubmitScore",
			Handler:    _HighScoreService_SubmitScore_Handler,
		},
	},
	Streams:  []grpc.StreamDesc{},
	Metadata: "highscore.proto",
}
