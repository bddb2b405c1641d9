package v1alpha1

import (
	"context"

	"google.golang.org/grpc"
	"google.golang.org/protobuf/types/known/structpb"
)

// Service names registered with the gRPC server
const (
	StoryServiceName   = "story.v1alpha1.StoryService"
	PreviewServiceName = "story.v1alpha1.PreviewService"
)

// StoryServiceServer is the server API for the story service. Requests and
// responses are JSON documents carried as structpb.Struct.
type StoryServiceServer interface {
	CreateStory(ctx context.Context, req *structpb.Struct) (*structpb.Struct, error)
	GetStory(ctx context.Context, req *structpb.Struct) (*structpb.Struct, error)
	UpdateStory(ctx context.Context, req *structpb.Struct) (*structpb.Struct, error)
	DeleteStory(ctx context.Context, req *structpb.Struct) (*structpb.Struct, error)
	ListStories(ctx context.Context, req *structpb.Struct) (*structpb.Struct, error)
	DeriveGraph(ctx context.Context, req *structpb.Struct) (*structpb.Struct, error)
	LintStory(ctx context.Context, req *structpb.Struct) (*structpb.Struct, error)
	SimulateStory(ctx context.Context, req *structpb.Struct) (*structpb.Struct, error)
}

// PreviewServiceServer is the server API for the preview service
type PreviewServiceServer interface {
	StartSession(ctx context.Context, req *structpb.Struct) (*structpb.Struct, error)
	GetSession(ctx context.Context, req *structpb.Struct) (*structpb.Struct, error)
	EndSession(ctx context.Context, req *structpb.Struct) (*structpb.Struct, error)
	Advance(ctx context.Context, req *structpb.Struct) (*structpb.Struct, error)
	SelectChoice(ctx context.Context, req *structpb.Struct) (*structpb.Struct, error)
	ResolveQTE(ctx context.Context, req *structpb.Struct) (*structpb.Struct, error)
	ResolveDialogueTask(ctx context.Context, req *structpb.Struct) (*structpb.Struct, error)
	Revive(ctx context.Context, req *structpb.Struct) (*structpb.Struct, error)
}

type unaryCall func(srv interface{}, ctx context.Context, req *structpb.Struct) (*structpb.Struct, error)

// unary builds a method handler that decodes a Struct and runs interceptors
func unary(fullMethod string, call unaryCall) grpc.MethodHandler {
	return func(srv interface{}, ctx context.Context, dec func(interface{}) error, interceptor grpc.UnaryServerInterceptor) (interface{}, error) {
		in := new(structpb.Struct)
		if err := dec(in); err != nil {
			return nil, err
		}
		if interceptor == nil {
			return call(srv, ctx, in)
		}
		info := &grpc.UnaryServerInfo{Server: srv, FullMethod: fullMethod}
		handler := func(ctx context.Context, req interface{}) (interface{}, error) {
			return call(srv, ctx, req.(*structpb.Struct))
		}
		return interceptor(ctx, in, info, handler)
	}
}

func fullMethod(service, method string) string {
	return "/" + service + "/" + method
}

// StoryServiceDesc describes the story service for grpc.Server
var StoryServiceDesc = grpc.ServiceDesc{
	ServiceName: StoryServiceName,
	HandlerType: (*StoryServiceServer)(nil),
	Methods: []grpc.MethodDesc{
		{
			MethodName: "CreateStory",
			Handler: unary(fullMethod(StoryServiceName, "CreateStory"), func(srv interface{}, ctx context.Context, req *structpb.Struct) (*structpb.Struct, error) {
				return srv.(StoryServiceServer).CreateStory(ctx, req)
			}),
		},
		{
			MethodName: "GetStory",
			Handler: unary(fullMethod(StoryServiceName, "GetStory"), func(srv interface{}, ctx context.Context, req *structpb.Struct) (*structpb.Struct, error) {
				return srv.(StoryServiceServer).GetStory(ctx, req)
			}),
		},
		{
			MethodName: "UpdateStory",
			Handler: unary(fullMethod(StoryServiceName, "UpdateStory"), func(srv interface{}, ctx context.Context, req *structpb.Struct) (*structpb.Struct, error) {
				return srv.(StoryServiceServer).UpdateStory(ctx, req)
			}),
		},
		{
			MethodName: "DeleteStory",
			Handler: unary(fullMethod(StoryServiceName, "DeleteStory"), func(srv interface{}, ctx context.Context, req *structpb.Struct) (*structpb.Struct, error) {
				return srv.(StoryServiceServer).DeleteStory(ctx, req)
			}),
		},
		{
			MethodName: "ListStories",
			Handler: unary(fullMethod(StoryServiceName, "ListStories"), func(srv interface{}, ctx context.Context, req *structpb.Struct) (*structpb.Struct, error) {
				return srv.(StoryServiceServer).ListStories(ctx, req)
			}),
		},
		{
			MethodName: "DeriveGraph",
			Handler: unary(fullMethod(StoryServiceName, "DeriveGraph"), func(srv interface{}, ctx context.Context, req *structpb.Struct) (*structpb.Struct, error) {
				return srv.(StoryServiceServer).DeriveGraph(ctx, req)
			}),
		},
		{
			MethodName: "LintStory",
			Handler: unary(fullMethod(StoryServiceName, "LintStory"), func(srv interface{}, ctx context.Context, req *structpb.Struct) (*structpb.Struct, error) {
				return srv.(StoryServiceServer).LintStory(ctx, req)
			}),
		},
		{
			MethodName: "SimulateStory",
			Handler: unary(fullMethod(StoryServiceName, "SimulateStory"), func(srv interface{}, ctx context.Context, req *structpb.Struct) (*structpb.Struct, error) {
				return srv.(StoryServiceServer).SimulateStory(ctx, req)
			}),
		},
	},
	Streams:  []grpc.StreamDesc{},
	Metadata: "story/v1alpha1/story.proto",
}

// PreviewServiceDesc describes the preview service for grpc.Server
var PreviewServiceDesc = grpc.ServiceDesc{
	ServiceName: PreviewServiceName,
	HandlerType: (*PreviewServiceServer)(nil),
	Methods: []grpc.MethodDesc{
		{
			MethodName: "StartSession",
			Handler: unary(fullMethod(PreviewServiceName, "StartSession"), func(srv interface{}, ctx context.Context, req *structpb.Struct) (*structpb.Struct, error) {
				return srv.(PreviewServiceServer).StartSession(ctx, req)
			}),
		},
		{
			MethodName: "GetSession",
			Handler: unary(fullMethod(PreviewServiceName, "GetSession"), func(srv interface{}, ctx context.Context, req *structpb.Struct) (*structpb.Struct, error) {
				return srv.(PreviewServiceServer).GetSession(ctx, req)
			}),
		},
		{
			MethodName: "EndSession",
			Handler: unary(fullMethod(PreviewServiceName, "EndSession"), func(srv interface{}, ctx context.Context, req *structpb.Struct) (*structpb.Struct, error) {
				return srv.(PreviewServiceServer).EndSession(ctx, req)
			}),
		},
		{
			MethodName: "Advance",
			Handler: unary(fullMethod(PreviewServiceName, "Advance"), func(srv interface{}, ctx context.Context, req *structpb.Struct) (*structpb.Struct, error) {
				return srv.(PreviewServiceServer).Advance(ctx, req)
			}),
		},
		{
			MethodName: "SelectChoice",
			Handler: unary(fullMethod(PreviewServiceName, "SelectChoice"), func(srv interface{}, ctx context.Context, req *structpb.Struct) (*structpb.Struct, error) {
				return srv.(PreviewServiceServer).SelectChoice(ctx, req)
			}),
		},
		{
			MethodName: "ResolveQTE",
			Handler: unary(fullMethod(PreviewServiceName, "ResolveQTE"), func(srv interface{}, ctx context.Context, req *structpb.Struct) (*structpb.Struct, error) {
				return srv.(PreviewServiceServer).ResolveQTE(ctx, req)
			}),
		},
		{
			MethodName: "ResolveDialogueTask",
			Handler: unary(fullMethod(PreviewServiceName, "ResolveDialogueTask"), func(srv interface{}, ctx context.Context, req *structpb.Struct) (*structpb.Struct, error) {
				return srv.(PreviewServiceServer).ResolveDialogueTask(ctx, req)
			}),
		},
		{
			MethodName: "Revive",
			Handler: unary(fullMethod(PreviewServiceName, "Revive"), func(srv interface{}, ctx context.Context, req *structpb.Struct) (*structpb.Struct, error) {
				return srv.(PreviewServiceServer).Revive(ctx, req)
			}),
		},
	},
	Streams:  []grpc.StreamDesc{},
	Metadata: "story/v1alpha1/preview.proto",
}

// RegisterStoryServiceServer registers the story service with s
func RegisterStoryServiceServer(s grpc.ServiceRegistrar, srv StoryServiceServer) {
	s.RegisterService(&StoryServiceDesc, srv)
}

// RegisterPreviewServiceServer registers the preview service with s
func RegisterPreviewServiceServer(s grpc.ServiceRegistrar, srv PreviewServiceServer) {
	s.RegisterService(&PreviewServiceDesc, srv)
}

// Client invokes either service over a connection by method name
type Client struct {
	cc grpc.ClientConnInterface
}

// NewClient wraps a client connection
func NewClient(cc grpc.ClientConnInterface) *Client {
	return &Client{cc: cc}
}

// Call invokes service/method with a JSON-shaped request
func (c *Client) Call(ctx context.Context, service, method string, req *structpb.Struct, opts ...grpc.CallOption) (*structpb.Struct, error) {
	out := new(structpb.Struct)
	if err := c.cc.Invoke(ctx, fullMethod(service, method), req, out, opts...); err != nil {
		return nil, err
	}
	return out, nil
}
