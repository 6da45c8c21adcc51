package address

import (
	"context"

	"google.golang.org/grpc"
	"google.golang.org/protobuf/types/known/structpb"
)

const (
	ServiceName = "mmm.address.v1.Address"

	DeriveFullMethodName = "/" + ServiceName + "/Derive"
	LookupFullMethodName = "/" + ServiceName + "/Lookup"
)

// AddressServer derives and looks up MMM program addresses. Requests and
// responses are google.protobuf.Struct messages.
type AddressServer interface {
	// Derive resolves the address of an entity from its kind and identifiers
	Derive(context.Context, *structpb.Struct) (*structpb.Struct, error)

	// Lookup gets a previously derived address from the address index
	Lookup(context.Context, *structpb.Struct) (*structpb.Struct, error)
}

// RegisterAddressServer registers srv with s
func RegisterAddressServer(s grpc.ServiceRegistrar, srv AddressServer) {
	s.RegisterService(&Address_ServiceDesc, srv)
}

func _Address_Derive_Handler(srv interface{}, ctx context.Context, dec func(interface{}) error, interceptor grpc.UnaryServerInterceptor) (interface{}, error) {
	in := new(structpb.Struct)
	if err := dec(in); err != nil {
		return nil, err
	}
	if interceptor == nil {
		return srv.(AddressServer).Derive(ctx, in)
	}
	info := &grpc.UnaryServerInfo{
		Server:     srv,
		FullMethod: DeriveFullMethodName,
	}
	handler := func(ctx context.Context, req interface{}) (interface{}, error) {
		return srv.(AddressServer).Derive(ctx, req.(*structpb.Struct))
	}
	return interceptor(ctx, in, info, handler)
}

func _Address_Lookup_Handler(srv interface{}, ctx context.Context, dec func(interface{}) error, interceptor grpc.UnaryServerInterceptor) (interface{}, error) {
	in := new(structpb.Struct)
	if err := dec(in); err != nil {
		return nil, err
	}
	if interceptor == nil {
		return srv.(AddressServer).Lookup(ctx, in)
	}
	info := &grpc.UnaryServerInfo{
		Server:     srv,
		FullMethod: LookupFullMethodName,
	}
	handler := func(ctx context.Context, req interface{}) (interface{}, error) {
		return srv.(AddressServer).Lookup(ctx, req.(*structpb.Struct))
	}
	return interceptor(ctx, in, info, handler)
}

var Address_ServiceDesc = grpc.ServiceDesc{
	ServiceName: ServiceName,
	HandlerType: (*AddressServer)(nil),
	Methods: []grpc.MethodDesc{
		{
			MethodName: "Derive",
			Handler:    _Address_Derive_Handler,
		},
		{
			MethodName: "Lookup",
			Handler:    _Address_Lookup_Handler,
		},
	},
	Streams:  []grpc.StreamDesc{},
	Metadata: "mmm/address/v1/address_service.proto",
}

// AddressClient is the client API for the Address service
type AddressClient interface {
	Derive(ctx context.Context, in *structpb.Struct, opts ...grpc.CallOption) (*structpb.Struct, error)
	Lookup(ctx context.Context, in *structpb.Struct, opts ...grpc.CallOption) (*structpb.Struct, error)
}

type addressClient struct {
	cc grpc.ClientConnInterface
}

func NewAddressClient(cc grpc.ClientConnInterface) AddressClient {
	return &addressClient{cc}
}

func (c *addressClient) Derive(ctx context.Context, in *structpb.Struct, opts ...grpc.CallOption) (*structpb.Struct, error) {
	out := new(structpb.Struct)
	if err := c.cc.Invoke(ctx, DeriveFullMethodName, in, out, opts...); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *addressClient) Lookup(ctx context.Context, in *structpb.Struct, opts ...grpc.CallOption) (*structpb.Struct, error) {
	out := new(structpb.Struct)
	if err := c.cc.Invoke(ctx, LookupFullMethodName, in, out, opts...); err != nil {
		return nil, err
	}
	return out, nil
}
