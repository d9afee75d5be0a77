package handler

import (
	"context"

	"github.com/fekuna/protrack-service/internal/rpc"
	"github.com/fekuna/protrack-service/internal/warehouse/dto"
	"google.golang.org/grpc"
)

const WarehouseServiceName = "protrack.v1.WarehouseService"

type WarehouseServiceServer interface {
	CreateWarehouse(context.Context, *dto.CreateWarehouseInput) (*WarehouseResponse, error)
	GetWarehouse(context.Context, *WarehouseIDRequest) (*WarehouseResponse, error)
	ListWarehouses(context.Context, *ListWarehousesRequest) (*ListWarehousesResponse, error)
	UpdateWarehouse(context.Context, *dto.UpdateWarehouseInput) (*WarehouseResponse, error)
	DeleteWarehouse(context.Context, *WarehouseIDRequest) (*rpc.Empty, error)
}

var WarehouseService_ServiceDesc = grpc.ServiceDesc{
	ServiceName: WarehouseServiceName,
	HandlerType: (*WarehouseServiceServer)(nil),
	Methods: []grpc.MethodDesc{
		rpc.Method(WarehouseServiceName, "CreateWarehouse", WarehouseServiceServer.CreateWarehouse),
		rpc.Method(WarehouseServiceName, "GetWarehouse", WarehouseServiceServer.GetWarehouse),
		rpc.Method(WarehouseServiceName, "ListWarehouses", WarehouseServiceServer.ListWarehouses),
		rpc.Method(WarehouseServiceName, "UpdateWarehouse", WarehouseServiceServer.UpdateWarehouse),
		rpc.Method(WarehouseServiceName, "DeleteWarehouse", WarehouseServiceServer.DeleteWarehouse),
	},
	Streams:  []grpc.StreamDesc{},
	Metadata: "protrack/v1/warehouse",
}

func RegisterWarehouseServiceServer(s grpc.ServiceRegistrar, srv WarehouseServiceServer) {
	s.RegisterService(&WarehouseService_ServiceDesc, srv)
}

type WarehouseServiceClient struct {
	cc grpc.ClientConnInterface
}

func NewWarehouseServiceClient(cc grpc.ClientConnInterface) *WarehouseServiceClient {
	return &WarehouseServiceClient{cc: cc}
}

func (c *WarehouseServiceClient) method(name string) string {
	return "/" + WarehouseServiceName + "/" + name
}

func (c *WarehouseServiceClient) CreateWarehouse(ctx context.Context, in *dto.CreateWarehouseInput, opts ...grpc.CallOption) (*WarehouseResponse, error) {
	return rpc.Invoke[WarehouseResponse](ctx, c.cc, c.method("CreateWarehouse"), in, opts...)
}

func (c *WarehouseServiceClient) GetWarehouse(ctx context.Context, in *WarehouseIDRequest, opts ...grpc.CallOption) (*WarehouseResponse, error) {
	return rpc.Invoke[WarehouseResponse](ctx, c.cc, c.method("GetWarehouse"), in, opts...)
}

func (c *WarehouseServiceClient) ListWarehouses(ctx context.Context, in *ListWarehousesRequest, opts ...grpc.CallOption) (*ListWarehousesResponse, error) {
	return rpc.Invoke[ListWarehousesResponse](ctx, c.cc, c.method("ListWarehouses"), in, opts...)
}

func (c *WarehouseServiceClient) UpdateWarehouse(ctx context.Context, in *dto.UpdateWarehouseInput, opts ...grpc.CallOption) (*WarehouseResponse, error) {
	return rpc.Invoke[WarehouseResponse](ctx, c.cc, c.method("UpdateWarehouse"), in, opts...)
}

func (c *WarehouseServiceClient) DeleteWarehouse(ctx context.Context, in *WarehouseIDRequest, opts ...grpc.CallOption) (*rpc.Empty, error) {
	return rpc.Invoke[rpc.Empty](ctx, c.cc, c.method("DeleteWarehouse"), in, opts...)
}
