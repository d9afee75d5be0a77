package handler

import (
	"context"

	"github.com/fekuna/protrack-service/internal/rpc"
	"github.com/fekuna/protrack-service/internal/staff/dto"
	"google.golang.org/grpc"
)

const StaffServiceName = "protrack.v1.StaffService"

type StaffServiceServer interface {
	CreateStaff(context.Context, *dto.CreateStaffInput) (*dto.CreatedStaff, error)
	UpdateStaff(context.Context, *dto.UpdateStaffInput) (*StaffResponse, error)
	DeleteStaff(context.Context, *DeleteStaffRequest) (*rpc.Empty, error)
	ListStaff(context.Context, *ListStaffRequest) (*ListStaffResponse, error)
}

var StaffService_ServiceDesc = grpc.ServiceDesc{
	ServiceName: StaffServiceName,
	HandlerType: (*StaffServiceServer)(nil),
	Methods: []grpc.MethodDesc{
		rpc.Method(StaffServiceName, "CreateStaff", StaffServiceServer.CreateStaff),
		rpc.Method(StaffServiceName, "UpdateStaff", StaffServiceServer.UpdateStaff),
		rpc.Method(StaffServiceName, "DeleteStaff", StaffServiceServer.DeleteStaff),
		rpc.Method(StaffServiceName, "ListStaff", StaffServiceServer.ListStaff),
	},
	Streams:  []grpc.StreamDesc{},
	Metadata: "protrack/v1/staff",
}

func RegisterStaffServiceServer(s grpc.ServiceRegistrar, srv StaffServiceServer) {
	s.RegisterService(&StaffService_ServiceDesc, srv)
}

type StaffServiceClient struct {
	cc grpc.ClientConnInterface
}

func NewStaffServiceClient(cc grpc.ClientConnInterface) *StaffServiceClient {
	return &StaffServiceClient{cc: cc}
}

func (c *StaffServiceClient) method(name string) string {
	return "/" + StaffServiceName + "/" + name
}

func (c *StaffServiceClient) CreateStaff(ctx context.Context, in *dto.CreateStaffInput, opts ...grpc.CallOption) (*dto.CreatedStaff, error) {
	return rpc.Invoke[dto.CreatedStaff](ctx, c.cc, c.method("CreateStaff"), in, opts...)
}

func (c *StaffServiceClient) UpdateStaff(ctx context.Context, in *dto.UpdateStaffInput, opts ...grpc.CallOption) (*StaffResponse, error) {
	return rpc.Invoke[StaffResponse](ctx, c.cc, c.method("UpdateStaff"), in, opts...)
}

func (c *StaffServiceClient) DeleteStaff(ctx context.Context, in *DeleteStaffRequest, opts ...grpc.CallOption) (*rpc.Empty, error) {
	return rpc.Invoke[rpc.Empty](ctx, c.cc, c.method("DeleteStaff"), in, opts...)
}

func (c *StaffServiceClient) ListStaff(ctx context.Context, in *ListStaffRequest, opts ...grpc.CallOption) (*ListStaffResponse, error) {
	return rpc.Invoke[ListStaffResponse](ctx, c.cc, c.method("ListStaff"), in, opts...)
}
