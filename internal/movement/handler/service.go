package handler

import (
	"context"

	"github.com/fekuna/protrack-service/internal/movement/dto"
	"github.com/fekuna/protrack-service/internal/rpc"
	"google.golang.org/grpc"
)

const MovementServiceName = "protrack.v1.MovementService"

type MovementServiceServer interface {
	RegisterMovement(context.Context, *dto.MovementInput) (*MovementResponse, error)
	RegisterTransfer(context.Context, *dto.TransferInput) (*TransferResponse, error)
	ListMovements(context.Context, *ListRequest) (*ListMovementsResponse, error)
	ListTransfers(context.Context, *ListRequest) (*ListTransfersResponse, error)
	RequestRestock(context.Context, *dto.RestockInput) (*dto.RestockRequested, error)
}

var MovementService_ServiceDesc = grpc.ServiceDesc{
	ServiceName: MovementServiceName,
	HandlerType: (*MovementServiceServer)(nil),
	Methods: []grpc.MethodDesc{
		rpc.Method(MovementServiceName, "RegisterMovement", MovementServiceServer.RegisterMovement),
		rpc.Method(MovementServiceName, "RegisterTransfer", MovementServiceServer.RegisterTransfer),
		rpc.Method(MovementServiceName, "ListMovements", MovementServiceServer.ListMovements),
		rpc.Method(MovementServiceName, "ListTransfers", MovementServiceServer.ListTransfers),
		rpc.Method(MovementServiceName, "RequestRestock", MovementServiceServer.RequestRestock),
	},
	Streams:  []grpc.StreamDesc{},
	Metadata: "protrack/v1/movement",
}

func RegisterMovementServiceServer(s grpc.ServiceRegistrar, srv MovementServiceServer) {
	s.RegisterService(&MovementService_ServiceDesc, srv)
}

type MovementServiceClient struct {
	cc grpc.ClientConnInterface
}

func NewMovementServiceClient(cc grpc.ClientConnInterface) *MovementServiceClient {
	return &MovementServiceClient{cc: cc}
}

func (c *MovementServiceClient) method(name string) string {
	return "/" + MovementServiceName + "/" + name
}

func (c *MovementServiceClient) RegisterMovement(ctx context.Context, in *dto.MovementInput, opts ...grpc.CallOption) (*MovementResponse, error) {
	return rpc.Invoke[MovementResponse](ctx, c.cc, c.method("RegisterMovement"), in, opts...)
}

func (c *MovementServiceClient) RegisterTransfer(ctx context.Context, in *dto.TransferInput, opts ...grpc.CallOption) (*TransferResponse, error) {
	return rpc.Invoke[TransferResponse](ctx, c.cc, c.method("RegisterTransfer"), in, opts...)
}

func (c *MovementServiceClient) ListMovements(ctx context.Context, in *ListRequest, opts ...grpc.CallOption) (*ListMovementsResponse, error) {
	return rpc.Invoke[ListMovementsResponse](ctx, c.cc, c.method("ListMovements"), in, opts...)
}

func (c *MovementServiceClient) ListTransfers(ctx context.Context, in *ListRequest, opts ...grpc.CallOption) (*ListTransfersResponse, error) {
	return rpc.Invoke[ListTransfersResponse](ctx, c.cc, c.method("ListTransfers"), in, opts...)
}

func (c *MovementServiceClient) RequestRestock(ctx context.Context, in *dto.RestockInput, opts ...grpc.CallOption) (*dto.RestockRequested, error) {
	return rpc.Invoke[dto.RestockRequested](ctx, c.cc, c.method("RequestRestock"), in, opts...)
}
