package handler

import (
	"context"

	"github.com/fekuna/protrack-service/internal/product/csvimport"
	"github.com/fekuna/protrack-service/internal/product/dto"
	"github.com/fekuna/protrack-service/internal/rpc"
	"google.golang.org/grpc"
)

const ProductServiceName = "protrack.v1.ProductService"

type ProductServiceServer interface {
	CreateProduct(context.Context, *dto.CreateProductInput) (*ProductResponse, error)
	GetProduct(context.Context, *GetProductRequest) (*ProductResponse, error)
	ListProducts(context.Context, *ListProductsRequest) (*ListProductsResponse, error)
	UpdateProduct(context.Context, *dto.UpdateProductInput) (*ProductResponse, error)
	DeleteProduct(context.Context, *DeleteProductRequest) (*rpc.Empty, error)
	ImportProducts(context.Context, *ImportProductsRequest) (*csvimport.Response, error)
	GetImportTemplate(context.Context, *TemplateRequest) (*TemplateResponse, error)
	GetDashboard(context.Context, *rpc.Empty) (*dto.Dashboard, error)
}

var ProductService_ServiceDesc = grpc.ServiceDesc{
	ServiceName: ProductServiceName,
	HandlerType: (*ProductServiceServer)(nil),
	Methods: []grpc.MethodDesc{
		rpc.Method(ProductServiceName, "CreateProduct", ProductServiceServer.CreateProduct),
		rpc.Method(ProductServiceName, "GetProduct", ProductServiceServer.GetProduct),
		rpc.Method(ProductServiceName, "ListProducts", ProductServiceServer.ListProducts),
		rpc.Method(ProductServiceName, "UpdateProduct", ProductServiceServer.UpdateProduct),
		rpc.Method(ProductServiceName, "DeleteProduct", ProductServiceServer.DeleteProduct),
		rpc.Method(ProductServiceName, "ImportProducts", ProductServiceServer.ImportProducts),
		rpc.Method(ProductServiceName, "GetImportTemplate", ProductServiceServer.GetImportTemplate),
		rpc.Method(ProductServiceName, "GetDashboard", ProductServiceServer.GetDashboard),
	},
	Streams:  []grpc.StreamDesc{},
	Metadata: "protrack/v1/product",
}

func RegisterProductServiceServer(s grpc.ServiceRegistrar, srv ProductServiceServer) {
	s.RegisterService(&ProductService_ServiceDesc, srv)
}

// ProductServiceClient calls the service with the JSON codec.
type ProductServiceClient struct {
	cc grpc.ClientConnInterface
}

func NewProductServiceClient(cc grpc.ClientConnInterface) *ProductServiceClient {
	return &ProductServiceClient{cc: cc}
}

func (c *ProductServiceClient) method(name string) string {
	return "/" + ProductServiceName + "/" + name
}

func (c *ProductServiceClient) CreateProduct(ctx context.Context, in *dto.CreateProductInput, opts ...grpc.CallOption) (*ProductResponse, error) {
	return rpc.Invoke[ProductResponse](ctx, c.cc, c.method("CreateProduct"), in, opts...)
}

func (c *ProductServiceClient) GetProduct(ctx context.Context, in *GetProductRequest, opts ...grpc.CallOption) (*ProductResponse, error) {
	return rpc.Invoke[ProductResponse](ctx, c.cc, c.method("GetProduct"), in, opts...)
}

func (c *ProductServiceClient) ListProducts(ctx context.Context, in *ListProductsRequest, opts ...grpc.CallOption) (*ListProductsResponse, error) {
	return rpc.Invoke[ListProductsResponse](ctx, c.cc, c.method("ListProducts"), in, opts...)
}

func (c *ProductServiceClient) UpdateProduct(ctx context.Context, in *dto.UpdateProductInput, opts ...grpc.CallOption) (*ProductResponse, error) {
	return rpc.Invoke[ProductResponse](ctx, c.cc, c.method("UpdateProduct"), in, opts...)
}

func (c *ProductServiceClient) DeleteProduct(ctx context.Context, in *DeleteProductRequest, opts ...grpc.CallOption) (*rpc.Empty, error) {
	return rpc.Invoke[rpc.Empty](ctx, c.cc, c.method("DeleteProduct"), in, opts...)
}

func (c *ProductServiceClient) ImportProducts(ctx context.Context, in *ImportProductsRequest, opts ...grpc.CallOption) (*csvimport.Response, error) {
	return rpc.Invoke[csvimport.Response](ctx, c.cc, c.method("ImportProducts"), in, opts...)
}

func (c *ProductServiceClient) GetImportTemplate(ctx context.Context, in *TemplateRequest, opts ...grpc.CallOption) (*TemplateResponse, error) {
	return rpc.Invoke[TemplateResponse](ctx, c.cc, c.method("GetImportTemplate"), in, opts...)
}

func (c *ProductServiceClient) GetDashboard(ctx context.Context, opts ...grpc.CallOption) (*dto.Dashboard, error) {
	return rpc.Invoke[dto.Dashboard](ctx, c.cc, c.method("GetDashboard"), &rpc.Empty{}, opts...)
}
