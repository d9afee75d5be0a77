package main

import (
	"fmt"

	"github.com/fekuna/protrack-service/internal/pkg/clock"
	"github.com/fekuna/protrack-service/internal/product/dto"
	"github.com/fekuna/protrack-service/internal/product/filter"
	"github.com/fekuna/protrack-service/internal/product/repository"
	"github.com/fekuna/protrack-service/internal/product/usecase"
	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"
)

type productsOptions struct {
	companyID string
	spec      filter.Spec
	priceMin  string
	priceMax  string
	stockMin  int
	stockMax  int
	page      int
	pageSize  int
}

func newProductsCmd(global *globalOptions) *cobra.Command {
	var opts productsOptions

	cmd := &cobra.Command{
		Use:   "products",
		Short: "List a company's products with the catalog filters",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			spec := opts.spec
			if spec.SortBy != "" && !filter.IsSortable(spec.SortBy) {
				return fmt.Errorf("cannot sort by %q", spec.SortBy)
			}

			var err error
			if spec.PriceMin, err = decimalFlag(opts.priceMin); err != nil {
				return err
			}
			if spec.PriceMax, err = decimalFlag(opts.priceMax); err != nil {
				return err
			}
			if cmd.Flags().Changed("stock-min") {
				spec.StockMin = &opts.stockMin
			}
			if cmd.Flags().Changed("stock-max") {
				spec.StockMax = &opts.stockMax
			}

			db, err := global.openDB(ctx)
			if err != nil {
				return err
			}
			defer db.Close()

			log := global.logger()
			uc := usecase.NewProductUseCase(repository.NewPGRepository(db), nil, nil, 0, clock.RealClock{}, log)
			list, err := uc.ListProducts(ctx, &dto.ProductFilters{
				CompanyID: opts.companyID,
				Spec:      spec,
				Page:      opts.page,
				PageSize:  opts.pageSize,
			})
			if err != nil {
				return err
			}
			return writeJSON(cmd, list)
		},
	}

	f := cmd.Flags()
	f.StringVar(&opts.companyID, "company", "", "Company to list (required)")
	f.StringVarP(&opts.spec.Query, "query", "q", "", "Case-insensitive name search")
	f.StringVar(&opts.spec.CodigoBarras, "code", "", "Barcode, or product ID when the product has no barcode")
	f.StringVar(&opts.priceMin, "price-min", "", "Minimum purchase price")
	f.StringVar(&opts.priceMax, "price-max", "", "Maximum purchase price")
	f.IntVar(&opts.stockMin, "stock-min", 0, "Minimum available stock")
	f.IntVar(&opts.stockMax, "stock-max", 0, "Maximum available stock")
	f.StringVar(&opts.spec.SortBy, "sort", "", "Field to sort by")
	f.StringVar(&opts.spec.SortOrder, "order", filter.SortAsc, "Sort order: asc or desc")
	f.IntVar(&opts.page, "page", 1, "Page number")
	f.IntVar(&opts.pageSize, "page-size", 0, "Page size, 0 for all")
	_ = cmd.MarkFlagRequired("company")

	return cmd
}

func decimalFlag(s string) (*decimal.Decimal, error) {
	if s == "" {
		return nil, nil
	}
	d, err := decimal.NewFromString(s)
	if err != nil {
		return nil, err
	}
	return &d, nil
}
