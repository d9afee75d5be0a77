package main

import (
	"fmt"
	"os"

	"github.com/fekuna/protrack-service/internal/logger"
	"github.com/fekuna/protrack-service/internal/pkg/clock"
	"github.com/fekuna/protrack-service/internal/product/usecase"
	"github.com/spf13/cobra"
)

func newTemplateCmd() *cobra.Command {
	var (
		format string
		output string
	)

	cmd := &cobra.Command{
		Use:   "template",
		Short: "Write the product import template",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			// templates need no store
			uc := usecase.NewProductUseCase(nil, nil, nil, 0, clock.RealClock{}, logger.NewNop())
			tpl, err := uc.ImportTemplate(format)
			if err != nil {
				return err
			}
			if output == "" {
				output = tpl.Filename
			}
			if output == "-" {
				_, err := cmd.OutOrStdout().Write(tpl.Content)
				return err
			}
			if err := os.WriteFile(output, tpl.Content, 0o644); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "wrote %s (%d bytes)\n", output, len(tpl.Content))
			return nil
		},
	}
	cmd.Flags().StringVarP(&format, "format", "f", "csv", "Template format: csv or xlsx")
	cmd.Flags().StringVarP(&output, "output", "o", "", "Output file, - for stdout (default: template file name)")
	return cmd
}
