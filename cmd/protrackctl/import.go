package main

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"

	"github.com/fekuna/protrack-service/config"
	"github.com/fekuna/protrack-service/internal/i18n"
	"github.com/fekuna/protrack-service/internal/pkg/clock"
	"github.com/fekuna/protrack-service/internal/product/csvimport"
	"github.com/fekuna/protrack-service/internal/product/dto"
	"github.com/fekuna/protrack-service/internal/product/repository"
	"github.com/fekuna/protrack-service/internal/product/usecase"
	"github.com/spf13/cobra"
)

type importOptions struct {
	companyID string
	userID    string
	locale    string
	maxBytes  int
	dryRun    bool
}

var errImportFailed = errors.New("import failed")

func newImportCmd(global *globalOptions) *cobra.Command {
	var opts importOptions

	cmd := &cobra.Command{
		Use:   "import <file.csv>",
		Short: "Import products from a CSV file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runImport(cmd, global, opts, args[0])
		},
	}

	cfg := config.LoadEnv()
	cmd.Flags().StringVar(&opts.companyID, "company", "", "Company that owns the imported products (required)")
	cmd.Flags().StringVar(&opts.userID, "user", "", "User recorded as the creator")
	cmd.Flags().StringVar(&opts.locale, "locale", cfg.Import.Locale, "Language of the report messages (es, en)")
	cmd.Flags().IntVar(&opts.maxBytes, "max-bytes", cfg.Import.MaxFileBytes, "Reject files larger than this")
	cmd.Flags().BoolVar(&opts.dryRun, "dry-run", false, "Parse and report without writing")
	_ = cmd.MarkFlagRequired("company")

	return cmd
}

func runImport(cmd *cobra.Command, global *globalOptions, opts importOptions, path string) error {
	ctx := cmd.Context()
	log := global.logger()
	defer log.Sync()

	content, err := os.ReadFile(path)
	if err != nil {
		return err
	}

	db, err := global.openDB(ctx)
	if err != nil {
		return err
	}
	defer db.Close()

	repo := repository.NewPGRepository(db)
	tr := i18n.MustTranslator(opts.locale)
	importer := csvimport.NewImporter(repo, tr, log, csvimport.WithMaxBytes(opts.maxBytes))
	owner := csvimport.Owner{CompanyID: opts.companyID, UserID: opts.userID}

	var out any
	if opts.dryRun {
		text := csvimport.DecodeText(content)
		if err := importer.CheckSize(text); err != nil {
			return err
		}
		existing, err := repo.ExistingIDs(ctx, csvimport.CandidateIDs(text))
		if err != nil {
			return err
		}
		batch, err := importer.Parse(text, existing, owner)
		if err != nil {
			return err
		}
		out = batch
	} else {
		uc := usecase.NewProductUseCase(repo, importer, nil, 0, clock.RealClock{}, log)
		res := uc.ImportCSV(ctx, &dto.ImportInput{
			CompanyID: opts.companyID,
			UserID:    opts.userID,
			Content:   content,
		})
		if err := writeJSON(cmd, res); err != nil {
			return err
		}
		if !res.Success {
			return fmt.Errorf("%w: %s", errImportFailed, res.Error)
		}
		return nil
	}
	return writeJSON(cmd, out)
}

func writeJSON(cmd *cobra.Command, v any) error {
	enc := json.NewEncoder(cmd.OutOrStdout())
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
