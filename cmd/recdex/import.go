package main

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	dombatch "github.com/kailas-cloud/recdex/internal/domain/batch"
	"github.com/kailas-cloud/recdex/internal/importer"
	logpkg "github.com/kailas-cloud/recdex/internal/logger"
	"github.com/kailas-cloud/recdex/internal/metrics"
	recordrepo "github.com/kailas-cloud/recdex/internal/repository/record"
	batchuc "github.com/kailas-cloud/recdex/internal/usecase/batch"
)

type importOptions struct {
	file        string
	sheet       string
	collection  string
	keepStrings bool
	batchSize   int
}

func newImportCmd() *cobra.Command {
	var opts importOptions

	cmd := &cobra.Command{
		Use:   "import --file data.csv|data.xlsx",
		Short: "Bulk load a CSV or XLSX file into the collection",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			_, cfg, logger, err := bootstrap()
			if err != nil {
				return err
			}
			defer func() { _ = logger.Sync() }()

			if opts.collection == "" {
				opts.collection = cfg.Collection.Name
			}

			ctx := cmd.Context()
			if ctx == nil {
				ctx = context.Background()
			}
			store, err := openStore(ctx, cfg.Database, logger)
			if err != nil {
				return err
			}
			defer store.Close()

			ctx = logpkg.ContextWithLogger(ctx, logger)
			return runImport(ctx, batchuc.New(recordrepo.New(store), opts.collection), opts, cmd)
		},
	}

	f := cmd.Flags()
	f.StringVarP(&opts.file, "file", "f", "", "CSV or XLSX file to import (required)")
	f.StringVar(&opts.sheet, "sheet", "", "worksheet name for XLSX files (default: first sheet)")
	f.StringVar(&opts.collection, "collection", "", "target collection (default: collection.name from config)")
	f.BoolVar(&opts.keepStrings, "strings", false, "store every cell as a string")
	f.IntVar(&opts.batchSize, "batch", batchuc.DefaultBatchSize, "records per insert call")
	_ = cmd.MarkFlagRequired("file")

	return cmd
}

func runImport(ctx context.Context, svc *batchuc.Service, opts importOptions, cmd *cobra.Command) error {
	log := logpkg.FromContext(ctx)
	metrics.RegisterRecordMetrics()

	tbl, err := importer.Open(opts.file, opts.sheet)
	if err != nil {
		return fmt.Errorf("read %s: %w", opts.file, err)
	}
	recs := tbl.Records(importer.Options{KeepStrings: opts.keepStrings})
	log.Info("Importing records",
		zap.String("file", opts.file),
		zap.String("collection", opts.collection),
		zap.Strings("columns", tbl.Header),
		zap.Int("rows", len(recs)),
	)

	results := svc.WithBatchSize(opts.batchSize).Insert(ctx, recs)
	sum := dombatch.Summarize(results)

	fmt.Fprintf(cmd.OutOrStdout(), "imported %d of %d records into %s\n", sum.OK, len(recs), opts.collection)
	if sum.Failed > 0 {
		return fmt.Errorf("%d records failed: %w", sum.Failed, sum.FirstErr)
	}
	return nil
}
