package main

import (
	"context"
	"fmt"
	"label-batch-service/internal/adapters/document"
	"label-batch-service/internal/adapters/repositories"
	"label-batch-service/internal/config"
	"label-batch-service/internal/labels"
	"label-batch-service/internal/ports"
	"label-batch-service/internal/services"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var (
	labelFile  string
	outDir     string
	outputFile string
	testMode   bool
	fromDB     bool
	saveDocs   bool
)

var buildCmd = &cobra.Command{
	Use:   "build",
	Short: "Batch labels and write one XML document per batch",
	Long: `Reads labels from a YAML or JSON file (or the configured database with
--from-db), places each label in the first batch it agrees with, and writes
batch-1.xml, batch-2.xml, ... into the output directory.

Example:
  dazzle build -f labels.yaml -o out --test`,
	Args: cobra.NoArgs,
	RunE: runBuild,
}

var checkCmd = &cobra.Command{
	Use:   "check",
	Short: "Validate a label file and report how it would be batched",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		docs, err := build(cmd.Context(), false)
		if err != nil {
			return err
		}
		for i, d := range docs {
			fmt.Fprintf(cmd.OutOrStdout(), "batch %d: %d package(s) %v\n", i+1, d.PackageCount, d.References)
		}
		return nil
	},
}

func init() {
	for _, c := range []*cobra.Command{buildCmd, checkCmd} {
		c.Flags().StringVarP(&labelFile, "file", "f", "", "label file (.yaml, .yml or .json)")
		c.Flags().BoolVar(&fromDB, "from-db", false, "read labels from the configured database instead of a file")
		c.Flags().StringVar(&outputFile, "output-file", "", "printer result file for every batch")
		c.Flags().BoolVar(&testMode, "test", false, "print test labels (no postage)")
		c.MarkFlagsMutuallyExclusive("file", "from-db")
	}
	buildCmd.Flags().StringVarP(&outDir, "out", "o", "", "directory for the batch XML files (default $OUTPUT_DIR, then ./out)")
	buildCmd.Flags().BoolVar(&saveDocs, "save", false, "also store the documents in the configured database")
}

func runBuild(cmd *cobra.Command, args []string) error {
	docs, err := build(cmd.Context(), saveDocs)
	if err != nil {
		return err
	}

	if outDir == "" {
		config.LoadEnv()
		outDir = config.FromEnv().OutputDir
	}
	if err := os.MkdirAll(outDir, 0o755); err != nil {
		return fmt.Errorf("build: create output dir: %w", err)
	}
	for i, d := range docs {
		path := filepath.Join(outDir, fmt.Sprintf("batch-%d.xml", i+1))
		if err := os.WriteFile(path, []byte(d.XML), 0o644); err != nil {
			return fmt.Errorf("build: write %s: %w", path, err)
		}
		logger.Info("wrote batch", zap.String("path", path), zap.String("batch_id", d.BatchID), zap.Int("packages", d.PackageCount))
		fmt.Fprintf(cmd.OutOrStdout(), "%s: %d package(s)\n", path, d.PackageCount)
	}
	return nil
}

func build(ctx context.Context, save bool) ([]services.BatchDocument, error) {
	if ctx == nil {
		ctx = context.Background()
	}
	if labelFile == "" && !fromDB {
		return nil, fmt.Errorf("either --file or --from-db is required")
	}

	req := services.BuildShipmentRequest{Save: save}

	// Command-line settings are the strongest default layer.
	flags := &labels.Request{}
	if outputFile != "" {
		abs, err := filepath.Abs(outputFile)
		if err != nil {
			return nil, fmt.Errorf("resolve output file: %w", err)
		}
		flags.OutputFile = abs
	}
	if testMode {
		flags.Test = &testMode
	}
	req.Defaults = append(req.Defaults, flags)

	// Labels from a file are served by an in-memory repository; --from-db
	// swaps in the configured database.
	var repo ports.LabelRepository
	if labelFile != "" {
		f, err := labels.Load(labelFile)
		if err != nil {
			return nil, err
		}
		repo = repositories.NewMemoryLabelRepository(f.Labels...)
		req.Defaults = append(req.Defaults, &f.Defaults)
	}

	var docStore ports.DocumentStore
	if fromDB || save {
		config.LoadEnv()
		conn, store, err := repositories.OpenStore(config.FromEnv())
		if err != nil {
			return nil, err
		}
		defer conn.Close()
		docStore = store
		if fromDB {
			repo = store
		}
	}

	return services.BuildShipment(ctx, req, repo, docStore, document.Factory)
}
