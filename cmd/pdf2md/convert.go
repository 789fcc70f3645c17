package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"

	"github.com/pdiddy/pdf2md/internal/convert"
	"github.com/pdiddy/pdf2md/internal/ocr/tesseract"
	"github.com/pdiddy/pdf2md/internal/pdfdoc"
	"github.com/pdiddy/pdf2md/internal/remote"
	"github.com/pdiddy/pdf2md/internal/secrets"
	"github.com/pdiddy/pdf2md/pkg/types"
)

var convertCmd = &cobra.Command{
	Use:   "convert [files or directories...]",
	Short: "Convert PDF files to Markdown",
	Long: `Convert transforms PDF files into Markdown, one output file per input.
Directories are searched recursively for .pdf files. Files are converted one
at a time; existing outputs are skipped unless --force is given.

In local mode, pages with fewer than 50 characters of embedded text are
treated as scanned and recognized with Tesseract. Their sections are marked
"(OCR)" in the output.`,
	RunE: runConvert,
}

func init() {
	f := convertCmd.Flags()
	f.String("mode", string(types.ModeAI), "conversion mode: ai or local")
	f.String("out-dir", "markdown", "directory for the generated Markdown files")
	f.String("backend", string(types.BackendMuPDF), "local PDF backend: mupdf or text")
	f.String("lang", "eng", "Tesseract language for scanned pages (e.g. eng, deu, eng+fra)")
	f.Int("psm", 3, "Tesseract page segmentation mode")
	f.String("model", types.DefaultRemoteModel, "Gemini model for ai mode")
	f.Bool("force", false, "overwrite existing Markdown files")
	f.Bool("frontmatter", false, "prepend a YAML header with source and mode")
	f.Duration("timeout", 0, "maximum time per document (0 means no limit)")
	f.String("report", "", "write a YAML batch report to this path")

	for key, flag := range map[string]string{
		"mode":                "mode",
		"out_dir":             "out-dir",
		"force":               "force",
		"loader.backend":      "backend",
		"ocr.language":        "lang",
		"ocr.page_seg_mode":   "psm",
		"remote.model":        "model",
		"convert.frontmatter": "frontmatter",
		"convert.timeout":     "timeout",
	} {
		_ = viper.BindPFlag(key, f.Lookup(flag))
	}
	_ = viper.BindEnv("remote.api_key")

	rootCmd.AddCommand(convertCmd)
}

func runConvert(cmd *cobra.Command, args []string) error {
	if len(args) == 0 {
		return fmt.Errorf("provide one or more PDF files or directories")
	}

	cfg, err := loadConversionConfig(viper.GetViper())
	if err != nil {
		return err
	}

	pdfs, ignored, err := convert.CollectPDFs(args)
	if err != nil {
		return err
	}
	for _, p := range ignored {
		fmt.Fprintf(os.Stderr, "warning: ignoring %s (not a .pdf file)\n", p)
	}
	if len(pdfs) == 0 {
		return fmt.Errorf("no PDF files found")
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt)
	defer stop()

	strategy, err := newStrategy(ctx, cfg, logger)
	if err != nil {
		return err
	}

	opts := convert.BatchOptions{
		Mode:        cfg.Mode,
		OutDir:      cfg.OutDir,
		Force:       cfg.Force,
		Frontmatter: viper.GetBool("convert.frontmatter"),
		Timeout:     viper.GetDuration("convert.timeout"),
	}
	report, err := convert.ConvertBatch(ctx, strategy, pdfs, opts, logger, os.Stdout)
	if err != nil {
		return err
	}

	if path, _ := cmd.Flags().GetString("report"); path != "" {
		if err := convert.WriteReport(path, report); err != nil {
			return err
		}
		logger.Info("wrote batch report", zap.String("path", path))
	}
	if report.HasFailures() {
		return fmt.Errorf("%d file(s) failed conversion", report.Failed)
	}
	return nil
}

// loadConversionConfig merges flags, environment and config file.
func loadConversionConfig(v *viper.Viper) (types.ConversionConfig, error) {
	var cfg types.ConversionConfig
	if err := v.Unmarshal(&cfg); err != nil {
		return cfg, fmt.Errorf("reading configuration: %w", err)
	}
	cfg.Defaults()

	switch cfg.Mode {
	case types.ModeAI, types.ModeLocal:
	default:
		return cfg, fmt.Errorf("unknown mode %q (want ai or local)", cfg.Mode)
	}
	return cfg, nil
}

// newStrategy builds the converter for cfg.Mode.
func newStrategy(ctx context.Context, cfg types.ConversionConfig, logger *zap.Logger) (convert.Strategy, error) {
	if cfg.Mode == types.ModeLocal {
		loader, err := pdfdoc.NewLoader(cfg.Loader)
		if err != nil {
			return nil, err
		}
		return convert.NewLocalConverter(loader, tesseract.NewFactory(cfg.OCR),
			convert.WithLanguage(cfg.OCR.Language),
			convert.WithLogger(logger),
		), nil
	}

	rc := cfg.Remote
	rc.APIKey = secrets.Resolve(secrets.GeminiAPIKeyEnv, rc.APIKey, secrets.GeminiAPIKey, loadedSecrets)
	conv, err := remote.New(ctx, rc, logger)
	if err != nil {
		return nil, fmt.Errorf("%w (set %s or write it to %s/%s, or use --mode local)",
			err, secrets.GeminiAPIKeyEnv, secrets.DefaultDir, secrets.GeminiAPIKey)
	}
	return conv, nil
}
