// Package cmd — convert command.
// This is the main command that orchestrates the pipeline:
// collect → load → extract → write row, link and diagnostics → render catalogs.
//
// One driver serves every input kind; the extractor is chosen per file.
package cmd

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	"github.com/gaurav-prasanna/plantpipe/config"
	"github.com/gaurav-prasanna/plantpipe/core"
	"github.com/gaurav-prasanna/plantpipe/core/extract"
	"github.com/gaurav-prasanna/plantpipe/core/fetch"
	"github.com/gaurav-prasanna/plantpipe/core/naming"
	"github.com/gaurav-prasanna/plantpipe/core/normalize"
	"github.com/gaurav-prasanna/plantpipe/core/output"
	"github.com/gaurav-prasanna/plantpipe/core/render"
	"github.com/gaurav-prasanna/plantpipe/inputs"
	"github.com/gaurav-prasanna/plantpipe/logger"
)

// convertFlags holds the per-run destinations. Settings that may also come
// from the config file live in viper instead.
type convertFlags struct {
	files     []string
	csvPath   string
	linksPath string
	diagPath  string

	jsonPath     string
	yamlPath     string
	markdownPath string
	pdfPath      string
	outputDir    string
}

func newConvertCmd(v *viper.Viper) *cobra.Command {
	var f convertFlags

	convertCmd := &cobra.Command{
		Use:   "convert -f <files...>",
		Short: "Convert plant pages or text records to CSV rows",
		Long: `Convert reads each input file, extracts the plant's names and details, and
writes one pipe-delimited CSV row per plant, one index page link per plant,
and diagnostics (warnings and "git mv" commands for misnamed images).

HTML inputs are plant detail pages; other files are plain-text records whose
first line is "Scientific Name (Common Name)" followed by "Label: value" lines
and, after "Something Special or Unique", image names.

Examples:
  plantpipe convert -f pages/*.html -c plants.csv -a links.html -i rename.sh
  plantpipe convert -f records/*.txt -c plants.csv --header --json plants.json
  plantpipe convert --kind legacy-text -f old/*.txt`,
		Args: cobra.ArbitraryArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			// "-f a b c" leaves b and c as positional arguments.
			f.files = append(f.files, args...)
			return runConvert(cmd, v, &f)
		},
	}

	fs := convertCmd.Flags()
	addStreamFlags(fs, &f)
	addCatalogFlags(fs, &f)

	fs.String("kind", "auto", "input kind: auto, html, text or legacy-text")
	fs.String("name-order", "auto", "name order: auto, scientific-first or common-first")
	fs.String("cell-mode", "text", "HTML detail cells: text or markdown")
	fs.Bool("header", false, "write a CSV header row before the first row")

	_ = v.BindPFlag("kind", fs.Lookup("kind"))
	_ = v.BindPFlag("name_order", fs.Lookup("name-order"))
	_ = v.BindPFlag("cell_mode", fs.Lookup("cell-mode"))
	_ = v.BindPFlag("header", fs.Lookup("header"))

	return convertCmd
}

func addStreamFlags(fs *pflag.FlagSet, f *convertFlags) {
	fs.StringArrayVarP(&f.files, "files", "f", nil, "files to convert (required)")
	fs.StringVarP(&f.csvPath, "csv", "c", "", "CSV output file (default: stdout)")
	fs.StringVarP(&f.linksPath, "ahref", "a", "", "output file for html links (default: stdout)")
	fs.StringVarP(&f.diagPath, "img", "i", "", "diagnostics and image rename commands (default: stdout for html, stderr for text)")
}

func addCatalogFlags(fs *pflag.FlagSet, f *convertFlags) {
	fs.StringVar(&f.jsonPath, "json", "", "also write the catalog as JSON")
	fs.StringVar(&f.yamlPath, "yaml", "", "also write the catalog as YAML")
	fs.StringVar(&f.markdownPath, "markdown", "", "also write the catalog as Markdown")
	fs.StringVar(&f.pdfPath, "pdf", "", "also write the catalog as PDF")
	fs.StringVar(&f.outputDir, "output_dir", "", "directory for relative catalog paths (default: current directory)")
}

func runConvert(cmd *cobra.Command, v *viper.Viper, f *convertFlags) error {
	if len(f.files) == 0 {
		return fmt.Errorf("at least one input file is required (--files)")
	}

	cfg, err := config.Load(v)
	if err != nil {
		return err
	}
	logger.Debug().Interface("config", cfg).Strs("files", f.files).Msg("running with settings")

	// Reject bad paths before any output file is created.
	files, err := inputs.Collect(f.files, cfg.Kind)
	if err != nil {
		return err
	}

	catalogs, err := selectRenderers(f)
	if err != nil {
		return err
	}
	extractors := newExtractors(cfg)
	links := render.NewLinkRenderer(cfg.Links.Page, cfg.Links.Indent)

	streams, err := output.Open(output.Options{
		CSVPath:   f.csvPath,
		LinksPath: f.linksPath,
		DiagPath:  f.diagPath,
		Stdout:    cmd.OutOrStdout(),
		Stderr:    cmd.ErrOrStderr(),
	})
	if err != nil {
		return err
	}

	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}
	records, runErr := convertAll(ctx, files, extractors, streams, links, cfg.Header)
	if err := streams.Close(); err != nil && runErr == nil {
		runErr = err
	}
	if runErr != nil {
		return runErr
	}

	return writeCatalogs(catalogs, records, f.outputDir)
}

// convertAll processes every input in order and returns the records written.
func convertAll(
	ctx context.Context,
	files []inputs.Input,
	extractors map[core.Kind]core.Extractor,
	streams *output.Streams,
	links *render.LinkRenderer,
	header bool,
) ([]*core.Record, error) {
	var records []*core.Record
	for i, in := range files {
		log := logger.With().Str("file", in.Path).Logger()
		log.Info().Str("kind", string(in.Kind)).Msgf("processing file %d/%d", i+1, len(files))

		rec, err := processFile(ctx, in, extractors)
		if errors.Is(err, core.ErrNotPlantPage) {
			log.Debug().Err(err).Msg("skipping")
			continue
		}
		if err != nil {
			return records, err
		}

		if header && len(records) == 0 {
			if _, err := fmt.Fprintln(streams.CSV, strings.Join(rec.Header(), "|")); err != nil {
				return records, fmt.Errorf("writing CSV header: %w", err)
			}
		}
		if err := writeRecord(streams, links, rec, in.Kind); err != nil {
			return records, err
		}
		records = append(records, rec)
	}
	if len(records) == 0 {
		logger.Warn().Int("files", len(files)).Msg("no plant records found")
	}
	return records, nil
}

// processFile runs a single input through load and extract.
func processFile(ctx context.Context, in inputs.Input, extractors map[core.Kind]core.Extractor) (*core.Record, error) {
	extractor, ok := extractors[in.Kind]
	if !ok {
		return nil, fmt.Errorf("%s: no extractor for kind %q", in.Path, in.Kind)
	}

	src, err := fetch.New(in.Kind).Load(ctx, in.Path)
	if err != nil {
		return nil, fmt.Errorf("load: %w", err)
	}

	rec, err := extractor.Extract(src)
	if err != nil {
		return nil, fmt.Errorf("extract %s: %w", in.Path, err)
	}
	return rec, nil
}

// writeRecord writes the link line, the diagnostics, then the CSV row.
func writeRecord(streams *output.Streams, links *render.LinkRenderer, rec *core.Record, kind core.Kind) error {
	if _, err := fmt.Fprintln(streams.Links, links.Line(rec)); err != nil {
		return fmt.Errorf("writing link: %w", err)
	}
	diag := streams.Diag(kind)
	for _, d := range rec.Diagnostics {
		if _, err := fmt.Fprintln(diag, d.String()); err != nil {
			return fmt.Errorf("writing diagnostics: %w", err)
		}
	}
	if _, err := fmt.Fprintln(streams.CSV, rec.Row()); err != nil {
		return fmt.Errorf("writing CSV row: %w", err)
	}
	return nil
}

// newExtractors builds one extractor per input kind from the config.
func newExtractors(cfg *config.Config) map[core.Kind]core.Extractor {
	table := extract.NewTableExtractor()
	table.Order = naming.ParseOrder(cfg.NameOrder, naming.CommonFirst)
	table.ImageDir = cfg.Images.Dir
	table.ImageExt = cfg.Images.Ext
	if cfg.CellMode == "markdown" {
		table.Cells = normalize.New()
	}

	text := extract.NewTextExtractor()
	text.Order = naming.ParseOrder(cfg.NameOrder, naming.ScientificFirst)

	legacy := extract.NewLegacyTextExtractor()
	legacy.Order = text.Order

	return map[core.Kind]core.Extractor{
		core.KindHTML:       table,
		core.KindText:       text,
		core.KindLegacyText: legacy,
	}
}

type catalog struct {
	path     string
	renderer core.Renderer
}

// selectRenderers creates the catalog renderers requested by flags.
func selectRenderers(f *convertFlags) ([]catalog, error) {
	var out []catalog
	seen := make(map[string]string)
	add := func(flag, path string, r core.Renderer) error {
		if path == "" {
			return nil
		}
		if other, ok := seen[path]; ok {
			return fmt.Errorf("--%s and --%s both write %s", other, flag, path)
		}
		seen[path] = flag
		out = append(out, catalog{path: path, renderer: r})
		return nil
	}

	if err := add("json", f.jsonPath, render.NewJSONRenderer()); err != nil {
		return nil, err
	}
	if err := add("yaml", f.yamlPath, render.NewYAMLRenderer()); err != nil {
		return nil, err
	}
	if err := add("markdown", f.markdownPath, render.NewMarkdownRenderer()); err != nil {
		return nil, err
	}
	if err := add("pdf", f.pdfPath, render.NewPDFRenderer()); err != nil {
		return nil, err
	}
	return out, nil
}

// writeCatalogs renders every requested catalog from the run's records.
func writeCatalogs(catalogs []catalog, records []*core.Record, outputDir string) error {
	if len(catalogs) == 0 {
		return nil
	}
	writer, err := output.New(outputDir)
	if err != nil {
		return fmt.Errorf("initializing output writer: %w", err)
	}

	for _, c := range catalogs {
		data, err := c.renderer.Render(records)
		if err != nil {
			return fmt.Errorf("render %s: %w", c.path, err)
		}
		path, err := writer.WriteFile(c.path, data, c.renderer.Extension())
		if err != nil {
			return err
		}
		logger.Info().Str("path", path).Int("records", len(records)).Msg("wrote catalog")
	}
	return nil
}
