// framelate — localizes design documents: applies translated text and
// locale image assets onto per-locale clones of a design frame.
package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"os/signal"
	"strings"

	"github.com/framelate/framelate/apply"
	"github.com/framelate/framelate/catalog"
	"github.com/framelate/framelate/config"
	"github.com/framelate/framelate/design"
	"github.com/framelate/framelate/extract"
	"github.com/framelate/framelate/fetch"
	"github.com/framelate/framelate/langmeta"
	"github.com/framelate/framelate/server"
	"github.com/framelate/framelate/transmap"
	"github.com/spf13/cobra"
)

// Version information (set via -ldflags during build)
var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

// ANSI colors
const (
	colorReset  = "\033[0m"
	colorRed    = "\033[0;31m"
	colorGreen  = "\033[0;32m"
	colorYellow = "\033[1;33m"
	colorBlue   = "\033[0;34m"
)

func logInfo(format string, args ...any) {
	fmt.Fprintf(os.Stderr, colorBlue+"[INFO]"+colorReset+" "+format+"\n", args...)
}

func logSuccess(format string, args ...any) {
	fmt.Fprintf(os.Stderr, colorGreen+"[OK]"+colorReset+" "+format+"\n", args...)
}

func logWarning(format string, args ...any) {
	fmt.Fprintf(os.Stderr, colorYellow+"[WARN]"+colorReset+" "+format+"\n", args...)
}

func logError(format string, args ...any) {
	fmt.Fprintf(os.Stderr, colorRed+"[ERROR]"+colorReset+" "+format+"\n", args...)
}

// ---------------------------------------------------------------------------
// Global flag
// ---------------------------------------------------------------------------

var rootDir string

// ---------------------------------------------------------------------------
// Root command
// ---------------------------------------------------------------------------

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:   "framelate",
		Short: "Design document localizer: translated text + locale image assets",
		Long: `framelate — design document localizer.

Clones a design frame once per target locale, applies translated text while
preserving the original's dominant style, and swaps image paints for
locale-specific assets matched by name.

Commands:
  status      Show project info: document, translations, asset catalog
  extract     Emit the translation payload (texts + image paints)
  catalog     Asset catalog tools (scan)
  apply       Clone per locale and apply translations + image assets
  serve       Run the standalone asset HTTP server`,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	// Global persistent flag — inherited by all subcommands
	root.PersistentFlags().StringVar(&rootDir, "root", ".", "Project root directory")

	root.AddCommand(
		newStatusCmd(),
		newExtractCmd(),
		newCatalogCmd(),
		newApplyCmd(),
		newServeCmd(),
		newVersionCmd(),
	)

	return root
}

func main() {
	if err := newRootCmd().Execute(); err != nil {
		logError("%v", err)
		os.Exit(1)
	}
}

// ---------------------------------------------------------------------------
// version (display version information)
// ---------------------------------------------------------------------------

func newVersionCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "version",
		Short: "Show version information",
		Long:  `Display version, commit hash, and build date.`,
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Printf("framelate version %s\n", version)
			fmt.Printf("  commit:    %s\n", commit)
			fmt.Printf("  built:     %s\n", date)
		},
	}

	return cmd
}

// ---------------------------------------------------------------------------
// status (read-only: project info + content stats)
// ---------------------------------------------------------------------------

func newStatusCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "status",
		Short: "Show project info and content statistics",
		Long: `Show the project configuration, document contents, translation
locales, and asset catalog statistics. Does not modify any files.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runStatus()
		},
	}

	return cmd
}

func runStatus() error {
	cfg, err := config.Load(rootDir)
	if err != nil {
		return err
	}

	fmt.Fprintf(os.Stderr, "\n%sProject%s\n", colorBlue, colorReset)
	fmt.Fprintln(os.Stderr, strings.Repeat("─", 60))
	fmt.Fprintf(os.Stderr, "  Document:   %s\n", cfg.Document)
	fmt.Fprintf(os.Stderr, "  Assets:     %s\n", cfg.AssetsDir)
	if cfg.Translations != "" {
		fmt.Fprintf(os.Stderr, "  Trans:      %s\n", cfg.Translations)
	}

	doc, err := design.Load(cfg.Document)
	if err != nil {
		logWarning("Cannot read document: %v", err)
		return nil
	}

	fmt.Fprintf(os.Stderr, "  Name:       %s\n", doc.Name)
	fmt.Fprintf(os.Stderr, "  Frames:     %d\n", len(doc.Frames))
	for _, f := range doc.Frames {
		fmt.Fprintf(os.Stderr, "    %-20s %4d nodes, %3d texts, %3d image paints\n",
			f.Name, f.Count(), len(extract.Texts(f)), len(extract.Images(f)))
	}

	if m, err := loadTranslations(cfg); err == nil && len(m) > 0 {
		fmt.Fprintln(os.Stderr)
		fmt.Fprintf(os.Stderr, "  Locales:\n")
		for _, locale := range m.Locales() {
			meta := langmeta.Resolve(locale)
			fmt.Fprintf(os.Stderr, "    %s %-10s %-24s %d entries\n",
				meta.Flag, locale, meta.Name, len(m[locale]))
		}
	}

	if res, err := catalog.Scan(cfg.AssetsDir); err == nil {
		idx := catalog.BuildIndex(res.Catalog)
		fmt.Fprintln(os.Stderr)
		fmt.Fprintf(os.Stderr, "  Catalog:    %d entries\n", len(res.Catalog.Entries))
		for _, locale := range idx.Locales() {
			fmt.Fprintf(os.Stderr, "    %-10s %d assets\n", locale, len(idx.Candidates(locale)))
		}
	}

	fmt.Fprintln(os.Stderr)
	return nil
}

// ---------------------------------------------------------------------------
// extract (emit the translation payload)
// ---------------------------------------------------------------------------

func newExtractCmd() *cobra.Command {
	var output string

	cmd := &cobra.Command{
		Use:   "extract",
		Short: "Emit the translation payload for the selected frame",
		Long: `Extract text and image descriptors from the selected frame and
write them as the JSON payload handed to an external translation engine.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runExtract(output)
		},
	}

	cmd.Flags().StringVarP(&output, "output", "o", "", "Payload output file (default: stdout)")

	return cmd
}

func runExtract(output string) error {
	cfg, err := config.Load(rootDir)
	if err != nil {
		return err
	}
	doc, err := design.Load(cfg.Document)
	if err != nil {
		return err
	}
	root, err := selectFrame(doc, cfg.Node)
	if err != nil {
		return err
	}

	payload := extract.Build(root)
	data, err := payload.Marshal()
	if err != nil {
		return err
	}

	if output == "" {
		fmt.Println(string(data))
	} else {
		if err := os.WriteFile(output, data, 0644); err != nil {
			return fmt.Errorf("writing payload: %w", err)
		}
		logSuccess("Payload written to %s (%d texts, %d image paints)",
			output, len(payload.Texts), len(payload.Images))
	}
	return nil
}

// ---------------------------------------------------------------------------
// catalog scan (build the asset catalog from the assets directory)
// ---------------------------------------------------------------------------

func newCatalogCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "catalog",
		Short: "Asset catalog tools",
	}
	cmd.AddCommand(newCatalogScanCmd())
	return cmd
}

func newCatalogScanCmd() *cobra.Command {
	var output string

	cmd := &cobra.Command{
		Use:   "scan",
		Short: "Scan the assets directory and emit the catalog JSON",
		Long: `Walk the assets directory (assets/<locale>/**/<stem>.<ext>) and build
the asset catalog. Files with disallowed extensions or exceeding the size
ceiling are skipped with a warning.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runCatalogScan(output)
		},
	}

	cmd.Flags().StringVarP(&output, "output", "o", "", "Catalog output file (default: stdout)")

	return cmd
}

func runCatalogScan(output string) error {
	cfg, err := config.Load(rootDir)
	if err != nil {
		return err
	}

	res, err := catalog.Scan(cfg.AssetsDir)
	if err != nil {
		return err
	}
	for _, skip := range res.Skipped {
		logWarning("Skipped %s", skip)
	}

	data, err := res.Catalog.Marshal()
	if err != nil {
		return err
	}
	if output == "" {
		fmt.Println(string(data))
	} else {
		if err := os.WriteFile(output, data, 0644); err != nil {
			return fmt.Errorf("writing catalog: %w", err)
		}
		logSuccess("Catalog written to %s (%d entries)", output, len(res.Catalog.Entries))
	}
	return nil
}

// ---------------------------------------------------------------------------
// apply (the core: clone per locale, apply text + images)
// ---------------------------------------------------------------------------

func newApplyCmd() *cobra.Command {
	var (
		localesFlag []string
		noImages    bool
		nodeID      string
		output      string
	)

	cmd := &cobra.Command{
		Use:   "apply",
		Short: "Clone the frame per locale and apply translations + image assets",
		Long: `Clone the selected frame once per target locale, apply translated text
preserving each node's dominant style, and replace image paints with
locale-specific assets matched by name. Failures are isolated per locale
and per node; the apply report lists everything that was skipped and why.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runApply(localesFlag, nodeID, output, !noImages)
		},
	}

	cmd.Flags().StringSliceVar(&localesFlag, "locales", nil, "Target locales (default: translation map keys)")
	cmd.Flags().BoolVar(&noImages, "no-images", false, "Skip the image replacement pass")
	cmd.Flags().StringVar(&nodeID, "node", "", "Frame id to localize (default: the only frame)")
	cmd.Flags().StringVarP(&output, "output", "o", "", "Output document (default: overwrite input)")

	return cmd
}

func runApply(locales []string, nodeID, output string, images bool) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	cfg, err := config.Load(rootDir)
	if err != nil {
		return err
	}
	if nodeID != "" {
		cfg.Node = nodeID
	}
	if output != "" {
		cfg.Output = output
	}
	if len(locales) > 0 {
		cfg.Locales = locales
	}

	doc, err := design.Load(cfg.Document)
	if err != nil {
		return err
	}
	translations, err := loadTranslations(cfg)
	if err != nil {
		return err
	}

	opts := apply.Options{
		Document:      doc,
		RootID:        cfg.Node,
		Translations:  translations,
		Locales:       cfg.Locales,
		ReplaceImages: images,
		OnLog:         logInfo,
		OnError:       logWarning,
	}

	if images {
		cat, err := loadCatalog(cfg)
		if err != nil {
			return err
		}
		opts.Catalog = cat

		var orch *fetch.Orchestrator
		if cfg.ServerURL != "" {
			src := fetch.NewHTTPSource(cfg.ServerURL, func(resp fetch.Response) {
				orch.HandleResponse(resp)
			})
			orch = fetch.New(src, doc)
		} else {
			src := fetch.NewDirSource(cfg.AssetsDir, func(resp fetch.Response) {
				orch.HandleResponse(resp)
			})
			orch = fetch.New(src, doc)
		}
		opts.Fetcher = orch
	}

	res, err := apply.Run(ctx, opts)
	if err != nil {
		return err
	}

	if err := doc.Save(cfg.Output); err != nil {
		return err
	}
	if err := writeReport(cfg.Output+".report.json", res); err != nil {
		logWarning("Cannot write report: %v", err)
	}

	logSuccess("%d clone(s) created — images: %d replaced, %d skipped, %d ambiguous, %d failed",
		res.FrameCount, res.ImageReplacedCount, res.ImageSkippedCount,
		res.ImageAmbiguousCount, res.ImageFailedCount)
	for _, is := range res.Issues {
		logWarning("  %s %s (%s): %s", is.Locale, is.NodeName, is.NodeID, is.Reason)
	}
	return nil
}

func writeReport(path string, res *apply.Result) error {
	data, err := json.MarshalIndent(res, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

// ---------------------------------------------------------------------------
// serve (standalone asset HTTP server)
// ---------------------------------------------------------------------------

func newServeCmd() *cobra.Command {
	var addr string

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the standalone asset HTTP server",
		Long: `Serve the assets directory over HTTP: /catalog.json returns a freshly
scanned catalog, /bytes/<key> returns raw asset bytes. Intended for design
tool plugins sandboxed away from the filesystem.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load(rootDir)
			if err != nil {
				return err
			}
			ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
			defer stop()

			srv := &server.Server{Dir: cfg.AssetsDir, Addr: addr, OnLog: logInfo}
			return srv.Run(ctx)
		},
	}

	cmd.Flags().StringVar(&addr, "addr", ":8787", "Listen address")

	return cmd
}

// ---------------------------------------------------------------------------
// Shared helpers
// ---------------------------------------------------------------------------

// selectFrame resolves the frame to operate on: an explicit id, or the
// document's only frame.
func selectFrame(doc *design.Document, id string) (*design.Node, error) {
	if id != "" {
		if f := doc.FindFrame(id); f != nil {
			return f, nil
		}
		return nil, fmt.Errorf("frame %q not found in document", id)
	}
	if len(doc.Frames) == 1 {
		return doc.Frames[0], nil
	}
	return nil, fmt.Errorf("document has %d frames; select one with --node", len(doc.Frames))
}

// loadTranslations reads the configured translation map: a JSON file, or
// a directory of <locale>.po files.
func loadTranslations(cfg *config.Config) (transmap.Map, error) {
	if cfg.Translations == "" {
		return transmap.Map{}, nil
	}
	info, err := os.Stat(cfg.Translations)
	if err != nil {
		return nil, fmt.Errorf("translations: %w", err)
	}
	if info.IsDir() {
		return transmap.LoadPODir(cfg.Translations)
	}
	return transmap.Load(cfg.Translations)
}

// loadCatalog reads the pre-built catalog file if configured, otherwise
// scans the assets directory.
func loadCatalog(cfg *config.Config) (*catalog.Catalog, error) {
	if cfg.CatalogFile != "" {
		data, err := os.ReadFile(cfg.CatalogFile)
		if err != nil {
			return nil, fmt.Errorf("reading catalog: %w", err)
		}
		return catalog.Parse(data)
	}
	res, err := catalog.Scan(cfg.AssetsDir)
	if err != nil {
		return nil, err
	}
	for _, skip := range res.Skipped {
		logWarning("Skipped %s", skip)
	}
	return res.Catalog, nil
}
