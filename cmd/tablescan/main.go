// Package main provides the CLI entry point for tablescan-go.
package main

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/disintegration/imaging"
	"github.com/spf13/cobra"

	"github.com/ukaji3/tablescan-go/pkg/tablescan"
	"github.com/ukaji3/tablescan-go/pkg/tablescan/logging"
	"github.com/ukaji3/tablescan-go/pkg/tablescan/ocr"
	"github.com/ukaji3/tablescan-go/pkg/tablescan/output"
)

var (
	mode       string
	workers    int
	lang       string
	tessdata   string
	minSegment int
	debug      bool

	column     int
	row        int
	cropPath   string
	outputPath string
	xlsxPath   string
	maskPath   string
	pretty     bool
	pointX     int
	pointY     int
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "tablescan",
		Short: "Locate and read the cells of a ruled table image",
		Long: `tablescan-go finds the grid lines of a scanned or photographed table,
splits it into columns and rows and reports the rectangle (and text) of
each cell.`,
		SilenceUsage:      true,
		PersistentPreRunE: setupLogging,
	}

	pf := rootCmd.PersistentFlags()
	pf.StringVar(&mode, "mode", "layout", "Extraction mode: layout, text")
	pf.IntVar(&workers, "workers", 1, "Concurrent text recognitions")
	pf.StringVar(&lang, "lang", "eng", "Tesseract language(s), e.g. eng+deu")
	pf.StringVar(&tessdata, "tessdata", "", "Tesseract data directory")
	pf.IntVar(&minSegment, "min-segment", 100, "Shortest grid line kept, in pixels")
	pf.BoolVar(&debug, "debug", false, "Log pipeline details to stderr")

	rootCmd.AddCommand(newLocateCmd(), newAllCmd(), newAtCmd(), newMaskCmd())
	return rootCmd
}

func newLocateCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "locate [image]",
		Short: "Print the rectangle and text of one cell",
		Args:  cobra.ExactArgs(1),
		RunE:  runLocate,
	}
	cmd.Flags().IntVarP(&column, "column", "c", 1, "Column number (1-based)")
	cmd.Flags().IntVarP(&row, "row", "r", 1, "Row number (1-based)")
	cmd.Flags().StringVar(&cropPath, "crop", "", "Save the cell crop to this image file")
	cmd.Flags().BoolVar(&pretty, "pretty", false, "Pretty-print JSON output")
	return cmd
}

func newAllCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "all [image]",
		Short: "Extract every cell as JSON",
		Args:  cobra.ExactArgs(1),
		RunE:  runAll,
	}
	cmd.Flags().StringVarP(&outputPath, "output", "o", "", "Output file path (default: stdout)")
	cmd.Flags().BoolVar(&pretty, "pretty", false, "Pretty-print JSON output")
	cmd.Flags().StringVar(&xlsxPath, "xlsx", "", "Also write the table to this .xlsx file")
	return cmd
}

func newAtCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "at [image]",
		Short: "Print the column and row of the cell containing a pixel",
		Args:  cobra.ExactArgs(1),
		RunE:  runAt,
	}
	cmd.Flags().IntVar(&pointX, "x", 0, "Pixel x coordinate")
	cmd.Flags().IntVar(&pointY, "y", 0, "Pixel y coordinate")
	return cmd
}

func newMaskCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "mask [image]",
		Short: "Write the cleaned grid-line mask as an image",
		Args:  cobra.ExactArgs(1),
		RunE:  runMask,
	}
	cmd.Flags().StringVarP(&maskPath, "output", "o", "mask.png", "Output image path")
	return cmd
}

func setupLogging(cmd *cobra.Command, _ []string) error {
	level := slog.LevelInfo
	if debug {
		level = slog.LevelDebug
	}
	logging.SetLogger(slog.New(slog.NewTextHandler(cmd.ErrOrStderr(), &slog.HandlerOptions{Level: level})))
	return nil
}

// buildOptions maps the global flags to extraction options. When text mode
// is requested but no OCR engine is available the run continues in layout
// mode.
func buildOptions() (tablescan.Options, error) {
	opts := tablescan.DefaultOptions()
	opts.Workers = workers
	opts.MinSegmentLength = minSegment

	switch mode {
	case "layout":
		opts.Mode = tablescan.ModeLayout
	case "text":
		opts.Mode = tablescan.ModeText
	default:
		return opts, fmt.Errorf("invalid mode: %s (must be layout or text)", mode)
	}

	if opts.ShouldRecognize() {
		cfg := ocr.DefaultConfig()
		cfg.Language = lang
		cfg.TessdataPrefix = tessdata
		reader, err := ocr.New(cfg)
		if err != nil {
			logging.Logger().Warn("text recognition unavailable, continuing in layout mode", "err", err)
			opts.Mode = tablescan.ModeLayout
		} else {
			opts.Reader = reader
		}
	}
	return opts, nil
}

// prepare checks the input exists and builds the options for a run.
func prepare(path string) (*tablescan.Options, error) {
	if _, err := os.Stat(path); os.IsNotExist(err) {
		return nil, fmt.Errorf("file not found: %s", path)
	}
	opts, err := buildOptions()
	if err != nil {
		return nil, err
	}
	return &opts, nil
}

func runLocate(cmd *cobra.Command, args []string) error {
	opts, err := prepare(args[0])
	if err != nil {
		return err
	}
	img, err := tablescan.LoadImage(args[0])
	if err != nil {
		return err
	}

	cell, err := tablescan.Locate(cmd.Context(), img, column, row, *opts)
	if err != nil {
		return fmt.Errorf("locate failed: %w", err)
	}

	if cropPath != "" {
		if err := imaging.Save(tablescan.Crop(img, cell.Rect), cropPath); err != nil {
			return fmt.Errorf("failed to write crop: %w", err)
		}
	}

	jsonData, err := output.CellToJSON(cell, pretty)
	if err != nil {
		return fmt.Errorf("serialization failed: %w", err)
	}
	fmt.Fprintln(cmd.OutOrStdout(), string(jsonData))
	return nil
}

func runAll(cmd *cobra.Command, args []string) error {
	opts, err := prepare(args[0])
	if err != nil {
		return err
	}

	data, err := tablescan.Extract(cmd.Context(), args[0], *opts)
	if err != nil {
		return fmt.Errorf("extraction failed: %w", err)
	}
	if len(data.Dropped) > 0 {
		logging.Logger().Info("some cells could not be resolved", "dropped", len(data.Dropped))
	}

	jsonData, err := output.ToJSON(data, pretty)
	if err != nil {
		return fmt.Errorf("serialization failed: %w", err)
	}

	if outputPath != "" {
		if err := os.WriteFile(outputPath, jsonData, 0644); err != nil {
			return fmt.Errorf("failed to write output: %w", err)
		}
	} else {
		fmt.Fprintln(cmd.OutOrStdout(), string(jsonData))
	}

	if xlsxPath != "" {
		if err := output.ToXLSX(data, xlsxPath); err != nil {
			return fmt.Errorf("failed to write workbook: %w", err)
		}
	}
	return nil
}

func runAt(cmd *cobra.Command, args []string) error {
	opts, err := prepare(args[0])
	if err != nil {
		return err
	}
	img, err := tablescan.LoadImage(args[0])
	if err != nil {
		return err
	}

	table, err := tablescan.DetectTable(img, *opts)
	if err != nil {
		return fmt.Errorf("detection failed: %w", err)
	}
	cell, ok := tablescan.NewIndex(table).At(pointX, pointY)
	if !ok {
		return fmt.Errorf("no cell at (%d,%d)", pointX, pointY)
	}
	fmt.Fprintf(cmd.OutOrStdout(), "column %d row %d x=%d y=%d width=%d height=%d\n",
		cell.Column, cell.Row, cell.Rect.X, cell.Rect.Y, cell.Rect.Width, cell.Rect.Height)
	return nil
}

func runMask(cmd *cobra.Command, args []string) error {
	opts, err := prepare(args[0])
	if err != nil {
		return err
	}
	img, err := tablescan.LoadImage(args[0])
	if err != nil {
		return err
	}

	m, err := tablescan.LineMask(img, *opts)
	if err != nil {
		return err
	}
	if err := imaging.Save(m.ToGray(), maskPath); err != nil {
		return fmt.Errorf("failed to write mask: %w", err)
	}
	logging.Logger().Info("mask written", "path", maskPath, "pixels", m.Count())
	return nil
}
