package main

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"sort"
	"strings"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/dyuri/emfconv/internal/config"
	"github.com/dyuri/emfconv/internal/model"
	"github.com/dyuri/emfconv/internal/object"
	"github.com/dyuri/emfconv/pkg/emf"
)

var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

// settings is loaded once before any command runs
var settings = config.Default()

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "emfconv",
	Short: "Inspect, replay and build Windows enhanced metafiles",
	Long: `emfconv is a tool for working with enhanced metafiles (EMF).

It can show header information, dump every record as text, trace the
drawing calls a metafile replays, copy a metafile through a fresh device
context, validate structure and handle use, and write a demo picture.`,
	SilenceUsage:      true,
	PersistentPreRunE: setup,
}

func init() {
	rootCmd.PersistentFlags().String("config", "", "TOML settings file")
	rootCmd.PersistentFlags().String("log-level", "", "Log level: panic, fatal, error, warn, info, debug, trace")
	rootCmd.PersistentFlags().Uint32("max-record", 0, "Largest record accepted when reading, in bytes")
	rootCmd.PersistentFlags().Bool("integer-miter", false, "Treat EMR_SETMITERLIMIT as an integer")

	rootCmd.AddCommand(infoCmd)
	rootCmd.AddCommand(dumpCmd)
	rootCmd.AddCommand(playCmd)
	rootCmd.AddCommand(copyCmd)
	rootCmd.AddCommand(validateCmd)
	rootCmd.AddCommand(demoCmd)
	rootCmd.AddCommand(versionCmd)
}

// setup loads the settings file and lets flags override it
func setup(cmd *cobra.Command, _ []string) error {
	logrus.SetOutput(os.Stderr)
	logrus.SetFormatter(&logrus.TextFormatter{DisableTimestamp: true})

	flags := cmd.Flags()
	if path, _ := flags.GetString("config"); path != "" {
		cfg, err := config.Load(path)
		if err != nil {
			return err
		}
		settings = cfg
	}
	settings.ApplyLogLevel()

	if level, _ := flags.GetString("log-level"); level != "" {
		lvl, err := logrus.ParseLevel(level)
		if err != nil {
			return fmt.Errorf("log level: %w", err)
		}
		logrus.SetLevel(lvl)
	}
	if flags.Changed("max-record") {
		settings.Read.MaxRecordSize, _ = flags.GetUint32("max-record")
	}
	if flags.Changed("integer-miter") {
		v, _ := flags.GetBool("integer-miter")
		settings.Read.IntegerMiterLimit = v
		settings.Device.IntegerMiterLimit = v
	}
	return nil
}

// readInput opens and decodes a metafile
func readInput(path string) (*emf.Metafile, int64, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, 0, fmt.Errorf("open input file: %w", err)
	}
	defer f.Close()

	stat, err := f.Stat()
	if err != nil {
		return nil, 0, fmt.Errorf("stat input file: %w", err)
	}

	mf, err := emf.Read(emf.NewTable(), f, settings.ReadOptions())
	if err != nil {
		return nil, 0, fmt.Errorf("parse metafile: %w", err)
	}
	return mf, stat.Size(), nil
}

// withOutput runs fn against the named file, or stdout when path is empty
func withOutput(path string, fn func(io.Writer) error) error {
	if path == "" {
		return fn(os.Stdout)
	}
	out, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create output file: %w", err)
	}
	if err := fn(out); err != nil {
		out.Close()
		return err
	}
	return out.Close()
}

// info command
var infoCmd = &cobra.Command{
	Use:   "info <input.emf>",
	Short: "Display metafile information",
	Long: `Display the header and record statistics of a metafile.

Shows bounds, frame, reference device, description and the number of
records of each type.`,
	Args: cobra.ExactArgs(1),
	RunE: runInfo,
}

func init() {
	infoCmd.Flags().Bool("json", false, "Output as JSON")
	infoCmd.Flags().Bool("brief", false, "Show only summary")
}

func runInfo(cmd *cobra.Command, args []string) error {
	inputPath := args[0]
	jsonOutput, _ := cmd.Flags().GetBool("json")
	brief, _ := cmd.Flags().GetBool("brief")

	mf, size, err := readInput(inputPath)
	if err != nil {
		return err
	}

	if jsonOutput {
		return outputInfoJSON(inputPath, mf, size)
	}
	return outputInfoText(inputPath, mf, size, brief)
}

type typeCount struct {
	Type  string `json:"type"`
	Count int    `json:"count"`
}

// countTypes returns record counts, most frequent first
func countTypes(mf *emf.Metafile) []typeCount {
	counts := make(map[model.RecordType]int)
	for _, rec := range mf.Records() {
		counts[rec.Type()]++
	}
	out := make([]typeCount, 0, len(counts))
	for t, n := range counts {
		out = append(out, typeCount{Type: t.String(), Count: n})
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Count != out[j].Count {
			return out[i].Count > out[j].Count
		}
		return out[i].Type < out[j].Type
	})
	return out
}

func outputInfoText(path string, mf *emf.Metafile, fileSize int64, brief bool) error {
	h := mf.Header()
	if brief {
		fmt.Printf("%s: Records=%d Bytes=%d Handles=%d Bounds=%v Frame=%v\n",
			path, h.Records, h.Bytes, h.Handles, h.Bounds, h.Frame)
		return nil
	}

	fmt.Printf("EMF File: %s\n", path)
	fmt.Println(strings.Repeat("=", 50))
	fmt.Println()

	fmt.Println("Header:")
	fmt.Printf("  Bounds (px):      %d,%d - %d,%d\n", h.Bounds.Left, h.Bounds.Top, h.Bounds.Right, h.Bounds.Bottom)
	fmt.Printf("  Frame (0.01 mm):  %d,%d - %d,%d\n", h.Frame.Left, h.Frame.Top, h.Frame.Right, h.Frame.Bottom)
	fmt.Printf("  Device:           %dx%d px, %dx%d mm\n", h.Device.CX, h.Device.CY, h.Millimeters.CX, h.Millimeters.CY)
	fmt.Printf("  Handles:          %d\n", h.Handles)
	if segs := model.DescriptionSegments(h.Description); len(segs) > 0 {
		fmt.Printf("  Description:      %s\n", strings.Join(segs, " / "))
	}
	fmt.Println()

	fmt.Printf("Records:            %d\n", h.Records)
	fmt.Printf("File Size:          %s (%d bytes)\n", formatBytes(fileSize), fileSize)
	if int64(h.Bytes) != fileSize {
		fmt.Printf("  (header declares %d bytes)\n", h.Bytes)
	}
	fmt.Println()

	fmt.Println("Record Types:")
	for _, tc := range countTypes(mf) {
		fmt.Printf("  %-26s %d\n", tc.Type, tc.Count)
	}
	return nil
}

func outputInfoJSON(path string, mf *emf.Metafile, fileSize int64) error {
	h := mf.Header()
	info := map[string]interface{}{
		"file": path,
		"header": map[string]interface{}{
			"bounds":      h.Bounds,
			"frame":       h.Frame,
			"device":      h.Device,
			"millimeters": h.Millimeters,
			"bytes":       h.Bytes,
			"records":     h.Records,
			"handles":     h.Handles,
			"description": model.DescriptionSegments(h.Description),
		},
		"types":    countTypes(mf),
		"fileSize": fileSize,
	}

	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(info)
}

// formatBytes formats byte count in human-readable format
func formatBytes(bytes int64) string {
	const unit = 1024
	if bytes < unit {
		return fmt.Sprintf("%d B", bytes)
	}
	div, exp := int64(unit), 0
	for n := bytes / unit; n >= unit; n /= unit {
		div *= unit
		exp++
	}
	return fmt.Sprintf("%.1f %ciB", float64(bytes)/float64(div), "KMGTPE"[exp])
}

// dump command
var dumpCmd = &cobra.Command{
	Use:   "dump <input.emf>",
	Short: "Write every record as text",
	Long: `Write one text section per record, with its index, offset, size and
decoded fields.`,
	Args: cobra.ExactArgs(1),
	RunE: runDump,
}

func init() {
	dumpCmd.Flags().StringP("output", "o", "", "Output file (default: stdout)")
}

func runDump(cmd *cobra.Command, args []string) error {
	outputPath, _ := cmd.Flags().GetString("output")

	mf, _, err := readInput(args[0])
	if err != nil {
		return err
	}
	return withOutput(outputPath, func(w io.Writer) error {
		return emf.Dump(w, mf)
	})
}

// play command
var playCmd = &cobra.Command{
	Use:   "play <input.emf>",
	Short: "Trace the drawing calls a metafile replays",
	Long: `Replay a metafile against a tracing surface that prints one line per
drawing call. Object handles are shown as the surface assigned them.`,
	Args: cobra.ExactArgs(1),
	RunE: runPlay,
}

func init() {
	playCmd.Flags().StringP("output", "o", "", "Output file (default: stdout)")
}

func runPlay(cmd *cobra.Command, args []string) error {
	outputPath, _ := cmd.Flags().GetString("output")

	mf, _, err := readInput(args[0])
	if err != nil {
		return err
	}
	return withOutput(outputPath, func(w io.Writer) error {
		return emf.Trace(w, mf)
	})
}

// copy command
var copyCmd = &cobra.Command{
	Use:   "copy <input.emf>",
	Short: "Re-record a metafile through a new device context",
	Long: `Replay a metafile into a new metafile device context and write the result.

Objects are re-created and handles renumbered; bounds are recomputed
from the drawing unless --keep-frame is given.`,
	Args: cobra.ExactArgs(1),
	RunE: runCopy,
}

func init() {
	copyCmd.Flags().StringP("output", "o", "", "Output file (required)")
	copyCmd.Flags().Bool("keep-frame", false, "Keep the source picture frame")
	copyCmd.MarkFlagRequired("output")
}

func runCopy(cmd *cobra.Command, args []string) error {
	outputPath, _ := cmd.Flags().GetString("output")
	keepFrame, _ := cmd.Flags().GetBool("keep-frame")

	src, _, err := readInput(args[0])
	if err != nil {
		return err
	}
	h := src.Header()

	var frame *model.Rect
	if keepFrame {
		frame = &h.Frame
	}
	mcfg := settings.Metafile(frame, h.Description)
	mcfg.Device = h.Device
	mcfg.Millimeters = h.Millimeters

	dst := emf.Create(emf.NewTable(), mcfg)
	if err := emf.Copy(dst, src); err != nil {
		if !errors.Is(err, emf.ErrNotFound) {
			return fmt.Errorf("copy: %w", err)
		}
		logrus.WithError(err).Warn("copied with unresolved handles")
	}
	if err := dst.Close(); err != nil {
		return err
	}

	if err := withOutput(outputPath, func(w io.Writer) error {
		return emf.Write(w, dst)
	}); err != nil {
		return err
	}
	fmt.Printf("Wrote %d records (%d bytes) to %s\n", dst.Header().Records, dst.Header().Bytes, outputPath)
	return nil
}

// validate command
var validateCmd = &cobra.Command{
	Use:   "validate <input.emf>",
	Short: "Check metafile structure and handle use",
	Long: `Decode every record and replay the metafile without drawing.

Decoding errors always fail. Records that use handles never created are
reported as warnings, or as errors with --strict.`,
	Args: cobra.ExactArgs(1),
	RunE: runValidate,
}

func init() {
	validateCmd.Flags().Bool("strict", false, "Fail on warnings")
}

func runValidate(cmd *cobra.Command, args []string) error {
	inputPath := args[0]
	strict, _ := cmd.Flags().GetBool("strict")

	mf, size, err := readInput(inputPath)
	if err != nil {
		return err
	}

	h := mf.Header()
	var warnings []string
	if int64(h.Bytes) != size {
		warnings = append(warnings, fmt.Sprintf("file is %d bytes, header records %d", size, h.Bytes))
	}
	if err := emf.Validate(mf); err != nil {
		if !errors.Is(err, emf.ErrNotFound) {
			return fmt.Errorf("validation failed: %w", err)
		}
		warnings = append(warnings, strings.Split(err.Error(), "\n")...)
	}

	for _, w := range warnings {
		fmt.Printf("WARNING: %s\n", w)
	}
	if strict && len(warnings) > 0 {
		return fmt.Errorf("%d warnings in strict mode", len(warnings))
	}
	fmt.Printf("%s: OK (%d records)\n", inputPath, h.Records)
	return nil
}

// demo command
var demoCmd = &cobra.Command{
	Use:   "demo",
	Short: "Write a sample metafile",
	Long: `Record a small picture that exercises pens, brushes, fonts, paths,
polygons and text, and write it as a metafile.`,
	Args: cobra.NoArgs,
	RunE: runDemo,
}

func init() {
	demoCmd.Flags().StringP("output", "o", "", "Output file (required)")
	demoCmd.Flags().String("title", "demo", "Picture title stored in the description")
	demoCmd.MarkFlagRequired("output")
}

func runDemo(cmd *cobra.Command, args []string) error {
	outputPath, _ := cmd.Flags().GetString("output")
	title, _ := cmd.Flags().GetString("title")

	objects := emf.NewTable()
	mf := emf.Create(objects, settings.Metafile(nil, model.NewDescription("emfconv", title)))
	if err := drawDemo(objects, mf); err != nil {
		return fmt.Errorf("record demo: %w", err)
	}
	if err := mf.Close(); err != nil {
		return err
	}
	if err := withOutput(outputPath, func(w io.Writer) error {
		return emf.Write(w, mf)
	}); err != nil {
		return err
	}
	fmt.Printf("Wrote %d records (%d bytes) to %s\n", mf.Header().Records, mf.Header().Bytes, outputPath)
	return nil
}

func drawDemo(objects *object.Table, mf *emf.Metafile) error {
	red := objects.CreatePen(model.PenSolid, 3, model.RGB(0xcc, 0, 0))
	blue := objects.CreateSolidBrush(model.RGB(0x20, 0x40, 0xc0))
	hatch := objects.CreateBrushIndirect(model.LogBrush{
		Style: model.BrushHatched,
		Color: model.RGB(0, 0x80, 0),
		Hatch: model.HatchCross,
	})
	font := objects.CreateFont(object.FontSpec{
		Height:   -24,
		Weight:   model.FontWeightBold,
		CharSet:  model.CharsetANSI,
		FaceName: "Arial",
	})

	steps := []func() error{
		func() error { return mf.SetMapMode(model.MapText) },
		func() error { return mf.SetBkMode(model.Transparent) },
		func() error { return mf.SelectObject(red) },
		func() error { return mf.SelectObject(blue) },
		func() error { return mf.Rectangle(model.Rect{Left: 10, Top: 10, Right: 210, Bottom: 110}) },
		func() error { return mf.SelectObject(hatch) },
		func() error { return mf.Ellipse(model.Rect{Left: 230, Top: 10, Right: 330, Bottom: 110}) },
		func() error {
			return mf.Polygon([]model.Point{{X: 10, Y: 200}, {X: 110, Y: 130}, {X: 210, Y: 200}})
		},
		func() error { return mf.SaveDC() },
		func() error { return mf.SetPolyFillMode(model.Winding) },
		func() error { return mf.BeginPath() },
		func() error { return mf.MoveToEx(model.Point{X: 250, Y: 200}) },
		func() error {
			return mf.PolyBezierTo([]model.Point{{X: 270, Y: 120}, {X: 310, Y: 120}, {X: 330, Y: 200}})
		},
		func() error { return mf.CloseFigure() },
		func() error { return mf.EndPath() },
		func() error { return mf.StrokeAndFillPath() },
		func() error { return mf.RestoreDC(-1) },
		func() error { return mf.SelectObject(font) },
		func() error { return mf.SetTextColor(model.RGB(0x33, 0x33, 0x33)) },
		func() error { return mf.TextOut(model.Point{X: 10, Y: 250}, "emfconv demo") },
		func() error { return mf.SelectObject(model.BlackBrush.Handle()) },
		func() error { return mf.DeleteObject(hatch) },
	}
	for i, step := range steps {
		if err := step(); err != nil {
			return fmt.Errorf("step %d: %w", i, err)
		}
	}
	return nil
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Show version information",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Printf("emfconv version %s\n", version)
		fmt.Printf("commit: %s\n", commit)
		fmt.Printf("built: %s\n", date)
	},
}
