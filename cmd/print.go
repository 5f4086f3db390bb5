// SPDX-License-Identifier: GPL-2.0-or-later
// Copyright (c) 2025 Kaz Walker, Thermoquad

package cmd

import (
	"fmt"
	"image"
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"
	"log/slog"
	"os"

	"github.com/Thermoquad/nelko/internal/config"
	"github.com/Thermoquad/nelko/pkg/p21"
	"github.com/spf13/cobra"
	_ "golang.org/x/image/bmp"
)

var (
	printDensity     int
	printCopies      int
	printMode        string
	printNoFit       bool
	printTestPattern bool
	printSave        string
)

var printCmd = &cobra.Command{
	Use:   "print [image]",
	Short: "Print an image as a label",
	Long: `Print a PNG, JPEG, GIF or BMP image on a 14x40 mm label.

Images wider than they are tall are rotated so the long side runs along the
label. The image is scaled to fit 96x284 dots and dithered to black and white
(--mode 1bit), or reduced to four gray levels on a 48x284 canvas (--mode 2bit).

Use --test-pattern instead of an image to print a diagonal line pattern, and
--save to write the command stream to a file instead of sending it.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runPrint,
}

func init() {
	rootCmd.AddCommand(printCmd)
	printCmd.Flags().IntVarP(&printDensity, "density", "d", config.DefaultDensity, "Print darkness (1-15)")
	printCmd.Flags().IntVarP(&printCopies, "copies", "n", config.DefaultCopies, "Number of copies")
	printCmd.Flags().StringVarP(&printMode, "mode", "m", config.DefaultMode, "Bitmap mode: 1bit or 2bit")
	printCmd.Flags().BoolVar(&printNoFit, "no-fit", false, "Send the image at its own size without rotating or scaling")
	printCmd.Flags().BoolVar(&printTestPattern, "test-pattern", false, "Print the diagonal line test pattern")
	printCmd.Flags().StringVar(&printSave, "save", "", "Write the command stream to a file instead of printing")
}

// applyPrintFlags copies explicitly set print flags over the config file values
func applyPrintFlags(cmd *cobra.Command, cfg *config.Config) {
	flags := cmd.Flags()
	if flags.Changed("density") {
		cfg.Print.Density = printDensity
	}
	if flags.Changed("copies") {
		cfg.Print.Copies = printCopies
	}
	if flags.Changed("mode") {
		cfg.Print.Mode = printMode
	}
}

// loadImage decodes an image file in any registered format
func loadImage(path string) (image.Image, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open image: %w", err)
	}
	defer f.Close()

	img, format, err := image.Decode(f)
	if err != nil {
		return nil, fmt.Errorf("failed to decode image %s: %w", path, err)
	}
	slog.Debug("loaded image", "path", path, "format", format,
		"width", img.Bounds().Dx(), "height", img.Bounds().Dy())
	return img, nil
}

func runPrint(cmd *cobra.Command, args []string) error {
	opts := p21.PrintOptions{
		Density: settings.Print.Density,
		Copies:  uint16(settings.Print.Copies),
		NoFit:   printNoFit,
	}
	mode, err := p21.ParseMode(settings.Print.Mode)
	if err != nil {
		return err
	}
	opts.Mode = mode

	var img image.Image
	switch {
	case printTestPattern:
		if len(args) > 0 {
			return fmt.Errorf("--test-pattern does not take an image")
		}
		// The pattern is drawn at the 2-bit canvas size and sent unscaled
		img = p21.DiagonalTestPattern(p21.RasterRowBytes*4, p21.LabelHeightDots)
		opts.Mode = p21.Mode2Bit
		opts.NoFit = true
	case len(args) == 1:
		img, err = loadImage(args[0])
		if err != nil {
			return err
		}
	default:
		return fmt.Errorf("an image path or --test-pattern is required")
	}

	enc := p21.NewEncoder(opts.Mode)
	enc.Fit = !opts.NoFit
	raster, err := enc.Encode(img)
	if err != nil {
		return reportFailure("image encoding", err)
	}

	if printSave != "" {
		data := p21.BuildPrintCommand(raster, opts.Density, opts.Copies)
		if err := os.WriteFile(printSave, data, 0o644); err != nil {
			return fmt.Errorf("failed to save command stream: %w", err)
		}
		fmt.Printf("Wrote %d bytes to %s\n", len(data), printSave)
		return nil
	}

	transport, connInfo, err := OpenTransport()
	if err != nil {
		return err
	}
	slog.Debug("connection", "info", connInfo)

	ack, err := p21.NewClient(transport).PrintRaster(raster, opts.Density, opts.Copies)
	if err != nil {
		return reportFailure("print", err)
	}

	fmt.Println(labelStyle.Render("Printer response:"))
	fmt.Println(p21.FormatHex(ack))
	return nil
}
