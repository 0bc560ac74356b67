package mangle

import (
	"fmt"
	"image"
	"log/slog"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"sync/atomic"

	"pixgrid/bitmap"
	"pixgrid/grid"
	"pixgrid/parallel"
	"pixgrid/pixel"

	"github.com/alecthomas/kong"
	_ "golang.org/x/image/vp8l"
	_ "golang.org/x/image/webp"
)

type CLICmd struct {
	Scan    string `help:"Source folder to scan" default:"."`
	Dest    string `help:"Destination folder for processed pictures. Relative to scan dir if not absolute. If same as scan dir, will overwrite source files." default:"mangled"`
	Crop    string `help:"Crop to the x0,y0,x1,y1 window before anything else, upper bounds exclusive" group:"geometry"`
	Rotate  int    `help:"Rotate by this many quarter turns, clockwise if positive" default:"0" group:"geometry"`
	FlipH   bool   `help:"Mirror horizontally" default:"false" group:"geometry"`
	FlipV   bool   `help:"Mirror vertically" default:"false" group:"geometry"`
	Blur    int    `help:"Box blur radius in pixels" default:"0" group:"filter"`
	Sharpen bool   `help:"Apply a 3x3 sharpen kernel" default:"false" group:"filter"`
	Gray    bool   `help:"Reduce to 8-bit grayscale" default:"false" group:"filter"`
	Format  string `help:"Output format of mangled image. If prefixed with 'unsup:' will convert only unsupported formats" enum:"same,gif,unsup:gif,jpeg,unsup:jpeg,png,unsup:png,bmp,unsup:bmp,tiff,unsup:tiff,qoi,unsup:qoi" default:"unsup:png"`

	cropX, cropY grid.Range
}

func (c *CLICmd) Validate(kctx *kong.Context) error {
	scanDir, err := filepath.Abs(c.Scan)
	var info os.FileInfo
	if err == nil {
		if info, err = os.Stat(scanDir); err == nil && !info.IsDir() {
			err = fmt.Errorf("not a directory")
		}
	}
	if err != nil {
		return fmt.Errorf("invalid scan path %q: %w", c.Scan, err)
	}
	c.Scan = scanDir

	if !filepath.IsAbs(c.Dest) {
		c.Dest = filepath.Join(scanDir, c.Dest)
	}

	if c.Blur < 0 {
		return fmt.Errorf("invalid blur radius: %d", c.Blur)
	}

	if c.Crop != "" {
		if c.cropX, c.cropY, err = parseCrop(c.Crop); err != nil {
			return err
		}
	}

	return nil
}

func (c *CLICmd) Run(pool *parallel.Pool) error {
	if err := os.MkdirAll(c.Dest, os.ModeDir); err != nil {
		return fmt.Errorf("unable to create destination folder %q: %w", c.Dest, err)
	}

	files, err := os.ReadDir(c.Scan)
	if err != nil {
		return fmt.Errorf("unable to read folder %q: %w", c.Scan, err)
	}

	var processedCount, errCount atomic.Uint64
	for _, file := range files {
		if file.IsDir() {
			continue
		}

		fileName := file.Name()
		pool.Do(func() {
			if err := c.processFile(fileName); err != nil {
				errCount.Add(1)
				slog.Error("could not process image", "file", fileName, "error", err)
				return
			}
			processedCount.Add(1)
		})
	}
	pool.Wait()

	processed := processedCount.Load()
	errors := errCount.Load()
	slog.Info("stats", "processed", processed, "errors", errors, "total", processed+errors)

	if errors > 0 {
		return fmt.Errorf("error processing %d files", errors)
	}
	return nil
}

func (c *CLICmd) processFile(fileName string) error {
	filePath := filepath.Join(c.Scan, fileName)
	logger := slog.Default().With("file", filePath)

	imgFile, err := os.Open(filePath)
	if err != nil {
		return fmt.Errorf("could not open image: %w", err)
	}

	img, imgType, err := image.Decode(imgFile)
	if closeErr := imgFile.Close(); closeErr != nil {
		logger.Error("could not close image", "error", closeErr)
	}
	if err != nil {
		return fmt.Errorf("could not decode image: %w", err)
	}

	pic, err := bitmap.FromImage(img)
	if err != nil {
		return fmt.Errorf("could not read pixels: %w", err)
	}

	if pic, err = c.transform(logger, pic); err != nil {
		return err
	}

	var out image.Image
	if c.Gray {
		out = bitmap.ToGrayImage(grid.Map(pic, pixel.RGBA.Luma))
	} else {
		out = bitmap.ToImage(pic)
	}

	return save(out, imgType, c.Format, c.Dest, fileName)
}

func (c *CLICmd) transform(logger *slog.Logger, pic *grid.Grid[pixel.RGBA]) (*grid.Grid[pixel.RGBA], error) {
	if c.Crop != "" {
		cropped, ok := pic.Crop(c.cropX, c.cropY)
		if !ok {
			return nil, fmt.Errorf("crop window %s outside %dx%d image", c.Crop, pic.Width(), pic.Height())
		}
		pic = cropped
	}

	if c.Rotate != 0 {
		pic = pic.Rotate(c.Rotate)
	}
	if c.FlipH {
		pic = pic.FlipHorizontal()
	}
	if c.FlipV {
		pic = pic.FlipVertical()
	}

	if c.Blur > 0 {
		logger.Debug("blurring", "radius", c.Blur)
		pic = grid.Convolve[pixel.RGBA, pixel.RGBASum](pic, grid.BoxKernel(c.Blur))
	}
	if c.Sharpen {
		pic = grid.Convolve[pixel.RGBA, pixel.RGBASum](pic, sharpenKernel())
	}

	return pic, nil
}

// parseCrop reads an x0,y0,x1,y1 window with exclusive upper bounds.
func parseCrop(s string) (xr, yr grid.Range, err error) {
	parts := strings.Split(s, ",")
	if len(parts) != 4 {
		return xr, yr, fmt.Errorf("invalid crop %q, should be x0,y0,x1,y1", s)
	}
	var vals [4]int
	for i, part := range parts {
		if vals[i], err = strconv.Atoi(strings.TrimSpace(part)); err != nil {
			return xr, yr, fmt.Errorf("invalid crop coordinate %q: %w", part, err)
		}
	}
	xr = grid.Range{Lo: vals[0], Hi: vals[2]}
	yr = grid.Range{Lo: vals[1], Hi: vals[3]}
	if xr.Len() == 0 || yr.Len() == 0 {
		return grid.Range{}, grid.Range{}, fmt.Errorf("empty crop window %q", s)
	}
	return xr, yr, nil
}

// sharpenKernel is the classic 3x3 unsharp kernel: center 5, edge
// neighbors -1. Weights sum to 1, so flat regions pass through unchanged.
func sharpenKernel() *grid.Grid[pixel.Int] {
	return grid.MustFromPix(3, 3, []pixel.Int{
		0, -1, 0,
		-1, 5, -1,
		0, -1, 0,
	})
}
