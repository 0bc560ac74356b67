// Package tone sorts pictures into dark and light folders by their mean
// luminance, decoding each picture into a grid to measure it.
package tone

import (
	"fmt"
	"image"
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"
	"log/slog"
	"os"
	"path/filepath"
	"sync/atomic"

	"pixgrid/bitmap"
	"pixgrid/grid"
	"pixgrid/parallel"
	"pixgrid/pixel"

	"github.com/alecthomas/kong"
	_ "github.com/xfmoulet/qoi"
	_ "golang.org/x/image/bmp"
	_ "golang.org/x/image/tiff"
	_ "golang.org/x/image/vp8l"
	_ "golang.org/x/image/webp"
)

type OpParams struct {
	Scan      string `help:"Source folder to scan" default:"."`
	Dark      string `help:"Destination folder for dark images" default:"dark"`
	Light     string `help:"Destination folder for light images" default:"light"`
	Threshold uint8  `help:"Mean luminance at or above which an image counts as light" default:"128"`
}

type CLICmd struct {
	Cp struct {
		OpParams
	} `cmd:"" help:"Copy images into dark and light folders"`
	Mv struct {
		OpParams
	} `cmd:"" help:"Move images into dark and light folders"`

	conf OpParams
	move bool
}

func (c *CLICmd) Validate(kctx *kong.Context) error {
	var conf *OpParams
	switch kctx.Selected().Name {
	case "cp":
		conf = &c.Cp.OpParams
	case "mv":
		conf = &c.Mv.OpParams
		c.move = true
	}

	scanDir, err := filepath.Abs(conf.Scan)
	var info os.FileInfo
	if err == nil {
		if info, err = os.Stat(scanDir); err == nil && !info.IsDir() {
			err = fmt.Errorf("not a directory")
		}
	}
	if err != nil {
		return fmt.Errorf("invalid scan path %q: %w", conf.Scan, err)
	}
	conf.Scan = scanDir

	if !filepath.IsAbs(conf.Dark) {
		conf.Dark = filepath.Join(scanDir, conf.Dark)
	}
	if !filepath.IsAbs(conf.Light) {
		conf.Light = filepath.Join(scanDir, conf.Light)
	}

	c.conf = *conf
	return nil
}

func (c *CLICmd) Run(pool *parallel.Pool) error {
	conf := c.conf
	fileOp := copyFile
	if c.move {
		fileOp = moveFile
	}

	if err := os.MkdirAll(conf.Dark, os.ModeDir); err != nil {
		return fmt.Errorf("unable to create dark destination folder %q: %w", conf.Dark, err)
	}
	if err := os.MkdirAll(conf.Light, os.ModeDir); err != nil {
		return fmt.Errorf("unable to create light destination folder %q: %w", conf.Light, err)
	}

	files, err := os.ReadDir(conf.Scan)
	if err != nil {
		return fmt.Errorf("unable to read folder %q: %w", conf.Scan, err)
	}

	var darkCount, lightCount, errCount atomic.Uint64
	for _, file := range files {
		if file.IsDir() {
			continue
		}

		base := file.Name()
		name := filepath.Join(conf.Scan, base)
		pool.Do(func() {
			luma, err := meanLuma(name)
			if err != nil {
				errCount.Add(1)
				slog.Error("could not measure image", "file", name, "error", err)
				return
			}

			var dest string
			if luma < pixel.Gray(conf.Threshold) {
				darkCount.Add(1)
				dest = filepath.Join(conf.Dark, base)
			} else {
				lightCount.Add(1)
				dest = filepath.Join(conf.Light, base)
			}

			if err = fileOp(name, dest); err != nil {
				errCount.Add(1)
				slog.Error("could not place image", "from", name, "to", dest, "error", err)
			}
		})
	}
	pool.Wait()

	dark, light, errors := darkCount.Load(), lightCount.Load(), errCount.Load()
	slog.Info("stats", "dark", dark, "light", light, "errors", errors, "total", dark+light)

	if errors > 0 {
		return fmt.Errorf("error processing %d files", errors)
	}
	return nil
}

func meanLuma(path string) (pixel.Gray, error) {
	imgFile, err := os.Open(path)
	if err != nil {
		return 0, fmt.Errorf("could not open image: %w", err)
	}

	img, _, err := image.Decode(imgFile)
	if closeErr := imgFile.Close(); closeErr != nil {
		slog.Error("could not close image", "file", path, "error", closeErr)
	}
	if err != nil {
		return 0, fmt.Errorf("could not decode image: %w", err)
	}

	return imageLuma(img)
}

// imageLuma averages the BT.601 luminance over every pixel of the image.
func imageLuma(img image.Image) (pixel.Gray, error) {
	pic, err := bitmap.FromImage(img)
	if err != nil {
		return 0, fmt.Errorf("could not read pixels: %w", err)
	}

	grays := grid.Map(pic, pixel.RGBA.Luma)
	sum := grid.Reduce(grays, pixel.GraySum(0), func(acc pixel.GraySum, v pixel.Gray) pixel.GraySum {
		return acc.Plus(v.Weighted(1))
	})
	return sum.Mean(grays.Width() * grays.Height()), nil
}
