package icon

import (
	"bytes"
	"fmt"
	"image"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strings"

	// image formats carrying alpha
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"

	"github.com/golang/glog"
	"github.com/nfnt/resize"
	_ "golang.org/x/image/bmp"
	_ "golang.org/x/image/tiff"
	_ "golang.org/x/image/webp"

	fx "github.com/robotalks/inktools/pkg/framework"
)

// Result describes one converted icon.
type Result struct {
	Source string
	Output string
	Name   string
	Mask   *Mask
}

// Converter converts every image in SourceDir into a header in OutputDir.
type Converter struct {
	SourceDir string
	OutputDir string
	Prefix    string
	Width     int
	Height    int
	Threshold uint8
	// Resize scales images to Width x Height instead of rejecting them.
	Resize bool
	// KeepGoing converts the remaining files after a failure.
	KeepGoing bool
}

// NewConverter creates a Converter with firmware defaults.
func NewConverter(src, out string) *Converter {
	return &Converter{
		SourceDir: src,
		OutputDir: out,
		Prefix:    DefaultPrefix,
		Width:     DefaultSize,
		Height:    DefaultSize,
		Threshold: DefaultThreshold,
	}
}

// Run converts all source files in name order.
func (c *Converter) Run() ([]*Result, error) {
	if err := os.MkdirAll(c.OutputDir, 0755); err != nil {
		return nil, fmt.Errorf("create output dir: %w", err)
	}
	entries, err := os.ReadDir(c.SourceDir)
	if err != nil {
		return nil, fmt.Errorf("read source dir: %w", err)
	}
	names := make([]string, 0, len(entries))
	for _, ent := range entries {
		if ent.IsDir() || strings.HasPrefix(ent.Name(), ".") {
			continue
		}
		names = append(names, ent.Name())
	}
	sort.Strings(names)

	var results []*Result
	var errs fx.AggregatedError
	for _, name := range names {
		res, err := c.ConvertFile(filepath.Join(c.SourceDir, name))
		if err != nil {
			if !c.KeepGoing {
				return results, err
			}
			glog.Errorf("%v", err)
			errs.Add(err)
			continue
		}
		glog.V(1).Infof("%s -> %s", res.Source, res.Output)
		results = append(results, res)
	}
	return results, errs.Aggregate()
}

// ConvertFile converts a single image and writes its header.
func (c *Converter) ConvertFile(path string) (*Result, error) {
	m, err := c.LoadMask(path)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	base := filepath.Base(path)
	base = strings.TrimSuffix(base, filepath.Ext(base))
	name := c.Prefix + Identifier(base)
	res := &Result{
		Source: path,
		Output: filepath.Join(c.OutputDir, c.Prefix+base+".h"),
		Name:   name,
		Mask:   m,
	}
	var buf bytes.Buffer
	if err := WriteHeader(&buf, name, m); err != nil {
		return nil, err
	}
	if err := os.WriteFile(res.Output, buf.Bytes(), 0644); err != nil {
		return nil, fmt.Errorf("write %s: %w", res.Output, err)
	}
	return res, nil
}

// LoadMask decodes an image file and samples its alpha mask.
func (c *Converter) LoadMask(path string) (*Mask, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	cfg, format, err := image.DecodeConfig(f)
	if err != nil {
		return nil, err
	}
	if !DecodedHasAlpha(cfg.ColorModel) {
		return nil, fmt.Errorf("%s: %w", format, ErrNoAlpha)
	}
	if _, err := f.Seek(0, io.SeekStart); err != nil {
		return nil, err
	}
	img, _, err := image.Decode(f)
	if err != nil {
		return nil, err
	}
	glog.V(2).Infof("%s: %s %v", path, format, img.Bounds())
	width, height := c.size()
	if c.Resize && HasAlpha(img) {
		if b := img.Bounds(); b.Dx() != width || b.Dy() != height {
			img = resize.Resize(uint(width), uint(height), img, resize.Bilinear)
		}
	}
	return AlphaMask(img, width, height, c.Threshold)
}

func (c *Converter) size() (int, int) {
	w, h := c.Width, c.Height
	if w <= 0 {
		w = DefaultSize
	}
	if h <= 0 {
		h = DefaultSize
	}
	return w, h
}
