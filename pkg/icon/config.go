package icon

import (
	"flag"
)

// Config defines the options of the converter.
type Config struct {
	SourceDir string
	OutputDir string
	Prefix    string
	Size      int
	Threshold uint
	Resize    bool
	KeepGoing bool
}

var defaultConfig = Config{
	SourceDir: "./icons_source",
	OutputDir: "./icons",
	Prefix:    DefaultPrefix,
	Size:      DefaultSize,
	Threshold: uint(DefaultThreshold),
}

// SetupFlags sets command line flags.
func SetupFlags() {
	flag.StringVar(&defaultConfig.SourceDir, "src", defaultConfig.SourceDir, "Directory of source images.")
	flag.StringVar(&defaultConfig.OutputDir, "out", defaultConfig.OutputDir, "Directory to write headers to.")
	flag.StringVar(&defaultConfig.Prefix, "prefix", defaultConfig.Prefix, "Prefix of array and file names.")
	flag.IntVar(&defaultConfig.Size, "size", defaultConfig.Size, "Icon width and height in pixels.")
	flag.UintVar(&defaultConfig.Threshold, "threshold", defaultConfig.Threshold, "Alpha above which a pixel is set (0-255).")
	flag.BoolVar(&defaultConfig.Resize, "resize", defaultConfig.Resize, "Scale images to size instead of rejecting them.")
	flag.BoolVar(&defaultConfig.KeepGoing, "keep-going", defaultConfig.KeepGoing, "Continue after a file fails.")
}

// Default gets default config.
func Default() *Config {
	return &defaultConfig
}

// NewConfig creates a Config with defaults.
func NewConfig() *Config {
	conf := defaultConfig
	return &conf
}

// NewConverter creates a Converter using the config.
func (c *Config) NewConverter() *Converter {
	conv := NewConverter(c.SourceDir, c.OutputDir)
	conv.Prefix = c.Prefix
	conv.Width, conv.Height = c.Size, c.Size
	conv.Threshold = uint8(c.Threshold)
	if c.Threshold > 255 {
		conv.Threshold = 255
	}
	conv.Resize = c.Resize
	conv.KeepGoing = c.KeepGoing
	return conv
}
