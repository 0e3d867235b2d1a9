package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/zhulincqu/uview"
	"github.com/zhulincqu/uview/batch"
	"github.com/zhulincqu/uview/output"
	"github.com/zhulincqu/uview/processor"
	"github.com/zhulincqu/uview/report"
)

// Config holds the command line settings.
type Config struct {
	Dir      string
	Ext      string
	Keys     []string
	Workers  int
	TIFF     bool
	HDR      bool
	Sigma    float64
	SkipSize int
	Verbose  bool
	Log      io.Writer // Defaults to os.Stderr.
}

func main() {
	config := parseFlags()

	if config.Dir == "" {
		fmt.Fprintln(os.Stderr, "error: a directory is required")
		flag.Usage()
		os.Exit(1)
	}

	if err := run(config); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

func parseFlags() *Config {
	config := &Config{}
	var keys string

	flag.StringVar(&config.Dir, "dir", "", "directory searched recursively for data files")
	flag.StringVar(&config.Ext, "ext", ".dat", "extension of the data files, empty for all files")
	flag.StringVar(&keys, "keys", "", "comma separated metadata keys to report (default: all)")
	flag.IntVar(&config.Workers, "workers", 0, "number of decoding workers (default: number of CPUs)")
	flag.BoolVar(&config.TIFF, "tiff", false, "also write each image as 16-bit TIFF")
	flag.BoolVar(&config.HDR, "hdr", false, "also write each background-subtracted image as Radiance HDR")
	flag.Float64Var(&config.Sigma, "sigma", processor.DefaultSigma, "Gaussian width of the background filter")
	flag.IntVar(&config.SkipSize, "skip-unknown", -1, "payload bytes skipped after an unknown metadata tag (default: stop reading metadata)")
	flag.BoolVar(&config.Verbose, "v", false, "log every decoded field")

	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, "Extract metadata of Elmitec UView .dat files\n\n")
		fmt.Fprintf(os.Stderr, "usage: uview-meta [options] [dir]\n\n")
		flag.PrintDefaults()
		fmt.Fprintf(os.Stderr, "\nA <name>.txt report is written next to every <name>.dat file.\n")
	}

	flag.Parse()

	if config.Dir == "" && flag.NArg() > 0 {
		config.Dir = flag.Arg(0)
	}
	if keys != "" {
		for _, k := range strings.Split(keys, ",") {
			if k = strings.TrimSpace(k); k != "" {
				config.Keys = append(config.Keys, k)
			}
		}
	}
	return config
}

func run(config *Config) error {
	level := zerolog.InfoLevel
	if config.Verbose {
		level = zerolog.DebugLevel
	}
	out := config.Log
	if out == nil {
		out = os.Stderr
	}
	logger := zerolog.New(zerolog.ConsoleWriter{Out: out, NoColor: out != os.Stderr, TimeFormat: time.Kitchen}).
		Level(level).
		With().Timestamp().Logger()
	log.Logger = logger

	opts := []uview.DecodeOption{uview.WithLogger(logger)}
	if config.SkipSize >= 0 {
		opts = append(opts, uview.WithFallbackSkip(config.SkipSize))
	}

	// Decode warnings are logged by the decoder itself.
	n, err := batch.Extract(context.Background(), config.Dir, config.Ext, config.Workers, config.Keys, func(r batch.Result) error {
		logger.Debug().Str("file", r.Path).Int("warnings", len(r.File.Warnings)).Msg("report written")
		return export(config, r)
	}, opts...)

	logger.Info().Str("dir", config.Dir).Int("processed", n).Msg("done")
	return err
}

// export writes the optional images of one decoded file next to its report.
func export(config *Config, r batch.Result) error {
	base := strings.TrimSuffix(report.Path(r.Path), ".txt")

	if config.TIFF {
		err := output.Save(base+".tiff", func(w io.Writer) error {
			return output.WriteTIFF(w, r.File.Pixels)
		})
		if err != nil {
			return err
		}
	}
	if config.HDR {
		filtered := processor.SubtractBackground(r.File.Pixels, config.Sigma)
		err := output.Save(base+".hdr", func(w io.Writer) error {
			return output.WriteHDR(w, filtered)
		})
		if err != nil {
			return err
		}
	}
	return nil
}
