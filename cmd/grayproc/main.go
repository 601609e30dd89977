package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"

	"github.com/spf13/pflag"
	"go.coder.com/cli"
	"golang.org/x/term"

	"github.com/erinpentecost/grayproc/internal/config"
	"github.com/erinpentecost/grayproc/internal/logging"
	"github.com/erinpentecost/grayproc/internal/ops"
)

type rootCmd struct {
	configPath   string
	out          string
	logLevel     string
	workers      int
	delta        int
	factor       float64
	threshold    int
	convertColor bool
	list         bool
}

func (c *rootCmd) Spec() cli.CommandSpec {
	return cli.CommandSpec{
		Name:  "grayproc",
		Usage: "[flags] OPERATION INPUT",
		Desc: `Apply one transform to an 8-bit grayscale BMP or PNG image and write the
result in the same format. OPERATION is a name or menu number (see --list).
With no arguments on a terminal, grayproc asks for the operation and file.`,
	}
}

func (c *rootCmd) RegisterFlags(fl *pflag.FlagSet) {
	fl.StringVarP(&c.configPath, "config", "c", config.DefaultPath, "YAML settings file")
	fl.StringVarP(&c.out, "out", "o", "", "output path (default <output_dir>/<operation>.<ext>)")
	fl.StringVar(&c.logLevel, "log-level", "", "debug, info, warn or error")
	fl.IntVarP(&c.workers, "workers", "w", 0, "row bands convolved in parallel (default from config, 4)")
	fl.IntVarP(&c.delta, "delta", "d", 0, "brightness delta, may be negative (default from config, 0)")
	fl.Float64VarP(&c.factor, "factor", "f", 0, "contrast factor, non-negative (default from config, 1.0)")
	fl.IntVarP(&c.threshold, "threshold", "t", 0, "manual binarization threshold 0..255 (default from config, 128)")
	fl.BoolVar(&c.convertColor, "convert-color", false, "reduce color input to gray instead of failing")
	fl.BoolVar(&c.list, "list", false, "list operations and exit")
}

func (c *rootCmd) Run(fl *pflag.FlagSet) {
	if c.list {
		printMenu(os.Stdout)
		return
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	err := c.run(ctx, fl)
	stop()
	if err != nil {
		fmt.Fprintf(os.Stderr, "FAILED: %v\n", err)
		os.Exit(33)
	}
}

func (c *rootCmd) run(ctx context.Context, fl *pflag.FlagSet) error {
	cfg, err := c.settings(fl)
	if err != nil {
		return err
	}
	logger, err := logging.New(os.Stderr, cfg.LogLevel)
	if err != nil {
		return err
	}
	logging.SetLogger(logger)

	var j *job
	switch args := fl.Args(); {
	case len(args) == 0 && term.IsTerminal(int(os.Stdin.Fd())):
		j, err = prompt(os.Stdin, os.Stdout, cfg)
	case len(args) == 2:
		j, err = newJob(args[0], args[1], cfg)
	default:
		return fmt.Errorf("expected OPERATION INPUT, got %d arguments", len(args))
	}
	if err != nil {
		return err
	}
	j.output = c.out
	return j.run(ctx, os.Stdout)
}

// settings loads the config file and lets explicitly set flags win over it.
func (c *rootCmd) settings(fl *pflag.FlagSet) (*config.Config, error) {
	cfg, err := config.Load(c.configPath)
	if err != nil {
		return nil, err
	}
	if fl.Changed("log-level") {
		cfg.LogLevel = c.logLevel
	}
	if fl.Changed("workers") {
		cfg.Workers = c.workers
	}
	if fl.Changed("delta") {
		cfg.Brightness = c.delta
	}
	if fl.Changed("factor") {
		cfg.Contrast = c.factor
	}
	if fl.Changed("threshold") {
		cfg.Threshold = c.threshold
	}
	if fl.Changed("convert-color") {
		cfg.ConvertColor = c.convertColor
	}
	return cfg, nil
}

func printMenu(w io.Writer) {
	for _, op := range ops.All() {
		fmt.Fprintf(w, "%2d. %s\n", int(op), op)
	}
}

func main() {
	cli.RunRoot(&rootCmd{})
}
