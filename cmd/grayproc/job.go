package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/erinpentecost/grayproc/internal/bitmap"
	"github.com/erinpentecost/grayproc/internal/config"
	"github.com/erinpentecost/grayproc/internal/logging"
	"github.com/erinpentecost/grayproc/internal/ops"
)

// job is one fully resolved invocation: one operation on one file.
type job struct {
	op     ops.Operation
	input  string
	output string
	params ops.Params
	cfg    *config.Config
}

func newJob(opName, input string, cfg *config.Config) (*job, error) {
	op, err := ops.Parse(opName)
	if err != nil {
		return nil, err
	}
	return &job{
		op:    op,
		input: input,
		params: ops.Params{
			Delta:     cfg.Brightness,
			Factor:    cfg.Contrast,
			Threshold: cfg.Threshold,
			Workers:   cfg.Workers,
		},
		cfg: cfg,
	}, nil
}

// outputPath names the result after the operation, next to the input unless
// output_dir says otherwise.
func (j *job) outputPath(format string) string {
	if j.output != "" {
		return j.output
	}
	dir := j.cfg.OutputDir
	if dir == "" {
		dir = filepath.Dir(j.input)
	}
	ext := filepath.Ext(j.input)
	if ext == "" {
		ext = "." + format
	}
	return filepath.Join(dir, j.op.String()+ext)
}

func (j *job) run(ctx context.Context, stdout io.Writer) error {
	// Reject bad parameters before touching the file system.
	if err := j.params.Validate(j.op); err != nil {
		return err
	}

	img, err := bitmap.ReadFile(j.input, bitmap.Options{ConvertColor: j.cfg.ConvertColor})
	if err != nil {
		return err
	}
	log := logging.Logger()
	log.Info("decoded image", "path", j.input, "format", img.Format, "size", img.Grid.String())

	if !j.op.ProducesImage() {
		return j.report(ctx, img, stdout)
	}

	out, err := ops.Run(ctx, j.op, img.Grid, j.params, nil)
	if err != nil {
		return err
	}

	path := j.outputPath(img.Format)
	if same, err := samePath(path, j.input); err != nil {
		return err
	} else if same {
		return fmt.Errorf("output %q would overwrite the input", path)
	}
	if err := img.WriteFile(path, out); err != nil {
		return err
	}
	log.Info("wrote image", "op", j.op, "path", path)
	return nil
}

// report writes the histogram dump to --out if given, otherwise to stdout.
func (j *job) report(ctx context.Context, img *bitmap.Image, stdout io.Writer) error {
	if j.output == "" {
		_, err := ops.Run(ctx, j.op, img.Grid, j.params, stdout)
		return err
	}
	if same, err := samePath(j.output, j.input); err != nil {
		return err
	} else if same {
		return fmt.Errorf("report %q would overwrite the input", j.output)
	}
	f, err := os.Create(j.output)
	if err != nil {
		return err
	}
	if _, err := ops.Run(ctx, j.op, img.Grid, j.params, f); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}

func samePath(a, b string) (bool, error) {
	absA, err := filepath.Abs(a)
	if err != nil {
		return false, err
	}
	absB, err := filepath.Abs(b)
	if err != nil {
		return false, err
	}
	return absA == absB, nil
}
