package main

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/erinpentecost/grayproc/internal/config"
	"github.com/erinpentecost/grayproc/internal/ops"
)

const rule = "================================="

// prompt asks for the operation, the input file and the operation's scalar
// parameter, one line each.
func prompt(r io.Reader, w io.Writer, cfg *config.Config) (*job, error) {
	in := bufio.NewScanner(r)
	ask := func(q string) (string, error) {
		fmt.Fprint(w, q)
		if !in.Scan() {
			if err := in.Err(); err != nil {
				return "", err
			}
			return "", io.ErrUnexpectedEOF
		}
		return strings.TrimSpace(in.Text()), nil
	}

	fmt.Fprintf(w, "%s\nImage Processing Program\n\n", rule)
	printMenu(w)
	fmt.Fprintf(w, "%s\n\n", rule)

	opName, err := ask("Operation number: ")
	if err != nil {
		return nil, err
	}
	op, err := ops.Parse(opName)
	if err != nil {
		return nil, err
	}
	input, err := ask("Input image path: ")
	if err != nil {
		return nil, err
	}
	if input == "" {
		return nil, errors.New("no input path given")
	}
	j, err := newJob(op.String(), input, cfg)
	if err != nil {
		return nil, err
	}

	switch op.Parameter() {
	case ops.DeltaParameter:
		v, err := ask(fmt.Sprintf("Brightness delta [%d]: ", j.params.Delta))
		if err != nil {
			return nil, err
		}
		if v != "" {
			if j.params.Delta, err = strconv.Atoi(v); err != nil {
				return nil, fmt.Errorf("brightness delta %q: %w", v, err)
			}
		}
	case ops.FactorParameter:
		v, err := ask(fmt.Sprintf("Contrast factor [%g]: ", j.params.Factor))
		if err != nil {
			return nil, err
		}
		if v != "" {
			if j.params.Factor, err = strconv.ParseFloat(v, 64); err != nil {
				return nil, fmt.Errorf("contrast factor %q: %w", v, err)
			}
		}
	case ops.ThresholdParameter:
		v, err := ask(fmt.Sprintf("Threshold 0-255 [%d]: ", j.params.Threshold))
		if err != nil {
			return nil, err
		}
		if v != "" {
			if j.params.Threshold, err = strconv.Atoi(v); err != nil {
				return nil, fmt.Errorf("threshold %q: %w", v, err)
			}
		}
	}
	return j, nil
}
