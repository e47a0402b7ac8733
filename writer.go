package main

import (
	"bufio"
	"io"
	"os"

	"github.com/biogo/hts/bam"
	"github.com/biogo/hts/sam"
	"github.com/klauspost/compress/gzip"
	"github.com/pkg/errors"
)

// RecordWriter is anything that accepts alignments one by one
type RecordWriter interface {
	Write(*sam.Record) error
}

// Output is an opened alignment sink
type Output struct {
	Format Format
	Writer RecordWriter

	closers []func() error
}

// Close flushes every layer of the sink, the first error wins
func (out *Output) Close() error {
	var first error
	for _, c := range out.closers {
		if err := c(); err != nil && first == nil {
			first = err
		}
	}
	return first
}

// outputFormat decides the container for path; an explicit --output-format wins,
// then the file extension, then the format of input
func outputFormat(path string, format, input Format) Format {
	if format != FormatAuto {
		return format
	}
	if path != Stdio {
		if f, ok := formatFromPath(path); ok {
			return f
		}
	}
	return input
}

// NewOutput writes header to w and prepare the record writer of format
func NewOutput(w io.Writer, header *sam.Header, format Format, process int) (*Output, error) {
	out := &Output{Format: format}

	switch format {
	case FormatBAM:
		writer, err := bam.NewWriter(w, header, process)
		if err != nil {
			return nil, errors.Wrap(err, "failed to write bam header")
		}
		out.Writer = writer
		out.closers = append(out.closers, writer.Close)
	case FormatSAMGz:
		gw := gzip.NewWriter(w)
		bw := bufio.NewWriter(gw)
		writer, err := sam.NewWriter(bw, header, sam.FlagDecimal)
		if err != nil {
			return nil, errors.Wrap(err, "failed to write sam header")
		}
		out.Writer = writer
		out.closers = append(out.closers, bw.Flush, gw.Close)
	default:
		bw := bufio.NewWriter(w)
		writer, err := sam.NewWriter(bw, header, sam.FlagDecimal)
		if err != nil {
			return nil, errors.Wrap(err, "failed to write sam header")
		}
		out.Writer = writer
		out.closers = append(out.closers, bw.Flush)
	}

	sugar.Debugf("output format: %s", out.Format)
	return out, nil
}

// openOutput creates path (or stdout for "-") for the alignments passing the filter
func openOutput(path string, header *sam.Header, format Format, process int) (*Output, error) {
	if path == Stdio {
		return NewOutput(os.Stdout, header, format, process)
	}

	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0644)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to open %s", path)
	}

	out, err := NewOutput(f, header, format, process)
	if err != nil {
		f.Close()
		return nil, errors.Wrapf(err, "failed to create %s", path)
	}
	// fsync fails with EINVAL on pipes and devices such as /dev/null
	if stats, err := f.Stat(); err == nil && stats.Mode().IsRegular() {
		out.closers = append(out.closers, f.Sync)
	}
	out.closers = append(out.closers, f.Close)
	return out, nil
}
