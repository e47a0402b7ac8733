package main

import (
	"bufio"
	"bytes"
	"io"
	"os"
	"strings"

	"github.com/biogo/hts/bam"
	"github.com/biogo/hts/sam"
	"github.com/klauspost/compress/gzip"
	"github.com/pkg/errors"
	"github.com/schollz/progressbar/v3"
)

// Format is the container of alignment records
type Format int

const (
	// FormatAuto follows the output extension, or the input format
	FormatAuto Format = iota - 1
	// FormatSAM plain text sam
	FormatSAM
	// FormatSAMGz gzip compressed sam
	FormatSAMGz
	// FormatBAM bgzf compressed bam
	FormatBAM
)

// sniffSize is enough to hold the first bgzf block
const sniffSize = 1 << 16

var bamMagic = []byte("BAM\x01")

func (f Format) String() string {
	switch f {
	case FormatBAM:
		return "bam"
	case FormatSAMGz:
		return "sam.gz"
	default:
		return "sam"
	}
}

// parseFormat converts --output-format
func parseFormat(format string) (Format, error) {
	switch strings.ToLower(format) {
	case "", "auto":
		return FormatAuto, nil
	case "bam":
		return FormatBAM, nil
	case "sam":
		return FormatSAM, nil
	case "sam.gz", "samgz":
		return FormatSAMGz, nil
	}
	return FormatAuto, errors.Errorf("unknown output format %q, should be one of auto, bam, sam, sam.gz", format)
}

// formatFromPath guess the format by file extension
func formatFromPath(path string) (Format, bool) {
	path = strings.ToLower(path)
	switch {
	case strings.HasSuffix(path, ".bam"):
		return FormatBAM, true
	case strings.HasSuffix(path, ".sam.gz"):
		return FormatSAMGz, true
	case strings.HasSuffix(path, ".sam"):
		return FormatSAM, true
	}
	return FormatAuto, false
}

// RecordReader is anything that reads alignments one by one, io.EOF at the end
type RecordReader interface {
	Read() (*sam.Record, error)
}

// Input is an opened alignment stream
type Input struct {
	Format Format
	Header *sam.Header
	Reader RecordReader

	closers []func() error
}

// Close releases the readers and the file in order
func (in *Input) Close() error {
	var first error
	for _, c := range in.closers {
		if err := c(); err != nil && first == nil {
			first = err
		}
	}
	return first
}

// detectFormat peeks into br without consuming anything
func detectFormat(br *bufio.Reader) (Format, error) {
	magic, err := br.Peek(2)
	if err != nil {
		if err == io.EOF {
			return FormatSAM, nil
		}
		return FormatSAM, errors.Wrap(err, "failed to peek input")
	}

	if magic[0] != 0x1f || magic[1] != 0x8b {
		return FormatSAM, nil
	}

	// short peeks are expected on small inputs
	block, _ := br.Peek(sniffSize)
	gr, err := gzip.NewReader(bytes.NewReader(block))
	if err != nil {
		return FormatSAM, errors.Wrap(err, "failed to decompress input")
	}
	head := make([]byte, len(bamMagic))
	if _, err := io.ReadFull(gr, head); err == nil && bytes.Equal(head, bamMagic) {
		return FormatBAM, nil
	}
	return FormatSAMGz, nil
}

// NewInput sniffs the container of r and prepare the matching record reader
func NewInput(r io.Reader, process int) (*Input, error) {
	br := bufio.NewReaderSize(r, sniffSize)
	format, err := detectFormat(br)
	if err != nil {
		return nil, err
	}

	in := &Input{Format: format}
	switch format {
	case FormatBAM:
		reader, err := bam.NewReader(br, process)
		if err != nil {
			return nil, errors.Wrap(err, "failed to read bam header")
		}
		in.Header, in.Reader = reader.Header(), reader
		in.closers = append(in.closers, reader.Close)
	case FormatSAMGz:
		gr, err := gzip.NewReader(br)
		if err != nil {
			return nil, errors.Wrap(err, "failed to decompress sam")
		}
		reader, err := sam.NewReader(bufio.NewReader(gr))
		if err != nil {
			return nil, errors.Wrap(err, "failed to read sam header")
		}
		in.Header, in.Reader = reader.Header(), reader
		in.closers = append(in.closers, gr.Close)
	default:
		reader, err := sam.NewReader(br)
		if err != nil {
			return nil, errors.Wrap(err, "failed to read sam header")
		}
		in.Header, in.Reader = reader.Header(), reader
	}

	sugar.Debugf("input format: %s", in.Format)
	return in, nil
}

// openInput opens path (or stdin for "-") as alignment records
func openInput(path string, process int, quiet bool) (*Input, error) {
	if path == Stdio {
		return NewInput(os.Stdin, process)
	}

	stats, err := os.Stat(path)
	if os.IsNotExist(err) {
		return nil, errors.New(path + " not exists")
	} else if err != nil {
		return nil, errors.Wrapf(err, "failed to stat %s", path)
	}

	f, err := os.Open(path)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to open %s", path)
	}

	var r io.Reader = f
	var bar *progressbar.ProgressBar
	if !quiet && stats.Mode().IsRegular() {
		bar = progressbar.NewOptions64(
			stats.Size(),
			progressbar.OptionSetWriter(os.Stderr),
			progressbar.OptionShowBytes(true),
			progressbar.OptionSetDescription("filtering"),
		)
		r = &progressReader{r: f, bar: bar}
	}

	in, err := NewInput(r, process)
	if err != nil {
		f.Close()
		return nil, errors.Wrapf(err, "failed to load %s", path)
	}

	if bar != nil {
		in.closers = append(in.closers, bar.Finish)
	}
	in.closers = append(in.closers, f.Close)
	return in, nil
}
