package main

import (
	"fmt"

	"github.com/biogo/hts/sam"
	"github.com/pkg/errors"
	"github.com/voxelbrain/goptions"
	"go.uber.org/zap"
)

var logger = zap.NewNop()
var sugar = logger.Sugar()
var conf config

const (
	// VERSION is just the version number
	VERSION = "0.3.0"

	// Stdio marks reading from stdin or writing to stdout
	Stdio = "-"
)

type config struct {
	Version      bool    `goptions:"-v, --version, description='Show version'"`
	Debug        bool    `goptions:"--debug, description='Show debug info'"`
	Input        string  `goptions:"-i, --in-bam, description='Input bam/sam file path, - for stdin'"`
	Output       string  `goptions:"-o, --out-bam, description='Output bam/sam file path, - for stdout'"`
	OutputFormat string  `goptions:"-O, --output-format, description='Output format: auto, bam, sam or sam.gz [auto]'"`
	BothEnd      float64 `goptions:"-b, --both-end, description='Maximum fraction of total bases on the sequence being clipped [0.1]'"`
	LeftSide     float64 `goptions:"-l, --left-side, description='Maximum fraction of bases on the sequence being clipped from the left side (5 prime end) [0.1]'"`
	RightSide    float64 `goptions:"-r, --right-side, description='Maximum fraction of bases on the sequence being clipped from the right side (3 prime end) [0.1]'"`
	Inverse      bool    `goptions:"--inverse, description='Keep the failed ones (high-clipped-fraction alignments)'"`
	Unalign      bool    `goptions:"-u, --unalign, description='Make the failed records unmapped instead of removing them, ignores --inverse'"`
	Process      int     `goptions:"-p, --process, description='How many goroutines to use for bgzf (de)compression'"`
	Quiet        bool    `goptions:"-q, --quiet, description='Do not show the progress bar'"`

	Log  string        `goptions:"--log, description='Save log to file'"`
	Help goptions.Help `goptions:"--help, description='Show this help'"`
}

func defaultConfig() config {
	return config{
		Output: Stdio, OutputFormat: "auto",
		BothEnd: 0.1, LeftSide: 0.1, RightSide: 0.1,
		Process: 1,
	}
}

// checkFraction reports whether val lies within [0, 1]
func checkFraction(name string, val float64) error {
	if val < 0 || val > 1 {
		return errors.Errorf("--%s: %v is not within 0 and 1", name, val)
	}
	return nil
}

func (c *config) validate() error {
	if c.Input == "" {
		return errors.New("bam file is mandatory. Please, provide one (-i|--in-bam)")
	}

	for _, f := range []struct {
		name string
		val  float64
	}{
		{"both-end", c.BothEnd}, {"left-side", c.LeftSide}, {"right-side", c.RightSide},
	} {
		if err := checkFraction(f.name, f.val); err != nil {
			return err
		}
	}

	if _, err := parseFormat(c.OutputFormat); err != nil {
		return err
	}

	if c.Process < 1 {
		return errors.Errorf("--process should be at least 1, got %d", c.Process)
	}

	if c.Unalign && c.Inverse {
		sugar.Warn("--unalign is set, --inverse will be ignored")
	}
	return nil
}

func (c *config) options() filterOptions {
	return filterOptions{
		Thresholds: Thresholds{BothEnd: c.BothEnd, LeftSide: c.LeftSide, RightSide: c.RightSide},
		Inverse:    c.Inverse,
		Unalign:    c.Unalign,
	}
}

// Alignment is anything exposing an ordered cigar and the full length of the read
type Alignment interface {
	Operations() sam.Cigar
	SequenceLength() int
}

// Record is a wrap of sam.Record
type Record struct {
	Name   string
	Cigar  sam.Cigar
	Flags  sam.Flags
	Length int
	Record *sam.Record
}

// NewRecord is function that create a pointer to record
func NewRecord(record *sam.Record) *Record {
	return &Record{
		Name: record.Name, Cigar: record.Cigar,
		Flags: record.Flags, Record: record,
		Length: readLength(record),
	}
}

// readLength counts the bases of the read as sequenced. Hard clipped bases are
// missing from SEQ but still belong to the read, so they are added back.
func readLength(record *sam.Record) int {
	length := record.Seq.Length
	if length == 0 {
		_, length = record.Cigar.Lengths()
	}

	for _, op := range record.Cigar {
		if op.Type() == sam.CigarHardClipped {
			length += op.Len()
		}
	}
	return length
}

// Operations as name says
func (r *Record) Operations() sam.Cigar {
	return r.Cigar
}

// SequenceLength as name says
func (r *Record) SequenceLength() int {
	return r.Length
}

// String as name says
func (r *Record) String() string {
	return fmt.Sprintf("%s %s %d", r.Name, r.Cigar, r.Length)
}
