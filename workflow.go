package main

import (
	"github.com/biogo/hts/sam"
	"github.com/pkg/errors"
)

type filterOptions struct {
	Thresholds
	Inverse bool
	Unalign bool
}

// Summary counts the records of one run
type Summary struct {
	Total     int
	Passed    int
	Unaligned int
}

// unalign marks a record as unmapped, the rest of the record is kept
func unalign(rec *sam.Record) {
	rec.Flags |= sam.Unmapped
	rec.Flags &^= sam.Reverse | sam.ProperPair
	rec.Ref = nil
	rec.Pos = -1
}

// filterRecords reads every record from r in order and writes the kept ones to w.
// With Unalign every record is written and the failed ones are made unmapped.
func filterRecords(r RecordReader, w RecordWriter, opt filterOptions) (Summary, error) {
	var summary Summary

	iter := sam.NewIterator(r)
	for iter.Next() {
		rec := iter.Record()
		record := NewRecord(rec)
		stat := NewClipStat(record)
		verdict := evaluate(stat, opt.Thresholds)
		summary.Total++

		sugar.Debugf("%s: %s => %s", record, stat, verdict)

		if opt.Unalign {
			if verdict == Fail {
				unalign(rec)
				summary.Unaligned++
			}
		} else if !keep(verdict, opt.Inverse) {
			continue
		}

		if err := w.Write(rec); err != nil {
			return summary, errors.Wrapf(err, "failed to write %s", record.Name)
		}
		summary.Passed++
	}

	if err := iter.Error(); err != nil {
		return summary, errors.Wrapf(err, "failed to read alignment after %d records", summary.Total)
	}
	return summary, nil
}

// run filters c.Input into c.Output
func run(c config) (Summary, error) {
	sugar.Infof("Reading from alignment file: %s", c.Input)
	sugar.Infof("Writing to alignment file: %s", c.Output)
	sugar.Infof("Thresholds: trailing clipped: %v, leading clipped: %v, total clipped: %v",
		c.RightSide, c.LeftSide, c.BothEnd)

	format, err := parseFormat(c.OutputFormat)
	if err != nil {
		return Summary{}, err
	}

	in, err := openInput(c.Input, c.Process, c.Quiet)
	if err != nil {
		return Summary{}, err
	}
	defer in.Close()

	out, err := openOutput(c.Output, in.Header, outputFormat(c.Output, format, in.Format), c.Process)
	if err != nil {
		return Summary{}, err
	}

	summary, err := filterRecords(in.Reader, out.Writer, c.options())
	if err != nil {
		out.Close()
		return summary, err
	}

	if err := out.Close(); err != nil {
		return summary, errors.Wrapf(err, "failed to close %s", c.Output)
	}
	return summary, nil
}
