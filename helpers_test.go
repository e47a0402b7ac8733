package main

import (
	"bytes"
	"fmt"
	"io"
	"strings"
	"testing"

	"github.com/biogo/hts/bam"
	"github.com/biogo/hts/sam"
	"github.com/stretchr/testify/require"
)

const testHeader = "@SQ\tSN:chr1\tLN:10000\n"

type testRead struct {
	name   string
	flags  int
	cigar  string
	seqLen int
}

// testReads under the default thresholds: r1, r4, r5 and r6 pass
var testReads = []testRead{
	{"r1", 0, "5S90M5S", 100},
	{"r2", 0, "20S80M", 100},
	{"r3", 16, "80M20S", 100},
	{"r4", 0, "100M", 100},
	{"r5", 0, "10H90M", 90},
	{"r6", 4, "*", 100},
	{"r7", 0, "100S", 100},
	{"r8", 4, "*", 0},
}

func (r testRead) String() string {
	seq := "*"
	if r.seqLen > 0 {
		seq = strings.Repeat("A", r.seqLen)
	}

	if r.flags&int(sam.Unmapped) != 0 {
		return fmt.Sprintf("%s\t%d\t*\t0\t0\t*\t*\t0\t0\t%s\t*", r.name, r.flags, seq)
	}
	return fmt.Sprintf("%s\t%d\tchr1\t101\t60\t%s\t*\t0\t0\t%s\t*", r.name, r.flags, r.cigar, seq)
}

func testSAM(reads []testRead) string {
	var b strings.Builder
	b.WriteString(testHeader)
	for _, r := range reads {
		b.WriteString(r.String())
		b.WriteByte('\n')
	}
	return b.String()
}

// readAll parses every record of a plain sam text
func readAll(t *testing.T, text string) (*sam.Header, []*sam.Record) {
	t.Helper()
	r, err := sam.NewReader(strings.NewReader(text))
	require.NoError(t, err)

	var recs []*sam.Record
	for {
		rec, err := r.Read()
		if err == io.EOF {
			break
		}
		require.NoError(t, err)
		recs = append(recs, rec)
	}
	return r.Header(), recs
}

func parseRecord(t *testing.T, read testRead) *sam.Record {
	t.Helper()
	_, recs := readAll(t, testSAM([]testRead{read}))
	require.Len(t, recs, 1)
	return recs[0]
}

func testBAM(t *testing.T, reads []testRead) []byte {
	t.Helper()
	header, recs := readAll(t, testSAM(reads))

	var buf bytes.Buffer
	bw, err := bam.NewWriter(&buf, header, 1)
	require.NoError(t, err)
	for _, rec := range recs {
		require.NoError(t, bw.Write(rec))
	}
	require.NoError(t, bw.Close())
	return buf.Bytes()
}

func names(recs []*sam.Record) []string {
	res := make([]string, 0, len(recs))
	for _, rec := range recs {
		res = append(res, rec.Name)
	}
	return res
}

// drain reads everything left in in
func drain(t *testing.T, in *Input) []*sam.Record {
	t.Helper()
	var recs []*sam.Record
	iter := sam.NewIterator(in.Reader)
	for iter.Next() {
		recs = append(recs, iter.Record())
	}
	require.NoError(t, iter.Error())
	return recs
}

type sliceReader struct {
	recs []*sam.Record
	i    int
	err  error
}

func (s *sliceReader) Read() (*sam.Record, error) {
	if s.i >= len(s.recs) {
		if s.err != nil {
			return nil, s.err
		}
		return nil, io.EOF
	}
	s.i++
	return s.recs[s.i-1], nil
}

type collector struct {
	recs []*sam.Record
	err  error
}

func (c *collector) Write(rec *sam.Record) error {
	if c.err != nil {
		return c.err
	}
	c.recs = append(c.recs, rec)
	return nil
}

type testAlignment struct {
	cigar  sam.Cigar
	length int
}

func (a testAlignment) Operations() sam.Cigar { return a.cigar }
func (a testAlignment) SequenceLength() int   { return a.length }

func mustCigar(t *testing.T, cigar string) sam.Cigar {
	t.Helper()
	if cigar == "" || cigar == "*" {
		return nil
	}
	c, err := sam.ParseCigar([]byte(cigar))
	require.NoError(t, err)
	return c
}
