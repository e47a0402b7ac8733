package main

import (
	"fmt"

	"github.com/biogo/hts/sam"
	"github.com/golang-collections/collections/set"
)

// clipTypes are the cigar operations counted as clipped bases
var clipTypes = set.New(sam.CigarSoftClipped, sam.CigarHardClipped)

// ClipStat keeps the number of clipped bases on both ends of an alignment
type ClipStat struct {
	Left   int // bases clipped from the 5' end
	Right  int // bases clipped from the 3' end
	Length int
}

// NewClipStat only counts the clip runs at either end of the cigar, it never
// looks past the first non-clip operation. A cigar made of clips only is counted
// on both sides.
func NewClipStat(aln Alignment) ClipStat {
	cigar := aln.Operations()
	stat := ClipStat{Length: aln.SequenceLength()}

	for _, op := range cigar {
		if !clipTypes.Has(op.Type()) {
			break
		}
		stat.Left += op.Len()
	}

	for i := len(cigar) - 1; i >= 0; i-- {
		if !clipTypes.Has(cigar[i].Type()) {
			break
		}
		stat.Right += cigar[i].Len()
	}

	return stat
}

// Total is the sum of left and right clipped bases
func (c ClipStat) Total() int {
	return c.Left + c.Right
}

// LeftFraction as name says
func (c ClipStat) LeftFraction() float64 {
	return fraction(c.Left, c.Length)
}

// RightFraction as name says
func (c ClipStat) RightFraction() float64 {
	return fraction(c.Right, c.Length)
}

// TotalFraction as name says
func (c ClipStat) TotalFraction() float64 {
	return fraction(c.Total(), c.Length)
}

func (c ClipStat) String() string {
	return fmt.Sprintf("left: %d, right: %d, length: %d", c.Left, c.Right, c.Length)
}
