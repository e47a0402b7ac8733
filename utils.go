package main

import (
	"io"
	"time"

	"github.com/schollz/progressbar/v3"
)

// fraction of va over tot, a read without bases counts as fully clipped
func fraction(va, tot int) float64 {
	if tot == 0 {
		return 1.0
	}

	return float64(va) / float64(tot)
}

// TicTocTimer is structure for timer
type TicTocTimer struct {
	duration time.Duration
	start    time.Time
}

// InitTimer is constructor with default values for timer
func InitTimer() *TicTocTimer {
	return &TicTocTimer{duration: 0, start: time.Now()}
}

// Tic is start timer
func (timer *TicTocTimer) Tic() {
	timer.start = time.Now()
}

// Toc is pause timer
func (timer *TicTocTimer) Toc() {
	timer.duration += time.Since(timer.start)
}

// TicToc is total time of timer
func (timer *TicTocTimer) TicToc() time.Duration {
	return timer.duration
}

// progressReader moves bar forward with every byte read through it
type progressReader struct {
	r   io.Reader
	bar *progressbar.ProgressBar
}

func (p *progressReader) Read(b []byte) (int, error) {
	n, err := p.r.Read(b)
	_ = p.bar.Add(n)
	return n, err
}
