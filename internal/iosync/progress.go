package iosync

import (
	"github.com/cheggaaa/pb/v3"
)

// progress abstracts the bar so Sync stays quiet in tests and when
// output is not a terminal.
type progress interface {
	Increment()
	Finish()
}

type pbProgress struct {
	bar *pb.ProgressBar
}

// newProgressBar creates a new progress bar with consistent
// settings.
func newProgressBar(total int, prefix string) progress {
	bar := pb.Full.Start(total)
	bar.Set("prefix", prefix)
	bar.Set(pb.CleanOnFinish, true)
	return &pbProgress{bar: bar}
}

func (p *pbProgress) Increment() { p.bar.Increment() }
func (p *pbProgress) Finish()    { p.bar.Finish() }

type noProgress struct{}

func (noProgress) Increment() {}
func (noProgress) Finish()    {}
