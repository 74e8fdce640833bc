// internal/cmdutil/progress.go
package cmdutil

import (
	"io"

	"github.com/cheggaaa/pb/v3"
)

// Progress is a counter bar on stderr. A nil *Progress is a no-op.
type Progress struct {
	bar *pb.ProgressBar
}

// StartProgress starts a bar over total units, or returns nil when disabled.
func StartProgress(dst io.Writer, total int, enabled bool) *Progress {
	if !enabled || total <= 0 {
		return nil
	}
	bar := pb.Full.New(total)
	bar.Set(pb.Bytes, false)
	bar.SetWriter(dst)
	bar.Start()
	return &Progress{bar: bar}
}

func (p *Progress) Increment() {
	if p == nil {
		return
	}
	p.bar.Increment()
}

func (p *Progress) Finish() {
	if p == nil {
		return
	}
	p.bar.Finish()
}
