// internal/cmdutil/log.go
package cmdutil

import (
	"fmt"
	"io"
	"time"

	"github.com/dustin/go-humanize"
)

func Warnf(dst io.Writer, quiet bool, format string, a ...any) {
	if quiet {
		return
	}
	_, _ = fmt.Fprintf(dst, "WARN: "+format+"\n", a...)
}

func Infof(dst io.Writer, quiet bool, format string, a ...any) {
	if quiet {
		return
	}
	_, _ = fmt.Fprintf(dst, format+"\n", a...)
}

// Count renders n with thousands separators.
func Count(n int) string { return humanize.Comma(int64(n)) }

// Since renders the time elapsed from start, rounded to milliseconds.
func Since(start time.Time) string { return time.Since(start).Round(time.Millisecond).String() }

// Size renders a byte count, e.g. "1.2 MB".
func Size(n int64) string {
	if n < 0 {
		n = 0
	}
	return humanize.Bytes(uint64(n))
}
