// Package memusage reports the process's memory footprint.
package memusage

import (
	"fmt"
	"runtime"

	"github.com/dustin/go-humanize"
)

// Usage is a snapshot of process memory.
type Usage struct {
	// MaxRSS is the peak resident set size in bytes; 0 where unsupported.
	MaxRSS uint64
	// HeapInUse is the bytes in in-use heap spans.
	HeapInUse uint64
	// Sys is the total bytes obtained from the OS by the Go runtime.
	Sys uint64
}

// Read takes a snapshot. It never fails: an unavailable peak RSS reads as 0.
func Read() Usage {
	var ms runtime.MemStats
	runtime.ReadMemStats(&ms)
	return Usage{
		MaxRSS:    maxRSS(),
		HeapInUse: ms.HeapInuse,
		Sys:       ms.Sys,
	}
}

func (u Usage) String() string {
	return fmt.Sprintf("max_rss=%s heap_inuse=%s sys=%s",
		humanize.IBytes(u.MaxRSS), humanize.IBytes(u.HeapInUse), humanize.IBytes(u.Sys))
}
