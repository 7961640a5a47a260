//go:build linux || darwin || freebsd || openbsd || netbsd

package memusage

import (
	"runtime"

	"golang.org/x/sys/unix"
)

func maxRSS() uint64 {
	var ru unix.Rusage
	if err := unix.Getrusage(unix.RUSAGE_SELF, &ru); err != nil {
		return 0
	}
	// Darwin reports bytes, the others KiB.
	if runtime.GOOS == "darwin" {
		return uint64(ru.Maxrss)
	}
	return uint64(ru.Maxrss) * 1024
}
