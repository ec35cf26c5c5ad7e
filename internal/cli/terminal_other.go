//go:build !linux

package cli

import "os"

// IsTerminal reports whether f is a character device
func IsTerminal(f *os.File) bool {
	stat, err := f.Stat()
	if err != nil {
		return false
	}
	return stat.Mode()&os.ModeCharDevice != 0
}
