package cli

import (
	"io"
	"os"
)

// ShouldUseColor determines if color output should be used on w.
// Respects --no-color, the config file and the NO_COLOR environment variable.
func ShouldUseColor(w io.Writer, noColorFlag, configColor bool) bool {
	if noColorFlag || !configColor {
		return false
	}
	if os.Getenv("NO_COLOR") != "" {
		return false
	}
	// Only terminals get color
	f, ok := w.(*os.File)
	if !ok {
		return false
	}
	fileInfo, err := f.Stat()
	if err != nil {
		return false
	}
	return (fileInfo.Mode() & os.ModeCharDevice) != 0
}
