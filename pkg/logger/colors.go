package logger

import (
	"os"

	"github.com/jwalton/go-supportscolor"
)

var colorEnabled = supportscolor.SupportsColor(
	os.Stderr.Fd(),
	supportscolor.SniffFlagsOption(false),
).SupportsColor

func ColorEnabled() bool {
	return colorEnabled
}
