package runtime

import (
	"fmt"

	"github.com/adrg/xdg"
)

const (
	XDGName = "sieve"
	LogName = "sieve.log"
)

// File returns the path of filename in sieve's runtime directory, creating
// the directory if needed.
func File(filename string) (string, error) {
	return xdg.RuntimeFile(fmt.Sprintf("%s/%s", XDGName, filename))
}

func LogFile() (string, error) {
	return File(LogName)
}
