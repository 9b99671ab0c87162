// Package testing flips the binaries into test mode when imported by a test
// package, so nothing dials Redis or the backend during package init.
package testing

import (
	"os"
	"sync"
)

var once sync.Once

func init() {
	once.Do(func() {
		if os.Getenv("CONSOLE_TEST_MODE") == "" {
			_ = os.Setenv("CONSOLE_TEST_MODE", "1")
		}
	})
}
