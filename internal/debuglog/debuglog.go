package debuglog

import (
	"fmt"
	"io"
	"os"
	"sync"
)

var (
	Enabled           = forced // set to true for verbose debug output
	Output  io.Writer = os.Stderr
	once    sync.Once
)

// Printf writes a single "[DEBUG]" line when debug output is enabled.
func Printf(format string, args ...interface{}) {
	if !Enabled {
		return
	}
	fmt.Fprintf(Output, "[DEBUG] "+format+"\n", args...)
}

// Once is Printf that fires at most once per process.
func Once(format string, args ...interface{}) {
	if !Enabled {
		return
	}
	once.Do(func() {
		fmt.Fprintf(Output, "[DEBUG] "+format+"\n", args...)
	})
}
