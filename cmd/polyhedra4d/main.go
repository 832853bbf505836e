package main

import (
	"os"

	"github.com/lukaszgryglicki/polyhedra4d/internal/debuglog"
)

func main() {
	debuglog.Enabled = debuglog.Enabled || os.Getenv("DEBUG") != ""
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}
