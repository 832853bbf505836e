//go:build debug
// +build debug

package debuglog

const forced = true
