// Package debug holds environment driven debug switches.
package debug

import (
	"fmt"
	"os"
	"strconv"
)

type debug struct {
	Filter bool
	Book   bool
	Play   bool
}

var d *debug

func init() {
	d = &debug{}
	d.Filter = boolEnv("DOCSINK_DEBUG_FILTER")
	d.Book = boolEnv("DOCSINK_DEBUG_BOOK")
	d.Play = boolEnv("DOCSINK_DEBUG_PLAY")
}

func boolEnv(v string) bool {
	x := os.Getenv(v)
	if x == "" {
		return false
	}
	b, _ := strconv.ParseBool(x)
	return b
}

// Filter reports whether filter decisions should be logged.
func Filter() bool {
	return d.Filter
}

// Book reports whether file discovery should dump its id mapping.
func Book() bool {
	return d.Book
}

// Play reports whether replayed events should be traced.
func Play() bool {
	return d.Play
}

// Logf writes to stderr.
func Logf(msg string, args ...any) {
	fmt.Fprintf(os.Stderr, msg, args...)
}
