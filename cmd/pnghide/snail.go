package main

import (
	"fmt"
	"io"
	"os"
	"time"
)

// Delay between printed runes. Cosmetic only; the joined messages are the
// contract, the crawl is the fun.
const snailDelay = 12 * time.Millisecond

// snailPrint writes s one rune at a time with a short delay, followed by a
// trailing newline. The animation only runs when writing to a terminal;
// piped or test output comes out in one piece.
func snailPrint(w io.Writer, s string) {
	if f, ok := w.(*os.File); !ok || !isTerminal(f) {
		fmt.Fprintln(w, s)
		return
	}
	for _, r := range s {
		fmt.Fprintf(w, "%c", r)
		time.Sleep(snailDelay)
	}
	fmt.Fprintln(w)
}

func isTerminal(f *os.File) bool {
	info, err := f.Stat()
	if err != nil {
		return false
	}
	return info.Mode()&os.ModeCharDevice != 0
}
