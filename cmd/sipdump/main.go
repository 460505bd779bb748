// Command sipdump parses SIP messages from files or standard input and prints them back
// re-encoded as text or JSON.
//
// Usage:
//
//	sipdump [flags] [file ...]
//
// Without file arguments, or with "-", the message is read from standard input.
package main

import (
	"context"
	"fmt"
	"os"
)

func main() {
	if err := newCommand().Run(context.Background(), os.Args); err != nil {
		fmt.Fprintln(os.Stderr, "sipdump:", err)
		os.Exit(1)
	}
}
