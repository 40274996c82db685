// Command subarray visualises the interference field of a subwoofer array.
//
// Without a subcommand it opens an interactive window; snapshot and sources
// run headless.
package main

import "os"

func main() {
	if err := newRootCommand().Execute(); err != nil {
		os.Exit(1)
	}
}
