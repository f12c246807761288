// Command onesheetctl renders OneSheet prompts and parses model output
// offline, without the service or an LLM.
package main

import (
	"fmt"
	"os"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
