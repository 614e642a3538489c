// gatectl evaluates case snapshots and action previews from the command line.
//
// Usage:
//
//	gatectl classify -f case.json [--surface]
//	gatectl preview -f action.json [--mode LIVE|DRY] [--portal]
//	gatectl review-actions <reason>
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
