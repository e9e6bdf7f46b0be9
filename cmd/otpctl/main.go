// Command otpctl is the operator CLI: offline parsing of vendor exports,
// schema migrations, admin bootstrap and pool exports.
package main

import (
	"os"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}
