// Command stubserver runs the in-memory account service the gophauth client
// talks to during local development.
package main

import (
	"os"
)

func main() {
	if err := NewRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}
