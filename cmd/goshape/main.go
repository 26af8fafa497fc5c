// Command goshape checks JSON and YAML values against schema documents.
//
//	goshape check schema.yaml
//	goshape validate schema.yaml payload.json
//	cat payload.json | goshape extract schema.yaml -
package main

import (
	"errors"
	"fmt"
	"os"
)

func main() {
	if err := newRootCmd(os.Stdin, os.Stdout, os.Stderr).Execute(); err != nil {
		if !errors.Is(err, errRejected) {
			fmt.Fprintln(os.Stderr, "error:", err)
		}
		os.Exit(1)
	}
}
