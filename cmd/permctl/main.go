// Command permctl inspects the permission catalog and generates the manifest
// entries each platform needs before it will show a permission dialog.
package main

import (
	"os"

	"github.com/go-drift/permissions/cmd/permctl/cmd"
	"github.com/go-drift/permissions/pkg/errors"
)

func main() {
	if err := cmd.Execute(os.Args[1:]); err != nil {
		errors.Report(&errors.DriftError{
			Op:   "permctl",
			Kind: errors.KindInit,
			Err:  err,
		})
		os.Exit(1)
	}
}
