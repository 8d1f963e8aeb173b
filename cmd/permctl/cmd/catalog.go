package cmd

import (
	"fmt"
	"text/tabwriter"

	"github.com/go-drift/permissions/pkg/permissions"
)

func init() {
	RegisterCommand(&Command{
		Name:  "catalog",
		Short: "Show platform permission identifiers",
		Long: `Print the platform identifier for every logical permission.

With no argument both platforms are shown side by side.

Usage:
  permctl catalog           # iOS and Android
  permctl catalog android   # Android only`,
		Usage: "permctl catalog [ios|android]",
		Run:   runCatalog,
	})
}

func runCatalog(args []string) error {
	oses := []permissions.OS{permissions.IOS, permissions.Android}
	if len(args) > 0 {
		os, err := permissions.ParseOS(args[0])
		if err != nil {
			return err
		}
		oses = []permissions.OS{os}
	}

	w := tabwriter.NewWriter(stdout, 0, 4, 2, ' ', 0)
	fmt.Fprint(w, "PERMISSION")
	for _, os := range oses {
		fmt.Fprintf(w, "\t%s", os)
	}
	fmt.Fprintln(w)

	for _, name := range permissions.Names() {
		fmt.Fprint(w, name)
		for _, os := range oses {
			id, _ := permissions.Lookup(os, name)
			fmt.Fprintf(w, "\t%s", id)
		}
		fmt.Fprintln(w)
	}
	return w.Flush()
}
