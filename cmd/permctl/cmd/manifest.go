package cmd

import (
	"encoding/xml"
	"fmt"
	"io"
	"strings"

	"github.com/go-drift/permissions/cmd/permctl/internal/config"
	"github.com/go-drift/permissions/pkg/permissions"
)

func init() {
	RegisterCommand(&Command{
		Name:  "manifest",
		Short: "Print manifest entries for permissions.yaml",
		Long: `Print the manifest entries for the permissions listed in permissions.yaml.

For Android this is one <uses-permission> element per permission, ready to
paste into AndroidManifest.xml. For iOS it is the Info.plist usage
description keys, which iOS requires before it shows a permission dialog.

Usage:
  permctl manifest android
  permctl manifest ios`,
		Usage: "permctl manifest <platform>",
		Run:   runManifest,
	})
}

func runManifest(args []string) error {
	if len(args) == 0 {
		return fmt.Errorf("platform is required (android or ios)\n\nUsage: permctl manifest <platform>")
	}
	os, err := permissions.ParseOS(args[0])
	if err != nil {
		return err
	}

	root, err := config.FindProjectRoot()
	if err != nil {
		return fmt.Errorf("not in a Go module (no go.mod found)")
	}
	cfg, err := config.Resolve(root)
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}
	return writeManifest(stdout, os, cfg)
}

func writeManifest(w io.Writer, os permissions.OS, cfg *config.Resolved) error {
	if len(cfg.Permissions) == 0 {
		fmt.Fprintf(w, "<!-- %s: no permissions configured -->\n", cfg.AppID)
		return nil
	}

	switch os {
	case permissions.Android:
		fmt.Fprintf(w, "<!-- %s -->\n", cfg.AppID)
		for _, p := range cfg.Permissions {
			id, _ := permissions.Lookup(os, p.Name)
			fmt.Fprintf(w, "<uses-permission android:name=\"%s\" />\n", id)
		}
	case permissions.IOS:
		for _, p := range cfg.Permissions {
			for _, key := range permissions.UsageDescriptionKeys(p.Name) {
				fmt.Fprintf(w, "<key>%s</key>\n<string>%s</string>\n", key, escapeXML(p.Usage))
			}
		}
	}
	return nil
}

func escapeXML(s string) string {
	var sb strings.Builder
	_ = xml.EscapeText(&sb, []byte(s))
	return sb.String()
}
