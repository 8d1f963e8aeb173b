// Package cmd implements the permctl commands.
//
// The command structure follows a root command that dispatches to
// subcommands (catalog, manifest).
package cmd

import (
	"fmt"
	"io"
	"os"
	"strings"

	"go.uber.org/zap"

	"github.com/go-drift/permissions/pkg/errors"
)

// Version information set at build time.
var (
	Version   = "0.1.0-dev"
	BuildTime = "unknown"
)

// stdout receives command output; tests replace it.
var stdout io.Writer = os.Stdout

// Command represents a CLI command.
type Command struct {
	Name        string
	Short       string
	Long        string
	Usage       string
	Run         func(args []string) error
	SubCommands []*Command
}

var rootCmd = &Command{
	Name:  "permctl",
	Short: "permctl - runtime permission catalog tool",
	Long: `permctl prints the runtime permission catalog for iOS and Android and
generates the manifest entries a Drift app needs for the permissions
listed in permissions.yaml.

Use "permctl <command> --help" for more information about a command.`,
	Usage: "permctl <command> [flags]",
}

// Commands registered with the CLI.
var commands = make(map[string]*Command)

// RegisterCommand adds a command to the CLI.
func RegisterCommand(cmd *Command) {
	commands[cmd.Name] = cmd
	rootCmd.SubCommands = append(rootCmd.SubCommands, cmd)
}

// Execute runs the CLI with the given arguments (without the program name).
func Execute(args []string) error {
	var filteredArgs []string
	for i := 0; i < len(args); i++ {
		arg := args[i]
		switch {
		case arg == "--log-format":
			if i+1 >= len(args) {
				return fmt.Errorf("--log-format requires a value (text or json)")
			}
			if err := setLogFormat(args[i+1]); err != nil {
				return err
			}
			i++
		case strings.HasPrefix(arg, "--log-format="):
			if err := setLogFormat(strings.TrimPrefix(arg, "--log-format=")); err != nil {
				return err
			}
		default:
			filteredArgs = append(filteredArgs, arg)
		}
	}
	args = filteredArgs

	if len(args) == 0 {
		printHelp(rootCmd)
		return nil
	}

	switch args[0] {
	case "-h", "--help", "help":
		printHelp(rootCmd)
		return nil
	case "-v", "--version", "version":
		fmt.Fprintf(stdout, "permctl version %s (built %s)\n", Version, BuildTime)
		return nil
	}

	cmdName := args[0]
	cmd, ok := commands[cmdName]
	if !ok {
		printHelp(rootCmd)
		return fmt.Errorf("unknown command: %s", cmdName)
	}

	cmdArgs := args[1:]
	for _, arg := range cmdArgs {
		if arg == "-h" || arg == "--help" || arg == "help" {
			printCommandHelp(cmd)
			return nil
		}
	}

	return cmd.Run(cmdArgs)
}

// setLogFormat installs the error handler failures are reported through.
func setLogFormat(format string) error {
	switch format {
	case "text":
		errors.SetHandler(&errors.LogHandler{})
	case "json":
		logger, err := zap.NewProduction()
		if err != nil {
			return fmt.Errorf("failed to create logger: %w", err)
		}
		errors.SetHandler(errors.NewZapHandler(logger))
	default:
		return fmt.Errorf("unknown log format %q (use text or json)", format)
	}
	return nil
}

func printHelp(cmd *Command) {
	fmt.Fprintln(stdout, cmd.Long)
	fmt.Fprintln(stdout)
	fmt.Fprintln(stdout, "Usage:")
	fmt.Fprintf(stdout, "  %s\n", cmd.Usage)
	fmt.Fprintln(stdout)
	fmt.Fprintln(stdout, "Commands:")
	for _, sub := range cmd.SubCommands {
		fmt.Fprintf(stdout, "  %-14s %s\n", sub.Name, sub.Short)
	}
	fmt.Fprintln(stdout)
	fmt.Fprintln(stdout, "Flags:")
	fmt.Fprintln(stdout, "  -h, --help           Show help for a command")
	fmt.Fprintln(stdout, "  -v, --version        Show version information")
	fmt.Fprintln(stdout, "  --log-format FORMAT  Error output: text (default) or json")
	fmt.Fprintln(stdout)
	fmt.Fprintln(stdout, "Examples:")
	fmt.Fprintln(stdout, "  permctl catalog            Show identifiers for both platforms")
	fmt.Fprintln(stdout, "  permctl manifest android   Print <uses-permission> entries")
}

func printCommandHelp(cmd *Command) {
	fmt.Fprintln(stdout, cmd.Long)
	fmt.Fprintln(stdout)
	fmt.Fprintln(stdout, "Usage:")
	fmt.Fprintf(stdout, "  %s\n", cmd.Usage)
}
