package main

import (
	"errors"
	"fmt"
	"io"
	"log"
	"os"
	"path/filepath"

	"github.com/alecthomas/kong"

	"github.com/randomouscrap98/savechecksum/savefile"
)

const (
	AppVersion = "0.1.0"
)

type CLI struct {
	Path    string           `arg:"" help:"The save file to fix in place"`
	Silent  bool             `short:"s" help:"Print nothing at all (usage errors still print)"`
	Force   bool             `short:"f" help:"Disable all validation checks (file size, chunk length)"`
	Backup  bool             `help:"Write a compressed copy of the original next to it before patching"`
	Json    bool             `help:"Print a json summary instead of the chunk report"`
	Script  string           `type:"path" help:"Lua script to run after a successful fix (gets the save path from arguments())"`
	Version kong.VersionFlag `help:"Show version information"`
}

func newParser(cli *CLI, stdout io.Writer, stderr io.Writer, options ...kong.Option) (*kong.Kong, error) {
	options = append([]kong.Option{
		kong.Name("checksum"),
		kong.Description("Recalculate the chunk checksums in a save file, fixing the ones that don't match"),
		kong.Writers(stdout, stderr),
		kong.Vars{
			"version": AppVersion,
		},
	}, options...)
	return kong.New(cli, options...)
}

// Parse arguments and do the whole thing, returning the exit code
func run(args []string, stdout io.Writer, stderr io.Writer) int {
	var cli CLI
	parser, err := newParser(&cli, stdout, stderr, kong.Configuration(TomlConfigLoader, configPaths...))
	if err != nil {
		fmt.Fprintf(stderr, "checksum: couldn't set up: %s\n", err)
		return savefile.ExitUsage
	}
	_, err = parser.Parse(args)
	if err != nil {
		// Usage is always printed, silent or not
		parser.Errorf("%s", err)
		var parseErr *kong.ParseError
		if errors.As(err, &parseErr) && parseErr.Context != nil {
			parseErr.Context.PrintUsage(true)
		}
		return savefile.ExitUsage
	}

	log.SetOutput(stderr)
	if cli.Silent {
		log.SetOutput(io.Discard)
	}

	config := savefile.Config{
		Silent: cli.Silent,
		Force:  cli.Force,
	}
	if cli.Backup {
		config.Backup = fmt.Sprintf("%s.%s.bak.zst", cli.Path, FileSafeDateTime())
	}
	var report io.Writer = stdout
	if cli.Json {
		report = nil
	}

	result, err := savefile.FixFile(cli.Path, config, report)
	if err != nil {
		log.Printf("%s - Couldn't fix checksums: %s", cli.Path, err)
		return savefile.ExitCode(err)
	}
	log.Printf("Fixed %d of %d chunks in %s\n", result.Fixed, len(result.Chunks), cli.Path)

	if cli.Script != "" {
		script, err := os.ReadFile(cli.Script)
		if err != nil {
			log.Printf("%s - Couldn't read script: %s", cli.Script, err)
			return savefile.ExitIO
		}
		fullpath, err := filepath.Abs(cli.Path)
		if err != nil {
			log.Printf("%s - Couldn't get abs path: %s", cli.Path, err)
			return savefile.ExitIO
		}
		logs, err := savefile.RunLuaSaveScript(string(script), []string{fullpath}, filepath.Dir(cli.Script))
		if !cli.Silent {
			fmt.Fprint(stdout, logs)
		}
		if err != nil {
			log.Printf("%s - Script failed: %s", cli.Script, err)
			return savefile.ExitIO
		}
	}

	if cli.Json && !cli.Silent {
		summary := make(map[string]interface{})
		summary["Filename"] = cli.Path
		summary["Length"] = result.Size
		summary["Chunks"] = len(result.Chunks)
		summary["Fixed"] = result.Fixed
		summary["OriginalXXH3"] = result.OriginalHash
		summary["PatchedXXH3"] = result.PatchedHash
		if result.BackupPath != "" {
			summary["Backup"] = result.BackupPath
		}
		if err := PrintJson(stdout, summary); err != nil {
			log.Printf("Couldn't serialize json: %s", err)
			return savefile.ExitIO
		}
	}
	return savefile.ExitOk
}

func main() {
	os.Exit(run(os.Args[1:], os.Stdout, os.Stderr))
}
