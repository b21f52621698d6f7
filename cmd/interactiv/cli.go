package main

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/interactiv/extension/internal/config"
	"github.com/interactiv/extension/internal/database"
	"github.com/interactiv/extension/internal/props"
	"github.com/interactiv/extension/internal/storage/memory"
)

// main only runs when the library is built as an executable. It checks props
// files and inspects journals without starting the game.
func main() {
	args := os.Args[1:]
	command := "validate"
	if len(args) > 0 {
		command = strings.ToLower(args[0])
		args = args[1:]
	}

	var err error
	switch command {
	case "validate":
		path := resolvePath(config.GetString("props.file"))
		if len(args) > 0 {
			path = args[0]
		}
		err = validateProps(path)
	case "export":
		if len(args) == 0 {
			err = errors.New("no journal file provided")
			break
		}
		err = printExport(args[0])
	case "backups":
		err = listBackups(filepath.Dir(resolvePath(config.GetString("storage.sqlite.dumpPath"))))
	default:
		err = fmt.Errorf("unknown command %q, expected validate, export or backups", command)
	}

	if err != nil {
		Logger.Error("Command failed", "command", command, "error", err)
	}
	shutdown()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// runningAsExecutable reports whether this file was started as a program
// rather than loaded by the game.
func runningAsExecutable() bool {
	if ModulePath == "" {
		return false
	}
	exe, err := os.Executable()
	if err != nil {
		return false
	}
	a, err := os.Stat(exe)
	if err != nil {
		return false
	}
	b, err := os.Stat(ModulePath)
	if err != nil {
		return false
	}
	return os.SameFile(a, b)
}

func validateProps(path string) error {
	f, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("opening props file: %w", err)
	}
	defer f.Close()

	defs, parseErr := props.Parse(f)
	for i, d := range defs {
		fmt.Printf("%3d  %-28s %-12s %-18s %s\n", i, d.ModelName(), d.Action(), d.Control(), d.Accessibility())
	}

	var pe *props.PropError
	if parseErr != nil && !errors.As(parseErr, &pe) {
		return parseErr
	}
	if parseErr != nil {
		for _, line := range strings.Split(parseErr.Error(), "\n") {
			fmt.Println("skipped:", line)
		}
		return fmt.Errorf("%s: %d props valid, some were skipped", path, len(defs))
	}

	fmt.Printf("%s: %d props valid\n", path, len(defs))
	return nil
}

func printExport(path string) error {
	export, err := memory.ReadExport(path)
	if err != nil {
		return fmt.Errorf("reading journal: %w", err)
	}

	fmt.Printf("session %s (%s) %s - %s\n", export.SessionID, export.Character,
		export.StartTime.Format("2006-01-02 15:04:05"), export.EndTime.Format("15:04:05"))
	fmt.Printf("props: %d from %s\n", export.PropsLoaded, export.PropsFile)
	fmt.Printf("interactions: %d, tyres slashed: %d\n", len(export.Interactions), len(export.TyreSlashes))
	for _, c := range export.ActionCounts {
		fmt.Printf("  %-12s %d\n", c.Action, c.Count)
	}
	return nil
}

func listBackups(dir string) error {
	paths, err := database.BackupPaths(dir)
	if err != nil {
		return fmt.Errorf("listing backups: %w", err)
	}
	if len(paths) == 0 {
		fmt.Println("no sqlite backups in", dir)
		return nil
	}
	for _, p := range paths {
		fmt.Println(p)
	}
	return nil
}
