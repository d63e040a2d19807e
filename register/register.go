package register

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"strings"
)

// Scopes accepted by the register subcommand.
const (
	ScopeProject = "project" // <dir>/.mcp.json
	ScopeUser    = "user"    // ~/.claude.json
)

type serverEntry struct {
	Command string   `json:"command"`
	Args    []string `json:"args,omitempty"`
}

// Run executes `<binary> register <scope> [dir] [-- server args]`: it
// resolves the running binary, builds its launch entry and writes it into the
// MCP config file for the chosen scope. Invalid input or an I/O failure
// terminates the process with a message on stderr.
func Run(serverName string, args []string) {
	if len(args) == 0 {
		printUsage()
		os.Exit(1)
	}

	scope := args[0]
	positional, serverArgs := splitArgs(args[1:])

	var configPath string
	var err error
	switch scope {
	case ScopeProject:
		dir := "."
		if len(positional) > 0 {
			dir = positional[0]
		}
		configPath, err = projectConfigPath(dir)
	case ScopeUser:
		configPath, err = userConfigPath()
	default:
		fmt.Fprintf(os.Stderr, "Error: unknown scope %q (must be %q or %q)\n", scope, ScopeProject, ScopeUser)
		printUsage()
		os.Exit(1)
	}
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error resolving config path: %v\n", err)
		os.Exit(1)
	}

	binary, err := resolveBinary()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error locating binary: %v\n", err)
		os.Exit(1)
	}

	if err := writeEntry(configPath, serverName, launchEntry(binary, serverArgs)); err != nil {
		fmt.Fprintf(os.Stderr, "Error writing config: %v\n", err)
		os.Exit(1)
	}

	fmt.Printf("Registered %q in %s\n", serverName, configPath)
}

func printUsage() {
	binaryName := filepath.Base(os.Args[0])
	fmt.Fprintf(os.Stderr, "Usage:\n")
	fmt.Fprintf(os.Stderr, "  %s register project [directory]       # → <directory>/.mcp.json (default: .)\n", binaryName)
	fmt.Fprintf(os.Stderr, "  %s register user                      # → ~/.claude.json\n", binaryName)
	fmt.Fprintf(os.Stderr, "  %s register project . -- -watch=false # forward flags to server\n", binaryName)
	fmt.Fprintf(os.Stderr, "  %s register user -- -threshold 8388608\n", binaryName)
}

// DeriveServerName extracts a server name from a binary path by stripping
// .exe and -mcp suffixes.
func DeriveServerName(binaryPath string) string {
	name := filepath.Base(binaryPath)
	name = strings.TrimSuffix(name, ".exe")
	return strings.TrimSuffix(name, "-mcp")
}

// splitArgs separates positional arguments from everything after the "--"
// separator, which is forwarded to the server verbatim.
func splitArgs(args []string) (positional, serverArgs []string) {
	for i, arg := range args {
		if arg == "--" {
			return args[:i], args[i+1:]
		}
	}
	return args, nil
}

// resolveBinary returns the absolute, symlink-free path of the running
// executable, so the written config keeps working if the symlink that
// launched the registration later moves.
func resolveBinary() (string, error) {
	exe, err := os.Executable()
	if err != nil {
		return "", fmt.Errorf("getting executable path: %w", err)
	}
	resolved, err := filepath.EvalSymlinks(exe)
	if err != nil {
		return "", fmt.Errorf("resolving symlinks for %s: %w", exe, err)
	}
	return resolved, nil
}

func projectConfigPath(directory string) (string, error) {
	absDir, err := filepath.Abs(directory)
	if err != nil {
		return "", fmt.Errorf("resolving directory %s: %w", directory, err)
	}
	return filepath.Join(absDir, ".mcp.json"), nil
}

func userConfigPath() (string, error) {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("getting home directory: %w", err)
	}
	return filepath.Join(homeDir, ".claude.json"), nil
}

// launchEntry builds the config entry that starts the server. Windows cannot
// exec an arbitrary binary path directly from every MCP client, so the entry
// goes through cmd /C there.
func launchEntry(binaryPath string, serverArgs []string) serverEntry {
	if runtime.GOOS == "windows" {
		return serverEntry{
			Command: "cmd",
			Args:    append([]string{"/C", binaryPath}, serverArgs...),
		}
	}
	return serverEntry{Command: binaryPath, Args: serverArgs}
}

// writeEntry upserts the server entry into the config file, preserving every
// other key in it. A missing file starts a fresh config; an unreadable or
// unparseable one is an error rather than something to overwrite.
func writeEntry(configPath, serverName string, entry serverEntry) error {
	config := map[string]any{}
	data, err := os.ReadFile(configPath)
	switch {
	case err == nil:
		if err := json.Unmarshal(data, &config); err != nil {
			return fmt.Errorf("parsing existing config %s: %w", configPath, err)
		}
	case !errors.Is(err, os.ErrNotExist):
		return fmt.Errorf("reading config %s: %w", configPath, err)
	}

	servers, ok := config["mcpServers"].(map[string]any)
	if !ok {
		if _, exists := config["mcpServers"]; exists {
			return fmt.Errorf("mcpServers in %s is not an object", configPath)
		}
		servers = map[string]any{}
		config["mcpServers"] = servers
	}
	servers[serverName] = entry

	out, err := json.MarshalIndent(config, "", "  ")
	if err != nil {
		return fmt.Errorf("encoding config: %w", err)
	}
	return replaceFile(configPath, append(out, '\n'))
}

// replaceFile writes data through a sibling temp file and renames it into
// place, the same write-then-rename protocol the engine uses for edits.
func replaceFile(path string, data []byte) error {
	tmp, err := os.CreateTemp(filepath.Dir(path), ".mcp-*.tmp")
	if err != nil {
		return fmt.Errorf("creating temp file beside %s: %w", path, err)
	}
	tmpPath := tmp.Name()

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmpPath)
		return fmt.Errorf("writing %s: %w", tmpPath, err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpPath)
		return fmt.Errorf("closing %s: %w", tmpPath, err)
	}
	if err := os.Rename(tmpPath, path); err != nil {
		os.Remove(tmpPath)
		return fmt.Errorf("replacing %s: %w", path, err)
	}
	return nil
}
