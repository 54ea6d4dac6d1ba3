package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/zx0223winner/peppro/internal/config"
	"github.com/zx0223winner/peppro/internal/registry"
)

// Color codes for terminal output
const (
	colorReset  = "\033[0m"
	colorRed    = "\033[31m"
	colorGreen  = "\033[32m"
	colorYellow = "\033[33m"
	colorCyan   = "\033[36m"
	colorGray   = "\033[90m"
)

// Check if output is to terminal
func isTerminal() bool {
	fileInfo, _ := os.Stdout.Stat()
	return (fileInfo.Mode() & os.ModeCharDevice) != 0
}

// Apply color if terminal output and color enabled
func colorize(color, text string) string {
	if !noColor && isTerminal() && os.Getenv("NO_COLOR") == "" {
		return color + text + colorReset
	}
	return text
}

// Print error message in user-friendly format
func printError(format string, args ...interface{}) {
	msg := fmt.Sprintf(format, args...)
	fmt.Fprintf(os.Stderr, "%s %s\n", colorize(colorRed, "✗"), msg)
}

// Print success message
func printSuccess(format string, args ...interface{}) {
	if !quiet {
		msg := fmt.Sprintf(format, args...)
		fmt.Printf("%s %s\n", colorize(colorGreen, "✓"), msg)
	}
}

// Print info message
func printInfo(format string, args ...interface{}) {
	if !quiet {
		msg := fmt.Sprintf(format, args...)
		fmt.Printf("%s\n", colorize(colorCyan, msg))
	}
}

// Print warning message
func printWarning(format string, args ...interface{}) {
	msg := fmt.Sprintf(format, args...)
	fmt.Fprintf(os.Stderr, "%s %s\n", colorize(colorYellow, "⚠"), msg)
}

// Print debug message
func printDebug(format string, args ...interface{}) {
	if debug {
		msg := fmt.Sprintf(format, args...)
		fmt.Fprintf(os.Stderr, "%s %s\n", colorize(colorGray, "[DEBUG]"), msg)
	}
}

// loadConfig loads the runner config from --config or the default path.
func loadConfig() (*config.Config, error) {
	path := configPath
	if path == "" {
		path = config.GetConfigPath()
	}
	printDebug("loading config from %s", path)
	return config.Load(path)
}

// loadRegistry loads the genome config named by the flag, falling back to
// the runner config's genome_config entry.
func loadRegistry(cfg *config.Config, override string) (*registry.Registry, error) {
	path := override
	if path == "" {
		path = cfg.GenomeConfig
	}
	printDebug("loading genome config from %s", path)
	return registry.Load(path)
}

// shellJoin renders an argv as a copy-pasteable shell line, quoting only
// tokens that need it.
func shellJoin(argv []string) string {
	quoted := make([]string, len(argv))
	for i, tok := range argv {
		quoted[i] = shellQuote(tok)
	}
	return strings.Join(quoted, " ")
}

func shellQuote(tok string) string {
	if tok == "" {
		return "''"
	}
	if strings.ContainsAny(tok, " \t\n'\"\\$&|;<>()*?[]#~") {
		return "'" + strings.ReplaceAll(tok, "'", `'\''`) + "'"
	}
	return tok
}
