// Command loxbrew runs, checks, or dumps the AST of loxbrew source
// files. Built on github.com/spf13/cobra the way the sibling devcmd/opal
// CLIs in the example pack are, since the teacher itself only ships a
// bare func main with no subcommands.
package main

import (
	"fmt"
	"os"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/loxbrew/loxbrew"
	"github.com/loxbrew/loxbrew/ast"
	"github.com/loxbrew/loxbrew/config"
)

var (
	configPath string
	noColor    bool
)

var (
	headerColor = color.New(color.FgYellow)
	errorColor  = color.New(color.FgRed)
)

var rootCmd = &cobra.Command{
	Use:   "loxbrew",
	Short: "A tree-walking interpreter for the loxbrew scripting dialect",
}

var runCmd = &cobra.Command{
	Use:   "run <path>",
	Short: "Lex, parse, resolve, and execute a source file",
	Args:  cobra.ExactArgs(1),
	RunE:  runRun,
}

var checkCmd = &cobra.Command{
	Use:   "check <path>",
	Short: "Lex, parse, and resolve a source file without executing it",
	Args:  cobra.ExactArgs(1),
	RunE:  runCheck,
}

var astCmd = &cobra.Command{
	Use:   "ast <path>",
	Short: "Lex and parse a source file and print its statement tree",
	Args:  cobra.ExactArgs(1),
	RunE:  runAST,
}

func init() {
	rootCmd.PersistentFlags().StringVar(&configPath, "config", ".loxbrew.yaml", "path to config file")
	rootCmd.PersistentFlags().BoolVar(&noColor, "no-color", false, "disable colorized diagnostic output")
	rootCmd.AddCommand(runCmd, checkCmd, astCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func loadConfig() config.Config {
	cfg, err := config.Load(configPath)
	if err != nil {
		errorColor.Fprintf(os.Stderr, "[CONFIG ERROR] %v\n", err)
		os.Exit(1)
	}
	if noColor {
		cfg.Color = false
	}
	return cfg
}

func colors(cfg config.Config) (header, errs *color.Color) {
	if !cfg.Color {
		return color.New(), color.New()
	}
	return headerColor, errorColor
}

// runRun implements `loxbrew run <path>`: per spec.md §6, exit 0 both on
// a clean run and on a run that produced diagnostics. A wrong argument
// count (handled by cobra.ExactArgs before RunE even runs), an unreadable
// file, or an invalid config file exits non-zero.
func runRun(cmd *cobra.Command, args []string) error {
	cfg := loadConfig()
	_, errs := colors(cfg)

	diags, err := loxbrew.RunFile(args[0], os.Stdout)
	if err != nil {
		errs.Fprintf(os.Stderr, "[FILE ERROR] %v\n", err)
		os.Exit(1)
	}

	printDiagnostics(diags, errs)
	return nil
}

func runCheck(cmd *cobra.Command, args []string) error {
	cfg := loadConfig()
	header, errs := colors(cfg)

	content, err := os.ReadFile(args[0])
	if err != nil {
		errs.Fprintf(os.Stderr, "[FILE ERROR] %v\n", err)
		os.Exit(1)
	}

	header.Println("checking", args[0])
	diags := loxbrew.Check(string(content))
	printDiagnostics(diags, errs)
	return nil
}

func runAST(cmd *cobra.Command, args []string) error {
	cfg := loadConfig()
	_, errs := colors(cfg)

	content, err := os.ReadFile(args[0])
	if err != nil {
		errs.Fprintf(os.Stderr, "[FILE ERROR] %v\n", err)
		os.Exit(1)
	}

	stmts, lexErrs, parseErrs := loxbrew.Parse(string(content))
	for _, e := range lexErrs {
		errs.Fprintf(os.Stderr, "[LEX ERROR] %v\n", e)
	}
	for _, e := range parseErrs {
		errs.Fprintf(os.Stderr, "[PARSE ERROR] %v\n", e)
	}
	if len(lexErrs) > 0 || len(parseErrs) > 0 {
		os.Exit(1)
	}

	fmt.Print(ast.PrintIndent(stmts, cfg.Indent))
	return nil
}

// printDiagnostics implements spec.md §6/§7's reporting style: a single
// header line naming how many diagnostics follow, then each on its own
// line. Nothing is printed for a clean run.
func printDiagnostics(diags *loxbrew.Diagnostics, errs *color.Color) {
	all := diagnosticLines(diags)
	if len(all) == 0 {
		return
	}
	errs.Fprintf(os.Stderr, "%d diagnostic(s):\n", len(all))
	for _, line := range all {
		errs.Fprintf(os.Stderr, "%s\n", line)
	}
}

func diagnosticLines(diags *loxbrew.Diagnostics) []string {
	var lines []string
	for _, e := range diags.Lex {
		lines = append(lines, fmt.Sprintf("[LEX ERROR] %v", e))
	}
	for _, e := range diags.Parse {
		lines = append(lines, fmt.Sprintf("[PARSE ERROR] %v", e))
	}
	for _, e := range diags.Resolve {
		lines = append(lines, fmt.Sprintf("[RESOLVE ERROR] %v", e))
	}
	if diags.Runtime != nil {
		lines = append(lines, fmt.Sprintf("[RUNTIME ERROR] %v", diags.Runtime))
	}
	return lines
}
