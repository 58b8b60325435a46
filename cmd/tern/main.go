// Copyright 2025 The go-tern Authors
// This file is part of go-tern.
//
// go-tern is free software: you can redistribute it and/or modify
// it under the terms of the GNU General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
//
// go-tern is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE. See the
// GNU General Public License for more details.
//
// You should have received a copy of the GNU General Public License
// along with go-tern. If not, see <http://www.gnu.org/licenses/>.

// tern is the command line interface for the tern scripting language:
// a script runner, an interactive console, and dump tools for the
// intermediate pipeline stages.
package main

import (
	"fmt"
	"io/ioutil"
	"os"
	"sort"
	"strconv"

	"github.com/fatih/color"
	colorable "github.com/mattn/go-colorable"
	isatty "github.com/mattn/go-isatty"
	"github.com/olekukonko/tablewriter"
	cli "gopkg.in/urfave/cli.v1"

	"github.com/ternlang/go-tern/lang/ast"
	"github.com/ternlang/go-tern/lang/engine"
	"github.com/ternlang/go-tern/repl"
)

const (
	clientIdentifier = "tern"
	version          = "0.1.0"
)

var (
	app = cli.NewApp()

	configFileFlag = cli.StringFlag{
		Name:  "config",
		Usage: "TOML configuration file",
	}
	noColorFlag = cli.BoolFlag{
		Name:  "nocolor",
		Usage: "Disable colored diagnostics",
	}
	historyFlag = cli.StringFlag{
		Name:  "history",
		Usage: "Console history file",
	}
	promptFlag = cli.StringFlag{
		Name:  "prompt",
		Usage: "Console prompt string",
	}

	appFlags = []cli.Flag{
		configFileFlag,
		noColorFlag,
		historyFlag,
		promptFlag,
	}
)

var (
	runCommand = cli.Command{
		Action:    migrateFlags(runScript),
		Name:      "run",
		Usage:     "Execute a tern script",
		ArgsUsage: "<script.tern>",
		Flags:     appFlags,
		Category:  "INTERPRETER COMMANDS",
		Description: `
The run command executes a script file and exits. A failure report is
written to stderr and the exit status is non-zero.`,
	}
	consoleCommand = cli.Command{
		Action:   migrateFlags(startConsole),
		Name:     "console",
		Usage:    "Start the interactive console",
		Flags:    appFlags,
		Category: "INTERPRETER COMMANDS",
		Description: `
The console command starts a read-evaluate loop with line editing,
history, and completion. Variables persist across lines; an empty line
ends the session.`,
	}
	tokensCommand = cli.Command{
		Action:    migrateFlags(dumpTokens),
		Name:      "tokens",
		Usage:     "Print the token stream of a script",
		ArgsUsage: "<script.tern>",
		Flags:     appFlags,
		Category:  "DEVELOPER COMMANDS",
		Description: `
The tokens command scans a script and prints its token stream as a
table. Lexical errors are reported after the table.`,
	}
	astCommand = cli.Command{
		Action:    migrateFlags(dumpAST),
		Name:      "ast",
		Usage:     "Print the parsed form of a script",
		ArgsUsage: "<script.tern>",
		Flags:     appFlags,
		Category:  "DEVELOPER COMMANDS",
		Description: `
The ast command parses a script without executing it and prints one
parenthesized tree per statement.`,
	}
)

func init() {
	app.Name = clientIdentifier
	app.Usage = "the tern scripting language interpreter"
	app.Version = version
	app.Action = migrateFlags(defaultAction)
	app.Flags = appFlags
	app.Commands = []cli.Command{
		runCommand,
		consoleCommand,
		tokensCommand,
		astCommand,
		dumpConfigCommand,
	}
	sort.Sort(cli.CommandsByName(app.Commands))
}

func main() {
	if err := app.Run(os.Args); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// defaultAction runs the script given as the sole argument, or starts the
// console when invoked without arguments.
func defaultAction(ctx *cli.Context) error {
	switch ctx.NArg() {
	case 0:
		return startConsole(ctx)
	case 1:
		return runScript(ctx)
	default:
		return fmt.Errorf("usage: %s [script.tern]", clientIdentifier)
	}
}

// runScript is the run command.
func runScript(ctx *cli.Context) error {
	source, err := readScript(ctx)
	if err != nil {
		return err
	}
	eng, err := engine.New(os.Stdout)
	if err != nil {
		return err
	}
	if err := eng.Run(source); err != nil {
		reportDiagnostic(ctx, err)
		os.Exit(1)
	}
	return nil
}

// startConsole is the console command.
func startConsole(ctx *cli.Context) error {
	cfg := makeConfig(ctx)
	eng, err := engine.New(os.Stdout)
	if err != nil {
		return err
	}
	return repl.New(eng, repl.Config{
		Prompt:      cfg.REPL.Prompt,
		HistoryFile: cfg.REPL.HistoryFile,
		NoColor:     !cfg.Colors.Enabled,
	}).Run()
}

// dumpTokens is the tokens command.
func dumpTokens(ctx *cli.Context) error {
	source, err := readScript(ctx)
	if err != nil {
		return err
	}
	eng, err := engine.New(os.Stdout)
	if err != nil {
		return err
	}
	toks, scanErr := eng.Tokens(source)

	table := tablewriter.NewWriter(os.Stdout)
	table.SetHeader([]string{"TYPE", "LEXEME", "LITERAL", "LINE"})
	for _, tok := range toks {
		literal := ""
		if tok.Literal != nil {
			literal = tok.Literal.String()
		}
		table.Append([]string{tok.Type.String(), tok.Lexeme, literal, strconv.Itoa(tok.Line)})
	}
	table.Render()

	if scanErr != nil {
		reportDiagnostic(ctx, scanErr)
		os.Exit(1)
	}
	return nil
}

// dumpAST is the ast command.
func dumpAST(ctx *cli.Context) error {
	source, err := readScript(ctx)
	if err != nil {
		return err
	}
	eng, err := engine.New(os.Stdout)
	if err != nil {
		return err
	}
	stmts, err := eng.Program(source)
	if err != nil {
		reportDiagnostic(ctx, err)
		os.Exit(1)
	}
	fmt.Print(ast.Program(stmts))
	return nil
}

// readScript loads the single script file named on the command line.
func readScript(ctx *cli.Context) (string, error) {
	if ctx.NArg() != 1 {
		return "", fmt.Errorf("expected exactly one script file, got %d arguments", ctx.NArg())
	}
	source, err := ioutil.ReadFile(ctx.Args().First())
	if err != nil {
		return "", err
	}
	return string(source), nil
}

// reportDiagnostic renders a language failure to stderr, red when the
// terminal supports it.
func reportDiagnostic(ctx *cli.Context, err error) {
	if useColor(ctx) {
		color.New(color.FgRed).Fprintln(colorable.NewColorableStderr(), err)
		return
	}
	fmt.Fprintln(os.Stderr, err)
}

// useColor reports whether diagnostics should be colored.
func useColor(ctx *cli.Context) bool {
	if ctx.GlobalBool(noColorFlag.Name) {
		return false
	}
	if os.Getenv("TERM") == "dumb" {
		return false
	}
	fd := os.Stderr.Fd()
	return isatty.IsTerminal(fd) || isatty.IsCygwinTerminal(fd)
}

// migrateFlags makes command-scoped flag values visible through the global
// context, so actions can read every flag with the Global accessors no
// matter where it was passed on the command line.
func migrateFlags(action func(ctx *cli.Context) error) func(*cli.Context) error {
	return func(ctx *cli.Context) error {
		for _, name := range ctx.FlagNames() {
			if ctx.IsSet(name) {
				if err := ctx.GlobalSet(name, ctx.String(name)); err != nil {
					return err
				}
			}
		}
		return action(ctx)
	}
}
