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

package main

import (
	"bufio"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"reflect"

	"github.com/naoina/toml"
	cli "gopkg.in/urfave/cli.v1"

	"github.com/ternlang/go-tern/repl"
)

var dumpConfigCommand = cli.Command{
	Action:      migrateFlags(dumpConfig),
	Name:        "dumpconfig",
	Usage:       "Show configuration values",
	ArgsUsage:   "[output.toml]",
	Flags:       appFlags,
	Category:    "MISCELLANEOUS COMMANDS",
	Description: `The dumpconfig command shows configuration values.`,
}

// These settings ensure that TOML keys use the same names as Go struct fields.
var tomlSettings = toml.Config{
	NormFieldName: func(rt reflect.Type, key string) string {
		return key
	},
	FieldToKey: func(rt reflect.Type, field string) string {
		return field
	},
	MissingField: func(rt reflect.Type, field string) error {
		return fmt.Errorf("field '%s' is not defined in %s", field, rt.String())
	},
}

type replConfig struct {
	Prompt      string
	HistoryFile string `toml:",omitempty"`
}

type colorsConfig struct {
	Enabled bool
}

type ternConfig struct {
	REPL   replConfig
	Colors colorsConfig
}

func defaultConfig() ternConfig {
	return ternConfig{
		REPL: replConfig{
			Prompt:      repl.DefaultPrompt,
			HistoryFile: defaultHistoryFile(),
		},
		Colors: colorsConfig{Enabled: true},
	}
}

// defaultHistoryFile is the console history path, empty when no home
// directory is known.
func defaultHistoryFile() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".tern_history")
}

func loadConfig(file string, cfg *ternConfig) error {
	f, err := os.Open(file)
	if err != nil {
		return err
	}
	defer f.Close()

	err = tomlSettings.NewDecoder(bufio.NewReader(f)).Decode(cfg)
	// Add file name to errors that have a line number.
	if _, ok := err.(*toml.LineError); ok {
		err = errors.New(file + ", " + err.Error())
	}
	return err
}

// makeConfig assembles the effective configuration: defaults first, then
// the config file, then command line flags.
func makeConfig(ctx *cli.Context) ternConfig {
	cfg := defaultConfig()

	if file := ctx.GlobalString(configFileFlag.Name); file != "" {
		if err := loadConfig(file, &cfg); err != nil {
			fmt.Fprintln(os.Stderr, err)
			os.Exit(1)
		}
	}

	if ctx.GlobalIsSet(promptFlag.Name) {
		cfg.REPL.Prompt = ctx.GlobalString(promptFlag.Name)
	}
	if ctx.GlobalIsSet(historyFlag.Name) {
		cfg.REPL.HistoryFile = ctx.GlobalString(historyFlag.Name)
	}
	if ctx.GlobalBool(noColorFlag.Name) {
		cfg.Colors.Enabled = false
	}
	return cfg
}

// dumpConfig is the dumpconfig command.
func dumpConfig(ctx *cli.Context) error {
	cfg := makeConfig(ctx)

	out, err := tomlSettings.Marshal(&cfg)
	if err != nil {
		return err
	}

	dump := os.Stdout
	if ctx.NArg() > 0 {
		dump, err = os.OpenFile(ctx.Args().Get(0), os.O_RDWR|os.O_CREATE|os.O_TRUNC, 0644)
		if err != nil {
			return err
		}
		defer dump.Close()
	}
	dump.Write(out)

	return nil
}
