// Copyright 2025 The chengyu Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

/*
Package main implements the chengyu idiom guesser as an IPC server and CLI.

chengyu finds four-character idioms from partial tonal pinyin clues. A query
is four comma separated syllable tokens. Each token is either a full
wildcard, a simple final-tone pair or a compound initial'final-tone triple,
and X stands for any value of a single component:

	l'X-4,X'X-X,X'X-X,X'X-2

matches every idiom whose first syllable starts with l and carries tone 4
and whose last syllable carries tone 2.

# Usage

Start the server with the bundled dictionary:

	chengyu

Run the interactive CLI, or answer a single query and exit:

	chengyu -c
	chengyu -q "X'X-X,X'X-X,X'X-X,X'X-X" -limit 5

Convert the JSON dictionary into the msgpack binary asset:

	chengyu -dict data/idioms.json -export data/idioms.bin

# Configuration

Runtime configuration is read from a TOML file, created with defaults when
missing:

	[server]
	max_limit = 200
	max_query_len = 128
	strict = false
	reload_every = 100

	[dict]
	path = "data/idioms.json"

	[cli]
	default_limit = 24
	strict = false
	no_color = false

Every key can be overridden with a CHENGYU_* environment variable, see -h.

# IPC Protocol

The server reads msgpack requests from stdin and writes msgpack responses
to stdout:

	{"id": "r1", "q": "X'X-X,X'X-X,X'X-X,X'X-2", "l": 10}
	{"id": "r1", "m": [{"w": "...", "p": "...", "sp": [...]}], "c": 3, "t": 41}

Other actions are lookup (prefix of idiom text in "x"), info and health.
*/
package main

import (
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/bastiangx/chengyu/internal/cli"
	"github.com/bastiangx/chengyu/internal/logger"
	"github.com/bastiangx/chengyu/internal/utils"
	"github.com/bastiangx/chengyu/pkg/config"
	"github.com/bastiangx/chengyu/pkg/dictionary"
	"github.com/bastiangx/chengyu/pkg/server"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/log"
	"github.com/ilyakaznacheev/cleanenv"
)

const (
	Version = "0.3.0"
	AppName = "chengyu"
	gh      = "https://github.com/bastiangx/chengyu"
)

// sigHandler is a simple handler for OS signals to exit normally.
func sigHandler() {
	c := make(chan os.Signal, 1)
	signal.Notify(c, os.Interrupt, syscall.SIGTERM)

	go func() {
		<-c
		fmt.Fprintf(os.Stderr, "\nExiting...\n")
		os.Exit(0)
	}()
}

// main wires config, dictionary and the selected mode together.
func main() {
	sigHandler()

	showVersion := flag.Bool("version", false, "Show current version")
	dictPath := flag.String("dict", "", "Dictionary file, .json or .bin (default from config)")
	configFile := flag.String("config", "", "Path to custom config.toml file")
	rebuildConfig := flag.Bool("rebuild-config", false, "Write a fresh default config.toml and exit")
	debugMode := flag.Bool("d", false, "Toggle debug mode")
	cliMode := flag.Bool("c", false, "Run interactive CLI")
	query := flag.String("q", "", "Answer a single query and exit")
	limit := flag.Int("limit", -1, "Number of results to print, 0 prints all (default from config)")
	strict := flag.Bool("strict", false, "Reject malformed patterns instead of returning no results")
	noColor := flag.Bool("no-color", false, "Disable colored CLI output")
	exportPath := flag.String("export", "", "Write the loaded dictionary as a msgpack .bin file and exit")

	flag.Usage = cleanenv.FUsage(flag.CommandLine.Output(), &config.Config{}, nil, flag.Usage)
	flag.Parse()

	if *showVersion {
		printVersion()
		os.Exit(0)
	}

	if *debugMode {
		log.SetLevel(log.DebugLevel)
		log.SetReportTimestamp(true)
	} else {
		log.SetLevel(log.WarnLevel)
	}

	if *rebuildConfig {
		path, err := config.RebuildConfigFile()
		if err != nil {
			log.Fatalf("Failed to rebuild config: %v", err)
		}
		fmt.Fprintf(os.Stderr, "Config written to %s\n", path)
		return
	}

	pathResolver, err := utils.NewPathResolver()
	if err != nil {
		log.Fatalf("Failed to initialize path resolver: %v", err)
	}

	appConfig, configPath, err := config.LoadConfigWithPriority(*configFile)
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}
	if configPath == "" {
		// No usable default location, fall back to whatever dir is writable.
		configPath = pathResolver.GetConfigPath("config.toml")
		if cfg, err := config.InitConfig(configPath); err == nil {
			appConfig = cfg
		}
	}
	log.Debugf("Using config file: (%s)", config.GetActiveConfigPath(configPath))

	if *dictPath == "" {
		*dictPath = appConfig.Dict.Path
	}
	resolvedDict := pathResolver.GetDictPath(*dictPath)
	log.Debugf("Using dictionary at: %s", resolvedDict)

	dict, err := dictionary.Load(resolvedDict)
	if err != nil {
		log.Fatalf("Failed to load dictionary: %v", err)
	}
	log.Debug("Dictionary loaded", "stats", dict.Stats())

	if *exportPath != "" {
		if err := dictionary.SaveBinary(*exportPath, dict.Idioms()); err != nil {
			log.Fatalf("Failed to export dictionary: %v", err)
		}
		fmt.Fprintf(os.Stderr, "Wrote %d idioms to %s\n", dict.Len(), *exportPath)
		return
	}

	if *cliMode || *query != "" {
		if *limit < 0 {
			*limit = appConfig.CLI.DefaultLimit
		}
		useStrict := *strict || appConfig.CLI.Strict
		plain := *noColor || appConfig.CLI.NoColor

		log.SetReportTimestamp(false)
		log.Debug("Input info:", "limit", *limit, "strict", useStrict, "noColor", plain)

		inputHandler := cli.NewInputHandler(dict, *limit, useStrict, plain)
		if *query != "" {
			inputHandler.Query(*query)
			return
		}
		if err := inputHandler.Start(); err != nil {
			log.Fatalf("CLI error: %v", err)
		}
		return
	}

	if *strict {
		appConfig.Server.Strict = true
	}

	log.Debug("spawning IPC")
	srv := server.NewServer(dict, appConfig, configPath)

	showStartupInfo(resolvedDict, dict.Len())

	if err := srv.Start(); err != nil {
		log.Fatalf("Server error: %v", err)
	}
}

func printVersion() {
	banner := logger.NewWithConfig("", log.InfoLevel, false, false, log.TextFormatter)

	styles := log.DefaultStyles()
	styles.Values["version"] = lipgloss.NewStyle().Bold(true).
		Foreground(lipgloss.AdaptiveColor{Light: "#575279", Dark: "#e0def4"}).
		Background(lipgloss.AdaptiveColor{Light: "#f2e9e1", Dark: "#26233a"})
	styles.Values["gh"] = lipgloss.NewStyle().Italic(true).
		Foreground(lipgloss.AdaptiveColor{Light: "#575279", Dark: "#e0def4"})
	banner.SetStyles(styles)

	banner.Print("")
	banner.Print("[ chengyu ] Guess four-character idioms from pinyin clues")
	banner.Print("", "version", Version)
	banner.Print("")
	banner.Print("use -h or --help to see available options")
	banner.Print("Github Repo", "gh", gh)
}

// showStartupInfo prints basic init info on stderr, stdout carries responses.
func showStartupInfo(dictPath string, count int) {
	currentLevel := log.GetLevel()
	log.SetLevel(log.InfoLevel)

	fmt.Fprintln(os.Stderr, "=========")
	fmt.Fprintln(os.Stderr, " chengyu ")
	fmt.Fprintln(os.Stderr, "=========")
	log.Infof("Version: %s", Version)
	log.Infof("Process ID: [ %d ]", os.Getpid())
	log.Infof("dictionary: ( %s ), %d idioms", dictPath, count)
	log.Info("status: ready")
	fmt.Fprintln(os.Stderr, "=========")
	fmt.Fprintln(os.Stderr, "Press Ctrl+C to exit")

	log.SetLevel(currentLevel)
}
