// Copyright 2025 The symspell Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

/*
Package main implements the symspell correction server and CLI
application.

Note: This is a BETA release. APIs and functionality may rapidly change.

symspell provides fast spelling correction using the symmetric delete
algorithm: single-word lookup, whole-sentence compound correction, and
word segmentation. It can operate as a MessagePack IPC server for
integration with editors, or as a CLI application for testing and
debugging.

# Usage

Start the server with default settings, loading a dictionary file:

	symspell -dict frequency_dictionary_en_82_765.txt

Enable debug mode and use a bigram dictionary for compound correction:

	symspell -dict en_82k.txt -bigram en_bigrams.txt -d

Run in CLI mode for interactive testing:

	symspell -dict en_82k.txt -c

# Configuration

Runtime configuration is managed through a TOML file covering engine
tuning, server limits, and CLI defaults:

	[engine]
	max_dictionary_edit_distance = 2
	prefix_length = 7
	count_threshold = 1
	compact_level = 5

	[server]
	max_edit_distance = 2
	max_suggestions = 10

The config file is automatically created with defaults if it doesn't exist.

# IPC Protocol

The server communicates via MessagePack over stdin/stdout. Requests and
responses are documented in the ipc package.

# Command Line Flags

	-dict string
	    Path to the term/count dictionary file (required for real lookups)
	-bigram string
	    Path to the bigram dictionary file (optional, enables compound scoring)
	-config string
	    Path to a TOML config file
	-d  Enable debug mode with detailed logging
	-c  Run in CLI mode instead of IPC server mode
	-maxedit int
	    Maximum edit distance for CLI-mode corrections (default: the
	    built-in [server] max_edit_distance, 2)
	-version
	    Show current version
*/
package main

import (
	"flag"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"syscall"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/log"

	"github.com/bastiangx/symspell/internal/cli"
	"github.com/bastiangx/symspell/internal/completion"
	"github.com/bastiangx/symspell/internal/config"
	"github.com/bastiangx/symspell/internal/dictloader"
	"github.com/bastiangx/symspell/internal/engine"
	"github.com/bastiangx/symspell/internal/ipc"
	"github.com/bastiangx/symspell/internal/utils"
)

const (
	version = "0.1.0-beta"
	appName = "symspell"
	gh      = "https://github.com/bastiangx/symspell"
)

func sigHandler() {
	c := make(chan os.Signal, 1)
	signal.Notify(c, os.Interrupt, syscall.SIGTERM)
	go func() {
		<-c
		fmt.Fprintf(os.Stderr, "\nExiting...\n")
		os.Exit(0)
	}()
}

func main() {
	sigHandler()
	defaultConfig := config.DefaultConfig()

	showVersion := flag.Bool("version", false, "Show current version")
	dictPath := flag.String("dict", "", "Path to the term/count dictionary file")
	bigramPath := flag.String("bigram", "", "Path to the bigram dictionary file (optional)")
	configPath := flag.String("config", "", "Path to a TOML config file")
	debugMode := flag.Bool("d", false, "Toggle debug mode")
	cliMode := flag.Bool("c", false, "Run CLI -- useful for testing and debugging")
	maxEdit := flag.Int("maxedit", defaultConfig.Server.MaxEditDistance, "Maximum edit distance for corrections")

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

	appConfig, resolvedConfigPath, err := config.LoadConfigWithPriority(*configPath)
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}
	log.Debugf("using config at: %s", utils.GetAbsolutePath(resolvedConfigPath))

	engineCfg := engine.Config{
		InitialCapacity:           appConfig.Engine.InitialCapacity,
		MaxDictionaryEditDistance: appConfig.Engine.MaxDictionaryEditDistance,
		PrefixLength:              appConfig.Engine.PrefixLength,
		CountThreshold:            appConfig.Engine.CountThreshold,
		CompactLevel:              appConfig.Engine.CompactLevel,
	}
	dict, err := engine.New(engineCfg)
	if err != nil {
		log.Fatalf("failed to build dictionary engine: %v", err)
	}

	if *dictPath != "" {
		resolved := resolveDataPath(*dictPath)
		if err := loadDictionary(dict, resolved); err != nil {
			log.Fatalf("failed to load dictionary %s: %v", resolved, err)
		}
	} else {
		log.Warn("no -dict specified, running with empty dictionary...")
	}

	if *bigramPath != "" {
		resolved := resolveDataPath(*bigramPath)
		if err := loadBigrams(dict, resolved); err != nil {
			log.Fatalf("failed to load bigram dictionary %s: %v", resolved, err)
		}
	}

	if *cliMode {
		log.SetReportTimestamp(false)
		repl := cli.NewREPL(dict, engine.Closest, *maxEdit)
		repl.SetColorOutput(appConfig.CLI.ColorOutput)
		if err := repl.Start(); err != nil {
			log.Fatalf("CLI error: %v", err)
		}
		return
	}

	log.Debug("spawning IPC server")
	showStartupInfo(dict.WordCount())
	srv := ipc.NewServer(dict)
	srv.SetCompleter(completion.NewFromEngine(dict))
	if err := srv.Serve(); err != nil {
		log.Fatalf("IPC server error: %v", err)
	}
}

// resolveDataPath tries to make a relative -dict/-bigram flag work
// regardless of the directory symspell was launched from: an existing
// or absolute path is left untouched, otherwise its directory is
// searched for via PathResolver.GetDataDir before falling back to the
// path as given.
func resolveDataPath(path string) string {
	if path == "" || filepath.IsAbs(path) || utils.FileExists(path) {
		return path
	}

	pr, err := utils.NewPathResolver()
	if err != nil {
		log.Debugf("path resolution unavailable: %v", err)
		return path
	}

	dir, base := filepath.Split(path)
	resolvedDir, err := pr.GetDataDir(dir)
	if err != nil {
		return path
	}
	candidate := filepath.Join(resolvedDir, base)
	if utils.FileExists(candidate) {
		log.Debugf("resolved %s to %s", path, candidate)
		return candidate
	}
	return path
}

func loadDictionary(dict *engine.Dictionary, path string) error {
	sep := '\t'
	if strings.HasSuffix(path, ".csv") {
		sep = ','
	}
	entries, ok, err := dictloader.LoadDictionaryFile(path, 0, 1, sep)
	if err != nil {
		return err
	}
	if !ok {
		log.Warnf("dictionary file not found: %s", path)
		return nil
	}
	for _, e := range entries {
		dict.CreateDictionaryEntry(e.Term, e.Count, nil)
	}
	log.Debugf("loaded %d dictionary entries from %s", len(entries), path)
	return nil
}

func loadBigrams(dict *engine.Dictionary, path string) error {
	entries, ok, err := dictloader.LoadBigramDictionaryFile(path, 0, 2, '\t')
	if err != nil {
		return err
	}
	if !ok {
		log.Warnf("bigram file not found: %s", path)
		return nil
	}
	for _, e := range entries {
		dict.AddBigram(e.Term, e.Count)
	}
	log.Debugf("loaded %d bigram entries from %s", len(entries), path)
	return nil
}

func printVersion() {
	logger := log.NewWithOptions(os.Stderr, log.Options{
		ReportCaller:    false,
		ReportTimestamp: false,
		Prefix:          "",
	})

	styles := log.DefaultStyles()
	styles.Values["version"] = lipgloss.NewStyle().Bold(true).
		Foreground(lipgloss.AdaptiveColor{Light: "#575279", Dark: "#e0def4"})
	styles.Values["gh"] = lipgloss.NewStyle().Italic(true).
		Foreground(lipgloss.AdaptiveColor{Light: "#575279", Dark: "#e0def4"})
	logger.SetStyles(styles)

	logger.Print("")
	logger.Print("[ symspell ] Symmetric-delete spelling correction, fast")
	logger.Print("", "version", version)
	logger.Print("")
	logger.Print("use -h or --help to see available options")
	logger.Print("Github Repo", "gh", gh)
}

func showStartupInfo(wordCount int) {
	pid := os.Getpid()
	currentLevel := log.GetLevel()
	log.SetLevel(log.InfoLevel)

	println("===========")
	println(" symspell  ")
	println("===========")
	log.Infof("Version: %s", version)
	log.Infof("Process ID: [ %d ]", pid)
	log.Infof("Dictionary entries: %d", wordCount)
	log.Info("status: ready")
	println("===========")
	println("Press Ctrl+C to exit")

	log.SetLevel(currentLevel)
}
