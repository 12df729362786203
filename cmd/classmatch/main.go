/*
Package main implements the pattern matching server and CLI application.

ClassMatch answers letter-class pattern queries against a word list. A user of
an assistive input device selects a coarse letter group per keystroke instead
of an exact letter; given the resulting pattern, ClassMatch enumerates every
dictionary word that fits it. The inverse direction is also covered: given a
concrete word, it reports the class-label sequence the word belongs to.

It can operate as a MessagePack IPC server for integration with a surrounding
service, or as a CLI application for testing and debugging.

# Usage

Start the server with default settings:

	classmatch

Use a custom word list and enable debug mode:

	classmatch -words /path/to/words_alpha.txt -d

Run in CLI mode for interactive testing:

	classmatch -c -limit 10

The word list is a plain UTF-8 text file with one word per line. ClassMatch
only ever reads it.

# Configuration

Runtime configuration is managed through a TOML file holding the class table,
the word list location, and server parameters:

	[[classes]]
	label = "A-F"
	letters = "ABCDEF"

	[lexicon]
	path = "data/words_alpha.txt"
	min_length = 0

	[server]
	max_limit = 64
	max_pattern = 24

The class table order matters: the word-to-pattern mapping picks the first
class containing each letter. The config file is created with defaults if it
doesn't exist.

# IPC Protocol

The server communicates via MessagePack over stdin/stdout. Send a match
request:

	{"id": "req1", "action": "match", "q": "N-T A-F N-T G-M N-T", "l": 24}

Receive the matching words in lexicon order:

	{"id": "req1", "m": ["PARIS", "RAPID"], "c": 2, "t": 87}

See the server package docs for the full set of actions.

# CLI Mode

CLI mode reads patterns from stdin and displays the matching words with
timing information. It also offers the inverse word-to-pattern lookup and a
prefix listing, which is useful once some letters of a word are confirmed.

# Command Line Flags

The following flags control application behavior:

	-config string
	    Path to the TOML config file (default: user config dir)
	-words string
	    Word list file, one word per line (overrides config)
	-min int
	    Minimum word length to load (overrides config)
	-limit int
	    Number of matches to display in CLI mode
	-d  Enable debug mode with detailed logging
	-c  Run in CLI mode instead of server mode
	-version
	    Show current version
*/
package main

import (
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/log"

	"github.com/graydel/classmatch/internal/cli"
	"github.com/graydel/classmatch/pkg/config"
	"github.com/graydel/classmatch/pkg/lexicon"
	"github.com/graydel/classmatch/pkg/match"
	"github.com/graydel/classmatch/pkg/server"
)

const (
	Version = "0.3.0"
	AppName = "classmatch"
	gh      = "https://github.com/graydel/classmatch"
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

// main wires config, lexicon and engine together and hands control to the
// server or the CLI loop. It holds no matching logic of its own.
func main() {
	sigHandler()

	showVersion := flag.Bool("version", false, "Show current version")
	configPath := flag.String("config", "", "Path to the TOML config file")
	wordsPath := flag.String("words", "", "Word list file, one word per line (overrides config)")
	minLength := flag.Int("min", -1, "Minimum word length to load (overrides config)")
	limit := flag.Int("limit", 0, "Number of matches to display in CLI mode")
	debugMode := flag.Bool("d", false, "Toggle debug mode")
	cliMode := flag.Bool("c", false, "Run CLI -- useful for testing and debugging")

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

	resolvedConfigPath := *configPath
	if resolvedConfigPath == "" {
		defaultPath, err := config.GetDefaultConfigPath()
		if err != nil {
			log.Warnf("Failed to determine config path: %v. Using built-in defaults...", err)
		} else {
			resolvedConfigPath = defaultPath
		}
	}

	var cfg *config.Config
	if resolvedConfigPath != "" {
		loaded, err := config.InitConfig(resolvedConfigPath)
		if err != nil {
			log.Fatalf("Failed to load config: %v", err)
		}
		cfg = loaded
		log.Debugf("Using config file: (%s)", config.GetActiveConfigPath(resolvedConfigPath))
	} else {
		cfg = config.DefaultConfig()
	}

	if *wordsPath != "" {
		cfg.Lexicon.Path = *wordsPath
	}
	if *minLength >= 0 {
		cfg.Lexicon.MinLength = *minLength
	}
	if *limit > 0 {
		cfg.CLI.DefaultLimit = *limit
	}

	table, err := cfg.Table()
	if err != nil {
		log.Fatalf("Bad class table in config: %v", err)
	}
	log.Debugf("Class table: %v", table.Labels())

	lex := lexicon.New()
	if err := lex.Load(cfg.Lexicon.Path, cfg.Lexicon.MinLength); err != nil {
		log.Fatalf("Failed to load word list: %v", err)
	}
	st := lex.Stats()
	log.Debugf("Lexicon ready: %d words, %d buckets, lengths %d..%d",
		st.TotalWords, st.Buckets, st.MinLength, st.MaxLength)

	engine := match.NewEngine(table, lex)

	if *cliMode {
		log.SetReportTimestamp(false)
		handler := cli.NewInputHandler(engine, lex, cfg.Lexicon.Path, cfg.Lexicon.MinLength, cfg.CLI.DefaultLimit)
		if err := handler.Start(); err != nil {
			log.Fatalf("CLI error: %v", err)
		}
		return
	}

	log.Debug("spawning IPC")
	srv := server.NewServer(engine, table, lex, cfg)

	showStartupInfo(cfg.Lexicon.Path, st.TotalWords)

	if err := srv.Start(); err != nil {
		log.Fatalf("Server error: %v", err)
	}
}

// printVersion shows the version banner.
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
	logger.Print("[ ClassMatch ] Letter-class pattern matching over a word list")
	logger.Print("", "version", Version)
	logger.Print("")
	logger.Print("use -h or --help to see available options")
	logger.Print("Github Repo", "gh", gh)
}

// showStartupInfo displays some basic info about the init process.
func showStartupInfo(wordsPath string, totalWords int) {
	pid := os.Getpid()
	currentLevel := log.GetLevel()
	log.SetLevel(log.InfoLevel)

	log.Infof("Version: %s", Version)
	log.Infof("Process ID: [ %d ]", pid)
	log.Infof("word list: ( %s )", wordsPath)
	log.Infof("words loaded: [ %d ]", totalWords)
	log.Info("status: ready")

	log.SetLevel(currentLevel)
}
