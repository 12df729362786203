// Package cli handles cmd line input for trying patterns against the lexicon and for DBG use
package cli

import (
	"bufio"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/charmbracelet/log"

	"github.com/graydel/classmatch/internal/logger"
	"github.com/graydel/classmatch/internal/utils"
	"github.com/graydel/classmatch/pkg/lexicon"
	"github.com/graydel/classmatch/pkg/match"
)

// InputHandler reads pattern queries from stdin and prints the matching
// words. Besides plain pattern lines it understands a few slash commands:
// "/w WORD" shows the pattern a word satisfies, "/p PREFIX" lists words
// under a confirmed prefix, "/reload" re-reads the word list.
type InputHandler struct {
	engine       *match.Engine
	lex          *lexicon.Lexicon
	lexPath      string
	minLength    int
	matchLimit   int
	requestCount int
	out          *log.Logger
}

// NewInputHandler handles initialization of the InputHandler with basic parameters
func NewInputHandler(engine *match.Engine, lex *lexicon.Lexicon, lexPath string, minLength, limit int) *InputHandler {
	return &InputHandler{
		engine:     engine,
		lex:        lex,
		lexPath:    lexPath,
		minLength:  minLength,
		matchLimit: limit,
		out:        logger.New(""),
	}
}

// Start begins the interface loop.
// It continuously prompts for input, reads a line from stdin, and passes the
// trimmed input to handleInput() for processing. The loop terminates if an
// error occurs while reading from stdin.
func (h *InputHandler) Start() error {
	h.out.Print("ClassMatch CLI")
	reader := bufio.NewReader(os.Stdin)
	h.out.Print("type a pattern like 'N-T A-F N-T G-M N-T' and press Enter (Ctrl+C to exit)")
	h.out.Print("commands: /w WORD  /p PREFIX  /reload")

	for {
		h.out.Print("> ")
		line, err := reader.ReadString('\n')
		if err != nil {
			return err
		}
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		h.handleInput(line)
	}
}

// handleInput processes a single line, either a slash command or a pattern query
func (h *InputHandler) handleInput(line string) {
	h.requestCount++

	if strings.HasPrefix(line, "/") {
		h.handleCommand(line)
		return
	}

	start := time.Now()
	words, err := h.engine.FindMatches(line)
	elapsed := time.Since(start)
	if err != nil {
		log.Errorf("Bad pattern: %v", err)
		return
	}
	log.Debugf("Took [ %v ] for pattern '%s'", elapsed, line)

	if len(words) == 0 {
		log.Warnf("No words match pattern: '%s'", line)
		return
	}

	shown := words
	if h.matchLimit > 0 && len(shown) > h.matchLimit {
		shown = shown[:h.matchLimit]
	}
	h.out.Printf("Found %s matches for '%s':", utils.FormatWithCommas(len(words)), line)
	for i, w := range shown {
		clWord := fmt.Sprintf("\033[38;5;75m%s\033[0m", w)
		h.out.Printf("%3d. %s", i+1, clWord)
	}
	if len(shown) < len(words) {
		h.out.Printf("... and %s more", utils.FormatWithCommas(len(words)-len(shown)))
	}
}

// handleCommand runs one of the slash commands
func (h *InputHandler) handleCommand(line string) {
	cmd, arg, _ := strings.Cut(line, " ")
	arg = strings.TrimSpace(arg)

	switch cmd {
	case "/w":
		if !utils.IsAlpha(arg) {
			log.Errorf("Usage: /w WORD (letters only)")
			return
		}
		pattern, err := h.engine.PatternOf(arg)
		if err != nil {
			log.Errorf("%v", err)
			return
		}
		h.out.Printf("%s -> %s", strings.ToUpper(arg), pattern)
	case "/p":
		if arg == "" {
			log.Errorf("Usage: /p PREFIX")
			return
		}
		words := h.lex.WordsWithPrefix(arg, h.matchLimit)
		if len(words) == 0 {
			log.Warnf("No words with prefix '%s'", arg)
			return
		}
		for i, w := range words {
			h.out.Printf("%3d. %s", i+1, w)
		}
	case "/reload":
		if err := h.lex.Load(h.lexPath, h.minLength); err != nil {
			log.Errorf("Reload failed: %v", err)
			return
		}
		h.out.Printf("Reloaded %s words", utils.FormatWithCommas(h.lex.Len()))
	default:
		log.Errorf("Unknown command: %s", cmd)
	}
}
