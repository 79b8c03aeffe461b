// Package gtp implements the Go Text Protocol (version 2) on top of a Game,
// so that GUIs such as GoGui or Sabaki can drive the rules engine and its bot.
package gtp

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"slices"
	"strconv"
	"strings"

	"github.com/aretw0/goban"
	"github.com/aretw0/goban/internal/logging"
	"github.com/aretw0/goban/pkg/bot"
	"github.com/aretw0/goban/pkg/domain"
	"github.com/aretw0/goban/pkg/rules"
	"github.com/aretw0/goban/pkg/sgf"
)

// errQuit ends Serve after the response to "quit" has been written.
var errQuit = errors.New("quit")

type handler func(e *Engine, args []string) (string, error)

// commands is filled in init because known_command and list_commands read it.
var commands map[string]handler

func init() {
	commands = map[string]handler{
		"protocol_version": func(*Engine, []string) (string, error) { return "2", nil },
		"name":             func(e *Engine, _ []string) (string, error) { return e.name, nil },
		"version":          func(e *Engine, _ []string) (string, error) { return e.version, nil },
		"known_command":    (*Engine).knownCommand,
		"list_commands":    (*Engine).listCommands,
		"quit":             func(*Engine, []string) (string, error) { return "", errQuit },
		"boardsize":        (*Engine).boardSize,
		"clear_board":      (*Engine).clearBoard,
		"komi":             (*Engine).setKomi,
		"play":             (*Engine).play,
		"genmove":          (*Engine).genMove,
		"undo":             (*Engine).undo,
		"showboard":        (*Engine).showBoard,
		"final_score":      (*Engine).finalScore,
		"loadsgf":          (*Engine).loadSGF,
		"printsgf":         (*Engine).printSGF,
	}
}

// Engine holds the game a GTP controller talks to. It is not safe for
// concurrent use; Serve processes one command at a time.
type Engine struct {
	game    *goban.Game
	rules   domain.Ruleset
	bot     bot.Engine
	name    string
	version string
	logger  *slog.Logger
}

// Option configures the Engine.
type Option func(*Engine)

// WithRuleset sets the rules of every game the engine starts.
func WithRuleset(rs domain.Ruleset) Option {
	return func(e *Engine) { e.rules = rs }
}

// WithBot replaces the move generator used by genmove.
func WithBot(b bot.Engine) Option {
	return func(e *Engine) { e.bot = b }
}

// WithVersion sets the version reported to the controller.
func WithVersion(v string) Option {
	return func(e *Engine) { e.version = v }
}

// WithLogger sets a logger for command tracing.
func WithLogger(logger *slog.Logger) Option {
	return func(e *Engine) { e.logger = logger }
}

// New creates an engine with an empty 19x19 board.
func New(opts ...Option) *Engine {
	e := &Engine{
		rules:   domain.DefaultRuleset(),
		name:    "goban",
		version: "dev",
		logger:  logging.NewNop(),
	}
	for _, opt := range opts {
		opt(e)
	}
	if e.bot == nil {
		e.bot = bot.NewRandom(1)
	}
	_ = e.reset(19)
	return e
}

// Game returns the current game.
func (e *Engine) Game() *goban.Game { return e.game }

// Serve reads commands from r and writes responses to w until "quit", EOF or
// ctx is done.
func (e *Engine) Serve(ctx context.Context, r io.Reader, w io.Writer) error {
	scanner := bufio.NewScanner(r)
	out := bufio.NewWriter(w)
	for scanner.Scan() {
		if err := ctx.Err(); err != nil {
			return err
		}
		resp, quit, ok := e.Execute(scanner.Text())
		if !ok {
			continue
		}
		if _, err := out.WriteString(resp); err != nil {
			return err
		}
		if err := out.Flush(); err != nil {
			return err
		}
		if quit {
			return nil
		}
	}
	return scanner.Err()
}

// Execute runs one protocol line and returns the full response, including
// the trailing blank line. ok is false for empty and comment-only lines,
// which get no response.
func (e *Engine) Execute(line string) (resp string, quit, ok bool) {
	if i := strings.IndexByte(line, '#'); i >= 0 {
		line = line[:i]
	}
	fields := strings.Fields(strings.ReplaceAll(line, "\t", " "))
	if len(fields) == 0 {
		return "", false, false
	}

	id := ""
	if _, err := strconv.Atoi(fields[0]); err == nil {
		id, fields = fields[0], fields[1:]
		if len(fields) == 0 {
			return "?" + id + " missing command\n\n", false, true
		}
	}
	name := strings.ToLower(fields[0])
	h, known := commands[name]
	if !known {
		return "?" + id + " unknown command\n\n", false, true
	}

	result, err := h(e, fields[1:])
	e.logger.Debug("GTP command", "cmd", name, "args", fields[1:], "err", err)
	switch {
	case errors.Is(err, errQuit):
		return "=" + id + "\n\n", true, true
	case err != nil:
		return "?" + id + " " + err.Error() + "\n\n", false, true
	case result == "":
		return "=" + id + "\n\n", false, true
	default:
		return "=" + id + " " + result + "\n\n", false, true
	}
}

func (e *Engine) knownCommand(args []string) (string, error) {
	if len(args) != 1 {
		return "", errors.New("syntax error")
	}
	_, ok := commands[strings.ToLower(args[0])]
	return strconv.FormatBool(ok), nil
}

func (e *Engine) listCommands([]string) (string, error) {
	names := make([]string, 0, len(commands))
	for name := range commands {
		names = append(names, name)
	}
	slices.Sort(names)
	return strings.Join(names, "\n"), nil
}

func (e *Engine) reset(size int) error {
	g, err := goban.New(size, goban.WithRuleset(e.rules), goban.WithLogger(e.logger))
	if err != nil {
		return err
	}
	e.game = g
	return nil
}

func (e *Engine) boardSize(args []string) (string, error) {
	if len(args) != 1 {
		return "", errors.New("syntax error")
	}
	size, err := strconv.Atoi(args[0])
	if err != nil {
		return "", errors.New("syntax error")
	}
	if size < 1 || size > MaxSize {
		return "", errors.New("unacceptable size")
	}
	return "", e.reset(size)
}

func (e *Engine) clearBoard([]string) (string, error) {
	return "", e.reset(e.game.Size())
}

// setKomi takes effect on the next game; GTP controllers send komi right
// after clear_board, so an empty game is restarted with the new value.
func (e *Engine) setKomi(args []string) (string, error) {
	if len(args) != 1 {
		return "", errors.New("syntax error")
	}
	komi, err := strconv.ParseFloat(args[0], 64)
	if err != nil {
		return "", errors.New("syntax error")
	}
	e.rules.Komi = komi
	if e.game.Tree().Len() == 1 {
		return "", e.reset(e.game.Size())
	}
	return "", nil
}

func (e *Engine) play(args []string) (string, error) {
	if len(args) != 2 {
		return "", errors.New("syntax error")
	}
	player, err := domain.ParsePlayer(args[0])
	if err != nil {
		return "", errors.New("syntax error")
	}
	c, pass, err := ParseVertex(args[1], e.game.Size())
	if err != nil {
		return "", errors.New("syntax error")
	}
	mv := domain.PlayAt(player, c)
	if pass {
		mv = domain.Pass(player)
	}
	if _, err := e.game.Apply(mv); err != nil {
		var illegal *rules.IllegalMoveError
		if errors.As(err, &illegal) {
			err = illegal.Reason
		}
		return "", fmt.Errorf("illegal move (%v)", err)
	}
	return "", nil
}

func (e *Engine) genMove(args []string) (string, error) {
	if len(args) != 1 {
		return "", errors.New("syntax error")
	}
	player, err := domain.ParsePlayer(args[0])
	if err != nil {
		return "", errors.New("syntax error")
	}
	if e.game.Phase() == domain.PhaseFinished {
		return "", domain.ErrGameOver
	}
	mv := e.bot.GenMove(e.game.Position(), player, e.game.Ruleset())
	if _, err := e.game.Apply(mv); err != nil {
		return "", err
	}
	switch mv.Kind {
	case domain.KindPass:
		return "pass", nil
	case domain.KindResign:
		return "resign", nil
	}
	return Vertex(mv.Coord, e.game.Size()), nil
}

func (e *Engine) undo([]string) (string, error) {
	if e.game.Current().IsRoot() {
		return "", errors.New("cannot undo")
	}
	return "", e.game.Undo()
}

// showBoard renders the position with GTP coordinates, row 1 at the bottom.
func (e *Engine) showBoard([]string) (string, error) {
	b := e.game.Board()
	size := b.Size()
	var sb strings.Builder
	header := "   " + strings.Join(strings.Split(columns[:size], ""), " ") + "\n"
	sb.WriteString("\n" + header)
	for r := 0; r < size; r++ {
		fmt.Fprintf(&sb, "%2d", size-r)
		for c := 0; c < size; c++ {
			sb.WriteString(" " + b.At(domain.C(r, c)).String())
		}
		fmt.Fprintf(&sb, " %d\n", size-r)
	}
	sb.WriteString(header)
	caps := e.game.Captures()
	fmt.Fprintf(&sb, "Captures: B %d, W %d", caps.Black, caps.White)
	return sb.String(), nil
}

// finalScore counts the current position as it stands, all stones alive.
func (e *Engine) finalScore([]string) (string, error) {
	if r := e.game.Result(); r != "" {
		return r, nil
	}
	s, err := rules.ComputeScore(e.game.Board(), e.game.Captures(), e.game.Ruleset())
	if err != nil {
		return "", err
	}
	return s.Result(), nil
}

// loadSGF loads the main line of a file. With a move number n the position
// before move n is set up, as GTP specifies.
func (e *Engine) loadSGF(args []string) (string, error) {
	if len(args) < 1 || len(args) > 2 {
		return "", errors.New("syntax error")
	}
	data, err := os.ReadFile(args[0])
	if err != nil {
		return "", errors.New("cannot load file")
	}
	tree, err := sgf.ParseBytes(data, sgf.WithLogger(e.logger))
	if err != nil {
		return "", fmt.Errorf("cannot load file (%v)", err)
	}
	if tree[0].Size() > MaxSize {
		return "", errors.New("unacceptable size")
	}
	g := goban.FromTree(tree[0], goban.WithLogger(e.logger))
	if len(args) == 2 {
		n, err := strconv.Atoi(args[1])
		if err != nil || n < 1 {
			return "", errors.New("syntax error")
		}
		g.ToRoot()
		for g.MoveNumber() < n-1 {
			if err := g.Forward(0); err != nil {
				break
			}
		}
	}
	e.game = g
	e.rules = g.Ruleset()
	return "", nil
}

func (e *Engine) printSGF([]string) (string, error) {
	return strings.TrimRight(e.game.ExportSGF(), "\n"), nil
}

