package cli

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strings"

	"chessrules/internal/board"
	"chessrules/internal/core"
	"chessrules/internal/game"

	"github.com/chzyer/readline"
)

type CommandType int

const (
	CmdNone CommandType = iota
	CmdMove
	CmdPass
	CmdReset
	CmdReverse
	CmdResume
	CmdHistory
	CmdColor
	CmdVerbose
	CmdHelp
	CmdQuit
)

type Command struct {
	Type CommandType
	Args []string
	Raw  string
}

type ColorTheme string

const (
	ThemeOff   ColorTheme = "off"
	ThemeBrown ColorTheme = "brown"
	ThemeGreen ColorTheme = "green"
	ThemeGray  ColorTheme = "gray"
)

type themeColors struct {
	lightBg string
	darkBg  string
	reset   string
}

var themes = map[ColorTheme]themeColors{
	ThemeOff: {},
	ThemeBrown: {
		lightBg: "\033[48;5;230m", // Beige
		darkBg:  "\033[48;5;94m",  // Brown
		reset:   "\033[0m",
	},
	ThemeGreen: {
		lightBg: "\033[48;5;157m", // Light green
		darkBg:  "\033[48;5;22m",  // Dark green
		reset:   "\033[0m",
	},
	ThemeGray: {
		lightBg: "\033[48;5;251m", // Light gray
		darkBg:  "\033[48;5;240m", // Dark gray
		reset:   "\033[0m",
	},
}

// LineReader yields one input line per call and io.EOF at the end of input.
// *readline.Instance satisfies it.
type LineReader interface {
	Readline() (string, error)
}

type prompter interface {
	SetPrompt(string)
}

type scannerReader struct {
	sc *bufio.Scanner
}

func (s scannerReader) Readline() (string, error) {
	if s.sc.Scan() {
		return s.sc.Text(), nil
	}
	if err := s.sc.Err(); err != nil {
		return "", err
	}
	return "", io.EOF
}

type CLI struct {
	input   LineReader
	output  io.Writer
	theme   ColorTheme
	verbose bool
}

// New reads plain lines from input, suitable for pipes and tests.
func New(input io.Reader, output io.Writer) *CLI {
	return NewWithReader(scannerReader{sc: bufio.NewScanner(input)}, output)
}

// NewTerminal reads through readline with line editing and history.
func NewTerminal(rl *readline.Instance) *CLI {
	return NewWithReader(rl, rl.Stdout())
}

func NewWithReader(input LineReader, output io.Writer) *CLI {
	return &CLI{
		input:  input,
		output: output,
		theme:  ThemeOff,
	}
}

// GetCommand reads a command synchronously. End of input reads as quit.
func (c *CLI) GetCommand() (*Command, error) {
	line, err := c.input.Readline()
	if err != nil {
		if errors.Is(err, io.EOF) || errors.Is(err, readline.ErrInterrupt) {
			return &Command{Type: CmdQuit}, nil
		}
		return nil, err
	}

	input := strings.TrimSpace(line)
	if input == "" {
		return &Command{Type: CmdNone}, nil
	}

	return ParseCommand(input), nil
}

func ParseCommand(input string) *Command {
	parts := strings.Fields(input)
	if len(parts) == 0 {
		return &Command{Type: CmdNone}
	}

	cmd := parts[0]
	args := parts[1:]

	switch cmd {
	case "pass":
		return &Command{Type: CmdPass}
	case "reset":
		return &Command{Type: CmdReset}
	case "reverse":
		return &Command{Type: CmdReverse}
	case "resume":
		return &Command{Type: CmdResume, Args: args, Raw: input}
	case "history":
		return &Command{Type: CmdHistory}
	case "color":
		return &Command{Type: CmdColor, Args: args}
	case "verbose":
		return &Command{Type: CmdVerbose}
	case "help", "?":
		return &Command{Type: CmdHelp}
	case "quit", "exit":
		return &Command{Type: CmdQuit}
	default:
		// Anything else is a move, castling included
		return &Command{Type: CmdMove, Args: []string{cmd}, Raw: input}
	}
}

func (c *CLI) SetTheme(theme ColorTheme) error {
	if _, ok := themes[theme]; !ok {
		return fmt.Errorf("invalid theme: %s (use: off, brown, green, gray)", theme)
	}
	c.theme = theme
	return nil
}

func (c *CLI) ToggleVerbose() bool {
	c.verbose = !c.verbose
	return c.verbose
}

func (c *CLI) IsVerbose() bool {
	return c.verbose
}

func (c *CLI) ShowMessage(msg string) {
	fmt.Fprintln(c.output, msg)
}

func (c *CLI) ShowError(err error) {
	c.ShowMessage(fmt.Sprintf("Error: %v\n", err))
}

// ShowPrompt hands the prompt to readline when available, otherwise prints it.
func (c *CLI) ShowPrompt(prompt string) {
	if p, ok := c.input.(prompter); ok {
		// readline redraws only the last line
		if i := strings.LastIndexByte(prompt, '\n'); i >= 0 {
			fmt.Fprint(c.output, prompt[:i+1])
			prompt = prompt[i+1:]
		}
		p.SetPrompt(prompt)
		return
	}
	fmt.Fprint(c.output, prompt)
}

// DisplayBoard prints the glyph grid as currently oriented, with file and
// rank labels taken from the board so a reversed board reads correctly.
func (c *CLI) DisplayBoard(b *board.Board) {
	theme := themes[c.theme]
	grid := b.Render()
	var sb strings.Builder

	header := " "
	for col := 0; col < board.Size; col++ {
		header += fmt.Sprintf(" %c", b.File(col))
	}
	sb.WriteString("\n" + header + "\n")

	for r := 0; r < board.Size; r++ {
		rank := b.Label(r, 0)[1]
		sb.WriteString(fmt.Sprintf("%c ", rank))
		for f := 0; f < board.Size; f++ {
			if c.theme == ThemeOff {
				sb.WriteString(grid[r][f] + " ")
				continue
			}
			bg := theme.darkBg
			if (r+f)%2 == 0 {
				bg = theme.lightBg
			}
			glyph := grid[r][f]
			if glyph == "~" {
				glyph = " "
			}
			sb.WriteString(fmt.Sprintf("%s%s %s", bg, glyph, theme.reset))
		}
		sb.WriteString(fmt.Sprintf(" %c\n", rank))
	}
	sb.WriteString(header + "\n")

	c.ShowMessage(sb.String())
}

func (c *CLI) ShowHelp() {
	help := `Commands:
  <move>           - Play a move in algebraic notation (e.g., e4, Nf3, exd5, Nbd2, Qxe5)
  O-O / O-O-O      - Castle king side / queen side
  pass             - Skip your turn
  reverse          - Turn the board around
  reset            - Start over from the initial position
  resume <FEN>     - Continue from a specific board position
  history          - Show moves played so far
  color <theme>    - Set board color theme (off|brown|green|gray)
  verbose          - Toggle detailed move information
  quit/exit        - Exit the program
  help/?           - Show this help message`

	c.ShowMessage(help)
}

func (c *CLI) ShowWelcome() {
	c.ShowMessage("Welcome to Chess!")
	c.ShowMessage("Enter moves in algebraic notation; 'help' lists the other commands.")
	c.ShowMessage("")
}

func (c *CLI) ShowGameHistory(g *game.Game) {
	c.ShowMessage(fmt.Sprintf("Starting FEN: %s\n", g.InitialFEN()))

	moves := g.Moves()
	for i := 0; i < len(moves); i += 2 {
		moveNum := i/2 + 1
		white := moves[i]
		if i+1 < len(moves) {
			c.ShowMessage(fmt.Sprintf("%d. %s | %s", moveNum, white, moves[i+1]))
		} else {
			c.ShowMessage(fmt.Sprintf("%d. %s | ...", moveNum, white))
		}
	}
	c.ShowMessage(fmt.Sprintf("\nCurrent FEN: %s", g.FEN()))
	c.ShowMessage(fmt.Sprintf("Game state: %s\n", g.State()))
}

func (c *CLI) ShowMove(result *game.MoveResult) {
	if !c.verbose {
		return
	}
	switch {
	case result.Pass:
		c.ShowMessage(fmt.Sprintf("%s passes\n", titleColor(result.Player)))
	case result.Castle:
		c.ShowMessage(fmt.Sprintf("%s castles %s (king %s-%s)\n", titleColor(result.Player), result.Move, result.From, result.To))
	default:
		c.ShowMessage(fmt.Sprintf("%s: %s (%s-%s)\n", titleColor(result.Player), result.Move, result.From, result.To))
	}
}

func (c *CLI) ShowCheck() {
	c.ShowMessage("You can only capture the checking piece or move your king.\n")
}

func (c *CLI) ShowGameOver(g *game.Game) {
	c.ShowMessage(fmt.Sprintf("\n%s won! After %d individual moves!", titleColor(g.Winner()), g.MoveCount()))
	c.ShowMessage("Start over with 'reset' or 'resume <FEN>'.")
}

func (c *CLI) ShowTurnSeparator() {
	c.ShowMessage("\n------------------------------\n")
}

func titleColor(color core.Color) string {
	s := color.String()
	return strings.ToUpper(s[:1]) + s[1:]
}
