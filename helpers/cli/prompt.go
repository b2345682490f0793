// Package cli is line input for interactive commands.
// On terminal it uses go-prompt with completion, otherwise reads plain lines,
// so same commands work in scripts: `printf '1\n2\n10\n' | vender-candy purchase`.
package cli

import (
	"bufio"
	"io"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/c-bata/go-prompt"
	"github.com/juju/errors"
	"github.com/mattn/go-isatty"
)

// ExitOnSignal is for commands without cleanup.
func ExitOnSignal(code int) {
	signalCh := make(chan os.Signal, 1)
	signal.Notify(signalCh,
		syscall.SIGHUP,
		syscall.SIGINT,
		syscall.SIGTERM,
		syscall.SIGQUIT)
	go func() {
		<-signalCh
		os.Exit(code)
	}()
}

func IsTerminal(f *os.File) bool {
	return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
}

// MainLoop runs exec for each line until EOF.
func MainLoop(tag string, exec func(line string), complete func(d prompt.Document) []prompt.Suggest) error {
	if IsTerminal(os.Stdin) {
		prompt.New(exec, complete, prompt.OptionPrefix(tag+"> "), prompt.OptionTitle(tag)).Run()
		return nil
	}
	return NewInput(os.Stdin, false).Lines(exec)
}

type Input struct {
	r           *bufio.Reader
	interactive bool
}

func NewInput(r io.Reader, interactive bool) *Input {
	return &Input{r: bufio.NewReader(r), interactive: interactive}
}

// NewStdin chooses interactive mode when stdin is terminal.
func NewStdin() *Input { return NewInput(os.Stdin, IsTerminal(os.Stdin)) }

func (self *Input) Interactive() bool { return self.interactive }

// Ask returns trimmed answer. Suggestions are used for completion on terminal.
// Returns io.EOF when input is closed.
func (self *Input) Ask(question string, suggests []prompt.Suggest) (string, error) {
	if self.interactive {
		complete := func(d prompt.Document) []prompt.Suggest {
			return prompt.FilterFuzzy(suggests, d.TextBeforeCursor(), true)
		}
		return strings.TrimSpace(prompt.Input(question, complete)), nil
	}
	line, err := self.r.ReadString('\n')
	if err == io.EOF && line != "" {
		err = nil
	}
	if err != nil {
		if err == io.EOF {
			return "", err
		}
		return "", errors.Annotate(err, "input")
	}
	return strings.TrimSpace(line), nil
}

func (self *Input) Lines(exec func(line string)) error {
	for {
		line, err := self.Ask("", nil)
		if err == io.EOF {
			return nil
		}
		if err != nil {
			return err
		}
		exec(line)
	}
}
