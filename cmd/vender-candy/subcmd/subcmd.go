// Support sub-commands in vender-candy application.
// It's simple but fine so far.
package subcmd

import (
	"context"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/juju/errors"
	"github.com/temoto/vender-candy/internal/state"
)

type Mod struct {
	Name  string
	Usage string
	Main  func(ctx context.Context, config *state.Config, args []string) error
}

// Stdout is where commands print results, replaced in tests.
var Stdout io.Writer = os.Stdout

func Parse(command string, modules []Mod) (*Mod, error) {
	if command == "" {
		return nil, errors.Errorf("empty command")
	}

	var found *Mod
	for i := range modules {
		m := &modules[i]
		if m.Name == "" {
			panic(fmt.Sprintf("code error Name='' module=%#v", m))
		}
		if command == m.Name {
			found = m
			break
		}
	}
	if found == nil {
		return nil, errors.NotFoundf("command='%s'", command)
	}
	return found, nil
}

func Usage(w io.Writer, modules []Mod) {
	names := make([]string, 0, len(modules))
	for _, m := range modules {
		names = append(names, fmt.Sprintf("  %-10s %s", m.Name, m.Usage))
	}
	fmt.Fprintf(w, "commands:\n%s\n", strings.Join(names, "\n"))
}

// Init is common start of every command.
func Init(ctx context.Context, config *state.Config) (*state.Global, error) {
	g := state.GetGlobal(ctx)
	if err := g.Init(ctx, config); err != nil {
		return nil, errors.Annotate(err, "init")
	}
	return g, nil
}
