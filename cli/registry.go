package cli

import (
	"io"
	"strings"

	"picocli-go/logx"
)

// MaxCommands bounds the table; late registrations are dropped loudly.
const MaxCommands = 24

// Command is one console verb. Run writes its output to w and returns an
// errcode value on failure; the dispatcher prints it.
type Command struct {
	Name string
	Desc string
	Help string
	Run  func(w io.Writer, args Args) error
}

// Registry is the fixed-size command table.
type Registry struct {
	cmds []Command
}

func NewRegistry() *Registry {
	return &Registry{cmds: make([]Command, 0, MaxCommands)}
}

// Register adds a command. Beyond capacity or on a name collision the
// command is dropped and logged, never panicking mid-boot.
func (r *Registry) Register(cmd Command) {
	cmd.Name = strings.ToLower(cmd.Name)
	if _, ok := r.Get(cmd.Name); ok {
		logx.Warnf("registry: duplicate command %s dropped", cmd.Name)
		return
	}
	if len(r.cmds) >= MaxCommands {
		logx.Warnf("registry: table full, %s dropped", cmd.Name)
		return
	}
	r.cmds = append(r.cmds, cmd)
}

// Get looks a command up by folded name.
func (r *Registry) Get(name string) (Command, bool) {
	name = strings.ToLower(name)
	for _, c := range r.cmds {
		if c.Name == name {
			return c, true
		}
	}
	return Command{}, false
}

// All returns the table in registration order.
func (r *Registry) All() []Command { return r.cmds }

func (r *Registry) Len() int { return len(r.cmds) }
