package cli

import (
	"io"

	"picocli-go/errcode"
	"picocli-go/x/fmtx"
)

// CLI glues the parser to the registry.
type CLI struct {
	reg *Registry
}

func New(reg *Registry) *CLI { return &CLI{reg: reg} }

func (c *CLI) Registry() *Registry { return c.reg }

// Execute parses one line and runs the named command, writing all output
// to w. An empty line shows help. `<cmd> help` prints the command's help
// text instead of running it.
func (c *CLI) Execute(line string, w io.Writer) error {
	p, err := Parse(line)
	if err != nil {
		return err
	}
	if p.Name == "help" {
		return c.help(w, p.Args)
	}
	cmd, ok := c.reg.Get(p.Name)
	if !ok {
		return errcode.New(errcode.CmdNotFound, p.Name)
	}
	if Args(p.Args).Has("help") {
		c.printHelp(w, cmd)
		return nil
	}
	return cmd.Run(w, p.Args)
}

// help with no argument lists the table; `help <cmd>` (flag form) shows
// one command.
func (c *CLI) help(w io.Writer, args []Arg) error {
	for _, a := range args {
		if a.Name == "help" || a.Value != "" {
			continue
		}
		cmd, ok := c.reg.Get(a.Name)
		if !ok {
			return errcode.New(errcode.CmdNotFound, a.Name)
		}
		c.printHelp(w, cmd)
		return nil
	}
	fmtx.Fprintf(w, "Available commands:\r\n")
	for _, cmd := range c.reg.All() {
		name := cmd.Name
		for len(name) < 16 {
			name += " "
		}
		fmtx.Fprintf(w, "  %s %s\r\n", name, cmd.Desc)
	}
	fmtx.Fprintf(w, "Use '<command> help' for details.\r\n")
	return nil
}

func (c *CLI) printHelp(w io.Writer, cmd Command) {
	fmtx.Fprintf(w, "%s - %s\r\n", cmd.Name, cmd.Desc)
	if cmd.Help != "" {
		fmtx.Fprintf(w, "%s\r\n", cmd.Help)
	}
}
