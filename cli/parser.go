// Package cli tokenizes console lines and dispatches them against a
// bounded command table.
package cli

import (
	"strings"

	"github.com/google/shlex"

	"picocli-go/errcode"
)

const (
	// MaxArgs bounds the parameter list of one command line.
	MaxArgs = 5
	// MaxNameLen bounds the command name.
	MaxNameLen = 24
	// MaxParamLen bounds one parameter name.
	MaxParamLen = 16
	// MaxValueLen bounds one parameter value.
	MaxValueLen = 64

	// DefaultCommand runs when the line is empty.
	DefaultCommand = "help"
)

// Arg is one parsed parameter. Flags carry an empty Value.
type Arg struct {
	Name  string
	Value string
}

// Parsed is a tokenized command line.
type Parsed struct {
	Name string
	Args []Arg
}

// Parse splits a raw line into a command name and parameters.
//
// Quoting and escaping follow shell rules ("..." groups words, \ escapes
// the next character). Command and parameter names fold to lower case;
// values are taken as typed. A parameter is name=value with no spaces
// around the '='; a bare word is a flag.
func Parse(line string) (Parsed, error) {
	tokens, err := shlex.Split(line)
	if err != nil {
		return Parsed{}, &errcode.E{C: errcode.Parse, Op: "tokenize", Msg: err.Error()}
	}
	if len(tokens) == 0 {
		return Parsed{Name: DefaultCommand}, nil
	}

	name := strings.ToLower(tokens[0])
	if err := checkSpacing(tokens[0]); err != nil {
		return Parsed{}, err
	}
	if strings.Contains(name, "=") {
		return Parsed{}, errcode.New(errcode.Parse, "command name cannot contain '='")
	}
	if len(name) > MaxNameLen {
		return Parsed{}, errcode.CmdTooLong
	}

	rest := tokens[1:]
	if len(rest) > MaxArgs {
		return Parsed{}, errcode.TooManyArgs
	}

	args := make([]Arg, 0, len(rest))
	for _, tok := range rest {
		if err := checkSpacing(tok); err != nil {
			return Parsed{}, err
		}
		pname, value, found := strings.Cut(tok, "=")
		pname = strings.ToLower(pname)
		if !found {
			value = ""
		}
		if len(pname) > MaxParamLen || len(value) > MaxValueLen {
			return Parsed{}, errcode.ArgTooLong
		}
		args = append(args, Arg{Name: pname, Value: value})
	}
	return Parsed{Name: name, Args: args}, nil
}

// checkSpacing rejects tokens that indicate whitespace around '='. After
// word splitting, a leading or trailing '=' can only come from input like
// "freq =50", "freq= 50" or "freq = 50".
func checkSpacing(tok string) error {
	if tok == "=" || strings.HasPrefix(tok, "=") || strings.HasSuffix(tok, "=") {
		return errcode.New(errcode.Parse, "no spaces allowed around '='")
	}
	return nil
}
