package commands

import (
	"io"

	"picocli-go/cli"
	"picocli-go/x/fmtx"
)

// example exists so a new board bring-up has a known-good command to
// poke the parser with.
func (d Deps) exampleCmd() cli.Command {
	return cli.Command{
		Name: "example",
		Desc: "argument parsing demo",
		Help: "example [text=\"hello world\"] [n=3] [loud]\r\n" +
			"Echoes text n times, upper-cased with the loud flag.",
		Run: func(w io.Writer, args cli.Args) error {
			text := strOr(args, "text", "hello")
			n, err := cli.Number(args, "n", 1)
			if err != nil {
				return err
			}
			loud, err := args.Bool("loud", false)
			if err != nil {
				return err
			}
			if loud {
				text = upper(text)
			}
			for i := 0; i < n; i++ {
				fmtx.Fprintf(w, "%s\r\n", text)
			}
			fmtx.Fprintf(w, "(%d args received)\r\n", len(args))
			return nil
		},
	}
}

func upper(s string) string {
	b := []byte(s)
	for i, c := range b {
		if 'a' <= c && c <= 'z' {
			b[i] = c - ('a' - 'A')
		}
	}
	return string(b)
}
