// main.go: the REPL driver. Accumulates lines into a buffer, re-attempts a
// full parse after each one, and treats a parser that ran out of input
// mid-construct as "need another line" rather than a diagnostic. Prompts
// are empty strings so stdout carries only evaluation results, and a
// genuine parse/semantic/runtime error is printed in its exact format
// while the driver keeps reading rather than aborting.
package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/peterh/liner"

	"github.com/vanhoefm/Interpreter/internal/bc"
)

func main() {
	os.Exit(run())
}

func run() int {
	ln := liner.NewLiner()
	defer ln.Close()
	ln.SetCtrlCAborts(true)

	ctx := bc.NewRuntimeContext()
	ev := bc.NewEvaluator(ctx, os.Stdout)

	for {
		cmd, perr, eof := nextCommand(ln)
		if eof {
			return 0
		}
		if perr != nil {
			fmt.Fprint(os.Stderr, perr.Error())
			continue
		}

		if err := ev.Run(cmd); err != nil {
			if bc.IsHalt(err) {
				return 0
			}
			fmt.Fprint(os.Stderr, err.Error())
		}
	}
}

// nextCommand accumulates liner-read lines until they form one complete
// command, re-parsing the whole buffer from scratch on every line. It
// returns eof=true once the input stream itself has ended, whether or not
// a partial command was pending — end-of-input alone is a clean exit, not
// a diagnostic for whatever trailing fragment never got finished.
func nextCommand(ln *liner.State) (cmd *bc.Command, err error, eof bool) {
	var buf strings.Builder
	for {
		line, lerr := ln.Prompt("")
		if lerr != nil {
			return nil, nil, true
		}
		if buf.Len() > 0 {
			buf.WriteByte('\n')
		}
		buf.WriteString(line)

		p := bc.NewParser(bc.NewLexer(buf.String()))
		c, perr := p.Command()
		if perr == nil {
			return c, nil, false
		}
		if bc.IsNeedMoreInput(perr) {
			continue
		}
		return nil, perr, false
	}
}
