// Package astdump pretty-prints parsed commands for sqlfmt's --dump-ast
// debug flag.
package astdump

import (
	"io"

	"github.com/k0kubun/pp/v3"

	"github.com/litesql/litesql/parser"
)

// Dump writes a pp-formatted rendering of cmd to w.
func Dump(w io.Writer, cmd *parser.Cmd) {
	pp.Fprintln(w, cmd)
}
