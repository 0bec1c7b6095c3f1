package serialize

import (
	"strconv"

	"github.com/dekarrin/grammarc/internal/grammar"
	"github.com/dekarrin/grammarc/internal/util"
)

// WriteVocab renders the `.tokens` vocab file spec.md §6 describes: one
// `NAME=type` line per symbolic token, then one `'literal'=type` line per
// literal alias.
func WriteVocab(g *grammar.Grammar) string {
	var sb util.UndoableStringBuilder

	names := g.TypeToTokenList()
	for t, name := range names {
		if name == "" {
			continue
		}
		sb.WriteString(name)
		sb.WriteByte('=')
		sb.WriteString(strconv.Itoa(t))
		sb.WriteByte('\n')
	}

	literals := g.TypeToStringLiteralList()
	for t, lit := range literals {
		if lit == "" {
			continue
		}
		sb.WriteString(lit)
		sb.WriteByte('=')
		sb.WriteString(strconv.Itoa(t))
		sb.WriteByte('\n')
	}

	return sb.String()
}
