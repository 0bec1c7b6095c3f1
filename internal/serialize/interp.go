package serialize

import (
	"strconv"

	"github.com/dekarrin/grammarc/internal/atn"
	"github.com/dekarrin/grammarc/internal/grammar"
	"github.com/dekarrin/grammarc/internal/issues"
	"github.com/dekarrin/grammarc/internal/util"
)

// WriteInterpreterDump renders the fixed-shape plaintext interpreter dump
// spec.md §6 describes: `token literal names`, `token symbolic names`,
// `rule names`, and (for lexers) `channel names`, `mode names`, followed by
// the serialized ATN integers, one per line.
func WriteInterpreterDump(g *grammar.Grammar, a *atn.ATN, mgr *issues.Manager) string {
	var sb util.UndoableStringBuilder

	writeSection := func(title string, items []string) {
		sb.WriteString(title)
		sb.WriteByte('\n')
		for _, it := range items {
			sb.WriteString(it)
			sb.WriteByte('\n')
		}
	}

	writeSection("token literal names", g.TypeToStringLiteralList())
	writeSection("token symbolic names", g.TypeToTokenList())
	writeSection("rule names", g.NonTerminals())

	if g.Type == grammar.Lexer {
		writeSection("channel names", g.ChannelNames())
		writeSection("mode names", g.ModeNames())
	}

	for _, v := range EncodeInts(SerializeATN(g, a), mgr) {
		sb.WriteString(strconv.Itoa(v))
		sb.WriteByte('\n')
	}

	return sb.String()
}
