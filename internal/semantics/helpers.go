package semantics

import "unicode"

// isQuotedLiteral reports whether text is a quoted string literal body such
// as 'if', as opposed to a bare symbolic token or rule name.
func isQuotedLiteral(text string) bool {
	return len(text) >= 2 && text[0] == '\''
}

// isLexerRuleName reports whether name would be parsed as a lexer rule
// (leading uppercase), the same convention internal/transform uses to split
// a combined grammar's rule table.
func isLexerRuleName(name string) bool {
	for _, r := range name {
		return unicode.IsUpper(r)
	}
	return false
}
