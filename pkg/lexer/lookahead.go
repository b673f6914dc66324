package lexer

// IsAssignment reports whether the statement starting at tokens[pos] is an
// assignment: an identifier, an optional bracketed index, then '='. An index
// whose ']' is missing still counts when '=' is reached inside it.
func IsAssignment(tokens []Token, pos int) bool {
	at := func(i int) TokenType {
		if i < 0 || i >= len(tokens) {
			return EOF
		}
		return tokens[i].Type
	}
	if at(pos) != IDENFR {
		return false
	}
	i := pos + 1
	if at(i) == LBRACK {
		depth := 0
	scan:
		for ; at(i) != EOF; i++ {
			switch at(i) {
			case LBRACK:
				depth++
			case RBRACK:
				depth--
				if depth == 0 {
					i++
					break scan
				}
			case ASSIGN, SEMICN, LBRACE, RBRACE:
				break scan
			}
		}
	}
	return at(i) == ASSIGN
}
