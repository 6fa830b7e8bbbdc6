package control

import (
	"github.com/viant/parsly"
	"github.com/viant/parsly/matcher"
)

// Token codes
const (
	whitespaceCode = iota
	argumentCode
)

// Token definitions
var (
	whitespaceToken = parsly.NewToken(whitespaceCode, "Whitespace", matcher.NewWhiteSpace())
	argumentToken   = parsly.NewToken(argumentCode, "Argument", newArgumentMatcher())
)

func newArgumentMatcher() parsly.Matcher {
	return &argumentMatcher{}
}

// argumentMatcher matches a run of non-whitespace bytes.
type argumentMatcher struct{}

func (m *argumentMatcher) Match(cursor *parsly.Cursor) int {
	input := cursor.Input
	pos := cursor.Pos
	size := cursor.InputSize

	matched := 0
	for i := pos; i < size; i++ {
		if isSpace(input[i]) {
			break
		}
		matched++
	}
	return matched
}

func isSpace(b byte) bool {
	return b == ' ' || b == '\t' || b == '\n' || b == '\r'
}

// Tokenize splits command text on runs of whitespace into an argument
// vector. An empty or all-whitespace command yields a nil slice.
func Tokenize(command string) []string {
	cursor := parsly.NewCursor("", []byte(command), 0)
	var args []string
	for cursor.Pos < cursor.InputSize {
		cursor.MatchOne(whitespaceToken)
		matched := cursor.MatchOne(argumentToken)
		if matched.Code != argumentCode {
			break
		}
		args = append(args, matched.Text(cursor))
	}
	return args
}
