// Package lexer classifies codepoints of a C-like source file.
//
// Two automata are nested. The outer one tracks the lexical context (code,
// string or character literal, line comment, block comment). While inside a
// line comment the inner one tracks word boundaries and counts words made
// only of Cyrillic letters.
//
// The automaton is fed one codepoint at a time through Step and must be told
// about the end of input through Finish so a word still open in a trailing
// line comment is counted.
package lexer

// Context is the lexical region the scan is currently in.
type Context int

const (
	Main Context = iota
	SawSlash
	LineComment
	StringLiteral
	CharLiteral
	BlockComment
	BlockCommentSawStar
)

func (c Context) String() string {
	switch c {
	case Main:
		return "main"
	case SawSlash:
		return "slash"
	case LineComment:
		return "line comment"
	case StringLiteral:
		return "string literal"
	case CharLiteral:
		return "char literal"
	case BlockComment:
		return "block comment"
	case BlockCommentSawStar:
		return "block comment star"
	default:
		return "unknown"
	}
}

// WordState is only meaningful inside a line comment.
type WordState int

const (
	None WordState = iota
	InCyrillicWord
	InOtherWord
)

func (w WordState) String() string {
	switch w {
	case None:
		return "none"
	case InCyrillicWord:
		return "cyrillic word"
	case InOtherWord:
		return "other word"
	default:
		return "unknown"
	}
}
