package lexer

import (
	"io"

	"cyrcount/internal/frontend/charclass"
)

// RuneSource supplies the codepoint following the current one. The automaton
// pulls from it directly to skip the character after a backslash in literals.
type RuneSource interface {
	Next() (rune, error)
}

// Stats are counters collected alongside the word count.
type Stats struct {
	Codepoints       int
	LineComments     int
	BlockComments    int
	StringLiterals   int
	CharLiterals     int
	EscapesSkipped   int
	TruncatedEscapes int
}

// Automaton is the scan state for one input.
type Automaton struct {
	src   RuneSource
	ctx   Context
	word  WordState
	count int
	stats Stats
	err   error
}

// New returns an automaton in the Main context with no words counted.
func New(src RuneSource) *Automaton {
	return &Automaton{src: src, ctx: Main, word: None}
}

// Context returns the current lexical context.
func (a *Automaton) Context() Context { return a.ctx }

// WordState returns the current word state.
func (a *Automaton) WordState() WordState { return a.word }

// Count returns the number of completed Cyrillic words.
func (a *Automaton) Count() int { return a.count }

// Stats returns the counters collected so far.
func (a *Automaton) Stats() Stats { return a.stats }

// Err returns a non-EOF error seen while pulling an escaped codepoint.
func (a *Automaton) Err() error { return a.err }

// Step consumes one codepoint.
func (a *Automaton) Step(r rune) {
	a.stats.Codepoints++
	// Leaving SawSlash on anything but '/' or '*' re-evaluates r in Main.
	for a.transition(r) {
	}
}

// Run feeds every codepoint of the source to Step and then calls Finish.
// It returns the first read error other than io.EOF.
func (a *Automaton) Run() error {
	for {
		r, err := a.src.Next()
		if err == io.EOF {
			break
		}
		if err != nil {
			return err
		}
		a.Step(r)
		if a.err != nil {
			return a.err
		}
	}
	a.Finish()
	return nil
}

// Finish flushes a Cyrillic word left open by the end of input. It must be
// called exactly once, after the last Step.
func (a *Automaton) Finish() {
	if a.ctx == LineComment && a.word == InCyrillicWord {
		a.count++
	}
}

// transition applies one step of the context automaton and reports whether
// r has to be evaluated again under the new context.
func (a *Automaton) transition(r rune) bool {
	switch a.ctx {
	case Main:
		switch r {
		case '"':
			a.ctx = StringLiteral
			a.stats.StringLiterals++
		case '\'':
			a.ctx = CharLiteral
			a.stats.CharLiterals++
		case '/':
			a.ctx = SawSlash
		}

	case SawSlash:
		switch r {
		case '/':
			a.ctx = LineComment
			a.word = None
			a.stats.LineComments++
		case '*':
			a.ctx = BlockComment
			a.stats.BlockComments++
		default:
			a.ctx = Main
			return true
		}

	case LineComment:
		if r == '\n' {
			if a.word == InCyrillicWord {
				a.count++
			}
			a.ctx = Main
			a.word = None
			return false
		}
		a.stepWord(r)

	case StringLiteral:
		switch r {
		case '"':
			a.ctx = Main
		case '\\':
			a.skipEscaped()
		}

	case CharLiteral:
		switch r {
		case '\'':
			a.ctx = Main
		case '\\':
			a.skipEscaped()
		}

	case BlockComment:
		if r == '*' {
			a.ctx = BlockCommentSawStar
		}

	case BlockCommentSawStar:
		switch r {
		case '/':
			a.ctx = Main
		case '*':
		default:
			a.ctx = BlockComment
		}
	}
	return false
}

// skipEscaped discards the codepoint after a backslash. A literal whose
// escape is cut off by the end of input is closed.
func (a *Automaton) skipEscaped() {
	_, err := a.src.Next()
	switch {
	case err == nil:
		a.stats.EscapesSkipped++
	case err == io.EOF:
		a.stats.TruncatedEscapes++
		a.ctx = Main
	default:
		if a.err == nil {
			a.err = err
		}
		a.ctx = Main
	}
}

// stepWord drives the word automaton inside a line comment.
func (a *Automaton) stepWord(r rune) {
	sep := charclass.IsWordSeparator(r)

	switch a.word {
	case None:
		if sep {
			return
		}
		if charclass.IsCyrillic(r) {
			a.word = InCyrillicWord
		} else {
			a.word = InOtherWord
		}

	case InCyrillicWord:
		switch {
		case sep:
			a.count++
			a.word = None
		case !charclass.IsCyrillic(r) && r != '-' && r != '\'':
			a.word = InOtherWord
		}

	case InOtherWord:
		if sep {
			a.word = None
		}
	}
}
