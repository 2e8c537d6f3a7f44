package parser

import (
	"fmt"

	"github.com/litesql/litesql/internal/lexer"
	"github.com/litesql/litesql/internal/token"
)

// Buffer is a single-lookahead cursor over the lexer. It filters out
// whitespace/comment tokens, applies the context-sensitive keyword
// reinterpretation layer (spec §4.3) at the moment a token is peeked, and
// provides the two backtracking primitives described in spec §4.1:
// tryParse (speculative lookahead, always discarded) and mark
// (transactional scope, rewound only on failure).
//
// Grounded on the teacher's two-token cur/peek window
// (pkg/sql/parser/parser.go Parser.nextToken), generalized to a single
// peek slot plus explicit backtracking since the teacher has no
// equivalent of either primitive.
type Buffer struct {
	lex    *lexer.Lexer
	peeked *token.Token
	prev   token.Token // last token delivered to the caller via Eat
}

// NewBuffer returns a Buffer reading from input.
func NewBuffer(input string) *Buffer {
	return &Buffer{lex: lexer.New(input), prev: token.Token{Type: token.EOF}}
}

// rawNext pulls the next significant (non-space, non-comment) token
// straight from the lexer, bypassing the peek slot entirely. Used both by
// Peek (to fill the slot) and by the lookahead closures passed to
// tryParseBool.
func (b *Buffer) rawNext() token.Token {
	for {
		t := b.lex.NextToken()
		if t.Type == token.SPACE || t.Type == token.COMMENT {
			continue
		}
		return t
	}
}

// Peek returns the next significant token without consuming it. It
// tolerates EOF (never errors): callers test t.Type == token.EOF.
func (b *Buffer) Peek() token.Token {
	if b.peeked == nil {
		t := b.rawNext()
		t = b.reinterpret(t)
		b.peeked = &t
	}
	return *b.peeked
}

// PeekIs reports whether Peek's type is one of types.
func (b *Buffer) PeekIs(types ...token.Type) bool {
	cur := b.Peek().Type
	for _, t := range types {
		if cur == t {
			return true
		}
	}
	return false
}

// Eat consumes and returns the peeked token, filling prev for the benefit
// of the next reinterpretation decision.
func (b *Buffer) Eat() token.Token {
	t := b.Peek()
	b.peeked = nil
	b.prev = t
	return t
}

// EatExpect consumes one token, failing with UnexpectedToken/UnexpectedEOF
// if its classification is not in expected. Because reinterpretation runs
// at Peek time, a token whose class was rewritten to ID already carries
// type token.ID here, so it satisfies an expected token.ID automatically.
func (b *Buffer) EatExpect(expected ...token.Type) (token.Token, error) {
	t := b.Peek()
	if t.Type == token.EOF {
		if contains(expected, token.EOF) {
			return b.Eat(), nil
		}
		return token.Token{}, unexpectedEOF(t.Pos)
	}
	if !contains(expected, t.Type) {
		return token.Token{}, unexpectedToken(t.Pos, t.Type, expected...)
	}
	return b.Eat(), nil
}

// EatAssert consumes one token and panics if its classification does not
// match expected. It exists for productions that have already peeked and
// switched on the classification, so a mismatch here is an internal bug,
// not a malformed-input error — the debug-checked consume spec §4.1 calls
// eat_assert.
func (b *Buffer) EatAssert(expected token.Type) token.Token {
	t := b.Eat()
	if t.Type != expected {
		panic(fmt.Sprintf("parser: eatAssert expected %s, got %s at offset %d", token.Name(expected), token.Name(t.Type), t.Pos))
	}
	return t
}

// RawSlice returns the original input bytes between two offsets
// verbatim, bypassing tokenization entirely. Used by the virtual-table
// argument scanner, which stores its arguments as raw text rather than
// a parsed expression tree.
func (b *Buffer) RawSlice(start, end int) string {
	return b.lex.Slice(start, end)
}

func contains(types []token.Type, want token.Type) bool {
	for _, t := range types {
		if t == want {
			return true
		}
	}
	return false
}

// tryParseBool is the try_parse primitive specialized to a boolean-valued
// lookahead: it snapshots the current lexer offset, runs f (which may call
// rawNext any number of times), then unconditionally restores the lexer to
// the snapshot. f must never be called while a token is already peeked —
// every call site here runs from inside Peek, before peeked is assigned.
func (b *Buffer) tryParseBool(f func() bool) bool {
	offset := b.lex.Offset()
	result := f()
	b.lex.Seek(offset)
	return result
}

// Mark is the mark primitive: it snapshots peek state, the prev token, and
// the lexer offset, runs f, and rewinds all three iff f returns an error.
func (b *Buffer) Mark(f func() error) error {
	savedPeeked := b.peeked
	savedPrev := b.prev
	savedOffset := b.lex.Offset()
	err := f()
	if err != nil {
		b.peeked = savedPeeked
		b.prev = savedPrev
		b.lex.Seek(savedOffset)
	}
	return err
}

// fallbackIDOK reports whether typ could legally reduce to token.ID as an
// identifier substitute: it already is one, or it belongs to one of the
// reinterpretable keyword classes. This mirrors the teacher's pattern of a
// single shared "is this context-independent" helper (spec's
// fallback_id_if_ok) rather than re-running full reinterpretation
// recursively on the lookahead token.
func fallbackIDOK(typ token.Type) bool {
	return typ == token.ID || token.IsKeywordClass(typ)
}

// reinterpret applies spec §4.3's context-sensitive keyword rewrite table.
// It runs exactly once, at the moment a fresh token is about to become the
// peeked token (see Peek): b.prev is always the last token already
// delivered to the caller, and any forward lookahead goes through
// tryParseBool so it never leaks into the peek slot.
func (b *Buffer) reinterpret(t token.Token) token.Token {
	if !token.IsKeywordClass(t.Type) {
		return t
	}
	switch t.Type {
	case token.WINDOW:
		if b.tryParseBool(func() bool {
			n1 := b.rawNext()
			if !fallbackIDOK(n1.Type) {
				return false
			}
			n2 := b.rawNext()
			return n2.Type == token.AS
		}) {
			return t
		}
	case token.OVER:
		if b.prev.Type == token.RP && b.tryParseBool(func() bool {
			n1 := b.rawNext()
			return n1.Type == token.LP || fallbackIDOK(n1.Type)
		}) {
			return t
		}
	case token.FILTER:
		if b.prev.Type == token.RP && b.tryParseBool(func() bool {
			n1 := b.rawNext()
			return n1.Type == token.LP
		}) {
			return t
		}
	case token.UNION:
		if b.tryParseBool(func() bool {
			n1 := b.rawNext()
			return n1.Type == token.ALL || n1.Type == token.SELECT || n1.Type == token.VALUES
		}) {
			return t
		}
	case token.EXCEPT, token.INTERSECT:
		if b.tryParseBool(func() bool {
			n1 := b.rawNext()
			return n1.Type == token.SELECT || n1.Type == token.VALUES
		}) {
			return t
		}
	case token.COLUMNKW:
		if b.prev.Type == token.ADD || b.prev.Type == token.RENAME || b.prev.Type == token.DROP {
			return t
		}
	case token.GENERATED:
		if b.tryParseBool(func() bool {
			n1 := b.rawNext()
			if n1.Type != token.ALWAYS {
				return false
			}
			n2 := b.rawNext()
			return n2.Type == token.AS
		}) {
			return t
		}
	case token.WITHOUT:
		if (b.prev.Type == token.RP || b.prev.Type == token.COMMA) && b.tryParseBool(func() bool {
			n1 := b.rawNext()
			return fallbackIDOK(n1.Type)
		}) {
			return t
		}
	}
	t.Type = token.ID
	return t
}
