package lexer

import (
	"testing"

	"github.com/litesql/litesql/internal/token"
)

func collectSkipSpace(l *Lexer) []token.Token {
	var out []token.Token
	for {
		tok := l.NextToken()
		if tok.Type == token.SPACE || tok.Type == token.COMMENT {
			continue
		}
		out = append(out, tok)
		if tok.Type == token.EOF {
			break
		}
	}
	return out
}

func TestLexer_SimpleTokens(t *testing.T) {
	input := "+-*/=< >(),;"
	expected := []struct {
		typ   token.Type
		value string
	}{
		{token.PLUS, "+"},
		{token.MINUS, "-"},
		{token.STAR, "*"},
		{token.SLASH, "/"},
		{token.EQ, "="},
		{token.LT, "<"},
		{token.GT, ">"},
		{token.LP, "("},
		{token.RP, ")"},
		{token.COMMA, ","},
		{token.SEMI, ";"},
		{token.EOF, ""},
	}

	toks := collectSkipSpace(New(input))
	for i, exp := range expected {
		if toks[i].Type != exp.typ {
			t.Errorf("token[%d]: type = %v, want %v", i, toks[i].Type, exp.typ)
		}
		if string(toks[i].Value) != exp.value {
			t.Errorf("token[%d]: value = %q, want %q", i, toks[i].Value, exp.value)
		}
	}
}

func TestLexer_ComparisonAndJSONOperators(t *testing.T) {
	input := "= == != <> < > <= >= << >> || -> ->>"
	expected := []token.Type{
		token.EQ, token.EQ, token.NE, token.NE, token.LT, token.GT, token.LE, token.GE,
		token.SHL, token.SHR, token.CONCAT, token.ARROW, token.ARROW2, token.EOF,
	}
	toks := collectSkipSpace(New(input))
	for i, exp := range expected {
		if toks[i].Type != exp {
			t.Errorf("token[%d]: type = %v, want %v", i, toks[i].Type, exp)
		}
	}
}

func TestLexer_Numbers(t *testing.T) {
	cases := []struct {
		in  string
		typ token.Type
	}{
		{"123", token.INTEGER},
		{"1.5", token.FLOAT},
		{".5", token.FLOAT},
		{"1e10", token.FLOAT},
		{"1.5e-3", token.FLOAT},
		{"0x1F", token.INTEGER},
	}
	for _, c := range cases {
		toks := collectSkipSpace(New(c.in))
		if toks[0].Type != c.typ {
			t.Errorf("%q: type = %v, want %v", c.in, toks[0].Type, c.typ)
		}
		if string(toks[0].Value) != c.in {
			t.Errorf("%q: value = %q, want %q", c.in, toks[0].Value, c.in)
		}
	}
}

func TestLexer_StringLiteralEscapedQuote(t *testing.T) {
	toks := collectSkipSpace(New(`'it''s'`))
	if toks[0].Type != token.STRING {
		t.Fatalf("type = %v, want STRING", toks[0].Type)
	}
	if string(toks[0].Value) != `'it''s'` {
		t.Errorf("value = %q, want the quotes preserved verbatim", toks[0].Value)
	}
}

func TestLexer_QuotedIdentifiersPreserveDelimiters(t *testing.T) {
	cases := []string{`"col"`, "`col`", "[col]"}
	for _, in := range cases {
		toks := collectSkipSpace(New(in))
		if toks[0].Type != token.ID {
			t.Errorf("%q: type = %v, want ID", in, toks[0].Type)
		}
		if string(toks[0].Value) != in {
			t.Errorf("%q: value = %q, want delimiters preserved", in, toks[0].Value)
		}
	}
}

func TestLexer_BlobLiteral(t *testing.T) {
	toks := collectSkipSpace(New(`x'ABCD'`))
	if toks[0].Type != token.BLOB {
		t.Fatalf("type = %v, want BLOB", toks[0].Type)
	}
	if string(toks[0].Value) != `x'ABCD'` {
		t.Errorf("value = %q, want x'ABCD'", toks[0].Value)
	}
}

func TestLexer_Variables(t *testing.T) {
	cases := []string{"?", "?1", ":name", "@var", "$x"}
	for _, in := range cases {
		toks := collectSkipSpace(New(in))
		if toks[0].Type != token.VARIABLE {
			t.Errorf("%q: type = %v, want VARIABLE", in, toks[0].Type)
		}
		if string(toks[0].Value) != in {
			t.Errorf("%q: value = %q, want %q", in, toks[0].Value, in)
		}
	}
}

func TestLexer_KeywordsCaseInsensitive(t *testing.T) {
	toks := collectSkipSpace(New("select Select SELECT"))
	for i, tok := range toks[:3] {
		if tok.Type != token.SELECT {
			t.Errorf("token[%d]: type = %v, want SELECT", i, tok.Type)
		}
	}
}

func TestLexer_CommentsAreTaggedNotSkipped(t *testing.T) {
	l := New("-- line comment\nSELECT /* block */ 1")
	first := l.NextToken()
	if first.Type != token.COMMENT {
		t.Fatalf("first token type = %v, want COMMENT", first.Type)
	}
}
