// Package parser implements a hand-written, recursive-descent, Pratt-style
// parser for the SQLite SQL grammar: DDL, DML, expressions, CTEs, window
// functions, triggers, virtual tables and pragmas. It produces a typed AST
// (see ast.go) and performs no query planning, execution, or I/O.
package parser

import (
	"github.com/litesql/litesql/internal/token"
)

// Parser is constructed per input and drives a Buffer to produce a lazy,
// finite sequence of Cmd values via Next. Grounded on the teacher's
// Parser.Parse dispatch switch (pkg/sql/parser/parser.go), generalized to
// the driver semantics of spec §4.2 (leading/trailing semicolons, EXPLAIN
// wrapping, one error per statement).
type Parser struct {
	buf *Buffer
}

// New returns a Parser over input. input is borrowed for the parser's
// lifetime.
func New(input string) *Parser {
	return &Parser{buf: NewBuffer(input)}
}

// Next yields the next Cmd, or (nil, nil) once the input is exhausted
// (after discarding any trailing semicolons). After an error, the parser's
// internal state is undefined: further calls to Next are not required to
// succeed (spec §7).
func (p *Parser) Next() (*Cmd, error) {
	for p.buf.PeekIs(token.SEMI) {
		p.buf.Eat()
	}
	if p.buf.PeekIs(token.EOF) {
		return nil, nil
	}

	cmd, err := p.parseCmd()
	if err != nil {
		return nil, err
	}

	sawSemi := false
	for p.buf.PeekIs(token.SEMI) {
		p.buf.Eat()
		sawSemi = true
	}
	if !sawSemi && !p.buf.PeekIs(token.EOF) {
		t := p.buf.Peek()
		return nil, unexpectedToken(t.Pos, t.Type, token.SEMI)
	}
	return cmd, nil
}

// ParseAll drains the iterator, returning every Cmd parsed before the
// first error (if any).
func (p *Parser) ParseAll() ([]*Cmd, error) {
	var out []*Cmd
	for {
		cmd, err := p.Next()
		if err != nil {
			return out, err
		}
		if cmd == nil {
			return out, nil
		}
		out = append(out, cmd)
	}
}

func (p *Parser) parseCmd() (*Cmd, error) {
	explain := NotExplained
	if p.buf.PeekIs(token.EXPLAIN) {
		p.buf.Eat()
		if p.buf.PeekIs(token.QUERY) {
			p.buf.Eat()
			if _, err := p.buf.EatExpect(token.PLAN); err != nil {
				return nil, err
			}
			explain = ExplainedQueryPlan
		} else {
			explain = Explained
		}
	}
	stmt, err := p.parseStmt()
	if err != nil {
		return nil, err
	}
	return &Cmd{Explain: explain, Stmt: stmt}, nil
}

// statementStarters is the expected-set reported when no dispatch case
// matches; it mirrors spec §4.2's dispatch table.
var statementStarters = []token.Type{
	token.BEGIN, token.COMMIT, token.END, token.ROLLBACK, token.SAVEPOINT,
	token.RELEASE, token.CREATE, token.SELECT, token.VALUES, token.WITH,
	token.ANALYZE, token.ATTACH, token.DETACH, token.PRAGMA, token.VACUUM,
	token.ALTER, token.DELETE, token.DROP, token.INSERT, token.REPLACE,
	token.UPDATE, token.REINDEX,
}

func (p *Parser) parseStmt() (Stmt, error) {
	switch p.buf.Peek().Type {
	case token.BEGIN:
		return p.parseBegin()
	case token.COMMIT, token.END:
		return p.parseCommit()
	case token.ROLLBACK:
		return p.parseRollback()
	case token.SAVEPOINT:
		return p.parseSavepoint()
	case token.RELEASE:
		return p.parseRelease()
	case token.CREATE:
		return p.parseCreate()
	case token.SELECT, token.VALUES:
		sel, err := p.parseSelect()
		if err != nil {
			return nil, err
		}
		return &SelectStmt{Select: *sel}, nil
	case token.WITH:
		return p.parseWithPrefixedStmt()
	case token.ANALYZE:
		return p.parseAnalyze()
	case token.ATTACH:
		return p.parseAttach()
	case token.DETACH:
		return p.parseDetach()
	case token.PRAGMA:
		return p.parsePragma()
	case token.VACUUM:
		return p.parseVacuum()
	case token.ALTER:
		return p.parseAlterTable()
	case token.DELETE:
		return p.parseDelete(nil)
	case token.DROP:
		return p.parseDrop()
	case token.INSERT, token.REPLACE:
		return p.parseInsert(nil)
	case token.UPDATE:
		return p.parseUpdate(nil)
	case token.REINDEX:
		return p.parseReindex()
	default:
		t := p.buf.Peek()
		return nil, unexpectedToken(t.Pos, t.Type, statementStarters...)
	}
}

// parseWithPrefixedStmt parses the CTE prefix then re-dispatches to one of
// SELECT|VALUES|UPDATE|DELETE|INSERT|REPLACE (spec §4.2).
func (p *Parser) parseWithPrefixedStmt() (Stmt, error) {
	with, err := p.parseWith()
	if err != nil {
		return nil, err
	}
	switch p.buf.Peek().Type {
	case token.SELECT, token.VALUES:
		sel, err := p.parseSelect()
		if err != nil {
			return nil, err
		}
		sel.With = with
		return &SelectStmt{Select: *sel}, nil
	case token.UPDATE:
		return p.parseUpdate(with)
	case token.DELETE:
		return p.parseDelete(with)
	case token.INSERT, token.REPLACE:
		return p.parseInsert(with)
	default:
		t := p.buf.Peek()
		return nil, unexpectedToken(t.Pos, t.Type, token.SELECT, token.VALUES, token.UPDATE, token.DELETE, token.INSERT)
	}
}

// ---- shared helpers used across statement/expression productions --------

// parseName consumes one identifier token (bare or quoted) or a
// single-quoted string used as a name, and returns the corresponding Name,
// preserving quote delimiters verbatim.
func (p *Parser) parseName() (Name, error) {
	t, err := p.buf.EatExpect(token.ID, token.STRING)
	if err != nil {
		return Name{}, err
	}
	if len(t.Value) > 0 {
		switch t.Value[0] {
		case '[', '\'', '`', '"':
			return QuotedName(string(t.Value)), nil
		}
	}
	return IdentName(string(t.Value)), nil
}

// parseQualifiedName parses `[schema.]name`.
func (p *Parser) parseQualifiedName() (QualifiedName, error) {
	first, err := p.parseName()
	if err != nil {
		return QualifiedName{}, err
	}
	if p.buf.PeekIs(token.DOT) {
		p.buf.Eat()
		second, err := p.parseName()
		if err != nil {
			return QualifiedName{}, err
		}
		return QualifiedName{Schema: &first, Name: second}, nil
	}
	return QualifiedName{Name: first}, nil
}

func (p *Parser) parseNameList() ([]Name, error) {
	if _, err := p.buf.EatExpect(token.LP); err != nil {
		return nil, err
	}
	var names []Name
	for {
		n, err := p.parseName()
		if err != nil {
			return nil, err
		}
		names = append(names, n)
		if p.buf.PeekIs(token.COMMA) {
			p.buf.Eat()
			continue
		}
		break
	}
	if _, err := p.buf.EatExpect(token.RP); err != nil {
		return nil, err
	}
	return names, nil
}

// parseOnConflict parses the optional `ON CONFLICT resolve` suffix.
func (p *Parser) parseOnConflict() (ConflictAction, error) {
	if !p.buf.PeekIs(token.ON) {
		return ConflictNone, nil
	}
	p.buf.Eat()
	if _, err := p.buf.EatExpect(token.CONFLICT); err != nil {
		return ConflictNone, err
	}
	t := p.buf.Peek()
	switch t.Type {
	case token.ROLLBACK:
		p.buf.Eat()
		return ConflictRollback, nil
	case token.ABORT:
		p.buf.Eat()
		return ConflictAbort, nil
	case token.FAIL:
		p.buf.Eat()
		return ConflictFail, nil
	case token.IGNORE:
		p.buf.Eat()
		return ConflictIgnore, nil
	case token.REPLACE:
		p.buf.Eat()
		return ConflictReplace, nil
	default:
		return ConflictNone, unexpectedToken(t.Pos, t.Type, token.ROLLBACK, token.ABORT, token.FAIL, token.IGNORE, token.REPLACE)
	}
}

func (p *Parser) parseSortOrder() (SortOrder, error) {
	switch p.buf.Peek().Type {
	case token.ASC:
		p.buf.Eat()
		return SortAsc, nil
	case token.DESC:
		p.buf.Eat()
		return SortDesc, nil
	default:
		return SortNone, nil
	}
}
