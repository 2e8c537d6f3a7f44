package parser

import (
	"strings"

	"github.com/litesql/litesql/internal/token"
)

// parseCreateVirtualTable parses `CREATE VIRTUAL TABLE [IF NOT EXISTS]
// name USING module-name [(arg, ...)]`. Module arguments are scanned as
// raw, uninterpreted byte spans rather than parsed expressions (spec
// §4.7): a virtual table module defines its own argument grammar (column
// declarations, option flags, foreign-module-specific syntax) that this
// parser has no business re-deriving.
func (p *Parser) parseCreateVirtualTable() (Stmt, error) {
	p.buf.EatAssert(token.VIRTUAL)
	if _, err := p.buf.EatExpect(token.TABLE); err != nil {
		return nil, err
	}
	ifNotExists, err := p.parseIfNotExists()
	if err != nil {
		return nil, err
	}
	name, err := p.parseQualifiedName()
	if err != nil {
		return nil, err
	}
	if _, err := p.buf.EatExpect(token.USING); err != nil {
		return nil, err
	}
	module, err := p.parseName()
	if err != nil {
		return nil, err
	}
	stmt := &CreateVirtualTableStmt{IfNotExists: ifNotExists, Name: name, ModuleName: module}

	if p.buf.PeekIs(token.LP) {
		p.buf.Eat()
		if !p.buf.PeekIs(token.RP) {
			args, err := p.scanVtabArgs()
			if err != nil {
				return nil, err
			}
			stmt.Args = args
		}
		if _, err := p.buf.EatExpect(token.RP); err != nil {
			return nil, err
		}
	}
	return stmt, nil
}

// scanVtabArgs consumes tokens up to (but not including) the module
// argument list's closing paren, splitting on top-level commas and
// tracking nested-paren depth so a type declaration like `x DECIMAL(10,5)`
// stays one argument. The outer `(` has already been consumed by the
// caller, so depth starts at zero meaning "at the top level of the arg
// list"; the first unmatched `)` seen at depth zero is that outer paren
// and ends the scan, which means depth can never go negative here.
func (p *Parser) scanVtabArgs() ([]string, error) {
	var args []string
	depth := 0
	argStart := p.buf.Peek().Pos
	argEnd := argStart
	flush := func(pos int) error {
		arg := p.buf.RawSlice(argStart, argEnd)
		if strings.TrimSpace(arg) == "" {
			return customErrorf(pos, "empty virtual table argument")
		}
		args = append(args, arg)
		return nil
	}
	for {
		t := p.buf.Peek()
		if t.Type == token.EOF {
			return nil, unexpectedEOF(t.Pos)
		}
		switch t.Type {
		case token.LP:
			depth++
			p.buf.Eat()
			argEnd = t.Pos + len(t.Value)
		case token.RP:
			if depth == 0 {
				if err := flush(t.Pos); err != nil {
					return nil, err
				}
				return args, nil
			}
			depth--
			p.buf.Eat()
			argEnd = t.Pos + len(t.Value)
		case token.COMMA:
			if depth == 0 {
				if err := flush(t.Pos); err != nil {
					return nil, err
				}
				p.buf.Eat()
				argStart = p.buf.Peek().Pos
				argEnd = argStart
				continue
			}
			p.buf.Eat()
			argEnd = t.Pos + len(t.Value)
		default:
			p.buf.Eat()
			argEnd = t.Pos + len(t.Value)
		}
	}
}
