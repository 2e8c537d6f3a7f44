package parser

import (
	"github.com/litesql/litesql/internal/token"
)

// parseCreateTrigger parses CREATE TRIGGER's timing/event/table/WHEN
// header followed by a BEGIN ... END body of one or more
// INSERT|UPDATE|DELETE|SELECT statements, each terminated by `;`.
func (p *Parser) parseCreateTrigger(temp bool) (Stmt, error) {
	p.buf.EatAssert(token.TRIGGER)
	ifNotExists, err := p.parseIfNotExists()
	if err != nil {
		return nil, err
	}
	name, err := p.parseQualifiedName()
	if err != nil {
		return nil, err
	}
	stmt := &CreateTriggerStmt{Temporary: temp, IfNotExists: ifNotExists, Name: name}

	switch p.buf.Peek().Type {
	case token.BEFORE:
		p.buf.Eat()
		stmt.Timing = TriggerBefore
	case token.AFTER:
		p.buf.Eat()
		stmt.Timing = TriggerAfter
	case token.INSTEAD:
		p.buf.Eat()
		if _, err := p.buf.EatExpect(token.OF); err != nil {
			return nil, err
		}
		stmt.Timing = TriggerInsteadOf
	}

	switch p.buf.Peek().Type {
	case token.DELETE:
		p.buf.Eat()
		stmt.Event = TriggerEvent{Kind: TriggerOnDelete}
	case token.INSERT:
		p.buf.Eat()
		stmt.Event = TriggerEvent{Kind: TriggerOnInsert}
	case token.UPDATE:
		p.buf.Eat()
		event := TriggerEvent{Kind: TriggerOnUpdate}
		if p.buf.PeekIs(token.OF) {
			p.buf.Eat()
			cols, err := p.parseCommaSeparatedNames()
			if err != nil {
				return nil, err
			}
			event.OfColumns = cols
		}
		stmt.Event = event
	default:
		t := p.buf.Peek()
		return nil, unexpectedToken(t.Pos, t.Type, token.DELETE, token.INSERT, token.UPDATE)
	}

	if _, err := p.buf.EatExpect(token.ON); err != nil {
		return nil, err
	}
	table, err := p.parseQualifiedName()
	if err != nil {
		return nil, err
	}
	stmt.Table = table

	if p.buf.PeekIs(token.FOR) {
		p.buf.Eat()
		if _, err := p.buf.EatExpect(token.EACH); err != nil {
			return nil, err
		}
		if _, err := p.buf.EatExpect(token.ROW); err != nil {
			return nil, err
		}
		stmt.ForEachRow = true
	}

	if p.buf.PeekIs(token.WHEN) {
		p.buf.Eat()
		w, err := p.parseExpr(precOr)
		if err != nil {
			return nil, err
		}
		stmt.When = w
	}

	if _, err := p.buf.EatExpect(token.BEGIN); err != nil {
		return nil, err
	}
	for !p.buf.PeekIs(token.END) {
		if p.buf.PeekIs(token.EOF) {
			t := p.buf.Peek()
			return nil, unexpectedEOF(t.Pos)
		}
		bodyStmt, err := p.parseTriggerBodyStmt()
		if err != nil {
			return nil, err
		}
		stmt.Body = append(stmt.Body, bodyStmt)
		if _, err := p.buf.EatExpect(token.SEMI); err != nil {
			return nil, err
		}
	}
	p.buf.EatAssert(token.END)
	return stmt, nil
}

// parseTriggerBodyStmt parses one of the four statement kinds legal
// inside a trigger body, optionally CTE-prefixed.
func (p *Parser) parseTriggerBodyStmt() (Stmt, error) {
	switch p.buf.Peek().Type {
	case token.WITH:
		return p.parseWithPrefixedStmt()
	case token.SELECT, token.VALUES:
		sel, err := p.parseSelect()
		if err != nil {
			return nil, err
		}
		return &SelectStmt{Select: *sel}, nil
	case token.INSERT, token.REPLACE:
		return p.parseInsert(nil)
	case token.UPDATE:
		return p.parseUpdate(nil)
	case token.DELETE:
		return p.parseDelete(nil)
	default:
		t := p.buf.Peek()
		return nil, unexpectedToken(t.Pos, t.Type, token.SELECT, token.VALUES, token.INSERT, token.UPDATE, token.DELETE, token.WITH)
	}
}

func (p *Parser) parseCommaSeparatedNames() ([]Name, error) {
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
	return names, nil
}
