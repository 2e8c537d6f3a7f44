package parser

import (
	"github.com/litesql/litesql/internal/token"
)

// parseInsert parses INSERT/REPLACE in all three source forms (VALUES,
// SELECT, DEFAULT VALUES), the §4.9 upsert chain, and RETURNING. with is
// non-nil when a CTE prefix was already consumed by the caller.
func (p *Parser) parseInsert(with *With) (Stmt, error) {
	stmt := &InsertStmt{With: with}
	var or ConflictAction
	if p.buf.PeekIs(token.REPLACE) {
		p.buf.Eat()
		or = ConflictReplace
	} else {
		p.buf.EatAssert(token.INSERT)
		if p.buf.PeekIs(token.OR) {
			p.buf.Eat()
			action, err := p.parseOnConflictAction()
			if err != nil {
				return nil, err
			}
			or = action
		}
	}
	if _, err := p.buf.EatExpect(token.INTO); err != nil {
		return nil, err
	}
	table, err := p.parseQualifiedName()
	if err != nil {
		return nil, err
	}
	stmt.Or = or
	stmt.Table = table

	alias, err := p.parseOptionalAlias()
	if err != nil {
		return nil, err
	}
	stmt.Alias = alias

	if p.buf.PeekIs(token.LP) {
		cols, err := p.parseNameList()
		if err != nil {
			return nil, err
		}
		stmt.Columns = cols
	}

	switch {
	case p.buf.PeekIs(token.DEFAULT):
		p.buf.Eat()
		if _, err := p.buf.EatExpect(token.VALUES); err != nil {
			return nil, err
		}
		stmt.Source = InsertDefaultValues

	case p.buf.PeekIs(token.VALUES):
		p.buf.Eat()
		var rows [][]Expr
		for {
			if _, err := p.buf.EatExpect(token.LP); err != nil {
				return nil, err
			}
			var row []Expr
			for {
				e, err := p.parseExpr(precOr)
				if err != nil {
					return nil, err
				}
				row = append(row, e)
				if p.buf.PeekIs(token.COMMA) {
					p.buf.Eat()
					continue
				}
				break
			}
			if _, err := p.buf.EatExpect(token.RP); err != nil {
				return nil, err
			}
			rows = append(rows, row)
			if p.buf.PeekIs(token.COMMA) {
				p.buf.Eat()
				continue
			}
			break
		}
		stmt.Source = InsertValues
		stmt.Values = rows

		if p.buf.PeekIs(token.ON) {
			upsert, err := p.parseUpsertChain(stmt.Columns)
			if err != nil {
				return nil, err
			}
			stmt.Upsert = upsert
		}

	case p.buf.PeekIs(token.SELECT, token.WITH):
		sel, err := p.parseSelect()
		if err != nil {
			return nil, err
		}
		stmt.Source = InsertSelect
		stmt.SelectStmt = sel

		if p.buf.PeekIs(token.ON) {
			upsert, err := p.parseUpsertChain(stmt.Columns)
			if err != nil {
				return nil, err
			}
			stmt.Upsert = upsert
		}

	default:
		t := p.buf.Peek()
		return nil, unexpectedToken(t.Pos, t.Type, token.DEFAULT, token.VALUES, token.SELECT, token.WITH)
	}

	if p.buf.PeekIs(token.RETURNING) {
		p.buf.Eat()
		cols, err := p.parseResultColumnList()
		if err != nil {
			return nil, err
		}
		stmt.Returning = cols
	}
	return stmt, nil
}

func (p *Parser) parseOnConflictAction() (ConflictAction, error) {
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

// parseUpsertChain parses one or more `ON CONFLICT [target] DO ...`
// links (spec §4.9). A conflict target is only reachable syntactically
// when columns is non-empty, matching real SQLite's grammar, but nothing
// here enforces that constraint — it is a semantic concern, not a parse
// one.
func (p *Parser) parseUpsertChain(_ []Name) ([]UpsertClause, error) {
	var clauses []UpsertClause
	for p.buf.PeekIs(token.ON) {
		p.buf.Eat()
		if _, err := p.buf.EatExpect(token.CONFLICT); err != nil {
			return nil, err
		}
		var clause UpsertClause
		if p.buf.PeekIs(token.LP) {
			cols, err := p.parseIndexedColumnList()
			if err != nil {
				return nil, err
			}
			target := &UpsertTarget{Columns: cols}
			if p.buf.PeekIs(token.WHERE) {
				p.buf.Eat()
				w, err := p.parseExpr(precOr)
				if err != nil {
					return nil, err
				}
				target.Where = w
			}
			clause.Target = target
		}
		if _, err := p.buf.EatExpect(token.DO); err != nil {
			return nil, err
		}
		switch p.buf.Peek().Type {
		case token.NOTHING:
			p.buf.Eat()
			clause.Action = UpsertNothing
		case token.UPDATE:
			p.buf.Eat()
			if _, err := p.buf.EatExpect(token.SET); err != nil {
				return nil, err
			}
			set, err := p.parseSetClauseList()
			if err != nil {
				return nil, err
			}
			clause.Action = UpsertUpdate
			clause.Set = set
			if p.buf.PeekIs(token.WHERE) {
				p.buf.Eat()
				w, err := p.parseExpr(precOr)
				if err != nil {
					return nil, err
				}
				clause.Where = w
			}
		default:
			t := p.buf.Peek()
			return nil, unexpectedToken(t.Pos, t.Type, token.NOTHING, token.UPDATE)
		}
		clauses = append(clauses, clause)
	}
	return clauses, nil
}

func (p *Parser) parseSetClauseList() ([]SetClause, error) {
	var clauses []SetClause
	for {
		var sc SetClause
		if p.buf.PeekIs(token.LP) {
			names, err := p.parseNameList()
			if err != nil {
				return nil, err
			}
			sc.Columns = names
		} else {
			n, err := p.parseName()
			if err != nil {
				return nil, err
			}
			sc.Columns = []Name{n}
		}
		if _, err := p.buf.EatExpect(token.EQ); err != nil {
			return nil, err
		}
		e, err := p.parseExpr(precOr)
		if err != nil {
			return nil, err
		}
		sc.Expr = e
		clauses = append(clauses, sc)
		if p.buf.PeekIs(token.COMMA) {
			p.buf.Eat()
			continue
		}
		break
	}
	return clauses, nil
}

// parseUpdate parses UPDATE, including its optional OR conflict
// resolution, FROM clause, and ORDER BY/LIMIT/RETURNING.
func (p *Parser) parseUpdate(with *With) (Stmt, error) {
	p.buf.EatAssert(token.UPDATE)
	stmt := &UpdateStmt{With: with}
	if p.buf.PeekIs(token.OR) {
		p.buf.Eat()
		action, err := p.parseOnConflictAction()
		if err != nil {
			return nil, err
		}
		stmt.Or = action
	}
	table, err := p.parseQualifiedName()
	if err != nil {
		return nil, err
	}
	stmt.Table = table

	alias, err := p.parseOptionalAlias()
	if err != nil {
		return nil, err
	}
	stmt.Alias = alias

	if p.buf.PeekIs(token.INDEXED) {
		p.buf.Eat()
		if _, err := p.buf.EatExpect(token.BY); err != nil {
			return nil, err
		}
		n, err := p.parseName()
		if err != nil {
			return nil, err
		}
		stmt.Indexed = &IndexedBy{Kind: IndexedByName, Name: &n}
	} else if p.buf.PeekIs(token.NOT) {
		p.buf.Eat()
		if _, err := p.buf.EatExpect(token.INDEXED); err != nil {
			return nil, err
		}
		stmt.Indexed = &IndexedBy{Kind: NotIndexed}
	}

	if _, err := p.buf.EatExpect(token.SET); err != nil {
		return nil, err
	}
	set, err := p.parseSetClauseList()
	if err != nil {
		return nil, err
	}
	stmt.Set = set

	if p.buf.PeekIs(token.FROM) {
		p.buf.Eat()
		from, err := p.parseFromClause()
		if err != nil {
			return nil, err
		}
		stmt.From = from
	}
	if p.buf.PeekIs(token.WHERE) {
		p.buf.Eat()
		w, err := p.parseExpr(precOr)
		if err != nil {
			return nil, err
		}
		stmt.Where = w
	}
	if p.buf.PeekIs(token.ORDER) {
		p.buf.Eat()
		if _, err := p.buf.EatExpect(token.BY); err != nil {
			return nil, err
		}
		terms, err := p.parseOrderingTermList()
		if err != nil {
			return nil, err
		}
		stmt.OrderBy = terms
	}
	if p.buf.PeekIs(token.LIMIT) {
		limit, err := p.parseLimit()
		if err != nil {
			return nil, err
		}
		stmt.Limit = limit
	}
	if p.buf.PeekIs(token.RETURNING) {
		p.buf.Eat()
		cols, err := p.parseResultColumnList()
		if err != nil {
			return nil, err
		}
		stmt.Returning = cols
	}
	return stmt, nil
}

// parseDelete parses DELETE FROM, including ORDER BY/LIMIT/RETURNING.
func (p *Parser) parseDelete(with *With) (Stmt, error) {
	p.buf.EatAssert(token.DELETE)
	if _, err := p.buf.EatExpect(token.FROM); err != nil {
		return nil, err
	}
	stmt := &DeleteStmt{With: with}
	table, err := p.parseQualifiedName()
	if err != nil {
		return nil, err
	}
	stmt.Table = table

	alias, err := p.parseOptionalAlias()
	if err != nil {
		return nil, err
	}
	stmt.Alias = alias

	if p.buf.PeekIs(token.INDEXED) {
		p.buf.Eat()
		if _, err := p.buf.EatExpect(token.BY); err != nil {
			return nil, err
		}
		n, err := p.parseName()
		if err != nil {
			return nil, err
		}
		stmt.Indexed = &IndexedBy{Kind: IndexedByName, Name: &n}
	} else if p.buf.PeekIs(token.NOT) {
		p.buf.Eat()
		if _, err := p.buf.EatExpect(token.INDEXED); err != nil {
			return nil, err
		}
		stmt.Indexed = &IndexedBy{Kind: NotIndexed}
	}

	if p.buf.PeekIs(token.WHERE) {
		p.buf.Eat()
		w, err := p.parseExpr(precOr)
		if err != nil {
			return nil, err
		}
		stmt.Where = w
	}
	if p.buf.PeekIs(token.ORDER) {
		p.buf.Eat()
		if _, err := p.buf.EatExpect(token.BY); err != nil {
			return nil, err
		}
		terms, err := p.parseOrderingTermList()
		if err != nil {
			return nil, err
		}
		stmt.OrderBy = terms
	}
	if p.buf.PeekIs(token.LIMIT) {
		limit, err := p.parseLimit()
		if err != nil {
			return nil, err
		}
		stmt.Limit = limit
	}
	if p.buf.PeekIs(token.RETURNING) {
		p.buf.Eat()
		cols, err := p.parseResultColumnList()
		if err != nil {
			return nil, err
		}
		stmt.Returning = cols
	}
	return stmt, nil
}
