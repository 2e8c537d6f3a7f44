package parser

import (
	"github.com/litesql/litesql/internal/token"
)

func (p *Parser) parseBegin() (Stmt, error) {
	p.buf.EatAssert(token.BEGIN)
	stmt := &BeginStmt{}
	switch p.buf.Peek().Type {
	case token.DEFERRED:
		p.buf.Eat()
		stmt.Kind = BeginDeferred
	case token.IMMEDIATE:
		p.buf.Eat()
		stmt.Kind = BeginImmediate
	case token.EXCLUSIVE:
		p.buf.Eat()
		stmt.Kind = BeginExclusive
	}
	if p.buf.PeekIs(token.TRANSACTION) {
		p.buf.Eat()
		if p.buf.PeekIs(token.ID) {
			n, err := p.parseName()
			if err != nil {
				return nil, err
			}
			stmt.Name = &n
		}
	}
	return stmt, nil
}

func (p *Parser) parseCommit() (Stmt, error) {
	p.buf.Eat() // COMMIT or END
	if p.buf.PeekIs(token.TRANSACTION) {
		p.buf.Eat()
	}
	return &CommitStmt{}, nil
}

func (p *Parser) parseRollback() (Stmt, error) {
	p.buf.EatAssert(token.ROLLBACK)
	stmt := &RollbackStmt{}
	if p.buf.PeekIs(token.TRANSACTION) {
		p.buf.Eat()
		if p.buf.PeekIs(token.ID) {
			n, err := p.parseName()
			if err != nil {
				return nil, err
			}
			stmt.TxName = &n
		}
	}
	if p.buf.PeekIs(token.TO) {
		p.buf.Eat()
		if p.buf.PeekIs(token.SAVEPOINT) {
			p.buf.Eat()
		}
		n, err := p.parseName()
		if err != nil {
			return nil, err
		}
		stmt.SavepointName = &n
	}
	return stmt, nil
}

func (p *Parser) parseSavepoint() (Stmt, error) {
	p.buf.EatAssert(token.SAVEPOINT)
	n, err := p.parseName()
	if err != nil {
		return nil, err
	}
	return &SavepointStmt{Name: n}, nil
}

func (p *Parser) parseRelease() (Stmt, error) {
	p.buf.EatAssert(token.RELEASE)
	if p.buf.PeekIs(token.SAVEPOINT) {
		p.buf.Eat()
	}
	n, err := p.parseName()
	if err != nil {
		return nil, err
	}
	return &ReleaseStmt{Name: n}, nil
}

func (p *Parser) parseAnalyze() (Stmt, error) {
	p.buf.EatAssert(token.ANALYZE)
	stmt := &AnalyzeStmt{}
	if p.buf.PeekIs(token.ID) {
		qn, err := p.parseQualifiedName()
		if err != nil {
			return nil, err
		}
		stmt.Name = &qn
	}
	return stmt, nil
}

func (p *Parser) parseReindex() (Stmt, error) {
	p.buf.EatAssert(token.REINDEX)
	stmt := &ReindexStmt{}
	if p.buf.PeekIs(token.ID) {
		qn, err := p.parseQualifiedName()
		if err != nil {
			return nil, err
		}
		stmt.Name = &qn
	}
	return stmt, nil
}

func (p *Parser) parseAttach() (Stmt, error) {
	p.buf.EatAssert(token.ATTACH)
	if p.buf.PeekIs(token.DATABASE) {
		p.buf.Eat()
	}
	e, err := p.parseExpr(precOr)
	if err != nil {
		return nil, err
	}
	if _, err := p.buf.EatExpect(token.AS); err != nil {
		return nil, err
	}
	n, err := p.parseName()
	if err != nil {
		return nil, err
	}
	return &AttachStmt{Expr: e, Name: n}, nil
}

func (p *Parser) parseDetach() (Stmt, error) {
	p.buf.EatAssert(token.DETACH)
	if p.buf.PeekIs(token.DATABASE) {
		p.buf.Eat()
	}
	n, err := p.parseName()
	if err != nil {
		return nil, err
	}
	return &DetachStmt{Name: n}, nil
}

func (p *Parser) parseVacuum() (Stmt, error) {
	p.buf.EatAssert(token.VACUUM)
	stmt := &VacuumStmt{}
	if p.buf.PeekIs(token.ID) {
		n, err := p.parseName()
		if err != nil {
			return nil, err
		}
		stmt.Schema = &n
	}
	if p.buf.PeekIs(token.INTO) {
		p.buf.Eat()
		e, err := p.parseExpr(precOr)
		if err != nil {
			return nil, err
		}
		stmt.Into = e
	}
	return stmt, nil
}

// parsePragma parses `PRAGMA [schema.]name [= value | (value)]`. A bare
// `PRAGMA name` with no value is the query form; this parser stores it
// as a PragmaStmt with a nil Value exactly like that form's grammar
// shape, leaving evaluation (querying vs. setting) to a later stage.
func (p *Parser) parsePragma() (Stmt, error) {
	p.buf.EatAssert(token.PRAGMA)
	name, err := p.parseQualifiedName()
	if err != nil {
		return nil, err
	}
	stmt := &PragmaStmt{Name: name}
	switch {
	case p.buf.PeekIs(token.EQ):
		p.buf.Eat()
		v, err := p.parsePragmaValue()
		if err != nil {
			return nil, err
		}
		stmt.Value = &PragmaValue{Form: PragmaValueEq, Value: v}
	case p.buf.PeekIs(token.LP):
		p.buf.Eat()
		v, err := p.parsePragmaValue()
		if err != nil {
			return nil, err
		}
		if _, err := p.buf.EatExpect(token.RP); err != nil {
			return nil, err
		}
		stmt.Value = &PragmaValue{Form: PragmaValueCall, Value: v}
	}
	return stmt, nil
}

// parsePragmaValue accepts a signed numeric literal, a string, or a bare
// identifier (PRAGMA values like `off`/`full`/`wal` are unquoted names,
// not expressions in the usual sense, but fit the Expr slot as an
// IdExpr/LiteralExpr without semantic interpretation here). The keywords
// ON and DEFAULT are taken as bare identifiers in this position.
func (p *Parser) parsePragmaValue() (Expr, error) {
	t := p.buf.Peek()
	switch t.Type {
	case token.ON, token.DEFAULT:
		p.buf.Eat()
		return &IdExpr{Name: IdentName(string(t.Value))}, nil
	case token.PLUS, token.MINUS:
		return p.parseExpr(precUnary)
	default:
		return p.parseExpr(precOr)
	}
}

func (p *Parser) parseAlterTable() (Stmt, error) {
	p.buf.EatAssert(token.ALTER)
	if _, err := p.buf.EatExpect(token.TABLE); err != nil {
		return nil, err
	}
	name, err := p.parseQualifiedName()
	if err != nil {
		return nil, err
	}
	stmt := &AlterTableStmt{Name: name}

	switch p.buf.Peek().Type {
	case token.RENAME:
		p.buf.Eat()
		switch {
		case p.buf.PeekIs(token.TO):
			p.buf.Eat()
			n, err := p.parseName()
			if err != nil {
				return nil, err
			}
			stmt.Body = &RenameTableBody{NewName: n}
		case p.buf.PeekIs(token.COLUMNKW):
			p.buf.Eat()
			old, err := p.parseName()
			if err != nil {
				return nil, err
			}
			if _, err := p.buf.EatExpect(token.TO); err != nil {
				return nil, err
			}
			newName, err := p.parseName()
			if err != nil {
				return nil, err
			}
			stmt.Body = &RenameColumnBody{Old: old, New: newName}
		default:
			old, err := p.parseName()
			if err != nil {
				return nil, err
			}
			if _, err := p.buf.EatExpect(token.TO); err != nil {
				return nil, err
			}
			newName, err := p.parseName()
			if err != nil {
				return nil, err
			}
			stmt.Body = &RenameColumnBody{Old: old, New: newName}
		}
	case token.ADD:
		p.buf.Eat()
		if p.buf.PeekIs(token.COLUMNKW) {
			p.buf.Eat()
		}
		col, err := p.parseColumnDef()
		if err != nil {
			return nil, err
		}
		stmt.Body = &AddColumnBody{Column: col}
	case token.DROP:
		p.buf.Eat()
		if p.buf.PeekIs(token.COLUMNKW) {
			p.buf.Eat()
		}
		n, err := p.parseName()
		if err != nil {
			return nil, err
		}
		stmt.Body = &DropColumnBody{Name: n}
	default:
		t := p.buf.Peek()
		return nil, unexpectedToken(t.Pos, t.Type, token.RENAME, token.ADD, token.DROP)
	}
	return stmt, nil
}

func (p *Parser) parseDrop() (Stmt, error) {
	p.buf.EatAssert(token.DROP)
	switch p.buf.Peek().Type {
	case token.TABLE:
		p.buf.Eat()
		ifExists, err := p.parseIfExists()
		if err != nil {
			return nil, err
		}
		name, err := p.parseQualifiedName()
		if err != nil {
			return nil, err
		}
		return &DropTableStmt{IfExists: ifExists, Name: name}, nil
	case token.INDEX:
		p.buf.Eat()
		ifExists, err := p.parseIfExists()
		if err != nil {
			return nil, err
		}
		name, err := p.parseQualifiedName()
		if err != nil {
			return nil, err
		}
		return &DropIndexStmt{IfExists: ifExists, Name: name}, nil
	case token.VIEW:
		p.buf.Eat()
		ifExists, err := p.parseIfExists()
		if err != nil {
			return nil, err
		}
		name, err := p.parseQualifiedName()
		if err != nil {
			return nil, err
		}
		return &DropViewStmt{IfExists: ifExists, Name: name}, nil
	case token.TRIGGER:
		p.buf.Eat()
		ifExists, err := p.parseIfExists()
		if err != nil {
			return nil, err
		}
		name, err := p.parseQualifiedName()
		if err != nil {
			return nil, err
		}
		return &DropTriggerStmt{IfExists: ifExists, Name: name}, nil
	default:
		t := p.buf.Peek()
		return nil, unexpectedToken(t.Pos, t.Type, token.TABLE, token.INDEX, token.VIEW, token.TRIGGER)
	}
}
