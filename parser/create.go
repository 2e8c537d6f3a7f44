package parser

import (
	"github.com/litesql/litesql/internal/token"
)

// parseCreate dispatches on CREATE's second token: TABLE, UNIQUE INDEX,
// INDEX, [TEMP] VIEW, [TEMP] TRIGGER, or VIRTUAL TABLE.
func (p *Parser) parseCreate() (Stmt, error) {
	p.buf.EatAssert(token.CREATE)
	temp := false
	if p.buf.PeekIs(token.TEMP) {
		p.buf.Eat()
		temp = true
	}
	switch p.buf.Peek().Type {
	case token.TABLE:
		return p.parseCreateTable(temp)
	case token.VIRTUAL:
		if temp {
			t := p.buf.Peek()
			return nil, customErrorf(t.Pos, "CREATE VIRTUAL TABLE cannot be TEMP")
		}
		return p.parseCreateVirtualTable()
	case token.VIEW:
		return p.parseCreateView(temp)
	case token.TRIGGER:
		return p.parseCreateTrigger(temp)
	case token.UNIQUE:
		if temp {
			t := p.buf.Peek()
			return nil, customErrorf(t.Pos, "CREATE UNIQUE INDEX cannot be TEMP")
		}
		p.buf.Eat()
		if _, err := p.buf.EatExpect(token.INDEX); err != nil {
			return nil, err
		}
		return p.parseCreateIndex(true)
	case token.INDEX:
		if temp {
			t := p.buf.Peek()
			return nil, customErrorf(t.Pos, "CREATE INDEX cannot be TEMP")
		}
		p.buf.Eat()
		return p.parseCreateIndex(false)
	default:
		t := p.buf.Peek()
		return nil, unexpectedToken(t.Pos, t.Type, token.TABLE, token.VIRTUAL, token.VIEW, token.TRIGGER, token.UNIQUE, token.INDEX)
	}
}

func (p *Parser) parseIfNotExists() (bool, error) {
	if !p.buf.PeekIs(token.IF) {
		return false, nil
	}
	p.buf.Eat()
	if _, err := p.buf.EatExpect(token.NOT); err != nil {
		return false, err
	}
	if _, err := p.buf.EatExpect(token.EXISTS); err != nil {
		return false, err
	}
	return true, nil
}

func (p *Parser) parseIfExists() (bool, error) {
	if !p.buf.PeekIs(token.IF) {
		return false, nil
	}
	p.buf.Eat()
	if _, err := p.buf.EatExpect(token.EXISTS); err != nil {
		return false, err
	}
	return true, nil
}

func (p *Parser) parseCreateTable(temp bool) (Stmt, error) {
	p.buf.EatAssert(token.TABLE)
	ifNotExists, err := p.parseIfNotExists()
	if err != nil {
		return nil, err
	}
	name, err := p.parseQualifiedName()
	if err != nil {
		return nil, err
	}
	stmt := &CreateTableStmt{Temporary: temp, IfNotExists: ifNotExists, Name: name}

	if p.buf.PeekIs(token.AS) {
		p.buf.Eat()
		sel, err := p.parseSelect()
		if err != nil {
			return nil, err
		}
		stmt.Body.AsSelect = sel
		return stmt, nil
	}

	if _, err := p.buf.EatExpect(token.LP); err != nil {
		return nil, err
	}
	for {
		if isTableConstraintStart(p.buf.Peek().Type) {
			tc, err := p.parseTableConstraint()
			if err != nil {
				return nil, err
			}
			stmt.Body.Constraints = append(stmt.Body.Constraints, tc)
		} else {
			col, err := p.parseColumnDef()
			if err != nil {
				return nil, err
			}
			stmt.Body.Columns = append(stmt.Body.Columns, col)
		}
		if p.buf.PeekIs(token.COMMA) {
			p.buf.Eat()
			continue
		}
		break
	}
	if _, err := p.buf.EatExpect(token.RP); err != nil {
		return nil, err
	}

	for {
		switch {
		case p.buf.PeekIs(token.WITHOUT):
			p.buf.Eat()
			n, err := p.buf.EatExpect(token.ID)
			if err != nil {
				return nil, err
			}
			if !equalFoldBytes(n.Value, "ROWID") {
				return nil, customErrorf(n.Pos, "expected ROWID after WITHOUT")
			}
			stmt.Body.Options |= OptWithoutRowid
		case p.buf.PeekIs(token.STRICT):
			p.buf.Eat()
			stmt.Body.Options |= OptStrict
		default:
			return stmt, nil
		}
		if p.buf.PeekIs(token.COMMA) {
			p.buf.Eat()
			continue
		}
		return stmt, nil
	}
}

func isTableConstraintStart(t token.Type) bool {
	switch t {
	case token.CONSTRAINT, token.PRIMARY, token.UNIQUE, token.CHECK, token.FOREIGN:
		return true
	}
	return false
}

func (p *Parser) parseTableConstraint() (TableConstraint, error) {
	var tc TableConstraint
	if p.buf.PeekIs(token.CONSTRAINT) {
		p.buf.Eat()
		n, err := p.parseName()
		if err != nil {
			return tc, err
		}
		tc.Name = &n
	}
	switch p.buf.Peek().Type {
	case token.PRIMARY:
		p.buf.Eat()
		if _, err := p.buf.EatExpect(token.KEY); err != nil {
			return tc, err
		}
		cols, err := p.parseIndexedColumnList()
		if err != nil {
			return tc, err
		}
		action, err := p.parseOnConflict()
		if err != nil {
			return tc, err
		}
		tc.Spec = &PrimaryKeyTableConstraint{Columns: cols, OnConflict: action}
	case token.UNIQUE:
		p.buf.Eat()
		cols, err := p.parseIndexedColumnList()
		if err != nil {
			return tc, err
		}
		action, err := p.parseOnConflict()
		if err != nil {
			return tc, err
		}
		tc.Spec = &UniqueTableConstraint{Columns: cols, OnConflict: action}
	case token.CHECK:
		p.buf.Eat()
		if _, err := p.buf.EatExpect(token.LP); err != nil {
			return tc, err
		}
		e, err := p.parseExpr(precOr)
		if err != nil {
			return tc, err
		}
		if _, err := p.buf.EatExpect(token.RP); err != nil {
			return tc, err
		}
		tc.Spec = &CheckTableConstraint{Expr: e}
	case token.FOREIGN:
		p.buf.Eat()
		if _, err := p.buf.EatExpect(token.KEY); err != nil {
			return tc, err
		}
		cols, err := p.parseNameList()
		if err != nil {
			return tc, err
		}
		clause, err := p.parseForeignKeyClause()
		if err != nil {
			return tc, err
		}
		tc.Spec = &ForeignKeyTableConstraint{Columns: cols, Clause: clause}
	default:
		t := p.buf.Peek()
		return tc, unexpectedToken(t.Pos, t.Type, token.PRIMARY, token.UNIQUE, token.CHECK, token.FOREIGN)
	}
	return tc, nil
}

func (p *Parser) parseForeignKeyClause() (ForeignKeyClause, error) {
	var fk ForeignKeyClause
	if _, err := p.buf.EatExpect(token.REFERENCES); err != nil {
		return fk, err
	}
	table, err := p.parseQualifiedName()
	if err != nil {
		return fk, err
	}
	fk.Table = table
	if p.buf.PeekIs(token.LP) {
		cols, err := p.parseNameList()
		if err != nil {
			return fk, err
		}
		fk.Columns = cols
	}
	for {
		switch {
		case p.buf.PeekIs(token.ON):
			p.buf.Eat()
			var event RefEvent
			switch p.buf.Peek().Type {
			case token.DELETE:
				event = OnDelete
			case token.UPDATE:
				event = OnUpdate
			default:
				t := p.buf.Peek()
				return fk, unexpectedToken(t.Pos, t.Type, token.DELETE, token.UPDATE)
			}
			p.buf.Eat()
			var action RefActionKind
			switch p.buf.Peek().Type {
			case token.SET:
				p.buf.Eat()
				switch p.buf.Peek().Type {
				case token.NULL:
					p.buf.Eat()
					action = RefSetNull
				case token.DEFAULT:
					p.buf.Eat()
					action = RefSetDefault
				default:
					t := p.buf.Peek()
					return fk, unexpectedToken(t.Pos, t.Type, token.NULL, token.DEFAULT)
				}
			case token.CASCADE:
				p.buf.Eat()
				action = RefCascade
			case token.RESTRICT:
				p.buf.Eat()
				action = RefRestrict
			case token.NO:
				p.buf.Eat()
				if _, err := p.buf.EatExpect(token.ACTION); err != nil {
					return fk, err
				}
				action = RefNoAction
			default:
				t := p.buf.Peek()
				return fk, unexpectedToken(t.Pos, t.Type, token.SET, token.CASCADE, token.RESTRICT, token.NO)
			}
			fk.Actions = append(fk.Actions, RefAction{Event: event, Action: action})
			continue
		case p.buf.PeekIs(token.LIKE_KW) && equalFoldBytes(p.buf.Peek().Value, "MATCH"):
			p.buf.Eat()
			n, err := p.parseName()
			if err != nil {
				return fk, err
			}
			fk.Match = &n
			continue
		case p.buf.PeekIs(token.DEFERRABLE):
			d, err := p.parseDeferrable()
			if err != nil {
				return fk, err
			}
			fk.Deferrable = d
			return fk, nil
		case p.buf.PeekIs(token.NOT):
			d, err := p.parseDeferrable()
			if err != nil {
				return fk, err
			}
			fk.Deferrable = d
			return fk, nil
		default:
			return fk, nil
		}
	}
}

func (p *Parser) parseDeferrable() (*Deferrable, error) {
	d := &Deferrable{}
	if p.buf.PeekIs(token.NOT) {
		p.buf.Eat()
		d.Not = true
	}
	if _, err := p.buf.EatExpect(token.DEFERRABLE); err != nil {
		return nil, err
	}
	if p.buf.PeekIs(token.INITIALLY) {
		p.buf.Eat()
		switch p.buf.Peek().Type {
		case token.DEFERRED:
			p.buf.Eat()
			d.Initially = InitiallyDeferred
		case token.IMMEDIATE:
			p.buf.Eat()
			d.Initially = InitiallyImmediate
		default:
			t := p.buf.Peek()
			return nil, unexpectedToken(t.Pos, t.Type, token.DEFERRED, token.IMMEDIATE)
		}
	}
	return d, nil
}

func (p *Parser) parseColumnDef() (ColumnDef, error) {
	name, err := p.parseName()
	if err != nil {
		return ColumnDef{}, err
	}
	col := ColumnDef{Name: name}
	if p.buf.PeekIs(token.ID) {
		typ, err := p.parseTypeName()
		if err != nil {
			return col, err
		}
		col.Type = &typ
	}
	for isColumnConstraintStart(p.buf.Peek().Type) {
		cc, err := p.parseColumnConstraint()
		if err != nil {
			return col, err
		}
		col.Constraints = append(col.Constraints, cc)
	}
	return col, nil
}

func isColumnConstraintStart(t token.Type) bool {
	switch t {
	case token.CONSTRAINT, token.PRIMARY, token.NOT, token.NULL, token.UNIQUE,
		token.CHECK, token.DEFAULT, token.COLLATE, token.REFERENCES, token.GENERATED, token.AS:
		return true
	}
	return false
}

func (p *Parser) parseColumnConstraint() (ColumnConstraint, error) {
	var cc ColumnConstraint
	if p.buf.PeekIs(token.CONSTRAINT) {
		p.buf.Eat()
		n, err := p.parseName()
		if err != nil {
			return cc, err
		}
		cc.Name = &n
	}
	switch p.buf.Peek().Type {
	case token.PRIMARY:
		p.buf.Eat()
		if _, err := p.buf.EatExpect(token.KEY); err != nil {
			return cc, err
		}
		order, err := p.parseSortOrder()
		if err != nil {
			return cc, err
		}
		action, err := p.parseOnConflict()
		if err != nil {
			return cc, err
		}
		auto := false
		if p.buf.PeekIs(token.AUTOINCR) {
			p.buf.Eat()
			auto = true
		}
		cc.Spec = &PrimaryKeyConstraint{Order: order, OnConflict: action, Autoincrement: auto}
	case token.NOT:
		p.buf.Eat()
		if _, err := p.buf.EatExpect(token.NULL); err != nil {
			return cc, err
		}
		action, err := p.parseOnConflict()
		if err != nil {
			return cc, err
		}
		cc.Spec = &NullConstraint{Not: true, OnConflict: action}
	case token.NULL:
		p.buf.Eat()
		action, err := p.parseOnConflict()
		if err != nil {
			return cc, err
		}
		cc.Spec = &NullConstraint{Not: false, OnConflict: action}
	case token.UNIQUE:
		p.buf.Eat()
		action, err := p.parseOnConflict()
		if err != nil {
			return cc, err
		}
		cc.Spec = &UniqueConstraint{OnConflict: action}
	case token.CHECK:
		p.buf.Eat()
		if _, err := p.buf.EatExpect(token.LP); err != nil {
			return cc, err
		}
		e, err := p.parseExpr(precOr)
		if err != nil {
			return cc, err
		}
		if _, err := p.buf.EatExpect(token.RP); err != nil {
			return cc, err
		}
		cc.Spec = &CheckConstraint{Expr: e}
	case token.DEFAULT:
		p.buf.Eat()
		var e Expr
		if p.buf.PeekIs(token.LP) {
			p.buf.Eat()
			ex, err := p.parseExpr(precOr)
			if err != nil {
				return cc, err
			}
			if _, err := p.buf.EatExpect(token.RP); err != nil {
				return cc, err
			}
			e = ex
		} else {
			ex, err := p.parsePrefix()
			if err != nil {
				return cc, err
			}
			e = ex
		}
		cc.Spec = &DefaultConstraint{Expr: e}
	case token.COLLATE:
		p.buf.Eat()
		n, err := p.parseName()
		if err != nil {
			return cc, err
		}
		cc.Spec = &CollateConstraint{Name: n}
	case token.REFERENCES:
		clause, err := p.parseForeignKeyClause()
		if err != nil {
			return cc, err
		}
		cc.Spec = &ReferencesConstraint{Clause: clause}
	case token.GENERATED, token.AS:
		if p.buf.PeekIs(token.GENERATED) {
			p.buf.Eat()
			if _, err := p.buf.EatExpect(token.ALWAYS); err != nil {
				return cc, err
			}
		}
		if _, err := p.buf.EatExpect(token.AS); err != nil {
			return cc, err
		}
		if _, err := p.buf.EatExpect(token.LP); err != nil {
			return cc, err
		}
		e, err := p.parseExpr(precOr)
		if err != nil {
			return cc, err
		}
		if _, err := p.buf.EatExpect(token.RP); err != nil {
			return cc, err
		}
		gc := &GeneratedConstraint{Expr: e}
		if p.buf.PeekIs(token.ID, token.VIRTUAL) {
			t := p.buf.Peek()
			switch {
			case equalFoldBytes(t.Value, "STORED"):
				p.buf.Eat()
				stored := true
				gc.Stored = &stored
			case equalFoldBytes(t.Value, "VIRTUAL"):
				p.buf.Eat()
				stored := false
				gc.Stored = &stored
			}
		}
		cc.Spec = gc
	default:
		t := p.buf.Peek()
		return cc, unexpectedToken(t.Pos, t.Type, token.PRIMARY, token.NOT, token.NULL, token.UNIQUE, token.CHECK, token.DEFAULT, token.COLLATE, token.REFERENCES, token.GENERATED, token.AS)
	}
	return cc, nil
}

func (p *Parser) parseCreateIndex(unique bool) (Stmt, error) {
	ifNotExists, err := p.parseIfNotExists()
	if err != nil {
		return nil, err
	}
	name, err := p.parseQualifiedName()
	if err != nil {
		return nil, err
	}
	if _, err := p.buf.EatExpect(token.ON); err != nil {
		return nil, err
	}
	table, err := p.parseName()
	if err != nil {
		return nil, err
	}
	cols, err := p.parseIndexedColumnList()
	if err != nil {
		return nil, err
	}
	stmt := &CreateIndexStmt{Unique: unique, IfNotExists: ifNotExists, Name: name, Table: table, Columns: cols}
	if p.buf.PeekIs(token.WHERE) {
		p.buf.Eat()
		w, err := p.parseExpr(precOr)
		if err != nil {
			return nil, err
		}
		stmt.Where = w
	}
	return stmt, nil
}

func (p *Parser) parseCreateView(temp bool) (Stmt, error) {
	p.buf.EatAssert(token.VIEW)
	ifNotExists, err := p.parseIfNotExists()
	if err != nil {
		return nil, err
	}
	name, err := p.parseQualifiedName()
	if err != nil {
		return nil, err
	}
	stmt := &CreateViewStmt{Temporary: temp, IfNotExists: ifNotExists, Name: name}
	if p.buf.PeekIs(token.LP) {
		cols, err := p.parseNameList()
		if err != nil {
			return nil, err
		}
		stmt.Columns = cols
	}
	if _, err := p.buf.EatExpect(token.AS); err != nil {
		return nil, err
	}
	sel, err := p.parseSelect()
	if err != nil {
		return nil, err
	}
	stmt.Select = *sel
	return stmt, nil
}

func equalFoldBytes(b []byte, s string) bool {
	if len(b) != len(s) {
		return false
	}
	for i := 0; i < len(b); i++ {
		c := b[i]
		if c >= 'a' && c <= 'z' {
			c -= 'a' - 'A'
		}
		if c != s[i] {
			return false
		}
	}
	return true
}
