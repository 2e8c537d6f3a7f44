package parser

import (
	"strings"

	"github.com/litesql/litesql/internal/token"
)

// parseWith parses the `WITH [RECURSIVE] cte [, cte ...]` prefix shared
// by SELECT/VALUES/UPDATE/DELETE/INSERT.
func (p *Parser) parseWith() (*With, error) {
	p.buf.EatAssert(token.WITH)
	with := &With{}
	if p.buf.PeekIs(token.RECURSIVE) {
		p.buf.Eat()
		with.Recursive = true
	}
	for {
		cte, err := p.parseCommonTableExpr()
		if err != nil {
			return nil, err
		}
		with.Ctes = append(with.Ctes, cte)
		if p.buf.PeekIs(token.COMMA) {
			p.buf.Eat()
			continue
		}
		break
	}
	return with, nil
}

func (p *Parser) parseCommonTableExpr() (CommonTableExpr, error) {
	var cte CommonTableExpr
	name, err := p.parseName()
	if err != nil {
		return cte, err
	}
	cte.Name = name
	if p.buf.PeekIs(token.LP) {
		cols, err := p.parseNameList()
		if err != nil {
			return cte, err
		}
		cte.Columns = cols
	}
	if _, err := p.buf.EatExpect(token.AS); err != nil {
		return cte, err
	}
	switch {
	case p.buf.PeekIs(token.MATERIALIZED):
		p.buf.Eat()
		cte.Materialized = Materialized
	case p.buf.PeekIs(token.NOT):
		p.buf.Eat()
		if _, err := p.buf.EatExpect(token.MATERIALIZED); err != nil {
			return cte, err
		}
		cte.Materialized = NotMaterialized
	}
	if _, err := p.buf.EatExpect(token.LP); err != nil {
		return cte, err
	}
	sel, err := p.parseSelect()
	if err != nil {
		return cte, err
	}
	cte.Select = *sel
	if _, err := p.buf.EatExpect(token.RP); err != nil {
		return cte, err
	}
	return cte, nil
}

// parseSelect parses a full SELECT statement: optional WITH prefix (only
// when not already consumed by the caller), a compound select body, and
// the trailing ORDER BY / LIMIT clauses.
func (p *Parser) parseSelect() (*Select, error) {
	var with *With
	if p.buf.PeekIs(token.WITH) {
		w, err := p.parseWith()
		if err != nil {
			return nil, err
		}
		with = w
	}
	body, err := p.parseSelectBody()
	if err != nil {
		return nil, err
	}
	sel := &Select{With: with, Body: body}
	if p.buf.PeekIs(token.ORDER) {
		p.buf.Eat()
		if _, err := p.buf.EatExpect(token.BY); err != nil {
			return nil, err
		}
		terms, err := p.parseOrderingTermList()
		if err != nil {
			return nil, err
		}
		sel.OrderBy = terms
	}
	if p.buf.PeekIs(token.LIMIT) {
		limit, err := p.parseLimit()
		if err != nil {
			return nil, err
		}
		sel.Limit = limit
	}
	return sel, nil
}

func (p *Parser) parseLimit() (*Limit, error) {
	p.buf.Eat() // LIMIT
	first, err := p.parseExpr(precOr)
	if err != nil {
		return nil, err
	}
	limit := &Limit{Expr: first}
	switch {
	case p.buf.PeekIs(token.OFFSET):
		p.buf.Eat()
		off, err := p.parseExpr(precOr)
		if err != nil {
			return nil, err
		}
		limit.Offset = off
	case p.buf.PeekIs(token.COMMA):
		// `LIMIT x, y` means `LIMIT y OFFSET x` — the first number given
		// is the offset, the second the row count, the reverse of the
		// `LIMIT x OFFSET y` spelling.
		p.buf.Eat()
		second, err := p.parseExpr(precOr)
		if err != nil {
			return nil, err
		}
		limit.Expr = second
		limit.Offset = first
	}
	return limit, nil
}

// parseSelectBody parses one or more SelectCore productions joined by
// UNION [ALL] / INTERSECT / EXCEPT, left-associative in source order.
func (p *Parser) parseSelectBody() (SelectBody, error) {
	first, err := p.parseSelectCore()
	if err != nil {
		return SelectBody{}, err
	}
	body := SelectBody{Select: first}
	for {
		var op CompoundOp
		switch {
		case p.buf.PeekIs(token.UNION):
			p.buf.Eat()
			if p.buf.PeekIs(token.ALL) {
				p.buf.Eat()
				op = CompoundUnionAll
			} else {
				op = CompoundUnion
			}
		case p.buf.PeekIs(token.INTERSECT):
			p.buf.Eat()
			op = CompoundIntersect
		case p.buf.PeekIs(token.EXCEPT):
			p.buf.Eat()
			op = CompoundExcept
		default:
			return body, nil
		}
		core, err := p.parseSelectCore()
		if err != nil {
			return body, err
		}
		body.Compounds = append(body.Compounds, CompoundSelect{Op: op, Select: core})
	}
}

func (p *Parser) parseSelectCore() (SelectCore, error) {
	if p.buf.PeekIs(token.VALUES) {
		p.buf.Eat()
		var rows [][]Expr
		for {
			if _, err := p.buf.EatExpect(token.LP); err != nil {
				return SelectCore{}, err
			}
			var row []Expr
			for {
				e, err := p.parseExpr(precOr)
				if err != nil {
					return SelectCore{}, err
				}
				row = append(row, e)
				if p.buf.PeekIs(token.COMMA) {
					p.buf.Eat()
					continue
				}
				break
			}
			if _, err := p.buf.EatExpect(token.RP); err != nil {
				return SelectCore{}, err
			}
			rows = append(rows, row)
			if p.buf.PeekIs(token.COMMA) {
				p.buf.Eat()
				continue
			}
			break
		}
		return SelectCore{Values: rows}, nil
	}

	if _, err := p.buf.EatExpect(token.SELECT); err != nil {
		return SelectCore{}, err
	}
	var core SelectCore
	switch {
	case p.buf.PeekIs(token.DISTINCT):
		p.buf.Eat()
		core.Distinctness = DistinctnessDistinct
	case p.buf.PeekIs(token.ALL):
		p.buf.Eat()
		core.Distinctness = DistinctnessAll
	}

	cols, err := p.parseResultColumnList()
	if err != nil {
		return core, err
	}
	core.Columns = cols

	if p.buf.PeekIs(token.FROM) {
		p.buf.Eat()
		from, err := p.parseFromClause()
		if err != nil {
			return core, err
		}
		core.From = from
	}
	if p.buf.PeekIs(token.WHERE) {
		p.buf.Eat()
		w, err := p.parseExpr(precOr)
		if err != nil {
			return core, err
		}
		core.Where = w
	}
	if p.buf.PeekIs(token.GROUP) {
		p.buf.Eat()
		if _, err := p.buf.EatExpect(token.BY); err != nil {
			return core, err
		}
		for {
			e, err := p.parseExpr(precOr)
			if err != nil {
				return core, err
			}
			core.GroupBy = append(core.GroupBy, e)
			if p.buf.PeekIs(token.COMMA) {
				p.buf.Eat()
				continue
			}
			break
		}
		if p.buf.PeekIs(token.HAVING) {
			p.buf.Eat()
			h, err := p.parseExpr(precOr)
			if err != nil {
				return core, err
			}
			core.Having = h
		}
	}
	if p.buf.PeekIs(token.WINDOW) {
		p.buf.Eat()
		for {
			name, err := p.parseName()
			if err != nil {
				return core, err
			}
			if _, err := p.buf.EatExpect(token.AS); err != nil {
				return core, err
			}
			def, err := p.parseWindowDef()
			if err != nil {
				return core, err
			}
			core.Windows = append(core.Windows, NamedWindow{Name: name, Def: def})
			if p.buf.PeekIs(token.COMMA) {
				p.buf.Eat()
				continue
			}
			break
		}
	}
	return core, nil
}

func (p *Parser) parseResultColumnList() ([]ResultColumn, error) {
	var cols []ResultColumn
	for {
		col, err := p.parseResultColumn()
		if err != nil {
			return nil, err
		}
		cols = append(cols, col)
		if p.buf.PeekIs(token.COMMA) {
			p.buf.Eat()
			continue
		}
		break
	}
	return cols, nil
}

func (p *Parser) parseResultColumn() (ResultColumn, error) {
	if p.buf.PeekIs(token.STAR) {
		p.buf.Eat()
		return ResultColumn{Star: true}, nil
	}
	// `table.*` requires one token of lookahead past the identifier to
	// disambiguate from `table.column`.
	if p.buf.PeekIs(token.ID) {
		matched := false
		var tableName Name
		_ = p.buf.Mark(func() error {
			n, err := p.parseName()
			if err != nil {
				return err
			}
			if !p.buf.PeekIs(token.DOT) {
				return customErrorf(0, "not a table.* form")
			}
			p.buf.Eat()
			if !p.buf.PeekIs(token.STAR) {
				return customErrorf(0, "not a table.* form")
			}
			p.buf.Eat()
			tableName = n
			matched = true
			return nil
		})
		if matched {
			return ResultColumn{TableStar: &tableName}, nil
		}
	}
	e, err := p.parseExpr(precOr)
	if err != nil {
		return ResultColumn{}, err
	}
	col := ResultColumn{Expr: e}
	switch {
	case p.buf.PeekIs(token.AS):
		p.buf.Eat()
		n, err := p.parseName()
		if err != nil {
			return col, err
		}
		col.Alias = &n
	case p.buf.PeekIs(token.ID):
		n, err := p.parseName()
		if err != nil {
			return col, err
		}
		col.Alias = &n
	}
	return col, nil
}

func (p *Parser) parseFromClause() (*FromClause, error) {
	first, err := p.parseSelectTable()
	if err != nil {
		return nil, err
	}
	from := &FromClause{Select: first}
	for {
		op, ok, err := p.parseJoinOperator()
		if err != nil {
			return nil, err
		}
		if !ok {
			break
		}
		table, err := p.parseSelectTable()
		if err != nil {
			return nil, err
		}
		var constraint *JoinConstraint
		switch {
		case p.buf.PeekIs(token.ON):
			p.buf.Eat()
			e, err := p.parseExpr(precOr)
			if err != nil {
				return nil, err
			}
			constraint = &JoinConstraint{On: e}
		case p.buf.PeekIs(token.USING):
			p.buf.Eat()
			names, err := p.parseNameList()
			if err != nil {
				return nil, err
			}
			constraint = &JoinConstraint{Using: names}
		}
		from.Joins = append(from.Joins, JoinedSelectTable{Operator: op, Table: table, Constraint: constraint})
	}
	return from, nil
}

// parseJoinOperator recognizes a comma join or a `[join-type] JOIN`
// sequence. JOIN_KW tokens (NATURAL, LEFT, RIGHT, FULL, INNER, CROSS,
// OUTER) are compared case-insensitively by spelling and OR-combined
// into the JoinType bit-set; illegal combinations (e.g. `INNER OUTER
// JOIN`, OUTER without LEFT/RIGHT/FULL) surface as a Custom parse error.
// Join-type keywords not followed by JOIN (e.g. a bare `NATURAL`) fail
// with UnexpectedToken.
func (p *Parser) parseJoinOperator() (JoinOperator, bool, error) {
	if p.buf.PeekIs(token.COMMA) {
		p.buf.Eat()
		return JoinOperator{Kind: JoinComma}, true, nil
	}
	if p.buf.PeekIs(token.JOIN) {
		p.buf.Eat()
		return JoinOperator{Kind: JoinTyped}, true, nil
	}
	if !p.buf.PeekIs(token.JOIN_KW) {
		return JoinOperator{}, false, nil
	}
	var jt JoinType
	seen := make(map[string]bool)
	for p.buf.PeekIs(token.JOIN_KW) {
		t := p.buf.Eat()
		word := strings.ToUpper(string(t.Value))
		if seen[word] {
			return JoinOperator{}, false, customErrorf(t.Pos, "duplicate join-type keyword %q", t.Value)
		}
		seen[word] = true
		bit, err := joinTypeBit(t)
		if err != nil {
			return JoinOperator{}, false, err
		}
		jt |= bit
	}
	if err := validateJoinType(jt); err != nil {
		return JoinOperator{}, false, err
	}
	if _, err := p.buf.EatExpect(token.JOIN); err != nil {
		return JoinOperator{}, false, err
	}
	return JoinOperator{Kind: JoinTyped, Type: jt}, true, nil
}

// joinTypeBit maps a single JOIN_KW keyword to its bit-set value. The
// mapping is composite, not bare: LEFT and RIGHT each imply OUTER, FULL
// implies both directions plus OUTER, and CROSS implies INNER, matching
// how real SQLite's grammar folds these keywords together before the
// join-type is validated.
func joinTypeBit(t token.Token) (JoinType, error) {
	switch strings.ToUpper(string(t.Value)) {
	case "NATURAL":
		return JoinNatural, nil
	case "LEFT":
		return JoinLeft | JoinOuter, nil
	case "RIGHT":
		return JoinRight | JoinOuter, nil
	case "FULL":
		return JoinLeft | JoinRight | JoinOuter, nil
	case "INNER":
		return JoinInner, nil
	case "CROSS":
		return JoinInner | JoinCross, nil
	case "OUTER":
		return JoinOuter, nil
	default:
		return 0, customErrorf(t.Pos, "unrecognized join-type keyword %q", t.Value)
	}
}

// validateJoinType rejects the two combinations real SQLite also
// rejects: INNER combined with OUTER, and OUTER without LEFT or RIGHT
// to anchor it (bare OUTER JOIN, with no FULL/LEFT/RIGHT).
func validateJoinType(jt JoinType) error {
	if jt.Has(JoinInner) && jt.Has(JoinOuter) {
		return customErrorf(0, "INNER and OUTER cannot combine")
	}
	if jt.Has(JoinOuter) && !jt.Has(JoinLeft) && !jt.Has(JoinRight) {
		return customErrorf(0, "OUTER join requires LEFT, RIGHT or FULL")
	}
	return nil
}

func (p *Parser) parseSelectTable() (SelectTable, error) {
	if p.buf.PeekIs(token.LP) {
		p.buf.Eat()
		if p.buf.PeekIs(token.SELECT, token.VALUES, token.WITH) {
			sel, err := p.parseSelect()
			if err != nil {
				return SelectTable{}, err
			}
			if _, err := p.buf.EatExpect(token.RP); err != nil {
				return SelectTable{}, err
			}
			st := SelectTable{Kind: STSelect, Select: sel}
			alias, err := p.parseOptionalAlias()
			if err != nil {
				return st, err
			}
			st.Alias = alias
			return st, nil
		}
		from, err := p.parseFromClause()
		if err != nil {
			return SelectTable{}, err
		}
		if _, err := p.buf.EatExpect(token.RP); err != nil {
			return SelectTable{}, err
		}
		return SelectTable{Kind: STSub, From: from}, nil
	}

	qn, err := p.parseQualifiedName()
	if err != nil {
		return SelectTable{}, err
	}
	if p.buf.PeekIs(token.LP) {
		p.buf.Eat()
		var args []Expr
		if !p.buf.PeekIs(token.RP) {
			for {
				e, err := p.parseExpr(precOr)
				if err != nil {
					return SelectTable{}, err
				}
				args = append(args, e)
				if p.buf.PeekIs(token.COMMA) {
					p.buf.Eat()
					continue
				}
				break
			}
		}
		if _, err := p.buf.EatExpect(token.RP); err != nil {
			return SelectTable{}, err
		}
		st := SelectTable{Kind: STTableCall, Name: qn, Args: args}
		alias, err := p.parseOptionalAlias()
		if err != nil {
			return st, err
		}
		st.Alias = alias
		return st, nil
	}

	st := SelectTable{Kind: STTable, Name: qn}
	alias, err := p.parseOptionalAlias()
	if err != nil {
		return st, err
	}
	st.Alias = alias

	if p.buf.PeekIs(token.INDEXED) {
		p.buf.Eat()
		if _, err := p.buf.EatExpect(token.BY); err != nil {
			return st, err
		}
		name, err := p.parseName()
		if err != nil {
			return st, err
		}
		st.Indexed = &IndexedBy{Kind: IndexedByName, Name: &name}
	} else if p.buf.PeekIs(token.NOT) {
		p.buf.Eat()
		if _, err := p.buf.EatExpect(token.INDEXED); err != nil {
			return st, err
		}
		st.Indexed = &IndexedBy{Kind: NotIndexed}
	}
	return st, nil
}

func (p *Parser) parseOptionalAlias() (*Name, error) {
	switch {
	case p.buf.PeekIs(token.AS):
		p.buf.Eat()
		n, err := p.parseName()
		if err != nil {
			return nil, err
		}
		return &n, nil
	case p.buf.PeekIs(token.ID):
		n, err := p.parseName()
		if err != nil {
			return nil, err
		}
		return &n, nil
	}
	return nil, nil
}

func (p *Parser) parseIndexedColumnList() ([]IndexedColumn, error) {
	if _, err := p.buf.EatExpect(token.LP); err != nil {
		return nil, err
	}
	var cols []IndexedColumn
	for {
		col, err := p.parseIndexedColumn()
		if err != nil {
			return nil, err
		}
		cols = append(cols, col)
		if p.buf.PeekIs(token.COMMA) {
			p.buf.Eat()
			continue
		}
		break
	}
	if _, err := p.buf.EatExpect(token.RP); err != nil {
		return nil, err
	}
	return cols, nil
}

func (p *Parser) parseIndexedColumn() (IndexedColumn, error) {
	e, err := p.parseExpr(precOr)
	if err != nil {
		return IndexedColumn{}, err
	}
	col := IndexedColumn{Expr: e}
	if p.buf.PeekIs(token.COLLATE) {
		p.buf.Eat()
		name, err := p.parseName()
		if err != nil {
			return col, err
		}
		col.Collate = &name
	}
	order, err := p.parseSortOrder()
	if err != nil {
		return col, err
	}
	col.Order = order
	return col, nil
}
