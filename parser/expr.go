package parser

import (
	"strings"

	"github.com/litesql/litesql/internal/token"
)

// Precedence levels, highest-binding first, matching spec §4.4's 11-level
// table. Level 5 (ESCAPE) has no entry here: it is consumed inline by the
// LIKE-family production at the operator's own precedence, never as an
// independent binding in the main loop.
const (
	precOr      = 0
	precAnd     = 1
	precNot     = 2 // prefix NOT; handled in parsePrefix, not the infix loop
	precCmp     = 3
	precRel     = 4
	precBit     = 6
	precAdd     = 7
	precMul     = 8
	precConcat  = 9
	precCollate = 10
	precUnary   = 11 // unary ~ + -; handled in parsePrefix
)

// ParseExpr parses a single expression from the start of the remaining
// input, for callers (e.g. evaluating a stored CHECK/DEFAULT/index
// expression) that want just an Expr rather than a full statement.
func (p *Parser) ParseExpr() (Expr, error) {
	return p.parseExpr(precOr)
}

// parseExpr is the Pratt loop: parse one operand, then repeatedly consume
// infix/postfix/ternary operators whose precedence is >= minPrec,
// recursing with prec+1 for the right operand of each left-associative
// binary operator so that same-level operators stay left-associative.
func (p *Parser) parseExpr(minPrec int) (Expr, error) {
	left, err := p.parsePrefix()
	if err != nil {
		return nil, err
	}
	for {
		t := p.buf.Peek()
		switch {
		case minPrec <= precOr && t.Type == token.OR:
			p.buf.Eat()
			right, err := p.parseExpr(precOr + 1)
			if err != nil {
				return nil, err
			}
			left = &BinaryExpr{Op: OpOr, Left: left, Right: right}

		case minPrec <= precAnd && t.Type == token.AND:
			p.buf.Eat()
			right, err := p.parseExpr(precAnd + 1)
			if err != nil {
				return nil, err
			}
			left = &BinaryExpr{Op: OpAnd, Left: left, Right: right}

		case minPrec <= precCmp && (t.Type == token.BETWEEN || t.Type == token.IN || t.Type == token.LIKE_KW || t.Type == token.ISNULL || t.Type == token.NOTNULL || t.Type == token.IS || (t.Type == token.NOT && p.notPrefixFollowsTernary())):
			left, err = p.parseCmpFamily(left, false)
			if err != nil {
				return nil, err
			}

		case minPrec <= precCmp && isEqNeOp(t.Type):
			p.buf.Eat()
			right, err := p.parseExpr(precCmp + 1)
			if err != nil {
				return nil, err
			}
			left = &BinaryExpr{Op: eqNeOp(t.Type), Left: left, Right: right}

		case minPrec <= precRel && isRelOp(t.Type):
			p.buf.Eat()
			right, err := p.parseExpr(precRel + 1)
			if err != nil {
				return nil, err
			}
			left = &BinaryExpr{Op: relOp(t.Type), Left: left, Right: right}

		case minPrec <= precBit && isBitOp(t.Type):
			p.buf.Eat()
			right, err := p.parseExpr(precBit + 1)
			if err != nil {
				return nil, err
			}
			left = &BinaryExpr{Op: bitOp(t.Type), Left: left, Right: right}

		case minPrec <= precAdd && (t.Type == token.PLUS || t.Type == token.MINUS):
			p.buf.Eat()
			right, err := p.parseExpr(precAdd + 1)
			if err != nil {
				return nil, err
			}
			op := OpAdd
			if t.Type == token.MINUS {
				op = OpSub
			}
			left = &BinaryExpr{Op: op, Left: left, Right: right}

		case minPrec <= precMul && isMulOp(t.Type):
			p.buf.Eat()
			right, err := p.parseExpr(precMul + 1)
			if err != nil {
				return nil, err
			}
			left = &BinaryExpr{Op: mulOp(t.Type), Left: left, Right: right}

		case minPrec <= precConcat && isConcatOp(t.Type):
			p.buf.Eat()
			right, err := p.parseExpr(precConcat + 1)
			if err != nil {
				return nil, err
			}
			left = &BinaryExpr{Op: concatOp(t.Type), Left: left, Right: right}

		case minPrec <= precCollate && t.Type == token.COLLATE:
			p.buf.Eat()
			name, err := p.parseName()
			if err != nil {
				return nil, err
			}
			left = &CollateExpr{Expr: left, Collation: name}

		default:
			return left, nil
		}
	}
}

// notPrefixFollowsTernary is a speculative 1-token lookahead past a
// peeked NOT: it reports whether NOT introduces NOT BETWEEN / NOT IN /
// NOT MATCH / NOT LIKE|GLOB|REGEXP / NOT NULL, without consuming anything
// (spec's try_parse primitive — discarded regardless of outcome).
func (p *Parser) notPrefixFollowsTernary() bool {
	matched := false
	_ = p.buf.Mark(func() error {
		p.buf.Eat() // NOT
		nt := p.buf.Peek()
		switch nt.Type {
		case token.BETWEEN, token.IN, token.LIKE_KW, token.NULL:
			matched = true
		}
		// Always rewind: this is a lookahead, not a consume. Returning
		// nil here would let Mark commit the speculative Eat of NOT,
		// leaving parseCmpFamily unable to see it and set Not itself.
		return errNotMatched
	})
	return matched
}

var errNotMatched = customErrorf(0, "not-prefix lookahead miss")

// parseCmpFamily parses the level-3 comparison-family productions:
// BETWEEN, IN, LIKE/GLOB/REGEXP/MATCH, IS [NOT] [DISTINCT FROM], ISNULL,
// NOTNULL, NOT NULL, with an optional leading NOT consumed first.
func (p *Parser) parseCmpFamily(left Expr, _ bool) (Expr, error) {
	not := false
	if p.buf.PeekIs(token.NOT) {
		p.buf.Eat()
		not = true
	}
	t := p.buf.Peek()
	switch t.Type {
	case token.BETWEEN:
		p.buf.Eat()
		start, err := p.parseExpr(precAdd)
		if err != nil {
			return nil, err
		}
		if _, err := p.buf.EatExpect(token.AND); err != nil {
			return nil, err
		}
		end, err := p.parseExpr(precAdd)
		if err != nil {
			return nil, err
		}
		return &BetweenExpr{Lhs: left, Not: not, Start: start, End: end}, nil

	case token.IN:
		return p.parseIn(left, not)

	case token.LIKE_KW:
		return p.parseLike(left, not, string(t.Value))

	case token.ISNULL:
		p.buf.Eat()
		return &IsNullExpr{Operand: left}, nil

	case token.NOTNULL:
		p.buf.Eat()
		return &NotNullExpr{Operand: left}, nil

	case token.NULL:
		// NOT NULL, matched via the leading `not` flag above.
		p.buf.Eat()
		return &NotNullExpr{Operand: left}, nil

	case token.IS:
		if not {
			// `not` was actually consumed from a different NOT; put it
			// back conceptually by treating IS on its own — this path is
			// unreachable because IS never sets the leading `not` flag
			// (there is no "NOT IS"); defensive only.
			return nil, customErrorf(t.Pos, "unexpected NOT before IS")
		}
		return p.parseIsExpr(left)

	default:
		if not {
			upperMatch := strings.ToUpper(string(t.Value))
			_ = upperMatch
			return nil, unexpectedToken(t.Pos, t.Type, token.BETWEEN, token.IN, token.LIKE_KW, token.NULL)
		}
		return nil, unexpectedToken(t.Pos, t.Type, token.BETWEEN, token.IN, token.LIKE_KW, token.ISNULL, token.NOTNULL, token.IS)
	}
}

func (p *Parser) parseIsExpr(left Expr) (Expr, error) {
	p.buf.Eat() // IS
	not := false
	if p.buf.PeekIs(token.NOT) {
		p.buf.Eat()
		not = true
	}
	distinctFrom := false
	if p.buf.PeekIs(token.DISTINCT) {
		p.buf.Eat()
		if _, err := p.buf.EatExpect(token.FROM); err != nil {
			return nil, err
		}
		distinctFrom = true
	}
	right, err := p.parseExpr(precCmp + 1)
	if err != nil {
		return nil, err
	}
	op := OpIs
	switch {
	case not && distinctFrom:
		op = OpIsNotDistinctFrom
	case not:
		op = OpIsNot
	case distinctFrom:
		op = OpIsDistinctFrom
	}
	return &BinaryExpr{Op: op, Left: left, Right: right}, nil
}

func (p *Parser) parseIn(left Expr, not bool) (Expr, error) {
	p.buf.Eat() // IN
	if p.buf.PeekIs(token.LP) {
		p.buf.Eat()
		if p.buf.PeekIs(token.SELECT, token.VALUES, token.WITH) {
			sel, err := p.parseSelect()
			if err != nil {
				return nil, err
			}
			if _, err := p.buf.EatExpect(token.RP); err != nil {
				return nil, err
			}
			return &InSelectExpr{Lhs: left, Not: not, Select: *sel}, nil
		}
		if p.buf.PeekIs(token.RP) {
			p.buf.Eat()
			return &InListExpr{Lhs: left, Not: not, List: nil}, nil
		}
		var list []Expr
		for {
			e, err := p.parseExpr(precOr)
			if err != nil {
				return nil, err
			}
			list = append(list, e)
			if p.buf.PeekIs(token.COMMA) {
				p.buf.Eat()
				continue
			}
			break
		}
		if _, err := p.buf.EatExpect(token.RP); err != nil {
			return nil, err
		}
		return &InListExpr{Lhs: left, Not: not, List: list}, nil
	}
	qn, err := p.parseQualifiedName()
	if err != nil {
		return nil, err
	}
	if p.buf.PeekIs(token.LP) {
		p.buf.Eat()
		var args []Expr
		if !p.buf.PeekIs(token.RP) {
			for {
				e, err := p.parseExpr(precOr)
				if err != nil {
					return nil, err
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
			return nil, err
		}
		return &InTableExpr{Lhs: left, Not: not, Table: qn, Args: args}, nil
	}
	return &InTableExpr{Lhs: left, Not: not, Table: qn}, nil
}

func (p *Parser) parseLike(left Expr, not bool, spelling string) (Expr, error) {
	p.buf.Eat() // LIKE/GLOB/REGEXP/MATCH token (LIKE_KW classification)
	var op LikeOp
	switch strings.ToUpper(spelling) {
	case "LIKE":
		op = LikeLike
	case "GLOB":
		op = LikeGlob
	case "REGEXP":
		op = LikeRegexp
	case "MATCH":
		rhs, err := p.parseExpr(precCmp + 1)
		if err != nil {
			return nil, err
		}
		return &MatchExpr{Lhs: left, Not: not, Rhs: rhs}, nil
	}
	rhs, err := p.parseExpr(precCmp + 1)
	if err != nil {
		return nil, err
	}
	var escape Expr
	if p.buf.PeekIs(token.ESCAPE) {
		p.buf.Eat()
		escape, err = p.parseExpr(precCmp + 1)
		if err != nil {
			return nil, err
		}
	}
	return &LikeExpr{Lhs: left, Not: not, Op: op, Rhs: rhs, Escape: escape}, nil
}

func isRelOp(t token.Type) bool {
	switch t {
	case token.LT, token.GT, token.LE, token.GE:
		return true
	}
	return false
}

func relOp(t token.Type) BinaryOp {
	switch t {
	case token.LT:
		return OpLt
	case token.GT:
		return OpGt
	case token.LE:
		return OpLe
	default:
		return OpGe
	}
}

func isBitOp(t token.Type) bool {
	switch t {
	case token.BITAND, token.BITOR, token.SHL, token.SHR:
		return true
	}
	return false
}

func bitOp(t token.Type) BinaryOp {
	switch t {
	case token.BITAND:
		return OpBitAnd
	case token.BITOR:
		return OpBitOr
	case token.SHL:
		return OpShl
	default:
		return OpShr
	}
}

func isMulOp(t token.Type) bool {
	switch t {
	case token.STAR, token.SLASH, token.PCT:
		return true
	}
	return false
}

func mulOp(t token.Type) BinaryOp {
	switch t {
	case token.STAR:
		return OpMul
	case token.SLASH:
		return OpDiv
	default:
		return OpMod
	}
}

func isConcatOp(t token.Type) bool {
	switch t {
	case token.CONCAT, token.ARROW, token.ARROW2:
		return true
	}
	return false
}

func concatOp(t token.Type) BinaryOp {
	switch t {
	case token.CONCAT:
		return OpConcat
	case token.ARROW:
		return OpJSONArrow
	default:
		return OpJSONArrow2
	}
}

// isEqNeOp/eqNeOp cover =, == (both lexed as EQ) and <>, != (both lexed
// as NE): plain left-associative binary operators at comparison
// precedence, no NOT-prefix or ternary structure.
func isEqNeOp(t token.Type) bool {
	return t == token.EQ || t == token.NE
}

func eqNeOp(t token.Type) BinaryOp {
	if t == token.EQ {
		return OpEq
	}
	return OpNe
}

// parsePrefix parses one operand: a literal, variable, parenthesized
// form, CASE/CAST/RAISE/EXISTS, an identifier chain or function call, or
// a unary-prefixed sub-expression. It never looks at minPrec — the
// caller's loop decides how far to extend past the returned operand.
func (p *Parser) parsePrefix() (Expr, error) {
	t := p.buf.Peek()
	switch t.Type {
	case token.BITNOT:
		p.buf.Eat()
		operand, err := p.parseExpr(precUnary)
		if err != nil {
			return nil, err
		}
		return &UnaryExpr{Op: UnaryBitNot, Operand: operand}, nil

	case token.PLUS:
		p.buf.Eat()
		operand, err := p.parseExpr(precUnary)
		if err != nil {
			return nil, err
		}
		return &UnaryExpr{Op: UnaryPlus, Operand: operand}, nil

	case token.MINUS:
		p.buf.Eat()
		operand, err := p.parseExpr(precUnary)
		if err != nil {
			return nil, err
		}
		return &UnaryExpr{Op: UnaryMinus, Operand: operand}, nil

	case token.NOT:
		p.buf.Eat()
		operand, err := p.parseExpr(precNot)
		if err != nil {
			return nil, err
		}
		return &UnaryExpr{Op: UnaryNot, Operand: operand}, nil

	case token.NULL:
		p.buf.Eat()
		return &LiteralExpr{Literal{Kind: LitNull, Text: string(t.Value)}}, nil

	case token.INTEGER, token.FLOAT:
		p.buf.Eat()
		return &LiteralExpr{Literal{Kind: LitNumeric, Text: string(t.Value)}}, nil

	case token.STRING:
		p.buf.Eat()
		return &LiteralExpr{Literal{Kind: LitString, Text: string(t.Value)}}, nil

	case token.BLOB:
		p.buf.Eat()
		return &LiteralExpr{Literal{Kind: LitBlob, Text: string(t.Value)}}, nil

	case token.VARIABLE:
		p.buf.Eat()
		return &VariableExpr{Text: string(t.Value)}, nil

	case token.CTIME_KW:
		p.buf.Eat()
		kind := LitCurrentTimestamp
		switch strings.ToUpper(string(t.Value)) {
		case "CURRENT_DATE":
			kind = LitCurrentDate
		case "CURRENT_TIME":
			kind = LitCurrentTime
		}
		return &LiteralExpr{Literal{Kind: kind, Text: string(t.Value)}}, nil

	case token.CAST:
		return p.parseCast()

	case token.CASE:
		return p.parseCase()

	case token.EXISTS:
		return p.parseExists()

	case token.RAISE:
		return p.parseRaise()

	case token.LP:
		return p.parseParenExprOrSubquery()

	case token.ID:
		return p.parseIdentOrCall()

	default:
		return nil, unexpectedToken(t.Pos, t.Type, token.ID, token.STRING, token.INTEGER, token.LP, token.CASE, token.CAST)
	}
}

// parseIdentOrCall parses a bare/qualified/doubly-qualified identifier or
// a function call starting from a leading ID token.
func (p *Parser) parseIdentOrCall() (Expr, error) {
	first, err := p.parseName()
	if err != nil {
		return nil, err
	}
	if p.buf.PeekIs(token.LP) {
		return p.parseFunctionCallTail(first)
	}
	if p.buf.PeekIs(token.DOT) {
		p.buf.Eat()
		second, err := p.parseName()
		if err != nil {
			return nil, err
		}
		if p.buf.PeekIs(token.DOT) {
			p.buf.Eat()
			third, err := p.parseName()
			if err != nil {
				return nil, err
			}
			return &DoublyQualifiedExpr{Schema: first, Table: second, Column: third}, nil
		}
		return &QualifiedExpr{Table: first, Column: second}, nil
	}
	if first.Kind == Ident && (strings.EqualFold(first.Text, "TRUE") || strings.EqualFold(first.Text, "FALSE")) {
		return &LiteralExpr{Literal{Kind: LitKeyword, Text: first.Text}}, nil
	}
	return &IdExpr{Name: first}, nil
}

// parseFunctionCallTail parses the `(...)` suffix of a function call
// whose name has already been consumed.
func (p *Parser) parseFunctionCallTail(name Name) (Expr, error) {
	p.buf.EatAssert(token.LP)
	if p.buf.PeekIs(token.STAR) {
		p.buf.Eat()
		if _, err := p.buf.EatExpect(token.RP); err != nil {
			return nil, err
		}
		fo, err := p.parseFilterOver()
		if err != nil {
			return nil, err
		}
		return &FunctionCallStarExpr{Name: name, FilterOver: fo}, nil
	}

	distinctness := DistinctnessNone
	switch {
	case p.buf.PeekIs(token.DISTINCT):
		p.buf.Eat()
		distinctness = DistinctnessDistinct
	case p.buf.PeekIs(token.ALL):
		p.buf.Eat()
		distinctness = DistinctnessAll
	}

	var args []Expr
	if !p.buf.PeekIs(token.RP) {
		for {
			e, err := p.parseExpr(precOr)
			if err != nil {
				return nil, err
			}
			args = append(args, e)
			if p.buf.PeekIs(token.COMMA) {
				p.buf.Eat()
				continue
			}
			break
		}
	}

	var orderBy []OrderingTerm
	if p.buf.PeekIs(token.ORDER) {
		p.buf.Eat()
		if _, err := p.buf.EatExpect(token.BY); err != nil {
			return nil, err
		}
		var err error
		orderBy, err = p.parseOrderingTermList()
		if err != nil {
			return nil, err
		}
	}

	if _, err := p.buf.EatExpect(token.RP); err != nil {
		return nil, err
	}
	fo, err := p.parseFilterOver()
	if err != nil {
		return nil, err
	}
	return &FunctionCallExpr{Name: name, Distinctness: distinctness, Args: args, OrderBy: orderBy, FilterOver: fo}, nil
}

// parseFilterOver parses the optional `FILTER (WHERE ...)` and `OVER
// (...|name)` suffix shared by aggregate and window function calls.
func (p *Parser) parseFilterOver() (FilterOver, error) {
	var fo FilterOver
	if p.buf.PeekIs(token.FILTER) {
		p.buf.Eat()
		if _, err := p.buf.EatExpect(token.LP); err != nil {
			return fo, err
		}
		if _, err := p.buf.EatExpect(token.WHERE); err != nil {
			return fo, err
		}
		e, err := p.parseExpr(precOr)
		if err != nil {
			return fo, err
		}
		fo.Filter = e
		if _, err := p.buf.EatExpect(token.RP); err != nil {
			return fo, err
		}
	}
	if p.buf.PeekIs(token.OVER) {
		p.buf.Eat()
		if p.buf.PeekIs(token.LP) {
			def, err := p.parseWindowDef()
			if err != nil {
				return fo, err
			}
			fo.Over = &Over{Def: &def}
		} else {
			name, err := p.parseName()
			if err != nil {
				return fo, err
			}
			fo.Over = &Over{Name: &name}
		}
	}
	return fo, nil
}

// parseWindowDef parses `(  [base-window-name] [PARTITION BY ...]
// [ORDER BY ...] [frame-spec] )`.
func (p *Parser) parseWindowDef() (WindowDef, error) {
	var def WindowDef
	if _, err := p.buf.EatExpect(token.LP); err != nil {
		return def, err
	}
	if p.buf.PeekIs(token.ID) {
		n, err := p.parseName()
		if err != nil {
			return def, err
		}
		def.BaseWindowName = &n
	}
	if p.buf.PeekIs(token.PARTITION) {
		p.buf.Eat()
		if _, err := p.buf.EatExpect(token.BY); err != nil {
			return def, err
		}
		for {
			e, err := p.parseExpr(precOr)
			if err != nil {
				return def, err
			}
			def.PartitionBy = append(def.PartitionBy, e)
			if p.buf.PeekIs(token.COMMA) {
				p.buf.Eat()
				continue
			}
			break
		}
	}
	if p.buf.PeekIs(token.ORDER) {
		p.buf.Eat()
		if _, err := p.buf.EatExpect(token.BY); err != nil {
			return def, err
		}
		var err error
		def.OrderBy, err = p.parseOrderingTermList()
		if err != nil {
			return def, err
		}
	}
	if p.buf.PeekIs(token.RANGE, token.ROWS, token.GROUPS) {
		frame, err := p.parseFrame()
		if err != nil {
			return def, err
		}
		def.Frame = &frame
	}
	if _, err := p.buf.EatExpect(token.RP); err != nil {
		return def, err
	}
	return def, nil
}

func (p *Parser) parseFrame() (Frame, error) {
	var frame Frame
	t := p.buf.Peek()
	switch t.Type {
	case token.RANGE:
		frame.Mode = FrameRange
	case token.ROWS:
		frame.Mode = FrameRows
	case token.GROUPS:
		frame.Mode = FrameGroups
	}
	p.buf.Eat()

	if p.buf.PeekIs(token.BETWEEN) {
		p.buf.Eat()
		start, err := p.parseFrameBound()
		if err != nil {
			return frame, err
		}
		if _, err := p.buf.EatExpect(token.AND); err != nil {
			return frame, err
		}
		end, err := p.parseFrameBound()
		if err != nil {
			return frame, err
		}
		frame.Start = start
		frame.End = &end
	} else {
		start, err := p.parseFrameBound()
		if err != nil {
			return frame, err
		}
		frame.Start = start
	}

	if p.buf.PeekIs(token.EXCLUDE) {
		p.buf.Eat()
		switch {
		case p.buf.PeekIs(token.NO):
			p.buf.Eat()
			if _, err := p.buf.EatExpect(token.OTHERS); err != nil {
				return frame, err
			}
			frame.Exclude = ExcludeNoOthers
		case p.buf.PeekIs(token.CURRENT):
			p.buf.Eat()
			if _, err := p.buf.EatExpect(token.ROW); err != nil {
				return frame, err
			}
			frame.Exclude = ExcludeCurrentRow
		case p.buf.PeekIs(token.GROUP):
			p.buf.Eat()
			frame.Exclude = ExcludeGroup
		case p.buf.PeekIs(token.TIES):
			p.buf.Eat()
			frame.Exclude = ExcludeTies
		default:
			nt := p.buf.Peek()
			return frame, unexpectedToken(nt.Pos, nt.Type, token.NO, token.CURRENT, token.GROUP, token.TIES)
		}
	}
	return frame, nil
}

func (p *Parser) parseFrameBound() (FrameBound, error) {
	t := p.buf.Peek()
	switch t.Type {
	case token.UNBOUNDED:
		p.buf.Eat()
		nt := p.buf.Peek()
		switch nt.Type {
		case token.PRECEDING:
			p.buf.Eat()
			return FrameBound{Kind: BoundUnboundedPreceding}, nil
		case token.FOLLOWING:
			p.buf.Eat()
			return FrameBound{Kind: BoundUnboundedFollowing}, nil
		default:
			return FrameBound{}, unexpectedToken(nt.Pos, nt.Type, token.PRECEDING, token.FOLLOWING)
		}
	case token.CURRENT:
		p.buf.Eat()
		if _, err := p.buf.EatExpect(token.ROW); err != nil {
			return FrameBound{}, err
		}
		return FrameBound{Kind: BoundCurrentRow}, nil
	default:
		e, err := p.parseExpr(precOr)
		if err != nil {
			return FrameBound{}, err
		}
		nt := p.buf.Peek()
		switch nt.Type {
		case token.PRECEDING:
			p.buf.Eat()
			return FrameBound{Kind: BoundPreceding, Expr: e}, nil
		case token.FOLLOWING:
			p.buf.Eat()
			return FrameBound{Kind: BoundFollowing, Expr: e}, nil
		default:
			return FrameBound{}, unexpectedToken(nt.Pos, nt.Type, token.PRECEDING, token.FOLLOWING)
		}
	}
}

// parseOrderingTermList parses a comma-separated ORDER BY term list,
// shared by top-level SELECT ORDER BY, window ORDER BY, and an
// aggregate's in-call ORDER BY. The NULLS FIRST|LAST suffix has no
// dedicated token class: it is recognized by case-insensitive spelling
// on a bare identifier, the same way the teacher's parser recognizes
// soft keywords that never made it into the reserved set.
func (p *Parser) parseOrderingTermList() ([]OrderingTerm, error) {
	var terms []OrderingTerm
	for {
		e, err := p.parseExpr(precOr)
		if err != nil {
			return nil, err
		}
		term := OrderingTerm{Expr: e}
		if p.buf.PeekIs(token.COLLATE) {
			p.buf.Eat()
			name, err := p.parseName()
			if err != nil {
				return nil, err
			}
			term.Collate = &name
		}
		order, err := p.parseSortOrder()
		if err != nil {
			return nil, err
		}
		term.Order = order
		if p.buf.PeekIs(token.ID) && strings.EqualFold(string(p.buf.Peek().Value), "NULLS") {
			p.buf.Eat()
			nt := p.buf.Peek()
			switch {
			case nt.Type == token.ID && strings.EqualFold(string(nt.Value), "FIRST"):
				p.buf.Eat()
				first := true
				term.NullsFirst = &first
			case nt.Type == token.ID && strings.EqualFold(string(nt.Value), "LAST"):
				p.buf.Eat()
				last := false
				term.NullsFirst = &last
			default:
				return nil, customErrorf(nt.Pos, "expected FIRST or LAST after NULLS")
			}
		}
		terms = append(terms, term)
		if p.buf.PeekIs(token.COMMA) {
			p.buf.Eat()
			continue
		}
		break
	}
	return terms, nil
}

func (p *Parser) parseCase() (Expr, error) {
	p.buf.EatAssert(token.CASE)
	var base Expr
	if !p.buf.PeekIs(token.WHEN) {
		b, err := p.parseExpr(precOr)
		if err != nil {
			return nil, err
		}
		base = b
	}
	var whens []WhenThen
	for p.buf.PeekIs(token.WHEN) {
		p.buf.Eat()
		when, err := p.parseExpr(precOr)
		if err != nil {
			return nil, err
		}
		if _, err := p.buf.EatExpect(token.THEN); err != nil {
			return nil, err
		}
		then, err := p.parseExpr(precOr)
		if err != nil {
			return nil, err
		}
		whens = append(whens, WhenThen{When: when, Then: then})
	}
	if len(whens) == 0 {
		t := p.buf.Peek()
		return nil, unexpectedToken(t.Pos, t.Type, token.WHEN)
	}
	var elseExpr Expr
	if p.buf.PeekIs(token.ELSE) {
		p.buf.Eat()
		e, err := p.parseExpr(precOr)
		if err != nil {
			return nil, err
		}
		elseExpr = e
	}
	if _, err := p.buf.EatExpect(token.END); err != nil {
		return nil, err
	}
	return &CaseExpr{Base: base, WhenThen: whens, Else: elseExpr}, nil
}

func (p *Parser) parseCast() (Expr, error) {
	p.buf.EatAssert(token.CAST)
	if _, err := p.buf.EatExpect(token.LP); err != nil {
		return nil, err
	}
	e, err := p.parseExpr(precOr)
	if err != nil {
		return nil, err
	}
	if _, err := p.buf.EatExpect(token.AS); err != nil {
		return nil, err
	}
	typ, err := p.parseTypeName()
	if err != nil {
		return nil, err
	}
	if _, err := p.buf.EatExpect(token.RP); err != nil {
		return nil, err
	}
	return &CastExpr{Expr: e, Type: typ}, nil
}

// parseTypeName consumes one or more identifier words (e.g. "UNSIGNED
// BIG INT") followed by an optional (N) or (N,M) size suffix.
func (p *Parser) parseTypeName() (TypeName, error) {
	first, err := p.buf.EatExpect(token.ID)
	if err != nil {
		return TypeName{}, err
	}
	words := []string{string(first.Value)}
	for p.buf.PeekIs(token.ID) {
		words = append(words, string(p.buf.Peek().Value))
		p.buf.Eat()
	}
	typ := TypeName{Name: strings.Join(words, " ")}
	if p.buf.PeekIs(token.LP) {
		p.buf.Eat()
		n1, err := p.parseExpr(precOr)
		if err != nil {
			return typ, err
		}
		size := &TypeSize{N1: n1}
		if p.buf.PeekIs(token.COMMA) {
			p.buf.Eat()
			n2, err := p.parseExpr(precOr)
			if err != nil {
				return typ, err
			}
			size.N2 = n2
		}
		if _, err := p.buf.EatExpect(token.RP); err != nil {
			return typ, err
		}
		typ.Size = size
	}
	return typ, nil
}

func (p *Parser) parseExists() (Expr, error) {
	p.buf.EatAssert(token.EXISTS)
	if _, err := p.buf.EatExpect(token.LP); err != nil {
		return nil, err
	}
	sel, err := p.parseSelect()
	if err != nil {
		return nil, err
	}
	if _, err := p.buf.EatExpect(token.RP); err != nil {
		return nil, err
	}
	return &ExistsExpr{Select: *sel}, nil
}

func (p *Parser) parseRaise() (Expr, error) {
	p.buf.EatAssert(token.RAISE)
	if _, err := p.buf.EatExpect(token.LP); err != nil {
		return nil, err
	}
	t := p.buf.Peek()
	if t.Type == token.IGNORE {
		p.buf.Eat()
		if _, err := p.buf.EatExpect(token.RP); err != nil {
			return nil, err
		}
		return &RaiseExpr{Action: RaiseIgnore}, nil
	}
	var action RaiseAction
	switch t.Type {
	case token.ROLLBACK:
		action = RaiseRollback
	case token.ABORT:
		action = RaiseAbort
	case token.FAIL:
		action = RaiseFail
	default:
		return nil, unexpectedToken(t.Pos, t.Type, token.IGNORE, token.ROLLBACK, token.ABORT, token.FAIL)
	}
	p.buf.Eat()
	if _, err := p.buf.EatExpect(token.COMMA); err != nil {
		return nil, err
	}
	msg, err := p.buf.EatExpect(token.STRING)
	if err != nil {
		return nil, err
	}
	if _, err := p.buf.EatExpect(token.RP); err != nil {
		return nil, err
	}
	return &RaiseExpr{Action: action, Message: string(msg.Value)}, nil
}

// parseParenExprOrSubquery disambiguates `(SELECT|VALUES|WITH ...)` from
// a parenthesized expression list once the leading `(` is in hand.
func (p *Parser) parseParenExprOrSubquery() (Expr, error) {
	p.buf.EatAssert(token.LP)
	if p.buf.PeekIs(token.SELECT, token.VALUES, token.WITH) {
		sel, err := p.parseSelect()
		if err != nil {
			return nil, err
		}
		if _, err := p.buf.EatExpect(token.RP); err != nil {
			return nil, err
		}
		return &SubqueryExpr{Select: *sel}, nil
	}
	var exprs []Expr
	for {
		e, err := p.parseExpr(precOr)
		if err != nil {
			return nil, err
		}
		exprs = append(exprs, e)
		if p.buf.PeekIs(token.COMMA) {
			p.buf.Eat()
			continue
		}
		break
	}
	if _, err := p.buf.EatExpect(token.RP); err != nil {
		return nil, err
	}
	return &ParenthesizedExpr{Exprs: exprs}, nil
}
