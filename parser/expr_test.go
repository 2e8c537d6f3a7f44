package parser

import "testing"

func parseOneExpr(t *testing.T, input string) Expr {
	t.Helper()
	stmt, err := New("SELECT " + input).Next()
	if err != nil {
		t.Fatalf("Next(%q): %v", input, err)
	}
	sel, ok := stmt.Stmt.(*SelectStmt)
	if !ok {
		t.Fatalf("Stmt type = %T, want *SelectStmt", stmt.Stmt)
	}
	if len(sel.Select.Body.Select.Columns) != 1 {
		t.Fatalf("Columns count = %d, want 1", len(sel.Select.Body.Select.Columns))
	}
	return sel.Select.Body.Select.Columns[0].Expr
}

func TestExpr_BinaryPrecedence_MulBeforeAdd(t *testing.T) {
	// 1 + 2 * 3 should parse as 1 + (2 * 3), i.e. the outer op is ADD.
	expr := parseOneExpr(t, "1 + 2 * 3")
	bin, ok := expr.(*BinaryExpr)
	if !ok {
		t.Fatalf("type = %T, want *BinaryExpr", expr)
	}
	if bin.Op != OpAdd {
		t.Fatalf("Op = %v, want OpAdd", bin.Op)
	}
	right, ok := bin.Right.(*BinaryExpr)
	if !ok {
		t.Fatalf("Right type = %T, want *BinaryExpr", bin.Right)
	}
	if right.Op != OpMul {
		t.Errorf("Right.Op = %v, want OpMul", right.Op)
	}
}

func TestExpr_AndBeforeOr(t *testing.T) {
	// a OR b AND c should parse as a OR (b AND c).
	expr := parseOneExpr(t, "a OR b AND c")
	bin, ok := expr.(*BinaryExpr)
	if !ok {
		t.Fatalf("type = %T, want *BinaryExpr", expr)
	}
	if bin.Op != OpOr {
		t.Fatalf("Op = %v, want OpOr", bin.Op)
	}
	right, ok := bin.Right.(*BinaryExpr)
	if !ok {
		t.Fatalf("Right type = %T, want *BinaryExpr", bin.Right)
	}
	if right.Op != OpAnd {
		t.Errorf("Right.Op = %v, want OpAnd", right.Op)
	}
}

func TestExpr_LeftAssociativity(t *testing.T) {
	// 1 - 2 - 3 should parse as (1 - 2) - 3.
	expr := parseOneExpr(t, "1 - 2 - 3")
	bin, ok := expr.(*BinaryExpr)
	if !ok {
		t.Fatalf("type = %T, want *BinaryExpr", expr)
	}
	if bin.Op != OpSub {
		t.Fatalf("Op = %v, want OpSub", bin.Op)
	}
	left, ok := bin.Left.(*BinaryExpr)
	if !ok {
		t.Fatalf("Left type = %T, want *BinaryExpr", bin.Left)
	}
	if left.Op != OpSub {
		t.Errorf("Left.Op = %v, want OpSub", left.Op)
	}
	if _, ok := bin.Right.(*LiteralExpr); !ok {
		t.Errorf("Right type = %T, want *LiteralExpr", bin.Right)
	}
}

func TestExpr_CollateBindsTighterThanBinary(t *testing.T) {
	// a = b COLLATE nocase should parse as a = (b COLLATE nocase).
	expr := parseOneExpr(t, "a = b COLLATE nocase")
	bin, ok := expr.(*BinaryExpr)
	if !ok {
		t.Fatalf("type = %T, want *BinaryExpr", expr)
	}
	if bin.Op != OpEq {
		t.Fatalf("Op = %v, want OpEq", bin.Op)
	}
	coll, ok := bin.Right.(*CollateExpr)
	if !ok {
		t.Fatalf("Right type = %T, want *CollateExpr", bin.Right)
	}
	if coll.Collation.Text != "nocase" {
		t.Errorf("Collation.Text = %q, want nocase", coll.Collation.Text)
	}
}

func TestExpr_UnaryMinusBindsTighterThanMul(t *testing.T) {
	expr := parseOneExpr(t, "-2 * 3")
	bin, ok := expr.(*BinaryExpr)
	if !ok {
		t.Fatalf("type = %T, want *BinaryExpr", expr)
	}
	if bin.Op != OpMul {
		t.Fatalf("Op = %v, want OpMul", bin.Op)
	}
	un, ok := bin.Left.(*UnaryExpr)
	if !ok {
		t.Fatalf("Left type = %T, want *UnaryExpr", bin.Left)
	}
	if un.Op != UnaryMinus {
		t.Errorf("Left.Op = %v, want UnaryMinus", un.Op)
	}
}

func TestExpr_Between(t *testing.T) {
	expr := parseOneExpr(t, "a BETWEEN 1 AND 10")
	bt, ok := expr.(*BetweenExpr)
	if !ok {
		t.Fatalf("type = %T, want *BetweenExpr", expr)
	}
	if bt.Not {
		t.Error("Not = true, want false")
	}
	if _, ok := bt.Lhs.(*IdExpr); !ok {
		t.Errorf("Lhs type = %T, want *IdExpr", bt.Lhs)
	}
}

func TestExpr_NotBetween(t *testing.T) {
	expr := parseOneExpr(t, "a NOT BETWEEN 1 AND 10")
	bt, ok := expr.(*BetweenExpr)
	if !ok {
		t.Fatalf("type = %T, want *BetweenExpr", expr)
	}
	if !bt.Not {
		t.Error("Not = false, want true")
	}
}

func TestExpr_LikeFamily(t *testing.T) {
	tests := []struct {
		input string
		op    LikeOp
		not   bool
	}{
		{"a LIKE 'x%'", LikeLike, false},
		{"a NOT LIKE 'x%'", LikeLike, true},
		{"a GLOB 'x*'", LikeGlob, false},
		{"a REGEXP 'x.*'", LikeRegexp, false},
	}
	for _, tt := range tests {
		expr := parseOneExpr(t, tt.input)
		lk, ok := expr.(*LikeExpr)
		if !ok {
			t.Fatalf("%q: type = %T, want *LikeExpr", tt.input, expr)
		}
		if lk.Op != tt.op {
			t.Errorf("%q: Op = %v, want %v", tt.input, lk.Op, tt.op)
		}
		if lk.Not != tt.not {
			t.Errorf("%q: Not = %v, want %v", tt.input, lk.Not, tt.not)
		}
	}
}

func TestExpr_LikeWithEscape(t *testing.T) {
	expr := parseOneExpr(t, `a LIKE 'x$%' ESCAPE '$'`)
	lk, ok := expr.(*LikeExpr)
	if !ok {
		t.Fatalf("type = %T, want *LikeExpr", expr)
	}
	if lk.Escape == nil {
		t.Fatal("Escape = nil, want non-nil")
	}
}

func TestExpr_Match(t *testing.T) {
	expr := parseOneExpr(t, "a MATCH 'query'")
	m, ok := expr.(*MatchExpr)
	if !ok {
		t.Fatalf("type = %T, want *MatchExpr", expr)
	}
	if m.Not {
		t.Error("Not = true, want false")
	}
}

func TestExpr_InList(t *testing.T) {
	expr := parseOneExpr(t, "a IN (1, 2, 3)")
	in, ok := expr.(*InListExpr)
	if !ok {
		t.Fatalf("type = %T, want *InListExpr", expr)
	}
	if len(in.List) != 3 {
		t.Errorf("List count = %d, want 3", len(in.List))
	}
}

func TestExpr_InSelect(t *testing.T) {
	expr := parseOneExpr(t, "a IN (SELECT b FROM t)")
	in, ok := expr.(*InSelectExpr)
	if !ok {
		t.Fatalf("type = %T, want *InSelectExpr", expr)
	}
	if len(in.Select.Body.Select.Columns) != 1 {
		t.Errorf("Select.Columns count = %d, want 1", len(in.Select.Body.Select.Columns))
	}
}

func TestExpr_InTable(t *testing.T) {
	expr := parseOneExpr(t, "a IN main.t")
	in, ok := expr.(*InTableExpr)
	if !ok {
		t.Fatalf("type = %T, want *InTableExpr", expr)
	}
	if in.Table.Schema == nil || in.Table.Schema.Text != "main" {
		t.Errorf("Table.Schema = %v, want main", in.Table.Schema)
	}
	if in.Table.Name.Text != "t" {
		t.Errorf("Table.Name.Text = %q, want t", in.Table.Name.Text)
	}
}

func TestExpr_IsAndIsNot(t *testing.T) {
	tests := []struct {
		input string
		op    BinaryOp
	}{
		{"a IS NULL", OpIs},
		{"a IS NOT NULL", OpIsNot},
		{"a IS DISTINCT FROM b", OpIsDistinctFrom},
		{"a IS NOT DISTINCT FROM b", OpIsNotDistinctFrom},
	}
	for _, tt := range tests {
		expr := parseOneExpr(t, tt.input)
		bin, ok := expr.(*BinaryExpr)
		if !ok {
			t.Fatalf("%q: type = %T, want *BinaryExpr", tt.input, expr)
		}
		if bin.Op != tt.op {
			t.Errorf("%q: Op = %v, want %v", tt.input, bin.Op, tt.op)
		}
	}
}

func TestExpr_IsNullNotNullPostfix(t *testing.T) {
	expr := parseOneExpr(t, "a ISNULL")
	if _, ok := expr.(*IsNullExpr); !ok {
		t.Fatalf("type = %T, want *IsNullExpr", expr)
	}
	expr = parseOneExpr(t, "a NOTNULL")
	if _, ok := expr.(*NotNullExpr); !ok {
		t.Fatalf("type = %T, want *NotNullExpr", expr)
	}
}

func TestExpr_CaseSearched(t *testing.T) {
	expr := parseOneExpr(t, "CASE WHEN a = 1 THEN 'one' WHEN a = 2 THEN 'two' ELSE 'other' END")
	c, ok := expr.(*CaseExpr)
	if !ok {
		t.Fatalf("type = %T, want *CaseExpr", expr)
	}
	if c.Base != nil {
		t.Error("Base != nil, want nil for searched CASE")
	}
	if len(c.WhenThen) != 2 {
		t.Fatalf("WhenThen count = %d, want 2", len(c.WhenThen))
	}
	if c.Else == nil {
		t.Error("Else = nil, want non-nil")
	}
}

func TestExpr_CaseWithBase(t *testing.T) {
	expr := parseOneExpr(t, "CASE a WHEN 1 THEN 'one' END")
	c, ok := expr.(*CaseExpr)
	if !ok {
		t.Fatalf("type = %T, want *CaseExpr", expr)
	}
	if c.Base == nil {
		t.Fatal("Base = nil, want non-nil")
	}
	if c.Else != nil {
		t.Error("Else != nil, want nil")
	}
}

func TestExpr_Cast(t *testing.T) {
	expr := parseOneExpr(t, "CAST(a AS INTEGER)")
	c, ok := expr.(*CastExpr)
	if !ok {
		t.Fatalf("type = %T, want *CastExpr", expr)
	}
	if c.Type.Name != "INTEGER" {
		t.Errorf("Type.Name = %q, want INTEGER", c.Type.Name)
	}
}

func TestExpr_CastWithSizedType(t *testing.T) {
	expr := parseOneExpr(t, "CAST(a AS DECIMAL(10,5))")
	c, ok := expr.(*CastExpr)
	if !ok {
		t.Fatalf("type = %T, want *CastExpr", expr)
	}
	if c.Type.Size == nil {
		t.Fatal("Type.Size = nil, want non-nil")
	}
	if c.Type.Size.N2 == nil {
		t.Error("Type.Size.N2 = nil, want non-nil for two-part size")
	}
}

func TestExpr_FunctionCallDistinct(t *testing.T) {
	expr := parseOneExpr(t, "COUNT(DISTINCT a)")
	fn, ok := expr.(*FunctionCallExpr)
	if !ok {
		t.Fatalf("type = %T, want *FunctionCallExpr", expr)
	}
	if fn.Distinctness != DistinctnessDistinct {
		t.Errorf("Distinctness = %v, want DistinctnessDistinct", fn.Distinctness)
	}
	if len(fn.Args) != 1 {
		t.Errorf("Args count = %d, want 1", len(fn.Args))
	}
}

func TestExpr_FunctionCallStar(t *testing.T) {
	expr := parseOneExpr(t, "COUNT(*)")
	if _, ok := expr.(*FunctionCallStarExpr); !ok {
		t.Fatalf("type = %T, want *FunctionCallStarExpr", expr)
	}
}

func TestExpr_FunctionCallFilterOver(t *testing.T) {
	expr := parseOneExpr(t, "sum(x) FILTER (WHERE x > 0) OVER (PARTITION BY y ORDER BY z)")
	fn, ok := expr.(*FunctionCallExpr)
	if !ok {
		t.Fatalf("type = %T, want *FunctionCallExpr", expr)
	}
	if fn.FilterOver.Filter == nil {
		t.Fatal("FilterOver.Filter = nil, want non-nil")
	}
	if fn.FilterOver.Over == nil {
		t.Fatal("FilterOver.Over = nil, want non-nil")
	}
	if fn.FilterOver.Over.Def == nil {
		t.Fatal("FilterOver.Over.Def = nil, want inline window def")
	}
	if len(fn.FilterOver.Over.Def.PartitionBy) != 1 {
		t.Errorf("PartitionBy count = %d, want 1", len(fn.FilterOver.Over.Def.PartitionBy))
	}
}

func TestExpr_FunctionCallOverNamedWindow(t *testing.T) {
	expr := parseOneExpr(t, "rank() OVER win")
	fn, ok := expr.(*FunctionCallExpr)
	if !ok {
		t.Fatalf("type = %T, want *FunctionCallExpr", expr)
	}
	if fn.FilterOver.Over == nil || fn.FilterOver.Over.Name == nil {
		t.Fatal("Over.Name = nil, want a named-window reference")
	}
	if fn.FilterOver.Over.Name.Text != "win" {
		t.Errorf("Over.Name.Text = %q, want win", fn.FilterOver.Over.Name.Text)
	}
}

func TestExpr_Exists(t *testing.T) {
	expr := parseOneExpr(t, "EXISTS (SELECT 1 FROM t)")
	if _, ok := expr.(*ExistsExpr); !ok {
		t.Fatalf("type = %T, want *ExistsExpr", expr)
	}
}

func TestExpr_Raise(t *testing.T) {
	expr := parseOneExpr(t, "RAISE(ABORT, 'bad value')")
	r, ok := expr.(*RaiseExpr)
	if !ok {
		t.Fatalf("type = %T, want *RaiseExpr", expr)
	}
	if r.Action != RaiseAbort {
		t.Errorf("Action = %v, want RaiseAbort", r.Action)
	}
}

func TestExpr_RaiseIgnore(t *testing.T) {
	expr := parseOneExpr(t, "RAISE(IGNORE)")
	r, ok := expr.(*RaiseExpr)
	if !ok {
		t.Fatalf("type = %T, want *RaiseExpr", expr)
	}
	if r.Action != RaiseIgnore {
		t.Errorf("Action = %v, want RaiseIgnore", r.Action)
	}
	if r.Message != "" {
		t.Errorf("Message = %q, want empty", r.Message)
	}
}

func TestExpr_ParenthesizedList(t *testing.T) {
	expr := parseOneExpr(t, "(a, b, c)")
	p, ok := expr.(*ParenthesizedExpr)
	if !ok {
		t.Fatalf("type = %T, want *ParenthesizedExpr", expr)
	}
	if len(p.Exprs) != 3 {
		t.Errorf("Exprs count = %d, want 3", len(p.Exprs))
	}
}

func TestExpr_QualifiedAndDoublyQualified(t *testing.T) {
	expr := parseOneExpr(t, "t.c")
	q, ok := expr.(*QualifiedExpr)
	if !ok {
		t.Fatalf("type = %T, want *QualifiedExpr", expr)
	}
	if q.Table.Text != "t" || q.Column.Text != "c" {
		t.Errorf("got %+v", q)
	}

	expr = parseOneExpr(t, "s.t.c")
	dq, ok := expr.(*DoublyQualifiedExpr)
	if !ok {
		t.Fatalf("type = %T, want *DoublyQualifiedExpr", expr)
	}
	if dq.Schema.Text != "s" || dq.Table.Text != "t" || dq.Column.Text != "c" {
		t.Errorf("got %+v", dq)
	}
}

func TestExpr_VariableForms(t *testing.T) {
	for _, in := range []string{"?", "?1", ":name", "@var", "$x"} {
		expr := parseOneExpr(t, in)
		v, ok := expr.(*VariableExpr)
		if !ok {
			t.Fatalf("%q: type = %T, want *VariableExpr", in, expr)
		}
		if v.Text != in {
			t.Errorf("%q: Text = %q, want %q", in, v.Text, in)
		}
	}
}

func TestExpr_CurrentTimeKeywords(t *testing.T) {
	tests := []struct {
		input string
		kind  LiteralKind
	}{
		{"CURRENT_DATE", LitCurrentDate},
		{"CURRENT_TIME", LitCurrentTime},
		{"CURRENT_TIMESTAMP", LitCurrentTimestamp},
	}
	for _, tt := range tests {
		expr := parseOneExpr(t, tt.input)
		lit, ok := expr.(*LiteralExpr)
		if !ok {
			t.Fatalf("%q: type = %T, want *LiteralExpr", tt.input, expr)
		}
		if lit.Literal.Kind != tt.kind {
			t.Errorf("%q: Kind = %v, want %v", tt.input, lit.Literal.Kind, tt.kind)
		}
	}
}

func TestExpr_TrueFalseAreKeywordLiterals(t *testing.T) {
	for _, in := range []string{"TRUE", "FALSE"} {
		expr := parseOneExpr(t, in)
		lit, ok := expr.(*LiteralExpr)
		if !ok {
			t.Fatalf("%q: type = %T, want *LiteralExpr", in, expr)
		}
		if lit.Literal.Kind != LitKeyword {
			t.Errorf("%q: Kind = %v, want LitKeyword", in, lit.Literal.Kind)
		}
	}
}

func TestExpr_JSONArrowOperators(t *testing.T) {
	expr := parseOneExpr(t, "a -> 'x'")
	bin, ok := expr.(*BinaryExpr)
	if !ok || bin.Op != OpJSONArrow {
		t.Fatalf("got %T %+v, want BinaryExpr{Op: OpJSONArrow}", expr, expr)
	}

	expr = parseOneExpr(t, "a ->> 'x'")
	bin, ok = expr.(*BinaryExpr)
	if !ok || bin.Op != OpJSONArrow2 {
		t.Fatalf("got %T %+v, want BinaryExpr{Op: OpJSONArrow2}", expr, expr)
	}
}

func TestExpr_ConcatOperator(t *testing.T) {
	expr := parseOneExpr(t, "a || b")
	bin, ok := expr.(*BinaryExpr)
	if !ok || bin.Op != OpConcat {
		t.Fatalf("got %T %+v, want BinaryExpr{Op: OpConcat}", expr, expr)
	}
}
