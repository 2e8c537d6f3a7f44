package parser

import "testing"

func parseOneStmt(t *testing.T, input string) *Cmd {
	t.Helper()
	cmd, err := New(input).Next()
	if err != nil {
		t.Fatalf("Next(%q): %v", input, err)
	}
	if cmd == nil {
		t.Fatalf("Next(%q): got no statement", input)
	}
	return cmd
}

func TestStmt_Begin(t *testing.T) {
	cmd := parseOneStmt(t, "BEGIN DEFERRED TRANSACTION my_tx")
	b, ok := cmd.Stmt.(*BeginStmt)
	if !ok {
		t.Fatalf("type = %T, want *BeginStmt", cmd.Stmt)
	}
	if b.Kind != BeginDeferred {
		t.Errorf("Kind = %v, want BeginDeferred", b.Kind)
	}
	if b.Name == nil || b.Name.Text != "my_tx" {
		t.Errorf("Name = %+v, want my_tx", b.Name)
	}
}

func TestStmt_RollbackToSavepoint(t *testing.T) {
	cmd := parseOneStmt(t, "ROLLBACK TRANSACTION t TO s")
	r, ok := cmd.Stmt.(*RollbackStmt)
	if !ok {
		t.Fatalf("type = %T, want *RollbackStmt", cmd.Stmt)
	}
	if r.TxName == nil || r.TxName.Text != "t" {
		t.Errorf("TxName = %+v, want t", r.TxName)
	}
	if r.SavepointName == nil || r.SavepointName.Text != "s" {
		t.Errorf("SavepointName = %+v, want s", r.SavepointName)
	}
}

func TestStmt_SavepointQuotedVsBare(t *testing.T) {
	cmd := parseOneStmt(t, "SAVEPOINT 'my_savepoint'")
	s, ok := cmd.Stmt.(*SavepointStmt)
	if !ok {
		t.Fatalf("type = %T, want *SavepointStmt", cmd.Stmt)
	}
	if s.Name.Kind != Quoted || s.Name.Text != "'my_savepoint'" {
		t.Errorf("Name = %+v, want Quoted(\"'my_savepoint'\")", s.Name)
	}

	cmd = parseOneStmt(t, "SAVEPOINT my_savepoint")
	s, ok = cmd.Stmt.(*SavepointStmt)
	if !ok {
		t.Fatalf("type = %T, want *SavepointStmt", cmd.Stmt)
	}
	if s.Name.Kind != Ident || s.Name.Text != "my_savepoint" {
		t.Errorf("Name = %+v, want Ident(my_savepoint)", s.Name)
	}
}

func TestStmt_CreateTableAsSelect(t *testing.T) {
	cmd := parseOneStmt(t, "CREATE TABLE foo AS SELECT 1")
	ct, ok := cmd.Stmt.(*CreateTableStmt)
	if !ok {
		t.Fatalf("type = %T, want *CreateTableStmt", cmd.Stmt)
	}
	if ct.Temporary || ct.IfNotExists {
		t.Errorf("Temporary/IfNotExists should be false, got %+v", ct)
	}
	if ct.Name.Name.Text != "foo" {
		t.Errorf("Name = %+v, want foo", ct.Name)
	}
	if ct.Body.AsSelect == nil {
		t.Fatalf("Body.AsSelect is nil")
	}
}

func TestStmt_AlterTableRenameColumn(t *testing.T) {
	cmd := parseOneStmt(t, "ALTER TABLE foo RENAME COLUMN baz TO bar")
	at, ok := cmd.Stmt.(*AlterTableStmt)
	if !ok {
		t.Fatalf("type = %T, want *AlterTableStmt", cmd.Stmt)
	}
	rc, ok := at.Body.(*RenameColumnBody)
	if !ok {
		t.Fatalf("Body type = %T, want *RenameColumnBody", at.Body)
	}
	if rc.Old.Text != "baz" || rc.New.Text != "bar" {
		t.Errorf("got %+v", rc)
	}
}

func TestStmt_FunctionCallDistinctFilterOver(t *testing.T) {
	cmd := parseOneStmt(t, "SELECT func(DISTINCT 1,2) FILTER (WHERE x) OVER window_name")
	sel, ok := cmd.Stmt.(*SelectStmt)
	if !ok {
		t.Fatalf("type = %T, want *SelectStmt", cmd.Stmt)
	}
	cols := sel.Select.Body.Select.Columns
	if len(cols) != 1 {
		t.Fatalf("Columns count = %d, want 1", len(cols))
	}
	fc, ok := cols[0].Expr.(*FunctionCallExpr)
	if !ok {
		t.Fatalf("Expr type = %T, want *FunctionCallExpr", cols[0].Expr)
	}
	if fc.Name.Text != "func" {
		t.Errorf("Name = %+v, want func", fc.Name)
	}
	if fc.Distinctness != DistinctnessDistinct {
		t.Errorf("Distinctness = %v, want DistinctnessDistinct", fc.Distinctness)
	}
	if len(fc.Args) != 2 {
		t.Errorf("Args count = %d, want 2", len(fc.Args))
	}
	if fc.FilterOver.Filter == nil {
		t.Errorf("Filter is nil")
	}
	if fc.FilterOver.Over == nil || fc.FilterOver.Over.Name == nil || fc.FilterOver.Over.Name.Text != "window_name" {
		t.Errorf("Over = %+v, want Name(window_name)", fc.FilterOver.Over)
	}
}

func TestStmt_CastWithTypeSize(t *testing.T) {
	cmd := parseOneStmt(t, "SELECT CAST(1 AS DECIMAL(10, 5))")
	sel := cmd.Stmt.(*SelectStmt)
	cast, ok := sel.Select.Body.Select.Columns[0].Expr.(*CastExpr)
	if !ok {
		t.Fatalf("type = %T, want *CastExpr", sel.Select.Body.Select.Columns[0].Expr)
	}
	if cast.Type.Name != "DECIMAL" {
		t.Errorf("Type.Name = %q, want DECIMAL", cast.Type.Name)
	}
	if cast.Type.Size == nil {
		t.Fatalf("Type.Size is nil")
	}
	n1, ok := cast.Type.Size.N1.(*LiteralExpr)
	if !ok || n1.Literal.Text != "10" {
		t.Errorf("Size.N1 = %+v, want Numeric(10)", cast.Type.Size.N1)
	}
	if cast.Type.Size.N2 == nil {
		t.Fatalf("Size.N2 is nil")
	}
	n2, ok := cast.Type.Size.N2.(*LiteralExpr)
	if !ok || n2.Literal.Text != "5" {
		t.Errorf("Size.N2 = %+v, want Numeric(5)", cast.Type.Size.N2)
	}
}

func TestStmt_CompoundSelectLeftAssociative(t *testing.T) {
	cmd := parseOneStmt(t, "SELECT a FROM t0 UNION SELECT b FROM t1 EXCEPT SELECT c FROM t2")
	sel := cmd.Stmt.(*SelectStmt)
	body := sel.Select.Body
	if len(body.Compounds) != 2 {
		t.Fatalf("Compounds count = %d, want 2", len(body.Compounds))
	}
	if body.Compounds[0].Op != CompoundUnion {
		t.Errorf("Compounds[0].Op = %v, want CompoundUnion", body.Compounds[0].Op)
	}
	if body.Compounds[1].Op != CompoundExcept {
		t.Errorf("Compounds[1].Op = %v, want CompoundExcept", body.Compounds[1].Op)
	}
}

func TestStmt_JoinTypeIllegalCombinationFails(t *testing.T) {
	for _, in := range []string{
		"SELECT * FROM a INNER OUTER JOIN b",
		"SELECT * FROM a OUTER JOIN b",
	} {
		_, err := New(in).Next()
		if err == nil {
			t.Errorf("%q: expected error, got none", in)
		}
	}
}

func TestStmt_JoinTypeFullIsLeftRightOuter(t *testing.T) {
	cmd := parseOneStmt(t, "SELECT * FROM a FULL JOIN b")
	sel := cmd.Stmt.(*SelectStmt)
	joins := sel.Select.Body.Select.From.Joins
	if len(joins) != 1 {
		t.Fatalf("Joins count = %d, want 1", len(joins))
	}
	jt := joins[0].Operator.Type
	if !jt.Has(JoinLeft) || !jt.Has(JoinRight) || !jt.Has(JoinOuter) {
		t.Errorf("JoinType = %v, want LEFT|RIGHT|OUTER", jt)
	}
}

func TestStmt_ContextSensitiveWindowAsAlias(t *testing.T) {
	cmd := parseOneStmt(t, "SELECT * FROM t0 WINDOW JOIN t0")
	sel := cmd.Stmt.(*SelectStmt)
	from := sel.Select.Body.Select.From
	if from.Select.Alias == nil || from.Select.Alias.Text != "WINDOW" {
		t.Fatalf("Select.Alias = %+v, want WINDOW", from.Select.Alias)
	}
	if len(from.Joins) != 1 {
		t.Fatalf("Joins count = %d, want 1", len(from.Joins))
	}
}

func TestStmt_ContextSensitiveWindowClause(t *testing.T) {
	cmd := parseOneStmt(t, "SELECT * FROM t0 WINDOW w AS (PARTITION BY x)")
	sel := cmd.Stmt.(*SelectStmt)
	core := sel.Select.Body.Select
	if len(core.Windows) != 1 {
		t.Fatalf("Windows count = %d, want 1", len(core.Windows))
	}
	if core.Windows[0].Name.Text != "w" {
		t.Errorf("Windows[0].Name = %+v, want w", core.Windows[0].Name)
	}
	if len(core.Windows[0].Def.PartitionBy) != 1 {
		t.Errorf("PartitionBy count = %d, want 1", len(core.Windows[0].Def.PartitionBy))
	}
}

func TestStmt_NotBetweenSetsNotFlag(t *testing.T) {
	expr := parseOneExpr(t, "x NOT BETWEEN a AND b")
	be, ok := expr.(*BetweenExpr)
	if !ok {
		t.Fatalf("type = %T, want *BetweenExpr", expr)
	}
	if !be.Not {
		t.Errorf("Not = false, want true")
	}
}

func TestStmt_NotInNotLikeNotMatch(t *testing.T) {
	expr := parseOneExpr(t, "x NOT IN (1, 2)")
	il, ok := expr.(*InListExpr)
	if !ok || !il.Not {
		t.Fatalf("got %T %+v, want InListExpr{Not:true}", expr, expr)
	}

	expr = parseOneExpr(t, "x NOT LIKE 'a%'")
	le, ok := expr.(*LikeExpr)
	if !ok || !le.Not {
		t.Fatalf("got %T %+v, want LikeExpr{Not:true}", expr, expr)
	}

	expr = parseOneExpr(t, "x NOT MATCH y")
	me, ok := expr.(*MatchExpr)
	if !ok || !me.Not {
		t.Fatalf("got %T %+v, want MatchExpr{Not:true}", expr, expr)
	}
}

func TestStmt_VirtualTableArgSpans(t *testing.T) {
	cmd := parseOneStmt(t, `CREATE VIRTUAL TABLE ft USING fts5(x, tokenize = '''porter'' ''ascii''')`)
	vt, ok := cmd.Stmt.(*CreateVirtualTableStmt)
	if !ok {
		t.Fatalf("type = %T, want *CreateVirtualTableStmt", cmd.Stmt)
	}
	if len(vt.Args) != 2 {
		t.Fatalf("Args count = %d, want 2: %+v", len(vt.Args), vt.Args)
	}
	if vt.Args[0] != "x" {
		t.Errorf("Args[0] = %q, want %q", vt.Args[0], "x")
	}
	want := `tokenize = '''porter'' ''ascii'''`
	if vt.Args[1] != want {
		t.Errorf("Args[1] = %q, want %q", vt.Args[1], want)
	}
}

func TestStmt_VirtualTableEmptyArgListOK(t *testing.T) {
	cmd := parseOneStmt(t, "CREATE VIRTUAL TABLE ft USING fts5()")
	vt := cmd.Stmt.(*CreateVirtualTableStmt)
	if len(vt.Args) != 0 {
		t.Errorf("Args count = %d, want 0", len(vt.Args))
	}
}

func TestStmt_VirtualTableEmptyArgumentFails(t *testing.T) {
	for _, in := range []string{
		"CREATE VIRTUAL TABLE ft USING fts5(x, , y)",
		"CREATE VIRTUAL TABLE ft USING fts5(x,)",
	} {
		_, err := New(in).Next()
		if err == nil {
			t.Errorf("%q: expected error for empty argument, got none", in)
		}
	}
}

func TestStmt_VirtualTableBalancedParenArgs(t *testing.T) {
	cmd := parseOneStmt(t, "CREATE VIRTUAL TABLE t USING mod(x INTEGER, y DECIMAL(10,5))")
	vt := cmd.Stmt.(*CreateVirtualTableStmt)
	if len(vt.Args) != 2 {
		t.Fatalf("Args count = %d, want 2: %+v", len(vt.Args), vt.Args)
	}
	if vt.Args[1] != "y DECIMAL(10,5)" {
		t.Errorf("Args[1] = %q, want %q", vt.Args[1], "y DECIMAL(10,5)")
	}
}

func TestStmt_UpsertChain(t *testing.T) {
	cmd := parseOneStmt(t, "INSERT INTO t (a,b) VALUES (1,2) ON CONFLICT (a) DO UPDATE SET b=3 WHERE a>0 RETURNING *")
	ins, ok := cmd.Stmt.(*InsertStmt)
	if !ok {
		t.Fatalf("type = %T, want *InsertStmt", cmd.Stmt)
	}
	if len(ins.Upsert) != 1 {
		t.Fatalf("Upsert count = %d, want 1", len(ins.Upsert))
	}
	cl := ins.Upsert[0]
	if cl.Action != UpsertUpdate {
		t.Errorf("Action = %v, want UpsertUpdate", cl.Action)
	}
	if cl.Target == nil || len(cl.Target.Columns) != 1 {
		t.Errorf("Target = %+v, want one column", cl.Target)
	}
	if cl.Where == nil {
		t.Errorf("Where is nil")
	}
	if len(ins.Returning) != 1 || !ins.Returning[0].Star {
		t.Errorf("Returning = %+v, want [*]", ins.Returning)
	}
}

func TestStmt_UpsertDoNothing(t *testing.T) {
	cmd := parseOneStmt(t, "INSERT INTO t VALUES (1) ON CONFLICT DO NOTHING")
	ins := cmd.Stmt.(*InsertStmt)
	if len(ins.Upsert) != 1 || ins.Upsert[0].Action != UpsertNothing {
		t.Errorf("Upsert = %+v, want one UpsertNothing clause", ins.Upsert)
	}
}

func TestStmt_CreateTriggerBody(t *testing.T) {
	cmd := parseOneStmt(t, `CREATE TRIGGER trg AFTER INSERT ON t BEGIN SELECT 1; UPDATE t SET a=1; END`)
	tr, ok := cmd.Stmt.(*CreateTriggerStmt)
	if !ok {
		t.Fatalf("type = %T, want *CreateTriggerStmt", cmd.Stmt)
	}
	if tr.Timing != TriggerAfter {
		t.Errorf("Timing = %v, want TriggerAfter", tr.Timing)
	}
	if tr.Event.Kind != TriggerOnInsert {
		t.Errorf("Event.Kind = %v, want TriggerOnInsert", tr.Event.Kind)
	}
	if len(tr.Body) != 2 {
		t.Fatalf("Body count = %d, want 2", len(tr.Body))
	}
}

func TestStmt_WithRecursiveCTE(t *testing.T) {
	cmd := parseOneStmt(t, "WITH RECURSIVE cnt(x) AS (SELECT 1 UNION SELECT x+1 FROM cnt WHERE x<10) SELECT x FROM cnt")
	sel, ok := cmd.Stmt.(*SelectStmt)
	if !ok {
		t.Fatalf("type = %T, want *SelectStmt", cmd.Stmt)
	}
	if sel.Select.With == nil || !sel.Select.With.Recursive {
		t.Fatalf("With = %+v, want Recursive", sel.Select.With)
	}
	if len(sel.Select.With.Ctes) != 1 || sel.Select.With.Ctes[0].Name.Text != "cnt" {
		t.Errorf("Ctes = %+v", sel.Select.With.Ctes)
	}
}

func TestStmt_ExplainAndExplainQueryPlan(t *testing.T) {
	cmd := parseOneStmt(t, "EXPLAIN SELECT 1")
	if cmd.Explain != Explained {
		t.Errorf("Explain = %v, want Explained", cmd.Explain)
	}
	if _, ok := cmd.Stmt.(*SelectStmt); !ok {
		t.Errorf("Stmt type = %T, want *SelectStmt", cmd.Stmt)
	}

	cmd = parseOneStmt(t, "EXPLAIN QUERY PLAN SELECT 1")
	if cmd.Explain != ExplainedQueryPlan {
		t.Errorf("Explain = %v, want ExplainedQueryPlan", cmd.Explain)
	}
}

func TestStmt_StatementSeparation(t *testing.T) {
	p := New("SELECT 1; SELECT 2;; SELECT 3")
	var got []string
	for {
		cmd, err := p.Next()
		if err != nil {
			t.Fatalf("Next: %v", err)
		}
		if cmd == nil {
			break
		}
		s := cmd.Stmt.(*SelectStmt)
		lit := s.Select.Body.Select.Columns[0].Expr.(*LiteralExpr)
		got = append(got, lit.Literal.Text)
	}
	if len(got) != 3 || got[0] != "1" || got[1] != "2" || got[2] != "3" {
		t.Errorf("got %v, want [1 2 3]", got)
	}
}

func TestStmt_TrailingGarbageWithoutSemicolonFails(t *testing.T) {
	p := New("SELECT 1 SELECT 2")
	if _, err := p.Next(); err == nil {
		t.Fatalf("expected error for missing separator")
	}
}

func TestStmt_EmptyInputYieldsNoStatements(t *testing.T) {
	for _, in := range []string{"", ";", ";;;"} {
		cmd, err := New(in).Next()
		if err != nil {
			t.Fatalf("%q: unexpected error: %v", in, err)
		}
		if cmd != nil {
			t.Errorf("%q: got %+v, want nil", in, cmd)
		}
	}
}

func TestStmt_PrefixUnaryPrecedence(t *testing.T) {
	// NOT 1 + 1 parses as NOT (1+1).
	expr := parseOneExpr(t, "NOT 1 + 1")
	u, ok := expr.(*UnaryExpr)
	if !ok || u.Op != UnaryNot {
		t.Fatalf("got %T %+v, want UnaryExpr{Op:UnaryNot}", expr, expr)
	}
	if _, ok := u.Operand.(*BinaryExpr); !ok {
		t.Errorf("Operand type = %T, want *BinaryExpr", u.Operand)
	}

	// ~1 + 1 parses as (~1)+1.
	expr = parseOneExpr(t, "~1 + 1")
	bin, ok := expr.(*BinaryExpr)
	if !ok || bin.Op != OpAdd {
		t.Fatalf("got %T %+v, want BinaryExpr{Op:OpAdd}", expr, expr)
	}
	if _, ok := bin.Left.(*UnaryExpr); !ok {
		t.Errorf("Left type = %T, want *UnaryExpr", bin.Left)
	}
}

func TestStmt_PragmaForms(t *testing.T) {
	cmd := parseOneStmt(t, "PRAGMA foreign_keys")
	pr, ok := cmd.Stmt.(*PragmaStmt)
	if !ok {
		t.Fatalf("type = %T, want *PragmaStmt", cmd.Stmt)
	}
	if pr.Value != nil {
		t.Errorf("Value = %+v, want nil", pr.Value)
	}

	cmd = parseOneStmt(t, "PRAGMA foreign_keys = ON")
	pr = cmd.Stmt.(*PragmaStmt)
	if pr.Value == nil || pr.Value.Form != PragmaValueEq {
		t.Fatalf("Value = %+v, want PragmaValueEq", pr.Value)
	}

	cmd = parseOneStmt(t, "PRAGMA table_info(t)")
	pr = cmd.Stmt.(*PragmaStmt)
	if pr.Value == nil || pr.Value.Form != PragmaValueCall {
		t.Fatalf("Value = %+v, want PragmaValueCall", pr.Value)
	}
}
