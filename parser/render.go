package parser

import (
	"fmt"
	"strings"
)

// Render reconstructs SQL text for cmd. It is not a formatter in the
// sense of preserving the original layout — it exists so a caller (see
// cmd/sqlfmt) can round-trip a parsed Cmd back into valid SQL as a sanity
// check on the AST, the way the teacher's tests compare re-rendered
// output against golden files. Sub-expressions are parenthesized
// defensively rather than precedence-aware, so the output always parses
// back to an equivalent tree even where it's not the tightest spelling.
func Render(cmd *Cmd) string {
	var b strings.Builder
	switch cmd.Explain {
	case Explained:
		b.WriteString("EXPLAIN ")
	case ExplainedQueryPlan:
		b.WriteString("EXPLAIN QUERY PLAN ")
	}
	renderStmt(&b, cmd.Stmt)
	b.WriteByte(';')
	return b.String()
}

func renderName(b *strings.Builder, n Name) {
	b.WriteString(n.Text)
}

func renderQualifiedName(b *strings.Builder, qn QualifiedName) {
	if qn.Schema != nil {
		renderName(b, *qn.Schema)
		b.WriteByte('.')
	}
	renderName(b, qn.Name)
}

func renderNameList(b *strings.Builder, names []Name) {
	b.WriteByte('(')
	for i, n := range names {
		if i > 0 {
			b.WriteString(", ")
		}
		renderName(b, n)
	}
	b.WriteByte(')')
}

func renderStmt(b *strings.Builder, s Stmt) {
	switch st := s.(type) {
	case *BeginStmt:
		b.WriteString("BEGIN")
		switch st.Kind {
		case BeginDeferred:
			b.WriteString(" DEFERRED")
		case BeginImmediate:
			b.WriteString(" IMMEDIATE")
		case BeginExclusive:
			b.WriteString(" EXCLUSIVE")
		}
		if st.Name != nil {
			b.WriteString(" TRANSACTION ")
			renderName(b, *st.Name)
		}
	case *CommitStmt:
		b.WriteString("COMMIT")
	case *RollbackStmt:
		b.WriteString("ROLLBACK")
		if st.TxName != nil {
			b.WriteString(" TRANSACTION ")
			renderName(b, *st.TxName)
		}
		if st.SavepointName != nil {
			b.WriteString(" TO ")
			renderName(b, *st.SavepointName)
		}
	case *SavepointStmt:
		b.WriteString("SAVEPOINT ")
		renderName(b, st.Name)
	case *ReleaseStmt:
		b.WriteString("RELEASE ")
		renderName(b, st.Name)
	case *SelectStmt:
		renderSelect(b, &st.Select)
	case *InsertStmt:
		renderInsert(b, st)
	case *UpdateStmt:
		renderUpdate(b, st)
	case *DeleteStmt:
		renderDelete(b, st)
	case *CreateTableStmt:
		renderCreateTable(b, st)
	case *CreateIndexStmt:
		renderCreateIndex(b, st)
	case *CreateViewStmt:
		renderCreateView(b, st)
	case *CreateTriggerStmt:
		renderCreateTrigger(b, st)
	case *CreateVirtualTableStmt:
		renderCreateVirtualTable(b, st)
	case *DropTableStmt:
		b.WriteString("DROP TABLE ")
		renderIfExists(b, st.IfExists)
		renderQualifiedName(b, st.Name)
	case *DropIndexStmt:
		b.WriteString("DROP INDEX ")
		renderIfExists(b, st.IfExists)
		renderQualifiedName(b, st.Name)
	case *DropViewStmt:
		b.WriteString("DROP VIEW ")
		renderIfExists(b, st.IfExists)
		renderQualifiedName(b, st.Name)
	case *DropTriggerStmt:
		b.WriteString("DROP TRIGGER ")
		renderIfExists(b, st.IfExists)
		renderQualifiedName(b, st.Name)
	case *AlterTableStmt:
		renderAlterTable(b, st)
	case *AttachStmt:
		b.WriteString("ATTACH ")
		renderExpr(b, st.Expr)
		b.WriteString(" AS ")
		renderName(b, st.Name)
	case *DetachStmt:
		b.WriteString("DETACH ")
		renderName(b, st.Name)
	case *PragmaStmt:
		b.WriteString("PRAGMA ")
		renderQualifiedName(b, st.Name)
		if st.Value != nil {
			switch st.Value.Form {
			case PragmaValueEq:
				b.WriteString(" = ")
				renderExpr(b, st.Value.Value)
			case PragmaValueCall:
				b.WriteByte('(')
				renderExpr(b, st.Value.Value)
				b.WriteByte(')')
			}
		}
	case *VacuumStmt:
		b.WriteString("VACUUM")
		if st.Schema != nil {
			b.WriteByte(' ')
			renderName(b, *st.Schema)
		}
		if st.Into != nil {
			b.WriteString(" INTO ")
			renderExpr(b, st.Into)
		}
	case *AnalyzeStmt:
		b.WriteString("ANALYZE")
		if st.Name != nil {
			b.WriteByte(' ')
			renderQualifiedName(b, *st.Name)
		}
	case *ReindexStmt:
		b.WriteString("REINDEX")
		if st.Name != nil {
			b.WriteByte(' ')
			renderQualifiedName(b, *st.Name)
		}
	default:
		b.WriteString(fmt.Sprintf("/* unrendered statement %T */", s))
	}
}

func renderIfExists(b *strings.Builder, ifExists bool) {
	if ifExists {
		b.WriteString("IF EXISTS ")
	}
}

func renderIfNotExists(b *strings.Builder, ifNotExists bool) {
	if ifNotExists {
		b.WriteString("IF NOT EXISTS ")
	}
}

func renderReturning(b *strings.Builder, cols []ResultColumn) {
	if len(cols) == 0 {
		return
	}
	b.WriteString(" RETURNING ")
	renderResultColumns(b, cols)
}

func renderOrderByLimit(b *strings.Builder, orderBy []OrderingTerm, limit *Limit) {
	if len(orderBy) > 0 {
		b.WriteString(" ORDER BY ")
		renderOrderingTerms(b, orderBy)
	}
	if limit != nil {
		b.WriteString(" LIMIT ")
		renderExpr(b, limit.Expr)
		if limit.Offset != nil {
			b.WriteString(" OFFSET ")
			renderExpr(b, limit.Offset)
		}
	}
}

func renderInsert(b *strings.Builder, st *InsertStmt) {
	if st.With != nil {
		renderWith(b, st.With)
		b.WriteByte(' ')
	}
	if st.Or == ConflictReplace {
		b.WriteString("REPLACE INTO ")
	} else {
		b.WriteString("INSERT ")
		renderOrConflict(b, st.Or)
		b.WriteString("INTO ")
	}
	renderQualifiedName(b, st.Table)
	if st.Alias != nil {
		b.WriteString(" AS ")
		renderName(b, *st.Alias)
	}
	if len(st.Columns) > 0 {
		b.WriteByte(' ')
		renderNameList(b, st.Columns)
	}
	switch st.Source {
	case InsertDefaultValues:
		b.WriteString(" DEFAULT VALUES")
	case InsertValues:
		b.WriteString(" VALUES ")
		for i, row := range st.Values {
			if i > 0 {
				b.WriteString(", ")
			}
			b.WriteByte('(')
			for j, e := range row {
				if j > 0 {
					b.WriteString(", ")
				}
				renderExpr(b, e)
			}
			b.WriteByte(')')
		}
	case InsertSelect:
		b.WriteByte(' ')
		renderSelect(b, st.SelectStmt)
	}
	renderUpsertChain(b, st.Upsert)
	renderReturning(b, st.Returning)
}

func renderOrConflict(b *strings.Builder, action ConflictAction) {
	switch action {
	case ConflictRollback:
		b.WriteString("OR ROLLBACK ")
	case ConflictAbort:
		b.WriteString("OR ABORT ")
	case ConflictFail:
		b.WriteString("OR FAIL ")
	case ConflictIgnore:
		b.WriteString("OR IGNORE ")
	case ConflictReplace:
		b.WriteString("OR REPLACE ")
	}
}

func renderUpsertChain(b *strings.Builder, clauses []UpsertClause) {
	for _, c := range clauses {
		b.WriteString(" ON CONFLICT")
		if c.Target != nil {
			b.WriteByte(' ')
			b.WriteByte('(')
			for i, col := range c.Target.Columns {
				if i > 0 {
					b.WriteString(", ")
				}
				renderIndexedColumn(b, col)
			}
			b.WriteByte(')')
			if c.Target.Where != nil {
				b.WriteString(" WHERE ")
				renderExpr(b, c.Target.Where)
			}
		}
		b.WriteString(" DO ")
		switch c.Action {
		case UpsertNothing:
			b.WriteString("NOTHING")
		case UpsertUpdate:
			b.WriteString("UPDATE SET ")
			renderSetClauses(b, c.Set)
			if c.Where != nil {
				b.WriteString(" WHERE ")
				renderExpr(b, c.Where)
			}
		}
	}
}

func renderSetClauses(b *strings.Builder, clauses []SetClause) {
	for i, sc := range clauses {
		if i > 0 {
			b.WriteString(", ")
		}
		if len(sc.Columns) > 1 {
			renderNameList(b, sc.Columns)
		} else {
			renderName(b, sc.Columns[0])
		}
		b.WriteString(" = ")
		renderExpr(b, sc.Expr)
	}
}

func renderUpdate(b *strings.Builder, st *UpdateStmt) {
	if st.With != nil {
		renderWith(b, st.With)
		b.WriteByte(' ')
	}
	b.WriteString("UPDATE ")
	renderOrConflict(b, st.Or)
	renderQualifiedName(b, st.Table)
	if st.Alias != nil {
		b.WriteString(" AS ")
		renderName(b, *st.Alias)
	}
	renderIndexedBy(b, st.Indexed)
	b.WriteString(" SET ")
	renderSetClauses(b, st.Set)
	if st.From != nil {
		b.WriteString(" FROM ")
		renderFromClause(b, st.From)
	}
	if st.Where != nil {
		b.WriteString(" WHERE ")
		renderExpr(b, st.Where)
	}
	renderOrderByLimit(b, st.OrderBy, st.Limit)
	renderReturning(b, st.Returning)
}

func renderDelete(b *strings.Builder, st *DeleteStmt) {
	if st.With != nil {
		renderWith(b, st.With)
		b.WriteByte(' ')
	}
	b.WriteString("DELETE FROM ")
	renderQualifiedName(b, st.Table)
	if st.Alias != nil {
		b.WriteString(" AS ")
		renderName(b, *st.Alias)
	}
	renderIndexedBy(b, st.Indexed)
	if st.Where != nil {
		b.WriteString(" WHERE ")
		renderExpr(b, st.Where)
	}
	renderOrderByLimit(b, st.OrderBy, st.Limit)
	renderReturning(b, st.Returning)
}

func renderIndexedBy(b *strings.Builder, idx *IndexedBy) {
	if idx == nil {
		return
	}
	switch idx.Kind {
	case IndexedByName:
		b.WriteString(" INDEXED BY ")
		renderName(b, *idx.Name)
	case NotIndexed:
		b.WriteString(" NOT INDEXED")
	}
}

func renderWith(b *strings.Builder, with *With) {
	b.WriteString("WITH ")
	if with.Recursive {
		b.WriteString("RECURSIVE ")
	}
	for i, cte := range with.Ctes {
		if i > 0 {
			b.WriteString(", ")
		}
		renderName(b, cte.Name)
		if len(cte.Columns) > 0 {
			renderNameList(b, cte.Columns)
		}
		b.WriteString(" AS ")
		switch cte.Materialized {
		case Materialized:
			b.WriteString("MATERIALIZED ")
		case NotMaterialized:
			b.WriteString("NOT MATERIALIZED ")
		}
		b.WriteByte('(')
		renderSelect(b, &cte.Select)
		b.WriteByte(')')
	}
}

func renderSelect(b *strings.Builder, sel *Select) {
	if sel.With != nil {
		renderWith(b, sel.With)
		b.WriteByte(' ')
	}
	renderSelectCore(b, &sel.Body.Select)
	for _, c := range sel.Body.Compounds {
		switch c.Op {
		case CompoundUnion:
			b.WriteString(" UNION ")
		case CompoundUnionAll:
			b.WriteString(" UNION ALL ")
		case CompoundExcept:
			b.WriteString(" EXCEPT ")
		case CompoundIntersect:
			b.WriteString(" INTERSECT ")
		}
		renderSelectCore(b, &c.Select)
	}
	renderOrderByLimit(b, sel.OrderBy, sel.Limit)
}

func renderSelectCore(b *strings.Builder, core *SelectCore) {
	if core.Values != nil {
		b.WriteString("VALUES ")
		for i, row := range core.Values {
			if i > 0 {
				b.WriteString(", ")
			}
			b.WriteByte('(')
			for j, e := range row {
				if j > 0 {
					b.WriteString(", ")
				}
				renderExpr(b, e)
			}
			b.WriteByte(')')
		}
		return
	}
	b.WriteString("SELECT ")
	switch core.Distinctness {
	case DistinctnessDistinct:
		b.WriteString("DISTINCT ")
	case DistinctnessAll:
		b.WriteString("ALL ")
	}
	renderResultColumns(b, core.Columns)
	if core.From != nil {
		b.WriteString(" FROM ")
		renderFromClause(b, core.From)
	}
	if core.Where != nil {
		b.WriteString(" WHERE ")
		renderExpr(b, core.Where)
	}
	if len(core.GroupBy) > 0 {
		b.WriteString(" GROUP BY ")
		for i, e := range core.GroupBy {
			if i > 0 {
				b.WriteString(", ")
			}
			renderExpr(b, e)
		}
		if core.Having != nil {
			b.WriteString(" HAVING ")
			renderExpr(b, core.Having)
		}
	}
	for i, w := range core.Windows {
		if i == 0 {
			b.WriteString(" WINDOW ")
		} else {
			b.WriteString(", ")
		}
		renderName(b, w.Name)
		b.WriteString(" AS ")
		renderWindowDef(b, &w.Def)
	}
}

func renderResultColumns(b *strings.Builder, cols []ResultColumn) {
	for i, c := range cols {
		if i > 0 {
			b.WriteString(", ")
		}
		switch {
		case c.Star:
			b.WriteByte('*')
		case c.TableStar != nil:
			renderName(b, *c.TableStar)
			b.WriteString(".*")
		default:
			renderExpr(b, c.Expr)
			if c.Alias != nil {
				b.WriteString(" AS ")
				renderName(b, *c.Alias)
			}
		}
	}
}

func renderFromClause(b *strings.Builder, from *FromClause) {
	renderSelectTable(b, &from.Select)
	for _, j := range from.Joins {
		switch j.Operator.Kind {
		case JoinComma:
			b.WriteString(", ")
		case JoinTyped:
			b.WriteByte(' ')
			writeJoinTypeKeywords(b, j.Operator.Type)
			b.WriteString("JOIN ")
		}
		renderSelectTable(b, &j.Table)
		if j.Constraint != nil {
			if j.Constraint.On != nil {
				b.WriteString(" ON ")
				renderExpr(b, j.Constraint.On)
			} else if j.Constraint.Using != nil {
				b.WriteString(" USING ")
				renderNameList(b, j.Constraint.Using)
			}
		}
	}
}

func writeJoinTypeKeywords(b *strings.Builder, jt JoinType) {
	if jt == 0 {
		return
	}
	if jt.Has(JoinNatural) {
		b.WriteString("NATURAL ")
	}
	if jt.Has(JoinCross) {
		b.WriteString("CROSS ")
		return
	}
	if jt.Has(JoinLeft) && jt.Has(JoinRight) {
		b.WriteString("FULL ")
	} else if jt.Has(JoinLeft) {
		b.WriteString("LEFT ")
	} else if jt.Has(JoinRight) {
		b.WriteString("RIGHT ")
	}
	if jt.Has(JoinOuter) {
		b.WriteString("OUTER ")
	}
	if jt.Has(JoinInner) {
		b.WriteString("INNER ")
	}
}

func renderSelectTable(b *strings.Builder, st *SelectTable) {
	switch st.Kind {
	case STTable:
		renderQualifiedName(b, st.Name)
		if st.Alias != nil {
			b.WriteString(" AS ")
			renderName(b, *st.Alias)
		}
		if st.Indexed != nil {
			switch st.Indexed.Kind {
			case IndexedByName:
				b.WriteString(" INDEXED BY ")
				renderName(b, *st.Indexed.Name)
			case NotIndexed:
				b.WriteString(" NOT INDEXED")
			}
		}
	case STTableCall:
		renderQualifiedName(b, st.Name)
		b.WriteByte('(')
		for i, a := range st.Args {
			if i > 0 {
				b.WriteString(", ")
			}
			renderExpr(b, a)
		}
		b.WriteByte(')')
		if st.Alias != nil {
			b.WriteString(" AS ")
			renderName(b, *st.Alias)
		}
	case STSelect:
		b.WriteByte('(')
		renderSelect(b, st.Select)
		b.WriteByte(')')
		if st.Alias != nil {
			b.WriteString(" AS ")
			renderName(b, *st.Alias)
		}
	case STSub:
		b.WriteByte('(')
		renderFromClause(b, st.From)
		b.WriteByte(')')
	}
}

func renderOrderingTerms(b *strings.Builder, terms []OrderingTerm) {
	for i, t := range terms {
		if i > 0 {
			b.WriteString(", ")
		}
		renderExpr(b, t.Expr)
		if t.Collate != nil {
			b.WriteString(" COLLATE ")
			renderName(b, *t.Collate)
		}
		switch t.Order {
		case SortAsc:
			b.WriteString(" ASC")
		case SortDesc:
			b.WriteString(" DESC")
		}
		if t.NullsFirst != nil {
			if *t.NullsFirst {
				b.WriteString(" NULLS FIRST")
			} else {
				b.WriteString(" NULLS LAST")
			}
		}
	}
}

func renderIndexedColumn(b *strings.Builder, c IndexedColumn) {
	renderExpr(b, c.Expr)
	if c.Collate != nil {
		b.WriteString(" COLLATE ")
		renderName(b, *c.Collate)
	}
	switch c.Order {
	case SortAsc:
		b.WriteString(" ASC")
	case SortDesc:
		b.WriteString(" DESC")
	}
}

func renderWindowDef(b *strings.Builder, def *WindowDef) {
	b.WriteByte('(')
	wrote := false
	if def.BaseWindowName != nil {
		renderName(b, *def.BaseWindowName)
		wrote = true
	}
	if len(def.PartitionBy) > 0 {
		if wrote {
			b.WriteByte(' ')
		}
		b.WriteString("PARTITION BY ")
		for i, e := range def.PartitionBy {
			if i > 0 {
				b.WriteString(", ")
			}
			renderExpr(b, e)
		}
		wrote = true
	}
	if len(def.OrderBy) > 0 {
		if wrote {
			b.WriteByte(' ')
		}
		b.WriteString("ORDER BY ")
		renderOrderingTerms(b, def.OrderBy)
		wrote = true
	}
	if def.Frame != nil {
		if wrote {
			b.WriteByte(' ')
		}
		renderFrame(b, def.Frame)
	}
	b.WriteByte(')')
}

func renderFrame(b *strings.Builder, f *Frame) {
	switch f.Mode {
	case FrameRange:
		b.WriteString("RANGE ")
	case FrameRows:
		b.WriteString("ROWS ")
	case FrameGroups:
		b.WriteString("GROUPS ")
	}
	if f.End != nil {
		b.WriteString("BETWEEN ")
		renderFrameBound(b, f.Start)
		b.WriteString(" AND ")
		renderFrameBound(b, *f.End)
	} else {
		renderFrameBound(b, f.Start)
	}
	switch f.Exclude {
	case ExcludeNoOthers:
		b.WriteString(" EXCLUDE NO OTHERS")
	case ExcludeCurrentRow:
		b.WriteString(" EXCLUDE CURRENT ROW")
	case ExcludeGroup:
		b.WriteString(" EXCLUDE GROUP")
	case ExcludeTies:
		b.WriteString(" EXCLUDE TIES")
	}
}

func renderFrameBound(b *strings.Builder, fb FrameBound) {
	switch fb.Kind {
	case BoundUnboundedPreceding:
		b.WriteString("UNBOUNDED PRECEDING")
	case BoundPreceding:
		renderExpr(b, fb.Expr)
		b.WriteString(" PRECEDING")
	case BoundCurrentRow:
		b.WriteString("CURRENT ROW")
	case BoundFollowing:
		renderExpr(b, fb.Expr)
		b.WriteString(" FOLLOWING")
	case BoundUnboundedFollowing:
		b.WriteString("UNBOUNDED FOLLOWING")
	}
}

func renderCreateTable(b *strings.Builder, st *CreateTableStmt) {
	b.WriteString("CREATE ")
	if st.Temporary {
		b.WriteString("TEMP ")
	}
	b.WriteString("TABLE ")
	renderIfNotExists(b, st.IfNotExists)
	renderQualifiedName(b, st.Name)
	if st.Body.AsSelect != nil {
		b.WriteString(" AS ")
		renderSelect(b, st.Body.AsSelect)
		return
	}
	b.WriteString(" (")
	first := true
	for _, col := range st.Body.Columns {
		if !first {
			b.WriteString(", ")
		}
		first = false
		renderColumnDef(b, col)
	}
	for _, tc := range st.Body.Constraints {
		if !first {
			b.WriteString(", ")
		}
		first = false
		renderTableConstraint(b, tc)
	}
	b.WriteByte(')')
	if st.Body.Options&OptWithoutRowid != 0 {
		b.WriteString(" WITHOUT ROWID")
	}
	if st.Body.Options&OptStrict != 0 {
		if st.Body.Options&OptWithoutRowid != 0 {
			b.WriteByte(',')
		}
		b.WriteString(" STRICT")
	}
}

func renderColumnDef(b *strings.Builder, col ColumnDef) {
	renderName(b, col.Name)
	if col.Type != nil {
		b.WriteByte(' ')
		renderTypeName(b, *col.Type)
	}
	for _, cc := range col.Constraints {
		b.WriteByte(' ')
		renderColumnConstraint(b, cc)
	}
}

func renderTypeName(b *strings.Builder, t TypeName) {
	b.WriteString(t.Name)
	if t.Size != nil {
		b.WriteByte('(')
		renderExpr(b, t.Size.N1)
		if t.Size.N2 != nil {
			b.WriteString(", ")
			renderExpr(b, t.Size.N2)
		}
		b.WriteByte(')')
	}
}

func renderColumnConstraint(b *strings.Builder, cc ColumnConstraint) {
	if cc.Name != nil {
		b.WriteString("CONSTRAINT ")
		renderName(b, *cc.Name)
		b.WriteByte(' ')
	}
	switch spec := cc.Spec.(type) {
	case *PrimaryKeyConstraint:
		b.WriteString("PRIMARY KEY")
		switch spec.Order {
		case SortAsc:
			b.WriteString(" ASC")
		case SortDesc:
			b.WriteString(" DESC")
		}
		renderConflictSuffix(b, spec.OnConflict)
		if spec.Autoincrement {
			b.WriteString(" AUTOINCREMENT")
		}
	case *NullConstraint:
		if spec.Not {
			b.WriteString("NOT NULL")
		} else {
			b.WriteString("NULL")
		}
		renderConflictSuffix(b, spec.OnConflict)
	case *UniqueConstraint:
		b.WriteString("UNIQUE")
		renderConflictSuffix(b, spec.OnConflict)
	case *CheckConstraint:
		b.WriteString("CHECK (")
		renderExpr(b, spec.Expr)
		b.WriteByte(')')
	case *DefaultConstraint:
		b.WriteString("DEFAULT (")
		renderExpr(b, spec.Expr)
		b.WriteByte(')')
	case *CollateConstraint:
		b.WriteString("COLLATE ")
		renderName(b, spec.Name)
	case *ReferencesConstraint:
		renderForeignKeyClause(b, spec.Clause)
	case *GeneratedConstraint:
		b.WriteString("GENERATED ALWAYS AS (")
		renderExpr(b, spec.Expr)
		b.WriteByte(')')
		if spec.Stored != nil {
			if *spec.Stored {
				b.WriteString(" STORED")
			} else {
				b.WriteString(" VIRTUAL")
			}
		}
	}
}

func renderConflictSuffix(b *strings.Builder, action ConflictAction) {
	switch action {
	case ConflictRollback:
		b.WriteString(" ON CONFLICT ROLLBACK")
	case ConflictAbort:
		b.WriteString(" ON CONFLICT ABORT")
	case ConflictFail:
		b.WriteString(" ON CONFLICT FAIL")
	case ConflictIgnore:
		b.WriteString(" ON CONFLICT IGNORE")
	case ConflictReplace:
		b.WriteString(" ON CONFLICT REPLACE")
	}
}

func renderTableConstraint(b *strings.Builder, tc TableConstraint) {
	if tc.Name != nil {
		b.WriteString("CONSTRAINT ")
		renderName(b, *tc.Name)
		b.WriteByte(' ')
	}
	switch spec := tc.Spec.(type) {
	case *PrimaryKeyTableConstraint:
		b.WriteString("PRIMARY KEY (")
		for i, c := range spec.Columns {
			if i > 0 {
				b.WriteString(", ")
			}
			renderIndexedColumn(b, c)
		}
		b.WriteByte(')')
		renderConflictSuffix(b, spec.OnConflict)
	case *UniqueTableConstraint:
		b.WriteString("UNIQUE (")
		for i, c := range spec.Columns {
			if i > 0 {
				b.WriteString(", ")
			}
			renderIndexedColumn(b, c)
		}
		b.WriteByte(')')
		renderConflictSuffix(b, spec.OnConflict)
	case *CheckTableConstraint:
		b.WriteString("CHECK (")
		renderExpr(b, spec.Expr)
		b.WriteByte(')')
	case *ForeignKeyTableConstraint:
		b.WriteString("FOREIGN KEY ")
		renderNameList(b, spec.Columns)
		b.WriteByte(' ')
		renderForeignKeyClause(b, spec.Clause)
	}
}

func renderForeignKeyClause(b *strings.Builder, fk ForeignKeyClause) {
	b.WriteString("REFERENCES ")
	renderQualifiedName(b, fk.Table)
	if len(fk.Columns) > 0 {
		b.WriteByte(' ')
		renderNameList(b, fk.Columns)
	}
	for _, a := range fk.Actions {
		b.WriteString(" ON ")
		if a.Event == OnDelete {
			b.WriteString("DELETE ")
		} else {
			b.WriteString("UPDATE ")
		}
		switch a.Action {
		case RefSetNull:
			b.WriteString("SET NULL")
		case RefSetDefault:
			b.WriteString("SET DEFAULT")
		case RefCascade:
			b.WriteString("CASCADE")
		case RefRestrict:
			b.WriteString("RESTRICT")
		case RefNoAction:
			b.WriteString("NO ACTION")
		}
	}
	if fk.Deferrable != nil {
		if fk.Deferrable.Not {
			b.WriteString(" NOT")
		}
		b.WriteString(" DEFERRABLE")
		switch fk.Deferrable.Initially {
		case InitiallyDeferred:
			b.WriteString(" INITIALLY DEFERRED")
		case InitiallyImmediate:
			b.WriteString(" INITIALLY IMMEDIATE")
		}
	}
}

func renderCreateIndex(b *strings.Builder, st *CreateIndexStmt) {
	b.WriteString("CREATE ")
	if st.Unique {
		b.WriteString("UNIQUE ")
	}
	b.WriteString("INDEX ")
	renderIfNotExists(b, st.IfNotExists)
	renderQualifiedName(b, st.Name)
	b.WriteString(" ON ")
	renderName(b, st.Table)
	b.WriteByte('(')
	for i, c := range st.Columns {
		if i > 0 {
			b.WriteString(", ")
		}
		renderIndexedColumn(b, c)
	}
	b.WriteByte(')')
	if st.Where != nil {
		b.WriteString(" WHERE ")
		renderExpr(b, st.Where)
	}
}

func renderCreateView(b *strings.Builder, st *CreateViewStmt) {
	b.WriteString("CREATE ")
	if st.Temporary {
		b.WriteString("TEMP ")
	}
	b.WriteString("VIEW ")
	renderIfNotExists(b, st.IfNotExists)
	renderQualifiedName(b, st.Name)
	if len(st.Columns) > 0 {
		b.WriteByte(' ')
		renderNameList(b, st.Columns)
	}
	b.WriteString(" AS ")
	renderSelect(b, &st.Select)
}

func renderCreateTrigger(b *strings.Builder, st *CreateTriggerStmt) {
	b.WriteString("CREATE ")
	if st.Temporary {
		b.WriteString("TEMP ")
	}
	b.WriteString("TRIGGER ")
	renderIfNotExists(b, st.IfNotExists)
	renderQualifiedName(b, st.Name)
	switch st.Timing {
	case TriggerBefore:
		b.WriteString(" BEFORE")
	case TriggerAfter:
		b.WriteString(" AFTER")
	case TriggerInsteadOf:
		b.WriteString(" INSTEAD OF")
	}
	switch st.Event.Kind {
	case TriggerOnDelete:
		b.WriteString(" DELETE")
	case TriggerOnInsert:
		b.WriteString(" INSERT")
	case TriggerOnUpdate:
		b.WriteString(" UPDATE")
		if len(st.Event.OfColumns) > 0 {
			b.WriteString(" OF ")
			for i, n := range st.Event.OfColumns {
				if i > 0 {
					b.WriteString(", ")
				}
				renderName(b, n)
			}
		}
	}
	b.WriteString(" ON ")
	renderQualifiedName(b, st.Table)
	if st.ForEachRow {
		b.WriteString(" FOR EACH ROW")
	}
	if st.When != nil {
		b.WriteString(" WHEN ")
		renderExpr(b, st.When)
	}
	b.WriteString(" BEGIN ")
	for _, inner := range st.Body {
		renderStmt(b, inner)
		b.WriteString("; ")
	}
	b.WriteString("END")
}

func renderCreateVirtualTable(b *strings.Builder, st *CreateVirtualTableStmt) {
	b.WriteString("CREATE VIRTUAL TABLE ")
	renderIfNotExists(b, st.IfNotExists)
	renderQualifiedName(b, st.Name)
	b.WriteString(" USING ")
	renderName(b, st.ModuleName)
	if len(st.Args) > 0 {
		b.WriteByte('(')
		for i, a := range st.Args {
			if i > 0 {
				b.WriteString(", ")
			}
			b.WriteString(a)
		}
		b.WriteByte(')')
	}
}

func renderAlterTable(b *strings.Builder, st *AlterTableStmt) {
	b.WriteString("ALTER TABLE ")
	renderQualifiedName(b, st.Name)
	switch body := st.Body.(type) {
	case *RenameTableBody:
		b.WriteString(" RENAME TO ")
		renderName(b, body.NewName)
	case *RenameColumnBody:
		b.WriteString(" RENAME COLUMN ")
		renderName(b, body.Old)
		b.WriteString(" TO ")
		renderName(b, body.New)
	case *AddColumnBody:
		b.WriteString(" ADD COLUMN ")
		renderColumnDef(b, body.Column)
	case *DropColumnBody:
		b.WriteString(" DROP COLUMN ")
		renderName(b, body.Name)
	}
}

// renderExpr always parenthesizes compound sub-expressions so the
// re-rendered text round-trips to an equivalent tree regardless of the
// surrounding operator's precedence.
func renderExpr(b *strings.Builder, e Expr) {
	switch ex := e.(type) {
	case *LiteralExpr:
		b.WriteString(ex.Literal.Text)
	case *IdExpr:
		renderName(b, ex.Name)
	case *QualifiedExpr:
		renderName(b, ex.Table)
		b.WriteByte('.')
		renderName(b, ex.Column)
	case *DoublyQualifiedExpr:
		renderName(b, ex.Schema)
		b.WriteByte('.')
		renderName(b, ex.Table)
		b.WriteByte('.')
		renderName(b, ex.Column)
	case *VariableExpr:
		b.WriteString(ex.Text)
	case *UnaryExpr:
		renderUnaryOp(b, ex.Op)
		b.WriteByte('(')
		renderExpr(b, ex.Operand)
		b.WriteByte(')')
	case *BinaryExpr:
		b.WriteByte('(')
		renderExpr(b, ex.Left)
		b.WriteByte(')')
		b.WriteString(binaryOpSpelling(ex.Op))
		b.WriteByte('(')
		renderExpr(b, ex.Right)
		b.WriteByte(')')
	case *BetweenExpr:
		b.WriteByte('(')
		renderExpr(b, ex.Lhs)
		b.WriteByte(')')
		if ex.Not {
			b.WriteString(" NOT")
		}
		b.WriteString(" BETWEEN (")
		renderExpr(b, ex.Start)
		b.WriteString(") AND (")
		renderExpr(b, ex.End)
		b.WriteByte(')')
	case *LikeExpr:
		b.WriteByte('(')
		renderExpr(b, ex.Lhs)
		b.WriteByte(')')
		if ex.Not {
			b.WriteString(" NOT")
		}
		switch ex.Op {
		case LikeLike:
			b.WriteString(" LIKE (")
		case LikeGlob:
			b.WriteString(" GLOB (")
		case LikeRegexp:
			b.WriteString(" REGEXP (")
		}
		renderExpr(b, ex.Rhs)
		b.WriteByte(')')
		if ex.Escape != nil {
			b.WriteString(" ESCAPE (")
			renderExpr(b, ex.Escape)
			b.WriteByte(')')
		}
	case *MatchExpr:
		b.WriteByte('(')
		renderExpr(b, ex.Lhs)
		b.WriteByte(')')
		if ex.Not {
			b.WriteString(" NOT")
		}
		b.WriteString(" MATCH (")
		renderExpr(b, ex.Rhs)
		b.WriteByte(')')
	case *InListExpr:
		b.WriteByte('(')
		renderExpr(b, ex.Lhs)
		b.WriteByte(')')
		if ex.Not {
			b.WriteString(" NOT")
		}
		b.WriteString(" IN (")
		for i, item := range ex.List {
			if i > 0 {
				b.WriteString(", ")
			}
			renderExpr(b, item)
		}
		b.WriteByte(')')
	case *InSelectExpr:
		b.WriteByte('(')
		renderExpr(b, ex.Lhs)
		b.WriteByte(')')
		if ex.Not {
			b.WriteString(" NOT")
		}
		b.WriteString(" IN (")
		renderSelect(b, &ex.Select)
		b.WriteByte(')')
	case *InTableExpr:
		b.WriteByte('(')
		renderExpr(b, ex.Lhs)
		b.WriteByte(')')
		if ex.Not {
			b.WriteString(" NOT")
		}
		b.WriteString(" IN ")
		renderQualifiedName(b, ex.Table)
		if ex.Args != nil {
			b.WriteByte('(')
			for i, a := range ex.Args {
				if i > 0 {
					b.WriteString(", ")
				}
				renderExpr(b, a)
			}
			b.WriteByte(')')
		}
	case *IsNullExpr:
		b.WriteByte('(')
		renderExpr(b, ex.Operand)
		b.WriteString(") ISNULL")
	case *NotNullExpr:
		b.WriteByte('(')
		renderExpr(b, ex.Operand)
		b.WriteString(") NOTNULL")
	case *CaseExpr:
		b.WriteString("CASE ")
		if ex.Base != nil {
			renderExpr(b, ex.Base)
			b.WriteByte(' ')
		}
		for _, wt := range ex.WhenThen {
			b.WriteString("WHEN ")
			renderExpr(b, wt.When)
			b.WriteString(" THEN ")
			renderExpr(b, wt.Then)
			b.WriteByte(' ')
		}
		if ex.Else != nil {
			b.WriteString("ELSE ")
			renderExpr(b, ex.Else)
			b.WriteByte(' ')
		}
		b.WriteString("END")
	case *CastExpr:
		b.WriteString("CAST(")
		renderExpr(b, ex.Expr)
		b.WriteString(" AS ")
		renderTypeName(b, ex.Type)
		b.WriteByte(')')
	case *CollateExpr:
		b.WriteByte('(')
		renderExpr(b, ex.Expr)
		b.WriteString(") COLLATE ")
		renderName(b, ex.Collation)
	case *FunctionCallExpr:
		renderName(b, ex.Name)
		b.WriteByte('(')
		switch ex.Distinctness {
		case DistinctnessDistinct:
			b.WriteString("DISTINCT ")
		case DistinctnessAll:
			b.WriteString("ALL ")
		}
		for i, a := range ex.Args {
			if i > 0 {
				b.WriteString(", ")
			}
			renderExpr(b, a)
		}
		if len(ex.OrderBy) > 0 {
			b.WriteString(" ORDER BY ")
			renderOrderingTerms(b, ex.OrderBy)
		}
		b.WriteByte(')')
		renderFilterOver(b, ex.FilterOver)
	case *FunctionCallStarExpr:
		renderName(b, ex.Name)
		b.WriteString("(*)")
		renderFilterOver(b, ex.FilterOver)
	case *ExistsExpr:
		b.WriteString("EXISTS (")
		renderSelect(b, &ex.Select)
		b.WriteByte(')')
	case *SubqueryExpr:
		b.WriteByte('(')
		renderSelect(b, &ex.Select)
		b.WriteByte(')')
	case *ParenthesizedExpr:
		b.WriteByte('(')
		for i, item := range ex.Exprs {
			if i > 0 {
				b.WriteString(", ")
			}
			renderExpr(b, item)
		}
		b.WriteByte(')')
	case *RaiseExpr:
		b.WriteString("RAISE(")
		switch ex.Action {
		case RaiseIgnore:
			b.WriteString("IGNORE")
		case RaiseRollback:
			b.WriteString("ROLLBACK, " + ex.Message)
		case RaiseAbort:
			b.WriteString("ABORT, " + ex.Message)
		case RaiseFail:
			b.WriteString("FAIL, " + ex.Message)
		}
		b.WriteByte(')')
	case *NameExpr:
		renderName(b, ex.Name)
	default:
		b.WriteString(fmt.Sprintf("/* unrendered expr %T */", e))
	}
}

func renderFilterOver(b *strings.Builder, fo FilterOver) {
	if fo.Filter != nil {
		b.WriteString(" FILTER (WHERE ")
		renderExpr(b, fo.Filter)
		b.WriteByte(')')
	}
	if fo.Over != nil {
		b.WriteString(" OVER ")
		if fo.Over.Name != nil {
			renderName(b, *fo.Over.Name)
		} else {
			renderWindowDef(b, fo.Over.Def)
		}
	}
}

func renderUnaryOp(b *strings.Builder, op UnaryOp) {
	switch op {
	case UnaryBitNot:
		b.WriteByte('~')
	case UnaryPlus:
		b.WriteByte('+')
	case UnaryMinus:
		b.WriteByte('-')
	case UnaryNot:
		b.WriteString("NOT ")
	}
}

func binaryOpSpelling(op BinaryOp) string {
	switch op {
	case OpConcat:
		return "||"
	case OpJSONArrow:
		return "->"
	case OpJSONArrow2:
		return "->>"
	case OpMul:
		return "*"
	case OpDiv:
		return "/"
	case OpMod:
		return "%"
	case OpAdd:
		return "+"
	case OpSub:
		return "-"
	case OpBitAnd:
		return "&"
	case OpBitOr:
		return "|"
	case OpShl:
		return "<<"
	case OpShr:
		return ">>"
	case OpLt:
		return "<"
	case OpLe:
		return "<="
	case OpGt:
		return ">"
	case OpGe:
		return ">="
	case OpEq:
		return "="
	case OpNe:
		return "<>"
	case OpIs:
		return " IS "
	case OpIsNot:
		return " IS NOT "
	case OpIsDistinctFrom:
		return " IS DISTINCT FROM "
	case OpIsNotDistinctFrom:
		return " IS NOT DISTINCT FROM "
	case OpAnd:
		return " AND "
	case OpOr:
		return " OR "
	default:
		return " ? "
	}
}
