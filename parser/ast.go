package parser

// This file is the AST value-type family the parser builds bottom-up.
// Ownership is strictly tree-shaped: Expr children are heap-indirected
// (pointers / interface values) to break recursive type size, and no
// node is ever shared between two parents. Strings preserve the original
// input spelling — callers never see un-quoted or re-escaped text.

// ---- Cmd -------------------------------------------------------------

// ExplainKind tags how a Cmd's inner Stmt was introduced.
type ExplainKind int

const (
	NotExplained ExplainKind = iota
	Explained
	ExplainedQueryPlan
)

// Cmd is the outer wrapper the driver yields one of per statement.
type Cmd struct {
	Explain ExplainKind
	Stmt    Stmt
}

// ---- Name --------------------------------------------------------------

// NameKind distinguishes a bare identifier from one that was lexed with
// quoting delimiters ([, ', `, ").
type NameKind int

const (
	Ident NameKind = iota
	Quoted
)

// Name is an identifier as it appeared in the source: Text retains any
// surrounding quote/bracket/backtick characters for Quoted names.
type Name struct {
	Kind NameKind
	Text string
}

func IdentName(text string) Name  { return Name{Kind: Ident, Text: text} }
func QuotedName(text string) Name { return Name{Kind: Quoted, Text: text} }

// QualifiedName is `[schema.]name`.
type QualifiedName struct {
	Schema *Name
	Name   Name
}

// ---- Statement and Expression marker interfaces -----------------------

// Stmt is implemented by every statement-kind AST node.
type Stmt interface{ stmtNode() }

// Expr is implemented by every expression-kind AST node.
type Expr interface{ exprNode() }

// ---- Literal -------------------------------------------------------------

type LiteralKind int

const (
	LitNull LiteralKind = iota
	LitNumeric
	LitString
	LitBlob
	LitKeyword
	LitCurrentDate
	LitCurrentTime
	LitCurrentTimestamp
)

// Literal carries the original lexeme spelling (quotes included for
// String/Blob) rather than an evaluated value; evaluation is an execution
// concern out of this parser's scope.
type Literal struct {
	Kind LiteralKind
	Text string
}

// ---- Bit-set types -------------------------------------------------------

// JoinType is an OR-combined bit-set built from up to three join-type
// name tokens (e.g. LEFT OUTER JOIN).
type JoinType uint8

const (
	JoinInner JoinType = 1 << iota
	JoinCross
	JoinLeft
	JoinRight
	JoinOuter
	JoinNatural
)

func (j JoinType) Has(bit JoinType) bool { return j&bit != 0 }

// TableOptions is the bit-set for CREATE TABLE's trailing option list.
type TableOptions uint8

const (
	OptStrict TableOptions = 1 << iota
	OptWithoutRowid
)

// ---- Distinctness / conflict / sort enums --------------------------------

type Distinctness int

const (
	DistinctnessNone Distinctness = iota
	DistinctnessDistinct
	DistinctnessAll
)

type ConflictAction int

const (
	ConflictNone ConflictAction = iota
	ConflictRollback
	ConflictAbort
	ConflictFail
	ConflictIgnore
	ConflictReplace
)

type SortOrder int

const (
	SortNone SortOrder = iota
	SortAsc
	SortDesc
)

// ---- Expressions ---------------------------------------------------------

type LiteralExpr struct{ Literal Literal }

func (*LiteralExpr) exprNode() {}

type IdExpr struct{ Name Name }

func (*IdExpr) exprNode() {}

// QualifiedExpr is `table.column`.
type QualifiedExpr struct {
	Table  Name
	Column Name
}

func (*QualifiedExpr) exprNode() {}

// DoublyQualifiedExpr is `schema.table.column`.
type DoublyQualifiedExpr struct {
	Schema Name
	Table  Name
	Column Name
}

func (*DoublyQualifiedExpr) exprNode() {}

// VariableExpr is a bind parameter: ?, ?NNN, :name, @name or $name.
type VariableExpr struct{ Text string }

func (*VariableExpr) exprNode() {}

// UnaryExpr covers prefix ~, +, -, and prefix NOT.
type UnaryExpr struct {
	Op      UnaryOp
	Operand Expr
}

func (*UnaryExpr) exprNode() {}

type UnaryOp int

const (
	UnaryBitNot UnaryOp = iota
	UnaryPlus
	UnaryMinus
	UnaryNot
)

// BinaryExpr covers every left-associative binary operator from
// precedence levels 9 down to 0 (||, arithmetic, bitwise, comparisons,
// IS [NOT] [DISTINCT FROM], AND, OR). MATCH and the NOT-prefixed
// set/ternary ops have their own node kinds below since they carry more
// structure than a single operand.
type BinaryExpr struct {
	Op    BinaryOp
	Left  Expr
	Right Expr
}

func (*BinaryExpr) exprNode() {}

type BinaryOp int

const (
	OpConcat BinaryOp = iota
	OpJSONArrow
	OpJSONArrow2
	OpMul
	OpDiv
	OpMod
	OpAdd
	OpSub
	OpBitAnd
	OpBitOr
	OpShl
	OpShr
	OpLt
	OpLe
	OpGt
	OpGe
	OpEq
	OpNe
	OpIs
	OpIsNot
	OpIsDistinctFrom
	OpIsNotDistinctFrom
	OpAnd
	OpOr
)

// BetweenExpr is `lhs [NOT] BETWEEN start AND end`.
type BetweenExpr struct {
	Lhs   Expr
	Not   bool
	Start Expr
	End   Expr
}

func (*BetweenExpr) exprNode() {}

// LikeOp distinguishes the three LIKE-family operators.
type LikeOp int

const (
	LikeLike LikeOp = iota
	LikeGlob
	LikeRegexp
)

// LikeExpr is `lhs [NOT] LIKE|GLOB|REGEXP rhs [ESCAPE escape]`.
type LikeExpr struct {
	Lhs    Expr
	Not    bool
	Op     LikeOp
	Rhs    Expr
	Escape Expr // nil if no ESCAPE clause
}

func (*LikeExpr) exprNode() {}

// InListExpr is `lhs [NOT] IN (expr, ...)`.
type InListExpr struct {
	Lhs  Expr
	Not  bool
	List []Expr
}

func (*InListExpr) exprNode() {}

// InSelectExpr is `lhs [NOT] IN (select)`.
type InSelectExpr struct {
	Lhs    Expr
	Not    bool
	Select Select
}

func (*InSelectExpr) exprNode() {}

// InTableExpr is `lhs [NOT] IN [schema.]table[(args)]`.
type InTableExpr struct {
	Lhs   Expr
	Not   bool
	Table QualifiedName
	Args  []Expr // non-nil only for the table-valued-function form
}

func (*InTableExpr) exprNode() {}

// MatchExpr is `lhs [NOT] MATCH rhs` — same shape as LikeExpr but without
// an ESCAPE suffix.
type MatchExpr struct {
	Lhs Expr
	Not bool
	Rhs Expr
}

func (*MatchExpr) exprNode() {}

type IsNullExpr struct{ Operand Expr }

func (*IsNullExpr) exprNode() {}

type NotNullExpr struct{ Operand Expr }

func (*NotNullExpr) exprNode() {}

type WhenThen struct {
	When Expr
	Then Expr
}

// CaseExpr is `CASE [base] (WHEN w THEN t)+ [ELSE e] END`.
type CaseExpr struct {
	Base     Expr // nil for the "searched CASE" form
	WhenThen []WhenThen
	Else     Expr // nil if no ELSE
}

func (*CaseExpr) exprNode() {}

// TypeSize is the optional `(N)` or `(N,M)` suffix of a type name.
type TypeSize struct {
	N1 Expr
	N2 Expr // nil for the single-size form
}

type TypeName struct {
	Name string
	Size *TypeSize
}

// CastExpr is `CAST(expr AS type)`.
type CastExpr struct {
	Expr Expr
	Type TypeName
}

func (*CastExpr) exprNode() {}

// CollateExpr is `expr COLLATE name` (precedence level 10, binds tighter
// than every binary operator).
type CollateExpr struct {
	Expr      Expr
	Collation Name
}

func (*CollateExpr) exprNode() {}

// Over is a function call's window specification: either a bare name
// referencing a WINDOW clause definition, or an inline definition.
type Over struct {
	Name *Name
	Def  *WindowDef
}

// FilterOver is the optional `FILTER (WHERE expr)` and `OVER (...)` suffix
// shared by aggregate and window function calls.
type FilterOver struct {
	Filter Expr // nil if no FILTER clause
	Over   *Over
}

// FunctionCallExpr is `name([DISTINCT|ALL] args [ORDER BY ...]) [FILTER] [OVER]`.
type FunctionCallExpr struct {
	Name         Name
	Distinctness Distinctness
	Args         []Expr
	OrderBy      []OrderingTerm
	FilterOver   FilterOver
}

func (*FunctionCallExpr) exprNode() {}

// FunctionCallStarExpr is `name(*) [FILTER] [OVER]`, e.g. COUNT(*).
type FunctionCallStarExpr struct {
	Name       Name
	FilterOver FilterOver
}

func (*FunctionCallStarExpr) exprNode() {}

type ExistsExpr struct{ Select Select }

func (*ExistsExpr) exprNode() {}

type SubqueryExpr struct{ Select Select }

func (*SubqueryExpr) exprNode() {}

// ParenthesizedExpr is a non-empty comma list in parentheses that is not a
// subquery: `(a, b, c)`. A single-element list is just `(a)`.
type ParenthesizedExpr struct{ Exprs []Expr }

func (*ParenthesizedExpr) exprNode() {}

type RaiseAction int

const (
	RaiseIgnore RaiseAction = iota
	RaiseRollback
	RaiseAbort
	RaiseFail
)

// RaiseExpr is `RAISE(IGNORE | {ROLLBACK|ABORT|FAIL}, message)`.
type RaiseExpr struct {
	Action  RaiseAction
	Message string // lexeme, empty for IGNORE
}

func (*RaiseExpr) exprNode() {}

// NameExpr is a bare name used in an expression-typed slot that is not a
// column reference, e.g. the index/window name argument in productions
// that otherwise expect an Expr-shaped node.
type NameExpr struct{ Name Name }

func (*NameExpr) exprNode() {}

// ---- SELECT / FROM / JOIN -------------------------------------------------

type OrderingTerm struct {
	Expr       Expr
	Collate    *Name
	Order      SortOrder
	NullsFirst *bool // nil if unspecified
}

type Limit struct {
	Expr   Expr
	Offset Expr // nil if absent
}

// ResultColumn is one entry of a SELECT's column list.
type ResultColumn struct {
	Star      bool   // `*`
	TableStar *Name  // `table.*`
	Expr      Expr   // set when Star and TableStar are both unset
	Alias     *Name  // optional `[AS] alias`
}

type IndexedColumn struct {
	Expr    Expr
	Collate *Name
	Order   SortOrder
}

type IndexedByKind int

const (
	IndexedByNone IndexedByKind = iota
	IndexedByName
	NotIndexed
)

type IndexedBy struct {
	Kind IndexedByKind
	Name *Name // set when Kind == IndexedByName
}

type SelectTableKind int

const (
	STTable SelectTableKind = iota
	STTableCall
	STSelect
	STSub
)

// SelectTable is one FROM-clause term.
type SelectTable struct {
	Kind  SelectTableKind
	Name  QualifiedName  // STTable, STTableCall
	Args  []Expr         // STTableCall
	Select *Select       // STSelect
	From  *FromClause    // STSub
	Alias *Name
	Indexed *IndexedBy   // STTable only
}

type JoinOpKind int

const (
	JoinComma JoinOpKind = iota
	JoinTyped
)

// JoinOperator is the connective between two FROM terms.
type JoinOperator struct {
	Kind JoinOpKind
	Type JoinType // meaningful when Kind == JoinTyped; 0 means bare JOIN
}

// JoinConstraint is the mutually-exclusive ON/USING suffix of a join.
type JoinConstraint struct {
	On    Expr   // nil if Using is set
	Using []Name // nil if On is set
}

type JoinedSelectTable struct {
	Operator   JoinOperator
	Table      SelectTable
	Constraint *JoinConstraint // nil for comma joins and bare cross joins
}

type FromClause struct {
	Select SelectTable
	Joins  []JoinedSelectTable
}

// SelectCore is either a `SELECT ...` core or a `VALUES (...），(...)` core.
type SelectCore struct {
	Values       [][]Expr // non-nil for the VALUES form; other fields unused
	Distinctness Distinctness
	Columns      []ResultColumn
	From         *FromClause
	Where        Expr
	GroupBy      []Expr
	Having       Expr
	Windows      []NamedWindow
}

type CompoundOp int

const (
	CompoundUnion CompoundOp = iota
	CompoundUnionAll
	CompoundExcept
	CompoundIntersect
)

type CompoundSelect struct {
	Op     CompoundOp
	Select SelectCore
}

// SelectBody is left-associative: compounds accumulate in source order.
type SelectBody struct {
	Select    SelectCore
	Compounds []CompoundSelect
}

type MaterializedHint int

const (
	MaterializedUnspecified MaterializedHint = iota
	Materialized
	NotMaterialized
)

type CommonTableExpr struct {
	Name         Name
	Columns      []Name
	Materialized MaterializedHint
	Select       Select
}

type With struct {
	Recursive bool
	Ctes      []CommonTableExpr
}

// Select is the top-level SELECT production.
type Select struct {
	With    *With
	Body    SelectBody
	OrderBy []OrderingTerm
	Limit   *Limit
}

// ---- Window definitions ---------------------------------------------------

type FrameMode int

const (
	FrameRange FrameMode = iota
	FrameRows
	FrameGroups
)

type FrameBoundKind int

const (
	BoundUnboundedPreceding FrameBoundKind = iota
	BoundPreceding
	BoundCurrentRow
	BoundFollowing
	BoundUnboundedFollowing
)

type FrameBound struct {
	Kind FrameBoundKind
	Expr Expr // set for Preceding/Following
}

type ExcludeKind int

const (
	ExcludeNone ExcludeKind = iota
	ExcludeNoOthers
	ExcludeCurrentRow
	ExcludeGroup
	ExcludeTies
)

// Frame is the `RANGE|ROWS|GROUPS BETWEEN start AND end [EXCLUDE ...]`
// sub-clause of a window definition.
type Frame struct {
	Mode    FrameMode
	Start   FrameBound
	End     *FrameBound // nil means the implicit single-bound CURRENT ROW end
	Exclude ExcludeKind
}

type WindowDef struct {
	BaseWindowName *Name
	PartitionBy    []Expr
	OrderBy        []OrderingTerm
	Frame          *Frame
}

type NamedWindow struct {
	Name Name
	Def  WindowDef
}

// ---- Statements: transaction control -------------------------------------

type BeginKind int

const (
	BeginPlain BeginKind = iota
	BeginDeferred
	BeginImmediate
	BeginExclusive
)

type BeginStmt struct {
	Kind BeginKind
	Name *Name // optional transaction name (SQLite extension)
}

func (*BeginStmt) stmtNode() {}

type CommitStmt struct{}

func (*CommitStmt) stmtNode() {}

type RollbackStmt struct {
	TxName        *Name
	SavepointName *Name // set for `ROLLBACK TO [SAVEPOINT] name`
}

func (*RollbackStmt) stmtNode() {}

type SavepointStmt struct{ Name Name }

func (*SavepointStmt) stmtNode() {}

type ReleaseStmt struct{ Name Name }

func (*ReleaseStmt) stmtNode() {}

// ---- Statements: DML -------------------------------------------------------

type SelectStmt struct{ Select Select }

func (*SelectStmt) stmtNode() {}

// UpsertTarget is the optional `(indexed-columns) [WHERE expr]` conflict
// target of an ON CONFLICT clause.
type UpsertTarget struct {
	Columns []IndexedColumn
	Where   Expr
}

type UpsertAction int

const (
	UpsertNothing UpsertAction = iota
	UpsertUpdate
)

// UpsertClause is one link of an `ON CONFLICT ... DO ...` chain. The
// parser accepts the chain whether or not the insert names a column list.
type UpsertClause struct {
	Target *UpsertTarget // nil means the bare `ON CONFLICT DO ...` form
	Action UpsertAction
	Set    []SetClause // set when Action == UpsertUpdate
	Where  Expr        // set when Action == UpsertUpdate
}

type InsertSource int

const (
	InsertValues InsertSource = iota
	InsertSelect
	InsertDefaultValues
)

type InsertStmt struct {
	With        *With
	Or          ConflictAction
	Table       QualifiedName
	Alias       *Name
	Columns     []Name
	Source      InsertSource
	Values      [][]Expr // InsertValues
	SelectStmt  *Select  // InsertSelect
	Upsert      []UpsertClause
	Returning   []ResultColumn
}

func (*InsertStmt) stmtNode() {}

type SetClause struct {
	Columns []Name // more than one column for `(a, b) = (x, y)`
	Expr    Expr
}

type UpdateStmt struct {
	With    *With
	Or      ConflictAction
	Table   QualifiedName
	Alias   *Name
	Indexed *IndexedBy
	Set     []SetClause
	From    *FromClause
	Where   Expr
	OrderBy []OrderingTerm
	Limit   *Limit
	Returning []ResultColumn
}

func (*UpdateStmt) stmtNode() {}

type DeleteStmt struct {
	With      *With
	Table     QualifiedName
	Alias     *Name
	Indexed   *IndexedBy
	Where     Expr
	OrderBy   []OrderingTerm
	Limit     *Limit
	Returning []ResultColumn
}

func (*DeleteStmt) stmtNode() {}

// ---- Statements: DDL -------------------------------------------------------

type ColumnConstraintSpec interface{ columnConstraintNode() }

type ColumnConstraint struct {
	Name *Name // optional `CONSTRAINT name`
	Spec ColumnConstraintSpec
}

type DefaultConstraint struct{ Expr Expr }

func (*DefaultConstraint) columnConstraintNode() {}

type NullConstraint struct {
	Not        bool
	OnConflict ConflictAction
}

func (*NullConstraint) columnConstraintNode() {}

type PrimaryKeyConstraint struct {
	Order         SortOrder
	OnConflict    ConflictAction
	Autoincrement bool
}

func (*PrimaryKeyConstraint) columnConstraintNode() {}

type UniqueConstraint struct{ OnConflict ConflictAction }

func (*UniqueConstraint) columnConstraintNode() {}

type CheckConstraint struct{ Expr Expr }

func (*CheckConstraint) columnConstraintNode() {}

type RefEvent int

const (
	OnDelete RefEvent = iota
	OnUpdate
)

type RefActionKind int

const (
	RefSetNull RefActionKind = iota
	RefSetDefault
	RefCascade
	RefRestrict
	RefNoAction
)

type RefAction struct {
	Event  RefEvent
	Action RefActionKind
}

type InitiallyKind int

const (
	InitiallyUnspecified InitiallyKind = iota
	InitiallyDeferred
	InitiallyImmediate
)

type Deferrable struct {
	Not       bool
	Initially InitiallyKind
}

type ForeignKeyClause struct {
	Table      QualifiedName
	Columns    []Name
	Match      *Name
	Actions    []RefAction
	Deferrable *Deferrable
}

type ReferencesConstraint struct{ Clause ForeignKeyClause }

func (*ReferencesConstraint) columnConstraintNode() {}

type CollateConstraint struct{ Name Name }

func (*CollateConstraint) columnConstraintNode() {}

// GeneratedConstraint is `[GENERATED ALWAYS] AS (expr) [STORED|VIRTUAL]`.
type GeneratedConstraint struct {
	Expr   Expr
	Stored *bool // nil = unspecified (defaults to VIRTUAL), true = STORED
}

func (*GeneratedConstraint) columnConstraintNode() {}

type ColumnDef struct {
	Name        Name
	Type        *TypeName // nil if the column has no declared type
	Constraints []ColumnConstraint
}

type TableConstraintSpec interface{ tableConstraintNode() }

type TableConstraint struct {
	Name *Name
	Spec TableConstraintSpec
}

type PrimaryKeyTableConstraint struct {
	Columns    []IndexedColumn
	OnConflict ConflictAction
}

func (*PrimaryKeyTableConstraint) tableConstraintNode() {}

type UniqueTableConstraint struct {
	Columns    []IndexedColumn
	OnConflict ConflictAction
}

func (*UniqueTableConstraint) tableConstraintNode() {}

type CheckTableConstraint struct{ Expr Expr }

func (*CheckTableConstraint) tableConstraintNode() {}

type ForeignKeyTableConstraint struct {
	Columns []Name
	Clause  ForeignKeyClause
}

func (*ForeignKeyTableConstraint) tableConstraintNode() {}

// CreateTableBody is either a column/constraint list or an `AS SELECT`.
type CreateTableBody struct {
	Columns     []ColumnDef
	Constraints []TableConstraint
	Options     TableOptions
	AsSelect    *Select // non-nil for the `AS SELECT` form
}

type CreateTableStmt struct {
	Temporary   bool
	IfNotExists bool
	Name        QualifiedName
	Body        CreateTableBody
}

func (*CreateTableStmt) stmtNode() {}

type CreateIndexStmt struct {
	Unique      bool
	IfNotExists bool
	Name        QualifiedName
	Table       Name
	Columns     []IndexedColumn
	Where       Expr
}

func (*CreateIndexStmt) stmtNode() {}

type CreateViewStmt struct {
	Temporary   bool
	IfNotExists bool
	Name        QualifiedName
	Columns     []Name
	Select      Select
}

func (*CreateViewStmt) stmtNode() {}

type TriggerTiming int

const (
	TriggerTimingNone TriggerTiming = iota
	TriggerBefore
	TriggerAfter
	TriggerInsteadOf
)

type TriggerEventKind int

const (
	TriggerOnDelete TriggerEventKind = iota
	TriggerOnInsert
	TriggerOnUpdate
)

type TriggerEvent struct {
	Kind       TriggerEventKind
	OfColumns  []Name // set only for `UPDATE OF col, ...`
}

// CreateTriggerStmt's Body holds one Stmt per trigger action, each of
// kind *SelectStmt, *InsertStmt, *UpdateStmt or *DeleteStmt.
type CreateTriggerStmt struct {
	Temporary   bool
	IfNotExists bool
	Name        QualifiedName
	Timing      TriggerTiming
	Event       TriggerEvent
	Table       QualifiedName
	ForEachRow  bool
	When        Expr
	Body        []Stmt
}

func (*CreateTriggerStmt) stmtNode() {}

// CreateVirtualTableStmt's Args are raw, uninterpreted byte spans (see
// spec §4.7): balanced-paren text between top-level commas.
type CreateVirtualTableStmt struct {
	IfNotExists bool
	Name        QualifiedName
	ModuleName  Name
	Args        []string
}

func (*CreateVirtualTableStmt) stmtNode() {}

type DropTableStmt struct {
	IfExists bool
	Name     QualifiedName
}

func (*DropTableStmt) stmtNode() {}

type DropIndexStmt struct {
	IfExists bool
	Name     QualifiedName
}

func (*DropIndexStmt) stmtNode() {}

type DropViewStmt struct {
	IfExists bool
	Name     QualifiedName
}

func (*DropViewStmt) stmtNode() {}

type DropTriggerStmt struct {
	IfExists bool
	Name     QualifiedName
}

func (*DropTriggerStmt) stmtNode() {}

type AlterTableBody interface{ alterTableBodyNode() }

type RenameTableBody struct{ NewName Name }

func (*RenameTableBody) alterTableBodyNode() {}

type RenameColumnBody struct {
	Old Name
	New Name
}

func (*RenameColumnBody) alterTableBodyNode() {}

type AddColumnBody struct{ Column ColumnDef }

func (*AddColumnBody) alterTableBodyNode() {}

type DropColumnBody struct{ Name Name }

func (*DropColumnBody) alterTableBodyNode() {}

type AlterTableStmt struct {
	Name QualifiedName
	Body AlterTableBody
}

func (*AlterTableStmt) stmtNode() {}

// ---- Statements: pragmas and database-file operations ---------------------

type AttachStmt struct {
	Expr Expr
	Name Name
}

func (*AttachStmt) stmtNode() {}

type DetachStmt struct{ Name Name }

func (*DetachStmt) stmtNode() {}

type PragmaValueForm int

const (
	PragmaValueEq PragmaValueForm = iota
	PragmaValueCall
)

type PragmaValue struct {
	Form  PragmaValueForm
	Value Expr
}

type PragmaStmt struct {
	Name  QualifiedName
	Value *PragmaValue // nil for the bare `PRAGMA name` query form
}

func (*PragmaStmt) stmtNode() {}

type VacuumStmt struct {
	Schema *Name
	Into   Expr // nil if no INTO clause
}

func (*VacuumStmt) stmtNode() {}

type AnalyzeStmt struct{ Name *QualifiedName }

func (*AnalyzeStmt) stmtNode() {}

type ReindexStmt struct{ Name *QualifiedName }

func (*ReindexStmt) stmtNode() {}
