package lexer

import "github.com/litesql/litesql/internal/token"

// keywords maps upper-cased spellings to their classification tag. Lookup
// is always done against the upper-cased lexeme so matching is
// case-insensitive, mirroring the teacher lexer's LookupIdent.
var keywords = map[string]token.Type{
	"ABORT":         token.ABORT,
	"ACTION":        token.ACTION,
	"ADD":           token.ADD,
	"AFTER":         token.AFTER,
	"ALL":           token.ALL,
	"ALTER":         token.ALTER,
	"ALWAYS":        token.ALWAYS,
	"ANALYZE":       token.ANALYZE,
	"AND":           token.AND,
	"AS":            token.AS,
	"ASC":           token.ASC,
	"ATTACH":        token.ATTACH,
	"AUTOINCREMENT": token.AUTOINCR,
	"BEFORE":        token.BEFORE,
	"BEGIN":         token.BEGIN,
	"BETWEEN":       token.BETWEEN,
	"BY":            token.BY,
	"CASCADE":       token.CASCADE,
	"CASE":          token.CASE,
	"CAST":          token.CAST,
	"CHECK":         token.CHECK,
	"COLLATE":       token.COLLATE,
	"COLUMN":        token.COLUMNKW,
	"COMMIT":        token.COMMIT,
	"CONFLICT":      token.CONFLICT,
	"CONSTRAINT":    token.CONSTRAINT,
	"CREATE":        token.CREATE,
	"CROSS":         token.JOIN_KW,
	"CURRENT":       token.CURRENT,
	"CURRENT_DATE":      token.CTIME_KW,
	"CURRENT_TIME":      token.CTIME_KW,
	"CURRENT_TIMESTAMP": token.CTIME_KW,
	"DATABASE":      token.DATABASE,
	"DEFAULT":       token.DEFAULT,
	"DEFERRABLE":    token.DEFERRABLE,
	"DEFERRED":      token.DEFERRED,
	"DELETE":        token.DELETE,
	"DESC":          token.DESC,
	"DETACH":        token.DETACH,
	"DISTINCT":      token.DISTINCT,
	"DO":            token.DO,
	"DROP":          token.DROP,
	"EACH":          token.EACH,
	"ELSE":          token.ELSE,
	"END":           token.END,
	"ESCAPE":        token.ESCAPE,
	"EXCEPT":        token.EXCEPT,
	"EXCLUDE":       token.EXCLUDE,
	"EXCLUSIVE":     token.EXCLUSIVE,
	"EXISTS":        token.EXISTS,
	"EXPLAIN":       token.EXPLAIN,
	"FAIL":          token.FAIL,
	"FILTER":        token.FILTER,
	"FOLLOWING":     token.FOLLOWING,
	"FOR":           token.FOR,
	"FOREIGN":       token.FOREIGN,
	"FROM":          token.FROM,
	"FULL":          token.JOIN_KW,
	"GENERATED":     token.GENERATED,
	"GLOB":          token.LIKE_KW,
	"GROUP":         token.GROUP,
	"GROUPS":        token.GROUPS,
	"HAVING":        token.HAVING,
	"IF":            token.IF,
	"IGNORE":        token.IGNORE,
	"IMMEDIATE":     token.IMMEDIATE,
	"IN":            token.IN,
	"INDEX":         token.INDEX,
	"INDEXED":       token.INDEXED,
	"INITIALLY":     token.INITIALLY,
	"INNER":         token.JOIN_KW,
	"INSERT":        token.INSERT,
	"INSTEAD":       token.INSTEAD,
	"INTERSECT":     token.INTERSECT,
	"INTO":          token.INTO,
	"IS":            token.IS,
	"ISNULL":        token.ISNULL,
	"JOIN":          token.JOIN,
	"KEY":           token.KEY,
	"LEFT":          token.JOIN_KW,
	"LIKE":          token.LIKE_KW,
	"LIMIT":         token.LIMIT,
	"MATCH":         token.LIKE_KW,
	"MATERIALIZED":  token.MATERIALIZED,
	"NATURAL":       token.JOIN_KW,
	"NO":            token.NO,
	"NOT":           token.NOT,
	"NOTHING":       token.NOTHING,
	"NOTNULL":       token.NOTNULL,
	"NULL":          token.NULL,
	"OF":            token.OF,
	"OFFSET":        token.OFFSET,
	"ON":            token.ON,
	"OR":            token.OR,
	"ORDER":         token.ORDER,
	"OTHERS":        token.OTHERS,
	"OUTER":         token.JOIN_KW,
	"OVER":          token.OVER,
	"PARTITION":     token.PARTITION,
	"PLAN":          token.PLAN,
	"PRAGMA":        token.PRAGMA,
	"PRECEDING":     token.PRECEDING,
	"PRIMARY":       token.PRIMARY,
	"QUERY":         token.QUERY,
	"RAISE":         token.RAISE,
	"RANGE":         token.RANGE,
	"RECURSIVE":     token.RECURSIVE,
	"REFERENCES":    token.REFERENCES,
	"REGEXP":        token.LIKE_KW,
	"REINDEX":       token.REINDEX,
	"RELEASE":       token.RELEASE,
	"RENAME":        token.RENAME,
	"REPLACE":       token.REPLACE,
	"RESTRICT":      token.RESTRICT,
	"RETURNING":     token.RETURNING,
	"RIGHT":         token.JOIN_KW,
	"ROLLBACK":      token.ROLLBACK,
	"ROW":           token.ROW,
	"ROWS":          token.ROWS,
	"SAVEPOINT":     token.SAVEPOINT,
	"SELECT":        token.SELECT,
	"SET":           token.SET,
	"STRICT":        token.STRICT,
	"TABLE":         token.TABLE,
	"TEMP":          token.TEMP,
	"TEMPORARY":     token.TEMP,
	"THEN":          token.THEN,
	"TIES":          token.TIES,
	"TO":            token.TO,
	"TRANSACTION":   token.TRANSACTION,
	"TRIGGER":       token.TRIGGER,
	"UNBOUNDED":     token.UNBOUNDED,
	"UNION":         token.UNION,
	"UNIQUE":        token.UNIQUE,
	"UPDATE":        token.UPDATE,
	"USING":         token.USING,
	"VACUUM":        token.VACUUM,
	"VALUES":        token.VALUES,
	"VIEW":          token.VIEW,
	"VIRTUAL":       token.VIRTUAL,
	"WHEN":          token.WHEN,
	"WHERE":         token.WHERE,
	"WINDOW":        token.WINDOW,
	"WITH":          token.WITH,
	"WITHOUT":       token.WITHOUT,
}

// lookupIdent returns the classification for upper, the upper-cased
// spelling of a bare identifier lexeme, or token.ID if it is not a keyword.
func lookupIdent(upper string) token.Type {
	if typ, ok := keywords[upper]; ok {
		return typ
	}
	return token.ID
}
