package ast

// primitiveNames maps the recognised textual spellings to their
// PrimitiveType, the source of truth spec.md §3 requires PrimitiveType to
// be.
var primitiveNames = map[string]PrimitiveType{
	"str":   Str,
	"i32":   I32,
	"i64":   I64,
	"f32":   F32,
	"f64":   F64,
	"bytes": Bytes,
}

// LookupPrimitive resolves a textual name to a PrimitiveType. ok is false
// for any name outside the closed set, including known misspellings —
// callers consult Suggestion for those.
func LookupPrimitive(name string) (p PrimitiveType, ok bool) {
	p, ok = primitiveNames[name]
	return p, ok
}

// misspellings maps known near-miss spellings to the primitive name the
// parser should suggest instead, per spec.md §4.4's "did you mean" fallback
// and §3's examples (string, int, integer, bigint, float, double) plus the
// optional-flavoured spellings (optional, maybe, null, nullable) which do
// not name a primitive at all but a misunderstanding of "?" syntax.
var misspellings = map[string]string{
	"string":   "str",
	"text":     "str",
	"varchar":  "str",
	"int":      "i32",
	"integer":  "i32",
	"int32":    "i32",
	"int64":    "i64",
	"long":     "i64",
	"bigint":   "i64",
	"float":    "f32",
	"float32":  "f32",
	"float64":  "f64",
	"double":   "f64",
	"blob":     "bytes",
	"binary":   "bytes",
	"optional": "",
	"maybe":    "",
	"null":     "",
	"nullable": "",
}

// Suggestion returns a "did you mean" replacement for a known misspelling of
// a primitive name, or "" if name is not a recognised near-miss. A returned
// empty string alongside ok == true (the "optional"/"maybe"/"null"/
// "nullable" group) indicates the caller should explain the "T?" syntax
// rather than suggest another primitive name.
func Suggestion(name string) (suggestion string, ok bool) {
	suggestion, ok = misspellings[name]
	return suggestion, ok
}
