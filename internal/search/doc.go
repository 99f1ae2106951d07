// Package search executes Boolean recipe queries.
//
// A query goes through two paths. The display path (parsetree.Analyze and
// querysql.Translator) produces the parse tree and the SQL statement shown
// to the user. The execution path classifies the same tokens, validates
// them, and compiles a parameterized WHERE clause that the recipe store
// runs. User text never reaches the executed SQL except as a bound
// parameter.
package search
