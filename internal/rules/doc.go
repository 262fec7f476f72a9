// Package rules holds the group catalog: the ordered rule registry, the
// documentation co-location table and the emission phase table.
//
// Patterns are compiled with regexp2 because rule authors rely on
// lookahead assertions, which the standard library's RE2 engine rejects.
// A Catalog is built once and never mutated afterwards; every consumer
// shares the same compiled patterns.
package rules
