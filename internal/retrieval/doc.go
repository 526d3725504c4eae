// Package retrieval holds the scoring primitives used by the context
// assembler. The keyword package ranks by vocabulary overlap and literal
// containment; the vector package ranks by cosine similarity.
//
// Both packages are pure functions over domain types and never touch
// storage or external services.
package retrieval
