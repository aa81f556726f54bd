// Package visitor implements the three read-only AST traversals of §4.10
// that back the editor-facing queries: folding ranges, document symbols,
// and the shared hover/definition descent. Each capability keeps its own
// exported type (FoldingProvider, SymbolProvider, HoverProvider,
// DefinitionProvider) per original_source/src/things' one-provider-per-
// capability split (see SPEC_FULL.md), even though none of them carry state.
package visitor
