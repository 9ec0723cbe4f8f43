// Package pipeline implements the text transformation stages of a render:
//   - parsing markdown into its fenced code blocks via Goldmark
//   - merging executed-block output back into the source text
//   - hiding block input and trimming execution directives from fence tags
//   - footer templating with lenient undefined-variable semantics
//   - converting final markdown to standalone preview HTML
//
// Orchestration (front matter handling, expansion, execution, metadata
// finalization) lives in the root nbpress package. This separation keeps the
// pipeline focused on pure text-in/text-out transformations.
package pipeline
