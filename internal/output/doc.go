// Package output formats search reports for display or machine consumption.
//
// Three formats are supported:
//   - text     — the formula, its prime range, the value table and the
//     coefficient product (default)
//   - json     — full structured JSON report including search statistics
//   - markdown — a table suitable for notes or issue comments
//
// Use [GetWriter] to obtain a [Writer] for a given format string, then call
// [Writer.Write] with an [io.Writer] and a [*Report]. [WriteReport] handles
// destination selection between a file and stdout.
package output
