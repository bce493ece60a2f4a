// Package printing lays out printable documents. The receipt layout is a
// pure function from an immutable snapshot to a display list of drawing
// operations; turning that list into PDF bytes is the job of a renderer in
// the infrastructure layer.
package printing
