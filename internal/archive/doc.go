// Package archive writes the package root into a single zip file.
//
// Archives are reproducible: entries are added in lexical walk order with a
// fixed timestamp, fixed permission bits and NFC-normalized slash-separated
// names relative to the source directory, and every file is deflated at the
// maximum level. The zip is assembled in a temp file beside the destination
// and renamed into place only after the writer and file have been closed, so
// a failed run never leaves a valid-looking archive behind.
package archive
