// Package armor wraps sealed private-key bytes in an ASCII armor block with a
// CRC-24 checksum, and strips it again.
//
// Decode is strict about structure (header, footer, checksum line, block
// type) and lenient about whitespace: CRLF line endings, trailing blanks on
// lines and surrounding blank lines are accepted.
package armor
