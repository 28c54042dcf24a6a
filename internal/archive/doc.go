// Package archive reads and writes the portable account container: a zip
// file holding the private-key and bridge-certificate artifacts under their
// logical names.
//
// Extract never writes anywhere; it returns every requested entry in memory
// or fails without returning any of them, so callers can validate the whole
// set before committing it to storage.
package archive
