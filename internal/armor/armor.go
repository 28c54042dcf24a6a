package armor

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"regexp"

	"golang.org/x/crypto/openpgp/armor" //nolint:staticcheck // armor framing only, no OpenPGP packets

	"credvault/internal/domain"
)

// BlockType is the armor header label of a private-key artifact.
const BlockType = "CREDVAULT PRIVATE KEY"

var (
	beginLine    = []byte("-----BEGIN " + BlockType + "-----")
	endLine      = []byte("-----END " + BlockType + "-----")
	checksumLine = regexp.MustCompile(`^=[A-Za-z0-9+/]{4}$`)
)

var (
	errNoHeader   = errors.New("missing armor header")
	errNoFooter   = errors.New("missing armor footer")
	errNoChecksum = errors.New("missing armor checksum")
	errEmpty      = errors.New("empty armor body")
)

// Encode armors raw.
func Encode(raw []byte) ([]byte, error) {
	var buf bytes.Buffer
	w, err := armor.Encode(&buf, BlockType, nil)
	if err != nil {
		return nil, domain.NewError(domain.KindFormat, "armor.encode", err)
	}
	if _, err := w.Write(raw); err != nil {
		_ = w.Close()
		return nil, domain.NewError(domain.KindFormat, "armor.encode", err)
	}
	if err := w.Close(); err != nil {
		return nil, domain.NewError(domain.KindFormat, "armor.encode", err)
	}
	buf.WriteByte('\n')
	return buf.Bytes(), nil
}

// Decode returns the bytes inside an armor block produced by Encode. Any
// structural problem or checksum mismatch is a KindFormat error; partial
// data is never returned.
func Decode(armored []byte) ([]byte, error) {
	normalized, err := normalize(armored)
	if err != nil {
		return nil, domain.NewError(domain.KindFormat, "armor.decode", err)
	}
	block, err := armor.Decode(bytes.NewReader(normalized))
	if err != nil {
		return nil, domain.NewError(domain.KindFormat, "armor.decode", err)
	}
	if block.Type != BlockType {
		return nil, domain.NewError(domain.KindFormat, "armor.decode",
			fmt.Errorf("unexpected block type %q", block.Type))
	}
	raw, err := io.ReadAll(block.Body)
	if err != nil {
		return nil, domain.NewError(domain.KindFormat, "armor.decode", err)
	}
	if len(raw) == 0 {
		return nil, domain.NewError(domain.KindFormat, "armor.decode", errEmpty)
	}
	return raw, nil
}

// normalize trims surrounding whitespace and per-line trailing blanks, and
// checks the framing the armor reader is lax about: a footer must be present
// and immediately preceded by a checksum line.
func normalize(in []byte) ([]byte, error) {
	lines := bytes.Split(bytes.TrimSpace(in), []byte("\n"))
	for i, line := range lines {
		lines[i] = bytes.TrimRight(line, " \t\r")
	}
	if len(lines) == 0 || !bytes.Equal(lines[0], beginLine) {
		return nil, errNoHeader
	}
	last := len(lines) - 1
	if last < 2 || !bytes.Equal(lines[last], endLine) {
		return nil, errNoFooter
	}
	if !checksumLine.Match(lines[last-1]) {
		return nil, errNoChecksum
	}
	out := bytes.Join(lines, []byte("\n"))
	return append(out, '\n'), nil
}
