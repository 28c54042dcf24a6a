package armor_test

import (
	"bytes"
	"crypto/rand"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"credvault/internal/armor"
	"credvault/internal/domain"
)

func TestRoundTrip(t *testing.T) {
	for _, size := range []int{1, 2, 3, 47, 48, 49, 200, 4096} {
		raw := make([]byte, size)
		_, err := rand.Read(raw)
		require.NoError(t, err)

		armored, err := armor.Encode(raw)
		require.NoError(t, err)
		require.True(t, bytes.HasPrefix(armored, []byte("-----BEGIN "+armor.BlockType+"-----")))

		got, err := armor.Decode(armored)
		require.NoError(t, err, "size %d", size)
		require.Equal(t, raw, got, "size %d", size)
	}
}

func TestDecode_ToleratesWhitespace(t *testing.T) {
	raw := []byte("sealed key bytes")
	armored, err := armor.Encode(raw)
	require.NoError(t, err)

	crlf := strings.ReplaceAll(string(armored), "\n", "\r\n")
	padded := "\n\n" + strings.ReplaceAll(crlf, "\r\n", "  \r\n") + "\n\n\t\n"

	for name, in := range map[string]string{"crlf": crlf, "padded": padded, "trailing": string(armored) + "\n\n  "} {
		got, err := armor.Decode([]byte(in))
		require.NoError(t, err, name)
		require.Equal(t, raw, got, name)
	}
}

func TestDecode_RejectsMalformed(t *testing.T) {
	raw := bytes.Repeat([]byte{0xA5}, 120)
	armored, err := armor.Encode(raw)
	require.NoError(t, err)
	text := string(armored)
	lines := strings.Split(strings.TrimSpace(text), "\n")

	withoutChecksum := append(append([]string{}, lines[:len(lines)-2]...), lines[len(lines)-1])
	badChecksum := append([]string{}, lines...)
	badChecksum[len(lines)-2] = "=AAAA"
	flipped := append([]string{}, lines...)
	body := []byte(flipped[2])
	if body[0] == 'A' {
		body[0] = 'B'
	} else {
		body[0] = 'A'
	}
	flipped[2] = string(body)

	cases := map[string]string{
		"empty":            "",
		"plain bytes":      "not armored at all",
		"truncated":        text[:len(text)/2],
		"no footer":        strings.Join(lines[:len(lines)-1], "\n"),
		"no checksum":      strings.Join(withoutChecksum, "\n"),
		"bad checksum":     strings.Join(badChecksum, "\n"),
		"corrupted body":   strings.Join(flipped, "\n"),
		"wrong block type": strings.ReplaceAll(text, armor.BlockType, "PGP MESSAGE"),
	}
	for name, in := range cases {
		got, err := armor.Decode([]byte(in))
		require.Error(t, err, name)
		require.ErrorIs(t, err, domain.ErrFormat, name)
		require.Nil(t, got, name)
	}
}
