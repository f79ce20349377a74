package dxf_test

import (
	"errors"
	"strings"
	"testing"

	"github.com/teleivo/assertive/assert"
	"github.com/teleivo/assertive/require"

	"github.com/dxfcore/dxfcore/dxf"
)

func TestTokenizerBasic(t *testing.T) {
	tok := dxf.NewTokenizer(strings.NewReader("0\nSECTION\n2\nHEADER\n"))

	g, ok, err := tok.Next()
	require.NoError(t, err, "first group")
	require.True(t, ok, "first group present")
	assert.EqualValues(t, g.Code, 0, "code")
	assert.EqualValues(t, g.Value, "SECTION", "value")
	assert.EqualValues(t, g.Line, 1, "line")

	g, ok, err = tok.Next()
	require.NoError(t, err, "second group")
	require.True(t, ok, "second group present")
	assert.EqualValues(t, g.Code, 2, "code")
	assert.EqualValues(t, g.Value, "HEADER", "value")
	assert.EqualValues(t, g.Line, 3, "line")

	_, ok, err = tok.Next()
	require.NoError(t, err, "end of input")
	assert.False(t, ok, "no more groups")
}

func TestTokenizerCRLF(t *testing.T) {
	tok := dxf.NewTokenizer(strings.NewReader("0\r\nSECTION\r\n2\r\nENTITIES\r\n"))

	g, ok, err := tok.Next()
	require.NoError(t, err, "first group")
	require.True(t, ok, "first group present")
	assert.EqualValues(t, g.Value, "SECTION", "carriage return stripped")
}

func TestTokenizerPaddedCode(t *testing.T) {
	tok := dxf.NewTokenizer(strings.NewReader("  0\nSECTION\n 10\n1.5\n"))

	g, _, err := tok.Next()
	require.NoError(t, err, "padded code")
	assert.EqualValues(t, g.Code, 0, "code with leading spaces")

	g, _, err = tok.Next()
	require.NoError(t, err, "second padded code")
	assert.EqualValues(t, g.Code, 10, "code")
	assert.EqualValues(t, g.Value, "1.5", "value")
}

func TestTokenizerSkipsBlankRecords(t *testing.T) {
	tok := dxf.NewTokenizer(strings.NewReader("\n\n0\nSECTION\n"))

	g, ok, err := tok.Next()
	require.NoError(t, err, "group after blanks")
	require.True(t, ok, "group present")
	assert.EqualValues(t, g.Code, 0, "code")
	assert.EqualValues(t, g.Value, "SECTION", "value")
}

func TestTokenizerEmptyValueIsLegitimate(t *testing.T) {
	tok := dxf.NewTokenizer(strings.NewReader("1\n\n2\nname\n"))

	g, ok, err := tok.Next()
	require.NoError(t, err, "group with empty value")
	require.True(t, ok, "group present")
	assert.EqualValues(t, g.Code, 1, "code")
	assert.EqualValues(t, g.Value, "", "empty value")

	g, _, _ = tok.Next()
	assert.EqualValues(t, g.Code, 2, "next group unaffected")
}

func TestTokenizerBadCode(t *testing.T) {
	tok := dxf.NewTokenizer(strings.NewReader("0\nSECTION\nnope\nvalue\n"))

	_, _, err := tok.Next()
	require.NoError(t, err, "good group")

	_, _, err = tok.Next()
	require.NotNil(t, err, "bad group code must error")
	assert.True(t, errors.Is(err, dxf.ErrMalformedInput), "got %v", err)

	var dxfErr *dxf.DXFError
	require.True(t, errors.As(err, &dxfErr), "expected *DXFError")
	assert.EqualValues(t, dxfErr.Line, 3, "error line")
}

func TestTokenizerMissingValue(t *testing.T) {
	tok := dxf.NewTokenizer(strings.NewReader("0\n"))

	_, _, err := tok.Next()
	require.NotNil(t, err, "code without value must error")
	assert.True(t, errors.Is(err, dxf.ErrMalformedInput), "got %v", err)
}

func TestTokenizerPeek(t *testing.T) {
	tok := dxf.NewTokenizer(strings.NewReader("0\nSECTION\n2\nHEADER\n"))

	peeked, ok, err := tok.Peek()
	require.NoError(t, err, "peek")
	require.True(t, ok, "peek present")

	got, _, _ := tok.Next()
	assert.EqualValues(t, got, peeked, "peek must not consume")

	peeked, _, _ = tok.Peek()
	assert.EqualValues(t, peeked.Code, 2, "peek advances past consumed group")
}

func TestTokenizerTrimsTrailingWhitespace(t *testing.T) {
	tok := dxf.NewTokenizer(strings.NewReader("1\nvalue  \t\n"))

	g, _, err := tok.Next()
	require.NoError(t, err, "group")
	assert.EqualValues(t, g.Value, "value", "trailing whitespace trimmed")
}
