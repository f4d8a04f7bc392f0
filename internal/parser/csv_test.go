package parser

import (
	"errors"
	"strings"
	"testing"

	"japan-address-api/internal/apperror"
	"japan-address-api/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParse(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected []models.RawRecord
	}{
		{
			name:  "bom, blank line and padded field",
			input: "\ufeffpref_code,pref,town\n\n  13 ,  東京都  , 丸の内 \n",
			expected: []models.RawRecord{
				{"pref_code": "13", "pref": "東京都", "town": "丸の内"},
			},
		},
		{
			name:  "quoted field with comma",
			input: "city,town\n\"千代田区\",\"丸の内, 一丁目\"\n",
			expected: []models.RawRecord{
				{"city": "千代田区", "town": "丸の内, 一丁目"},
			},
		},
		{
			name:  "whitespace-only line is blank",
			input: "a,b\n1,2\n   \n3,4\n",
			expected: []models.RawRecord{
				{"a": "1", "b": "2"},
				{"a": "3", "b": "4"},
			},
		},
		{
			name:  "padding after closing quotes",
			input: "pref_code,city\n\"13\" , \"千代田区\" \n",
			expected: []models.RawRecord{
				{"pref_code": "13", "city": "千代田区"},
			},
		},
		{
			name:  "multiline quoted field followed by padding",
			input: "a,b\n1,\"multi\nline\"  \r\n2,\"say \"\"hi\"\"\"\t\n",
			expected: []models.RawRecord{
				{"a": "1", "b": "multi\nline"},
				{"a": "2", "b": "say \"hi\""},
			},
		},
		{
			name:     "empty input",
			input:    "",
			expected: []models.RawRecord{},
		},
		{
			name:     "blank lines only",
			input:    "\ufeff\n  \n",
			expected: []models.RawRecord{},
		},
		{
			name:     "header only",
			input:    "a,b\n",
			expected: []models.RawRecord{},
		},
		{
			name:  "crlf line endings",
			input: "a,b\r\n1,2\r\n",
			expected: []models.RawRecord{
				{"a": "1", "b": "2"},
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			records, err := Parse(strings.NewReader(tt.input), Options{})
			require.NoError(t, err)
			assert.Equal(t, tt.expected, records)
		})
	}
}

func TestParse_TabDelimited(t *testing.T) {
	records, err := ParseBytes([]byte("a\tb\n1\t2\n"), Options{Comma: '\t'})
	require.NoError(t, err)
	assert.Equal(t, []models.RawRecord{{"a": "1", "b": "2"}}, records)
}

func TestParse_TabDelimitedQuotedPadding(t *testing.T) {
	records, err := ParseBytes([]byte("a\tb\n\"1\" \t\"2\"  \n"), Options{Comma: '\t'})
	require.NoError(t, err)
	assert.Equal(t, []models.RawRecord{{"a": "1", "b": "2"}}, records)
}

func TestParse_Errors(t *testing.T) {
	tests := []struct {
		name         string
		input        string
		expectedLine int
	}{
		{name: "text after closing quote", input: "a,b\n1,\"x\" y\n", expectedLine: 2},
		{name: "unterminated quote", input: "a,b\n1,\"open\n"},
		{name: "width mismatch", input: "a,b\n1,2\n3\n", expectedLine: 3},
		{name: "duplicate header", input: "a,a\n1,2\n", expectedLine: 1},
		{name: "empty header name", input: "a,,c\n1,2,3\n", expectedLine: 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			records, err := Parse(strings.NewReader(tt.input), Options{})
			require.Error(t, err)
			assert.Nil(t, records)

			var parseErr *apperror.ParseError
			require.True(t, errors.As(err, &parseErr))
			if tt.expectedLine > 0 {
				assert.Equal(t, tt.expectedLine, parseErr.Line)
			} else {
				assert.Positive(t, parseErr.Line)
			}
		})
	}
}
