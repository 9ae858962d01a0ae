// Copyright (c) 2026 Touring. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package normalize_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/5eus/touring/pkg/normalize"
)

/*
TestQuery pins the bit-exact cache-key grammar: trim, ASCII-only
lowercase, collapse whitespace runs, preserve everything else.
*/
func TestQuery(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{"ascii_uppercase", "HELLO WORLD", "hello world"},
		{"leading_trailing_space", "  one piece  ", "one piece"},
		{"internal_whitespace_run", "one\t\tpiece   manga", "one piece manga"},
		{"mixed_unicode_whitespace", "one 　piece", "one piece"},
		{"cyrillic_preserved", "Наруто", "Наруто"},
		{"accented_latin_preserved", "AMÉLIE", "amÉlie"},
		{"fullwidth_latin_preserved", "ＨＥＬＬＯ", "ＨＥＬＬＯ"},
		{"halfwidth_katakana_preserved", "ﾅﾙﾄ", "ﾅﾙﾄ"},
		{"empty", "", ""},
		{"only_whitespace", "   ", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, normalize.Query(tt.in))
		})
	}
}

/*
TestQuery_Idempotent checks that normalizing an already-normalized
query is a no-op, since cache keys are composed from this output.
*/
func TestQuery_Idempotent(t *testing.T) {
	once := normalize.Query("  One  Piece  ")
	twice := normalize.Query(once)
	assert.Equal(t, once, twice)
}
