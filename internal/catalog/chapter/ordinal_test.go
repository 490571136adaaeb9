// Copyright (c) 2026 Hondana. All rights reserved.
// Author: dev@hondana.app

package chapter_test

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hondana-app/hondana/internal/catalog/chapter"
)

func TestParseOrdinal(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		want    chapter.Ordinal
		wantErr bool
	}{
		{"whole_number", "1", 1000, false},
		{"half_chapter", "1.5", 1500, false},
		{"quarter_chapter", "10.25", 10250, false},
		{"three_decimals", "2.125", 2125, false},
		{"trailing_space", " 3 ", 3000, false},
		{"zero_rejected", "0", 0, true},
		{"negative_rejected", "-1", 0, true},
		{"empty_rejected", "", 0, true},
		{"four_decimals_rejected", "1.0001", 0, true},
		{"not_a_number", "one", 0, true},
		{"bare_dot_rejected", ".5", 0, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := chapter.ParseOrdinal(tt.input)
			if tt.wantErr {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestOrdinal_String(t *testing.T) {
	tests := []struct {
		name  string
		value chapter.Ordinal
		want  string
	}{
		{"whole", 1000, "1"},
		{"half", 1500, "1.5"},
		{"quarter", 10250, "10.25"},
		{"thousandth", 2125, "2.125"},
		{"large_whole", 100000, "100"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.value.String())
		})
	}
}

// Parsing the rendered form must yield the identical scaled value. This is
// the property that makes ordinal equality exact: 1.5 always scales to the
// same integer no matter how many times it round-trips.
func TestOrdinal_RoundTrip(t *testing.T) {
	for _, value := range []chapter.Ordinal{1000, 1500, 10250, 2125, 999999000} {
		parsed, err := chapter.ParseOrdinal(value.String())
		require.NoError(t, err)
		assert.Equal(t, value, parsed)
	}
}

func TestOrdinal_JSON(t *testing.T) {
	encoded, err := json.Marshal(chapter.Ordinal(1500))
	require.NoError(t, err)
	assert.Equal(t, "1.5", string(encoded))

	var fromNumber chapter.Ordinal
	require.NoError(t, json.Unmarshal([]byte("10.25"), &fromNumber))
	assert.Equal(t, chapter.Ordinal(10250), fromNumber)

	var fromString chapter.Ordinal
	require.NoError(t, json.Unmarshal([]byte(`"2.125"`), &fromString))
	assert.Equal(t, chapter.Ordinal(2125), fromString)

	var invalid chapter.Ordinal
	require.Error(t, json.Unmarshal([]byte(`"-4"`), &invalid))
}
