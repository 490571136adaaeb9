// Copyright (c) 2026 Hondana. All rights reserved.
// Author: dev@hondana.app

package chapter

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/hondana-app/hondana/internal/platform/apperr"
)

// # Exact Decimal Ordinals

// Ordinal is a chapter number stored as an exact count of thousandths.
//
// Fractional numbering ("1.5", "10.25") is common for side stories and
// extras. Floats drift under equality comparison (1.50000001 != 1.5), so the
// ordinal is modelled as a scaled integer: Ordinal(1500) is chapter 1.5.
// The database column is a BIGINT with a uniqueness constraint per title.
type Ordinal int64

// ordinalScale is the number of thousandths in one whole chapter.
const ordinalScale = 1000

// maxOrdinalWhole bounds the whole part to keep the scaled value well away
// from int64 overflow.
const maxOrdinalWhole = 1_000_000

/*
ParseOrdinal converts a decimal string into an exact [Ordinal].

Description: Accepts a non-negative decimal with at most three fractional
digits ("1", "1.5", "10.25"). The value must be positive: chapter zero and
negative ordinals are rejected.

Parameters:
  - raw: string (Caller-supplied decimal text)

Returns:
  - Ordinal: The scaled exact value
  - error: VALIDATION_ERROR on malformed or out-of-range input
*/
func ParseOrdinal(raw string) (Ordinal, error) {
	trimmed := strings.TrimSpace(raw)
	if trimmed == "" {
		return 0, apperr.ValidationError("Chapter number is required")
	}

	wholePart := trimmed
	fracPart := ""
	if dot := strings.IndexByte(trimmed, '.'); dot >= 0 {
		wholePart = trimmed[:dot]
		fracPart = trimmed[dot+1:]
	}

	if wholePart == "" || len(fracPart) > 3 {
		return 0, apperr.ValidationError("Chapter number must be a decimal with at most three fractional digits")
	}

	whole, err := strconv.ParseInt(wholePart, 10, 64)
	if err != nil || whole < 0 || whole > maxOrdinalWhole {
		return 0, apperr.ValidationError("Chapter number must be a non-negative decimal")
	}

	frac := int64(0)
	if fracPart != "" {
		frac, err = strconv.ParseInt(fracPart, 10, 64)
		if err != nil || frac < 0 {
			return 0, apperr.ValidationError("Chapter number must be a non-negative decimal")
		}
		// Right-pad to thousandths: "5" -> 500, "25" -> 250, "125" -> 125.
		for i := len(fracPart); i < 3; i++ {
			frac *= 10
		}
	}

	value := Ordinal(whole*ordinalScale + frac)
	if value <= 0 {
		return 0, apperr.ValidationError("Chapter number must be greater than zero")
	}

	return value, nil
}

// String renders the ordinal as minimal decimal text ("1", "1.5", "10.25").
func (o Ordinal) String() string {
	whole := int64(o) / ordinalScale
	frac := int64(o) % ordinalScale

	if frac == 0 {
		return strconv.FormatInt(whole, 10)
	}

	text := fmt.Sprintf("%d.%03d", whole, frac)
	return strings.TrimRight(text, "0")
}

// MarshalJSON renders the ordinal as a JSON number in decimal text form.
// The text is exact, so no float round-trip occurs.
func (o Ordinal) MarshalJSON() ([]byte, error) {
	return []byte(o.String()), nil
}

// UnmarshalJSON accepts either a JSON number or a quoted decimal string.
func (o *Ordinal) UnmarshalJSON(data []byte) error {
	text := strings.Trim(string(data), `"`)

	parsed, err := ParseOrdinal(text)
	if err != nil {
		return err
	}

	*o = parsed
	return nil
}
