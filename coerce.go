package config

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"unicode/utf8"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// coerce interprets a raw string. A comma splits the raw value into a list
// whose pieces are coerced one by one.
func coerce(raw string) (Value, error) {
	if !strings.Contains(raw, ",") {
		return coerceScalar(raw)
	}
	pieces := strings.Split(raw, ",")
	list := make([]Value, 0, len(pieces))
	for _, piece := range pieces {
		v, err := coerceScalar(piece)
		if err != nil {
			return Value{}, err
		}
		list = append(list, v)
	}
	return Value{kind: KindList, list: list}, nil
}

func coerceScalar(s string) (Value, error) {
	if isASCII(s) {
		switch cases.Upper(language.Und).String(s) {
		case "TRUE", "YES":
			return BoolValue(true), nil
		case "FALSE", "NO":
			return BoolValue(false), nil
		}
	}

	n, err := strconv.ParseInt(strings.TrimSpace(s), 10, 64)
	if err != nil {
		if errors.Is(err, strconv.ErrRange) {
			return Value{}, err
		}
		return StringValue(s), nil
	}
	// only the canonical decimal spelling round-trips to an integer
	if strconv.FormatInt(n, 10) != s {
		return Value{}, fmt.Errorf("%w: %q", ErrNonCanonicalInt, s)
	}
	return IntValue(n), nil
}

// isASCII keeps non-ASCII spellings such as "yeſ" from upper-casing into
// a boolean keyword.
func isASCII(s string) bool {
	for i := 0; i < len(s); i++ {
		if s[i] >= utf8.RuneSelf {
			return false
		}
	}
	return true
}
