package utils

import (
	"math"
	"strconv"
	"strings"
)

// маркеры пропусков, которые трактуем как пустую ячейку
var missing = map[string]struct{}{
	"": {}, "na": {}, "n/a": {}, "nan": {}, "-nan": {}, "null": {}, "none": {},
	"#n/a": {}, "<na>": {}, "#na": {},
}

// IsMissing reports whether s is a missing-value marker (case-insensitive).
func IsMissing(s string) bool {
	_, ok := missing[strings.ToLower(cleanSpaces(s))]
	return ok
}

// ParseNumber парсит обычную десятичную запись: "12", "-3.5", "1e3".
// Шестнадцатеричные, Inf/NaN и запятые не принимаются.
func ParseNumber(s string) (float64, bool) {
	s = cleanSpaces(s)
	if s == "" {
		return 0, false
	}
	if strings.ContainsAny(s, "xXpP_,") {
		return 0, false
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil || math.IsNaN(f) || math.IsInf(f, 0) {
		return 0, false
	}
	return f, true
}

// убрать неразрывные/узкие пробелы по краям
func cleanSpaces(s string) string {
	s = strings.NewReplacer("\u00A0", " ", "\u202F", " ").Replace(s)
	return strings.TrimSpace(s)
}
