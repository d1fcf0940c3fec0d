package service

import (
	"regexp"
	"sort"
	"strings"

	"golang.org/x/text/unicode/norm"
)

// fold — NFKC + нижний регистр. Применяется и к запросу, и к ячейкам,
// чтобы подстрочный поиск видел одно и то же.
func fold(s string) string {
	return strings.ToLower(norm.NFKC.String(s))
}

// tokenize: fold + split по пробелам, пустые токены отбрасываются.
func tokenize(query string) []string {
	return strings.Fields(fold(query))
}

var punct = regexp.MustCompile(`[^\p{L}\p{N}]+`)

// process — подготовка строки к fuzzy: всё, что не буква/цифра → пробел,
// нижний регистр, схлопнуть пробелы.
func process(s string) string {
	return collapseSpaces(punct.ReplaceAllString(fold(s), " "))
}

// Лексикографическая сортировка токенов
func tokenSort(s string) string {
	f := strings.Fields(s)
	sort.Strings(f)
	return strings.Join(f, " ")
}

// Схлопывание пробелов
func collapseSpaces(s string) string {
	return strings.Join(strings.Fields(s), " ")
}

// normHeaderKey: нижний регистр, только буквы/цифры, одиночные пробелы.
// "Procedure Description" == "procedure_description".
func normHeaderKey(s string) string { return process(s) }
