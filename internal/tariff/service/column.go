package service

import "strings"

// resolveColumn ищет реальное имя колонки по желаемому.
// Поддерживает варианты через "|" (например: "description|desc").
// Порядок: точное совпадение → по нормализованному имени (регистр и
// пунктуация не важны). Похожий, но другой заголовок ("description_code")
// не подставляется.
func resolveColumn(columns []string, want string) (string, bool) {
	want = strings.TrimSpace(want)
	if want == "" {
		return "", false
	}
	alts := strings.Split(want, "|")
	for i := range alts {
		alts[i] = strings.TrimSpace(alts[i])
	}

	// 1) точное совпадение (как есть)
	for _, a := range alts {
		for _, c := range columns {
			if c == a {
				return c, true
			}
		}
	}

	// 2) нормализованное
	norms := make([]string, 0, len(alts))
	for _, a := range alts {
		if n := normHeaderKey(a); n != "" {
			norms = append(norms, n)
		}
	}
	for _, n := range norms {
		for _, c := range columns {
			if normHeaderKey(c) == n {
				return c, true
			}
		}
	}
	return "", false
}
