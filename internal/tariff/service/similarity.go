package service

import (
	"math"
	"sort"
	"strings"
)

// Все функции ниже ждут строки, уже прошедшие process().

// scorer держит DP-буферы на время одного сравнения запроса с кандидатом.
type scorer struct {
	d osa
}

// sim — нормированная похожесть в [0..1].
func (s *scorer) sim(a, b []rune) float64 {
	if len(a) == 0 && len(b) == 0 {
		return 1
	}
	if len(a) == 0 || len(b) == 0 {
		return 0
	}
	return 1 - float64(s.d.distance(a, b))/float64(max(len(a), len(b)))
}

func (s *scorer) ratio(a, b string) int { return pct(s.sim([]rune(a), []rune(b))) }

// partial — лучшее совпадение короткой строки с окном той же длины в длинной.
// Окна берутся срезами одного []rune.
func (s *scorer) partial(a, b string) int {
	short, long := []rune(a), []rune(b)
	if len(short) > len(long) {
		short, long = long, short
	}
	n := len(short)
	if n == 0 {
		return 0
	}
	best := 0.0
	for i := 0; i+n <= len(long); i++ {
		if v := s.sim(short, long[i:i+n]); v > best {
			best = v
			if best == 1 {
				break
			}
		}
	}
	return pct(best)
}

// tokenSetRatio сравнивает общее ядро токенов с каждой стороной:
// "hip replacement left" vs "left hip replacement revision" даст 100.
func tokenSetRatio(a, b string, score func(a, b string) int) int {
	sa, sb := tokenSet(a), tokenSet(b)
	var inter, onlyA, onlyB []string
	for t := range sa {
		if _, ok := sb[t]; ok {
			inter = append(inter, t)
		} else {
			onlyA = append(onlyA, t)
		}
	}
	for t := range sb {
		if _, ok := sa[t]; !ok {
			onlyB = append(onlyB, t)
		}
	}
	sort.Strings(inter)
	sort.Strings(onlyA)
	sort.Strings(onlyB)

	t0 := strings.Join(inter, " ")
	t1 := strings.TrimSpace(t0 + " " + strings.Join(onlyA, " "))
	t2 := strings.TrimSpace(t0 + " " + strings.Join(onlyB, " "))

	best := score(t1, t2)
	if t0 != "" {
		best = max(best, score(t0, t1), score(t0, t2))
	}
	return best
}

func tokenSet(s string) map[string]struct{} {
	m := make(map[string]struct{})
	for _, t := range strings.Fields(s) {
		m[t] = struct{}{}
	}
	return m
}

// weightedRatio — итоговый score 0..100: прямой ratio, token-sort и token-set
// (со штрафом 0.95); при сильно разной длине — частичные варианты (0.9, >8 раз — 0.6).
// Варианты, которые уже не могут поднять результат, не считаются.
func weightedRatio(a, b string) int {
	if a == "" || b == "" {
		return 0
	}
	var s scorer
	ra, rb := []rune(a), []rune(b)
	la, lb := len(ra), len(rb)
	lenRatio := float64(max(la, lb)) / float64(min(la, lb))

	best := float64(pct(s.sim(ra, rb)))
	if lenRatio < 1.5 {
		if best < 95 {
			best = math.Max(best, float64(s.ratio(tokenSort(a), tokenSort(b)))*0.95)
			best = math.Max(best, float64(tokenSetRatio(a, b, s.ratio))*0.95)
		}
		return int(math.Round(best))
	}

	scale := 0.9
	if lenRatio > 8 {
		scale = 0.6
	}
	if best < 100*scale {
		best = math.Max(best, float64(s.partial(a, b))*scale)
	}
	if best < 95*scale {
		best = math.Max(best, float64(s.partial(tokenSort(a), tokenSort(b)))*0.95*scale)
		best = math.Max(best, float64(tokenSetRatio(a, b, s.partial))*0.95*scale)
	}
	return int(math.Round(best))
}

// weightedBound — верхняя оценка weightedRatio только по длинам строк (в рунах):
// прямой ratio не больше min/max, остальные варианты ограничены своими множителями.
func weightedBound(la, lb int) int {
	if la == 0 || lb == 0 {
		return 0
	}
	lo, hi := min(la, lb), max(la, lb)
	direct := pct(float64(lo)/float64(hi)) + 1 // +1 на погрешность округления
	switch lenRatio := float64(hi) / float64(lo); {
	case lenRatio < 1.5:
		return min(100, max(direct, 95))
	case lenRatio > 8:
		return max(direct, 60)
	default:
		return max(direct, 90)
	}
}

func pct(x float64) int { return int(math.Round(x * 100)) }
