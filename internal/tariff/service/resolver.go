package service

import (
	"fmt"
	"strings"
	"unicode/utf8"

	"tariff-sage/internal/tariff/model"
)

// Resolver отвечает на запросы по неизменяемому датасету. Состояния между
// вызовами нет.
type Resolver struct {
	ds    *model.Dataset
	opt   model.Options
	idx   *index
	score func(query, candidate string) int
	// верхняя оценка score по длинам; nil — считать всех кандидатов
	bound func(queryLen, candidateLen int) int
}

func NewResolver(ds *model.Dataset, opt model.Options) *Resolver {
	def := model.DefaultOptions()
	if strings.TrimSpace(opt.DescriptionColumn) == "" {
		opt.DescriptionColumn = def.DescriptionColumn
	}
	if opt.MaxResults <= 0 {
		opt.MaxResults = def.MaxResults
	}
	return &Resolver{
		ds:    ds,
		opt:   opt,
		idx:   buildIndex(ds, opt.DescriptionColumn),
		score: weightedRatio,
		bound: weightedBound,
	}
}

// DescriptionColumn returns the dataset column used for suggestions.
func (r *Resolver) DescriptionColumn() (string, bool) {
	return r.idx.descCol, r.idx.hasDesc
}

// Resolve: прямое совпадение по токенам, иначе fuzzy-подсказка по колонке описания.
func (r *Resolver) Resolve(query string) (model.MatchResult, error) {
	if hits := r.direct(tokenize(query)); len(hits) > 0 {
		return model.MatchResult{Outcome: model.Records, Records: hits}, nil
	}
	return r.suggest(query)
}

// direct — строка подходит, если хоть один токен входит подстрокой
// хоть в одну ячейку. Первые MaxResults в порядке датасета.
func (r *Resolver) direct(tokens []string) []model.Record {
	if len(tokens) == 0 {
		return nil
	}
	var out []model.Record
	for i, row := range r.idx.cells {
		if !rowMatches(row, tokens) {
			continue
		}
		out = append(out, r.ds.Record(i))
		if len(out) == r.opt.MaxResults {
			break
		}
	}
	return out
}

func rowMatches(row, tokens []string) bool {
	for _, t := range tokens {
		for _, cell := range row {
			if strings.Contains(cell, t) {
				return true
			}
		}
	}
	return false
}

func (r *Resolver) suggest(query string) (model.MatchResult, error) {
	if !r.idx.hasDesc {
		return model.MatchResult{}, fmt.Errorf("%w: %q", ErrMissingColumn, r.opt.DescriptionColumn)
	}
	q := process(query)
	qn := utf8.RuneCountInString(q)
	best, text := 0, ""
	for i, c := range r.idx.desc {
		// кандидат, который не может строго обойти лучший, не считаем
		if i > 0 && r.bound != nil && r.bound(qn, c.n) <= best {
			continue
		}
		// при равенстве остаётся первый кандидат
		if s := r.score(q, c.proc); i == 0 || s > best {
			best, text = s, c.text
		}
	}
	if text != "" && best > r.opt.SuggestThreshold {
		return model.MatchResult{Outcome: model.Suggestion, Suggestion: text, Score: best}, nil
	}
	return model.MatchResult{Outcome: model.NoMatch, Score: best}, nil
}
