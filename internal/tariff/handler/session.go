package handler

import (
	"bufio"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"tariff-sage/internal/tariff/model"
)

const (
	Prompt    = "Consult The Tariff Sage (or type '%s'): "
	Farewell  = "The Tariff Sage bids you farewell. Thank you for being a valuable user!"
	Separator = "----------------------------------------"
)

// Resolver — то, что сессия спрашивает на каждый запрос.
type Resolver interface {
	Resolve(query string) (model.MatchResult, error)
}

type Session struct {
	resolver Resolver
	columns  []string
	exitWord string
	in       io.Reader
	out      io.Writer
	log      zerolog.Logger
	st       styles
}

// NewSession — columns задают порядок колонок в таблице совпадений.
func NewSession(res Resolver, columns []string, exitWord string, in io.Reader, out io.Writer, logger zerolog.Logger) *Session {
	if strings.TrimSpace(exitWord) == "" {
		exitWord = "exit"
	}
	return &Session{
		resolver: res,
		columns:  columns,
		exitWord: strings.TrimSpace(exitWord),
		in:       in,
		out:      out,
		log:      logger,
		st:       newStyles(out),
	}
}

// Run — цикл чтения запросов до exit-слова или EOF. Ошибка резолвера
// (нет колонки описания) прерывает цикл.
func (s *Session) Run() error {
	sc := bufio.NewScanner(s.in)
	sc.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	for {
		fmt.Fprintf(s.out, Prompt, s.exitWord)
		if !sc.Scan() {
			if err := sc.Err(); err != nil {
				return fmt.Errorf("read query: %w", err)
			}
			fmt.Fprintln(s.out)
			s.farewell()
			return nil
		}
		query := strings.TrimRight(sc.Text(), "\r")
		if strings.EqualFold(strings.TrimSpace(query), s.exitWord) {
			s.farewell()
			return nil
		}
		if err := s.consult(query); err != nil {
			return err
		}
	}
}

func (s *Session) farewell() {
	fmt.Fprintln(s.out, s.st.accent.Render(Farewell))
}

func (s *Session) consult(query string) error {
	start := time.Now()
	log := s.log.With().Str("qid", uuid.NewString()).Logger()

	fmt.Fprintf(s.out, "\nSeeking guidance on: '%s'...\n", query)
	res, err := s.resolver.Resolve(query)
	if err != nil {
		log.Error().Err(err).Str("query", query).Msg("resolve")
		return err
	}

	switch res.Outcome {
	case model.Records:
		fmt.Fprintln(s.out, "The Sage offers these insights:")
		fmt.Fprint(s.out, renderTable(s.st, s.columns, res.Records))
	case model.Suggestion:
		fmt.Fprintln(s.out, s.st.dim.Render("The Sage is trying to find the best answer..."))
		fmt.Fprintf(s.out, "Were you trying to enquire about: '%s'?\n", s.st.accent.Render(res.Suggestion))
	default:
		fmt.Fprintln(s.out, s.st.dim.Render("The Sage is trying to find the best answer..."))
		fmt.Fprintln(s.out, "The Sage finds no direct answer to your query.")
	}
	fmt.Fprintln(s.out, Separator)

	log.Debug().
		Str("query", query).
		Str("outcome", res.Outcome.String()).
		Int("records", len(res.Records)).
		Int("score", res.Score).
		Dur("elapsed", time.Since(start)).
		Msg("consult done")
	return nil
}
