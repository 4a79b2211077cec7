package cli

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strconv"
	"strings"

	"github.com/go-gota/gota/dataframe"

	"github.com/MarwanRagab123/Bank-risk-analysis/internal/domain/service"
	"github.com/MarwanRagab123/Bank-risk-analysis/internal/infrastructure/csvio"
	"github.com/MarwanRagab123/Bank-risk-analysis/internal/infrastructure/report"
)

// ErrNoData is reported when a menu action needs a loaded table.
var ErrNoData = errors.New("no data loaded, please load data first")

const menu = `
  1  Load dataset
  2  Clean and validate data
  3  Build features
  4  Score customers
  5  Flag suspicious transactions
  6  Export reports
  7  Display summary in console
  0  Exit application
`

// Session is the interactive menu. It keeps the working table between
// choices so each pipeline stage can be run and inspected on its own.
type Session struct {
	stages    map[string]service.Stage
	generator *report.Generator
	logger    *slog.Logger
	in        *bufio.Scanner
	out       io.Writer
	input     string
	data      dataframe.DataFrame
	loaded    bool
}

// NewSession creates a menu session over the stages of pipeline, reading the
// ledger from input.
func NewSession(pipeline *service.Pipeline, gen *report.Generator, input string, in io.Reader, out io.Writer, logger *slog.Logger) *Session {
	stages := make(map[string]service.Stage)
	for _, st := range pipeline.Stages() {
		stages[st.Name()] = st
	}
	return &Session{
		stages:    stages,
		generator: gen,
		logger:    logger,
		in:        bufio.NewScanner(in),
		out:       out,
		input:     input,
	}
}

// Run shows the menu until the user exits, input ends or ctx is cancelled.
// Action errors are printed and the menu continues.
func (s *Session) Run(ctx context.Context) error {
	fmt.Fprintln(s.out, "Bank Risk Analysis")
	for {
		if err := ctx.Err(); err != nil {
			return err
		}
		fmt.Fprint(s.out, menu)
		fmt.Fprint(s.out, "Enter your choice: ")

		if !s.in.Scan() {
			fmt.Fprintln(s.out)
			return s.in.Err()
		}
		line := strings.TrimSpace(s.in.Text())
		if line == "" {
			fmt.Fprintln(s.out, "Error! Please enter a number from the menu.")
			continue
		}
		choice, err := strconv.Atoi(line)
		if err != nil {
			fmt.Fprintln(s.out, "Error! Please enter a valid number.")
			continue
		}
		if choice == 0 {
			fmt.Fprintln(s.out, "Thank you for using the application!")
			return nil
		}
		if err := s.Do(choice); err != nil {
			fmt.Fprintf(s.out, "Error: %v\n", err)
		}
	}
}

// Do performs one menu action.
func (s *Session) Do(choice int) error {
	switch choice {
	case 1:
		return s.load()
	case 2:
		return s.clean()
	case 3:
		return s.apply(service.StageBuildFeatures, "Features built successfully!")
	case 4:
		return s.apply(service.StageComputeScores, "Risk scores computed successfully!")
	case 5:
		return s.apply(service.StageFlagSuspicious, "Suspicious transactions flagged successfully!")
	case 6:
		return s.export()
	case 7:
		return s.summary()
	default:
		return fmt.Errorf("unknown menu option %d", choice)
	}
}

// Data returns the working table and whether one is loaded.
func (s *Session) Data() (dataframe.DataFrame, bool) {
	return s.data, s.loaded
}

func (s *Session) load() error {
	fmt.Fprintf(s.out, "Loading dataset %s...\n", s.input)
	df, err := csvio.LoadFile(s.input)
	if err != nil {
		return err
	}
	s.data, s.loaded = df, true
	fmt.Fprintf(s.out, "Data loaded successfully! %d rows.\n", df.Nrow())
	return nil
}

func (s *Session) clean() error {
	if !s.loaded {
		return ErrNoData
	}
	before := s.data.Nrow()
	df, err := csvio.Clean(s.data)
	if err != nil {
		return err
	}
	s.data = df
	fmt.Fprintf(s.out, "Data cleaned successfully! %d of %d rows kept.\n", df.Nrow(), before)
	return nil
}

func (s *Session) apply(stage, done string) error {
	if !s.loaded {
		return ErrNoData
	}
	st, ok := s.stages[stage]
	if !ok {
		return fmt.Errorf("stage %s is not configured", stage)
	}
	df, err := st.Apply(s.data)
	if err != nil {
		return err
	}
	s.data = df
	s.logger.Debug("stage applied", "stage", stage, "rows", df.Nrow(), "columns", df.Ncol())
	fmt.Fprintln(s.out, done)
	return nil
}

func (s *Session) export() error {
	if !s.loaded {
		return ErrNoData
	}
	if _, err := s.generator.Generate(s.data); err != nil {
		return err
	}
	fmt.Fprintf(s.out, "Reports saved in folder: %s\n", s.generator.Dir())
	return nil
}

func (s *Session) summary() error {
	if !s.loaded {
		return ErrNoData
	}
	sum, err := report.Summarize(s.data)
	if err != nil {
		return err
	}
	return report.WriteConsoleSummary(s.out, sum)
}
