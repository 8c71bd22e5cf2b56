package main

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"log/slog"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/cognicore/shortname/internal/watch"
	"github.com/cognicore/shortname/pkg/shortname"
	"github.com/cognicore/shortname/pkg/shortname/analytics"
)

var examples = []string{
	"Solution Dextrose 5% 500 milliliters Bottle Viaflex Non-Latex",
	"Halloween HERSHEY chocolate bar 500 kilograms",
	"Suture VICRYL 0 Taper CT1 J340H",
	"Tape Surgical 1.25cm x 9.14m",
	"Scissor Mayo 170mm Straight",
}

func interactiveCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "interactive",
		Aliases: []string{"repl"},
		Short:   "Generate short names interactively",
		Long: `Reads one description per line and prints its short name.

Commands:
  :examples   list example descriptions
  :history    show descriptions processed in this session
  :stats      show statistics for this session
  :clear      clear the history and statistics
  :status     show dictionary status
  :reload     reload the dictionary file
  :quit       exit (Ctrl+D also exits)`,
		RunE: runInteractive,
	}
	cmd.Flags().Bool("watch", false, "reload the dictionary file when it changes")
	_ = viper.BindPFlag("dictionary.watch", cmd.Flags().Lookup("watch"))
	return cmd
}

func runInteractive(cmd *cobra.Command, _ []string) error {
	ctx, cancel := context.WithCancel(cmd.Context())
	defer cancel()

	engine, cleanup, err := buildEngine(ctx)
	if err != nil {
		return err
	}
	defer cleanup()

	if path := viper.GetString("dictionary.path"); path != "" && viper.GetBool("dictionary.watch") {
		w := watch.New(path, engine)
		go func() {
			if err := w.Run(ctx); err != nil {
				slog.Warn("dictionary watch disabled", "error", err)
			}
		}()
	}

	out := cmd.OutOrStdout()
	fmt.Fprintln(out, "===========================================")
	fmt.Fprintln(out, "  Short Name Generator")
	fmt.Fprintf(out, "  %d-character product short names\n", engine.Rules().MaxLength)
	fmt.Fprintln(out, "===========================================")
	printStatus(out, engine.Status())
	fmt.Fprintln(out)
	fmt.Fprintln(out, "Type a description, or :help (Ctrl+D to exit):")
	fmt.Fprintln(out)

	s := newSession(engine, out)
	s.run(cmd.InOrStdin())

	fmt.Fprintln(out, "\nGoodbye!")
	return nil
}

// historyEntry is one processed description.
type historyEntry struct {
	Input   string
	Output  string
	Success bool
}

// session is one interactive run.
type session struct {
	engine  *shortname.Engine
	out     io.Writer
	history []historyEntry
	stats   *analytics.Analyzer
}

func newSession(engine *shortname.Engine, out io.Writer) *session {
	return &session{engine: engine, out: out, stats: analytics.NewAnalyzer()}
}

func (s *session) run(in io.Reader) {
	scanner := bufio.NewScanner(in)
	for {
		fmt.Fprint(s.out, "> ")
		if !scanner.Scan() {
			return
		}
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}
		if !s.handle(line) {
			return
		}
	}
}

// handle processes one line and reports whether the session continues.
func (s *session) handle(line string) bool {
	switch line {
	case ":quit", ":q", ":exit":
		return false
	case ":help":
		fmt.Fprintln(s.out, "Commands: :examples :history :stats :clear :status :reload :quit")
	case ":examples":
		for i, ex := range examples {
			fmt.Fprintf(s.out, "  %d. %s\n", i+1, ex)
		}
	case ":history":
		s.printHistory()
	case ":stats":
		s.printStats()
	case ":clear":
		s.history = nil
		s.stats.Reset()
		fmt.Fprintln(s.out, "History cleared.")
	case ":status":
		printStatus(s.out, s.engine.Status())
	case ":reload":
		path := viper.GetString("dictionary.path")
		if path == "" {
			fmt.Fprintln(s.out, "No dictionary file configured.")
			break
		}
		if err := s.engine.LoadDictionary(path); err != nil {
			fmt.Fprintln(s.out, "Error:", err)
			break
		}
		printStatus(s.out, s.engine.Status())
	default:
		r := s.engine.Process(line)
		s.history = append(s.history, historyEntry{Input: line, Output: r.ShortName, Success: r.Success})
		s.stats.Process(r)
		printResult(s.out, r, s.engine.Rules().MaxLength)
		fmt.Fprintln(s.out)
	}
	return true
}

func (s *session) printHistory() {
	if len(s.history) == 0 {
		fmt.Fprintln(s.out, "No history yet.")
		return
	}
	tw := tabwriter.NewWriter(s.out, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "#\tINPUT\tOUTPUT\tSTATUS")
	for i, h := range s.history {
		status := "ok"
		if !h.Success {
			status = "failed"
		}
		fmt.Fprintf(tw, "%d\t%s\t%s\t%s\n", i+1, h.Input, dash(h.Output), status)
	}
	tw.Flush()
}

func (s *session) printStats() {
	st := s.stats.Snapshot()
	if st.Total == 0 {
		fmt.Fprintln(s.out, "No statistics yet.")
		return
	}
	fmt.Fprintf(s.out, "Processed:      %d (%.0f%% succeeded)\n", st.Total, st.SuccessRate()*100)
	fmt.Fprintf(s.out, "Average length: %.1f\n", st.AverageLength())
	for _, rc := range st.TopRules(analytics.DefaultTopN) {
		fmt.Fprintf(s.out, "  %-24s %d\n", rc.Rule, rc.Count)
	}
}
