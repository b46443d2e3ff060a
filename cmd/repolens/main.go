package main

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"sort"
	"strings"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/dsablic/repolens/internal/auth"
	"github.com/dsablic/repolens/internal/extract"
	"github.com/dsablic/repolens/internal/insight"
	"github.com/dsablic/repolens/internal/model"
	"github.com/dsablic/repolens/internal/output"
	"github.com/dsablic/repolens/internal/provider"
	"github.com/dsablic/repolens/internal/ui"
	"github.com/dsablic/repolens/internal/watch"
)

func main() {
	root := &cobra.Command{
		Use:   "repolens",
		Short: "Analyze git repository activity, contributors and code health",
	}

	root.AddCommand(newAnalyzeCmd())
	root.AddCommand(newWatchCmd())
	root.AddCommand(newAuthCmd())

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := root.ExecuteContext(ctx); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func newAnalyzeCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "analyze <path>",
		Short: "Analyze a repository and generate an insight report",
		Args:  cobra.ExactArgs(1),
		RunE:  runAnalyze,
	}
	cmd.Flags().String("since", "", "Only analyze commits on or after this date (YYYY-MM-DD)")
	cmd.Flags().String("until", "", "Only analyze commits before this date (YYYY-MM-DD)")
	cmd.Flags().String("output", "text", "Report format: text, json or html")
	cmd.Flags().String("save-charts", "", "Directory to write chart PNGs into")
	cmd.Flags().String("remote", "", "GitHub repository (owner/repo) for hosting stats")
	cmd.Flags().Bool("complexity", true, "Run the per-file complexity pass")
	return cmd
}

func runAnalyze(cmd *cobra.Command, args []string) error {
	since, _ := cmd.Flags().GetString("since")
	until, _ := cmd.Flags().GetString("until")
	format, _ := cmd.Flags().GetString("output")
	chartDir, _ := cmd.Flags().GetString("save-charts")
	remote, _ := cmd.Flags().GetString("remote")
	complexity, _ := cmd.Flags().GetBool("complexity")

	rng, err := extract.ParseDateRange(since, until)
	if err != nil {
		return err
	}

	e, err := extract.Open(args[0])
	if err != nil {
		return err
	}

	progress := startProgress()
	defer progress.stop()

	ctx := cmd.Context()

	progress.stage(1)
	raw, err := e.Extract(ctx, extract.Options{Range: rng, Complexity: complexity})
	if err != nil {
		return err
	}

	if remote != "" {
		enrichFromRemote(ctx, raw, remote)
	}

	progress.stage(2)
	insights := insight.Aggregate(raw)

	report := model.Report{
		GeneratedAt: time.Now().UTC().Format(time.RFC3339),
		Repository:  args[0],
		Since:       since,
		Until:       until,
		Insights:    *insights,
	}

	progress.stage(3)
	var buf bytes.Buffer
	if err := renderReport(&buf, report, output.ParseFormat(format)); err != nil {
		return err
	}
	progress.stop()

	if _, err := io.Copy(os.Stdout, &buf); err != nil {
		return err
	}

	if chartDir != "" {
		written, err := output.SaveCharts(report, chartDir)
		if err != nil {
			return fmt.Errorf("save charts: %w", err)
		}
		for _, path := range written {
			fmt.Fprintf(os.Stderr, "Wrote %s\n", path)
		}
	}
	return nil
}

func renderReport(w io.Writer, report model.Report, format output.Format) error {
	switch format {
	case output.FormatJSON:
		return output.WriteJSON(w, report)
	case output.FormatHTML:
		return output.WriteHTML(w, report)
	default:
		return output.WriteText(w, report)
	}
}

// enrichFromRemote attaches hosting stats to the snapshot. Remote failures
// only cost the hosting section, never the report.
func enrichFromRemote(ctx context.Context, raw *model.RawMetrics, remote string) {
	owner, repo, ok := strings.Cut(remote, "/")
	if !ok || owner == "" || repo == "" {
		fmt.Fprintf(os.Stderr, "Warning: invalid --remote %q, expected owner/repo\n", remote)
		return
	}

	store := auth.NewFileStore(auth.DefaultStorePath())
	cred, err := store.LoadWithEnv("github")
	if err != nil {
		fmt.Fprintln(os.Stderr, "Warning: no GitHub credentials, skipping hosting stats (run `repolens auth login`)")
		return
	}

	gh := provider.NewGitHub(cred.AccessToken, "", nil)
	stats, err := gh.RepoStats(ctx, owner, repo)
	if err != nil {
		if errors.Is(err, provider.ErrRateLimited) {
			fmt.Fprintf(os.Stderr, "Warning: GitHub %v, skipping hosting stats\n", err)
		} else {
			fmt.Fprintf(os.Stderr, "Warning: hosting stats unavailable: %v\n", err)
		}
		return
	}
	raw.HostingStats = stats
}

// progressReporter drives either the TUI or the plain fallback through the
// three pipeline stages.
type progressReporter struct {
	plain   *ui.PlainProgress
	tui     bool
	send    func(interface{})
	wait    func()
	stopped bool
}

func startProgress() *progressReporter {
	r := &progressReporter{}
	if ui.IsTTY() {
		p := ui.RunTUI(len(ui.Stages))
		go func() { _, _ = p.Run() }()
		r.tui = true
		r.send = func(msg interface{}) { p.Send(msg) }
		r.wait = func() { p.Wait() }
		return r
	}
	r.plain = ui.NewPlainProgress(func(msg string) { fmt.Fprintln(os.Stderr, msg) })
	return r
}

func (r *progressReporter) stage(n int) {
	stage := ui.Stages[n-1]
	if r.tui {
		r.send(ui.StageMsg{Completed: n, Total: len(ui.Stages), Stage: stage})
		return
	}
	r.plain.Update(n, len(ui.Stages), stage)
}

func (r *progressReporter) stop() {
	if r.stopped {
		return
	}
	r.stopped = true
	if r.tui {
		r.send(ui.DoneMsg{})
		r.wait()
		return
	}
	r.plain.Done()
}

func newWatchCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "watch <path>",
		Short: "Poll a repository and print metric updates until interrupted",
		Args:  cobra.ExactArgs(1),
		RunE:  runWatch,
	}
	cmd.Flags().Duration("interval", watch.DefaultInterval, "Poll interval")
	cmd.Flags().StringSlice("metric", nil, "Metrics to watch: commits, contributors, branches")
	return cmd
}

func runWatch(cmd *cobra.Command, args []string) error {
	interval, _ := cmd.Flags().GetDuration("interval")
	metrics, _ := cmd.Flags().GetStringSlice("metric")

	e, err := extract.Open(args[0])
	if err != nil {
		return err
	}

	w, err := watch.New(e, interval, metrics)
	if err != nil {
		return err
	}

	fmt.Fprintf(os.Stderr, "Watching %s every %s (ctrl+c to stop)\n", args[0], interval)
	for update := range w.Run(cmd.Context()) {
		if update.Err != nil {
			fmt.Fprintf(os.Stderr, "Warning: poll %d failed: %v\n", update.Seq, update.Err)
			continue
		}
		fmt.Println(formatUpdate(update))
	}
	return nil
}

func formatUpdate(u watch.Update) string {
	names := make([]string, 0, len(u.Metrics))
	for name := range u.Metrics {
		names = append(names, name)
	}
	sort.Strings(names)

	parts := make([]string, 0, len(names)+1)
	parts = append(parts, u.At.Format(time.RFC3339))
	for _, name := range names {
		parts = append(parts, fmt.Sprintf("%s=%d", name, u.Metrics[name]))
	}
	return strings.Join(parts, " ")
}

func newAuthCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "auth",
		Short: "Manage authentication",
	}

	loginCmd := &cobra.Command{
		Use:   "login",
		Short: "Store a hosting provider token",
		RunE:  runAuthLogin,
	}
	loginCmd.Flags().String("token", "", "API token (skips the interactive prompt)")

	cmd.AddCommand(loginCmd)
	return cmd
}

func runAuthLogin(cmd *cobra.Command, args []string) error {
	token, _ := cmd.Flags().GetString("token")

	details := ui.LoginDetails{Provider: "github", Token: token}
	if token == "" {
		var err error
		details, err = ui.PromptLogin()
		if err != nil {
			return fmt.Errorf("login prompt: %w", err)
		}
	}
	if details.Token == "" {
		return fmt.Errorf("no token provided")
	}

	store := auth.NewFileStore(auth.DefaultStorePath())
	cred := auth.Credentials{AccessToken: details.Token, Username: details.Username}
	if err := store.Save(details.Provider, cred); err != nil {
		return fmt.Errorf("save credentials: %w", err)
	}

	fmt.Fprintf(os.Stderr, "Saved %s credentials to %s\n", details.Provider, auth.DefaultStorePath())
	return nil
}
