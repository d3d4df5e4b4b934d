package cmd

import (
	"encoding/json"
	"fmt"
	"io"
	stdlog "log"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"time"

	"github.com/grovetools/deck/cli"
	"github.com/grovetools/deck/errors"
	"github.com/grovetools/deck/logging"
	"github.com/grovetools/deck/tui/theme"
	"github.com/hpcloud/tail"
	"github.com/spf13/cobra"
)

func newLogsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "logs [COMPONENT]",
		Short: "Show deck's log file",
		Long: `Print the log file of a component (tui, open, server), or the most recently
written log file when no component is given.

Examples:
  # Follow the server log
  deck logs server -f

  # Last 20 lines of the newest log
  deck logs --tail 20`,
		Args: cobra.MaximumNArgs(1),
		RunE: runLogs,
	}
	cmd.Flags().BoolP("follow", "f", false, "Follow log output")
	cmd.Flags().Int("tail", -1, "Number of lines to show from the end (default: all, ignored with -f)")
	return cmd
}

func runLogs(cmd *cobra.Command, args []string) error {
	cfg, err := cli.LoadConfig(cmd)
	if err != nil {
		return err
	}
	var logCfg logging.Config
	if err := cfg.UnmarshalExtension("logging", &logCfg); err != nil {
		return errors.Wrap(err, errors.ErrCodeConfigInvalid, "invalid logging section")
	}

	var path string
	if len(args) == 1 {
		path = logging.LogFilePath(args[0], logCfg, time.Now())
	} else if logCfg.File.Enabled && logCfg.File.Path != "" {
		path = logging.LogFilePath("", logCfg, time.Now())
	} else {
		path, err = findLatestLogFile(logging.LogDir())
		if err != nil {
			return err
		}
	}

	follow, _ := cmd.Flags().GetBool("follow")
	tailLines, _ := cmd.Flags().GetInt("tail")
	raw := cli.GetOptions(cmd).JSONOutput
	out := cmd.OutOrStdout()

	logging.NewPrettyLogger().WithWriter(cmd.ErrOrStderr()).Path("Log file", path)

	t, err := tail.TailFile(path, tail.Config{
		Follow:    follow,
		ReOpen:    follow,
		MustExist: !follow,
		Location:  &tail.SeekInfo{Offset: 0, Whence: io.SeekStart},
		Logger:    stdlog.New(io.Discard, "", 0),
	})
	if err != nil {
		return errors.Wrap(err, errors.ErrCodeCommandFailed, "cannot read log file").WithDetail("path", path)
	}
	defer t.Cleanup()

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt)
	defer stop()
	go func() {
		<-ctx.Done()
		_ = t.Stop()
	}()

	var keep []string
	for line := range t.Lines {
		if line.Err != nil {
			continue
		}
		text := formatLogLine(line.Text, raw)
		if follow || tailLines < 0 {
			fmt.Fprintln(out, text)
			continue
		}
		keep = append(keep, text)
		if len(keep) > tailLines {
			keep = keep[1:]
		}
	}
	for _, text := range keep {
		fmt.Fprintln(out, text)
	}
	return nil
}

// formatLogLine renders a JSON log entry as "time LEVEL [component] msg".
// Text lines and raw output pass through unchanged.
func formatLogLine(line string, raw bool) string {
	if raw || !strings.HasPrefix(line, "{") {
		return line
	}
	var entry map[string]interface{}
	if err := json.Unmarshal([]byte(line), &entry); err != nil {
		return line
	}

	t := theme.DefaultTheme
	level, _ := entry["level"].(string)
	levelStyle := t.Info
	switch level {
	case "warning", "warn":
		levelStyle = t.Warning
	case "error", "fatal", "panic":
		levelStyle = t.Error
	case "debug", "trace":
		levelStyle = t.Muted
	}

	var b strings.Builder
	if ts, ok := entry["time"].(string); ok {
		if parsed, err := time.Parse(time.RFC3339, ts); err == nil {
			ts = parsed.Format("15:04:05")
		}
		b.WriteString(t.Muted.Render(ts) + " ")
	}
	b.WriteString(levelStyle.Render(strings.ToUpper(level)))
	if c, ok := entry["component"].(string); ok {
		b.WriteString(" " + t.Accent.Render("["+c+"]"))
	}
	if msg, ok := entry["msg"].(string); ok {
		b.WriteString(" " + msg)
	}
	return b.String()
}

// findLatestLogFile returns the most recently modified non-empty file in dir,
// falling back to the newest empty one.
func findLatestLogFile(dir string) (string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return "", errors.Wrap(err, errors.ErrCodeCommandFailed, "no log directory").WithDetail("path", dir)
	}

	var latest, latestNonEmpty os.FileInfo
	var latestPath, latestNonEmptyPath string
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		info, err := entry.Info()
		if err != nil {
			continue
		}
		if latest == nil || info.ModTime().After(latest.ModTime()) {
			latest = info
			latestPath = filepath.Join(dir, entry.Name())
		}
		if info.Size() > 0 && (latestNonEmpty == nil || info.ModTime().After(latestNonEmpty.ModTime())) {
			latestNonEmpty = info
			latestNonEmptyPath = filepath.Join(dir, entry.Name())
		}
	}

	if latestNonEmpty != nil {
		return latestNonEmptyPath, nil
	}
	if latest == nil {
		return "", errors.New(errors.ErrCodeCommandFailed, fmt.Sprintf("no log files found in %s", dir))
	}
	return latestPath, nil
}
