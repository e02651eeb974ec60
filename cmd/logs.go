package cmd

import (
	"encoding/json"
	"fmt"
	"io"
	stdlog "log"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/hpcloud/tail"
	"github.com/spf13/cobra"

	"github.com/mediapulse/pulse/cli"
	"github.com/mediapulse/pulse/logging"
	"github.com/mediapulse/pulse/tui/theme"
)

// tailedLine is one log line attributed to its component file.
type tailedLine struct {
	Component string
	Line      string
}

// NewLogsCmd creates the `logs` command.
func NewLogsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "logs",
		Short: "Show the console's own log files",
		Long: `Streams the pulse log files written under .mediapulse/logs. Each component
(tui, api, config-watch, ...) writes its own daily file; by default all of
them are shown interleaved.

Examples:
  # Print collected logs
  pulse logs

  # Follow new log lines
  pulse logs -f

  # Only the API client component, machine readable
  pulse logs --component api --json
`,
		RunE: runLogsE,
	}

	cmd.Flags().BoolP("follow", "f", false, "Follow log output")
	cmd.Flags().StringSlice("component", nil, "Filter by component names (comma-separated)")
	return cmd
}

func runLogsE(cmd *cobra.Command, args []string) error {
	logger := cli.GetLogger(cmd)
	opts := cli.GetOptions(cmd)

	follow, _ := cmd.Flags().GetBool("follow")
	components, _ := cmd.Flags().GetStringSlice("component")

	files, err := findLogFiles(components)
	if err != nil {
		return err
	}
	if len(files) == 0 {
		logger.Info("No log files found yet")
		return nil
	}

	lineChan := make(chan tailedLine, 100)
	var wg sync.WaitGroup

	for component, path := range files {
		wg.Add(1)
		go tailLogFile(component, path, follow, lineChan, &wg)
	}

	go func() {
		wg.Wait()
		close(lineChan)
	}()

	for line := range lineChan {
		if opts.JSONOutput {
			printLogJSON(line)
		} else {
			printLogText(line)
		}
	}
	return nil
}

// findLogFiles maps component name to its newest log file, searching the
// cwd log dir first and the home dir fallback second, mirroring where the
// logging package writes.
func findLogFiles(componentFilter []string) (map[string]string, error) {
	dirs := []string{}
	if cwd, err := os.Getwd(); err == nil {
		dirs = append(dirs, filepath.Join(cwd, logging.LogDirName))
	}
	if home, err := os.UserHomeDir(); err == nil {
		dirs = append(dirs, filepath.Join(home, logging.LogDirName))
	}

	filter := make(map[string]bool, len(componentFilter))
	for _, c := range componentFilter {
		filter[c] = true
	}

	files := make(map[string]string)
	for _, dir := range dirs {
		entries, err := os.ReadDir(dir)
		if err != nil {
			continue
		}
		for _, entry := range entries {
			if entry.IsDir() || !strings.HasSuffix(entry.Name(), ".log") {
				continue
			}
			// File names are <component>-<date>.log.
			base := strings.TrimSuffix(entry.Name(), ".log")
			idx := strings.LastIndex(base, "-20")
			if idx <= 0 {
				continue
			}
			component := base[:idx]
			if len(filter) > 0 && !filter[component] {
				continue
			}
			path := filepath.Join(dir, entry.Name())
			// Later (lexicographically newer) dates win.
			if existing, ok := files[component]; !ok || path > existing {
				files[component] = path
			}
		}
		if len(files) > 0 {
			break
		}
	}
	return files, nil
}

// tailLogFile streams one file's lines into the channel. With follow the
// tail reopens the file when the daily rotation replaces it.
func tailLogFile(component, path string, follow bool, lineChan chan<- tailedLine, wg *sync.WaitGroup) {
	defer wg.Done()

	t, err := tail.TailFile(path, tail.Config{
		Follow:   follow,
		ReOpen:   follow,
		Location: &tail.SeekInfo{Offset: 0, Whence: io.SeekStart},
		Logger:   stdlog.New(io.Discard, "", 0),
	})
	if err != nil {
		return
	}

	for line := range t.Lines {
		if line.Err != nil {
			continue
		}
		if text := strings.TrimSpace(line.Text); text != "" {
			lineChan <- tailedLine{Component: component, Line: text}
		}
	}
}

// printLogJSON prints a log line in JSON, enriched with the component name.
func printLogJSON(line tailedLine) {
	var logMap map[string]interface{}
	if err := json.Unmarshal([]byte(line.Line), &logMap); err != nil {
		fallback := map[string]interface{}{
			"component": line.Component,
			"raw_line":  line.Line,
		}
		data, _ := json.Marshal(fallback)
		fmt.Println(string(data))
		return
	}

	logMap["component"] = line.Component
	data, _ := json.Marshal(logMap)
	fmt.Println(string(data))
}

// printLogText pretty-prints a log line for human consumption.
func printLogText(line tailedLine) {
	t := theme.DefaultTheme

	var logMap map[string]interface{}
	if err := json.Unmarshal([]byte(line.Line), &logMap); err != nil {
		// Text-formatted lines already carry their own layout.
		fmt.Printf("[%s] %s\n", t.Accent.Render(line.Component), line.Line)
		return
	}

	ts, _ := logMap["time"].(string)
	level, _ := logMap["level"].(string)
	msg, _ := logMap["msg"].(string)

	parsedTime, err := time.Parse(time.RFC3339Nano, ts)
	if err != nil {
		parsedTime, _ = time.Parse(time.RFC3339, ts)
	}

	var levelStyle lipgloss.Style
	switch strings.ToLower(level) {
	case "error", "fatal", "panic":
		levelStyle = t.Error
	case "warning":
		levelStyle = t.Warning
	case "info":
		levelStyle = t.Info
	default:
		levelStyle = t.Muted
	}

	var fields []string
	var keys []string
	for k := range logMap {
		if k != "time" && k != "level" && k != "msg" && k != "component" {
			keys = append(keys, k)
		}
	}
	sort.Strings(keys)
	for _, k := range keys {
		fields = append(fields, fmt.Sprintf("%s=%v", t.Muted.Render(k), logMap[k]))
	}

	fmt.Printf("%s [%s] %s %s %s\n",
		parsedTime.Format("15:04:05"),
		t.Accent.Render(line.Component),
		levelStyle.Render(strings.ToUpper(level)),
		msg,
		strings.Join(fields, " "),
	)
}
