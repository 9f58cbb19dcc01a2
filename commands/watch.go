package commands

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/spf13/cobra"

	"posinsight/internal/analyzer"
	"posinsight/internal/data/decoder"
	"posinsight/internal/data/scanner"
	"posinsight/internal/util"
)

var (
	watchInterval time.Duration

	watchCmd = &cobra.Command{
		Use:   "watch <directory>...",
		Short: "Re-run the analysis whenever export files change",
		Long: `watch monitors one or more directories and re-runs the analysis when an
export file is created or modified, so a terminal next to the register stays
current as new exports land.`,
		Args: cobra.MinimumNArgs(1),
		RunE: runWatch,
	}
)

func init() {
	watchCmd.Flags().DurationVar(&watchInterval, "debounce", 500*time.Millisecond,
		"Quiet period after a file event before re-analyzing")
	rootCmd.AddCommand(watchCmd)
}

func runWatch(cmd *cobra.Command, args []string) error {
	initRuntime()

	config, err := buildConfig()
	if err != nil {
		return err
	}

	for _, arg := range args {
		info, err := os.Stat(arg)
		if err != nil {
			return fmt.Errorf("stat %s: %w", arg, err)
		}
		if !info.IsDir() {
			return fmt.Errorf("watch takes directories, %s is a file", arg)
		}
	}

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("create watcher: %w", err)
	}
	defer watcher.Close()

	for _, dir := range args {
		if err := watcher.Add(dir); err != nil {
			return fmt.Errorf("watch %s: %w", dir, err)
		}
		util.LogInfo(fmt.Sprintf("Watching %s", dir))
	}

	analyze := func() {
		files, err := scanner.Resolve(args)
		if err != nil {
			util.LogError(fmt.Sprintf("Scan failed: %v", err))
			return
		}
		if err := analyzer.New(config).Run(files); err != nil {
			util.LogError(fmt.Sprintf("Analysis failed: %v", err))
		}
	}

	analyze()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)

	// Debounce timer: exports are often written in several chunks, so wait
	// for a quiet period before re-reading.
	debounce := time.NewTimer(watchInterval)
	if !debounce.Stop() {
		<-debounce.C
	}
	pending := false

	for {
		select {
		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if !event.Has(fsnotify.Create) && !event.Has(fsnotify.Write) {
				continue
			}
			if _, err := decoder.DetectFormat(event.Name); err != nil {
				continue
			}
			util.LogDebug(fmt.Sprintf("File event: %s %s", event.Op, event.Name))
			if pending {
				if !debounce.Stop() {
					select {
					case <-debounce.C:
					default:
					}
				}
			}
			debounce.Reset(watchInterval)
			pending = true

		case <-debounce.C:
			pending = false
			analyze()

		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			util.LogWarn(fmt.Sprintf("Watcher error: %v", err))

		case <-sigCh:
			util.LogInfo("Stopping watch")
			return nil
		}
	}
}
