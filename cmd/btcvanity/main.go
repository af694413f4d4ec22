package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/vanityaddr/btcvanity/internal/config"
	"github.com/vanityaddr/btcvanity/internal/log"
	"github.com/vanityaddr/btcvanity/internal/server"
	"github.com/vanityaddr/btcvanity/internal/store"
	"github.com/vanityaddr/btcvanity/pkg/vanity"
)

const version = "0.1.0"

var (
	prefix      string
	suffix      string
	maxTries    uint64
	workers     int
	outputFile  string
	dbPath      string
	logLevel    uint32
	logJSON     bool
	logInterval int

	cfgFile string
)

func main() {
	rootCmd := &cobra.Command{
		Use:     "btcvanity",
		Short:   "Bitcoin vanity address search engine",
		Long:    "Brute-force search for Bitcoin key pairs whose address matches a chosen prefix and/or suffix.",
		Version: version,
	}

	searchCmd := &cobra.Command{
		Use:   "search",
		Short: "Run a one-shot vanity address search",
		Run:   runSearch,
	}
	searchCmd.Flags().StringVarP(&prefix, "prefix", "p", "", "address prefix to match (after the leading version character)")
	searchCmd.Flags().StringVarP(&suffix, "suffix", "s", "", "address suffix to match")
	searchCmd.Flags().Uint64VarP(&maxTries, "max-tries", "n", 500000, "per-worker try budget for each encoding")
	searchCmd.Flags().IntVarP(&workers, "workers", "w", 0, "number of parallel workers (0 = bounded default, 1 = single-threaded)")
	searchCmd.Flags().StringVarP(&outputFile, "output", "o", "", "append the found result to this file")
	searchCmd.Flags().StringVar(&dbPath, "db", "", "also persist the found result to this record store")
	searchCmd.Flags().IntVarP(&logInterval, "log-interval", "i", 5, "progress logging interval in seconds")

	serveCmd := &cobra.Command{
		Use:   "serve",
		Short: "Start the REST API server",
		Run:   runServe,
	}
	serveCmd.Flags().StringVarP(&cfgFile, "config", "c", "", "TOML config file")

	rootCmd.PersistentFlags().Uint32Var(&logLevel, "log-level", 4, "log level (0:panic, 3:error, 4:info, 5:debug)")
	rootCmd.PersistentFlags().BoolVar(&logJSON, "log-json", false, "log in JSON format")

	rootCmd.AddCommand(searchCmd, serveCmd)

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func runSearch(cmd *cobra.Command, args []string) {
	log.SetLogger(logLevel, logJSON, true)

	criteria := vanity.NormalizeCriteria(prefix, suffix)
	if criteria.Empty() {
		log.Warn("no prefix or suffix given, the first generated address will match")
	}
	if chars := vanity.ImpossibleChars(criteria.Prefix + criteria.Suffix); len(chars) > 0 {
		log.Warn("criteria contain characters that never occur in base58 addresses, the search cannot succeed",
			"chars", string(chars))
	}

	searcher := vanity.NewSearcher(workers)
	token := vanity.NewToken()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
	defer signal.Stop(sigChan)
	go func() {
		if _, ok := <-sigChan; ok {
			log.Warn("interrupt received, stopping search")
			token.Stop()
		}
	}()

	progressDone := make(chan struct{})
	go logProgress(searcher, time.Duration(logInterval)*time.Second, progressDone)

	log.Info("search started", "prefix", criteria.Prefix, "suffix", criteria.Suffix,
		"maxTries", maxTries, "workers", searcher.Workers())

	outcome, err := searcher.Generate(context.Background(), token, prefix, suffix, maxTries)
	close(progressDone)
	if err != nil {
		log.Fatal("search failed", "err", err)
	}

	switch outcome.Kind {
	case vanity.Found:
		printFound(outcome)
		if outputFile != "" {
			if err := appendResult(outputFile, outcome); err != nil {
				log.Error("write result file failed", "file", outputFile, "err", err)
			}
		}
		if dbPath != "" {
			persistResult(dbPath, criteria, outcome)
		}
	case vanity.Stopped:
		log.Info("search stopped", "tries", outcome.Tries, "elapsed", outcome.Elapsed)
	case vanity.Exhausted:
		log.Warn("no matching address found within budget", "tries", outcome.Tries,
			"elapsed", outcome.Elapsed)
	case vanity.Rejected:
		log.Fatal("criteria rejected", "reason", outcome.Reason)
	}
}

func logProgress(searcher *vanity.Searcher, interval time.Duration, done <-chan struct{}) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for {
		select {
		case <-ticker.C:
			stats := searcher.Stats()
			log.Info("progress", "attempts", stats.Attempts,
				"keysPerSec", fmt.Sprintf("%.0f", stats.KeysPerSec),
				"elapsedSecs", fmt.Sprintf("%.1f", stats.ElapsedSecs))
		case <-done:
			return
		}
	}
}

func printFound(outcome vanity.Outcome) {
	green := color.New(color.FgGreen, color.Bold)
	fmt.Println()
	green.Println("Match found!")
	fmt.Printf("  Address:     %s\n", color.CyanString(outcome.Address))
	fmt.Printf("  Private key: %s\n", outcome.PrivateKey)
	fmt.Printf("  WIF:         %s\n", outcome.WIF)
	fmt.Printf("  Mode:        %s\n", outcome.Encoding)
	fmt.Printf("  Tries:       %d\n", outcome.Tries)
	fmt.Printf("  Elapsed:     %v\n", outcome.Elapsed.Round(time.Millisecond))
	fmt.Println()
}

func appendResult(path string, outcome vanity.Outcome) error {
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o600)
	if err != nil {
		return err
	}
	defer f.Close()

	_, err = fmt.Fprintf(f, "%s\naddress: %s\nprivate key: %s\nwif: %s\nmode: %s\ntries: %d\n\n",
		time.Now().Format(time.RFC3339), outcome.Address, outcome.PrivateKey,
		outcome.WIF, outcome.Encoding, outcome.Tries)
	return err
}

func persistResult(path string, criteria vanity.Criteria, outcome vanity.Outcome) {
	db, err := store.Open(path)
	if err != nil {
		log.Error("open record store failed", "path", path, "err", err)
		return
	}
	defer db.Close()

	rec := &store.Record{
		Address:    outcome.Address,
		PrivateKey: outcome.PrivateKey,
		WIF:        outcome.WIF,
		Prefix:     criteria.Prefix,
		Suffix:     criteria.Suffix,
		Mode:       outcome.Encoding.String(),
	}
	if err := db.Put(rec); err != nil {
		log.Error("persist record failed", "address", outcome.Address, "err", err)
	}
}

func runServe(cmd *cobra.Command, args []string) {
	cfg, err := config.Load(cfgFile)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	log.SetLogger(cfg.Log.Level, cfg.Log.JSONFormat, cfg.Log.Color)

	db, err := store.Open(cfg.Storage.DBPath)
	if err != nil {
		log.Fatal("open record store failed", "path", cfg.Storage.DBPath, "err", err)
	}
	defer db.Close()

	if err := server.New(cfg, db).ListenAndServe(); err != nil {
		log.Fatal("api server exited", "err", err)
	}
}
