package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"path/filepath"

	"github.com/sirupsen/logrus"

	"github.com/cropsight/cropsight"
	"github.com/cropsight/cropsight/internal/config"
	"github.com/cropsight/cropsight/internal/utils"
	"github.com/cropsight/cropsight/pkg/types"
)

// initLogger configures logrus with full timestamps for terminal use
func initLogger() *logrus.Logger {
	log := logrus.StandardLogger()
	log.SetFormatter(&logrus.TextFormatter{
		FullTimestamp: true,
	})
	return log
}

func main() {
	var in, configPath, manifest, historyPath, lang string
	var legacy, showHistory bool

	flag.StringVar(&in, "in", "", "input leaf image (jpg/png/webp/bmp)")
	flag.StringVar(&configPath, "config", "", "config file path (JSON)")
	flag.StringVar(&manifest, "manifest", "", "model manifest path (overrides config)")
	flag.StringVar(&historyPath, "history", "", "history file path (overrides config)")
	flag.StringVar(&lang, "lang", "en", "advice language: en|hi")
	flag.BoolVar(&legacy, "legacy", false, "reproduce the original randomized result selection")
	flag.BoolVar(&showHistory, "show-history", false, "print past analyses after the result")
	flag.Parse()

	log := initLogger()

	if in == "" {
		log.Fatalf("usage: %s -in leaf.jpg [-manifest model.json] [-lang en|hi] [-legacy]", filepath.Base(os.Args[0]))
	}

	language := types.Language(lang)
	if language != types.LangEnglish && language != types.LangHindi {
		log.Fatalf("unsupported language %q (use en or hi)", lang)
	}

	cfg := config.Default()
	if configPath != "" {
		loaded, err := config.LoadFromFile(configPath)
		if err != nil {
			log.Fatalf("Failed to load config: %v", err)
		}
		cfg = loaded
	}
	if manifest != "" {
		cfg.Model.ManifestPath = manifest
	}
	if historyPath != "" {
		cfg.History.Path = historyPath
	}
	if legacy {
		cfg.Model.LegacyRandomResults = true
	}

	if !utils.IsImageFile(in) {
		log.Warnf("%s does not look like a supported image file, trying anyway", in)
	}

	data, err := os.ReadFile(in)
	if err != nil {
		log.Fatalf("Failed to read input: %v", err)
	}
	log.Infof("Analyzing %s (%s)", in, utils.FormatFileSize(int64(len(data))))

	analyzer, err := cropsight.NewWithConfig(cfg)
	if err != nil {
		log.Fatalf("Failed to initialize analyzer: %v", err)
	}
	defer analyzer.Close()

	result, err := analyzer.Analyze(context.Background(), data)
	if err != nil {
		log.Fatalf("Analysis failed: %v", err)
	}

	advice := analyzer.Advice(result.Label)
	fmt.Printf("\nDiagnosis:  %s (%.1f%% confidence)\n", result.Label, result.Confidence*100)
	fmt.Printf("Severity:   %s\n", advice.Severity)
	fmt.Printf("Treatment:  %s\n", advice.Treatment[language])
	fmt.Printf("Prevention: %s\n", advice.Prevention[language])

	if showHistory {
		fmt.Println("\nRecent analyses:")
		for _, entry := range analyzer.History() {
			fmt.Printf("  %s  %-20s %.1f%%\n",
				entry.Timestamp.Local().Format("2006-01-02 15:04:05"),
				entry.Label, entry.Confidence*100)
		}
	}
}
