// Command importer batch-imports every .tcx file found in a directory.
// Already-imported files are reported as skipped; other failures do not stop
// the run.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/runningmate/runningmate-backend-go/internal/config"
	"github.com/runningmate/runningmate-backend-go/internal/database"
	"github.com/runningmate/runningmate-backend-go/internal/repository"
	"github.com/runningmate/runningmate-backend-go/internal/service"
	"github.com/runningmate/runningmate-backend-go/internal/weather"
)

type result struct {
	file string
	err  error
}

func main() {
	dir := flag.String("dir", ".", "directory containing .tcx files")
	workers := flag.Int("workers", 4, "concurrent import workers")
	noWeather := flag.Bool("no-weather", false, "skip weather enrichment")
	flag.Parse()

	cfg := config.Load()

	db, err := database.Open(database.Config{Path: cfg.DBPath})
	if err != nil {
		log.Fatal("Failed to initialize database:", err)
	}
	defer db.Close()

	activityRepo := repository.NewActivityRepository(db)
	segmentRepo := repository.NewSegmentRepository(db)
	perfRepo := repository.NewBestPerformanceRepository(db)
	weatherRepo := repository.NewWeatherRepository(db)

	var weatherAPI service.WeatherLookup
	if !*noWeather && !cfg.DisableWeather {
		weatherAPI = weather.NewClient(&http.Client{Timeout: 15 * time.Second})
	}

	bestPerf := service.NewBestPerformanceService(perfRepo, activityRepo, segmentRepo, cfg.Tuning)
	importer := service.NewImportService(activityRepo, bestPerf, weatherRepo, weatherAPI, cfg.Tuning)

	files, err := tcxFiles(*dir)
	if err != nil {
		log.Fatal(err)
	}
	if len(files) == 0 {
		fmt.Println("No TCX files found for processing.")
		return
	}

	if *workers < 1 {
		*workers = 1
	}

	jobs := make(chan string)
	results := make(chan result, len(files))

	var wg sync.WaitGroup
	for i := 0; i < *workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for file := range jobs {
				results <- result{file: file, err: importFile(importer, file)}
			}
		}()
	}

	go func() {
		for _, file := range files {
			jobs <- file
		}
		close(jobs)
		wg.Wait()
		close(results)
	}()

	var imported, skipped, failed int
	for res := range results {
		name := filepath.Base(res.file)
		switch {
		case res.err == nil:
			imported++
			fmt.Printf("imported  %s\n", name)
		case errors.Is(res.err, service.ErrDuplicateImport):
			skipped++
			fmt.Printf("skipped   %s (already imported)\n", name)
		default:
			failed++
			fmt.Printf("failed    %s: %v\n", name, res.err)
		}
	}

	fmt.Printf("\n%d imported, %d skipped, %d failed\n", imported, skipped, failed)
	if failed > 0 {
		os.Exit(1)
	}
}

func importFile(importer *service.ImportService, path string) error {
	f, err := os.Open(path)
	if err != nil {
		return err
	}
	defer f.Close()

	_, err = importer.Import(context.Background(), f, filepath.Base(path))
	return err
}

func tcxFiles(dir string) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("failed to read directory %s: %w", dir, err)
	}

	var files []string
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		if strings.EqualFold(filepath.Ext(entry.Name()), ".tcx") {
			files = append(files, filepath.Join(dir, entry.Name()))
		}
	}
	return files, nil
}
