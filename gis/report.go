package gis

import (
	"encoding/csv"
	"fmt"
	"io"
	"log"
	"os"
	"path/filepath"
	"regexp"
	"sort"
	"strconv"
	"strings"
	"sync"

	"golang.org/x/sync/errgroup"
	"golang.org/x/text/encoding/unicode"
	"golang.org/x/text/transform"
)

var reportName = regexp.MustCompile(`Report([1-9][0-9]*)\.csv$`)

// Report is the output of the simulation of one patch, with one row per simulated day.
type Report struct {
	Header []string
	Rows   [][]string
	index  map[string]int
}

// ReadReport reads a CSV report. A UTF-8 byte order mark is skipped and all cells are trimmed of spaces.
func ReadReport(r io.Reader) (*Report, error) {
	cr := csv.NewReader(transform.NewReader(r, unicode.BOMOverride(unicode.UTF8.NewDecoder())))
	cr.FieldsPerRecord = -1
	records, err := cr.ReadAll()
	if err != nil {
		return nil, err
	} else if len(records) == 0 {
		return nil, fmt.Errorf("missing header")
	}

	report := &Report{
		Header: records[0],
		Rows:   records[1:],
		index:  map[string]int{},
	}
	for i, name := range report.Header {
		name = strings.TrimSpace(name)
		report.Header[i] = name
		if _, ok := report.index[name]; !ok {
			report.index[name] = i
		}
	}
	for _, row := range report.Rows {
		for i := range row {
			row[i] = strings.TrimSpace(row[i])
		}
	}
	return report, nil
}

// Column returns the cells of a column, or false if the report has no such column. Short rows give empty cells.
func (r *Report) Column(name string) ([]string, bool) {
	i, ok := r.index[name]
	if !ok {
		return nil, false
	}
	column := make([]string, len(r.Rows))
	for j, row := range r.Rows {
		if i < len(row) {
			column[j] = row[i]
		}
	}
	return column, true
}

// FindReports returns the report files in dir by patch number. Other files are logged and ignored.
func FindReports(dir string, logger *log.Logger) (map[int]string, error) {
	if logger == nil {
		logger = log.Default()
	}
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, err
	}

	files := map[int]string{}
	for _, entry := range entries {
		match := reportName.FindStringSubmatch(entry.Name())
		if entry.IsDir() || match == nil {
			logger.Printf("ignoring %s in report directory", entry.Name())
			continue
		}
		patch, err := strconv.Atoi(match[1])
		if err != nil {
			logger.Printf("ignoring %s in report directory: %v", entry.Name(), err)
			continue
		}
		files[patch] = filepath.Join(dir, entry.Name())
	}
	return files, nil
}

// LoadReports finds and reads the reports in dir in parallel.
func LoadReports(dir string, logger *log.Logger) (map[int]*Report, error) {
	files, err := FindReports(dir, logger)
	if err != nil {
		return nil, err
	}

	patches := make([]int, 0, len(files))
	for patch := range files {
		patches = append(patches, patch)
	}
	sort.Ints(patches)

	var mu sync.Mutex
	reports := make(map[int]*Report, len(files))
	g := errgroup.Group{}
	g.SetLimit(8)
	for _, patch := range patches {
		filename := files[patch]
		g.Go(func() error {
			f, err := os.Open(filename)
			if err != nil {
				return err
			}
			defer f.Close()

			report, err := ReadReport(f)
			if err != nil {
				return fmt.Errorf("%s: %w", filename, err)
			}
			mu.Lock()
			reports[patch] = report
			mu.Unlock()
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return reports, nil
}
