// Package export writes scan results to timestamped CSV and JSON files.
package export

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/wizelements/saas-opportunity-bot/internal/model"
)

const listSeparator = ", "

var csvHeader = []string{
	"priority_score", "source", "title", "text", "url",
	"score", "pain_signals", "industries", "type",
}

// Save writes opportunities_<YYYYMMDD_HHMMSS>.csv and .json under dir,
// creating dir if needed.
func Save(dir string, opps []model.Opportunity, now time.Time) (string, string, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", "", fmt.Errorf("creating output dir: %w", err)
	}

	base := filepath.Join(dir, "opportunities_"+now.Format("20060102_150405"))
	csvPath, jsonPath := base+".csv", base+".json"

	if err := writeCSV(csvPath, opps); err != nil {
		return "", "", err
	}
	if err := writeJSON(jsonPath, opps); err != nil {
		return "", "", err
	}
	return csvPath, jsonPath, nil
}

func writeCSV(path string, opps []model.Opportunity) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("creating csv: %w", err)
	}
	defer f.Close()

	// No header for an empty result.
	if len(opps) == 0 {
		return nil
	}

	w := csv.NewWriter(f)
	if err := w.Write(csvHeader); err != nil {
		return fmt.Errorf("writing csv header: %w", err)
	}
	for _, o := range opps {
		row := []string{
			strconv.Itoa(o.Priority()),
			o.Source,
			o.Title,
			o.Text,
			o.URL,
			strconv.Itoa(o.Score),
			strings.Join(o.PainSignals, listSeparator),
			strings.Join(o.Industries, listSeparator),
			o.Type,
		}
		if err := w.Write(row); err != nil {
			return fmt.Errorf("writing csv row: %w", err)
		}
	}

	w.Flush()
	return w.Error()
}

func writeJSON(path string, opps []model.Opportunity) error {
	if opps == nil {
		opps = []model.Opportunity{}
	}

	data, err := json.MarshalIndent(opps, "", "  ")
	if err != nil {
		return fmt.Errorf("encoding json: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("writing json: %w", err)
	}
	return nil
}

func LoadJSON(path string) ([]model.Opportunity, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var opps []model.Opportunity
	if err := json.Unmarshal(data, &opps); err != nil {
		return nil, fmt.Errorf("decoding %s: %w", path, err)
	}
	return opps, nil
}

// LoadCSV reads a file written by Save. Fields not stored in the CSV
// (subreddit, num_comments) come back empty.
func LoadCSV(path string) ([]model.Opportunity, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	records, err := csv.NewReader(f).ReadAll()
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", path, err)
	}
	if len(records) < 2 {
		return nil, nil
	}

	opps := make([]model.Opportunity, 0, len(records)-1)
	for _, r := range records[1:] {
		priority, err := strconv.Atoi(r[0])
		if err != nil {
			return nil, fmt.Errorf("parsing priority_score %q: %w", r[0], err)
		}
		score, err := strconv.Atoi(r[5])
		if err != nil {
			return nil, fmt.Errorf("parsing score %q: %w", r[5], err)
		}

		opps = append(opps, model.Opportunity{
			PriorityScore: model.IntPtr(priority),
			Source:        r[1],
			Title:         r[2],
			Text:          r[3],
			URL:           r[4],
			Score:         score,
			PainSignals:   splitList(r[6]),
			Industries:    splitList(r[7]),
			Type:          r[8],
		})
	}
	return opps, nil
}

func splitList(s string) []string {
	if s == "" {
		return nil
	}
	return strings.Split(s, listSeparator)
}
