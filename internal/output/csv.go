package output

import (
	"encoding/csv"
	"os"
	"strconv"
	"strings"
	"time"
)

// CSVLogWriter writes commit timelines as CSV.
type CSVLogWriter struct{}

// Write outputs the commit timeline as CSV.
func (w *CSVLogWriter) Write(report *LogReport, options OutputOptions) error {
	writer, file, err := createCSVWriter(options.OutputPath)
	if err != nil {
		return err
	}
	if file != nil {
		defer file.Close()
	}

	if err := writer.Write([]string{"SHA", "When", "Author", "Email", "Parents", "Message"}); err != nil {
		return err
	}
	for _, c := range limitTop(report.Commits, options.Top) {
		row := []string{
			c.OID,
			commitDate(c),
			c.Author.Name,
			c.Author.Email,
			strings.Join(c.Parents, " "),
			c.Message,
		}
		if err := writer.Write(row); err != nil {
			return err
		}
	}

	writer.Flush()
	return writer.Error()
}

// CSVCommitWriter writes a single commit's changes as CSV.
type CSVCommitWriter struct{}

// Write outputs one row per file change.
func (w *CSVCommitWriter) Write(report *CommitReport, options OutputOptions) error {
	writer, file, err := createCSVWriter(options.OutputPath)
	if err != nil {
		return err
	}
	if file != nil {
		defer file.Close()
	}

	if err := writer.Write([]string{"Commit", "Path", "Type", "OID", "OldOID"}); err != nil {
		return err
	}
	for _, change := range limitTop(report.Changes, options.Top) {
		row := []string{report.Commit.OID, change.Path, change.Kind.String(), change.OID, change.OldOID}
		if err := writer.Write(row); err != nil {
			return err
		}
	}

	writer.Flush()
	return writer.Error()
}

// CSVDecisionWriter writes decision reports as CSV.
type CSVDecisionWriter struct{}

// Write outputs the decision report as CSV.
func (w *CSVDecisionWriter) Write(report *DecisionReport, options OutputOptions) error {
	writer, file, err := createCSVWriter(options.OutputPath)
	if err != nil {
		return err
	}
	if file != nil {
		defer file.Close()
	}

	if err := writer.Write([]string{"SHA", "When", "Author", "Category", "Importance", "Level", "Message"}); err != nil {
		return err
	}
	for _, d := range limitTop(report.Decisions, options.Top) {
		row := []string{
			d.OID,
			commitDate(d.Commit),
			d.Author.Name,
			string(d.Category),
			strconv.Itoa(d.Importance),
			importanceLevel(d.Importance),
			d.Message,
		}
		if err := writer.Write(row); err != nil {
			return err
		}
	}

	writer.Flush()
	return writer.Error()
}

// CSVEvolutionWriter writes evolution reports as CSV.
// Only the hotspot table is emitted; the other sections do not share its shape.
type CSVEvolutionWriter struct{}

// Write outputs the hotspot table as CSV.
func (w *CSVEvolutionWriter) Write(report *EvolutionReport, options OutputOptions) error {
	writer, file, err := createCSVWriter(options.OutputPath)
	if err != nil {
		return err
	}
	if file != nil {
		defer file.Close()
	}

	if err := writer.Write([]string{"Path", "Modifications", "Additions", "Deletions", "Commits", "LastChanged"}); err != nil {
		return err
	}
	for _, s := range limitTop(report.Hotspots, options.Top) {
		lastChanged := ""
		if len(s.Commits) > 0 {
			lastChanged = time.UnixMilli(s.Commits[0].Timestamp).Format(reportDateTimeLayout)
		}
		row := []string{
			s.Path,
			strconv.Itoa(s.Modifications),
			strconv.Itoa(s.Additions),
			strconv.Itoa(s.Deletions),
			strconv.Itoa(len(s.Commits)),
			lastChanged,
		}
		if err := writer.Write(row); err != nil {
			return err
		}
	}

	writer.Flush()
	return writer.Error()
}

func createCSVWriter(outputPath string) (*csv.Writer, *os.File, error) {
	if outputPath != "" {
		file, err := os.Create(outputPath)
		if err != nil {
			return nil, nil, err
		}
		return csv.NewWriter(file), file, nil
	}
	return csv.NewWriter(os.Stdout), nil, nil
}
