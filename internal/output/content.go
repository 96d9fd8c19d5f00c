package output

import (
	"fmt"
	"io"
	"strings"

	"github.com/alecthomas/chroma/v2/lexers"
	"github.com/alecthomas/chroma/v2/quick"
	"github.com/fatih/color"

	"github.com/masmgr/timemachine-go/internal/git"
)

// DefaultStyle is the chroma style used for highlighted file content.
const DefaultStyle = "monokai"

// ContentReport holds a file read at a specific revision.
type ContentReport struct {
	Repo    string
	Path    string
	OID     string
	Content string
	Found   bool
}

// DiffReport holds both sides of a file across a commit.
type DiffReport struct {
	Repo   string
	Path   string
	Commit string
	Change git.ChangeKind
	Diff   git.FileDiff
}

// JSONContentReport is the JSON output structure for file content.
type JSONContentReport struct {
	Repo    string `json:"repo"`
	Path    string `json:"path"`
	OID     string `json:"oid"`
	Found   bool   `json:"found"`
	Content string `json:"content"`
}

// JSONDiffReport is the JSON output structure for a file diff.
type JSONDiffReport struct {
	Repo       string `json:"repo"`
	Path       string `json:"path"`
	Commit     string `json:"commit"`
	Type       string `json:"type"`
	OldContent string `json:"oldContent"`
	NewContent string `json:"newContent"`
}

// WriteContent prints file content. JSON is structured; every other format prints
// the raw text, highlighted when writing to a color terminal.
func WriteContent(report *ContentReport, options OutputOptions) error {
	if options.Format == FormatJSON {
		return writeJSON(JSONContentReport{
			Repo:    report.Repo,
			Path:    report.Path,
			OID:     report.OID,
			Found:   report.Found,
			Content: report.Content,
		}, options.OutputPath)
	}

	if !report.Found {
		return fmt.Errorf("file %q not found at %s", report.Path, report.OID)
	}

	out, file, err := openOutputWriter(options.OutputPath)
	if err != nil {
		return err
	}
	if file != nil {
		defer file.Close()
	}
	return writeSource(out, report.Path, report.Content, highlightStyle(options))
}

// WriteDiff prints the old and new sides of a change.
func WriteDiff(report *DiffReport, options OutputOptions) error {
	if options.Format == FormatJSON {
		return writeJSON(JSONDiffReport{
			Repo:       report.Repo,
			Path:       report.Path,
			Commit:     report.Commit,
			Type:       report.Change.String(),
			OldContent: report.Diff.OldContent,
			NewContent: report.Diff.NewContent,
		}, options.OutputPath)
	}

	out, file, err := openOutputWriter(options.OutputPath)
	if err != nil {
		return err
	}
	if file != nil {
		defer file.Close()
	}

	style := highlightStyle(options)
	header := func(c *color.Color, label string) {
		if style != "" {
			c.Fprintln(out, label)
			return
		}
		fmt.Fprintln(out, label)
	}

	header(color.New(color.FgRed, color.Bold), fmt.Sprintf("--- a/%s (%s)", report.Path, report.Change))
	if report.Change != git.ChangeKindAdded {
		if err := writeSource(out, report.Path, report.Diff.OldContent, style); err != nil {
			return err
		}
	}
	header(color.New(color.FgGreen, color.Bold), fmt.Sprintf("+++ b/%s", report.Path))
	if report.Change != git.ChangeKindDeleted {
		if err := writeSource(out, report.Path, report.Diff.NewContent, style); err != nil {
			return err
		}
	}
	return nil
}

// highlightStyle returns the chroma style to use, or "" when output should stay plain.
func highlightStyle(options OutputOptions) string {
	if options.Format != FormatConsole || options.OutputPath != "" || color.NoColor || options.Style == "none" {
		return ""
	}
	if options.Style == "" {
		return DefaultStyle
	}
	return options.Style
}

// languageFor picks a chroma lexer name from the file name, or "" to let chroma guess.
func languageFor(path string) string {
	if lexer := lexers.Match(path); lexer != nil {
		return lexer.Config().Name
	}
	return ""
}

func writeSource(out io.Writer, path, source, style string) error {
	if source != "" && !strings.HasSuffix(source, "\n") {
		source += "\n"
	}
	if style == "" {
		_, err := io.WriteString(out, source)
		return err
	}
	return quick.Highlight(out, source, languageFor(path), "terminal256", style)
}
