package storage

import (
	"bufio"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"mcra/internal/domain"
	reporterrors "mcra/internal/errors"
)

// CSVHeader is the first line of every report
const CSVHeader = "date,test file,suite,platform,version,status,preview features,errmsg"

// CSVWriter writes the flattened report, one row per test outcome.
type CSVWriter struct {
	path string
	info RunInfo
	file *os.File
	w    *bufio.Writer
	rows int
}

// NewCSVWriter creates (or truncates) path and writes the header.
func NewCSVWriter(path string, info RunInfo) (*CSVWriter, error) {
	if dir := filepath.Dir(path); dir != "" {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return nil, reporterrors.Output(path, err)
		}
	}
	f, err := os.Create(path)
	if err != nil {
		return nil, reporterrors.Output(path, err)
	}

	cw := &CSVWriter{path: path, info: info, file: f, w: bufio.NewWriter(f)}
	if _, err := cw.w.WriteString(CSVHeader + "\n"); err != nil {
		f.Close()
		return nil, reporterrors.Output(path, err)
	}
	return cw, nil
}

// WriteSuite appends one row per outcome and flushes, so a later failure
// leaves every completed suite on disk.
func (cw *CSVWriter) WriteSuite(suite string, outcomes []domain.TestOutcome) error {
	for i := range outcomes {
		if _, err := cw.w.WriteString(FormatRow(cw.info, &outcomes[i]) + "\n"); err != nil {
			return reporterrors.Output(cw.path, err)
		}
		cw.rows++
	}
	if err := cw.w.Flush(); err != nil {
		return reporterrors.Output(cw.path, err)
	}
	return nil
}

// Rows returns the number of data rows written so far.
func (cw *CSVWriter) Rows() int {
	return cw.rows
}

// Close flushes and closes the file.
func (cw *CSVWriter) Close() error {
	flushErr := cw.w.Flush()
	closeErr := cw.file.Close()
	if flushErr != nil {
		return reporterrors.Output(cw.path, flushErr)
	}
	if closeErr != nil {
		return reporterrors.Output(cw.path, closeErr)
	}
	return nil
}

// FormatRow renders a data row without the line terminator. The errmsg cell
// is always quoted; the other cells only when they need it.
func FormatRow(info RunInfo, o *domain.TestOutcome) string {
	cells := []string{
		cell(info.Date),
		cell(o.TestFile),
		cell(o.Suite),
		cell(o.Platform),
		cell(o.Version),
		cell(o.Status),
		cell(info.PreviewFeatures),
		QuoteErrMsg(o.ErrMsg),
	}
	return strings.Join(cells, ",")
}

// QuoteErrMsg renders the errmsg cell: every double quote doubled, the whole
// value wrapped in one pair of double quotes.
func QuoteErrMsg(e domain.ErrMsg) string {
	return fmt.Sprintf(`"%s"`, strings.ReplaceAll(e.Text(), `"`, `""`))
}

func cell(s string) string {
	if strings.ContainsAny(s, ",\"\r\n") {
		return fmt.Sprintf(`"%s"`, strings.ReplaceAll(s, `"`, `""`))
	}
	return s
}
