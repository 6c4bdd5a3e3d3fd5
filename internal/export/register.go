package export

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"
	"time"

	"devonxona/internal/domain"
	"devonxona/internal/workflow"
)

// UTF-8 BOM bytes for Excel compatibility on Windows.
var BOM = []byte{0xEF, 0xBB, 0xBF}

// columns defines the register header row.
var columns = []string{
	"ID",
	"Turi",
	"Sarlavha",
	"Manba",
	"Kartoteka",
	"Bosqich",
	"Holati",
	"Tarmoq",
	"Kelishuv bosqichi",
	"Muddat",
	"Yaratilgan",
	"Yangilangan",
}

// Writer wraps csv.Writer for exporting the correspondence register as CSV.
type Writer struct {
	csv *csv.Writer
}

// NewWriter creates a Writer that writes CSV to w.
func NewWriter(w io.Writer) *Writer {
	return &Writer{csv: csv.NewWriter(w)}
}

// WriteHeader writes the register header row.
func (w *Writer) WriteHeader() error {
	return w.csv.Write(columns)
}

// WriteCorrespondences converts a batch of correspondences to CSV rows and
// writes them.
func (w *Writer) WriteCorrespondences(items []domain.Correspondence) error {
	for i := range items {
		if err := w.csv.Write(correspondenceToRow(&items[i])); err != nil {
			return err
		}
	}
	return nil
}

// Flush flushes the underlying csv.Writer buffer.
func (w *Writer) Flush() {
	w.csv.Flush()
}

// Error returns any error from the underlying csv.Writer.
func (w *Writer) Error() error {
	return w.csv.Error()
}

func correspondenceToRow(c *domain.Correspondence) []string {
	row := make([]string, len(columns))
	row[0] = c.ID.String()
	row[1] = string(c.Type)
	row[2] = c.Title
	row[3] = c.Source
	row[4] = string(c.Kartoteka)
	row[5] = workflow.StageLabel(c.Stage)
	row[6] = string(c.Status)
	row[7] = c.Department
	row[8] = strconv.Itoa(c.ReviewRound)
	row[9] = formatTime(c.Deadline)
	row[10] = c.CreatedAt.Format(time.RFC3339)
	row[11] = c.UpdatedAt.Format(time.RFC3339)
	return row
}

func formatTime(t *time.Time) string {
	if t == nil {
		return ""
	}
	return t.Format("2006-01-02")
}

// BuildFilename returns a dated filename for the Content-Disposition header.
// Format: reyestr_{YYYY-MM-DD}.{ext}
func BuildFilename(ext string) string {
	return fmt.Sprintf("reyestr_%s.%s", time.Now().Format("2006-01-02"), ext)
}
