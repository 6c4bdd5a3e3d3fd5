package export_test

import (
	"bytes"
	"encoding/csv"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"devonxona/internal/domain"
	"devonxona/internal/export"
)

func sampleCorrespondence() domain.Correspondence {
	deadline := time.Date(2026, 9, 15, 0, 0, 0, 0, time.UTC)
	return domain.Correspondence{
		ID:          uuid.New(),
		Type:        domain.TypeKiruvchi,
		Title:       "Kredit portfeli hisoboti",
		Source:      "Markaziy Bank",
		Kartoteka:   domain.KartotekaMarkaziyBank,
		Stage:       domain.StageExecution,
		Status:      domain.StatusIjroda,
		Department:  "Kreditlash boshqarmasi",
		ReviewRound: 0,
		Deadline:    &deadline,
		CreatedAt:   time.Date(2026, 8, 30, 10, 0, 0, 0, time.UTC),
		UpdatedAt:   time.Date(2026, 8, 30, 11, 30, 0, 0, time.UTC),
	}
}

func TestWriter_HeaderAndRows(t *testing.T) {
	var buf bytes.Buffer
	w := export.NewWriter(&buf)

	require.NoError(t, w.WriteHeader())
	item := sampleCorrespondence()
	require.NoError(t, w.WriteCorrespondences([]domain.Correspondence{item}))
	w.Flush()
	require.NoError(t, w.Error())

	records, err := csv.NewReader(&buf).ReadAll()
	require.NoError(t, err)
	require.Len(t, records, 2)

	header := records[0]
	assert.Equal(t, "ID", header[0])
	assert.Equal(t, "Turi", header[1])
	assert.Equal(t, "Kartoteka", header[4])
	assert.Equal(t, "Yangilangan", header[11])

	row := records[1]
	assert.Equal(t, item.ID.String(), row[0])
	assert.Equal(t, "Kiruvchi", row[1])
	assert.Equal(t, "Kredit portfeli hisoboti", row[2])
	assert.Equal(t, "Markaziy Bank", row[3])
	assert.Equal(t, "Ijro", row[5])
	assert.Equal(t, "Kreditlash boshqarmasi", row[7])
	assert.Equal(t, "0", row[8])
	assert.Equal(t, "2026-09-15", row[9])
	assert.Equal(t, "2026-08-30T10:00:00Z", row[10])
}

func TestWriter_NilDeadlineEmptyCell(t *testing.T) {
	var buf bytes.Buffer
	w := export.NewWriter(&buf)

	item := sampleCorrespondence()
	item.Deadline = nil
	require.NoError(t, w.WriteCorrespondences([]domain.Correspondence{item}))
	w.Flush()

	records, err := csv.NewReader(&buf).ReadAll()
	require.NoError(t, err)
	require.Len(t, records, 1)
	assert.Equal(t, "", records[0][9])
}

func TestBuildFilename(t *testing.T) {
	name := export.BuildFilename("csv")
	assert.True(t, strings.HasPrefix(name, "reyestr_"))
	assert.True(t, strings.HasSuffix(name, ".csv"))
	assert.Contains(t, name, time.Now().Format("2006-01-02"))
}
