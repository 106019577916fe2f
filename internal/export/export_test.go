package export

import (
	"bytes"
	"encoding/csv"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"github.com/MrSnakeDoc/healthvibe/internal/catalog"
)

func TestParseFormat(t *testing.T) {
	tests := []struct {
		in      string
		want    Format
		wantErr bool
	}{
		{"", FormatCSV, false},
		{"CSV", FormatCSV, false},
		{" xlsx ", FormatXLSX, false},
		{"pdf", "", true},
	}
	for _, tt := range tests {
		got, err := ParseFormat(tt.in)
		if tt.wantErr {
			assert.Error(t, err, tt.in)
			continue
		}
		require.NoError(t, err, tt.in)
		assert.Equal(t, tt.want, got)
	}
	assert.Equal(t, "remedies.xlsx", FormatXLSX.Filename())
}

func TestWriteCSV(t *testing.T) {
	c, err := catalog.Builtin()
	require.NoError(t, err)

	var buf bytes.Buffer
	require.NoError(t, Write(&buf, FormatCSV, c.Remedies()))

	records, err := csv.NewReader(&buf).ReadAll()
	require.NoError(t, err)
	require.Len(t, records, c.Len()+1)
	assert.Equal(t, header, records[0])

	first := c.Remedies()[0]
	assert.Equal(t, first.ID, records[1][0])
	assert.Equal(t, first.Name, records[1][1])
}

func TestWriteXLSX(t *testing.T) {
	c, err := catalog.Builtin()
	require.NoError(t, err)

	var buf bytes.Buffer
	require.NoError(t, Write(&buf, FormatXLSX, c.Remedies()))

	f, err := excelize.OpenReader(&buf)
	require.NoError(t, err)
	defer func() { _ = f.Close() }()

	rows, err := f.GetRows(sheet)
	require.NoError(t, err)
	require.Len(t, rows, c.Len()+1)
	assert.Equal(t, "Effectiveness", rows[0][4])
	assert.Equal(t, c.Remedies()[0].ID, rows[1][0])
}
