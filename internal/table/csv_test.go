package table

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseDelimited(t *testing.T) {
	tests := []struct {
		name       string
		input      string
		wantRows   [][]string
		wantHeader bool
	}{
		{
			name:       "comma with quoted comma",
			input:      "Date,Description,Amount\n01/02/2024,\"ACME, INC\",-12.00\n",
			wantHeader: true,
			wantRows: [][]string{
				{"Date", "Description", "Amount"},
				{"01/02/2024", "ACME, INC", "-12.00"},
			},
		},
		{
			name:       "tab separated",
			input:      "Date\tDescription\tAmount\n2024-01-02\tRent\t-900.00\n",
			wantHeader: true,
			wantRows: [][]string{
				{"Date", "Description", "Amount"},
				{"2024-01-02", "Rent", "-900.00"},
			},
		},
		{
			name:       "semicolon separated with trimming",
			input:      "Date ; Description ; Amount\n01/02/2024 ; Rent ; -900,00\n",
			wantHeader: true,
			wantRows: [][]string{
				{"Date", "Description", "Amount"},
				{"01/02/2024", "Rent", "-900,00"},
			},
		},
		{
			name:       "headerless with blank lines",
			input:      "\"01/15/2024\",\"-45.00\",\"*\",\"\",\"PURCHASE COFFEE\"\n\n\"01/16/2024\",\"1000.00\",\"*\",\"\",\"PAYROLL\"\n",
			wantHeader: false,
			wantRows: [][]string{
				{"01/15/2024", "-45.00", "*", "", "PURCHASE COFFEE"},
				{"01/16/2024", "1000.00", "*", "", "PAYROLL"},
			},
		},
		{
			name:       "byte order mark",
			input:      "\xEF\xBB\xBFDate,Description,Amount\n01/02/2024,Tea,-2.00\n",
			wantHeader: true,
			wantRows: [][]string{
				{"Date", "Description", "Amount"},
				{"01/02/2024", "Tea", "-2.00"},
			},
		},
		{
			name:       "windows-1252 bytes",
			input:      "Date,Description,Amount\n01/02/2024,Caf\xe9 Noir,-5.00\n",
			wantHeader: true,
			wantRows: [][]string{
				{"Date", "Description", "Amount"},
				{"01/02/2024", "Café Noir", "-5.00"},
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseDelimited([]byte(tt.input))
			require.NoError(t, err)
			assert.Equal(t, tt.wantHeader, got.HasHeader)
			assert.Equal(t, tt.wantRows, got.Rows)
		})
	}
}

func TestParseDelimited_Empty(t *testing.T) {
	_, err := ParseDelimited([]byte("\n\n ,, \n"))
	assert.True(t, errors.Is(err, ErrEmpty))
}

func TestReadFile(t *testing.T) {
	dir := t.TempDir()

	path := filepath.Join(dir, "export.csv")
	require.NoError(t, os.WriteFile(path, []byte("Date,Description,Amount\n01/02/2024,Tea,-2.00\n"), 0600))

	got, err := ReadFile(path)
	require.NoError(t, err)
	assert.Len(t, got.DataRows(), 1)

	_, err = ReadFile(filepath.Join(dir, "missing.csv"))
	assert.Error(t, err)

	xlsx := filepath.Join(dir, "export.xlsx")
	require.NoError(t, os.WriteFile(xlsx, []byte("PK"), 0600))
	_, err = ReadFile(xlsx)
	assert.True(t, errors.Is(err, ErrUnsupported))
}

func TestDetectDelimiter(t *testing.T) {
	assert.Equal(t, ',', detectDelimiter(`"a;b",c,d`))
	assert.Equal(t, ';', detectDelimiter(`a;b;c`))
	assert.Equal(t, '\t', detectDelimiter("a\tb,c\td"))
	assert.Equal(t, '|', detectDelimiter("a|b|c"))
	assert.Equal(t, ',', detectDelimiter("single"))
}
