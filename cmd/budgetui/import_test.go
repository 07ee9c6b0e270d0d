package main

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Veraticus/budgetui/internal/config"
	"github.com/Veraticus/budgetui/internal/fieldparse"
	"github.com/Veraticus/budgetui/internal/model"
)

func TestMappingFromFlags(t *testing.T) {
	cfg := &config.Config{Import: config.ImportConfig{DateFormat: string(fieldparse.DateISO)}}

	tests := []struct {
		flags   map[string]string
		want    *model.ColumnMapping
		name    string
		wantErr bool
	}{
		{
			name: "no flags keeps detection",
		},
		{
			name:  "amount column only",
			flags: map[string]string{"amount-col": "5"},
			want:  ptr(model.SingleAmountMapping(0, 1, 5, fieldparse.DateISO)),
		},
		{
			name:  "split columns",
			flags: map[string]string{"date-col": "1", "desc-col": "2", "debit-col": "3", "credit-col": "4", "date-format": "mm/dd/yy"},
			want:  ptr(model.SplitAmountMapping(1, 2, 3, 4, fieldparse.DateMDYShort)),
		},
		{
			name:  "header and original description",
			flags: map[string]string{"desc-col": "3", "original-col": "4", "header": "true", "keep-sign": "true"},
			want: func() *model.ColumnMapping {
				m := model.SingleAmountMapping(0, 3, 2, fieldparse.DateISO)
				m.OriginalDescription = 4
				m.HasHeader = true
				m.KeepSign = true
				return &m
			}(),
		},
		{
			name:    "debit without credit",
			flags:   map[string]string{"debit-col": "3"},
			wantErr: true,
		},
		{
			name:    "amount with split columns",
			flags:   map[string]string{"amount-col": "2", "debit-col": "3", "credit-col": "4"},
			wantErr: true,
		},
		{
			name:    "bad date format",
			flags:   map[string]string{"amount-col": "2", "date-format": "YYYY/DD/MM"},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cmd := importCmd()
			for name, value := range tt.flags {
				require.NoError(t, cmd.Flags().Set(name, value))
			}

			got, err := mappingFromFlags(cmd, cfg)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestHeaderFromFlags(t *testing.T) {
	cmd := importCmd()
	assert.Nil(t, headerFromFlags(cmd))

	require.NoError(t, cmd.Flags().Set("header", "false"))
	assert.Equal(t, ptr(false), headerFromFlags(cmd))

	require.NoError(t, cmd.Flags().Set("header", "true"))
	assert.Equal(t, ptr(true), headerFromFlags(cmd))
}

func TestExpandFiles(t *testing.T) {
	dir := t.TempDir()
	for _, name := range []string{"b.csv", "a.csv", "notes.txt"} {
		require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte("x"), 0600))
	}
	require.NoError(t, os.Mkdir(filepath.Join(dir, "old.csv"), 0750))

	files, err := expandFiles([]string{
		filepath.Join(dir, "*.csv"),
		filepath.Join(dir, "a.csv"),
	})
	require.NoError(t, err)
	assert.Equal(t, []string{filepath.Join(dir, "a.csv"), filepath.Join(dir, "b.csv")}, files)

	_, err = expandFiles([]string{filepath.Join(dir, "*.ofx")})
	assert.Error(t, err)
}

func ptr[T any](v T) *T {
	return &v
}
