package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Veraticus/budgetui/internal/common"
	"github.com/Veraticus/budgetui/internal/fieldparse"
)

func newViper(t *testing.T, yaml string) *viper.Viper {
	t.Helper()
	v := viper.New()
	SetDefaults(v)
	if yaml != "" {
		v.SetConfigType("yaml")
		require.NoError(t, v.ReadConfig(strings.NewReader(yaml)))
	}
	return v
}

func TestLoad_Defaults(t *testing.T) {
	home, err := os.UserHomeDir()
	require.NoError(t, err)

	cfg, err := Load(newViper(t, ""))
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(home, ".local", "share", "budgetui", "budgetui.db"), cfg.Database.Path)
	assert.Equal(t, fieldparse.DateMDY, cfg.DateFormat())
	assert.Equal(t, "info", cfg.Logging.Level)
	assert.Equal(t, "console", cfg.Logging.Format)
}

func TestLoad_File(t *testing.T) {
	t.Setenv("BUDGET_DIR", "/srv/budget")
	cfg, err := Load(newViper(t, `
database:
  path: $BUDGET_DIR/ledger.db
import:
  default_account: " Checking "
  date_format: yyyy-mm-dd
logging:
  level: debug
  format: json
`))
	require.NoError(t, err)
	assert.Equal(t, "/srv/budget/ledger.db", cfg.Database.Path)
	assert.Equal(t, "Checking", cfg.Import.DefaultAccount)
	assert.Equal(t, fieldparse.DateISO, cfg.DateFormat())
	assert.Equal(t, "json", cfg.Logging.Format)
}

func TestLoad_Invalid(t *testing.T) {
	tests := []struct {
		name string
		yaml string
	}{
		{name: "date format", yaml: "import:\n  date_format: DD.MM.YYYY\n"},
		{name: "log level", yaml: "logging:\n  level: loud\n"},
		{name: "log format", yaml: "logging:\n  format: xml\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Load(newViper(t, tt.yaml))
			assert.ErrorIs(t, err, common.ErrInvalidConfig)
		})
	}

	t.Run("empty database path", func(t *testing.T) {
		v := newViper(t, "")
		v.Set("database.path", "")
		_, err := Load(v)
		assert.ErrorIs(t, err, common.ErrMissingConfig)
	})
}

func TestDirs(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", "/xdg")
	dirs := Dirs()
	require.NotEmpty(t, dirs)
	assert.Equal(t, filepath.Join("/xdg", "budgetui"), dirs[0])
	assert.Equal(t, ".", dirs[len(dirs)-1])
}

func TestExpandPath(t *testing.T) {
	home, err := os.UserHomeDir()
	require.NoError(t, err)
	t.Setenv("BUDGETUI_TEST_DIR", "/data")

	tests := []struct {
		in   string
		want string
	}{
		{in: "", want: ""},
		{in: "~", want: home},
		{in: "~/budget.db", want: filepath.Join(home, "budget.db")},
		{in: "$BUDGETUI_TEST_DIR/budget.db", want: "/data/budget.db"},
		{in: "/abs/budget.db", want: "/abs/budget.db"},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			assert.Equal(t, tt.want, ExpandPath(tt.in))
		})
	}
}
