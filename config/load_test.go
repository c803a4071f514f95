package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o600))
	return path
}

func TestLoadDefaults(t *testing.T) {
	c, err := Load(writeConfig(t, "port: \"9000\"\n"))
	require.NoError(t, err)
	require.Equal(t, "9000", c.Port)
	require.Equal(t, ModeDebug, c.Mode)
	require.Equal(t, DriverMysql, c.Database.Driver)
	require.Equal(t, EmployeeCountActual, c.Stats.EmployeeCount)
	require.Equal(t, 6, c.Stats.TrendMonths)
	require.False(t, c.Redis.Enabled())
}

func TestLoadEnvOverridesFile(t *testing.T) {
	t.Setenv("FACILITY_PORT", "7000")
	t.Setenv("DB_DRIVER", "postgres")
	t.Setenv("STATS_EMPLOYEE_COUNT", "estimate")

	c, err := Load(writeConfig(t, "port: \"9000\"\ndatabase:\n  driver: mysql\n"))
	require.NoError(t, err)
	require.Equal(t, "7000", c.Port)
	require.Equal(t, DriverPostgres, c.Database.Driver)
	require.Equal(t, EmployeeCountEstimate, c.Stats.EmployeeCount)
}

func TestLoadRates(t *testing.T) {
	c, err := Load(writeConfig(t, "work_entry:\n  rates:\n    painting: 14\n    tiling: 22.5\n"))
	require.NoError(t, err)
	require.Equal(t, 14.0, c.WorkEntry.Rates["painting"])
	require.Equal(t, 22.5, c.WorkEntry.Rates["tiling"])
}

func TestLoadRejectsBadValues(t *testing.T) {
	cases := map[string]string{
		"mode":     "mode: staging\n",
		"driver":   "database:\n  driver: oracle\n",
		"policy":   "stats:\n  employee_count: guess\n",
		"location": "location: Mars/Olympus\n",
	}
	for name, body := range cases {
		t.Run(name, func(t *testing.T) {
			_, err := Load(writeConfig(t, body))
			require.Error(t, err)
		})
	}
}

func TestLoadMissingExplicitFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	require.Error(t, err)
}
