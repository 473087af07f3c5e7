package postgres

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestOpenConfigDSN(t *testing.T) {
	tests := []struct {
		name string
		cfg  OpenConfig
		want string
	}{
		{
			name: "appends flag to url",
			cfg:  OpenConfig{URL: "postgres://u:p@db:5432/rl_fantasy?sslmode=disable", DisablePreparedBinaryResult: true},
			want: "postgres://u:p@db:5432/rl_fantasy?disable_prepared_binary_result=yes&sslmode=disable",
		},
		{
			name: "keeps explicit value",
			cfg:  OpenConfig{URL: "postgres://u:p@db:5432/rl_fantasy?disable_prepared_binary_result=no", DisablePreparedBinaryResult: true},
			want: "postgres://u:p@db:5432/rl_fantasy?disable_prepared_binary_result=no",
		},
		{
			name: "flag off",
			cfg:  OpenConfig{URL: "postgres://u:p@db:5432/rl_fantasy"},
			want: "postgres://u:p@db:5432/rl_fantasy",
		},
		{
			name: "key value dsn",
			cfg:  OpenConfig{URL: "host=db dbname=rl_fantasy", DisablePreparedBinaryResult: true},
			want: "host=db dbname=rl_fantasy disable_prepared_binary_result=yes",
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			require.Equal(t, tc.want, tc.cfg.DSN())
		})
	}
}

func TestDatabaseName(t *testing.T) {
	require.Equal(t, "rl_fantasy", DatabaseName("postgres://u:p@localhost:5432/rl_fantasy?sslmode=disable"))
	require.Equal(t, "rl_fantasy", DatabaseName(`host=localhost user=postgres dbname="rl_fantasy" sslmode=disable`))
	require.Empty(t, DatabaseName("host=localhost"))
}

func TestTraceQuery(t *testing.T) {
	got := traceQuery(" SELECT   *\nFROM fantasy_weeks \t WHERE id = $1 ")
	require.Equal(t, "SELECT * FROM fantasy_weeks WHERE id = $1", got)

	long := traceQuery("SELECT " + strings.Repeat("x, ", 400))
	require.Len(t, long, maxTracedQueryLength+3)
	require.True(t, strings.HasSuffix(long, "..."))
}

func TestOpenRequiresURL(t *testing.T) {
	_, err := Open(t.Context(), OpenConfig{})
	require.Error(t, err)
}
