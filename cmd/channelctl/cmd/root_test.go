package cmd

import (
	"bytes"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/talkincode/channelhub/config"
	"github.com/talkincode/channelhub/internal/adminapi"
	"github.com/talkincode/channelhub/internal/app"
	"github.com/talkincode/channelhub/internal/table"
	"github.com/talkincode/channelhub/internal/testutil"
	"github.com/talkincode/channelhub/internal/webserver"
)

func startServer(t *testing.T) string {
	t.Helper()
	cfg := *config.DefaultAppConfig
	cfg.Web.Metrics = false

	application := app.NewApplication(&cfg)
	application.OverrideDB(testutil.GetEmptyTestDB(t))
	srv := webserver.NewAdminServer(&cfg)
	adminapi.Init(srv, application)

	ts := httptest.NewServer(srv.Echo())
	t.Cleanup(ts.Close)
	return ts.URL
}

func run(t *testing.T, args ...string) (string, error) {
	t.Helper()
	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetArgs(args)
	err := rootCmd.Execute()
	return out.String(), err
}

func TestChannelctlWorkflow(t *testing.T) {
	server := startServer(t)

	for _, ch := range [][2]string{{"Google", "40"}, {"Youtube", "25"}, {"Facebook", "35"}} {
		out, err := run(t, "--server", server, "add", "--name", ch[0], "--number", ch[1])
		require.NoError(t, err)
		assert.Contains(t, out, ch[0])
	}

	out, err := run(t, "--server", server, "list", "--sort", "number", "--order", "desc", "--page", "1")
	require.NoError(t, err)
	lines := strings.Split(strings.TrimSpace(out), "\n")
	require.Len(t, lines, 5)
	assert.Contains(t, lines[1], "Google")
	assert.Contains(t, lines[2], "Facebook")
	assert.Contains(t, lines[3], "Youtube")
	assert.Equal(t, "page 1/1, 3 channels", lines[4])

	out, err = run(t, "--server", server, "chart")
	require.NoError(t, err)
	assert.Contains(t, out, "40.0%")
	assert.Contains(t, out, "25.0%")

	out, err = run(t, "--server", server, "export", "--out", "-")
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(out, "id,name,number,created_at,updated_at\n"))

	out, err = run(t, "--server", server, "delete", "1", "2")
	require.NoError(t, err)
	assert.Equal(t, "deleted 2 channel(s)\n", out)

	_, err = run(t, "--server", server, "show", "1")
	assert.Error(t, err)
}

func TestAddRequiresFields(t *testing.T) {
	server := startServer(t)
	_, err := run(t, "--server", server, "add", "--name", "", "--number", "")
	assert.Error(t, err)
}

func TestSortBy(t *testing.T) {
	tb := table.New(nil, nil)
	for _, tc := range []struct {
		col   table.Column
		order table.Order
	}{
		{table.ColumnName, table.OrderDesc},
		{table.ColumnName, table.OrderAsc},
		{table.ColumnNumber, table.OrderDesc},
		{table.ColumnNumber, table.OrderAsc},
		{table.ColumnName, table.OrderAsc},
	} {
		sortBy(tb, tc.col, tc.order)
		assert.Equal(t, tc.col, tb.OrderBy())
		assert.Equal(t, tc.order, tb.Order())
	}
}

func TestParseIDs(t *testing.T) {
	ids, err := parseIDs([]string{"1", " 7"})
	require.NoError(t, err)
	assert.Equal(t, []int64{1, 7}, ids)

	_, err = parseIDs([]string{"abc"})
	assert.Error(t, err)
	_, err = parseIDs([]string{"0"})
	assert.Error(t, err)
}
