package middleware

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"connectrpc.com/connect"
	"github.com/stretchr/testify/require"

	"github.com/mmynk/divvy/pkg/api"
	"github.com/mmynk/divvy/pkg/api/apiconnect"
)

// failingBills answers GetBill with NotFound and DeleteBill with Internal.
type failingBills struct {
	apiconnect.UnimplementedBillServiceHandler
}

func (failingBills) GetBill(context.Context, *connect.Request[api.GetBillRequest]) (*connect.Response[api.GetBillResponse], error) {
	return nil, connect.NewError(connect.CodeNotFound, errors.New("bill not found"))
}

func (failingBills) DeleteBill(context.Context, *connect.Request[api.DeleteBillRequest]) (*connect.Response[api.DeleteBillResponse], error) {
	return nil, connect.NewError(connect.CodeInternal, errors.New("disk full"))
}

func (failingBills) ListBills(context.Context, *connect.Request[api.ListBillsRequest]) (*connect.Response[api.ListBillsResponse], error) {
	return connect.NewResponse(&api.ListBillsResponse{}), nil
}

// captureLogs routes the default logger into a buffer of JSON lines for the test.
func captureLogs(t *testing.T) *bytes.Buffer {
	t.Helper()
	var buf bytes.Buffer
	prev := slog.Default()
	slog.SetDefault(slog.New(slog.NewJSONHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug})))
	t.Cleanup(func() { slog.SetDefault(prev) })
	return &buf
}

func logLines(t *testing.T, buf *bytes.Buffer) []map[string]any {
	t.Helper()
	var lines []map[string]any
	for _, line := range strings.Split(strings.TrimSpace(buf.String()), "\n") {
		if line == "" {
			continue
		}
		var entry map[string]any
		require.NoError(t, json.Unmarshal([]byte(line), &entry))
		lines = append(lines, entry)
	}
	return lines
}

func TestLoggingInterceptor(t *testing.T) {
	buf := captureLogs(t)

	path, handler := apiconnect.NewBillServiceHandler(failingBills{},
		connect.WithInterceptors(LoggingInterceptor()),
	)
	mux := http.NewServeMux()
	mux.Handle(path, handler)
	server := httptest.NewServer(mux)
	defer server.Close()

	client := apiconnect.NewBillServiceClient(http.DefaultClient, server.URL)
	ctx := context.Background()

	_, err := client.ListBills(ctx, connect.NewRequest(&api.ListBillsRequest{}))
	require.NoError(t, err)
	_, err = client.GetBill(ctx, connect.NewRequest(&api.GetBillRequest{BillId: "b-404"}))
	require.Error(t, err)
	_, err = client.DeleteBill(ctx, connect.NewRequest(&api.DeleteBillRequest{BillId: "b-500"}))
	require.Error(t, err)

	lines := logLines(t, buf)
	require.Len(t, lines, 3)

	require.Equal(t, "INFO", lines[0]["level"])
	require.Equal(t, apiconnect.BillServiceListBillsProcedure, lines[0]["procedure"])
	require.NotContains(t, lines[0], "bill_id")

	require.Equal(t, "WARN", lines[1]["level"])
	require.Equal(t, "b-404", lines[1]["bill_id"])
	require.Equal(t, "not_found", lines[1]["code"])

	require.Equal(t, "ERROR", lines[2]["level"])
	require.Equal(t, "b-500", lines[2]["bill_id"])
	require.Equal(t, "internal", lines[2]["code"])
}

func TestLevelFor(t *testing.T) {
	tests := []struct {
		code connect.Code
		want slog.Level
	}{
		{connect.CodeInvalidArgument, slog.LevelWarn},
		{connect.CodeNotFound, slog.LevelWarn},
		{connect.CodeAborted, slog.LevelWarn},
		{connect.CodeInternal, slog.LevelError},
		{connect.CodeUnknown, slog.LevelError},
	}
	for _, tt := range tests {
		t.Run(tt.code.String(), func(t *testing.T) {
			require.Equal(t, tt.want, levelFor(tt.code))
		})
	}
}
