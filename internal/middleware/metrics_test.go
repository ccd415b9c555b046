package middleware

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"connectrpc.com/connect"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/require"

	"github.com/mmynk/divvy/internal/metrics"
	"github.com/mmynk/divvy/pkg/api"
	"github.com/mmynk/divvy/pkg/api/apiconnect"
)

// listOnly serves ListBills and leaves every other procedure unimplemented.
type listOnly struct {
	apiconnect.UnimplementedBillServiceHandler
}

func (listOnly) ListBills(context.Context, *connect.Request[api.ListBillsRequest]) (*connect.Response[api.ListBillsResponse], error) {
	return connect.NewResponse(&api.ListBillsResponse{}), nil
}

// requestCount returns divvy_rpc_requests_total for one procedure and code.
func requestCount(t *testing.T, reg prometheus.Gatherer, procedure, code string) float64 {
	t.Helper()
	families, err := reg.Gather()
	require.NoError(t, err)
	for _, f := range families {
		if f.GetName() != "divvy_rpc_requests_total" {
			continue
		}
		for _, metric := range f.GetMetric() {
			labels := map[string]string{}
			for _, l := range metric.GetLabel() {
				labels[l.GetName()] = l.GetValue()
			}
			if labels["procedure"] == procedure && labels["code"] == code {
				return metric.GetCounter().GetValue()
			}
		}
	}
	return 0
}

func TestMetricsInterceptor(t *testing.T) {
	reg := prometheus.NewRegistry()
	m := metrics.New(reg)

	path, handler := apiconnect.NewBillServiceHandler(listOnly{},
		connect.WithInterceptors(MetricsInterceptor(m), LoggingInterceptor()),
	)
	mux := http.NewServeMux()
	mux.Handle(path, handler)
	server := httptest.NewServer(mux)
	defer server.Close()

	client := apiconnect.NewBillServiceClient(http.DefaultClient, server.URL)
	ctx := context.Background()

	for range 2 {
		_, err := client.ListBills(ctx, connect.NewRequest(&api.ListBillsRequest{}))
		require.NoError(t, err)
	}
	_, err := client.GetBill(ctx, connect.NewRequest(&api.GetBillRequest{BillId: "b1"}))
	require.Equal(t, connect.CodeUnimplemented, connect.CodeOf(err))

	require.Equal(t, 2.0, requestCount(t, reg, apiconnect.BillServiceListBillsProcedure, "ok"))
	require.Equal(t, 1.0, requestCount(t, reg, apiconnect.BillServiceGetBillProcedure, "unimplemented"))
}
