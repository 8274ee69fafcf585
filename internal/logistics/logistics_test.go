package logistics

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"testing"
	"time"

	"github.com/jarcoal/httpmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testURL = "https://example.test/olist_orders_dataset.csv"

const ordersCSV = `"order_id","customer_id","order_status","order_purchase_timestamp","order_approved_at","order_delivered_carrier_date","order_delivered_customer_date","order_estimated_delivery_date"
a1,c1,delivered,2017-10-02 10:56:33,2017-10-02 11:07:15,2017-10-04 19:55:00,2017-10-10 21:25:13,2017-10-18 00:00:00
a2,c2,delivered,2018-07-24 20:41:37,2018-07-26 03:24:27,2018-07-26 14:31:00,2018-08-07 15:27:45,2018-08-01 00:00:00
a3,c3,shipped,2018-08-08 08:38:49,2018-08-08 08:55:23,2018-08-08 13:50:00,2018-08-17 18:06:29,2018-09-04 00:00:00
a4,c4,delivered,2017-11-18 19:28:06,2017-11-18 19:45:59,2017-11-22 13:39:59,,2017-12-15 00:00:00
a5,c5,delivered,2016-09-05 00:15:34,2016-10-07 13:18:03,2016-10-18 13:14:51,2017-03-01 10:00:00,2016-10-28 00:00:00
a6,c6,delivered,not-a-date,2018-02-13 22:20:29,2018-02-14 19:46:34,2018-02-16 18:17:02,2018-02-26 00:00:00
a7,c7,delivered,2018-02-13 21:18:39,2018-02-13 22:20:29,2018-02-14 19:46:34,2018-02-16 18:17:02,
`

func setupHTTPMock(t *testing.T) {
	t.Helper()
	httpmock.Activate()
	t.Cleanup(httpmock.DeactivateAndReset)
}

func newTestLoader() *Loader {
	return NewLoader(testURL, 5*time.Second, time.Hour, nil)
}

func TestParseOrdersKeepsDeliveredWithTimestamps(t *testing.T) {
	orders, err := ParseOrders(strings.NewReader(ordersCSV))
	require.NoError(t, err)

	ids := make([]string, len(orders))
	for i, o := range orders {
		ids[i] = o.ID
	}
	assert.Equal(t, []string{"a1", "a2", "a5", "a7"}, ids)

	byID := map[string]Order{}
	for _, o := range orders {
		byID[o.ID] = o
	}
	assert.Equal(t, 8, byID["a1"].LeadDays)
	assert.Equal(t, StatusOnTime, byID["a1"].DeadlineStatus)
	assert.Equal(t, 13, byID["a2"].LeadDays)
	assert.Equal(t, StatusLate, byID["a2"].DeadlineStatus)
	assert.Greater(t, byID["a5"].LeadDays, ExtremeOutlierDays)
	// Missing estimate never counts as late.
	assert.False(t, byID["a7"].Late)
	assert.Equal(t, 2, byID["a7"].LeadDays)
}

func TestParseOrdersRejectsMissingColumns(t *testing.T) {
	_, err := ParseOrders(strings.NewReader("order_id,order_status\nx,delivered\n"))
	assert.ErrorContains(t, err, "missing column")
	_, err = ParseOrders(strings.NewReader(""))
	assert.Error(t, err)
}

func TestLeadDaysFloors(t *testing.T) {
	p := time.Date(2018, 1, 1, 12, 0, 0, 0, time.UTC)
	assert.Equal(t, 0, LeadDays(p, p.Add(23*time.Hour)))
	assert.Equal(t, 1, LeadDays(p, p.Add(24*time.Hour)))
	assert.Equal(t, -1, LeadDays(p, p.Add(-time.Hour)))
}

func TestLoadSuccessIsCached(t *testing.T) {
	setupHTTPMock(t)
	httpmock.RegisterResponder("GET", testURL, httpmock.NewStringResponder(http.StatusOK, ordersCSV))

	l := newTestLoader()
	res := l.Load(context.Background())
	require.True(t, res.OK(), "unexpected error: %v", res.Err)
	assert.Len(t, res.Orders, 4)

	again := l.Load(context.Background())
	assert.Len(t, again.Orders, 4)
	assert.Equal(t, 1, httpmock.GetTotalCallCount())

	l.Invalidate()
	l.Load(context.Background())
	assert.Equal(t, 2, httpmock.GetTotalCallCount())
}

func TestLoadNetworkFailure(t *testing.T) {
	setupHTTPMock(t)
	httpmock.RegisterResponder("GET", testURL, httpmock.NewErrorResponder(errors.New("dial tcp: connection refused")))

	l := newTestLoader()
	var res Result
	require.NotPanics(t, func() { res = l.Load(context.Background()) })
	require.NotNil(t, res.Err)
	assert.Equal(t, KindNetwork, res.Err.Kind)
	assert.Empty(t, res.Orders)
	assert.Contains(t, res.Err.Message(), "Erro ao conectar no GitHub da Olist")

	// Failures are not memoized.
	l.Load(context.Background())
	assert.Equal(t, 2, httpmock.GetTotalCallCount())
}

func TestLoadStatusFailure(t *testing.T) {
	setupHTTPMock(t)
	httpmock.RegisterResponder("GET", testURL, httpmock.NewStringResponder(http.StatusNotFound, "404: Not Found"))

	res := newTestLoader().Load(context.Background())
	require.NotNil(t, res.Err)
	assert.Equal(t, KindStatus, res.Err.Kind)
	assert.Equal(t, http.StatusNotFound, res.Err.StatusCode)
	assert.Empty(t, res.Orders)
}

func TestLoadParseFailure(t *testing.T) {
	setupHTTPMock(t)
	httpmock.RegisterResponder("GET", testURL, httpmock.NewStringResponder(http.StatusOK, "<html>rate limited</html>"))

	res := newTestLoader().Load(context.Background())
	require.NotNil(t, res.Err)
	assert.Equal(t, KindParse, res.Err.Kind)
	assert.Empty(t, res.Orders)
}

func TestRenderStatistics(t *testing.T) {
	orders, err := ParseOrders(strings.NewReader(ordersCSV))
	require.NoError(t, err)
	res := Result{Orders: orders}

	v := Render(res, testURL, nil)
	require.Nil(t, v.Err)
	assert.Equal(t, 4, v.Summary.Count)
	assert.True(t, v.ExtremeOutlier)
	require.Len(t, v.Years, 3)
	assert.Equal(t, 2016, v.Years[0].Year)
	assert.Equal(t, "a5", v.Slowest[0].ID)
	require.Len(t, v.Histogram.Data, 1)
	assert.Equal(t, []float64{0, 60}, v.Histogram.Layout.XAxis.Range)
	assert.Len(t, v.Histogram.Layout.Shapes, 2)
	assert.Len(t, v.BoxChart.Data, 2)

	v = Render(res, testURL, []int{2018})
	assert.Equal(t, 2, v.Summary.Count)
	assert.False(t, v.ExtremeOutlier)
	for _, y := range v.Years {
		assert.Equal(t, y.Year == 2018, y.Selected)
	}
	md := v.Markdown()
	assert.Contains(t, md, "Total de Pedidos")
	assert.NotContains(t, md, "Outlier Extremo")
}

func TestRenderFailureSkipsSections(t *testing.T) {
	v := Render(Result{Err: &LoadError{Kind: KindStatus, URL: testURL, StatusCode: 500}}, testURL, nil)
	assert.Empty(t, v.Slowest)
	assert.Empty(t, v.Histogram.Data)
	assert.Contains(t, v.Markdown(), "Não foi possível carregar os dados")
}

func TestRenderEmptyLoadShowsNoData(t *testing.T) {
	header := "order_id,customer_id,order_status,order_purchase_timestamp,order_approved_at,order_delivered_carrier_date,order_delivered_customer_date,order_estimated_delivery_date\n"
	orders, err := ParseOrders(strings.NewReader(header))
	require.NoError(t, err)

	v := Render(Result{Orders: orders}, testURL, nil)
	assert.Nil(t, v.Err)
	assert.True(t, v.NoData)
	assert.Zero(t, v.Summary.Count)
	assert.Empty(t, v.Histogram.Data)
	md := v.Markdown()
	assert.Contains(t, md, "Não foi possível carregar os dados")
	assert.NotContains(t, md, "Total de Pedidos")
}

func TestRenderOutlierPoints(t *testing.T) {
	base := time.Date(2018, 3, 1, 10, 0, 0, 0, time.UTC)
	var orders []Order
	for i := 0; i < 20; i++ {
		orders = append(orders, Order{ID: fmt.Sprintf("o%d", i), Status: "delivered", Purchased: base,
			LeadDays: 8 + i%5, DeadlineStatus: StatusOnTime})
	}
	orders = append(orders, Order{ID: "slow", Status: "delivered", Purchased: base, LeadDays: 200, DeadlineStatus: StatusOnTime})

	v := Render(Result{Orders: orders}, testURL, nil)
	assert.Equal(t, 1, v.RobustOutliers)
	require.Len(t, v.Boxes, 1)
	assert.Equal(t, []float64{200}, v.Boxes[0].OutlierDays)

	require.Len(t, v.BoxChart.Data, 2)
	points := v.BoxChart.Data[1]
	assert.Equal(t, "markers", points.Mode)
	assert.Equal(t, []float64{200}, points.Y)
	assert.Equal(t, []string{StatusOnTime}, points.X)
	assert.Contains(t, v.Markdown(), "Outliers (Z robusto > 3,5): 1 pedidos")
}
