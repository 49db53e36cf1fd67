package processors

import (
	"fmt"
	"sort"
	"testing"

	"github.com/leanovate/gopter"
	"github.com/leanovate/gopter/gen"
	"github.com/leanovate/gopter/prop"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/username/salesfolio/backend/src/models"
	"github.com/username/salesfolio/backend/src/utils"
)

func datedRow(orderDate, paymentDate string, revenue, fees int64) models.ClassifiedRow {
	return models.ClassifiedRow{
		Platform:         models.PlatformShopee,
		Disposition:      models.DispositionConfirmed,
		OrderDate:        orderDate,
		PaymentDate:      paymentDate,
		RevenueConfirmed: decimal.NewFromInt(revenue),
		Fees:             decimal.NewFromInt(fees),
	}
}

func TestTimeSeries_TwoDateDimensions(t *testing.T) {
	perDay, perDayAlt := NewTimeSeriesProcessor().Process([]models.ClassifiedRow{
		datedRow("2024-01-02", "2024-01-05", 100, -10),
		datedRow("2024-01-01", "", 50, -5),
		datedRow("2024-01-02", "2024-01-03", 20, 0),
		datedRow("", "", 999, 0),
	})

	require.Len(t, perDay, 2)
	assert.Equal(t, "2024-01-01", perDay[0].Date)
	assert.Equal(t, "2024-01-02", perDay[1].Date)
	assert.Equal(t, "120", perDay[1].Revenue.String())
	assert.Equal(t, "-10", perDay[1].Fees.String())

	require.Len(t, perDayAlt, 3)
	assert.Equal(t, []string{"2024-01-01", "2024-01-03", "2024-01-05"},
		[]string{perDayAlt[0].Date, perDayAlt[1].Date, perDayAlt[2].Date})
	assert.Equal(t, "50", perDayAlt[0].Revenue.String(), "falls back to the order date")
}

func TestTimeSeries_SkipsUnsettledRows(t *testing.T) {
	row := datedRow("2024-01-01", "", 10, 0)
	row.Disposition = models.DispositionIgnored

	perDay, perDayAlt := NewTimeSeriesProcessor().Process([]models.ClassifiedRow{row})
	assert.Empty(t, perDay)
	assert.Empty(t, perDayAlt)
}

func TestTrend_ShortSeries(t *testing.T) {
	trend := Trend([]models.DailyBucket{
		{Date: "2024-01-01", Revenue: decimal.NewFromInt(10), Fees: decimal.NewFromInt(-2), Adjustments: decimal.NewFromInt(1)},
	})
	assert.Equal(t, []string{"2024-01-01"}, trend.Dates)
	require.Len(t, trend.Values, 1)
	assert.Equal(t, "9", trend.Values[0].String())

	empty := Trend(nil)
	assert.Empty(t, empty.Dates)
	assert.Empty(t, empty.Values)
}

func TestTrend_WindowProperty(t *testing.T) {
	parameters := gopter.DefaultTestParameters()
	parameters.MinSuccessfulTests = 100
	properties := gopter.NewProperties(parameters)

	properties.Property("seven or more active days give a sorted window of seven", prop.ForAll(
		func(days []int) bool {
			var rows []models.ClassifiedRow
			distinct := make(map[int]bool)
			for _, d := range days {
				distinct[d] = true
				rows = append(rows, datedRow(fmt.Sprintf("2024-03-%02d", d), "", 10, -1))
			}
			perDay, _ := NewTimeSeriesProcessor().Process(rows)
			trend := Trend(perDay)

			want := utils.MinInt(len(distinct), TrendWindowSize)
			if len(trend.Dates) != want || len(trend.Values) != want {
				return false
			}
			if !sort.StringsAreSorted(trend.Dates) {
				return false
			}
			// The window holds the most recent active days.
			return want == 0 || trend.Dates[want-1] == perDay[len(perDay)-1].Date
		},
		gen.SliceOf(gen.IntRange(1, 28)),
	))

	properties.TestingRun(t)
}
