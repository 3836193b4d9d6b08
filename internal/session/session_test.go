package session

import (
	"bytes"
	"context"
	"strings"
	"testing"

	"github.com/go-faster/errors"
	"github.com/go-faster/sdk/zctx"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel/attribute"
	sdkmetric "go.opentelemetry.io/otel/sdk/metric"
	"go.opentelemetry.io/otel/sdk/metric/metricdata"
	"go.uber.org/zap/zaptest"

	"github.com/xenking/starbuzz/internal/domain/beverage"
)

const coffeeMenu = `Welcome to Starbuzz Coffee!
Please select your coffee:
1. House Blend Coffee
2. Dark Roast Coffee
3. Decaf Coffee
4. Espresso Coffee
`

const condimentMenu = `Please select condiments (comma-separated):
1. Milk (0.20)
2. Mocha (0.20)
3. Soy (0.15)
4. Whipped cream (0.10)
`

func testContext(t *testing.T) context.Context {
	t.Helper()
	return zctx.Base(context.Background(), zaptest.NewLogger(t))
}

func runSession(t *testing.T, input string, opts Options) (*Session, string) {
	t.Helper()

	var out bytes.Buffer
	s, err := New(strings.NewReader(input), &out, opts)
	require.NoError(t, err)
	require.Equal(t, StateAwaitingBase, s.State())

	require.NoError(t, s.Run(testContext(t)))
	return s, out.String()
}

func TestRun_Transcript(t *testing.T) {
	tests := []struct {
		name      string
		input     string
		wantTail  string
		wantState State
	}{
		{
			name:      "espresso with milk and soy",
			input:     "4\n1,3\n",
			wantTail:  "Your order: Espresso Coffee, Steamed Milk, Soy\nTotal cost: 2.34\n",
			wantState: StateFinalized,
		},
		{
			name:  "empty condiment line",
			input: "1\n\n",
			wantTail: "Invalid condiment choice: \n" +
				"Your order: House Blend Coffee\nTotal cost: 0.89\n",
			wantState: StateFinalized,
		},
		{
			name:  "empty token between condiments",
			input: "1\n1,,2\n",
			wantTail: "Invalid condiment choice: \n" +
				"Your order: House Blend Coffee, Steamed Milk, Mocha\nTotal cost: 1.29\n",
			wantState: StateFinalized,
		},
		{
			name:  "trailing comma",
			input: "1\n1,\n",
			wantTail: "Invalid condiment choice: \n" +
				"Your order: House Blend Coffee, Steamed Milk\nTotal cost: 1.09\n",
			wantState: StateFinalized,
		},
		{
			name:  "invalid condiment in the middle",
			input: "1\n1,9,2\n",
			wantTail: "Invalid condiment choice: 9\n" +
				"Your order: House Blend Coffee, Steamed Milk, Mocha\nTotal cost: 1.29\n",
			wantState: StateFinalized,
		},
		{
			name:  "every token invalid",
			input: "2\n 7 , x\n",
			wantTail: "Invalid condiment choice: 7\nInvalid condiment choice: x\n" +
				"Your order: Dark Roast Coffee\nTotal cost: 0.99\n",
			wantState: StateFinalized,
		},
		{
			name:      "windows line endings",
			input:     "3\r\n3,4\r\n",
			wantTail:  "Your order: Decaf Coffee, Soy, Whipped Cream\nTotal cost: 1.3\n",
			wantState: StateFinalized,
		},
		{
			name:      "last line without newline",
			input:     "2\n2,2",
			wantTail:  "Your order: Dark Roast Coffee, Mocha, Mocha\nTotal cost: 1.39\n",
			wantState: StateFinalized,
		},
		{
			name:      "condiment line absent",
			input:     "2\n",
			wantTail:  msgInvalidCondiments + "\n",
			wantState: StateAborted,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s, out := runSession(t, tt.input, Options{})

			assert.Equal(t, coffeeMenu+condimentMenu+tt.wantTail, out)
			assert.Equal(t, tt.wantState, s.State())
		})
	}
}

func TestRun_InvalidCoffee(t *testing.T) {
	for _, input := range []string{"0\n", "5\n", "coffee\n", "\n", "", "1.5\n"} {
		t.Run(input, func(t *testing.T) {
			s, out := runSession(t, input, Options{})

			assert.Equal(t, coffeeMenu+msgInvalidCoffee+"\n", out)
			assert.Equal(t, StateAborted, s.State())
			assert.Nil(t, s.Order())
		})
	}
}

func TestRun_Order(t *testing.T) {
	s, _ := runSession(t, "4\n1,3\n", Options{})

	o := s.Order()
	require.NotNil(t, o)
	assert.Equal(t, beverage.Espresso, beverage.BaseOf(o.Item))
	assert.Equal(t, []beverage.Condiment{beverage.Milk, beverage.Soy}, beverage.Condiments(o.Item))
}

func TestRun_LegacyFloatTotals(t *testing.T) {
	tests := []struct {
		input  string
		legacy bool
		want   string
	}{
		{"1\n4,4,4\n", false, "Total cost: 1.19\n"},
		{"1\n4,4,4\n", true, "Total cost: 1.1900000000000002\n"},
		{"4\n1,3\n", true, "Total cost: 2.34\n"},
	}

	for _, tt := range tests {
		_, out := runSession(t, tt.input, Options{LegacyFloatTotals: tt.legacy})
		assert.True(t, strings.HasSuffix(out, tt.want), "legacy=%v output %q", tt.legacy, out)
	}
}

func TestRun_SingleUse(t *testing.T) {
	s, _ := runSession(t, "1\n\n", Options{})

	err := s.Run(testContext(t))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "already finalized")
}

type failingWriter struct {
	n int
}

func (w *failingWriter) Write(p []byte) (int, error) {
	if w.n == 0 {
		return 0, errors.New("broken pipe")
	}
	w.n--
	return len(p), nil
}

func TestRun_WriteError(t *testing.T) {
	s, err := New(strings.NewReader("4\n1\n"), &failingWriter{n: 3}, Options{})
	require.NoError(t, err)

	err = s.Run(testContext(t))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "broken pipe")
	assert.Equal(t, StateFinalized, s.State())
}

func TestRun_Metrics(t *testing.T) {
	reader := sdkmetric.NewManualReader()
	mp := sdkmetric.NewMeterProvider(sdkmetric.WithReader(reader))

	for _, input := range []string{"4\n1,3\n", "2\n9,9\n", "7\n"} {
		s, err := New(strings.NewReader(input), &bytes.Buffer{}, Options{MeterProvider: mp})
		require.NoError(t, err)
		require.NoError(t, s.Run(testContext(t)))
	}

	var rm metricdata.ResourceMetrics
	require.NoError(t, reader.Collect(context.Background(), &rm))

	sums := map[string]metricdata.Sum[int64]{}
	for _, sm := range rm.ScopeMetrics {
		for _, m := range sm.Metrics {
			if sum, ok := m.Data.(metricdata.Sum[int64]); ok {
				sums[m.Name] = sum
			}
		}
	}

	orders, ok := sums["starbuzz.orders"]
	require.True(t, ok)
	byOutcome := map[string]int64{}
	for _, dp := range orders.DataPoints {
		v, _ := dp.Attributes.Value(attribute.Key("outcome"))
		byOutcome[v.AsString()] = dp.Value
	}
	assert.Equal(t, map[string]int64{"finalized": 2, "aborted": 1}, byOutcome)

	invalid, ok := sums["starbuzz.condiments.invalid"]
	require.True(t, ok)
	require.Len(t, invalid.DataPoints, 1)
	assert.Equal(t, int64(2), invalid.DataPoints[0].Value)
}

func TestState_String(t *testing.T) {
	assert.Equal(t, "awaiting_base", StateAwaitingBase.String())
	assert.Equal(t, "awaiting_condiments", StateAwaitingCondiments.String())
	assert.Equal(t, "finalized", StateFinalized.String())
	assert.Equal(t, "aborted", StateAborted.String())
	assert.Equal(t, "State(9)", State(9).String())
}
