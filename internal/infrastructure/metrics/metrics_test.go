package metrics

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func gaugeValue(t *testing.T, m *Metrics, name string) float64 {
	t.Helper()
	families, err := m.Registry().Gather()
	require.NoError(t, err)
	for _, mf := range families {
		if mf.GetName() == name {
			require.Len(t, mf.GetMetric(), 1)
			return mf.GetMetric()[0].GetGauge().GetValue()
		}
	}
	t.Fatalf("metric %s not found", name)
	return 0
}

func TestQueueDepthSamplesThePool(t *testing.T) {
	m := New()

	depth := 3
	m.RegisterQueueDepth(func() int { return depth })

	assert.Equal(t, 3.0, gaugeValue(t, m, "fretor_report_queue_depth"))

	// The gauge reads the queue at scrape time; it does not count enqueues,
	// so jobs finished elsewhere cannot skew it.
	depth = 0
	m.JobEnqueued("trips", "json")
	assert.Equal(t, 0.0, gaugeValue(t, m, "fretor_report_queue_depth"))
}
