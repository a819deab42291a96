package observability

import (
	"context"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/cloudwatch"
	"github.com/aws/aws-sdk-go-v2/service/cloudwatch/types"
)

// Metrics publishes application metrics to CloudWatch. All methods are
// best-effort: a metrics failure must never fail the operation being
// measured, so errors are dropped here.
type Metrics struct {
	namespace string
	client    *cloudwatch.Client
}

// NewMetrics creates a metrics instance publishing under the given namespace
func NewMetrics(namespace string, client *cloudwatch.Client) *Metrics {
	return &Metrics{
		namespace: namespace,
		client:    client,
	}
}

// RecordRecompute records one progress recomputation and its duration
func (m *Metrics) RecordRecompute(ctx context.Context, duration time.Duration) {
	m.put(ctx,
		datum("ProgressRecomputeCount", 1, types.StandardUnitCount),
		datum("ProgressRecomputeLatency", float64(duration.Milliseconds()), types.StandardUnitMilliseconds),
	)
}

// RecordPartialQueryFailure counts a swallowed per-todo record query failure
func (m *Metrics) RecordPartialQueryFailure(ctx context.Context) {
	m.put(ctx, datum("PartialQueryFailureCount", 1, types.StandardUnitCount))
}

// RecordOperation counts one dispatched operation by name
func (m *Metrics) RecordOperation(ctx context.Context, operation string) {
	d := datum("OperationCount", 1, types.StandardUnitCount)
	d.Dimensions = []types.Dimension{
		{
			Name:  aws.String("Operation"),
			Value: aws.String(operation),
		},
	}
	m.put(ctx, d)
}

func (m *Metrics) put(ctx context.Context, data ...types.MetricDatum) {
	if m == nil || m.client == nil {
		return
	}
	input := &cloudwatch.PutMetricDataInput{
		Namespace:  aws.String(m.namespace),
		MetricData: data,
	}
	// Dropped on error; metrics never take an operation down.
	_, _ = m.client.PutMetricData(ctx, input)
}

func datum(name string, value float64, unit types.StandardUnit) types.MetricDatum {
	return types.MetricDatum{
		MetricName: aws.String(name),
		Value:      aws.Float64(value),
		Unit:       unit,
		Timestamp:  aws.Time(time.Now()),
	}
}
