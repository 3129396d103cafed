package export

import (
	"io"

	"github.com/nickromney/certfacts/internal/inventory"
	dto "github.com/prometheus/client_model/go"
	"github.com/prometheus/common/expfmt"
	"google.golang.org/protobuf/proto"
)

// Metric names. Each per-name metric carries a `name` label.
const (
	MetricRecords           = "certfacts_records"
	MetricPairValid         = "certfacts_pair_valid"
	MetricExpiration        = "certfacts_expiration_timestamp_seconds"
	MetricDaysRemaining     = "certfacts_days_remaining"
	MetricExpirationUnknown = "certfacts_expiration_unknown"
)

// WriteProm writes report in the Prometheus text exposition format. Absent
// fields produce no sample, so a failed check is a missing series rather
// than a misleading zero.
func WriteProm(w io.Writer, report inventory.Report) error {
	for _, mf := range promFamilies(report) {
		if _, err := expfmt.MetricFamilyToText(w, mf); err != nil {
			return err
		}
	}
	return nil
}

func promFamilies(report inventory.Report) []*dto.MetricFamily {
	records := gaugeFamily(MetricRecords, "Number of logical certificate names found.")
	valid := gaugeFamily(MetricPairValid, "1 if the certificate and key share key material, 0 if not or if either file is missing.")
	expiration := gaugeFamily(MetricExpiration, "Certificate notAfter date as a Unix timestamp (midnight UTC).")
	days := gaugeFamily(MetricDaysRemaining, "Days until certificate expiration; negative once expired.")
	unknown := gaugeFamily(MetricExpirationUnknown, "1 if the certificate end date could not be parsed.")

	records.Metric = append(records.Metric, gauge(float64(len(report)), nil))

	for _, rec := range report.Records() {
		label := []*dto.LabelPair{{Name: proto.String("name"), Value: proto.String(rec.Name)}}

		if v, ok := rec.Valid.Get(); ok {
			valid.Metric = append(valid.Metric, gauge(boolGauge(v), label))
		}
		if d, ok := rec.Expiration.Get(); ok {
			expiration.Metric = append(expiration.Metric, gauge(float64(d.Time().Unix()), label))
		}
		if n, ok := rec.DaysRemaining.Get(); ok {
			days.Metric = append(days.Metric, gauge(float64(n), label))
		}
		if rec.Expiration.IsUnknown() {
			unknown.Metric = append(unknown.Metric, gauge(1, label))
		}
	}

	out := []*dto.MetricFamily{records}
	for _, mf := range []*dto.MetricFamily{valid, expiration, days, unknown} {
		if len(mf.Metric) > 0 {
			out = append(out, mf)
		}
	}
	return out
}

func gaugeFamily(name, help string) *dto.MetricFamily {
	return &dto.MetricFamily{
		Name: proto.String(name),
		Help: proto.String(help),
		Type: dto.MetricType_GAUGE.Enum(),
	}
}

func gauge(v float64, labels []*dto.LabelPair) *dto.Metric {
	return &dto.Metric{
		Label: labels,
		Gauge: &dto.Gauge{Value: proto.Float64(v)},
	}
}

func boolGauge(b bool) float64 {
	if b {
		return 1
	}
	return 0
}
