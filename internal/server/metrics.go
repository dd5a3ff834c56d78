package server

import "github.com/prometheus/client_golang/prometheus"

// Outcome label values.
const (
	outcomeSuccess       = "success"
	outcomeDecodeError   = "decode_error"
	outcomeTooLarge      = "too_large"
	outcomeUnknownFormat = "unknown_format"
)

type metrics struct {
	generated *prometheus.CounterVec
}

func newMetrics(reg prometheus.Registerer) *metrics {
	m := &metrics{
		generated: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "zotero_xml_generated_total",
			Help: "Documents requested over HTTP, by format and outcome.",
		}, []string{"format", "outcome"}),
	}
	reg.MustRegister(m.generated)
	return m
}

func (m *metrics) observe(format, outcome string) {
	m.generated.WithLabelValues(format, outcome).Inc()
}
