package metrics

import "github.com/prometheus/client_golang/prometheus"

const (
	ResultSuccess  = "success"
	ResultRejected = "rejected"
	ResultFailed   = "failed"
)

// InventoryMetrics tracks inventory writes and the stale reporting backlog.
type InventoryMetrics struct {
	updates *prometheus.CounterVec
	stale   prometheus.Gauge
}

// NewInventoryMetrics registers the inventory metrics on the provided registerer.
func NewInventoryMetrics(reg prometheus.Registerer) *InventoryMetrics {
	if reg == nil {
		return &InventoryMetrics{}
	}
	updates := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "medavail_inventory_updates_total",
		Help: "Inventory update attempts by entity type and result.",
	}, []string{"entity_type", "result"})
	stale := prometheus.NewGauge(prometheus.GaugeOpts{
		Name: "medavail_stale_hospitals",
		Help: "Active hospitals whose inventory exceeded the stale threshold at the last sweep.",
	})
	reg.MustRegister(updates, stale)
	return &InventoryMetrics{updates: updates, stale: stale}
}

// IncUpdate counts one update attempt.
func (m *InventoryMetrics) IncUpdate(entityType, result string) {
	if m == nil || m.updates == nil {
		return
	}
	m.updates.WithLabelValues(normalizeLabel(entityType), normalizeLabel(result)).Inc()
}

// SetStaleHospitals records the size of the most recent stale sweep.
func (m *InventoryMetrics) SetStaleHospitals(count int) {
	if m == nil || m.stale == nil {
		return
	}
	m.stale.Set(float64(count))
}
