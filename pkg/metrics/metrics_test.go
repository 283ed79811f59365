package metrics_test

import (
	"testing"

	"github.com/parcferme/gridbook/pkg/metrics"
	"github.com/prometheus/client_golang/prometheus"
	. "github.com/smartystreets/goconvey/convey"
)

func TestManager(t *testing.T) {
	Convey("Given a manager on a fresh registry", t, func() {
		registry := prometheus.NewRegistry()
		manager := metrics.NewManager(metrics.WithPrometheusRegistry(registry))

		Convey("Then construction registers the metric families", func() {
			So(manager, ShouldNotBeNil)
			families, err := registry.Gather()
			So(err, ShouldBeNil)
			// Gauges and histograms only appear after first use; counters
			// registered via promauto report immediately.
			So(len(families), ShouldBeGreaterThan, 0)
		})

		Convey("And a second manager on another registry does not collide", func() {
			other := metrics.NewManager(metrics.WithPrometheusRegistry(prometheus.NewRegistry()))
			So(other, ShouldNotBeNil)
		})
	})
}

func TestGlobalHelpers(t *testing.T) {
	Convey("Given the package-level default manager", t, func() {
		Convey("Then the helpers record without panicking", func() {
			So(func() {
				metrics.RecordSnapshotBuild(12.5)
				metrics.RecordSnapshotIncomplete()
				metrics.SetActiveSeason(1980)
				metrics.SetRosterSize(24, 13)
				metrics.SetDatasetRecords("drivers", 120)
				metrics.RecordDatasetLoad(nil)
				metrics.RecordSaveOperation("save", nil)
				metrics.RecordHTTPRequest("snapshot", "GET", "200")
				metrics.RecordHTTPRequestDuration("snapshot", "GET", "200", 3.2)
			}, ShouldNotPanic)
		})

		Convey("And the registry is available for the /metrics handler", func() {
			So(metrics.GetRegistry(), ShouldNotBeNil)
		})
	})
}
