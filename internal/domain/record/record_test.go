package record_test

import (
	"testing"

	"github.com/parcferme/gridbook/internal/domain/record"
	. "github.com/smartystreets/goconvey/convey"
)

func TestResolve(t *testing.T) {
	Convey("Given a record with mixed field vintages", t, func() {
		r := record.Record{
			"team_name": "Lotus",
			"name":      "",
			"budget":    float64(1200000),
			"active":    nil,
		}

		Convey("When resolving with the preferred key missing", func() {
			v, ok := r.Resolve("official_name", "team_name", "name")

			Convey("Then the first populated synonym wins", func() {
				So(ok, ShouldBeTrue)
				So(v, ShouldEqual, "Lotus")
			})
		})

		Convey("When the only matching keys are empty or nil", func() {
			_, ok := r.Resolve("name", "active")

			Convey("Then resolution reports absence", func() {
				So(ok, ShouldBeFalse)
			})
		})

		Convey("When no key matches at all", func() {
			v, ok := r.Resolve("sponsor", "livery")
			So(ok, ShouldBeFalse)
			So(v, ShouldBeNil)
		})
	})
}

func TestTypedResolution(t *testing.T) {
	Convey("Given a record with JSON-decoded scalars", t, func() {
		r := record.Record{
			"points":     float64(54),
			"rating":     "87.5",
			"short_name": "TYR",
		}

		Convey("Then String coerces numbers", func() {
			So(r.String("", "points"), ShouldEqual, "54")
			So(r.String("n/a", "missing"), ShouldEqual, "n/a")
		})

		Convey("Then Int handles float64 and numeric strings", func() {
			n, ok := r.Int("points")
			So(ok, ShouldBeTrue)
			So(n, ShouldEqual, 54)

			_, ok = r.Int("short_name")
			So(ok, ShouldBeFalse)
		})

		Convey("Then Float parses string numbers", func() {
			f, ok := r.Float("rating")
			So(ok, ShouldBeTrue)
			So(f, ShouldEqual, 87.5)
		})
	})
}

func TestYear(t *testing.T) {
	Convey("Given records carrying years in different shapes", t, func() {
		Convey("A numeric year field resolves directly", func() {
			r := record.Record{"season_year": float64(1982)}
			y, ok := r.Year("year", "season_year")
			So(ok, ShouldBeTrue)
			So(y, ShouldEqual, 1982)
		})

		Convey("An ISO date contributes its leading four digits", func() {
			r := record.Record{"date": "1982-05-01"}
			y, ok := r.Year("date")
			So(ok, ShouldBeTrue)
			So(y, ShouldEqual, 1982)
		})

		Convey("Garbage values are skipped in favour of later keys", func() {
			r := record.Record{"year": "TBD", "race_date": "1979-10-07"}
			y, ok := r.Year("year", "race_date")
			So(ok, ShouldBeTrue)
			So(y, ShouldEqual, 1979)
		})

		Convey("Out-of-range numbers are not years", func() {
			r := record.Record{"year": float64(12)}
			_, ok := r.Year("year")
			So(ok, ShouldBeFalse)
		})

		Convey("A record with no year-like field reports unknown", func() {
			r := record.Record{"name": "Monaco GP"}
			_, ok := r.Year("year", "date")
			So(ok, ShouldBeFalse)
		})
	})
}

func TestNestedShapes(t *testing.T) {
	Convey("Given a record with nested structures", t, func() {
		r := record.Record{
			"by_year": map[string]any{"1980": "Ford"},
			"tuples":  []any{map[string]any{"year": float64(1980)}},
		}

		Convey("Then Map returns nested objects as records", func() {
			m, ok := r.Map("by_year")
			So(ok, ShouldBeTrue)
			So(m["1980"], ShouldEqual, "Ford")
		})

		Convey("Then Slice returns nested arrays", func() {
			s, ok := r.Slice("tuples")
			So(ok, ShouldBeTrue)
			So(len(s), ShouldEqual, 1)
		})
	})
}
