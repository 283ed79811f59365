package lifecycle_test

import (
	"testing"

	"github.com/parcferme/gridbook/internal/domain/lifecycle"
	"github.com/parcferme/gridbook/internal/domain/record"
	. "github.com/smartystreets/goconvey/convey"
)

func TestClassify(t *testing.T) {
	Convey("Given a driver with a full career on record", t, func() {
		driver := record.Record{
			"career_start_year": float64(1975),
			"f1_rookie_season":  float64(1978),
			"career_end_year":   float64(1985),
			"birth_date":        "1955-02-11",
		}

		Convey("Before the career start the driver is hidden", func() {
			So(lifecycle.Classify(driver, 1974), ShouldEqual, lifecycle.StatusHidden)
		})

		Convey("Between start and debut the driver is junior only", func() {
			So(lifecycle.Classify(driver, 1976), ShouldEqual, lifecycle.StatusJuniorOnly)
		})

		Convey("From the debut year the driver is eligible", func() {
			So(lifecycle.Classify(driver, 1978), ShouldEqual, lifecycle.StatusEligible)
			So(lifecycle.Classify(driver, 1980), ShouldEqual, lifecycle.StatusEligible)
			So(lifecycle.Classify(driver, 1985), ShouldEqual, lifecycle.StatusEligible)
		})

		Convey("Past the career end the driver is retired", func() {
			So(lifecycle.Classify(driver, 1990), ShouldEqual, lifecycle.StatusRetired)
		})

		Convey("And age follows the birth year", func() {
			age, ok := lifecycle.Age(driver, 1980)
			So(ok, ShouldBeTrue)
			So(age, ShouldEqual, 25)
		})
	})

	Convey("Given a driver with a death date", t, func() {
		driver := record.Record{
			"f1_rookie_season": float64(1978),
			"death_date":       "1982-05-01",
		}

		Convey("In the death year the driver is deceased", func() {
			So(lifecycle.Classify(driver, 1982), ShouldEqual, lifecycle.StatusDeceased)
		})

		Convey("After the death year the driver stays deceased", func() {
			So(lifecycle.Classify(driver, 1995), ShouldEqual, lifecycle.StatusDeceased)
		})

		Convey("Before the death year the usual rules apply", func() {
			So(lifecycle.Classify(driver, 1981), ShouldEqual, lifecycle.StatusEligible)
		})

		Convey("And death outranks retirement", func() {
			driver["career_end_year"] = float64(1980)
			So(lifecycle.Classify(driver, 1982), ShouldEqual, lifecycle.StatusDeceased)
		})
	})

	Convey("Given a driver with no debut on record", t, func() {
		driver := record.Record{"driver_name": "A. Prospect"}

		Convey("Then the driver is junior only", func() {
			So(lifecycle.Classify(driver, 1980), ShouldEqual, lifecycle.StatusJuniorOnly)
		})
	})

	Convey("Given a driver with no birth field", t, func() {
		_, ok := lifecycle.Age(record.Record{"driver_name": "Unknown"}, 1980)
		So(ok, ShouldBeFalse)
	})
}

func TestActive(t *testing.T) {
	Convey("Given teams with assorted active windows", t, func() {
		Convey("A bounded window matches inclusively", func() {
			team := record.Record{"first_year": float64(1970), "last_year": float64(1982)}
			So(lifecycle.Active(team, 1970), ShouldBeTrue)
			So(lifecycle.Active(team, 1982), ShouldBeTrue)
			So(lifecycle.Active(team, 1969), ShouldBeFalse)
			So(lifecycle.Active(team, 1983), ShouldBeFalse)
		})

		Convey("A missing last year keeps the team active forever", func() {
			team := record.Record{"first_year": float64(1977)}
			So(lifecycle.Active(team, 2020), ShouldBeTrue)
			So(lifecycle.Active(team, 1976), ShouldBeFalse)
		})

		Convey("An undated team is active in every season", func() {
			So(lifecycle.Active(record.Record{"name": "Privateer"}, 1955), ShouldBeTrue)
		})
	})
}
