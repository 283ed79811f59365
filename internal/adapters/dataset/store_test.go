package dataset_test

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/parcferme/gridbook/internal/adapters/dataset"
	"github.com/parcferme/gridbook/internal/domain/snapshot"
	. "github.com/smartystreets/goconvey/convey"
)

func writeFile(t *testing.T, dir, name, content string) {
	t.Helper()
	if err := os.WriteFile(filepath.Join(dir, name), []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
}

func coreFiles(t *testing.T, dir string) {
	writeFile(t, dir, "drivers.json", `[{"driver_id":"D1","driver_name":"Gilles V."}]`)
	writeFile(t, dir, "teams.json", `[{"team_id":"T1","name":"Team One"}]`)
	writeFile(t, dir, "calendar.json", `[{"date":"1980-05-18","gp":"Monaco"}]`)
}

func TestLoad(t *testing.T) {
	Convey("Given a data directory with the core datasets", t, func() {
		dir := t.TempDir()
		coreFiles(t, dir)
		store := dataset.New(dataset.WithDir(dir))

		Convey("When loading", func() {
			err := store.Load(context.Background())

			Convey("Then core collections hold their records", func() {
				So(err, ShouldBeNil)
				So(store.Loaded(), ShouldBeTrue)
				So(len(store.Collection(snapshot.ColDrivers)), ShouldEqual, 1)
				So(store.Collection(snapshot.ColDrivers)[0]["driver_id"], ShouldEqual, "D1")
			})

			Convey("Then missing optional datasets load empty", func() {
				So(err, ShouldBeNil)
				So(store.Collection(snapshot.ColSponsorContracts), ShouldBeEmpty)
				So(store.Counts()[snapshot.ColSponsorContracts], ShouldEqual, 0)
			})
		})

		Convey("When an optional dataset file is present", func() {
			writeFile(t, dir, "contracts.json", `[{"start_year":1978,"end_year":1982,"team_id":"T1"}]`)
			So(store.Load(context.Background()), ShouldBeNil)
			So(len(store.Collection(snapshot.ColContracts)), ShouldEqual, 1)
		})

		Convey("When an object-shaped dataset file is present", func() {
			writeFile(t, dir, "accident_model.json", `{"states":[{"id":"STORM"}]}`)
			So(store.Load(context.Background()), ShouldBeNil)
			col := store.Collection(snapshot.ColAccidentModel)
			So(len(col), ShouldEqual, 1)
			_, ok := col[0]["states"]
			So(ok, ShouldBeTrue)
		})
	})

	Convey("Given a directory missing a core dataset", t, func() {
		dir := t.TempDir()
		writeFile(t, dir, "drivers.json", `[]`)
		writeFile(t, dir, "teams.json", `[]`)
		store := dataset.New(dataset.WithDir(dir))

		Convey("Then loading fails with the sentinel", func() {
			err := store.Load(context.Background())
			So(err, ShouldNotBeNil)
			So(err.Error(), ShouldContainSubstring, "calendar")
		})
	})

	Convey("Given a dataset file with broken JSON", t, func() {
		dir := t.TempDir()
		coreFiles(t, dir)
		writeFile(t, dir, "rules.json", `{not json`)
		store := dataset.New(dataset.WithDir(dir))

		Convey("Then loading fails even though rules is optional", func() {
			So(store.Load(context.Background()), ShouldNotBeNil)
		})
	})

	Convey("Given an unloaded store", t, func() {
		store := dataset.New()

		Convey("Then collections read as nil and Loaded is false", func() {
			So(store.Loaded(), ShouldBeFalse)
			So(store.Collection(snapshot.ColDrivers), ShouldBeNil)
		})
	})
}
