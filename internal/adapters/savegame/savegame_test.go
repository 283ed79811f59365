package savegame_test

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/parcferme/gridbook/internal/adapters/savegame"
	"github.com/parcferme/gridbook/internal/domain/snapshot"
	"github.com/parcferme/gridbook/pkg/metrics"
	. "github.com/smartystreets/goconvey/convey"
)

func TestStore(t *testing.T) {
	Convey("Given a save store on a temp directory", t, func() {
		ctx := context.Background()
		store := savegame.New(savegame.WithDir(t.TempDir()))

		save := &savegame.Save{
			Name:     "Season opener",
			Snapshot: &snapshot.Snapshot{Year: 1980},
			State: map[string]any{
				"current_date": "1980-01-01",
				"round":        float64(0),
			},
		}

		Convey("When writing a new save", func() {
			id, err := store.Write(ctx, save)

			Convey("Then a slot id is assigned and timestamps set", func() {
				So(err, ShouldBeNil)
				So(id, ShouldNotBeEmpty)
				So(save.CreatedAt.IsZero(), ShouldBeFalse)
				So(save.Version, ShouldEqual, savegame.FormatVersion)
			})

			Convey("Then reading it back returns the payload verbatim", func() {
				So(err, ShouldBeNil)
				got, err := store.Read(ctx, id)
				So(err, ShouldBeNil)
				So(got.Name, ShouldEqual, "Season opener")
				So(got.Snapshot.Year, ShouldEqual, 1980)
				So(got.State["current_date"], ShouldEqual, "1980-01-01")
			})

			Convey("Then the slot appears in the listing with its year", func() {
				So(err, ShouldBeNil)
				metas, err := store.List(ctx)
				So(err, ShouldBeNil)
				So(len(metas), ShouldEqual, 1)
				So(metas[0].ID, ShouldEqual, id)
				So(metas[0].Year, ShouldEqual, 1980)
			})

			Convey("Then rewriting the slot keeps its id and creation time", func() {
				So(err, ShouldBeNil)
				created := save.CreatedAt
				again, err := store.Write(ctx, save)
				So(err, ShouldBeNil)
				So(again, ShouldEqual, id)
				So(save.CreatedAt, ShouldEqual, created)
			})

			Convey("Then deleting removes it", func() {
				So(err, ShouldBeNil)
				So(store.Delete(ctx, id), ShouldBeNil)
				_, err := store.Read(ctx, id)
				So(err, ShouldEqual, savegame.ErrNotFound)
			})
		})

		Convey("When reading an unknown slot", func() {
			_, err := store.Read(ctx, "no-such-slot")
			So(err, ShouldEqual, savegame.ErrNotFound)
		})

		Convey("When using a path-escaping id", func() {
			_, err := store.Read(ctx, "../etc/passwd")
			So(err, ShouldEqual, savegame.ErrNotFound)
			So(store.Delete(ctx, `..\windows`), ShouldEqual, savegame.ErrNotFound)
		})

		Convey("When writing a nil save", func() {
			_, err := store.Write(ctx, nil)
			So(err, ShouldEqual, savegame.ErrInvalidSave)
		})

		Convey("When listing an empty directory", func() {
			metas, err := savegame.New(savegame.WithDir(t.TempDir())).List(ctx)
			So(err, ShouldBeNil)
			So(metas, ShouldBeEmpty)
		})
	})
}

// loadOps sums the load-operation counter across outcomes.
func loadOps(t *testing.T) float64 {
	t.Helper()
	families, err := metrics.GetRegistry().Gather()
	if err != nil {
		t.Fatal(err)
	}
	var total float64
	for _, f := range families {
		if f.GetName() != "gridbook_season_save_operations_total" {
			continue
		}
		for _, m := range f.GetMetric() {
			for _, l := range m.GetLabel() {
				if l.GetName() == "operation" && l.GetValue() == "load" {
					total += m.GetCounter().GetValue()
				}
			}
		}
	}
	return total
}

func TestListMetrics(t *testing.T) {
	Convey("Given a directory with healthy and corrupt slots", t, func() {
		ctx := context.Background()
		dir := t.TempDir()
		store := savegame.New(savegame.WithDir(dir))

		_, err := store.Write(ctx, &savegame.Save{Name: "healthy"})
		So(err, ShouldBeNil)
		So(os.WriteFile(filepath.Join(dir, "corrupt.json"), []byte("{"), 0o644), ShouldBeNil)

		Convey("When listing the slots", func() {
			before := loadOps(t)
			metas, err := store.List(ctx)

			Convey("Then the load counter is untouched", func() {
				So(err, ShouldBeNil)
				So(len(metas), ShouldEqual, 1)
				So(loadOps(t), ShouldEqual, before)
			})
		})

		Convey("When reading a slot directly", func() {
			before := loadOps(t)
			metas, err := store.List(ctx)
			So(err, ShouldBeNil)
			_, err = store.Read(ctx, metas[0].ID)

			Convey("Then exactly the one load is counted", func() {
				So(err, ShouldBeNil)
				So(loadOps(t), ShouldEqual, before+1)
			})
		})
	})
}
