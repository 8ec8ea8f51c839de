package reference

import (
	"errors"
	"testing"

	model "github.com/okian/debtfx/internal/domain/model"
	. "github.com/smartystreets/goconvey/convey"
)

func sampleSheet() model.Sheet {
	return model.Sheet{
		Name:   "codes",
		Header: []string{"Code", "Country"},
		Rows: [][]string{
			{"USA", "United States of America"},
			{"DEU", "Germany, Federal Republic of"},
			{"BRA", "Brazil "},
			{"USA", "United States"},
		},
	}
}

func TestBuild(t *testing.T) {
	Convey("Given a reference sheet", t, func() {
		l, err := Build(sampleSheet())
		So(err, ShouldBeNil)

		Convey("Then names are lowercased and trimmed", func() {
			name, err := l.Name("BRA")
			So(err, ShouldBeNil)
			So(name, ShouldEqual, "brazil")
		})

		Convey("Then a repeated code keeps its first position and its last name", func() {
			So(l.Codes()[0], ShouldEqual, "USA")
			name, _ := l.Name("USA")
			So(name, ShouldEqual, "united states")
		})

		Convey("Then DEU is forced to germany", func() {
			name, _ := l.Name(model.DEU)
			So(name, ShouldEqual, GermanyName)
			code, err := l.Code("Germany")
			So(err, ShouldBeNil)
			So(code, ShouldEqual, model.DEU)
		})

		Convey("Then the replaced German name no longer resolves", func() {
			_, err := l.Code("germany, federal republic of")
			So(errors.Is(err, ErrUnknownName), ShouldBeTrue)
		})

		Convey("Then EURO and EA19 both map to euro zone", func() {
			a, _ := l.Name(model.EURO)
			b, _ := l.Name(model.EA19)
			So(a, ShouldEqual, EuroZoneName)
			So(b, ShouldEqual, EuroZoneName)
		})

		Convey("Then the reverse euro zone entry keeps the last override", func() {
			code, err := l.Code("  Euro Zone ")
			So(err, ShouldBeNil)
			So(code, ShouldEqual, model.EA19)
		})

		Convey("Then override-only codes are appended in order", func() {
			codes := l.Codes()
			So(codes[len(codes)-2:], ShouldResemble, []string{model.EURO, model.EA19})
			So(l.Len(), ShouldEqual, 5)
		})

		Convey("Then unknown codes fail", func() {
			_, err := l.Name("XXX")
			So(errors.Is(err, ErrUnknownCode), ShouldBeTrue)
		})
	})
}

func TestBuildOverrideOrder(t *testing.T) {
	Convey("Given EA19 already present in the source table", t, func() {
		sheet := sampleSheet()
		sheet.Rows = append([][]string{{"EA19", "Euro area (19 countries)"}}, sheet.Rows...)
		l, err := Build(sheet)
		So(err, ShouldBeNil)

		Convey("Then EURO is inserted after EA19 and wins the reverse entry", func() {
			code, _ := l.Code(EuroZoneName)
			So(code, ShouldEqual, model.EURO)
		})
	})
}

func TestBuildErrors(t *testing.T) {
	Convey("Given a sheet with a single column", t, func() {
		_, err := Build(model.Sheet{Header: []string{"Code"}})

		Convey("Then it fails with ErrTooFewColumns", func() {
			So(errors.Is(err, ErrTooFewColumns), ShouldBeTrue)
		})
	})

	Convey("Given a row without a name", t, func() {
		_, err := Build(model.Sheet{
			Header: []string{"Code", "Country"},
			Rows:   [][]string{{"USA"}},
		})

		Convey("Then it fails with ErrMalformedRow", func() {
			So(errors.Is(err, ErrMalformedRow), ShouldBeTrue)
		})
	})
}
