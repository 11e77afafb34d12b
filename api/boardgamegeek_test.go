package api

import (
	"context"
	"net/http"
	"testing"

	"github.com/mediadex-cli/mediadex/media"
	. "github.com/smartystreets/goconvey/convey"
)

func TestBoardGameGeek(t *testing.T) {
	Convey("Given the BoardGameGeek adapter", t, func() {
		Convey("When searching", func() {
			bgg := NewBoardGameGeek(mockClient(func(req *http.Request) (*http.Response, error) {
				So(req.URL.Query().Get("query"), ShouldEqual, "catan")
				So(req.URL.Query().Get("type"), ShouldEqual, "boardgame")
				return respond(http.StatusOK, `<?xml version="1.0" encoding="utf-8"?>
<items total="2">
	<item type="boardgame" id="13">
		<name type="primary" value="CATAN"/>
		<yearpublished value="1995"/>
	</item>
	<item type="boardgame" id="926">
		<name type="primary" value="CATAN: Seafarers"/>
		<yearpublished value="1997"/>
	</item>
</items>`), nil
			}))

			records, err := bgg.SearchByTitle(context.Background(), "catan")

			Convey("XML items become board game stubs", func() {
				So(err, ShouldBeNil)
				So(records, ShouldHaveLength, 2)
				So(records[0].Type(), ShouldEqual, media.TypeBoardGame)
				So(records[0].Base().Title, ShouldEqual, "CATAN")
				So(records[0].Base().Year, ShouldEqual, "1995")
				So(records[0].Base().ID, ShouldEqual, "13")
				So(records[0].Base().DataSource, ShouldEqual, "BoardGameGeekAPI")
			})
		})

		Convey("When fetching details with stats", func() {
			bgg := NewBoardGameGeek(mockClient(func(req *http.Request) (*http.Response, error) {
				So(req.URL.Query().Get("id"), ShouldEqual, "13")
				So(req.URL.Query().Get("stats"), ShouldEqual, "1")
				return respond(http.StatusOK, `<?xml version="1.0" encoding="utf-8"?>
<items>
	<item type="boardgame" id="13">
		<name type="primary" sortindex="1" value="CATAN"/>
		<name type="alternate" sortindex="1" value="The Settlers of Catan"/>
		<description>Trade, build and settle the island of Catan.</description>
		<image>https://example.com/catan.jpg</image>
		<yearpublished value="1995"/>
		<minplayers value="3"/>
		<maxplayers value="4"/>
		<playingtime value="120"/>
		<link type="boardgamecategory" id="1026" value="Negotiation"/>
		<link type="boardgamepublisher" id="37" value="KOSMOS"/>
		<link type="boardgamedesigner" id="11" value="Klaus Teuber"/>
		<statistics page="1">
			<ratings>
				<average value="7.1"/>
				<averageweight value="2.29"/>
			</ratings>
		</statistics>
	</item>
</items>`), nil
			}))

			record, err := bgg.GetByID(context.Background(), "13")

			Convey("The record carries stats and categorized links", func() {
				So(err, ShouldBeNil)

				game, ok := record.(*media.BoardGame)
				So(ok, ShouldBeTrue)
				So(game.Title, ShouldEqual, "CATAN")
				So(game.Genres, ShouldResemble, []string{"Negotiation"})
				So(game.Publishers, ShouldResemble, []string{"KOSMOS"})
				So(game.OnlineRating, ShouldEqual, 7.1)
				So(game.ComplexityRating, ShouldEqual, 2.29)
				So(game.MinPlayers, ShouldEqual, 3)
				So(game.MaxPlayers, ShouldEqual, 4)
				So(game.Playtime, ShouldEqual, "120 min")
			})
		})

		Convey("When the id is unknown", func() {
			bgg := NewBoardGameGeek(mockClient(func(req *http.Request) (*http.Response, error) {
				return respond(http.StatusOK, `<?xml version="1.0" encoding="utf-8"?><items/>`), nil
			}))

			_, err := bgg.GetByID(context.Background(), "0")

			So(IsNotFound(err), ShouldBeTrue)
		})
	})
}
