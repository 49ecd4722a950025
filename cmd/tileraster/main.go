package main

import (
	"fmt"
	"log"
	"os"
	"strconv"
	"strings"

	"github.com/carlmjohnson/versioninfo"

	tileraster "github.com/flywave/go-tileraster"

	"github.com/iancoleman/strcase"
	"github.com/urfave/cli/v2"
)

const SOURCE string = `sourceGpkg`
const TABLE string = `table`
const BBOX string = `bbox`
const SRS string = `srs`
const WIDTH string = `width`
const HEIGHT string = `height`
const FORMAT string = `format`
const OUTPUT string = `output`
const PASSTHROUGH string = `passthrough`

func main() {
	app := cli.NewApp()
	app.Name = "tileraster"
	app.Usage = "Render one raster image from a GeoPackage tile pyramid"
	app.Version = versioninfo.Short()

	app.Flags = []cli.Flag{
		&cli.StringFlag{
			Name:     SOURCE,
			Aliases:  []string{"s"},
			Usage:    "Source GPKG",
			Required: true,
			EnvVars:  []string{strcase.ToScreamingSnake(SOURCE)},
		},
		&cli.StringFlag{
			Name:     TABLE,
			Aliases:  []string{"t"},
			Usage:    "Tile table within the source GPKG",
			Required: true,
			EnvVars:  []string{strcase.ToScreamingSnake(TABLE)},
		},
		&cli.StringFlag{
			Name:     BBOX,
			Aliases:  []string{"b"},
			Usage:    "Requested extent as minx,miny,maxx,maxy",
			Required: true,
			EnvVars:  []string{strcase.ToScreamingSnake(BBOX)},
		},
		&cli.IntFlag{
			Name:     SRS,
			Usage:    "EPSG id of the requested extent. 0 means the pyramid's native system",
			Required: false,
			EnvVars:  []string{strcase.ToScreamingSnake(SRS)},
		},
		&cli.IntFlag{
			Name:     WIDTH,
			Usage:    "Output width in pixels",
			Value:    256,
			Required: false,
			EnvVars:  []string{strcase.ToScreamingSnake(WIDTH)},
		},
		&cli.IntFlag{
			Name:     HEIGHT,
			Usage:    "Output height in pixels",
			Value:    256,
			Required: false,
			EnvVars:  []string{strcase.ToScreamingSnake(HEIGHT)},
		},
		&cli.StringFlag{
			Name:     FORMAT,
			Aliases:  []string{"f"},
			Usage:    "Output format, png or jpg",
			Value:    "png",
			Required: false,
			EnvVars:  []string{strcase.ToScreamingSnake(FORMAT)},
		},
		&cli.StringFlag{
			Name:     OUTPUT,
			Aliases:  []string{"o"},
			Usage:    "Output file path",
			Required: true,
			EnvVars:  []string{strcase.ToScreamingSnake(OUTPUT)},
		},
		&cli.BoolFlag{
			Name:     PASSTHROUGH,
			Aliases:  []string{"p"},
			Usage:    "Return the stored tile bytes untouched when a single tile covers the request exactly",
			Required: false,
			EnvVars:  []string{strcase.ToScreamingSnake(PASSTHROUGH)},
		},
	}

	app.Action = func(c *cli.Context) error {
		box, err := parseBoundingBox(c.String(BBOX))
		if err != nil {
			return err
		}
		format, err := tileraster.ParseTileFormat(c.String(FORMAT))
		if err != nil {
			return err
		}

		_, err = os.Stat(c.String(SOURCE))
		if os.IsNotExist(err) {
			log.Fatalf("error opening source GeoPackage: %s", err)
		}

		gpkg := tileraster.New(c.String(SOURCE))
		if err := gpkg.Init(); err != nil {
			log.Fatalf("error opening source GeoPackage: %s", err)
		}
		defer gpkg.Close()

		store, err := gpkg.OpenTileStore(c.String(TABLE))
		if err != nil {
			return err
		}

		levels, _, err := gpkg.GetZoomLevelsAndResolutions(c.String(TABLE))
		if err != nil {
			return err
		}
		log.Printf("  %s: %d zoom levels, srs %d", store.Table(), len(levels), store.SrsID())

		retriever := tileraster.NewTileRetriever(store)
		img, err := retriever.Retrieve(tileraster.ImageRequest{
			BoundingBox: box,
			SrsID:       c.Int(SRS),
			Width:       c.Int(WIDTH),
			Height:      c.Int(HEIGHT),
			Format:      format,
			Passthrough: c.Bool(PASSTHROUGH),
		})
		if err != nil {
			return err
		}
		if img == nil {
			log.Println("no stored tiles match the request")
			return nil
		}

		if err := os.WriteFile(c.String(OUTPUT), img.Data, 0644); err != nil {
			return err
		}
		log.Printf("wrote %s: %dx%d %s from %d tiles", c.String(OUTPUT), img.Width, img.Height, img.Format, img.TileCount)
		return nil
	}

	err := app.Run(os.Args)
	if err != nil {
		log.Fatal(err)
	}
}

func parseBoundingBox(s string) (tileraster.BoundingBox, error) {
	parts := strings.Split(s, ",")
	if len(parts) != 4 {
		return tileraster.BoundingBox{}, fmt.Errorf("bbox wants minx,miny,maxx,maxy, got %q", s)
	}
	var vals [4]float64
	for i, part := range parts {
		v, err := strconv.ParseFloat(strings.TrimSpace(part), 64)
		if err != nil {
			return tileraster.BoundingBox{}, err
		}
		vals[i] = v
	}
	return tileraster.NewBoundingBox(vals[0], vals[1], vals[2], vals[3]), nil
}
