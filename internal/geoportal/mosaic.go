package geoportal

import (
	"bytes"
	"context"
	"fmt"
	"image"
	"image/color"
	"image/draw"
	"log/slog"

	// Tiles arrive as JPEG; PNG shows up in tests and some layers.
	_ "image/jpeg"
	_ "image/png"

	"github.com/Veraticus/gable/internal/common"
)

// placeholderGray fills tiles that could not be fetched so a single
// missing tile does not sink the whole map.
var placeholderGray = image.NewUniform(color.Gray{Y: 0x80})

// FetchArea downloads every tile overlapping a width by height pixel
// window centered on the EPSG:2180 point and stitches them into one
// image. The window is positioned in the zoom level's global pixel
// grid, so the returned image always has exactly the requested size.
func (c *Client) FetchArea(ctx context.Context, x, y float64, width, height, zoom int) (image.Image, error) {
	center, err := LocateTile(x, y, zoom)
	if err != nil {
		return nil, err
	}

	left := center.Col*TileSize + center.PixelX - width/2
	top := center.Row*TileSize + center.PixelY - height/2

	colStart := floorDiv(left, TileSize)
	colEnd := floorDiv(left+width-1, TileSize)
	rowStart := floorDiv(top, TileSize)
	rowEnd := floorDiv(top+height-1, TileSize)

	mosaic := image.NewRGBA(image.Rect(0, 0, (colEnd-colStart+1)*TileSize, (rowEnd-rowStart+1)*TileSize))
	fetched := 0
	for row := rowStart; row <= rowEnd; row++ {
		for col := colStart; col <= colEnd; col++ {
			select {
			case <-ctx.Done():
				return nil, ctx.Err()
			default:
			}

			cell := image.Rect(
				(col-colStart)*TileSize,
				(row-rowStart)*TileSize,
				(col-colStart+1)*TileSize,
				(row-rowStart+1)*TileSize,
			)
			tile, err := c.tileImage(ctx, zoom, row, col)
			if err != nil {
				slog.Warn("Tile unavailable, using placeholder",
					"zoom", zoom, "row", row, "col", col, "error", err)
				draw.Draw(mosaic, cell, placeholderGray, image.Point{}, draw.Src)
				continue
			}
			draw.Draw(mosaic, cell, tile, tile.Bounds().Min, draw.Src)
			fetched++
		}
	}
	if fetched == 0 {
		return nil, fmt.Errorf("%w: no tiles could be fetched", common.ErrMapUnavailable)
	}

	out := image.NewRGBA(image.Rect(0, 0, width, height))
	cropMin := image.Pt(left-colStart*TileSize, top-rowStart*TileSize)
	draw.Draw(out, out.Bounds(), mosaic, cropMin, draw.Src)
	return out, nil
}

func (c *Client) tileImage(ctx context.Context, zoom, row, col int) (image.Image, error) {
	data, err := c.GetTile(ctx, zoom, row, col)
	if err != nil {
		return nil, err
	}
	img, _, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("failed to decode tile %d/%d/%d: %w", zoom, row, col, err)
	}
	return img, nil
}
