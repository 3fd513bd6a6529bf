package visualization

import (
	"bytes"
	"encoding/base64"
	"fmt"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/palette"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"

	apperrors "gasviz/internal/errors"
)

const (
	legendWidth  = 3 * vg.Inch
	legendHeight = 0.9 * vg.Inch
)

// LegendPNG draws a horizontal color bar for cm with caption as its title
func LegendPNG(cm palette.ColorMap, caption string) ([]byte, error) {
	p := plot.New()
	p.Title.Text = caption
	p.HideY()
	p.X.Padding = 0
	p.Add(&plotter.ColorBar{ColorMap: cm})

	wt, err := p.WriterTo(legendWidth, legendHeight, "png")
	if err != nil {
		return nil, fmt.Errorf("failed to create legend canvas: %w", err)
	}

	var buf bytes.Buffer
	if _, err := wt.WriteTo(&buf); err != nil {
		return nil, apperrors.NewRenderError("failed to encode legend", err)
	}
	return buf.Bytes(), nil
}

// LegendDataURI returns the legend as a data: URI for inline images
func LegendDataURI(cm palette.ColorMap, caption string) (string, error) {
	png, err := LegendPNG(cm, caption)
	if err != nil {
		return "", err
	}
	return "data:image/png;base64," + base64.StdEncoding.EncodeToString(png), nil
}
