package visualization

import (
	"fmt"
	"html"
	"io"

	"github.com/go-echarts/go-echarts/v2/charts"
	"github.com/go-echarts/go-echarts/v2/components"
	"github.com/go-echarts/go-echarts/v2/opts"

	"gasviz/internal/config"
	"gasviz/internal/dataprocessing"
	apperrors "gasviz/internal/errors"
	"gasviz/pkg/contracts/domain"
)

// Chart IDs are fixed so repeated renders produce identical pages
const (
	regularChartID = "gasviz_regular_prices"
	premiumChartID = "gasviz_premium_prices"
)

// lightTheme is the built-in ECharts default theme
const lightTheme = "white"

// dashboardTimeLayout is a zone-less layout the ECharts time axis parses
const dashboardTimeLayout = "2006-01-02 15:04:05"

// tooltipFormatter shows the pre-escaped hover text stored in each point name
const tooltipFormatter = "function (params) { return params.name; }"

// DashboardPoint is one scatter marker
type DashboardPoint struct {
	// Time is the query time as wall-clock text, which ECharts reads as
	// local time so the axis shows the value as written in the workbook
	Time  string
	Price float64
	Hover string
}

// DashboardSeries is one tag's scatter series in a panel
type DashboardSeries struct {
	Name   string
	Tag    string
	Color  string
	Symbol string
	Points []DashboardPoint
}

// Dashboard holds both panels of the interactive scatter page
type Dashboard struct {
	Regular []DashboardSeries
	Premium []DashboardSeries
	// Dropped counts rows whose query time did not parse
	Dropped int
}

// BuildDashboard groups the observations by tag into one series per fuel type
func BuildDashboard(observations []domain.Observation) *Dashboard {
	timed, dropped := dataprocessing.PrepareTimed(observations)
	tags := dataprocessing.UniqueTags(timed)

	d := &Dashboard{Dropped: dropped}
	for _, tag := range tags {
		d.Regular = append(d.Regular, buildSeries("Regular - "+tag, tag, "circle", timed, dataprocessing.RegularPrice))
		d.Premium = append(d.Premium, buildSeries("Premium - "+tag, tag, "diamond", timed, dataprocessing.PremiumPrice))
	}
	return d
}

func buildSeries(name, tag, symbol string, timed []domain.TimedObservation, selectPrice dataprocessing.PriceSelector) DashboardSeries {
	s := DashboardSeries{
		Name:   name,
		Tag:    tag,
		Color:  NamedColorHex(config.TagColor(tag)),
		Symbol: symbol,
	}
	for _, obs := range timed {
		price := selectPrice(obs.Observation)
		if obs.Tag != tag || !price.Valid {
			continue
		}
		s.Points = append(s.Points, DashboardPoint{
			Time:  obs.Time.Format(dashboardTimeLayout),
			Price: price.Value,
			Hover: HoverText(obs.Observation),
		})
	}
	return s
}

// HoverText is the tooltip shown for a dashboard point
func HoverText(o domain.Observation) string {
	return fmt.Sprintf("Station: %s<br>ID: %s<br>Add: %s",
		html.EscapeString(o.StationName),
		html.EscapeString(o.StationID),
		html.EscapeString(o.Address))
}

// WriteHTML renders both panels stacked on one page
func (d *Dashboard) WriteHTML(w io.Writer) error {
	page := components.NewPage()
	page.PageTitle = config.TitleDashboard
	page.AddCharts(
		d.panel(regularChartID, config.TitleDashboard, config.TitleRegularLayer, d.Regular),
		d.panel(premiumChartID, "", config.TitlePremiumLayer, d.Premium),
	)

	if err := page.Render(w); err != nil {
		return apperrors.NewRenderError("failed to render dashboard", err)
	}
	return nil
}

func (d *Dashboard) panel(chartID, title, panelTitle string, series []DashboardSeries) *charts.Scatter {
	// ECharts legends carry no caption, so it goes under the panel title
	subtitle := panelTitle + "\n" + config.TitleDashboardLegend
	if title == "" {
		title, subtitle = panelTitle, config.TitleDashboardLegend
	}

	scatter := charts.NewScatter()
	scatter.SetGlobalOptions(
		charts.WithInitializationOpts(opts.Initialization{
			PageTitle: config.TitleDashboard,
			ChartID:   chartID,
			Width:     "100%",
			Height:    fmt.Sprintf("%dpx", config.DashboardHeightPx/2),
			Theme:     lightTheme,
		}),
		charts.WithTitleOpts(opts.Title{
			Title:    title,
			Subtitle: subtitle,
		}),
		charts.WithLegendOpts(opts.Legend{
			Show:   opts.Bool(true),
			Orient: "vertical",
			Right:  "0",
			Top:    "middle",
		}),
		charts.WithTooltipOpts(opts.Tooltip{
			Show:      opts.Bool(true),
			Trigger:   "item",
			Formatter: opts.FuncOpts(tooltipFormatter),
		}),
		charts.WithXAxisOpts(opts.XAxis{
			Name: config.LabelDate,
			Type: "time",
		}),
		charts.WithYAxisOpts(opts.YAxis{
			Name: config.LabelPrice,
			Min:  "dataMin",
			Max:  "dataMax",
		}),
		charts.WithGridOpts(opts.Grid{
			Right: "180",
		}),
	)

	for _, s := range series {
		data := make([]opts.ScatterData, len(s.Points))
		for i, pt := range s.Points {
			data[i] = opts.ScatterData{
				Name:       pt.Hover,
				Value:      []interface{}{pt.Time, pt.Price},
				Symbol:     s.Symbol,
				SymbolSize: config.DashboardMarkerSize,
			}
		}
		scatter.AddSeries(s.Name, data, charts.WithItemStyleOpts(opts.ItemStyle{Color: s.Color}))
	}

	return scatter
}
