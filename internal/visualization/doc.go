// Package visualization renders the three gas price artifacts: a static
// time-series PNG, a Leaflet heat map and an ECharts scatter dashboard.
//
// Each artifact has a Build step that derives chart data from the loaded
// observations and a Write step that encodes it. Renderer ties the two
// together with the output writer, metrics and logging.
//
// Save failures are logged and swallowed so the remaining artifacts still
// render. The one error a Renderer returns is a malformed Location cell
// during the heat-map aggregation.
package visualization
