// Package dataprocessing turns the cleaned gas price workbook into the data
// each renderer draws.
//
// # Components
//
//  1. Loader: reads the first sheet of the workbook into domain.Observation rows
//  2. Time preparation: parses Query Time, derives the calendar date and
//     normalizes the Time Tag ("Morning " becomes "morning")
//  3. Pivots: date × tag mean prices for the time-series chart
//  4. Station aggregation: location decoding, price clipping and per-station
//     means for the heat map
//
// # Data Flow
//
//	xlsx → LoadObservations → []Observation ─┬→ PrepareTimed → PivotMean
//	                                          └→ AggregateStations
//
// Every function works on its own copy of the rows; nothing here mutates the
// loaded observations.
//
// # Error Handling
//
// A missing or unreadable workbook, a missing column and a malformed Location
// cell are returned as *errors.AppError values. Unparseable timestamps and
// missing prices are not errors: the affected rows are dropped and counted.
package dataprocessing
