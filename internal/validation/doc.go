// Package validation checks the input workbook and the output directories
// before the pipeline reads or writes anything.
package validation
