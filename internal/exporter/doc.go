// Package exporter writes a built dashboard out of process memory.
//
// Tables from a dataprocessing.Report are written as CSV files (CSVWriter,
// optionally BOM-prefixed so Excel detects UTF-8) or as a single XLSX
// workbook with one sheet per table (BuildWorkbook, SaveWorkbook).
//
// Chart targets from a chart.Board are rendered either as standalone SVG
// documents (SVGRenderer, drawn from the scene geometry) or as one
// interactive HTML page (HTMLRenderer, backed by go-echarts).
//
// Example usage:
//
//	writer := exporter.NewCSVWriter("out", logger)
//	err := writer.WriteTables(report.Tables(), true)
//
//	svg := exporter.NewSVGRenderer(logger)
//	err = svg.WriteTargets(ctx, "out/charts", board.All())
package exporter
