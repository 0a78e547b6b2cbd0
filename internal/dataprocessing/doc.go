// Package dataprocessing turns raw sales rows into the aggregate views shown
// on the dashboard.
//
// # Architecture
//
// The package is organized into two stages:
//
// 1. Normalizer: trims and types every raw row and derives the calendar fields
// 2. Aggregator: computes the report tables from normalized records
//
// The aggregation primitives (SumBy, CountDistinctBy, ConditionalProbability,
// NestedConditionalProbability, AveragePerDate) are generic over the grouping
// key and have no side effects.
//
// # Usage
//
//	normalizer := dataprocessing.NewNormalizer(time.Local, dataprocessing.LocaleVietnamese, logger)
//	records := normalizer.Normalize(rows)
//
//	report := dataprocessing.NewAggregator(dataprocessing.LocaleVietnamese, logger).Build(records)
//	for _, table := range report.Tables() {
//	    fmt.Println(table.Title, len(table.Rows))
//	}
//
// # Data Flow
//
//	RawRow → Normalizer → Record → Aggregator → Report → Tables
//
// # Invalid Data
//
// Rows are never dropped. An unparseable amount is NaN and is skipped by every
// sum. An unparseable timestamp leaves the calendar fields zero and the record
// is excluded from every date-dependent aggregate.
package dataprocessing
