// Package viz renders simulation output for the terminal.
//
//   - [Summary]: the dashboard panel of headline numbers for one month
//   - [MetricsTable], [SensitivityTable], [CompareTable], [RunsTable]: tables
//   - [ForecastCharts]: line charts for the forecast tabs
//
// Large quantities are shortened with SI-style suffixes (K, M, B, T).
package viz
