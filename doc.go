// Package agritwin projects an agricultural prosperity indicator from a
// base year to a target year under configurable intervention levers,
// using Monte Carlo simulation over a calibrated drift and volatility
// model. The cmd/agritwin binary exposes the projection as a CLI and an
// HTTP service; cmd/calibrate recovers the structural constants from
// reference scenarios.
package agritwin
