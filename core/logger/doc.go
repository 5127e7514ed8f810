// Package logger is a standardized event logging framework for simulator
// sessions. Events are written as newline delimited JSON objects so they can
// be tailed, shipped or summarized with Report.
package logger
