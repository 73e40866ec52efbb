// Package config defines the configuration of a flightsurety engine, with
// default values and utilities to compute default directories and loggers.
package config
