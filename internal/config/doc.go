// Package config provides configuration management for the defense report.
//
// # Configuration Sources
//
// Configuration is loaded from the following sources in order of precedence:
//
//  1. Environment variables (highest priority)
//  2. A YAML configuration file
//  3. Default values (lowest priority)
//
// # Environment Variables
//
// All environment variables follow the pattern DEFENSE_<SECTION>_<KEY>:
//
//	DEFENSE_LOGGING_LEVEL=debug
//	DEFENSE_PATHS_DATA_DIR=/srv/nba/2019
//	DEFENSE_ANALYSIS_PLAYERS="Jrue Holiday,Kawhi Leonard"
//	DEFENSE_TELEMETRY_TRACE_EXPORTER=stdout
//
// # Configuration File
//
// When no path is given, Load looks for defense.yaml and then
// configs/defense.yaml in the working directory:
//
//	logging:
//	  level: info
//	paths:
//	  data_dir: data
//	  output_dir: output
//	analysis:
//	  radar_min: 0.01
//	  radar_max: 1.5
//	  subdivisions: 6
//
// Unknown keys are rejected. After loading, every section is validated with
// go-playground/validator and failures are reported as a CONFIG error that
// lists each offending field.
//
// # Paths
//
// GetPaths resolves the configured directories against the working
// directory and derives the well-known report files (merged.csv,
// averages.csv, defense.xlsx).
package config
