// Package config handles loading and validating studio configuration.
//
// This package manages:
//   - Loading configuration from YAML files
//   - Overriding with GASTUDIO_* environment variables
//   - Validation of required fields
//   - Default value handling
//
// The studio runs without a config file: Load("") yields the built-in
// defaults plus environment overrides. The defaults reproduce the shipped
// naming convention (MaiLian DALI gateway, device #9).
//
// Security Considerations:
//   - Sensitive values (MQTT password, InfluxDB token) should be set via
//     environment variables
//   - The config file should have restricted permissions (0600)
//
// Usage:
//
//	cfg, err := config.Load("configs/config.yaml")
//	if err != nil {
//	    log.Fatal(err)
//	}
//	conv, err := cfg.Convention.Build()
package config
