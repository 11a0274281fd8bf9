// Package config provides configuration parsing for minivue tools.
//
// The configuration is stored in minivue.yaml at the project root.
// This package handles loading, saving, and validating configuration.
//
// # Configuration File Structure
//
//	server:
//	  host: localhost
//	  port: 3000
//	  metrics_path: /metrics
//	  queue_size: 256
//	log:
//	  level: info
//	  format: text
//	snapshot:
//	  out: "-"
//	s3:
//	  region: us-east-1
//	  endpoint: http://localhost:9000
//	  path_style: true
//
// # Usage
//
//	cfg, err := config.Load(".")
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	fmt.Println("Listening on", cfg.Address())
package config
