// Package config provides configuration parsing for the proton CLI.
//
// The configuration is stored in proton.json or proton.yaml in the working
// directory. Both are optional; missing fields take their defaults.
//
// # Configuration File Structure
//
//	log:
//	  level: debug
//	  format: json
//	metrics:
//	  namespace: proton
//	  subsystem: reactive
//	inspector:
//	  addr: localhost:7070
//	  buffer: 256
//	workload:
//	  signals: 16
//	  memos: 32
//	  effects: 64
//	  updates: 10000
//	  interval: 250ms
//
// # Usage
//
//	cfg, err := config.Load(".")
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	fmt.Println("Inspector:", cfg.Inspector.Addr)
package config
