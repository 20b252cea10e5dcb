// Package config provides configuration parsing for seqtree projects.
//
// The configuration is stored in seqtree.json at the project root.
// This package handles loading, saving, and validating configuration.
//
// # Configuration File Structure
//
//	{
//	  "builder": {
//	    "prettyPrint": true,
//	    "baseIndent": 0,
//	    "maxPerLine": 1000,
//	    "indentUnit": "\t",
//	    "lineMode": "counter"
//	  },
//	  "render": {
//	    "pretty": false,
//	    "indent": "  "
//	  },
//	  "preview": {
//	    "host": "localhost",
//	    "port": 4000,
//	    "scriptsDir": "scripts",
//	    "watch": true,
//	    "pollInterval": "500ms"
//	  },
//	  "publish": {
//	    "bucket": "my-site",
//	    "prefix": "previews/",
//	    "region": "us-east-1"
//	  },
//	  "logLevel": "info"
//	}
//
// # Usage
//
//	cfg, err := config.Load(".")
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	opts, err := cfg.BuilderOptions()
package config
