// Package config loads nestroute project configuration.
//
// The configuration is stored in nestroute.json at the project root.
// This package handles loading, saving, and validating it.
//
// # Configuration File Structure
//
//	{
//	  "name": "shop",
//	  "manifest": "routes.yaml",
//	  "logLevel": "info",
//	  "serve": {
//	    "host": "localhost",
//	    "port": 7070
//	  },
//	  "metrics": {
//	    "enabled": true,
//	    "namespace": "shop"
//	  },
//	  "publish": {
//	    "file": "dist/routes.json",
//	    "s3": {
//	      "bucket": "shop-routes",
//	      "key": "routes.json",
//	      "region": "eu-west-1"
//	    }
//	  }
//	}
//
// The environment variables NESTROUTE_MANIFEST, NESTROUTE_LOG_LEVEL and
// NESTROUTE_PORT override the matching fields after the file is read.
//
// # Usage
//
//	cfg, err := config.Load(".")
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	fmt.Println("Manifest:", cfg.ManifestPath())
package config
