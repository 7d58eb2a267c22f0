// Package config provides configuration parsing for the Electa server.
//
// The configuration is stored in electa.json next to the binary's working
// directory. Every field can be overridden by an ELECTA_* environment
// variable, and the cobra flags of cmd/electa override both.
//
// # Configuration File Structure
//
//	{
//	  "addr": ":8080",
//	  "storage": {
//	    "driver": "bolt",
//	    "path": "electa.db"
//	  },
//	  "data": {
//	    "source": "file",
//	    "dir": "data",
//	    "cacheSize": 16,
//	    "cacheTTL": "1m",
//	    "fetchTimeout": "5s"
//	  },
//	  "log": {
//	    "level": "info",
//	    "format": "json"
//	  },
//	  "cart": {
//	    "maxQuantity": 0
//	  },
//	  "ads": {
//	    "adsenseClient": "ca-pub-8906392448287945"
//	  },
//	  "contribute": {
//	    "recipient": "electa.kyv@gmail.com"
//	  }
//	}
//
// # Usage
//
//	cfg, err := config.Load(".")
//	if err != nil {
//	    log.Fatal(err)
//	}
//	if err := cfg.Validate(); err != nil {
//	    log.Fatal(err)
//	}
//
//	fmt.Println("Listening on", cfg.Addr)
package config
