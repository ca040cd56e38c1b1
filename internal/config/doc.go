// Package config provides configuration management for the crosspost CLI.
//
// Configuration is resolved by viper from, in increasing precedence:
// built-in defaults, a crosspost.yaml file (searched in the working
// directory and then $XDG_CONFIG_HOME/crosspost), and CROSSPOST_*
// environment variables. Call [LoadEnv] before [Load] to merge a local
// .env file into the environment.
//
// # Configuration File
//
//	posts_dir: content/posts
//	default_platforms: [devto, hashnode]
//	platforms:
//	  devto:
//	    enabled: true
//	  hashnode:
//	    publication_id: 64f0c0ffee
//	ledger:
//	  enabled: true
//	  path: .crosspost/ledger.yaml
//	notify:
//	  urls: ["slack://hook/T000/B000/XXXX"]
//	http:
//	  timeout: 30s
//
// Credentials should come from the environment rather than the file:
//
//	CROSSPOST_DEVTO_API_KEY
//	CROSSPOST_HASHNODE_TOKEN
//	CROSSPOST_HASHNODE_PUBLICATION_ID
//
// Any other key maps to an environment variable by upper-casing it and
// replacing dots with underscores, e.g. CROSSPOST_LEDGER_ENABLED.
//
// # Validation
//
// [Load] validates the result. [Validate] can be called directly and
// returns every problem found:
//
//	for _, err := range config.Validate(cfg) {
//		fmt.Println(err)
//	}
package config
