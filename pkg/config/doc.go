// Package config manages configuration parsing and validation for codemodrc.
//
// 	            +-------------+
// 	            |   Config    |
// 	            | (Settings)  |
// 	            +------+------+
// 	                   |
// 	      +-----------+-----------+-----------+
// 	      |                       |           |
// 	+-----+-----+           +----+----+  +---+----+
// 	|   YAML    |           |   HCL   |  |  JSON  |
// 	| Parser    |           | Parser  |  | Parser |
// 	+-----------+           +---------+  +--------+
//
// 🎯 Purpose:
// - Loads the migration, replace, and generate settings
// - Picks a parser from the file extension
// - Fills in discovery and concurrency defaults
// - Validates keyword rules before any file is touched
//
// 🔄 Flow:
// 1. Reads configuration from file (or uses defaults when the default file is absent)
// 2. Parses format-specific syntax, rejecting unknown fields
// 3. Resolves the discovery root against the config file's directory
// 4. Validates and fills defaults
//
// 🤝 Interfaces:
// - Parser: Format-specific parsing, registered with Register
//
// 🔍 Example:
//
// 	cfg, err := config.LoadOrDefault(ctx, ".codemodrc.yaml")
// 	if err != nil {
// 		return err
// 	}
//
// 	m, err := collapsible.New(cfg.MigrateOptions())
//
// A YAML file:
//
// 	root: src
// 	exclude: ["**/node_modules/**", "**/*.test.tsx"]
// 	concurrency: 4
// 	keyword_rules:
// 	  - keywords: [overview, what is]
// 	    icon: book
// 	    theme: informational
// 	fallback:
// 	  icon: settings
//
// The same rules in HCL:
//
// 	root = "src"
// 	keyword_rule {
// 	  keywords = ["overview", "what is"]
// 	  icon     = "book"
// 	  theme    = "informational"
// 	}
package config
