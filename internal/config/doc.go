// Package config loads and saves the agentdeck settings file.
//
// Everything lives in ~/.agentdeck/:
//
//	~/.agentdeck/
//	├── config.json    # settings
//	├── agentdeck.log  # log output (log_file)
//	└── history.db     # save journal (history_db)
//
// A first run writes the defaults:
//
//	{
//	  "theme": "onehalf-dark",
//	  "status_ttl": "3s",
//	  "log_level": "info",
//	  "log_format": "console",
//	  "log_file": "agentdeck.log",
//	  "launchctl": "launchctl",
//	  "probe_ttl": "5s",
//	  "watch": true,
//	  "watch_debounce": "300ms",
//	  "history_db": "history.db",
//	  "history_keep": 20
//	}
//
// String values may reference environment variables as $VAR or ${VAR}.
// Relative paths resolve against the config directory and "~/" against
// the home directory:
//
//	{
//	  "locations": {"user": "${AGENTS_DIR}"},
//	  "log_file": "~/Library/Logs/agentdeck.log"
//	}
//
// Example usage:
//
//	manager := config.NewManager(dir)
//	if err := manager.Load(); err != nil {
//		log.Fatal(err)
//	}
//	cfg := manager.Get()
//	fmt.Println("history:", manager.Resolve(cfg.HistoryDB))
package config
