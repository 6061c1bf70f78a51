package config

import "runtime"

// Default returns the repository defaults: AAC output at the encoder's
// recommended quality, one worker per host core, orphan pruning on.
func Default() Config {
	return Config{
		Sync: Sync{
			Threads:       runtime.NumCPU(),
			DeleteOrphans: true,
		},
		Encoder: Encoder{
			Type:       "aac",
			AACQuality: "0.35",
			OGGQuality: "5",
			MP3Quality: "3",
		},
		Logging: Logging{
			Level:  "info",
			Format: "console",
		},
	}
}
