package config

func createDefaultConfig() *Config {
	return &Config{
		Logger: Logger{
			Enabled: true,
			Level:   "info",
			Format:  "text",
		},
		Scan: Scan{
			Delay:      2.0,
			Extensions: []string{"flac", "mp3", "m4a", "mp4"},
			Watch:      false,
		},
		Lyrics: Lyrics{
			Providers: map[string]Provider{
				"lrclib":      {Enabled: true},
				"chartlyrics": {Enabled: true},
				"lyricsovh":   {Enabled: true},
				"allorigins":  {Enabled: true},
			},
		},
		Network: Network{
			UserAgent:      "Mozilla/5.0 (Macintosh; Intel Mac OS X 10_15_7) AppleWebKit/537.36",
			TimeoutSeconds: 10,
		},
	}
}
