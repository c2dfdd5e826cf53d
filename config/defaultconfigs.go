package config

// DefaultConfig is the base every loaded config starts from.
var DefaultConfig Config

// DefaultTheme draws letter pieces on a grey board.
var DefaultTheme Theme

func init() {
	DefaultTheme = Theme{
		UseEmoji: false,
		Colors: ConfigColors{
			BoardLight: 240,
			BoardDark:  236,
			Red:        196,
			Blue:       33,
			CursorBG:   109,
			SelectedBG: 208,
			LegalBG:    136,
			Label:      245,
		},
		Symbols: ConfigSymbols{
			Samurai: 'S',
			Ronin:   'R',
			Daimyo:  'D',
			Ninja:   'N',
		},
	}

	DefaultConfig = Config{
		Theme: DefaultTheme,
		Log: LogConfig{
			Level: "info",
		},
		Telemetry: TelemetryConfig{
			SampleRatio: 1,
		},
	}
}
