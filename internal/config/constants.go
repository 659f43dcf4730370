package config

const (
	// DefaultDatabasePath is the default path for the main application database
	DefaultDatabasePath = "./fitcomp.db"

	// DefaultWgerBaseURL is the public wger exercise catalog API
	DefaultWgerBaseURL = "https://wger.de/api/v2"

	// DefaultOverpassURL is the public Overpass interpreter endpoint
	DefaultOverpassURL = "https://overpass-api.de/api/interpreter"
)
