package cfg

type Cfg struct {
	// Cache configuration
	CacheDir    string
	SourcesFile string

	// Application configuration
	Port            string
	WorkerCount     int
	RefreshInterval int
	FetchTimeout    int

	// Application metadata
	UserAgent string
	Debug     bool
	Version   string
}
