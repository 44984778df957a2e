package sierracompiler

// Config holds compiler arguments. The zero value is not valid; use
// DefaultConfig.
type Config struct {
	AddPythonicHints    bool
	MaxBytecodeSize     int
	MaxRawClassSize     int
	AllowedLibfuncsList string
	SupportedBuiltins   []string
}

const (
	defaultMaxBytecodeSize = 81_920
	// defaultMaxRawClassSize is the default raw-class serialized size cap,
	// approximately 3.9 MiB.
	defaultMaxRawClassSize = 4_089_446
)

// DefaultConfig returns the default compiler configuration.
func DefaultConfig() Config {
	return Config{
		AddPythonicHints:    true,
		MaxBytecodeSize:     defaultMaxBytecodeSize,
		MaxRawClassSize:     defaultMaxRawClassSize,
		AllowedLibfuncsList: "",
		SupportedBuiltins:   SupportedBuiltins,
	}
}
