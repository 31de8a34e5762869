package savefile

// Settings for a single run. Passed by value everywhere; nothing in this package
// keeps its own copy around.
type Config struct {
	Silent bool   // Suppress the report (the caller decides about its own logs)
	Force  bool   // Disable the size ceiling and chunk length bounds
	Backup string // Compressed copy of the original is written here before the first patch
}
