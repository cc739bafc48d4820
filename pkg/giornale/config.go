package giornale

import (
	"fmt"
	"os"
)

type Config struct {
	// Path to a .ttf file used for the report text. When empty, a system
	// font is used instead.
	FontPath string
	// Directory where the temporary per-page files are stored during
	// rendering, the files will be deleted after processing
	TmpDir string
}

func NewDefaultConfig() *Config {
	cfg := Config{
		TmpDir: fmt.Sprintf("%s/giornale/report/tmp", os.TempDir()),
	}

	// 0755 mean owner can read, write and execute
	if err := os.MkdirAll(cfg.TmpDir, 0755); err != nil {
		fmt.Printf("Error creating tmp directory: %v\n", err)
	}

	return &cfg
}
