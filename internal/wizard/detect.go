package wizard

import (
	"os"
	"path/filepath"
)

// DetectionResult holds what was auto-detected in the working directory.
type DetectionResult struct {
	ComposeFiles []string // existing docker-compose files worth migrating
	Kubeconfig   string   // path if found, empty otherwise
}

// Detector abstracts filesystem lookups for testing.
type Detector interface {
	Stat(path string) (os.FileInfo, error)
}

// OSDetector uses the real OS for detection.
type OSDetector struct{}

func (OSDetector) Stat(path string) (os.FileInfo, error) { return os.Stat(path) }

// Detect scans the environment for compose files and a kubeconfig.
func Detect(d Detector) DetectionResult {
	if d == nil {
		d = OSDetector{}
	}

	result := DetectionResult{}

	composePatterns := []string{
		"docker-compose.yml",
		"docker-compose.yaml",
		"compose.yml",
		"compose.yaml",
	}
	for _, pattern := range composePatterns {
		if _, err := d.Stat(pattern); err == nil {
			result.ComposeFiles = append(result.ComposeFiles, pattern)
		}
	}

	if env := os.Getenv("KUBECONFIG"); env != "" {
		if _, err := d.Stat(env); err == nil {
			result.Kubeconfig = env
		}
	}
	if result.Kubeconfig == "" {
		if home, err := os.UserHomeDir(); err == nil {
			p := filepath.Join(home, ".kube", "config")
			if _, err := d.Stat(p); err == nil {
				result.Kubeconfig = p
			}
		}
	}

	return result
}
