package config

import (
	"os/exec"
	"strings"
	"time"
)

// MetadataCollector stamps configs with when and from which commit a render
// was produced
type MetadataCollector struct {
	timestamp time.Time
	gitCommit string
}

// NewMetadataCollector records the current time and commit. Outside a git
// checkout the commit is "unknown".
func NewMetadataCollector() *MetadataCollector {
	gitCommit, err := getCurrentGitCommit()
	if err != nil {
		gitCommit = "unknown"
	}
	return &MetadataCollector{
		timestamp: time.Now().UTC(),
		gitCommit: gitCommit,
	}
}

func getCurrentGitCommit() (string, error) {
	out, err := exec.Command("git", "rev-parse", "HEAD").Output()
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(string(out)), nil
}

func (mc *MetadataCollector) PopulateMetadata(config *RenderConfig) {
	config.Metadata.Timestamp = mc.timestamp.Format("2006-01-02 15:04:05")
	config.Metadata.GitCommit = mc.gitCommit
}
