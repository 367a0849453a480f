package repository

import (
	"github.com/diillson/aws-dx-metrics-report/internal/shared/types"
)

// ConfigRepository defines the interface for loading configuration.
type ConfigRepository interface {
	LoadConfigFile(filePath string) (*types.Config, error)
	LoadEnv() (*types.Config, error)
}
