package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/diillson/aws-dx-metrics-report/internal/domain/repository"
	"github.com/diillson/aws-dx-metrics-report/internal/shared/types"
	"github.com/pelletier/go-toml"
	"gopkg.in/yaml.v3"
)

// EnvPrefix é o prefixo das variáveis de ambiente lidas por LoadEnv.
const EnvPrefix = "DX_REPORT_"

// ConfigRepositoryImpl implementa o ConfigRepository.
type ConfigRepositoryImpl struct {
	lookupEnv func(string) (string, bool)
}

// NewConfigRepository cria uma nova implementação do ConfigRepository.
func NewConfigRepository() repository.ConfigRepository {
	return &ConfigRepositoryImpl{lookupEnv: os.LookupEnv}
}

// LoadConfigFile carrega um arquivo de configuração TOML, YAML ou JSON.
func (r *ConfigRepositoryImpl) LoadConfigFile(filePath string) (*types.Config, error) {
	fileExtension := strings.ToLower(filepath.Ext(filePath))

	fileInfo, err := os.Stat(filePath)
	if err != nil {
		return nil, fmt.Errorf("error accessing config file: %w", err)
	}
	if fileInfo.IsDir() {
		return nil, fmt.Errorf("%s is a directory, not a file", filePath)
	}

	fileData, err := os.ReadFile(filePath)
	if err != nil {
		return nil, fmt.Errorf("error reading config file: %w", err)
	}

	var config types.Config

	switch fileExtension {
	case ".toml":
		if err := toml.Unmarshal(fileData, &config); err != nil {
			return nil, fmt.Errorf("error parsing TOML file: %w", err)
		}
	case ".yaml", ".yml":
		if err := yaml.Unmarshal(fileData, &config); err != nil {
			return nil, fmt.Errorf("error parsing YAML file: %w", err)
		}
	case ".json":
		if err := json.Unmarshal(fileData, &config); err != nil {
			return nil, fmt.Errorf("error parsing JSON file: %w", err)
		}
	default:
		return nil, fmt.Errorf("unsupported config file format: %s", fileExtension)
	}

	if config.HistoryDays < 0 {
		return nil, fmt.Errorf("history_days must not be negative, got %d", config.HistoryDays)
	}

	return &config, nil
}

// LoadEnv monta a configuração a partir das variáveis DX_REPORT_*.
// Se DX_REPORT_CONFIG estiver definida, o arquivo é carregado primeiro e as
// demais variáveis sobrescrevem os valores dele.
func (r *ConfigRepositoryImpl) LoadEnv() (*types.Config, error) {
	config := &types.Config{}
	if path, ok := r.lookupEnv(EnvPrefix + "CONFIG"); ok && path != "" {
		loaded, err := r.LoadConfigFile(path)
		if err != nil {
			return nil, err
		}
		config = loaded
	}

	setString := func(name string, dst *string) {
		if v, ok := r.lookupEnv(EnvPrefix + name); ok && v != "" {
			*dst = v
		}
	}
	setString("PROFILE", &config.Profile)
	setString("REGION", &config.Region)
	setString("ARCHIVE_BUCKET", &config.ArchiveBucket)
	setString("FUNCTION_NAME", &config.FunctionName)

	if v, ok := r.lookupEnv(EnvPrefix + "HISTORY_DAYS"); ok && v != "" {
		days, err := strconv.Atoi(v)
		if err != nil || days < 0 {
			return nil, fmt.Errorf("invalid %sHISTORY_DAYS %q", EnvPrefix, v)
		}
		config.HistoryDays = days
	}

	return config, nil
}
