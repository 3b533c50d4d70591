package secrets

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"go.uber.org/zap"

	"github.com/kevin07696/cybersource-service/internal/adapters/ports"
)

// localSource implements SecretSource over the local filesystem.
// WARNING: development only. Use AWS Secrets Manager or Vault in production.
type localSource struct {
	basePath string
	logger   *zap.Logger
}

// NewLocalSource creates a filesystem-backed secret source
func NewLocalSource(basePath string, logger *zap.Logger) ports.SecretSource {
	return &localSource{basePath: basePath, logger: logger}
}

// GetSecret reads a secret file under the base path. Files may be plain
// text (whitespace-trimmed) or JSON with a "value" key.
func (s *localSource) GetSecret(ctx context.Context, secretPath string) (*ports.Secret, error) {
	filePath := filepath.Join(s.basePath, secretPath)

	s.logger.Debug("Reading secret from filesystem",
		zap.String("path", secretPath),
	)

	data, err := os.ReadFile(filePath)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("secret not found: %s", secretPath)
		}
		return nil, fmt.Errorf("failed to read secret: %w", err)
	}

	var secretData struct {
		Value string `json:"value"`
	}
	if err := json.Unmarshal(data, &secretData); err == nil && secretData.Value != "" {
		return &ports.Secret{Value: secretData.Value, Version: "v1"}, nil
	}

	return &ports.Secret{Value: strings.TrimSpace(string(data)), Version: "v1"}, nil
}
