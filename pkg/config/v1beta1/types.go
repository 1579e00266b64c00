package v1beta1

import (
	"os"

	"github.com/rancher/opni-osalias/pkg/config/meta"
)

const APIVersion = "v1beta1"

const PasswordEnvVar = "OPNI_OSALIAS_PASSWORD"

type OpensearchClientConfig struct {
	meta.TypeMeta   `json:",inline"`
	meta.ObjectMeta `json:"metadata,omitempty"`

	Spec OpensearchClientConfigSpec `json:"spec,omitempty"`
}

type OpensearchClientConfigSpec struct {
	URLs               []string `json:"urls,omitempty"`
	Username           string   `json:"username,omitempty"`
	Password           string   `json:"password,omitempty"`
	CACertFile         string   `json:"caCertFile,omitempty"`
	InsecureSkipVerify bool     `json:"insecureSkipVerify,omitempty"`
	MaxRetries         int      `json:"maxRetries,omitempty"`
	DisableRetry       bool     `json:"disableRetry,omitempty"`
	LogLevel           string   `json:"logLevel,omitempty"`
}

func (s *OpensearchClientConfigSpec) SetDefaults() {
	if s == nil {
		return
	}
	if len(s.URLs) == 0 {
		s.URLs = []string{"https://localhost:9200"}
	}
	if s.MaxRetries == 0 && !s.DisableRetry {
		s.MaxRetries = 3
	}
	if s.LogLevel == "" {
		s.LogLevel = "info"
	}
}

// ApplyEnvironment overrides fields that have an environment variable set.
// Callers apply it before explicit flags so that flags take precedence.
func (s *OpensearchClientConfigSpec) ApplyEnvironment() {
	if s == nil {
		return
	}
	if password, ok := os.LookupEnv(PasswordEnvVar); ok {
		s.Password = password
	}
}
