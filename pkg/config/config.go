package config

import (
	"bytes"
	"context"
	"io"
	"os"
	"path/filepath"
	"strings"

	"emperror.dev/errors"
	"github.com/rancher/opni-osalias/pkg/config/meta"
	"github.com/rancher/opni-osalias/pkg/config/v1beta1"
	"github.com/rancher/opni-osalias/pkg/logger"
	"sigs.k8s.io/yaml"
)

var (
	ErrConfigNotFound        = errors.New("config not found")
	ErrUnsupportedApiVersion = errors.New("unsupported api version")
)

var DefaultSearchPaths = []string{
	".",
	"/etc/opni-osalias",
}

type OpensearchClientConfig = v1beta1.OpensearchClientConfig

func LoadObjectsFromFile(ctx context.Context, path string) (meta.ObjectList, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return LoadObjects(ctx, f)
}

// LoadObjects decodes every YAML document in r. Documents without type
// metadata, or with an unknown apiVersion or kind, are skipped.
func LoadObjects(ctx context.Context, r io.Reader) (meta.ObjectList, error) {
	lg := logger.FromContext(ctx).XNamed("config")
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, err
	}
	objects := []meta.Object{}
	documents := bytes.Split(data, []byte("\n---\n"))
	for _, document := range documents {
		if len(strings.TrimSpace(string(document))) == 0 {
			continue
		}
		typeMeta := meta.TypeMeta{}
		if err := yaml.Unmarshal(document, &typeMeta); err != nil {
			lg.With("error", err).Warn("skipping malformed config document")
			continue
		}
		if typeMeta.APIVersion == "" || typeMeta.Kind == "" {
			continue
		}
		object, err := decodeObject(typeMeta, document)
		if err != nil {
			lg.With("error", err).Warn("skipping config document")
			continue
		}
		objects = append(objects, object)
	}
	return objects, nil
}

func decodeObject(typeMeta meta.TypeMeta, document []byte) (meta.Object, error) {
	switch typeMeta.APIVersion {
	case v1beta1.APIVersion:
		return v1beta1.DecodeObject(typeMeta.Kind, document)
	}
	return nil, errors.WithMessage(ErrUnsupportedApiVersion, typeMeta.APIVersion)
}

// LoadClientConfig returns the first OpensearchClientConfig found in the
// file at path, with the environment and defaults applied.
func LoadClientConfig(ctx context.Context, path string) (*OpensearchClientConfig, error) {
	objects, err := LoadObjectsFromFile(ctx, path)
	if err != nil {
		return nil, errors.Wrap(err, "failed to load config")
	}
	for _, obj := range objects {
		if cfg, ok := obj.(*OpensearchClientConfig); ok {
			logger.FromContext(ctx).XNamed("config").Debugw("using client config", "name", cfg.GetName(), "path", path)
			cfg.Spec.ApplyEnvironment()
			cfg.Spec.SetDefaults()
			return cfg, nil
		}
	}
	return nil, errors.WithMessagef(ErrConfigNotFound, "no OpensearchClientConfig in %s", path)
}

func FindConfig() (string, error) {
	return FindConfigIn(DefaultSearchPaths...)
}

func FindConfigIn(pathsToSearch ...string) (string, error) {
	filenamesToSearch := []string{
		"osalias.yaml",
		"osalias.yml",
		"osalias.json",
		"config.yaml",
		"config.yml",
		"config.json",
	}

	for _, path := range pathsToSearch {
		for _, filename := range filenamesToSearch {
			p, err := filepath.Abs(filepath.Join(path, filename))
			if err != nil {
				return "", err
			}
			if f, err := os.Open(p); err == nil {
				f.Close()
				return p, nil
			}
		}
	}

	return "", ErrConfigNotFound
}
