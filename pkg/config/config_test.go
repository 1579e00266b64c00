package config_test

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
	"github.com/rancher/opni-osalias/pkg/config"
	"github.com/rancher/opni-osalias/pkg/config/meta"
	"github.com/rancher/opni-osalias/pkg/config/v1beta1"
	"github.com/rancher/opni-osalias/pkg/logger"
	"go.uber.org/zap/zapcore"
)

const multiDocument = `---
apiVersion: v1beta1
kind: OpensearchClientConfig
metadata:
  name: primary
spec:
  urls:
    - https://opensearch-0:9200
    - https://opensearch-1:9200
  username: admin
  password: admin
  caCertFile: /run/certs/ca.crt
  maxRetries: 5
---
apiVersion: v1beta1
kind: SomethingElse
spec: {}
---
apiVersion: v2
kind: OpensearchClientConfig
---
apiVersion: v1beta1
kind: OpensearchClientConfig
spec:
  unknownField: true
---
# no type metadata
spec:
  urls: []
`

var _ = Describe("Config", Label("unit"), func() {
	Context("LoadObjects", func() {
		It("should keep only known, valid documents", func() {
			objects, err := config.LoadObjects(context.Background(), strings.NewReader(multiDocument))
			Expect(err).NotTo(HaveOccurred())
			Expect(objects).To(HaveLen(1))

			cfg, ok := objects[0].(*v1beta1.OpensearchClientConfig)
			Expect(ok).To(BeTrue())
			Expect(cfg.GetName()).To(Equal("primary"))
			Expect(cfg.GetKind()).To(Equal("OpensearchClientConfig"))
			Expect(cfg.Spec.URLs).To(ConsistOf("https://opensearch-0:9200", "https://opensearch-1:9200"))
			Expect(cfg.Spec.Username).To(Equal("admin"))
			Expect(cfg.Spec.CACertFile).To(Equal("/run/certs/ca.crt"))
			Expect(cfg.Spec.MaxRetries).To(Equal(5))
		})

		It("should report skipped documents to the context logger", func() {
			buf := &bytes.Buffer{}
			lg := logger.New(logger.WithLogLevel(zapcore.WarnLevel), logger.WithWriter(buf), logger.WithColor(false))
			ctx := logger.AddToContext(context.Background(), lg)

			_, err := config.LoadObjects(ctx, strings.NewReader(multiDocument))
			Expect(err).NotTo(HaveOccurred())
			Expect(buf.String()).To(ContainSubstring("skipping config document"))

			buf.Reset()
			ctx = logger.AddToContext(context.Background(), logger.New(logger.WithLogLevel(zapcore.ErrorLevel), logger.WithWriter(buf)))
			_, err = config.LoadObjects(ctx, strings.NewReader(multiDocument))
			Expect(err).NotTo(HaveOccurred())
			Expect(buf.String()).To(BeEmpty())
		})

		It("should decode strictly", func() {
			_, err := v1beta1.DecodeObject("OpensearchClientConfig", []byte("spec:\n  bogus: 1\n"))
			Expect(err).To(HaveOccurred())
			_, err = v1beta1.DecodeObject("Unknown", []byte("{}"))
			Expect(err).To(MatchError(meta.ErrUnknownObjectKind))
		})
	})

	Context("LoadClientConfig", func() {
		var dir string
		BeforeEach(func() {
			dir = GinkgoT().TempDir()
		})

		It("should apply defaults", func() {
			path := filepath.Join(dir, "osalias.yaml")
			Expect(os.WriteFile(path, []byte("apiVersion: v1beta1\nkind: OpensearchClientConfig\nspec: {}\n"), 0o600)).To(Succeed())

			cfg, err := config.LoadClientConfig(context.Background(), path)
			Expect(err).NotTo(HaveOccurred())
			Expect(cfg.Spec.URLs).To(Equal([]string{"https://localhost:9200"}))
			Expect(cfg.Spec.MaxRetries).To(Equal(3))
			Expect(cfg.Spec.LogLevel).To(Equal("info"))
		})

		It("should take the password from the environment", func() {
			GinkgoT().Setenv(v1beta1.PasswordEnvVar, "from-env")
			path := filepath.Join(dir, "osalias.yaml")
			Expect(os.WriteFile(path, []byte("apiVersion: v1beta1\nkind: OpensearchClientConfig\nspec:\n  password: from-file\n"), 0o600)).To(Succeed())

			cfg, err := config.LoadClientConfig(context.Background(), path)
			Expect(err).NotTo(HaveOccurred())
			Expect(cfg.Spec.Password).To(Equal("from-env"))
		})

		It("should log which config was selected", func() {
			buf := &bytes.Buffer{}
			ctx := logger.AddToContext(context.Background(),
				logger.New(logger.WithLogLevel(zapcore.DebugLevel), logger.WithWriter(buf), logger.WithColor(false)))
			path := filepath.Join(dir, "osalias.yaml")
			Expect(os.WriteFile(path, []byte(multiDocument), 0o600)).To(Succeed())

			cfg, err := config.LoadClientConfig(ctx, path)
			Expect(err).NotTo(HaveOccurred())
			Expect(cfg.GetName()).To(Equal("primary"))
			Expect(buf.String()).To(ContainSubstring("using client config"))
			Expect(buf.String()).To(ContainSubstring("primary"))
		})

		It("should fail when the file has no client config", func() {
			path := filepath.Join(dir, "config.yaml")
			Expect(os.WriteFile(path, []byte("apiVersion: v1beta1\nkind: Other\n"), 0o600)).To(Succeed())

			_, err := config.LoadClientConfig(context.Background(), path)
			Expect(err).To(MatchError(config.ErrConfigNotFound))
		})

		It("should fail when the file is missing", func() {
			_, err := config.LoadClientConfig(context.Background(), filepath.Join(dir, "missing.yaml"))
			Expect(err).To(MatchError(os.ErrNotExist))
		})
	})

	Context("FindConfigIn", func() {
		It("should prefer osalias.yaml over config.yaml", func() {
			dir := GinkgoT().TempDir()
			Expect(os.WriteFile(filepath.Join(dir, "config.yaml"), nil, 0o600)).To(Succeed())
			Expect(os.WriteFile(filepath.Join(dir, "osalias.yml"), nil, 0o600)).To(Succeed())

			path, err := config.FindConfigIn(dir)
			Expect(err).NotTo(HaveOccurred())
			Expect(path).To(Equal(filepath.Join(dir, "osalias.yml")))
		})

		It("should report a missing config", func() {
			_, err := config.FindConfigIn(GinkgoT().TempDir())
			Expect(err).To(MatchError(config.ErrConfigNotFound))
		})
	})
})
