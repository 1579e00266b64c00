package logger_test

import (
	"bytes"
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"time"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
	"github.com/rancher/opni-osalias/pkg/logger"
	"go.uber.org/zap/zapcore"
)

var _ = Describe("Logger", Label("unit"), func() {
	It("should parse levels", func() {
		level, err := logger.ParseLevel("")
		Expect(err).NotTo(HaveOccurred())
		Expect(level).To(Equal(logger.DefaultLogLevel.Level()))

		level, err = logger.ParseLevel("debug")
		Expect(err).NotTo(HaveOccurred())
		Expect(level).To(Equal(zapcore.DebugLevel))

		_, err = logger.ParseLevel("loud")
		Expect(err).To(HaveOccurred())
	})

	It("should respect the configured level", func() {
		buf := &bytes.Buffer{}
		lg := logger.New(logger.WithLogLevel(zapcore.WarnLevel), logger.WithWriter(buf), logger.WithColor(false))
		lg.Info("hidden")
		lg.Warn("shown")
		Expect(buf.String()).NotTo(ContainSubstring("hidden"))
		Expect(buf.String()).To(ContainSubstring("shown"))
		Expect(lg.AtomicLevel().Level()).To(Equal(zapcore.WarnLevel))
	})

	It("should name child loggers", func() {
		buf := &bytes.Buffer{}
		lg := logger.New(logger.WithWriter(buf), logger.WithColor(false)).XNamed("indices").XWith("cluster", "test")
		lg.Info("hello")
		Expect(buf.String()).To(ContainSubstring("indices"))
		Expect(buf.String()).To(ContainSubstring(`"cluster": "test"`))
	})

	It("should round trip through a context", func() {
		lg := logger.New(logger.WithWriter(GinkgoWriter))
		ctx := logger.AddToContext(context.Background(), lg)
		Expect(logger.FromContext(ctx)).To(BeIdenticalTo(lg))
		Expect(logger.FromContext(context.Background())).NotTo(BeNil())
	})

	Context("opensearch transport adapter", func() {
		var (
			buf *bytes.Buffer
			lg  logger.ExtendedSugaredLogger
		)
		BeforeEach(func() {
			buf = &bytes.Buffer{}
			lg = logger.New(logger.WithLogLevel(zapcore.DebugLevel), logger.WithWriter(buf), logger.WithColor(false))
		})

		It("should log successful round trips", func() {
			adapter := logger.NewOpensearchTransportLogger(lg.Zap())
			req := httptest.NewRequest(http.MethodHead, "http://localhost:9200/logs/_alias/x?ignore_unavailable=true", nil)
			Expect(adapter.LogRoundTrip(req, &http.Response{StatusCode: http.StatusOK}, nil, time.Now(), time.Millisecond)).To(Succeed())
			Expect(adapter.RequestBodyEnabled()).To(BeFalse())
			Expect(adapter.ResponseBodyEnabled()).To(BeFalse())

			out := buf.String()
			Expect(out).To(ContainSubstring("round trip"))
			Expect(out).To(ContainSubstring("/logs/_alias/x"))
			Expect(out).To(ContainSubstring("ignore_unavailable=true"))
			Expect(out).To(ContainSubstring(`"status": 200`))
		})

		It("should log failed round trips", func() {
			adapter := logger.NewOpensearchTransportLogger(lg.Zap())
			req := httptest.NewRequest(http.MethodHead, "http://localhost:9200/_alias/x", nil)
			Expect(adapter.LogRoundTrip(req, nil, errors.New("connection reset"), time.Now(), time.Millisecond)).To(Succeed())
			Expect(buf.String()).To(ContainSubstring("round trip failed: connection reset"))
		})
	})
})
