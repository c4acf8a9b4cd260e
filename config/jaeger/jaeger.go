package jaeger

import (
	"io"

	"BlogSphere.com/config"
	"github.com/cloudwego/hertz/pkg/common/hlog"
	"github.com/opentracing/opentracing-go"
	jaegerclient "github.com/uber/jaeger-client-go"
	jaegercfg "github.com/uber/jaeger-client-go/config"
)

type nopCloser struct{}

func (nopCloser) Close() error { return nil }

// InitJaeger registers a jaeger tracer as the global opentracing tracer.
// Without an agent address tracing stays on the opentracing no-op tracer.
func InitJaeger(service string) io.Closer {
	if config.ConfigInfo.Jaeger.AgentAddr == "" {
		return nopCloser{}
	}
	cfg := jaegercfg.Configuration{
		ServiceName: service,
		Sampler: &jaegercfg.SamplerConfig{
			Type:  jaegerclient.SamplerTypeProbabilistic,
			Param: config.ConfigInfo.Jaeger.Sampler,
		},
		Reporter: &jaegercfg.ReporterConfig{
			LocalAgentHostPort: config.ConfigInfo.Jaeger.AgentAddr,
		},
	}
	tracer, closer, err := cfg.NewTracer()
	if err != nil {
		hlog.Errorf("init jaeger tracer failed: %v", err)
		return nopCloser{}
	}
	opentracing.SetGlobalTracer(tracer)
	hlog.Infof("jaeger tracer registered for %s", service)
	return closer
}
