package tracing

import (
	"fmt"
	"os"

	"github.com/go-redis/redis/extra/redisotel/v8"
	"github.com/go-redis/redis/v8"
	"github.com/honeycombio/otel-config-go/otelconfig"
	log "github.com/sirupsen/logrus"
)

// HoneycombSetup configures the OpenTelemetry SDK to export to
// honeycomb.io and adds the tracing hook to the given redis client. The
// API key comes from the HONEYCOMB_API_KEY env var. The returned
// shutdown func flushes remaining spans, call it on server teardown.
func HoneycombSetup(tracingEnabled bool, serviceName string, rdb *redis.Client) (shutdown func(), err error) {
	if !tracingEnabled {
		log.Debugln("honeycomb tracing disabled, skipping otel setup")
		return func() {}, nil
	}

	otelShutdown, err := otelconfig.ConfigureOpenTelemetry(
		otelconfig.WithServiceName(serviceName),
		otelconfig.WithExporterEndpoint("api.honeycomb.io:443"),
		otelconfig.WithHeaders(map[string]string{
			"x-honeycomb-team": os.Getenv("HONEYCOMB_API_KEY"),
		}),
	)
	if err != nil {
		return nil, fmt.Errorf("configure opentelemetry: %w", err)
	}

	rdb.AddHook(redisotel.NewTracingHook())

	log.Debugf("honeycomb tracing set up for: %s", serviceName)

	return otelShutdown, nil
}
