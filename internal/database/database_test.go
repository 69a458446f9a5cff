package database

import (
	"bytes"
	"context"
	"testing"
	"time"

	"github.com/deppfellow/shopping-list/internal/config"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/tracelog"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testConfig(env string, threshold time.Duration) *config.Config {
	obs := config.DefaultObservabilityConfig()
	obs.Logging.SlowQueryThreshold = threshold
	return &config.Config{
		Primary:       config.Primary{Env: env},
		Database:      config.DatabaseConfig{URL: "postgres://localhost/shop"},
		Observability: obs,
	}
}

func TestBuildTracer(t *testing.T) {
	log := zerolog.Nop()

	t.Run("no tracing", func(t *testing.T) {
		assert.Nil(t, buildTracer(testConfig("production", 0), &log, nil))
	})

	t.Run("slow query only", func(t *testing.T) {
		tracer := buildTracer(testConfig("production", time.Second), &log, nil)
		require.IsType(t, &slowQueryTracer{}, tracer)
	})

	t.Run("local chains trace log", func(t *testing.T) {
		tracer := buildTracer(testConfig("local", time.Second), &log, nil)
		mt, ok := tracer.(*multiTracer)
		require.True(t, ok)
		require.Len(t, mt.tracers, 2)
		assert.IsType(t, &tracelog.TraceLog{}, mt.tracers[1])
	})
}

func TestSlowQueryTracer(t *testing.T) {
	var buf bytes.Buffer
	log := zerolog.New(&buf)

	tracer := &slowQueryTracer{log: &log, threshold: 0}
	ctx := tracer.TraceQueryStart(context.Background(), nil, pgx.TraceQueryStartData{SQL: "SELECT 1"})
	tracer.TraceQueryEnd(ctx, nil, pgx.TraceQueryEndData{})

	assert.Contains(t, buf.String(), `"message":"slow query"`)
	assert.Contains(t, buf.String(), `"sql":"SELECT 1"`)

	buf.Reset()
	tracer.threshold = time.Hour
	ctx = tracer.TraceQueryStart(context.Background(), nil, pgx.TraceQueryStartData{SQL: "SELECT 1"})
	tracer.TraceQueryEnd(ctx, nil, pgx.TraceQueryEndData{})
	assert.Empty(t, buf.String())
}

func TestMultiTracerCallsEveryTracer(t *testing.T) {
	var buf bytes.Buffer
	log := zerolog.New(&buf)

	mt := &multiTracer{tracers: []queryTracer{
		&slowQueryTracer{log: &log},
		&slowQueryTracer{log: &log},
	}}
	ctx := mt.TraceQueryStart(context.Background(), nil, pgx.TraceQueryStartData{SQL: "SELECT 1"})
	mt.TraceQueryEnd(ctx, nil, pgx.TraceQueryEndData{})

	assert.Equal(t, 2, bytes.Count(buf.Bytes(), []byte("slow query")))
}
