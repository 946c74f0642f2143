package telemetry

import (
	"testing"

	"github.com/stretchr/testify/assert"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
)

func TestSamplerFor(t *testing.T) {
	assert.Equal(t, sdktrace.AlwaysSample().Description(), samplerFor(1).Description())
	assert.Equal(t, sdktrace.NeverSample().Description(), samplerFor(0).Description())
	assert.Contains(t, samplerFor(0.25).Description(), "TraceIDRatioBased{0.25}")
}

func TestDetectOperation(t *testing.T) {
	tests := map[string]string{
		"select * from orders":                 "SELECT",
		"  INSERT INTO orders VALUES (1)":      "INSERT",
		"WITH t AS (SELECT 1) SELECT * FROM t": "WITH",
		"CREATE TABLE x (id int)":              "OTHER",
		"":                                     "UNKNOWN",
	}
	for sqlText, want := range tests {
		assert.Equal(t, want, detectOperation(sqlText), sqlText)
	}
}
