package logger_test

import (
	"testing"

	"github.com/nookcoder/library-console/internal/logger"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zapcore"
)

func TestNew_FallsBackOnBadLevel(t *testing.T) {
	log, err := logger.New(logger.Config{Level: "loud", Encoding: "xml"})
	require.NoError(t, err)
	assert.True(t, log.Core().Enabled(zapcore.InfoLevel))
	assert.False(t, log.Core().Enabled(zapcore.DebugLevel))
}

func TestTokenPreview(t *testing.T) {
	assert.Equal(t, "", logger.TokenPreview(""))
	assert.Equal(t, "***", logger.TokenPreview("abc.def"))
	assert.Equal(t, "eyJhbGci...", logger.TokenPreview("eyJhbGciOiJIUzUxMiJ9.e30.sig"))
}
