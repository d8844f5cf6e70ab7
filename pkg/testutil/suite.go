package testutil

import (
	"context"
	"os"
	"path/filepath"
	"time"

	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"
)

// EngineSuite provides base functionality for cross-package engine tests:
// a bounded context and a temp directory for config and row files.
type EngineSuite struct {
	suite.Suite
	ctx       context.Context
	cancel    context.CancelFunc
	tempDir   string
	startTime time.Time
}

// SetupSuite runs before all tests in the suite
func (s *EngineSuite) SetupSuite() {
	s.ctx, s.cancel = context.WithTimeout(context.Background(), time.Minute)
	s.startTime = time.Now()

	tempDir, err := os.MkdirTemp("", "tessera-test-*")
	require.NoError(s.T(), err)
	s.tempDir = tempDir
}

// TearDownSuite runs after all tests in the suite
func (s *EngineSuite) TearDownSuite() {
	s.cancel()

	if s.tempDir != "" {
		os.RemoveAll(s.tempDir)
	}

	s.T().Logf("engine suite completed in %v", time.Since(s.startTime))
}

// Context returns the suite context
func (s *EngineSuite) Context() context.Context {
	return s.ctx
}

// TempDir returns the temporary directory path
func (s *EngineSuite) TempDir() string {
	return s.tempDir
}

// WriteTempFile writes content under the suite temp directory and returns
// the full path.
func (s *EngineSuite) WriteTempFile(name, content string) string {
	path := filepath.Join(s.tempDir, name)
	require.NoError(s.T(), os.WriteFile(path, []byte(content), 0o644))
	return path
}
