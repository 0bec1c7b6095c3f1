package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/dekarrin/grammarc/internal/issues"
	"github.com/stretchr/testify/assert"
)

func Test_Default_UsesANTLRFormat(t *testing.T) {
	assert := assert.New(t)

	cfg := Default()
	assert.Equal("antlr", cfg.DiagnosticFormat)
	assert.False(cfg.WarningsAreErrors)
}

func Test_Load_EmptyPathReturnsDefaults(t *testing.T) {
	assert := assert.New(t)

	cfg, err := Load("")
	assert.NoError(err)
	assert.Equal(Default(), cfg)
}

func Test_Load_MissingFileReturnsDefaults(t *testing.T) {
	assert := assert.New(t)

	cfg, err := Load(filepath.Join(t.TempDir(), "nonexistent.toml"))
	assert.NoError(err)
	assert.Equal(Default(), cfg)
}

func Test_Load_OverridesOnlyFieldsPresentInFile(t *testing.T) {
	assert := assert.New(t)

	path := filepath.Join(t.TempDir(), "grammarc.toml")
	contents := "diagnostic_format = \"gnu\"\nwarnings_as_errors = true\ntokens_out = \"out.tokens\"\n"
	assert.NoError(os.WriteFile(path, []byte(contents), 0644))

	cfg, err := Load(path)
	assert.NoError(err)

	assert.Equal("gnu", cfg.DiagnosticFormat)
	assert.True(cfg.WarningsAreErrors)
	assert.Equal("out.tokens", cfg.TokensOut)
	assert.Equal("", cfg.InterpOut)
}

func Test_Config_Format_ResolvesToIssuesFormat(t *testing.T) {
	assert := assert.New(t)

	cfg := Config{DiagnosticFormat: "vs2005"}
	assert.Equal(issues.FormatVS2005, cfg.Format())
}
