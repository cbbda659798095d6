package cli

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOutputFormatter_JSONSuccess(t *testing.T) {
	buf := &bytes.Buffer{}
	formatter := &OutputFormatter{
		Format: "json",
		Writer: buf,
	}

	err := formatter.Success(map[string]string{"result": "success"})
	require.NoError(t, err)

	var resp CLIResponse
	err = json.Unmarshal(buf.Bytes(), &resp)
	require.NoError(t, err)
	assert.Equal(t, "ok", resp.Status)
	assert.NotNil(t, resp.Data)
}

func TestOutputFormatter_JSONError(t *testing.T) {
	buf := &bytes.Buffer{}
	formatter := &OutputFormatter{
		Format: "json",
		Writer: buf,
	}

	err := formatter.Error(ErrCodeBadDocument, "validation failed", nil)
	require.NoError(t, err)

	var resp CLIResponse
	err = json.Unmarshal(buf.Bytes(), &resp)
	require.NoError(t, err)
	assert.Equal(t, "error", resp.Status)
	require.NotNil(t, resp.Error)
	assert.Equal(t, "E005", resp.Error.Code)
	assert.Equal(t, "validation failed", resp.Error.Message)
}

func TestOutputFormatter_Successf(t *testing.T) {
	buf := &bytes.Buffer{}
	formatter := &OutputFormatter{Format: "text", Writer: buf}

	err := formatter.Successf(map[string]int64{"id": 7}, "created character %d", 7)
	require.NoError(t, err)
	assert.Equal(t, "created character 7\n", buf.String())

	// JSON mode emits the payload, not the formatted line
	buf.Reset()
	formatter.Format = "json"
	err = formatter.Successf(map[string]int64{"id": 7}, "created character %d", 7)
	require.NoError(t, err)
	assert.Contains(t, buf.String(), `"id":7`)
	assert.NotContains(t, buf.String(), "created character")
}

func TestOutputFormatter_VerboseLog(t *testing.T) {
	out := &bytes.Buffer{}
	errOut := &bytes.Buffer{}
	formatter := &OutputFormatter{
		Format:    "json",
		Writer:    out,
		ErrWriter: errOut,
		Verbose:   true,
	}

	formatter.VerboseLog("diagnostic %d", 1)
	assert.Empty(t, out.String(), "verbose logs must not corrupt JSON output")
	assert.Equal(t, "diagnostic 1\n", errOut.String())

	// Disabled verbose is silent
	errOut.Reset()
	formatter.Verbose = false
	formatter.VerboseLog("dropped")
	assert.Empty(t, errOut.String())
}

func TestExitError(t *testing.T) {
	base := errors.New("disk full")
	err := WrapExitError(ExitCommandError, "write export", base)
	assert.Equal(t, "write export: disk full", err.Error())
	assert.ErrorIs(t, err, base)
	assert.Equal(t, ExitCommandError, GetExitCode(err))

	plain := NewExitError(ExitFailure, "not found")
	assert.Equal(t, "not found", plain.Error())
	assert.Equal(t, ExitFailure, GetExitCode(plain))
}

func TestGetExitCode_WrappedAndUnknown(t *testing.T) {
	// ExitError found through a wrapping chain
	wrapped := fmt.Errorf("outer: %w", NewExitError(ExitCommandError, "inner"))
	assert.Equal(t, ExitCommandError, GetExitCode(wrapped))

	// Non-exit errors default to failure
	assert.Equal(t, ExitFailure, GetExitCode(errors.New("plain")))
}
