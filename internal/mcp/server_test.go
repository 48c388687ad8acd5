package mcp

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestServer(t *testing.T) *Server {
	t.Helper()
	server, err := NewServer(t.TempDir())
	require.NoError(t, err)
	t.Cleanup(func() { _ = server.storage.Close() })
	return server
}

func callRequest(args map[string]interface{}) mcp.CallToolRequest {
	var req mcp.CallToolRequest
	req.Params.Arguments = args
	return req
}

func resultText(t *testing.T, result *mcp.CallToolResult) string {
	t.Helper()
	require.NotNil(t, result)
	require.NotEmpty(t, result.Content)
	tc, ok := result.Content[0].(mcp.TextContent)
	require.True(t, ok, "expected text content")
	return tc.Text
}

func writeFixtureTree(t *testing.T) string {
	t.Helper()
	root := t.TempDir()
	source := `namespace Game
{
    public class Pawn
    {
        public void Tick()
        {
        }
    }
}
`
	require.NoError(t, os.MkdirAll(filepath.Join(root, "Source"), 0755))
	require.NoError(t, os.WriteFile(filepath.Join(root, "Source", "Pawn.cs"), []byte(source), 0644))
	return root
}

func TestNewServer(t *testing.T) {
	server := newTestServer(t)

	assert.NotNil(t, server.mcp)
	assert.NotNil(t, server.storage)
	assert.NotNil(t, server.indexer)
	assert.NotNil(t, server.searcher)
}

func TestHandleScanDocs(t *testing.T) {
	server := newTestServer(t)
	root := writeFixtureTree(t)

	result, err := server.handleScanDocs(context.Background(), callRequest(map[string]interface{}{
		"path": root,
	}))
	require.NoError(t, err)

	text := resultText(t, result)
	assert.Contains(t, text, `"scanned": true`)
	assert.Contains(t, text, `"types_extracted": 1`)
}

func TestHandleScanDocs_MissingPath(t *testing.T) {
	server := newTestServer(t)

	_, err := server.handleScanDocs(context.Background(), callRequest(map[string]interface{}{}))
	require.Error(t, err)
	var mcpErr *MCPError
	require.ErrorAs(t, err, &mcpErr)
	assert.Equal(t, ErrorCodeInvalidParams, mcpErr.Code)
}

func TestHandleScanDocs_NoSourceFiles(t *testing.T) {
	server := newTestServer(t)

	_, err := server.handleScanDocs(context.Background(), callRequest(map[string]interface{}{
		"path": t.TempDir(),
	}))
	require.Error(t, err)
	var mcpErr *MCPError
	require.ErrorAs(t, err, &mcpErr)
	assert.Equal(t, ErrorCodeRootNotFound, mcpErr.Code)
}

func TestHandleLookupType(t *testing.T) {
	server := newTestServer(t)
	root := writeFixtureTree(t)
	ctx := context.Background()

	_, err := server.handleScanDocs(ctx, callRequest(map[string]interface{}{"path": root}))
	require.NoError(t, err)

	result, err := server.handleLookupType(ctx, callRequest(map[string]interface{}{
		"name": "Pawn",
	}))
	require.NoError(t, err)

	text := resultText(t, result)
	assert.Contains(t, text, `"name": "Pawn"`)
	assert.Contains(t, text, `"kind": "class"`)
	assert.Contains(t, text, `"Tick"`)
}

func TestHandleLookupType_NotIndexed(t *testing.T) {
	server := newTestServer(t)

	_, err := server.handleLookupType(context.Background(), callRequest(map[string]interface{}{
		"name": "Missing",
	}))
	require.Error(t, err)
	var mcpErr *MCPError
	require.ErrorAs(t, err, &mcpErr)
	assert.Equal(t, ErrorCodeNotScanned, mcpErr.Code)
}

func TestHandleSearchTypes(t *testing.T) {
	server := newTestServer(t)
	root := writeFixtureTree(t)
	ctx := context.Background()

	_, err := server.handleScanDocs(ctx, callRequest(map[string]interface{}{"path": root}))
	require.NoError(t, err)

	result, err := server.handleSearchTypes(ctx, callRequest(map[string]interface{}{
		"query": "Pawn*",
		"kinds": []interface{}{"class"},
	}))
	require.NoError(t, err)

	text := resultText(t, result)
	assert.Contains(t, text, `"count": 1`)
	assert.Contains(t, text, `"Pawn"`)
}

func TestHandleSearchTypes_Validation(t *testing.T) {
	server := newTestServer(t)
	ctx := context.Background()

	_, err := server.handleSearchTypes(ctx, callRequest(map[string]interface{}{"query": "  "}))
	var mcpErr *MCPError
	require.ErrorAs(t, err, &mcpErr)
	assert.Equal(t, ErrorCodeEmptyQuery, mcpErr.Code)

	_, err = server.handleSearchTypes(ctx, callRequest(map[string]interface{}{
		"query": "Pawn",
		"limit": float64(500),
	}))
	require.ErrorAs(t, err, &mcpErr)
	assert.Equal(t, ErrorCodeInvalidParams, mcpErr.Code)

	_, err = server.handleSearchTypes(ctx, callRequest(map[string]interface{}{
		"query": "Pawn",
		"kinds": []interface{}{"module"},
	}))
	require.ErrorAs(t, err, &mcpErr)
	assert.Equal(t, ErrorCodeInvalidParams, mcpErr.Code)
}

func TestHandleGetStatus(t *testing.T) {
	server := newTestServer(t)
	root := writeFixtureTree(t)
	ctx := context.Background()

	// Unscanned root reports scanned=false without error
	result, err := server.handleGetStatus(ctx, callRequest(map[string]interface{}{"path": root}))
	require.NoError(t, err)
	assert.Contains(t, resultText(t, result), `"scanned": false`)

	_, err = server.handleScanDocs(ctx, callRequest(map[string]interface{}{"path": root}))
	require.NoError(t, err)

	result, err = server.handleGetStatus(ctx, callRequest(map[string]interface{}{"path": root}))
	require.NoError(t, err)
	text := resultText(t, result)
	assert.Contains(t, text, `"scanned": true`)
	assert.Contains(t, text, `"types_count": 1`)
}

func TestValidatePath(t *testing.T) {
	assert.ErrorIs(t, validatePath("", ".cs"), ErrPathRequired)
	assert.ErrorIs(t, validatePath("relative/path", ".cs"), ErrPathNotAbsolute)
	assert.ErrorIs(t, validatePath("/does/not/exist", ".cs"), ErrPathNotFound)

	dir := t.TempDir()
	assert.ErrorIs(t, validatePath(dir, ".cs"), ErrNoSourceFiles)

	file := filepath.Join(dir, "A.cs")
	require.NoError(t, os.WriteFile(file, []byte("public class A {}"), 0644))
	assert.NoError(t, validatePath(dir, ".cs"))
	assert.ErrorIs(t, validatePath(file, ".cs"), ErrNotDirectory)
}

func TestScanLock_RejectsConcurrentScan(t *testing.T) {
	server := newTestServer(t)
	root := writeFixtureTree(t)

	require.True(t, server.scanLock.TryAcquire())
	defer server.scanLock.Release()

	_, err := server.handleScanDocs(context.Background(), callRequest(map[string]interface{}{"path": root}))
	require.Error(t, err)
	var mcpErr *MCPError
	require.ErrorAs(t, err, &mcpErr)
	assert.Equal(t, ErrorCodeScanInProgress, mcpErr.Code)
}
