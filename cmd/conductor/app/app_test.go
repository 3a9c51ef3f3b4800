package app

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/agentstation/conductor/pkg/conductor"
	"github.com/agentstation/conductor/pkg/errors"
	"github.com/agentstation/conductor/pkg/logging"
)

// smartsheetStub serves a conductor sheet with one picklist mapping from
// sheet 10 column Status to sheet 20 column Status.
type smartsheetStub struct {
	mu          sync.Mutex
	auth        []string
	columnPuts  []string
	rowPutCount int
}

func (s *smartsheetStub) handler() http.Handler {
	mux := http.NewServeMux()

	mux.HandleFunc("GET /2.0/sheets/{id}/columns", func(w http.ResponseWriter, r *http.Request) {
		s.record(r)
		switch r.PathValue("id") {
		case "1":
			var cols []map[string]any
			for i, title := range conductor.RequiredColumns {
				cols = append(cols, map[string]any{"id": 100 + i, "index": i, "title": title})
			}
			writeJSON(w, map[string]any{"data": cols})
		case "10":
			writeJSON(w, map[string]any{"data": []map[string]any{{"id": 1001, "index": 0, "title": "Status"}}})
		case "20":
			writeJSON(w, map[string]any{"data": []map[string]any{{"id": 2001, "index": 0, "title": "Status", "type": "PICKLIST"}}})
		default:
			w.WriteHeader(http.StatusNotFound)
			writeJSON(w, map[string]any{"errorCode": 1006, "message": "Not Found", "refId": "ref"})
		}
	})

	mux.HandleFunc("GET /2.0/sheets/{id}", func(w http.ResponseWriter, r *http.Request) {
		s.record(r)
		switch r.PathValue("id") {
		case "1":
			cell := func(title string, v any) map[string]any {
				for i, t := range conductor.RequiredColumns {
					if t == title {
						return map[string]any{"columnId": 100 + i, "value": v}
					}
				}
				panic(title)
			}
			writeJSON(w, map[string]any{"rows": []map[string]any{{
				"id": 555,
				"cells": []map[string]any{
					cell(conductor.ColRowID, "statuses"),
					cell(conductor.ColConductorRowID, "X"),
					cell(conductor.ColEnabled, true),
					cell(conductor.ColSourceSheetID, 10),
					cell(conductor.ColSourceColumnName, "Status"),
					cell(conductor.ColSourceColumnID, 1001),
					cell(conductor.ColDestinationSheetID, 20),
					cell(conductor.ColDestinationColumnName, "Status"),
					cell(conductor.ColDestinationColumnID, 2001),
					cell(conductor.ColDestinationDropdownType, "picklist"),
				},
			}}})
		case "10":
			writeJSON(w, map[string]any{"rows": []map[string]any{
				{"id": 1, "cells": []map[string]any{{"columnId": 1001, "value": "Open"}}},
				{"id": 2, "cells": []map[string]any{{"columnId": 1001, "value": "Closed"}}},
				{"id": 3, "cells": []map[string]any{{"columnId": 1001, "value": "Open"}}},
			}})
		default:
			w.WriteHeader(http.StatusNotFound)
		}
	})

	mux.HandleFunc("PUT /2.0/sheets/{id}/columns/{col}", func(w http.ResponseWriter, r *http.Request) {
		s.record(r)
		body, _ := io.ReadAll(r.Body)
		s.mu.Lock()
		s.columnPuts = append(s.columnPuts, r.PathValue("id")+"/"+r.PathValue("col")+" "+string(body))
		s.mu.Unlock()
		writeJSON(w, map[string]any{"message": "SUCCESS", "resultCode": 0})
	})

	mux.HandleFunc("PUT /2.0/sheets/{id}/rows", func(w http.ResponseWriter, r *http.Request) {
		s.record(r)
		s.mu.Lock()
		s.rowPutCount++
		s.mu.Unlock()
		writeJSON(w, map[string]any{"message": "SUCCESS", "resultCode": 0})
	})

	return mux
}

func (s *smartsheetStub) record(r *http.Request) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.auth = append(s.auth, r.Header.Get("Authorization"))
}

func writeJSON(w http.ResponseWriter, v any) {
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(v)
}

func testApp(t *testing.T, config *Config) *App {
	t.Helper()
	isolate(t)
	a, err := New("1.0.0", "abc", "today", "test", WithConfig(config), WithLogger(logging.NewNopLogger()))
	require.NoError(t, err)
	return a
}

func executeRoot(t *testing.T, a *App, args ...string) (string, error) {
	t.Helper()
	root := a.createRootCommand()
	var out bytes.Buffer
	root.SetOut(&out)
	root.SetErr(&out)
	root.SetArgs(args)
	err := root.ExecuteContext(context.Background())
	return out.String(), err
}

func TestRunEndToEnd(t *testing.T) {
	stub := &smartsheetStub{}
	srv := httptest.NewServer(stub.handler())
	defer srv.Close()

	a := testApp(t, &Config{
		Token:            "tok",
		ConductorSheetID: 1,
		BaseURL:          srv.URL + "/2.0",
		RequestTimeout:   5 * time.Second,
		RunTimeout:       time.Minute,
		LogOutput:        "discard",
	})

	out, err := executeRoot(t, a, "run", "-o", "json")
	require.NoError(t, err)

	var report conductor.Report
	require.NoError(t, json.Unmarshal([]byte(out), &report))
	require.Len(t, report.Rows, 1)
	assert.Equal(t, conductor.StatusPosted, report.Rows[0].Status)
	assert.Equal(t, 2, report.Rows[0].Values)
	assert.True(t, strings.HasSuffix(report.Rows[0].Message, "POSTED"))

	require.Len(t, stub.columnPuts, 1)
	assert.True(t, strings.HasPrefix(stub.columnPuts[0], "20/2001 "))
	assert.Contains(t, stub.columnPuts[0], `"options":["Open","Closed"]`)
	assert.Equal(t, 1, stub.rowPutCount, "only the POSTED message is written")
	for _, h := range stub.auth {
		assert.Equal(t, "Bearer tok", h)
	}
}

func TestConductorRequiresConfig(t *testing.T) {
	a := testApp(t, &Config{ConductorSheetID: 1})

	_, err := a.Conductor()
	require.Error(t, err)
	var configErr *errors.ConfigError
	assert.ErrorAs(t, err, &configErr)

	_, err = executeRoot(t, a, "run")
	assert.Error(t, err)
}

func TestConductorIsCached(t *testing.T) {
	a := testApp(t, &Config{Token: "tok", ConductorSheetID: 1, BaseURL: "https://example.test/2.0"})

	first, err := a.Conductor()
	require.NoError(t, err)
	second, err := a.Conductor()
	require.NoError(t, err)
	assert.Same(t, first, second)
}

func TestInvalidOutputFormat(t *testing.T) {
	a := testApp(t, &Config{})

	_, err := executeRoot(t, a, "version", "-o", "csv")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid format")
}

func TestVersionThroughRoot(t *testing.T) {
	a := testApp(t, &Config{})

	out, err := executeRoot(t, a, "version", "--format", "json")
	require.NoError(t, err)
	assert.Contains(t, out, `"version": "1.0.0"`)
	assert.Contains(t, out, `"commit": "abc"`)
}

func TestFlagsUpdateConfig(t *testing.T) {
	a := testApp(t, &Config{LogOutput: "discard"})

	_, err := executeRoot(t, a, "version", "-v", "--no-color", "-o", "yaml")
	require.NoError(t, err)
	assert.True(t, a.Config().Verbose)
	assert.True(t, a.Config().NoColor)
	assert.Equal(t, "yaml", a.OutputFormat())
}

func TestAppAccessors(t *testing.T) {
	a := testApp(t, &Config{RunTimeout: time.Minute})

	assert.Equal(t, "1.0.0", a.Version())
	assert.Equal(t, "abc", a.Commit())
	assert.Equal(t, "today", a.Date())
	assert.Equal(t, "test", a.BuiltBy())
	assert.Equal(t, time.Minute, a.RunTimeout())
	assert.NotNil(t, a.Logger())
}

func TestConfigFlagReloadsConfig(t *testing.T) {
	a := testApp(t, &Config{ConductorSheetID: 1})
	path := t.TempDir() + "/conductor.yaml"
	require.NoError(t, os.WriteFile(path, []byte("conductor:\n  sheet_id: 77\n"), 0o600))

	_, err := executeRoot(t, a, "version", "--config", path, "-o", "json")
	require.NoError(t, err)
	assert.Equal(t, int64(77), a.Config().ConductorSheetID)
	assert.Equal(t, path, a.Config().ConfigFile)
}
