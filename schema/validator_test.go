package schema

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidator(t *testing.T) {
	v, err := NewValidator()
	require.NoError(t, err)

	tests := []struct {
		name     string
		config   map[string]interface{}
		wantErr  bool
		errorMsg string
	}{
		{
			name:   "empty config",
			config: map[string]interface{}{},
		},
		{
			name: "full config",
			config: map[string]interface{}{
				"version": "1.0",
				"catalog": map[string]interface{}{"page_size": 25, "hidden": []interface{}{"c*"}},
				"launch":  map[string]interface{}{"stagger_ms": 300, "popup_backend": "system"},
				"screen":  map[string]interface{}{"width": 1920, "height": 1080},
				"ticker":  map[string]interface{}{"enabled": false, "symbols": []interface{}{"AAPL"}},
				"server":  map[string]interface{}{"addr": "127.0.0.1:7777"},
				"logging": map[string]interface{}{"level": "debug"},
			},
		},
		{
			name: "unknown backend",
			config: map[string]interface{}{
				"launch": map[string]interface{}{"popup_backend": "electron"},
			},
			wantErr:  true,
			errorMsg: "/launch/popup_backend",
		},
		{
			name: "page size below minimum",
			config: map[string]interface{}{
				"catalog": map[string]interface{}{"page_size": 0},
			},
			wantErr:  true,
			errorMsg: "/catalog/page_size",
		},
		{
			name: "unknown nested key",
			config: map[string]interface{}{
				"screen": map[string]interface{}{"depth": 3},
			},
			wantErr: true,
		},
		{
			name: "wrong type",
			config: map[string]interface{}{
				"ticker": map[string]interface{}{"interval_seconds": "soon"},
			},
			wantErr:  true,
			errorMsg: "/ticker/interval_seconds",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := v.Validate(tt.config)
			if !tt.wantErr {
				assert.NoError(t, err)
				return
			}
			require.Error(t, err)
			if tt.errorMsg != "" {
				assert.Contains(t, err.Error(), tt.errorMsg)
			}
		})
	}
}

func TestSchemaIsEmbedded(t *testing.T) {
	assert.Contains(t, string(Schema()), `"title": "Deck Configuration"`)
}

func TestViolationsAreSortedLeaves(t *testing.T) {
	v, err := Default()
	require.NoError(t, err)

	err = v.Validate(map[string]interface{}{
		"ticker": map[string]interface{}{"interval_seconds": "soon"},
		"launch": map[string]interface{}{"popup_backend": "electron"},
	})
	var violations Violations
	require.ErrorAs(t, err, &violations)
	require.Len(t, violations, 2)
	assert.Equal(t, "/launch/popup_backend", violations[0].Path)
	assert.Equal(t, "/ticker/interval_seconds", violations[1].Path)

	again, err := Default()
	require.NoError(t, err)
	assert.Same(t, v, again)
}
