package envfile

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadTemplate(t *testing.T) {
	path := filepath.Join(t.TempDir(), ".env.template")
	content := "# defaults\nOPENAI_API_KEY=\nADTS=\nJWT_SECRET_KEY=change-me\nADT_DIR=\n"
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))

	specs, err := LoadTemplate(path)
	require.NoError(t, err)
	require.Len(t, specs, 4)

	byName := map[string]KeySpec{}
	for _, spec := range specs {
		byName[spec.Name] = spec
	}

	// Declaration order survives
	assert.Equal(t, "OPENAI_API_KEY", specs[0].Name)
	assert.Equal(t, "ADT_DIR", specs[3].Name)

	key := byName["OPENAI_API_KEY"]
	assert.True(t, key.Required)
	assert.True(t, key.Sensitive)
	assert.Equal(t, "sk-", key.Prefix)

	assert.Equal(t, List, byName["ADTS"].Cardinality)

	jwt := byName["JWT_SECRET_KEY"]
	assert.True(t, jwt.Auto)
	assert.Equal(t, "change-me", jwt.Default)
}

func TestKeySpecValidate(t *testing.T) {
	tests := []struct {
		name    string
		spec    KeySpec
		value   string
		wantErr string
	}{
		{
			name:  "prefix satisfied",
			spec:  KeySpec{Name: "OPENAI_API_KEY", Required: true, Prefix: "sk-"},
			value: "sk-abc123",
		},
		{
			name:    "prefix violated",
			spec:    KeySpec{Name: "OPENAI_API_KEY", Prefix: "sk-"},
			value:   "abc123",
			wantErr: "must start with",
		},
		{
			name:    "required empty",
			spec:    KeySpec{Name: "OPENAI_API_KEY", Required: true},
			value:   "  ",
			wantErr: "required",
		},
		{
			name:  "optional empty passes prefix rule",
			spec:  KeySpec{Name: "GITHUB_TOKEN", Prefix: "ghp_"},
			value: "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.spec.Validate(tt.value)
			if tt.wantErr == "" {
				assert.NoError(t, err)
				return
			}
			require.Error(t, err)
			var vErr *ValidationError
			require.ErrorAs(t, err, &vErr)
			assert.Equal(t, tt.spec.Name, vErr.Key)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func TestDisplayValueTruncatesSensitive(t *testing.T) {
	sensitive := KeySpec{Name: "OPENAI_API_KEY", Sensitive: true}

	assert.Equal(t, "", sensitive.DisplayValue(""))
	assert.Equal(t, "****", sensitive.DisplayValue("sk-short"))

	long := sensitive.DisplayValue("sk-abcdefghijklmnop")
	assert.NotEqual(t, "sk-abcdefghijklmnop", long)
	assert.Contains(t, long, "...")

	plain := KeySpec{Name: "ADT_DIR"}
	assert.Equal(t, "/some/path", plain.DisplayValue("/some/path"))
}
