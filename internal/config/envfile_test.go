package config

import (
	"testing"

	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEnvFile_SetCreatesFile(t *testing.T) {
	fs := afero.NewMemMapFs()
	ef := NewEnvFile(fs, ".env")

	require.NoError(t, ef.Set("OPENAI_API_KEY", "sk-abc"))

	data, err := afero.ReadFile(fs, ".env")
	require.NoError(t, err)
	assert.Equal(t, "OPENAI_API_KEY=sk-abc\n", string(data))

	info, err := fs.Stat(".env")
	require.NoError(t, err)
	assert.Equal(t, "-rw-------", info.Mode().Perm().String())
}

func TestEnvFile_SetUpdatesInPlace(t *testing.T) {
	fs := afero.NewMemMapFs()
	original := "# provider keys\nANTHROPIC_API_KEY=old\nCHATBOT_PORT=5001\n"
	require.NoError(t, afero.WriteFile(fs, ".env", []byte(original), 0600))
	ef := NewEnvFile(fs, ".env")

	require.NoError(t, ef.Set("ANTHROPIC_API_KEY", "sk-ant-new"))
	require.NoError(t, ef.Set("GEMINI_API_KEY", "AIza-key"))

	data, err := afero.ReadFile(fs, ".env")
	require.NoError(t, err)
	assert.Equal(t, "# provider keys\nANTHROPIC_API_KEY=sk-ant-new\nCHATBOT_PORT=5001\nGEMINI_API_KEY=AIza-key\n", string(data))

	values, err := ef.Read()
	require.NoError(t, err)
	assert.Equal(t, "sk-ant-new", values["ANTHROPIC_API_KEY"])
	assert.Equal(t, "5001", values["CHATBOT_PORT"])
	assert.Equal(t, "AIza-key", values["GEMINI_API_KEY"])
}

func TestEnvFile_QuotedValuesRoundTrip(t *testing.T) {
	fs := afero.NewMemMapFs()
	ef := NewEnvFile(fs, ".env")

	require.NoError(t, ef.Set("CHATBOT_GREETING", `say "hi" # now`))
	values, err := ef.Read()
	require.NoError(t, err)
	assert.Equal(t, `say "hi" # now`, values["CHATBOT_GREETING"])
}

func TestEnvFile_ValuesRoundTripLiterally(t *testing.T) {
	tests := []struct {
		name  string
		value string
		line  string
	}{
		{name: "braced variable", value: "sk-${HOME}xyz", line: "OPENAI_API_KEY='sk-${HOME}xyz'"},
		{name: "bare variable", value: "sk-$HOME", line: "OPENAI_API_KEY='sk-$HOME'"},
		{name: "backslash n", value: `ab\ncd`, line: `OPENAI_API_KEY='ab\ncd'`},
		{name: "empty", value: "", line: "OPENAI_API_KEY=''"},
		{name: "apostrophe and dollar", value: `it's ${HOME} \n`, line: `OPENAI_API_KEY="it's \${HOME} \\n"`},
		{name: "apostrophe and quote", value: `o'neil "x" y`, line: `OPENAI_API_KEY="o'neil \"x\" y"`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Setenv("HOME", "/home/agronomist")
			fs := afero.NewMemMapFs()
			ef := NewEnvFile(fs, ".env")

			require.NoError(t, ef.Set("OPENAI_API_KEY", tt.value))
			data, err := afero.ReadFile(fs, ".env")
			require.NoError(t, err)
			assert.Equal(t, tt.line+"\n", string(data))

			values, err := ef.Read()
			require.NoError(t, err)
			assert.Equal(t, tt.value, values["OPENAI_API_KEY"])
		})
	}
}

func TestEnvFile_Rejects(t *testing.T) {
	ef := NewEnvFile(afero.NewMemMapFs(), ".env")
	assert.Error(t, ef.Set("BAD KEY", "x"))
	assert.Error(t, ef.Set("1KEY", "x"))
	assert.Error(t, ef.Set("KEY", "two\nlines"))
	assert.ErrorContains(t, ef.Set("KEY", `C:\keys\`), "backslash")
	assert.ErrorContains(t, ef.Set("KEY", `it's "quoted"`), "cannot end with")
}

func TestEnvFile_ReadMissing(t *testing.T) {
	values, err := NewEnvFile(afero.NewMemMapFs(), ".env").Read()
	require.NoError(t, err)
	assert.Empty(t, values)
}

func TestMaskKey(t *testing.T) {
	tests := []struct {
		in, want string
	}{
		{"", "(not set)"},
		{"short", "*****"},
		{"sk-ant-REDACTED", "sk-ant-api...WXYZ"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, MaskKey(tt.in))
	}
}
