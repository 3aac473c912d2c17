package credentials_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/blackboxalchemist/cmdcenter/internal/credentials"
)

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func TestAirtableToken(t *testing.T) {
	tests := []struct {
		name    string
		content string
		want    string
	}{
		{
			name:    "plain assignment",
			content: "AIRTABLE_API_KEY=pat123\n",
			want:    "pat123",
		},
		{
			name:    "quoted value",
			content: "AIRTABLE_API_KEY=\"pat456\"\n",
			want:    "pat456",
		},
		{
			name:    "export form",
			content: "export AIRTABLE_API_KEY=\"pat789\"\n",
			want:    "pat789",
		},
		{
			name:    "other keys ignored",
			content: "OTHER_KEY=nope\nAIRTABLE_API_KEY=pat123\nTRAILING=x\n",
			want:    "pat123",
		},
		{
			name:    "no matching key",
			content: "OTHER_KEY=nope\n",
			want:    "",
		},
		{
			name:    "lines without equals skipped",
			content: "# comment\n\nAIRTABLE_API_KEY=pat123\n",
			want:    "pat123",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := writeFile(t, "secrets.env", tt.content)
			token, err := credentials.AirtableToken(path)
			require.NoError(t, err)
			require.Equal(t, tt.want, token)
		})
	}
}

func TestAirtableToken_MissingFile(t *testing.T) {
	token, err := credentials.AirtableToken(filepath.Join(t.TempDir(), "absent.env"))
	require.NoError(t, err)
	require.Empty(t, token)
}

func TestGoogleToken(t *testing.T) {
	tests := []struct {
		name    string
		content string
		want    string
		wantErr bool
	}{
		{
			name:    "access_token key",
			content: `{"access_token": "ya29.abc"}`,
			want:    "ya29.abc",
		},
		{
			name:    "bare token key",
			content: `{"token": "ya29.def"}`,
			want:    "ya29.def",
		},
		{
			name:    "access_token wins over token",
			content: `{"access_token": "primary", "token": "secondary"}`,
			want:    "primary",
		},
		{
			name:    "invalid json",
			content: `{broken`,
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := writeFile(t, "token.json", tt.content)
			token, err := credentials.GoogleToken(path)
			if tt.wantErr {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
			require.Equal(t, tt.want, token)
		})
	}
}

func TestGoogleToken_MissingFile(t *testing.T) {
	token, err := credentials.GoogleToken(filepath.Join(t.TempDir(), "absent.json"))
	require.NoError(t, err)
	require.Empty(t, token)
}
