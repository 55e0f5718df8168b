package llmclient

import (
	"context"
	"encoding/json"

	genai "google.golang.org/genai"
)

// FakeClient returns deterministic payloads for offline runs and tests.
// Zero-value fields fall back to canned defaults.
type FakeClient struct {
	JSON json.RawMessage
	Text string
}

func NewFakeClient() *FakeClient { return &FakeClient{} }

func (f *FakeClient) Name() string { return "FakeLLM" }
func (f *FakeClient) Close() error { return nil }

func (f *FakeClient) GenerateJSON(ctx context.Context, prompt string, schema *genai.Schema) (json.RawMessage, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if len(f.JSON) > 0 {
		return f.JSON, nil
	}
	return json.Marshal(map[string]any{
		"readinessScore": 82,
		"suggestions": []string{
			"Use safe-area insets around the header and bottom navigation.",
			"Adopt Material Design touch targets of at least 48dp.",
			"Replace hover-only interactions with tap states.",
		},
		"suggestedFeatures": []string{"PushNotifications", "SplashScreen", "App"},
		"codeSnippet": "import { CapacitorConfig } from '@capacitor/cli';\n\n" +
			"const config: CapacitorConfig = {\n  appId: 'com.myapp.pro',\n  appName: 'Demo',\n  webDir: 'dist'\n};\n\nexport default config;\n",
		"androidRequirements": []string{"minSdkVersion 23", "targetSdkVersion 34", "Gradle 8.0"},
	})
}

func (f *FakeClient) GenerateText(ctx context.Context, prompt string) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	if f.Text != "" {
		return f.Text, nil
	}
	return "import { useEffect } from 'react';\n" +
		"import { PushNotifications } from '@capacitor/push-notifications';\n\n" +
		"// useNativeFeatures registers native listeners once.\n" +
		"export function useNativeFeatures() {\n" +
		"  useEffect(() => {\n" +
		"    PushNotifications.requestPermissions();\n" +
		"  }, []);\n" +
		"}\n", nil
}
