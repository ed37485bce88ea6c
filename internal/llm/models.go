package llm

// modelAliases maps short names accepted in configuration to model IDs,
// per provider. Names not listed are sent as given.
var modelAliases = map[string]map[string]string{
	"openai": {
		"mini":  "gpt-4o-mini",
		"large": "gpt-4o",
	},
	"anthropic": {
		"claude-haiku":  "claude-haiku-4-5",
		"claude-sonnet": "claude-sonnet-4-5",
	},
	"gemini": {
		"gemini-flash": "gemini-2.5-flash",
		"gemini-pro":   "gemini-2.5-pro",
	},
}

// resolveModel returns the model ID for name under provider.
func resolveModel(provider, name string) string {
	if id, ok := modelAliases[provider][name]; ok {
		return id
	}
	return name
}
