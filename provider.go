package multitool

// Provider names a model backend. The zero value means "unresolved"; the
// client package infers a Provider from the model name when one is not
// given explicitly.
type Provider string

const (
	ProviderAnthropic Provider = "anthropic"
	ProviderOpenAI    Provider = "openai"
	ProviderGoogle    Provider = "google"
)

func (p Provider) String() string { return string(p) }
