package ai

// Options tune a provider at construction time.
type Options struct {
	Model       string
	Temperature float32
	// JSONOnly asks the provider to constrain output to a JSON object when it
	// supports that mode.
	JSONOnly bool
}

const (
	DefaultGeminiModel = "gemini-2.0-flash"
	DefaultOpenAIModel = "gpt-4o-mini"
	DefaultTemperature = 0.4
)

func (o Options) withDefaults(model string) Options {
	if o.Model == "" {
		o.Model = model
	}
	if o.Temperature == 0 {
		o.Temperature = DefaultTemperature
	}
	return o
}
