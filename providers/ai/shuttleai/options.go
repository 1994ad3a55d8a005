package shuttleai

import "github.com/leofalp/llmadapt/providers/ai"

// ShuttleAI-specific option names.
const (
	OptionInternet  ai.OptionName = "internet"
	OptionRaw       ai.OptionName = "raw"
	OptionImage     ai.OptionName = "image"
	OptionCitations ai.OptionName = "citations"
	OptionTone      ai.OptionName = "tone"
)

// WithInternet lets the model browse the web.
func WithInternet(internet bool) ai.PredictOption {
	return ai.WithExtra(string(OptionInternet), internet)
}

// WithRaw requests the unprocessed model output.
func WithRaw(raw bool) ai.PredictOption {
	return ai.WithExtra(string(OptionRaw), raw)
}

// WithImage attaches an image URL to the request.
func WithImage(imageURL string) ai.PredictOption {
	return ai.WithExtra(string(OptionImage), imageURL)
}

// WithCitations toggles source citations. Bing-backed models only.
func WithCitations(citations bool) ai.PredictOption {
	return ai.WithExtra(string(OptionCitations), citations)
}

// WithTone sets the answer tone, e.g. "precise" or "creative". Bing-backed
// models only.
func WithTone(tone string) ai.PredictOption {
	return ai.WithExtra(string(OptionTone), tone)
}
