package ollama

import "slices"

// Options holds generation parameters. Every field is optional: a nil field is
// left out of the request body entirely so the server applies its own default.
// An explicitly set zero value (temperature 0, seed 0) is sent as-is.
type Options struct {
	Temperature      *float64 `json:"temperature,omitempty" yaml:"temperature,omitempty"`
	TopP             *float64 `json:"top_p,omitempty" yaml:"top_p,omitempty"`
	TopK             *int     `json:"top_k,omitempty" yaml:"top_k,omitempty"`
	NumPredict       *int     `json:"num_predict,omitempty" yaml:"num_predict,omitempty"`
	Seed             *int     `json:"seed,omitempty" yaml:"seed,omitempty"`
	Stop             []string `json:"stop,omitempty" yaml:"stop,omitempty"`
	RepeatPenalty    *float64 `json:"repeat_penalty,omitempty" yaml:"repeat_penalty,omitempty"`
	PresencePenalty  *float64 `json:"presence_penalty,omitempty" yaml:"presence_penalty,omitempty"`
	FrequencyPenalty *float64 `json:"frequency_penalty,omitempty" yaml:"frequency_penalty,omitempty"`
	NumCtx           *int     `json:"num_ctx,omitempty" yaml:"num_ctx,omitempty"`
	NumGPU           *int     `json:"num_gpu,omitempty" yaml:"num_gpu,omitempty"`
	NumThread        *int     `json:"num_thread,omitempty" yaml:"num_thread,omitempty"`
}

func Ptr[T any](v T) *T {
	return &v
}

func (o *Options) IsZero() bool {
	return o == nil || (o.Temperature == nil &&
		o.TopP == nil &&
		o.TopK == nil &&
		o.NumPredict == nil &&
		o.Seed == nil &&
		o.Stop == nil &&
		o.RepeatPenalty == nil &&
		o.PresencePenalty == nil &&
		o.FrequencyPenalty == nil &&
		o.NumCtx == nil &&
		o.NumGPU == nil &&
		o.NumThread == nil)
}

// Merge returns a new Options where every field left unset in o is taken from
// defaults. Neither receiver nor defaults is modified. It returns nil when both
// are nil so the options key stays off the wire.
func (o *Options) Merge(defaults *Options) *Options {
	if o == nil && defaults == nil {
		return nil
	}

	var own, base Options
	if o != nil {
		own = *o
	}
	if defaults != nil {
		base = *defaults
	}

	merged := &Options{
		Temperature:      pick(own.Temperature, base.Temperature),
		TopP:             pick(own.TopP, base.TopP),
		TopK:             pick(own.TopK, base.TopK),
		NumPredict:       pick(own.NumPredict, base.NumPredict),
		Seed:             pick(own.Seed, base.Seed),
		RepeatPenalty:    pick(own.RepeatPenalty, base.RepeatPenalty),
		PresencePenalty:  pick(own.PresencePenalty, base.PresencePenalty),
		FrequencyPenalty: pick(own.FrequencyPenalty, base.FrequencyPenalty),
		NumCtx:           pick(own.NumCtx, base.NumCtx),
		NumGPU:           pick(own.NumGPU, base.NumGPU),
		NumThread:        pick(own.NumThread, base.NumThread),
	}

	switch {
	case own.Stop != nil:
		merged.Stop = slices.Clone(own.Stop)
	case base.Stop != nil:
		merged.Stop = slices.Clone(base.Stop)
	}

	return merged
}

func pick[T any](v, fallback *T) *T {
	if v != nil {
		return Ptr(*v)
	}
	if fallback != nil {
		return Ptr(*fallback)
	}
	return nil
}
