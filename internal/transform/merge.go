package transform

import (
	"dario.cat/mergo"
)

// Merge deep-merges pending into committed and returns the result. Pending
// wins on conflicting leaves, untouched committed branches are preserved,
// and nil values on the pending side are dropped rather than overwriting.
// Neither argument is mutated.
func Merge(committed, pending Config) (Config, error) {
	merged := committed.clone()
	if merged == nil {
		merged = Config{}
	}

	if err := mergo.Merge(&merged, pending.clone(), mergo.WithOverride); err != nil {
		return nil, err
	}

	return merged, nil
}

func (c Config) clone() Config {
	if c == nil {
		return nil
	}

	out := make(Config, len(c))
	for kind, params := range c {
		cp := make(map[string]interface{}, len(params))
		for k, v := range params {
			if v == nil {
				continue
			}
			cp[k] = v
		}
		out[kind] = cp
	}
	return out
}
