package incentives

import "encoding/json"

// CurrentResponse is the public promotion payload: one free-form
// block per audience. Nil when no promotion is active.
type CurrentResponse struct {
	Cleaner   json.RawMessage `json:"cleaner"`
	Homeowner json.RawMessage `json:"homeowner"`
}

type ConfigPayload struct {
	Active    bool            `json:"active"`
	Cleaner   json.RawMessage `json:"cleaner"`
	Homeowner json.RawMessage `json:"homeowner"`
}

// ConfigResponse mirrors the admin screen contract: where the config
// came from, the raw config, and a pretty-printed copy for display.
type ConfigResponse struct {
	Source          string        `json:"source"`
	Config          ConfigPayload `json:"config"`
	FormattedConfig string        `json:"formattedConfig"`
}

type UpdateConfigRequest struct {
	Active    bool            `json:"active"`
	Cleaner   json.RawMessage `json:"cleaner"`
	Homeowner json.RawMessage `json:"homeowner"`
}
