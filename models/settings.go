package models

// UserConfig is the single persisted selection of the agent's user.
type UserConfig struct {
	Email     string   `bson:"email" json:"email"`
	Interests []string `bson:"interests" json:"interests"`
}

// SaveConfigRequest is the payload accepted by the config endpoints and form.
type SaveConfigRequest struct {
	Email     string   `json:"email" form:"email"`
	Interests []string `json:"interests" form:"interests"`
}

type ScheduleStatus struct {
	Active   bool        `json:"active"`
	Jobs     int         `json:"jobs"`
	At       string      `json:"at"`
	Timezone string      `json:"timezone"`
	NextRun  string      `json:"next_run,omitempty"`
	Config   *UserConfig `json:"config,omitempty"`
}
