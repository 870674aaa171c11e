package api

// ProposeRequest is the body of POST /changes.
type ProposeRequest struct {
	Project   string            `json:"project"`
	Env       string            `json:"env"`
	Variables map[string]string `json:"variables"`
	Reason    string            `json:"reason"`
}

// DiffEntry is one line of a proposal diff. Type is one of
// "added", "removed", or "modified".
type DiffEntry struct {
	Type string `json:"type"`
	Key  string `json:"key"`
}

// ProposeResult is the server's answer to a proposal. Exactly one of
// ChangeID, Message, or Error carries the outcome: a change id when a
// review was opened, a message when the server had nothing to do, an
// error otherwise.
type ProposeResult struct {
	ChangeID string      `json:"changeId"`
	Diff     []DiffEntry `json:"diff"`
	Message  string      `json:"message"`
	Error    string      `json:"error"`
}

// HistoryEntry is one past change of an environment.
type HistoryEntry struct {
	ChangeID   string `json:"changeId"`
	Status     string `json:"status"`
	ProposedBy string `json:"proposedBy"`
	Reason     string `json:"reason"`
}

// EnvHistory is the server's record of an environment: the variable
// names currently live plus the change history.
type EnvHistory struct {
	CurrentKeys []string       `json:"currentKeys"`
	History     []HistoryEntry `json:"history"`
}

// ChangeDetail describes one change. Error is set when the server
// rejects the lookup (unknown id, for example).
type ChangeDetail struct {
	ChangeID   string `json:"changeId"`
	Status     string `json:"status"`
	Project    string `json:"project"`
	Env        string `json:"env"`
	ProposedBy string `json:"proposedBy"`
	Reason     string `json:"reason"`
	Error      string `json:"error"`
}

// PendingChange is one entry of the pending-changes listing.
type PendingChange struct {
	ChangeID string `json:"changeId"`
	Project  string `json:"project"`
	Env      string `json:"env"`
	Reason   string `json:"reason"`
}

// pendingResponse wraps the pending-changes listing on the wire.
type pendingResponse struct {
	Changes []PendingChange `json:"changes"`
}
