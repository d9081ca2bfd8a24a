package timeline

type RollupRequest struct {
	Monitor string `json:"monitor" validate:"required"`
	LocalTz string `json:"localTz"`
}

// RollupResponse maps each minute timestamp to its entry.
type RollupResponse map[int64]Entry
