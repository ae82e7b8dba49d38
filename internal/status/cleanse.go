package status

import (
	"slices"

	"github.com/veydris/embercore/internal/model"
)

// CleanseOptions select which statuses a cleanse removes. Control statuses
// are removed by default; set SkipControl to leave them. Debuff removal is
// opt-in. KeepUndispellable protects statuses flagged non-dispellable.
type CleanseOptions struct {
	IDs               []string
	Tags              []string
	Debuffs           bool
	SkipControl       bool
	KeepUndispellable bool
}

// Cleanse returns a new status list with every matching status removed.
func Cleanse(statuses []model.ActiveStatus, opts CleanseOptions) []model.ActiveStatus {
	out := make([]model.ActiveStatus, 0, len(statuses))
	for _, st := range statuses {
		if cleanseMatches(st, opts) && !(opts.KeepUndispellable && !st.Dispellable) {
			continue
		}
		out = append(out, st)
	}
	model.SortStatuses(out)
	return out
}

func cleanseMatches(st model.ActiveStatus, opts CleanseOptions) bool {
	if slices.Contains(opts.IDs, st.StatusID) {
		return true
	}
	if st.Category == model.CategoryControl && !opts.SkipControl {
		return true
	}
	if st.Category == model.CategoryDebuff && opts.Debuffs {
		return true
	}
	for _, tag := range opts.Tags {
		if slices.Contains(st.CleanseTags, tag) {
			return true
		}
	}
	return false
}
