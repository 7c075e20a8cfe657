package importer

import (
	"strings"

	"github.com/MikeSquared-Agency/linekb/internal/knowledge"
)

// Deduper drops entries whose question was already seen during a run. The
// same question asked across several exports is only written once, and an
// explicit FAQ entry (priority 1) beats an inferred pair. Questions are
// compared per account, ignoring whitespace and case.
type Deduper struct {
	seen map[string]int
}

func NewDeduper() *Deduper {
	return &Deduper{seen: make(map[string]int)}
}

// Filter returns the entries of one batch that are new to the run, keeping
// batch order. It also reports how many entries it dropped.
func (d *Deduper) Filter(entries []knowledge.Entry) ([]knowledge.Entry, int) {
	out := make([]knowledge.Entry, 0, len(entries))
	local := make(map[string]int)
	dropped := 0

	for _, e := range entries {
		k := dedupKey(e)
		if p, ok := d.seen[k]; ok && p <= e.Priority {
			dropped++
			continue
		}
		if idx, ok := local[k]; ok {
			if e.Priority < out[idx].Priority {
				out[idx] = e
			}
			dropped++
			continue
		}
		local[k] = len(out)
		out = append(out, e)
	}

	for _, e := range out {
		d.seen[dedupKey(e)] = e.Priority
	}
	return out, dropped
}

func dedupKey(e knowledge.Entry) string {
	q := strings.ToLower(strings.Join(strings.Fields(e.Question), ""))
	return knowledge.BaseSource(e.Source) + "\x00" + q
}
