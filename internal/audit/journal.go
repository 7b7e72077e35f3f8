package audit

import (
	"context"
	"fmt"
	"log"
	"strconv"

	"github.com/ziadkadry99/asset-atlas/internal/selection"
	"github.com/ziadkadry99/asset-atlas/internal/view"
)

// Journal records exploration events from one actor into a Store. It
// implements view.Notifier. A nil *Journal records nothing.
type Journal struct {
	store *Store
	actor Actor
}

// NewJournal creates a journal writing entries for actor.
func NewJournal(store *Store, actor Actor) *Journal {
	return &Journal{store: store, actor: actor}
}

// Store returns the underlying store.
func (j *Journal) Store() *Store { return j.store }

// ViewChanged implements view.Notifier.
func (j *Journal) ViewChanged(c view.Change) {
	if j == nil {
		return
	}
	entry := Entry{Action: ActionViewChanged, View: c.Label}
	if c.Graph != nil {
		entry.Detail = fmt.Sprintf("%d nodes, %d edges", c.Graph.Len(), c.Graph.EdgeCount())
	}
	j.record(context.Background(), entry)
}

// RecordPick logs the outcome of resolving a pick in the named view.
func (j *Journal) RecordPick(ctx context.Context, viewLabel string, index int, e selection.Entity, err error) {
	if j == nil {
		return
	}
	entry := Entry{View: viewLabel, Action: ActionNodePicked}
	if err != nil {
		entry.Action = ActionPickFailed
		entry.Subject = "#" + strconv.Itoa(index)
		entry.Detail = err.Error()
	} else {
		entry.Subject = e.ID()
	}
	j.record(ctx, entry)
}

func (j *Journal) record(ctx context.Context, e Entry) {
	e.Actor = j.actor
	if err := j.store.Log(ctx, e); err != nil {
		log.Printf("audit: %v", err)
	}
}
