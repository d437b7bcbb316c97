package services

import (
	"time"

	"github.com/google/uuid"
)

// planRecord is the slice of a record the diff needs: identity plus the
// server-authoritative update timestamp. The zero time sorts below every
// real timestamp, so records without one always lose a comparison.
type planRecord interface {
	RecordID() uuid.UUID
	RecordUpdatedAt() time.Time
}

// plan is the mutation set that brings the local records of one scope into
// agreement with a remote snapshot. It is applied in a single bulk write
// after the comparison pass, never interleaved with it.
type plan[T planRecord] struct {
	upserts   []T
	deleteIDs []uuid.UUID
}

// buildPlan diffs local against remote. Deletions are purge-by-absence:
// every local id missing from the snapshot. Upserts are remote records that
// are new locally or strictly newer than the local copy; a tie means the
// local copy is already current and nothing is written, which keeps the
// whole operation idempotent.
func buildPlan[T planRecord](local, remote []T) plan[T] {
	remoteIDs := make(map[uuid.UUID]struct{}, len(remote))
	for _, r := range remote {
		remoteIDs[r.RecordID()] = struct{}{}
	}

	var p plan[T]
	localUpdated := make(map[uuid.UUID]time.Time, len(local))
	for _, l := range local {
		id := l.RecordID()
		localUpdated[id] = l.RecordUpdatedAt()
		if _, present := remoteIDs[id]; !present {
			p.deleteIDs = append(p.deleteIDs, id)
		}
	}

	for _, r := range remote {
		updated, exists := localUpdated[r.RecordID()]
		if !exists || r.RecordUpdatedAt().After(updated) {
			p.upserts = append(p.upserts, r)
		}
	}
	return p
}

// protect removes the given ids from the deletion pass. Used for records the
// snapshot does contain but that could not be staged (malformed payloads):
// the remote still has them, so absence must not be inferred.
func (p *plan[T]) protect(ids map[uuid.UUID]struct{}) {
	if len(ids) == 0 {
		return
	}
	kept := p.deleteIDs[:0]
	for _, id := range p.deleteIDs {
		if _, skip := ids[id]; !skip {
			kept = append(kept, id)
		}
	}
	p.deleteIDs = kept
}
