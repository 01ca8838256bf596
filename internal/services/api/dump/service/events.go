package service

import (
	"context"
	"time"
)

// eventsTable collects workflow lifecycle events for offline analysis
const eventsTable = "workflow_events"

// emit writes one lifecycle event to clickhouse. Best effort; the workflow
// never waits on, or fails because of, the analytics sink
func (s *Service) emit(userID, kind string, detail string) {
	if s.ch == nil {
		return
	}
	row := []any{time.Now().UTC(), userID, kind, detail}
	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := s.ch.Insert(ctx, eventsTable, [][]any{row}); err != nil {
			s.log.Warn().Err(err).Str("kind", kind).Msg("workflow event insert failed")
		}
	}()
}
