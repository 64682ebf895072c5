// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package engagement

import (
	"context"
	"time"

	"github.com/google/uuid"

	"vibedev/internal/models"
	"vibedev/internal/store"
)

// RecordView counts one view of an entity for the current UTC calendar
// day. At most one view per (entity, session, day) is stored; the
// partial unique index enforces this and a resulting unique violation
// is success, the view was already counted. Any other error is logged
// and swallowed: view counting must never surface to the caller.
func (s *Service) RecordView(ctx context.Context, kind models.EntityKind, entityID uuid.UUID, sessionID *string, userID *uuid.UUID) {
	err := s.views.Insert(kind, entityID, sessionID, userID, time.Now().UTC())
	if err == nil || store.IsUniqueViolation(err) {
		return
	}
	// The log line is the only place a fire-and-forget failure can
	// surface, so a detached-timeout expiry is reported too.
	s.log.Error("record view failed",
		"kind", string(kind),
		"entity_id", entityID,
		"timed_out", ctx.Err() != nil,
		"error", err)
}

// RecordViewAsync records a view from a detached goroutine with its own
// timeout, so a slow or failing insert lands in the log and never in
// the response. Handlers call this fire-and-forget.
func (s *Service) RecordViewAsync(kind models.EntityKind, entityID uuid.UUID, sessionID *string, userID *uuid.UUID) {
	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), viewTimeout)
		defer cancel()
		s.RecordView(ctx, kind, entityID, sessionID, userID)
	}()
}

// ViewCount returns the stored view total for one entity.
func (s *Service) ViewCount(ctx context.Context, kind models.EntityKind, entityID uuid.UUID) (int, error) {
	return s.views.CountByEntity(kind, entityID)
}
