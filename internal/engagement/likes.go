// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package engagement

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"vibedev/internal/models"
	"vibedev/internal/store"
)

// ToggleLike flips the like state of (entity, user) and reports the new
// state. It reads first and then writes; the unique index on the likes
// table is the backstop for the window between the two. An insert that
// loses a race and hits the constraint still means the user now likes
// the entity, so that case returns liked=true.
func (s *Service) ToggleLike(ctx context.Context, kind models.EntityKind, entityID, userID uuid.UUID) (bool, error) {
	exists, err := s.likes.Exists(kind, entityID, userID)
	if err != nil {
		return false, fmt.Errorf("toggle like: %w", err)
	}

	if exists {
		if err := s.likes.Delete(kind, entityID, userID); err != nil {
			return false, fmt.Errorf("toggle like: %w", err)
		}
		return false, nil
	}

	err = s.likes.Insert(kind, entityID, userID)
	if err != nil && !store.IsUniqueViolation(err) {
		return false, fmt.Errorf("toggle like: %w", err)
	}
	return true, nil
}

// BatchLikeStatus returns the like total and the caller's like state for
// every requested entity, from a single query. Duplicate ids collapse to
// one entry. Empty input returns an empty map without touching the
// database. On query failure every requested id maps to a zero status
// and the error is logged but not returned: listings render with zeroed
// counters rather than failing outright.
func (s *Service) BatchLikeStatus(ctx context.Context, kind models.EntityKind, ids []uuid.UUID, userID *uuid.UUID) map[uuid.UUID]models.LikeStatus {
	result := make(map[uuid.UUID]models.LikeStatus, len(ids))
	if len(ids) == 0 {
		return result
	}
	for _, id := range ids {
		result[id] = models.LikeStatus{}
	}

	likes, err := s.likes.ListByEntityIDs(kind, ids)
	if err != nil {
		s.log.Error("batch like status failed",
			"kind", string(kind),
			"entities", len(ids),
			"error", err)
		return result
	}

	for _, l := range likes {
		status := result[l.EntityID()]
		status.TotalLikes++
		if userID != nil && l.UserID == *userID {
			status.IsLiked = true
		}
		result[l.EntityID()] = status
	}
	return result
}
