// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package engagement

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"vibedev/internal/models"
	"vibedev/internal/store"
)

// ProfileStats aggregates the counters shown on a public profile. The
// preferred path is the profile_stats database function, which computes
// everything in one round trip. When the schema lacks the function
// (undefined_function from the driver) the counters are composed from
// individual count queries instead.
func (s *Service) ProfileStats(ctx context.Context, userID uuid.UUID) (*models.ProfileStats, error) {
	st, err := s.stats.ProfileStats(ctx, userID)
	if err == nil {
		return st, nil
	}
	if !store.IsUndefinedFunction(err) {
		return nil, err
	}

	s.log.Warn("profile_stats function missing, composing counts", "user_id", userID)
	return s.composeStats(ctx, userID)
}

// composeStats is the fallback path. Project and post counts come
// first; a user with neither has nothing to aggregate, so the fan-out
// is skipped entirely. The three engagement counts then run in
// parallel, and each one that fails is logged and left at zero rather
// than aborting the others: a partially filled profile beats an error
// page.
func (s *Service) composeStats(ctx context.Context, userID uuid.UUID) (*models.ProfileStats, error) {
	projects, err := s.projects.CountByAuthor(userID)
	if err != nil {
		return nil, fmt.Errorf("compose profile stats: %w", err)
	}
	posts, err := s.posts.CountPublishedByAuthor(userID)
	if err != nil {
		return nil, fmt.Errorf("compose profile stats: %w", err)
	}

	st := &models.ProfileStats{Projects: projects, Posts: posts}
	if projects == 0 && posts == 0 {
		return st, nil
	}

	var likes, projectViews, postViews int

	g, _ := errgroup.WithContext(ctx)
	g.Go(func() error {
		n, err := s.likes.CountOnUserProjects(userID)
		if err != nil {
			s.log.Error("profile stats: likes count failed", "user_id", userID, "error", err)
			return nil
		}
		likes = n
		return nil
	})
	g.Go(func() error {
		n, err := s.views.CountOnUserProjects(userID)
		if err != nil {
			s.log.Error("profile stats: project views count failed", "user_id", userID, "error", err)
			return nil
		}
		projectViews = n
		return nil
	})
	g.Go(func() error {
		n, err := s.views.CountOnUserPublishedPosts(userID)
		if err != nil {
			s.log.Error("profile stats: post views count failed", "user_id", userID, "error", err)
			return nil
		}
		postViews = n
		return nil
	})
	// Sub-queries capture failures themselves, so Wait never errors.
	_ = g.Wait()

	st.Likes = likes
	st.Views = projectViews + postViews
	return st, nil
}
