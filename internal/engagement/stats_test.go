// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package engagement

import (
	"context"
	"testing"

	"vibedev/internal/models"
)

func TestProfileStatsEmptyUser(t *testing.T) {
	svc, db := testService(t)

	u := testUser(t, db, "eng-stats-empty")

	st, err := svc.ProfileStats(context.Background(), u.ID)
	if err != nil {
		t.Fatalf("ProfileStats: %v", err)
	}
	if st.Projects != 0 || st.Posts != 0 || st.Likes != 0 || st.Views != 0 {
		t.Errorf("expected all-zero stats, got %+v", st)
	}
}

func TestProfileStatsCountsEngagement(t *testing.T) {
	svc, db := testService(t)
	ctx := context.Background()

	owner := testUser(t, db, "eng-stats-owner")
	fan := testUser(t, db, "eng-stats-fan")
	p := testProject(t, db, owner.ID, "Stats Target")

	if _, err := svc.ToggleLike(ctx, models.EntityProject, p.ID, fan.ID); err != nil {
		t.Fatalf("seed like: %v", err)
	}
	sess := "eng-stats-session"
	svc.RecordView(ctx, models.EntityProject, p.ID, &sess, nil)

	st, err := svc.ProfileStats(ctx, owner.ID)
	if err != nil {
		t.Fatalf("ProfileStats: %v", err)
	}
	if st.Projects != 1 {
		t.Errorf("projects: got %d, want 1", st.Projects)
	}
	if st.Likes != 1 {
		t.Errorf("likes: got %d, want 1", st.Likes)
	}
	if st.Views != 1 {
		t.Errorf("views: got %d, want 1", st.Views)
	}
}

func TestComposeStatsMatchesFunction(t *testing.T) {
	svc, db := testService(t)
	ctx := context.Background()

	owner := testUser(t, db, "eng-stats-compose")
	fan := testUser(t, db, "eng-stats-cfan")
	p := testProject(t, db, owner.ID, "Compose Target")

	if _, err := svc.ToggleLike(ctx, models.EntityProject, p.ID, fan.ID); err != nil {
		t.Fatalf("seed like: %v", err)
	}
	sess := "eng-stats-csession"
	svc.RecordView(ctx, models.EntityProject, p.ID, &sess, nil)

	// The fallback path must agree with the database function.
	fromFn, err := svc.ProfileStats(ctx, owner.ID)
	if err != nil {
		t.Fatalf("ProfileStats: %v", err)
	}
	composed, err := svc.composeStats(ctx, owner.ID)
	if err != nil {
		t.Fatalf("composeStats: %v", err)
	}
	if *fromFn != *composed {
		t.Errorf("paths disagree: function %+v, composed %+v", fromFn, composed)
	}
}
