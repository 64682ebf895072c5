// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package engagement

import (
	"testing"
	"time"

	"github.com/google/uuid"

	"vibedev/internal/models"
)

func projectAt(title string, created time.Time, likes int) models.ProjectWithEngagement {
	return models.ProjectWithEngagement{
		Project: models.Project{
			ID:        uuid.New(),
			Title:     title,
			CreatedAt: created,
		},
		LikeCount: likes,
	}
}

func titles(projects []models.ProjectWithEngagement) []string {
	out := make([]string, len(projects))
	for i, p := range projects {
		out[i] = p.Title
	}
	return out
}

func TestSortProjects(t *testing.T) {
	base := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)

	tests := []struct {
		name string
		mode models.ProjectSort
		want []string
	}{
		{"newest orders by creation date", models.SortNewest, []string{"newest", "middle", "oldest"}},
		{"top orders by likes then recency", models.SortTop, []string{"middle", "newest", "oldest"}},
		{"trending matches top", models.SortTrending, []string{"middle", "newest", "oldest"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			projects := []models.ProjectWithEngagement{
				projectAt("oldest", base, 3),
				projectAt("middle", base.AddDate(0, 1, 0), 7),
				projectAt("newest", base.AddDate(0, 2, 0), 3),
			}

			SortProjects(projects, tt.mode)

			got := titles(projects)
			for i := range tt.want {
				if got[i] != tt.want[i] {
					t.Fatalf("order: got %v, want %v", got, tt.want)
				}
			}
		})
	}
}

func TestSortProjectsLikeTieBreaksByRecency(t *testing.T) {
	base := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	projects := []models.ProjectWithEngagement{
		projectAt("older-tied", base, 5),
		projectAt("newer-tied", base.AddDate(0, 0, 10), 5),
	}

	SortProjects(projects, models.SortTop)

	if projects[0].Title != "newer-tied" {
		t.Errorf("tie-break: got %v", titles(projects))
	}
}

func TestJoinEngagement(t *testing.T) {
	p1 := models.Project{ID: uuid.New(), Title: "one"}
	p2 := models.Project{ID: uuid.New(), Title: "two"}

	statuses := map[uuid.UUID]models.LikeStatus{
		p1.ID: {TotalLikes: 4, IsLiked: true},
	}

	joined := JoinEngagement([]models.Project{p1, p2}, statuses)

	if len(joined) != 2 {
		t.Fatalf("len: got %d, want 2", len(joined))
	}
	if joined[0].LikeCount != 4 || !joined[0].IsLiked {
		t.Errorf("p1 engagement: got %+v", joined[0])
	}
	// Entities absent from the status map render with zeroed counters.
	if joined[1].LikeCount != 0 || joined[1].IsLiked {
		t.Errorf("p2 engagement: got %+v", joined[1])
	}
}
