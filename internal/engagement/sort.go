// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package engagement

import (
	"sort"

	"github.com/google/uuid"

	"vibedev/internal/models"
)

// SortProjects orders a page of projects in memory according to the
// requested mode, using the like counts already fetched by the batch
// aggregator. newest is creation date descending. top and trending both
// order by like count descending with creation date as tie-break; a
// recency-weighted trending score is an open product question, so the
// two modes share one comparator until it is settled.
func SortProjects(projects []models.ProjectWithEngagement, mode models.ProjectSort) {
	switch mode {
	case models.SortNewest:
		sort.SliceStable(projects, func(i, j int) bool {
			return projects[i].CreatedAt.After(projects[j].CreatedAt)
		})
	default: // top and trending
		sort.SliceStable(projects, func(i, j int) bool {
			if projects[i].LikeCount != projects[j].LikeCount {
				return projects[i].LikeCount > projects[j].LikeCount
			}
			return projects[i].CreatedAt.After(projects[j].CreatedAt)
		})
	}
}

// JoinEngagement zips a project page with its batch like statuses into
// the listing shape handlers return.
func JoinEngagement(projects []models.Project, statuses map[uuid.UUID]models.LikeStatus) []models.ProjectWithEngagement {
	out := make([]models.ProjectWithEngagement, len(projects))
	for i, p := range projects {
		st := statuses[p.ID]
		out[i] = models.ProjectWithEngagement{
			Project:   p,
			LikeCount: st.TotalLikes,
			IsLiked:   st.IsLiked,
		}
	}
	return out
}
