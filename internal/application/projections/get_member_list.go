package projections

import (
	"context"
	"time"

	memberstore "studiobook/internal/adapters/storage/member"
	"studiobook/internal/application/listutil"
	"studiobook/internal/domain/member"
)

// ListMemberStore defines the member store interface for the list projection.
type ListMemberStore interface {
	List(ctx context.Context, filter memberstore.ListFilter) ([]member.Member, error)
	Count(ctx context.Context, filter memberstore.ListFilter) (int, error)
}

// GetMemberListQuery carries input for the member list projection.
type GetMemberListQuery struct {
	Params listutil.ListParams
}

// MemberRow is one row of the admin member table.
type MemberRow struct {
	ID                string `json:"id"`
	Name              string `json:"name"`
	Email             string `json:"email"`
	Status            string `json:"status"`
	RemainingSessions int    `json:"remaining_sessions"`
	TotalSessions     int    `json:"total_sessions"`
	JoinDate          string `json:"join_date"`
	LastVisit         string `json:"last_visit,omitempty"`
	HasLogin          bool   `json:"has_login"`
}

// GetMemberListResult carries the query result.
type GetMemberListResult struct {
	Members  []MemberRow       `json:"members"`
	PageInfo listutil.PageInfo `json:"page_info"`
}

// GetMemberListDeps holds dependencies for the member list projection.
type GetMemberListDeps struct {
	MemberStore ListMemberStore
}

// MemberSortColumns are the sort keys the member list accepts.
var MemberSortColumns = []string{"name", "email", "status", "join_date", "remaining"}

// QueryGetMemberList retrieves one page of the admin member table.
// PRE: query.Params came from listutil parsing
// POST: Returns the page plus pagination metadata
func QueryGetMemberList(ctx context.Context, query GetMemberListQuery, deps GetMemberListDeps) (GetMemberListResult, error) {
	filter := memberstore.ListFilter{
		Status: query.Params.Filters["status"],
		Search: query.Params.Search,
		Sort:   query.Params.Sort,
		Dir:    query.Params.Dir,
	}

	total, err := deps.MemberStore.Count(ctx, filter)
	if err != nil {
		return GetMemberListResult{}, err
	}
	pageInfo := listutil.NewPageInfo(query.Params.Page, query.Params.PerPage, total)

	filter.Limit = pageInfo.PerPage
	filter.Offset = pageInfo.Offset()
	members, err := deps.MemberStore.List(ctx, filter)
	if err != nil {
		return GetMemberListResult{}, err
	}

	rows := make([]MemberRow, 0, len(members))
	for _, m := range members {
		row := MemberRow{
			ID:                m.ID,
			Name:              m.Name,
			Email:             m.Email,
			Status:            m.Status,
			RemainingSessions: m.RemainingSessions,
			TotalSessions:     m.TotalSessions,
			JoinDate:          m.JoinDate.Format("2006-01-02"),
			HasLogin:          m.AccountID != "",
		}
		if !m.LastVisit.IsZero() {
			row.LastVisit = m.LastVisit.Format(time.RFC3339)
		}
		rows = append(rows, row)
	}

	return GetMemberListResult{Members: rows, PageInfo: pageInfo}, nil
}
