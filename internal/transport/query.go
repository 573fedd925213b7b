package transport

import (
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/Lilw3n/multisite-platform-sub002/internal/domain/activity"
	"github.com/Lilw3n/multisite-platform-sub002/internal/domain/project"
)

var farFuture = time.Date(9999, 12, 31, 23, 59, 59, 0, time.UTC)

// parseFilter reads project filters from the query string. Multi-valued
// parameters accept repeated keys or comma-separated values. No filter
// parameters yields nil.
func parseFilter(q url.Values) (*project.Filter, error) {
	f := &project.Filter{
		Search:         q.Get("search"),
		Status:         listParam[project.Status](q, "status"),
		Type:           listParam[project.Type](q, "type"),
		Priority:       listParam[project.Priority](q, "priority"),
		InterlocutorID: q.Get("interlocutorId"),
		CreatedBy:      q.Get("createdBy"),
		Tags:           listParam[string](q, "tags"),
	}
	empty := f.Search == "" && len(f.Status) == 0 && len(f.Type) == 0 && len(f.Priority) == 0 &&
		f.InterlocutorID == "" && f.CreatedBy == "" && len(f.Tags) == 0

	var err error
	if f.HasItems, err = boolParam(q, "hasItems"); err != nil {
		return nil, err
	}
	if f.HasFiles, err = boolParam(q, "hasFiles"); err != nil {
		return nil, err
	}
	from, to := q.Get("createdFrom"), q.Get("createdTo")
	if from != "" || to != "" {
		r := &project.DateRange{End: farFuture}
		if from != "" {
			if r.Start, err = parseTime("createdFrom", from); err != nil {
				return nil, err
			}
		}
		if to != "" {
			if r.End, err = parseTime("createdTo", to); err != nil {
				return nil, err
			}
		}
		f.DateRange = r
	}

	if empty && f.HasItems == nil && f.HasFiles == nil && f.DateRange == nil {
		return nil, nil
	}
	return f, nil
}

func parseSort(q url.Values) (*project.SortOptions, error) {
	field := q.Get("sortBy")
	if field == "" {
		return nil, nil
	}
	switch project.SortField(field) {
	case project.SortByName, project.SortByCreatedAt, project.SortByUpdatedAt, project.SortByLastActivity,
		project.SortByPriority, project.SortByStatus, project.SortByTotalItems:
	default:
		return nil, badRequest("unknown sortBy: " + field)
	}
	dir := project.SortDirection(q.Get("sortDirection"))
	switch dir {
	case "":
		dir = project.SortAsc
	case project.SortAsc, project.SortDesc:
	default:
		return nil, badRequest("sortDirection must be asc or desc")
	}
	return &project.SortOptions{Field: project.SortField(field), Direction: dir}, nil
}

func parseActivityOptions(q url.Values) (activity.ListOptions, error) {
	opts := activity.ListOptions{
		ProjectID: q.Get("projectId"),
		Types:     listParam[activity.Type](q, "types"),
	}
	if v := q.Get("limit"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n < 0 {
			return opts, badRequest("limit must be a non-negative integer")
		}
		opts.Limit = n
	}
	return opts, nil
}

func listParam[T ~string](q url.Values, key string) []T {
	var out []T
	for _, raw := range q[key] {
		for _, v := range strings.Split(raw, ",") {
			if v = strings.TrimSpace(v); v != "" {
				out = append(out, T(v))
			}
		}
	}
	return out
}

func boolParam(q url.Values, key string) (*bool, error) {
	v := q.Get(key)
	if v == "" {
		return nil, nil
	}
	b, err := strconv.ParseBool(v)
	if err != nil {
		return nil, badRequest(key + " must be a boolean")
	}
	return &b, nil
}

// parseTime accepts RFC 3339 timestamps or plain dates.
func parseTime(key, v string) (time.Time, error) {
	if t, err := time.Parse(time.RFC3339, v); err == nil {
		return t, nil
	}
	t, err := time.Parse(time.DateOnly, v)
	if err != nil {
		return time.Time{}, badRequest(key + " must be an RFC 3339 timestamp or YYYY-MM-DD date")
	}
	return t, nil
}
