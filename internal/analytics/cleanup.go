package analytics

import (
	"strings"
	"time"

	"facility-work-tracker/internal/model"
)

var testKeywords = []string{"test", "demo", "sample", "dummy", "temp", "trial"}

type CleanupReport struct {
	Duplicates []model.WorkEntry `json:"duplicateEntries"`
	Incomplete []model.WorkEntry `json:"incompleteEntries"`
	Test       []model.WorkEntry `json:"testEntries"`
	Orphaned   []model.WorkEntry `json:"orphanedEntries"`
}

func (r *CleanupReport) Total() int {
	return len(r.IDs(model.CleanupAll))
}

// IDs 某一类问题工单的 ID，all 为各类去重后的并集
func (r *CleanupReport) IDs(t model.CleanupType) []string {
	switch t {
	case model.CleanupDuplicate:
		return ids(r.Duplicates)
	case model.CleanupIncomplete:
		return ids(r.Incomplete)
	case model.CleanupTest:
		return ids(r.Test)
	case model.CleanupOrphaned:
		return ids(r.Orphaned)
	case model.CleanupAll:
		return Union(ids(r.Duplicates), ids(r.Incomplete), ids(r.Test), ids(r.Orphaned))
	}
	return nil
}

func Cleanup(entries []model.WorkEntry, colleges []model.College) CleanupReport {
	return CleanupReport{
		Duplicates: FindDuplicates(entries),
		Incomplete: FindIncomplete(entries),
		Test:       FindTestEntries(entries),
		Orphaned:   FindOrphaned(entries, colleges),
	}
}

// FindDuplicates 学院、位置、描述、日期、楼栋、楼层、房间均相同视为重复，保留第一条
func FindDuplicates(entries []model.WorkEntry) []model.WorkEntry {
	seen := make(map[string]struct{}, len(entries))
	var out []model.WorkEntry
	for _, e := range entries {
		key := strings.Join([]string{
			e.CollegeID, e.Location, e.WorkDescription, model.FormatDate(e.Date), e.Block, e.Floor, e.Room,
		}, "\x00")
		if _, ok := seen[key]; ok {
			out = append(out, e)
			continue
		}
		seen[key] = struct{}{}
	}
	return out
}

// FindIncomplete 缺少必填字段或数量不为正
func FindIncomplete(entries []model.WorkEntry) []model.WorkEntry {
	var out []model.WorkEntry
	for _, e := range entries {
		if blank(e.CollegeID) || blank(e.Location) || blank(e.WorkDescription) || blank(e.WorkType) ||
			time.Time(e.Date).IsZero() || e.Quantity == nil || *e.Quantity <= 0 {
			out = append(out, e)
		}
	}
	return out
}

func FindTestEntries(entries []model.WorkEntry) []model.WorkEntry {
	var out []model.WorkEntry
	for _, e := range entries {
		text := strings.ToLower(strings.Join([]string{e.WorkDescription, e.Location, e.Block, e.Floor, e.Room}, "\n"))
		for _, kw := range testKeywords {
			if strings.Contains(text, kw) {
				out = append(out, e)
				break
			}
		}
	}
	return out
}

// FindOrphaned 引用的学院已不存在
func FindOrphaned(entries []model.WorkEntry, colleges []model.College) []model.WorkEntry {
	known := make(map[string]struct{}, len(colleges))
	for _, c := range colleges {
		known[c.ID] = struct{}{}
	}
	var out []model.WorkEntry
	for _, e := range entries {
		if _, ok := known[e.CollegeID]; !ok {
			out = append(out, e)
		}
	}
	return out
}

// Union 按首次出现顺序去重合并
func Union(lists ...[]string) []string {
	seen := make(map[string]struct{})
	out := make([]string, 0)
	for _, l := range lists {
		for _, id := range l {
			if _, ok := seen[id]; ok {
				continue
			}
			seen[id] = struct{}{}
			out = append(out, id)
		}
	}
	return out
}

func ids(entries []model.WorkEntry) []string {
	out := make([]string, len(entries))
	for i := range entries {
		out[i] = entries[i].ID
	}
	return out
}

func blank(s string) bool {
	return strings.TrimSpace(s) == ""
}
