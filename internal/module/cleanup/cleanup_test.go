package cleanup

import (
	"context"
	"net/http"
	"testing"
	"time"

	"facility-work-tracker/internal/global/response"
	"facility-work-tracker/internal/model"
	"facility-work-tracker/internal/module/common"
	"facility-work-tracker/internal/store"
	"facility-work-tracker/test"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"
	"gorm.io/datatypes"
)

func fp(v float64) *float64 { return &v }

type fixture struct {
	r      *gin.Engine
	stores *store.Stores
	ids    map[string]string
	admin  string
}

func setup(t *testing.T) *fixture {
	test.Setup(t)
	ctx := context.Background()
	stores := store.NewMemoryStores()
	col := model.College{Name: "North"}
	require.NoError(t, stores.Colleges.Create(ctx, &col))

	date := datatypes.Date(time.Date(2024, 3, 4, 0, 0, 0, 0, time.UTC))
	base := time.Date(2024, 3, 4, 8, 0, 0, 0, time.UTC)
	valid := func(desc, college string, minute int) *model.WorkEntry {
		e := &model.WorkEntry{
			CollegeID: college, Location: "Block A", WorkDescription: desc, WorkType: "painting",
			Date: date, Quantity: fp(1),
		}
		e.CreatedAt = base.Add(time.Duration(minute) * time.Minute)
		return e
	}
	entries := map[string]*model.WorkEntry{
		"original":  valid("Paint corridor", col.ID, 1),
		"duplicate": valid("Paint corridor", col.ID, 2),
		"test":      valid("demo entry", col.ID, 3),
		"orphan":    valid("Fix door", "gone", 4),
		"clean":     valid("Fix window", col.ID, 5),
	}
	entries["incomplete"] = valid("Fix roof", col.ID, 6)
	entries["incomplete"].Quantity = nil

	ids := map[string]string{}
	// 倒序写入，检测时仍按创建时间保留最早的一条
	for _, name := range []string{"incomplete", "clean", "orphan", "test", "duplicate", "original"} {
		require.NoError(t, stores.WorkEntries.Create(ctx, entries[name]))
		ids[name] = entries[name].ID
	}

	m := &ModuleCleanup{Deps: common.Deps{Stores: stores}}
	m.Init()
	r := gin.New()
	m.InitRouter(r.Group("/api"))
	return &fixture{r: r, stores: stores, ids: ids, admin: test.Token(t, model.UserRoleAdmin)}
}

func TestReport(t *testing.T) {
	f := setup(t)
	var rep reportResp
	test.Data(t, test.DoJSON(t, f.r, http.MethodGet, "/api/cleanup/report", f.admin, nil), &rep)

	require.Len(t, rep.Duplicates, 1)
	require.Equal(t, f.ids["duplicate"], rep.Duplicates[0].ID)
	require.Len(t, rep.Incomplete, 1)
	require.Len(t, rep.Test, 1)
	require.Len(t, rep.Orphaned, 1)
	require.Equal(t, 4, rep.Counts[model.CleanupAll])
}

func TestRunAndHistory(t *testing.T) {
	f := setup(t)
	ctx := context.Background()

	var run model.CleanupRun
	test.Data(t, test.DoJSON(t, f.r, http.MethodPost, "/api/cleanup/run", f.admin, map[string]string{"type": "orphaned"}), &run)
	require.Equal(t, 1, run.Count)
	require.Equal(t, []string{f.ids["orphan"]}, []string(run.DeletedIDs))
	require.Equal(t, "tester@example.com", run.Operator)
	_, err := f.stores.WorkEntries.Get(ctx, f.ids["orphan"])
	require.ErrorIs(t, err, store.ErrNotFound)

	test.Data(t, test.DoJSON(t, f.r, http.MethodPost, "/api/cleanup/run", f.admin, map[string]string{"type": "all"}), &run)
	require.Equal(t, 3, run.Count)

	n, _ := f.stores.WorkEntries.Count(ctx)
	require.EqualValues(t, 2, n)
	_, err = f.stores.WorkEntries.Get(ctx, f.ids["original"])
	require.NoError(t, err)

	var history []model.CleanupRun
	test.Data(t, test.DoJSON(t, f.r, http.MethodGet, "/api/cleanup/history", f.admin, nil), &history)
	require.Len(t, history, 2)
}

func TestRunValidationAndRole(t *testing.T) {
	f := setup(t)
	resp := test.DoJSON(t, f.r, http.MethodPost, "/api/cleanup/run", f.admin, map[string]string{"type": "everything"})
	require.Equal(t, response.ErrInvalidRequest.Code, resp.Code)

	resp = test.DoJSON(t, f.r, http.MethodPost, "/api/cleanup/run", f.admin, map[string]string{})
	require.Equal(t, response.ErrInvalidRequest.Code, resp.Code)

	resp = test.DoJSON(t, f.r, http.MethodGet, "/api/cleanup/report", test.Token(t, model.UserRoleManager), nil)
	test.ErrorEqual(t, response.ErrForbidden, resp)
}
