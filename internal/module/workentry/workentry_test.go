package workentry

import (
	"bytes"
	"context"
	"net/http"
	"testing"

	"facility-work-tracker/internal/analytics"
	"facility-work-tracker/internal/global/response"
	"facility-work-tracker/internal/metrics"
	"facility-work-tracker/internal/model"
	"facility-work-tracker/internal/module/common"
	"facility-work-tracker/internal/store"
	"facility-work-tracker/test"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
)

type fixture struct {
	r       *gin.Engine
	stores  *store.Stores
	college model.College
	reader  string
	writer  string
}

func setup(t *testing.T, strict bool) *fixture {
	test.Setup(t)
	stores := store.NewMemoryStores()
	m := &ModuleWorkEntry{
		Deps:         common.Deps{Stores: stores, Calc: metrics.NewCalculator(nil)},
		StrictStatus: strict,
	}
	m.Init()
	r := gin.New()
	m.InitRouter(r.Group("/api"))

	col := model.College{Name: "North"}
	require.NoError(t, stores.Colleges.Create(context.Background(), &col))
	return &fixture{
		r: r, stores: stores, college: col,
		reader: test.Token(t, model.UserRoleEmployee),
		writer: test.Token(t, model.UserRoleManager),
	}
}

func (f *fixture) create(t *testing.T, body map[string]any) analytics.Entry {
	t.Helper()
	if _, ok := body["college_id"]; !ok {
		body["college_id"] = f.college.ID
	}
	var e analytics.Entry
	test.Data(t, test.DoJSON(t, f.r, http.MethodPost, "/api/work-entry/create", f.writer, body), &e)
	return e
}

func TestCreateComputesMetrics(t *testing.T) {
	f := setup(t, false)
	e := f.create(t, map[string]any{
		"location": "Block A", "work_description": "Paint walls", "work_type": "Painting",
		"length": "10", "width": 12.5, "height": "", "date": "2024-03-04",
	})
	require.NotEmpty(t, e.ID)
	require.Equal(t, model.WorkPending, e.Status)
	require.Equal(t, "2024-03-04", model.FormatDate(e.Date))
	require.Nil(t, e.Height)
	require.NotNil(t, e.College)
	require.Equal(t, "North", e.College.Name)
	require.InDelta(t, 125, e.Metrics.SquareFeet, 1e-9)
	require.InDelta(t, 12, e.Metrics.RatePerSqft, 1e-9)
	require.InDelta(t, 1500, e.Metrics.FinalRate, 1e-9)
}

func TestCreateValidation(t *testing.T) {
	f := setup(t, false)
	cases := map[string]map[string]any{
		"missing description": {"location": "A"},
		"missing location":    {"work_description": "x"},
		"missing college":     {"college_id": "", "location": "A", "work_description": "x"},
		"unknown college":     {"college_id": "nope", "location": "A", "work_description": "x"},
		"bad date":            {"location": "A", "work_description": "x", "date": "04/03/2024"},
		"bad status":          {"location": "A", "work_description": "x", "status": "done"},
		"fractional quantity": {"location": "A", "work_description": "x", "quantity": 2.5},
		"fractional string":   {"location": "A", "work_description": "x", "quantity": "1.5"},
	}
	for name, body := range cases {
		t.Run(name, func(t *testing.T) {
			if _, ok := body["college_id"]; !ok {
				body["college_id"] = f.college.ID
			}
			resp := test.DoJSON(t, f.r, http.MethodPost, "/api/work-entry/create", f.writer, body)
			require.Equal(t, response.ErrInvalidRequest.Code, resp.Code)
		})
	}

	resp := test.DoJSON(t, f.r, http.MethodPost, "/api/work-entry/create", f.reader, map[string]any{})
	test.ErrorEqual(t, response.ErrForbidden, resp)
}

func TestPreviewMatchesSavedEntry(t *testing.T) {
	f := setup(t, false)
	body := map[string]any{
		"location": "A", "work_description": "Tiles", "work_type": "tiling",
		"length": 4, "width": 5, "quantity": 2, "rate_per_sqft": "1,000",
	}
	var preview previewResp
	test.Data(t, test.DoJSON(t, f.r, http.MethodPost, "/api/work-entry/preview", f.reader, body), &preview)
	require.True(t, preview.HasDimensions)
	require.InDelta(t, 40, preview.Metrics.SquareFeet, 1e-9)
	require.InDelta(t, 40000, preview.Metrics.FinalRate, 1e-9)

	saved := f.create(t, body)
	require.Equal(t, preview.Metrics, saved.Metrics)
}

func TestUpdatePartial(t *testing.T) {
	f := setup(t, false)
	e := f.create(t, map[string]any{"location": "A", "work_description": "x", "length": 2, "width": 3, "final_rate": 99})

	var got analytics.Entry
	test.Data(t, test.DoJSON(t, f.r, http.MethodPut, "/api/work-entry/update/"+e.ID, f.writer, map[string]any{
		"status": "completed", "final_rate": "",
	}), &got)
	require.Equal(t, model.WorkCompleted, got.Status)
	require.Equal(t, "A", got.Location)
	require.Nil(t, got.FinalRate)
	require.InDelta(t, 6, got.Metrics.SquareFeet, 1e-9)

	resp := test.DoJSON(t, f.r, http.MethodPut, "/api/work-entry/update/"+e.ID, f.writer, map[string]any{"location": " "})
	require.Equal(t, response.ErrInvalidRequest.Code, resp.Code)

	resp = test.DoJSON(t, f.r, http.MethodPut, "/api/work-entry/update/"+e.ID, f.writer, map[string]any{"quantity": 0.5})
	require.Equal(t, response.ErrInvalidRequest.Code, resp.Code)

	test.Data(t, test.DoJSON(t, f.r, http.MethodPut, "/api/work-entry/update/"+e.ID, f.writer, map[string]any{"quantity": "3"}), &got)
	require.Equal(t, 3.0, *got.Quantity)

	resp = test.DoJSON(t, f.r, http.MethodPut, "/api/work-entry/update/missing", f.writer, map[string]any{})
	test.ErrorEqual(t, response.ErrNotFound, resp)
}

func TestStrictStatus(t *testing.T) {
	f := setup(t, true)
	e := f.create(t, map[string]any{"location": "A", "work_description": "x"})
	path := "/api/work-entry/update/" + e.ID

	resp := test.DoJSON(t, f.r, http.MethodPut, path, f.writer, map[string]any{"status": "completed"})
	require.Equal(t, response.ErrStatusTransition.Code, resp.Code)

	test.NoError(t, test.DoJSON(t, f.r, http.MethodPut, path, f.writer, map[string]any{"status": "in-progress"}))
	test.NoError(t, test.DoJSON(t, f.r, http.MethodPut, path, f.writer, map[string]any{"status": "completed"}))

	resp = test.DoJSON(t, f.r, http.MethodPut, path, f.writer, map[string]any{"status": "pending"})
	require.Equal(t, response.ErrStatusTransition.Code, resp.Code)
}

func TestListFilterAndTotals(t *testing.T) {
	f := setup(t, false)
	f.create(t, map[string]any{"location": "Lab", "work_description": "Paint lab", "work_type": "painting", "final_rate": 100, "date": "2024-03-01"})
	f.create(t, map[string]any{"location": "Hall", "work_description": "Fix pipes", "work_type": "plumbing", "final_rate": 250, "date": "2024-03-10", "status": "completed"})
	f.create(t, map[string]any{"location": "Gym", "work_description": "Paint gym", "work_type": "Painting", "final_rate": 400, "date": "2024-04-02"})

	var all listResp
	test.Data(t, test.DoJSON(t, f.r, http.MethodGet, "/api/work-entry/list", f.reader, nil), &all)
	require.Len(t, all.Entries, 3)
	require.False(t, all.Filtered)
	require.InDelta(t, 750, all.Totals.FinalRate, 1e-9)

	var list listResp
	test.Data(t, test.DoJSON(t, f.r, http.MethodGet, "/api/work-entry/list?work_type=PAINTING&from=2024-03-01&to=2024-03-31", f.reader, nil), &list)
	require.True(t, list.Filtered)
	require.Len(t, list.Entries, 1)
	require.Equal(t, "Lab", list.Entries[0].Location)

	test.Data(t, test.DoJSON(t, f.r, http.MethodGet, "/api/work-entry/list?search=north&min_cost=200&status=all", f.reader, nil), &list)
	require.Len(t, list.Entries, 2)
	require.Equal(t, 2, list.Totals.Count)

	resp := test.DoJSON(t, f.r, http.MethodGet, "/api/work-entry/list?min_cost=abc", f.reader, nil)
	require.Equal(t, response.ErrInvalidRequest.Code, resp.Code)
}

func TestDeleteAndExport(t *testing.T) {
	f := setup(t, false)
	e := f.create(t, map[string]any{"location": "A", "work_description": "x", "length": 1, "width": 2})
	f.create(t, map[string]any{"location": "B", "work_description": "y"})

	test.NoError(t, test.DoJSON(t, f.r, http.MethodDelete, "/api/work-entry/delete/"+e.ID, f.writer, nil))
	test.ErrorEqual(t, response.ErrNotFound, test.DoJSON(t, f.r, http.MethodDelete, "/api/work-entry/delete/"+e.ID, f.writer, nil))

	w := test.Do(t, f.r, http.MethodGet, "/api/work-entry/export", f.reader, nil)
	require.Equal(t, http.StatusOK, w.Code)
	xl, err := excelize.OpenReader(bytes.NewReader(w.Body.Bytes()))
	require.NoError(t, err)
	rows, err := xl.GetRows("Work Entries")
	require.NoError(t, err)
	require.Len(t, rows, 2)
	require.Equal(t, "S.No", rows[0][0])
	require.Equal(t, "B", rows[1][3])
}

func TestRates(t *testing.T) {
	f := setup(t, false)
	var rates map[string]float64
	test.Data(t, test.DoJSON(t, f.r, http.MethodGet, "/api/work-entry/rates", f.reader, nil), &rates)
	require.Equal(t, 12.0, rates["painting"])
}

func TestListPagination(t *testing.T) {
	f := setup(t, false)
	for i := 0; i < 5; i++ {
		f.create(t, map[string]any{"location": "A", "work_description": "x", "final_rate": 10})
	}
	var list listResp
	test.Data(t, test.DoJSON(t, f.r, http.MethodGet, "/api/work-entry/list?page=2&page_size=2", f.reader, nil), &list)
	require.Len(t, list.Entries, 2)
	require.NotNil(t, list.Page)
	require.Equal(t, 5, list.Page.Total)
	require.Equal(t, 5, list.Totals.Count)
	require.InDelta(t, 50, list.Totals.FinalRate, 1e-9)

	test.Data(t, test.DoJSON(t, f.r, http.MethodGet, "/api/work-entry/list?page=9&page_size=2", f.reader, nil), &list)
	require.Empty(t, list.Entries)
}
