package weekly_view

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/klokku/timesheet/internal/rest"
	"github.com/klokku/timesheet/pkg/time_entry"
	"github.com/klokku/timesheet/pkg/user"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type serviceStub struct {
	view      WeeklyView
	err       error
	dateInput string
}

func (s *serviceStub) GetWeeklyView(_ context.Context, dateInput string) (WeeklyView, error) {
	s.dateInput = dateInput
	return s.view, s.err
}

func TestHandler_GetWeeklyView(t *testing.T) {
	t.Run("should return the weekly view as JSON", func(t *testing.T) {
		// given
		viewer := &user.User{Id: "u-1", FirstName: "Ann"}
		built := Build(
			[]time_entry.TimeEntry{entry("e1", "u-1", "2025-01-13", "13:05", "17:00")},
			"2025-01-15", nil, viewer, English,
		)
		stub := &serviceStub{view: WeeklyView{View: built, SelectedDate: "2025-01-15"}}
		handler := NewHandler(stub)
		req := httptest.NewRequest(http.MethodGet, "/api/weekly-view?date=2025-01-15", nil)
		rec := httptest.NewRecorder()

		// when
		handler.GetWeeklyView(rec, req)

		// then
		require.Equal(t, http.StatusOK, rec.Code)
		assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))
		assert.Equal(t, "2025-01-15", stub.dateInput)

		var dto WeeklyViewDTO
		require.NoError(t, json.NewDecoder(rec.Body).Decode(&dto))
		assert.Equal(t, "2025-01-15", dto.SelectedDate)
		assert.Equal(t, "Mon, Jan 13 - Sun, Jan 19", dto.WeekRangeLabel)
		require.Len(t, dto.WeekDays, 7)
		require.Len(t, dto.UserCards, 1)
		card := dto.UserCards[0]
		assert.Equal(t, "Ann", card.UserName)
		require.Len(t, card.EntryRows, 5)
		assert.Equal(t, "13:05", card.EntryRows[0].StartTime)
		assert.Equal(t, "1:05 PM", card.EntryRows[0].StartTimeLabel)
		assert.Equal(t, "5:00 PM", card.EntryRows[0].EndTimeLabel)
		assert.True(t, card.EntryRows[4].IsPlaceholder)
		assert.Empty(t, card.EntryRows[4].StartTimeLabel)
		assert.InDelta(t, 3.9166, card.TotalHours, 1e-3)
		assert.Empty(t, dto.ErrorMessage)
	})

	t.Run("should pass through the load error message", func(t *testing.T) {
		stub := &serviceStub{view: WeeklyView{
			View:         Build(nil, "2025-01-15", nil, nil, English),
			SelectedDate: "2025-01-15",
			ErrorMessage: loadEntriesFailedMessage,
		}}
		rec := httptest.NewRecorder()

		NewHandler(stub).GetWeeklyView(rec, httptest.NewRequest(http.MethodGet, "/api/weekly-view", nil))

		require.Equal(t, http.StatusOK, rec.Code)
		var dto WeeklyViewDTO
		require.NoError(t, json.NewDecoder(rec.Body).Decode(&dto))
		assert.Equal(t, "Failed to load time tracking records.", dto.ErrorMessage)
		assert.Empty(t, dto.UserCards)
		assert.Equal(t, "", stub.dateInput)
	})

	t.Run("should return forbidden without a viewer", func(t *testing.T) {
		stub := &serviceStub{err: ErrNoViewer}
		rec := httptest.NewRecorder()

		NewHandler(stub).GetWeeklyView(rec, httptest.NewRequest(http.MethodGet, "/api/weekly-view", nil))

		require.Equal(t, http.StatusForbidden, rec.Code)
		var body rest.ErrorResponse
		require.NoError(t, json.NewDecoder(rec.Body).Decode(&body))
		assert.Equal(t, "No current user", body.Error)
	})

	t.Run("should return internal error for other failures", func(t *testing.T) {
		stub := &serviceStub{err: errors.New("boom")}
		rec := httptest.NewRecorder()

		NewHandler(stub).GetWeeklyView(rec, httptest.NewRequest(http.MethodGet, "/api/weekly-view", nil))

		assert.Equal(t, http.StatusInternalServerError, rec.Code)
	})
}
