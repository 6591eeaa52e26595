package weekly_view

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/klokku/timesheet/internal/rest"
	log "github.com/sirupsen/logrus"
)

type WeekDayDTO struct {
	DateKey    string `json:"dateKey"`
	ShortLabel string `json:"shortLabel"`
	FullLabel  string `json:"fullLabel"`
}

type DisplayRowDTO struct {
	Id             string `json:"id"`
	DayIndicator   string `json:"dayIndicator"`
	StartTime      string `json:"startTime"`
	EndTime        string `json:"endTime"`
	StartTimeLabel string `json:"startTimeLabel"`
	EndTimeLabel   string `json:"endTimeLabel"`
	IsPlaceholder  bool   `json:"isPlaceholder,omitempty"`
}

type UserWeekCardDTO struct {
	UserId     string          `json:"userId"`
	UserName   string          `json:"userName"`
	EntryRows  []DisplayRowDTO `json:"entryRows"`
	TotalHours float64         `json:"totalHours"`
}

type WeeklyViewDTO struct {
	SelectedDate   string            `json:"selectedDate"`
	WeekDays       []WeekDayDTO      `json:"weekDays"`
	WeekRangeLabel string            `json:"weekRangeLabel"`
	UserCards      []UserWeekCardDTO `json:"userCards"`
	ErrorMessage   string            `json:"errorMessage,omitempty"`
}

type Handler struct {
	service Service
}

func NewHandler(service Service) *Handler {
	return &Handler{
		service: service,
	}
}

// GetWeeklyView godoc
// @Summary Get the weekly view
// @Description Per-user cards with up to five entry rows and total hours for the Monday-first week containing the given date
// @Tags WeeklyView
// @Produce json
// @Param date query string false "Date in YYYY-MM-DD format (any day of the week), defaults to today"
// @Success 200 {object} WeeklyViewDTO
// @Failure 403 {object} rest.ErrorResponse "No current user"
// @Router /api/weekly-view [get]
// @Security XUserId
func (h *Handler) GetWeeklyView(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")

	// Can be any day of the given week
	dateInput := r.URL.Query().Get("date")
	log.Debugf("Getting weekly view for date %q", dateInput)

	view, err := h.service.GetWeeklyView(r.Context(), dateInput)
	if err != nil {
		if errors.Is(err, ErrNoViewer) {
			rest.WriteError(w, http.StatusForbidden, "No current user", "Sign in or provide the X-User-Id header")
			return
		}
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	w.WriteHeader(http.StatusOK)
	if err := json.NewEncoder(w).Encode(WeeklyViewToDTO(view)); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
	}
}

func WeeklyViewToDTO(view WeeklyView) WeeklyViewDTO {
	weekDays := make([]WeekDayDTO, 0, len(view.WeekDays))
	for _, day := range view.WeekDays {
		weekDays = append(weekDays, WeekDayDTO{
			DateKey:    day.DateKey,
			ShortLabel: day.ShortLabel,
			FullLabel:  day.FullLabel,
		})
	}

	cards := make([]UserWeekCardDTO, 0, len(view.UserCards))
	for _, card := range view.UserCards {
		rows := make([]DisplayRowDTO, 0, len(card.Rows))
		for _, row := range card.Rows {
			rows = append(rows, DisplayRowDTO{
				Id:             row.Id,
				DayIndicator:   row.DayIndicator,
				StartTime:      row.StartTime,
				EndTime:        row.EndTime,
				StartTimeLabel: To12Hour(row.StartTime),
				EndTimeLabel:   To12Hour(row.EndTime),
				IsPlaceholder:  row.IsPlaceholder,
			})
		}
		cards = append(cards, UserWeekCardDTO{
			UserId:     card.UserId,
			UserName:   card.UserName,
			EntryRows:  rows,
			TotalHours: card.TotalHours,
		})
	}

	return WeeklyViewDTO{
		SelectedDate:   view.SelectedDate,
		WeekDays:       weekDays,
		WeekRangeLabel: view.WeekRangeLabel,
		UserCards:      cards,
		ErrorMessage:   view.ErrorMessage,
	}
}
