package handler_test

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"testing"

	"github.com/iliyamo/restaurant-reservation/internal/model"
)

const validBooking = `{"data":{
	"first_name":"Grace","last_name":"Hopper","mobile_number":"555-123-4567",
	"reservation_date":"2026-08-30","reservation_time":"18:00","people":4}}`

func TestCreateReservation(t *testing.T) {
	e, store, _ := newTestServer()

	rec := do(e, http.MethodPost, "/reservations", validBooking)
	if rec.Code != http.StatusCreated {
		t.Fatalf("status = %d, want 201; body %s", rec.Code, rec.Body)
	}

	var body struct {
		Data model.Reservation `json:"data"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("unmarshal response: %v", err)
	}
	if body.Data.ID == 0 {
		t.Error("created reservation has no id")
	}
	if body.Data.Status != model.StatusBooked {
		t.Errorf("status = %q, want %q", body.Data.Status, model.StatusBooked)
	}
	if _, ok := store.byID[body.Data.ID]; !ok {
		t.Error("reservation was not persisted")
	}
}

func TestCreateReservationListsEveryMissingField(t *testing.T) {
	e, store, _ := newTestServer()

	rec := do(e, http.MethodPost, "/reservations", `{"data":{}}`)
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", rec.Code)
	}
	msg := rec.Body.String()
	for _, field := range []string{"first_name", "last_name", "mobile_number", "reservation_date", "reservation_time", "people"} {
		if !strings.Contains(msg, field) {
			t.Errorf("error body %s does not mention %s", msg, field)
		}
	}
	if len(store.byID) != 0 {
		t.Error("invalid payload must not be persisted")
	}
}

func TestCreateReservationMissingData(t *testing.T) {
	e, _, _ := newTestServer()
	rec := do(e, http.MethodPost, "/reservations", `{}`)
	if rec.Code != http.StatusBadRequest {
		t.Errorf("status = %d, want 400", rec.Code)
	}
}

func TestCreateReservationTuesdayRejected(t *testing.T) {
	e, _, _ := newTestServer()
	body := strings.Replace(validBooking, "2026-08-30", "2026-09-01", 1) // a Tuesday
	rec := do(e, http.MethodPost, "/reservations", body)
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), "Tuesday") {
		t.Errorf("error body %s does not mention the closed day", rec.Body)
	}
}

func TestCreateReservationOpenHourBoundaries(t *testing.T) {
	tests := []struct {
		time string
		want int
	}{
		{"10:29", http.StatusBadRequest},
		{"10:30", http.StatusCreated},
		{"21:30", http.StatusCreated},
		{"21:31", http.StatusBadRequest},
	}
	for _, tt := range tests {
		t.Run(tt.time, func(t *testing.T) {
			e, _, _ := newTestServer()
			body := strings.Replace(validBooking, "18:00", tt.time, 1)
			rec := do(e, http.MethodPost, "/reservations", body)
			if rec.Code != tt.want {
				t.Errorf("time %s: status = %d, want %d; body %s", tt.time, rec.Code, tt.want, rec.Body)
			}
		})
	}
}

// Creating with people=4 and reading back must yield a JSON number, not a
// string.
func TestReservationPeopleRoundTripsNumeric(t *testing.T) {
	e, _, _ := newTestServer()

	rec := do(e, http.MethodPost, "/reservations", validBooking)
	if rec.Code != http.StatusCreated {
		t.Fatalf("create status = %d", rec.Code)
	}

	rec = do(e, http.MethodGet, "/reservations/1", "")
	if rec.Code != http.StatusOK {
		t.Fatalf("read status = %d", rec.Code)
	}
	var body struct {
		Data map[string]any `json:"data"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("unmarshal response: %v", err)
	}
	people, ok := body.Data["people"].(float64)
	if !ok {
		t.Fatalf("people = %#v, want a JSON number", body.Data["people"])
	}
	if people != 4 {
		t.Errorf("people = %v, want 4", people)
	}
}

func TestGetReservationNotFound(t *testing.T) {
	e, _, _ := newTestServer()
	rec := do(e, http.MethodGet, "/reservations/99", "")
	if rec.Code != http.StatusNotFound {
		t.Errorf("status = %d, want 404", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), "99") {
		t.Errorf("error body %s does not name the missing id", rec.Body)
	}
}

func TestListReservationsByDateExcludesFinished(t *testing.T) {
	e, store, _ := newTestServer()
	seed := func(timeOfDay, status string) {
		store.nextID++
		store.byID[store.nextID] = &model.Reservation{
			ID: store.nextID, FirstName: "A", LastName: "B", MobileNumber: "555",
			Date: "2026-08-30", Time: timeOfDay, People: 2, Status: status,
		}
	}
	seed("19:00", model.StatusBooked)
	seed("12:00", model.StatusBooked)
	seed("13:00", model.StatusFinished)

	rec := do(e, http.MethodGet, "/reservations?date=2026-08-30", "")
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}
	var body struct {
		Data []model.Reservation `json:"data"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("unmarshal response: %v", err)
	}
	if len(body.Data) != 2 {
		t.Fatalf("len = %d, want 2 (finished excluded)", len(body.Data))
	}
	if body.Data[0].Time != "12:00" || body.Data[1].Time != "19:00" {
		t.Errorf("listing not ordered by time: %v, %v", body.Data[0].Time, body.Data[1].Time)
	}
}

func TestSearchReservationsByMobileFragment(t *testing.T) {
	e, store, _ := newTestServer()
	store.nextID++
	store.byID[store.nextID] = &model.Reservation{
		ID: store.nextID, FirstName: "A", LastName: "B",
		MobileNumber: "(555) 123-4567", Date: "2026-08-30", Time: "18:00",
		People: 2, Status: model.StatusBooked,
	}

	rec := do(e, http.MethodGet, "/reservations?mobile_number=123-45", "")
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}
	var body struct {
		Data []model.Reservation `json:"data"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("unmarshal response: %v", err)
	}
	if len(body.Data) != 1 {
		t.Errorf("len = %d, want 1 (punctuation-insensitive match)", len(body.Data))
	}
}

func TestListReservationsRequiresQuery(t *testing.T) {
	e, _, _ := newTestServer()
	rec := do(e, http.MethodGet, "/reservations", "")
	if rec.Code != http.StatusBadRequest {
		t.Errorf("status = %d, want 400", rec.Code)
	}
}

func TestEditReservation(t *testing.T) {
	e, _, _ := newTestServer()
	do(e, http.MethodPost, "/reservations", validBooking)

	edited := strings.Replace(validBooking, `"people":4`, `"people":6`, 1)
	rec := do(e, http.MethodPut, "/reservations/1", edited)
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d; body %s", rec.Code, rec.Body)
	}
	var body struct {
		Data model.Reservation `json:"data"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("unmarshal response: %v", err)
	}
	if body.Data.People != 6 {
		t.Errorf("people = %d, want 6", body.Data.People)
	}
}

func TestEditMissingReservation(t *testing.T) {
	e, _, _ := newTestServer()
	rec := do(e, http.MethodPut, "/reservations/42", validBooking)
	if rec.Code != http.StatusNotFound {
		t.Errorf("status = %d, want 404", rec.Code)
	}
}

func TestUpdateStatusTransitions(t *testing.T) {
	e, store, _ := newTestServer()
	do(e, http.MethodPost, "/reservations", validBooking)

	rec := do(e, http.MethodPut, "/reservations/1/status", `{"data":{"status":"seated"}}`)
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d; body %s", rec.Code, rec.Body)
	}
	if store.byID[1].Status != model.StatusSeated {
		t.Errorf("stored status = %q, want seated", store.byID[1].Status)
	}

	rec = do(e, http.MethodPut, "/reservations/1/status", `{"data":{"status":"no-show"}}`)
	if rec.Code != http.StatusBadRequest {
		t.Errorf("unknown status: code = %d, want 400", rec.Code)
	}
}

// Once finished, a reservation is terminal: every target status is refused.
func TestUpdateStatusFinishedIsTerminal(t *testing.T) {
	e, store, _ := newTestServer()
	store.nextID++
	store.byID[store.nextID] = &model.Reservation{
		ID: store.nextID, FirstName: "A", LastName: "B", MobileNumber: "555",
		Date: "2026-08-30", Time: "18:00", People: 2, Status: model.StatusFinished,
	}

	for _, target := range []string{"booked", "seated", "finished", "cancelled"} {
		body := fmt.Sprintf(`{"data":{"status":%q}}`, target)
		rec := do(e, http.MethodPut, "/reservations/1/status", body)
		if rec.Code != http.StatusBadRequest {
			t.Errorf("target %q: status = %d, want 400", target, rec.Code)
		}
	}
	if store.byID[1].Status != model.StatusFinished {
		t.Errorf("stored status changed to %q", store.byID[1].Status)
	}
}
