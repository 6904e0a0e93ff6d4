package usertests

import (
	"encoding/json"
	"fmt"
	"net/http"
	"sort"
	"strconv"
	"sync"
	"time"

	"github.com/usersapi/users-contract-tests/servicedef"
)

// usersService is an in-memory implementation of the users API, used as the service under test.
// Its flags make it misbehave in the ways that the suite is supposed to detect.
type usersService struct {
	now func() time.Time

	acceptAnyDate   bool
	ignorePageSize  bool
	partialUpdate   bool
	deleteStatus    int
	omitTotalCounts bool

	lock   sync.Mutex
	users  map[int64]servicedef.UserRepresentation
	nextID int64
}

func newUsersService(now func() time.Time) *usersService {
	return &usersService{
		now:    now,
		users:  make(map[int64]servicedef.UserRepresentation),
		nextID: 1,
	}
}

func (s *usersService) handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("GET /api/users", s.list)
	mux.HandleFunc("POST /api/users", s.create)
	mux.HandleFunc("GET /api/users/{id}", s.get)
	mux.HandleFunc("PUT /api/users/{id}", s.replace)
	mux.HandleFunc("DELETE /api/users/{id}", s.delete)
	return mux
}

func (s *usersService) count() int {
	s.lock.Lock()
	defer s.lock.Unlock()
	return len(s.users)
}

func (s *usersService) add(params servicedef.UserParams) int64 {
	s.lock.Lock()
	defer s.lock.Unlock()
	id := s.nextID
	s.nextID++
	s.users[id] = servicedef.UserRepresentation{ID: id, UserParams: params}
	return id
}

func (s *usersService) validDate(dayOfBirth string) bool {
	if s.acceptAnyDate {
		return true
	}
	date, err := time.Parse(servicedef.DateLayout, dayOfBirth)
	if err != nil {
		return false
	}
	y, m, d := s.now().UTC().Date()
	return date.Before(time.Date(y, m, d, 0, 0, 0, 0, time.UTC))
}

func (s *usersService) list(w http.ResponseWriter, r *http.Request) {
	size, page := 20, 0
	if v := r.URL.Query().Get("size"); v != "" {
		size, _ = strconv.Atoi(v)
	}
	if v := r.URL.Query().Get("page"); v != "" {
		page, _ = strconv.Atoi(v)
	}

	s.lock.Lock()
	all := make([]servicedef.UserRepresentation, 0, len(s.users))
	for _, u := range s.users {
		all = append(all, u)
	}
	s.lock.Unlock()
	sort.Slice(all, func(i, j int) bool { return all[i].ID < all[j].ID })

	pageUsers := all
	if !s.ignorePageSize {
		start := min(page*size, len(all))
		end := min(start+size, len(all))
		pageUsers = all[start:end]
	}

	body := map[string]interface{}{
		"_embedded": map[string]interface{}{"users": pageUsers},
	}
	if !s.omitTotalCounts {
		body["page"] = map[string]interface{}{
			"size":          size,
			"number":        page,
			"totalElements": len(all),
		}
	}
	writeJSON(w, http.StatusOK, body)
}

func (s *usersService) create(w http.ResponseWriter, r *http.Request) {
	var params servicedef.UserParams
	if err := json.NewDecoder(r.Body).Decode(&params); err != nil || !s.validDate(params.DayOfBirth) {
		w.WriteHeader(http.StatusBadRequest)
		return
	}
	id := s.add(params)
	w.Header().Set("Location", fmt.Sprintf("/api/users/%d", id))
	writeJSON(w, http.StatusCreated, servicedef.UserRepresentation{ID: id, UserParams: params})
}

func (s *usersService) lookup(r *http.Request) (servicedef.UserRepresentation, bool) {
	id, err := strconv.ParseInt(r.PathValue("id"), 10, 64)
	if err != nil {
		return servicedef.UserRepresentation{}, false
	}
	s.lock.Lock()
	defer s.lock.Unlock()
	u, ok := s.users[id]
	return u, ok
}

func (s *usersService) get(w http.ResponseWriter, r *http.Request) {
	u, ok := s.lookup(r)
	if !ok {
		w.WriteHeader(http.StatusNotFound)
		return
	}
	writeJSON(w, http.StatusOK, u)
}

func (s *usersService) replace(w http.ResponseWriter, r *http.Request) {
	u, ok := s.lookup(r)
	if !ok {
		w.WriteHeader(http.StatusNotFound)
		return
	}
	var params servicedef.UserParams
	if err := json.NewDecoder(r.Body).Decode(&params); err != nil || !s.validDate(params.DayOfBirth) {
		w.WriteHeader(http.StatusBadRequest)
		return
	}
	if s.partialUpdate {
		u.FirstName = params.FirstName
	} else {
		u.UserParams = params
	}
	s.lock.Lock()
	s.users[u.ID] = u
	s.lock.Unlock()
	writeJSON(w, http.StatusOK, u)
}

func (s *usersService) delete(w http.ResponseWriter, r *http.Request) {
	u, ok := s.lookup(r)
	if !ok {
		w.WriteHeader(http.StatusNotFound)
		return
	}
	s.lock.Lock()
	delete(s.users, u.ID)
	s.lock.Unlock()
	status := http.StatusNoContent
	if s.deleteStatus != 0 {
		status = s.deleteStatus
	}
	w.WriteHeader(status)
}

func writeJSON(w http.ResponseWriter, status int, body interface{}) {
	data, _ := json.Marshal(body)
	w.Header().Set("Content-Type", "application/hal+json")
	w.WriteHeader(status)
	_, _ = w.Write(data)
}
