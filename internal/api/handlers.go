package api

import (
	"context"
	"net/http"
	"strconv"
	"strings"

	"shareit/internal/models"
)

func (s *HTTPServer) handleHealth(w http.ResponseWriter, r *http.Request) {
	s.writeJSON(w, r, http.StatusOK, map[string]string{"status": "ok"})
}

func (s *HTTPServer) handleCreateUser(w http.ResponseWriter, r *http.Request) {
	var req createUserRequest
	if !s.decodeAndValidate(w, r, &req) {
		return
	}

	user, err := s.svc.Users.CreateUser(r.Context(), req.Name, req.Email)
	if err != nil {
		s.writeServiceError(w, r, err)
		return
	}
	s.writeJSON(w, r, http.StatusOK, toUserResponse(user))
}

func (s *HTTPServer) handleGetUser(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}

	user, err := s.svc.Users.GetUser(r.Context(), id)
	if err != nil {
		s.writeServiceError(w, r, err)
		return
	}
	s.writeJSON(w, r, http.StatusOK, toUserResponse(user))
}

func (s *HTTPServer) handleUpdateUser(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}
	var req updateUserRequest
	if !s.decode(w, r, &req) {
		return
	}

	user, err := s.svc.Users.UpdateUser(r.Context(), id, models.UserPatch{Name: req.Name, Email: req.Email})
	if err != nil {
		s.writeServiceError(w, r, err)
		return
	}
	s.writeJSON(w, r, http.StatusOK, toUserResponse(user))
}

func (s *HTTPServer) handleListUsers(w http.ResponseWriter, r *http.Request) {
	users, err := s.svc.Users.ListUsers(r.Context())
	if err != nil {
		s.writeServiceError(w, r, err)
		return
	}
	resp := make([]userResponse, 0, len(users))
	for _, u := range users {
		resp = append(resp, toUserResponse(u))
	}
	s.writeJSON(w, r, http.StatusOK, resp)
}

func (s *HTTPServer) handleDeleteUser(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}

	if err := s.svc.Users.DeleteUser(r.Context(), id); err != nil {
		s.writeServiceError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusOK)
}

func (s *HTTPServer) handleCreateItem(w http.ResponseWriter, r *http.Request) {
	ownerID, ok := s.requesterID(w, r)
	if !ok {
		return
	}
	var req createItemRequest
	if !s.decodeAndValidate(w, r, &req) {
		return
	}

	item, err := s.svc.Items.CreateItem(r.Context(), ownerID, &models.Item{
		Name:        req.Name,
		Description: req.Description,
		Available:   *req.Available,
	})
	if err != nil {
		s.writeServiceError(w, r, err)
		return
	}
	s.writeJSON(w, r, http.StatusOK, toItemResponse(item))
}

func (s *HTTPServer) handleUpdateItem(w http.ResponseWriter, r *http.Request) {
	ownerID, ok := s.requesterID(w, r)
	if !ok {
		return
	}
	itemID, ok := pathID(w, r)
	if !ok {
		return
	}
	var req updateItemRequest
	if !s.decode(w, r, &req) {
		return
	}

	item, err := s.svc.Items.UpdateItem(r.Context(), itemID, ownerID, models.ItemPatch{
		Name:        req.Name,
		Description: req.Description,
		Available:   req.Available,
	})
	if err != nil {
		s.writeServiceError(w, r, err)
		return
	}
	s.writeJSON(w, r, http.StatusOK, toItemResponse(item))
}

func (s *HTTPServer) handleGetItem(w http.ResponseWriter, r *http.Request) {
	userID, ok := s.requesterID(w, r)
	if !ok {
		return
	}
	itemID, ok := pathID(w, r)
	if !ok {
		return
	}

	view, err := s.svc.Items.GetItemView(r.Context(), itemID, userID)
	if err != nil {
		s.writeServiceError(w, r, err)
		return
	}
	s.writeJSON(w, r, http.StatusOK, toItemViewResponse(view))
}

func (s *HTTPServer) handleListOwnerItems(w http.ResponseWriter, r *http.Request) {
	ownerID, ok := s.requesterID(w, r)
	if !ok {
		return
	}

	views, err := s.svc.Items.ListOwnerItemViews(r.Context(), ownerID)
	if err != nil {
		s.writeServiceError(w, r, err)
		return
	}
	resp := make([]itemViewResponse, 0, len(views))
	for _, v := range views {
		resp = append(resp, toItemViewResponse(v))
	}
	s.writeJSON(w, r, http.StatusOK, resp)
}

func (s *HTTPServer) handleSearchItems(w http.ResponseWriter, r *http.Request) {
	items, err := s.svc.Items.SearchItems(r.Context(), r.URL.Query().Get("text"))
	if err != nil {
		s.writeServiceError(w, r, err)
		return
	}
	resp := make([]itemResponse, 0, len(items))
	for _, item := range items {
		resp = append(resp, toItemResponse(item))
	}
	s.writeJSON(w, r, http.StatusOK, resp)
}

func (s *HTTPServer) handleAddComment(w http.ResponseWriter, r *http.Request) {
	authorID, ok := s.requesterID(w, r)
	if !ok {
		return
	}
	itemID, ok := pathID(w, r)
	if !ok {
		return
	}
	// пустой текст отдаем сервису: сначала проверяется право комментировать
	var req commentRequest
	if !s.decode(w, r, &req) {
		return
	}

	comment, err := s.svc.Items.AddComment(r.Context(), authorID, itemID, req.Text)
	if err != nil {
		s.writeServiceError(w, r, err)
		return
	}
	s.writeJSON(w, r, http.StatusOK, toCommentResponse(comment))
}

func (s *HTTPServer) handleCreateBooking(w http.ResponseWriter, r *http.Request) {
	bookerID, ok := s.requesterID(w, r)
	if !ok {
		return
	}
	var req createBookingRequest
	if !s.decodeAndValidate(w, r, &req) {
		return
	}
	create, err := req.toModel()
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	booking, err := s.svc.Bookings.CreateBooking(r.Context(), bookerID, create)
	if err != nil {
		s.writeServiceError(w, r, err)
		return
	}
	s.writeJSON(w, r, http.StatusOK, toBookingResponse(booking))
}

func (s *HTTPServer) handleDecideBooking(w http.ResponseWriter, r *http.Request) {
	ownerID, ok := s.requesterID(w, r)
	if !ok {
		return
	}
	bookingID, ok := pathID(w, r)
	if !ok {
		return
	}
	approved, err := strconv.ParseBool(strings.TrimSpace(r.URL.Query().Get("approved")))
	if err != nil {
		writeError(w, http.StatusBadRequest, "approved parameter must be true or false")
		return
	}

	booking, err := s.svc.Bookings.DecideBooking(r.Context(), bookingID, ownerID, approved)
	if err != nil {
		s.writeServiceError(w, r, err)
		return
	}
	s.writeJSON(w, r, http.StatusOK, toBookingResponse(booking))
}

func (s *HTTPServer) handleCancelBooking(w http.ResponseWriter, r *http.Request) {
	bookerID, ok := s.requesterID(w, r)
	if !ok {
		return
	}
	bookingID, ok := pathID(w, r)
	if !ok {
		return
	}

	booking, err := s.svc.Bookings.CancelBooking(r.Context(), bookingID, bookerID)
	if err != nil {
		s.writeServiceError(w, r, err)
		return
	}
	s.writeJSON(w, r, http.StatusOK, toBookingResponse(booking))
}

func (s *HTTPServer) handleGetBooking(w http.ResponseWriter, r *http.Request) {
	userID, ok := s.requesterID(w, r)
	if !ok {
		return
	}
	bookingID, ok := pathID(w, r)
	if !ok {
		return
	}

	booking, err := s.svc.Bookings.GetBooking(r.Context(), bookingID, userID)
	if err != nil {
		s.writeServiceError(w, r, err)
		return
	}
	s.writeJSON(w, r, http.StatusOK, toBookingResponse(booking))
}

func (s *HTTPServer) handleListBookerBookings(w http.ResponseWriter, r *http.Request) {
	s.listBookings(w, r, s.svc.Queries.ListBookerBookings)
}

func (s *HTTPServer) handleListOwnerBookings(w http.ResponseWriter, r *http.Request) {
	s.listBookings(w, r, s.svc.Queries.ListOwnerBookings)
}

type listFunc func(ctx context.Context, userID int64, state string, offset, limit int) ([]*models.Booking, error)

func (s *HTTPServer) listBookings(w http.ResponseWriter, r *http.Request, list listFunc) {
	userID, ok := s.requesterID(w, r)
	if !ok {
		return
	}
	from, ok := queryInt(w, r, "from", 0)
	if !ok {
		return
	}
	size, ok := queryInt(w, r, "size", s.pageSize)
	if !ok {
		return
	}
	state := r.URL.Query().Get("state")
	if strings.TrimSpace(state) == "" {
		state = string(models.StateAll)
	}

	bookings, err := list(r.Context(), userID, state, from, size)
	if err != nil {
		s.writeServiceError(w, r, err)
		return
	}
	s.writeJSON(w, r, http.StatusOK, toBookingResponses(bookings))
}
