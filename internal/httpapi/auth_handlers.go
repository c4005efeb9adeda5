package httpapi

import (
	"net/http"

	"campusmart-be/internal/middleware"
	"campusmart-be/internal/user"
)

// userView is the wire shape of an account. Password hashes never
// leave the service.
type userView struct {
	ID            string  `json:"id"`
	FirstName     string  `json:"firstName"`
	LastName      string  `json:"lastName"`
	Email         string  `json:"email"`
	Age           *int    `json:"age,omitempty"`
	ContactNumber *string `json:"contactNumber,omitempty"`
}

func toUserView(u user.User) userView {
	return userView{
		ID:            u.ID,
		FirstName:     u.FirstName,
		LastName:      u.LastName,
		Email:         u.Email,
		Age:           u.Age,
		ContactNumber: u.ContactNumber,
	}
}

type registerRequest struct {
	FirstName     string  `json:"firstName"`
	LastName      string  `json:"lastName"`
	Email         string  `json:"email"`
	Age           *int    `json:"age"`
	ContactNumber *string `json:"contactNumber"`
	Password      string  `json:"password"`
}

func (h *Handler) register(w http.ResponseWriter, r *http.Request) {
	var req registerRequest
	if !decodeBody(w, r, &req) {
		return
	}

	created, err := h.users.Register(r.Context(), user.RegisterInput{
		FirstName:     req.FirstName,
		LastName:      req.LastName,
		Email:         req.Email,
		Age:           req.Age,
		ContactNumber: req.ContactNumber,
		Password:      req.Password,
	})
	if err != nil {
		writeError(w, r, err)
		return
	}

	writeJSON(w, http.StatusCreated, map[string]any{
		"message": "User registered successfully",
		"user":    toUserView(created),
	})
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

func (h *Handler) login(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if !decodeBody(w, r, &req) {
		return
	}

	token, u, err := h.users.Login(r.Context(), req.Email, req.Password)
	if err != nil {
		writeError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"token": token,
		"user":  toUserView(u),
	})
}

type updateProfileRequest struct {
	FirstName     *string `json:"firstName"`
	LastName      *string `json:"lastName"`
	Email         *string `json:"email"`
	Age           *int    `json:"age"`
	ContactNumber *string `json:"contactNumber"`
}

func (h *Handler) updateProfile(w http.ResponseWriter, r *http.Request) {
	userID, _ := middleware.GetUserIDFromContext(r.Context())

	var req updateProfileRequest
	if !decodeBody(w, r, &req) {
		return
	}

	updated, err := h.users.UpdateProfile(r.Context(), userID, user.UpdateProfileParams{
		FirstName:     req.FirstName,
		LastName:      req.LastName,
		Email:         req.Email,
		Age:           req.Age,
		ContactNumber: req.ContactNumber,
	})
	if err != nil {
		writeError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"message": "Profile updated successfully",
		"user":    toUserView(updated),
	})
}

func (h *Handler) me(w http.ResponseWriter, r *http.Request) {
	userID, _ := middleware.GetUserIDFromContext(r.Context())

	u, err := h.users.GetByID(r.Context(), userID)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, toUserView(u))
}
