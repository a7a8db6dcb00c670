package httpserver

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"

	"stayhub/internal/app"
	"stayhub/internal/domain"
)

type Handlers struct {
	Accounts   *app.AccountService
	Bookings   *app.BookingService
	Reviews    *app.ReviewService
	Properties *app.PropertyService
	Rollups    *app.RollupService
	Q          *app.QueryService
	Auth       *Auth

	validate *validator.Validate
}

func (s *Server) MountHandlers(h *Handlers) {
	if h.validate == nil {
		h.validate = validator.New()
	}

	s.mux.Get("/healthz", func(w http.ResponseWriter, r *http.Request) { w.WriteHeader(200); _, _ = w.Write([]byte("ok")) })

	s.mux.Post("/auth/register", h.register)
	s.mux.Post("/auth/login", h.login)

	s.mux.Get("/properties/{id}", h.getProperty)
	s.mux.Get("/reviews/property/{propertyId}", h.listPropertyReviews)

	// No caller identity required by contract; rate limited per IP instead.
	s.mux.Group(func(r chi.Router) {
		r.Use(RateLimit(5, 10))
		r.Put("/reviews/{id}/helpful", h.markHelpful)
		r.Put("/reviews/{id}/report", h.reportReview)
	})

	s.mux.Group(func(r chi.Router) {
		r.Use(h.Auth.Require)

		r.Post("/bookings", h.createBooking)
		r.Get("/bookings/mine", h.listMyBookings)
		r.Get("/bookings/owner/mine", h.listOwnerBookings)
		r.Patch("/bookings/{id}/status", h.updateBookingStatus)
		r.Patch("/bookings/{id}/cancel", h.cancelMyBooking)
		r.Post("/bookings/{id}/review", h.addReview)

		r.Get("/bookings/owner/ratings", h.ownerRatingsSummary)
		r.Get("/bookings/owner/reviews", h.ownerReviews)
		r.Get("/bookings/owner/stats", h.ownerDashboardStats)

		r.Post("/properties", h.createProperty)

		r.Put("/reviews/{id}", h.updateReview)
		r.Delete("/reviews/{id}", h.deleteReview)
	})
}

// decode unmarshals and validates a JSON request body.
func (h *Handlers) decode(r *http.Request, dst any) error {
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		return domain.E(domain.ErrInvalidInput, "malformed JSON body")
	}
	if err := h.validate.Struct(dst); err != nil {
		return domain.E(domain.ErrInvalidInput, err.Error())
	}
	return nil
}

func (h *Handlers) principal(w http.ResponseWriter, r *http.Request, roles ...domain.Role) (domain.Principal, bool) {
	p, ok := PrincipalFrom(r.Context())
	if !ok {
		writeErrStatus(w, http.StatusUnauthorized, "missing bearer token")
		return domain.Principal{}, false
	}
	if len(roles) == 0 {
		return p, true
	}
	for _, role := range roles {
		if p.Role == role {
			return p, true
		}
	}
	writeErrStatus(w, http.StatusForbidden, "insufficient role")
	return domain.Principal{}, false
}

// ---- auth ----

func (h *Handlers) register(w http.ResponseWriter, r *http.Request) {
	var in app.RegisterInput
	if err := h.decode(r, &in); err != nil {
		writeErr(w, err)
		return
	}
	u, err := h.Accounts.Register(r.Context(), in)
	if err != nil {
		writeErr(w, err)
		return
	}
	token, err := h.Auth.Token(u)
	if err != nil {
		writeErr(w, err)
		return
	}
	writeData(w, http.StatusCreated, map[string]any{
		"token": token,
		"user":  userPayload(u),
	})
}

func (h *Handlers) login(w http.ResponseWriter, r *http.Request) {
	var in struct {
		Email    string `json:"email" validate:"required,email"`
		Password string `json:"password" validate:"required"`
	}
	if err := h.decode(r, &in); err != nil {
		writeErr(w, err)
		return
	}
	u, err := h.Accounts.Login(r.Context(), in.Email, in.Password)
	if err != nil {
		writeErr(w, err)
		return
	}
	token, err := h.Auth.Token(u)
	if err != nil {
		writeErr(w, err)
		return
	}
	writeData(w, http.StatusOK, map[string]any{
		"token": token,
		"user":  userPayload(u),
	})
}

func userPayload(u domain.User) map[string]any {
	return map[string]any{"id": u.ID, "name": u.Name, "email": u.Email, "role": u.Role}
}

// ---- bookings ----

func (h *Handlers) createBooking(w http.ResponseWriter, r *http.Request) {
	p, ok := h.principal(w, r, domain.RoleCustomer)
	if !ok {
		return
	}
	var in app.CreateBookingInput
	if err := h.decode(r, &in); err != nil {
		writeErr(w, err)
		return
	}
	b, err := h.Bookings.Create(r.Context(), p.UserID, in)
	if err != nil {
		writeErr(w, err)
		return
	}
	writeData(w, http.StatusCreated, b)
}

func (h *Handlers) listMyBookings(w http.ResponseWriter, r *http.Request) {
	p, ok := h.principal(w, r, domain.RoleCustomer)
	if !ok {
		return
	}
	out, err := h.Bookings.ListMine(r.Context(), p.UserID)
	if err != nil {
		writeErr(w, err)
		return
	}
	writeData(w, http.StatusOK, out)
}

func (h *Handlers) listOwnerBookings(w http.ResponseWriter, r *http.Request) {
	p, ok := h.principal(w, r, domain.RoleOwner)
	if !ok {
		return
	}
	out, err := h.Bookings.ListForOwner(r.Context(), p.UserID)
	if err != nil {
		writeErr(w, err)
		return
	}
	writeData(w, http.StatusOK, out)
}

func (h *Handlers) updateBookingStatus(w http.ResponseWriter, r *http.Request) {
	p, ok := h.principal(w, r, domain.RoleOwner)
	if !ok {
		return
	}
	var in struct {
		Status string `json:"status" validate:"required"`
	}
	if err := h.decode(r, &in); err != nil {
		writeErr(w, err)
		return
	}
	b, err := h.Bookings.UpdateStatus(r.Context(), p.UserID, chi.URLParam(r, "id"), in.Status)
	if err != nil {
		writeErr(w, err)
		return
	}
	writeData(w, http.StatusOK, b)
}

func (h *Handlers) cancelMyBooking(w http.ResponseWriter, r *http.Request) {
	p, ok := h.principal(w, r, domain.RoleCustomer)
	if !ok {
		return
	}
	b, err := h.Bookings.CancelMine(r.Context(), p.UserID, chi.URLParam(r, "id"))
	if err != nil {
		writeErr(w, err)
		return
	}
	writeData(w, http.StatusOK, b)
}

// ---- reviews ----

func (h *Handlers) addReview(w http.ResponseWriter, r *http.Request) {
	p, ok := h.principal(w, r, domain.RoleCustomer)
	if !ok {
		return
	}
	var in struct {
		Rating int    `json:"rating"`
		Review string `json:"review"`
	}
	if err := h.decode(r, &in); err != nil {
		writeErr(w, err)
		return
	}
	rv, err := h.Reviews.Add(r.Context(), p.UserID, chi.URLParam(r, "id"), in.Rating, in.Review)
	if err != nil {
		writeErr(w, err)
		return
	}
	writeData(w, http.StatusCreated, rv)
}

func (h *Handlers) updateReview(w http.ResponseWriter, r *http.Request) {
	p, ok := h.principal(w, r, domain.RoleCustomer)
	if !ok {
		return
	}
	var in struct {
		Rating int    `json:"rating"`
		Review string `json:"review"`
	}
	if err := h.decode(r, &in); err != nil {
		writeErr(w, err)
		return
	}
	rv, err := h.Reviews.Update(r.Context(), p.UserID, chi.URLParam(r, "id"), in.Rating, in.Review)
	if err != nil {
		writeErr(w, err)
		return
	}
	writeData(w, http.StatusOK, rv)
}

func (h *Handlers) deleteReview(w http.ResponseWriter, r *http.Request) {
	p, ok := h.principal(w, r)
	if !ok {
		return
	}
	if err := h.Reviews.Delete(r.Context(), p, chi.URLParam(r, "id")); err != nil {
		writeErr(w, err)
		return
	}
	writeData(w, http.StatusOK, map[string]any{"deleted": true})
}

func (h *Handlers) markHelpful(w http.ResponseWriter, r *http.Request) {
	if err := h.Reviews.MarkHelpful(r.Context(), chi.URLParam(r, "id")); err != nil {
		writeErr(w, err)
		return
	}
	writeData(w, http.StatusOK, map[string]any{"helpful": true})
}

func (h *Handlers) reportReview(w http.ResponseWriter, r *http.Request) {
	if err := h.Reviews.Report(r.Context(), chi.URLParam(r, "id")); err != nil {
		writeErr(w, err)
		return
	}
	writeData(w, http.StatusOK, map[string]any{"reported": true})
}

// ---- owner rollups ----

func (h *Handlers) ownerRatingsSummary(w http.ResponseWriter, r *http.Request) {
	p, ok := h.principal(w, r, domain.RoleOwner)
	if !ok {
		return
	}
	sum, err := h.Rollups.RatingsSummary(r.Context(), p.UserID)
	if err != nil {
		writeErr(w, err)
		return
	}
	writeData(w, http.StatusOK, sum)
}

func (h *Handlers) ownerReviews(w http.ResponseWriter, r *http.Request) {
	p, ok := h.principal(w, r, domain.RoleOwner)
	if !ok {
		return
	}
	limit := 0
	if ls := r.URL.Query().Get("limit"); ls != "" {
		l, err := strconv.Atoi(ls)
		if err != nil || l <= 0 || l > 100 {
			writeErr(w, domain.E(domain.ErrInvalidInput, "limit must be an integer between 1 and 100"))
			return
		}
		limit = l
	}
	items, err := h.Rollups.RecentReviews(r.Context(), p.UserID, limit)
	if err != nil {
		writeErr(w, err)
		return
	}
	writeData(w, http.StatusOK, items)
}

func (h *Handlers) ownerDashboardStats(w http.ResponseWriter, r *http.Request) {
	p, ok := h.principal(w, r, domain.RoleOwner)
	if !ok {
		return
	}
	stats, err := h.Rollups.DashboardStats(r.Context(), p.UserID)
	if err != nil {
		writeErr(w, err)
		return
	}
	writeData(w, http.StatusOK, stats)
}

// ---- properties & public reads ----

func (h *Handlers) createProperty(w http.ResponseWriter, r *http.Request) {
	p, ok := h.principal(w, r, domain.RoleOwner)
	if !ok {
		return
	}
	var in app.CreatePropertyInput
	if err := h.decode(r, &in); err != nil {
		writeErr(w, err)
		return
	}
	prop, err := h.Properties.Create(r.Context(), p.UserID, in)
	if err != nil {
		writeErr(w, err)
		return
	}
	writeData(w, http.StatusCreated, prop)
}

func (h *Handlers) getProperty(w http.ResponseWriter, r *http.Request) {
	prop, err := h.Q.GetProperty(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		writeErr(w, err)
		return
	}
	writeData(w, http.StatusOK, prop)
}

func (h *Handlers) listPropertyReviews(w http.ResponseWriter, r *http.Request) {
	pg := domain.PageQuery{Page: 1, Limit: 10}
	if ps := r.URL.Query().Get("page"); ps != "" {
		p, err := strconv.Atoi(ps)
		if err != nil || p <= 0 {
			writeErr(w, domain.E(domain.ErrInvalidInput, "page must be a positive integer"))
			return
		}
		pg.Page = p
	}
	if ls := r.URL.Query().Get("limit"); ls != "" {
		l, err := strconv.Atoi(ls)
		if err != nil || l <= 0 || l > 100 {
			writeErr(w, domain.E(domain.ErrInvalidInput, "limit must be an integer between 1 and 100"))
			return
		}
		pg.Limit = l
	}
	out, err := h.Q.ListPropertyReviews(r.Context(), chi.URLParam(r, "propertyId"), pg)
	if err != nil {
		writeErr(w, err)
		return
	}
	writeData(w, http.StatusOK, out)
}
