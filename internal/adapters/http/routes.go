package web

import (
	"net/http"

	"studiobook/internal/adapters/http/middleware"
	"studiobook/internal/domain/account"
)

// registerRoutes attaches all API routes to the mux.
// Method-specific patterns carry the routing; role gates wrap the handlers
// that need them. The schedule and notice reads are open so the booking
// grid works for anonymous visitors.
func registerRoutes(mux *http.ServeMux) {
	admin := middleware.RequireRole(account.RoleAdmin)
	memberOnly := middleware.RequireRole(account.RoleMember)

	// Auth
	mux.HandleFunc("POST /api/login", handleLogin)
	mux.HandleFunc("POST /api/logout", handleLogout)
	mux.Handle("POST /api/password", middleware.RequireAuth(http.HandlerFunc(handleChangePassword)))

	// Member administration
	mux.Handle("GET /api/members", admin(http.HandlerFunc(handleListMembers)))
	mux.Handle("POST /api/members", admin(http.HandlerFunc(handleRegisterMember)))
	mux.Handle("GET /api/members/{id}", admin(http.HandlerFunc(handleGetMember)))
	mux.Handle("PUT /api/members/{id}", admin(http.HandlerFunc(handleUpdateMember)))
	mux.Handle("POST /api/members/{id}/topup", admin(http.HandlerFunc(handleTopUpMember)))

	// Class catalog
	mux.Handle("GET /api/templates", admin(http.HandlerFunc(handleListTemplates)))
	mux.Handle("POST /api/templates", admin(http.HandlerFunc(handleSaveTemplate)))
	mux.Handle("GET /api/sessions", admin(http.HandlerFunc(handleListSessions)))
	mux.Handle("POST /api/sessions", admin(http.HandlerFunc(handleScheduleSession)))
	mux.Handle("DELETE /api/sessions/{id}", admin(http.HandlerFunc(handleDeleteSession)))

	// Booking
	mux.HandleFunc("GET /api/schedule", handleGetSchedule)
	mux.Handle("POST /api/bookings", middleware.RequireAuth(http.HandlerFunc(handleCreateBooking)))
	mux.Handle("POST /api/bookings/{id}/cancel", middleware.RequireAuth(http.HandlerFunc(handleCancelBooking)))
	mux.Handle("POST /api/bookings/{id}/checkin", admin(http.HandlerFunc(handleCheckInBooking)))
	mux.Handle("POST /api/bookings/{id}/noshow", admin(http.HandlerFunc(handleMarkNoShow)))

	// Member self-service
	mux.Handle("GET /api/profile", memberOnly(http.HandlerFunc(handleGetProfile)))

	// Admin dashboard
	mux.Handle("GET /api/dashboard", admin(http.HandlerFunc(handleGetDashboard)))

	// Notices
	mux.HandleFunc("GET /api/notices", handleListNotices)
	mux.Handle("POST /api/notices", admin(http.HandlerFunc(handleCreateNotice)))
	mux.Handle("POST /api/notices/{id}/publish", admin(http.HandlerFunc(handlePublishNotice)))

	// Perf dashboard
	mux.Handle("GET /api/perf", admin(http.HandlerFunc(handleGetPerf)))
}
