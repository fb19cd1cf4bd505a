package web

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/google/uuid"

	"studiobook/internal/adapters/http/middleware"
	"studiobook/internal/adapters/storage"
	memberStore "studiobook/internal/adapters/storage/member"
	"studiobook/internal/application/listutil"
	"studiobook/internal/application/orchestrators"
	"studiobook/internal/application/projections"
	accountDomain "studiobook/internal/domain/account"
	bookingDomain "studiobook/internal/domain/booking"
	"studiobook/internal/domain/classtemplate"
	memberDomain "studiobook/internal/domain/member"
)

// timeNow is a variable for testability.
var timeNow = time.Now

// generateID creates a new UUID string.
func generateID() string {
	return uuid.New().String()
}

// internalError logs the real error and returns a generic message to the client.
// This prevents leaking internal details per OWASP A05.
func internalError(w http.ResponseWriter, err error) {
	slog.Error("internal_error", "error", err.Error())
	writeError(w, http.StatusInternalServerError, "internal", "internal server error")
}

// strictDecode decodes JSON from the request body, rejecting unknown fields.
func strictDecode(r *http.Request, v any) error {
	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()
	return dec.Decode(v)
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

// errorResponse is the JSON error envelope. Code is a stable machine-readable
// identifier so the client can branch without parsing the message.
type errorResponse struct {
	Error string `json:"error"`
	Code  string `json:"code,omitempty"`
}

func writeError(w http.ResponseWriter, status int, code, message string) {
	writeJSON(w, status, errorResponse{Error: message, Code: code})
}

// writeDomainError translates a write-path error into an HTTP response.
// Conflict-class rejections (full, duplicate, no balance) map to 409 with a
// code field; lock contention maps to 503 so the client knows a retry of the
// same request is safe.
func writeDomainError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, bookingDomain.ErrInsufficientBalance):
		writeError(w, http.StatusConflict, "insufficient_balance", err.Error())
	case errors.Is(err, bookingDomain.ErrDuplicateBooking):
		writeError(w, http.StatusConflict, "duplicate_booking", err.Error())
	case errors.Is(err, bookingDomain.ErrSessionFull):
		writeError(w, http.StatusConflict, "session_full", err.Error())
	case errors.Is(err, bookingDomain.ErrSessionNotFound):
		writeError(w, http.StatusNotFound, "session_not_found", err.Error())
	case errors.Is(err, bookingDomain.ErrNotRegistered):
		writeError(w, http.StatusConflict, "not_registered", err.Error())
	case errors.Is(err, orchestrators.ErrSessionStarted):
		writeError(w, http.StatusConflict, "session_started", err.Error())
	case errors.Is(err, orchestrators.ErrSessionHasBookings):
		writeError(w, http.StatusConflict, "session_has_bookings", err.Error())
	case errors.Is(err, orchestrators.ErrNotYourBooking):
		writeError(w, http.StatusForbidden, "forbidden", err.Error())
	case errors.Is(err, orchestrators.ErrInvalidCredentials):
		writeError(w, http.StatusUnauthorized, "invalid_credentials", err.Error())
	case errors.Is(err, orchestrators.ErrAccountLocked):
		writeError(w, http.StatusForbidden, "account_locked", err.Error())
	case errors.Is(err, memberDomain.ErrNotActive):
		writeError(w, http.StatusConflict, "member_not_active", err.Error())
	case errors.Is(err, projections.ErrMemberNotFound):
		writeError(w, http.StatusNotFound, "member_not_found", err.Error())
	case storage.IsBusy(err):
		writeError(w, http.StatusServiceUnavailable, "transient", "temporarily unavailable, retry")
	case storage.IsUniqueViolation(err):
		writeError(w, http.StatusConflict, "conflict", "a record with those details already exists")
	default:
		writeError(w, http.StatusBadRequest, "invalid_input", err.Error())
	}
}

// --- Auth ---

func handleLogin(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Email    string `json:"email"`
		Password string `json:"password"`
	}
	if err := strictDecode(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid_input", "invalid request body")
		return
	}

	result, err := orchestrators.ExecuteLogin(r.Context(), orchestrators.LoginInput{
		Email:    req.Email,
		Password: req.Password,
	}, orchestrators.LoginDeps{AccountStore: stores.AccountStore})
	if err != nil {
		writeDomainError(w, err)
		return
	}

	memberID := ""
	if result.Role == accountDomain.RoleMember {
		if m, err := stores.MemberStore.GetByAccountID(r.Context(), result.AccountID); err == nil {
			memberID = m.ID
		}
	}

	token, err := sessions.Create(result.AccountID, result.Email, result.Role, memberID)
	if err != nil {
		internalError(w, err)
		return
	}
	middleware.SetSessionCookie(w, token)

	writeJSON(w, http.StatusOK, map[string]string{
		"account_id": result.AccountID,
		"email":      result.Email,
		"role":       result.Role,
		"member_id":  memberID,
	})
}

func handleLogout(w http.ResponseWriter, r *http.Request) {
	if cookie, err := r.Cookie("studiobook_session"); err == nil {
		sessions.Delete(cookie.Value)
	}
	middleware.ClearSessionCookie(w)
	w.WriteHeader(http.StatusNoContent)
}

func handleChangePassword(w http.ResponseWriter, r *http.Request) {
	sess, _ := middleware.GetSessionFromContext(r.Context())

	var req struct {
		CurrentPassword string `json:"current_password"`
		NewPassword     string `json:"new_password"`
	}
	if err := strictDecode(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid_input", "invalid request body")
		return
	}

	err := orchestrators.ExecuteChangePassword(r.Context(), orchestrators.ChangePasswordInput{
		AccountID:       sess.AccountID,
		CurrentPassword: req.CurrentPassword,
		NewPassword:     req.NewPassword,
	}, orchestrators.ChangePasswordDeps{AccountStore: stores.AccountStore})
	if err != nil {
		writeDomainError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// --- Member administration ---

// memberResponse is the JSON shape for a single member on the admin routes.
type memberResponse struct {
	ID                string `json:"id"`
	Name              string `json:"name"`
	Email             string `json:"email"`
	Status            string `json:"status"`
	RemainingSessions int    `json:"remaining_sessions"`
	TotalSessions     int    `json:"total_sessions"`
	JoinDate          string `json:"join_date"`
	LastVisit         string `json:"last_visit,omitempty"`
	HasLogin          bool   `json:"has_login"`
}

func toMemberResponse(m memberDomain.Member) memberResponse {
	resp := memberResponse{
		ID:                m.ID,
		Name:              m.Name,
		Email:             m.Email,
		Status:            m.Status,
		RemainingSessions: m.RemainingSessions,
		TotalSessions:     m.TotalSessions,
		JoinDate:          m.JoinDate.Format("2006-01-02"),
		HasLogin:          m.AccountID != "",
	}
	if !m.LastVisit.IsZero() {
		resp.LastVisit = m.LastVisit.Format(time.RFC3339)
	}
	return resp
}

func handleListMembers(w http.ResponseWriter, r *http.Request) {
	lp := listutil.ParseListParams(r.URL.Query(), projections.MemberSortColumns, []string{"status"})

	result, err := projections.QueryGetMemberList(r.Context(), projections.GetMemberListQuery{Params: lp},
		projections.GetMemberListDeps{MemberStore: stores.MemberStore})
	if err != nil {
		internalError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, result)
}

func handleRegisterMember(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Name            string `json:"name"`
		Email           string `json:"email"`
		InitialSessions int    `json:"initial_sessions"`
		Password        string `json:"password"`
	}
	if err := strictDecode(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid_input", "invalid request body")
		return
	}

	m, err := orchestrators.ExecuteRegisterMember(r.Context(), orchestrators.RegisterMemberInput{
		Name:            req.Name,
		Email:           req.Email,
		InitialSessions: req.InitialSessions,
		Password:        req.Password,
	}, orchestrators.RegisterMemberDeps{
		MemberStore:  stores.MemberStore,
		AccountStore: stores.AccountStore,
		EmailSender:  emailSender,
		GenerateID:   generateID,
		Now:          timeNow,
		FromAddress:  emailFromAddress,
	})
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, toMemberResponse(m))
}

func handleGetMember(w http.ResponseWriter, r *http.Request) {
	result, err := projections.QueryGetMemberProfile(r.Context(),
		projections.GetMemberProfileQuery{MemberID: r.PathValue("id")},
		projections.GetMemberProfileDeps{
			MemberStore:   stores.MemberStore,
			BookingStore:  stores.BookingStore,
			SessionStore:  stores.SessionStore,
			TemplateStore: stores.TemplateStore,
			Now:           timeNow,
		})
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, result)
}

func handleUpdateMember(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Name   string `json:"name"`
		Email  string `json:"email"`
		Status string `json:"status"`
	}
	if err := strictDecode(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid_input", "invalid request body")
		return
	}

	m, err := orchestrators.ExecuteUpdateMember(r.Context(), orchestrators.UpdateMemberInput{
		MemberID: r.PathValue("id"),
		Name:     req.Name,
		Email:    req.Email,
		Status:   req.Status,
	}, orchestrators.UpdateMemberDeps{MemberStore: stores.MemberStore})
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, toMemberResponse(m))
}

func handleTopUpMember(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Count int `json:"count"`
	}
	if err := strictDecode(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid_input", "invalid request body")
		return
	}

	m, err := orchestrators.ExecuteTopUpMember(r.Context(), orchestrators.TopUpMemberInput{
		MemberID: r.PathValue("id"),
		Count:    req.Count,
	}, orchestrators.TopUpMemberDeps{MemberStore: stores.MemberStore})
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, toMemberResponse(m))
}

// --- Class catalog ---

// templateResponse is the JSON shape for a class template.
type templateResponse struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	TeacherName string `json:"teacher_name"`
	Category    string `json:"category"`
	ColorTheme  string `json:"color_theme"`
	ColorHex    string `json:"color_hex"`
}

func toTemplateResponse(tpl classtemplate.ClassTemplate) templateResponse {
	return templateResponse{
		ID:          tpl.ID,
		Name:        tpl.Name,
		TeacherName: tpl.TeacherName,
		Category:    tpl.Category,
		ColorTheme:  tpl.ColorTheme,
		ColorHex:    classtemplate.ColorHex[tpl.ColorTheme],
	}
}

func handleListTemplates(w http.ResponseWriter, r *http.Request) {
	templates, err := stores.TemplateStore.List(r.Context())
	if err != nil {
		internalError(w, err)
		return
	}
	resp := make([]templateResponse, 0, len(templates))
	for _, tpl := range templates {
		resp = append(resp, toTemplateResponse(tpl))
	}
	writeJSON(w, http.StatusOK, resp)
}

func handleSaveTemplate(w http.ResponseWriter, r *http.Request) {
	var req struct {
		ID          string `json:"id"`
		Name        string `json:"name"`
		TeacherName string `json:"teacher_name"`
		Category    string `json:"category"`
		ColorTheme  string `json:"color_theme"`
	}
	if err := strictDecode(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid_input", "invalid request body")
		return
	}

	created := req.ID == ""
	tpl, err := orchestrators.ExecuteSaveTemplate(r.Context(), orchestrators.SaveTemplateInput{
		TemplateID:  req.ID,
		Name:        req.Name,
		TeacherName: req.TeacherName,
		Category:    req.Category,
		ColorTheme:  req.ColorTheme,
	}, orchestrators.SaveTemplateDeps{
		TemplateStore: stores.TemplateStore,
		GenerateID:    generateID,
	})
	if err != nil {
		writeDomainError(w, err)
		return
	}
	status := http.StatusOK
	if created {
		status = http.StatusCreated
	}
	writeJSON(w, status, toTemplateResponse(tpl))
}

// sessionResponse is the raw session shape used on the admin scheduling routes.
type sessionResponse struct {
	ID              string `json:"id"`
	ClassTemplateID string `json:"class_template_id"`
	StartTime       string `json:"start_time"`
	DurationMinutes int    `json:"duration_minutes"`
	Capacity        int    `json:"capacity"`
}

func handleListSessions(w http.ResponseWriter, r *http.Request) {
	day, err := scheduleDate(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid_input", "date must be YYYY-MM-DD")
		return
	}

	list, err := stores.SessionStore.ListBetween(r.Context(), day, day.AddDate(0, 0, 1))
	if err != nil {
		internalError(w, err)
		return
	}
	resp := make([]sessionResponse, 0, len(list))
	for _, sess := range list {
		resp = append(resp, sessionResponse{
			ID:              sess.ID,
			ClassTemplateID: sess.ClassTemplateID,
			StartTime:       sess.StartTime.Format(time.RFC3339),
			DurationMinutes: sess.DurationMinutes,
			Capacity:        sess.Capacity,
		})
	}
	writeJSON(w, http.StatusOK, resp)
}

func handleScheduleSession(w http.ResponseWriter, r *http.Request) {
	var req struct {
		ID              string `json:"id"`
		ClassTemplateID string `json:"class_template_id"`
		StartTime       string `json:"start_time"`
		DurationMinutes int    `json:"duration_minutes"`
		Capacity        int    `json:"capacity"`
	}
	if err := strictDecode(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid_input", "invalid request body")
		return
	}
	start, err := time.Parse(time.RFC3339, req.StartTime)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid_input", "start_time must be RFC 3339")
		return
	}

	created := req.ID == ""
	sess, err := orchestrators.ExecuteScheduleSession(r.Context(), orchestrators.ScheduleSessionInput{
		SessionID:       req.ID,
		ClassTemplateID: req.ClassTemplateID,
		StartTime:       start,
		DurationMinutes: req.DurationMinutes,
		Capacity:        req.Capacity,
	}, orchestrators.ScheduleSessionDeps{
		SessionStore:   stores.SessionStore,
		TemplateStore:  stores.TemplateStore,
		BookingCounter: stores.BookingStore,
		GenerateID:     generateID,
	})
	if err != nil {
		writeDomainError(w, err)
		return
	}
	status := http.StatusOK
	if created {
		status = http.StatusCreated
	}
	writeJSON(w, status, sessionResponse{
		ID:              sess.ID,
		ClassTemplateID: sess.ClassTemplateID,
		StartTime:       sess.StartTime.Format(time.RFC3339),
		DurationMinutes: sess.DurationMinutes,
		Capacity:        sess.Capacity,
	})
}

func handleDeleteSession(w http.ResponseWriter, r *http.Request) {
	err := orchestrators.ExecuteDeleteSession(r.Context(), orchestrators.DeleteSessionInput{
		SessionID: r.PathValue("id"),
	}, orchestrators.DeleteSessionDeps{
		SessionStore:   stores.SessionStore,
		BookingCounter: stores.BookingStore,
	})
	if err != nil {
		writeDomainError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// --- Booking ---

// scheduleDate parses the date query parameter, defaulting to today.
func scheduleDate(r *http.Request) (time.Time, error) {
	raw := r.URL.Query().Get("date")
	if raw == "" {
		now := timeNow()
		return time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC), nil
	}
	return time.Parse("2006-01-02", raw)
}

func handleGetSchedule(w http.ResponseWriter, r *http.Request) {
	day, err := scheduleDate(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid_input", "date must be YYYY-MM-DD")
		return
	}

	query := projections.GetDayScheduleQuery{
		Date:     day,
		Category: r.URL.Query().Get("category"),
		Search:   r.URL.Query().Get("q"),
	}
	if sess, ok := middleware.GetSessionFromContext(r.Context()); ok {
		query.AccountID = sess.AccountID
	}

	result, err := projections.QueryGetDaySchedule(r.Context(), query, projections.GetDayScheduleDeps{
		SessionStore:  stores.SessionStore,
		TemplateStore: stores.TemplateStore,
		BookingStore:  stores.BookingStore,
		MemberStore:   stores.MemberStore,
		Now:           timeNow,
	})
	if err != nil {
		internalError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, result)
}

// bookingResponse is the JSON shape returned by the booking write routes.
type bookingResponse struct {
	BookingID         string `json:"booking_id"`
	SessionID         string `json:"session_id"`
	MemberID          string `json:"member_id"`
	Status            string `json:"status"`
	RemainingSessions int    `json:"remaining_sessions"`
}

func handleCreateBooking(w http.ResponseWriter, r *http.Request) {
	sess, _ := middleware.GetSessionFromContext(r.Context())

	var req struct {
		SessionID string `json:"session_id"`
		MemberID  string `json:"member_id"` // admin only: book on a member's behalf
	}
	if err := strictDecode(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid_input", "invalid request body")
		return
	}

	// Members always book for themselves, whatever the body says.
	memberID := req.MemberID
	if sess.Role == accountDomain.RoleMember {
		memberID = sess.MemberID
	}

	result, err := orchestrators.ExecuteBookSession(r.Context(), orchestrators.BookSessionInput{
		SessionID: req.SessionID,
		MemberID:  memberID,
	}, orchestrators.BookSessionDeps{
		MemberStore:   stores.MemberStore,
		SessionStore:  stores.SessionStore,
		TemplateStore: stores.TemplateStore,
		BookingStore:  stores.BookingStore,
		EmailSender:   emailSender,
		GenerateID:    generateID,
		Now:           timeNow,
		FromAddress:   emailFromAddress,
	})
	if err != nil {
		writeDomainError(w, err)
		return
	}

	writeJSON(w, http.StatusCreated, bookingResponse{
		BookingID:         result.Booking.ID,
		SessionID:         result.Booking.SessionID,
		MemberID:          result.Booking.MemberID,
		Status:            result.Booking.Status,
		RemainingSessions: result.RemainingSessions,
	})
}

func handleCancelBooking(w http.ResponseWriter, r *http.Request) {
	sess, _ := middleware.GetSessionFromContext(r.Context())

	input := orchestrators.CancelBookingInput{BookingID: r.PathValue("id")}
	if sess.Role == accountDomain.RoleMember {
		input.MemberID = sess.MemberID
	}

	err := orchestrators.ExecuteCancelBooking(r.Context(), input, orchestrators.CancelBookingDeps{
		BookingStore: stores.BookingStore,
		SessionStore: stores.SessionStore,
		Now:          timeNow,
	})
	if err != nil {
		writeDomainError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func handleCheckInBooking(w http.ResponseWriter, r *http.Request) {
	err := orchestrators.ExecuteCheckInBooking(r.Context(), orchestrators.CheckInBookingInput{
		BookingID: r.PathValue("id"),
	}, orchestrators.CheckInBookingDeps{
		BookingStore: stores.BookingStore,
		MemberStore:  stores.MemberStore,
		Now:          timeNow,
	})
	if err != nil {
		writeDomainError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func handleMarkNoShow(w http.ResponseWriter, r *http.Request) {
	err := orchestrators.ExecuteMarkNoShow(r.Context(), orchestrators.MarkNoShowInput{
		BookingID: r.PathValue("id"),
	}, orchestrators.MarkNoShowDeps{
		BookingStore: stores.BookingStore,
	})
	if err != nil {
		writeDomainError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// --- Member self-service ---

func handleGetProfile(w http.ResponseWriter, r *http.Request) {
	sess, _ := middleware.GetSessionFromContext(r.Context())

	result, err := projections.QueryGetMemberProfile(r.Context(),
		projections.GetMemberProfileQuery{AccountID: sess.AccountID},
		projections.GetMemberProfileDeps{
			MemberStore:   stores.MemberStore,
			BookingStore:  stores.BookingStore,
			SessionStore:  stores.SessionStore,
			TemplateStore: stores.TemplateStore,
			Now:           timeNow,
		})
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, result)
}

// --- Admin dashboard ---

func handleGetDashboard(w http.ResponseWriter, r *http.Request) {
	result, err := projections.QueryGetDashboard(r.Context(), projections.GetDashboardDeps{
		MemberStore:   stores.MemberStore,
		NoticeStore:   stores.NoticeStore,
		SessionStore:  stores.SessionStore,
		TemplateStore: stores.TemplateStore,
		BookingStore:  stores.BookingStore,
		Now:           timeNow,
	})
	if err != nil {
		internalError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, result)
}

// --- Notices ---

func handleListNotices(w http.ResponseWriter, r *http.Request) {
	sess, loggedIn := middleware.GetSessionFromContext(r.Context())
	isAdmin := loggedIn && sess.Role == accountDomain.RoleAdmin

	views, err := projections.QueryGetNotices(r.Context(), projections.GetNoticesQuery{
		IncludeDrafts:  isAdmin,
		MemberAudience: loggedIn,
	}, projections.GetNoticesDeps{NoticeStore: stores.NoticeStore})
	if err != nil {
		internalError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, views)
}

func handleCreateNotice(w http.ResponseWriter, r *http.Request) {
	sess, _ := middleware.GetSessionFromContext(r.Context())

	var req struct {
		Title    string `json:"title"`
		Content  string `json:"content"`
		Audience string `json:"audience"`
	}
	if err := strictDecode(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid_input", "invalid request body")
		return
	}

	n, err := orchestrators.ExecuteCreateNotice(r.Context(), orchestrators.CreateNoticeInput{
		Title:     req.Title,
		Content:   req.Content,
		Audience:  req.Audience,
		CreatedBy: sess.AccountID,
	}, orchestrators.CreateNoticeDeps{
		NoticeStore: stores.NoticeStore,
		GenerateID:  generateID,
		Now:         timeNow,
	})
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, map[string]string{
		"id":       n.ID,
		"status":   n.Status,
		"audience": n.Audience,
		"title":    n.Title,
	})
}

func handlePublishNotice(w http.ResponseWriter, r *http.Request) {
	n, err := orchestrators.ExecutePublishNotice(r.Context(), orchestrators.PublishNoticeInput{
		NoticeID: r.PathValue("id"),
	}, orchestrators.PublishNoticeDeps{
		NoticeStore: stores.NoticeStore,
		ListRecipients: func(ctx context.Context) ([]memberDomain.Member, error) {
			return stores.MemberStore.List(ctx, memberStore.ListFilter{Status: memberDomain.StatusActive})
		},
		EmailSender: emailSender,
		Now:         timeNow,
		FromAddress: emailFromAddress,
	})
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{
		"id":           n.ID,
		"status":       n.Status,
		"published_at": n.PublishedAt.Format(time.RFC3339),
	})
}

// --- Perf dashboard ---

func handleGetPerf(w http.ResponseWriter, r *http.Request) {
	if perfCollector == nil {
		writeError(w, http.StatusNotFound, "not_found", "perf collection is disabled")
		return
	}
	snap := perfCollector.Snapshot(timeNow().Add(-15*time.Minute), 10)
	writeJSON(w, http.StatusOK, snap)
}
