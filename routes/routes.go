package routes

import (
	"net/http"

	"kpimanager/handlers"
	"kpimanager/middlewares"
)

// Handlers collects everything the router mounts.
type Handlers struct {
	Auth          *handlers.AuthHandler
	Users         *handlers.UserHandler
	Departments   *handlers.DepartmentHandler
	KPIs          *handlers.KPIHandler
	Reports       *handlers.ReportHandler
	Dashboard     *handlers.DashboardHandler
	Notifications *handlers.NotificationHandler
	Seed          http.HandlerFunc
}

func Setup(h Handlers, jwtSecret string) *http.ServeMux {
	mux := http.NewServeMux()

	// Apply JWT middleware to everything except auth and seed
	protect := middlewares.JWTMiddleware(jwtSecret)

	// Public routes
	mux.HandleFunc("POST /api/auth/register", h.Auth.Register)
	mux.HandleFunc("POST /api/auth/login", h.Auth.Login)
	if h.Seed != nil {
		mux.HandleFunc("POST /api/seed", h.Seed)
	}

	// User routes
	mux.Handle("GET /api/users", protect(http.HandlerFunc(h.Users.GetUsers)))
	mux.Handle("GET /api/users/{id}", protect(http.HandlerFunc(h.Users.GetUserByID)))
	mux.Handle("POST /api/users", protect(http.HandlerFunc(h.Users.CreateUser)))
	mux.Handle("PUT /api/users/{id}", protect(http.HandlerFunc(h.Users.UpdateUser)))
	mux.Handle("DELETE /api/users/{id}", protect(http.HandlerFunc(h.Users.DeleteUser)))

	// Department routes
	mux.Handle("GET /api/departments", protect(http.HandlerFunc(h.Departments.GetDepartments)))
	mux.Handle("GET /api/departments/{id}", protect(http.HandlerFunc(h.Departments.GetDepartmentByID)))
	mux.Handle("POST /api/departments", protect(http.HandlerFunc(h.Departments.CreateDepartment)))
	mux.Handle("PUT /api/departments/{id}", protect(http.HandlerFunc(h.Departments.UpdateDepartment)))
	mux.Handle("DELETE /api/departments/{id}", protect(http.HandlerFunc(h.Departments.DeleteDepartment)))

	// KPI routes
	mux.Handle("GET /api/kpis", protect(http.HandlerFunc(h.KPIs.GetKPIs)))
	mux.Handle("GET /api/kpis/{id}", protect(http.HandlerFunc(h.KPIs.GetKPIByID)))
	mux.Handle("POST /api/kpis", protect(http.HandlerFunc(h.KPIs.CreateKPI)))
	mux.Handle("PUT /api/kpis/{id}", protect(http.HandlerFunc(h.KPIs.UpdateKPI)))
	mux.Handle("DELETE /api/kpis/{id}", protect(http.HandlerFunc(h.KPIs.DeleteKPI)))
	// Progress and assignment
	mux.Handle("POST /api/kpis/{id}/progress", protect(http.HandlerFunc(h.KPIs.RecordProgress)))
	mux.Handle("POST /api/kpis/{id}/assign", protect(http.HandlerFunc(h.KPIs.AssignKPI)))
	// Analytics routes
	mux.Handle("GET /api/kpis/analytics/performance", protect(http.HandlerFunc(h.KPIs.GetPerformanceStats)))

	// Dashboard route
	mux.Handle("GET /api/dashboard", protect(http.HandlerFunc(h.Dashboard.GetStats)))

	// Report routes
	mux.Handle("POST /api/reports/generate", protect(http.HandlerFunc(h.Reports.GenerateReport)))
	mux.Handle("GET /api/reports/schedule", protect(http.HandlerFunc(h.Reports.GetScheduledReports)))
	mux.Handle("POST /api/reports/schedule", protect(http.HandlerFunc(h.Reports.ScheduleReport)))
	mux.Handle("DELETE /api/reports/schedule/{id}", protect(http.HandlerFunc(h.Reports.CancelScheduledReport)))

	// Notification routes
	mux.Handle("GET /api/notifications", protect(http.HandlerFunc(h.Notifications.GetNotifications)))
	mux.Handle("PUT /api/notifications/{id}/read", protect(http.HandlerFunc(h.Notifications.MarkRead)))
	mux.Handle("PUT /api/notifications/read-all", protect(http.HandlerFunc(h.Notifications.MarkAllRead)))

	return mux
}
