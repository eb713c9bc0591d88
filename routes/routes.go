package routes

import (
	"planora/activities"
	"planora/assist"
	"planora/auth"
	"planora/middleware"
	"planora/plans"
	"planora/ratelim"
	"planora/tasks"

	"github.com/julienschmidt/httprouter"
)

func AddPlanRoutes(router *httprouter.Router, h *plans.Handlers) {
	router.GET("/api/plans", h.GetPlans)                                    // List plans
	router.POST("/api/plans", middleware.OptionalAuth(h.CreatePlan))        // Create a plan with generated days
	router.GET("/api/shared/:link", h.GetSharedPlan)                        // Fetch by share link
	router.GET("/api/plans/:id", h.GetPlan)                                 // Fetch one plan
	router.PUT("/api/plans/:id", h.UpdatePlan)                              // Partial update, regenerates days on date change
	router.DELETE("/api/plans/:id", h.DeletePlan)                           // Delete a plan and everything embedded in it
	router.POST("/api/plans/:id/share", h.SharePlan)                        // Issue a share link
	router.GET("/api/plans/:id/share/qr", h.ShareQR)                        // QR code for the share link
	router.GET("/api/plans/:id/export", h.ExportPDF)                        // Day-by-day PDF
	router.GET("/api/plans/:id/progress", h.GetProgress)                    // Per-day and overall progress
	router.POST("/api/plans/:id/cover", h.UploadCover)                      // Cover image upload
}

func AddActivityRoutes(router *httprouter.Router, h *activities.Handlers) {
	router.GET("/api/plans/:id/days/:dayId/activities", h.GetActivities)                       // Time-sorted activity list
	router.POST("/api/plans/:id/days/:dayId/activities", h.AddActivity)                        // Add one (advisory conflict report)
	router.PATCH("/api/plans/:id/days/:dayId/activities", h.ReplaceActivities)                 // Bulk replace
	router.PUT("/api/plans/:id/days/:dayId/activities/:activityId", h.UpdateActivity)          // Field patch
	router.DELETE("/api/plans/:id/days/:dayId/activities/:activityId", h.DeleteActivity)       // Remove one
	router.POST("/api/plans/:id/days/:dayId/activities/reorder", h.ReorderActivities)          // Index move
	router.POST("/api/plans/:id/days/:dayId/activities/compact", h.CompactActivities)          // Remove gaps
	router.POST("/api/plans/:id/days/:dayId/activities/breaks", h.InsertBreaks)                // Auto-insert rest breaks
	router.GET("/api/plans/:id/days/:dayId/freeslots", h.GetFreeSlots)                         // Free-slot discovery
	router.GET("/api/plans/:id/days/:dayId/conflict", h.CheckConflict)                         // Conflict probe
}

func AddTaskRoutes(router *httprouter.Router, h *tasks.Handlers) {
	router.GET("/api/tasks", h.GetTasks)
	router.POST("/api/tasks", h.CreateTask)
	router.PUT("/api/tasks/:id", h.UpdateTask)
	router.DELETE("/api/tasks/:id", h.DeleteTask)
}

func AddAuthRoutes(router *httprouter.Router, rateLimiter *ratelim.RateLimiter) {
	router.POST("/api/auth/register", rateLimiter.Limit(auth.Register))
	router.POST("/api/auth/login", rateLimiter.Limit(auth.Login))
	router.POST("/api/auth/refresh", rateLimiter.Limit(auth.RefreshToken))
}

func AddAssistRoutes(router *httprouter.Router, rateLimiter *ratelim.RateLimiter) {
	router.POST("/api/assist/suggestions", rateLimiter.Limit(assist.Suggest))
}
