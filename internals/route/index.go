package routes

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog/log"
	"gorm.io/gorm"

	classRoute "nojom_backend/internals/features/academics/classes/route"
	studentRoute "nojom_backend/internals/features/academics/students/route"
	subjectRoute "nojom_backend/internals/features/academics/subjects/route"
	teacherRoute "nojom_backend/internals/features/academics/teachers/route"
	dashboardRoute "nojom_backend/internals/features/dashboard/route"
	paymentRoute "nojom_backend/internals/features/finance/payments/route"
	teacherPaymentRoute "nojom_backend/internals/features/finance/teacher_payments/route"
	reportRoute "nojom_backend/internals/features/reports/route"
	authRoute "nojom_backend/internals/features/users/auth/route"
	utilityRoute "nojom_backend/internals/features/utilities/route"
	"nojom_backend/internals/helpers/clock"
	"nojom_backend/internals/helpers/storage"
	"nojom_backend/internals/middlewares"
	authMiddleware "nojom_backend/internals/middlewares/auth"
)

var startTime = time.Now()

type Options struct {
	Clock   clock.Clock
	Storage storage.Storage
	// UploadDir is served under /uploads when the local driver is used.
	UploadDir string
}

func SetupRoutes(app *fiber.App, db *gorm.DB, opt Options) {
	if opt.Clock == nil {
		opt.Clock = clock.Real{}
	}

	if opt.UploadDir != "" {
		app.Static("/uploads", opt.UploadDir)
	}

	api := app.Group("/api", middlewares.GlobalRateLimiter())

	// ===================== PUBLIC =====================
	log.Info().Msg("setting up public routes")
	BaseRoutes(api, db)
	authRoute.AuthPublicRoutes(api, db, opt.Clock)

	// ===================== PROTECTED =====================
	log.Info().Msg("setting up protected routes")
	protected := api.Group("", authMiddleware.AuthMiddleware(db))

	authRoute.AuthProtectedRoutes(protected, db, opt.Clock)
	dashboardRoute.DashboardRoutes(protected, db, opt.Clock)

	studentRoute.StudentRoutes(protected, db, opt.Clock)
	teacherRoute.TeacherRoutes(protected, db, opt.Clock)
	subjectRoute.SubjectRoutes(protected, db)
	classRoute.ClassRoutes(protected, db)

	paymentRoute.PaymentRoutes(protected, db, opt.Clock)
	teacherPaymentRoute.TeacherPaymentRoutes(protected, db)

	reportRoute.ReportRoutes(protected, db)
	if opt.Storage != nil {
		utilityRoute.UtilityRoutes(protected, opt.Storage)
	}
}
